package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/raywall/user-storage-api/pkg/docstore"
)

// handlerFunc é a assinatura interna dos handlers: escrevem a resposta
// de sucesso e devolvem erro para o mapeamento central em wrap.
type handlerFunc func(w http.ResponseWriter, r *http.Request) error

// requestError carrega um status e uma mensagem segura para expor ao
// cliente. Qualquer outro erro vira 500 genérico.
type requestError struct {
	status  int
	message string
}

func (e *requestError) Error() string { return e.message }

func badRequest(message string) error {
	return &requestError{status: http.StatusBadRequest, message: message}
}

func notFound(message string) error {
	return &requestError{status: http.StatusNotFound, message: message}
}

type errorResponse struct {
	Erro string `json:"erro"`
}

type mensagemResponse struct {
	Mensagem string `json:"mensagem"`
}

// wrap converte a taxonomia de erros em respostas HTTP num único ponto.
// Falhas de store são logadas com método, rota e o erro original; o
// corpo devolvido ao cliente é sempre genérico.
func (s *Server) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := h(w, r)
		if err == nil {
			return
		}

		var reqErr *requestError
		switch {
		case errors.As(err, &reqErr):
			respondJSON(w, reqErr.status, errorResponse{Erro: reqErr.message})

		case errors.Is(err, docstore.ErrNotFound):
			respondJSON(w, http.StatusNotFound, errorResponse{Erro: "usuário não encontrado"})

		default:
			log.Ctx(r.Context()).Error().
				Err(err).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Msg("falha ao atender a requisição")
			respondJSON(w, http.StatusInternalServerError, errorResponse{Erro: "erro interno do servidor"})
		}
	}
}

func respondJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		// A resposta já foi iniciada; só registra.
		log.Error().Err(err).Msg("erro ao serializar resposta")
	}
}
