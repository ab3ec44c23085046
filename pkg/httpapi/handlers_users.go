package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/raywall/user-storage-api/pkg/docstore"
)

type createUserRequest struct {
	Nome  string `json:"nome" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

type updateUserRequest struct {
	Nome  string `json:"nome" validate:"omitempty"`
	Email string `json:"email" validate:"omitempty,email"`
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) error {
	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return badRequest("corpo da requisição inválido")
	}
	if err := s.valid.StructCtx(r.Context(), req); err != nil {
		return badRequest("dados do usuário inválidos")
	}

	user, err := s.users.Create(r.Context(), req.Nome, req.Email)
	if err != nil {
		return err
	}

	respondJSON(w, http.StatusCreated, user)
	return nil
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) error {
	users, err := s.users.FindAll(r.Context())
	if err != nil {
		return err
	}

	respondJSON(w, http.StatusOK, users)
	return nil
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) error {
	id := mux.Vars(r)["id"]

	user, err := s.users.FindByID(r.Context(), id)
	if err != nil {
		return err
	}

	respondJSON(w, http.StatusOK, user)
	return nil
}

func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) error {
	id := mux.Vars(r)["id"]

	var req updateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return badRequest("corpo da requisição inválido")
	}
	if err := s.valid.StructCtx(r.Context(), req); err != nil {
		return badRequest("dados do usuário inválidos")
	}

	user, err := s.users.UpdateByID(r.Context(), id, docstore.Patch{
		Nome:  req.Nome,
		Email: req.Email,
	})
	if err != nil {
		return err
	}

	respondJSON(w, http.StatusOK, user)
	return nil
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) error {
	id := mux.Vars(r)["id"]

	if err := s.users.DeleteByID(r.Context(), id); err != nil {
		return err
	}

	respondJSON(w, http.StatusOK, mensagemResponse{Mensagem: "usuário removido"})
	return nil
}

func (s *Server) handleProbe(w http.ResponseWriter, r *http.Request) error {
	found, err := s.users.Probe(r.Context())
	if err != nil {
		return err
	}

	msg := "conectado, nenhum usuário encontrado"
	if found {
		msg = "conectado, usuário encontrado"
	}

	respondJSON(w, http.StatusOK, mensagemResponse{Mensagem: msg})
	return nil
}
