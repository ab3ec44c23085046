// Package httpapi liga as rotas HTTP aos clients de document store e
// object storage. Cada handler executa exatamente uma chamada de
// colaborador e traduz o resultado em uma resposta JSON.
package httpapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/raywall/user-storage-api/pkg/blobstore"
	"github.com/raywall/user-storage-api/pkg/docstore"
	"github.com/raywall/user-storage-api/pkg/metrics"
)

// UserStore é a interface do document store consumida pelos handlers.
type UserStore interface {
	Create(ctx context.Context, nome, email string) (*docstore.User, error)
	FindAll(ctx context.Context) ([]docstore.User, error)
	FindByID(ctx context.Context, id string) (*docstore.User, error)
	UpdateByID(ctx context.Context, id string, patch docstore.Patch) (*docstore.User, error)
	DeleteByID(ctx context.Context, id string) error
	Probe(ctx context.Context) (bool, error)
}

// ObjectStore é a interface do object storage consumida pelos handlers.
type ObjectStore interface {
	ListBuckets(ctx context.Context) ([]blobstore.BucketInfo, error)
	ListObjects(ctx context.Context, bucket string) ([]blobstore.ObjectInfo, error)
	Upload(ctx context.Context, bucket, key, contentType string, body []byte) (*blobstore.UploadInfo, error)
	Remove(ctx context.Context, bucket, key string) error
}

// Server agrega os colaboradores injetados no boot. Não guarda nenhum
// estado entre requisições.
type Server struct {
	users   UserStore
	objects ObjectStore
	valid   *validator.Validate
	metrics metrics.Provider
}

// New cria um Server com os dois stores e o provedor de métricas.
func New(users UserStore, objects ObjectStore, provider metrics.Provider) *Server {
	if provider == nil {
		provider = &metrics.NoopProvider{}
	}
	return &Server{
		users:   users,
		objects: objects,
		valid:   validator.New(),
		metrics: provider,
	}
}

// route anota uma rota registrada: a mesma tabela alimenta o mux e o
// documento OpenAPI publicado em /docs/openapi.json, então a
// documentação não descola do roteamento.
type route struct {
	Method  string
	Path    string
	Summary string
	Tag     string
	Status  int
	handler handlerFunc
}

func (s *Server) routes() []route {
	return []route{
		{"GET", "/mongodb/testar-conexao", "Testa a conectividade com o document store", "usuarios", http.StatusOK, s.handleProbe},
		{"POST", "/usuarios", "Cria um usuário", "usuarios", http.StatusCreated, s.handleCreateUser},
		{"GET", "/usuarios", "Lista todos os usuários", "usuarios", http.StatusOK, s.handleListUsers},
		{"GET", "/usuarios/{id}", "Busca um usuário pelo id", "usuarios", http.StatusOK, s.handleGetUser},
		{"PUT", "/usuarios/{id}", "Atualiza um usuário (campos enviados sobrescrevem)", "usuarios", http.StatusOK, s.handleUpdateUser},
		{"DELETE", "/usuarios/{id}", "Remove um usuário", "usuarios", http.StatusOK, s.handleDeleteUser},
		{"GET", "/buckets", "Lista os buckets", "buckets", http.StatusOK, s.handleListBuckets},
		{"GET", "/buckets/{bucketName}", "Lista os objetos de um bucket", "buckets", http.StatusOK, s.handleListObjects},
		{"POST", "/buckets/{bucketName}/upload", "Faz upload de um arquivo (multipart, campo \"file\")", "buckets", http.StatusOK, s.handleUpload},
		{"DELETE", "/buckets/{bucketName}/file/{fileName}", "Remove um objeto do bucket", "buckets", http.StatusOK, s.handleDeleteObject},
	}
}

// Router monta o mux com todas as rotas e middlewares (CORS por fora,
// observabilidade por dentro).
func (s *Server) Router() http.Handler {
	router := mux.NewRouter()

	for _, rt := range s.routes() {
		router.HandleFunc(rt.Path, s.wrap(rt.handler)).Methods(rt.Method)
	}

	router.HandleFunc("/docs/openapi.json", s.handleOpenAPI).Methods("GET")
	router.HandleFunc("/docs", s.handleDocsPage).Methods("GET")

	return corsMiddleware(s.observabilityMiddleware(router))
}

// Start sobe o servidor HTTP na porta informada e bloqueia.
func (s *Server) Start(port int) error {
	addr := fmt.Sprintf(":%d", port)
	log.Info().Msgf("Servidor HTTP ouvindo em %s", addr)
	return http.ListenAndServe(addr, s.Router())
}
