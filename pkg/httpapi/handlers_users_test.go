package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raywall/user-storage-api/pkg/docstore"
)

func doRequest(t *testing.T, s *Server, method, target string, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}

func TestCreateUser(t *testing.T) {
	users := &stubUserStore{
		CreateFn: func(_ context.Context, nome, email string) (*docstore.User, error) {
			return &docstore.User{ID: "u-1", Nome: nome, Email: email}, nil
		},
	}
	s := newTestServer(users, nil)

	rec := doRequest(t, s, "POST", "/usuarios", `{"nome":"Ana","email":"ana@x.com"}`)

	require.Equal(t, http.StatusCreated, rec.Code)

	var user docstore.User
	decodeBody(t, rec, &user)
	assert.Equal(t, "u-1", user.ID)
	assert.Equal(t, "Ana", user.Nome)
	assert.Equal(t, "ana@x.com", user.Email)
}

func TestCreateUser_InvalidPayload(t *testing.T) {
	created := 0
	users := &stubUserStore{
		CreateFn: func(_ context.Context, _, _ string) (*docstore.User, error) {
			created++
			return nil, nil
		},
	}
	s := newTestServer(users, nil)

	cases := map[string]string{
		"json malformado": `{"nome":`,
		"sem nome":        `{"email":"ana@x.com"}`,
		"email inválido":  `{"nome":"Ana","email":"nao-e-email"}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			rec := doRequest(t, s, "POST", "/usuarios", body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
	assert.Zero(t, created, "payload inválido não deve chegar ao store")
}

func TestCreateUser_StoreFailure(t *testing.T) {
	users := &stubUserStore{
		CreateFn: func(_ context.Context, _, _ string) (*docstore.User, error) {
			return nil, errors.New("conexão recusada pelo dynamodb")
		},
	}
	s := newTestServer(users, nil)

	rec := doRequest(t, s, "POST", "/usuarios", `{"nome":"Ana","email":"ana@x.com"}`)

	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp errorResponse
	decodeBody(t, rec, &resp)
	assert.Equal(t, "erro interno do servidor", resp.Erro)
	assert.NotContains(t, rec.Body.String(), "dynamodb", "detalhe interno não pode vazar")
}

func TestListUsers(t *testing.T) {
	users := &stubUserStore{
		FindAllFn: func(_ context.Context) ([]docstore.User, error) {
			return []docstore.User{
				{ID: "u-1", Nome: "Ana", Email: "ana@x.com"},
				{ID: "u-2", Nome: "Bia", Email: "bia@x.com"},
			}, nil
		},
	}
	s := newTestServer(users, nil)

	rec := doRequest(t, s, "GET", "/usuarios", "")

	require.Equal(t, http.StatusOK, rec.Code)

	var list []docstore.User
	decodeBody(t, rec, &list)
	assert.Len(t, list, 2)
}

func TestGetUser(t *testing.T) {
	users := &stubUserStore{
		FindByIDFn: func(_ context.Context, id string) (*docstore.User, error) {
			if id == "u-1" {
				return &docstore.User{ID: "u-1", Nome: "Ana", Email: "ana@x.com"}, nil
			}
			return nil, docstore.ErrNotFound
		},
	}
	s := newTestServer(users, nil)

	t.Run("encontrado", func(t *testing.T) {
		rec := doRequest(t, s, "GET", "/usuarios/u-1", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var user docstore.User
		decodeBody(t, rec, &user)
		assert.Equal(t, "Ana", user.Nome)
	})

	t.Run("não encontrado", func(t *testing.T) {
		rec := doRequest(t, s, "GET", "/usuarios/nao-existe", "")
		require.Equal(t, http.StatusNotFound, rec.Code)

		var resp errorResponse
		decodeBody(t, rec, &resp)
		assert.Equal(t, "usuário não encontrado", resp.Erro)
	})
}

func TestUpdateUser(t *testing.T) {
	var gotPatch docstore.Patch
	users := &stubUserStore{
		UpdateByIDFn: func(_ context.Context, id string, patch docstore.Patch) (*docstore.User, error) {
			if id != "u-1" {
				return nil, docstore.ErrNotFound
			}
			gotPatch = patch
			return &docstore.User{ID: "u-1", Nome: "Ana Maria", Email: "ana@x.com"}, nil
		},
	}
	s := newTestServer(users, nil)

	t.Run("atualização parcial", func(t *testing.T) {
		rec := doRequest(t, s, "PUT", "/usuarios/u-1", `{"nome":"Ana Maria"}`)
		require.Equal(t, http.StatusOK, rec.Code)

		assert.Equal(t, "Ana Maria", gotPatch.Nome)
		assert.Empty(t, gotPatch.Email, "campo ausente não entra no patch")
	})

	t.Run("id inexistente", func(t *testing.T) {
		rec := doRequest(t, s, "PUT", "/usuarios/nao-existe", `{"nome":"X"}`)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("email inválido", func(t *testing.T) {
		rec := doRequest(t, s, "PUT", "/usuarios/u-1", `{"email":"invalido"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestDeleteUser_Twice(t *testing.T) {
	deleted := map[string]bool{}
	users := &stubUserStore{
		DeleteByIDFn: func(_ context.Context, id string) error {
			if deleted[id] {
				return docstore.ErrNotFound
			}
			deleted[id] = true
			return nil
		},
	}
	s := newTestServer(users, nil)

	first := doRequest(t, s, "DELETE", "/usuarios/u-1", "")
	require.Equal(t, http.StatusOK, first.Code)

	var resp mensagemResponse
	decodeBody(t, first, &resp)
	assert.Equal(t, "usuário removido", resp.Mensagem)

	second := doRequest(t, s, "DELETE", "/usuarios/u-1", "")
	assert.Equal(t, http.StatusNotFound, second.Code)
}

func TestProbe(t *testing.T) {
	t.Run("com registro", func(t *testing.T) {
		users := &stubUserStore{ProbeFn: func(_ context.Context) (bool, error) { return true, nil }}
		rec := doRequest(t, newTestServer(users, nil), "GET", "/mongodb/testar-conexao", "")

		require.Equal(t, http.StatusOK, rec.Code)

		var resp mensagemResponse
		decodeBody(t, rec, &resp)
		assert.Equal(t, "conectado, usuário encontrado", resp.Mensagem)
	})

	t.Run("coleção vazia", func(t *testing.T) {
		rec := doRequest(t, newTestServer(nil, nil), "GET", "/mongodb/testar-conexao", "")

		require.Equal(t, http.StatusOK, rec.Code)

		var resp mensagemResponse
		decodeBody(t, rec, &resp)
		assert.Equal(t, "conectado, nenhum usuário encontrado", resp.Mensagem)
	})

	t.Run("store inacessível", func(t *testing.T) {
		users := &stubUserStore{ProbeFn: func(_ context.Context) (bool, error) {
			return false, errors.New("timeout")
		}}
		rec := doRequest(t, newTestServer(users, nil), "GET", "/mongodb/testar-conexao", "")
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}
