package httpapi

import (
	"fmt"
	"net/http"
	"regexp"
	"strings"
)

// Regex para identificar parâmetros na rota (ex: {id})
var routeParamRegex = regexp.MustCompile(`\{([a-zA-Z0-9_]+)\}`)

// handleOpenAPI publica o documento OpenAPI 3.0 derivado da tabela de
// rotas anotadas, de forma que a documentação acompanha o roteamento.
func (s *Server) handleOpenAPI(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.openAPIDocument())
}

func (s *Server) openAPIDocument() map[string]interface{} {
	paths := map[string]interface{}{}

	for _, rt := range s.routes() {
		operation := map[string]interface{}{
			"summary": rt.Summary,
			"tags":    []string{rt.Tag},
			"responses": map[string]interface{}{
				fmt.Sprintf("%d", rt.Status): map[string]interface{}{
					"description": "sucesso",
				},
				"500": map[string]interface{}{
					"description": "falha no store",
				},
			},
		}

		if params := pathParameters(rt.Path); len(params) > 0 {
			operation["parameters"] = params
		}

		entry, ok := paths[rt.Path].(map[string]interface{})
		if !ok {
			entry = map[string]interface{}{}
			paths[rt.Path] = entry
		}
		entry[strings.ToLower(rt.Method)] = operation
	}

	return map[string]interface{}{
		"openapi": "3.0.3",
		"info": map[string]interface{}{
			"title":       "User Storage API",
			"description": "CRUD de usuários (document store) e operações de object storage",
			"version":     "1.0.0",
		},
		"paths": paths,
	}
}

func pathParameters(path string) []map[string]interface{} {
	var params []map[string]interface{}
	for _, match := range routeParamRegex.FindAllStringSubmatch(path, -1) {
		params = append(params, map[string]interface{}{
			"name":     match[1],
			"in":       "path",
			"required": true,
			"schema":   map[string]interface{}{"type": "string"},
		})
	}
	return params
}

const docsPage = `<!DOCTYPE html>
<html lang="pt-BR">
<head><meta charset="utf-8"><title>User Storage API</title></head>
<body>
<h1>User Storage API</h1>
<p>Documento OpenAPI disponível em <a href="/docs/openapi.json">/docs/openapi.json</a>.</p>
</body>
</html>
`

func (s *Server) handleDocsPage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(docsPage))
}
