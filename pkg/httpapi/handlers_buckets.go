package httpapi

import (
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/raywall/user-storage-api/pkg/blobstore"
)

// maxUploadMemory limita quanto do multipart fica em memória antes do
// parser usar arquivos temporários. O conteúdo do upload em si continua
// sendo bufferizado por inteiro antes do envio ao store; não há limite
// de tamanho imposto nesta camada.
const maxUploadMemory = 32 << 20

type uploadResponse struct {
	Mensagem string                `json:"mensagem"`
	Arquivo  *blobstore.UploadInfo `json:"arquivo"`
}

func (s *Server) handleListBuckets(w http.ResponseWriter, r *http.Request) error {
	buckets, err := s.objects.ListBuckets(r.Context())
	if err != nil {
		return err
	}

	respondJSON(w, http.StatusOK, buckets)
	return nil
}

func (s *Server) handleListObjects(w http.ResponseWriter, r *http.Request) error {
	bucket := mux.Vars(r)["bucketName"]

	objects, err := s.objects.ListObjects(r.Context(), bucket)
	if err != nil {
		return err
	}

	respondJSON(w, http.StatusOK, objects)
	return nil
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) error {
	bucket := mux.Vars(r)["bucketName"]

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		return badRequest("nenhum arquivo enviado")
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return badRequest("nenhum arquivo enviado")
	}
	defer file.Close()

	body, err := io.ReadAll(file)
	if err != nil {
		return err
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	// A key é o nome do arquivo enviado; colisão sobrescreve em silêncio.
	info, err := s.objects.Upload(r.Context(), bucket, header.Filename, contentType, body)
	if err != nil {
		return err
	}

	respondJSON(w, http.StatusOK, uploadResponse{
		Mensagem: "upload concluído",
		Arquivo:  info,
	})
	return nil
}

func (s *Server) handleDeleteObject(w http.ResponseWriter, r *http.Request) error {
	vars := mux.Vars(r)

	if err := s.objects.Remove(r.Context(), vars["bucketName"], vars["fileName"]); err != nil {
		return err
	}

	respondJSON(w, http.StatusOK, mensagemResponse{Mensagem: "arquivo removido"})
	return nil
}
