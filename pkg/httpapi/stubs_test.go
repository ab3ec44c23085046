package httpapi

import (
	"context"

	"github.com/raywall/user-storage-api/pkg/blobstore"
	"github.com/raywall/user-storage-api/pkg/docstore"
)

// stubUserStore implementa UserStore via campos de função, no mesmo
// estilo dos mocks dos pacotes de store.
type stubUserStore struct {
	CreateFn     func(ctx context.Context, nome, email string) (*docstore.User, error)
	FindAllFn    func(ctx context.Context) ([]docstore.User, error)
	FindByIDFn   func(ctx context.Context, id string) (*docstore.User, error)
	UpdateByIDFn func(ctx context.Context, id string, patch docstore.Patch) (*docstore.User, error)
	DeleteByIDFn func(ctx context.Context, id string) error
	ProbeFn      func(ctx context.Context) (bool, error)
}

func (s *stubUserStore) Create(ctx context.Context, nome, email string) (*docstore.User, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, nome, email)
	}
	return &docstore.User{ID: "stub", Nome: nome, Email: email}, nil
}

func (s *stubUserStore) FindAll(ctx context.Context) ([]docstore.User, error) {
	if s.FindAllFn != nil {
		return s.FindAllFn(ctx)
	}
	return []docstore.User{}, nil
}

func (s *stubUserStore) FindByID(ctx context.Context, id string) (*docstore.User, error) {
	if s.FindByIDFn != nil {
		return s.FindByIDFn(ctx, id)
	}
	return nil, docstore.ErrNotFound
}

func (s *stubUserStore) UpdateByID(ctx context.Context, id string, patch docstore.Patch) (*docstore.User, error) {
	if s.UpdateByIDFn != nil {
		return s.UpdateByIDFn(ctx, id, patch)
	}
	return nil, docstore.ErrNotFound
}

func (s *stubUserStore) DeleteByID(ctx context.Context, id string) error {
	if s.DeleteByIDFn != nil {
		return s.DeleteByIDFn(ctx, id)
	}
	return nil
}

func (s *stubUserStore) Probe(ctx context.Context) (bool, error) {
	if s.ProbeFn != nil {
		return s.ProbeFn(ctx)
	}
	return false, nil
}

type stubObjectStore struct {
	ListBucketsFn func(ctx context.Context) ([]blobstore.BucketInfo, error)
	ListObjectsFn func(ctx context.Context, bucket string) ([]blobstore.ObjectInfo, error)
	UploadFn      func(ctx context.Context, bucket, key, contentType string, body []byte) (*blobstore.UploadInfo, error)
	RemoveFn      func(ctx context.Context, bucket, key string) error
}

func (s *stubObjectStore) ListBuckets(ctx context.Context) ([]blobstore.BucketInfo, error) {
	if s.ListBucketsFn != nil {
		return s.ListBucketsFn(ctx)
	}
	return []blobstore.BucketInfo{}, nil
}

func (s *stubObjectStore) ListObjects(ctx context.Context, bucket string) ([]blobstore.ObjectInfo, error) {
	if s.ListObjectsFn != nil {
		return s.ListObjectsFn(ctx, bucket)
	}
	return []blobstore.ObjectInfo{}, nil
}

func (s *stubObjectStore) Upload(ctx context.Context, bucket, key, contentType string, body []byte) (*blobstore.UploadInfo, error) {
	if s.UploadFn != nil {
		return s.UploadFn(ctx, bucket, key, contentType, body)
	}
	return &blobstore.UploadInfo{Bucket: bucket, Key: key, Tamanho: int64(len(body))}, nil
}

func (s *stubObjectStore) Remove(ctx context.Context, bucket, key string) error {
	if s.RemoveFn != nil {
		return s.RemoveFn(ctx, bucket, key)
	}
	return nil
}

func newTestServer(users UserStore, objects ObjectStore) *Server {
	if users == nil {
		users = &stubUserStore{}
	}
	if objects == nil {
		objects = &stubObjectStore{}
	}
	return New(users, objects, nil)
}
