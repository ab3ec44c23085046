// Package blobstore encapsula as operações de object storage (S3)
// expostas pela API: listagem de buckets e listagem, upload e remoção
// de objetos.
package blobstore

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Client é o subconjunto do client do SDK usado pelo Store.
type S3Client interface {
	ListBuckets(ctx context.Context, params *s3.ListBucketsInput, optFns ...func(*s3.Options)) (*s3.ListBucketsOutput, error)
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// BucketInfo descreve um bucket existente.
type BucketInfo struct {
	Nome    string    `json:"nome"`
	Criacao time.Time `json:"dataCriacao"`
}

// ObjectInfo descreve um objeto dentro de um bucket.
type ObjectInfo struct {
	Key               string    `json:"key"`
	Tamanho           int64     `json:"tamanho"`
	UltimaModificacao time.Time `json:"ultimaModificacao"`
	ETag              string    `json:"etag,omitempty"`
}

// UploadInfo é o metadado devolvido pelo store após um upload.
type UploadInfo struct {
	Bucket  string `json:"bucket"`
	Key     string `json:"key"`
	Tamanho int64  `json:"tamanho"`
	ETag    string `json:"etag,omitempty"`
}

// Store é o client de object storage. Credenciais e região são fixadas
// no boot; não há escopo de credencial por requisição.
type Store struct {
	client S3Client
}

// New cria um Store sobre o client informado.
func New(client S3Client) *Store {
	return &Store{client: client}
}

// ListBuckets retorna os buckets visíveis para a credencial configurada.
func (s *Store) ListBuckets(ctx context.Context) ([]BucketInfo, error) {
	out, err := s.client.ListBuckets(ctx, &s3.ListBucketsInput{})
	if err != nil {
		return nil, fmt.Errorf("blobstore: list buckets failed: %w", err)
	}

	buckets := []BucketInfo{}
	for _, b := range out.Buckets {
		info := BucketInfo{Nome: aws.ToString(b.Name)}
		if b.CreationDate != nil {
			info.Criacao = *b.CreationDate
		}
		buckets = append(buckets, info)
	}
	return buckets, nil
}

// ListObjects retorna os objetos do bucket. Bucket vazio resulta em
// sequência vazia, não em erro.
func (s *Store) ListObjects(ctx context.Context, bucket string) ([]ObjectInfo, error) {
	objects := []ObjectInfo{}
	var token *string

	for {
		out, err := s.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
			Bucket:            aws.String(bucket),
			ContinuationToken: token,
		})
		if err != nil {
			return nil, fmt.Errorf("blobstore: list objects failed: %w", err)
		}

		for _, obj := range out.Contents {
			info := ObjectInfo{
				Key:     aws.ToString(obj.Key),
				Tamanho: aws.ToInt64(obj.Size),
				ETag:    aws.ToString(obj.ETag),
			}
			if obj.LastModified != nil {
				info.UltimaModificacao = *obj.LastModified
			}
			objects = append(objects, info)
		}

		if !aws.ToBool(out.IsTruncated) {
			return objects, nil
		}
		token = out.NextContinuationToken
	}
}

// Upload grava o conteúdo no bucket sob a key informada. Key repetida
// sobrescreve o objeto existente silenciosamente, como no S3.
func (s *Store) Upload(ctx context.Context, bucket, key, contentType string, body []byte) (*UploadInfo, error) {
	out, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return nil, fmt.Errorf("blobstore: put object failed: %w", err)
	}

	return &UploadInfo{
		Bucket:  bucket,
		Key:     key,
		Tamanho: int64(len(body)),
		ETag:    aws.ToString(out.ETag),
	}, nil
}

// Remove apaga o objeto. A operação é idempotente: o S3 não distingue
// remoção de objeto inexistente.
func (s *Store) Remove(ctx context.Context, bucket, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("blobstore: delete object failed: %w", err)
	}
	return nil
}
