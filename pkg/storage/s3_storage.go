package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"

	"invoice-processor-be/internal/entity"
	"invoice-processor-be/internal/repository/specification"
	"invoice-processor-be/internal/repository/unitofwork"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// S3Storage talks to any S3-compatible store. The client is built from the
// STORAGE integration endpoint and rebuilt whenever its settings change, so
// admins can repoint the bucket without a restart.
type S3Storage struct {
	uowFactory unitofwork.RepositoryFactory

	mu           sync.Mutex
	cachedClient *minio.Client
	cachedConfig *entity.StorageSettings
}

var _ ObjectStorage = &S3Storage{}

func NewS3Storage(uowFactory unitofwork.RepositoryFactory) *S3Storage {
	return &S3Storage{
		uowFactory: uowFactory,
	}
}

func (s *S3Storage) Put(ctx context.Context, key string, content []byte, contentType string) (string, error) {
	client, config, err := s.clientContext(ctx)
	if err != nil {
		return "", err
	}

	_, err = client.PutObject(ctx, config.Bucket, key, bytes.NewReader(content), int64(len(content)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("upload object %s: %w", key, err)
	}

	return key, nil
}

func (s *S3Storage) Get(ctx context.Context, key string) ([]byte, error) {
	client, config, err := s.clientContext(ctx)
	if err != nil {
		return nil, err
	}

	obj, err := client.GetObject(ctx, config.Bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("download object %s: %w", key, err)
	}
	defer obj.Close()

	content, err := io.ReadAll(obj)
	if err != nil {
		return nil, fmt.Errorf("read object %s: %w", key, err)
	}
	return content, nil
}

func (s *S3Storage) Delete(ctx context.Context, key string) error {
	client, config, err := s.clientContext(ctx)
	if err != nil {
		return err
	}

	if err := client.RemoveObject(ctx, config.Bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("delete object %s: %w", key, err)
	}
	return nil
}

func (s *S3Storage) clientContext(ctx context.Context) (*minio.Client, *entity.StorageSettings, error) {
	config, err := s.resolveConfig(ctx)
	if err != nil {
		return nil, nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cachedClient == nil || s.cachedConfig == nil || *s.cachedConfig != *config {
		client, err := minio.New(config.Endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(config.AccessKey, config.SecretKey, ""),
			Secure: config.UseSSL,
			Region: config.Region,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("build storage client: %w", err)
		}
		s.cachedClient = client
		s.cachedConfig = config
	}

	return s.cachedClient, s.cachedConfig, nil
}

func (s *S3Storage) resolveConfig(ctx context.Context) (*entity.StorageSettings, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	endpoint, err := uow.IntegrationEndpointRepository().FindOne(ctx,
		specification.ByEndpointType{Type: string(entity.EndpointTypeStorage)},
	)
	if err != nil {
		return nil, fmt.Errorf("load storage endpoint: %w", err)
	}
	if endpoint == nil {
		return nil, fmt.Errorf("no STORAGE integration endpoint configured")
	}
	return endpoint.StorageSettings()
}
