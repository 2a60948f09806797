package storage

import (
	"context"
	"fmt"
	"io"

	"corkboard-listing-service/internal/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rs/zerolog"
)

// MinioStore implements the object store interface on a MinIO (or any
// S3-compatible) backend. The service never sees bytes again after Put;
// only the object key is persisted.
type MinioStore struct {
	client *minio.Client
	bucket string
	logger zerolog.Logger
}

type MinioStoreParams struct {
	Config *config.Config
	Logger zerolog.Logger
}

// NewMinioStore creates the client and makes sure the bucket exists
func NewMinioStore(ctx context.Context, params MinioStoreParams) (*MinioStore, error) {
	cfg := params.Config.Storage

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize object storage client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return &MinioStore{
		client: client,
		bucket: cfg.Bucket,
		logger: params.Logger.With().Str("component", "minio_store").Logger(),
	}, nil
}

// Put stores size bytes from r under key
func (s *MinioStore) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	_, err := s.client.PutObject(ctx, s.bucket, key, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("failed to store object %s: %w", key, err)
	}

	s.logger.Debug().Str("object_key", key).Int64("size", size).Msg("Object stored")
	return nil
}

// Remove deletes the object stored under key
func (s *MinioStore) Remove(ctx context.Context, key string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to remove object %s: %w", key, err)
	}
	return nil
}
