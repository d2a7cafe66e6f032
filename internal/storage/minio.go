// Package storage holds the object store used for user avatars.
package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/groupdesk/backend/internal/config"
	"github.com/groupdesk/backend/pkg/logger"
)

// AvatarStore wraps a MinIO bucket holding profile images. It is optional:
// when no endpoint is configured the server runs without avatar uploads.
type AvatarStore struct {
	client         *minio.Client
	bucket         string
	publicEndpoint string
	useSSL         bool
}

func NewAvatarStore(cfg config.MinIOConfig) (*AvatarStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, err
	}

	return &AvatarStore{
		client:         client,
		bucket:         cfg.Bucket,
		publicEndpoint: cfg.PublicEndpoint,
		useSSL:         cfg.UseSSL,
	}, nil
}

func (s *AvatarStore) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{})
}

func (s *AvatarStore) Upload(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) error {
	_, err := s.client.PutObject(ctx, s.bucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		logger.Error("avatar_upload_failed", err, map[string]interface{}{
			"object_name": objectName,
			"bucket":      s.bucket,
		})
		return err
	}

	logger.Info("avatar_upload_success", map[string]interface{}{
		"object_name": objectName,
		"size":        size,
		"bucket":      s.bucket,
	})
	return nil
}

// PublicURL builds the browser-reachable URL for an uploaded avatar.
func (s *AvatarStore) PublicURL(objectName string) string {
	scheme := "http"
	if s.useSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.publicEndpoint, s.bucket, objectName)
}
