// Package blobstore uploads report images to Google Cloud Storage and
// returns durable public URLs
package blobstore

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// GCSStore implements image upload backed by a Google Cloud Storage bucket
type GCSStore struct {
	client *storage.Client
	bucket string
	folder string
	logger *zap.Logger
}

// NewGCSStore creates a blob store and verifies the bucket is reachable
func NewGCSStore(ctx context.Context, bucket, folder string, logger *zap.Logger) (*GCSStore, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	if _, err := client.Bucket(bucket).Attrs(ctx); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to access bucket %s: %w", bucket, err)
	}

	return &GCSStore{
		client: client,
		bucket: bucket,
		folder: folder,
		logger: logger,
	}, nil
}

// Close releases the underlying storage client
func (s *GCSStore) Close() error {
	return s.client.Close()
}

// extensionFor maps an image content type to a file extension
func extensionFor(contentType string) string {
	switch strings.ToLower(contentType) {
	case "image/png":
		return "png"
	case "image/jpeg", "image/jpg":
		return "jpg"
	case "image/gif":
		return "gif"
	case "image/webp":
		return "webp"
	default:
		return "jpg"
	}
}

// Upload stores image bytes under a fresh object name and returns the public
// URL. A failed copy or close leaves no usable object behind, so the caller
// can safely abort before any database write.
func (s *GCSStore) Upload(ctx context.Context, reader io.Reader, contentType string) (string, error) {
	if contentType == "" {
		contentType = "image/jpeg"
	}

	// UUID plus nano timestamp keeps object names collision free
	objectName := fmt.Sprintf("%s/%s_%d.%s", s.folder, uuid.NewString(), time.Now().UnixNano(), extensionFor(contentType))

	writer := s.client.Bucket(s.bucket).Object(objectName).NewWriter(ctx)
	writer.ContentType = contentType

	if _, err := io.Copy(writer, reader); err != nil {
		writer.Close()
		return "", fmt.Errorf("failed to copy image to bucket: %w", err)
	}

	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize upload: %w", err)
	}

	publicURL := fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.bucket, objectName)
	s.logger.Info("image uploaded", zap.String("object", objectName))
	return publicURL, nil
}
