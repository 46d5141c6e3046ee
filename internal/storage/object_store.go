package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	appconfig "event-assistance-api/config"
	apperrors "event-assistance-api/pkg/app_errors"
	"event-assistance-api/pkg/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"
)

// ObjectStore persists proof artifacts and returns durable URLs for them.
type ObjectStore interface {
	// Upload writes data under folder with a timestamp-prefixed key and
	// returns the public URL. No retries; failures propagate to the caller.
	Upload(ctx context.Context, data []byte, fileName, folder string) (string, error)
	// Delete removes a previously uploaded object given its URL. Used as
	// compensation when a database insert fails after a successful upload.
	Delete(ctx context.Context, fileURL string) error
}

type S3ObjectStore struct {
	client *s3.Client
	bucket string
	region string
}

func NewS3ObjectStore(cfg *appconfig.S3Config) (*S3ObjectStore, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	return &S3ObjectStore{
		client: s3.NewFromConfig(awsCfg),
		bucket: cfg.Bucket,
		region: cfg.Region,
	}, nil
}

func (s *S3ObjectStore) Upload(ctx context.Context, data []byte, fileName, folder string) (string, error) {
	key := fmt.Sprintf("%s/%d-%s", folder, time.Now().UnixMilli(), fileName)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("image/png"),
	})
	if err != nil {
		logger.WithComponent("storage").Error("Failed to upload object",
			zap.String("key", key), zap.Error(err))
		return "", apperrors.ErrStorageUnavailable
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key), nil
}

func (s *S3ObjectStore) Delete(ctx context.Context, fileURL string) error {
	key := s.keyFromURL(fileURL)
	if key == "" {
		return apperrors.ErrInvalidInput
	}

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return apperrors.ErrStorageUnavailable
	}
	return nil
}

func (s *S3ObjectStore) keyFromURL(fileURL string) string {
	prefix := fmt.Sprintf("https://%s.s3.%s.amazonaws.com/", s.bucket, s.region)
	if !strings.HasPrefix(fileURL, prefix) {
		return ""
	}
	return strings.TrimPrefix(fileURL, prefix)
}
