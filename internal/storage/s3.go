package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/samvad-hq/headline-harvester/internal/logger"
)

// ErrNotFound is returned by Get when the object does not exist.
var ErrNotFound = errors.New("object not found")

const (
	ContentTypeHTML = "text/html"
	ContentTypeCSV  = "text/csv"
)

// s3Client defines the minimal subset of the S3 client used by the store.
type s3Client interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Store reads and writes harvester objects in one bucket.
type S3Store struct {
	bucket string
	client s3Client
	log    logger.Logger
}

// NewS3Store builds a store for bucket using an already loaded AWS config.
func NewS3Store(cfg aws.Config, bucket string, log logger.Logger) (*S3Store, error) {
	return newS3Store(s3.NewFromConfig(cfg), bucket, log)
}

func newS3Store(client s3Client, bucket string, log logger.Logger) (*S3Store, error) {
	bucket = strings.TrimSpace(bucket)
	if bucket == "" {
		return nil, errors.New("s3 bucket is empty")
	}
	return &S3Store{
		bucket: bucket,
		client: client,
		log:    logger.Ensure(log),
	}, nil
}

// Bucket returns the default bucket.
func (s *S3Store) Bucket() string { return s.bucket }

// Put uploads body under key in the default bucket.
func (s *S3Store) Put(ctx context.Context, key string, body []byte, contentType string) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		s.log.ErrorObj("s3 upload failed", "storage_put_error", map[string]any{
			"bucket": s.bucket,
			"key":    key,
			"error":  err.Error(),
		})
		return fmt.Errorf("put s3://%s/%s: %w", s.bucket, key, err)
	}

	s.log.InfoObj("object uploaded", "storage_put", map[string]any{
		"bucket":       s.bucket,
		"key":          key,
		"bytes":        len(body),
		"content_type": contentType,
	})
	return nil
}

// Get downloads key from bucket; an empty bucket selects the default one.
func (s *S3Store) Get(ctx context.Context, bucket, key string) ([]byte, error) {
	if strings.TrimSpace(bucket) == "" {
		bucket = s.bucket
	}

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var missing *types.NoSuchKey
		if errors.As(err, &missing) {
			return nil, fmt.Errorf("get s3://%s/%s: %w", bucket, key, ErrNotFound)
		}
		return nil, fmt.Errorf("get s3://%s/%s: %w", bucket, key, err)
	}
	defer out.Body.Close()

	body, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("read s3://%s/%s: %w", bucket, key, err)
	}
	return body, nil
}
