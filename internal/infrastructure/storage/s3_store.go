package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/FluentFlier/aegis/internal/domain/port"
)

var _ port.ArtifactStore = (*S3Store)(nil)

// S3Store implements port.ArtifactStore on an S3 bucket.
type S3Store struct {
	client *s3.Client
	bucket string
	prefix string
}

// S3Config holds connection settings for the S3 artifact store.
type S3Config struct {
	Bucket   string
	Region   string
	Endpoint string // Optional custom endpoint (for MinIO, LocalStack, etc.)
	Prefix   string // Optional key prefix
}

// NewS3Store creates an S3-backed artifact store.
func NewS3Store(ctx context.Context, cfg S3Config) (*S3Store, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	clientOpts := func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true // Required for MinIO/LocalStack
		}
	}

	return &S3Store{
		client: s3.NewFromConfig(awsCfg, clientOpts),
		bucket: cfg.Bucket,
		prefix: cfg.Prefix,
	}, nil
}

// Put uploads the blob under the given reference.
func (s *S3Store) Put(ctx context.Context, ref string, data []byte) error {
	if err := validateRef(ref); err != nil {
		return err
	}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.prefix + ref),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/octet-stream"),
	})
	if err != nil {
		return fmt.Errorf("s3 put failed for %s: %w", ref, err)
	}

	return nil
}

// Get downloads the blob stored under the given reference.
func (s *S3Store) Get(ctx context.Context, ref string) ([]byte, error) {
	if err := validateRef(ref); err != nil {
		return nil, err
	}

	result, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.prefix + ref),
	})
	if err != nil {
		return nil, fmt.Errorf("s3 get failed for %s: %w", ref, err)
	}
	defer func() { _ = result.Body.Close() }()

	return io.ReadAll(result.Body)
}
