package aws

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/diillson/aws-report-lambdas/internal/domain/repository"
)

type storageClients interface {
	S3(ctx context.Context) (S3API, error)
}

// S3StorageImpl implementa o ObjectStore sobre o S3.
type S3StorageImpl struct {
	clients storageClients
}

// NewS3Storage cria uma nova implementação do ObjectStore sobre o S3.
func NewS3Storage(p *ClientProvider) repository.ObjectStore {
	return &S3StorageImpl{clients: p}
}

func (s *S3StorageImpl) PutObject(ctx context.Context, bucket, key string, body []byte, contentType string) (string, error) {
	client, err := s.clients.S3(ctx)
	if err != nil {
		return "", err
	}

	input := &s3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(body),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := client.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("error uploading s3://%s/%s: %s: %w", bucket, key, describeError(err), err)
	}
	return fmt.Sprintf("s3://%s/%s", bucket, key), nil
}

func (s *S3StorageImpl) GetObject(ctx context.Context, bucket, key string) ([]byte, error) {
	client, err := s.clients.S3(ctx)
	if err != nil {
		return nil, err
	}

	out, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("error downloading s3://%s/%s: %s: %w", bucket, key, describeError(err), err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading s3://%s/%s: %w", bucket, key, err)
	}
	return data, nil
}
