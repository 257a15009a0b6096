package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/jannahweb/jannah-os-api/internal/application/billing"
	"github.com/jannahweb/jannah-os-api/pkg/config"
)

var _ billing.DocumentStorage = (*S3Storage)(nil)

// S3Storage archive les documents dans un bucket S3 (production).
type S3Storage struct {
	client *s3.Client
	bucket string
}

// NewS3Storage construit le client S3. Les credentials explicites priment ;
// sinon la chaîne par défaut de l'environnement est utilisée.
func NewS3Storage(cfg config.StorageConfig) (*S3Storage, error) {
	ctx := context.Background()

	var awsCfg aws.Config
	var err error
	if cfg.AWSAccessKey != "" && cfg.AWSSecretKey != "" {
		awsCfg, err = awsconfig.LoadDefaultConfig(ctx,
			awsconfig.WithRegion(cfg.S3Region),
			awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
				cfg.AWSAccessKey, cfg.AWSSecretKey, "",
			)),
		)
	} else {
		awsCfg, err = awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.S3Region))
	}
	if err != nil {
		return nil, fmt.Errorf("charger config AWS: %w", err)
	}
	if cfg.S3Bucket == "" {
		return nil, fmt.Errorf("bucket S3 non configuré")
	}

	return &S3Storage{
		client: s3.NewFromConfig(awsCfg),
		bucket: cfg.S3Bucket,
	}, nil
}

// Save pousse le document dans le bucket sous documents/<filename>.
func (s *S3Storage) Save(ctx context.Context, filename string, data []byte) (string, error) {
	key := "documents/" + filename
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/pdf"),
	})
	if err != nil {
		return "", fmt.Errorf("upload S3: %w", err)
	}
	return key, nil
}

// Load récupère le document depuis le bucket.
func (s *S3Storage) Load(ctx context.Context, filename string) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String("documents/" + filename),
	})
	if err != nil {
		return nil, fmt.Errorf("download S3: %w", err)
	}
	defer out.Body.Close()
	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("lire objet S3: %w", err)
	}
	return data, nil
}
