// Package s3 stores shared reports in Amazon S3 and issues presigned links.
//
// Credentials come from the default AWS chain (environment, shared config,
// instance role). Objects are private; readers get a time-limited GET URL.
package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/custodia-labs/numen-cli/internal/core/ports/driven"
	"github.com/custodia-labs/numen-cli/internal/logger"
)

// Ensure Store implements the interface.
var _ driven.ObjectStore = (*Store)(nil)

// DefaultRegion is used when neither the config nor the environment sets one.
const DefaultRegion = "us-east-1"

// putAPI is the subset of the S3 client used for uploads.
type putAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// presignAPI is the subset of the presign client used for links.
type presignAPI interface {
	PresignGetObject(
		ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions),
	) (*v4.PresignedHTTPRequest, error)
}

// Config holds configuration for the S3 store.
type Config struct {
	// Bucket is the target bucket (required).
	Bucket string

	// Region overrides the region from the AWS config chain.
	Region string

	// Prefix is prepended to every key, e.g. "reports/".
	Prefix string
}

// Store uploads objects to a single bucket.
type Store struct {
	client    putAPI
	presigner presignAPI
	bucket    string
	prefix    string
}

// NewStore loads the default AWS config and creates an S3 store.
func NewStore(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("s3: bucket is required")
	}

	awsCfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("s3: load AWS config: %w", err)
	}
	if cfg.Region != "" {
		awsCfg.Region = cfg.Region
	} else if awsCfg.Region == "" {
		awsCfg.Region = DefaultRegion
	}

	return NewFromConfig(awsCfg, cfg), nil
}

// NewFromConfig creates a store from an explicit AWS config.
func NewFromConfig(awsCfg aws.Config, cfg Config) *Store {
	client := s3.NewFromConfig(awsCfg)
	return NewWithClients(client, s3.NewPresignClient(client), cfg)
}

// NewWithClients creates a store around existing clients.
// This is primarily used for testing.
func NewWithClients(client putAPI, presigner presignAPI, cfg Config) *Store {
	return &Store{
		client:    client,
		presigner: presigner,
		bucket:    cfg.Bucket,
		prefix:    cfg.Prefix,
	}
}

// Put uploads body under the prefixed key.
func (s *Store) Put(ctx context.Context, key, contentType string, body []byte) error {
	fullKey := s.objectKey(key)
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(fullKey),
		Body:          bytes.NewReader(body),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(body))),
	})
	if err != nil {
		return fmt.Errorf("s3: put %s: %w", fullKey, err)
	}
	logger.Debug("s3: uploaded s3://%s/%s (%d bytes)", s.bucket, fullKey, len(body))
	return nil
}

// PresignGet returns a GET URL for the prefixed key valid for ttl.
func (s *Store) PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		return "", fmt.Errorf("s3: link lifetime must be positive, got %s", ttl)
	}
	fullKey := s.objectKey(key)
	req, err := s.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(fullKey),
	}, s3.WithPresignExpires(ttl))
	if err != nil {
		return "", fmt.Errorf("s3: presign %s: %w", fullKey, err)
	}
	return req.URL, nil
}

func (s *Store) objectKey(key string) string {
	key = strings.TrimLeft(key, "/")
	if s.prefix == "" {
		return key
	}
	return strings.TrimRight(s.prefix, "/") + "/" + key
}
