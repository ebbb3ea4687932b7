// Package storage provides the object store for uploaded media. Keys stored
// on a secret are opaque: nothing in this package is reachable from the
// anonymous read path except through the disclosure service, which resolves a
// key to a time-limited URL only after a secret is unlocked.
package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog/log"

	"github.com/lifereplay/vault-backend/internal/config"
)

// ObjectStore is the narrow contract the media and disclosure services need:
// durable puts keyed by an opaque path, and resolution of a key to a
// fetchable URL. Implementations must be safe for concurrent use.
type ObjectStore interface {
	// Put stores the object under key, overwriting any previous content.
	Put(ctx context.Context, key string, body io.Reader, contentType string) error

	// PresignedURL returns a time-limited GET URL for key. The URL expires
	// after the store's configured presign window, so a leaked URL goes
	// stale instead of becoming a permanent public address.
	PresignedURL(ctx context.Context, key string) (string, error)
}

// S3Store implements ObjectStore for S3-compatible storage.
// Works with AWS S3, MinIO, DigitalOcean Spaces, Cloudflare R2, etc.
type S3Store struct {
	client        *s3.Client
	presignClient *s3.PresignClient
	bucket        string
	presignExpiry time.Duration
}

// NewS3Store creates an S3-compatible object store from app config and
// ensures the vault bucket exists. A custom endpoint switches the client to
// path-style addressing (required for MinIO and some compatible services).
func NewS3Store(ctx context.Context, cfg config.S3Config) (*S3Store, error) {
	var opts []func(*awsconfig.LoadOptions) error
	opts = append(opts, awsconfig.WithRegion(cfg.Region))

	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	var client *s3.Client
	if cfg.Endpoint != "" {
		endpoint := strings.TrimSuffix(cfg.Endpoint, "/")
		client = s3.NewFromConfig(awsCfg, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		})
	} else {
		client = s3.NewFromConfig(awsCfg)
	}

	st := &S3Store{
		client:        client,
		presignClient: s3.NewPresignClient(client),
		bucket:        cfg.Bucket,
		presignExpiry: cfg.PresignExpiry,
	}

	if err := st.ensureBucket(ctx); err != nil {
		return nil, err
	}
	return st, nil
}

// ensureBucket checks if the bucket exists, creating it if not.
func (s *S3Store) ensureBucket(ctx context.Context) error {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(s.bucket),
	})
	if err == nil {
		return nil
	}

	_, err = s.client.CreateBucket(ctx, &s3.CreateBucketInput{
		Bucket: aws.String(s.bucket),
	})
	if err != nil {
		return fmt.Errorf("bucket %q does not exist and could not be created: %w", s.bucket, err)
	}
	log.Info().Str("bucket", s.bucket).Msg("created object store bucket")
	return nil
}

// Put stores an object in the vault bucket.
func (s *S3Store) Put(ctx context.Context, key string, body io.Reader, contentType string) error {
	in := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   body,
	}
	if contentType != "" {
		in.ContentType = aws.String(contentType)
	}
	if _, err := s.client.PutObject(ctx, in); err != nil {
		return fmt.Errorf("put object %q: %w", key, err)
	}
	return nil
}

// PresignedURL generates a time-limited GET URL for key.
func (s *S3Store) PresignedURL(ctx context.Context, key string) (string, error) {
	req, err := s.presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, func(o *s3.PresignOptions) {
		o.Expires = s.presignExpiry
	})
	if err != nil {
		return "", fmt.Errorf("presign %q: %w", key, err)
	}
	return req.URL, nil
}
