// File: internal/infra/media/s3_store.go
package media

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/oklog/ulid/v2"

	appconfig "rental-marketplace/internal/config"
	"rental-marketplace/internal/domain/ports/adapter"
)

var _ adapter.MediaStore = (*S3Store)(nil)

// S3Store keeps property media in an S3 (or S3-compatible) bucket. Object
// keys double as the public ids recorded on the image rows.
type S3Store struct {
	client  *s3.Client
	bucket  string
	prefix  string
	baseURL string
}

func NewS3Store(ctx context.Context, cfg *appconfig.MediaConfig) (*S3Store, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.S3.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.S3.AccessKeyID,
			cfg.S3.SecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3.Endpoint)
			// S3-compatible stores generally require path-style URLs.
			o.UsePathStyle = true
		}
	})

	store := &S3Store{
		client:  client,
		bucket:  cfg.S3.Bucket,
		prefix:  strings.Trim(cfg.S3.KeyPrefix, "/"),
		baseURL: strings.TrimRight(cfg.S3.PublicBaseURL, "/"),
	}
	if _, err := client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(cfg.S3.Bucket)}); err != nil {
		return nil, fmt.Errorf("bucket %s not accessible: %w", cfg.S3.Bucket, err)
	}
	return store, nil
}

func (s *S3Store) Upload(ctx context.Context, r io.Reader, filename, contentType string) (*adapter.UploadResult, error) {
	// Buffer the object so its size is known and the put can be retried.
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}

	ext := strings.ToLower(path.Ext(filename))
	key := ulid.MustNew(ulid.Timestamp(time.Now()), ulid.DefaultEntropy()).String() + ext
	if s.prefix != "" {
		key = s.prefix + "/" + key
	}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(buf.Bytes()),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(buf.Len())),
	})
	if err != nil {
		return nil, fmt.Errorf("put object %s: %w", key, err)
	}

	return &adapter.UploadResult{
		URL:      s.publicURL(key),
		PublicID: key,
		Format:   strings.TrimPrefix(ext, "."),
		Bytes:    int64(buf.Len()),
	}, nil
}

func (s *S3Store) Delete(ctx context.Context, publicID string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(publicID),
	})
	if err != nil {
		return fmt.Errorf("delete object %s: %w", publicID, err)
	}
	return nil
}

func (s *S3Store) publicURL(key string) string {
	if s.baseURL != "" {
		return s.baseURL + "/" + key
	}
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.bucket, key)
}
