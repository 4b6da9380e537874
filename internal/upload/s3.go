package upload

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/geosite/cms/internal/apperr"
	"github.com/geosite/cms/internal/config"
)

// S3Backend stores uploads in an S3-compatible bucket (Cloudflare R2).
// Files are served from the bucket's public URL rather than /uploads.
type S3Backend struct {
	client    *s3.Client
	bucket    string
	publicURL string
}

func NewS3Backend(cfg *config.Config) (*S3Backend, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion("auto"),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.R2AccessKey, cfg.R2SecretKey, "",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load R2 credentials: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.R2Endpoint)
		o.UsePathStyle = true
	})

	return &S3Backend{
		client:    client,
		bucket:    cfg.R2Bucket,
		publicURL: strings.TrimSuffix(cfg.R2PublicURL, "/"),
	}, nil
}

func (b *S3Backend) Save(ctx context.Context, filename string, data []byte) error {
	contentType := mime.TypeByExtension(filepath.Ext(filename))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err := b.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(b.bucket),
		Key:         aws.String(filename),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("failed to upload to bucket: %w", err)
	}
	return nil
}

func (b *S3Backend) Delete(ctx context.Context, filename string) error {
	_, err := b.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(filename),
	})
	if err != nil {
		var notFound *types.NotFound
		if errors.As(err, &notFound) {
			return apperr.NotFound("File not found")
		}
		return apperr.Internal(err)
	}

	_, err = b.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(filename),
	})
	if err != nil {
		return apperr.Internal(err)
	}
	return nil
}

func (b *S3Backend) PublicURL(filename, requestBase string) string {
	if b.publicURL != "" {
		return b.publicURL + "/" + filename
	}
	return fmt.Sprintf("%s/%s/%s", strings.TrimSuffix(requestBase, "/"), b.bucket, filename)
}
