// Package storage wraps the S3-compatible Cloudflare R2 bucket holding
// migrated site images.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	appcfg "github.com/filmmyrun/fmrapi/config"
)

// Immutable assets get a year-long cache.
const cacheControl = "public, max-age=31536000"

// R2 is a thin client over one bucket.
type R2 struct {
	client    *s3.Client
	bucket    string
	publicURL string
}

// New builds an R2 client from config. Credentials are validated up front.
func New(ctx context.Context, cfg *appcfg.R2Config) (*R2, error) {
	if err := cfg.ValidateR2(); err != nil {
		return nil, fmt.Errorf("r2 config: %w", err)
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion("auto"),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID, cfg.SecretAccessKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}

	endpoint := cfg.R2Endpoint()
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
	})

	return &R2{
		client:    client,
		bucket:    cfg.Bucket,
		publicURL: strings.TrimRight(cfg.PublicURL, "/"),
	}, nil
}

// Exists checks whether a key is already in the bucket.
func (r *R2) Exists(ctx context.Context, key string) (bool, error) {
	_, err := r.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var nf *types.NotFound
		if errors.As(err, &nf) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Upload puts an object and returns its public URL.
func (r *R2) Upload(ctx context.Context, key string, body []byte, contentType string) (string, error) {
	_, err := r.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(r.bucket),
		Key:          aws.String(key),
		Body:         bytes.NewReader(body),
		ContentType:  aws.String(contentType),
		CacheControl: aws.String(cacheControl),
	})
	if err != nil {
		return "", fmt.Errorf("uploading %s: %w", key, err)
	}
	return r.PublicURL(key), nil
}

// PublicURL maps a bucket key to its public address.
func (r *R2) PublicURL(key string) string {
	return r.publicURL + "/" + strings.TrimLeft(key, "/")
}
