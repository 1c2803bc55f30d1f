// Package storage downloads resumes kept in S3-compatible object storage.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"
)

const (
	Scheme        = "s3"
	defaultRegion = "auto"
)

// Location addresses one object.
type Location struct {
	Bucket string
	Key    string
}

func (l Location) String() string {
	return fmt.Sprintf("%s://%s/%s", Scheme, l.Bucket, l.Key)
}

// IsURL reports whether raw uses the s3:// scheme.
func IsURL(raw string) bool {
	return strings.HasPrefix(strings.TrimSpace(raw), Scheme+"://")
}

// ParseURL splits an s3://bucket/key URL.
func ParseURL(raw string) (Location, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return Location{}, fmt.Errorf("parse object url: %w", err)
	}
	if u.Scheme != Scheme {
		return Location{}, fmt.Errorf("unsupported object url scheme %q", u.Scheme)
	}

	key := strings.TrimPrefix(u.Path, "/")
	if u.Host == "" || key == "" {
		return Location{}, fmt.Errorf("object url %q must look like s3://bucket/key", raw)
	}

	return Location{Bucket: u.Host, Key: key}, nil
}

// Config holds the connection settings. Empty credentials fall back to the
// default AWS credential chain.
type Config struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
}

type objectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// Fetcher downloads objects.
type Fetcher struct {
	client objectGetter
	logger *zap.Logger
}

func NewFetcher(ctx context.Context, cfg Config, logger *zap.Logger) (*Fetcher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	region := strings.TrimSpace(cfg.Region)
	if region == "" {
		region = defaultRegion
	}

	opts := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if cfg.AccessKey != "" || cfg.SecretKey != "" {
		if cfg.AccessKey == "" || cfg.SecretKey == "" {
			return nil, errors.New("both s3 access key and secret key are required")
		}
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsConfig, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	endpoint := strings.TrimSpace(cfg.Endpoint)
	client := s3.NewFromConfig(awsConfig, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})

	return &Fetcher{client: client, logger: logger}, nil
}

// Fetch returns the full object body.
func (f *Fetcher) Fetch(ctx context.Context, loc Location) ([]byte, error) {
	out, err := f.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(loc.Bucket),
		Key:    aws.String(loc.Key),
	})
	if err != nil {
		return nil, fmt.Errorf("get object %s: %w", loc, err)
	}
	defer out.Body.Close()

	buf := new(bytes.Buffer)
	if _, err := io.Copy(buf, out.Body); err != nil {
		return nil, fmt.Errorf("read object %s: %w", loc, err)
	}

	f.logger.Debug("object downloaded",
		zap.String("object", loc.String()),
		zap.Int("bytes", buf.Len()),
	)

	return buf.Bytes(), nil
}
