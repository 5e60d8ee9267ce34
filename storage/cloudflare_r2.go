package storage

import (
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
)

var ErrInvalidR2Config = errors.New("invalid Cloudflare R2 configuration: all fields are required")

type CloudflareR2UploaderConfig struct {
	AccountID       string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	PublicBaseURL   string
}

type cloudflareR2Uploader struct {
	s3Client      *s3.Client
	bucketName    string
	publicBaseURL *url.URL
}

func NewCloudflareR2Uploader(ctx context.Context, cfg CloudflareR2UploaderConfig) (FileUploader, error) {
	if cfg.AccountID == "" || cfg.AccessKeyID == "" || cfg.SecretAccessKey == "" || cfg.BucketName == "" || cfg.PublicBaseURL == "" {
		return nil, ErrInvalidR2Config
	}
	baseURL, err := parseBaseURL(cfg.PublicBaseURL)
	if err != nil {
		return nil, err
	}

	sdkCfg, err := config.LoadDefaultConfig(ctx,
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")),
		config.WithRegion("auto"), // R2 подписывает запросы регионом "auto"
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS SDK config for R2: %w", err)
	}

	s3Client := s3.NewFromConfig(sdkCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.AccountID))
	})

	return &cloudflareR2Uploader{
		s3Client:      s3Client,
		bucketName:    cfg.BucketName,
		publicBaseURL: baseURL,
	}, nil
}

func (u *cloudflareR2Uploader) Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*UploadResult, error) {
	result, err := u.s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(u.bucketName),
		Key:          aws.String(key),
		Body:         reader,
		ContentType:  aws.String(contentType),
		CacheControl: aws.String("public, max-age=60"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload object to R2 (key: %s): %w", key, err)
	}

	etag := ""
	if result.ETag != nil {
		// ETag от S3-совместимых API приходит в двойных кавычках.
		etag = strings.Trim(*result.ETag, "\"")
	}

	return &UploadResult{
		Key:      key,
		Location: u.GetPublicURL(key),
		ETag:     etag,
	}, nil
}

func (u *cloudflareR2Uploader) Delete(ctx context.Context, key string) error {
	_, err := u.s3Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(u.bucketName),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete object from R2 (key: %s): %w", key, err)
	}
	return nil
}

func (u *cloudflareR2Uploader) GetPublicURL(key string) string {
	return publicURL(u.publicBaseURL, key)
}

func parseBaseURL(raw string) (*url.URL, error) {
	baseURL, err := url.Parse(raw)
	if err != nil || baseURL.Scheme == "" || baseURL.Host == "" {
		return nil, fmt.Errorf("invalid public base URL %q", raw)
	}
	if !strings.HasSuffix(baseURL.Path, "/") {
		baseURL.Path += "/"
	}
	return baseURL, nil
}

// publicURL resolves the object key against the bucket's public base URL.
func publicURL(baseURL *url.URL, key string) string {
	if baseURL == nil || key == "" {
		return ""
	}
	ref, err := url.Parse(strings.TrimPrefix(key, "/"))
	if err != nil {
		return ""
	}
	return baseURL.ResolveReference(ref).String()
}
