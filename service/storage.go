package service

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"go.morpionai.com/account/config"
	"go.morpionai.com/account/core"
)

var _ core.StorageService = (*StorageServiceDefault)(nil)

type StorageServiceDefault struct {
	config config.Manager
	logger *core.Logger
}

func NewStorageService(cm config.Manager, logger *core.Logger) *StorageServiceDefault {
	return &StorageServiceDefault{
		config: cm,
		logger: logger.Named("storage"),
	}
}

func (s *StorageServiceDefault) S3Client(ctx context.Context) (*s3.Client, error) {
	s3Cfg := s.config.Config().Core.Storage.S3

	customResolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
		if service == s3.ServiceID && s3Cfg.Endpoint != "" {
			return aws.Endpoint{
				URL:           s3Cfg.Endpoint,
				SigningRegion: s3Cfg.Region,
			}, nil
		}
		return aws.Endpoint{}, &aws.EndpointNotFoundError{}
	})
	cfg, err := awsConfig.LoadDefaultConfig(ctx,
		awsConfig.WithRegion(s3Cfg.Region),
		awsConfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s3Cfg.AccessKey,
			s3Cfg.SecretKey,
			"",
		)),
		awsConfig.WithEndpointResolverWithOptions(customResolver),
	)
	if err != nil {
		return nil, err
	}

	return s3.NewFromConfig(cfg), nil
}

func (s *StorageServiceDefault) UploadProfileImage(ctx context.Context, userID uint, body io.Reader, contentType string) (string, error) {
	s3Cfg := s.config.Config().Core.Storage.S3
	if s3Cfg.Bucket == "" {
		return "", core.NewAccountError(core.ErrKeyStorageOperationFailed, fmt.Errorf("no storage bucket configured"))
	}

	client, err := s.S3Client(ctx)
	if err != nil {
		return "", core.NewAccountError(core.ErrKeyStorageOperationFailed, err)
	}

	key := fmt.Sprintf("profile-images/%d/%s%s", userID, uuid.NewString(), extensionForContentType(contentType))

	_, err = client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s3Cfg.Bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", core.NewAccountError(core.ErrKeyStorageOperationFailed, err)
	}

	return s.publicURL(key), nil
}

func (s *StorageServiceDefault) DeleteObject(ctx context.Context, url string) error {
	s3Cfg := s.config.Config().Core.Storage.S3
	if s3Cfg.Bucket == "" {
		return core.NewAccountError(core.ErrKeyStorageOperationFailed, fmt.Errorf("no storage bucket configured"))
	}

	key := s.keyForURL(url)
	if key == "" {
		return nil
	}

	client, err := s.S3Client(ctx)
	if err != nil {
		return core.NewAccountError(core.ErrKeyStorageOperationFailed, err)
	}

	_, err = client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s3Cfg.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return core.NewAccountError(core.ErrKeyStorageOperationFailed, err)
	}

	return nil
}

func (s *StorageServiceDefault) publicURL(key string) string {
	s3Cfg := s.config.Config().Core.Storage.S3
	base := strings.TrimSuffix(s3Cfg.PublicBaseURL, "/")
	if base == "" {
		base = strings.TrimSuffix(s3Cfg.Endpoint, "/") + "/" + s3Cfg.Bucket
	}
	return base + "/" + key
}

// keyForURL extracts the object key from a URL we minted earlier. URLs from
// other origins yield an empty key and are ignored.
func (s *StorageServiceDefault) keyForURL(url string) string {
	s3Cfg := s.config.Config().Core.Storage.S3

	for _, base := range []string{s3Cfg.PublicBaseURL, strings.TrimSuffix(s3Cfg.Endpoint, "/") + "/" + s3Cfg.Bucket} {
		base = strings.TrimSuffix(base, "/")
		if base != "" && strings.HasPrefix(url, base+"/") {
			return strings.TrimPrefix(url, base+"/")
		}
	}

	return ""
}

func extensionForContentType(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/jpeg":
		return ".jpg"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ""
	}
}
