package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"

	"talentflow/internal/config"
	"talentflow/internal/logging"
)

// Spaces keeps blobs in a private DigitalOcean Spaces (S3 compatible) bucket.
type Spaces struct {
	client     s3iface.S3API
	uploader   *s3manager.Uploader
	bucketName string
	prefix     string
	logger     logging.Logger
}

// NewSpaces creates a Spaces client from the storage config section.
func NewSpaces(cfg *config.Config, logger logging.Logger) (*Spaces, error) {
	sc := cfg.Storage.Spaces
	if sc.AccessKeyID == "" || sc.AccessKeySecret == "" {
		return nil, fmt.Errorf("spaces credentials are required")
	}
	if sc.BucketName == "" {
		return nil, fmt.Errorf("spaces bucket name is required")
	}

	endpoint := sc.Endpoint
	if endpoint == "" {
		endpoint = fmt.Sprintf("https://%s.digitaloceanspaces.com", sc.Region)
	}

	sess, err := session.NewSession(&aws.Config{
		Credentials:      credentials.NewStaticCredentials(sc.AccessKeyID, sc.AccessKeySecret, ""),
		Endpoint:         aws.String(endpoint),
		Region:           aws.String(sc.Region),
		S3ForcePathStyle: aws.Bool(false),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create spaces session: %w", err)
	}

	logger.Info("Spaces storage initialized", map[string]interface{}{
		"endpoint":    endpoint,
		"bucket_name": sc.BucketName,
		"region":      sc.Region,
	})

	client := s3.New(sess)
	return newSpaces(client, s3manager.NewUploaderWithClient(client), sc.BucketName, sc.Prefix, logger), nil
}

func newSpaces(client s3iface.S3API, uploader *s3manager.Uploader, bucket, prefix string, logger logging.Logger) *Spaces {
	return &Spaces{
		client:     client,
		uploader:   uploader,
		bucketName: bucket,
		prefix:     strings.Trim(prefix, "/"),
		logger:     logger,
	}
}

func (s *Spaces) Name() string { return "spaces" }

func (s *Spaces) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	objectKey := s.objectKey(key)
	_, err := s.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket:      aws.String(s.bucketName),
		Key:         aws.String(objectKey),
		Body:        r,
		ContentType: aws.String(contentType),
		ACL:         aws.String(s3.ObjectCannedACLPrivate),
	})
	if err != nil {
		s.logger.Error("Failed to upload document to Spaces", map[string]interface{}{
			"object_key": objectKey,
			"error":      err.Error(),
		})
		return fmt.Errorf("failed to upload document: %w", err)
	}

	s.logger.Info("Document uploaded to Spaces", map[string]interface{}{
		"object_key": objectKey,
		"size_bytes": size,
	})
	return nil
}

func (s *Spaces) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	out, err := s.client.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(s.objectKey(key)),
	})
	if err != nil {
		var aerr awserr.Error
		if errors.As(err, &aerr) && aerr.Code() == s3.ErrCodeNoSuchKey {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
		}
		return nil, fmt.Errorf("failed to fetch document: %w", err)
	}
	return out.Body, nil
}

func (s *Spaces) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(s.objectKey(key)),
	})
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	return nil
}

// Health checks that the bucket is reachable with the configured credentials.
func (s *Spaces) Health(ctx context.Context) error {
	_, err := s.client.HeadBucketWithContext(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(s.bucketName),
	})
	if err != nil {
		s.logger.Error("Spaces health check failed", map[string]interface{}{
			"bucket_name": s.bucketName,
			"error":       err.Error(),
		})
	}
	return err
}

func (s *Spaces) objectKey(key string) string {
	if s.prefix == "" {
		return key
	}
	return path.Join(s.prefix, key)
}
