package storage

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/pedeai/pedeai-backend/internal/config"
)

const uploadTimeout = 30 * time.Second

// S3Client is the subset of the S3 API the uploader needs. Satisfied by
// *s3.Client; tests substitute a fake.
type S3Client interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// Uploader stores base64-encoded images in an S3-compatible bucket and hands
// back public URLs.
type Uploader struct {
	client  S3Client
	bucket  string
	baseURL string
}

type UploadResult struct {
	URL string
	Key string
}

var extensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

func NewUploader(ctx context.Context, cfg *config.Config) (*Uploader, error) {
	if cfg.S3Bucket == "" {
		return nil, fmt.Errorf("S3_BUCKET is required")
	}

	awsOptions := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.S3Region),
	}
	if cfg.S3AccessKey != "" && cfg.S3SecretKey != "" {
		awsOptions = append(awsOptions,
			awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
				cfg.S3AccessKey, cfg.S3SecretKey, "",
			)),
		)
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsOptions...)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
			o.UsePathStyle = true
		}
	})

	baseURL := cfg.S3BaseURL
	if baseURL == "" {
		if cfg.S3Endpoint != "" {
			baseURL = fmt.Sprintf("%s/%s", strings.TrimSuffix(cfg.S3Endpoint, "/"), cfg.S3Bucket)
		} else {
			baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.S3Bucket, cfg.S3Region)
		}
	}

	return &Uploader{
		client:  client,
		bucket:  cfg.S3Bucket,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}, nil
}

// NewUploaderWithClient wires a pre-built client, used by tests.
func NewUploaderWithClient(client S3Client, bucket, baseURL string) *Uploader {
	return &Uploader{client: client, bucket: bucket, baseURL: strings.TrimSuffix(baseURL, "/")}
}

// Upload decodes a data URI (or bare base64 payload, assumed jpeg) and writes
// it under folder/ with a random key.
func (u *Uploader) Upload(ctx context.Context, dataURI, folder string) (*UploadResult, error) {
	ctx, cancel := context.WithTimeout(ctx, uploadTimeout)
	defer cancel()

	mimeType, payload, err := parseDataURI(dataURI)
	if err != nil {
		return nil, err
	}

	if folder == "" {
		folder = "uploads"
	}
	folder = strings.Trim(folder, "/")
	if strings.Contains(folder, "..") {
		return nil, fmt.Errorf("invalid folder: %s", folder)
	}

	key := folder + "/" + uuid.New().String() + extensions[mimeType]

	_, err = u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(payload),
		ContentType: aws.String(mimeType),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload object: %w", err)
	}

	return &UploadResult{
		URL: u.baseURL + "/" + key,
		Key: key,
	}, nil
}

// Delete removes an object. Returns false when the delete fails; missing
// objects are treated as deleted.
func (u *Uploader) Delete(ctx context.Context, key string) bool {
	key = strings.TrimPrefix(key, "/")
	if key == "" || strings.Contains(key, "..") {
		return false
	}

	_, err := u.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(u.bucket),
		Key:    aws.String(key),
	})
	return err == nil
}

func parseDataURI(dataURI string) (mimeType string, payload []byte, err error) {
	mimeType = "image/jpeg"
	raw := dataURI

	if strings.HasPrefix(dataURI, "data:") {
		headerEnd := strings.Index(dataURI, ",")
		if headerEnd < 0 {
			return "", nil, fmt.Errorf("malformed data uri")
		}
		header := dataURI[len("data:"):headerEnd]
		raw = dataURI[headerEnd+1:]

		if mt, _, found := strings.Cut(header, ";"); found || mt != "" {
			mimeType = mt
		}
	}

	if _, ok := extensions[mimeType]; !ok {
		return "", nil, fmt.Errorf("unsupported content type: %s", mimeType)
	}

	payload, err = base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return "", nil, fmt.Errorf("invalid base64 payload: %w", err)
	}
	if len(payload) == 0 {
		return "", nil, fmt.Errorf("empty file")
	}

	return mimeType, payload, nil
}
