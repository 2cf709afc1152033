package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// ImageService resolves uploaded image payloads into stored blob URLs.
// Recipes arrive with a base64 data URI; the decoded bytes go to S3 when a
// bucket is configured, otherwise to a local media directory. The recipe
// row only ever stores the resulting URL.
type ImageService struct {
	bucket   string
	baseURL  string
	localDir string
	client   *s3.Client
}

func NewImageService(ctx context.Context, bucket, baseURL, localDir string) (*ImageService, error) {
	svc := &ImageService{
		bucket:   bucket,
		baseURL:  strings.TrimSuffix(baseURL, "/"),
		localDir: localDir,
	}
	if bucket != "" {
		cfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load AWS config: %w", err)
		}
		svc.client = s3.NewFromConfig(cfg)
	}
	return svc, nil
}

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// Resolve turns a request image payload into a stored URL. Plain URLs pass
// through unchanged; an empty payload stays empty.
func (s *ImageService) Resolve(ctx context.Context, payload string) (string, error) {
	if payload == "" || strings.HasPrefix(payload, "http://") || strings.HasPrefix(payload, "https://") {
		return payload, nil
	}

	mediaType, data, err := decodeDataURI(payload)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrValidation, err)
	}

	ext, ok := imageExtensions[mediaType]
	if !ok {
		return "", fmt.Errorf("%w: unsupported image type %q", ErrValidation, mediaType)
	}
	key := "recipes/" + uuid.NewString() + ext

	if s.client != nil {
		_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
			Bucket:      aws.String(s.bucket),
			Key:         aws.String(key),
			Body:        bytes.NewReader(data),
			ContentType: aws.String(mediaType),
		})
		if err != nil {
			return "", fmt.Errorf("failed to upload image: %w", err)
		}
		return s.baseURL + "/" + key, nil
	}

	path := filepath.Join(s.localDir, key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return s.baseURL + "/" + key, nil
}

func decodeDataURI(payload string) (string, []byte, error) {
	if !strings.HasPrefix(payload, "data:") {
		return "", nil, fmt.Errorf("image must be a data URI or URL")
	}
	rest := strings.TrimPrefix(payload, "data:")
	semi := strings.Index(rest, ";base64,")
	if semi < 0 {
		return "", nil, fmt.Errorf("image data URI must be base64 encoded")
	}
	mediaType := rest[:semi]
	data, err := base64.StdEncoding.DecodeString(rest[semi+len(";base64,"):])
	if err != nil {
		return "", nil, fmt.Errorf("invalid base64 image data: %v", err)
	}
	return mediaType, data, nil
}
