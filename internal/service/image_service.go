package service

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	apperrors "smartvegis/internal/errors"
)

// MaxImageSize is the largest accepted image upload.
const MaxImageSize = 5 << 20

// ImageUpload is one image file received from a vendor.
type ImageUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// ImageService stores listing and store photos and returns their public URLs.
type ImageService interface {
	Upload(ctx context.Context, vendorID uuid.UUID, img ImageUpload) (string, error)
	// EnsureBucket creates the image bucket when it does not exist yet.
	EnsureBucket(ctx context.Context) error
}

// ImageStoreConfig configures the S3 compatible object store.
type ImageStoreConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	// PublicURL is the base URL objects are served from. Defaults to the endpoint.
	PublicURL string
}

type minioImageService struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

// NewImageService creates a MinIO backed image service. Without an endpoint
// uploads are disabled and every Upload returns ErrUploadsDisabled.
func NewImageService(cfg ImageStoreConfig) (ImageService, error) {
	if cfg.Endpoint == "" {
		return disabledImageService{}, nil
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	publicURL := cfg.PublicURL
	if publicURL == "" {
		scheme := "http"
		if cfg.UseSSL {
			scheme = "https"
		}
		publicURL = scheme + "://" + cfg.Endpoint
	}

	return &minioImageService{
		client:    client,
		bucket:    cfg.Bucket,
		publicURL: strings.TrimRight(publicURL, "/"),
	}, nil
}

func (m *minioImageService) EnsureBucket(ctx context.Context) error {
	found, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return fmt.Errorf("check bucket: %w", err)
	}
	if !found {
		if err := m.client.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("make bucket: %w", err)
		}
	}
	return nil
}

func (m *minioImageService) Upload(ctx context.Context, vendorID uuid.UUID, img ImageUpload) (string, error) {
	if err := validateImage(img); err != nil {
		return "", err
	}

	objectName := path.Join("vendors", vendorID.String(), uuid.NewString()+imageExtension(img))
	_, err := m.client.PutObject(ctx, m.bucket, objectName, img.Body, img.Size, minio.PutObjectOptions{
		ContentType: img.ContentType,
	})
	if err != nil {
		return "", fmt.Errorf("put object: %w", err)
	}
	return m.publicURL + "/" + m.bucket + "/" + objectName, nil
}

type disabledImageService struct{}

func (disabledImageService) Upload(context.Context, uuid.UUID, ImageUpload) (string, error) {
	return "", apperrors.ErrUploadsDisabled
}

func (disabledImageService) EnsureBucket(context.Context) error { return nil }

func validateImage(img ImageUpload) error {
	if !strings.HasPrefix(img.ContentType, "image/") {
		return apperrors.NewValidationError("only image files are allowed")
	}
	if img.Size <= 0 {
		return apperrors.NewValidationError("image file is empty")
	}
	if img.Size > MaxImageSize {
		return apperrors.NewValidationError("image must be at most 5MB")
	}
	return nil
}

func imageExtension(img ImageUpload) string {
	if ext := strings.ToLower(path.Ext(img.Filename)); ext != "" {
		return ext
	}
	if sub := strings.TrimPrefix(img.ContentType, "image/"); sub != "" && !strings.ContainsAny(sub, "/;+ ") {
		return "." + sub
	}
	return ""
}
