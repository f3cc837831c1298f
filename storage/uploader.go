package storage

import (
	"context"
	"errors"
	"fmt"
	"log"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/check-scam/api-go/config"
	"github.com/google/uuid"
)

// ErrNotAnImage is returned for uploads with a non-image content type.
var ErrNotAnImage = errors.New("only image files are accepted")

// ImageUploader stores evidence images and returns their public URLs.
type ImageUploader interface {
	Upload(ctx context.Context, file *multipart.FileHeader) (string, error)
	UploadMany(ctx context.Context, files []*multipart.FileHeader) []string
}

// Uploader pushes images to an S3-compatible bucket fronted by a public URL.
type Uploader struct {
	client *s3.Client
	cfg    *config.StorageConfig
}

func NewUploader(cfg *config.StorageConfig) *Uploader {
	client := s3.New(s3.Options{
		BaseEndpoint: aws.String(fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.AccountID)),
		Credentials: credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		),
		Region: cfg.Region,
	})
	return &Uploader{client: client, cfg: cfg}
}

// Upload stores a single image and returns its public URL.
func (u *Uploader) Upload(ctx context.Context, file *multipart.FileHeader) (string, error) {
	contentType := file.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return "", ErrNotAnImage
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	ext := strings.ToLower(filepath.Ext(file.Filename))
	key := fmt.Sprintf("evidence/img_%s%s", uuid.New().String(), ext)

	_, err = u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(u.cfg.BucketName),
		Key:           aws.String(key),
		Body:          src,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(file.Size),
	})
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%s/%s", u.cfg.PublicURL, key), nil
}

// UploadMany stores a batch of images. Individual failures are logged and
// skipped, so the returned URLs may be fewer than the inputs.
func (u *Uploader) UploadMany(ctx context.Context, files []*multipart.FileHeader) []string {
	urls := make([]string, 0, len(files))
	for _, file := range files {
		url, err := u.Upload(ctx, file)
		if err != nil {
			log.Printf("upload %s failed: %v", file.Filename, err)
			continue
		}
		urls = append(urls, url)
	}
	return urls
}
