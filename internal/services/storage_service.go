// internal/services/storage_service.go
package services

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/georgeY2002/E-Commerce/internal/config"
)

const (
	productImageFolder  = "products"
	maxProductImageSize = 10 * 1024 * 1024 // 10MB
)

var allowedImageExts = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}

// StorageService puts product images on S3. Without AWS credentials it
// degrades to local URLs so the catalog still works in development.
type StorageService struct {
	s3Client *s3.S3
	cfg      config.AWSConfig
}

type UploadResult struct {
	URL      string `json:"url"`
	Key      string `json:"key"`
	Size     int64  `json:"size"`
	MimeType string `json:"mimeType"`
}

func NewStorageService(cfg config.AWSConfig) (*StorageService, error) {
	if cfg.AccessKeyID == "" {
		return &StorageService{cfg: cfg}, nil
	}

	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(cfg.Region),
		Credentials: credentials.NewStaticCredentials(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	return &StorageService{s3Client: s3.New(sess), cfg: cfg}, nil
}

// UploadProductImage stores one multipart image upload and returns its
// public URL.
func (s *StorageService) UploadProductImage(file multipart.File, header *multipart.FileHeader) (*UploadResult, error) {
	if header.Size > maxProductImageSize {
		return nil, fmt.Errorf("%w: image exceeds %d bytes", ErrValidation, maxProductImageSize)
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	allowed := false
	for _, e := range allowedImageExts {
		if ext == e {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, fmt.Errorf("%w: image type %s is not allowed", ErrValidation, ext)
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	if !isImageData(data) {
		return nil, fmt.Errorf("%w: file is not a valid image", ErrValidation)
	}

	key := s.objectKey(ext)
	return s.store(data, key, header.Header.Get("Content-Type"))
}

// ProcessImages normalizes a product's image list: http(s) URLs pass
// through untouched, data URIs are decoded and uploaded, anything else is
// dropped.
func (s *StorageService) ProcessImages(images []string) []string {
	var processed []string
	for _, image := range images {
		switch {
		case strings.HasPrefix(image, "http://"), strings.HasPrefix(image, "https://"):
			processed = append(processed, image)
		case strings.HasPrefix(image, "data:image"):
			url, err := s.uploadDataURI(image)
			if err != nil {
				logrus.WithError(err).Warn("skipping unreadable product image")
				continue
			}
			processed = append(processed, url)
		default:
			logrus.WithField("prefix", truncate(image, 32)).Warn("skipping image with unknown format")
		}
	}
	return processed
}

func (s *StorageService) uploadDataURI(dataURI string) (string, error) {
	comma := strings.Index(dataURI, ",")
	if comma < 0 {
		return "", fmt.Errorf("malformed data URI")
	}

	data, err := base64.StdEncoding.DecodeString(dataURI[comma+1:])
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}
	if !isImageData(data) {
		return "", fmt.Errorf("decoded payload is not an image")
	}

	contentType := "image/jpeg"
	if semi := strings.Index(dataURI, ";"); semi > 5 {
		contentType = dataURI[5:semi]
	}

	ext := ".jpg"
	switch contentType {
	case "image/png":
		ext = ".png"
	case "image/gif":
		ext = ".gif"
	case "image/webp":
		ext = ".webp"
	}

	result, err := s.store(data, s.objectKey(ext), contentType)
	if err != nil {
		return "", err
	}
	return result.URL, nil
}

func (s *StorageService) store(data []byte, key, contentType string) (*UploadResult, error) {
	if s.s3Client == nil {
		// Development fallback, no object actually stored
		return &UploadResult{
			URL:      fmt.Sprintf("http://localhost:5000/uploads/%s", key),
			Key:      key,
			Size:     int64(len(data)),
			MimeType: contentType,
		}, nil
	}

	_, err := s.s3Client.PutObject(&s3.PutObjectInput{
		Bucket:        aws.String(s.cfg.S3Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
		ACL:           aws.String("public-read"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload to S3: %w", err)
	}

	return &UploadResult{
		URL:      s.publicURL(key),
		Key:      key,
		Size:     int64(len(data)),
		MimeType: contentType,
	}, nil
}

func (s *StorageService) DeleteImage(key string) error {
	if s.s3Client == nil {
		return nil
	}

	_, err := s.s3Client.DeleteObject(&s3.DeleteObjectInput{
		Bucket: aws.String(s.cfg.S3Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete image from S3: %w", err)
	}
	return nil
}

func (s *StorageService) objectKey(ext string) string {
	stamp := time.Now().Format("20060102")
	return fmt.Sprintf("%s/%s_%s%s", productImageFolder, stamp, uuid.New().String()[:8], ext)
}

func (s *StorageService) publicURL(key string) string {
	if s.cfg.CloudFrontURL != "" {
		return fmt.Sprintf("%s/%s", s.cfg.CloudFrontURL, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.cfg.S3Bucket, s.cfg.Region, key)
}

// isImageData checks the magic bytes for JPEG, PNG, GIF and WebP.
func isImageData(data []byte) bool {
	switch {
	case len(data) >= 3 && data[0] == 0xFF && data[1] == 0xD8 && data[2] == 0xFF:
		return true
	case len(data) >= 8 && bytes.HasPrefix(data, []byte("\x89PNG\r\n\x1a\n")):
		return true
	case len(data) >= 6 && (bytes.HasPrefix(data, []byte("GIF87a")) || bytes.HasPrefix(data, []byte("GIF89a"))):
		return true
	case len(data) >= 12 && bytes.HasPrefix(data, []byte("RIFF")) && bytes.Equal(data[8:12], []byte("WEBP")):
		return true
	}
	return false
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
