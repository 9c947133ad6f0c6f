package services

import (
	"fmt"
	"mime/multipart"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/tidwall/gjson"
)

// StorageService uploads file content to external object storage and
// returns the public URL of the stored object. Bytes are never persisted
// locally.
type StorageService interface {
	Upload(file *multipart.FileHeader, folder string) (string, error)
}

type cloudinaryStorage struct {
	client       *resty.Client
	uploadURL    string
	uploadPreset string
}

// NewCloudinaryStorage builds a storage client against Cloudinary's raw
// upload endpoint using an unsigned upload preset.
func NewCloudinaryStorage(cloudName, uploadPreset string) StorageService {
	client := resty.New().
		SetTimeout(30 * time.Second)

	return &cloudinaryStorage{
		client:       client,
		uploadURL:    fmt.Sprintf("https://api.cloudinary.com/v1_1/%s/raw/upload", cloudName),
		uploadPreset: uploadPreset,
	}
}

func (s *cloudinaryStorage) Upload(file *multipart.FileHeader, folder string) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	resp, err := s.client.R().
		SetFileReader("file", file.Filename, src).
		SetFormData(map[string]string{
			"upload_preset": s.uploadPreset,
			"folder":        folder,
			"public_id":     uuid.NewString(),
		}).
		Post(s.uploadURL)
	if err != nil {
		return "", fmt.Errorf("upload request failed: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("upload failed with status %d: %s", resp.StatusCode(), resp.String())
	}

	url := gjson.GetBytes(resp.Body(), "secure_url").String()
	if url == "" {
		return "", fmt.Errorf("upload response missing secure_url")
	}

	return url, nil
}
