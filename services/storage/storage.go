package storage

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// CloudinaryStorageService implements BlobStore on Cloudinary.
type CloudinaryStorageService struct {
	cld *cloudinary.Cloudinary
}

// NewCloudinaryStorageService creates a new CloudinaryStorageService instance.
func NewCloudinaryStorageService(cld *cloudinary.Cloudinary) *CloudinaryStorageService {
	return &CloudinaryStorageService{cld: cld}
}

// Upload sends the payload to Cloudinary under a public id derived from objectPath and
// returns the secure delivery URL.
func (s *CloudinaryStorageService) Upload(ctx context.Context, objectPath, contentType string, data []byte) (string, error) {
	params := uploader.UploadParams{
		PublicID:     cloudinaryPublicID(objectPath),
		ResourceType: cloudinaryResourceType(resolveContentType(objectPath, contentType)),
	}
	result, err := s.cld.Upload.Upload(ctx, bytes.NewReader(data), params)
	if err != nil {
		return "", fmt.Errorf("CloudinaryStorageService: failed to upload file: %w", err)
	}
	if result.Error.Message != "" {
		return "", fmt.Errorf("CloudinaryStorageService: upload rejected: %s", result.Error.Message)
	}
	if result.SecureURL == "" {
		return "", fmt.Errorf("CloudinaryStorageService: no URL returned")
	}
	return result.SecureURL, nil
}

// Cloudinary appends the format itself, so the extension is dropped from the public id.
func cloudinaryPublicID(objectPath string) string {
	return strings.TrimSuffix(objectPath, path.Ext(objectPath))
}

func cloudinaryResourceType(contentType string) string {
	switch {
	case strings.HasPrefix(contentType, "image/"):
		return "image"
	case strings.HasPrefix(contentType, "video/"):
		return "video"
	default:
		return "raw"
	}
}
