package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"net/url"
	"path"

	"cloud.google.com/go/storage"
)

// BlobStore accepts a binary payload and returns a URL it can be fetched from.
type BlobStore interface {
	Upload(ctx context.Context, objectPath, contentType string, data []byte) (string, error)
}

// FirebaseStorageService implements BlobStore on a Firebase Storage bucket.
type FirebaseStorageService struct {
	bucket     *storage.BucketHandle
	bucketName string
}

// NewFirebaseStorageService wraps a bucket handle obtained from the Firebase app.
func NewFirebaseStorageService(bucket *storage.BucketHandle, bucketName string) *FirebaseStorageService {
	return &FirebaseStorageService{bucket: bucket, bucketName: bucketName}
}

// Upload writes the object with public read access and returns its download URL.
func (s *FirebaseStorageService) Upload(ctx context.Context, objectPath, contentType string, data []byte) (string, error) {
	w := s.bucket.Object(objectPath).NewWriter(ctx)
	w.ACL = []storage.ACLRule{{Entity: storage.AllUsers, Role: storage.RoleReader}}
	w.ObjectAttrs.ContentType = resolveContentType(objectPath, contentType)

	if _, err := io.Copy(w, bytes.NewReader(data)); err != nil {
		w.Close()
		return "", fmt.Errorf("failed to copy file to storage: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to close writer: %w", err)
	}
	return firebaseDownloadURL(s.bucketName, objectPath), nil
}

func firebaseDownloadURL(bucket, objectPath string) string {
	return fmt.Sprintf("https://firebasestorage.googleapis.com/v0/b/%s/o/%s?alt=media", bucket, url.QueryEscape(objectPath))
}

func resolveContentType(objectPath, contentType string) string {
	if contentType != "" {
		return contentType
	}
	if byExt := mime.TypeByExtension(path.Ext(objectPath)); byExt != "" {
		return byExt
	}
	return "application/octet-stream"
}
