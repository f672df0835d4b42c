package storage

import (
	"context"
	"errors"
)

// UploadResult identifies an uploaded asset.
type UploadResult struct {
	PublicID string
	URL      string
}

// StorageService defines the interface for picture storage operations.
type StorageService interface {
	UploadFile(ctx context.Context, localFilePath, destFolder string) (*UploadResult, error)
	DeleteFile(ctx context.Context, publicID string) error
}

// ErrStorageDisabled is returned by DisabledStorage.
var ErrStorageDisabled = errors.New("picture storage is not configured")

// DisabledStorage rejects every operation. It stands in when Cloudinary credentials are absent.
type DisabledStorage struct{}

func (DisabledStorage) UploadFile(context.Context, string, string) (*UploadResult, error) {
	return nil, ErrStorageDisabled
}

func (DisabledStorage) DeleteFile(context.Context, string) error {
	return ErrStorageDisabled
}
