package storage

import (
	"context"
	"fmt"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// CloudinaryStorage implements StorageService on top of Cloudinary.
type CloudinaryStorage struct {
	cld *cloudinary.Cloudinary
}

// NewStorageService creates a new Cloudinary-backed StorageService.
func NewStorageService(cld *cloudinary.Cloudinary) StorageService {
	return &CloudinaryStorage{cld: cld}
}

// UploadFile uploads a file to Cloudinary into the specified folder and returns its identifiers.
func (s *CloudinaryStorage) UploadFile(ctx context.Context, localFilePath, destFolder string) (*UploadResult, error) {
	uploadParams := uploader.UploadParams{
		Folder:       destFolder,
		ResourceType: "image",
	}
	result, err := s.cld.Upload.Upload(ctx, localFilePath, uploadParams)
	if err != nil {
		return nil, fmt.Errorf("CloudinaryStorage: failed to upload file: %w", err)
	}
	if result.PublicID == "" {
		if result.Error.Message != "" {
			return nil, fmt.Errorf("CloudinaryStorage: upload rejected: %s", result.Error.Message)
		}
		return nil, fmt.Errorf("CloudinaryStorage: no public ID returned")
	}
	return &UploadResult{PublicID: result.PublicID, URL: result.SecureURL}, nil
}

// DeleteFile deletes a file from Cloudinary given its public ID.
func (s *CloudinaryStorage) DeleteFile(ctx context.Context, publicID string) error {
	result, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return fmt.Errorf("CloudinaryStorage: failed to delete file: %w", err)
	}
	if result.Result != "ok" && result.Result != "not found" {
		return fmt.Errorf("CloudinaryStorage: unexpected destroy result %q", result.Result)
	}
	return nil
}
