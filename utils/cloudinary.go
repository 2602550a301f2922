package utils

import (
	"context"
	"fmt"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"github.com/servicehub/servicehub-api/config"
)

// Uploader wraps a Cloudinary client for profile and work-gallery images.
type Uploader struct {
	client       *cloudinary.Cloudinary
	uploadPreset string
}

// NewUploader initializes the Cloudinary client from config. With no cloud
// name configured the uploader is inert and every Upload call errors, so
// the rest of the API keeps working in environments without credentials.
func NewUploader(cfg *config.Config) (*Uploader, error) {
	if cfg.CloudinaryCloudName == "" {
		return &Uploader{}, nil
	}

	cld, err := cloudinary.NewFromParams(
		cfg.CloudinaryCloudName,
		cfg.CloudinaryAPIKey,
		cfg.CloudinaryAPISecret)
	if err != nil {
		return nil, err
	}
	return &Uploader{client: cld, uploadPreset: cfg.CloudinaryUploadPreset}, nil
}

// Upload pushes a file to Cloudinary and returns the secure URL. Profile
// images are resized to a thumbnail server-side.
func (u *Uploader) Upload(ctx context.Context, file interface{}, publicID, folder string, thumbnail bool) (string, error) {
	if u.client == nil {
		return "", fmt.Errorf("media uploads are not configured")
	}

	uploadParams := uploader.UploadParams{
		PublicID:     publicID,
		Folder:       folder,
		UploadPreset: u.uploadPreset,
	}
	if thumbnail {
		uploadParams.Transformation = "c_thumb,w_200,h_200"
	}

	resp, err := u.client.Upload.Upload(ctx, file, uploadParams)
	if err != nil {
		return "", err
	}
	return resp.SecureURL, nil
}
