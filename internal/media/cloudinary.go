package media

import (
	"context"
	"fmt"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// CloudinaryStore implements Store against the Cloudinary upload API.
type CloudinaryStore struct {
	client *cloudinary.Cloudinary
}

var _ Store = (*CloudinaryStore)(nil)

// NewCloudinaryStore builds a store from a cloudinary:// credentials URL.
func NewCloudinaryStore(cloudinaryURL string) (*CloudinaryStore, error) {
	if cloudinaryURL == "" {
		return nil, fmt.Errorf("cloudinary URL not provided")
	}
	client, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("initializing cloudinary client: %w", err)
	}
	return &CloudinaryStore{client: client}, nil
}

// Upload pushes an inline-encoded image and returns its delivery URL.
func (s *CloudinaryStore) Upload(ctx context.Context, payload string) (string, error) {
	resp, err := s.client.Upload.Upload(ctx, payload, uploader.UploadParams{})
	if err != nil {
		return "", fmt.Errorf("uploading image: %w", err)
	}
	return resp.SecureURL, nil
}

// Destroy deletes the image behind a previously returned delivery URL.
func (s *CloudinaryStore) Destroy(ctx context.Context, url string) error {
	publicID := PublicIDFromURL(url)
	_, err := s.client.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return fmt.Errorf("destroying image %s: %w", publicID, err)
	}
	return nil
}
