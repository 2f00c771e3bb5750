package uploader

import (
	"context"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"lms-backend/pkg/config"
)

// Asset is a stored image reference: the provider's public id plus the
// serving URL. It is embedded in user and course documents.
type Asset struct {
	PublicID string `bson:"public_id" json:"public_id"`
	URL      string `bson:"url" json:"url"`
}

// Uploader stores and removes image assets (avatars, course thumbnails).
type Uploader interface {
	Upload(ctx context.Context, data, folder string) (Asset, error)
	Destroy(ctx context.Context, publicID string) error
}

type cloudinaryUploader struct {
	client *cloudinary.Cloudinary
}

func NewCloudinaryUploader(cfg *config.Config) (Uploader, error) {
	client, err := cloudinary.NewFromURL(cfg.CloudinaryURL)
	if err != nil {
		return nil, err
	}
	return &cloudinaryUploader{client: client}, nil
}

func (u *cloudinaryUploader) Upload(ctx context.Context, data, folder string) (Asset, error) {
	result, err := u.client.Upload.Upload(ctx, data, uploader.UploadParams{Folder: folder})
	if err != nil {
		return Asset{}, err
	}
	return Asset{PublicID: result.PublicID, URL: result.SecureURL}, nil
}

func (u *cloudinaryUploader) Destroy(ctx context.Context, publicID string) error {
	_, err := u.client.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	return err
}
