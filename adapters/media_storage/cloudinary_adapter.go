package media_storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"github.com/msamy/portfolio-api/internal/application/service"
	"github.com/msamy/portfolio-api/internal/config"
	"github.com/msamy/portfolio-api/pkg/logger"
)

type cloudinaryAdapter struct {
	cld    *cloudinary.Cloudinary
	logger logger.Logger
}

func NewCloudinaryAdapter(cfg config.Config, log logger.Logger) (service.BlobStore, error) {
	if cfg.Cloudinary.CloudName == "" {
		return nil, fmt.Errorf("cloudinary cloud_name has not config")
	}

	cld, err := cloudinary.NewFromParams(
		cfg.Cloudinary.CloudName,
		cfg.Cloudinary.ApiKey,
		cfg.Cloudinary.ApiSecret,
	)
	if err != nil {
		return nil, fmt.Errorf("cannot init cloudinary: %w", err)
	}

	log.Info("Connect Cloudinary successfully.")
	return &cloudinaryAdapter{cld: cld, logger: log}, nil
}

func (a *cloudinaryAdapter) Put(ctx context.Context, data io.Reader, folder string, publicID string) (string, error) {
	result, err := a.cld.Upload.Upload(ctx, data, uploader.UploadParams{
		PublicID: publicID,
		Folder:   folder,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload cloudinary: %w", err)
	}
	return result.SecureURL, nil
}

func (a *cloudinaryAdapter) Delete(ctx context.Context, url string) error {
	publicID, ok := publicIDFromURL(url)
	if !ok {
		// not a delivery URL we own; nothing to clean up
		return nil
	}
	result, err := a.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID: publicID,
	})
	if err != nil {
		return fmt.Errorf("failed to delete cloudinary asset: %w", err)
	}
	// "not found" means the asset is already gone; treat as success
	if result.Result != "ok" && result.Result != "not found" {
		return fmt.Errorf("cloudinary destroy returned %q for %s", result.Result, publicID)
	}
	return nil
}

// publicIDFromURL extracts the public id from a Cloudinary delivery URL:
// .../upload/v<version>/<folder>/<public_id>.<ext>
func publicIDFromURL(url string) (string, bool) {
	_, rest, found := strings.Cut(url, "/upload/")
	if !found {
		return "", false
	}
	parts := strings.Split(rest, "/")
	if strings.HasPrefix(parts[0], "v") && len(parts[0]) > 1 {
		version := true
		for _, r := range parts[0][1:] {
			if r < '0' || r > '9' {
				version = false
				break
			}
		}
		if version {
			parts = parts[1:]
		}
	}
	if len(parts) == 0 {
		return "", false
	}
	last := parts[len(parts)-1]
	if dot := strings.LastIndexByte(last, '.'); dot > 0 {
		parts[len(parts)-1] = last[:dot]
	}
	id := strings.Join(parts, "/")
	if id == "" {
		return "", false
	}
	return id, true
}
