package cmd

import (
	"context"
	"fmt"

	"github.com/halalquebec/photouploader/internal/config"
	"github.com/halalquebec/photouploader/internal/hosts"
	"github.com/halalquebec/photouploader/internal/hosts/cloudinary"
	"github.com/halalquebec/photouploader/internal/hosts/minio"
	"github.com/halalquebec/photouploader/internal/hosts/s3"
)

func newUploader(ctx context.Context, cfg *config.Config) (hosts.Uploader, error) {
	switch cfg.Host {
	case config.HostCloudinary:
		return cloudinary.New(cfg.Cloudinary)
	case config.HostS3:
		return s3.New(ctx, cfg.S3)
	case config.HostMinio:
		return minio.New(cfg.Minio)
	default:
		return nil, fmt.Errorf("unsupported host: %s", cfg.Host)
	}
}
