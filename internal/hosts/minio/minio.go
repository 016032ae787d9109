// Package minio stores images on any S3-compatible server through minio-go.
package minio

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/halalquebec/photouploader/internal/hosts"
)

// Config describes the endpoint and bucket. Endpoint may carry an http:// or
// https:// scheme; without one TLS is used.
type Config struct {
	Endpoint      string `yaml:"endpoint"`
	Bucket        string `yaml:"bucket"`
	AccessKey     string `yaml:"access_key"`
	SecretKey     string `yaml:"secret_key"`
	Region        string `yaml:"region"`
	PublicBaseURL string `yaml:"public_base_url"`
}

type putFileAPI interface {
	FPutObject(ctx context.Context, bucketName, objectName, filePath string, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

// Host uploads to an S3-compatible bucket
type Host struct {
	client  putFileAPI
	cfg     Config
	baseURL string
}

// New returns a Host with static V4 credentials.
func New(cfg Config) (*Host, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("minio endpoint is required")
	}
	if cfg.Bucket == "" {
		return nil, errors.New("minio bucket is required")
	}
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, errors.New("minio access key and secret key are required")
	}

	endpoint, useSSL := splitEndpoint(cfg.Endpoint)
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: useSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize MinIO client: %w", err)
	}

	return NewWithClient(client, cfg), nil
}

// NewWithClient returns a Host around an existing client.
func NewWithClient(client putFileAPI, cfg Config) *Host {
	h := &Host{client: client, cfg: cfg}
	if cfg.PublicBaseURL != "" {
		h.baseURL = strings.TrimSuffix(cfg.PublicBaseURL, "/")
	} else {
		endpoint, useSSL := splitEndpoint(cfg.Endpoint)
		scheme := "https"
		if !useSSL {
			scheme = "http"
		}
		h.baseURL = scheme + "://" + endpoint + "/" + cfg.Bucket
	}
	return h
}

// Upload writes the file to <folder>/<publicID><ext>. Object stores replace
// existing keys, so Overwrite=false is rejected rather than silently ignored.
func (h *Host) Upload(ctx context.Context, req hosts.UploadRequest) (*hosts.UploadResult, error) {
	if !req.Overwrite {
		return nil, errors.New("minio host only supports overwrite uploads")
	}

	mt, err := mimetype.DetectFile(req.LocalPath)
	if err != nil {
		return nil, fmt.Errorf("failed to detect content type: %w", err)
	}

	key := hosts.ObjectKey(req.Folder, req.PublicID+mt.Extension())
	info, err := h.client.FPutObject(ctx, h.cfg.Bucket, key, req.LocalPath, minio.PutObjectOptions{
		ContentType: mt.String(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload %s to MinIO: %w", key, err)
	}
	slog.Debug("Stored object", "bucket", h.cfg.Bucket, "key", key, "etag", info.ETag)

	return &hosts.UploadResult{
		PublicID:  strings.TrimSuffix(key, mt.Extension()),
		SecureURL: h.baseURL + "/" + key,
		Bytes:     info.Size,
	}, nil
}

func splitEndpoint(endpoint string) (string, bool) {
	switch {
	case strings.HasPrefix(endpoint, "http://"):
		return strings.TrimPrefix(endpoint, "http://"), false
	case strings.HasPrefix(endpoint, "https://"):
		return strings.TrimPrefix(endpoint, "https://"), true
	default:
		return endpoint, true
	}
}
