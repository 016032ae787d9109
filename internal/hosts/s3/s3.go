// Package s3 stores images in an Amazon S3 bucket. Keys mirror the
// destination folder, so re-uploading an identifier replaces the object.
package s3

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gabriel-vasile/mimetype"

	"github.com/halalquebec/photouploader/internal/hosts"
)

// Config selects the bucket and how public URLs are built.
type Config struct {
	Bucket        string `yaml:"bucket"`
	Region        string `yaml:"region"`
	Endpoint      string `yaml:"endpoint"`        // custom endpoint, e.g. for localstack
	PublicBaseURL string `yaml:"public_base_url"` // CDN or website URL in front of the bucket
	UsePathStyle  bool   `yaml:"use_path_style"`
}

// putObjectAPI is the part of the S3 client this package uses.
type putObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Host uploads to S3
type Host struct {
	client putObjectAPI
	cfg    Config
}

// New loads AWS credentials from the default chain and returns a Host.
func New(ctx context.Context, cfg Config) (*Host, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("S3 bucket is required")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	if cfg.Region != "" {
		awsCfg.Region = cfg.Region
	} else if awsCfg.Region == "" {
		awsCfg.Region = "us-east-1"
	}
	cfg.Region = awsCfg.Region

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})

	return NewWithClient(client, cfg), nil
}

// NewWithClient returns a Host around an existing client.
func NewWithClient(client putObjectAPI, cfg Config) *Host {
	return &Host{client: client, cfg: cfg}
}

// Upload puts the file at <folder>/<publicID><ext>.
func (h *Host) Upload(ctx context.Context, req hosts.UploadRequest) (*hosts.UploadResult, error) {
	mt, err := mimetype.DetectFile(req.LocalPath)
	if err != nil {
		return nil, fmt.Errorf("failed to detect content type: %w", err)
	}

	file, err := os.Open(req.LocalPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat image: %w", err)
	}

	key := hosts.ObjectKey(req.Folder, req.PublicID+mt.Extension())
	input := &s3.PutObjectInput{
		Bucket:        aws.String(h.cfg.Bucket),
		Key:           aws.String(key),
		Body:          file,
		ContentLength: aws.Int64(info.Size()),
		ContentType:   aws.String(mt.String()),
	}
	if !req.Overwrite {
		// S3 conditional write: fail if the key already exists
		input.IfNoneMatch = aws.String("*")
	}

	if _, err := h.client.PutObject(ctx, input); err != nil {
		return nil, fmt.Errorf("failed to put object %s: %w", key, err)
	}
	slog.Debug("Stored object", "bucket", h.cfg.Bucket, "key", key, "content_type", mt.String())

	return &hosts.UploadResult{
		PublicID:  strings.TrimSuffix(key, mt.Extension()),
		SecureURL: h.objectURL(key),
		Bytes:     info.Size(),
	}, nil
}

func (h *Host) objectURL(key string) string {
	if h.cfg.PublicBaseURL != "" {
		return strings.TrimSuffix(h.cfg.PublicBaseURL, "/") + "/" + key
	}
	if h.cfg.Endpoint != "" {
		return strings.TrimSuffix(h.cfg.Endpoint, "/") + "/" + h.cfg.Bucket + "/" + key
	}
	region := h.cfg.Region
	if region == "" {
		region = "us-east-1"
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", h.cfg.Bucket, region, key)
}
