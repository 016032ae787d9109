// Package config gathers the settings of an upload run. Values are layered:
// defaults, then an optional YAML file, then environment variables; command
// flags are applied last by the caller.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/halalquebec/photouploader/internal/batch"
	"github.com/halalquebec/photouploader/internal/hosts/cloudinary"
	"github.com/halalquebec/photouploader/internal/hosts/minio"
	"github.com/halalquebec/photouploader/internal/hosts/s3"
	"github.com/halalquebec/photouploader/internal/manifest"
)

const (
	HostCloudinary = "cloudinary"
	HostS3         = "s3"
	HostMinio      = "minio"

	DefaultSource = "./Photos-Halal-Québec"
)

// ErrMissingSetting is returned by Validate when a required value is empty.
var ErrMissingSetting = errors.New("missing required setting")

// Config holds every setting of an upload run
type Config struct {
	Source           string   `yaml:"source"`
	RootFolder       string   `yaml:"root_folder"`
	Manifest         string   `yaml:"manifest"`
	SkipLog          string   `yaml:"skip_log"`
	Parquet          string   `yaml:"parquet"`
	Summary          string   `yaml:"summary"`
	Host             string   `yaml:"host"`
	Extensions       []string `yaml:"extensions"`
	RejectRootImages bool     `yaml:"reject_root_images"`
	DryRun           bool     `yaml:"dry_run"`

	Cloudinary cloudinary.Config `yaml:"cloudinary"`
	S3         s3.Config         `yaml:"s3"`
	Minio      minio.Config      `yaml:"minio"`
}

// Default returns the settings used when nothing else is configured
func Default() *Config {
	return &Config{
		Source:     DefaultSource,
		RootFolder: batch.DefaultRootFolder,
		Manifest:   manifest.DefaultCSVPath,
		SkipLog:    manifest.DefaultSkipLogPath,
		Host:       HostCloudinary,
	}
}

// Load builds a Config from defaults, the YAML file at path (skipped when
// path is empty) and the environment.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	setString(&c.Source, "PHOTOUPLOADER_SOURCE")
	setString(&c.RootFolder, "PHOTOUPLOADER_ROOT_FOLDER")
	setString(&c.Manifest, "PHOTOUPLOADER_MANIFEST")
	setString(&c.SkipLog, "PHOTOUPLOADER_SKIP_LOG")
	setString(&c.Host, "PHOTOUPLOADER_HOST")

	setString(&c.Cloudinary.CloudName, "CLOUDINARY_CLOUD_NAME")
	setString(&c.Cloudinary.APIKey, "CLOUDINARY_API_KEY")
	setString(&c.Cloudinary.APISecret, "CLOUDINARY_API_SECRET")
	setString(&c.Cloudinary.URL, "CLOUDINARY_URL")

	setString(&c.S3.Bucket, "S3_BUCKET")
	setString(&c.S3.Region, "S3_REGION")
	setString(&c.S3.Endpoint, "S3_ENDPOINT")
	setString(&c.S3.PublicBaseURL, "S3_PUBLIC_BASE_URL")

	setString(&c.Minio.Endpoint, "MINIO_ENDPOINT")
	setString(&c.Minio.Bucket, "MINIO_BUCKET")
	setString(&c.Minio.AccessKey, "MINIO_ACCESS_KEY")
	setString(&c.Minio.SecretKey, "MINIO_SECRET_KEY")
	setString(&c.Minio.Region, "MINIO_REGION")
	setString(&c.Minio.PublicBaseURL, "MINIO_PUBLIC_BASE_URL")

	if err := setBool(&c.RejectRootImages, "PHOTOUPLOADER_REJECT_ROOT_IMAGES"); err != nil {
		return err
	}
	if err := setBool(&c.S3.UsePathStyle, "S3_USE_PATH_STYLE"); err != nil {
		return err
	}
	if v := os.Getenv("PHOTOUPLOADER_EXTENSIONS"); v != "" {
		c.Extensions = splitList(v)
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// splitList splits a comma-separated value, trimming spaces and dropping
// empty entries.
func splitList(v string) []string {
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func setBool(dst *bool, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	*dst = b
	return nil
}

// Validate checks that the selected host has what it needs. Credentials are
// not required for dry runs.
func (c *Config) Validate() error {
	if c.Source == "" {
		return fmt.Errorf("%w: source", ErrMissingSetting)
	}
	if c.Manifest == "" {
		return fmt.Errorf("%w: manifest", ErrMissingSetting)
	}

	switch c.Host {
	case HostCloudinary, HostS3, HostMinio:
	default:
		return fmt.Errorf("unsupported host: %s (supported: %s, %s, %s)", c.Host, HostCloudinary, HostS3, HostMinio)
	}
	if c.DryRun {
		return nil
	}

	var missing []string
	switch c.Host {
	case HostCloudinary:
		if c.Cloudinary.URL == "" {
			missing = appendIfEmpty(missing, c.Cloudinary.CloudName, "CLOUDINARY_CLOUD_NAME")
			missing = appendIfEmpty(missing, c.Cloudinary.APIKey, "CLOUDINARY_API_KEY")
			missing = appendIfEmpty(missing, c.Cloudinary.APISecret, "CLOUDINARY_API_SECRET")
		}
	case HostS3:
		missing = appendIfEmpty(missing, c.S3.Bucket, "S3_BUCKET")
	case HostMinio:
		missing = appendIfEmpty(missing, c.Minio.Endpoint, "MINIO_ENDPOINT")
		missing = appendIfEmpty(missing, c.Minio.Bucket, "MINIO_BUCKET")
		missing = appendIfEmpty(missing, c.Minio.AccessKey, "MINIO_ACCESS_KEY")
		missing = appendIfEmpty(missing, c.Minio.SecretKey, "MINIO_SECRET_KEY")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingSetting, strings.Join(missing, ", "))
	}
	return nil
}

func appendIfEmpty(missing []string, value, name string) []string {
	if value == "" {
		return append(missing, name)
	}
	return missing
}
