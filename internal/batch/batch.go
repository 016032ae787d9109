// Package batch runs the sanitize, filter, upload and record loop over a
// list of discovered images, one file at a time.
package batch

import (
	"context"
	"log/slog"
	"path"

	"github.com/halalquebec/photouploader/internal/brand"
	"github.com/halalquebec/photouploader/internal/hosts"
	"github.com/halalquebec/photouploader/internal/models"
)

// DefaultRootFolder is the destination folder every upload is placed under.
const DefaultRootFolder = "halal_quebec"

// Failure records an admitted file whose upload did not succeed.
type Failure struct {
	RelativePath string
	Err          error
}

// Result holds everything accumulated over a run, in processing order.
// In a dry run admitted files land in Planned and Rows stays empty.
type Result struct {
	Rows     []models.UploadRow
	Planned  []models.UploadRow
	Skipped  []string
	Failures []Failure
}

// Reporter is told about each file as it is processed.
type Reporter interface {
	Uploaded(record models.ImageRecord, url string)
	Planned(record models.ImageRecord, destination string)
	Failed(record models.ImageRecord, err error)
	Skipped(record models.ImageRecord, reason string)
}

// Orchestrator uploads admitted images and collects manifest rows.
type Orchestrator struct {
	uploader   hosts.Uploader
	rootFolder string
	policy     brand.Policy
	dryRun     bool
	reporter   Reporter
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithRootFolder sets the destination root folder.
func WithRootFolder(folder string) Option {
	return func(o *Orchestrator) { o.rootFolder = folder }
}

// WithPolicy sets the brand filter policy.
func WithPolicy(p brand.Policy) Option {
	return func(o *Orchestrator) { o.policy = p }
}

// WithDryRun classifies files without uploading them.
func WithDryRun(dryRun bool) Option {
	return func(o *Orchestrator) { o.dryRun = dryRun }
}

// WithReporter sets where per-file progress goes.
func WithReporter(r Reporter) Option {
	return func(o *Orchestrator) { o.reporter = r }
}

// New creates an Orchestrator. uploader may be nil for dry runs.
func New(uploader hosts.Uploader, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		uploader:   uploader,
		rootFolder: DefaultRootFolder,
		reporter:   nopReporter{},
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Run processes records in order. A failed upload is recorded and the run
// continues. If ctx is cancelled the loop stops before the next file and the
// partial result is returned with ctx.Err().
func (o *Orchestrator) Run(ctx context.Context, records []models.ImageRecord) (*Result, error) {
	result := &Result{}

	for i, record := range records {
		if err := ctx.Err(); err != nil {
			slog.Warn("Batch interrupted", "processed", i, "total", len(records))
			return result, err
		}

		d := brand.Classify(record.RelativePath, o.policy)
		if !d.Admitted {
			slog.Debug("Skipping image", "path", record.RelativePath, "brand", d.Brand)
			result.Skipped = append(result.Skipped, d.Reason)
			o.reporter.Skipped(record, d.Reason)
			continue
		}

		row := models.UploadRow{
			Brand:       d.Brand,
			Description: d.CleanedFilename,
		}
		folder := path.Join(o.rootFolder, d.CleanSubFolder)
		if o.dryRun {
			result.Planned = append(result.Planned, row)
			o.reporter.Planned(record, path.Join(folder, d.CleanedFilename))
			continue
		}

		slog.Debug("Uploading image", "path", record.LocalPath, "folder", folder, "public_id", d.CleanedFilename, "progress", i+1)

		uploaded, err := o.uploader.Upload(ctx, hosts.UploadRequest{
			LocalPath: record.LocalPath,
			Folder:    folder,
			PublicID:  d.CleanedFilename,
			Overwrite: true,
		})
		if err != nil {
			slog.Error("Failed to upload image", "path", record.RelativePath, "error", err)
			result.Failures = append(result.Failures, Failure{RelativePath: record.RelativePath, Err: err})
			o.reporter.Failed(record, err)
			continue
		}

		row.Image = uploaded.SecureURL
		result.Rows = append(result.Rows, row)
		o.reporter.Uploaded(record, uploaded.SecureURL)
	}

	slog.Info("Batch finished",
		"uploaded", len(result.Rows),
		"planned", len(result.Planned),
		"skipped", len(result.Skipped),
		"failed", len(result.Failures))

	return result, nil
}

type nopReporter struct{}

func (nopReporter) Uploaded(models.ImageRecord, string) {}

func (nopReporter) Planned(models.ImageRecord, string) {}

func (nopReporter) Failed(models.ImageRecord, error) {}

func (nopReporter) Skipped(models.ImageRecord, string) {}
