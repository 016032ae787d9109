package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/halalquebec/photouploader/internal/batch"
	"github.com/halalquebec/photouploader/internal/brand"
	"github.com/halalquebec/photouploader/internal/config"
	"github.com/halalquebec/photouploader/internal/hosts"
	"github.com/halalquebec/photouploader/internal/manifest"
	"github.com/halalquebec/photouploader/internal/progress"
	"github.com/halalquebec/photouploader/internal/walker"
	"github.com/spf13/cobra"
)

func newUploadCmd() *cobra.Command {
	var configPath string
	var flags config.Config

	cmd := &cobra.Command{
		Use:   "upload",
		Short: "Upload every admitted photo and write the manifest",
		Long: `Walks the source folder for jpg, jpeg, png, webp and gif files. The deepest
folder of each photo is its brand; a photo is uploaded only when its sanitized
file name contains the sanitized brand. Uploaded photos are listed in the CSV
manifest, rejected ones in the skip log.

Settings come from --config (YAML), then the environment (a .env file is
loaded if present), then these flags.`,
		Example: `  # Upload to Cloudinary using CLOUDINARY_* from .env
  photouploader upload --source ./Photos-Halal-Québec

  # See what would be uploaded without touching the host or any output file
  photouploader upload --source ./photos --dry-run

  # Upload to S3 and keep a parquet copy of the manifest
  photouploader upload --host s3 --parquet images.parquet`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			applyFlags(cmd, cfg, &flags)
			if err := cfg.Validate(); err != nil {
				return err
			}
			return runUpload(cmd, cfg)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Path to a YAML config file")
	cmd.Flags().StringVar(&flags.Source, "source", config.DefaultSource, "Local folder to scan for photos")
	cmd.Flags().StringVar(&flags.RootFolder, "root-folder", batch.DefaultRootFolder, "Destination folder on the asset host")
	cmd.Flags().StringVar(&flags.Host, "host", config.HostCloudinary, "Asset host (cloudinary, s3 or minio)")
	cmd.Flags().StringVar(&flags.Manifest, "manifest", manifest.DefaultCSVPath, "Path of the CSV manifest")
	cmd.Flags().StringVar(&flags.SkipLog, "skip-log", manifest.DefaultSkipLogPath, "Path of the skipped images log")
	cmd.Flags().StringVar(&flags.Parquet, "parquet", "", "Also write the manifest as parquet to this path")
	cmd.Flags().StringVar(&flags.Summary, "summary", "", "Write a YAML run summary to this path")
	cmd.Flags().StringSliceVar(&flags.Extensions, "ext", nil, "Image extensions to pick up (default jpg,jpeg,png,webp,gif)")
	cmd.Flags().BoolVar(&flags.RejectRootImages, "reject-root-images", false, "Skip photos that have no brand folder")
	cmd.Flags().BoolVar(&flags.DryRun, "dry-run", false, "Classify photos without uploading or writing any output file")

	return cmd
}

// applyFlags copies explicitly set flags over the loaded config.
func applyFlags(cmd *cobra.Command, cfg *config.Config, flags *config.Config) {
	changed := cmd.Flags().Changed
	if changed("source") {
		cfg.Source = flags.Source
	}
	if changed("root-folder") {
		cfg.RootFolder = flags.RootFolder
	}
	if changed("host") {
		cfg.Host = flags.Host
	}
	if changed("manifest") {
		cfg.Manifest = flags.Manifest
	}
	if changed("skip-log") {
		cfg.SkipLog = flags.SkipLog
	}
	if changed("parquet") {
		cfg.Parquet = flags.Parquet
	}
	if changed("summary") {
		cfg.Summary = flags.Summary
	}
	if changed("ext") {
		cfg.Extensions = flags.Extensions
	}
	if changed("reject-root-images") {
		cfg.RejectRootImages = flags.RejectRootImages
	}
	if changed("dry-run") {
		cfg.DryRun = flags.DryRun
	}
}

func runUpload(cmd *cobra.Command, cfg *config.Config) error {
	ctx := cmd.Context()
	printer := progress.New(cmd.OutOrStdout(), cmd.ErrOrStderr())
	summary := manifest.NewSummary(cfg.Host, cfg.Source, cfg.RootFolder)

	slog.Info("Starting upload run", "run_id", summary.RunID, "source", cfg.Source, "host", cfg.Host, "dry_run", cfg.DryRun)

	records, err := walker.NewOS(cfg.Source, walker.WithExtensions(cfg.Extensions...)).Walk()
	if err != nil {
		return fmt.Errorf("failed to scan source folder: %w", err)
	}
	summary.Discovered = len(records)
	slog.Info("Found images", "count", len(records))

	var uploader hosts.Uploader
	if !cfg.DryRun {
		uploader, err = newUploader(ctx, cfg)
		if err != nil {
			return err
		}
	}

	orchestrator := batch.New(uploader,
		batch.WithRootFolder(cfg.RootFolder),
		batch.WithPolicy(brand.Policy{RejectRootImages: cfg.RejectRootImages}),
		batch.WithDryRun(cfg.DryRun),
		batch.WithReporter(printer),
	)

	// An interrupted run still writes what it managed to upload.
	result, runErr := orchestrator.Run(ctx, records)

	if cfg.DryRun {
		printer.Note("Dry run: manifest, skip log, parquet and summary were not written")
		fmt.Fprintf(cmd.OutOrStdout(), "\nWould upload: %d  Skipped: %d\n", len(result.Planned), len(result.Skipped))
		return interrupted(ctx, runErr)
	}

	if err := manifest.WriteCSV(cfg.Manifest, result.Rows); err != nil {
		return err
	}
	printer.Saved("CSV", cfg.Manifest)
	summary.Outputs.Manifest = cfg.Manifest

	written, err := manifest.WriteSkipLog(cfg.SkipLog, result.Skipped)
	if err != nil {
		return err
	}
	if written {
		printer.Saved("Skipped images log", cfg.SkipLog)
		summary.Outputs.SkipLog = cfg.SkipLog
	} else {
		printer.Note("No images skipped")
	}

	if cfg.Parquet != "" {
		if err := manifest.WriteParquet(cfg.Parquet, result.Rows); err != nil {
			return err
		}
		printer.Saved("Parquet", cfg.Parquet)
		summary.Outputs.Parquet = cfg.Parquet
	}

	summary.Uploaded = len(result.Rows)
	summary.Skipped = len(result.Skipped)
	summary.Failed = len(result.Failures)
	for _, f := range result.Failures {
		summary.Failures = append(summary.Failures, fmt.Sprintf("%s: %v", f.RelativePath, f.Err))
	}
	summary.FinishedAt = time.Now().UTC()

	if cfg.Summary != "" {
		if err := manifest.WriteSummary(cfg.Summary, summary); err != nil {
			return err
		}
		printer.Saved("Summary", cfg.Summary)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "\nUploaded: %d  Skipped: %d  Failed: %d\n", summary.Uploaded, summary.Skipped, summary.Failed)

	return interrupted(ctx, runErr)
}

func interrupted(ctx context.Context, runErr error) error {
	if runErr != nil && errors.Is(runErr, ctx.Err()) {
		return fmt.Errorf("upload run interrupted: %w", runErr)
	}
	return runErr
}
