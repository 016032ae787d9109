package cmd

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "photouploader",
		Short: "Upload brand product photos to an asset host and build a CSV manifest",
		Long: `Photouploader walks a folder of product photos organised by brand,
normalises folder and file names into safe identifiers, uploads every photo
whose name mentions its brand, and writes a Brand,Description,Image manifest.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()

			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		},
	}

	cmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Verbose logging")

	cmd.AddCommand(newUploadCmd())
	cmd.AddCommand(newSanitizeCmd())

	return cmd
}
