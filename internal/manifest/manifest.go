// Package manifest writes the outputs of an upload run: the CSV manifest,
// the skipped-files log, and optional parquet and YAML companions.
package manifest

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/parquet-go/parquet-go"

	"github.com/halalquebec/photouploader/internal/models"
)

const (
	DefaultCSVPath     = "halal_quebec_images.csv"
	DefaultSkipLogPath = "skipped_images.txt"
)

// Header is the fixed first line of the manifest.
var Header = []string{"Brand", "Description", "Image"}

// WriteCSV writes rows in order under Header, replacing any existing file.
func WriteCSV(path string, rows []models.UploadRow) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create manifest file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(Header); err != nil {
		return fmt.Errorf("failed to write manifest header: %w", err)
	}
	for _, row := range rows {
		if err := writer.Write([]string{row.Brand, row.Description, row.Image}); err != nil {
			return fmt.Errorf("failed to write manifest row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush manifest: %w", err)
	}

	return file.Close()
}

// WriteSkipLog writes one reason per line. Nothing is written, and an
// existing file is left alone, when reasons is empty; the bool reports
// whether the file was written.
func WriteSkipLog(path string, reasons []string) (bool, error) {
	if len(reasons) == 0 {
		return false, nil
	}
	if err := os.WriteFile(path, []byte(strings.Join(reasons, "\n")), 0644); err != nil {
		return false, fmt.Errorf("failed to write skip log: %w", err)
	}
	return true, nil
}

// WriteParquet exports the same rows as the CSV manifest.
func WriteParquet(path string, rows []models.UploadRow) error {
	if err := parquet.WriteFile(path, rows); err != nil {
		return fmt.Errorf("failed to write parquet manifest: %w", err)
	}
	return nil
}
