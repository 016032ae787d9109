package manifest

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Summary describes one upload run
type Summary struct {
	RunID      string    `yaml:"runid"`
	StartedAt  time.Time `yaml:"startedat"`
	FinishedAt time.Time `yaml:"finishedat"`
	Host       string    `yaml:"host"`
	Source     string    `yaml:"source"`
	RootFolder string    `yaml:"rootfolder"`
	Discovered int       `yaml:"discovered"`
	Uploaded   int       `yaml:"uploaded"`
	Skipped    int       `yaml:"skipped"`
	Failed     int       `yaml:"failed"`
	Failures   []string  `yaml:"failures,omitempty"`
	Outputs    Outputs   `yaml:"outputs"`
}

// Outputs lists the files a run produced
type Outputs struct {
	Manifest string `yaml:"manifest"`
	SkipLog  string `yaml:"skiplog,omitempty"`
	Parquet  string `yaml:"parquet,omitempty"`
}

// NewSummary starts a summary with a fresh run id
func NewSummary(host, source, rootFolder string) *Summary {
	return &Summary{
		RunID:      uuid.New().String(),
		StartedAt:  time.Now().UTC(),
		Host:       host,
		Source:     source,
		RootFolder: rootFolder,
	}
}

// WriteSummary saves the summary as YAML
func WriteSummary(path string, summary *Summary) error {
	data, err := yaml.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to marshal run summary: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write run summary: %w", err)
	}
	return nil
}
