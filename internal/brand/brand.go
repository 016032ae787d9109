// Package brand decides which images are uploaded: a file is admitted only
// when its sanitized name mentions the brand that owns its folder.
package brand

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/halalquebec/photouploader/internal/sanitize"
)

// Policy tunes the edge cases of the containment check.
type Policy struct {
	// RejectRootImages skips files whose brand is empty: files directly in
	// the source root, or under a folder that sanitizes to "". By default
	// they are admitted, since the empty brand is contained in every name.
	RejectRootImages bool
}

// Decision is the outcome of classifying one relative path.
type Decision struct {
	CleanSubFolder  string
	CleanedFilename string
	Brand           string
	Admitted        bool
	Reason          string // set when the file is skipped
}

// Classify splits relativePath (host separator) into its folder chain and
// bare file name, sanitizes both and applies the brand containment check.
func Classify(relativePath string, policy Policy) Decision {
	dir, name := split(relativePath)

	var segments []string
	if dir != "" {
		segments = strings.Split(dir, string(filepath.Separator))
	}

	d := Decision{
		CleanSubFolder:  sanitize.Path(segments),
		CleanedFilename: sanitize.Name(name),
	}
	d.Brand = lastSegment(d.CleanSubFolder)

	switch {
	case d.CleanedFilename == "":
		d.Reason = fmt.Sprintf("Skipped: %s (name sanitizes to an empty identifier)", relativePath)
	case d.Brand == "" && policy.RejectRootImages:
		d.Reason = fmt.Sprintf("Skipped: %s (no brand folder)", relativePath)
	case !strings.Contains(d.CleanedFilename, d.Brand):
		d.Reason = fmt.Sprintf("Skipped: %s (does not contain brand %q)", relativePath, d.Brand)
	default:
		d.Admitted = true
	}
	return d
}

// split returns the directory part ("" for root-level files) and the file
// name without its last extension.
func split(relativePath string) (string, string) {
	dir, base := filepath.Split(relativePath)
	dir = strings.TrimSuffix(dir, string(filepath.Separator))

	name := strings.TrimSuffix(base, filepath.Ext(base))
	if name == "" {
		// dotfiles such as ".png" have no extension of their own
		name = base
	}
	return dir, name
}

func lastSegment(p string) string {
	if i := strings.LastIndex(p, "/"); i >= 0 {
		return p[i+1:]
	}
	return p
}
