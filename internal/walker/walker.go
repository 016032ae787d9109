// Package walker finds image files under a source directory.
package walker

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"

	"github.com/halalquebec/photouploader/internal/models"
)

// DefaultExtensions are the image extensions picked up when none are configured.
var DefaultExtensions = []string{"jpg", "jpeg", "png", "webp", "gif"}

// Walker lists image files on a filesystem rooted at the source directory.
type Walker struct {
	fs         billy.Filesystem
	root       string
	extensions map[string]struct{}
}

// Option configures a Walker.
type Option func(*Walker)

// WithExtensions replaces the set of matched extensions. Matching is
// case-insensitive and a leading dot is optional.
func WithExtensions(exts ...string) Option {
	return func(w *Walker) {
		if len(exts) == 0 {
			return
		}
		w.extensions = extensionSet(exts)
	}
}

// New returns a Walker over fsys. root is the source directory fsys is rooted
// at and only serves to build each record's LocalPath.
func New(fsys billy.Filesystem, root string, opts ...Option) *Walker {
	w := &Walker{
		fs:         fsys,
		root:       root,
		extensions: extensionSet(DefaultExtensions),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// NewOS returns a Walker over the local directory root.
func NewOS(root string, opts ...Option) *Walker {
	return New(osfs.New(root), root, opts...)
}

// Walk returns every matching file in directory-listing order.
func (w *Walker) Walk() ([]models.ImageRecord, error) {
	var records []models.ImageRecord
	if err := w.walkDir(".", &records); err != nil {
		return nil, err
	}
	slog.Debug("Finished scanning source directory", "root", w.root, "images", len(records))
	return records, nil
}

func (w *Walker) walkDir(dir string, records *[]models.ImageRecord) error {
	entries, err := w.fs.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read directory %s: %w", filepath.Join(w.root, dir), err)
	}

	for _, entry := range entries {
		rel := w.fs.Join(dir, entry.Name())
		if entry.IsDir() {
			if err := w.walkDir(rel, records); err != nil {
				return err
			}
			continue
		}
		if !w.matches(entry.Name()) {
			continue
		}
		rel = filepath.FromSlash(filepath.Clean(rel))
		*records = append(*records, models.ImageRecord{
			LocalPath:    filepath.Join(w.root, rel),
			RelativePath: rel,
		})
	}
	return nil
}

func (w *Walker) matches(name string) bool {
	ext := strings.TrimPrefix(filepath.Ext(name), ".")
	if ext == "" {
		return false
	}
	_, ok := w.extensions[strings.ToLower(ext)]
	return ok
}

func extensionSet(exts []string) map[string]struct{} {
	set := make(map[string]struct{}, len(exts))
	for _, ext := range exts {
		set[strings.ToLower(strings.TrimPrefix(ext, "."))] = struct{}{}
	}
	return set
}
