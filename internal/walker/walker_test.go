package walker

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halalquebec/photouploader/internal/models"
)

func writeFixture(t *testing.T, fsys billy.Filesystem, paths ...string) {
	t.Helper()
	for _, p := range paths {
		if dir := filepath.Dir(p); dir != "." {
			require.NoError(t, fsys.MkdirAll(dir, 0o755))
		}
		require.NoError(t, util.WriteFile(fsys, p, []byte("img"), 0o644))
	}
}

func relativePaths(records []models.ImageRecord) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, filepath.ToSlash(r.RelativePath))
	}
	sort.Strings(out)
	return out
}

func TestWalkFindsImagesRecursively(t *testing.T) {
	fsys := memfs.New()
	writeFixture(t, fsys,
		"root.JPG",
		"BrandX/BrandX_Chicken.png",
		"BrandX/notes.txt",
		"BrandX/Frozen/brandx_nuggets.webp",
		"Épicerie/Al Safa/al_safa_kebab.jpeg",
		"Épicerie/Al Safa/banner.GIF",
		"Other/readme.md",
	)
	require.NoError(t, fsys.MkdirAll("Empty/Nested", 0o755))

	records, err := New(fsys, "photos").Walk()
	require.NoError(t, err)

	assert.Equal(t, []string{
		"BrandX/BrandX_Chicken.png",
		"BrandX/Frozen/brandx_nuggets.webp",
		"root.JPG",
		"Épicerie/Al Safa/al_safa_kebab.jpeg",
		"Épicerie/Al Safa/banner.GIF",
	}, relativePaths(records))
}

func TestWalkBuildsLocalPathFromRoot(t *testing.T) {
	fsys := memfs.New()
	writeFixture(t, fsys, "BrandX/BrandX_Chicken.png")

	records, err := New(fsys, "photos").Walk()
	require.NoError(t, err)
	require.Len(t, records, 1)

	assert.Equal(t, filepath.Join("photos", "BrandX", "BrandX_Chicken.png"), records[0].LocalPath)
	assert.Equal(t, filepath.Join("BrandX", "BrandX_Chicken.png"), records[0].RelativePath)
}

func TestWalkWithExtensions(t *testing.T) {
	fsys := memfs.New()
	writeFixture(t, fsys, "a/one.png", "a/two.tiff", "a/three.TIF")

	records, err := New(fsys, "photos", WithExtensions(".tiff", "TIF")).Walk()
	require.NoError(t, err)

	assert.Equal(t, []string{"a/three.TIF", "a/two.tiff"}, relativePaths(records))
}

func TestWalkNoImages(t *testing.T) {
	fsys := memfs.New()
	writeFixture(t, fsys, "notes.txt", "BrandX/readme.md")
	require.NoError(t, fsys.MkdirAll("Empty", 0o755))

	records, err := New(fsys, "photos").Walk()
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestWalkOSDirectory(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "BrandX"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "BrandX", "brandx_a.png"), []byte("img"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "BrandX", "skip.txt"), []byte("txt"), 0o644))

	records, err := NewOS(root).Walk()
	require.NoError(t, err)
	require.Len(t, records, 1)

	assert.Equal(t, filepath.Join(root, "BrandX", "brandx_a.png"), records[0].LocalPath)
	assert.Equal(t, filepath.Join("BrandX", "brandx_a.png"), records[0].RelativePath)
}

func TestWalkMissingRoot(t *testing.T) {
	_, err := NewOS(filepath.Join(t.TempDir(), "missing")).Walk()
	assert.Error(t, err)
}
