package s3

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halalquebec/photouploader/internal/hosts"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

type fakeS3 struct {
	inputs []*s3.PutObjectInput
	err    error
}

func (f *fakeS3) PutObject(_ context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.inputs = append(f.inputs, params)
	if f.err != nil {
		return nil, f.err
	}
	return &s3.PutObjectOutput{}, nil
}

func writeImage(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "BrandX_Chicken.png")
	require.NoError(t, os.WriteFile(path, pngHeader, 0o644))
	return path
}

func TestUploadBuildsKeyAndContentType(t *testing.T) {
	fake := &fakeS3{}
	host := NewWithClient(fake, Config{Bucket: "assets", Region: "ca-central-1"})

	result, err := host.Upload(context.Background(), hosts.UploadRequest{
		LocalPath: writeImage(t),
		Folder:    "halal_quebec/brandx",
		PublicID:  "brandx_chicken",
		Overwrite: true,
	})
	require.NoError(t, err)
	require.Len(t, fake.inputs, 1)

	in := fake.inputs[0]
	assert.Equal(t, "assets", aws.ToString(in.Bucket))
	assert.Equal(t, "halal_quebec/brandx/brandx_chicken.png", aws.ToString(in.Key))
	assert.Equal(t, "image/png", aws.ToString(in.ContentType))
	assert.Equal(t, int64(len(pngHeader)), aws.ToInt64(in.ContentLength))
	assert.Nil(t, in.IfNoneMatch)

	assert.Equal(t, "halal_quebec/brandx/brandx_chicken", result.PublicID)
	assert.Equal(t, "https://assets.s3.ca-central-1.amazonaws.com/halal_quebec/brandx/brandx_chicken.png", result.SecureURL)
	assert.Equal(t, int64(len(pngHeader)), result.Bytes)
}

func TestUploadWithoutOverwriteIsConditional(t *testing.T) {
	fake := &fakeS3{}
	host := NewWithClient(fake, Config{Bucket: "assets"})

	_, err := host.Upload(context.Background(), hosts.UploadRequest{
		LocalPath: writeImage(t),
		PublicID:  "x",
	})
	require.NoError(t, err)
	require.Len(t, fake.inputs, 1)
	assert.Equal(t, "*", aws.ToString(fake.inputs[0].IfNoneMatch))
}

func TestObjectURL(t *testing.T) {
	tests := []struct {
		name     string
		cfg      Config
		expected string
	}{
		{
			name:     "public base url",
			cfg:      Config{Bucket: "assets", PublicBaseURL: "https://cdn.example.com/"},
			expected: "https://cdn.example.com/a/b.png",
		},
		{
			name:     "custom endpoint",
			cfg:      Config{Bucket: "assets", Endpoint: "http://localhost:4566"},
			expected: "http://localhost:4566/assets/a/b.png",
		},
		{
			name:     "default region",
			cfg:      Config{Bucket: "assets"},
			expected: "https://assets.s3.us-east-1.amazonaws.com/a/b.png",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			host := NewWithClient(&fakeS3{}, tt.cfg)
			assert.Equal(t, tt.expected, host.objectURL("a/b.png"))
		})
	}
}

func TestUploadErrors(t *testing.T) {
	t.Run("put failure", func(t *testing.T) {
		host := NewWithClient(&fakeS3{err: errors.New("access denied")}, Config{Bucket: "assets"})
		_, err := host.Upload(context.Background(), hosts.UploadRequest{LocalPath: writeImage(t), PublicID: "x", Overwrite: true})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "access denied")
	})

	t.Run("missing file", func(t *testing.T) {
		fake := &fakeS3{}
		host := NewWithClient(fake, Config{Bucket: "assets"})
		_, err := host.Upload(context.Background(), hosts.UploadRequest{LocalPath: filepath.Join(t.TempDir(), "gone.png"), PublicID: "x"})
		require.Error(t, err)
		assert.Empty(t, fake.inputs)
	})
}

func TestNewRequiresBucket(t *testing.T) {
	_, err := New(context.Background(), Config{})
	assert.Error(t, err)
}
