package hosts

import (
	"context"
	"path"
	"strings"
)

// UploadRequest describes one file to push to an asset host
type UploadRequest struct {
	LocalPath string // file on disk
	Folder    string // "/"-separated destination folder
	PublicID  string // identifier within Folder
	Overwrite bool   // replace an existing asset with the same identifier
}

// UploadResult is what a host reports back for a stored asset
type UploadResult struct {
	PublicID  string
	SecureURL string
	Bytes     int64
}

// Uploader defines the interface for a remote asset host
type Uploader interface {
	Upload(ctx context.Context, req UploadRequest) (*UploadResult, error)
}

// ObjectKey joins folder and name into a "/"-separated key without empty
// segments or a leading slash.
func ObjectKey(folder, name string) string {
	return strings.TrimPrefix(path.Join(folder, name), "/")
}
