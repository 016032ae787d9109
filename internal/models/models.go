package models

// ImageRecord is one image file discovered under the source directory
type ImageRecord struct {
	LocalPath    string `json:"local_path"`
	RelativePath string `json:"relative_path"` // uses the host path separator
}

// UploadRow is one manifest line for a successfully uploaded image
type UploadRow struct {
	Brand       string `json:"brand" parquet:"brand"`
	Description string `json:"description" parquet:"description"`
	Image       string `json:"image" parquet:"image"`
}
