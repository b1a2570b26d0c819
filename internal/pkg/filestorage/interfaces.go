package filestorage

import (
	"mime/multipart"
)

// MaxUploadSize is the largest accepted upload in bytes
const MaxUploadSize = 5 * 1024 * 1024

// FileInfo represents information about a stored file
type FileInfo struct {
	Path     string // Public path the file is served from, e.g. /uploads/proposals/1700000000000-plan.pdf
	Filename string // Stored file name
	FileSize int64  // Size in bytes
	MimeType string // MIME type reported by the client
}

// FileStorage defines the interface for file storage operations
type FileStorage interface {
	// SaveFileWithPath validates an upload and stores it under a subdirectory
	SaveFileWithPath(fileHeader *multipart.FileHeader, subPath string) (*FileInfo, error)

	// DeleteFile removes a file previously returned by SaveFileWithPath
	DeleteFile(publicPath string) error
}
