package filestorage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/yigit/projecthub/internal/pkg/apperrors"
	"github.com/yigit/projecthub/internal/pkg/logger"
)

var unsafeNameChars = regexp.MustCompile(`[^a-zA-Z0-9.-]`)

// LocalStorage handles saving files to the local filesystem.
type LocalStorage struct {
	basePath     string // The root directory where files will be stored
	publicPrefix string // URL prefix the base directory is served under
	now          func() time.Time
}

// NewLocalStorage creates a new LocalStorage instance.
// basePath is the directory on the server; publicPrefix is the URL path it is served from.
func NewLocalStorage(basePath, publicPrefix string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	logger.Info().Str("path", basePath).Msg("Local storage directory ensured")

	if publicPrefix == "" {
		publicPrefix = "/uploads"
	}
	return &LocalStorage{
		basePath:     basePath,
		publicPrefix: "/" + strings.Trim(publicPrefix, "/"),
		now:          time.Now,
	}, nil
}

// SanitizeFileName strips every character outside [a-zA-Z0-9.-] from a client file name
func SanitizeFileName(name string) string {
	name = unsafeNameChars.ReplaceAllString(filepath.Base(name), "")
	if strings.Trim(name, ".") == "" {
		return "file"
	}
	return name
}

// ValidateUpload rejects empty files and files over MaxUploadSize
func ValidateUpload(fileHeader *multipart.FileHeader) error {
	if fileHeader == nil || fileHeader.Size == 0 {
		return apperrors.NewValidationError("File is empty")
	}
	if fileHeader.Size > MaxUploadSize {
		return apperrors.NewValidationError("File size exceeds 5MB limit")
	}
	return nil
}

// SaveFileWithPath saves a file to a specified subdirectory as "<unix millis>-<sanitized name>"
func (ls *LocalStorage) SaveFileWithPath(fileHeader *multipart.FileHeader, subPath string) (*FileInfo, error) {
	if err := ValidateUpload(fileHeader); err != nil {
		return nil, err
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Error().Err(err).Str("filename", fileHeader.Filename).Msg("Failed to open uploaded file")
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	subPath = strings.Trim(filepath.ToSlash(filepath.Clean("/"+subPath)), "/")
	fullDirPath := ls.basePath
	if subPath != "" {
		fullDirPath = filepath.Join(ls.basePath, filepath.FromSlash(subPath))
		if err := os.MkdirAll(fullDirPath, os.ModePerm); err != nil {
			logger.Error().Err(err).Str("path", fullDirPath).Msg("Failed to create subdirectory")
			return nil, fmt.Errorf("failed to create subdirectory: %w", err)
		}
	}

	storedName := strconv.FormatInt(ls.now().UnixMilli(), 10) + "-" + SanitizeFileName(fileHeader.Filename)
	dstPath := filepath.Join(fullDirPath, storedName)

	dst, err := os.Create(dstPath)
	if err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to create destination file")
		return nil, fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	written, err := io.Copy(dst, io.LimitReader(file, MaxUploadSize+1))
	if err != nil {
		_ = os.Remove(dstPath)
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to copy uploaded file content")
		return nil, fmt.Errorf("failed to save file content: %w", err)
	}
	if written > MaxUploadSize {
		_ = os.Remove(dstPath)
		return nil, apperrors.NewValidationError("File size exceeds 5MB limit")
	}

	info := &FileInfo{
		Path:     path.Join(ls.publicPrefix, subPath, storedName),
		Filename: storedName,
		FileSize: written,
		MimeType: fileHeader.Header.Get("Content-Type"),
	}
	logger.Info().Str("filename", fileHeader.Filename).Str("path", info.Path).Msg("File saved successfully")
	return info, nil
}

// DeleteFile removes a stored file given its public path. Missing files are not an error.
func (ls *LocalStorage) DeleteFile(publicPath string) error {
	rel := strings.TrimPrefix(publicPath, ls.publicPrefix)
	rel = strings.Trim(path.Clean("/"+rel), "/")
	if rel == "" {
		return fmt.Errorf("invalid file path: %s", publicPath)
	}

	physicalPath := filepath.Join(ls.basePath, filepath.FromSlash(rel))
	if err := os.Remove(physicalPath); err != nil {
		if os.IsNotExist(err) {
			logger.Warn().Str("path", physicalPath).Msg("File to delete does not exist")
			return nil
		}
		logger.Error().Err(err).Str("path", physicalPath).Msg("Failed to delete file")
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}
