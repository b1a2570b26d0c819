package filestorage

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/projecthub/internal/pkg/apperrors"
)

// fileHeader builds a real multipart.FileHeader by parsing a multipart request
func fileHeader(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/upload", body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<20))
	return req.MultipartForm.File["file"][0]
}

func TestSanitizeFileName(t *testing.T) {
	assert.Equal(t, "myreportv2.pdf", SanitizeFileName("my report (v2).pdf"))
	assert.Equal(t, "passwd", SanitizeFileName("../../etc/passwd"))
	assert.Equal(t, "file", SanitizeFileName("ğüş"))
}

func TestSaveFileWithPath(t *testing.T) {
	dir := t.TempDir()
	ls, err := NewLocalStorage(dir, "uploads")
	require.NoError(t, err)
	ls.now = func() time.Time { return time.UnixMilli(1700000000000) }

	info, err := ls.SaveFileWithPath(fileHeader(t, "Final Proposal.pdf", []byte("proposal body")), "proposals")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/proposals/1700000000000-FinalProposal.pdf", info.Path)
	assert.Equal(t, int64(len("proposal body")), info.FileSize)

	data, err := os.ReadFile(filepath.Join(dir, "proposals", info.Filename))
	require.NoError(t, err)
	assert.Equal(t, "proposal body", string(data))

	require.NoError(t, ls.DeleteFile(info.Path))
	_, err = os.Stat(filepath.Join(dir, "proposals", info.Filename))
	assert.True(t, os.IsNotExist(err))
	assert.NoError(t, ls.DeleteFile(info.Path))
}

func TestSaveFileWithPath_Rejections(t *testing.T) {
	ls, err := NewLocalStorage(t.TempDir(), "/uploads")
	require.NoError(t, err)

	_, err = ls.SaveFileWithPath(fileHeader(t, "empty.txt", nil), "")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	assert.Equal(t, "File is empty", err.Error())

	big := []byte(strings.Repeat("a", MaxUploadSize+1))
	_, err = ls.SaveFileWithPath(fileHeader(t, "big.bin", big), "")
	require.Error(t, err)
	assert.Equal(t, "File size exceeds 5MB limit", err.Error())
}
