package storage

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func uploadHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("coverImage", filename)
	assert.NoError(t, err)
	_, err = part.Write(content)
	assert.NoError(t, err)
	assert.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	assert.NoError(t, req.ParseMultipartForm(1<<20))

	return req.MultipartForm.File["coverImage"][0]
}

func TestUploadStore_Save(t *testing.T) {
	store, err := NewUploadStore(t.TempDir())
	assert.NoError(t, err)

	name, err := store.Save(uploadHeader(t, "My Cover.PNG", []byte("png-bytes")))
	assert.NoError(t, err)
	assert.True(t, strings.HasSuffix(name, ".png"))
	assert.NotContains(t, name, "My Cover", "stored name must not reuse the client filename")

	data, err := os.ReadFile(filepath.Join(store.Dir(), name))
	assert.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), data)
}

func TestUploadStore_RejectsUnsupportedType(t *testing.T) {
	store, err := NewUploadStore(t.TempDir())
	assert.NoError(t, err)

	_, err = store.Save(uploadHeader(t, "notes.txt", []byte("text")))
	assert.Equal(t, ErrUnsupportedFileType, err)
}

func TestUploadStore_Remove(t *testing.T) {
	store, err := NewUploadStore(t.TempDir())
	assert.NoError(t, err)

	name, err := store.Save(uploadHeader(t, "cover.jpg", []byte("jpg-bytes")))
	assert.NoError(t, err)

	assert.NoError(t, store.Remove(name))
	_, statErr := os.Stat(filepath.Join(store.Dir(), name))
	assert.True(t, os.IsNotExist(statErr))

	// Removing a missing file is not an error.
	assert.NoError(t, store.Remove(name))
	assert.NoError(t, store.Remove(""))
}
