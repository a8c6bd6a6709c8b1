package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	pngHeader = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0x00, 0x00}
	pdfHeader = []byte("%PDF-1.7 rest of file")
)

func TestValidateFile(t *testing.T) {
	t.Run("Accepts a matching image", func(t *testing.T) {
		ext, err := ValidateFile(FileKindImage, "logo.PNG", pngHeader)
		assert.NoError(t, err)
		assert.Equal(t, ".png", ext)
	})

	t.Run("Accepts a matching document", func(t *testing.T) {
		ext, err := ValidateFile(FileKindDocument, "resume.pdf", pdfHeader)
		assert.NoError(t, err)
		assert.Equal(t, ".pdf", ext)
	})

	t.Run("Rejects a document where an image is expected", func(t *testing.T) {
		_, err := ValidateFile(FileKindImage, "resume.pdf", pdfHeader)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "not allowed")
	})

	t.Run("Rejects content that does not match the extension", func(t *testing.T) {
		// A PDF renamed to .png must not pass as an image.
		_, err := ValidateFile(FileKindImage, "logo.png", pdfHeader)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "does not match")
	})

	t.Run("Rejects missing extension", func(t *testing.T) {
		_, err := ValidateFile(FileKindDocument, "resume", pdfHeader)
		assert.Error(t, err)
	})

	t.Run("Rejects truncated content", func(t *testing.T) {
		_, err := ValidateFile(FileKindImage, "logo.png", []byte{0x89})
		assert.Error(t, err)
	})
}

func TestContentTypeFor(t *testing.T) {
	assert.Equal(t, "image/png", ContentTypeFor(".png"))
	assert.Equal(t, "image/jpeg", ContentTypeFor(".JPG"))
	assert.Equal(t, "application/pdf", ContentTypeFor(".pdf"))
	assert.Equal(t, "application/octet-stream", ContentTypeFor(".exe"))
}
