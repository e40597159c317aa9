package file_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/foodorder/pkg/file"
)

func TestIsImage(t *testing.T) {
	t.Parallel()

	assert.True(t, file.IsImage(newFileHeader(t, "pizza.png", pngBytes)))
	assert.False(t, file.IsImage(newFileHeader(t, "notes.png", []byte("just some text"))))
	assert.False(t, file.IsImage(nil))
}

func TestValidateImage(t *testing.T) {
	t.Parallel()

	fh := newFileHeader(t, "pizza.png", pngBytes)

	assert.NoError(t, file.ValidateImage(fh, 1<<20))
	assert.NoError(t, file.ValidateImage(fh, 0))
	assert.ErrorIs(t, file.ValidateImage(fh, 10), file.ErrFileTooLarge)
	assert.ErrorIs(t, file.ValidateImage(newFileHeader(t, "a.txt", []byte("hello")), 0), file.ErrNotAnImage)
	assert.ErrorIs(t, file.ValidateImage(nil, 0), file.ErrNilFileHeader)
}

func TestGetExtension(t *testing.T) {
	t.Parallel()

	assert.Equal(t, ".jpg", file.GetExtension(newFileHeader(t, "Burger.JPG", pngBytes)))
	assert.Equal(t, "", file.GetExtension(nil))
}

func TestSanitizeFilename(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"../../../etc/passwd":    "passwd",
		`C:\Windows\file.txt`:    "file.txt",
		"pizza\x00.png":          "pizza.png",
		"..":                     "unnamed",
		"":                       "unnamed",
		"burger with cheese.jpg": "burger with cheese.jpg",
	}
	for in, want := range tests {
		assert.Equal(t, want, file.SanitizeFilename(in), in)
	}
}
