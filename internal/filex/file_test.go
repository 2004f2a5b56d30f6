package filex

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 1x1 red PNG.
var tinyPNG = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0x00, 0x00, 0x0d,
	0x49, 0x48, 0x44, 0x52, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x02, 0x00, 0x00, 0x00, 0x90, 0x77, 0x53, 0xde, 0x00, 0x00, 0x00,
	0x0c, 0x49, 0x44, 0x41, 0x54, 0x08, 0xd7, 0x63, 0xf8, 0xcf, 0xc0, 0x00,
	0x00, 0x00, 0x03, 0x00, 0x01, 0x5e, 0xf3, 0x2a, 0x3a, 0x00, 0x00, 0x00,
	0x00, 0x49, 0x45, 0x4e, 0x44, 0xae, 0x42, 0x60, 0x82,
}

func TestReadImage_SniffsMimeType(t *testing.T) {
	path := filepath.Join(t.TempDir(), "red.bin")
	require.NoError(t, os.WriteFile(path, tinyPNG, 0o600))

	data, mime, err := ReadImage(path)
	require.NoError(t, err)
	assert.Equal(t, tinyPNG, data)
	assert.Equal(t, "image/png", mime)
}

func TestReadImage_MissingFile(t *testing.T) {
	_, _, err := ReadImage(filepath.Join(t.TempDir(), "nope.png"))
	require.Error(t, err)
}
