// Package filex contains small filesystem helpers used by the CLI.
package filex

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
)

func EnsureSubDir(dirName string) (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getwd: %w", err)
	}

	dir := filepath.Join(cwd, dirName)

	if err := os.MkdirAll(dir, 0o770); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}

	return dir, nil
}

// ReadImage loads an image file and sniffs its MIME type from the first
// bytes of content. The file extension is not trusted.
func ReadImage(path string) (data []byte, mimeType string, err error) {
	data, err = os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("reading %s: %w", path, err)
	}
	return data, http.DetectContentType(data), nil
}
