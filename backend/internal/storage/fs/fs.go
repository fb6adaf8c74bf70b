package fs

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ErrNotFound is returned by Read when no stored file matches the name.
var ErrNotFound = fmt.Errorf("file not found")

// Storage keeps uploaded artifacts in a flat directory under rootPath. Stored
// names are generated, so concurrent uploads of equally-named files never
// collide.
type Storage struct {
	rootPath string
}

func New(rootPath string) (*Storage, error) {
	// Use filepath.Clean to prevent path traversal issues like "uploads/../"
	p := filepath.Clean(rootPath)

	if err := os.MkdirAll(p, 0755); err != nil {
		return nil, fmt.Errorf("failed to create root storage directory %s: %w", p, err)
	}

	return &Storage{rootPath: p}, nil
}

// Save writes the upload to disk under a generated name that keeps the
// original extension. Returns the stored filename.
func (s *Storage) Save(fileData io.Reader, originalFilename string) (string, error) {
	// Clean the extension to prevent shenanigans like ".jpg/../../foo.txt"
	ext := strings.ToLower(filepath.Ext(filepath.Base(originalFilename)))
	if ext != "" {
		ext = filepath.Clean(ext)
	}
	filename := uuid.NewString() + ext
	fullPath := filepath.Join(s.rootPath, filename)

	dst, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, fileData); err != nil {
		// A failed copy must not leave a partial artifact behind.
		os.Remove(fullPath) // Best effort, ignore error here.
		return "", fmt.Errorf("failed to copy file data: %w", err)
	}

	return filename, nil
}

// Read opens a stored file. The name is reduced to its base so a crafted
// "../../etc/passwd" can never escape the root.
func (s *Storage) Read(filename string) (io.ReadCloser, error) {
	fullPath := filepath.Join(s.rootPath, filepath.Base(filename))

	file, err := os.Open(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, filename)
		}
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	return file, nil
}
