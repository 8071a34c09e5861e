package upload

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Saver writes uploaded profile images to disk and derives the public
// URL they will be served under.
type Saver struct {
	dir     string
	baseURL string
}

func NewSaver(dir, baseURL string) *Saver {
	return &Saver{
		dir:     dir,
		baseURL: baseURL,
	}
}

// Save stores the file under a unique name and returns its public URL.
func (s *Saver) Save(file multipart.File, header *multipart.FileHeader) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload dir: %w", err)
	}

	name := uuid.NewString() + filepath.Ext(header.Filename)
	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("failed to create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		return "", fmt.Errorf("failed to write upload file: %w", err)
	}

	return fmt.Sprintf("%s/img/%s", s.baseURL, name), nil
}
