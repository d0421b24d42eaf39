package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Store writes uploaded files under a local directory that the server
// exposes at /uploads. Filenames get a uuid prefix so users cannot
// clobber each other's files.
type Store struct {
	dir           string
	publicBaseURL string
}

func New(dir, publicBaseURL string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Store{dir: dir, publicBaseURL: publicBaseURL}, nil
}

// Save persists the uploaded file under <dir>/<category>/<ownerID>/ and
// returns its public URL.
func (s *Store) Save(file *multipart.FileHeader, category string, ownerID uint) (string, error) {
	rel := filepath.Join(category, fmt.Sprint(ownerID), uuid.NewString()+"-"+filepath.Base(file.Filename))
	dst := filepath.Join(s.dir, rel)

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", err
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return "", err
	}
	defer out.Close()

	if _, err := io.Copy(out, src); err != nil {
		return "", err
	}

	return s.publicBaseURL + "/uploads/" + filepath.ToSlash(rel), nil
}

// Dir returns the root upload directory for the static file server.
func (s *Store) Dir() string { return s.dir }
