// Package storage persists uploaded product images and maps them to public
// URLs. The disk implementation stands in for a hosted object store; callers
// only see the ImageStore interface.
package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ImageStore saves and deletes product image objects.
type ImageStore interface {
	// Save stores the object and returns its public URL.
	Save(ctx context.Context, r io.Reader, originalName string) (string, error)
	// Delete removes an object previously saved by this store. URLs pointing
	// elsewhere (external image links) are left alone.
	Delete(ctx context.Context, url string) error
}

// DiskImageStore writes objects under a root directory and serves them below
// a base URL. Object names are uuid-prefixed so uploads sharing a file name
// never collide.
type DiskImageStore struct {
	root    string
	baseURL string
	log     *slog.Logger
}

// NewDiskImageStore creates the store, making the root directory if needed.
func NewDiskImageStore(root, baseURL string, log *slog.Logger) (*DiskImageStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create image root: %w", err)
	}
	return &DiskImageStore{
		root:    root,
		baseURL: strings.TrimRight(baseURL, "/"),
		log:     log,
	}, nil
}

// Save stores the object under a uuid-prefixed name and returns its URL.
func (s *DiskImageStore) Save(ctx context.Context, r io.Reader, originalName string) (string, error) {
	name := uuid.NewString() + "_" + sanitize(originalName)
	path := filepath.Join(s.root, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create image object: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("write image object: %w", err)
	}

	url := s.baseURL + "/" + name
	s.log.Debug("image object stored", "name", name, "url", url)
	return url, nil
}

// Delete removes the object behind url if this store owns it.
func (s *DiskImageStore) Delete(ctx context.Context, url string) error {
	if !strings.HasPrefix(url, s.baseURL+"/") {
		return nil
	}

	name := filepath.Base(strings.TrimPrefix(url, s.baseURL+"/"))
	if err := os.Remove(filepath.Join(s.root, name)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove image object: %w", err)
	}
	return nil
}

// sanitize keeps only the final path element of an uploaded file name and
// replaces characters that are unsafe in URLs or file systems.
func sanitize(name string) string {
	name = filepath.Base(name)
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.' || r == '-' || r == '_':
			return r
		default:
			return '-'
		}
	}, name)
}
