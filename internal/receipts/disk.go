package receipts

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DiskStore writes receipts into a local directory. The server exposes
// that directory under BaseURL.
type DiskStore struct {
	dir     string
	baseURL string
}

var _ Store = (*DiskStore)(nil)

// NewDiskStore creates dir if needed.
func NewDiskStore(dir, baseURL string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create receipt directory: %w", err)
	}
	return &DiskStore{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// Dir is the directory receipts are written to.
func (s *DiskStore) Dir() string { return s.dir }

func (s *DiskStore) Backend() string { return "disk" }

// Upload writes the file and returns BaseURL/<key>.
func (s *DiskStore) Upload(ctx context.Context, r Receipt) (string, error) {
	key, _, err := prepare(r)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := os.WriteFile(filepath.Join(s.dir, key), r.Data, 0644); err != nil {
		return "", fmt.Errorf("failed to write receipt: %w", err)
	}
	return s.baseURL + "/" + key, nil
}
