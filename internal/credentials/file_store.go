package credentials

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileStore keeps one grant blob per tenant under a base directory.
// Files are written atomically via a temp file and rename, mode 0600.
type FileStore struct {
	dir    string
	sealer *Sealer
}

// DefaultStoreDir returns the default grant directory under the user
// cache directory.
func DefaultStoreDir() (string, error) {
	cache, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve cache directory: %w", err)
	}
	return filepath.Join(cache, "voicedesk"), nil
}

// NewFileStore creates a FileStore rooted at dir. If sealer is non-nil,
// blobs are encrypted at rest.
func NewFileStore(dir string, sealer *Sealer) (*FileStore, error) {
	if dir == "" {
		var err error
		dir, err = DefaultStoreDir()
		if err != nil {
			return nil, err
		}
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create grant directory: %w", err)
	}
	return &FileStore{dir: dir, sealer: sealer}, nil
}

func (s *FileStore) path(tenant string) string {
	return filepath.Join(s.dir, "grant_"+sanitizeTenant(tenant)+".json")
}

// Load returns the stored grant for a tenant, or ErrNotFound.
func (s *FileStore) Load(ctx context.Context, tenant string) (*Grant, error) {
	data, err := os.ReadFile(s.path(tenant))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read grant for tenant %s: %w", sanitizeTenant(tenant), err)
	}
	plain, err := open(s.sealer, data)
	if err != nil {
		return nil, err
	}
	return DecodeGrant(plain)
}

// Save persists the grant for a tenant.
func (s *FileStore) Save(ctx context.Context, tenant string, g *Grant) error {
	data, err := g.Encode()
	if err != nil {
		return err
	}
	sealed, err := seal(s.sealer, data)
	if err != nil {
		return err
	}

	target := s.path(tenant)
	tmp, err := os.CreateTemp(s.dir, ".grant-*")
	if err != nil {
		return fmt.Errorf("failed to create temp grant file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := tmp.Chmod(0600); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to set grant file mode: %w", err)
	}
	if _, err := tmp.Write(sealed); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write grant file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close grant file: %w", err)
	}
	if err := os.Rename(tmpName, target); err != nil {
		return fmt.Errorf("failed to persist grant file: %w", err)
	}
	return nil
}

// Delete removes the grant for a tenant.
func (s *FileStore) Delete(ctx context.Context, tenant string) error {
	err := os.Remove(s.path(tenant))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete grant for tenant %s: %w", sanitizeTenant(tenant), err)
	}
	return nil
}
