package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bnema/utilityapi-cli/internal/domain"
	"github.com/bnema/utilityapi-cli/internal/ports"
)

const (
	dirMode   = 0o700
	tokenMode = 0o600
)

// Store writes each access token to its own file below root, readable by the
// owner only. It is used when pass is missing or UAPI_SECRETS_BACKEND=file.
type Store struct {
	root string
	mu   sync.RWMutex
}

var _ ports.SecretStore = (*Store)(nil)

func NewStore(root string) *Store {
	return &Store{root: filepath.Clean(root)}
}

// Put replaces the token atomically so a reader never sees a partial write.
func (s *Store) Put(ctx context.Context, key string, value string) error {
	path, err := s.resolve(ctx, key)
	if err != nil {
		return err
	}
	token := strings.TrimSpace(value)
	if token == "" {
		return fmt.Errorf("store token %s: value is empty", key)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, dirMode); err != nil {
		return fmt.Errorf("store token %s: create directory: %w", key, err)
	}

	tmp, err := os.CreateTemp(dir, ".token-*")
	if err != nil {
		return fmt.Errorf("store token %s: %w", key, err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if err := tmp.Chmod(tokenMode); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("store token %s: restrict permissions: %w", key, err)
	}
	if _, err := tmp.WriteString(token); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("store token %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("store token %s: %w", key, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("store token %s: %w", key, err)
	}

	return nil
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	path, err := s.resolve(ctx, key)
	if err != nil {
		return "", err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return "", fmt.Errorf("token %s: %w", key, domain.ErrSecretNotFound)
	case err != nil:
		return "", fmt.Errorf("load token %s: %w", key, err)
	}

	return strings.TrimSpace(string(data)), nil
}

// Delete succeeds when the token is already gone.
func (s *Store) Delete(ctx context.Context, key string) error {
	path, err := s.resolve(ctx, key)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove token %s: %w", key, err)
	}
	return nil
}

// resolve maps a token reference such as "utilityapi/default/token" to a
// path that stays below root.
func (s *Store) resolve(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	ref := strings.TrimSpace(key)
	if ref == "" {
		return "", errors.New("token reference is empty")
	}

	rel := filepath.Clean(ref)
	if filepath.IsAbs(rel) || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("token reference %q points outside the store", key)
	}

	return filepath.Join(s.root, rel), nil
}
