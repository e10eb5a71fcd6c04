package chain

import (
	"context"
	"errors"
	"fmt"

	filestore "github.com/bnema/utilityapi-cli/internal/adapters/secrets/file"
	passstore "github.com/bnema/utilityapi-cli/internal/adapters/secrets/pass"
	"github.com/bnema/utilityapi-cli/internal/ports"
)

var (
	errNilPrimaryStore  = errors.New("chain store: primary backend is nil")
	errNilFallbackStore = errors.New("chain store: fallback backend is nil")
)

// Store serves token reads and writes from primary and retries on fallback
// when primary fails. A canceled or expired context is returned as is.
type Store struct {
	primary  ports.SecretStore
	fallback ports.SecretStore
}

var _ ports.SecretStore = (*Store)(nil)

// NewStore panics on a nil backend. Use NewStoreChecked for runtime wiring.
func NewStore(primary ports.SecretStore, fallback ports.SecretStore) *Store {
	store, err := NewStoreChecked(primary, fallback)
	if err != nil {
		panic(err)
	}
	return store
}

func NewStoreChecked(primary ports.SecretStore, fallback ports.SecretStore) (*Store, error) {
	switch {
	case primary == nil:
		return nil, errNilPrimaryStore
	case fallback == nil:
		return nil, errNilFallbackStore
	}
	return &Store{primary: primary, fallback: fallback}, nil
}

// NewTokenStore prefers pass and keeps 0600 files under fileRoot as fallback.
func NewTokenStore(fileRoot string) (*Store, error) {
	return NewStoreChecked(passstore.NewStore(), filestore.NewStore(fileRoot))
}

func (s *Store) Put(ctx context.Context, key string, value string) error {
	return s.either("store", key, func(backend ports.SecretStore) error {
		return backend.Put(ctx, key, value)
	})
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	var token string
	err := s.either("read", key, func(backend ports.SecretStore) error {
		value, err := backend.Get(ctx, key)
		if err == nil {
			token = value
		}
		return err
	})
	return token, err
}

// Delete clears both backends so a token written to files while pass was
// missing cannot come back after removal.
func (s *Store) Delete(ctx context.Context, key string) error {
	primaryErr := s.primary.Delete(ctx, key)
	if isContextError(primaryErr) {
		return primaryErr
	}

	fallbackErr := s.fallback.Delete(ctx, key)
	if primaryErr != nil && fallbackErr != nil {
		return bothFailed("delete", key, primaryErr, fallbackErr)
	}
	return nil
}

func (s *Store) either(op string, key string, call func(ports.SecretStore) error) error {
	primaryErr := call(s.primary)
	if primaryErr == nil || isContextError(primaryErr) {
		return primaryErr
	}

	fallbackErr := call(s.fallback)
	if fallbackErr == nil {
		return nil
	}
	return bothFailed(op, key, primaryErr, fallbackErr)
}

func bothFailed(op string, key string, primaryErr error, fallbackErr error) error {
	return fmt.Errorf("%s token %s: primary backend: %w; fallback backend: %w", op, key, primaryErr, fallbackErr)
}

func isContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
