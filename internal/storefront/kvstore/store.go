// Package kvstore is the storefront's local persistence: whole values under
// string keys that survive restarts. Backends are interchangeable.
package kvstore

import (
	"context"
	"fmt"
	"regexp"

	"zaylux-store/internal/pkg/errs"
)

var (
	ErrNotFound   = errs.New("key not found")
	ErrInvalidKey = errs.New("invalid key")
)

// Well-known keys.
const (
	KeyCart     = "cart"
	KeyLanguage = "language"
)

type Store interface {
	// Get returns ErrNotFound when nothing is stored under key.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set overwrites the whole value.
	Set(ctx context.Context, key string, value []byte) error
	// Clear removes key; clearing a missing key is not an error.
	Clear(ctx context.Context, key string) error
	Close() error
}

var keyPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.-]{0,127}$`)

func validateKey(key string) error {
	if !keyPattern.MatchString(key) {
		return errs.Mark(fmt.Errorf("%q", key), ErrInvalidKey)
	}
	return nil
}
