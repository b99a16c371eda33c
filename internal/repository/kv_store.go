package repository

import (
	"context"
	"errors"
	"fmt"
)

var ErrQuotaExceeded = errors.New("storage quota exceeded")

// KeyValueStore is the string keyed store every collection lives in.
// It plays the part the browser's local storage played for the pages.
type KeyValueStore interface {
	// Get returns ok=false when key was never written (or expired).
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
}

type StorageOp string

const (
	StorageRead  StorageOp = "read"
	StorageWrite StorageOp = "write"
)

// StorageError is logged by the repositories and never returned past them.
type StorageError struct {
	Op  StorageOp
	Key string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
