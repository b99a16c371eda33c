package repository

import (
	"context"

	repo "pearlify/internal/repository"

	"github.com/labstack/gommon/log"
)

const lastOrderKeyPrefix = "lastOrderId:"

// sessionKVRepository expects a store with a TTL so the pointer does not outlive the visit.
type sessionKVRepository struct {
	kv     repo.KeyValueStore
	logger *log.Logger
}

func NewSessionKVRepository(kv repo.KeyValueStore, logger *log.Logger) repo.SessionRepository {
	return &sessionKVRepository{kv: kv, logger: logger}
}

func (r *sessionKVRepository) SetLastOrderID(ctx context.Context, sessionID string, orderID string) error {
	key := lastOrderKeyPrefix + sessionID
	if err := r.kv.Set(ctx, key, orderID); err != nil {
		return &repo.StorageError{Op: repo.StorageWrite, Key: key, Err: err}
	}
	return nil
}

func (r *sessionKVRepository) LastOrderID(ctx context.Context, sessionID string) (string, bool) {
	if sessionID == "" {
		return "", false
	}
	key := lastOrderKeyPrefix + sessionID
	v, ok, err := r.kv.Get(ctx, key)
	if err != nil {
		r.logger.Warnf("%v", &repo.StorageError{Op: repo.StorageRead, Key: key, Err: err})
		return "", false
	}
	if !ok || v == "" {
		return "", false
	}
	return v, true
}
