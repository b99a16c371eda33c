package repository

import (
	"context"
	"encoding/json"

	"pearlify/internal/domain/model"
	repo "pearlify/internal/repository"

	"github.com/labstack/gommon/log"
)

const cartKeyPrefix = "cart:"

type cartKVRepository struct {
	kv     repo.KeyValueStore
	logger *log.Logger
}

func NewCartKVRepository(kv repo.KeyValueStore, logger *log.Logger) repo.CartRepository {
	return &cartKVRepository{kv: kv, logger: logger}
}

func cartKey(sessionID string) string { return cartKeyPrefix + sessionID }

// Load degrades to an empty cart on missing or unreadable data.
func (r *cartKVRepository) Load(ctx context.Context, sessionID string) []model.CartLine {
	key := cartKey(sessionID)
	raw, ok, err := r.kv.Get(ctx, key)
	if err != nil {
		r.logger.Warnf("%v", &repo.StorageError{Op: repo.StorageRead, Key: key, Err: err})
		return []model.CartLine{}
	}
	if !ok || raw == "" {
		return []model.CartLine{}
	}
	var lines []model.CartLine
	if err := json.Unmarshal([]byte(raw), &lines); err != nil {
		r.logger.Warnf("%v", &repo.StorageError{Op: repo.StorageRead, Key: key, Err: err})
		return []model.CartLine{}
	}
	if lines == nil {
		lines = []model.CartLine{}
	}
	return lines
}

func (r *cartKVRepository) Save(ctx context.Context, sessionID string, lines []model.CartLine) error {
	if lines == nil {
		lines = []model.CartLine{}
	}
	key := cartKey(sessionID)
	b, err := json.Marshal(lines)
	if err != nil {
		return &repo.StorageError{Op: repo.StorageWrite, Key: key, Err: err}
	}
	if err := r.kv.Set(ctx, key, string(b)); err != nil {
		return &repo.StorageError{Op: repo.StorageWrite, Key: key, Err: err}
	}
	return nil
}

func (r *cartKVRepository) Clear(ctx context.Context, sessionID string) error {
	key := cartKey(sessionID)
	if err := r.kv.Delete(ctx, key); err != nil {
		return &repo.StorageError{Op: repo.StorageWrite, Key: key, Err: err}
	}
	return nil
}
