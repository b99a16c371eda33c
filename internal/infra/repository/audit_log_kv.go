package repository

import (
	"context"
	"encoding/json"
	"sync"

	"pearlify/internal/domain/model"
	repo "pearlify/internal/repository"
)

const (
	auditLogKey = "auditLog"
	// oldest entries are dropped past this
	auditLogCap = 1000
)

// auditLogKVRepository keeps the trail as one JSON array, oldest first.
type auditLogKVRepository struct {
	kv repo.KeyValueStore
	mu sync.Mutex
}

func NewAuditLogKVRepository(kv repo.KeyValueStore) repo.AuditLogRepository {
	return &auditLogKVRepository{kv: kv}
}

func (r *auditLogKVRepository) load(ctx context.Context) ([]model.AuditLog, error) {
	raw, ok, err := r.kv.Get(ctx, auditLogKey)
	if err != nil {
		return nil, &repo.StorageError{Op: repo.StorageRead, Key: auditLogKey, Err: err}
	}
	if !ok || raw == "" {
		return nil, nil
	}
	var logs []model.AuditLog
	if err := json.Unmarshal([]byte(raw), &logs); err != nil {
		return nil, &repo.StorageError{Op: repo.StorageRead, Key: auditLogKey, Err: err}
	}
	return logs, nil
}

func (r *auditLogKVRepository) Create(ctx context.Context, log model.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	logs, err := r.load(ctx)
	if err != nil {
		// an unreadable trail is replaced rather than blocking new entries
		logs = nil
	}
	logs = append(logs, log)
	if len(logs) > auditLogCap {
		logs = logs[len(logs)-auditLogCap:]
	}

	b, err := json.Marshal(logs)
	if err != nil {
		return &repo.StorageError{Op: repo.StorageWrite, Key: auditLogKey, Err: err}
	}
	if err := r.kv.Set(ctx, auditLogKey, string(b)); err != nil {
		return &repo.StorageError{Op: repo.StorageWrite, Key: auditLogKey, Err: err}
	}
	return nil
}

func (r *auditLogKVRepository) List(ctx context.Context, filter repo.AuditLogFilter) ([]model.AuditLog, error) {
	logs, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	limit := auditLimit(filter.Limit)
	out := []model.AuditLog{}
	for i := len(logs) - 1; i >= 0 && len(out) < limit; i-- {
		if filter.OrderID != "" && logs[i].OrderID != filter.OrderID {
			continue
		}
		out = append(out, logs[i])
	}
	return out, nil
}
