package repository

import (
	"context"

	"pearlify/internal/domain/model"
)

type AuditLogFilter struct {
	OrderID string
	Limit   int
}

type AuditLogRepository interface {
	Create(ctx context.Context, log model.AuditLog) error

	// newest first
	List(ctx context.Context, filter AuditLogFilter) ([]model.AuditLog, error)
}
