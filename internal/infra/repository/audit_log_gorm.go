package repository

import (
	"context"

	"pearlify/internal/domain/model"
	repo "pearlify/internal/repository"

	"gorm.io/gorm"
)

type auditLogGormRepository struct {
	db *gorm.DB
}

func NewAuditLogGormRepository(db *gorm.DB) repo.AuditLogRepository {
	return &auditLogGormRepository{db: db}
}

func (r *auditLogGormRepository) Create(ctx context.Context, log model.AuditLog) error {
	return r.db.WithContext(ctx).Create(&log).Error
}

func (r *auditLogGormRepository) List(ctx context.Context, filter repo.AuditLogFilter) ([]model.AuditLog, error) {
	q := r.db.WithContext(ctx).Model(&model.AuditLog{})
	if filter.OrderID != "" {
		q = q.Where("order_id = ?", filter.OrderID)
	}

	var logs []model.AuditLog
	err := q.Order("created_at DESC").Order("id DESC").Limit(auditLimit(filter.Limit)).Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}

const (
	defaultAuditLimit = 50
	maxAuditLimit     = 200
)

func auditLimit(n int) int {
	switch {
	case n <= 0:
		return defaultAuditLimit
	case n > maxAuditLimit:
		return maxAuditLimit
	}
	return n
}
