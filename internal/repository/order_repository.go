package repository

import (
	"context"
	"errors"

	"pearlify/internal/domain/model"
)

var ErrInvalidOrder = errors.New("order id is required")

// OrderRepository presents every configured collection as one deduplicated list.
// Storage failures are absorbed here: reads degrade to empty, writes are logged.
type OrderRepository interface {
	LoadAll(ctx context.Context) []model.Order
	SaveAll(ctx context.Context, orders []model.Order)
	FindByID(ctx context.Context, id string) (model.Order, error)
	// Upsert replaces the order with the same id or appends it, then saves everything.
	Upsert(ctx context.Context, order model.Order) error
}
