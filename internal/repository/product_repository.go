package repository

import (
	"context"
	"errors"

	"pearlify/internal/domain/model"
)

var ErrNotFound = errors.New("not found")

// Catalog data is read-only for the core.
type ProductRepository interface {
	List(ctx context.Context) ([]model.Product, error)
	FindByID(ctx context.Context, id string) (model.Product, error)
}
