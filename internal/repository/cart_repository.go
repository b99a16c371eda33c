package repository

import (
	"context"

	"pearlify/internal/domain/model"
)

// Carts are scoped to one browsing session.
type CartRepository interface {
	Load(ctx context.Context, sessionID string) []model.CartLine
	Save(ctx context.Context, sessionID string, lines []model.CartLine) error
	Clear(ctx context.Context, sessionID string) error
}
