package repository

import "context"

// SessionRepository hands the freshly placed order id from checkout to the status view.
type SessionRepository interface {
	SetLastOrderID(ctx context.Context, sessionID string, orderID string) error
	LastOrderID(ctx context.Context, sessionID string) (string, bool)
}
