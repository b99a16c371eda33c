package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"pearlify/internal/domain/model"
	repo "pearlify/internal/repository"

	"github.com/labstack/gommon/log"
)

// LifecycleUsecase applies staff actions to stored orders.
// The state machine itself lives on model.Order; this only loads, mutates and saves.
type LifecycleUsecase struct {
	orders repo.OrderRepository
	audit  repo.AuditLogRepository
	ids    IDGenerator
	clock  Clock
	logger *log.Logger
}

func NewLifecycleUsecase(
	orders repo.OrderRepository,
	audit repo.AuditLogRepository,
	ids IDGenerator,
	clock Clock,
	logger *log.Logger,
) *LifecycleUsecase {
	return &LifecycleUsecase{orders: orders, audit: audit, ids: ids, clock: clock, logger: logger}
}

type CancelOrderInput struct {
	Reason string `json:"reason"`
	Notes  string `json:"notes"`
}

// Advance moves the order to its next status.
func (u *LifecycleUsecase) Advance(ctx context.Context, actor string, orderID string) (model.Order, error) {
	o, err := u.find(ctx, orderID)
	if err != nil {
		return model.Order{}, err
	}

	before := o.Status
	now := u.clock.Now()
	if _, err := o.Advance(now); err != nil {
		return model.Order{}, wrapHTTPError(http.StatusConflict,
			fmt.Sprintf("Order cannot be updated. Current status: %s", before.Label()), ErrInvalidTransition)
	}

	if err := u.orders.Upsert(ctx, o); err != nil {
		return model.Order{}, wrapHTTPError(http.StatusInternalServerError, "could not save order", ErrStorage)
	}
	u.record(ctx, actor, model.AuditActionAdvanceStatus, o.ID, before, o.Status, "")
	u.logger.Infof("order %s: %s -> %s", o.ID, before, o.Status)
	return o, nil
}

// Cancel requires a reason. Any status except cancelled may be cancelled.
func (u *LifecycleUsecase) Cancel(ctx context.Context, actor string, orderID string, in CancelOrderInput) (model.Order, error) {
	if strings.TrimSpace(in.Reason) == "" {
		return model.Order{}, wrapHTTPError(http.StatusBadRequest, "Please select a cancellation reason", ErrValidation)
	}

	o, err := u.find(ctx, orderID)
	if err != nil {
		return model.Order{}, err
	}

	before := o.Status
	if err := o.Cancel(in.Reason, in.Notes, u.clock.Now()); err != nil {
		switch {
		case errors.Is(err, model.ErrAlreadyTerminal):
			return model.Order{}, wrapHTTPError(http.StatusConflict, "Order is already cancelled", ErrInvalidTransition)
		case errors.Is(err, model.ErrCancelReasonRequired):
			return model.Order{}, wrapHTTPError(http.StatusBadRequest, "Please select a cancellation reason", ErrValidation)
		default:
			return model.Order{}, err
		}
	}

	if err := u.orders.Upsert(ctx, o); err != nil {
		return model.Order{}, wrapHTTPError(http.StatusInternalServerError, "could not save order", ErrStorage)
	}
	u.record(ctx, actor, model.AuditActionCancelOrder, o.ID, before, o.Status, o.CancellationReason)
	u.logger.Infof("order %s cancelled from %s: %s", o.ID, before, o.CancellationReason)
	return o, nil
}

func (u *LifecycleUsecase) find(ctx context.Context, orderID string) (model.Order, error) {
	o, err := u.orders.FindByID(ctx, strings.TrimSpace(orderID))
	if errors.Is(err, repo.ErrNotFound) {
		return model.Order{}, wrapHTTPError(http.StatusNotFound, "order not found", ErrNotFound)
	}
	if err != nil {
		return model.Order{}, wrapHTTPError(http.StatusInternalServerError, "could not load order", ErrStorage)
	}
	return o, nil
}

// record never fails the action it describes.
func (u *LifecycleUsecase) record(ctx context.Context, actor string, action model.AuditAction, orderID string, before, after model.OrderStatus, reason string) {
	if actor == "" {
		actor = "admin"
	}
	err := u.audit.Create(ctx, model.AuditLog{
		ID:           u.ids.NewID(),
		Actor:        actor,
		Action:       action,
		OrderID:      orderID,
		BeforeStatus: before,
		AfterStatus:  after,
		Reason:       reason,
		CreatedAt:    u.clock.Now().UTC(),
	})
	if err != nil {
		u.logger.Warnf("audit %s for order %s not written: %v", action, orderID, err)
	}
}
