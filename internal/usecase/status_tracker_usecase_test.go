package usecase_test

import (
	"context"
	"testing"
	"time"

	"pearlify/internal/domain/model"
	repo "pearlify/internal/repository"
	"pearlify/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func states(v usecase.OrderStatusView) []usecase.StepState {
	out := make([]usecase.StepState, 0, len(v.Steps))
	for _, s := range v.Steps {
		out = append(out, s.State)
	}
	return out
}

func TestBuildStatusView_StepsFollowStatus(t *testing.T) {
	placed := time.Date(2026, 3, 4, 2, 3, 0, 0, time.UTC)
	o := placedOrder("ORD-1", model.OrderStatusOutForDelivery, placed)
	o.Timestamps[string(model.OrderStatusPreparing)] = placed.Add(10 * time.Minute)

	v := usecase.BuildStatusView(o, manila)

	assert.Equal(t, "ORD-1", v.OrderID)
	assert.Equal(t, "Out for Delivery", v.StatusLabel)
	assert.Equal(t, "Mar 4, 2026, 10:03 AM", v.PlacedDate)
	assert.Equal(t, []usecase.StepState{
		usecase.StepCompleted, usecase.StepCompleted, usecase.StepActive, usecase.StepPending,
	}, states(v))
	require.NotNil(t, v.Steps[1].ReachedAt)
	assert.Equal(t, "Mar 4, 2026, 10:13 AM", v.Steps[1].ReachedText)
	assert.Nil(t, v.Steps[2].ReachedAt)
	assert.Equal(t, "--", v.Steps[3].ReachedText)
}

func TestBuildStatusView_CancelledHasNoActiveStep(t *testing.T) {
	placed := time.Date(2026, 3, 4, 2, 3, 0, 0, time.UTC)
	o := placedOrder("ORD-1", model.OrderStatusCancelled, placed)

	v := usecase.BuildStatusView(o, manila)

	assert.True(t, v.Cancelled)
	assert.Equal(t, []usecase.StepState{
		usecase.StepCompleted, usecase.StepPending, usecase.StepPending, usecase.StepPending,
	}, states(v))
}

func TestBuildStatusView_Defaults(t *testing.T) {
	o := model.Order{ID: "ORD-2", Status: model.OrderStatus("on_hold"), Items: []model.OrderItem{{Price: 40}}}

	v := usecase.BuildStatusView(o, manila)

	assert.Equal(t, "--", v.PlacedDate)
	assert.Nil(t, v.PlacedAt)
	assert.Equal(t, "on_hold", v.StatusLabel)
	assert.Equal(t, "N/A", v.Customer.Name)
	assert.Equal(t, "N/A", v.Customer.Phone)
	assert.Equal(t, "N/A", v.Customer.Address)
	assert.Equal(t, "N/A", v.PaymentMethod)
	require.Len(t, v.Items, 1)
	assert.Equal(t, "Item", v.Items[0].Name)
	assert.Equal(t, 1, v.Items[0].Quantity)
	assert.Equal(t, 40.0, v.Items[0].LineTotal)
	assert.NotNil(t, v.Items[0].Addons)
	// unknown statuses show as just received
	assert.Equal(t, usecase.StepActive, v.Steps[0].State)
}

func TestBuildStatusView_NoItems(t *testing.T) {
	v := usecase.BuildStatusView(model.Order{ID: "ORD-3", Status: model.OrderStatusReceived}, manila)
	assert.NotNil(t, v.Items)
	assert.Empty(t, v.Items)
}

func TestStatusTracker_GetStatusView(t *testing.T) {
	ctx := context.Background()
	orders := new(OrderRepoMock)
	sessions := new(SessionRepoMock)
	uc := usecase.NewStatusTrackerUsecase(orders, sessions, manila)

	o := placedOrder("ORD-1", model.OrderStatusPreparing, time.Now())
	orders.On("FindByID", mock.Anything, "ORD-1").Return(o, nil)
	orders.On("FindByID", mock.Anything, "ORD-9").Return(model.Order{}, repo.ErrNotFound)
	sessions.On("LastOrderID", mock.Anything, "sid-1").Return("ORD-1", true)
	sessions.On("LastOrderID", mock.Anything, "sid-2").Return("", false)

	v, err := uc.GetStatusView(ctx, "", "ORD-1")
	require.NoError(t, err)
	assert.Equal(t, "Preparing", v.StatusLabel)

	v, err = uc.GetStatusView(ctx, "sid-1", "")
	require.NoError(t, err)
	assert.Equal(t, "ORD-1", v.OrderID)

	_, err = uc.GetStatusView(ctx, "sid-2", "")
	assert.ErrorIs(t, err, usecase.ErrNotFound)

	_, err = uc.GetStatusView(ctx, "sid-1", "ORD-9")
	assert.ErrorIs(t, err, usecase.ErrNotFound)
	assertErrContains(t, err, "order not found")
}
