package model_test

import (
	"testing"
	"time"

	"pearlify/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReceivedOrder(placed time.Time) model.Order {
	return model.Order{
		ID:     "ORD-1",
		Status: model.OrderStatusReceived,
		Timestamps: model.Timestamps{
			model.TimestampPlaced:             placed,
			string(model.OrderStatusReceived): placed,
		},
	}
}

func TestOrder_Advance_FullPipeline(t *testing.T) {
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	o := newReceivedOrder(start)

	seen := []model.OrderStatus{o.Status}
	prev := start
	for i := 1; i <= 3; i++ {
		next, err := o.Advance(start.Add(time.Duration(i) * time.Minute))
		require.NoError(t, err)
		assert.Equal(t, o.Status, next)
		seen = append(seen, next)

		ts, ok := o.Timestamps[string(next)]
		require.True(t, ok)
		assert.False(t, ts.Before(prev))
		prev = ts
	}

	assert.Equal(t, model.Pipeline, seen)
}

func TestOrder_Advance_TerminalFails(t *testing.T) {
	for _, st := range []model.OrderStatus{model.OrderStatusDelivered, model.OrderStatusCancelled} {
		o := newReceivedOrder(time.Now())
		o.Status = st
		before := o.Clone()

		_, err := o.Advance(time.Now())
		assert.ErrorIs(t, err, model.ErrInvalidTransition)
		assert.Equal(t, before, o)
	}
}

func TestOrder_Advance_UnknownStatusFails(t *testing.T) {
	o := newReceivedOrder(time.Now())
	o.Status = "on_hold"

	_, err := o.Advance(time.Now())
	assert.ErrorIs(t, err, model.ErrInvalidTransition)
	assert.Equal(t, model.OrderStatus("on_hold"), o.Status)
}

func TestOrder_Advance_DoesNotOverwriteTimestamp(t *testing.T) {
	first := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	o := newReceivedOrder(first)
	o.Timestamps[string(model.OrderStatusPreparing)] = first

	_, err := o.Advance(first.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, first, o.Timestamps[string(model.OrderStatusPreparing)])
}

func TestOrder_Cancel_EmptyReason(t *testing.T) {
	o := newReceivedOrder(time.Now())

	err := o.Cancel("   ", "notes", time.Now())
	assert.ErrorIs(t, err, model.ErrCancelReasonRequired)
	assert.Equal(t, model.OrderStatusReceived, o.Status)
	assert.False(t, o.Timestamps.Has(string(model.OrderStatusCancelled)))
}

func TestOrder_Cancel_SetsFields(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	for _, st := range []model.OrderStatus{
		model.OrderStatusReceived,
		model.OrderStatusPreparing,
		model.OrderStatusOutForDelivery,
		model.OrderStatusDelivered,
	} {
		o := newReceivedOrder(now.Add(-time.Hour))
		o.Status = st

		require.NoError(t, o.Cancel("customer request", " changed mind ", now))
		assert.Equal(t, model.OrderStatusCancelled, o.Status)
		assert.Equal(t, "customer request", o.CancellationReason)
		assert.Equal(t, "changed mind", o.CancellationNotes)
		assert.Equal(t, now, o.Timestamps[string(model.OrderStatusCancelled)])
	}
}

func TestOrder_Cancel_AlreadyCancelled(t *testing.T) {
	o := newReceivedOrder(time.Now())
	require.NoError(t, o.Cancel("out of stock", "", time.Now()))

	err := o.Cancel("again", "", time.Now())
	assert.ErrorIs(t, err, model.ErrAlreadyTerminal)
	assert.Equal(t, "out of stock", o.CancellationReason)
}

func TestOrderStatus_Labels(t *testing.T) {
	assert.Equal(t, "Out for Delivery", model.OrderStatusOutForDelivery.Label())
	assert.Equal(t, "mystery", model.OrderStatus("mystery").Label())
	assert.Equal(t, 4, model.OrderStatusDelivered.Step())
	assert.Equal(t, 0, model.OrderStatusCancelled.Step())
}
