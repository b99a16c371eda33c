package model

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrInvalidTransition    = errors.New("invalid transition")
	ErrAlreadyTerminal      = errors.New("order already cancelled")
	ErrCancelReasonRequired = errors.New("cancellation reason is required")
)

// fixed successor table, terminal and unknown statuses have none
var transitions = map[OrderStatus]OrderStatus{
	OrderStatusReceived:       OrderStatusPreparing,
	OrderStatusPreparing:      OrderStatusOutForDelivery,
	OrderStatusOutForDelivery: OrderStatusDelivered,
}

// Next returns the single successor of s.
func (s OrderStatus) Next() (OrderStatus, bool) {
	n, ok := transitions[s]
	return n, ok
}

// stamp writes key once; an existing instant is never overwritten.
func (o *Order) stamp(key string, now time.Time) {
	if o.Timestamps == nil {
		o.Timestamps = Timestamps{}
	}
	if _, ok := o.Timestamps[key]; ok {
		return
	}
	o.Timestamps[key] = now.UTC()
}

// Advance moves o to its successor status and stamps it.
// On error o is left untouched.
func (o *Order) Advance(now time.Time) (OrderStatus, error) {
	next, ok := o.Status.Next()
	if !ok {
		return o.Status, ErrInvalidTransition
	}
	o.Status = next
	o.stamp(string(next), now)
	return next, nil
}

// Cancel is allowed from any status except cancelled. reason must be non-blank.
func (o *Order) Cancel(reason, notes string, now time.Time) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return ErrCancelReasonRequired
	}
	if o.Status == OrderStatusCancelled {
		return ErrAlreadyTerminal
	}
	o.Status = OrderStatusCancelled
	o.CancellationReason = reason
	o.CancellationNotes = strings.TrimSpace(notes)
	o.stamp(string(OrderStatusCancelled), now)
	return nil
}
