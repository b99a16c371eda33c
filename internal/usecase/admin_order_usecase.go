package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"
	"time"

	"pearlify/internal/analytics"
	"pearlify/internal/domain/model"
	repo "pearlify/internal/repository"
)

// AdminOrderUsecase serves the staff order board.
type AdminOrderUsecase struct {
	orders repo.OrderRepository
	audit  repo.AuditLogRepository
	clock  Clock
	loc    *time.Location
}

func NewAdminOrderUsecase(orders repo.OrderRepository, audit repo.AuditLogRepository, clock Clock, loc *time.Location) *AdminOrderUsecase {
	if loc == nil {
		loc = time.Local
	}
	return &AdminOrderUsecase{orders: orders, audit: audit, clock: clock, loc: loc}
}

type AdminOrderListFilter struct {
	// empty or "all" lists every status
	Status string
	Time   string
}

type StatusCounts struct {
	Received       int `json:"received"`
	Preparing      int `json:"preparing"`
	OutForDelivery int `json:"outForDelivery"`
	// delivered plus cancelled
	Completed int `json:"completed"`
}

type AdminOrderRow struct {
	model.Order
	StatusLabel string `json:"statusLabel"`
	TimeAgo     string `json:"timeAgo"`
	ItemCount   int    `json:"itemCount"`
}

type AdminOrderList struct {
	Counts    StatusCounts    `json:"counts"`
	Active    []AdminOrderRow `json:"active"`
	Completed []AdminOrderRow `json:"completed"`
}

type TimelineEntry struct {
	Key   string    `json:"key"`
	Label string    `json:"label"`
	At    time.Time `json:"at"`
}

type OrderTimeline struct {
	OrderID  string            `json:"orderId"`
	Customer string            `json:"customer"`
	Entries  []TimelineEntry   `json:"entries"`
	Audit    []model.AuditLog  `json:"audit"`
	Status   model.OrderStatus `json:"status"`
}

// List returns the filtered orders newest first, split into active and completed.
func (u *AdminOrderUsecase) List(ctx context.Context, f AdminOrderListFilter) (AdminOrderList, error) {
	status := strings.TrimSpace(f.Status)
	var want model.OrderStatus
	if status != "" && status != "all" {
		s, ok := model.ParseOrderStatus(status)
		if !ok {
			return AdminOrderList{}, wrapHTTPError(http.StatusBadRequest, "invalid status", ErrValidation)
		}
		want = s
	}
	window, ok := analytics.ParseWindow(f.Time)
	if !ok {
		return AdminOrderList{}, wrapHTTPError(http.StatusBadRequest, "invalid time filter", ErrValidation)
	}

	now := u.clock.Now()
	orders := u.orders.LoadAll(ctx)
	sortNewestFirst(orders)

	out := AdminOrderList{Active: []AdminOrderRow{}, Completed: []AdminOrderRow{}}
	for _, o := range orders {
		if want != "" && o.Status != want {
			continue
		}
		if !window.Contains(o, now, u.loc) {
			continue
		}

		switch o.Status {
		case model.OrderStatusReceived:
			out.Counts.Received++
		case model.OrderStatusPreparing:
			out.Counts.Preparing++
		case model.OrderStatusOutForDelivery:
			out.Counts.OutForDelivery++
		case model.OrderStatusDelivered, model.OrderStatusCancelled:
			out.Counts.Completed++
		}

		row := AdminOrderRow{
			Order:       o,
			StatusLabel: o.Status.Label(),
			TimeAgo:     u.timeAgo(o, now),
			ItemCount:   itemCount(o),
		}
		if o.Status.IsTerminal() {
			out.Completed = append(out.Completed, row)
		} else {
			out.Active = append(out.Active, row)
		}
	}
	return out, nil
}

// Timeline lists placed and every reached status in lifecycle order, plus the audit trail.
func (u *AdminOrderUsecase) Timeline(ctx context.Context, orderID string) (OrderTimeline, error) {
	o, err := u.orders.FindByID(ctx, strings.TrimSpace(orderID))
	if errors.Is(err, repo.ErrNotFound) {
		return OrderTimeline{}, wrapHTTPError(http.StatusNotFound, "order not found", ErrNotFound)
	}
	if err != nil {
		return OrderTimeline{}, wrapHTTPError(http.StatusInternalServerError, "could not load order", ErrStorage)
	}

	tl := OrderTimeline{
		OrderID:  o.ID,
		Customer: orDefault(o.Customer.Name, "Unknown"),
		Status:   o.Status,
		Entries:  []TimelineEntry{},
	}
	if t, ok := o.Timestamps[model.TimestampPlaced]; ok {
		tl.Entries = append(tl.Entries, TimelineEntry{Key: model.TimestampPlaced, Label: "Order Placed", At: t})
	}
	for _, s := range append(slices.Clone(model.Pipeline), model.OrderStatusCancelled) {
		if t, ok := o.Timestamps[string(s)]; ok {
			tl.Entries = append(tl.Entries, TimelineEntry{Key: string(s), Label: s.Label(), At: t})
		}
	}

	logs, err := u.audit.List(ctx, repo.AuditLogFilter{OrderID: o.ID})
	if err != nil {
		// the timeline is still useful without the trail
		logs = []model.AuditLog{}
	}
	tl.Audit = logs
	return tl, nil
}

func sortNewestFirst(orders []model.Order) {
	slices.SortStableFunc(orders, func(a, b model.Order) int {
		ta, okA := a.PlacedAt()
		tb, okB := b.PlacedAt()
		switch {
		case !okA && !okB:
			return 0
		case !okA:
			// undated orders are treated as just placed
			return -1
		case !okB:
			return 1
		}
		return tb.Compare(ta)
	})
}

func itemCount(o model.Order) int {
	n := 0
	for _, it := range o.Items {
		n += it.Qty()
	}
	return n
}

func (u *AdminOrderUsecase) timeAgo(o model.Order, now time.Time) string {
	t, ok := o.PlacedAt()
	if !ok {
		return "Just now"
	}
	return TimeAgo(t, now, u.loc)
}

// TimeAgo renders short relative times; a week or older shows the date.
func TimeAgo(t, now time.Time, loc *time.Location) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "Just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d/time.Minute))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d/time.Hour))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d/(24*time.Hour)))
	default:
		return t.In(loc).Format("1/2/2006")
	}
}
