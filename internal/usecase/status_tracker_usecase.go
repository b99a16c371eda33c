package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"pearlify/internal/domain/model"
	repo "pearlify/internal/repository"
)

const (
	notAvailable    = "N/A"
	defaultItemName = "Item"
	noDate          = "--"

	displayDateLayout = "Jan 2, 2006, 03:04 PM"
)

type StepState string

const (
	StepCompleted StepState = "completed"
	StepActive    StepState = "active"
	StepPending   StepState = "pending"
)

type StatusStep struct {
	Status    model.OrderStatus `json:"status"`
	Label     string            `json:"label"`
	State     StepState         `json:"state"`
	ReachedAt *time.Time        `json:"reachedAt,omitempty"`
	// "--" when the step has not been reached
	ReachedText string `json:"reachedText"`
}

type StatusItem struct {
	Name      string   `json:"name"`
	Size      string   `json:"size"`
	Sugar     string   `json:"sugar"`
	Addons    []string `json:"addons"`
	Quantity  int      `json:"quantity"`
	Price     float64  `json:"price"`
	LineTotal float64  `json:"lineTotal"`
	Image     string   `json:"image"`
}

type StatusCustomer struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// OrderStatusView is what the customer tracking page renders.
type OrderStatusView struct {
	OrderID            string            `json:"orderId"`
	PlacedAt           *time.Time        `json:"placedAt,omitempty"`
	PlacedDate         string            `json:"placedDate"`
	Status             model.OrderStatus `json:"status"`
	StatusLabel        string            `json:"statusLabel"`
	Cancelled          bool              `json:"cancelled"`
	CancellationReason string            `json:"cancellationReason,omitempty"`
	Steps              []StatusStep      `json:"steps"`
	Items              []StatusItem      `json:"items"`
	Total              float64           `json:"total"`
	Customer           StatusCustomer    `json:"customer"`
	PaymentMethod      string            `json:"paymentMethod"`
	Notes              string            `json:"notes,omitempty"`
}

// StatusTrackerUsecase is stateless; callers poll GetStatusView as often as they like.
type StatusTrackerUsecase struct {
	orders   repo.OrderRepository
	sessions repo.SessionRepository
	loc      *time.Location
}

func NewStatusTrackerUsecase(orders repo.OrderRepository, sessions repo.SessionRepository, loc *time.Location) *StatusTrackerUsecase {
	if loc == nil {
		loc = time.Local
	}
	return &StatusTrackerUsecase{orders: orders, sessions: sessions, loc: loc}
}

// GetStatusView falls back to the session's last placed order when orderID is empty.
func (u *StatusTrackerUsecase) GetStatusView(ctx context.Context, sessionID string, orderID string) (OrderStatusView, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		id, ok := u.sessions.LastOrderID(ctx, sessionID)
		if !ok {
			return OrderStatusView{}, wrapHTTPError(http.StatusNotFound, "order not found", ErrNotFound)
		}
		orderID = id
	}

	o, err := u.orders.FindByID(ctx, orderID)
	if errors.Is(err, repo.ErrNotFound) {
		return OrderStatusView{}, wrapHTTPError(http.StatusNotFound, "order not found", ErrNotFound)
	}
	if err != nil {
		return OrderStatusView{}, wrapHTTPError(http.StatusInternalServerError, "could not load order", ErrStorage)
	}
	return BuildStatusView(o, u.loc), nil
}

// BuildStatusView projects o for display in loc.
func BuildStatusView(o model.Order, loc *time.Location) OrderStatusView {
	v := OrderStatusView{
		OrderID:            o.ID,
		PlacedDate:         noDate,
		Status:             o.Status,
		StatusLabel:        o.Status.Label(),
		Cancelled:          o.Status == model.OrderStatusCancelled,
		CancellationReason: o.CancellationReason,
		Total:              o.Total,
		Customer: StatusCustomer{
			Name:    orDefault(o.Customer.Name, notAvailable),
			Phone:   orDefault(o.Customer.Phone, notAvailable),
			Address: orDefault(o.Customer.Address, notAvailable),
		},
		PaymentMethod: orDefault(o.PaymentMethod, notAvailable),
		Notes:         o.Notes,
	}
	if t, ok := o.Timestamps[model.TimestampPlaced]; ok {
		v.PlacedAt = &t
		v.PlacedDate = t.In(loc).Format(displayDateLayout)
	}

	current := o.Status.Step()
	if current == 0 && !v.Cancelled {
		// unknown statuses render as just received
		current = 1
	}
	for i, s := range model.Pipeline {
		step := StatusStep{Status: s, Label: s.Label(), State: StepPending, ReachedText: noDate}
		if t, ok := o.Timestamps[string(s)]; ok {
			step.ReachedAt = &t
			step.ReachedText = t.In(loc).Format(displayDateLayout)
		}
		switch {
		case v.Cancelled:
			if step.ReachedAt != nil {
				step.State = StepCompleted
			}
		case i+1 < current:
			step.State = StepCompleted
		case i+1 == current:
			step.State = StepActive
		}
		v.Steps = append(v.Steps, step)
	}

	v.Items = make([]StatusItem, 0, len(o.Items))
	for _, it := range o.Items {
		addons := it.Addons
		if addons == nil {
			addons = []string{}
		}
		v.Items = append(v.Items, StatusItem{
			Name:      orDefault(it.Name, defaultItemName),
			Size:      it.Size,
			Sugar:     it.Sugar,
			Addons:    addons,
			Quantity:  it.Qty(),
			Price:     it.Price,
			LineTotal: it.Price * float64(it.Qty()),
			Image:     it.Image,
		})
	}
	return v
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
