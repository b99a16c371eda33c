package usecase_test

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"pearlify/internal/domain/model"
	repo "pearlify/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// =====================
// Repository mocks
// =====================

type OrderRepoMock struct{ mock.Mock }

func (m *OrderRepoMock) LoadAll(ctx context.Context) []model.Order {
	args := m.Called(ctx)
	orders, _ := args.Get(0).([]model.Order)
	return orders
}

func (m *OrderRepoMock) SaveAll(ctx context.Context, orders []model.Order) {
	m.Called(ctx, orders)
}

func (m *OrderRepoMock) FindByID(ctx context.Context, id string) (model.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) Upsert(ctx context.Context, order model.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

type CartRepoMock struct{ mock.Mock }

func (m *CartRepoMock) Load(ctx context.Context, sessionID string) []model.CartLine {
	args := m.Called(ctx, sessionID)
	lines, _ := args.Get(0).([]model.CartLine)
	return lines
}

func (m *CartRepoMock) Save(ctx context.Context, sessionID string, lines []model.CartLine) error {
	args := m.Called(ctx, sessionID, lines)
	return args.Error(0)
}

func (m *CartRepoMock) Clear(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

type SessionRepoMock struct{ mock.Mock }

func (m *SessionRepoMock) SetLastOrderID(ctx context.Context, sessionID string, orderID string) error {
	args := m.Called(ctx, sessionID, orderID)
	return args.Error(0)
}

func (m *SessionRepoMock) LastOrderID(ctx context.Context, sessionID string) (string, bool) {
	args := m.Called(ctx, sessionID)
	return args.String(0), args.Bool(1)
}

type AuditRepoMock struct{ mock.Mock }

func (m *AuditRepoMock) Create(ctx context.Context, log model.AuditLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *AuditRepoMock) List(ctx context.Context, filter repo.AuditLogFilter) ([]model.AuditLog, error) {
	args := m.Called(ctx, filter)
	logs, _ := args.Get(0).([]model.AuditLog)
	return logs, args.Error(1)
}

// =====================
// Clock / ID stubs
// =====================

type fixedClock struct{ t time.Time }

func (c *fixedClock) Now() time.Time { return c.t }

type seqIDs struct{ n int }

func (g *seqIDs) NewID() string {
	g.n++
	return fmt.Sprintf("abc-%d", g.n)
}

var manila = time.FixedZone("PHT", 8*3600)

func assertErrContains(t *testing.T, err error, wantSubstr string) {
	t.Helper()
	if assert.Error(t, err) {
		assert.True(t, strings.Contains(err.Error(), wantSubstr), "err=%q want contains %q", err.Error(), wantSubstr)
	}
}

func placedOrder(id string, status model.OrderStatus, placed time.Time) model.Order {
	ts := model.Timestamps{
		model.TimestampPlaced:             placed,
		string(model.OrderStatusReceived): placed,
	}
	return model.Order{
		ID:            id,
		Customer:      model.Customer{Name: "Ana Cruz", Phone: "09171234567", Address: "12 Mabini St, Manila"},
		Items:         []model.OrderItem{{Name: "Taro Milk Tea", Price: 120, Quantity: 1, Addons: []string{}}},
		Status:        status,
		Timestamps:    ts,
		Total:         120,
		PaymentMethod: "cod",
	}
}
