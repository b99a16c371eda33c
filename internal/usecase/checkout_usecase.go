package usecase

import (
	"context"
	"fmt"
	"net/http"
	"net/mail"
	"regexp"
	"strings"

	"pearlify/internal/domain/model"
	repo "pearlify/internal/repository"

	"github.com/labstack/gommon/log"
	"github.com/shopspring/decimal"
)

const (
	PaymentCashOnDelivery = "cod"

	minNameLength    = 2
	minAddressLength = 10

	defaultItemSize  = model.SizeRegular
	defaultItemSugar = "Standard"
)

// 11 digits starting with 09
var mobileNumberPattern = regexp.MustCompile(`^09\d{9}$`)

type CheckoutUsecase struct {
	orders   repo.OrderRepository
	carts    repo.CartRepository
	sessions repo.SessionRepository
	ids      IDGenerator
	clock    Clock
	logger   *log.Logger
}

// DI
func NewCheckoutUsecase(
	orders repo.OrderRepository,
	carts repo.CartRepository,
	sessions repo.SessionRepository,
	ids IDGenerator,
	clock Clock,
	logger *log.Logger,
) *CheckoutUsecase {
	return &CheckoutUsecase{
		orders:   orders,
		carts:    carts,
		sessions: sessions,
		ids:      ids,
		clock:    clock,
		logger:   logger,
	}
}

type CustomerInput struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Email   string `json:"email"`
}

type PlaceOrderInput struct {
	SessionID     string
	Customer      CustomerInput
	PaymentMethod string
	Notes         string
	// when nil the session cart is used
	Cart []model.CartLine
}

// PlaceOrder validates the form, snapshots the cart into a new order and persists it.
// Nothing is written when validation fails.
func (u *CheckoutUsecase) PlaceOrder(ctx context.Context, in PlaceOrderInput) (model.Order, error) {
	customer, err := validateCustomer(in.Customer)
	if err != nil {
		return model.Order{}, err
	}

	lines := in.Cart
	if lines == nil {
		lines = u.carts.Load(ctx, in.SessionID)
	}
	if len(lines) == 0 {
		return model.Order{}, wrapHTTPError(http.StatusBadRequest, "Your cart is empty!", ErrValidation)
	}
	if (model.Cart{Lines: lines}).ItemCount() > model.MaxCartItems {
		return model.Order{}, wrapHTTPError(http.StatusBadRequest,
			fmt.Sprintf("Your cart has more than %d items", model.MaxCartItems), ErrValidation)
	}
	for _, l := range lines {
		if l.Price() < 0 {
			return model.Order{}, wrapHTTPError(http.StatusBadRequest,
				fmt.Sprintf("Invalid price for %s", l.Name), ErrValidation)
		}
	}

	// email is optional, so it is checked after the cart
	email, err := validateEmail(in.Customer.Email)
	if err != nil {
		return model.Order{}, err
	}
	customer.Email = email

	payment := strings.TrimSpace(in.PaymentMethod)
	if payment == "" {
		payment = PaymentCashOnDelivery
	}

	now := u.clock.Now().UTC()
	items, total := snapshotItems(lines)

	order := model.Order{
		ID:       fmt.Sprintf("ORD-%d-%s", now.UnixMilli(), shortToken(u.ids.NewID())),
		Customer: customer,
		Items:    items,
		Status:   model.OrderStatusReceived,
		Timestamps: model.Timestamps{
			model.TimestampPlaced:             now,
			string(model.OrderStatusReceived): now,
		},
		Total:         total,
		PaymentMethod: payment,
		Notes:         strings.TrimSpace(in.Notes),
	}

	if err := u.orders.Upsert(ctx, order); err != nil {
		return model.Order{}, wrapHTTPError(http.StatusInternalServerError, "could not save order", ErrStorage)
	}

	if in.SessionID != "" {
		if err := u.carts.Clear(ctx, in.SessionID); err != nil {
			u.logger.Warnf("order %s placed but cart not cleared: %v", order.ID, err)
		}
		if err := u.sessions.SetLastOrderID(ctx, in.SessionID, order.ID); err != nil {
			u.logger.Warnf("order %s placed but last order pointer not set: %v", order.ID, err)
		}
	}

	u.logger.Infof("order %s placed: %d lines, total %.2f", order.ID, len(order.Items), order.Total)
	return order, nil
}

func validateCustomer(in CustomerInput) (model.Customer, error) {
	name := strings.TrimSpace(in.Name)
	if len([]rune(name)) < minNameLength {
		return model.Customer{}, wrapHTTPError(http.StatusBadRequest, "Please enter your full name", ErrValidation)
	}

	phone := normalizePhone(in.Phone)
	if !mobileNumberPattern.MatchString(phone) {
		return model.Customer{}, wrapHTTPError(http.StatusBadRequest,
			"Please enter a valid mobile number (11 digits starting with 09)", ErrValidation)
	}

	address := strings.TrimSpace(in.Address)
	if len([]rune(address)) < minAddressLength {
		return model.Customer{}, wrapHTTPError(http.StatusBadRequest, "Please enter your complete delivery address", ErrValidation)
	}

	return model.Customer{Name: name, Phone: phone, Address: address}, nil
}

func validateEmail(v string) (string, error) {
	email := strings.TrimSpace(v)
	if email == "" {
		return "", nil
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return "", wrapHTTPError(http.StatusBadRequest, "Please enter a valid email address", ErrValidation)
	}
	return email, nil
}

// spaces and dashes are accepted as separators
func normalizePhone(v string) string {
	return strings.NewReplacer(" ", "", "-", "").Replace(strings.TrimSpace(v))
}

// snapshotItems copies the lines and sums unitPrice*quantity exactly.
func snapshotItems(lines []model.CartLine) ([]model.OrderItem, float64) {
	items := make([]model.OrderItem, 0, len(lines))
	sum := decimal.Zero
	for _, l := range lines {
		it := model.OrderItem{
			Name:     l.Name,
			Price:    l.Price(),
			Quantity: l.Qty(),
			Size:     l.Size,
			Sugar:    l.Sugar,
			Addons:   append([]string{}, l.Addons...),
			Image:    l.Image,
		}
		if it.Size == "" {
			it.Size = defaultItemSize
		}
		if it.Sugar == "" {
			it.Sugar = defaultItemSugar
		}
		items = append(items, it)
		sum = sum.Add(decimal.NewFromFloat(it.Price).Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return items, sum.InexactFloat64()
}

func shortToken(id string) string {
	id = strings.ToUpper(strings.ReplaceAll(id, "-", ""))
	if len(id) > 6 {
		id = id[:6]
	}
	return id
}
