package usecase

import (
	"context"
	"fmt"
	"net/http"

	"pearlify/internal/domain/model"
	repo "pearlify/internal/repository"

	"github.com/shopspring/decimal"
)

// CartUsecase keeps one cart per browsing session.
type CartUsecase struct {
	carts    repo.CartRepository
	products *ProductUsecase
	clock    Clock
}

func NewCartUsecase(carts repo.CartRepository, products *ProductUsecase, clock Clock) *CartUsecase {
	return &CartUsecase{carts: carts, products: products, clock: clock}
}

type CartView struct {
	Items     []model.CartLine `json:"items"`
	ItemCount int              `json:"itemCount"`
	Total     float64          `json:"total"`
	// true once the cart holds the maximum number of items
	AtLimit bool `json:"atLimit"`
}

func (u *CartUsecase) Get(ctx context.Context, sessionID string) CartView {
	return newCartView(u.carts.Load(ctx, sessionID))
}

// Add prices the configuration and merges it into an identical line when there is one.
func (u *CartUsecase) Add(ctx context.Context, sessionID string, in QuoteInput) (CartView, error) {
	q, err := u.products.Quote(ctx, in)
	if err != nil {
		return CartView{}, err
	}

	line := model.CartLine{
		ProductID: q.Product.ID,
		Name:      q.Product.Name,
		Image:     q.Product.Image,
		BasePrice: q.Product.BasePrice,
		UnitPrice: q.UnitPrice,
		Size:      q.Size,
		Sugar:     q.Sugar,
		Addons:    q.Addons,
		Quantity:  1,
		AddedAt:   u.clock.Now().UTC(),
	}

	lines := u.carts.Load(ctx, sessionID)
	if err := checkRoom(lines); err != nil {
		return CartView{}, err
	}
	merged := false
	for i := range lines {
		if lines[i].SameConfig(line) {
			if lines[i].Qty() >= model.MaxQuantityPerLine {
				return CartView{}, maxPerLineError()
			}
			lines[i].Quantity = lines[i].Qty() + 1
			merged = true
			break
		}
	}
	if !merged {
		lines = append(lines, line)
	}
	return u.save(ctx, sessionID, lines)
}

// Adjust changes the quantity of one line by delta (+1 or -1). Quantities never drop below 1.
func (u *CartUsecase) Adjust(ctx context.Context, sessionID string, index int, delta int) (CartView, error) {
	if delta != 1 && delta != -1 {
		return CartView{}, wrapHTTPError(http.StatusBadRequest, "delta must be 1 or -1", ErrValidation)
	}
	lines := u.carts.Load(ctx, sessionID)
	if index < 0 || index >= len(lines) {
		return CartView{}, wrapHTTPError(http.StatusNotFound, "cart item not found", ErrNotFound)
	}

	qty := lines[index].Qty()
	if delta > 0 {
		if qty >= model.MaxQuantityPerLine {
			return CartView{}, maxPerLineError()
		}
		if err := checkRoom(lines); err != nil {
			return CartView{}, err
		}
	} else if qty <= 1 {
		return newCartView(lines), nil
	}
	lines[index].Quantity = qty + delta
	return u.save(ctx, sessionID, lines)
}

func (u *CartUsecase) Increase(ctx context.Context, sessionID string, index int) (CartView, error) {
	return u.Adjust(ctx, sessionID, index, 1)
}

func (u *CartUsecase) Decrease(ctx context.Context, sessionID string, index int) (CartView, error) {
	return u.Adjust(ctx, sessionID, index, -1)
}

func (u *CartUsecase) Remove(ctx context.Context, sessionID string, index int) (CartView, error) {
	lines := u.carts.Load(ctx, sessionID)
	if index < 0 || index >= len(lines) {
		return CartView{}, wrapHTTPError(http.StatusNotFound, "cart item not found", ErrNotFound)
	}
	lines = append(lines[:index], lines[index+1:]...)
	return u.save(ctx, sessionID, lines)
}

func (u *CartUsecase) Clear(ctx context.Context, sessionID string) error {
	if err := u.carts.Clear(ctx, sessionID); err != nil {
		return wrapHTTPError(http.StatusInternalServerError, "could not clear cart", ErrStorage)
	}
	return nil
}

func (u *CartUsecase) save(ctx context.Context, sessionID string, lines []model.CartLine) (CartView, error) {
	for i := range lines {
		lines[i].LineTotal = decimal.NewFromFloat(lines[i].Price()).
			Mul(decimal.NewFromInt(int64(lines[i].Qty()))).InexactFloat64()
	}
	if err := u.carts.Save(ctx, sessionID, lines); err != nil {
		return CartView{}, wrapHTTPError(http.StatusInternalServerError, "could not save cart", ErrStorage)
	}
	return newCartView(lines), nil
}

func checkRoom(lines []model.CartLine) error {
	if (model.Cart{Lines: lines}).ItemCount() >= model.MaxCartItems {
		return wrapHTTPError(http.StatusBadRequest,
			fmt.Sprintf("You can only order %d items total", model.MaxCartItems), ErrValidation)
	}
	return nil
}

func maxPerLineError() error {
	return wrapHTTPError(http.StatusBadRequest,
		fmt.Sprintf("Maximum quantity (%d) reached for this product", model.MaxQuantityPerLine), ErrValidation)
}

func newCartView(lines []model.CartLine) CartView {
	if lines == nil {
		lines = []model.CartLine{}
	}
	cart := model.Cart{Lines: lines}
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(decimal.NewFromFloat(l.Price()).Mul(decimal.NewFromInt(int64(l.Qty()))))
	}
	count := cart.ItemCount()
	return CartView{
		Items:     lines,
		ItemCount: count,
		Total:     total.InexactFloat64(),
		AtLimit:   count >= model.MaxCartItems,
	}
}
