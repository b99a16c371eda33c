package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"

	"pearlify/internal/domain/model"
	repo "pearlify/internal/repository"

	"github.com/shopspring/decimal"
)

type ProductUsecase struct {
	productRepo repo.ProductRepository
}

// DI
func NewProductUsecase(productRepo repo.ProductRepository) *ProductUsecase {
	return &ProductUsecase{productRepo: productRepo}
}

// Quote is a fully resolved drink configuration and its unit price.
type Quote struct {
	Product   model.Product `json:"product"`
	Size      string        `json:"size"`
	Sugar     string        `json:"sugar"`
	Addons    []string      `json:"addons"`
	UnitPrice float64       `json:"unitPrice"`
}

type QuoteInput struct {
	ProductID string   `json:"productId"`
	Size      string   `json:"size"`
	Sugar     string   `json:"sugar"`
	Addons    []string `json:"addons"`
}

func (u *ProductUsecase) List(ctx context.Context) ([]model.Product, error) {
	items, err := u.productRepo.List(ctx)
	if err != nil {
		return nil, wrapHTTPError(http.StatusInternalServerError, "could not load products", ErrStorage)
	}
	return items, nil
}

func (u *ProductUsecase) Get(ctx context.Context, productID string) (model.Product, error) {
	p, err := u.productRepo.FindByID(ctx, strings.TrimSpace(productID))
	if errors.Is(err, repo.ErrNotFound) {
		return model.Product{}, wrapHTTPError(http.StatusNotFound, "product not found", ErrNotFound)
	}
	if err != nil {
		return model.Product{}, wrapHTTPError(http.StatusInternalServerError, "could not load product", ErrStorage)
	}
	return p, nil
}

// Quote prices a configuration: base price, a flat upcharge for Large and each add-on.
func (u *ProductUsecase) Quote(ctx context.Context, in QuoteInput) (Quote, error) {
	p, err := u.Get(ctx, in.ProductID)
	if err != nil {
		return Quote{}, err
	}

	size := strings.TrimSpace(in.Size)
	if size == "" {
		size = model.SizeRegular
		if len(p.Sizes) > 0 {
			size = p.Sizes[0]
		}
	}
	if !slices.Contains(p.Sizes, size) {
		return Quote{}, wrapHTTPError(http.StatusBadRequest, fmt.Sprintf("size %q is not available", size), ErrValidation)
	}

	sugar := strings.TrimSpace(in.Sugar)
	if sugar == "" {
		sugar = model.DefaultSugar
	}
	if !slices.Contains(model.SugarLevels, sugar) {
		return Quote{}, wrapHTTPError(http.StatusBadRequest, fmt.Sprintf("sugar level %q is not available", sugar), ErrValidation)
	}

	addons, err := resolveAddons(p, in.Addons)
	if err != nil {
		return Quote{}, err
	}

	price := decimal.NewFromFloat(p.BasePrice)
	if size == model.SizeLarge {
		price = price.Add(decimal.NewFromInt(model.LargeSizeUpcharge))
	}
	for _, a := range addons {
		price = price.Add(decimal.NewFromFloat(model.AddonPrices[a]))
	}

	return Quote{Product: p, Size: size, Sugar: sugar, Addons: addons, UnitPrice: price.InexactFloat64()}, nil
}

// resolveAddons normalizes names, drops duplicates and applies Skip and the add-on cap.
func resolveAddons(p model.Product, raw []string) ([]string, error) {
	out := []string{}
	for _, r := range raw {
		name := NormalizeAddon(r)
		if name == "" || slices.Contains(out, name) {
			continue
		}
		if name == model.AddonSkip {
			return []string{}, nil
		}
		if !slices.Contains(p.Addons, name) {
			return nil, wrapHTTPError(http.StatusBadRequest, fmt.Sprintf("add-on %q is not available", name), ErrValidation)
		}
		out = append(out, name)
	}
	if len(out) > model.MaxAddons {
		return nil, wrapHTTPError(http.StatusBadRequest,
			fmt.Sprintf("You can choose up to %d add-ons", model.MaxAddons), ErrValidation)
	}
	return out, nil
}

// NormalizeAddon maps the spellings older pages used onto the priced names.
func NormalizeAddon(name string) string {
	n := strings.TrimSpace(name)
	lower := strings.ToLower(n)
	switch {
	case n == "":
		return ""
	case strings.Contains(lower, "pearl"):
		return "Pearl"
	case strings.Contains(lower, "coconut"):
		return "Coconut Jelly"
	case strings.Contains(lower, "fruity"):
		return "Fruity Jelly"
	case strings.Contains(lower, "pudding"):
		return "Pudding"
	case strings.Contains(lower, "skip"):
		return model.AddonSkip
	}
	return n
}
