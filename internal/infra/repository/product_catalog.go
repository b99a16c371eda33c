package repository

import (
	"context"

	"pearlify/internal/domain/model"
	repo "pearlify/internal/repository"
)

var defaultSizes = []string{model.SizeRegular, model.SizeLarge}

var defaultAddons = []string{"Pearl", "Coconut Jelly", "Fruity Jelly", "Pudding"}

func drink(id, name, image string, series model.ProductSeries, price float64) model.Product {
	return model.Product{
		ID:        id,
		Name:      name,
		Image:     image,
		Series:    series,
		BasePrice: price,
		Sizes:     defaultSizes,
		Addons:    defaultAddons,
	}
}

var catalog = []model.Product{
	drink("pearly-milk-tea", "Pearly Milk Tea", "media/pearly top sellers (4).png", model.SeriesClassic, 110),
	drink("wintermelon-milk-tea", "Wintermelon Milk Tea", "media/winter top sellers (2).png", model.SeriesClassic, 110),
	drink("okinawa-milk-tea", "Okinawa Milk Tea", "media/okinawa.png", model.SeriesClassic, 110),
	drink("caramel-milk-tea", "Caramel Milk Tea", "media/Caramel Milk Tea.png", model.SeriesClassic, 115),
	drink("chocolate-milk-tea", "Chocolate Milk Tea", "media/Chocolate Milk Tea.png", model.SeriesClassic, 115),

	drink("brown-sugar-milk-tea", "Brown Sugar Milk Tea", "media/brown sugar.png", model.SeriesPremium, 120),
	drink("milk-tea-black-white-pearl", "Milk Tea Black and White Pearl", "media/Milktea Black and White Pearl.png", model.SeriesPremium, 120),
	drink("thai-milk-tea", "Thai Milk Tea", "media/thai milk tea.png", model.SeriesPremium, 120),
	drink("coffee-milk-tea", "Coffee Milk Tea", "media/coffee.png", model.SeriesPremium, 130),
	drink("matcha-milk-tea", "Matcha Milk Tea", "media/matcha.png", model.SeriesPremium, 130),

	drink("oreo-milk-tea", "Oreo Milk Tea", "media/oreo milk tea.png", model.SeriesOreo, 130),
	drink("oreo-strawberry-milk-tea", "Oreo Strawberry Milk Tea", "media/Oreo Strawberry Milk Tea.png", model.SeriesOreo, 130),
	drink("oreo-vanilla-smoothie", "Oreo Vanilla Ice Smoothie", "media/oreo vanilla.png", model.SeriesOreo, 130),
	drink("oreo-choco-smoothie", "Oreo Choco Ice Smoothie", "media/Oreo Choco Ice Smoothie.png", model.SeriesOreo, 130),

	drink("honey-lemon-juice", "Honey Lemon Juice", "media/honey lemon.png", model.SeriesFruity, 115),
	drink("taro-milk-tea", "Taro Milk Tea", "media/Taro Milk Tea.png", model.SeriesFruity, 120),
	drink("mango-green-tea", "Mango Green Tea", "media/Mango Green Tea.png", model.SeriesFruity, 115),
	drink("peach-lychee-tea", "Peach Lychee Fruit Tea", "media/Peach Lychee Fruit Tea.png", model.SeriesFruity, 115),
}

// staticProductRepository serves the fixed menu. Callers get copies.
type staticProductRepository struct {
	byID map[string]model.Product
}

func NewStaticProductRepository() repo.ProductRepository {
	byID := make(map[string]model.Product, len(catalog))
	for _, p := range catalog {
		byID[p.ID] = p
	}
	return &staticProductRepository{byID: byID}
}

func (r *staticProductRepository) List(ctx context.Context) ([]model.Product, error) {
	out := make([]model.Product, 0, len(catalog))
	for _, p := range catalog {
		out = append(out, copyProduct(p))
	}
	return out, nil
}

func (r *staticProductRepository) FindByID(ctx context.Context, id string) (model.Product, error) {
	p, ok := r.byID[id]
	if !ok {
		return model.Product{}, repo.ErrNotFound
	}
	return copyProduct(p), nil
}

func copyProduct(p model.Product) model.Product {
	p.Sizes = append([]string(nil), p.Sizes...)
	p.Addons = append([]string(nil), p.Addons...)
	return p
}
