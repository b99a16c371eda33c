package analytics

import (
	"time"

	"pearlify/internal/domain/model"
)

type Category string

const (
	CategoryClassic Category = "Classic"
	CategoryPremium Category = "Premium"
	CategoryOreo    Category = "Oreo"
	CategoryFruity  Category = "Fruity"
	CategoryOther   Category = "Other"
)

// checked in this order; the first category with a matching keyword wins
var categoryKeywords = []struct {
	category Category
	words    []string
}{
	{CategoryClassic, []string{"Wintermelon", "Brown Sugar", "Taro", "Hokkaido", "Classic"}},
	{CategoryPremium, []string{"Cheese", "Premium", "Matcha", "Special"}},
	{CategoryOreo, []string{"Oreo", "Cookies"}},
	{CategoryFruity, []string{"Honey Lemon", "Fruit", "Berry", "Mango", "Strawberry"}},
}

var Categories = []Category{CategoryClassic, CategoryPremium, CategoryOreo, CategoryFruity, CategoryOther}

// Classify uses the first item whose name matches any keyword.
func Classify(o model.Order) Category {
	for _, it := range o.Items {
		for _, ck := range categoryKeywords {
			if containsAny(it.Name, ck.words) {
				return ck.category
			}
		}
	}
	return CategoryOther
}

// CategoryBreakdown counts orders per category, always listing all five.
func CategoryBreakdown(orders []model.Order) []CategoryStat {
	counts := map[Category]int{}
	for _, o := range orders {
		counts[Classify(o)]++
	}
	out := make([]CategoryStat, 0, len(Categories))
	for _, c := range Categories {
		s := CategoryStat{Category: c, Count: counts[c]}
		if len(orders) > 0 {
			s.Percentage = float64(counts[c]) / float64(len(orders)) * 100
		}
		out = append(out, s)
	}
	return out
}

type hourBand struct {
	label string
	from  int // inclusive, three hours wide
}

var hourBands = []hourBand{
	{"9AM", 9},
	{"12PM", 12},
	{"3PM", 15},
	{"6PM", 18},
	{"9PM", 21},
}

// HourlyBands counts orders in the five three-hour bands from 9AM to midnight.
// Orders placed before 9AM are not counted.
func HourlyBands(orders []model.Order, loc *time.Location) []BandStat {
	out := make([]BandStat, len(hourBands))
	for i, b := range hourBands {
		out[i].Label = b.label
	}
	for _, o := range orders {
		h, ok := placedHour(o, loc)
		if !ok {
			continue
		}
		for i, b := range hourBands {
			if h >= b.from && h < b.from+3 {
				out[i].Orders++
				break
			}
		}
	}
	return out
}
