package model

import "time"

// CartLine is one configured drink waiting for checkout.
// The JSON names follow what the product pages already keep in the "cart" key.
type CartLine struct {
	ProductID string    `json:"id"`
	Name      string    `json:"name"`
	Image     string    `json:"image"`
	BasePrice float64   `json:"basePrice"`
	UnitPrice float64   `json:"price"`
	Size      string    `json:"size"`
	Sugar     string    `json:"sugar"`
	Addons    []string  `json:"addons"`
	Quantity  int       `json:"qty"`
	LineTotal float64   `json:"totalPrice"`
	AddedAt   time.Time `json:"addedAt"`
}

// Price is the unit price for the line. Older lines only carried basePrice.
func (l CartLine) Price() float64 {
	if l.UnitPrice > 0 {
		return l.UnitPrice
	}
	return l.BasePrice
}

func (l CartLine) Qty() int {
	if l.Quantity <= 0 {
		return 1
	}
	return l.Quantity
}

// SameConfig reports whether two lines describe the same drink configuration.
func (l CartLine) SameConfig(o CartLine) bool {
	if l.ProductID != o.ProductID || l.Size != o.Size || l.Sugar != o.Sugar {
		return false
	}
	if len(l.Addons) != len(o.Addons) {
		return false
	}
	for i := range l.Addons {
		if l.Addons[i] != o.Addons[i] {
			return false
		}
	}
	return true
}
