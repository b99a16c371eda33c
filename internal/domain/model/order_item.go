package model

import (
	"encoding/json"
	"strconv"
	"strings"
)

// OrderItem is the snapshot of a cart line taken at checkout.
// Price and options never follow later catalog changes.
type OrderItem struct {
	Name     string   `json:"name"`
	Price    float64  `json:"price"`
	Quantity int      `json:"quantity"`
	Size     string   `json:"size"`
	Sugar    string   `json:"sugar"`
	Addons   []string `json:"addons"`
	Image    string   `json:"image"`
}

// UnmarshalJSON reads a field of the wrong type as its zero value.
func (it *OrderItem) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*it = OrderItem{
		Name:     rawString(raw["name"]),
		Price:    parseAmount(raw["price"]),
		Quantity: parseQuantity(raw["quantity"]),
		Size:     rawString(raw["size"]),
		Sugar:    rawString(raw["sugar"]),
		Addons:   parseStrings(raw["addons"]),
		Image:    rawString(raw["image"]),
	}
	return nil
}

// Qty treats a missing quantity as 1, the way every page rendered it.
func (it OrderItem) Qty() int {
	if it.Quantity <= 0 {
		return 1
	}
	return it.Quantity
}

func parseQuantity(raw json.RawMessage) int {
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		if f < 0 {
			return 0
		}
		return int(f)
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil && n > 0 {
			return n
		}
	}
	return 0
}

// parseStrings keeps the string elements of an array and drops the rest.
func parseStrings(raw json.RawMessage) []string {
	var values []json.RawMessage
	if err := json.Unmarshal(raw, &values); err != nil || values == nil {
		return nil
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		var s string
		if err := json.Unmarshal(v, &s); err == nil {
			out = append(out, s)
		}
	}
	return out
}
