package model

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

type OrderStatus string

const (
	OrderStatusReceived       OrderStatus = "order_received"
	OrderStatusPreparing      OrderStatus = "preparing"
	OrderStatusOutForDelivery OrderStatus = "out_for_delivery"
	OrderStatusDelivered      OrderStatus = "delivered"
	OrderStatusCancelled      OrderStatus = "cancelled"
)

// timestamps key written at checkout next to order_received
const TimestampPlaced = "placed"

// legacy checkout pages wrote "received" for the initial status
const legacyStatusReceived = "received"

// Pipeline is the fulfillment order of the non-cancelled statuses.
var Pipeline = []OrderStatus{
	OrderStatusReceived,
	OrderStatusPreparing,
	OrderStatusOutForDelivery,
	OrderStatusDelivered,
}

var statusLabels = map[OrderStatus]string{
	OrderStatusReceived:       "Order Received",
	OrderStatusPreparing:      "Preparing",
	OrderStatusOutForDelivery: "Out for Delivery",
	OrderStatusDelivered:      "Delivered",
	OrderStatusCancelled:      "Cancelled",
}

func (s OrderStatus) IsValid() bool {
	_, ok := statusLabels[s]
	return ok
}

// Label returns the customer facing text, or the raw value for unknown statuses.
func (s OrderStatus) Label() string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return string(s)
}

func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// Step is the 1-based position in Pipeline, 0 when the status is not part of it.
func (s OrderStatus) Step() int {
	for i, p := range Pipeline {
		if p == s {
			return i + 1
		}
	}
	return 0
}

// ParseOrderStatus accepts the enumerated values and the legacy "received" alias.
func ParseOrderStatus(v string) (OrderStatus, bool) {
	v = strings.TrimSpace(v)
	if v == legacyStatusReceived {
		return OrderStatusReceived, true
	}
	s := OrderStatus(v)
	return s, s.IsValid()
}

type Customer struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Email   string `json:"email,omitempty"`
}

// UnmarshalJSON folds the legacy "contact" field into Phone.
// A field of the wrong type is read as empty.
func (c *Customer) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*c = Customer{
		Name:    rawString(raw["name"]),
		Phone:   rawString(raw["phone"]),
		Address: rawString(raw["address"]),
		Email:   rawString(raw["email"]),
	}
	if c.Phone == "" {
		c.Phone = rawString(raw["contact"])
	}
	return nil
}

// Timestamps maps a status name (or "placed") to the instant it was first reached.
type Timestamps map[string]time.Time

// UnmarshalJSON drops entries that are not parseable instants instead of failing the order.
func (t *Timestamps) UnmarshalJSON(b []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if raw == nil {
		*t = nil
		return nil
	}
	out := make(Timestamps, len(raw))
	for k, v := range raw {
		s, ok := v.(string)
		if !ok {
			continue
		}
		tm, err := time.Parse(time.RFC3339Nano, s)
		if err != nil {
			continue
		}
		out[k] = tm.UTC()
	}
	if tm, ok := out[legacyStatusReceived]; ok && !out.Has(string(OrderStatusReceived)) {
		out[string(OrderStatusReceived)] = tm
	}
	*t = out
	return nil
}

// Has reports whether key was stamped.
func (t Timestamps) Has(key string) bool {
	_, ok := t[key]
	return ok
}

type Order struct {
	ID                 string      `json:"id"`
	Customer           Customer    `json:"customer"`
	Items              []OrderItem `json:"items"`
	Status             OrderStatus `json:"status"`
	Timestamps         Timestamps  `json:"timestamps"`
	Total              float64     `json:"total"`
	PaymentMethod      string      `json:"paymentMethod"`
	Notes              string      `json:"notes,omitempty"`
	CancellationReason string      `json:"cancellationReason,omitempty"`
	CancellationNotes  string      `json:"cancellationNotes,omitempty"`
	// set only on records written by older pages that had no timestamps map
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

// UnmarshalJSON decodes field by field so one malformed value never costs the whole order:
// a field of the wrong type falls back to its zero value. It also normalizes the legacy
// status alias and reads "orderDate" as a creation date fallback.
func (o *Order) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	*o = Order{
		ID:                 rawString(raw["id"]),
		Status:             OrderStatus(rawString(raw["status"])),
		Total:              parseAmount(raw["total"]),
		PaymentMethod:      rawString(raw["paymentMethod"]),
		Notes:              rawString(raw["notes"]),
		CancellationReason: rawString(raw["cancellationReason"]),
		CancellationNotes:  rawString(raw["cancellationNotes"]),
	}
	if s, ok := ParseOrderStatus(string(o.Status)); ok {
		o.Status = s
	}

	if v, ok := raw["customer"]; ok {
		var c Customer
		if err := json.Unmarshal(v, &c); err == nil {
			o.Customer = c
		}
	}

	if v, ok := raw["timestamps"]; ok {
		var ts Timestamps
		if err := json.Unmarshal(v, &ts); err == nil {
			o.Timestamps = ts
		}
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw["items"], &items); err == nil && items != nil {
		o.Items = make([]OrderItem, 0, len(items))
		for _, rawItem := range items {
			var it OrderItem
			if err := json.Unmarshal(rawItem, &it); err == nil {
				o.Items = append(o.Items, it)
			}
		}
	}

	for _, key := range []string{"createdAt", "orderDate"} {
		if tm, err := time.Parse(time.RFC3339Nano, rawString(raw[key])); err == nil {
			tm = tm.UTC()
			o.CreatedAt = &tm
			break
		}
	}
	return nil
}

// rawString is "" for anything but a JSON string.
func rawString(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

// parseAmount reads a non-negative number that some pages stored as a string.
func parseAmount(raw json.RawMessage) float64 {
	if len(raw) == 0 {
		return 0
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		if f < 0 {
			return 0
		}
		return f
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil && f >= 0 {
			return f
		}
	}
	return 0
}

// PlacedAt returns the instant the order was placed, falling back to the creation date.
func (o Order) PlacedAt() (time.Time, bool) {
	if tm, ok := o.Timestamps[TimestampPlaced]; ok {
		return tm, true
	}
	if o.CreatedAt != nil {
		return *o.CreatedAt, true
	}
	return time.Time{}, false
}

// Clone deep copies the mutable parts so callers can mutate without touching shared state.
func (o Order) Clone() Order {
	c := o
	if o.Items != nil {
		c.Items = make([]OrderItem, len(o.Items))
		for i, it := range o.Items {
			c.Items[i] = it
			if it.Addons != nil {
				c.Items[i].Addons = append([]string(nil), it.Addons...)
			}
		}
	}
	if o.Timestamps != nil {
		c.Timestamps = make(Timestamps, len(o.Timestamps))
		for k, v := range o.Timestamps {
			c.Timestamps[k] = v
		}
	}
	if o.CreatedAt != nil {
		tm := *o.CreatedAt
		c.CreatedAt = &tm
	}
	return c
}
