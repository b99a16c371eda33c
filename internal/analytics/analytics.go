// Package analytics derives the admin dashboard metrics from a set of orders.
// Everything here is pure: callers pass the orders, the clock reading and the location.
package analytics

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"pearlify/internal/domain/model"

	"github.com/shopspring/decimal"
)

const (
	DefaultTopItems = 5

	unknownItemName = "Unknown Item"

	fastSellerQuantity  = 10
	busyBandOrders      = 5
	lowRevenueThreshold = 1000
	lowRevenueMinOrders = 5
)

type ItemStat struct {
	Name     string  `json:"name"`
	Image    string  `json:"image,omitempty"`
	Quantity int     `json:"quantity"`
	Revenue  float64 `json:"revenue"`
}

type SeriesPoint struct {
	Label   string    `json:"label"`
	Start   time.Time `json:"start"`
	Revenue float64   `json:"revenue"`
}

type CategoryStat struct {
	Category   Category `json:"category"`
	Count      int      `json:"count"`
	Percentage float64  `json:"percentage"`
}

type BandStat struct {
	Label  string `json:"label"`
	Orders int    `json:"orders"`
}

type AlertLevel string

const (
	AlertInfo    AlertLevel = "info"
	AlertWarning AlertLevel = "warning"
)

type AlertKind string

const (
	AlertNoData     AlertKind = "no_data"
	AlertFastSeller AlertKind = "fast_seller"
	AlertPeakBand   AlertKind = "peak_band"
	AlertLowAverage AlertKind = "low_average"
	AlertAllNormal  AlertKind = "all_normal"
)

type Alert struct {
	Kind    AlertKind  `json:"kind"`
	Level   AlertLevel `json:"level"`
	Message string     `json:"message"`
}

// Report is one dashboard snapshot.
type Report struct {
	Window      Window    `json:"window"`
	GeneratedAt time.Time `json:"generatedAt"`

	TotalRevenue      float64 `json:"totalRevenue"`
	OrderCount        int     `json:"orderCount"`
	AverageOrderValue float64 `json:"averageOrderValue"`
	// nil when no order in the window has a placed time
	PeakHour      *int   `json:"peakHour"`
	PeakHourLabel string `json:"peakHourLabel"`

	TopItems      []ItemStat     `json:"topItems"`
	RevenueSeries []SeriesPoint  `json:"revenueSeries"`
	Categories    []CategoryStat `json:"categories"`
	HourlyBands   []BandStat     `json:"hourlyBands"`
	Alerts        []Alert        `json:"alerts"`

	// orders left out of a bounded window because they carry no placed time
	UndatedOrders []string `json:"undatedOrders,omitempty"`
}

type Options struct {
	Location *time.Location
	// defaults to DefaultTopItems
	TopItems int
}

// Compute filters out cancelled orders, applies w and derives every metric.
func Compute(orders []model.Order, w Window, now time.Time, opts Options) Report {
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}
	topN := opts.TopItems
	if topN <= 0 {
		topN = DefaultTopItems
	}

	_, bounded := w.Start(now, loc)
	var filtered []model.Order
	var undated []string
	for _, o := range orders {
		if o.Status == model.OrderStatusCancelled {
			continue
		}
		if bounded {
			if _, ok := o.PlacedAt(); !ok {
				undated = append(undated, o.ID)
				continue
			}
		}
		if w.Contains(o, now, loc) {
			filtered = append(filtered, o)
		}
	}

	revenue := decimal.Zero
	for _, o := range filtered {
		revenue = revenue.Add(decimal.NewFromFloat(o.Total))
	}

	r := Report{
		Window:        w,
		GeneratedAt:   now,
		TotalRevenue:  revenue.InexactFloat64(),
		OrderCount:    len(filtered),
		PeakHourLabel: noPeakHour,
		UndatedOrders: undated,
	}
	if len(filtered) > 0 {
		r.AverageOrderValue = revenue.Div(decimal.NewFromInt(int64(len(filtered)))).InexactFloat64()
	}
	if h, ok := PeakHour(filtered, loc); ok {
		r.PeakHour = &h
		r.PeakHourLabel = FormatHour(h)
	}

	items := ItemSales(filtered)
	r.TopItems = items[:min(topN, len(items))]
	r.RevenueSeries = RevenueSeries(filtered, w, now, loc)
	r.Categories = CategoryBreakdown(filtered)
	r.HourlyBands = HourlyBands(filtered, loc)
	r.Alerts = Alerts(len(filtered), revenue.InexactFloat64(), items, r.HourlyBands)
	return r
}

func placedHour(o model.Order, loc *time.Location) (int, bool) {
	t, ok := o.PlacedAt()
	if !ok {
		return 0, false
	}
	return t.In(loc).Hour(), true
}

// PeakHour is the hour of day with most orders. Ties go to the earliest hour.
func PeakHour(orders []model.Order, loc *time.Location) (int, bool) {
	var counts [24]int
	seen := false
	for _, o := range orders {
		h, ok := placedHour(o, loc)
		if !ok {
			continue
		}
		counts[h]++
		seen = true
	}
	if !seen {
		return 0, false
	}
	best := 0
	for h := 1; h < 24; h++ {
		if counts[h] > counts[best] {
			best = h
		}
	}
	return best, true
}

// ItemSales groups item lines by exact name, most sold first; ties keep first-seen order.
func ItemSales(orders []model.Order) []ItemStat {
	type acc struct {
		stat    ItemStat
		revenue decimal.Decimal
	}
	var order []string
	byName := map[string]*acc{}
	for _, o := range orders {
		for _, it := range o.Items {
			name := it.Name
			if name == "" {
				name = unknownItemName
			}
			a, ok := byName[name]
			if !ok {
				a = &acc{stat: ItemStat{Name: name, Image: it.Image}}
				byName[name] = a
				order = append(order, name)
			}
			a.stat.Quantity += it.Qty()
			a.revenue = a.revenue.Add(decimal.NewFromFloat(it.Price).Mul(decimal.NewFromInt(int64(it.Qty()))))
		}
	}

	out := make([]ItemStat, 0, len(order))
	for _, name := range order {
		a := byName[name]
		a.stat.Revenue = a.revenue.InexactFloat64()
		out = append(out, a.stat)
	}
	slices.SortStableFunc(out, func(a, b ItemStat) int { return b.Quantity - a.Quantity })
	return out
}

// RevenueSeries buckets order totals by hour for today and by calendar day otherwise.
// Today drops future hours that have no revenue. Week and month cover 7 and 30 days; all uses 30.
func RevenueSeries(orders []model.Order, w Window, now time.Time, loc *time.Location) []SeriesPoint {
	today := Midnight(now, loc)

	type bucket struct {
		point SeriesPoint
		end   time.Time
		sum   decimal.Decimal
	}
	var buckets []bucket
	if w == WindowToday {
		for h := 0; h < 24; h++ {
			start := time.Date(today.Year(), today.Month(), today.Day(), h, 0, 0, 0, loc)
			end := time.Date(today.Year(), today.Month(), today.Day(), h+1, 0, 0, 0, loc)
			buckets = append(buckets, bucket{point: SeriesPoint{Label: fmt.Sprintf("%d:00", h), Start: start}, end: end})
		}
	} else {
		days := monthDays
		if w == WindowWeek {
			days = weekDays
		}
		for i := days - 1; i >= 0; i-- {
			start := today.AddDate(0, 0, -i)
			label := fmt.Sprintf("%d/%d", start.Day(), int(start.Month()))
			if w == WindowWeek {
				label = start.Weekday().String()[:3]
			}
			buckets = append(buckets, bucket{point: SeriesPoint{Label: label, Start: start}, end: start.AddDate(0, 0, 1)})
		}
	}

	for _, o := range orders {
		placed, ok := o.PlacedAt()
		if !ok {
			continue
		}
		for i := range buckets {
			if !placed.Before(buckets[i].point.Start) && placed.Before(buckets[i].end) {
				buckets[i].sum = buckets[i].sum.Add(decimal.NewFromFloat(o.Total))
				break
			}
		}
	}

	nowHour := now.In(loc).Hour()
	out := make([]SeriesPoint, 0, len(buckets))
	for i, b := range buckets {
		b.point.Revenue = b.sum.InexactFloat64()
		if w == WindowToday && i > nowHour && b.sum.IsZero() {
			continue
		}
		out = append(out, b.point)
	}
	return out
}

// Alerts turns the metrics into advisory messages. With nothing to report a single
// all-normal entry is returned.
func Alerts(orderCount int, totalRevenue float64, items []ItemStat, bands []BandStat) []Alert {
	if orderCount == 0 {
		return []Alert{{Kind: AlertNoData, Level: AlertInfo, Message: "No sales data available for the selected period"}}
	}

	var alerts []Alert
	if len(items) > 0 && items[0].Quantity > fastSellerQuantity {
		alerts = append(alerts, Alert{
			Kind:    AlertFastSeller,
			Level:   AlertWarning,
			Message: fmt.Sprintf("%s is selling fast (%d sold) - check stock", items[0].Name, items[0].Quantity),
		})
	}

	busiest := -1
	for i, b := range bands {
		if busiest < 0 || b.Orders > bands[busiest].Orders {
			busiest = i
		}
	}
	if busiest >= 0 && bands[busiest].Orders > busyBandOrders {
		alerts = append(alerts, Alert{
			Kind:    AlertPeakBand,
			Level:   AlertInfo,
			Message: fmt.Sprintf("Peak sales hour: %s (%d orders)", bands[busiest].Label, bands[busiest].Orders),
		})
	}

	if totalRevenue < lowRevenueThreshold && orderCount > lowRevenueMinOrders {
		alerts = append(alerts, Alert{
			Kind:    AlertLowAverage,
			Level:   AlertWarning,
			Message: "Low average order value - consider promotions",
		})
	}

	if len(alerts) == 0 {
		return []Alert{{Kind: AlertAllNormal, Level: AlertInfo, Message: "All systems normal"}}
	}
	return alerts
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
