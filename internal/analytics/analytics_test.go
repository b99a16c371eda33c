package analytics_test

import (
	"testing"
	"time"

	"pearlify/internal/analytics"
	"pearlify/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var manila = time.FixedZone("PHT", 8*3600)

// Wednesday 4 March 2026, 15:30 local
var now = time.Date(2026, 3, 4, 15, 30, 0, 0, manila)

func at(day, hour int) time.Time {
	return time.Date(2026, 3, day, hour, 10, 0, 0, manila).UTC()
}

func order(id string, total float64, placed time.Time, items ...model.OrderItem) model.Order {
	return model.Order{
		ID:         id,
		Status:     model.OrderStatusReceived,
		Timestamps: model.Timestamps{model.TimestampPlaced: placed},
		Total:      total,
		Items:      items,
	}
}

func item(name string, price float64, qty int) model.OrderItem {
	return model.OrderItem{Name: name, Price: price, Quantity: qty}
}

func opts() analytics.Options { return analytics.Options{Location: manila} }

func TestCompute_RevenueCountAverage(t *testing.T) {
	orders := []model.Order{
		order("A", 100, at(2, 10)),
		order("B", 200, at(3, 11)),
		order("C", 300, at(4, 12)),
	}

	r := analytics.Compute(orders, analytics.WindowWeek, now, opts())

	assert.Equal(t, 600.0, r.TotalRevenue)
	assert.Equal(t, 3, r.OrderCount)
	assert.Equal(t, 200.0, r.AverageOrderValue)
}

func TestCompute_ExcludesCancelledInEveryWindow(t *testing.T) {
	cancelled := order("X", 999, at(4, 10), item("Taro Milk Tea", 999, 1))
	cancelled.Status = model.OrderStatusCancelled
	orders := []model.Order{order("A", 100, at(4, 9), item("Oreo Milk Tea", 100, 1)), cancelled}

	for _, w := range analytics.Windows {
		r := analytics.Compute(orders, w, now, opts())
		assert.Equal(t, 1, r.OrderCount, w)
		assert.Equal(t, 100.0, r.TotalRevenue, w)
		require.Len(t, r.TopItems, 1, w)
		assert.Equal(t, "Oreo Milk Tea", r.TopItems[0].Name, w)
	}
}

func TestCompute_Windows(t *testing.T) {
	orders := []model.Order{
		order("today", 10, at(4, 0)),
		order("six-days-ago", 20, at(4-6, 23)),
		order("seven-days-ago", 40, time.Date(2026, 2, 25, 23, 0, 0, 0, manila)),
		order("twenty-nine-days-ago", 80, time.Date(2026, 2, 3, 8, 0, 0, 0, manila)),
		order("thirty-days-ago", 160, time.Date(2026, 2, 2, 8, 0, 0, 0, manila)),
		{ID: "undated", Status: model.OrderStatusPreparing, Total: 320},
	}

	cases := map[analytics.Window]float64{
		analytics.WindowToday: 10,
		analytics.WindowWeek:  30,
		analytics.WindowMonth: 150,
		analytics.WindowAll:   630,
	}
	for w, want := range cases {
		r := analytics.Compute(orders, w, now, opts())
		assert.Equal(t, want, r.TotalRevenue, w)
	}

	week := analytics.Compute(orders, analytics.WindowWeek, now, opts())
	assert.Equal(t, []string{"undated"}, week.UndatedOrders)
	all := analytics.Compute(orders, analytics.WindowAll, now, opts())
	assert.Empty(t, all.UndatedOrders)
}

func TestCompute_EmptySet(t *testing.T) {
	r := analytics.Compute(nil, analytics.WindowToday, now, opts())

	assert.Equal(t, 0, r.OrderCount)
	assert.Equal(t, 0.0, r.AverageOrderValue)
	assert.Nil(t, r.PeakHour)
	assert.Equal(t, "--:--", r.PeakHourLabel)
	assert.NotNil(t, r.TopItems)
	require.Len(t, r.Alerts, 1)
	assert.Equal(t, analytics.AlertNoData, r.Alerts[0].Kind)
}

func TestPeakHour_TiesGoToEarliest(t *testing.T) {
	orders := []model.Order{
		order("A", 1, at(4, 9)),
		order("B", 1, at(4, 9)),
		order("C", 1, at(4, 14)),
	}
	r := analytics.Compute(orders, analytics.WindowAll, now, opts())
	require.NotNil(t, r.PeakHour)
	assert.Equal(t, 9, *r.PeakHour)
	assert.Equal(t, "9:00AM", r.PeakHourLabel)

	tie := []model.Order{order("A", 1, at(4, 14)), order("B", 1, at(4, 9))}
	h, ok := analytics.PeakHour(tie, manila)
	require.True(t, ok)
	assert.Equal(t, 9, h)
}

func TestFormatHour(t *testing.T) {
	assert.Equal(t, "12:00AM", analytics.FormatHour(0))
	assert.Equal(t, "9:00AM", analytics.FormatHour(9))
	assert.Equal(t, "12:00PM", analytics.FormatHour(12))
	assert.Equal(t, "2:00PM", analytics.FormatHour(14))
	assert.Equal(t, "11:00PM", analytics.FormatHour(23))
}

func TestItemSales_RankedByQuantity(t *testing.T) {
	orders := []model.Order{
		order("A", 0, at(4, 9), item("Taro", 120, 3), item("Milk Tea", 100, 2)),
		order("B", 0, at(4, 10), item("Milk Tea", 100, 3), item("Oreo Milk Tea", 130, 3)),
		order("C", 0, at(4, 10), model.OrderItem{Price: 50}),
	}

	stats := analytics.ItemSales(orders)

	require.Len(t, stats, 4)
	assert.Equal(t, "Milk Tea", stats[0].Name)
	assert.Equal(t, 5, stats[0].Quantity)
	assert.Equal(t, 500.0, stats[0].Revenue)
	// equal quantities keep first-seen order
	assert.Equal(t, "Taro", stats[1].Name)
	assert.Equal(t, "Oreo Milk Tea", stats[2].Name)
	assert.Equal(t, "Unknown Item", stats[3].Name)
	assert.Equal(t, 1, stats[3].Quantity)

	r := analytics.Compute(orders, analytics.WindowAll, now, analytics.Options{Location: manila, TopItems: 1})
	require.Len(t, r.TopItems, 1)
	assert.Equal(t, "Milk Tea", r.TopItems[0].Name)
}

func TestItemSales_NamesAreCaseSensitive(t *testing.T) {
	stats := analytics.ItemSales([]model.Order{
		order("A", 0, at(4, 9), item("taro", 1, 1), item("Taro", 1, 1)),
	})
	assert.Len(t, stats, 2)
}

func TestRevenueSeries_Today(t *testing.T) {
	orders := []model.Order{
		order("A", 100, at(4, 9)),
		order("B", 50, at(4, 9)),
		order("C", 70, at(4, 15)),
		// placed later today, e.g. a clock skewed device
		order("D", 30, at(4, 20)),
	}

	series := analytics.RevenueSeries(orders, analytics.WindowToday, now, manila)

	// hours 0..15 plus hour 20 which has data
	require.Len(t, series, 17)
	assert.Equal(t, "0:00", series[0].Label)
	assert.Equal(t, 150.0, series[9].Revenue)
	assert.Equal(t, 70.0, series[15].Revenue)
	assert.Equal(t, "20:00", series[16].Label)
	assert.Equal(t, 30.0, series[16].Revenue)
}

func TestRevenueSeries_WeekAndMonth(t *testing.T) {
	orders := []model.Order{
		order("A", 100, at(4, 9)),
		order("B", 40, at(1, 9)),
	}

	week := analytics.RevenueSeries(orders, analytics.WindowWeek, now, manila)
	require.Len(t, week, 7)
	assert.Equal(t, "Thu", week[0].Label)
	assert.Equal(t, "Wed", week[6].Label)
	assert.Equal(t, 100.0, week[6].Revenue)
	assert.Equal(t, "Sun", week[3].Label)
	assert.Equal(t, 40.0, week[3].Revenue)

	month := analytics.RevenueSeries(orders, analytics.WindowMonth, now, manila)
	require.Len(t, month, 30)
	assert.Equal(t, "3/2", month[0].Label)
	assert.Equal(t, "4/3", month[29].Label)
	assert.Equal(t, 100.0, month[29].Revenue)

	all := analytics.RevenueSeries(orders, analytics.WindowAll, now, manila)
	assert.Len(t, all, 30)
}

func TestCategoryBreakdown(t *testing.T) {
	orders := []model.Order{
		order("A", 0, at(4, 9), item("Wintermelon Milk Tea", 1, 1)),
		// first matching item decides
		order("B", 0, at(4, 9), item("Plain Water", 1, 1), item("Matcha Milk Tea", 1, 1), item("Taro Milk Tea", 1, 1)),
		// Classic keywords are tested before Oreo ones
		order("C", 0, at(4, 9), item("Oreo Brown Sugar", 1, 1)),
		order("D", 0, at(4, 9), item("Mango Green Tea", 1, 1)),
		order("E", 0, at(4, 9)),
	}

	stats := analytics.CategoryBreakdown(orders)

	got := map[analytics.Category]analytics.CategoryStat{}
	for _, s := range stats {
		got[s.Category] = s
	}
	require.Len(t, stats, 5)
	assert.Equal(t, 2, got[analytics.CategoryClassic].Count)
	assert.Equal(t, 1, got[analytics.CategoryPremium].Count)
	assert.Equal(t, 0, got[analytics.CategoryOreo].Count)
	assert.Equal(t, 1, got[analytics.CategoryFruity].Count)
	assert.Equal(t, 1, got[analytics.CategoryOther].Count)
	assert.InDelta(t, 40.0, got[analytics.CategoryClassic].Percentage, 1e-9)
}

func TestHourlyBands(t *testing.T) {
	orders := []model.Order{
		order("early", 0, at(4, 8)),
		order("a", 0, at(4, 9)),
		order("b", 0, at(4, 11)),
		order("c", 0, at(4, 12)),
		order("d", 0, at(4, 17)),
		order("e", 0, at(4, 23)),
	}

	bands := analytics.HourlyBands(orders, manila)

	assert.Equal(t, []analytics.BandStat{
		{Label: "9AM", Orders: 2},
		{Label: "12PM", Orders: 1},
		{Label: "3PM", Orders: 1},
		{Label: "6PM", Orders: 0},
		{Label: "9PM", Orders: 1},
	}, bands)
}

func TestAlerts(t *testing.T) {
	quiet := []analytics.BandStat{{Label: "9AM", Orders: 1}}

	normal := analytics.Alerts(2, 5000, []analytics.ItemStat{{Name: "Taro", Quantity: 3}}, quiet)
	require.Len(t, normal, 1)
	assert.Equal(t, analytics.AlertAllNormal, normal[0].Kind)

	busy := []analytics.BandStat{{Label: "9AM", Orders: 6}, {Label: "12PM", Orders: 6}}
	all := analytics.Alerts(12, 900, []analytics.ItemStat{{Name: "Taro", Quantity: 11}}, busy)
	require.Len(t, all, 3)
	assert.Equal(t, analytics.AlertFastSeller, all[0].Kind)
	assert.Equal(t, "Taro is selling fast (11 sold) - check stock", all[0].Message)
	assert.Equal(t, analytics.AlertPeakBand, all[1].Kind)
	assert.Equal(t, "Peak sales hour: 9AM (6 orders)", all[1].Message)
	assert.Equal(t, analytics.AlertLowAverage, all[2].Kind)

	// exactly at the thresholds nothing fires
	edge := analytics.Alerts(5, 999, []analytics.ItemStat{{Name: "Taro", Quantity: 10}}, []analytics.BandStat{{Label: "9AM", Orders: 5}})
	require.Len(t, edge, 1)
	assert.Equal(t, analytics.AlertAllNormal, edge[0].Kind)
}

func TestParseWindow(t *testing.T) {
	w, ok := analytics.ParseWindow("")
	assert.True(t, ok)
	assert.Equal(t, analytics.WindowAll, w)

	w, ok = analytics.ParseWindow(" Week ")
	assert.True(t, ok)
	assert.Equal(t, analytics.WindowWeek, w)

	_, ok = analytics.ParseWindow("year")
	assert.False(t, ok)
}
