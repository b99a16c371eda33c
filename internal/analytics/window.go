package analytics

import (
	"strings"
	"time"

	"pearlify/internal/domain/model"
)

// Window selects which placed orders a report covers.
type Window string

const (
	WindowAll   Window = "all"
	WindowToday Window = "today"
	WindowWeek  Window = "week"
	WindowMonth Window = "month"
)

// days covered by the rolling windows, today included
const (
	weekDays  = 7
	monthDays = 30
)

var Windows = []Window{WindowAll, WindowToday, WindowWeek, WindowMonth}

// ParseWindow treats an empty value as all.
func ParseWindow(v string) (Window, bool) {
	v = strings.ToLower(strings.TrimSpace(v))
	if v == "" {
		return WindowAll, true
	}
	for _, w := range Windows {
		if string(w) == v {
			return w, true
		}
	}
	return "", false
}

// Midnight is the start of now's calendar day in loc.
func Midnight(now time.Time, loc *time.Location) time.Time {
	n := now.In(loc)
	return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, loc)
}

// Start is the inclusive lower bound of w; ok is false for WindowAll.
func (w Window) Start(now time.Time, loc *time.Location) (time.Time, bool) {
	today := Midnight(now, loc)
	switch w {
	case WindowToday:
		return today, true
	case WindowWeek:
		return today.AddDate(0, 0, -(weekDays - 1)), true
	case WindowMonth:
		return today.AddDate(0, 0, -(monthDays - 1)), true
	default:
		return time.Time{}, false
	}
}

// Contains reports whether o falls inside w. Orders without a placed time only match WindowAll.
func (w Window) Contains(o model.Order, now time.Time, loc *time.Location) bool {
	start, bounded := w.Start(now, loc)
	if !bounded {
		return true
	}
	placed, ok := o.PlacedAt()
	if !ok {
		return false
	}
	return !placed.Before(start)
}
