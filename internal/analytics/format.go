package analytics

import "fmt"

const noPeakHour = "--:--"

// FormatHour renders an hour of day on a 12-hour clock, e.g. 9:00AM or 12:00PM.
func FormatHour(h int) string {
	period := "AM"
	if h >= 12 {
		period = "PM"
	}
	display := h % 12
	if display == 0 {
		display = 12
	}
	return fmt.Sprintf("%d:00%s", display, period)
}
