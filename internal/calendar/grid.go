// Package calendar holds the pure catalogue logic behind the event views:
// month grid layout, day and upcoming/past bucketing, title search, and the
// facade that composes them for a single view request.
//
// Months are zero-based (0 = January) throughout this package, matching the
// navigation state kept by the rendering layer.
package calendar

import (
	"time"

	"github.com/bariskaantoprak-ui/ITSO/internal/model"
)

// Layout describes the shape of a Monday-first month grid.
type Layout struct {
	DaysInMonth   int `json:"days_in_month"`
	LeadingBlanks int `json:"leading_blanks"`
}

// Cells is the total number of grid cells. The last week is not padded.
func (l Layout) Cells() int {
	return l.LeadingBlanks + l.DaysInMonth
}

// MonthLayout computes the grid shape for year and zero-based month.
// The month is expected to be normalised already; see ShiftMonth.
func MonthLayout(year, month int) Layout {
	// Day 0 of the following month is the last day of this one.
	last := time.Date(year, time.Month(month+2), 0, 0, 0, 0, 0, time.UTC)
	first := time.Date(year, time.Month(month+1), 1, 0, 0, 0, 0, time.UTC)
	return Layout{
		DaysInMonth:   last.Day(),
		LeadingBlanks: (int(first.Weekday()) + 6) % 7,
	}
}

// ShiftMonth moves a (year, zero-based month) pair by delta months, wrapping
// the year as needed.
func ShiftMonth(year, month, delta int) (int, int) {
	t := time.Date(year, time.Month(month+1+delta), 1, 0, 0, 0, 0, time.UTC)
	return t.Year(), int(t.Month()) - 1
}

// BuildGrid lays out events on the month grid. now decides the is-today flag
// and loc is the zone event dates are read in.
func BuildGrid(events []model.Event, year, month int, now time.Time, loc *time.Location) []model.CalendarCell {
	if loc == nil {
		loc = time.UTC
	}
	layout := MonthLayout(year, month)
	cells := make([]model.CalendarCell, 0, layout.Cells())
	for i := 0; i < layout.LeadingBlanks; i++ {
		cells = append(cells, model.CalendarCell{Blank: true})
	}

	today := now.In(loc)
	for d := 1; d <= layout.DaysInMonth; d++ {
		cells = append(cells, model.CalendarCell{
			Day:     d,
			IsToday: today.Year() == year && int(today.Month())-1 == month && today.Day() == d,
			Events:  ByDay(events, year, month, d, loc),
		})
	}
	return cells
}
