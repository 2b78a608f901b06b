package calendar

import (
	"sort"
	"time"

	"github.com/bariskaantoprak-ui/ITSO/internal/model"
)

// Mode selects how the catalogue is displayed.
type Mode string

const (
	ModeList     Mode = "list"
	ModeCalendar Mode = "calendar"
)

// ParseMode maps a query value to a Mode, defaulting to list.
func ParseMode(s string) Mode {
	if Mode(s) == ModeCalendar {
		return ModeCalendar
	}
	return ModeList
}

// ViewRequest is everything the catalogue view depends on.
type ViewRequest struct {
	Query    string
	Mode     Mode
	Year     int
	Month    int // zero-based
	Now      time.Time
	Location *time.Location
	// Chronological orders upcoming events soonest first and past events
	// most recent first. Input order is kept otherwise.
	Chronological bool
}

// View is the data a rendering layer needs for one catalogue screen.
type View struct {
	Mode     Mode                 `json:"mode"`
	Query    string               `json:"query,omitempty"`
	Year     int                  `json:"year"`
	Month    int                  `json:"month"`
	Layout   *Layout              `json:"layout,omitempty"`
	Grid     []model.CalendarCell `json:"grid,omitempty"`
	Upcoming []model.Event        `json:"upcoming"`
	Past     []model.Event        `json:"past"`
}

// BuildView filters events by the search text, lays them out on the month
// grid when the calendar is shown, and splits them into upcoming and past.
// It does not modify events.
func BuildView(events []model.Event, req ViewRequest) View {
	loc := req.Location
	if loc == nil {
		loc = time.UTC
	}
	mode := req.Mode
	if mode != ModeCalendar {
		mode = ModeList
	}

	filtered := Filter(events, req.Query)
	v := View{
		Mode:  mode,
		Query: req.Query,
		Year:  req.Year,
		Month: req.Month,
	}
	if mode == ModeCalendar {
		layout := MonthLayout(req.Year, req.Month)
		v.Layout = &layout
		v.Grid = BuildGrid(filtered, req.Year, req.Month, req.Now, loc)
	}

	b := Partition(filtered, req.Now, loc)
	if req.Chronological {
		sortByDate(b.Upcoming, loc, false)
		sortByDate(b.Past, loc, true)
	}
	v.Upcoming = b.Upcoming
	v.Past = b.Past
	return v
}

// sortByDate sorts in place, stable on ties. Unparseable dates sort last.
func sortByDate(events []model.Event, loc *time.Location, desc bool) {
	sort.SliceStable(events, func(i, j int) bool {
		ti, oki := ParseDate(events[i].Date, loc)
		tj, okj := ParseDate(events[j].Date, loc)
		if oki != okj {
			return oki
		}
		if desc {
			return ti.After(tj)
		}
		return ti.Before(tj)
	})
}
