package calendar

import (
	"time"

	"github.com/bariskaantoprak-ui/ITSO/internal/model"
)

// ParseDate reads an event date as local midnight in loc. ok is false for
// dates that do not parse; such events never match a day and count as past.
func ParseDate(date string, loc *time.Location) (t time.Time, ok bool) {
	if loc == nil {
		loc = time.UTC
	}
	t, err := time.ParseInLocation(model.DateLayout, date, loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ByDay returns the events dated on the given calendar day, in input order.
func ByDay(events []model.Event, year, month, day int, loc *time.Location) []model.Event {
	var out []model.Event
	for _, e := range events {
		t, ok := ParseDate(e.Date, loc)
		if !ok {
			continue
		}
		if t.Year() == year && int(t.Month())-1 == month && t.Day() == day {
			out = append(out, e)
		}
	}
	return out
}

// Buckets is the upcoming/past split of a list of events.
type Buckets struct {
	Upcoming []model.Event `json:"upcoming"`
	Past     []model.Event `json:"past"`
}

// Partition splits events around now. An event dated exactly at now is
// upcoming. Input order is kept within each bucket.
func Partition(events []model.Event, now time.Time, loc *time.Location) Buckets {
	b := Buckets{
		Upcoming: []model.Event{},
		Past:     []model.Event{},
	}
	for _, e := range events {
		t, ok := ParseDate(e.Date, loc)
		if ok && !t.Before(now) {
			b.Upcoming = append(b.Upcoming, e)
			continue
		}
		b.Past = append(b.Past, e)
	}
	return b
}
