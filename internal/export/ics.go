package export

import (
	"io"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/bariskaantoprak-ui/ITSO/internal/calendar"
	"github.com/bariskaantoprak-ui/ITSO/internal/model"
)

const (
	productID    = "-//ITSO URGE//Etkinlik Takvimi//TR"
	calendarName = "İTSO URGE Etkinlikleri"
	uidDomain    = "@urge.itso.org.tr"
)

// WriteICS writes events as all-day VEVENTs. Events whose date does not
// parse are left out.
func WriteICS(w io.Writer, events []model.Event, loc *time.Location, now time.Time) error {
	if loc == nil {
		loc = time.UTC
	}

	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productID)
	cal.SetXWRCalName(calendarName)
	cal.SetXWRTimezone(loc.String())

	for _, e := range events {
		day, ok := calendar.ParseDate(e.Date, loc)
		if !ok {
			continue
		}

		ev := cal.AddEvent(e.ID + uidDomain)
		ev.SetDtStampTime(now.UTC())
		if !e.CreatedAt.IsZero() {
			ev.SetCreatedTime(e.CreatedAt.UTC())
		}
		ev.SetAllDayStartAt(day)
		ev.SetAllDayEndAt(day.AddDate(0, 0, 1))
		ev.SetSummary(e.Title)
		if e.Location != "" {
			ev.SetLocation(e.Location)
		}
		ev.SetDescription(icsDescription(e))
	}

	_, err := io.WriteString(w, cal.Serialize())
	return err
}

func icsDescription(e model.Event) string {
	var b strings.Builder
	if e.Time != "" {
		b.WriteString(e.Time)
		b.WriteString("\n")
	}
	if e.Category != "" {
		b.WriteString(string(e.Category))
		b.WriteString("\n")
	}
	b.WriteString(e.Description)
	return strings.TrimSpace(b.String())
}
