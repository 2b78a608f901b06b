package handler

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/bariskaantoprak-ui/ITSO/internal/auth"
	"github.com/bariskaantoprak-ui/ITSO/internal/calendar"
	"github.com/bariskaantoprak-ui/ITSO/internal/content"
	"github.com/bariskaantoprak-ui/ITSO/internal/export"
	"github.com/bariskaantoprak-ui/ITSO/internal/model"
	"github.com/bariskaantoprak-ui/ITSO/internal/repository"
	"github.com/bariskaantoprak-ui/ITSO/internal/service"
)

// EventHandler holds the catalogue and registration handlers.
type EventHandler struct {
	svc *service.EventService
	loc *time.Location
	now func() time.Time
}

// NewEventHandler constructs an EventHandler. Calendar days are interpreted
// in loc.
func NewEventHandler(svc *service.EventService, loc *time.Location) *EventHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &EventHandler{svc: svc, loc: loc, now: time.Now}
}

// MonthRef names a calendar month with a 1-based month number.
type MonthRef struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

// CatalogueResponse is calendar.View with wire-friendly month numbers and
// the neighbouring months for navigation.
type CatalogueResponse struct {
	calendar.View
	Month int      `json:"month"`
	Prev  MonthRef `json:"prev"`
	Next  MonthRef `json:"next"`
}

// EventDetail is the event page payload.
type EventDetail struct {
	model.Event
	ContentHTML string      `json:"content_html"`
	Remaining   int         `json:"remaining"`
	IsFull      bool        `json:"is_full"`
	Tabs        []model.Tab `json:"tabs"`
}

// ListEvents handles GET /events
// Query: q (search), view=list|calendar, year, month (1-12), sort=date.
func (h *EventHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	req, err := h.viewRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	view, err := h.svc.Catalogue(r.Context(), req)
	if err != nil {
		internalError(w, r, "failed to list events", err)
		return
	}

	py, pm := calendar.ShiftMonth(view.Year, view.Month, -1)
	ny, nm := calendar.ShiftMonth(view.Year, view.Month, 1)
	writeJSON(w, http.StatusOK, CatalogueResponse{
		View:  view,
		Month: view.Month + 1,
		Prev:  MonthRef{Year: py, Month: pm + 1},
		Next:  MonthRef{Year: ny, Month: nm + 1},
	})
}

func (h *EventHandler) viewRequest(r *http.Request) (calendar.ViewRequest, error) {
	q := r.URL.Query()
	now := h.now().In(h.loc)

	year := now.Year()
	month := int(now.Month()) - 1
	if v := q.Get("year"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 9999 {
			return calendar.ViewRequest{}, fmt.Errorf("invalid year %q", v)
		}
		year = n
	}
	if v := q.Get("month"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return calendar.ViewRequest{}, fmt.Errorf("invalid month %q", v)
		}
		year, month = calendar.ShiftMonth(year, 0, n-1)
	}

	return calendar.ViewRequest{
		Query:         q.Get("q"),
		Mode:          calendar.ParseMode(q.Get("view")),
		Year:          year,
		Month:         month,
		Now:           now,
		Location:      h.loc,
		Chronological: q.Get("sort") == "date",
	}, nil
}

// CalendarFeed handles GET /events.ics
func (h *EventHandler) CalendarFeed(w http.ResponseWriter, r *http.Request) {
	events, err := h.svc.ListEvents(r.Context())
	if err != nil {
		internalError(w, r, "failed to list events", err)
		return
	}

	var buf bytes.Buffer
	if err := export.WriteICS(&buf, events, h.loc, h.now()); err != nil {
		internalError(w, r, "failed to render calendar", err)
		return
	}
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `inline; filename="urge-etkinlikler.ics"`)
	_, _ = w.Write(buf.Bytes())
}

// CreateEvent handles POST /events
func (h *EventHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req model.CreateEventRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	event, err := h.svc.CreateEvent(r.Context(), req)
	if err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			writeRequestError(w, err)
			return
		}
		internalError(w, r, "failed to create event", err)
		return
	}

	writeJSON(w, http.StatusCreated, event)
}

// GetEvent handles GET /events/{id}
// Admins additionally see the participants tab.
func (h *EventHandler) GetEvent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	event, err := h.svc.GetEvent(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "event not found")
			return
		}
		internalError(w, r, "failed to get event", err)
		return
	}

	html, err := content.ToHTML(event.DetailedContent)
	if err != nil {
		internalError(w, r, "failed to render event", err)
		return
	}

	writeJSON(w, http.StatusOK, EventDetail{
		Event:       *event,
		ContentHTML: html,
		Remaining:   event.Remaining(),
		IsFull:      event.IsFull(),
		Tabs:        model.DetailTabs(auth.IsAdmin(r.Context())),
	})
}

// Register handles POST /events/{id}/register
func (h *EventHandler) Register(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req model.RegisterRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	reg, err := h.svc.Register(r.Context(), id, req)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "event not found")
			return
		}
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			writeRequestError(w, err)
			return
		}
		internalError(w, r, "failed to register", err)
		return
	}

	writeJSON(w, http.StatusCreated, reg)
}

// ListRegistrations handles GET /events/{id}/registrations
func (h *EventHandler) ListRegistrations(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	regs, err := h.svc.ListRegistrations(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "event not found")
			return
		}
		internalError(w, r, "failed to list registrations", err)
		return
	}

	if regs == nil {
		regs = []model.Registration{}
	}

	writeJSON(w, http.StatusOK, regs)
}

// ExportRegistrations handles GET /events/{id}/registrations.csv
func (h *EventHandler) ExportRegistrations(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	event, err := h.svc.GetEvent(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "event not found")
			return
		}
		internalError(w, r, "failed to get event", err)
		return
	}
	regs, err := h.svc.ListRegistrations(r.Context(), id)
	if err != nil {
		internalError(w, r, "failed to list registrations", err)
		return
	}
	if len(regs) == 0 {
		writeError(w, http.StatusNotFound, "no participants to export")
		return
	}

	var buf bytes.Buffer
	if err := export.WriteRegistrationsCSV(&buf, regs); err != nil {
		internalError(w, r, "failed to export registrations", err)
		return
	}
	w.Header().Set("Content-Type", export.CSVContentType)
	w.Header().Set("Content-Disposition",
		fmt.Sprintf(`attachment; filename="%s"`, export.CSVFilename(event.Title)))
	_, _ = w.Write(buf.Bytes())
}
