package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/bariskaantoprak-ui/ITSO/internal/service"
)

// Deps are the collaborators the HTTP surface is built from.
type Deps struct {
	Service   *service.EventService
	Auth      Authenticator
	Assistant Assistant
	Location  *time.Location
}

// NewRouter builds the full route table.
func NewRouter(d Deps) http.Handler {
	events := NewEventHandler(d.Service, d.Location)
	companies := NewCompanyHandler(d.Service)
	admin := NewAdminHandler(d.Auth)
	assist := NewAssistHandler(d.Assistant, d.Service)

	r := chi.NewRouter()

	// Global middleware stack
	r.Use(chimiddleware.Recoverer) // recover from panics, return 500
	r.Use(chimiddleware.RequestID) // attach request IDs
	r.Use(chimiddleware.RealIP)    // trust X-Forwarded-For
	r.Use(Logger)                  // structured access log
	r.Use(CORS)
	r.Use(d.Auth.Identify)

	r.Get("/health", HealthCheck)

	r.Get("/events.ics", events.CalendarFeed)
	r.Route("/events", func(r chi.Router) {
		r.Get("/", events.ListEvents)
		r.With(d.Auth.RequireAdmin).Post("/", events.CreateEvent)
		r.Get("/{id}", events.GetEvent)
		r.Post("/{id}/register", events.Register)

		r.Group(func(r chi.Router) {
			r.Use(d.Auth.RequireAdmin)
			r.Get("/{id}/registrations", events.ListRegistrations)
			r.Get("/{id}/registrations.csv", events.ExportRegistrations)
		})
	})

	r.Route("/companies", func(r chi.Router) {
		r.Get("/", companies.ListCompanies)
		r.Get("/{id}", companies.GetCompany)
	})

	r.Post("/admin/login", admin.Login)

	r.Route("/assist", func(r chi.Router) {
		r.Use(d.Auth.RequireAdmin)
		r.Post("/description", assist.Description)
		r.Post("/image", assist.Image)
	})

	return r
}
