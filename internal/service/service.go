// Package service implements business logic, validation, and orchestration
// between HTTP handlers and the repository layer.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/bariskaantoprak-ui/ITSO/internal/calendar"
	"github.com/bariskaantoprak-ui/ITSO/internal/logger"
	"github.com/bariskaantoprak-ui/ITSO/internal/model"
	"github.com/bariskaantoprak-ui/ITSO/internal/repository"
)

// Defaults applied to newly created events.
const (
	DefaultOrganizer = "URGE Proje Ofisi"
	DefaultTakeaway  = "Detaylar etkinlikte paylaşılacaktır."
	summaryRunes     = 100
)

// EventStore persists catalogue events.
type EventStore interface {
	Create(ctx context.Context, e *model.Event) error
	List(ctx context.Context) ([]model.Event, error)
	GetByID(ctx context.Context, id string) (*model.Event, error)
}

// RegistrationStore persists event sign-ups.
type RegistrationStore interface {
	Register(ctx context.Context, reg *model.Registration) error
	ListByEvent(ctx context.Context, eventID string) ([]model.Registration, error)
}

// EventService orchestrates event-related business operations.
type EventService struct {
	events          EventStore
	registrations   RegistrationStore
	companies       *repository.CompanyDirectory
	validate        *validator.Validate
	defaultCapacity int
	now             func() time.Time
}

// NewEventService constructs an EventService with its dependencies.
func NewEventService(
	events EventStore,
	registrations RegistrationStore,
	companies *repository.CompanyDirectory,
	defaultCapacity int,
) *EventService {
	if defaultCapacity <= 0 {
		defaultCapacity = 50
	}
	if companies == nil {
		companies = repository.NewCompanyDirectory(nil)
	}
	return &EventService{
		events:          events,
		registrations:   registrations,
		companies:       companies,
		validate:        newValidator(),
		defaultCapacity: defaultCapacity,
		now:             time.Now,
	}
}

// Validate checks a request struct against its validate tags.
func (s *EventService) Validate(req any) error {
	return validateStruct(s.validate, req)
}

// CreateEvent validates the request, fills in the defaults and stores the
// new event at the top of the catalogue.
func (s *EventService) CreateEvent(ctx context.Context, req model.CreateEventRequest) (*model.Event, error) {
	req.Title = strings.TrimSpace(req.Title)
	req.Date = strings.TrimSpace(req.Date)
	if err := s.Validate(req); err != nil {
		return nil, err
	}

	capacity := req.Capacity
	if capacity == 0 {
		capacity = s.defaultCapacity
	}
	organizer := strings.TrimSpace(req.OrganizerContact)
	if organizer == "" {
		organizer = DefaultOrganizer
	}
	image := strings.TrimSpace(req.Image)
	if image == "" {
		image = fmt.Sprintf("https://picsum.photos/800/400?random=%d", s.now().UnixMilli())
	}

	e := &model.Event{
		Title:            req.Title,
		Date:             req.Date,
		Time:             strings.TrimSpace(req.Time),
		Location:         strings.TrimSpace(req.Location),
		Description:      Summary(req.DetailedContent),
		DetailedContent:  req.DetailedContent,
		Category:         req.Category,
		Image:            image,
		Gallery:          []string{},
		Documents:        []model.Document{},
		Capacity:         capacity,
		KeyTakeaways:     Takeaways(req.Takeaways),
		OrganizerContact: organizer,
	}
	if err := s.events.Create(ctx, e); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}

	logger.L().Info("event created",
		zap.String("event_id", e.ID),
		zap.String("title", e.Title),
		zap.String("date", e.Date),
	)
	return e, nil
}

// Summary is the card text: the first 100 characters of the detailed
// content followed by an ellipsis.
func Summary(content string) string {
	r := []rune(content)
	if len(r) > summaryRunes {
		r = r[:summaryRunes]
	}
	return string(r) + "..."
}

// Takeaways splits newline-separated notes, dropping blank lines.
func Takeaways(raw string) []string {
	var out []string
	for _, line := range strings.Split(raw, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	if len(out) == 0 {
		return []string{DefaultTakeaway}
	}
	return out
}

// ListEvents returns all events, newest first.
func (s *EventService) ListEvents(ctx context.Context) ([]model.Event, error) {
	events, err := s.events.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

// Catalogue loads the events and builds the requested view of them.
func (s *EventService) Catalogue(ctx context.Context, req calendar.ViewRequest) (calendar.View, error) {
	events, err := s.ListEvents(ctx)
	if err != nil {
		return calendar.View{}, err
	}
	if req.Now.IsZero() {
		req.Now = s.now()
	}
	return calendar.BuildView(events, req), nil
}

// GetEvent returns a single event by ID.
func (s *EventService) GetEvent(ctx context.Context, id string) (*model.Event, error) {
	if id == "" {
		return nil, repository.ErrNotFound
	}
	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

// Register validates the sign-up and appends it to the event. Repeated
// sign-ups and sign-ups beyond capacity are accepted.
func (s *EventService) Register(ctx context.Context, eventID string, req model.RegisterRequest) (*model.Registration, error) {
	req.FullName = strings.TrimSpace(req.FullName)
	req.CompanyName = strings.TrimSpace(req.CompanyName)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := s.Validate(req); err != nil {
		return nil, err
	}
	if eventID == "" {
		return nil, repository.ErrNotFound
	}

	reg := &model.Registration{
		EventID:     eventID,
		FullName:    req.FullName,
		CompanyName: req.CompanyName,
		Email:       req.Email,
	}
	if err := s.registrations.Register(ctx, reg); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("register for event: %w", err)
	}

	logger.L().Info("registration received",
		zap.String("event_id", eventID),
		zap.String("registration_id", reg.ID),
	)
	return reg, nil
}

// ListRegistrations returns all registrations for an event.
func (s *EventService) ListRegistrations(ctx context.Context, eventID string) ([]model.Registration, error) {
	if _, err := s.GetEvent(ctx, eventID); err != nil {
		return nil, err
	}
	regs, err := s.registrations.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	return regs, nil
}

// Companies returns the member directory.
func (s *EventService) Companies() []model.Company {
	return s.companies.List()
}

// Company returns one member company.
func (s *EventService) Company(id string) (*model.Company, error) {
	return s.companies.Get(id)
}
