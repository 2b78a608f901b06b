package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bariskaantoprak-ui/ITSO/internal/model"
)

const eventColumns = `id, title, event_date, time_range, location, description, detailed_content,
	category, image, gallery, documents, capacity, registered_count, key_takeaways,
	organizer_contact, created_at`

// EventRepository handles persistence for events.
type EventRepository struct {
	db *pgxpool.Pool
}

// NewEventRepository constructs an EventRepository.
func NewEventRepository(db *pgxpool.Pool) *EventRepository {
	return &EventRepository{db: db}
}

// Create inserts a new event, assigning its id and creation time.
func (r *EventRepository) Create(ctx context.Context, e *model.Event) error {
	stamp(e, time.Now())
	_, err := r.db.Exec(ctx,
		`INSERT INTO events (`+eventColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
		e.ID, e.Title, e.Date, e.Time, e.Location, e.Description, e.DetailedContent,
		string(e.Category), e.Image, e.Gallery, e.Documents, e.Capacity, e.RegisteredCount,
		e.KeyTakeaways, e.OrganizerContact, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

// Seed inserts events when the table is empty. It reports how many were added.
func (r *EventRepository) Seed(ctx context.Context, events []model.Event) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM events`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count events: %w", err)
	}
	if n > 0 {
		return 0, nil
	}
	for _, e := range SeedTimestamps(events, time.Now()) {
		if err := r.Create(ctx, &e); err != nil {
			return 0, err
		}
	}
	return len(events), nil
}

// List returns all events ordered by creation time descending.
func (r *EventRepository) List(ctx context.Context) ([]model.Event, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+eventColumns+` FROM events ORDER BY created_at DESC, id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var events []model.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, *e)
	}
	return events, rows.Err()
}

// GetByID returns a single event or ErrNotFound.
func (r *EventRepository) GetByID(ctx context.Context, id string) (*model.Event, error) {
	e, err := scanEvent(r.db.QueryRow(ctx,
		`SELECT `+eventColumns+` FROM events WHERE id = $1`, id,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return e, nil
}

func scanEvent(row pgx.Row) (*model.Event, error) {
	var e model.Event
	var category string
	err := row.Scan(
		&e.ID, &e.Title, &e.Date, &e.Time, &e.Location, &e.Description, &e.DetailedContent,
		&category, &e.Image, &e.Gallery, &e.Documents, &e.Capacity, &e.RegisteredCount,
		&e.KeyTakeaways, &e.OrganizerContact, &e.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	e.Category = model.Category(category)
	return &e, nil
}

// RegistrationRepository handles persistence for registrations.
type RegistrationRepository struct {
	db *pgxpool.Pool
}

// NewRegistrationRepository constructs a RegistrationRepository.
func NewRegistrationRepository(db *pgxpool.Pool) *RegistrationRepository {
	return &RegistrationRepository{db: db}
}

// Register records a registration and increments the event's counter in one
// transaction. The event row is locked with SELECT … FOR UPDATE so that
// concurrent sign-ups serialise on the counter instead of losing updates.
// Repeat sign-ups and sign-ups beyond capacity are accepted.
func (r *RegistrationRepository) Register(ctx context.Context, reg *model.Registration) (err error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	var locked string
	err = tx.QueryRow(ctx,
		`SELECT id FROM events WHERE id = $1 FOR UPDATE`, reg.EventID,
	).Scan(&locked)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("lock event row: %w", err)
	}

	if _, err = tx.Exec(ctx,
		`UPDATE events SET registered_count = registered_count + 1 WHERE id = $1`, reg.EventID,
	); err != nil {
		return fmt.Errorf("increment registered_count: %w", err)
	}

	reg.ID = newID()
	reg.CreatedAt = time.Now().UTC()
	if _, err = tx.Exec(ctx,
		`INSERT INTO registrations (id, event_id, full_name, company_name, email, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		reg.ID, reg.EventID, reg.FullName, reg.CompanyName, reg.Email, reg.CreatedAt,
	); err != nil {
		return fmt.Errorf("insert registration: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// ListByEvent returns all registrations for a given event.
func (r *RegistrationRepository) ListByEvent(ctx context.Context, eventID string) ([]model.Registration, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, event_id, full_name, company_name, email, created_at
		 FROM registrations
		 WHERE event_id = $1
		 ORDER BY created_at ASC, id ASC`,
		eventID,
	)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	defer rows.Close()

	var regs []model.Registration
	for rows.Next() {
		var reg model.Registration
		if err := rows.Scan(&reg.ID, &reg.EventID, &reg.FullName, &reg.CompanyName, &reg.Email, &reg.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan registration: %w", err)
		}
		regs = append(regs, reg)
	}
	return regs, rows.Err()
}
