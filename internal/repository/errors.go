// Package repository implements event and registration storage: a PostgreSQL
// backend using pgx directly, and an in-memory backend for demos and tests.
package repository

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/bariskaantoprak-ui/ITSO/internal/model"
)

// ErrNotFound is returned when a requested resource does not exist.
var ErrNotFound = errors.New("not found")

// newID returns a time-ordered UUID so that ids sort by creation.
func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}

// stamp fills in the id and creation time of a new event.
func stamp(e *model.Event, now time.Time) {
	if e.ID == "" {
		e.ID = newID()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = now.UTC()
	}
	if e.Gallery == nil {
		e.Gallery = []string{}
	}
	if e.Documents == nil {
		e.Documents = []model.Document{}
	}
	if e.KeyTakeaways == nil {
		e.KeyTakeaways = []string{}
	}
}

// SeedTimestamps gives seed events descending creation times so that a
// newest-first listing keeps their file order.
func SeedTimestamps(events []model.Event, base time.Time) []model.Event {
	out := make([]model.Event, len(events))
	for i, e := range events {
		e.CreatedAt = base.Add(-time.Duration(i) * time.Second).UTC()
		out[i] = e
	}
	return out
}
