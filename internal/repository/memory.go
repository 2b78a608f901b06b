package repository

import (
	"context"
	"sync"
	"time"

	"github.com/bariskaantoprak-ui/ITSO/internal/model"
)

// MemoryStore keeps events and registrations in process memory. State is
// lost on restart.
type MemoryStore struct {
	mu            sync.RWMutex
	events        []model.Event // newest first
	registrations []model.Registration
	now           func() time.Time
}

// NewMemoryStore returns a store preloaded with seed events, kept in the
// given order.
func NewMemoryStore(seed []model.Event) *MemoryStore {
	s := &MemoryStore{now: time.Now}
	for _, e := range SeedTimestamps(seed, s.now()) {
		stamp(&e, s.now())
		s.events = append(s.events, e)
	}
	return s
}

// Create adds an event in front of the catalogue.
func (s *MemoryStore) Create(_ context.Context, e *model.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stamp(e, s.now())
	s.events = append([]model.Event{*e}, s.events...)
	return nil
}

// List returns all events, newest first.
func (s *MemoryStore) List(_ context.Context) ([]model.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Event, len(s.events))
	copy(out, s.events)
	return out, nil
}

// GetByID returns a single event or ErrNotFound.
func (s *MemoryStore) GetByID(_ context.Context, id string) (*model.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.events {
		if s.events[i].ID == id {
			e := s.events[i]
			return &e, nil
		}
	}
	return nil, ErrNotFound
}

// Register appends reg and bumps the event's registered count.
func (s *MemoryStore) Register(_ context.Context, reg *model.Registration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i := range s.events {
		if s.events[i].ID == reg.EventID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrNotFound
	}

	reg.ID = newID()
	reg.CreatedAt = s.now().UTC()
	s.events[idx].RegisteredCount++
	s.registrations = append(s.registrations, *reg)
	return nil
}

// ListByEvent returns an event's registrations in sign-up order.
func (s *MemoryStore) ListByEvent(_ context.Context, eventID string) ([]model.Registration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var regs []model.Registration
	for _, r := range s.registrations {
		if r.EventID == eventID {
			regs = append(regs, r)
		}
	}
	return regs, nil
}
