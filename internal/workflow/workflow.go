// Package workflow drives the registration wizard. A draft is created
// when the attendee submits their details, lives in process memory while
// the payment step is open, and is discarded on completion, explicit
// cancel, or expiry. Nothing is persisted until payment proof is
// accepted; losing a draft loses all progress, which is the intended
// modal-close semantics.
package workflow

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"campushub/internal/model"
)

type State string

const (
	StatePayment State = "payment"
	StateSuccess State = "success"
)

var (
	ErrDraftNotFound  = errors.New("registration draft not found")
	ErrDraftCompleted = errors.New("registration draft already completed")
)

type Draft struct {
	ID           string
	Event        model.Event
	Name         string
	Email        string
	Phone        string
	Requirements string
	State        State
	CreatedAt    time.Time
	ExpiresAt    time.Time
}

type Manager struct {
	mu     sync.Mutex
	drafts map[string]*Draft
	ttl    time.Duration
	log    *zerolog.Logger
}

func NewManager(ttl time.Duration, log *zerolog.Logger) *Manager {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &Manager{
		drafts: make(map[string]*Draft),
		ttl:    ttl,
		log:    log,
	}
}

// Begin opens a draft in the payment state. The details step has already
// passed validation by the time this is called.
func (m *Manager) Begin(event model.Event, name, email, phone, requirements string) Draft {
	now := time.Now().UTC()
	d := &Draft{
		ID:           uuid.NewString(),
		Event:        event,
		Name:         name,
		Email:        email,
		Phone:        phone,
		Requirements: requirements,
		State:        StatePayment,
		CreatedAt:    now,
		ExpiresAt:    now.Add(m.ttl),
	}
	m.mu.Lock()
	m.drafts[d.ID] = d
	m.mu.Unlock()
	return *d
}

func (m *Manager) Get(id string) (Draft, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.drafts[id]
	if !ok || time.Now().After(d.ExpiresAt) {
		return Draft{}, ErrDraftNotFound
	}
	return *d, nil
}

// Complete runs fn for a draft still in the payment state while holding
// the draft table lock, so a draft cannot produce two registrations. The
// draft transitions to success only if fn returns nil.
func (m *Manager) Complete(id string, fn func(d Draft) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.drafts[id]
	if !ok || time.Now().After(d.ExpiresAt) {
		return ErrDraftNotFound
	}
	if d.State == StateSuccess {
		return ErrDraftCompleted
	}
	if err := fn(*d); err != nil {
		return err
	}
	d.State = StateSuccess
	return nil
}

// Discard drops a draft unconditionally; a missing id is not an error.
func (m *Manager) Discard(id string) {
	m.mu.Lock()
	delete(m.drafts, id)
	m.mu.Unlock()
}

// Run sweeps expired drafts until the context is cancelled.
func (m *Manager) Run(ctx context.Context) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := m.sweep(time.Now()); n > 0 {
				m.log.Debug().Int("expired", n).Msg("swept registration drafts")
			}
		}
	}
}

func (m *Manager) sweep(now time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, d := range m.drafts {
		if now.After(d.ExpiresAt) {
			delete(m.drafts, id)
			n++
		}
	}
	return n
}
