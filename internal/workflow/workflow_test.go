package workflow

import (
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"campushub/internal/model"
)

func newManager(ttl time.Duration) *Manager {
	log := zerolog.Nop()
	return NewManager(ttl, &log)
}

func TestDraftLifecycle(t *testing.T) {
	m := newManager(time.Minute)
	event := model.Event{ID: "e1", Title: "Tech Fair"}

	d := m.Begin(event, "Ada", "ada@x.com", "555", "")
	if d.State != StatePayment {
		t.Fatalf("new draft state = %q, want %q", d.State, StatePayment)
	}

	got, err := m.Get(d.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Event.ID != "e1" || got.Name != "Ada" {
		t.Fatalf("draft lost its details: %+v", got)
	}

	called := false
	if err := m.Complete(d.ID, func(d Draft) error {
		called = true
		return nil
	}); err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if !called {
		t.Fatal("Complete did not run the callback")
	}

	// A completed draft cannot produce a second registration.
	if err := m.Complete(d.ID, func(Draft) error { return nil }); !errors.Is(err, ErrDraftCompleted) {
		t.Fatalf("expected ErrDraftCompleted, got %v", err)
	}
}

func TestCompleteKeepsDraftOpenOnError(t *testing.T) {
	m := newManager(time.Minute)
	d := m.Begin(model.Event{ID: "e1"}, "Ada", "ada@x.com", "555", "")

	boom := errors.New("store write failed")
	if err := m.Complete(d.ID, func(Draft) error { return boom }); !errors.Is(err, boom) {
		t.Fatalf("expected the callback error, got %v", err)
	}

	// The failure left the draft in the payment state; a retry works.
	if err := m.Complete(d.ID, func(Draft) error { return nil }); err != nil {
		t.Fatalf("retry after failure should succeed, got %v", err)
	}
}

func TestDiscardDropsAllProgress(t *testing.T) {
	m := newManager(time.Minute)
	d := m.Begin(model.Event{ID: "e1"}, "Ada", "ada@x.com", "555", "")

	m.Discard(d.ID)
	if _, err := m.Get(d.ID); !errors.Is(err, ErrDraftNotFound) {
		t.Fatalf("expected ErrDraftNotFound after discard, got %v", err)
	}
	if err := m.Complete(d.ID, func(Draft) error { return nil }); !errors.Is(err, ErrDraftNotFound) {
		t.Fatalf("expected ErrDraftNotFound, got %v", err)
	}

	// Discarding twice is fine.
	m.Discard(d.ID)
}

func TestExpiredDraftsAreGone(t *testing.T) {
	m := newManager(10 * time.Millisecond)
	d := m.Begin(model.Event{ID: "e1"}, "Ada", "ada@x.com", "555", "")

	time.Sleep(20 * time.Millisecond)

	if _, err := m.Get(d.ID); !errors.Is(err, ErrDraftNotFound) {
		t.Fatalf("expired draft still visible: %v", err)
	}
	if err := m.Complete(d.ID, func(Draft) error { return nil }); !errors.Is(err, ErrDraftNotFound) {
		t.Fatalf("expired draft still completable: %v", err)
	}

	if n := m.sweep(time.Now()); n != 1 {
		t.Fatalf("sweep removed %d drafts, want 1", n)
	}
	if n := m.sweep(time.Now()); n != 0 {
		t.Fatalf("second sweep removed %d drafts, want 0", n)
	}
}
