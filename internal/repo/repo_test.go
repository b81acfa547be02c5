package repo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"campushub/internal/kvstore"
	"campushub/internal/model"
)

func newTestRepo(t *testing.T) (Repository, kvstore.Store) {
	t.Helper()
	store := kvstore.NewMemory()
	log := zerolog.Nop()
	r, err := NewRepository(store, &log)
	if err != nil {
		t.Fatalf("NewRepository failed: %v", err)
	}
	return r, store
}

func addEvent(t *testing.T, r Repository, title string) model.Event {
	t.Helper()
	e := model.Event{Title: title, Date: "2024-03-01", Location: "Hall A"}
	if err := r.AddEvent(context.Background(), &e); err != nil {
		t.Fatalf("AddEvent(%s) failed: %v", title, err)
	}
	if e.ID == "" {
		t.Fatal("AddEvent did not assign an id")
	}
	return e
}

func addRegistration(t *testing.T, r Repository, eventID string, status model.PaymentStatus, cents int64) model.Registration {
	t.Helper()
	now := time.Now().UTC()
	reg := model.Registration{
		EventID:       eventID,
		Name:          "Ada",
		Email:         "ada@x.com",
		Phone:         "555",
		Timestamp:     now,
		PaymentStatus: status,
		AmountCents:   cents,
	}
	if err := r.AddRegistration(context.Background(), &reg); err != nil {
		t.Fatalf("AddRegistration failed: %v", err)
	}
	return reg
}

func TestEventAddDeletePreservesOrder(t *testing.T) {
	r, _ := newTestRepo(t)
	ctx := context.Background()

	a := addEvent(t, r, "A")
	b := addEvent(t, r, "B")
	c := addEvent(t, r, "C")

	if _, err := r.DeleteEvent(ctx, b.ID); err != nil {
		t.Fatalf("DeleteEvent failed: %v", err)
	}

	events, err := r.ListEvents(ctx)
	if err != nil {
		t.Fatalf("ListEvents failed: %v", err)
	}
	if len(events) != 2 || events[0].ID != a.ID || events[1].ID != c.ID {
		t.Fatalf("survivors out of order: %+v", events)
	}

	if _, err := r.DeleteEvent(ctx, "no-such-id"); !errors.Is(err, ErrEventNotFound) {
		t.Fatalf("expected ErrEventNotFound, got %v", err)
	}
}

func TestDeleteEventCascadesRegistrations(t *testing.T) {
	r, _ := newTestRepo(t)
	ctx := context.Background()

	e1 := addEvent(t, r, "Tech Fair")
	e2 := addEvent(t, r, "Science Day")
	addRegistration(t, r, e1.ID, model.PaymentCompleted, 1000)
	addRegistration(t, r, e1.ID, model.PaymentCompleted, 1000)
	keep := addRegistration(t, r, e2.ID, model.PaymentCompleted, 1000)

	cascaded, err := r.DeleteEvent(ctx, e1.ID)
	if err != nil {
		t.Fatalf("DeleteEvent failed: %v", err)
	}
	if cascaded != 2 {
		t.Fatalf("cascaded = %d, want 2", cascaded)
	}

	regs, err := r.ListRegistrations(ctx)
	if err != nil {
		t.Fatalf("ListRegistrations failed: %v", err)
	}
	if len(regs) != 1 || regs[0].ID != keep.ID {
		t.Fatalf("cascade removed the wrong rows: %+v", regs)
	}
}

func TestCollectedCentsExcludesPending(t *testing.T) {
	r, _ := newTestRepo(t)
	ctx := context.Background()

	e := addEvent(t, r, "Tech Fair")
	addRegistration(t, r, e.ID, model.PaymentCompleted, 1000)
	// No creation path produces a pending registration; construct one
	// directly to pin the exclusion behavior.
	addRegistration(t, r, e.ID, model.PaymentPending, 1000)

	sum, err := r.CollectedCents(ctx, e.ID)
	if err != nil {
		t.Fatalf("CollectedCents failed: %v", err)
	}
	if sum != 1000 {
		t.Fatalf("collected = %d, want 1000 (pending excluded)", sum)
	}

	count, err := r.CountRegistrations(ctx, e.ID)
	if err != nil {
		t.Fatalf("CountRegistrations failed: %v", err)
	}
	if count != 2 {
		t.Fatalf("count = %d, want 2 (all statuses)", count)
	}
}

func TestCorruptCollectionIsRejected(t *testing.T) {
	r, store := newTestRepo(t)
	ctx := context.Background()

	if err := store.Set(ctx, KeyEvents, "{not json"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if _, err := r.ListEvents(ctx); !errors.Is(err, ErrCorrupt) {
		t.Fatalf("expected ErrCorrupt for malformed JSON, got %v", err)
	}

	if err := store.Set(ctx, KeyEvents, `{"version":99,"data":[]}`); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if _, err := r.ListEvents(ctx); !errors.Is(err, ErrCorrupt) {
		t.Fatalf("expected ErrCorrupt for unknown version, got %v", err)
	}
}

func TestBlogSeedAndMutations(t *testing.T) {
	r, _ := newTestRepo(t)
	ctx := context.Background()

	seed := []model.BlogPost{
		{ID: "1", Title: "Welcome", Author: "Admin", Content: "hi", Date: time.Now().UTC()},
	}
	if err := r.SeedBlogPosts(ctx, seed); err != nil {
		t.Fatalf("SeedBlogPosts failed: %v", err)
	}
	// Seeding again must not duplicate.
	if err := r.SeedBlogPosts(ctx, seed); err != nil {
		t.Fatalf("second SeedBlogPosts failed: %v", err)
	}
	posts, err := r.ListBlogPosts(ctx)
	if err != nil {
		t.Fatalf("ListBlogPosts failed: %v", err)
	}
	if len(posts) != 1 {
		t.Fatalf("seed applied %d times", len(posts))
	}

	p := model.BlogPost{Title: "News", Author: "Team", Content: "line1\n\nline2"}
	if err := r.AddBlogPost(ctx, &p); err != nil {
		t.Fatalf("AddBlogPost failed: %v", err)
	}
	posts, _ = r.ListBlogPosts(ctx)
	if len(posts) != 2 || posts[0].ID != p.ID {
		t.Fatalf("new post should be first: %+v", posts)
	}

	if err := r.DeleteBlogPost(ctx, p.ID); err != nil {
		t.Fatalf("DeleteBlogPost failed: %v", err)
	}
	if err := r.DeleteBlogPost(ctx, p.ID); !errors.Is(err, ErrBlogPostNotFound) {
		t.Fatalf("expected ErrBlogPostNotFound, got %v", err)
	}
}

func TestAdminSessionSurvivesNewRepository(t *testing.T) {
	r, store := newTestRepo(t)
	ctx := context.Background()

	if err := r.SetAdminSession(ctx, "tok-123"); err != nil {
		t.Fatalf("SetAdminSession failed: %v", err)
	}

	// Simulated reload: a fresh repository over the same store.
	log := zerolog.Nop()
	r2, err := NewRepository(store, &log)
	if err != nil {
		t.Fatalf("NewRepository failed: %v", err)
	}
	token, ok, err := r2.AdminSession(ctx)
	if err != nil || !ok || token != "tok-123" {
		t.Fatalf("session lost across reload: token=%q ok=%v err=%v", token, ok, err)
	}

	if err := r2.ClearAdminSession(ctx); err != nil {
		t.Fatalf("ClearAdminSession failed: %v", err)
	}
	if _, ok, _ := r2.AdminSession(ctx); ok {
		t.Fatal("session survived ClearAdminSession")
	}
}

func TestContactMessages(t *testing.T) {
	r, _ := newTestRepo(t)
	ctx := context.Background()

	m := model.ContactMessage{Name: "Ada", Email: "ada@x.com", Subject: "Hi", Message: "Hello"}
	if err := r.AddContactMessage(ctx, &m); err != nil {
		t.Fatalf("AddContactMessage failed: %v", err)
	}
	msgs, err := r.ListContactMessages(ctx)
	if err != nil {
		t.Fatalf("ListContactMessages failed: %v", err)
	}
	if len(msgs) != 1 || msgs[0].ID != m.ID || msgs[0].ReceivedAt.IsZero() {
		t.Fatalf("unexpected messages: %+v", msgs)
	}
}
