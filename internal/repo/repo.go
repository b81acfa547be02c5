package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"campushub/internal/kvstore"
	"campushub/internal/model"
)

// Store keys. One key per collection; the whole collection is rewritten
// on every mutation.
const (
	KeyEvents          = "events"
	KeyRegistrations   = "registrations"
	KeyBlogPosts       = "blogPosts"
	KeyContactMessages = "contactMessages"
	KeyAdminSession    = "adminSession"
)

const schemaVersion = 1

var (
	ErrEventNotFound        = errors.New("event not found")
	ErrBlogPostNotFound     = errors.New("blog post not found")
	ErrRegistrationNotFound = errors.New("registration not found")
	ErrCorrupt              = errors.New("stored collection is corrupt")
)

// envelope wraps every persisted collection so that loads can reject
// malformed or unknown-version payloads instead of failing mid-parse.
type envelope struct {
	Version int             `json:"version"`
	Data    json.RawMessage `json:"data"`
}

type Repository interface {
	AddEvent(ctx context.Context, e *model.Event) error
	ListEvents(ctx context.Context) ([]model.Event, error)
	GetEventByID(ctx context.Context, id string) (*model.Event, error)
	DeleteEvent(ctx context.Context, id string) (int, error)

	AddRegistration(ctx context.Context, reg *model.Registration) error
	ListRegistrations(ctx context.Context) ([]model.Registration, error)
	ListRegistrationsByEvent(ctx context.Context, eventID string) ([]model.Registration, error)
	GetRegistrationByID(ctx context.Context, id string) (*model.Registration, error)
	CountRegistrations(ctx context.Context, eventID string) (int, error)
	CollectedCents(ctx context.Context, eventID string) (int64, error)

	ListBlogPosts(ctx context.Context) ([]model.BlogPost, error)
	AddBlogPost(ctx context.Context, p *model.BlogPost) error
	DeleteBlogPost(ctx context.Context, id string) error
	SeedBlogPosts(ctx context.Context, posts []model.BlogPost) error

	AddContactMessage(ctx context.Context, m *model.ContactMessage) error
	ListContactMessages(ctx context.Context) ([]model.ContactMessage, error)

	SetAdminSession(ctx context.Context, token string) error
	AdminSession(ctx context.Context) (string, bool, error)
	ClearAdminSession(ctx context.Context) error
}

type repository struct {
	store kvstore.Store
	log   *zerolog.Logger
}

func NewRepository(store kvstore.Store, log *zerolog.Logger) (Repository, error) {
	if store == nil {
		return nil, fmt.Errorf("store cannot be nil")
	}
	return &repository{store: store, log: log}, nil
}

func loadCollection[T any](ctx context.Context, s kvstore.Store, key string) ([]T, error) {
	raw, ok, err := s.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	var env envelope
	if err := json.Unmarshal([]byte(raw), &env); err != nil {
		return nil, fmt.Errorf("%w: key %q: %v", ErrCorrupt, key, err)
	}
	if env.Version != schemaVersion {
		return nil, fmt.Errorf("%w: key %q: unsupported version %d", ErrCorrupt, key, env.Version)
	}
	var items []T
	if err := json.Unmarshal(env.Data, &items); err != nil {
		return nil, fmt.Errorf("%w: key %q: %v", ErrCorrupt, key, err)
	}
	return items, nil
}

func encodeCollection[T any](key string, items []T) (kvstore.Op, error) {
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return kvstore.Op{}, fmt.Errorf("failed to encode collection %q: %w", key, err)
	}
	raw, err := json.Marshal(envelope{Version: schemaVersion, Data: data})
	if err != nil {
		return kvstore.Op{}, fmt.Errorf("failed to encode envelope %q: %w", key, err)
	}
	return kvstore.SetOp(key, string(raw)), nil
}

func saveCollection[T any](ctx context.Context, s kvstore.Store, key string, items []T) error {
	op, err := encodeCollection(key, items)
	if err != nil {
		return err
	}
	return s.Set(ctx, op.Key, op.Value)
}

func (r *repository) AddEvent(ctx context.Context, e *model.Event) error {
	events, err := loadCollection[model.Event](ctx, r.store, KeyEvents)
	if err != nil {
		return err
	}
	e.ID = uuid.NewString()
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	events = append(events, *e)
	return saveCollection(ctx, r.store, KeyEvents, events)
}

func (r *repository) ListEvents(ctx context.Context) ([]model.Event, error) {
	return loadCollection[model.Event](ctx, r.store, KeyEvents)
}

func (r *repository) GetEventByID(ctx context.Context, id string) (*model.Event, error) {
	events, err := loadCollection[model.Event](ctx, r.store, KeyEvents)
	if err != nil {
		return nil, err
	}
	for i := range events {
		if events[i].ID == id {
			return &events[i], nil
		}
	}
	return nil, ErrEventNotFound
}

// DeleteEvent removes the event and every registration referencing it in
// a single store batch. Returns the number of cascaded registrations.
func (r *repository) DeleteEvent(ctx context.Context, id string) (int, error) {
	events, err := loadCollection[model.Event](ctx, r.store, KeyEvents)
	if err != nil {
		return 0, err
	}
	kept := events[:0:0]
	found := false
	for _, e := range events {
		if e.ID == id {
			found = true
			continue
		}
		kept = append(kept, e)
	}
	if !found {
		return 0, ErrEventNotFound
	}

	regs, err := loadCollection[model.Registration](ctx, r.store, KeyRegistrations)
	if err != nil {
		return 0, err
	}
	keptRegs := regs[:0:0]
	cascaded := 0
	for _, reg := range regs {
		if reg.EventID == id {
			cascaded++
			continue
		}
		keptRegs = append(keptRegs, reg)
	}

	eventsOp, err := encodeCollection(KeyEvents, kept)
	if err != nil {
		return 0, err
	}
	regsOp, err := encodeCollection(KeyRegistrations, keptRegs)
	if err != nil {
		return 0, err
	}
	if err := r.store.Apply(ctx, []kvstore.Op{eventsOp, regsOp}); err != nil {
		return 0, err
	}
	r.log.Info().Str("event_id", id).Int("cascaded_registrations", cascaded).Msg("event deleted")
	return cascaded, nil
}

func (r *repository) AddRegistration(ctx context.Context, reg *model.Registration) error {
	regs, err := loadCollection[model.Registration](ctx, r.store, KeyRegistrations)
	if err != nil {
		return err
	}
	if reg.ID == "" {
		reg.ID = uuid.NewString()
	}
	regs = append(regs, *reg)
	return saveCollection(ctx, r.store, KeyRegistrations, regs)
}

func (r *repository) ListRegistrations(ctx context.Context) ([]model.Registration, error) {
	return loadCollection[model.Registration](ctx, r.store, KeyRegistrations)
}

func (r *repository) ListRegistrationsByEvent(ctx context.Context, eventID string) ([]model.Registration, error) {
	regs, err := loadCollection[model.Registration](ctx, r.store, KeyRegistrations)
	if err != nil {
		return nil, err
	}
	var out []model.Registration
	for _, reg := range regs {
		if reg.EventID == eventID {
			out = append(out, reg)
		}
	}
	return out, nil
}

func (r *repository) GetRegistrationByID(ctx context.Context, id string) (*model.Registration, error) {
	regs, err := loadCollection[model.Registration](ctx, r.store, KeyRegistrations)
	if err != nil {
		return nil, err
	}
	for i := range regs {
		if regs[i].ID == id {
			return &regs[i], nil
		}
	}
	return nil, ErrRegistrationNotFound
}

func (r *repository) CountRegistrations(ctx context.Context, eventID string) (int, error) {
	regs, err := r.ListRegistrationsByEvent(ctx, eventID)
	if err != nil {
		return 0, err
	}
	return len(regs), nil
}

// CollectedCents sums payment amounts over completed registrations only;
// pending rows are excluded from revenue.
func (r *repository) CollectedCents(ctx context.Context, eventID string) (int64, error) {
	regs, err := r.ListRegistrationsByEvent(ctx, eventID)
	if err != nil {
		return 0, err
	}
	var sum int64
	for _, reg := range regs {
		if reg.PaymentStatus == model.PaymentCompleted {
			sum += reg.AmountCents
		}
	}
	return sum, nil
}

func (r *repository) ListBlogPosts(ctx context.Context) ([]model.BlogPost, error) {
	return loadCollection[model.BlogPost](ctx, r.store, KeyBlogPosts)
}

// AddBlogPost prepends: the blog renders newest first.
func (r *repository) AddBlogPost(ctx context.Context, p *model.BlogPost) error {
	posts, err := loadCollection[model.BlogPost](ctx, r.store, KeyBlogPosts)
	if err != nil {
		return err
	}
	p.ID = uuid.NewString()
	if p.Date.IsZero() {
		p.Date = time.Now().UTC()
	}
	posts = append([]model.BlogPost{*p}, posts...)
	return saveCollection(ctx, r.store, KeyBlogPosts, posts)
}

func (r *repository) DeleteBlogPost(ctx context.Context, id string) error {
	posts, err := loadCollection[model.BlogPost](ctx, r.store, KeyBlogPosts)
	if err != nil {
		return err
	}
	kept := posts[:0:0]
	found := false
	for _, p := range posts {
		if p.ID == id {
			found = true
			continue
		}
		kept = append(kept, p)
	}
	if !found {
		return ErrBlogPostNotFound
	}
	return saveCollection(ctx, r.store, KeyBlogPosts, kept)
}

// SeedBlogPosts writes the initial posts once; an existing blog key, even
// an empty one, is left alone.
func (r *repository) SeedBlogPosts(ctx context.Context, posts []model.BlogPost) error {
	_, ok, err := r.store.Get(ctx, KeyBlogPosts)
	if err != nil {
		return err
	}
	if ok {
		return nil
	}
	return saveCollection(ctx, r.store, KeyBlogPosts, posts)
}

func (r *repository) AddContactMessage(ctx context.Context, m *model.ContactMessage) error {
	msgs, err := loadCollection[model.ContactMessage](ctx, r.store, KeyContactMessages)
	if err != nil {
		return err
	}
	m.ID = uuid.NewString()
	if m.ReceivedAt.IsZero() {
		m.ReceivedAt = time.Now().UTC()
	}
	msgs = append(msgs, *m)
	return saveCollection(ctx, r.store, KeyContactMessages, msgs)
}

func (r *repository) ListContactMessages(ctx context.Context) ([]model.ContactMessage, error) {
	return loadCollection[model.ContactMessage](ctx, r.store, KeyContactMessages)
}

func (r *repository) SetAdminSession(ctx context.Context, token string) error {
	return r.store.Set(ctx, KeyAdminSession, token)
}

func (r *repository) AdminSession(ctx context.Context) (string, bool, error) {
	return r.store.Get(ctx, KeyAdminSession)
}

func (r *repository) ClearAdminSession(ctx context.Context) error {
	return r.store.Delete(ctx, KeyAdminSession)
}
