// internal/tea/implementation.go
package tea

import (
	"context"
	"encoding/json"
	"fmt"
	"iter"
	"slices"
	"sync"
	"time"

	"github.com/go-logr/logr"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"

	"teahigh/pkg/eventstore"
)

const instrumentationName = "teahigh/tea"

// service implements the Service interface over an in-memory slice.
type service struct {
	mu   sync.RWMutex
	teas []Tea // newest first

	journal     Journal
	ownsJournal bool

	now    func() time.Time
	newID  func() uuid.UUID
	logger logr.Logger

	tracer    trace.Tracer
	mutations metric.Int64Counter
}

// Option configures NewService.
type Option func(*service)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *service) { s.now = now }
}

// WithIDGenerator replaces uuid.New.
func WithIDGenerator(newID func() uuid.UUID) Option {
	return func(s *service) { s.newID = newID }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger logr.Logger) Option {
	return func(s *service) { s.logger = logger }
}

// WithTeas preloads the collection, in display order. The records are not journaled.
func WithTeas(teas []Tea) Option {
	return func(s *service) {
		s.teas = make([]Tea, 0, len(teas))
		for _, t := range teas {
			s.teas = append(s.teas, t.clone())
		}
	}
}

// NewService creates the tea store. When journal is nil the store keeps
// its own in-memory journal.
func NewService(journal Journal, opts ...Option) Service {
	s := &service{
		journal: journal,
		now:     time.Now,
		newID:   uuid.New,
		logger:  logr.Discard(),
		tracer:  otel.Tracer(instrumentationName),
	}
	if s.journal == nil {
		s.journal = eventstore.NewMemoryStore()
		s.ownsJournal = true
	}
	for _, opt := range opts {
		opt(s)
	}

	counter, err := otel.Meter(instrumentationName).Int64Counter("teahigh.tea.mutations",
		metric.WithDescription("Tea store mutations by operation"))
	if err != nil {
		s.logger.Error(err, "mutation counter unavailable")
		counter = noop.Int64Counter{}
	}
	s.mutations = counter

	s.logger.V(1).Info("tea store ready", "teas", len(s.teas), "ownsJournal", s.ownsJournal)
	return s
}

// Create validates form and prepends a new tea.
func (s *service) Create(ctx context.Context, form FormData) (*Tea, error) {
	ctx, span := s.tracer.Start(ctx, "tea.create")
	defer span.End()

	form = Normalize(form)
	now := s.now()
	if v := Validate(form, now); v != nil {
		span.SetAttributes(attribute.Int("validation.violations", len(v.Fields)))
		return nil, v
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.newID()
	if s.indexOf(id) >= 0 {
		return nil, fmt.Errorf("generated duplicate tea ID %s", id)
	}
	span.SetAttributes(attribute.String("tea.id", id.String()))

	t := fromForm(form)
	t.ID = id
	t.Version = 1
	t.CreatedAt = now
	t.UpdatedAt = now

	if err := s.record(ctx, id, 0, EventTeaCreated, TeaCreatedEvent{ID: id, Form: t.Form()}); err != nil {
		span.RecordError(err)
		return nil, err
	}
	s.teas = slices.Insert(s.teas, 0, t)
	s.count(ctx, "create")

	s.logger.V(1).Info("tea created", "id", id, "name", t.Name)
	out := t.clone()
	return &out, nil
}

// Get returns a copy of the tea with the given id.
func (s *service) Get(ctx context.Context, id uuid.UUID) (*Tea, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return nil, &NotFoundError{ID: id}
	}
	out := s.teas[idx].clone()
	return &out, nil
}

// Update replaces the mutable fields of a tea, keeping its id and creation time.
func (s *service) Update(ctx context.Context, id uuid.UUID, form FormData) (*Tea, error) {
	ctx, span := s.tracer.Start(ctx, "tea.update",
		trace.WithAttributes(attribute.String("tea.id", id.String())))
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return nil, &NotFoundError{ID: id}
	}

	form = Normalize(form)
	now := s.now()
	if v := Validate(form, now); v != nil {
		span.SetAttributes(attribute.Int("validation.violations", len(v.Fields)))
		return nil, v
	}

	cur := s.teas[idx]
	next := fromForm(form)
	next.ID = cur.ID
	next.CreatedAt = cur.CreatedAt
	next.UpdatedAt = latest(now, cur.UpdatedAt)
	next.Version = cur.Version + 1

	if err := s.record(ctx, id, cur.Version, EventTeaUpdated, TeaUpdatedEvent{ID: id, Form: next.Form()}); err != nil {
		span.RecordError(err)
		return nil, err
	}
	s.teas[idx] = next
	s.count(ctx, "update")

	s.logger.V(1).Info("tea updated", "id", id, "version", next.Version)
	out := next.clone()
	return &out, nil
}

// Remove deletes a tea. Removing an unknown id is an error.
func (s *service) Remove(ctx context.Context, id uuid.UUID) error {
	ctx, span := s.tracer.Start(ctx, "tea.remove",
		trace.WithAttributes(attribute.String("tea.id", id.String())))
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return &NotFoundError{ID: id}
	}
	cur := s.teas[idx]

	if err := s.record(ctx, id, cur.Version, EventTeaRemoved, TeaRemovedEvent{ID: id, Name: cur.Name}); err != nil {
		span.RecordError(err)
		return err
	}
	s.teas = slices.Delete(s.teas, idx, idx+1)
	s.count(ctx, "remove")

	s.logger.V(1).Info("tea removed", "id", id, "name", cur.Name)
	return nil
}

// ToggleStock flips the in-stock flag.
func (s *service) ToggleStock(ctx context.Context, id uuid.UUID) (*Tea, error) {
	ctx, span := s.tracer.Start(ctx, "tea.toggle_stock",
		trace.WithAttributes(attribute.String("tea.id", id.String())))
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return nil, &NotFoundError{ID: id}
	}

	next := s.teas[idx].clone()
	next.InStock = !next.InStock
	next.UpdatedAt = latest(s.now(), next.UpdatedAt)
	next.Version++

	event := TeaStockToggledEvent{ID: id, InStock: next.InStock}
	if err := s.record(ctx, id, next.Version-1, EventTeaStockToggled, event); err != nil {
		span.RecordError(err)
		return nil, err
	}
	s.teas[idx] = next
	s.count(ctx, "toggle_stock")

	out := next.clone()
	return &out, nil
}

// List snapshots the collection and yields the matching teas in the
// requested order. Later mutations do not affect the returned sequence.
func (s *service) List(ctx context.Context, q Query) iter.Seq[Tea] {
	s.mu.RLock()
	snapshot := slices.Clone(s.teas)
	s.mu.RUnlock()

	if q.Sort != nil {
		sortTeas(snapshot, *q.Sort)
	}
	return filter(snapshot, q.Filters)
}

// Aggregate computes collection statistics.
func (s *service) Aggregate(ctx context.Context) Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return aggregate(s.teas)
}

// History returns the journaled mutations of a tea, oldest first. Removed
// teas keep their history.
func (s *service) History(ctx context.Context, id uuid.UUID) ([]eventstore.Event, error) {
	events, err := s.journal.LoadEvents(ctx, id, 0, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}
	if len(events) > 0 {
		return events, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.indexOf(id) < 0 {
		return nil, &NotFoundError{ID: id}
	}
	return []eventstore.Event{}, nil
}

// SupplierNames returns the distinct supplier names in use, sorted.
func (s *service) SupplierNames(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	names := make([]string, 0, len(s.teas))
	for _, t := range s.teas {
		names = append(names, t.Supplier)
	}
	s.mu.RUnlock()

	slices.Sort(names)
	return slices.Compact(names), nil
}

// Types returns the distinct tea types in use, sorted.
func (s *service) Types(ctx context.Context) []Type {
	s.mu.RLock()
	types := make([]Type, 0, len(s.teas))
	for _, t := range s.teas {
		types = append(types, t.Type)
	}
	s.mu.RUnlock()

	slices.Sort(types)
	return slices.Compact(types)
}

// Events pages through the whole journal, oldest first, returning at most
// limit events with an id greater than afterID.
func (s *service) Events(ctx context.Context, afterID int64, limit int) ([]eventstore.Event, error) {
	events, err := s.journal.StreamEvents(ctx, afterID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to stream events: %w", err)
	}
	if events == nil {
		events = []eventstore.Event{}
	}
	return events, nil
}

func (s *service) indexOf(id uuid.UUID) int {
	return slices.IndexFunc(s.teas, func(t Tea) bool { return t.ID == id })
}

func (s *service) record(ctx context.Context, id uuid.UUID, expectedVersion int, eventType string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal event data: %w", err)
	}

	event := eventstore.Event{
		AggregateID:   id,
		AggregateType: aggregateType,
		EventType:     eventType,
		EventData:     data,
		Version:       expectedVersion + 1,
	}
	if err := s.journal.AppendEvents(ctx, id, aggregateType, expectedVersion, []eventstore.Event{event}); err != nil {
		return fmt.Errorf("failed to append event: %w", err)
	}
	return nil
}

func (s *service) count(ctx context.Context, op string) {
	s.mutations.Add(ctx, 1, metric.WithAttributes(attribute.String("operation", op)))
}

func fromForm(f FormData) Tea {
	t := Tea{
		Name:                f.Name,
		Type:                f.Type,
		Supplier:            f.Supplier,
		InStock:             f.InStock,
		PurchaseDate:        f.PurchaseDate,
		Rating:              f.Rating,
		TastingNotes:        f.TastingNotes,
		SupplierDescription: f.SupplierDescription,
		BrewingParams:       f.BrewingParams,
		HarvestSeason:       f.HarvestSeason,
		HarvestYear:         f.HarvestYear,
	}
	return t.clone()
}
