package eventstore

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// MemoryStore keeps the journal for the lifetime of the process.
type MemoryStore struct {
	mu     sync.RWMutex
	events []Event
	byAgg  map[uuid.UUID][]int
	now    func() time.Time
	tracer trace.Tracer
}

// NewMemoryStore returns an empty in-process journal.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byAgg:  make(map[uuid.UUID][]int),
		now:    time.Now,
		tracer: otel.Tracer(tracerName),
	}
}

// AppendEvents has the same contract as EventStore.AppendEvents.
func (m *MemoryStore) AppendEvents(ctx context.Context, aggregateID uuid.UUID, aggregateType string, expectedVersion int, events []Event) error {
	_, span := m.tracer.Start(ctx, "eventstore.memory.append",
		trace.WithAttributes(
			attribute.String("aggregate.id", aggregateID.String()),
			attribute.String("aggregate.type", aggregateType),
			attribute.Int("expected.version", expectedVersion),
			attribute.Int("event.count", len(events)),
		),
	)
	defer span.End()

	if expectedVersion < 0 {
		return ErrInvalidVersion
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	current := len(m.byAgg[aggregateID])
	if current != expectedVersion {
		span.SetAttributes(
			attribute.Int("actual.version", current),
			attribute.Bool("conflict.detected", true),
		)
		return ErrConcurrencyConflict
	}

	for i, event := range events {
		event.ID = int64(len(m.events) + 1)
		event.AggregateID = aggregateID
		event.AggregateType = aggregateType
		event.Version = expectedVersion + i + 1
		event.CreatedAt = m.now().UTC()
		event.EventData = slices.Clone(event.EventData)
		m.byAgg[aggregateID] = append(m.byAgg[aggregateID], len(m.events))
		m.events = append(m.events, event)
	}
	return nil
}

// LoadEvents returns the events of one aggregate in version order. A
// toVersion of zero means no upper bound.
func (m *MemoryStore) LoadEvents(ctx context.Context, aggregateID uuid.UUID, fromVersion, toVersion int) ([]Event, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []Event
	for _, idx := range m.byAgg[aggregateID] {
		e := m.events[idx]
		if e.Version < fromVersion {
			continue
		}
		if toVersion > 0 && e.Version > toVersion {
			break
		}
		out = append(out, e)
	}
	return out, nil
}

// GetCurrentVersion returns the latest version recorded for an aggregate.
func (m *MemoryStore) GetCurrentVersion(ctx context.Context, aggregateID uuid.UUID) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.byAgg[aggregateID]), nil
}

// StreamEvents pages through the whole log by event id.
func (m *MemoryStore) StreamEvents(ctx context.Context, fromID int64, batchSize int) ([]Event, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if fromID < 0 {
		fromID = 0
	}
	if fromID >= int64(len(m.events)) || batchSize <= 0 {
		return nil, nil
	}
	end := min(int(fromID)+batchSize, len(m.events))
	return slices.Clone(m.events[fromID:end]), nil
}
