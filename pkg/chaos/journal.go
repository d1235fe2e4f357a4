// pkg/chaos/journal.go

// Package chaos injects faults into the mutation journal so callers can
// check that the store degrades without corrupting itself.
package chaos

import (
	"context"
	"errors"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"teahigh/pkg/eventstore"
)

// ErrInjected is returned for every failure the FaultyJournal makes up.
var ErrInjected = errors.New("chaos: injected journal failure")

// Journal is the part of an event store the tea service writes through.
type Journal interface {
	AppendEvents(ctx context.Context, aggregateID uuid.UUID, aggregateType string, expectedVersion int, events []eventstore.Event) error
	LoadEvents(ctx context.Context, aggregateID uuid.UUID, fromVersion, toVersion int) ([]eventstore.Event, error)
	StreamEvents(ctx context.Context, fromID int64, batchSize int) ([]eventstore.Event, error)
}

// Fault describes what to inject into appends.
type Fault struct {
	FailureRate float64 // 0.0 to 1.0
	Latency     time.Duration
}

// FaultyJournal wraps a Journal and, while a fault is active, delays or
// fails appends. Reads and streams always pass through.
type FaultyJournal struct {
	next   Journal
	tracer trace.Tracer

	mu       sync.Mutex
	fault    Fault
	rnd      *rand.Rand
	injected int
	passed   int
}

func Wrap(next Journal, seed uint64) *FaultyJournal {
	return &FaultyJournal{
		next:   next,
		tracer: otel.Tracer("teahigh/chaos"),
		rnd:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// Inject activates f until Rollback is called.
func (j *FaultyJournal) Inject(f Fault) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.fault = f
}

// Rollback clears the active fault.
func (j *FaultyJournal) Rollback() { j.Inject(Fault{}) }

// Counts reports how many appends were failed on purpose and how many
// reached the wrapped journal.
func (j *FaultyJournal) Counts() (injected, passed int) {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.injected, j.passed
}

func (j *FaultyJournal) AppendEvents(ctx context.Context, aggregateID uuid.UUID, aggregateType string, expectedVersion int, events []eventstore.Event) error {
	ctx, span := j.tracer.Start(ctx, "chaos.append",
		trace.WithAttributes(attribute.String("aggregate.id", aggregateID.String())))
	defer span.End()

	j.mu.Lock()
	fault := j.fault
	fail := fault.FailureRate > 0 && j.rnd.Float64() < fault.FailureRate
	if fail {
		j.injected++
	} else {
		j.passed++
	}
	j.mu.Unlock()

	if fault.Latency > 0 {
		span.AddEvent("injecting_latency")
		select {
		case <-time.After(fault.Latency):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if fail {
		span.SetAttributes(attribute.Bool("chaos.injected", true))
		span.RecordError(ErrInjected)
		return ErrInjected
	}
	return j.next.AppendEvents(ctx, aggregateID, aggregateType, expectedVersion, events)
}

func (j *FaultyJournal) LoadEvents(ctx context.Context, aggregateID uuid.UUID, fromVersion, toVersion int) ([]eventstore.Event, error) {
	return j.next.LoadEvents(ctx, aggregateID, fromVersion, toVersion)
}

func (j *FaultyJournal) StreamEvents(ctx context.Context, fromID int64, batchSize int) ([]eventstore.Event, error) {
	return j.next.StreamEvents(ctx, fromID, batchSize)
}
