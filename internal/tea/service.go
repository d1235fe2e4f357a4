// internal/tea/service.go
package tea

import (
	"context"
	"iter"

	"github.com/google/uuid"

	"teahigh/pkg/eventstore"
)

// Service defines the tea record store.
type Service interface {
	Create(ctx context.Context, form FormData) (*Tea, error)
	Get(ctx context.Context, id uuid.UUID) (*Tea, error)
	Update(ctx context.Context, id uuid.UUID, form FormData) (*Tea, error)
	Remove(ctx context.Context, id uuid.UUID) error
	ToggleStock(ctx context.Context, id uuid.UUID) (*Tea, error)
	List(ctx context.Context, q Query) iter.Seq[Tea]
	Aggregate(ctx context.Context) Stats
	History(ctx context.Context, id uuid.UUID) ([]eventstore.Event, error)
	SupplierNames(ctx context.Context) ([]string, error)
	Types(ctx context.Context) []Type
	Events(ctx context.Context, afterID int64, limit int) ([]eventstore.Event, error)
}

// Journal records every mutation before it is applied.
type Journal interface {
	AppendEvents(ctx context.Context, aggregateID uuid.UUID, aggregateType string, expectedVersion int, events []eventstore.Event) error
	LoadEvents(ctx context.Context, aggregateID uuid.UUID, fromVersion, toVersion int) ([]eventstore.Event, error)
	StreamEvents(ctx context.Context, fromID int64, batchSize int) ([]eventstore.Event, error)
}
