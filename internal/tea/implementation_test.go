package tea

import (
	"context"
	"errors"
	"math"
	"slices"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"teahigh/pkg/eventstore"
)

// failingJournal rejects every append.
type failingJournal struct{}

func (failingJournal) AppendEvents(ctx context.Context, aggregateID uuid.UUID, aggregateType string, expectedVersion int, events []eventstore.Event) error {
	return errors.New("journal unavailable")
}

func (failingJournal) LoadEvents(ctx context.Context, aggregateID uuid.UUID, fromVersion, toVersion int) ([]eventstore.Event, error) {
	return nil, nil
}

func (failingJournal) StreamEvents(ctx context.Context, fromID int64, batchSize int) ([]eventstore.Event, error) {
	return nil, errors.New("journal unavailable")
}

type testClock struct{ t time.Time }

func (c *testClock) now() time.Time { return c.t }

func (c *testClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newSeededService(t *testing.T, opts ...Option) (Service, []Tea) {
	t.Helper()
	seed := SeedTeas()
	return NewService(nil, append([]Option{WithTeas(seed), WithClock(func() time.Time { return testNow })}, opts...)...), seed
}

func TestCreatePrependsWithDefaults(t *testing.T) {
	svc, seed := newSeededService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, FormData{Name: "Dragon Well", Type: Green, Supplier: "Rishi Tea", InStock: true})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, 0, created.Rating)
	assert.Equal(t, 1, created.Version)
	assert.Equal(t, testNow, created.CreatedAt)
	assert.Equal(t, testNow, created.UpdatedAt)

	teas := slices.Collect(svc.List(ctx, Query{}))
	require.Len(t, teas, len(seed)+1)
	assert.Equal(t, created.ID, teas[0].ID)
	assert.Equal(t, seed[0].ID, teas[1].ID)
}

func TestCreateRejectsInvalidForm(t *testing.T) {
	svc, seed := newSeededService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, FormData{Name: "", Supplier: "X"})
	require.ErrorIs(t, err, ErrValidation)

	fields, ok := IsValidation(err)
	require.True(t, ok)
	assert.Equal(t, map[string]string{"name": "Tea name is required"}, fields)
	assert.Equal(t, len(seed), svc.Aggregate(ctx).Total)
}

func TestCreateWithDuplicateGeneratedID(t *testing.T) {
	fixed := uuid.New()
	svc := NewService(nil, WithIDGenerator(func() uuid.UUID { return fixed }))
	ctx := context.Background()

	_, err := svc.Create(ctx, validForm())
	require.NoError(t, err)
	_, err = svc.Create(ctx, validForm())
	assert.Error(t, err)
	assert.Equal(t, 1, svc.Aggregate(ctx).Total)
}

func TestUpdateKeepsIdentity(t *testing.T) {
	clock := &testClock{t: testNow}
	svc := NewService(nil, WithClock(clock.now))
	ctx := context.Background()

	created, err := svc.Create(ctx, validForm())
	require.NoError(t, err)

	clock.advance(time.Hour)
	form := created.Form()
	form.Rating = 9
	form.TastingNotes.Taste = "Sweet chestnut"

	updated, err := svc.Update(ctx, created.ID, form)
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.Equal(t, testNow.Add(time.Hour), updated.UpdatedAt)
	assert.Equal(t, 9, updated.Rating)
	assert.Equal(t, "Sweet chestnut", updated.TastingNotes.Taste)
	assert.Equal(t, 2, updated.Version)
}

func TestUpdateTimestampNeverMovesBackwards(t *testing.T) {
	clock := &testClock{t: testNow}
	svc := NewService(nil, WithClock(clock.now))
	ctx := context.Background()

	created, err := svc.Create(ctx, validForm())
	require.NoError(t, err)

	clock.advance(-time.Hour)
	updated, err := svc.Update(ctx, created.ID, created.Form())
	require.NoError(t, err)
	assert.Equal(t, created.UpdatedAt, updated.UpdatedAt)
}

func TestUpdateUnknownIDReportsNotFoundFirst(t *testing.T) {
	svc, _ := newSeededService(t)
	id := uuid.New()

	_, err := svc.Update(context.Background(), id, FormData{})
	require.ErrorIs(t, err, ErrNotFound)
	assert.EqualError(t, err, "tea with ID "+id.String()+" not found")
}

func TestUpdateInvalidLeavesRecordUntouched(t *testing.T) {
	svc, seed := newSeededService(t)
	ctx := context.Background()

	form := seed[0].Form()
	form.Supplier = ""
	_, err := svc.Update(ctx, seed[0].ID, form)
	require.ErrorIs(t, err, ErrValidation)

	got, err := svc.Get(ctx, seed[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "Harney & Sons", got.Supplier)
}

func TestToggleStockIsAnInvolution(t *testing.T) {
	clock := &testClock{t: testNow}
	svc, seed := newSeededService(t, WithClock(clock.now))
	ctx := context.Background()
	original := seed[2]

	clock.advance(time.Minute)
	first, err := svc.ToggleStock(ctx, original.ID)
	require.NoError(t, err)
	assert.True(t, first.InStock)
	assert.Equal(t, testNow.Add(time.Minute), first.UpdatedAt)

	clock.advance(time.Minute)
	second, err := svc.ToggleStock(ctx, original.ID)
	require.NoError(t, err)
	assert.False(t, second.InStock)
	assert.Equal(t, testNow.Add(2*time.Minute), second.UpdatedAt)
	assert.Equal(t, 2, second.Version)

	assert.Equal(t, original.Form(), second.Form())
	assert.Equal(t, original.ID, second.ID)
	assert.Equal(t, original.CreatedAt, second.CreatedAt)

	_, err = svc.ToggleStock(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRemove(t *testing.T) {
	svc, seed := newSeededService(t)
	ctx := context.Background()

	require.NoError(t, svc.Remove(ctx, seed[4].ID))
	_, err := svc.Get(ctx, seed[4].ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, len(seed)-1, svc.Aggregate(ctx).Total)

	assert.ErrorIs(t, svc.Remove(ctx, seed[4].ID), ErrNotFound)
}

func TestGetReturnsCopy(t *testing.T) {
	svc, seed := newSeededService(t)
	ctx := context.Background()

	got, err := svc.Get(ctx, seed[0].ID)
	require.NoError(t, err)
	*got.HarvestYear = 1999
	got.Name = "changed"

	again, err := svc.Get(ctx, seed[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 2023, *again.HarvestYear)
	assert.Equal(t, "Earl Grey Supreme", again.Name)
}

func TestJournalFailureLeavesStoreUnchanged(t *testing.T) {
	seed := SeedTeas()
	svc := NewService(failingJournal{}, WithTeas(seed))
	ctx := context.Background()

	_, err := svc.Create(ctx, validForm())
	require.Error(t, err)

	_, err = svc.ToggleStock(ctx, seed[0].ID)
	require.Error(t, err)

	require.Error(t, svc.Remove(ctx, seed[1].ID))

	stats := svc.Aggregate(ctx)
	assert.Equal(t, len(seed), stats.Total)
	assert.Equal(t, 8, stats.InStock)
}

func TestHistory(t *testing.T) {
	journal := eventstore.NewMemoryStore()
	svc := NewService(journal, WithClock(func() time.Time { return testNow }))
	ctx := context.Background()

	created, err := svc.Create(ctx, validForm())
	require.NoError(t, err)
	_, err = svc.ToggleStock(ctx, created.ID)
	require.NoError(t, err)
	require.NoError(t, svc.Remove(ctx, created.ID))

	events, err := svc.History(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, EventTeaCreated, events[0].EventType)
	assert.Equal(t, EventTeaStockToggled, events[1].EventType)
	assert.Equal(t, EventTeaRemoved, events[2].EventType)
	assert.Equal(t, 3, events[2].Version)

	_, err = svc.History(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestHistoryOfPreloadedTeaIsEmpty(t *testing.T) {
	svc, seed := newSeededService(t)

	events, err := svc.History(context.Background(), seed[0].ID)
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestSupplierNames(t *testing.T) {
	svc, _ := newSeededService(t)

	names, err := svc.SupplierNames(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Celestial Seasonings", "David's Tea", "Harney & Sons", "Rishi Tea", "Tazo", "The Tea Spot", "Twinings",
	}, names)
}

func TestMutationsAreTraced(t *testing.T) {
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	svc := NewService(nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, validForm())
	require.NoError(t, err)
	_, err = svc.ToggleStock(ctx, created.ID)
	require.NoError(t, err)

	var names []string
	for _, s := range rec.Ended() {
		names = append(names, s.Name())
	}
	assert.Contains(t, names, "tea.create")
	assert.Contains(t, names, "tea.toggle_stock")
	assert.Contains(t, names, "eventstore.memory.append")
}

func TestDragonWellScenario(t *testing.T) {
	svc, _ := newSeededService(t)
	ctx := context.Background()
	form := FormData{
		Name: "Dragon Well", Type: Green, Supplier: "Rishi Tea",
		BrewingParams: brew(175, 3, 180, 3),
	}

	created, err := svc.Create(ctx, form)
	require.NoError(t, err)
	assert.Equal(t, 0, created.Rating)
	assert.Equal(t, form.BrewingParams, created.BrewingParams)

	first := slices.Collect(svc.List(ctx, Query{}))[0]
	assert.Equal(t, created.ID, first.ID)

	form.BrewingParams = BrewingParams{Temperature: ptr(300)}
	_, err = svc.Create(ctx, form)
	fields, ok := IsValidation(err)
	require.True(t, ok)
	assert.Equal(t, map[string]string{"temperature": "Temperature must be between 32-212°F"}, fields)
}

func TestCreateRejectsNonNumericGrams(t *testing.T) {
	svc := NewService(nil)
	form := validForm()
	form.BrewingParams.Grams = ptr(math.NaN())

	_, err := svc.Create(context.Background(), form)
	fields, ok := IsValidation(err)
	require.True(t, ok)
	assert.Contains(t, fields, "grams")
	assert.Zero(t, svc.Aggregate(context.Background()).Total)
}

func TestTypesAreDistinctAndSorted(t *testing.T) {
	svc, seed := newSeededService(t)
	ctx := context.Background()

	assert.Equal(t, []Type{Black, Green, Herbal, Oolong, PuErh, Rooibos, White}, svc.Types(ctx))

	for _, tea := range seed {
		if tea.Type == Green {
			require.NoError(t, svc.Remove(ctx, tea.ID))
		}
	}
	assert.Equal(t, []Type{Black, Herbal, Oolong, PuErh, Rooibos, White}, svc.Types(ctx))

	assert.Empty(t, NewService(nil).Types(ctx))
}

func TestEventsPagesThroughJournal(t *testing.T) {
	svc := NewService(nil, WithClock(func() time.Time { return testNow }))
	ctx := context.Background()

	created, err := svc.Create(ctx, validForm())
	require.NoError(t, err)
	_, err = svc.ToggleStock(ctx, created.ID)
	require.NoError(t, err)
	require.NoError(t, svc.Remove(ctx, created.ID))

	page, err := svc.Events(ctx, 0, 2)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, EventTeaCreated, page[0].EventType)
	assert.Equal(t, EventTeaStockToggled, page[1].EventType)

	page, err = svc.Events(ctx, page[1].ID, 2)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, EventTeaRemoved, page[0].EventType)

	page, err = svc.Events(ctx, page[0].ID, 2)
	require.NoError(t, err)
	assert.NotNil(t, page)
	assert.Empty(t, page)
}

func TestEventsReportsJournalFailure(t *testing.T) {
	svc := NewService(failingJournal{})

	_, err := svc.Events(context.Background(), 0, 10)
	assert.EqualError(t, err, "failed to stream events: journal unavailable")
}
