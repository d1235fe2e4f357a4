package tea

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"teahigh/pkg/chaos"
	"teahigh/pkg/eventstore"
)

// Hypothesis: with a flaky journal every mutation either lands in both the
// journal and the store or in neither.
func TestStoreStaysConsistentUnderJournalFailures(t *testing.T) {
	store := eventstore.NewMemoryStore()
	journal := chaos.Wrap(store, 42)
	svc := NewService(journal)
	ctx := context.Background()

	var created []*Tea
	for _, seed := range SeedTeas()[:5] {
		c, err := svc.Create(ctx, seed.Form())
		require.NoError(t, err)
		created = append(created, c)
	}

	journal.Inject(chaos.Fault{FailureRate: 0.4})
	for i := range 200 {
		target := created[i%len(created)]
		var err error
		if i%7 == 0 {
			current, getErr := svc.Get(ctx, target.ID)
			require.NoError(t, getErr)
			form := current.Form()
			form.Rating = i % 11
			_, err = svc.Update(ctx, target.ID, form)
		} else {
			_, err = svc.ToggleStock(ctx, target.ID)
		}
		if err != nil {
			require.True(t, errors.Is(err, chaos.ErrInjected), "unexpected error: %v", err)
		}
	}
	journal.Rollback()

	injected, passed := journal.Counts()
	assert.Positive(t, injected)
	assert.Positive(t, passed)

	for _, c := range created {
		got, err := svc.Get(ctx, c.ID)
		require.NoError(t, err)
		version, err := store.GetCurrentVersion(ctx, c.ID)
		require.NoError(t, err)
		assert.Equal(t, version, got.Version, got.Name)

		history, err := svc.History(ctx, c.ID)
		require.NoError(t, err)
		inStock, rating := replay(t, history)
		assert.Equal(t, inStock, got.InStock, got.Name)
		assert.Equal(t, rating, got.Rating, got.Name)
	}
}

// replay folds a tea's journal into the stock flag and rating it implies.
func replay(t *testing.T, history []eventstore.Event) (inStock bool, rating int) {
	t.Helper()
	for _, e := range history {
		switch e.EventType {
		case EventTeaCreated, EventTeaUpdated:
			var payload TeaUpdatedEvent
			require.NoError(t, json.Unmarshal(e.EventData, &payload))
			inStock, rating = payload.Form.InStock, payload.Form.Rating
		case EventTeaStockToggled:
			var payload TeaStockToggledEvent
			require.NoError(t, json.Unmarshal(e.EventData, &payload))
			inStock = payload.InStock
		}
	}
	return inStock, rating
}
