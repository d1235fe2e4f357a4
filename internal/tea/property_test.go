package tea

import (
	"context"
	"reflect"
	"slices"
	"testing"
	"time"

	"pgregory.net/rapid"
)

func genForm() *rapid.Generator[FormData] {
	return rapid.Custom(func(t *rapid.T) FormData {
		f := FormData{
			Name:     rapid.StringMatching(`[A-Za-z][A-Za-z ]{0,39}`).Draw(t, "name"),
			Type:     rapid.SampledFrom(Types).Draw(t, "type"),
			Supplier: rapid.SampledFrom([]string{"Rishi Tea", "Tazo", "Twinings", "Mei Leaf"}).Draw(t, "supplier"),
			InStock:  rapid.Bool().Draw(t, "inStock"),
			Rating:   rapid.IntRange(MinRating-5, MaxRating+5).Draw(t, "rating"),
			TastingNotes: TastingNotes{
				Taste: rapid.StringMatching(`[a-z ]{0,30}`).Draw(t, "taste"),
			},
		}
		if rapid.Bool().Draw(t, "hasPurchaseDate") {
			f.PurchaseDate = ptr(NewDate(rapid.IntRange(2000, 2025).Draw(t, "purchaseYear"), time.Month(rapid.IntRange(1, 12).Draw(t, "purchaseMonth")), rapid.IntRange(1, 28).Draw(t, "purchaseDay")))
		}
		if rapid.Bool().Draw(t, "hasBrewing") {
			f.BrewingParams = BrewingParams{
				Temperature: ptr(rapid.IntRange(MinTemperature, MaxTemperature).Draw(t, "temperature")),
				Grams:       ptr(rapid.Float64Range(MinGrams, MaxGrams).Draw(t, "grams")),
				Time:        ptr(rapid.IntRange(MinSteepSeconds, MaxSteepSeconds).Draw(t, "time")),
				Steeps:      ptr(rapid.IntRange(MinSteeps, MaxSteeps).Draw(t, "steeps")),
			}
		}
		if rapid.Bool().Draw(t, "hasHarvest") {
			f.HarvestSeason = rapid.SampledFrom(Seasons).Draw(t, "season")
			f.HarvestYear = ptr(rapid.IntRange(MinHarvestYear, MaxHarvestYear(testNow)).Draw(t, "year"))
		}
		return f
	})
}

func TestPropertyCreatedTeaRoundTripsItsForm(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		form := genForm().Draw(t, "form")
		svc := NewService(nil, WithClock(func() time.Time { return testNow }))
		ctx := context.Background()

		created, err := svc.Create(ctx, form)
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		got, err := svc.Get(ctx, created.ID)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if want := Normalize(form); !reflect.DeepEqual(got.Form(), want) {
			t.Fatalf("stored form %+v, want %+v", got.Form(), want)
		}
		if !got.CreatedAt.Equal(got.UpdatedAt) {
			t.Fatalf("createdAt %v differs from updatedAt %v", got.CreatedAt, got.UpdatedAt)
		}
	})
}

func TestPropertyToggleTwiceRestoresStock(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		seed := SeedTeas()
		svc := NewService(nil, WithTeas(seed))
		idx := rapid.IntRange(0, len(seed)-1).Draw(t, "index")
		ctx := context.Background()

		if _, err := svc.ToggleStock(ctx, seed[idx].ID); err != nil {
			t.Fatal(err)
		}
		got, err := svc.ToggleStock(ctx, seed[idx].ID)
		if err != nil {
			t.Fatal(err)
		}
		if got.InStock != seed[idx].InStock {
			t.Fatalf("stock flag %v after two toggles, want %v", got.InStock, seed[idx].InStock)
		}
	})
}

func TestPropertyListIsOrderedSubset(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		forms := rapid.SliceOfN(genForm(), 0, 25).Draw(t, "forms")
		svc := NewService(nil, WithClock(func() time.Time { return testNow }))
		ctx := context.Background()
		for _, f := range forms {
			if _, err := svc.Create(ctx, f); err != nil {
				t.Fatal(err)
			}
		}

		filters := Filters{
			Types: rapid.SliceOfNDistinct(rapid.SampledFrom(Types), 0, 3, func(t Type) Type { return t }).Draw(t, "types"),
		}
		if rapid.Bool().Draw(t, "minRating") {
			filters.Rating = &IntRange{Min: rapid.IntRange(0, 10).Draw(t, "min"), Max: MaxRating}
		}
		sort := Sort{
			Field:     rapid.SampledFrom(sortFields).Draw(t, "field"),
			Direction: rapid.SampledFrom([]Direction{Asc, Desc}).Draw(t, "direction"),
		}

		got := slices.Collect(svc.List(ctx, Query{Filters: filters, Sort: &sort}))

		var want int
		for tea := range svc.List(ctx, Query{}) {
			if filters.Match(tea) {
				want++
			}
		}
		if len(got) != want {
			t.Fatalf("listed %d teas, %d match", len(got), want)
		}
		for i, tea := range got {
			if !filters.Match(tea) {
				t.Fatalf("tea %q does not match filters", tea.Name)
			}
			if i == 0 {
				continue
			}
			c := compareField(got[i-1], tea, sort.Field)
			if sort.Direction == Desc {
				c = -c
			}
			if c > 0 {
				t.Fatalf("teas %q and %q out of order by %s %s", got[i-1].Name, tea.Name, sort.Field, sort.Direction)
			}
		}
	})
}
