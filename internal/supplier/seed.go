// internal/supplier/seed.go
package supplier

import (
	"time"

	"github.com/google/uuid"
)

// SeedSuppliers returns the demo supplier list.
func SeedSuppliers() []Supplier {
	seed := []struct {
		name  string
		added time.Time
	}{
		{"Harney & Sons", time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)},
		{"Twinings", time.Date(2024, time.January, 20, 0, 0, 0, 0, time.UTC)},
		{"Rishi Tea", time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)},
		{"David's Tea", time.Date(2024, time.February, 10, 0, 0, 0, 0, time.UTC)},
		{"Celestial Seasonings", time.Date(2024, time.February, 15, 0, 0, 0, 0, time.UTC)},
		{"Tazo", time.Date(2024, time.February, 20, 0, 0, 0, 0, time.UTC)},
		{"The Tea Spot", time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)},
	}
	out := make([]Supplier, len(seed))
	for i, s := range seed {
		out[i] = Supplier{ID: uuid.New(), Name: s.name, CreatedAt: s.added}
	}
	return out
}
