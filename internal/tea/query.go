// internal/tea/query.go
package tea

import (
	"cmp"
	"fmt"
	"iter"
	"slices"
	"strings"
	"time"
)

// Query selects and orders teas for List.
type Query struct {
	Filters Filters
	Sort    *Sort
}

// Filters narrows a listing. Zero-valued fields impose no constraint.
type Filters struct {
	Search      string
	Types       []Type
	Suppliers   []string
	InStock     *bool
	Rating      *IntRange
	HarvestYear *IntRange
}

// IntRange is an inclusive range.
type IntRange struct {
	Min int
	Max int
}

func (r IntRange) contains(v int) bool { return v >= r.Min && v <= r.Max }

// SortField names a sortable column.
type SortField string

const (
	SortByName         SortField = "name"
	SortByType         SortField = "type"
	SortBySupplier     SortField = "supplier"
	SortByRating       SortField = "rating"
	SortByPurchaseDate SortField = "purchaseDate"
	SortByHarvestYear  SortField = "harvestYear"
	SortByCreatedAt    SortField = "createdAt"
)

var sortFields = []SortField{SortByName, SortByType, SortBySupplier, SortByRating, SortByPurchaseDate, SortByHarvestYear, SortByCreatedAt}

// Direction is the sort order.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Sort orders a listing by one field. Ties are always broken by id ascending.
type Sort struct {
	Field     SortField
	Direction Direction
}

// ParseSort builds a Sort from its textual form. An empty direction means ascending.
func ParseSort(field, direction string) (*Sort, error) {
	f := SortField(field)
	if !slices.Contains(sortFields, f) {
		return nil, fmt.Errorf("unknown sort field %q", field)
	}
	d := Direction(strings.ToLower(direction))
	switch d {
	case "":
		d = Asc
	case Asc, Desc:
	default:
		return nil, fmt.Errorf("unknown sort direction %q", direction)
	}
	return &Sort{Field: f, Direction: d}, nil
}

// Match reports whether t passes every filter.
func (f Filters) Match(t Tea) bool {
	if q := strings.ToLower(strings.TrimSpace(f.Search)); q != "" {
		if !strings.Contains(strings.ToLower(t.Name), q) && !strings.Contains(strings.ToLower(t.Supplier), q) {
			return false
		}
	}
	if len(f.Types) > 0 && !slices.Contains(f.Types, t.Type) {
		return false
	}
	if len(f.Suppliers) > 0 && !slices.Contains(f.Suppliers, t.Supplier) {
		return false
	}
	if f.InStock != nil && t.InStock != *f.InStock {
		return false
	}
	if f.Rating != nil && !f.Rating.contains(t.Rating) {
		return false
	}
	if f.HarvestYear != nil && (t.HarvestYear == nil || !f.HarvestYear.contains(*t.HarvestYear)) {
		return false
	}
	return true
}

// filter lazily yields the teas of snapshot that match f. The sequence can
// be ranged over any number of times.
func filter(snapshot []Tea, f Filters) iter.Seq[Tea] {
	return func(yield func(Tea) bool) {
		for _, t := range snapshot {
			if !f.Match(t) {
				continue
			}
			if !yield(t.clone()) {
				return
			}
		}
	}
}

// sortTeas orders teas in place.
func sortTeas(teas []Tea, s Sort) {
	slices.SortStableFunc(teas, func(a, b Tea) int {
		c := compareField(a, b, s.Field)
		if s.Direction == Desc {
			c = -c
		}
		if c != 0 {
			return c
		}
		return strings.Compare(a.ID.String(), b.ID.String())
	})
}

func compareField(a, b Tea, field SortField) int {
	switch field {
	case SortByName:
		return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	case SortByType:
		return strings.Compare(string(a.Type), string(b.Type))
	case SortBySupplier:
		return strings.Compare(strings.ToLower(a.Supplier), strings.ToLower(b.Supplier))
	case SortByRating:
		return cmp.Compare(a.Rating, b.Rating)
	case SortByPurchaseDate:
		return compareOptional(a.PurchaseDate, b.PurchaseDate, func(x, y Date) int { return x.Compare(y.Time) })
	case SortByHarvestYear:
		return compareOptional(a.HarvestYear, b.HarvestYear, cmp.Compare[int])
	case SortByCreatedAt:
		return a.CreatedAt.Compare(b.CreatedAt)
	}
	return 0
}

// compareOptional orders nil before any present value.
func compareOptional[T any](a, b *T, compare func(T, T) int) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	return compare(*a, *b)
}

// aggregate computes Stats over teas.
func aggregate(teas []Tea) Stats {
	var (
		s   Stats
		sum int
	)
	for _, t := range teas {
		s.Total++
		if t.InStock {
			s.InStock++
		} else {
			s.OutOfStock++
		}
		if t.Rated() {
			s.Rated++
			sum += t.Rating
		}
	}
	if s.Rated > 0 {
		s.AverageRating = float64(sum) / float64(s.Rated)
	}
	return s
}

// latest returns the later of now and floor so timestamps never move backwards.
func latest(now, floor time.Time) time.Time {
	if now.Before(floor) {
		return floor
	}
	return now
}
