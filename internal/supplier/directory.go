// internal/supplier/directory.go

// Package supplier keeps the list of supplier names offered when a tea is
// created or edited. Teas reference suppliers by name only.
package supplier

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrNameRequired is returned by Add for a blank name.
var ErrNameRequired = errors.New("supplier name is required")

// Supplier is an explicitly registered supplier.
type Supplier struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// NameSource yields supplier names already in use elsewhere, typically by
// the tea collection.
type NameSource interface {
	SupplierNames(ctx context.Context) ([]string, error)
}

// Directory merges names from a NameSource with explicitly added ones.
type Directory struct {
	source NameSource

	mu     sync.RWMutex
	custom []Supplier
	now    func() time.Time
}

// NewDirectory returns a directory over source. A nil source means the
// directory only knows the suppliers added to it.
func NewDirectory(source NameSource, initial ...Supplier) *Directory {
	d := &Directory{source: source, now: time.Now}
	for _, s := range initial {
		if d.find(s.Name) < 0 {
			d.custom = append(d.custom, s)
		}
	}
	return d
}

// Add registers a custom supplier. Adding a known name returns the
// existing record.
func (d *Directory) Add(ctx context.Context, name string) (*Supplier, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if idx := d.find(name); idx >= 0 {
		existing := d.custom[idx]
		return &existing, nil
	}
	s := Supplier{ID: uuid.New(), Name: name, CreatedAt: d.now()}
	d.custom = append(d.custom, s)
	return &s, nil
}

// List returns the explicitly registered suppliers in registration order.
func (d *Directory) List(ctx context.Context) []Supplier {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return slices.Clone(d.custom)
}

// Names returns every known supplier name, deduplicated and sorted.
func (d *Directory) Names(ctx context.Context) ([]string, error) {
	var names []string
	if d.source != nil {
		fromSource, err := d.source.SupplierNames(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to read supplier names: %w", err)
		}
		names = append(names, fromSource...)
	}

	d.mu.RLock()
	for _, s := range d.custom {
		names = append(names, s.Name)
	}
	d.mu.RUnlock()

	out := names[:0]
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			out = append(out, n)
		}
	}
	slices.Sort(out)
	return slices.Compact(out), nil
}

func (d *Directory) find(name string) int {
	return slices.IndexFunc(d.custom, func(s Supplier) bool { return s.Name == name })
}
