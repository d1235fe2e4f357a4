// internal/tea/domain.go
package tea

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Tea is one entry in the collection.
type Tea struct {
	ID                  uuid.UUID     `json:"id"`
	Name                string        `json:"name"`
	Type                Type          `json:"type"`
	Supplier            string        `json:"supplier"`
	InStock             bool          `json:"inStock"`
	PurchaseDate        *Date         `json:"purchaseDate,omitempty"`
	Rating              int           `json:"rating"`
	TastingNotes        TastingNotes  `json:"tastingNotes"`
	SupplierDescription string        `json:"supplierDescription,omitempty"`
	BrewingParams       BrewingParams `json:"brewingParams"`
	HarvestSeason       Season        `json:"harvestSeason,omitempty"`
	HarvestYear         *int          `json:"harvestYear,omitempty"`
	Version             int           `json:"version"`
	CreatedAt           time.Time     `json:"createdAt"`
	UpdatedAt           time.Time     `json:"updatedAt"`
}

// TastingNotes holds the three free-text impressions of a tea.
type TastingNotes struct {
	DryLeaf string `json:"dryLeaf,omitempty"`
	WetLeaf string `json:"wetLeaf,omitempty"`
	Taste   string `json:"taste,omitempty"`
}

// BrewingParams describes how a tea is prepared. Nil fields are unset.
type BrewingParams struct {
	Temperature *int     `json:"temperature,omitempty"` // Fahrenheit
	Grams       *float64 `json:"grams,omitempty"`
	Time        *int     `json:"time,omitempty"` // seconds
	Steeps      *int     `json:"steeps,omitempty"`
}

// FormData is the user-editable part of a Tea.
type FormData struct {
	Name                string        `json:"name"`
	Type                Type          `json:"type"`
	Supplier            string        `json:"supplier"`
	InStock             bool          `json:"inStock"`
	PurchaseDate        *Date         `json:"purchaseDate,omitempty"`
	Rating              int           `json:"rating"`
	TastingNotes        TastingNotes  `json:"tastingNotes"`
	SupplierDescription string        `json:"supplierDescription,omitempty"`
	BrewingParams       BrewingParams `json:"brewingParams"`
	HarvestSeason       Season        `json:"harvestSeason,omitempty"`
	HarvestYear         *int          `json:"harvestYear,omitempty"`
}

// Form returns the editable fields of t, e.g. to prefill an edit form.
func (t Tea) Form() FormData {
	c := t.clone()
	return FormData{
		Name:                c.Name,
		Type:                c.Type,
		Supplier:            c.Supplier,
		InStock:             c.InStock,
		PurchaseDate:        c.PurchaseDate,
		Rating:              c.Rating,
		TastingNotes:        c.TastingNotes,
		SupplierDescription: c.SupplierDescription,
		BrewingParams:       c.BrewingParams,
		HarvestSeason:       c.HarvestSeason,
		HarvestYear:         c.HarvestYear,
	}
}

// Rated reports whether the tea carries a real score.
func (t Tea) Rated() bool { return t.Rating > 0 }

func (t Tea) clone() Tea {
	c := t
	c.PurchaseDate = clonePtr(t.PurchaseDate)
	c.HarvestYear = clonePtr(t.HarvestYear)
	c.BrewingParams = BrewingParams{
		Temperature: clonePtr(t.BrewingParams.Temperature),
		Grams:       clonePtr(t.BrewingParams.Grams),
		Time:        clonePtr(t.BrewingParams.Time),
		Steeps:      clonePtr(t.BrewingParams.Steeps),
	}
	return c
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// Type is the tea category.
type Type string

const (
	Black   Type = "Black"
	Green   Type = "Green"
	White   Type = "White"
	Oolong  Type = "Oolong"
	PuErh   Type = "Pu-erh"
	Yellow  Type = "Yellow"
	Dark    Type = "Dark"
	Herbal  Type = "Herbal"
	Rooibos Type = "Rooibos"
	Tisane  Type = "Tisane"
	Blend   Type = "Blend"
	Other   Type = "Other"
)

// DefaultType is assigned when a form leaves the type empty.
const DefaultType = Black

// Types lists every category in display order.
var Types = []Type{Black, Green, White, Oolong, PuErh, Yellow, Dark, Herbal, Rooibos, Tisane, Blend, Other}

// Valid reports whether t is a known category.
func (t Type) Valid() bool {
	for _, known := range Types {
		if t == known {
			return true
		}
	}
	return false
}

// Season is the harvest season. The empty value means unknown.
type Season string

const (
	Spring      Season = "Spring"
	Summer      Season = "Summer"
	Fall        Season = "Fall"
	Winter      Season = "Winter"
	EarlySpring Season = "Early Spring"
	LateSpring  Season = "Late Spring"
	EarlySummer Season = "Early Summer"
	LateSummer  Season = "Late Summer"
	EarlyFall   Season = "Early Fall"
	LateFall    Season = "Late Fall"
)

// Seasons lists every harvest season in display order.
var Seasons = []Season{Spring, Summer, Fall, Winter, EarlySpring, LateSpring, EarlySummer, LateSummer, EarlyFall, LateFall}

// Valid reports whether s is a known season.
func (s Season) Valid() bool {
	for _, known := range Seasons {
		if s == known {
			return true
		}
	}
	return false
}

// Date is a calendar date without a time of day, encoded as YYYY-MM-DD.
type Date struct {
	time.Time
}

const dateLayout = "2006-01-02"

// NewDate returns the date at midnight UTC.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return Date{t}, nil
}

func (d Date) String() string { return d.Format(dateLayout) }

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Stats summarises the collection.
type Stats struct {
	Total         int     `json:"total"`
	InStock       int     `json:"inStock"`
	OutOfStock    int     `json:"outOfStock"`
	Rated         int     `json:"rated"`
	AverageRating float64 `json:"averageRating"`
}

// Journal event types.
const (
	aggregateType = "tea"

	EventTeaCreated      = "TeaCreated"
	EventTeaUpdated      = "TeaUpdated"
	EventTeaStockToggled = "TeaStockToggled"
	EventTeaRemoved      = "TeaRemoved"
)

// TeaCreatedEvent is journaled when a tea is added.
type TeaCreatedEvent struct {
	ID   uuid.UUID `json:"id"`
	Form FormData  `json:"form"`
}

// TeaUpdatedEvent is journaled when a tea's fields are replaced.
type TeaUpdatedEvent struct {
	ID   uuid.UUID `json:"id"`
	Form FormData  `json:"form"`
}

// TeaStockToggledEvent is journaled on every stock flip.
type TeaStockToggledEvent struct {
	ID      uuid.UUID `json:"id"`
	InStock bool      `json:"inStock"`
}

// TeaRemovedEvent is journaled when a tea is deleted.
type TeaRemovedEvent struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}
