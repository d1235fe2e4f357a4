// internal/tea/validation.go
package tea

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Bounds of the validated fields.
const (
	MaxNameLength = 200

	MinRating = 0
	MaxRating = 10

	MinTemperature = 32
	MaxTemperature = 212

	MinGrams = 0.1
	MaxGrams = 50.0

	MinSteepSeconds = 5
	MaxSteepSeconds = 3600

	MinSteeps = 1
	MaxSteeps = 20

	MinHarvestYear = 1900
)

// MaxHarvestYear is the latest accepted harvest year relative to now.
func MaxHarvestYear(now time.Time) int { return now.Year() + 1 }

// Normalize fills defaults and clamps the rating into range. It never
// rejects anything; Validate does that.
func Normalize(f FormData) FormData {
	if f.Type == "" {
		f.Type = DefaultType
	}
	f.Rating = min(max(f.Rating, MinRating), MaxRating)
	return f
}

// Validate checks every rule and returns all violations at once, or nil.
func Validate(f FormData, now time.Time) *ValidationError {
	v := &ValidationError{}

	name := strings.TrimSpace(f.Name)
	switch {
	case name == "":
		v.add("name", "Tea name is required")
	case utf8.RuneCountInString(f.Name) > MaxNameLength:
		v.add("name", fmt.Sprintf("Tea name must be %d characters or fewer", MaxNameLength))
	}

	if f.Type != "" && !f.Type.Valid() {
		v.add("type", "Tea type must be one of: "+joinTypes())
	}

	if strings.TrimSpace(f.Supplier) == "" {
		v.add("supplier", "Supplier is required")
	}

	bp := f.BrewingParams
	if bp.Temperature != nil && (*bp.Temperature < MinTemperature || *bp.Temperature > MaxTemperature) {
		v.add("temperature", fmt.Sprintf("Temperature must be between %d-%d°F", MinTemperature, MaxTemperature))
	}
	if bp.Grams != nil && !(*bp.Grams >= MinGrams && *bp.Grams <= MaxGrams) {
		v.add("grams", "Tea amount must be between 0.1-50 grams")
	}
	if bp.Time != nil && (*bp.Time < MinSteepSeconds || *bp.Time > MaxSteepSeconds) {
		v.add("time", fmt.Sprintf("Steeping time must be between %d-%d seconds", MinSteepSeconds, MaxSteepSeconds))
	}
	if bp.Steeps != nil && (*bp.Steeps < MinSteeps || *bp.Steeps > MaxSteeps) {
		v.add("steeps", fmt.Sprintf("Number of steeps must be between %d-%d", MinSteeps, MaxSteeps))
	}

	if f.HarvestSeason != "" && !f.HarvestSeason.Valid() {
		v.add("harvestSeason", "Harvest season must be one of: "+joinSeasons())
	}
	if maxYear := MaxHarvestYear(now); f.HarvestYear != nil && (*f.HarvestYear < MinHarvestYear || *f.HarvestYear > maxYear) {
		v.add("harvestYear", fmt.Sprintf("Harvest year must be between %d-%d", MinHarvestYear, maxYear))
	}

	if len(v.Fields) == 0 {
		return nil
	}
	return v
}

func joinTypes() string {
	s := make([]string, len(Types))
	for i, t := range Types {
		s[i] = string(t)
	}
	return strings.Join(s, ", ")
}

func joinSeasons() string {
	s := make([]string, len(Seasons))
	for i, season := range Seasons {
		s[i] = string(season)
	}
	return strings.Join(s, ", ")
}
