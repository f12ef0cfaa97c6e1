// Package allocation guards the land a farm can commit to plantings.
//
// For a fixed (farm, season) bucket the summed area of all plantings never
// exceeds the farm cap: the cultivable area when set, else the total area.
// A single planting can never exceed the cap on its own, whatever its season.
//
// The package performs no I/O. Callers load the bucket (or its sum) inside
// whatever lock or transaction protects the read-validate-write sequence.
package allocation

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// Kind discriminates validation failures.
type Kind string

const (
	// InvalidArea means the requested area is zero or negative.
	InvalidArea Kind = "invalid_area"
	// ExceedsFarmCapacity means the planting alone is larger than the farm cap.
	ExceedsFarmCapacity Kind = "exceeds_farm_capacity"
	// ExceedsSeasonCapacity means the planting plus the rest of its season bucket is larger than the cap.
	ExceedsSeasonCapacity Kind = "exceeds_season_capacity"
)

// Violation is returned when a candidate planting cannot be committed.
// Cap, Existing and Requested are populated for capacity failures so callers
// can render remaining-capacity feedback.
type Violation struct {
	Kind      Kind
	Season    string
	Cap       decimal.Decimal
	Existing  decimal.Decimal
	Requested decimal.Decimal
}

// Error returns a human readable description of the violation.
func (v Violation) Error() string {
	switch v.Kind {
	case InvalidArea:
		return fmt.Sprintf("area must be greater than zero (got %s ha)", v.Requested)
	case ExceedsFarmCapacity:
		return fmt.Sprintf("area %s ha exceeds farm capacity of %s ha", v.Requested, v.Cap)
	case ExceedsSeasonCapacity:
		if v.Requested.IsZero() {
			return fmt.Sprintf("season %q already uses %s ha, above the cap of %s ha", v.Season, v.Existing, v.Cap)
		}
		return fmt.Sprintf("area %s ha exceeds remaining capacity for season %q: %s ha used of %s ha",
			v.Requested, v.Season, v.Existing, v.Cap)
	default:
		return string(v.Kind)
	}
}

// Remaining is the area still free in the bucket, never negative.
func (v Violation) Remaining() decimal.Decimal {
	r := v.Cap.Sub(v.Existing)
	if r.IsNegative() {
		return decimal.Zero
	}
	return r
}

// Candidate describes a planting about to be created or edited.
type Candidate struct {
	CultivableArea decimal.NullDecimal
	TotalArea      decimal.NullDecimal
	Area           decimal.Decimal
	Season         string
	// RecordID is the planting being edited; zero for a new record.
	RecordID uint
}

// Record is the part of a persisted planting the validator needs.
type Record struct {
	ID   uint
	Area decimal.Decimal
}

// Cap returns the farm cap and whether one exists.
func Cap(cultivable, total decimal.NullDecimal) (decimal.Decimal, bool) {
	if cultivable.Valid {
		return cultivable.Decimal, true
	}
	if total.Valid {
		return total.Decimal, true
	}
	return decimal.Zero, false
}

// Validate checks c against the plantings already stored for its (farm, season) bucket.
// The record being edited is skipped so re-saving it unchanged never double counts.
func Validate(c Candidate, existing []Record) error {
	sum := decimal.Zero
	for _, r := range existing {
		if c.RecordID != 0 && r.ID == c.RecordID {
			continue
		}
		sum = sum.Add(r.Area)
	}
	return ValidateSum(c, sum)
}

// ValidateSum is Validate for callers that aggregate in storage. existingSum
// must already exclude c.RecordID.
func ValidateSum(c Candidate, existingSum decimal.Decimal) error {
	if !c.Area.IsPositive() {
		return Violation{Kind: InvalidArea, Season: c.Season, Requested: c.Area}
	}
	limit, ok := Cap(c.CultivableArea, c.TotalArea)
	if !ok {
		return nil
	}
	if c.Area.GreaterThan(limit) {
		return Violation{Kind: ExceedsFarmCapacity, Season: c.Season, Cap: limit, Requested: c.Area}
	}
	if existingSum.Add(c.Area).GreaterThan(limit) {
		return Violation{
			Kind:      ExceedsSeasonCapacity,
			Season:    c.Season,
			Cap:       limit,
			Existing:  existingSum,
			Requested: c.Area,
		}
	}
	return nil
}

// ValidateCapChange checks a new farm cap against the stored bucket sums so a
// farm edit cannot leave any season over capacity. Seasons are checked in
// lexical order; the first bucket over the cap is reported.
func ValidateCapChange(cultivable, total decimal.NullDecimal, buckets map[string]decimal.Decimal) error {
	limit, ok := Cap(cultivable, total)
	if !ok {
		return nil
	}
	seasons := make([]string, 0, len(buckets))
	for s := range buckets {
		seasons = append(seasons, s)
	}
	sort.Strings(seasons)
	for _, s := range seasons {
		if buckets[s].GreaterThan(limit) {
			return Violation{Kind: ExceedsSeasonCapacity, Season: s, Cap: limit, Existing: buckets[s]}
		}
	}
	return nil
}
