package costing

import (
	"math"

	"vue-estate/internal/storage"
)

const flatSurcharge = 500

// BaseAmount resolves the pre-units amount for a template given the owning
// viewing's expected rent. A nil result means no default can be derived and
// the amount is left to manual entry.
//
// Rent-based templates take the rounded rent and nothing else; the surcharge
// kind adds a flat 500 on top of the estimation. The two kinds are mutually
// exclusive by construction of the kind column.
func BaseAmount(tmpl *storage.ExpenseTemplate, rent *float64) *float64 {
	if tmpl.Kind == storage.KindRentBased {
		if rent == nil {
			return nil
		}
		v := math.Round(*rent)
		return &v
	}

	if tmpl.Estimation == nil {
		return nil
	}
	v := *tmpl.Estimation
	if tmpl.Kind == storage.KindFlatPlusSurcharge {
		v += flatSurcharge
	}
	v = math.Round(v)
	return &v
}

// FinalAmount scales the resolved base by the units multiplier. Rent-based
// templates ignore units.
func FinalAmount(tmpl *storage.ExpenseTemplate, rent *float64, units float64) *float64 {
	base := BaseAmount(tmpl, rent)
	if base == nil {
		return nil
	}
	if tmpl.Kind == storage.KindRentBased {
		return base
	}
	if !(units > 0) {
		units = 1
	}
	v := *base * units
	return &v
}
