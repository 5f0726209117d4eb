package classify

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// Decimal places per kind of value. Areas use the same precision in every view.
const (
	CountPlaces  = 0
	LengthPlaces = 2
	VolumePlaces = 2
	AreaPlaces   = 4
)

const (
	notApplicable = "-"
	noRollNumber  = "N/A"
	neverUpdated  = "Never"
)

// Fixed renders v with exactly places decimals, rounding half away from zero.
// NaN and infinities render as zero.
func Fixed(v float64, places int32) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		v = 0
	}
	s := decimal.NewFromFloat(v).StringFixed(places)
	if s[0] == '-' && decimal.RequireFromString(s).IsZero() {
		return s[1:]
	}
	return s
}

// Round rounds v to places decimals with the same rule as Fixed.
func Round(v float64, places int32) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	f, _ := decimal.NewFromFloat(v).Round(places).Float64()
	return f
}

// FormatDate renders the list/export form of a timestamp.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return neverUpdated
	}
	return t.Format("2006-01-02")
}

// FormatDateTime renders the detail form of a timestamp.
func FormatDateTime(t time.Time) string {
	if t.IsZero() {
		return neverUpdated
	}
	return t.Format("2006-01-02 15:04:05")
}
