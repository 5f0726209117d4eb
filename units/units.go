package units

import (
	"strings"

	"stockdesk/model"
)

// Category names after Normalize.
const (
	Blankets     = "blankets"
	Underpacking = "underpacking"
	Chemicals    = "chemicals"
	Rules        = "rules"
	Matrix       = "matrix"
	LithoPerf    = "litho-perf"
)

const (
	Millimetre = "mm"
	Metre      = "mtr"
	Micron     = "micron"
)

// Normalize folds a category to its canonical key: lower case, with spaces
// and underscores turned into hyphens ("litho perf" -> "litho-perf").
func Normalize(category string) string {
	c := strings.ToLower(strings.TrimSpace(category))
	c = strings.NewReplacer(" ", "-", "_", "-").Replace(c)
	return c
}

// ToMetres converts a length expressed in unit to metres. Only "mm" is
// scaled; every other unit is taken as metres already.
func ToMetres(value float64, unit string) float64 {
	if strings.EqualFold(strings.TrimSpace(unit), Millimetre) {
		return value / 1000
	}
	return value
}

// Area returns length x width in square metres.
func Area(length float64, lengthUnit string, width float64, widthUnit string) float64 {
	return ToMetres(length, lengthUnit) * ToMetres(width, widthUnit)
}

// ThicknessSuffix renders a thickness with its unit mark: "μ" for microns, "mm" otherwise.
func ThicknessSuffix(raw string, unit string) string {
	if strings.EqualFold(strings.TrimSpace(unit), Micron) {
		return raw + "μ"
	}
	return raw + "mm"
}

// LengthUnitOrDefault returns the unit label for a dimension, "mm" when unset.
func LengthUnitOrDefault(d model.Dimensions, key string) string {
	if u := d.String(key); u != "" {
		return u
	}
	return Millimetre
}

// PluralPacking maps a packing word to the unit label used in listings.
func PluralPacking(packedAs string) string {
	switch strings.ToLower(strings.TrimSpace(packedAs)) {
	case "":
		return ""
	case "coil", "coils":
		return "coils"
	case "packet", "packets", "pkt", "pkts":
		return "pkts"
	case "box", "boxes":
		return "boxes"
	default:
		return strings.ToLower(strings.TrimSpace(packedAs))
	}
}
