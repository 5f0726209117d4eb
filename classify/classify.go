// Package classify turns a backend product record into the normalized
// display tuple shared by the product table, the detail view and the exports.
package classify

import (
	"strings"

	"stockdesk/model"
	"stockdesk/units"
)

// measure is what a category strategy contributes to a DisplayRecord.
type measure struct {
	quantity      string
	quantityValue float64
	quantityUnit  string
	size          string
	sizeValue     float64
	sizeUnit      string
}

// strategy formats the stock of one category that is neither a piece nor a roll record.
type strategy struct {
	measure func(p model.Product) measure
	details func(d model.Dimensions) []model.Detail
}

var strategies = map[string]strategy{
	units.Chemicals: {measure: chemicalMeasure, details: chemicalDetails},
	units.Rules:     {measure: ruleMeasure, details: ruleDetails},
	units.Matrix:    {measure: matrixMeasure, details: matrixDetails},
	units.LithoPerf: {measure: lithoMeasure, details: lithoDetails},
}

var genericStrategy = strategy{measure: genericMeasure, details: func(model.Dimensions) []model.Detail { return nil }}

func strategyFor(category string) strategy {
	if s, ok := strategies[category]; ok {
		return s
	}
	return genericStrategy
}

// IsPieces reports whether p is counted in blanket pieces.
func IsPieces(p model.Product) bool {
	return units.Normalize(p.Category) == units.Blankets && p.Dimensions.Has("numberOfPieces")
}

// IsRoll reports whether p carries roll dimensions and is not a piece record.
func IsRoll(p model.Product) bool {
	return !IsPieces(p) && p.Dimensions.Has("length") && p.Dimensions.Has("width")
}

// Classify derives the display fields of p. It has no side effects and
// tolerates a nil dimension bag.
func Classify(p model.Product) model.DisplayRecord {
	category := units.Normalize(p.Category)
	pieces := IsPieces(p)

	var m measure
	switch {
	case pieces:
		m = pieceMeasure(p)
	case IsRoll(p):
		m = rollMeasure(category, p.Dimensions)
	default:
		m = strategyFor(category).measure(p)
	}

	status := Status(p.Stock, pieces)
	rec := model.DisplayRecord{
		ID:            p.ID.String(),
		Name:          p.Name,
		DisplayName:   DisplayName(p),
		Category:      p.Category,
		Quantity:      m.quantity,
		QuantityValue: m.quantityValue,
		QuantityUnit:  m.quantityUnit,
		Size:          m.size,
		SizeValue:     m.sizeValue,
		SizeUnit:      m.sizeUnit,
		RollNumber:    RollNumber(p.Dimensions),
		StockStatus:   status,
		StatusClass:   StatusClass(status),
		LastUpdated:   FormatDate(p.LastUpdated.Time),
		Imported:      p.Imported,
		Pieces:        pieces,
	}
	rec.DetailsText = detailsText(p, category, pieces)
	return rec
}

// ClassifyAll classifies a slice, preserving order.
func ClassifyAll(products []model.Product) []model.DisplayRecord {
	out := make([]model.DisplayRecord, 0, len(products))
	for _, p := range products {
		out = append(out, Classify(p))
	}
	return out
}

// RollNumber returns the roll number or "N/A".
func RollNumber(d model.Dimensions) string {
	if rn := d.String("rollNumber"); rn != "" {
		return rn
	}
	return noRollNumber
}

// DisplayName differentiates products sharing a name: matrix items are
// prefixed with their sheet size, everything else gets its thickness, and
// blanket pieces without a thickness are marked as pieces.
func DisplayName(p model.Product) string {
	d := p.Dimensions
	name := p.Name

	if units.Normalize(p.Category) == units.Matrix {
		if w, h := d.String("matrixSizeWidth"), d.String("matrixSizeHeight"); d.Has("matrixSizeWidth") && d.Has("matrixSizeHeight") {
			return w + "×" + h + " " + name
		}
	}
	if d.Has("thickness") {
		name += " (" + units.ThicknessSuffix(d.String("thickness"), d.String("thicknessUnit")) + ")"
	} else if IsPieces(p) {
		name += " (Pieces)"
	}
	return name
}

func pieceMeasure(p model.Product) measure {
	d := p.Dimensions
	size, ok := d.Float("sqMtrPerPiece")
	if !ok {
		if total, hasTotal := d.Float("totalSqMtr"); hasTotal {
			size = total
		}
	}
	return measure{
		quantity:      Fixed(p.Stock, CountPlaces),
		quantityValue: Round(p.Stock, CountPlaces),
		quantityUnit:  "pieces",
		size:          Fixed(size, AreaPlaces),
		sizeValue:     Round(size, AreaPlaces),
		sizeUnit:      "sq.mtr",
	}
}

func rollMeasure(category string, d model.Dimensions) measure {
	length, _ := d.Float("length")
	width, _ := d.Float("width")
	lengthM := units.ToMetres(length, d.String("lengthUnit"))
	widthM := units.ToMetres(width, d.String("widthUnit"))
	area := lengthM * widthM

	// underpacking is sold by width, every other roll by length
	q := lengthM
	if category == units.Underpacking {
		q = widthM
	}
	return measure{
		quantity:      Fixed(q, LengthPlaces),
		quantityValue: Round(q, LengthPlaces),
		quantityUnit:  "mtr",
		size:          Fixed(area, AreaPlaces),
		sizeValue:     Round(area, AreaPlaces),
		sizeUnit:      "sq.mtr",
	}
}

func chemicalMeasure(p model.Product) measure {
	d := p.Dimensions
	unit := d.String("chemicalUnit")
	if unit == "" {
		unit = "ltrs"
	}
	format, ok := d.Float("productFormat")
	if !ok || format <= 0 {
		return measure{
			quantity:      Fixed(p.Stock, VolumePlaces),
			quantityValue: Round(p.Stock, VolumePlaces),
			quantityUnit:  unit,
			size:          notApplicable,
		}
	}
	containers := p.Stock / format
	return measure{
		quantity:      Fixed(containers, VolumePlaces),
		quantityValue: Round(containers, VolumePlaces),
		quantityUnit:  "containers",
		size:          Fixed(p.Stock, VolumePlaces),
		sizeValue:     Round(p.Stock, VolumePlaces),
		sizeUnit:      unit,
	}
}

func ruleMeasure(p model.Product) measure {
	d := p.Dimensions
	unit := d.String("stockUnit")
	if unit == "" {
		unit = units.PluralPacking(d.String("rulePackedAs"))
	}
	if unit == "" {
		unit = "coils"
	}
	m := countMeasure(p.Stock, unit)
	if d.Has("ruleContainerLength") && d.Has("ruleContainerWidth") {
		m.size = d.String("ruleContainerLength") + " x " + d.String("ruleContainerWidth")
		m.sizeUnit = d.String("ruleContainerType")
	}
	return m
}

func matrixMeasure(p model.Product) measure {
	d := p.Dimensions
	unit := d.String("stockUnit")
	if unit == "" {
		unit = "pkts"
	}
	m := countMeasure(p.Stock, unit)
	if d.Has("matrixSizeWidth") && d.Has("matrixSizeHeight") {
		m.size = d.String("matrixSizeWidth") + " x " + d.String("matrixSizeHeight")
	}
	return m
}

func lithoMeasure(p model.Product) measure {
	return countMeasure(p.Stock, "pkts")
}

func genericMeasure(p model.Product) measure {
	return measure{
		quantity:      Fixed(p.Stock, VolumePlaces),
		quantityValue: Round(p.Stock, VolumePlaces),
		quantityUnit:  "units",
		size:          notApplicable,
	}
}

func countMeasure(stock float64, unit string) measure {
	return measure{
		quantity:      Fixed(stock, CountPlaces),
		quantityValue: Round(stock, CountPlaces),
		quantityUnit:  unit,
		size:          notApplicable,
	}
}

func detailsText(p model.Product, category string, pieces bool) string {
	var parts []string
	add := func(details []model.Detail) {
		for _, dt := range details {
			parts = append(parts, dt.Label+": "+dt.Value)
		}
	}
	d := p.Dimensions
	switch {
	case pieces:
		add(pieceDetails(d))
	case IsRoll(p):
		add(rollDetails(d))
	}
	add(strategyFor(category).details(d))
	return strings.Join(parts, ", ")
}
