package classify

import (
	"stockdesk/model"
	"stockdesk/units"
)

func detail(label, value string) model.Detail {
	return model.Detail{Label: label, Value: value}
}

func rollDetails(d model.Dimensions) []model.Detail {
	var out []model.Detail
	if d.Has("rollNumber") {
		out = append(out, detail("Roll", d.String("rollNumber")))
	}
	length, _ := d.Float("length")
	width, _ := d.Float("width")
	out = append(out, detail("Size",
		Fixed(units.ToMetres(length, d.String("lengthUnit")), LengthPlaces)+"m x "+
			Fixed(units.ToMetres(width, d.String("widthUnit")), LengthPlaces)+"m"))
	return out
}

func pieceDetails(d model.Dimensions) []model.Detail {
	out := []model.Detail{detail("Pieces", d.String("numberOfPieces"))}
	if per, ok := d.Float("sqMtrPerPiece"); ok {
		out = append(out, detail("Sq.mtr/pc", Fixed(per, AreaPlaces)))
	}
	return out
}

func chemicalDetails(d model.Dimensions) []model.Detail {
	var out []model.Detail
	if d.Has("productFormat") {
		unit := d.String("chemicalUnit")
		if unit == "" {
			unit = "ltrs"
		}
		out = append(out, detail("Format", d.String("productFormat")+" "+unit))
	}
	return out
}

func ruleDetails(d model.Dimensions) []model.Detail {
	var out []model.Detail
	if d.Has("ruleFormat") {
		out = append(out, detail("Format", d.String("ruleFormat")))
	}
	if d.Has("rulePackedAs") {
		out = append(out, detail("Packed As", d.String("rulePackedAs")))
	}
	if d.Has("ruleContainerLength") || d.Has("ruleContainerWidth") {
		c := d.String("ruleContainerLength") + " x " + d.String("ruleContainerWidth")
		if t := d.String("ruleContainerType"); t != "" {
			c += " " + t
		}
		out = append(out, detail("Container", c))
	}
	return out
}

func matrixDetails(d model.Dimensions) []model.Detail {
	var out []model.Detail
	if d.Has("matrixFormat") {
		out = append(out, detail("Format", d.String("matrixFormat")))
	}
	if d.Has("matrixSizeWidth") && d.Has("matrixSizeHeight") {
		out = append(out, detail("Sheet", d.String("matrixSizeWidth")+" x "+d.String("matrixSizeHeight")))
	}
	return out
}

func lithoDetails(d model.Dimensions) []model.Detail {
	var out []model.Detail
	if d.Has("lithoPieceType") {
		out = append(out, detail("Piece Type", d.String("lithoPieceType")))
	}
	if d.Has("perforationType") {
		out = append(out, detail("Perforation", d.String("perforationType")))
	}
	if d.Has("productTPI") {
		out = append(out, detail("TPI", d.String("productTPI")))
	}
	return out
}

// dimensionRows lists the labelled dimension lines of the detail view, in display order.
var dimensionRows = []struct {
	key   string
	label string
	unit  string
}{
	{"length", "Length", "lengthUnit"},
	{"width", "Width", "widthUnit"},
	{"thickness", "Thickness", "thicknessUnit"},
	{"rollNumber", "Roll Number", ""},
	{"stockType", "Stock Type", ""},
	{"numberOfPieces", "Number of Pieces", ""},
	{"productFormat", "Product Format", "chemicalUnit"},
	{"ruleFormat", "Rule Format", ""},
	{"rulePackedAs", "Packed As", ""},
	{"ruleContainerLength", "Container Length", ""},
	{"ruleContainerWidth", "Container Width", ""},
	{"ruleContainerType", "Container Type", ""},
	{"matrixFormat", "Matrix Format", ""},
	{"matrixSizeWidth", "Matrix Width", ""},
	{"matrixSizeHeight", "Matrix Height", ""},
	{"lithoPieceType", "Piece Type", ""},
	{"perforationType", "Perforation Type", ""},
	{"productTPI", "TPI", ""},
	{"stockUnit", "Stock Unit", ""},
}

// Details builds the detail view of p.
func Details(p model.Product) model.ProductDetail {
	d := p.Dimensions
	var dims []model.Detail
	for _, row := range dimensionRows {
		if !d.Has(row.key) {
			continue
		}
		value := d.String(row.key)
		if row.unit != "" {
			switch row.unit {
			case "chemicalUnit":
				if u := d.String(row.unit); u != "" {
					value += " " + u
				}
			default:
				value += " " + units.LengthUnitOrDefault(d, row.unit)
			}
		}
		dims = append(dims, detail(row.label, value))
	}
	if per, ok := d.Float("sqMtrPerPiece"); ok {
		dims = append(dims, detail("Sq.mtr per Piece", Fixed(per, AreaPlaces)))
	}
	if total, ok := d.Float("totalSqMtr"); ok {
		dims = append(dims, detail("Total Sq.mtr", Fixed(total, AreaPlaces)))
	} else if per, ok := d.Float("sqMtrPerPiece"); ok && IsPieces(p) {
		dims = append(dims, detail("Total Sq.mtr", Fixed(per*p.Stock, AreaPlaces)))
	}

	rec := Classify(p)
	imported := "No"
	if p.Imported {
		imported = "Yes"
	}
	stocking := []model.Detail{
		detail("Current Stock", rec.Quantity+" "+rec.QuantityUnit),
		detail("Status", rec.StockStatus),
		detail("Imported", imported),
		detail("Last Updated", FormatDateTime(p.LastUpdated.Time)),
	}
	if p.SKU != "" {
		stocking = append(stocking, detail("SKU", p.SKU))
	}
	return model.ProductDetail{
		Record:     rec,
		Stock:      p.Stock,
		Dimensions: dims,
		Stocking:   stocking,
	}
}
