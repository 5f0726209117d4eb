package stock

import (
	"errors"
	"math"
	"regexp"
	"strings"

	"stockdesk/classify"
	"stockdesk/model"
	"stockdesk/units"
)

const (
	StockTypeRoll   = "roll"
	StockTypePieces = "pieces"
)

var isoDate = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ValidDate reports whether s is a YYYY-MM-DD date string.
func ValidDate(s string) bool {
	return isoDate.MatchString(s)
}

// SqMtr is the area of a length x width roll, rounded to 2 places.
func SqMtr(length float64, lengthUnit string, width float64, widthUnit string) float64 {
	return classify.Round(units.Area(length, lengthUnit, width, widthUnit), classify.LengthPlaces)
}

func validUnit(u *string) bool {
	return u != nil && (*u == units.Millimetre || *u == units.Metre)
}

func positive(v *float64) bool {
	return v != nil && *v > 0 && !math.IsInf(*v, 0)
}

// NormalizeDetailed checks a detailed stock-in form and fills in what the
// server derives: the thickness unit, the roll area and the fields that do
// not apply to the chosen stock type.
func NormalizeDetailed(in *model.DetailedStockIn) error {
	in.ProductType = strings.TrimSpace(in.ProductType)
	in.ProductName = strings.TrimSpace(in.ProductName)
	in.StockType = strings.ToLower(strings.TrimSpace(in.StockType))
	in.RollNumber = strings.TrimSpace(in.RollNumber)

	if in.ProductType == "" || in.ProductName == "" || in.StockType == "" {
		return errors.New("product type, product name and stock type are required")
	}
	if !positive(in.Thickness) {
		return errors.New("thickness is required")
	}
	if in.ThicknessUnit == "" {
		in.ThicknessUnit = units.Millimetre
	}
	if in.ThicknessUnit != units.Millimetre && in.ThicknessUnit != units.Micron {
		return errors.New("thickness unit must be mm or micron")
	}
	blankets := units.Normalize(in.ProductType) == units.Blankets

	switch in.StockType {
	case StockTypeRoll:
		if !positive(in.Length) || !positive(in.Width) {
			return errors.New("length and width are required for roll stock")
		}
		if !validUnit(in.LengthUnit) || !validUnit(in.WidthUnit) {
			return errors.New("length and width units must be mm or mtr")
		}
		if blankets && in.RollNumber == "" {
			return errors.New("roll number is required for blanket rolls")
		}
		if in.SqMtr == nil || *in.SqMtr <= 0 {
			area := SqMtr(*in.Length, *in.LengthUnit, *in.Width, *in.WidthUnit)
			in.SqMtr = &area
		}
		in.NumberOfPieces = nil
	case StockTypePieces:
		if in.NumberOfPieces == nil || *in.NumberOfPieces <= 0 {
			return errors.New("number of pieces is required for pieces stock")
		}
		if blankets {
			in.RollNumber = ""
		}
		in.Length, in.Width = nil, nil
		in.LengthUnit, in.WidthUnit = nil, nil
		in.SqMtr = nil
	default:
		return errors.New("stock type must be roll or pieces")
	}

	for _, d := range []**string{&in.ImportDate, &in.TakenDate} {
		if *d == nil {
			continue
		}
		if v := strings.TrimSpace(**d); v == "" {
			*d = nil
		} else if !ValidDate(v) {
			return errors.New("invalid date format, use YYYY-MM-DD")
		} else {
			**d = v
		}
	}
	return nil
}

// ValidateMovement checks a stock in/out request.
func ValidateMovement(m *model.StockMovement) error {
	m.ProductID = strings.TrimSpace(m.ProductID)
	if m.ProductID == "" {
		return errors.New("product ID and quantity are required")
	}
	if m.Quantity <= 0 || m.Quantity != math.Trunc(m.Quantity) {
		return errors.New("quantity must be a whole number greater than zero")
	}
	return nil
}
