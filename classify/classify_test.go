package classify

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockdesk/model"
)

func product(category string, stock float64, dims model.Dimensions) model.Product {
	return model.Product{ID: "p1", Name: "Item", Category: category, Stock: stock, Dimensions: dims}
}

func TestStatusStandardScale(t *testing.T) {
	cases := []struct {
		stock float64
		want  string
	}{
		{0, model.StatusOutOfStock},
		{0.5, model.StatusLow},
		{9.99, model.StatusLow},
		{10, model.StatusMedium},
		{49, model.StatusMedium},
		{50, model.StatusInStock},
		{1000, model.StatusInStock},
		{-2, model.StatusLow},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Status(tc.stock, false), "stock %v", tc.stock)
	}
}

func TestStatusPieceScale(t *testing.T) {
	cases := []struct {
		stock float64
		want  string
	}{
		{0, model.StatusOutOfStock},
		{1, model.StatusLow},
		{2, model.StatusLow},
		{3, model.StatusMedium},
		{9, model.StatusMedium},
		{10, model.StatusInStock},
		{25, model.StatusInStock},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Status(tc.stock, true), "stock %v", tc.stock)
	}
}

func TestStatusClass(t *testing.T) {
	assert.Equal(t, "out-of-stock", StatusClass(model.StatusOutOfStock))
	assert.Equal(t, "low-stock", StatusClass(model.StatusLow))
	assert.Equal(t, "medium-stock", StatusClass(model.StatusMedium))
	assert.Equal(t, "in-stock", StatusClass(model.StatusInStock))
	assert.Equal(t, "", StatusClass("unknown"))
}

func TestClassifyRollInMillimetres(t *testing.T) {
	p := product("blankets", 20, model.Dimensions{
		"length": 1000.0, "lengthUnit": "mm",
		"width": 500.0, "widthUnit": "mm",
		"rollNumber": "R-7",
	})
	rec := Classify(p)

	assert.Equal(t, "1.00", rec.Quantity)
	assert.Equal(t, "mtr", rec.QuantityUnit)
	assert.Equal(t, 0.5, rec.SizeValue)
	assert.Equal(t, "0.5000", rec.Size)
	assert.Equal(t, "sq.mtr", rec.SizeUnit)
	assert.Equal(t, "R-7", rec.RollNumber)
	assert.Equal(t, model.StatusMedium, rec.StockStatus)
	assert.False(t, rec.Pieces)
}

func TestClassifyRollMixedUnits(t *testing.T) {
	p := product("film", 60, model.Dimensions{
		"length": 50.0, "lengthUnit": "mtr",
		"width": 1200.0, "widthUnit": "mm",
	})
	rec := Classify(p)

	assert.Equal(t, "50.00", rec.Quantity)
	assert.Equal(t, "60.0000", rec.Size)
	assert.Equal(t, model.StatusInStock, rec.StockStatus)
}

func TestUnderpackingUsesWidth(t *testing.T) {
	dims := model.Dimensions{"length": 30.0, "lengthUnit": "mtr", "width": 1500.0, "widthUnit": "mm"}
	roll := Classify(product("blankets", 5, dims))
	under := Classify(product("underpacking", 5, dims))

	assert.Equal(t, "30.00", roll.Quantity)
	assert.Equal(t, "1.50", under.Quantity)
	assert.NotEqual(t, roll.Quantity, under.Quantity)
	assert.Equal(t, roll.Size, under.Size)
}

func TestClassifyBlanketPieces(t *testing.T) {
	p := product("Blankets", 4, model.Dimensions{
		"stockType": "pieces", "numberOfPieces": 4.0, "sqMtrPerPiece": 0.3125,
		"length": 500.0, "width": 625.0,
	})
	rec := Classify(p)

	assert.True(t, rec.Pieces)
	assert.Equal(t, "4", rec.Quantity)
	assert.Equal(t, "pieces", rec.QuantityUnit)
	assert.Equal(t, "0.3125", rec.Size)
	assert.Equal(t, "sq.mtr", rec.SizeUnit)
	assert.Equal(t, model.StatusMedium, rec.StockStatus)
	assert.Equal(t, "Item (Pieces)", rec.DisplayName)
	assert.Equal(t, "Pieces: 4, Sq.mtr/pc: 0.3125", rec.DetailsText)
}

func TestClassifyBlanketPiecesFallsBackToTotal(t *testing.T) {
	p := product("blankets", 2, model.Dimensions{"numberOfPieces": 2.0, "totalSqMtr": 1.25})
	rec := Classify(p)

	assert.Equal(t, "1.2500", rec.Size)
	assert.Equal(t, model.StatusLow, rec.StockStatus)
}

func TestPiecesRequireBlanketCategory(t *testing.T) {
	p := product("film", 2, model.Dimensions{"numberOfPieces": 2.0})
	rec := Classify(p)

	assert.False(t, rec.Pieces)
	assert.Equal(t, "units", rec.QuantityUnit)
	assert.Equal(t, model.StatusLow, rec.StockStatus)
}

func TestClassifyChemicalContainers(t *testing.T) {
	p := product("chemicals", 45, model.Dimensions{"productFormat": 20.0, "chemicalUnit": "ltrs"})
	rec := Classify(p)

	assert.Equal(t, "2.25", rec.Quantity)
	assert.Equal(t, "containers", rec.QuantityUnit)
	assert.Equal(t, "45.00", rec.Size)
	assert.Equal(t, "ltrs", rec.SizeUnit)
	assert.Equal(t, "Format: 20 ltrs", rec.DetailsText)
}

func TestClassifyChemicalWithoutFormatNeverDividesByZero(t *testing.T) {
	for _, dims := range []model.Dimensions{nil, {"productFormat": 0.0}, {"productFormat": "abc"}} {
		rec := Classify(product("chemicals", 12.5, dims))
		assert.Equal(t, "12.50", rec.Quantity)
		assert.Equal(t, "ltrs", rec.QuantityUnit)
		assert.Equal(t, "-", rec.Size)
	}
}

func TestClassifyRules(t *testing.T) {
	p := product("rules", 7, model.Dimensions{
		"ruleFormat": "2pt", "rulePackedAs": "packet",
		"ruleContainerLength": 1000.0, "ruleContainerWidth": 23.8, "ruleContainerType": "box",
	})
	rec := Classify(p)

	assert.Equal(t, "7", rec.Quantity)
	assert.Equal(t, "pkts", rec.QuantityUnit)
	assert.Equal(t, "1000 x 23.8", rec.Size)
	assert.Equal(t, "box", rec.SizeUnit)
	assert.Equal(t, "Format: 2pt, Packed As: packet, Container: 1000 x 23.8 box", rec.DetailsText)

	rec = Classify(product("rules", 3, nil))
	assert.Equal(t, "coils", rec.QuantityUnit)

	rec = Classify(product("rules", 3, model.Dimensions{"stockUnit": "rolls", "rulePackedAs": "coil"}))
	assert.Equal(t, "rolls", rec.QuantityUnit)
}

func TestClassifyMatrix(t *testing.T) {
	p := product("matrix", 12.6, model.Dimensions{
		"matrixFormat": "0.4x1.3", "matrixSizeWidth": "50", "matrixSizeHeight": "60", "thickness": 0.4,
	})
	rec := Classify(p)

	assert.Equal(t, "13", rec.Quantity)
	assert.Equal(t, "pkts", rec.QuantityUnit)
	assert.Equal(t, "50×60 Item", rec.DisplayName)
	assert.Equal(t, "50 x 60", rec.Size)
	assert.Equal(t, model.StatusMedium, rec.StockStatus)
}

func TestClassifyLithoPerfAcceptsBothSpellings(t *testing.T) {
	dims := model.Dimensions{"lithoPieceType": "strip", "perforationType": "micro", "productTPI": 24.0}
	for _, category := range []string{"litho perf", "litho-perf", "Litho_Perf"} {
		rec := Classify(product(category, 4, dims))
		assert.Equal(t, "4", rec.Quantity)
		assert.Equal(t, "pkts", rec.QuantityUnit)
		assert.Equal(t, "Piece Type: strip, Perforation: micro, TPI: 24", rec.DetailsText)
	}
}

func TestClassifyDefaultCategory(t *testing.T) {
	rec := Classify(product("ink", 3.456, nil))

	assert.Equal(t, "3.46", rec.Quantity)
	assert.Equal(t, "units", rec.QuantityUnit)
	assert.Equal(t, "-", rec.Size)
	assert.Equal(t, "", rec.SizeUnit)
	assert.Equal(t, "N/A", rec.RollNumber)
	assert.Equal(t, "Never", rec.LastUpdated)
}

func TestDisplayNameThickness(t *testing.T) {
	micron := product("film", 1, model.Dimensions{"thickness": 125.0, "thicknessUnit": "micron"})
	mm := product("blankets", 1, model.Dimensions{"thickness": "1.95"})

	assert.Equal(t, "Item (125μ)", DisplayName(micron))
	assert.Equal(t, "Item (1.95mm)", DisplayName(mm))

	pieces := product("blankets", 1, model.Dimensions{"thickness": 1.95, "numberOfPieces": 1.0})
	assert.Equal(t, "Item (1.95mm)", DisplayName(pieces))
}

func TestClassifyNullDimensionsFromJSON(t *testing.T) {
	var p model.Product
	require.NoError(t, json.Unmarshal([]byte(`{"_id":"x","name":"Plate","category":"plate","stock":0,"dimensions":null,"lastUpdated":null}`), &p))

	require.NotPanics(t, func() { Classify(p) })
	rec := Classify(p)
	assert.Equal(t, "x", rec.ID)
	assert.Equal(t, "0.00", rec.Quantity)
	assert.Equal(t, "N/A", rec.RollNumber)
	assert.Equal(t, "-", rec.Size)
	assert.Equal(t, model.StatusOutOfStock, rec.StockStatus)
	assert.Equal(t, "Plate", rec.DisplayName)
}

func TestClassifyIsDeterministic(t *testing.T) {
	p := product("underpacking", 11, model.Dimensions{"length": 20.0, "width": 900.0, "widthUnit": "mm"})
	assert.Equal(t, Classify(p), Classify(p))
}

func TestClassifyAllKeepsOrder(t *testing.T) {
	products := []model.Product{
		{ID: "a", Name: "A", Category: "ink"},
		{ID: "b", Name: "B", Category: "film"},
	}
	recs := ClassifyAll(products)
	require.Len(t, recs, 2)
	assert.Equal(t, "a", recs[0].ID)
	assert.Equal(t, "b", recs[1].ID)
}

func TestDetails(t *testing.T) {
	p := product("blankets", 3, model.Dimensions{
		"numberOfPieces": 3.0, "sqMtrPerPiece": 0.5, "stockType": "pieces",
		"thickness": 1.7, "length": 600.0, "lengthUnit": "mm",
	})
	p.Imported = true
	p.LastUpdated = model.Timestamp{Time: time.Date(2024, 12, 25, 9, 30, 0, 0, time.UTC)}

	got := Details(p)

	assert.Equal(t, []model.Detail{
		{Label: "Length", Value: "600 mm"},
		{Label: "Thickness", Value: "1.7 mm"},
		{Label: "Stock Type", Value: "pieces"},
		{Label: "Number of Pieces", Value: "3"},
		{Label: "Sq.mtr per Piece", Value: "0.5000"},
		{Label: "Total Sq.mtr", Value: "1.5000"},
	}, got.Dimensions)
	assert.Equal(t, []model.Detail{
		{Label: "Current Stock", Value: "3 pieces"},
		{Label: "Status", Value: model.StatusMedium},
		{Label: "Imported", Value: "Yes"},
		{Label: "Last Updated", Value: "2024-12-25 09:30:00"},
	}, got.Stocking)
	assert.Equal(t, "2024-12-25", got.Record.LastUpdated)
}

func TestFixed(t *testing.T) {
	assert.Equal(t, "2.50", Fixed(2.5, 2))
	assert.Equal(t, "3", Fixed(2.5, 0))
	assert.Equal(t, "0.0000", Fixed(0, 4))
	assert.Equal(t, "0.00", Fixed(-0.0001, 2))
}
