package export

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"stockdesk/classify"
	"stockdesk/model"
)

var xlsxHeader = []string{
	"Product Name",
	"Category",
	"Stock Quantity",
	"Quantity Unit",
	"Stock Size",
	"Size Unit",
	"Roll Number",
	"Last Updated",
	"Status",
}

const maxSheetName = 31

// sheetName makes a category usable as a worksheet name.
func sheetName(category string, used map[string]bool) string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			return '_'
		}
		return r
	}, strings.TrimSpace(category))
	if name == "" {
		name = "uncategorized"
	}
	if len([]rune(name)) > maxSheetName {
		name = string([]rune(name)[:maxSheetName])
	}
	base := name
	for i := 2; used[strings.ToLower(name)]; i++ {
		suffix := fmt.Sprintf(" (%d)", i)
		r := []rune(base)
		if len(r)+len(suffix) > maxSheetName {
			r = r[:maxSheetName-len(suffix)]
		}
		name = string(r) + suffix
	}
	used[strings.ToLower(name)] = true
	return name
}

func xlsxRow(p model.Product, keys []string) []interface{} {
	rec := classify.Classify(p)
	row := []interface{}{rec.DisplayName, rec.Category, rec.QuantityValue, rec.QuantityUnit}
	if _, err := strconv.ParseFloat(rec.Size, 64); err == nil {
		row = append(row, rec.SizeValue)
	} else {
		row = append(row, rec.Size)
	}
	row = append(row, rec.SizeUnit, rec.RollNumber, rec.LastUpdated, rec.StockStatus)
	for _, k := range keys {
		row = append(row, p.Dimensions.String(k))
	}
	return row
}

// WriteXLSX writes one worksheet per category with the same columns as the
// CSV export, quantities and areas as numeric cells. It returns the number
// of product rows.
func WriteXLSX(w io.Writer, products []model.Product) (int, error) {
	if len(products) == 0 {
		return 0, ErrNothingToExport
	}

	f := excelize.NewFile()
	defer f.Close()

	keys := DimensionKeys(products)
	header := make([]interface{}, 0, len(xlsxHeader)+len(keys))
	for _, h := range xlsxHeader {
		header = append(header, h)
	}
	for _, k := range keys {
		header = append(header, k)
	}

	used := make(map[string]bool)
	rows := 0
	for i, g := range GroupByCategory(products) {
		name := sheetName(g.Category, used)
		if i == 0 {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				return 0, fmt.Errorf("WriteXLSX: rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return 0, fmt.Errorf("WriteXLSX: new sheet %q: %w", name, err)
		}

		if err := f.SetSheetRow(name, "A1", &header); err != nil {
			return 0, fmt.Errorf("WriteXLSX: header: %w", err)
		}
		for j, p := range g.Products {
			cell, err := excelize.CoordinatesToCellName(1, j+2)
			if err != nil {
				return 0, fmt.Errorf("WriteXLSX: %w", err)
			}
			row := xlsxRow(p, keys)
			if err := f.SetSheetRow(name, cell, &row); err != nil {
				return 0, fmt.Errorf("WriteXLSX: row %d of %q: %w", j+1, name, err)
			}
			rows++
		}
	}
	f.SetActiveSheet(0)

	if err := f.Write(w); err != nil {
		return 0, fmt.Errorf("WriteXLSX: %w", err)
	}
	return rows, nil
}
