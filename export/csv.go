// Package export writes the product working set as CSV and XLSX files.
package export

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"stockdesk/classify"
	"stockdesk/model"
)

// ErrNothingToExport is returned when the selection is empty.
var ErrNothingToExport = errors.New("no products to export")

// Scope of an export.
const (
	ScopeFiltered = "filtered"
	ScopeAll      = "all"
)

var baseHeader = []string{
	"Product Name",
	"Category",
	"Stock Quantity",
	"Stock Size",
	"Roll Number",
	"Last Updated",
	"Status",
}

// Filename builds the download name, e.g. products_export_20241225.csv.
func Filename(now time.Time, ext string) string {
	return fmt.Sprintf("products_export_%s.%s", now.Format("20060102"), ext)
}

func quoteAll(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// DimensionKeys returns the sorted union of dimension keys present in products.
func DimensionKeys(products []model.Product) []string {
	seen := make(map[string]bool)
	var keys []string
	for _, p := range products {
		for _, k := range p.Dimensions.Keys() {
			if !seen[k] {
				seen[k] = true
				keys = append(keys, k)
			}
		}
	}
	sort.Strings(keys)
	return keys
}

// Group is the products of one category, in selection order.
type Group struct {
	Category string
	Products []model.Product
}

// GroupByCategory splits products by category, groups ordered by first appearance.
func GroupByCategory(products []model.Product) []Group {
	index := make(map[string]int)
	var groups []Group
	for _, p := range products {
		i, ok := index[p.Category]
		if !ok {
			i = len(groups)
			index[p.Category] = i
			groups = append(groups, Group{Category: p.Category})
		}
		groups[i].Products = append(groups[i].Products, p)
	}
	return groups
}

// Header returns the full CSV header for products.
func Header(products []model.Product) []string {
	return append(append([]string{}, baseHeader...), DimensionKeys(products)...)
}

// Row renders one product under the given dimension keys.
func Row(p model.Product, dimensionKeys []string) []string {
	rec := classify.Classify(p)
	size := rec.Size
	if rec.SizeUnit != "" {
		size += " " + rec.SizeUnit
	}
	row := []string{
		rec.DisplayName,
		rec.Category,
		rec.Quantity + " [" + rec.QuantityUnit + "]",
		size,
		rec.RollNumber,
		rec.LastUpdated,
		rec.StockStatus,
	}
	for _, k := range dimensionKeys {
		row = append(row, p.Dimensions.String(k))
	}
	return row
}

// WriteCSV writes products as a BOM-prefixed UTF-8 CSV, grouped by category
// with a blank line between groups. It returns the number of product rows.
func WriteCSV(w io.Writer, products []model.Product) (int, error) {
	if len(products) == 0 {
		return 0, ErrNothingToExport
	}

	tw := transform.NewWriter(w, unicode.UTF8BOM.NewEncoder())
	bw := bufio.NewWriter(tw)

	keys := DimensionKeys(products)
	writeLine := func(fields []string) {
		quoted := make([]string, len(fields))
		for i, f := range fields {
			quoted[i] = quoteAll(f)
		}
		bw.WriteString(strings.Join(quoted, ",") + "\r\n")
	}

	writeLine(Header(products))
	rows := 0
	for i, g := range GroupByCategory(products) {
		if i > 0 {
			bw.WriteString("\r\n")
		}
		for _, p := range g.Products {
			writeLine(Row(p, keys))
			rows++
		}
	}

	if err := bw.Flush(); err != nil {
		return 0, fmt.Errorf("WriteCSV: %w", err)
	}
	if err := tw.Close(); err != nil {
		return 0, fmt.Errorf("WriteCSV: %w", err)
	}
	return rows, nil
}

var templateHeader = []string{
	"productType",
	"productName",
	"stockType",
	"length",
	"width",
	"thickness",
	"rollNumber",
	"numberOfPieces",
	"sqMtr",
	"importDate",
	"takenDate",
}

var templateSample = []string{
	"blankets",
	"Sample Blanket Product",
	"roll",
	"1000",
	"500",
	"2.5",
	"ROLL001",
	"",
	"50.00",
	"2024-12-25",
	"2024-12-25",
}

// TemplateHeader is the header row stock uploads must carry.
func TemplateHeader() []string {
	return append([]string{}, templateHeader...)
}

// WriteTemplate writes the stock import template with one sample row.
func WriteTemplate(w io.Writer) error {
	content := strings.Join(templateHeader, ",") + "\n" + strings.Join(templateSample, ",")
	if _, err := io.WriteString(w, content); err != nil {
		return fmt.Errorf("WriteTemplate: %w", err)
	}
	return nil
}
