package parsers

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrUnsupportedFile is returned for uploads that are neither CSV nor XLSX.
var ErrUnsupportedFile = errors.New("only .csv and .xlsx files are accepted")

var requiredStockHeaders = []string{"productType", "productName", "stockType"}

var isoDate = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// StockUploadRow is one data row of a stock import file.
type StockUploadRow struct {
	Line           int
	ProductType    string
	ProductName    string
	StockType      string
	Length         float64
	Width          float64
	Thickness      float64
	RollNumber     string
	NumberOfPieces int
	SqMtr          float64
	ImportDate     string
	TakenDate      string
}

// StockUploadReport summarises a parsed upload.
type StockUploadReport struct {
	Rows    []StockUploadRow
	Skipped []string
}

// ParseStockUpload reads a stock import file, choosing the format from the file extension.
func ParseStockUpload(filename string, content []byte) (StockUploadReport, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return ParseStockCSV(bytes.NewReader(content))
	case ".xlsx":
		return ParseStockXLSX(bytes.NewReader(content))
	default:
		return StockUploadReport{}, ErrUnsupportedFile
	}
}

// ParseStockCSV reads the CSV form of the stock import template.
func ParseStockCSV(r io.Reader) (StockUploadReport, error) {
	reader := csv.NewReader(SkipBOM(r))
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return StockUploadReport{}, fmt.Errorf("CSV file is empty")
	}
	if err != nil {
		return StockUploadReport{}, fmt.Errorf("failed to read CSV header: %w", err)
	}

	var records [][]string
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Printf("WARN: CSV line %d unreadable (skipped): %v", len(records)+2, err)
			records = append(records, nil)
			continue
		}
		records = append(records, rec)
	}
	return buildStockReport(header, records)
}

// ParseStockXLSX reads the first worksheet of an XLSX stock import file.
func ParseStockXLSX(r io.Reader) (StockUploadReport, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return StockUploadReport{}, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return StockUploadReport{}, fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return StockUploadReport{}, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return StockUploadReport{}, fmt.Errorf("sheet %q is empty", sheets[0])
	}
	return buildStockReport(rows[0], rows[1:])
}

func buildStockReport(header []string, records [][]string) (StockUploadReport, error) {
	colIndex, err := getColIndex(header, requiredStockHeaders)
	if err != nil {
		return StockUploadReport{}, err
	}

	var report StockUploadReport
	for i, rec := range records {
		line := i + 2
		if rec == nil {
			report.Skipped = append(report.Skipped, fmt.Sprintf("line %d: unreadable", line))
			continue
		}
		get := func(name string) string {
			idx, ok := colIndex[name]
			if ok && idx < len(rec) {
				return strings.TrimSpace(rec[idx])
			}
			return ""
		}
		if isBlank(rec) {
			continue
		}

		row := StockUploadRow{
			Line:        line,
			ProductType: get("productType"),
			ProductName: get("productName"),
			StockType:   strings.ToLower(get("stockType")),
			RollNumber:  get("rollNumber"),
			ImportDate:  get("importDate"),
			TakenDate:   get("takenDate"),
		}
		row.Length, _ = strconv.ParseFloat(get("length"), 64)
		row.Width, _ = strconv.ParseFloat(get("width"), 64)
		row.Thickness, _ = strconv.ParseFloat(get("thickness"), 64)
		row.SqMtr, _ = strconv.ParseFloat(get("sqMtr"), 64)
		row.NumberOfPieces, _ = strconv.Atoi(get("numberOfPieces"))

		if reason := validateStockRow(row); reason != "" {
			report.Skipped = append(report.Skipped, fmt.Sprintf("line %d: %s", line, reason))
			continue
		}
		report.Rows = append(report.Rows, row)
	}
	return report, nil
}

func isBlank(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

func validateStockRow(row StockUploadRow) string {
	switch {
	case row.ProductType == "":
		return "productType is required"
	case row.ProductName == "":
		return "productName is required"
	case row.StockType != "roll" && row.StockType != "pieces":
		return "stockType must be roll or pieces"
	case row.StockType == "roll" && (row.Length <= 0 || row.Width <= 0):
		return "length and width are required for roll"
	case row.StockType == "roll" && strings.EqualFold(row.ProductType, "blankets") && row.RollNumber == "":
		return "rollNumber is required for blanket rolls"
	case row.StockType == "pieces" && row.NumberOfPieces <= 0:
		return "numberOfPieces is required for pieces"
	case row.ImportDate != "" && !isoDate.MatchString(row.ImportDate):
		return "importDate must be YYYY-MM-DD"
	case row.TakenDate != "" && !isoDate.MatchString(row.TakenDate):
		return "takenDate must be YYYY-MM-DD"
	}
	return ""
}
