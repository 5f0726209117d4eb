package parsers

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const templateCSV = "\xEF\xBB\xBFproductType,productName,stockType,length,width,thickness,rollNumber,numberOfPieces,sqMtr,importDate,takenDate\n" +
	"blankets,Sample Blanket Product,roll,1000,500,2.5,ROLL001,,50.00,2024-12-25,2024-12-25\n" +
	"blankets,Cut Blanket,pieces,,,1.95,,6,,,\n" +
	",,,,,,,,,,\n" +
	"blankets,No Roll,roll,1000,500,2.5,,,,,\n" +
	"film,Bad Date,roll,10,1,0.1,,,,25/12/2024,\n"

func TestParseStockCSV(t *testing.T) {
	report, err := ParseStockCSV(strings.NewReader(templateCSV))
	require.NoError(t, err)

	require.Len(t, report.Rows, 2)
	first := report.Rows[0]
	assert.Equal(t, 2, first.Line)
	assert.Equal(t, "roll", first.StockType)
	assert.Equal(t, 1000.0, first.Length)
	assert.Equal(t, "ROLL001", first.RollNumber)
	assert.Equal(t, 6, report.Rows[1].NumberOfPieces)

	assert.Equal(t, []string{
		"line 6: rollNumber is required for blanket rolls",
		"line 7: importDate must be YYYY-MM-DD",
	}, report.Skipped)
}

func TestParseStockCSVMissingHeader(t *testing.T) {
	_, err := ParseStockCSV(strings.NewReader("productName,stockType\nx,roll\n"))
	assert.EqualError(t, err, "required header not found: productType")

	_, err = ParseStockCSV(strings.NewReader(""))
	assert.Error(t, err)
}

func TestParseStockXLSX(t *testing.T) {
	f := excelize.NewFile()
	rows := [][]interface{}{
		{"productType", "productName", "stockType", "numberOfPieces"},
		{"blankets", "Cut", "pieces", 4},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	require.NoError(t, f.Close())

	report, err := ParseStockUpload("stock.XLSX", buf.Bytes())
	require.NoError(t, err)
	require.Len(t, report.Rows, 1)
	assert.Equal(t, "Cut", report.Rows[0].ProductName)
	assert.Equal(t, 4, report.Rows[0].NumberOfPieces)
}

func TestParseStockUploadRejectsOtherFormats(t *testing.T) {
	_, err := ParseStockUpload("stock.xls", []byte("x"))
	assert.ErrorIs(t, err, ErrUnsupportedFile)
}

func TestSkipBOM(t *testing.T) {
	var buf bytes.Buffer
	_, err := buf.ReadFrom(SkipBOM(strings.NewReader("\xEF\xBB\xBFabc")))
	require.NoError(t, err)
	assert.Equal(t, "abc", buf.String())

	buf.Reset()
	_, err = buf.ReadFrom(SkipBOM(strings.NewReader("ab")))
	require.NoError(t, err)
	assert.Equal(t, "ab", buf.String())
}
