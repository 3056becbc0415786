package grid

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestReadGridCSV(t *testing.T) {
	src := strings.Join([]string{
		"CT Daily Monitoring",
		"Parameters,Date,pH,TDS",
		`Control Limit,,7.0-8.5,"< 500"`,
		",2024-01-01,7.2,410",
	}, "\n")

	g, err := ReadGrid("report.csv", strings.NewReader(src))
	require.NoError(t, err)

	require.Len(t, g, 4)
	assert.Equal(t, []string{"CT Daily Monitoring"}, g[0])
	assert.Equal(t, []string{"Parameters", "Date", "pH", "TDS"}, g[1])
	assert.Equal(t, []string{"Control Limit", "", "7.0-8.5", "< 500"}, g[2])
	assert.Equal(t, []string{"", "2024-01-01", "7.2", "410"}, g[3])
}

func TestReadGridCSVWindows1252(t *testing.T) {
	// 0x96 is an en-dash in Windows-1252 and invalid UTF-8 on its own.
	src := []byte("Date,pH\n2024-01-01,7.0\nControl Limit,6.5\x968.5\n")

	g, err := ReadGrid("report.CSV", bytes.NewReader(src))
	require.NoError(t, err)
	require.Len(t, g, 3)
	assert.Equal(t, "6.5–8.5", g[2][1])
}

func TestReadGridCSVStructuralFailure(t *testing.T) {
	// An unterminated quoted field cannot be parsed as a grid.
	src := "Date,pH\n\"2024-01-01,7.0\n"

	_, err := ReadGrid("report.csv", strings.NewReader(src))
	require.Error(t, err)

	var sfe *SourceFormatError
	require.ErrorAs(t, err, &sfe)
	assert.Equal(t, "parse csv", sfe.Op)
	assert.Error(t, sfe.Unwrap())
}

func TestReadGridWorkbook(t *testing.T) {
	tmpDir := t.TempDir()

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	cells := [][]interface{}{
		{"CT Daily Monitoring"},
		{"Parameters", "Date", "pH"},
		{"Control Limit", "", "7.0-8.5"},
		{"", "2024-01-01", 7.2},
	}
	for r, row := range cells {
		for c, val := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, cell, val))
		}
	}

	path := filepath.Join(tmpDir, "report.xlsx")
	require.NoError(t, f.SaveAs(path))

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	g, err := ReadGrid("report.xlsx", file)
	require.NoError(t, err)
	require.Len(t, g, 4)
	assert.Equal(t, "Parameters", g[1][0])
	assert.Equal(t, "7.0-8.5", g[2][2])
	assert.Equal(t, "7.2", g[3][2])
}

func TestReadGridWorkbookGarbage(t *testing.T) {
	_, err := ReadGrid("report.xlsx", strings.NewReader("this is not a zip archive"))
	require.Error(t, err)

	var sfe *SourceFormatError
	require.ErrorAs(t, err, &sfe)
	assert.Equal(t, "open workbook", sfe.Op)
}

func TestReadGridEmptyWorkbook(t *testing.T) {
	tmpDir := t.TempDir()

	f := excelize.NewFile()
	path := filepath.Join(tmpDir, "empty.xlsx")
	require.NoError(t, f.SaveAs(path))

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	g, err := ReadGrid("empty.xlsx", file)
	require.NoError(t, err)
	assert.Empty(t, g)
}
