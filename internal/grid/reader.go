package grid

import (
	"bytes"
	"encoding/csv"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"ctreport/pkg/contracts/domain"
)

// ReadGrid parses uploaded report bytes into a raw cell grid. The filename's
// extension picks the strategy: .csv is parsed as delimited text, everything
// else as an Excel workbook. The grid is produced once per upload; callers
// discard it after the table is loaded.
func ReadGrid(filename string, r io.Reader) (domain.Grid, error) {
	if strings.EqualFold(filepath.Ext(filename), ".csv") {
		return readCSV(r)
	}
	return readWorkbook(r)
}

// readCSV parses delimited text with a variable field count per record.
// Monitoring exports from older plant software arrive as Windows-1252, so
// invalid UTF-8 is re-decoded before parsing rather than rejected.
func readCSV(r io.Reader) (domain.Grid, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, sourceFormatError("read csv", err)
	}

	if !utf8.Valid(data) {
		slog.Debug("csv upload is not valid UTF-8, decoding as Windows-1252")
		decoded, _, err := transform.Bytes(charmap.Windows1252.NewDecoder(), data)
		if err != nil {
			return nil, sourceFormatError("decode csv", err)
		}
		data = decoded
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, sourceFormatError("parse csv", err)
	}

	return domain.Grid(records), nil
}

// readWorkbook opens an Excel workbook and returns the rows of the first
// sheet that has any content. An empty workbook is a structurally valid,
// empty grid; the quality layer reports the absence of data, not this one.
func readWorkbook(r io.Reader) (domain.Grid, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, sourceFormatError("open workbook", err)
	}
	defer f.Close()

	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			slog.Warn("skipping unreadable sheet",
				slog.String("sheet", sheet),
				slog.String("error", err.Error()))
			continue
		}
		if len(rows) > 0 {
			return domain.Grid(rows), nil
		}
	}

	return domain.Grid{}, nil
}
