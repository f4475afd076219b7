package workbook

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

var (
	// ErrBadPasswordOrFormat is returned when the workbook cannot be decrypted - the
	// underlying library does not reliably distinguish an incorrect password from an
	// unsupported container format so the two are collapsed into a single error.
	ErrBadPasswordOrFormat = errors.New("incorrect password or unsupported workbook format")

	// ErrSheetNotFound is returned when the decrypted workbook has no worksheet with
	// the requested name.
	ErrSheetNotFound = errors.New("worksheet not found")

	// ErrEmptySheet is returned when a worksheet has no data rows beneath the header.
	ErrEmptySheet = errors.New("worksheet has no data rows")
)

// Workbook wraps a decrypted spreadsheet held entirely in memory. The encrypted payload
// is opaque until Open succeeds; decryption writes no temporary files and makes no
// network calls.
type Workbook struct {
	xlsx *excelize.File
}

// Open decrypts payload with password and returns the opened workbook. Any failure to
// open the container is reported as ErrBadPasswordOrFormat.
func Open(payload []byte, password string) (*Workbook, error) {
	xlsx, err := excelize.OpenReader(bytes.NewReader(payload), excelize.Options{Password: password})
	if err != nil {
		return nil, fmt.Errorf("%w (%v)", ErrBadPasswordOrFormat, err)
	}

	return &Workbook{
		xlsx: xlsx,
	}, nil
}

// Sheets returns the worksheet names in workbook order.
func (w *Workbook) Sheets() []string {
	return w.xlsx.GetSheetList()
}

func (w *Workbook) Close() error {
	return w.xlsx.Close()
}

// Sheet extracts the named worksheet as a Table. The worksheet name is matched ignoring
// case and leading/trailing whitespace. Rows shorter than the header are padded with
// empty cells so that every record has the header width.
func (w *Workbook) Sheet(name string) (*Table, error) {
	title := ""
	for _, sheet := range w.xlsx.GetSheetList() {
		if normalise(sheet) == normalise(name) {
			title = sheet
			break
		}
	}

	if title == "" {
		return nil, fmt.Errorf("%w ('%s')", ErrSheetNotFound, name)
	}

	rows, err := w.xlsx.GetRows(title)
	if err != nil {
		return nil, fmt.Errorf("error reading worksheet '%s' (%v)", title, err)
	}

	if len(rows) < 2 {
		return nil, fmt.Errorf("%w ('%s')", ErrEmptySheet, title)
	}

	// .. header
	index := map[string]bool{}
	header := []string{}
	for _, v := range rows[0] {
		k := normalise(v)
		if index[k] {
			return nil, fmt.Errorf("duplicate column name '%s' in worksheet '%s'", v, title)
		}

		index[k] = true
		header = append(header, strings.TrimSpace(v))
	}

	// ... records
	records := [][]Cell{}
	for _, row := range rows[1:] {
		record := make([]Cell, len(header))
		for i := range header {
			v := ""
			if i < len(row) {
				v = row[i]
			}

			record[i] = Text(v)
		}

		records = append(records, record)
	}

	return &Table{
		Header:  header,
		Records: records,
	}, nil
}

// DecryptSheet opens payload with password and extracts the named worksheet in a single
// operation, for callers that need exactly one sheet.
func DecryptSheet(payload []byte, sheet string, password string) (*Table, error) {
	w, err := Open(payload, password)
	if err != nil {
		return nil, err
	}

	defer w.Close()

	return w.Sheet(sheet)
}

func normalise(v string) string {
	return strings.ToLower(strings.TrimSpace(v))
}
