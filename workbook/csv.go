package workbook

import (
	"encoding/csv"
	"fmt"
	"io"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// MakeCSV serializes a table as comma separated text - one header row followed by one
// row per record, in the original row and column order. The output is prefixed with a
// UTF-8 byte order mark so that spreadsheet applications in the destination locale
// render non-ASCII text correctly. Identical tables always produce byte-identical
// output.
func MakeCSV(f io.Writer, table *Table) error {
	bom := transform.NewWriter(f, unicode.UTF8BOM.NewEncoder())

	w := csv.NewWriter(bom)

	if err := w.Write(table.Header); err != nil {
		return fmt.Errorf("error writing CSV header (%v)", err)
	}

	for _, record := range table.Records {
		row := make([]string, len(record))
		for i, cell := range record {
			row[i] = cell.String()
		}

		if err := w.Write(row); err != nil {
			return fmt.Errorf("error writing CSV record (%v)", err)
		}
	}

	w.Flush()

	if err := w.Error(); err != nil {
		return fmt.Errorf("error writing CSV (%v)", err)
	}

	return nil
}
