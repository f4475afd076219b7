package delivery

import (
	"fmt"
	"strings"
	"time"
)

// Artifact is an encoded CSV file ready for delivery - the BOM-prefixed CSV bytes, the
// derived file name and an optional destination path segment (e.g. a year-month bucket
// below the destination folder). Immutable once produced.
type Artifact struct {
	Filename string
	Path     string
	Data     []byte
}

var extensions = []string{".xlsx", ".xlsm", ".xls"}

// DeriveName derives the output CSV file name from the source workbook name, the
// worksheet name and the run date:
//
//	secure-<yymmdd>_<source without extension>[_<sheet>].csv
//
// The date segment is the date the pipeline runs, not any date embedded in the source
// file name.
func DeriveName(source string, sheet string, date time.Time) string {
	name := source
	for _, ext := range extensions {
		if strings.HasSuffix(strings.ToLower(name), ext) {
			name = name[:len(name)-len(ext)]
			break
		}
	}

	if sheet != "" {
		return fmt.Sprintf("secure-%s_%s_%s.csv", date.Format("060102"), name, sheet)
	}

	return fmt.Sprintf("secure-%s_%s.csv", date.Format("060102"), name)
}

// Stamp appends an _HHMMSS segment before the .csv extension so that repeated runs on
// the same day never collide at the destination.
func Stamp(filename string, at time.Time) string {
	return fmt.Sprintf("%s_%s.csv", strings.TrimSuffix(filename, ".csv"), at.Format("150405"))
}

// DatePath returns the year-month destination bucket for a run date.
func DatePath(date time.Time) string {
	return date.Format("2006-01")
}
