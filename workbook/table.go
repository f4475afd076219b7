package workbook

import (
	"strconv"
	"time"
)

// Table is an ordered tabular dataset extracted from a single worksheet - a header row
// of unique column names and zero or more records in the original row and column order.
type Table struct {
	Header  []string
	Records [][]Cell
}

type kind int

const (
	text kind = iota
	number
	date
)

// Cell is a single tagged worksheet value - text, number or date - with a stable
// textual rendering.
type Cell struct {
	kind   kind
	text   string
	number float64
	date   time.Time
}

func Text(v string) Cell {
	return Cell{kind: text, text: v}
}

func Number(v float64) Cell {
	return Cell{kind: number, number: v}
}

func Date(v time.Time) Cell {
	return Cell{kind: date, date: v}
}

// String renders the cell value in a locale-stable form - numbers with the shortest
// representation that round-trips and dates as ISO-8601 calendar dates.
func (c Cell) String() string {
	switch c.kind {
	case number:
		return strconv.FormatFloat(c.number, 'f', -1, 64)

	case date:
		return c.date.Format("2006-01-02")

	default:
		return c.text
	}
}
