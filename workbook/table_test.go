package workbook

import (
	"testing"
	"time"
)

func TestCellRendering(t *testing.T) {
	tests := []struct {
		cell     Cell
		expected string
	}{
		{Text("東大特進"), "東大特進"},
		{Text(""), ""},
		{Number(7), "7"},
		{Number(1234.5), "1234.5"},
		{Number(0.1), "0.1"},
		{Date(time.Date(2025, time.June, 1, 14, 30, 0, 0, time.UTC)), "2025-06-01"},
	}

	for _, test := range tests {
		if v := test.cell.String(); v != test.expected {
			t.Errorf("Incorrect cell rendering\n   expected: %v\n   got:      %v\n", test.expected, v)
		}
	}
}
