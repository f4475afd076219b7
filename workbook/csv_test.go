package workbook

import (
	"bytes"
	"encoding/csv"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestMakeCSV(t *testing.T) {
	expected := "\ufeffName,School,Requested\n山田,東京,Y\n"

	table := Table{
		Header: []string{"Name", "School", "Requested"},
		Records: [][]Cell{
			{Text("山田"), Text("東京"), Text("Y")},
		},
	}

	var b bytes.Buffer

	if err := MakeCSV(&b, &table); err != nil {
		t.Fatalf("Unexpected error returned from MakeCSV (%v)", err)
	}

	if b.String() != expected {
		t.Errorf("Incorrect CSV\n   expected: %q\n   got:      %q\n", expected, b.String())
	}
}

func TestMakeCSVQuotesOnlyWhenRequired(t *testing.T) {
	expected := "\ufeffName,Notes\n\"Smith, J\",plain\nYamada,\"say \"\"hi\"\"\"\nSuzuki,\"line\nbreak\"\n"

	table := Table{
		Header: []string{"Name", "Notes"},
		Records: [][]Cell{
			{Text("Smith, J"), Text("plain")},
			{Text("Yamada"), Text(`say "hi"`)},
			{Text("Suzuki"), Text("line\nbreak")},
		},
	}

	var b bytes.Buffer

	if err := MakeCSV(&b, &table); err != nil {
		t.Fatalf("Unexpected error returned from MakeCSV (%v)", err)
	}

	if b.String() != expected {
		t.Errorf("Incorrect CSV\n   expected: %q\n   got:      %q\n", expected, b.String())
	}
}

func TestMakeCSVRoundTrip(t *testing.T) {
	table := Table{
		Header: []string{"Name", "Count", "Date", "Notes"},
		Records: [][]Cell{
			{Text("山田"), Number(3), Date(time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)), Text("a,b")},
			{Text("Suzuki"), Number(12.5), Date(time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC)), Text(`"quoted"`)},
		},
	}

	expected := [][]string{
		{"Name", "Count", "Date", "Notes"},
		{"山田", "3", "2025-06-01", "a,b"},
		{"Suzuki", "12.5", "2025-06-02", `"quoted"`},
	}

	var b bytes.Buffer

	if err := MakeCSV(&b, &table); err != nil {
		t.Fatalf("Unexpected error returned from MakeCSV (%v)", err)
	}

	r := csv.NewReader(strings.NewReader(strings.TrimPrefix(b.String(), "\ufeff")))

	records, err := r.ReadAll()
	if err != nil {
		t.Fatalf("Unexpected error re-parsing CSV (%v)", err)
	}

	if !reflect.DeepEqual(records, expected) {
		t.Errorf("Incorrect round-tripped records\n   expected: %v\n   got:      %v\n", expected, records)
	}
}

func TestMakeCSVIsDeterministic(t *testing.T) {
	table := Table{
		Header: []string{"Name", "School"},
		Records: [][]Cell{
			{Text("山田"), Text("東京")},
			{Text("Suzuki"), Text("Osaka")},
		},
	}

	var p bytes.Buffer
	var q bytes.Buffer

	if err := MakeCSV(&p, &table); err != nil {
		t.Fatalf("Unexpected error returned from MakeCSV (%v)", err)
	}

	if err := MakeCSV(&q, &table); err != nil {
		t.Fatalf("Unexpected error returned from MakeCSV (%v)", err)
	}

	if !bytes.Equal(p.Bytes(), q.Bytes()) {
		t.Errorf("Encoding the same table twice produced different output\n   first:  %q\n   second: %q\n", p.String(), q.String())
	}
}
