package gdrive

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

func store(t *testing.T, handler http.Handler) (*Store, func()) {
	srv := httptest.NewServer(handler)

	service, err := drive.NewService(context.Background(),
		option.WithEndpoint(srv.URL),
		option.WithoutAuthentication())

	if err != nil {
		srv.Close()
		t.Fatalf("Unexpected error creating Drive client (%v)", err)
	}

	return NewStore(service), srv.Close
}

func TestNewest(t *testing.T) {
	var query string
	var order string

	s, teardown := store(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query().Get("q")
		order = r.URL.Query().Get("orderBy")

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"files":[{"id":"file1","name":"東大特進 20250531.xlsx","modifiedTime":"2025-05-31T09:00:00Z"}]}`))
	}))

	defer teardown()

	src, err := s.Newest(context.Background(), "in", "東大特進")
	if err != nil {
		t.Fatalf("Unexpected error returned from Newest (%v)", err)
	}

	if src.ID != "file1" || src.Name != "東大特進 20250531.xlsx" {
		t.Errorf("Incorrect source\n   got: %+v\n", src)
	}

	if expected := time.Date(2025, time.May, 31, 9, 0, 0, 0, time.UTC); !src.Modified.Equal(expected) {
		t.Errorf("Incorrect modified timestamp\n   expected: %v\n   got:      %v\n", expected, src.Modified)
	}

	if !strings.Contains(query, "'in' in parents") || !strings.Contains(query, "trashed = false") || !strings.Contains(query, "name contains '東大特進'") {
		t.Errorf("Incorrect query\n   got: %s\n", query)
	}

	if order != "name desc" {
		t.Errorf("Incorrect ordering\n   expected: %v\n   got:      %v\n", "name desc", order)
	}
}

func TestNewestWithNoMatch(t *testing.T) {
	s, teardown := store(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"files":[]}`))
	}))

	defer teardown()

	src, err := s.Newest(context.Background(), "in", "東大特進")
	if err != nil {
		t.Fatalf("Unexpected error returned from Newest (%v)", err)
	}

	if src.ID != "" {
		t.Errorf("Expected zero source for empty listing, got %+v", src)
	}
}

func TestNewestRejectsNonPrefixMatch(t *testing.T) {
	s, teardown := store(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"files":[{"id":"file1","name":"報告 東大特進.xlsx"}]}`))
	}))

	defer teardown()

	src, err := s.Newest(context.Background(), "in", "東大特進")
	if err != nil {
		t.Fatalf("Unexpected error returned from Newest (%v)", err)
	}

	if src.ID != "" {
		t.Errorf("Expected zero source for a 'contains' match that is not a prefix match, got %+v", src)
	}
}

func TestFetch(t *testing.T) {
	payload := bytes.Repeat([]byte("workbook"), 65536)

	s, teardown := store(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("alt") != "media" {
			http.NotFound(w, r)
			return
		}

		w.Write(payload)
	}))

	defer teardown()

	b, err := s.Fetch(context.Background(), "file1")
	if err != nil {
		t.Fatalf("Unexpected error returned from Fetch (%v)", err)
	}

	if !bytes.Equal(b, payload) {
		t.Errorf("Downloaded payload does not match served payload (%v bytes v %v bytes)", len(b), len(payload))
	}
}
