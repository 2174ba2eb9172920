package airtable

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestListRecordsFollowsPagination(t *testing.T) {
	var requests []string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("expected bearer auth header, got %q", got)
		}
		requests = append(requests, r.URL.RawQuery)

		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("offset") == "" {
			json.NewEncoder(w).Encode(recordPage{
				Records: []Record{
					{ID: "rec1", Fields: map[string]interface{}{"Name": "A"}},
					{ID: "rec2", Fields: map[string]interface{}{"Name": "B"}},
				},
				Offset: "page2",
			})
			return
		}
		json.NewEncoder(w).Encode(recordPage{
			Records: []Record{
				{ID: "rec3", Fields: map[string]interface{}{"Name": "C"}},
			},
		})
	}))
	defer srv.Close()

	client := NewClient("test-key", "appBase", WithBaseURL(srv.URL))

	records, err := client.ListRecords(context.Background(), "Guests", ListOptions{})
	if err != nil {
		t.Fatalf("ListRecords failed: %v", err)
	}

	if len(records) != 3 {
		t.Fatalf("expected 3 records across pages, got %d", len(records))
	}
	if len(requests) != 2 {
		t.Fatalf("expected 2 requests, got %d", len(requests))
	}
}

func TestListRecordsSendsFilterFormula(t *testing.T) {
	var gotFormula string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotFormula = r.URL.Query().Get("filterByFormula")
		json.NewEncoder(w).Encode(recordPage{})
	}))
	defer srv.Close()

	client := NewClient("test-key", "appBase", WithBaseURL(srv.URL))

	formula := EqualsFold("Name", "Kovács Anna")
	if _, err := client.ListRecords(context.Background(), "Guests", ListOptions{FilterByFormula: formula}); err != nil {
		t.Fatalf("ListRecords failed: %v", err)
	}

	want := `LOWER({Name}) = "kovács anna"`
	if gotFormula != want {
		t.Errorf("expected formula %q, got %q", want, gotFormula)
	}
}

func TestUpdateRecordsSendsOnlyNamedFields(t *testing.T) {
	var gotBody updateRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch {
			t.Errorf("expected PATCH, got %s", r.Method)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Fatalf("failed to decode request body: %v", err)
		}
		json.NewEncoder(w).Encode(recordPage{Records: gotBody.Records})
	}))
	defer srv.Close()

	client := NewClient("test-key", "appBase", WithBaseURL(srv.URL))

	records, err := client.UpdateRecords(context.Background(), "Guests", []Record{
		{ID: "rec123", Fields: map[string]interface{}{"Szertartas": true}},
	})
	if err != nil {
		t.Fatalf("UpdateRecords failed: %v", err)
	}

	if len(records) != 1 {
		t.Fatalf("expected 1 record back, got %d", len(records))
	}
	if len(gotBody.Records) != 1 || gotBody.Records[0].ID != "rec123" {
		t.Fatalf("unexpected update payload: %+v", gotBody.Records)
	}
	if _, present := gotBody.Records[0].Fields["Dietary Restrictions"]; present {
		t.Error("unnamed field must not appear in the update payload")
	}
}

func TestErrorMessageSurfaced(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"error":{"type":"INVALID_REQUEST","message":"Unknown field name"}}`))
	}))
	defer srv.Close()

	client := NewClient("test-key", "appBase", WithBaseURL(srv.URL))

	_, err := client.ListRecords(context.Background(), "Guests", ListOptions{})
	if err == nil {
		t.Fatal("expected error for non-success status")
	}
	if want := "Unknown field name"; !strings.Contains(err.Error(), want) {
		t.Errorf("expected upstream message %q in error, got %q", want, err.Error())
	}
}

func TestErrorWithoutBodyStillFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient("test-key", "appBase", WithBaseURL(srv.URL))

	if _, err := client.GetRecord(context.Background(), "Families", "recFam"); err == nil {
		t.Fatal("expected error for non-success status")
	}
}
