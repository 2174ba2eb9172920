package airtable

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/horvathb/wedding-rsvp/internal/domain"
)

func boolPtr(b bool) *bool { return &b }

func TestGuestReshapingDefaults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Airtable omits unchecked checkboxes and empty cells entirely
		json.NewEncoder(w).Encode(recordPage{
			Records: []Record{
				{ID: "rec1", Fields: map[string]interface{}{
					"Name":   "Kovács Anna",
					"Family": []interface{}{"recFam1"},
				}},
			},
		})
	}))
	defer srv.Close()

	repo := NewGuestRepository(NewClient("k", "b", WithBaseURL(srv.URL)), "Guests")

	guests, err := repo.ListAll(context.Background())
	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}
	if len(guests) != 1 {
		t.Fatalf("expected 1 guest, got %d", len(guests))
	}

	g := guests[0]
	if g.ID != "rec1" || g.Name != "Kovács Anna" {
		t.Errorf("unexpected guest identity: %+v", g)
	}
	if g.FamilyID != "recFam1" {
		t.Errorf("expected linked family recFam1, got %q", g.FamilyID)
	}
	if !g.Attending {
		t.Error("attending must default to true when the column is absent")
	}
	if g.Szertartas || g.Lakodalom || g.Transfer {
		t.Error("attendance flags must default to false when absent")
	}
	if g.DietaryRestrictions != "" || g.SubmittedAt != "" {
		t.Error("absent text columns must map to empty strings")
	}
}

func TestListByIDsBatchesIntoSingleCall(t *testing.T) {
	var calls int
	var gotFormula string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		gotFormula = r.URL.Query().Get("filterByFormula")
		json.NewEncoder(w).Encode(recordPage{
			Records: []Record{
				{ID: "rec1", Fields: map[string]interface{}{"Name": "A"}},
				{ID: "rec2", Fields: map[string]interface{}{"Name": "B"}},
			},
		})
	}))
	defer srv.Close()

	repo := NewGuestRepository(NewClient("k", "b", WithBaseURL(srv.URL)), "Guests")

	guests, err := repo.ListByIDs(context.Background(), []string{"rec1", "rec2"})
	if err != nil {
		t.Fatalf("ListByIDs failed: %v", err)
	}

	if calls != 1 {
		t.Errorf("expected a single batched call, got %d", calls)
	}
	if len(guests) != 2 {
		t.Errorf("expected 2 guests, got %d", len(guests))
	}
	want := `OR(RECORD_ID() = "rec1", RECORD_ID() = "rec2")`
	if gotFormula != want {
		t.Errorf("expected formula %q, got %q", want, gotFormula)
	}
}

func TestListByIDsEmptySkipsStoreCall(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no store call expected for an empty ID list")
	}))
	defer srv.Close()

	repo := NewGuestRepository(NewClient("k", "b", WithBaseURL(srv.URL)), "Guests")

	guests, err := repo.ListByIDs(context.Background(), nil)
	if err != nil {
		t.Fatalf("ListByIDs failed: %v", err)
	}
	if len(guests) != 0 {
		t.Errorf("expected no guests, got %d", len(guests))
	}
}

func TestUpdateWritesOnlyPresentFields(t *testing.T) {
	var gotBody updateRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Fatalf("failed to decode body: %v", err)
		}
		json.NewEncoder(w).Encode(recordPage{
			Records: []Record{
				{ID: "rec123", Fields: map[string]interface{}{
					"Name":                 "Kovács Anna",
					"Lakodalom":            false,
					"Dietary Restrictions": "vegetarian",
				}},
			},
		})
	}))
	defer srv.Close()

	repo := NewGuestRepository(NewClient("k", "b", WithBaseURL(srv.URL)), "Guests")

	guest, err := repo.Update(context.Background(), "rec123", domain.RSVPUpdate{
		Lakodalom: boolPtr(false),
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	if len(gotBody.Records) != 1 {
		t.Fatalf("expected 1 record in payload, got %d", len(gotBody.Records))
	}
	fields := gotBody.Records[0].Fields
	if _, present := fields["Lakodalom"]; !present {
		t.Error("named field missing from update payload")
	}
	if _, present := fields["Dietary Restrictions"]; present {
		t.Error("omitted dietary note must not be written (would clear the stored value)")
	}
	if _, present := fields["Szertartas"]; present {
		t.Error("omitted szertartas flag must not be written")
	}
	if _, present := fields["Submitted At"]; !present {
		t.Error("submission timestamp must be refreshed on every update")
	}

	// The echoed guest reflects the stored values, not the input
	if guest.DietaryRestrictions != "vegetarian" {
		t.Errorf("expected stored dietary note echoed back, got %q", guest.DietaryRestrictions)
	}
}

func TestFamilyUpdateContactSkipsEmptyFields(t *testing.T) {
	var gotBody updateRequest
	var calls int

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Fatalf("failed to decode body: %v", err)
		}
		json.NewEncoder(w).Encode(recordPage{Records: gotBody.Records})
	}))
	defer srv.Close()

	repo := NewFamilyRepository(NewClient("k", "b", WithBaseURL(srv.URL)), "Families")

	err := repo.UpdateContact(context.Background(), "recFam1", domain.FamilyUpdate{
		Email: "family@example.com",
	})
	if err != nil {
		t.Fatalf("UpdateContact failed: %v", err)
	}

	fields := gotBody.Records[0].Fields
	if fields["Email"] != "family@example.com" {
		t.Errorf("expected email in payload, got %v", fields)
	}
	if _, present := fields["Notes"]; present {
		t.Error("empty notes must not be written")
	}

	// Nothing to write at all: no store call
	if err := repo.UpdateContact(context.Background(), "recFam1", domain.FamilyUpdate{}); err != nil {
		t.Fatalf("empty UpdateContact failed: %v", err)
	}
	if calls != 1 {
		t.Errorf("expected no store call for an empty update, got %d calls", calls)
	}
}

func TestEscapeValue(t *testing.T) {
	got := Equals("Name", `O"Brien`)
	if !strings.Contains(got, `\"Brien`) {
		t.Errorf("quote not escaped in formula: %q", got)
	}
}
