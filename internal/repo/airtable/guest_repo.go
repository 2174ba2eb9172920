package airtable

import (
	"context"
	"fmt"
	"time"

	"github.com/horvathb/wedding-rsvp/internal/domain"
)

type GuestRepository struct {
	client *Client
	table  string
}

func NewGuestRepository(client *Client, table string) *GuestRepository {
	return &GuestRepository{
		client: client,
		table:  table,
	}
}

// FindByName looks up guests whose display name equals name, ignoring case.
func (r *GuestRepository) FindByName(ctx context.Context, name string) ([]domain.Guest, error) {
	records, err := r.client.ListRecords(ctx, r.table, ListOptions{
		FilterByFormula: EqualsFold(fieldName, name),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to look up guest by name: %w", err)
	}

	return guestsFromRecords(records), nil
}

// ListAll returns every guest record.
func (r *GuestRepository) ListAll(ctx context.Context) ([]domain.Guest, error) {
	records, err := r.client.ListRecords(ctx, r.table, ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to list guests: %w", err)
	}

	return guestsFromRecords(records), nil
}

// ListByFamily returns every guest whose family grouping equals familyID.
func (r *GuestRepository) ListByFamily(ctx context.Context, familyID string) ([]domain.Guest, error) {
	records, err := r.client.ListRecords(ctx, r.table, ListOptions{
		FilterByFormula: Equals(fieldFamily, familyID),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list guests by family: %w", err)
	}

	return guestsFromRecords(records), nil
}

// ListByIDs fetches the given guests in one batched call. Callers must
// check the returned cardinality themselves; IDs deleted upstream simply
// produce no record.
func (r *GuestRepository) ListByIDs(ctx context.Context, ids []string) ([]domain.Guest, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	records, err := r.client.ListRecords(ctx, r.table, ListOptions{
		FilterByFormula: RecordIDIn(ids),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch family members: %w", err)
	}

	return guestsFromRecords(records), nil
}

// Update applies the sparse RSVP update to one guest record. Fields absent
// from the update are not named in the PATCH payload and keep their stored
// values. The submission timestamp is always refreshed.
func (r *GuestRepository) Update(ctx context.Context, guestID string, update domain.RSVPUpdate) (*domain.Guest, error) {
	fields := map[string]interface{}{
		fieldSubmittedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if update.Szertartas != nil {
		fields[fieldSzertartas] = *update.Szertartas
	}
	if update.Lakodalom != nil {
		fields[fieldLakodalom] = *update.Lakodalom
	}
	if update.Transfer != nil {
		fields[fieldTransfer] = *update.Transfer
	}
	if update.DietaryRestrictions != nil {
		fields[fieldDietary] = *update.DietaryRestrictions
	}

	records, err := r.client.UpdateRecords(ctx, r.table, []Record{
		{ID: guestID, Fields: fields},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update guest: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("airtable returned no record for updated guest %s", guestID)
	}

	guest := guestFromRecord(records[0])
	return &guest, nil
}

func guestsFromRecords(records []Record) []domain.Guest {
	guests := make([]domain.Guest, 0, len(records))
	for _, rec := range records {
		guests = append(guests, guestFromRecord(rec))
	}
	return guests
}
