package airtable

import (
	"context"
	"fmt"

	"github.com/horvathb/wedding-rsvp/internal/domain"
)

type FamilyRepository struct {
	client *Client
	table  string
}

func NewFamilyRepository(client *Client, table string) *FamilyRepository {
	return &FamilyRepository{
		client: client,
		table:  table,
	}
}

// GetByID fetches one family record.
func (r *FamilyRepository) GetByID(ctx context.Context, familyID string) (*domain.Family, error) {
	rec, err := r.client.GetRecord(ctx, r.table, familyID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch family %s: %w", familyID, err)
	}

	family := familyFromRecord(*rec)
	return &family, nil
}

// UpdateContact writes the shared email/notes columns. Empty values are
// skipped so a submission can set one without clearing the other.
func (r *FamilyRepository) UpdateContact(ctx context.Context, familyID string, update domain.FamilyUpdate) error {
	fields := map[string]interface{}{}
	if update.Email != "" {
		fields[familyFieldEmail] = update.Email
	}
	if update.Notes != "" {
		fields[familyFieldNotes] = update.Notes
	}
	if len(fields) == 0 {
		return nil
	}

	_, err := r.client.UpdateRecords(ctx, r.table, []Record{
		{ID: familyID, Fields: fields},
	})
	if err != nil {
		return fmt.Errorf("failed to update family %s: %w", familyID, err)
	}
	return nil
}
