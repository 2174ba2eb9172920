package airtable

import (
	"github.com/horvathb/wedding-rsvp/internal/domain"
)

// Airtable column names. These mirror the spreadsheet the couple maintains;
// the rest of the codebase only ever sees the domain vocabulary.
const (
	fieldName        = "Name"
	fieldSurname     = "Surname"
	fieldFamily      = "Family"
	fieldAttending   = "Attending"
	fieldEmail       = "Email"
	fieldPhone       = "Phone"
	fieldSzertartas  = "Szertartas"
	fieldLakodalom   = "Lakodalom"
	fieldDietary     = "Dietary Restrictions"
	fieldTransfer    = "Transfer"
	fieldNotes       = "Notes"
	fieldSubmittedAt = "Submitted At"

	familyFieldGuests = "Guests"
	familyFieldEmail  = "Email"
	familyFieldNotes  = "Notes"
)

// stringField returns the column as a string, or "" when absent or of an
// unexpected type.
func stringField(fields map[string]interface{}, key string) string {
	if v, ok := fields[key].(string); ok {
		return v
	}
	return ""
}

// boolField returns the column as a bool. Airtable omits unchecked
// checkboxes from the response entirely, so absence falls back to def.
func boolField(fields map[string]interface{}, key string, def bool) bool {
	if v, ok := fields[key].(bool); ok {
		return v
	}
	return def
}

// linkedRecordIDs returns the record IDs of a linked-record column,
// preserving their stored order.
func linkedRecordIDs(fields map[string]interface{}, key string) []string {
	raw, ok := fields[key].([]interface{})
	if !ok {
		return nil
	}

	ids := make([]string, 0, len(raw))
	for _, v := range raw {
		if id, ok := v.(string); ok {
			ids = append(ids, id)
		}
	}
	return ids
}

// firstLinkedRecordID returns the first ID of a linked-record column, or "".
// Bases that store the grouping as a plain text column are handled too.
func firstLinkedRecordID(fields map[string]interface{}, key string) string {
	ids := linkedRecordIDs(fields, key)
	if len(ids) > 0 {
		return ids[0]
	}
	return stringField(fields, key)
}

// guestFromRecord reshapes an Airtable guest row into the client contract.
// Missing columns map to defined defaults instead of propagating null.
func guestFromRecord(rec Record) domain.Guest {
	return domain.Guest{
		ID:                  rec.ID,
		Name:                stringField(rec.Fields, fieldName),
		Surname:             stringField(rec.Fields, fieldSurname),
		FamilyID:            firstLinkedRecordID(rec.Fields, fieldFamily),
		Attending:           boolField(rec.Fields, fieldAttending, true),
		Email:               stringField(rec.Fields, fieldEmail),
		Phone:               stringField(rec.Fields, fieldPhone),
		DietaryRestrictions: stringField(rec.Fields, fieldDietary),
		Notes:               stringField(rec.Fields, fieldNotes),
		SubmittedAt:         stringField(rec.Fields, fieldSubmittedAt),
		Szertartas:          boolField(rec.Fields, fieldSzertartas, false),
		Lakodalom:           boolField(rec.Fields, fieldLakodalom, false),
		Transfer:            boolField(rec.Fields, fieldTransfer, false),
	}
}

func familyFromRecord(rec Record) domain.Family {
	return domain.Family{
		ID:        rec.ID,
		MemberIDs: linkedRecordIDs(rec.Fields, familyFieldGuests),
		Email:     stringField(rec.Fields, familyFieldEmail),
		Notes:     stringField(rec.Fields, familyFieldNotes),
	}
}
