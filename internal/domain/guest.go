package domain

// Guest is one invitee as exposed to the client form. IDs are Airtable
// record IDs and are never minted by this service.
type Guest struct {
	ID                  string `json:"id"`
	Name                string `json:"name"`
	Surname             string `json:"surname,omitempty"`
	FamilyID            string `json:"familyId,omitempty"`
	Attending           bool   `json:"attending"`
	Email               string `json:"email,omitempty"`
	Phone               string `json:"phone,omitempty"`
	DietaryRestrictions string `json:"dietaryRestrictions,omitempty"`
	Notes               string `json:"notes,omitempty"`
	SubmittedAt         string `json:"submittedAt,omitempty"`
	Szertartas          bool   `json:"szertartas"`
	Lakodalom           bool   `json:"lakodalom"`
	Transfer            bool   `json:"transfer"`
}

// Family is the household grouping a guest belongs to. Only Email and
// Notes are ever written back.
type Family struct {
	ID        string   `json:"id"`
	MemberIDs []string `json:"memberIds"`
	Email     string   `json:"email,omitempty"`
	Notes     string   `json:"notes,omitempty"`
}

// VerifyResult is built fresh on every verify-name call and never stored.
type VerifyResult struct {
	Guest         Guest   `json:"guest"`
	FamilyID      string  `json:"familyId"`
	FamilyMembers []Guest `json:"familyMembers"`
	FamilyEmail   string  `json:"familyEmail,omitempty"`
	FamilyNotes   string  `json:"familyNotes,omitempty"`
}

// RSVPUpdate carries the sparse field set of a submit-RSVP request.
// Nil means the field was absent from the request and must not be
// written upstream.
type RSVPUpdate struct {
	Szertartas          *bool
	Lakodalom           *bool
	Transfer            *bool
	DietaryRestrictions *string
}

// IsEmpty reports whether the update names no fields at all.
func (u RSVPUpdate) IsEmpty() bool {
	return u.Szertartas == nil && u.Lakodalom == nil && u.Transfer == nil && u.DietaryRestrictions == nil
}

// FamilyUpdate is the optional household-level part of a submit-RSVP
// request. Empty strings are skipped on write.
type FamilyUpdate struct {
	Email string
	Notes string
}

// HasChanges reports whether there is anything worth writing.
func (u FamilyUpdate) HasChanges() bool {
	return u.Email != "" || u.Notes != ""
}

// RSVPRequest is the service-level form of a submit-RSVP call.
type RSVPRequest struct {
	GuestID  string
	Update   RSVPUpdate
	FamilyID string
	Family   FamilyUpdate
}
