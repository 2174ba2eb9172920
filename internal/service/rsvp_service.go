package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/horvathb/wedding-rsvp/internal/domain"
	"github.com/horvathb/wedding-rsvp/internal/platform/mailer"
	"github.com/horvathb/wedding-rsvp/pkg/events"
	"github.com/horvathb/wedding-rsvp/pkg/logger"
)

var (
	// ErrGuestNotFound is the legitimate "no such guest" outcome of a
	// name lookup, distinct from a store failure.
	ErrGuestNotFound = errors.New("guest not found")

	// ErrFamilyIntegrity means a guest's family reference is absent,
	// dangling, or resolves to an incomplete member set. It indicates
	// corrupted spreadsheet data, not user error.
	ErrFamilyIntegrity = errors.New("family data integrity error")
)

// GuestRepository is the guest-table slice of the backing store.
type GuestRepository interface {
	FindByName(ctx context.Context, name string) ([]domain.Guest, error)
	ListAll(ctx context.Context) ([]domain.Guest, error)
	ListByFamily(ctx context.Context, familyID string) ([]domain.Guest, error)
	ListByIDs(ctx context.Context, ids []string) ([]domain.Guest, error)
	Update(ctx context.Context, guestID string, update domain.RSVPUpdate) (*domain.Guest, error)
}

// FamilyRepository is the family-table slice of the backing store.
type FamilyRepository interface {
	GetByID(ctx context.Context, familyID string) (*domain.Family, error)
	UpdateContact(ctx context.Context, familyID string, update domain.FamilyUpdate) error
}

type RSVPService interface {
	VerifyName(ctx context.Context, name string) (*domain.VerifyResult, error)
	SubmitRSVP(ctx context.Context, req *domain.RSVPRequest) (*domain.Guest, error)
	ListGuests(ctx context.Context) ([]domain.Guest, error)
	ListFamilyGuests(ctx context.Context, familyID string) ([]domain.Guest, error)
}

type rsvpService struct {
	guests   GuestRepository
	families FamilyRepository
	mail     mailer.Service
	bus      events.Publisher
}

func NewRSVPService(
	guests GuestRepository,
	families FamilyRepository,
	mail mailer.Service,
	bus events.Publisher,
) RSVPService {
	return &rsvpService{
		guests:   guests,
		families: families,
		mail:     mail,
		bus:      bus,
	}
}

// VerifyName resolves a display name to a guest and the guest's full
// family member list. Read-only: two or three store calls, no writes.
func (s *rsvpService) VerifyName(ctx context.Context, name string) (*domain.VerifyResult, error) {
	matches, err := s.guests.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, ErrGuestNotFound
	}

	guest := matches[0]
	if guest.FamilyID == "" {
		return nil, fmt.Errorf("%w: guest %s has no family grouping", ErrFamilyIntegrity, guest.ID)
	}

	family, err := s.families.GetByID(ctx, guest.FamilyID)
	if err != nil {
		return nil, fmt.Errorf("%w: family %s could not be resolved: %v", ErrFamilyIntegrity, guest.FamilyID, err)
	}
	if len(family.MemberIDs) == 0 {
		return nil, fmt.Errorf("%w: family %s has an empty member list", ErrFamilyIntegrity, family.ID)
	}

	members, err := s.guests.ListByIDs(ctx, family.MemberIDs)
	if err != nil {
		return nil, err
	}
	// A member deleted upstream makes the set incomplete. Downstream
	// per-member submission assumes a full set, so fail instead of
	// returning partial data.
	if len(members) != len(family.MemberIDs) {
		return nil, fmt.Errorf("%w: family %s lists %d members but %d resolved",
			ErrFamilyIntegrity, family.ID, len(family.MemberIDs), len(members))
	}

	s.publish(ctx, events.RSVPVerified, events.RSVPVerifiedEvent{
		GuestID:    guest.ID,
		GuestName:  guest.Name,
		FamilyID:   family.ID,
		FamilySize: len(members),
		VerifiedAt: time.Now().UTC().Format(time.RFC3339),
	})

	return &domain.VerifyResult{
		Guest:         guest,
		FamilyID:      family.ID,
		FamilyMembers: members,
		FamilyEmail:   family.Email,
		FamilyNotes:   family.Notes,
	}, nil
}

// SubmitRSVP applies the sparse update to the guest record. The guest
// update is the operation of record; the household-level write, the
// confirmation email and the event publication are all best-effort.
func (s *rsvpService) SubmitRSVP(ctx context.Context, req *domain.RSVPRequest) (*domain.Guest, error) {
	guest, err := s.guests.Update(ctx, req.GuestID, req.Update)
	if err != nil {
		return nil, err
	}

	if req.FamilyID != "" && req.Family.HasChanges() {
		if err := s.families.UpdateContact(ctx, req.FamilyID, req.Family); err != nil {
			// The guest's own RSVP must not be lost because an
			// unrelated household write failed.
			logger.ErrorContext(ctx, "Best-effort family update failed",
				"family_id", req.FamilyID,
				"guest_id", req.GuestID,
				"error", err,
			)
		}
	}

	if req.Family.Email != "" {
		if err := s.mail.SendRSVPConfirmation(req.Family.Email, guest.Name, guest.Szertartas || guest.Lakodalom); err != nil {
			logger.WarnContext(ctx, "Failed to send RSVP confirmation email",
				"guest_id", guest.ID,
				"error", err,
			)
		}
	}

	s.publish(ctx, events.RSVPSubmitted, events.RSVPSubmittedEvent{
		GuestID:     guest.ID,
		GuestName:   guest.Name,
		Szertartas:  guest.Szertartas,
		Lakodalom:   guest.Lakodalom,
		Transfer:    guest.Transfer,
		SubmittedAt: guest.SubmittedAt,
	})

	return guest, nil
}

func (s *rsvpService) ListGuests(ctx context.Context) ([]domain.Guest, error) {
	return s.guests.ListAll(ctx)
}

func (s *rsvpService) ListFamilyGuests(ctx context.Context, familyID string) ([]domain.Guest, error) {
	return s.guests.ListByFamily(ctx, familyID)
}

func (s *rsvpService) publish(ctx context.Context, subject string, event interface{}) {
	if err := s.bus.Publish(ctx, subject, event); err != nil {
		logger.WarnContext(ctx, "Failed to publish event", "subject", subject, "error", err)
	}
}
