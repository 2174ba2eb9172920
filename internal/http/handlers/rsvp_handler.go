package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/horvathb/wedding-rsvp/internal/domain"
	"github.com/horvathb/wedding-rsvp/internal/http/response"
	"github.com/horvathb/wedding-rsvp/internal/service"
	"github.com/horvathb/wedding-rsvp/internal/utils"
)

type verifyNameRequest struct {
	Name string `json:"name" validate:"required"`
}

type verifyNameResponse struct {
	Success       bool           `json:"success"`
	Found         bool           `json:"found"`
	Guest         *domain.Guest  `json:"guest,omitempty"`
	FamilyMembers []domain.Guest `json:"familyMembers,omitempty"`
	FamilyID      string         `json:"familyId,omitempty"`
	FamilyEmail   string         `json:"familyEmail,omitempty"`
	FamilyNotes   string         `json:"familyNotes,omitempty"`
}

type notFoundResponse struct {
	Success bool   `json:"success"`
	Found   bool   `json:"found"`
	Error   string `json:"error"`
}

// VerifyName handles POST /verify-name
func (h *Handlers) VerifyName(w http.ResponseWriter, r *http.Request) {
	var req verifyNameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON format")
		return
	}

	req.Name = utils.NormalizeName(req.Name)
	if err := h.validate.Struct(req); err != nil {
		response.BadRequest(w, validationMessage(err))
		return
	}

	result, err := h.rsvpService.VerifyName(r.Context(), req.Name)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrGuestNotFound):
			writeJSON(w, http.StatusNotFound, notFoundResponse{
				Success: false,
				Found:   false,
				Error:   "guest not found",
			})
		case errors.Is(err, service.ErrFamilyIntegrity):
			response.DataIntegrity(w, err.Error())
		default:
			response.Upstream(w, err.Error())
		}
		return
	}

	writeJSON(w, http.StatusOK, verifyNameResponse{
		Success:       true,
		Found:         true,
		Guest:         &result.Guest,
		FamilyMembers: result.FamilyMembers,
		FamilyID:      result.FamilyID,
		FamilyEmail:   result.FamilyEmail,
		FamilyNotes:   result.FamilyNotes,
	})
}

type rsvpRequest struct {
	GuestID             string  `json:"guestId" validate:"required"`
	Szertartas          *bool   `json:"szertartas"`
	Lakodalom           *bool   `json:"lakodalom"`
	Transfer            *bool   `json:"transfer"`
	DietaryRestrictions *string `json:"dietaryRestrictions"`
	FamilyID            string  `json:"familyId"`
	FamilyEmail         string  `json:"familyEmail" validate:"omitempty,email"`
	FamilyNotes         string  `json:"familyNotes"`
}

type rsvpResponse struct {
	Success bool          `json:"success"`
	Guest   *domain.Guest `json:"guest"`
}

// SubmitRSVP handles POST /rsvp
func (h *Handlers) SubmitRSVP(w http.ResponseWriter, r *http.Request) {
	var req rsvpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON format")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		response.BadRequest(w, validationMessage(err))
		return
	}

	guest, err := h.rsvpService.SubmitRSVP(r.Context(), &domain.RSVPRequest{
		GuestID: req.GuestID,
		Update: domain.RSVPUpdate{
			Szertartas:          req.Szertartas,
			Lakodalom:           req.Lakodalom,
			Transfer:            req.Transfer,
			DietaryRestrictions: req.DietaryRestrictions,
		},
		FamilyID: req.FamilyID,
		Family: domain.FamilyUpdate{
			Email: utils.NormalizeEmail(req.FamilyEmail),
			Notes: req.FamilyNotes,
		},
	})
	if err != nil {
		response.Upstream(w, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, rsvpResponse{
		Success: true,
		Guest:   guest,
	})
}
