package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/horvathb/wedding-rsvp/internal/domain"
	"github.com/horvathb/wedding-rsvp/internal/http/response"
)

type guestListResponse struct {
	Success bool           `json:"success"`
	Guests  []domain.Guest `json:"guests"`
}

// ListGuests handles GET /guests
func (h *Handlers) ListGuests(w http.ResponseWriter, r *http.Request) {
	guests, err := h.rsvpService.ListGuests(r.Context())
	if err != nil {
		response.Upstream(w, err.Error())
		return
	}

	if guests == nil {
		guests = []domain.Guest{}
	}
	writeJSON(w, http.StatusOK, guestListResponse{
		Success: true,
		Guests:  guests,
	})
}

// ListFamilyGuests handles GET /guests/family/{familyID}
func (h *Handlers) ListFamilyGuests(w http.ResponseWriter, r *http.Request) {
	familyID := strings.TrimSpace(chi.URLParam(r, "familyID"))
	if familyID == "" {
		response.BadRequest(w, "familyId is required")
		return
	}

	guests, err := h.rsvpService.ListFamilyGuests(r.Context(), familyID)
	if err != nil {
		response.Upstream(w, err.Error())
		return
	}

	if guests == nil {
		guests = []domain.Guest{}
	}
	writeJSON(w, http.StatusOK, guestListResponse{
		Success: true,
		Guests:  guests,
	})
}
