package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/horvathb/wedding-rsvp/internal/service"
	"github.com/horvathb/wedding-rsvp/pkg/logger"
)

type Handlers struct {
	rsvpService service.RSVPService
	validate    *validator.Validate
}

func New(rsvpService service.RSVPService) *Handlers {
	validate := validator.New()
	// Report violations under the wire field name, not the Go name
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Handlers{
		rsvpService: rsvpService,
		validate:    validate,
	}
}

func (h *Handlers) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/verify-name", h.VerifyName)
	r.Post("/rsvp", h.SubmitRSVP)
	r.Get("/guests", h.ListGuests)
	r.Get("/guests/family", h.ListFamilyGuests)
	r.Get("/guests/family/{familyID}", h.ListFamilyGuests)

	return r
}

func writeJSON(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Failed to encode JSON response", "error", err)
	}
}

// validationMessage turns the first violation into a field-level message.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		switch fe.Tag() {
		case "required":
			return fe.Field() + " is required"
		case "email":
			return fe.Field() + " must be a valid email address"
		default:
			return fe.Field() + " is invalid"
		}
	}
	return "invalid request"
}
