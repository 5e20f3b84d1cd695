package handlers

import (
	"net/http"

	"github.com/clinicbook/clinicbook/internal/api/middleware"
	"github.com/clinicbook/clinicbook/internal/application/services"
	"github.com/clinicbook/clinicbook/internal/domain/entities"
)

// BookingHandler handles the patient booking workflow
type BookingHandler struct {
	bookingService *services.BookingService
}

// NewBookingHandler creates a new booking handler
func NewBookingHandler(bookingService *services.BookingService) *BookingHandler {
	return &BookingHandler{
		bookingService: bookingService,
	}
}

// SearchDoctors handles GET /api/doctors
func (h *BookingHandler) SearchDoctors(w http.ResponseWriter, r *http.Request) {
	filter := entities.DoctorSearchFilter{
		Specialty: r.URL.Query().Get("specialty"),
		Location:  r.URL.Query().Get("location"),
		Day:       r.URL.Query().Get("day"),
	}

	result, err := h.bookingService.SearchDoctors(r.Context(), filter)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}

// SelectSchedule handles POST /api/bookings/schedule
func (h *BookingHandler) SelectSchedule(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFromContext(r.Context())

	var input services.SelectScheduleInput
	if err := decodeJSON(r, &input); err != nil {
		respondWithAppError(w, err)
		return
	}

	selection, err := h.bookingService.SelectSchedule(r.Context(), identity.Token, identity.PatientID, input)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, selection)
}

// GetDraft handles GET /api/bookings/draft
func (h *BookingHandler) GetDraft(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFromContext(r.Context())

	draft, err := h.bookingService.PendingDraft(r.Context(), identity.Token)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, draft)
}

// Confirm handles POST /api/bookings/confirm
func (h *BookingHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFromContext(r.Context())

	confirmation, err := h.bookingService.Confirm(r.Context(), identity.Token, identity.PatientID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, confirmation)
}
