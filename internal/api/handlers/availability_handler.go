package handlers

import (
	"net/http"

	"github.com/clinicbook/clinicbook/internal/api/middleware"
	"github.com/clinicbook/clinicbook/internal/application/services"
)

// AvailabilityHandler handles a doctor's recurring weekly windows
type AvailabilityHandler struct {
	availabilityService *services.AvailabilityService
}

// NewAvailabilityHandler creates a new availability handler
func NewAvailabilityHandler(availabilityService *services.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{
		availabilityService: availabilityService,
	}
}

// ListOwn handles GET /api/doctor/availability
func (h *AvailabilityHandler) ListOwn(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFromContext(r.Context())

	windows, err := h.availabilityService.ListForDoctor(r.Context(), identity.DoctorID, r.URL.Query().Get("location"))
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"windows":  windows,
		"weekdays": h.availabilityService.Weekdays(),
	})
}

// AddOwn handles POST /api/doctor/availability
func (h *AvailabilityHandler) AddOwn(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFromContext(r.Context())

	var input services.AddWindowInput
	if err := decodeJSON(r, &input); err != nil {
		respondWithAppError(w, err)
		return
	}
	input.DoctorID = identity.DoctorID

	window, err := h.availabilityService.AddWindow(r.Context(), input)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, window)
}

// RemoveOwn handles DELETE /api/doctor/availability/{id}
func (h *AvailabilityHandler) RemoveOwn(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFromContext(r.Context())

	if err := h.availabilityService.RemoveWindow(r.Context(), r.PathValue("id"), identity.DoctorID); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "availability removed"})
}

// ListForDoctor handles GET /api/doctors/{id}/availability (patient view)
func (h *AvailabilityHandler) ListForDoctor(w http.ResponseWriter, r *http.Request) {
	windows, err := h.availabilityService.ListForDoctor(r.Context(), r.PathValue("id"), r.URL.Query().Get("location"))
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"windows": windows,
	})
}

// Locations handles GET /api/locations
func (h *AvailabilityHandler) Locations(w http.ResponseWriter, r *http.Request) {
	locations, err := h.availabilityService.Locations(r.Context())
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"locations": locations,
	})
}
