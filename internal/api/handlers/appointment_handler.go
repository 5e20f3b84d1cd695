package handlers

import (
	"net/http"

	"github.com/clinicbook/clinicbook/internal/api/middleware"
	"github.com/clinicbook/clinicbook/internal/application/services"
	"github.com/clinicbook/clinicbook/internal/domain/repositories"
)

// AppointmentHandler handles appointment listings and lifecycle actions
type AppointmentHandler struct {
	appointmentService *services.AppointmentService
}

// NewAppointmentHandler creates a new appointment handler
func NewAppointmentHandler(appointmentService *services.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentService: appointmentService,
	}
}

func listFilter(r *http.Request) repositories.AppointmentListFilter {
	return repositories.AppointmentListFilter(r.URL.Query().Get("filter"))
}

// ListForPatient handles GET /api/patient/appointments
func (h *AppointmentHandler) ListForPatient(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFromContext(r.Context())

	appointments, err := h.appointmentService.ListForPatient(r.Context(), identity.PatientID, listFilter(r))
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"appointments": appointments,
		"count":        len(appointments),
	})
}

// CancelByPatient handles POST /api/patient/appointments/{id}/cancel
func (h *AppointmentHandler) CancelByPatient(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFromContext(r.Context())

	appointment, err := h.appointmentService.CancelByPatient(r.Context(), r.PathValue("id"), identity.PatientID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, appointment)
}

// ListForDoctor handles GET /api/doctor/appointments
func (h *AppointmentHandler) ListForDoctor(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFromContext(r.Context())

	appointments, err := h.appointmentService.ListForDoctor(r.Context(), identity.DoctorID, listFilter(r))
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"appointments": appointments,
		"count":        len(appointments),
	})
}

// GetForDoctor handles GET /api/doctor/appointments/{id}
func (h *AppointmentHandler) GetForDoctor(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFromContext(r.Context())

	appointment, err := h.appointmentService.GetForDoctor(r.Context(), r.PathValue("id"), identity.DoctorID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, appointment)
}

// Confirm handles POST /api/doctor/appointments/{id}/confirm
func (h *AppointmentHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFromContext(r.Context())

	appointment, err := h.appointmentService.Confirm(r.Context(), r.PathValue("id"), identity.DoctorID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, appointment)
}

// Complete handles POST /api/doctor/appointments/{id}/complete
func (h *AppointmentHandler) Complete(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFromContext(r.Context())

	appointment, err := h.appointmentService.Complete(r.Context(), r.PathValue("id"), identity.DoctorID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, appointment)
}

// CancelByDoctor handles POST /api/doctor/appointments/{id}/cancel
func (h *AppointmentHandler) CancelByDoctor(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFromContext(r.Context())

	appointment, err := h.appointmentService.CancelByDoctor(r.Context(), r.PathValue("id"), identity.DoctorID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, appointment)
}

// Reschedule handles POST /api/doctor/appointments/{id}/reschedule
func (h *AppointmentHandler) Reschedule(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFromContext(r.Context())

	var input services.RescheduleInput
	if err := decodeJSON(r, &input); err != nil {
		respondWithAppError(w, err)
		return
	}

	appointment, err := h.appointmentService.Reschedule(r.Context(), r.PathValue("id"), identity.DoctorID, input)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, appointment)
}
