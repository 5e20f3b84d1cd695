package handlers

import (
	"net/http"

	"github.com/clinicbook/clinicbook/internal/api/middleware"
	"github.com/clinicbook/clinicbook/internal/application/services"
)

// NotesHandler handles consultation notes
type NotesHandler struct {
	notesService *services.NotesService
}

// NewNotesHandler creates a new notes handler
func NewNotesHandler(notesService *services.NotesService) *NotesHandler {
	return &NotesHandler{
		notesService: notesService,
	}
}

// Write handles PUT /api/doctor/appointments/{id}/notes
func (h *NotesHandler) Write(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFromContext(r.Context())

	var input services.WriteInput
	if err := decodeJSON(r, &input); err != nil {
		respondWithAppError(w, err)
		return
	}

	note, err := h.notesService.Write(r.Context(), r.PathValue("id"), identity.DoctorID, input)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, note)
}

// GetForAppointment handles GET /api/doctor/appointments/{id}/notes
func (h *NotesHandler) GetForAppointment(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFromContext(r.Context())

	note, err := h.notesService.GetForAppointment(r.Context(), r.PathValue("id"), identity.DoctorID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, note)
}

// ListForPatient handles GET /api/patient/records
func (h *NotesHandler) ListForPatient(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFromContext(r.Context())

	notes, err := h.notesService.ListForPatient(r.Context(), identity.PatientID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"records": notes,
		"count":   len(notes),
	})
}
