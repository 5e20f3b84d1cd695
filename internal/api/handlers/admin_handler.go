package handlers

import (
	"net/http"

	"github.com/clinicbook/clinicbook/internal/application/services"
)

// AdminHandler handles the admin area: doctor management, patient
// listings and reports
type AdminHandler struct {
	adminService        *services.AdminService
	availabilityService *services.AvailabilityService
	reportService       *services.ReportService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(
	adminService *services.AdminService,
	availabilityService *services.AvailabilityService,
	reportService *services.ReportService,
) *AdminHandler {
	return &AdminHandler{
		adminService:        adminService,
		availabilityService: availabilityService,
		reportService:       reportService,
	}
}

// ListDoctors handles GET /api/admin/doctors
func (h *AdminHandler) ListDoctors(w http.ResponseWriter, r *http.Request) {
	doctors, err := h.adminService.ListDoctors(r.Context())
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"doctors": doctors,
		"count":   len(doctors),
	})
}

// GetDoctor handles GET /api/admin/doctors/{id}
func (h *AdminHandler) GetDoctor(w http.ResponseWriter, r *http.Request) {
	doctor, err := h.adminService.GetDoctor(r.Context(), r.PathValue("id"))
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, doctor)
}

// AddDoctor handles POST /api/admin/doctors
func (h *AdminHandler) AddDoctor(w http.ResponseWriter, r *http.Request) {
	var input services.DoctorInput
	if err := decodeJSON(r, &input); err != nil {
		respondWithAppError(w, err)
		return
	}

	doctor, err := h.adminService.AddDoctor(r.Context(), input)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, doctor)
}

// EditDoctor handles PATCH /api/admin/doctors/{id}
func (h *AdminHandler) EditDoctor(w http.ResponseWriter, r *http.Request) {
	var input services.DoctorInput
	if err := decodeJSON(r, &input); err != nil {
		respondWithAppError(w, err)
		return
	}

	doctor, err := h.adminService.EditDoctor(r.Context(), r.PathValue("id"), input)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, doctor)
}

// DeleteDoctor handles DELETE /api/admin/doctors/{id}
func (h *AdminHandler) DeleteDoctor(w http.ResponseWriter, r *http.Request) {
	if err := h.adminService.DeleteDoctor(r.Context(), r.PathValue("id")); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "doctor removed"})
}

// AddDoctorAvailability handles POST /api/admin/doctors/{id}/availability
func (h *AdminHandler) AddDoctorAvailability(w http.ResponseWriter, r *http.Request) {
	var input services.AddWindowInput
	if err := decodeJSON(r, &input); err != nil {
		respondWithAppError(w, err)
		return
	}
	input.DoctorID = r.PathValue("id")

	window, err := h.availabilityService.AddWindow(r.Context(), input)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, window)
}

// RemoveDoctorAvailability handles DELETE /api/admin/availability/{id}
func (h *AdminHandler) RemoveDoctorAvailability(w http.ResponseWriter, r *http.Request) {
	if err := h.availabilityService.RemoveWindowAsAdmin(r.Context(), r.PathValue("id")); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "availability removed"})
}

// ListPatients handles GET /api/admin/patients
func (h *AdminHandler) ListPatients(w http.ResponseWriter, r *http.Request) {
	patients, err := h.adminService.ListPatients(r.Context())
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"patients": patients,
		"count":    len(patients),
	})
}

// Reports handles GET /api/admin/reports
func (h *AdminHandler) Reports(w http.ResponseWriter, r *http.Request) {
	overview, err := h.reportService.AdminOverview(r.Context())
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, overview)
}
