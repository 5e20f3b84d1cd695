package handlers

import (
	"net/http"

	"github.com/clinicbook/clinicbook/internal/api/middleware"
	"github.com/clinicbook/clinicbook/internal/application/services"
)

// DashboardHandler handles the per-role landing page summaries
type DashboardHandler struct {
	reportService *services.ReportService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(reportService *services.ReportService) *DashboardHandler {
	return &DashboardHandler{
		reportService: reportService,
	}
}

// Patient handles GET /api/patient/dashboard
func (h *DashboardHandler) Patient(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFromContext(r.Context())

	dashboard, err := h.reportService.DashboardForPatient(r.Context(), identity.PatientID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, dashboard)
}

// Doctor handles GET /api/doctor/dashboard
func (h *DashboardHandler) Doctor(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFromContext(r.Context())

	dashboard, err := h.reportService.DashboardForDoctor(r.Context(), identity.DoctorID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, dashboard)
}
