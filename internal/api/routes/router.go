package routes

import (
	"net/http"

	"github.com/clinicbook/clinicbook/internal/api/handlers"
	"github.com/clinicbook/clinicbook/internal/api/middleware"
	"github.com/clinicbook/clinicbook/internal/domain/entities"
	"github.com/clinicbook/clinicbook/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	authHandler         *handlers.AuthHandler
	bookingHandler      *handlers.BookingHandler
	appointmentHandler  *handlers.AppointmentHandler
	availabilityHandler *handlers.AvailabilityHandler
	paymentHandler      *handlers.PaymentHandler
	feedbackHandler     *handlers.FeedbackHandler
	notesHandler        *handlers.NotesHandler
	dashboardHandler    *handlers.DashboardHandler
	adminHandler        *handlers.AdminHandler
	eventStreamHandler  *handlers.EventStreamHandler

	auth    *middleware.AuthMiddleware
	metrics *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	authHandler *handlers.AuthHandler,
	bookingHandler *handlers.BookingHandler,
	appointmentHandler *handlers.AppointmentHandler,
	availabilityHandler *handlers.AvailabilityHandler,
	paymentHandler *handlers.PaymentHandler,
	feedbackHandler *handlers.FeedbackHandler,
	notesHandler *handlers.NotesHandler,
	dashboardHandler *handlers.DashboardHandler,
	adminHandler *handlers.AdminHandler,
	eventStreamHandler *handlers.EventStreamHandler,
	auth *middleware.AuthMiddleware,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux:                 http.NewServeMux(),
		authHandler:         authHandler,
		bookingHandler:      bookingHandler,
		appointmentHandler:  appointmentHandler,
		availabilityHandler: availabilityHandler,
		paymentHandler:      paymentHandler,
		feedbackHandler:     feedbackHandler,
		notesHandler:        notesHandler,
		dashboardHandler:    dashboardHandler,
		adminHandler:        adminHandler,
		eventStreamHandler:  eventStreamHandler,
		auth:                auth,
		metrics:             metrics,
	}
}

// handle registers a route behind the auth guard for the given roles
func (r *Router) handle(pattern string, handler http.HandlerFunc, roles ...entities.Role) {
	r.mux.Handle(pattern, r.auth.RequireRole(roles...)(handler))
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	// Health check endpoint
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Public auth endpoints
	r.mux.HandleFunc("POST /api/auth/register", r.authHandler.Register)
	r.mux.HandleFunc("POST /api/auth/login", r.authHandler.Login)
	r.handle("POST /api/auth/logout", r.authHandler.Logout)
	r.handle("GET /api/auth/me", r.authHandler.Me)

	// Doctor search and public availability (any signed-in user)
	r.handle("GET /api/doctors", r.bookingHandler.SearchDoctors)
	r.handle("GET /api/doctors/{id}/availability", r.availabilityHandler.ListForDoctor)
	r.handle("GET /api/locations", r.availabilityHandler.Locations)

	// Patient booking workflow
	r.handle("POST /api/bookings/schedule", r.bookingHandler.SelectSchedule, entities.RolePatient)
	r.handle("GET /api/bookings/draft", r.bookingHandler.GetDraft, entities.RolePatient)
	r.handle("POST /api/bookings/confirm", r.bookingHandler.Confirm, entities.RolePatient)

	// Patient area
	r.handle("GET /api/patient/dashboard", r.dashboardHandler.Patient, entities.RolePatient)
	r.handle("GET /api/patient/appointments", r.appointmentHandler.ListForPatient, entities.RolePatient)
	r.handle("POST /api/patient/appointments/{id}/cancel", r.appointmentHandler.CancelByPatient, entities.RolePatient)
	r.handle("GET /api/patient/payments", r.paymentHandler.List, entities.RolePatient)
	r.handle("POST /api/patient/payments/{id}/pay", r.paymentHandler.MarkPaid, entities.RolePatient)
	r.handle("GET /api/patient/records", r.notesHandler.ListForPatient, entities.RolePatient)
	r.handle("POST /api/patient/feedback", r.feedbackHandler.Submit, entities.RolePatient)

	// Doctor area
	r.handle("GET /api/doctor/dashboard", r.dashboardHandler.Doctor, entities.RoleDoctor)
	r.handle("GET /api/doctor/appointments", r.appointmentHandler.ListForDoctor, entities.RoleDoctor)
	r.handle("GET /api/doctor/appointments/{id}", r.appointmentHandler.GetForDoctor, entities.RoleDoctor)
	r.handle("POST /api/doctor/appointments/{id}/confirm", r.appointmentHandler.Confirm, entities.RoleDoctor)
	r.handle("POST /api/doctor/appointments/{id}/complete", r.appointmentHandler.Complete, entities.RoleDoctor)
	r.handle("POST /api/doctor/appointments/{id}/cancel", r.appointmentHandler.CancelByDoctor, entities.RoleDoctor)
	r.handle("POST /api/doctor/appointments/{id}/reschedule", r.appointmentHandler.Reschedule, entities.RoleDoctor)
	r.handle("PUT /api/doctor/appointments/{id}/notes", r.notesHandler.Write, entities.RoleDoctor)
	r.handle("GET /api/doctor/appointments/{id}/notes", r.notesHandler.GetForAppointment, entities.RoleDoctor)
	r.handle("GET /api/doctor/events", r.eventStreamHandler.StreamForDoctor, entities.RoleDoctor)
	r.handle("GET /api/doctor/availability", r.availabilityHandler.ListOwn, entities.RoleDoctor)
	r.handle("POST /api/doctor/availability", r.availabilityHandler.AddOwn, entities.RoleDoctor)
	r.handle("DELETE /api/doctor/availability/{id}", r.availabilityHandler.RemoveOwn, entities.RoleDoctor)

	// Admin area
	r.handle("GET /api/admin/doctors", r.adminHandler.ListDoctors, entities.RoleAdmin)
	r.handle("GET /api/admin/doctors/{id}", r.adminHandler.GetDoctor, entities.RoleAdmin)
	r.handle("POST /api/admin/doctors", r.adminHandler.AddDoctor, entities.RoleAdmin)
	r.handle("PATCH /api/admin/doctors/{id}", r.adminHandler.EditDoctor, entities.RoleAdmin)
	r.handle("DELETE /api/admin/doctors/{id}", r.adminHandler.DeleteDoctor, entities.RoleAdmin)
	r.handle("POST /api/admin/doctors/{id}/availability", r.adminHandler.AddDoctorAvailability, entities.RoleAdmin)
	r.handle("DELETE /api/admin/availability/{id}", r.adminHandler.RemoveDoctorAvailability, entities.RoleAdmin)
	r.handle("GET /api/admin/patients", r.adminHandler.ListPatients, entities.RoleAdmin)
	r.handle("GET /api/admin/reports", r.adminHandler.Reports, entities.RoleAdmin)

	// Apply middleware in reverse order (last middleware wraps first)
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	handler = middleware.ResponseOptimization(handler)
	handler = middleware.CORSMiddleware(handler)

	return handler
}
