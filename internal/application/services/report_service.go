package services

import (
	"context"

	"github.com/clinicbook/clinicbook/internal/domain/entities"
	"github.com/clinicbook/clinicbook/internal/domain/repositories"
)

// ReportService assembles the admin overview and the per-role dashboards.
type ReportService struct {
	appointmentRepo repositories.AppointmentRepository
	paymentRepo     repositories.PaymentRepository
}

// NewReportService creates a new report service
func NewReportService(appointmentRepo repositories.AppointmentRepository, paymentRepo repositories.PaymentRepository) *ReportService {
	return &ReportService{
		appointmentRepo: appointmentRepo,
		paymentRepo:     paymentRepo,
	}
}

// Overview is the admin reporting payload.
type Overview struct {
	TotalAppointments int                                `json:"total_appointments"`
	ByStatus          map[entities.AppointmentStatus]int `json:"by_status"`
	TotalRevenue      float64                            `json:"total_revenue"`
	RevenueByDoctor   map[string]float64                 `json:"revenue_by_doctor"`
	PendingPayments   int                                `json:"pending_payments"`
}

// AdminOverview assembles appointment and revenue totals
func (s *ReportService) AdminOverview(ctx context.Context) (*Overview, error) {
	total, err := s.appointmentRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	byStatus, err := s.appointmentRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	revenue, err := s.paymentRepo.TotalPaid(ctx)
	if err != nil {
		return nil, err
	}

	byDoctor, err := s.paymentRepo.RevenueByDoctor(ctx)
	if err != nil {
		return nil, err
	}

	pending, err := s.paymentRepo.CountByStatus(ctx, entities.PaymentStatusPending)
	if err != nil {
		return nil, err
	}

	return &Overview{
		TotalAppointments: total,
		ByStatus:          byStatus,
		TotalRevenue:      revenue,
		RevenueByDoctor:   byDoctor,
		PendingPayments:   pending,
	}, nil
}

// PatientDashboard summarizes a patient's upcoming appointments and
// pending payments.
type PatientDashboard struct {
	Upcoming        []*entities.Appointment `json:"upcoming"`
	PendingPayments []*entities.Payment     `json:"pending_payments"`
}

// DashboardForPatient assembles the patient landing page summary
func (s *ReportService) DashboardForPatient(ctx context.Context, patientID string) (*PatientDashboard, error) {
	upcoming, err := s.appointmentRepo.ListByPatient(ctx, patientID, repositories.FilterUpcoming)
	if err != nil {
		return nil, err
	}

	payments, err := s.paymentRepo.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}

	pending := []*entities.Payment{}
	for _, payment := range payments {
		if payment.Status == entities.PaymentStatusPending {
			pending = append(pending, payment)
		}
	}

	return &PatientDashboard{
		Upcoming:        upcoming,
		PendingPayments: pending,
	}, nil
}

// DoctorDashboard summarizes a doctor's day and upcoming load.
type DoctorDashboard struct {
	Today    []*entities.Appointment `json:"today"`
	Upcoming []*entities.Appointment `json:"upcoming"`
}

// DashboardForDoctor assembles the doctor landing page summary
func (s *ReportService) DashboardForDoctor(ctx context.Context, doctorID string) (*DoctorDashboard, error) {
	today, err := s.appointmentRepo.ListByDoctor(ctx, doctorID, repositories.FilterToday)
	if err != nil {
		return nil, err
	}

	upcoming, err := s.appointmentRepo.ListByDoctor(ctx, doctorID, repositories.FilterUpcoming)
	if err != nil {
		return nil, err
	}

	return &DoctorDashboard{
		Today:    today,
		Upcoming: upcoming,
	}, nil
}
