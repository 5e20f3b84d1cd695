package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/clinicbook/clinicbook/internal/application/services"
	"github.com/clinicbook/clinicbook/internal/domain/entities"
	"github.com/clinicbook/clinicbook/internal/domain/repositories"
)

func TestReportService_AdminOverview(t *testing.T) {
	appointmentRepo := new(MockAppointmentRepository)
	paymentRepo := new(MockPaymentRepository)
	service := services.NewReportService(appointmentRepo, paymentRepo)

	appointmentRepo.On("Count", mock.Anything).Return(12, nil)
	appointmentRepo.On("CountByStatus", mock.Anything).Return(map[entities.AppointmentStatus]int{
		entities.AppointmentStatusBooked:    5,
		entities.AppointmentStatusCompleted: 7,
	}, nil)
	paymentRepo.On("TotalPaid", mock.Anything).Return(840.0, nil)
	paymentRepo.On("RevenueByDoctor", mock.Anything).Return(map[string]float64{
		"Dr. Amina Yusuf": 600,
		"Dr. James Okoro": 240,
	}, nil)
	paymentRepo.On("CountByStatus", mock.Anything, entities.PaymentStatusPending).Return(3, nil)

	overview, err := service.AdminOverview(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 12, overview.TotalAppointments)
	assert.Equal(t, 840.0, overview.TotalRevenue)
	assert.Equal(t, 3, overview.PendingPayments)
	assert.Equal(t, 5, overview.ByStatus[entities.AppointmentStatusBooked])
	assert.Equal(t, 600.0, overview.RevenueByDoctor["Dr. Amina Yusuf"])
}

func TestReportService_DashboardForPatient(t *testing.T) {
	appointmentRepo := new(MockAppointmentRepository)
	paymentRepo := new(MockPaymentRepository)
	service := services.NewReportService(appointmentRepo, paymentRepo)

	upcoming := []*entities.Appointment{{ID: "apt-1", Status: entities.AppointmentStatusConfirmed}}
	payments := []*entities.Payment{
		{ID: "pay-1", Status: entities.PaymentStatusPending},
		{ID: "pay-2", Status: entities.PaymentStatusPaid},
	}

	appointmentRepo.On("ListByPatient", mock.Anything, "pat-1", repositories.FilterUpcoming).Return(upcoming, nil)
	paymentRepo.On("ListByPatient", mock.Anything, "pat-1").Return(payments, nil)

	dashboard, err := service.DashboardForPatient(context.Background(), "pat-1")

	assert.NoError(t, err)
	assert.Len(t, dashboard.Upcoming, 1)
	assert.Len(t, dashboard.PendingPayments, 1)
	assert.Equal(t, "pay-1", dashboard.PendingPayments[0].ID)
}

func TestReportService_DashboardForDoctor(t *testing.T) {
	appointmentRepo := new(MockAppointmentRepository)
	service := services.NewReportService(appointmentRepo, new(MockPaymentRepository))

	today := []*entities.Appointment{{ID: "apt-1"}}
	upcoming := []*entities.Appointment{{ID: "apt-1"}, {ID: "apt-2"}}

	appointmentRepo.On("ListByDoctor", mock.Anything, "doc-1", repositories.FilterToday).Return(today, nil)
	appointmentRepo.On("ListByDoctor", mock.Anything, "doc-1", repositories.FilterUpcoming).Return(upcoming, nil)

	dashboard, err := service.DashboardForDoctor(context.Background(), "doc-1")

	assert.NoError(t, err)
	assert.Len(t, dashboard.Today, 1)
	assert.Len(t, dashboard.Upcoming, 2)
}
