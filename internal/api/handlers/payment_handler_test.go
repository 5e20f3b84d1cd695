package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/clinicbook/clinicbook/internal/api/handlers"
	"github.com/clinicbook/clinicbook/internal/api/middleware"
	"github.com/clinicbook/clinicbook/internal/application/services"
	"github.com/clinicbook/clinicbook/internal/domain/entities"
	apperrors "github.com/clinicbook/clinicbook/pkg/errors"
)

type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) GetForPatient(ctx context.Context, id, patientID string) (*entities.Payment, error) {
	args := m.Called(ctx, id, patientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Payment), args.Error(1)
}

func (m *MockPaymentRepository) UpdateStatus(ctx context.Context, id string, status entities.PaymentStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockPaymentRepository) ListByPatient(ctx context.Context, patientID string) ([]*entities.Payment, error) {
	args := m.Called(ctx, patientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Payment), args.Error(1)
}

func (m *MockPaymentRepository) CountByStatus(ctx context.Context, status entities.PaymentStatus) (int, error) {
	args := m.Called(ctx, status)
	return args.Int(0), args.Error(1)
}

func (m *MockPaymentRepository) TotalPaid(ctx context.Context) (float64, error) {
	args := m.Called(ctx)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockPaymentRepository) RevenueByDoctor(ctx context.Context) (map[string]float64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]float64), args.Error(1)
}

// asPatient attaches a patient identity the way the auth middleware does.
func asPatient(r *http.Request, patientID string) *http.Request {
	identity := &middleware.Identity{
		UserID:    "user-1",
		Role:      entities.RolePatient,
		Name:      "Pat Doe",
		PatientID: patientID,
		Token:     "tok-1",
	}
	return r.WithContext(middleware.ContextWithIdentity(r.Context(), identity))
}

func TestPaymentHandler_List(t *testing.T) {
	repo := new(MockPaymentRepository)
	handler := handlers.NewPaymentHandler(services.NewPaymentService(repo))

	payments := []*entities.Payment{
		{ID: "pay-1", Amount: 150, Status: entities.PaymentStatusPending},
		{ID: "pay-2", Amount: 100, Status: entities.PaymentStatusPaid},
	}
	repo.On("ListByPatient", mock.Anything, "pat-1").Return(payments, nil)

	rec := httptest.NewRecorder()
	req := asPatient(httptest.NewRequest(http.MethodGet, "/api/patient/payments", nil), "pat-1")

	handler.List(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Payments []*entities.Payment `json:"payments"`
		Count    int                 `json:"count"`
	}
	assert.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, 2, body.Count)
	assert.Len(t, body.Payments, 2)
}

func TestPaymentHandler_MarkPaid(t *testing.T) {
	t.Run("settles the payment", func(t *testing.T) {
		repo := new(MockPaymentRepository)
		handler := handlers.NewPaymentHandler(services.NewPaymentService(repo))

		payment := &entities.Payment{ID: "pay-1", Amount: 150, Status: entities.PaymentStatusPending}
		repo.On("GetForPatient", mock.Anything, "pay-1", "pat-1").Return(payment, nil)
		repo.On("UpdateStatus", mock.Anything, "pay-1", entities.PaymentStatusPaid).Return(nil)

		rec := httptest.NewRecorder()
		req := asPatient(httptest.NewRequest(http.MethodPost, "/api/patient/payments/pay-1/pay", nil), "pat-1")
		req.SetPathValue("id", "pay-1")

		handler.MarkPaid(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var body entities.Payment
		assert.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		assert.Equal(t, entities.PaymentStatusPaid, body.Status)
	})

	t.Run("non-pending payment maps to 409", func(t *testing.T) {
		repo := new(MockPaymentRepository)
		handler := handlers.NewPaymentHandler(services.NewPaymentService(repo))

		payment := &entities.Payment{ID: "pay-1", Status: entities.PaymentStatusPaid}
		repo.On("GetForPatient", mock.Anything, "pay-1", "pat-1").Return(payment, nil)

		rec := httptest.NewRecorder()
		req := asPatient(httptest.NewRequest(http.MethodPost, "/api/patient/payments/pay-1/pay", nil), "pat-1")
		req.SetPathValue("id", "pay-1")

		handler.MarkPaid(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("someone else's payment maps to 404", func(t *testing.T) {
		repo := new(MockPaymentRepository)
		handler := handlers.NewPaymentHandler(services.NewPaymentService(repo))

		repo.On("GetForPatient", mock.Anything, "pay-9", "pat-1").
			Return(nil, apperrors.NewNotFoundError("payment not found"))

		rec := httptest.NewRecorder()
		req := asPatient(httptest.NewRequest(http.MethodPost, "/api/patient/payments/pay-9/pay", nil), "pat-1")
		req.SetPathValue("id", "pay-9")

		handler.MarkPaid(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
