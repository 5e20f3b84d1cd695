package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/clinicbook/clinicbook/internal/application/services"
	"github.com/clinicbook/clinicbook/internal/domain/entities"
	apperrors "github.com/clinicbook/clinicbook/pkg/errors"
)

func newAuthService(
	userRepo *MockUserRepository,
	patientRepo *MockPatientRepository,
	doctorRepo *MockDoctorRepository,
	sessions *MockSessionStore,
) *services.AuthService {
	return services.NewAuthService(userRepo, patientRepo, doctorRepo, sessions, time.Hour)
}

func TestAuthService_Register(t *testing.T) {
	t.Run("creates a patient user with its profile", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		patientRepo := new(MockPatientRepository)
		service := newAuthService(userRepo, patientRepo, new(MockDoctorRepository), new(MockSessionStore))

		userRepo.On("EmailExists", mock.Anything, "jane@example.com").Return(false, nil)
		patientRepo.On("CreateWithUser", mock.Anything, mock.MatchedBy(func(u *entities.User) bool {
			return u.Role == entities.RolePatient && u.Email == "jane@example.com" && u.PasswordHash != "secret"
		}), mock.MatchedBy(func(p *entities.Patient) bool {
			return p.Age == 29 && p.Phone == "+15550100"
		})).Return(nil)

		user, err := service.Register(context.Background(), services.RegisterInput{
			Name:     "Jane Doe",
			Email:    "  Jane@Example.COM ",
			Password: "secret",
			Age:      29,
			Phone:    "+15550100",
		})

		assert.NoError(t, err)
		assert.Equal(t, "jane@example.com", user.Email)
		userRepo.AssertExpectations(t)
		patientRepo.AssertExpectations(t)
	})

	t.Run("user and profile are written as one unit", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		patientRepo := new(MockPatientRepository)
		service := newAuthService(userRepo, patientRepo, new(MockDoctorRepository), new(MockSessionStore))

		userRepo.On("EmailExists", mock.Anything, "jane@example.com").Return(false, nil)
		patientRepo.On("CreateWithUser", mock.Anything, mock.Anything, mock.Anything).
			Return(apperrors.NewInternalError("failed to create patient", context.DeadlineExceeded))

		_, err := service.Register(context.Background(), services.RegisterInput{
			Name:     "Jane Doe",
			Email:    "jane@example.com",
			Password: "secret",
		})

		assert.Error(t, err)
		// Registration performs no writes outside the transactional create.
		userRepo.AssertNotCalled(t, "Create")
		patientRepo.AssertNotCalled(t, "Create")
	})

	t.Run("rejects a duplicate email", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		patientRepo := new(MockPatientRepository)
		service := newAuthService(userRepo, patientRepo, new(MockDoctorRepository), new(MockSessionStore))

		userRepo.On("EmailExists", mock.Anything, "jane@example.com").Return(true, nil)

		_, err := service.Register(context.Background(), services.RegisterInput{
			Name:     "Jane Doe",
			Email:    "jane@example.com",
			Password: "secret",
		})

		assert.True(t, apperrors.IsConflict(err))
		patientRepo.AssertNotCalled(t, "CreateWithUser")
	})

	t.Run("requires name, email and password", func(t *testing.T) {
		service := newAuthService(new(MockUserRepository), new(MockPatientRepository), new(MockDoctorRepository), new(MockSessionStore))

		_, err := service.Register(context.Background(), services.RegisterInput{Name: "Jane Doe"})

		assert.True(t, apperrors.IsValidation(err))
	})
}

func TestAuthService_Login(t *testing.T) {
	user := func(role entities.Role) *entities.User {
		return &entities.User{
			ID:           "user-1",
			Email:        "jane@example.com",
			PasswordHash: services.HashPassword("secret"),
			Role:         role,
			Name:         "Jane Doe",
		}
	}

	t.Run("patient login resolves the patient profile into the session", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		patientRepo := new(MockPatientRepository)
		sessions := new(MockSessionStore)
		service := newAuthService(userRepo, patientRepo, new(MockDoctorRepository), sessions)

		userRepo.On("GetByEmail", mock.Anything, "jane@example.com").Return(user(entities.RolePatient), nil)
		patientRepo.On("GetByUserID", mock.Anything, "user-1").Return(&entities.Patient{ID: "pat-1", UserID: "user-1"}, nil)
		sessions.On("Create", mock.Anything, mock.MatchedBy(func(s *entities.Session) bool {
			return s.PatientID == "pat-1" && s.DoctorID == "" && s.Role == entities.RolePatient && s.Token != ""
		}), time.Hour).Return(nil)

		session, err := service.Login(context.Background(), "Jane@Example.com", "secret")

		assert.NoError(t, err)
		assert.Equal(t, "pat-1", session.PatientID)
		sessions.AssertExpectations(t)
	})

	t.Run("doctor login resolves the doctor profile into the session", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		doctorRepo := new(MockDoctorRepository)
		sessions := new(MockSessionStore)
		service := newAuthService(userRepo, new(MockPatientRepository), doctorRepo, sessions)

		userRepo.On("GetByEmail", mock.Anything, "jane@example.com").Return(user(entities.RoleDoctor), nil)
		doctorRepo.On("GetByUserID", mock.Anything, "user-1").Return(&entities.Doctor{ID: "doc-1", UserID: "user-1"}, nil)
		sessions.On("Create", mock.Anything, mock.MatchedBy(func(s *entities.Session) bool {
			return s.DoctorID == "doc-1" && s.PatientID == ""
		}), time.Hour).Return(nil)

		session, err := service.Login(context.Background(), "jane@example.com", "secret")

		assert.NoError(t, err)
		assert.Equal(t, "doc-1", session.DoctorID)
	})

	t.Run("wrong password is unauthorized", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		sessions := new(MockSessionStore)
		service := newAuthService(userRepo, new(MockPatientRepository), new(MockDoctorRepository), sessions)

		userRepo.On("GetByEmail", mock.Anything, "jane@example.com").Return(user(entities.RolePatient), nil)

		_, err := service.Login(context.Background(), "jane@example.com", "wrong")

		assert.True(t, apperrors.IsUnauthorized(err))
		sessions.AssertNotCalled(t, "Create")
	})

	t.Run("unknown email is unauthorized, not not-found", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		service := newAuthService(userRepo, new(MockPatientRepository), new(MockDoctorRepository), new(MockSessionStore))

		userRepo.On("GetByEmail", mock.Anything, "jane@example.com").
			Return(nil, apperrors.NewNotFoundError("user not found"))

		_, err := service.Login(context.Background(), "jane@example.com", "secret")

		assert.True(t, apperrors.IsUnauthorized(err))
		assert.Contains(t, err.Error(), "invalid email or password")
	})
}

func TestHashPassword(t *testing.T) {
	assert.Equal(t, services.HashPassword("secret"), services.HashPassword("secret"))
	assert.NotEqual(t, services.HashPassword("secret"), services.HashPassword("Secret"))
	assert.NotEmpty(t, services.HashPassword(""))
}
