package services

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/clinicbook/clinicbook/internal/domain/entities"
	"github.com/clinicbook/clinicbook/internal/domain/providers"
	"github.com/clinicbook/clinicbook/internal/domain/repositories"
	apperrors "github.com/clinicbook/clinicbook/pkg/errors"
)

// AuthService handles registration, login and session lifecycle.
type AuthService struct {
	userRepo     repositories.UserRepository
	patientRepo  repositories.PatientRepository
	doctorRepo   repositories.DoctorRepository
	sessionStore providers.SessionStore
	sessionTTL   time.Duration
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo repositories.UserRepository,
	patientRepo repositories.PatientRepository,
	doctorRepo repositories.DoctorRepository,
	sessionStore providers.SessionStore,
	sessionTTL time.Duration,
) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		patientRepo:  patientRepo,
		doctorRepo:   doctorRepo,
		sessionStore: sessionStore,
		sessionTTL:   sessionTTL,
	}
}

// RegisterInput carries the self-registration form fields.
type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Age      int    `json:"age"`
	Phone    string `json:"phone"`
}

// Register creates a patient account. Self-registration never creates
// doctor or admin users; those come from the admin area.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*entities.User, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(strings.ToLower(input.Email))

	if input.Name == "" || input.Email == "" || input.Password == "" {
		return nil, apperrors.NewValidationError("name, email and password are required")
	}

	exists, err := s.userRepo.EmailExists(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.NewConflictError("an account with this email already exists")
	}

	now := time.Now()
	user := &entities.User{
		ID:           uuid.New().String(),
		Email:        input.Email,
		PasswordHash: HashPassword(input.Password),
		Role:         entities.RolePatient,
		Name:         input.Name,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	patient := &entities.Patient{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		Age:       input.Age,
		Phone:     input.Phone,
		CreatedAt: now,
		UpdatedAt: now,
	}

	// User and profile commit together; a failed profile insert leaves
	// no account holding the email.
	if err := s.patientRepo.CreateWithUser(ctx, user, patient); err != nil {
		return nil, err
	}

	return user, nil
}

// Login verifies credentials and opens a session
func (s *AuthService) Login(ctx context.Context, email, password string) (*entities.Session, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return nil, apperrors.NewValidationError("email and password are required")
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NewUnauthorizedError("invalid email or password")
		}
		return nil, err
	}

	if user.PasswordHash != HashPassword(password) {
		return nil, apperrors.NewUnauthorizedError("invalid email or password")
	}

	session := &entities.Session{
		Token:     uuid.New().String(),
		UserID:    user.ID,
		Role:      user.Role,
		Name:      user.Name,
		CreatedAt: time.Now(),
	}

	switch user.Role {
	case entities.RolePatient:
		patient, err := s.patientRepo.GetByUserID(ctx, user.ID)
		if err != nil {
			return nil, err
		}
		session.PatientID = patient.ID
	case entities.RoleDoctor:
		doctor, err := s.doctorRepo.GetByUserID(ctx, user.ID)
		if err != nil {
			return nil, err
		}
		session.DoctorID = doctor.ID
	}

	if err := s.sessionStore.Create(ctx, session, s.sessionTTL); err != nil {
		return nil, err
	}

	return session, nil
}

// Logout closes the session. Logging out a missing session is a no-op.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.sessionStore.Delete(ctx, token)
}

// SessionByToken resolves a session token
func (s *AuthService) SessionByToken(ctx context.Context, token string) (*entities.Session, error) {
	return s.sessionStore.Get(ctx, token)
}

// HashPassword hashes a password with SHA-256 and encodes it as base64.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return base64.StdEncoding.EncodeToString(sum[:])
}
