package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/clinicbook/clinicbook/internal/domain/entities"
	"github.com/clinicbook/clinicbook/internal/domain/repositories"
	apperrors "github.com/clinicbook/clinicbook/pkg/errors"
)

// defaultDoctorPassword is the temporary password for admin-created doctor
// accounts until the doctor changes it.
const defaultDoctorPassword = "ChangeMe123!"

// AdminService handles the admin area: doctor account management and
// patient listings.
type AdminService struct {
	userRepo    repositories.UserRepository
	doctorRepo  repositories.DoctorRepository
	patientRepo repositories.PatientRepository
}

// NewAdminService creates a new admin service
func NewAdminService(
	userRepo repositories.UserRepository,
	doctorRepo repositories.DoctorRepository,
	patientRepo repositories.PatientRepository,
) *AdminService {
	return &AdminService{
		userRepo:    userRepo,
		doctorRepo:  doctorRepo,
		patientRepo: patientRepo,
	}
}

// DoctorInput carries the admin doctor form fields.
type DoctorInput struct {
	Name            string  `json:"name"`
	Email           string  `json:"email"`
	Specialty       string  `json:"specialty"`
	ConsultationFee float64 `json:"consultation_fee"`
	Bio             string  `json:"bio"`
}

func (input *DoctorInput) validate() error {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(strings.ToLower(input.Email))
	input.Specialty = strings.TrimSpace(input.Specialty)

	if input.Name == "" || input.Email == "" || input.Specialty == "" {
		return apperrors.NewValidationError("name, email and specialty are required")
	}
	if input.ConsultationFee < 0 {
		return apperrors.NewValidationError("consultation fee cannot be negative")
	}
	return nil
}

// AddDoctor creates a doctor user with a temporary password and the
// matching doctor profile
func (s *AdminService) AddDoctor(ctx context.Context, input DoctorInput) (*entities.Doctor, error) {
	if err := input.validate(); err != nil {
		return nil, err
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
		PasswordHash: HashPassword(defaultDoctorPassword),
		Role:         entities.RoleDoctor,
		Name:         input.Name,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	doctor := &entities.Doctor{
		ID:              uuid.New().String(),
		UserID:          user.ID,
		Specialty:       input.Specialty,
		ConsultationFee: input.ConsultationFee,
		Bio:             input.Bio,
		CreatedAt:       now,
		UpdatedAt:       now,
		Name:            user.Name,
		Email:           user.Email,
	}

	// User and profile commit together; a failed profile insert leaves
	// no account holding the email.
	if err := s.doctorRepo.CreateWithUser(ctx, user, doctor); err != nil {
		return nil, err
	}

	return doctor, nil
}

// EditDoctor updates a doctor's profile and display name
func (s *AdminService) EditDoctor(ctx context.Context, id string, input DoctorInput) (*entities.Doctor, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	doctor, err := s.doctorRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	doctor.Specialty = input.Specialty
	doctor.ConsultationFee = input.ConsultationFee
	doctor.Bio = input.Bio
	doctor.Name = input.Name

	if err := s.doctorRepo.Update(ctx, doctor); err != nil {
		return nil, err
	}

	return doctor, nil
}

// DeleteDoctor removes the doctor's availability windows, profile and user
// account as one unit of work
func (s *AdminService) DeleteDoctor(ctx context.Context, id string) error {
	return s.doctorRepo.Delete(ctx, id)
}

// ListDoctors retrieves all doctors with their availability windows
func (s *AdminService) ListDoctors(ctx context.Context) ([]*entities.Doctor, error) {
	return s.doctorRepo.List(ctx)
}

// GetDoctor retrieves a doctor by ID
func (s *AdminService) GetDoctor(ctx context.Context, id string) (*entities.Doctor, error) {
	return s.doctorRepo.GetByID(ctx, id)
}

// ListPatients retrieves all patients
func (s *AdminService) ListPatients(ctx context.Context) ([]*entities.Patient, error) {
	return s.patientRepo.List(ctx)
}
