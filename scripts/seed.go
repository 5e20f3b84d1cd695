package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/clinicbook/clinicbook/internal/adapters/database"
	"github.com/clinicbook/clinicbook/internal/application/services"
	"github.com/clinicbook/clinicbook/internal/domain/entities"
	"github.com/clinicbook/clinicbook/internal/infrastructure/clients/postgres"
	"github.com/clinicbook/clinicbook/pkg/config"
)

type seedDoctor struct {
	name      string
	email     string
	specialty string
	fee       float64
	windows   []entities.DoctorAvailability
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer pgClient.Close()

	ctx := context.Background()

	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, truncating tables before seeding")
		_, err := pgClient.DB().ExecContext(ctx, `
			TRUNCATE TABLE
				feedback,
				patient_notes,
				payments,
				appointments,
				doctor_availabilities,
				patients,
				doctors,
				users
			RESTART IDENTITY CASCADE
		`)
		if err != nil {
			log.Fatalf("Failed to truncate tables: %v", err)
		}
	}

	userRepo := database.NewUserAdapter(pgClient)
	doctorRepo := database.NewDoctorAdapter(pgClient)
	patientRepo := database.NewPatientAdapter(pgClient)
	availabilityRepo := database.NewAvailabilityAdapter(pgClient)

	now := time.Now()

	// Admin account
	admin := &entities.User{
		ID:           uuid.New().String(),
		Email:        "admin@clinicbook.local",
		PasswordHash: services.HashPassword("admin123"),
		Role:         entities.RoleAdmin,
		Name:         "Administrator",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := userRepo.Create(ctx, admin); err != nil {
		log.Fatalf("Failed to seed admin: %v", err)
	}

	doctors := []seedDoctor{
		{
			name: "Dr. Amina Yusuf", email: "amina.yusuf@clinicbook.local",
			specialty: "Cardiology", fee: 150,
			windows: []entities.DoctorAvailability{
				{Day: "Monday", StartTime: "09:00", EndTime: "12:00", Location: "Main Clinic"},
				{Day: "Wednesday", StartTime: "14:00", EndTime: "17:00", Location: "Main Clinic"},
			},
		},
		{
			name: "Dr. James Okoro", email: "james.okoro@clinicbook.local",
			specialty: "Pediatrics", fee: 100,
			windows: []entities.DoctorAvailability{
				{Day: "Tuesday", StartTime: "10:00", EndTime: "13:00", Location: "Children's Wing"},
				{Day: "Thursday", StartTime: "09:00", EndTime: "12:00", Location: "Children's Wing"},
			},
		},
		{
			name: "Dr. Grace Mensah", email: "grace.mensah@clinicbook.local",
			specialty: "Dermatology", fee: 120,
			windows: []entities.DoctorAvailability{
				{Day: "Friday", StartTime: "08:00", EndTime: "15:00", Location: "Annex"},
			},
		},
	}

	for _, d := range doctors {
		user := &entities.User{
			ID:           uuid.New().String(),
			Email:        d.email,
			PasswordHash: services.HashPassword("doctor123"),
			Role:         entities.RoleDoctor,
			Name:         d.name,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := userRepo.Create(ctx, user); err != nil {
			log.Fatalf("Failed to seed doctor user %s: %v", d.email, err)
		}

		doctor := &entities.Doctor{
			ID:              uuid.New().String(),
			UserID:          user.ID,
			Specialty:       d.specialty,
			ConsultationFee: d.fee,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		if err := doctorRepo.Create(ctx, doctor); err != nil {
			log.Fatalf("Failed to seed doctor %s: %v", d.email, err)
		}

		for _, w := range d.windows {
			w.ID = uuid.New().String()
			w.DoctorID = doctor.ID
			if err := availabilityRepo.Create(ctx, &w); err != nil {
				log.Fatalf("Failed to seed availability for %s: %v", d.email, err)
			}
		}
	}

	// Demo patient
	patientUser := &entities.User{
		ID:           uuid.New().String(),
		Email:        "pat.doe@clinicbook.local",
		PasswordHash: services.HashPassword("patient123"),
		Role:         entities.RolePatient,
		Name:         "Pat Doe",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := userRepo.Create(ctx, patientUser); err != nil {
		log.Fatalf("Failed to seed patient user: %v", err)
	}

	patient := &entities.Patient{
		ID:        uuid.New().String(),
		UserID:    patientUser.ID,
		Age:       34,
		Phone:     "+15550100",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := patientRepo.Create(ctx, patient); err != nil {
		log.Fatalf("Failed to seed patient: %v", err)
	}

	log.Println("Seeding complete")
}
