package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/clinicbook/clinicbook/internal/adapters/cache"
	"github.com/clinicbook/clinicbook/internal/adapters/database"
	"github.com/clinicbook/clinicbook/internal/adapters/events"
	"github.com/clinicbook/clinicbook/internal/adapters/state"
	"github.com/clinicbook/clinicbook/internal/api/handlers"
	"github.com/clinicbook/clinicbook/internal/api/middleware"
	"github.com/clinicbook/clinicbook/internal/api/routes"
	"github.com/clinicbook/clinicbook/internal/application/services"
	"github.com/clinicbook/clinicbook/internal/domain/repositories"
	"github.com/clinicbook/clinicbook/internal/infrastructure/clients/postgres"
	"github.com/clinicbook/clinicbook/internal/infrastructure/clients/redis"
	"github.com/clinicbook/clinicbook/internal/infrastructure/observability"
	"github.com/clinicbook/clinicbook/pkg/config"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Server.Env)

	// Set up context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(
			ctx,
			cfg.OTEL.ServiceName,
			cfg.OTEL.ServiceVersion,
			cfg.OTEL.Endpoint,
		)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to set up OpenTelemetry")
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Error().Err(err).Msg("Error shutting down OpenTelemetry")
				}
			}()
			log.Info().Msg("OpenTelemetry initialized")
		}
	}

	// Initialize metrics
	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize metrics")
	}

	// Initialize database client
	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize PostgreSQL client")
	}
	defer pgClient.Close()
	log.Info().Msg("PostgreSQL client initialized")

	// Redis is required: sessions and booking drafts live there
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize Redis client")
	}
	defer redisClient.Close()
	log.Info().Msg("Redis client initialized")

	// Initialize adapters
	cacheProvider := cache.NewRedisAdapter(redisClient)

	userRepo := database.NewUserAdapter(pgClient)
	patientRepo := database.NewPatientAdapter(pgClient)

	var doctorRepo repositories.DoctorRepository = database.NewDoctorAdapter(pgClient)
	doctorRepo = database.NewCachedDoctorAdapter(doctorRepo, cacheProvider)

	availabilityRepo := database.NewAvailabilityAdapter(pgClient)
	appointmentRepo := database.NewAppointmentAdapter(pgClient)
	paymentRepo := database.NewPaymentAdapter(pgClient)
	noteRepo := database.NewPatientNoteAdapter(pgClient)
	feedbackRepo := database.NewFeedbackAdapter(pgClient)

	sessionStore := state.NewRedisSessionStore(redisClient)
	draftStore := state.NewRedisDraftStore(redisClient)

	eventBus := events.NewRedisEventBus(redisClient)
	defer eventBus.Close()

	// Initialize services
	authService := services.NewAuthService(userRepo, patientRepo, doctorRepo, sessionStore, cfg.Session.TTL)
	slotCheck := services.NewSlotCheckService(appointmentRepo, cfg.Booking.AvailabilityFailOpen, metrics)
	bookingService := services.NewBookingService(
		doctorRepo,
		availabilityRepo,
		appointmentRepo,
		slotCheck,
		draftStore,
		eventBus,
		metrics,
		cfg.Booking.SlotLength,
		cfg.Booking.DraftTTL,
	)
	appointmentService := services.NewAppointmentService(appointmentRepo, eventBus, cfg.Booking.SlotLength)
	availabilityService := services.NewAvailabilityService(availabilityRepo, doctorRepo)
	paymentService := services.NewPaymentService(paymentRepo)
	feedbackService := services.NewFeedbackService(feedbackRepo, doctorRepo)
	notesService := services.NewNotesService(noteRepo, appointmentRepo)
	adminService := services.NewAdminService(userRepo, doctorRepo, patientRepo)
	reportService := services.NewReportService(appointmentRepo, paymentRepo)

	// Initialize handlers
	secureCookie := cfg.Server.Env != "development"
	authHandler := handlers.NewAuthHandler(authService, secureCookie)
	bookingHandler := handlers.NewBookingHandler(bookingService)
	appointmentHandler := handlers.NewAppointmentHandler(appointmentService)
	availabilityHandler := handlers.NewAvailabilityHandler(availabilityService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	feedbackHandler := handlers.NewFeedbackHandler(feedbackService)
	notesHandler := handlers.NewNotesHandler(notesService)
	dashboardHandler := handlers.NewDashboardHandler(reportService)
	adminHandler := handlers.NewAdminHandler(adminService, availabilityService, reportService)
	eventStreamHandler := handlers.NewEventStreamHandler(eventBus)

	authMiddleware := middleware.NewAuthMiddleware(sessionStore)

	// Set up routes
	router := routes.NewRouter(
		authHandler,
		bookingHandler,
		appointmentHandler,
		availabilityHandler,
		paymentHandler,
		feedbackHandler,
		notesHandler,
		dashboardHandler,
		adminHandler,
		eventStreamHandler,
		authMiddleware,
		metrics,
	)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.SetupRoutes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server
	go func() {
		log.Info().Str("addr", server.Addr).Msg("Server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
