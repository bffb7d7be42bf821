package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/benbjohnson/clock"
	h "github.com/gorilla/handlers"
	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"

	"github.com/plannerhub/planner-api/internal/config"
	"github.com/plannerhub/planner-api/internal/handlers"
	"github.com/plannerhub/planner-api/internal/middleware"
	"github.com/plannerhub/planner-api/internal/migration"
	"github.com/plannerhub/planner-api/internal/notification"
	"github.com/plannerhub/planner-api/internal/reminder"
	"github.com/plannerhub/planner-api/internal/repository"
	"github.com/plannerhub/planner-api/internal/routes"
	"github.com/plannerhub/planner-api/internal/scheduler"
	plannertemporal "github.com/plannerhub/planner-api/internal/temporal"
	"github.com/plannerhub/planner-api/internal/temporal/activities"
	"github.com/plannerhub/planner-api/internal/temporal/workflows"

	_ "github.com/lib/pq" // PostgreSQL driver
	tc "go.temporal.io/sdk/client"
	"go.temporal.io/sdk/worker"
)

type application struct {
	config         *config.Config
	db             *sql.DB
	temporalClient tc.Client
	logger         zerolog.Logger
	deliveries     notification.Service
	probe          *scheduler.Probe
}

func main() {
	// Set up structured, level-based logging.
	consoleWriter := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen}
	logger := zerolog.New(consoleWriter).With().Timestamp().Logger()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.SetFlags(0)
	log.SetOutput(logger)

	goose.SetLogger(migration.NewGooseAdapter(logger))

	// Load configuration.
	cfg := config.Load()

	// Initialize database connection.
	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to the database")
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Fatal().Err(err).Msg("Failed to ping database")
	}

	// Run database migrations.
	migration.RunMigrations(cfg.DatabaseURL, logger)

	// Optional email transport.
	var mailer notification.Mailer
	if cfg.Email.SMTPHost != "" {
		smtpMailer, err := notification.NewSMTPMailer(cfg.Email, logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to configure mailer")
		}
		mailer = smtpMailer
	} else {
		logger.Info().Msg("SMTP not configured, email notifications disabled")
	}

	// Initialize the notification delivery service.
	notificationRepo := repository.NewNotificationRepository(db)
	deliveries := notification.NewService(notificationRepo, mailer, clock.New(), logger)

	// Initialize Temporal client.
	temporalClient, err := tc.Dial(tc.Options{
		HostPort:  cfg.Temporal.HostPort,
		Namespace: cfg.Temporal.Namespace,
		Logger:    plannertemporal.NewSDKLogger(logger),
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("Unable to create Temporal client")
	}
	defer temporalClient.Close()

	app := &application{
		config:         cfg,
		db:             db,
		temporalClient: temporalClient,
		logger:         logger,
		deliveries:     deliveries,
		probe:          scheduler.NewProbe(db, temporalClient),
	}

	// Start the notification delivery worker.
	deliveryWorker := app.startDeliveryWorker(logger)

	// Start the reminder scheduler.
	reminderScheduler := app.buildScheduler(logger)
	if err := reminderScheduler.Start(); err != nil {
		logger.Fatal().Err(err).Msg("Failed to start reminder scheduler")
	}

	// Initialize the HTTP router and middleware.
	router := routes.NewRouter(
		handlers.NewHealthHandler(app.probe),
		handlers.NewNotificationHandler(deliveries, logger),
	)
	loggedRouter := middleware.LoggingMiddleware(logger)(router)
	corsHandler := h.CORS(
		h.AllowedOrigins([]string{"http://localhost:3000"}),
		h.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		h.AllowedHeaders([]string{"Content-Type", "Authorization"}),
		h.AllowCredentials(),
	)(loggedRouter)

	// Start the HTTP server and handle graceful shutdown.
	app.startServer(corsHandler, reminderScheduler, deliveryWorker, logger)

	logger.Info().Msg("Application terminated.")
}

// buildScheduler wires the dependency probe, enqueuer and all reminder
// processors into the per-minute loop.
func (app *application) buildScheduler(logger zerolog.Logger) *scheduler.Scheduler {
	cfg := app.config.Scheduler

	examRepo := repository.NewExamRepository(app.db)
	assignmentRepo := repository.NewAssignmentRepository(app.db)
	milestoneRepo := repository.NewMilestoneRepository(app.db)
	goalRepo := repository.NewStudyGoalRepository(app.db)
	sessionRepo := repository.NewStudySessionRepository(app.db)
	userRepo := repository.NewUserRepository(app.db)

	enqueuer := reminder.NewTemporalEnqueuer(app.temporalClient, app.probe.QueueReady, logger)
	gate := reminder.NewDailyGate(cfg.DailyRunHour, cfg.DailyRunMinute)

	examHorizon := time.Duration(cfg.ExamLookaheadDays) * 24 * time.Hour
	assignmentHorizon := time.Duration(cfg.AssignmentLookaheadHours) * time.Hour
	milestoneHorizon := time.Duration(cfg.MilestoneLookaheadHours) * time.Hour

	processors := []reminder.Processor{
		reminder.NewExamProcessor(examRepo, userRepo, enqueuer, examHorizon, logger),
		reminder.NewAssignmentProcessor(assignmentRepo, userRepo, enqueuer, assignmentHorizon, logger),
		reminder.NewMilestoneProcessor(milestoneRepo, userRepo, enqueuer, milestoneHorizon, logger),
		reminder.NewStudyGoalProcessor(goalRepo, sessionRepo, userRepo, enqueuer, gate, logger),
		reminder.NewSmartStudyProcessor(userRepo, examRepo, sessionRepo, enqueuer, gate, logger),
		reminder.NewRetrospectiveProcessor(examRepo, userRepo, enqueuer, gate, logger),
	}

	return scheduler.New(app.probe, processors, clock.New(), logger)
}

func (app *application) startDeliveryWorker(logger zerolog.Logger) worker.Worker {
	w := worker.New(app.temporalClient, plannertemporal.TaskQueueName, worker.Options{
		MaxConcurrentActivityExecutionSize: app.config.Worker.Concurrency,
	})

	w.RegisterWorkflow(workflows.NotificationWorkflow)
	w.RegisterActivity(&activities.Activities{Deliveries: app.deliveries})

	// Start the worker in a goroutine so it doesn't block.
	go func() {
		logger.Info().Msg("Starting notification delivery worker...")
		if err := w.Run(worker.InterruptCh()); err != nil {
			logger.Fatal().Err(err).Msg("Unable to start worker")
		}
	}()

	return w
}

// startServer launches the HTTP server and handles graceful shutdown.
func (app *application) startServer(handler http.Handler, reminderScheduler *scheduler.Scheduler, deliveryWorker worker.Worker, logger zerolog.Logger) {
	server := &http.Server{
		Addr:    ":" + app.config.ServerPort,
		Handler: handler,
	}

	// Channel to listen for server errors
	serverErrCh := make(chan error, 1)
	go func() {
		logger.Info().Msgf("Server listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrCh <- err
		}
	}()

	// Wait for an interrupt signal or a server error.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-quit:
		logger.Info().Msgf("Received signal: %s. Shutting down...", sig)
	case err := <-serverErrCh:
		logger.Error().Err(err).Msg("Server error occurred")
	}

	// Stop producing new reminder jobs before tearing anything else down.
	reminderScheduler.Stop()

	// Gracefully shut down the HTTP server.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("HTTP server shutdown error")
	} else {
		logger.Info().Msg("HTTP server shutdown complete.")
	}

	// Stop the delivery worker.
	logger.Info().Msg("Stopping notification delivery worker...")
	deliveryWorker.Stop()
	logger.Info().Msg("Notification delivery worker stopped.")
}
