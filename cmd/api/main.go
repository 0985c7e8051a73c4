package main

import (
	"context"
	"crypto/tls"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/aarogyahealth/triage-platform/internal/api/router"
	"github.com/aarogyahealth/triage-platform/internal/appointments"
	"github.com/aarogyahealth/triage-platform/internal/calendar"
	appconfig "github.com/aarogyahealth/triage-platform/internal/config"
	"github.com/aarogyahealth/triage-platform/internal/doctors"
	"github.com/aarogyahealth/triage-platform/internal/intake"
	"github.com/aarogyahealth/triage-platform/internal/notify"
	"github.com/aarogyahealth/triage-platform/internal/observability/metrics"
	"github.com/aarogyahealth/triage-platform/internal/report"
	"github.com/aarogyahealth/triage-platform/internal/scheduling"
	"github.com/aarogyahealth/triage-platform/internal/sessions"
	"github.com/aarogyahealth/triage-platform/internal/token"
	"github.com/aarogyahealth/triage-platform/internal/uploads"
	"github.com/aarogyahealth/triage-platform/pkg/logging"
)

func main() {
	_ = godotenv.Load()

	cfg := appconfig.Load()
	logger := logging.New(cfg.LogLevel)
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	logger.Info("starting triage platform API server",
		"env", cfg.Env,
		"port", cfg.Port,
		"appointments_backend", cfg.AppointmentsBackend,
	)

	ctx := context.Background()

	registry := prometheus.NewRegistry()
	triageMetrics := metrics.NewTriageMetrics(registry)

	codec, err := token.NewCodec(cfg.TokenSigningSecret, cfg.TokenMaxAge)
	if err != nil {
		logger.Error("failed to create token codec", "error", err)
		os.Exit(1)
	}

	// Appointment record store.
	var aptStore appointments.Store
	switch cfg.AppointmentsBackend {
	case "postgres":
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Error("failed to connect to postgres", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		aptStore = appointments.NewPostgresStore(pool)
	default:
		fileStore, err := appointments.NewFileStore(cfg.AppointmentsDir)
		if err != nil {
			logger.Error("failed to open appointments directory", "error", err)
			os.Exit(1)
		}
		aptStore = fileStore
	}

	// Patient session store.
	var sessionStore sessions.Store
	if cfg.RedisAddr != "" {
		opts := &redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword}
		if cfg.RedisTLS {
			opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
		}
		client := redis.NewClient(opts)
		if err := client.Ping(ctx).Err(); err != nil {
			logger.Error("failed to reach redis", "error", err, "addr", cfg.RedisAddr)
			os.Exit(1)
		}
		defer func() { _ = client.Close() }()
		sessionStore = sessions.NewRedisStore(client, cfg.SessionTTL)
	} else {
		logger.Warn("REDIS_ADDR not set, sessions are in-memory and lost on restart")
		sessionStore = sessions.NewMemoryStore(cfg.SessionTTL)
	}

	// Outbound email.
	var mailer notify.Mailer
	if sg := notify.NewSendGridSender(notify.SendGridConfig{
		APIKey:    cfg.SendGridAPIKey,
		FromEmail: cfg.SendGridFromEmail,
		FromName:  cfg.SendGridFromName,
	}, logger); sg != nil {
		mailer = sg
	} else {
		logger.Warn("SENDGRID_API_KEY not set, emails are logged instead of sent")
		mailer = notify.NewStubMailer(logger)
	}
	notifier := notify.NewService(mailer, logger)

	// Meeting links.
	var meetings calendar.Scheduler = calendar.NewStaticScheduler(cfg.FallbackMeetLink)
	if cfg.CalendarCredentialsFile != "" {
		google, err := calendar.NewGoogleScheduler(ctx, cfg.CalendarCredentialsFile, cfg.CalendarID, cfg.FallbackMeetLink, logger)
		if err != nil {
			logger.Warn("calendar integration unavailable, using placeholder links", "error", err)
		} else {
			meetings = google
		}
	} else {
		logger.Warn("CALENDAR_CREDENTIALS_FILE not set, using placeholder meeting links")
	}

	// Gemini clients for intake chat and report analysis.
	intakeLLM, err := intake.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModelID, cfg.LLMRequestBudget)
	if err != nil {
		logger.Error("failed to create intake LLM client", "error", err)
		os.Exit(1)
	}
	defer func() { _ = intakeLLM.Close() }()
	reportLLM, err := report.NewGeminiGenerator(ctx, cfg.GeminiAPIKey, cfg.ReportModelID, cfg.LLMRequestBudget)
	if err != nil {
		logger.Error("failed to create report LLM client", "error", err)
		os.Exit(1)
	}
	defer func() { _ = reportLLM.Close() }()

	uploadStore, err := uploads.NewStore(cfg.UploadsDir)
	if err != nil {
		logger.Error("failed to open uploads directory", "error", err)
		os.Exit(1)
	}

	loc, err := time.LoadLocation(cfg.TimezoneLocation)
	if err != nil {
		logger.Warn("unknown timezone, using UTC", "timezone", cfg.TimezoneLocation)
		loc = time.UTC
	}

	directory := doctors.NewDirectory(doctors.Seed())
	responder := appointments.NewResponder(codec, aptStore, notifier, triageMetrics, logger)
	orchestrator := scheduling.NewOrchestrator(scheduling.Config{
		Directory: directory,
		Calendar:  meetings,
		Tokens:    codec,
		Notifier:  notifier,
		BaseURL:   cfg.PublicBaseURL,
		Location:  loc,
		Metrics:   triageMetrics,
		Logger:    logger,
	})

	r := router.New(&router.Config{
		Logger:             logger,
		SessionStore:       sessionStore,
		SessionHandler:     sessions.NewHandler(sessionStore, logger),
		IntakeHandler:      intake.NewHandler(intake.NewService(intakeLLM, triageMetrics, logger), sessionStore, logger),
		BookingHandler:     scheduling.NewHandler(orchestrator, logger),
		ResponseHandler:    appointments.NewHandler(responder, logger),
		ReportHandler:      report.NewHandler(report.NewService(reportLLM, triageMetrics, logger), logger),
		UploadHandler:      uploads.NewHandler(uploadStore, sessionStore, logger),
		DoctorsHandler:     doctors.NewHandler(directory),
		MetricsHandler:     promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
