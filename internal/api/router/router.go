// Package router wires the HTTP surface of the triage platform.
package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/aarogyahealth/triage-platform/internal/appointments"
	"github.com/aarogyahealth/triage-platform/internal/doctors"
	httpmiddleware "github.com/aarogyahealth/triage-platform/internal/http/middleware"
	"github.com/aarogyahealth/triage-platform/internal/intake"
	"github.com/aarogyahealth/triage-platform/internal/report"
	"github.com/aarogyahealth/triage-platform/internal/scheduling"
	"github.com/aarogyahealth/triage-platform/internal/sessions"
	"github.com/aarogyahealth/triage-platform/internal/uploads"
	"github.com/aarogyahealth/triage-platform/pkg/logging"
)

// Config holds router configuration.
type Config struct {
	Logger             *logging.Logger
	SessionStore       sessions.Store
	SessionHandler     *sessions.Handler
	IntakeHandler      *intake.Handler
	BookingHandler     *scheduling.Handler
	ResponseHandler    *appointments.Handler
	ReportHandler      *report.Handler
	UploadHandler      *uploads.Handler
	DoctorsHandler     *doctors.Handler
	MetricsHandler     http.Handler
	CORSAllowedOrigins []string
}

// New creates a Chi router with all routes configured.
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	// Public endpoints: health, metrics, login and the doctor's emailed
	// response links, which arrive without any session.
	r.Get("/health", healthCheck)
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}
	r.Post("/api/login", cfg.SessionHandler.Login)
	r.Post("/logout", cfg.SessionHandler.Logout)
	r.Get("/appointment/response/{token}", cfg.ResponseHandler.Respond)
	r.Get("/doctors", cfg.DoctorsHandler.List)

	// Patient endpoints behind the session cookie.
	r.Group(func(patient chi.Router) {
		patient.Use(sessions.Middleware(cfg.SessionStore, cfg.Logger))
		patient.Use(sessions.Require)
		patient.Post("/api/send_message", cfg.IntakeHandler.SendMessage)
		patient.Post("/api/set_gender", cfg.IntakeHandler.SetGender)
		patient.Post("/api/book_appointment", cfg.BookingHandler.Book)
		patient.Post("/upload_medical_report", cfg.UploadHandler.Upload)
		patient.Get("/report/download", cfg.ReportHandler.Download)
	})

	return r
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
