package scheduling

import (
	"encoding/json"
	"net/http"
	"path/filepath"

	"github.com/aarogyahealth/triage-platform/internal/notify"
	"github.com/aarogyahealth/triage-platform/internal/sessions"
	"github.com/aarogyahealth/triage-platform/pkg/logging"
)

// Handler serves POST /api/book_appointment. Patient identity, symptom
// summary and uploaded reports come from the session; the body names the
// doctor and the slot.
type Handler struct {
	orchestrator *Orchestrator
	logger       *logging.Logger
}

// NewHandler creates the booking handler.
func NewHandler(o *Orchestrator, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{orchestrator: o, logger: logger}
}

type bookingRequest struct {
	DoctorEmail     string `json:"doctor_email"`
	AppointmentTime string `json:"appointment_time"`
	PatientEmail    string `json:"patient_email,omitempty"`
}

// Book runs the scheduling pipeline for the logged-in patient. The outcome
// travels in the JSON body; only a malformed request is an HTTP error.
func (h *Handler) Book(w http.ResponseWriter, r *http.Request) {
	var body bookingRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, ScheduleResult{Message: "invalid request body"})
		return
	}

	req := ScheduleRequest{
		DoctorEmail:  body.DoctorEmail,
		PatientEmail: body.PatientEmail,
		Slot:         body.AppointmentTime,
	}
	if sess, ok := sessions.FromContext(r.Context()); ok {
		if sess.Email != "" {
			req.PatientEmail = sess.Email
		}
		req.SymptomSummary = sess.SymptomSummary
		req.PrimarySymptoms = sess.PrimarySymptoms
		req.AdditionalSymptoms = sess.AdditionalSymptoms
		req.SymptomDuration = sess.SymptomDuration
		for _, path := range sess.ReportFiles {
			req.Attachments = append(req.Attachments, notify.Attachment{
				Path:     path,
				Filename: filepath.Base(path),
			})
		}
	}

	result := h.orchestrator.Schedule(r.Context(), req)
	writeJSON(w, http.StatusOK, result)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
