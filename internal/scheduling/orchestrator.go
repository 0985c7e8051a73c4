// Package scheduling turns a confirmed booking choice into a doctor-facing
// appointment request: meeting link, signed response token and the request
// email. It never contacts the patient and never writes an appointment
// record; both belong to the response side.
package scheduling

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/aarogyahealth/triage-platform/internal/appointments"
	"github.com/aarogyahealth/triage-platform/internal/calendar"
	"github.com/aarogyahealth/triage-platform/internal/doctors"
	"github.com/aarogyahealth/triage-platform/internal/notify"
	"github.com/aarogyahealth/triage-platform/internal/observability/metrics"
	"github.com/aarogyahealth/triage-platform/pkg/logging"
)

// slotLayout is the wall-clock format booking slots arrive in.
const slotLayout = "2006-01-02 15:04"

// defaultDuration is the consultation length used for the calendar event.
const defaultDuration = 30 * time.Minute

// TokenIssuer mints the signed token embedded in the doctor's response links.
type TokenIssuer interface {
	Encode(req appointments.Request) (string, error)
}

// DoctorNotifier dispatches the appointment request email to the doctor.
type DoctorNotifier interface {
	SendDoctorRequest(ctx context.Context, req notify.DoctorRequest) notify.Result
}

// ScheduleRequest is a patient's confirmed booking choice.
type ScheduleRequest struct {
	DoctorEmail        string
	PatientEmail       string
	Slot               string
	SymptomSummary     string
	PrimarySymptoms    string
	AdditionalSymptoms string
	SymptomDuration    string
	Attachments        []notify.Attachment
}

// ScheduleResult reports what happened. Success is true only when the doctor
// was notified with a real meeting link; a degraded link still notifies but
// flags the result so the caller can tell the patient.
type ScheduleResult struct {
	Success       bool           `json:"success"`
	Message       string         `json:"message"`
	AppointmentID string         `json:"appointment_id,omitempty"`
	MeetLink      string         `json:"meet_link,omitempty"`
	LinkDegraded  bool           `json:"link_degraded,omitempty"`
	Notification  *notify.Result `json:"notification,omitempty"`
}

// Config carries the orchestrator's collaborators.
type Config struct {
	Directory *doctors.Directory
	Calendar  calendar.Scheduler
	Tokens    TokenIssuer
	Notifier  DoctorNotifier
	BaseURL   string
	Location  *time.Location
	Metrics   *metrics.TriageMetrics
	Logger    *logging.Logger
}

// Orchestrator runs the booking pipeline.
type Orchestrator struct {
	directory *doctors.Directory
	calendar  calendar.Scheduler
	tokens    TokenIssuer
	notifier  DoctorNotifier
	baseURL   string
	loc       *time.Location
	metrics   *metrics.TriageMetrics
	logger    *logging.Logger
	now       func() time.Time
}

// NewOrchestrator wires the booking pipeline.
func NewOrchestrator(cfg Config) *Orchestrator {
	if cfg.Logger == nil {
		cfg.Logger = logging.Default()
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	return &Orchestrator{
		directory: cfg.Directory,
		calendar:  cfg.Calendar,
		tokens:    cfg.Tokens,
		notifier:  cfg.Notifier,
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		loc:       cfg.Location,
		metrics:   cfg.Metrics,
		logger:    cfg.Logger.Component("scheduling"),
		now:       time.Now,
	}
}

// Schedule validates the booking, books the meeting, mints the response
// token and emails the doctor. The doctor lookup and slot parse happen
// before any external call so a bad request never sends email.
func (o *Orchestrator) Schedule(ctx context.Context, req ScheduleRequest) ScheduleResult {
	if strings.TrimSpace(req.PatientEmail) == "" {
		o.metrics.ObserveRequest("invalid_input")
		return ScheduleResult{Message: "patient email is required"}
	}

	doctor, err := o.directory.ByEmail(req.DoctorEmail)
	if err != nil {
		o.logger.Warn("booking for unknown doctor", "doctor_email", req.DoctorEmail)
		o.metrics.ObserveRequest("doctor_not_found")
		return ScheduleResult{Message: "doctor not found"}
	}

	start, err := time.ParseInLocation(slotLayout, req.Slot, o.loc)
	if err != nil {
		o.metrics.ObserveRequest("invalid_input")
		return ScheduleResult{Message: fmt.Sprintf("invalid appointment time %q", req.Slot)}
	}

	link := o.calendar.CreateMeeting(ctx, calendar.Meeting{
		Summary:      fmt.Sprintf("Consultation with %s", doctor.Name),
		Description:  req.SymptomSummary,
		Start:        start,
		Duration:     defaultDuration,
		DoctorEmail:  doctor.Email,
		PatientEmail: req.PatientEmail,
		TimeZone:     o.loc.String(),
	})
	if link.Degraded {
		o.logger.Warn("meeting link degraded", "reason", link.Reason)
	}

	apt := appointments.Request{
		ID:                   appointments.NewRequestID(doctor.Email, req.PatientEmail, req.Slot, o.now()),
		DoctorEmail:          doctor.Email,
		PatientEmail:         req.PatientEmail,
		AppointmentTime:      req.Slot,
		MeetLink:             link.URL,
		DoctorName:           doctor.Name,
		DoctorSpecialization: doctor.Specialization,
		SymptomSummary:       req.SymptomSummary,
		PrimarySymptoms:      req.PrimarySymptoms,
		AdditionalSymptoms:   req.AdditionalSymptoms,
		SymptomDuration:      req.SymptomDuration,
	}

	tok, err := o.tokens.Encode(apt)
	if err != nil {
		o.logger.Error("failed to mint response token", "error", err, "appointment_id", apt.ID)
		o.metrics.ObserveRequest("token_error")
		return ScheduleResult{Message: "could not create the appointment request"}
	}

	result := o.notifier.SendDoctorRequest(ctx, notify.DoctorRequest{
		DoctorEmail:        doctor.Email,
		DoctorName:         doctor.Name,
		PatientEmail:       req.PatientEmail,
		ScheduledTime:      req.Slot,
		SymptomSummary:     req.SymptomSummary,
		PrimarySymptoms:    req.PrimarySymptoms,
		AdditionalSymptoms: req.AdditionalSymptoms,
		SymptomDuration:    req.SymptomDuration,
		MeetLink:           link.URL,
		AcceptURL:          o.responseURL(tok, appointments.ActionAccept),
		RejectURL:          o.responseURL(tok, appointments.ActionReject),
		Attachments:        req.Attachments,
	})
	if !result.Success {
		o.logger.Error("doctor request email failed", "appointment_id", apt.ID, "detail", result.Message)
		o.metrics.ObserveRequest("notify_failed")
		return ScheduleResult{
			Message:       "appointment request could not be sent to the doctor",
			AppointmentID: apt.ID,
			MeetLink:      link.URL,
			LinkDegraded:  link.Degraded,
			Notification:  &result,
		}
	}

	out := ScheduleResult{
		Success:       !link.Degraded,
		Message:       fmt.Sprintf("Appointment request sent to %s. You will be notified once the doctor responds.", doctor.Name),
		AppointmentID: apt.ID,
		MeetLink:      link.URL,
		LinkDegraded:  link.Degraded,
		Notification:  &result,
	}
	if link.Degraded {
		out.Message = fmt.Sprintf("Appointment request sent to %s, but the video link could not be confirmed yet.", doctor.Name)
		o.metrics.ObserveRequest("degraded")
		return out
	}
	o.metrics.ObserveRequest("scheduled")
	o.logger.Info("appointment request dispatched",
		"appointment_id", apt.ID, "doctor", doctor.Email, "slot", req.Slot)
	return out
}

func (o *Orchestrator) responseURL(token, action string) string {
	return fmt.Sprintf("%s/appointment/response/%s?action=%s", o.baseURL, url.PathEscape(token), action)
}
