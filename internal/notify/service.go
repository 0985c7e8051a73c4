package notify

import (
	"context"
	"fmt"

	"github.com/aarogyahealth/triage-platform/internal/templates"
	"github.com/aarogyahealth/triage-platform/pkg/logging"
)

// DoctorRequest carries everything the doctor-facing request email needs.
// Values are denormalized at scheduling time so rendering never requires a
// directory lookup.
type DoctorRequest struct {
	DoctorEmail        string
	DoctorName         string
	PatientEmail       string
	ScheduledTime      string
	SymptomSummary     string
	PrimarySymptoms    string
	AdditionalSymptoms string
	SymptomDuration    string
	MeetLink           string
	AcceptURL          string
	RejectURL          string
	Attachments        []Attachment
}

// PatientDecision carries the fields for the patient-facing outcome emails.
type PatientDecision struct {
	PatientEmail         string
	DoctorName           string
	DoctorSpecialization string
	ScheduledTime        string
	MeetLink             string
}

// Service composes and dispatches the three appointment emails.
type Service struct {
	mailer   Mailer
	renderer templates.Renderer
	logger   *logging.Logger
}

// NewService creates a notification service.
func NewService(mailer Mailer, logger *logging.Logger) *Service {
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{mailer: mailer, logger: logger}
}

// SendDoctorRequest emails the appointment request with accept/decline links
// to the doctor.
func (s *Service) SendDoctorRequest(ctx context.Context, req DoctorRequest) Result {
	if req.PrimarySymptoms == "" {
		req.PrimarySymptoms = "Not specified"
	}
	if req.AdditionalSymptoms == "" {
		req.AdditionalSymptoms = "None"
	}
	if req.SymptomDuration == "" {
		req.SymptomDuration = "Not specified"
	}
	body, err := s.renderer.Render("doctor_request", doctorRequestHTML, req)
	if err != nil {
		s.logger.Error("failed to render doctor request email", "error", err)
		return Result{Success: false, Message: fmt.Sprintf("failed to render email: %v", err)}
	}
	return s.mailer.Send(ctx, EmailMessage{
		To:          req.DoctorEmail,
		ToName:      req.DoctorName,
		Subject:     "New Patient Appointment Request",
		HTML:        body,
		Attachments: req.Attachments,
	})
}

// SendPatientConfirmation emails the patient after the doctor accepts.
func (s *Service) SendPatientConfirmation(ctx context.Context, dec PatientDecision) Result {
	body, err := s.renderer.Render("patient_confirmed", patientConfirmedHTML, dec)
	if err != nil {
		s.logger.Error("failed to render confirmation email", "error", err)
		return Result{Success: false, Message: fmt.Sprintf("failed to render email: %v", err)}
	}
	return s.mailer.Send(ctx, EmailMessage{
		To:      dec.PatientEmail,
		Subject: fmt.Sprintf("Appointment Confirmed with %s", dec.DoctorName),
		HTML:    body,
	})
}

// SendPatientRejection emails the patient after the doctor declines.
func (s *Service) SendPatientRejection(ctx context.Context, dec PatientDecision) Result {
	body, err := s.renderer.Render("patient_rejected", patientRejectedHTML, dec)
	if err != nil {
		s.logger.Error("failed to render rejection email", "error", err)
		return Result{Success: false, Message: fmt.Sprintf("failed to render email: %v", err)}
	}
	return s.mailer.Send(ctx, EmailMessage{
		To:      dec.PatientEmail,
		Subject: fmt.Sprintf("Appointment Update from %s", dec.DoctorName),
		HTML:    body,
	})
}
