package notify

import (
	"context"
	"strings"
	"testing"

	"github.com/aarogyahealth/triage-platform/pkg/logging"
)

type capturingMailer struct {
	last   EmailMessage
	result Result
}

func (m *capturingMailer) Send(ctx context.Context, msg EmailMessage) Result {
	m.last = msg
	return m.result
}

func TestSendDoctorRequest(t *testing.T) {
	mailer := &capturingMailer{result: Result{Success: true, Message: "ok"}}
	svc := NewService(mailer, logging.Default())

	res := svc.SendDoctorRequest(context.Background(), DoctorRequest{
		DoctorEmail:     "doc@example.com",
		DoctorName:      "Dr. Priya Sharma",
		PatientEmail:    "pat@example.com",
		ScheduledTime:   "2026-03-01 10:00",
		SymptomSummary:  "persistent stomach pain for three days",
		PrimarySymptoms: "stomach pain",
		MeetLink:        "https://meet.google.com/abc-defg-hij",
		AcceptURL:       "https://triage.example/appointment/response/tok?action=accept",
		RejectURL:       "https://triage.example/appointment/response/tok?action=reject",
		Attachments:     []Attachment{{Path: "/tmp/report.pdf", Filename: "report.pdf"}},
	})

	if !res.Success {
		t.Fatalf("expected success, got %+v", res)
	}
	if mailer.last.To != "doc@example.com" {
		t.Errorf("expected doctor recipient, got %s", mailer.last.To)
	}
	if mailer.last.Subject != "New Patient Appointment Request" {
		t.Errorf("unexpected subject %q", mailer.last.Subject)
	}
	if !strings.Contains(mailer.last.HTML, "action=accept") || !strings.Contains(mailer.last.HTML, "action=reject") {
		t.Error("expected accept and reject URLs in body")
	}
	// Optional fields default rather than render empty cells.
	if !strings.Contains(mailer.last.HTML, "Not specified") {
		t.Error("expected unset duration to default to Not specified")
	}
	if len(mailer.last.Attachments) != 1 {
		t.Errorf("expected attachments forwarded, got %d", len(mailer.last.Attachments))
	}
}

func TestSendPatientConfirmation(t *testing.T) {
	mailer := &capturingMailer{result: Result{Success: true}}
	svc := NewService(mailer, logging.Default())

	res := svc.SendPatientConfirmation(context.Background(), PatientDecision{
		PatientEmail:         "pat@example.com",
		DoctorName:           "Dr. Priya Sharma",
		DoctorSpecialization: "Gastroenterologist",
		ScheduledTime:        "2026-03-01 10:00",
		MeetLink:             "https://meet.google.com/abc-defg-hij",
	})

	if !res.Success {
		t.Fatalf("expected success, got %+v", res)
	}
	if mailer.last.To != "pat@example.com" {
		t.Errorf("expected patient recipient, got %s", mailer.last.To)
	}
	if !strings.Contains(mailer.last.Subject, "Appointment Confirmed with Dr. Priya Sharma") {
		t.Errorf("unexpected subject %q", mailer.last.Subject)
	}
	if !strings.Contains(mailer.last.HTML, "meet.google.com") {
		t.Error("expected meet link in confirmation body")
	}
}

func TestSendPatientRejectionOmitsMeetLink(t *testing.T) {
	mailer := &capturingMailer{result: Result{Success: true}}
	svc := NewService(mailer, logging.Default())

	res := svc.SendPatientRejection(context.Background(), PatientDecision{
		PatientEmail:         "pat@example.com",
		DoctorName:           "Dr. Arjun Reddy",
		DoctorSpecialization: "Cardiologist",
		ScheduledTime:        "2026-03-01 13:00",
	})

	if !res.Success {
		t.Fatalf("expected success, got %+v", res)
	}
	if strings.Contains(mailer.last.HTML, "meet.google.com") {
		t.Error("rejection email must not carry a meeting link")
	}
	if !strings.Contains(mailer.last.HTML, "unable to take your appointment") {
		t.Error("expected decline copy in body")
	}
}

func TestServiceReportsMailerFailure(t *testing.T) {
	mailer := &capturingMailer{result: Result{Success: false, Message: "failed to send email: smtp down"}}
	svc := NewService(mailer, logging.Default())

	res := svc.SendPatientConfirmation(context.Background(), PatientDecision{
		PatientEmail: "pat@example.com",
		DoctorName:   "Dr. Priya Sharma",
	})

	if res.Success {
		t.Fatal("expected failure to propagate in result")
	}
	if !strings.Contains(res.Message, "smtp down") {
		t.Errorf("expected diagnostic message, got %q", res.Message)
	}
}
