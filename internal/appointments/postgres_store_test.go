package appointments

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
)

func TestPostgresStoreSave(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()

	rec := sampleRecord("abc123", StatusAccepted)
	mock.ExpectExec("INSERT INTO appointments").
		WithArgs(
			rec.ID, rec.DoctorEmail, rec.PatientEmail, rec.AppointmentTime,
			rec.MeetLink, rec.DoctorName, rec.DoctorSpecialization,
			rec.SymptomSummary, rec.PrimarySymptoms, rec.AdditionalSymptoms,
			rec.SymptomDuration, string(rec.Status), rec.ResponseTime,
		).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	store := NewPostgresStore(mock)
	if err := store.Save(context.Background(), rec); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresStoreLoad(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()

	responseTime := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	rows := pgxmock.NewRows([]string{
		"id", "doctor_email", "patient_email", "appointment_time", "meet_link",
		"doctor_name", "doctor_specialization", "symptom_summary",
		"primary_symptoms", "additional_symptoms", "symptom_duration",
		"status", "response_time",
	}).AddRow(
		"abc123", "doc@example.com", "pat@example.com", "2026-03-01 10:00",
		"https://meet.google.com/abc-defg-hij", "Dr. Priya Sharma",
		"Gastroenterologist", "", "", "", "", "rejected", responseTime,
	)
	mock.ExpectQuery("SELECT (.+) FROM appointments").WithArgs("abc123").WillReturnRows(rows)

	store := NewPostgresStore(mock)
	rec, err := store.Load(context.Background(), "abc123")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if rec.Status != StatusRejected {
		t.Errorf("expected rejected status, got %s", rec.Status)
	}
	if rec.DoctorName != "Dr. Priya Sharma" {
		t.Errorf("unexpected doctor name %q", rec.DoctorName)
	}
}

func TestPostgresStoreLoadAbsent(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery("SELECT (.+) FROM appointments").WithArgs("missing").WillReturnError(pgx.ErrNoRows)

	store := NewPostgresStore(mock)
	if _, err := store.Load(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPostgresStoreRejectsMissingID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()

	store := NewPostgresStore(mock)
	if err := store.Save(context.Background(), &Record{}); !errors.Is(err, ErrMissingID) {
		t.Errorf("expected ErrMissingID, got %v", err)
	}
}
