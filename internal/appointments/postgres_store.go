package appointments

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// pgxQuerier is the subset of pgxpool.Pool the store needs. pgxmock
// satisfies it in tests.
type pgxQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresStore keeps appointment records in the appointments table. Same
// contract as FileStore: upsert on id, ErrNotFound for absent rows.
type PostgresStore struct {
	db pgxQuerier
}

// NewPostgresStore initializes a store backed by a pgx pool.
func NewPostgresStore(db pgxQuerier) *PostgresStore {
	if db == nil {
		panic("appointments: pgx pool required")
	}
	return &PostgresStore{db: db}
}

// Save upserts the record, last write wins.
func (s *PostgresStore) Save(ctx context.Context, rec *Record) error {
	if rec == nil || rec.ID == "" {
		return ErrMissingID
	}
	query := `
		INSERT INTO appointments (
			id, doctor_email, patient_email, appointment_time, meet_link,
			doctor_name, doctor_specialization, symptom_summary,
			primary_symptoms, additional_symptoms, symptom_duration,
			status, response_time
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (id) DO UPDATE SET
			status = EXCLUDED.status,
			response_time = EXCLUDED.response_time
	`
	if _, err := s.db.Exec(ctx, query,
		rec.ID,
		rec.DoctorEmail,
		rec.PatientEmail,
		rec.AppointmentTime,
		rec.MeetLink,
		rec.DoctorName,
		rec.DoctorSpecialization,
		rec.SymptomSummary,
		rec.PrimarySymptoms,
		rec.AdditionalSymptoms,
		rec.SymptomDuration,
		string(rec.Status),
		rec.ResponseTime,
	); err != nil {
		return fmt.Errorf("appointments: insert record %s: %w", rec.ID, err)
	}
	return nil
}

// Load fetches a record by id.
func (s *PostgresStore) Load(ctx context.Context, id string) (*Record, error) {
	if id == "" {
		return nil, ErrMissingID
	}
	query := `
		SELECT id, doctor_email, patient_email, appointment_time, meet_link,
			doctor_name, doctor_specialization, symptom_summary,
			primary_symptoms, additional_symptoms, symptom_duration,
			status, response_time
		FROM appointments
		WHERE id = $1
	`
	var (
		rec    Record
		status string
	)
	if err := s.db.QueryRow(ctx, query, id).Scan(
		&rec.ID,
		&rec.DoctorEmail,
		&rec.PatientEmail,
		&rec.AppointmentTime,
		&rec.MeetLink,
		&rec.DoctorName,
		&rec.DoctorSpecialization,
		&rec.SymptomSummary,
		&rec.PrimarySymptoms,
		&rec.AdditionalSymptoms,
		&rec.SymptomDuration,
		&status,
		&rec.ResponseTime,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("appointments: select record %s: %w", id, err)
	}
	rec.Status = Status(status)
	return &rec, nil
}
