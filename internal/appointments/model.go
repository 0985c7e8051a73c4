package appointments

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// Status is the doctor's decision on an appointment request. A record only
// exists once a decision has been made, so there is no persisted "unset"
// value: absence of the record is the "no response yet" signal.
type Status string

const (
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
)

// Request is the ephemeral appointment payload carried inside the signed
// token. It is never persisted in plaintext until a response occurs.
type Request struct {
	ID                   string `json:"id"`
	DoctorEmail          string `json:"doctor_email"`
	PatientEmail         string `json:"patient_email"`
	AppointmentTime      string `json:"appointment_time"`
	MeetLink             string `json:"meet_link"`
	DoctorName           string `json:"doctor_name"`
	DoctorSpecialization string `json:"doctor_specialization"`
	SymptomSummary       string `json:"symptom_summary,omitempty"`
	PrimarySymptoms      string `json:"primary_symptoms,omitempty"`
	AdditionalSymptoms   string `json:"additional_symptoms,omitempty"`
	SymptomDuration      string `json:"symptom_duration,omitempty"`
}

// Validate checks the fields required before a token may be minted.
func (r *Request) Validate() error {
	if r.ID == "" {
		return ErrMissingID
	}
	if r.DoctorEmail == "" || r.PatientEmail == "" {
		return ErrMissingParticipant
	}
	return nil
}

// Record is the persisted outcome of a doctor's decision, keyed by the
// appointment id. Created only by the responder on the first valid response.
type Record struct {
	Request
	Status       Status    `json:"status"`
	ResponseTime time.Time `json:"response_time"`
}

// NewRequestID derives an opaque appointment id from the participants and
// the moment of creation. Truncated SHA-256, 12 hex chars.
func NewRequestID(doctorEmail, patientEmail, slot string, now time.Time) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s%s%s%d", doctorEmail, patientEmail, slot, now.UnixNano())))
	return hex.EncodeToString(sum[:])[:12]
}
