// Package sessions tracks a patient's visit across the intake conversation,
// uploads and booking. Sessions live in Redis with a 24 hour TTL; an
// in-memory store backs local development.
package sessions

import (
	"errors"
	"time"
)

// SessionTTL is how long an idle patient session survives.
const SessionTTL = 24 * time.Hour

// ErrNotFound is returned when a session id is unknown or expired.
var ErrNotFound = errors.New("sessions: session not found")

// Turn is one exchange in the intake conversation.
type Turn struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// Session is the per-patient state carried between requests.
type Session struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Age       int       `json:"age"`
	Contact   string    `json:"contact"`
	Email     string    `json:"email"`
	Gender    string    `json:"gender,omitempty"`
	CreatedAt time.Time `json:"created_at"`

	Conversation          []Turn   `json:"conversation,omitempty"`
	SymptomSummary        string   `json:"symptom_summary,omitempty"`
	PrimarySymptoms       string   `json:"primary_symptoms,omitempty"`
	AdditionalSymptoms    string   `json:"additional_symptoms,omitempty"`
	SymptomDuration       string   `json:"symptom_duration,omitempty"`
	RecommendedSpecialist string   `json:"recommended_specialist,omitempty"`
	ReadyToBook           bool     `json:"ready_to_book,omitempty"`
	ReportFiles           []string `json:"report_files,omitempty"`
}
