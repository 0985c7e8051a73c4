package appointments

import "errors"

var (
	// ErrNotFound is returned by a Store when no record exists for an id.
	// Distinct from any persisted state: it is the "no response yet" signal.
	ErrNotFound = errors.New("appointments: record not found")

	// ErrMissingID rejects requests without an appointment id.
	ErrMissingID = errors.New("appointments: missing appointment id")

	// ErrMissingParticipant rejects requests without both email addresses.
	ErrMissingParticipant = errors.New("appointments: doctor and patient email required")
)
