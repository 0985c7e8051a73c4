package appointments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aarogyahealth/triage-platform/internal/notify"
	"github.com/aarogyahealth/triage-platform/internal/observability/metrics"
	"github.com/aarogyahealth/triage-platform/pkg/logging"
)

// Actions a doctor may take on a request. Anything else is rejected before
// the token is even looked at.
const (
	ActionAccept = "accept"
	ActionReject = "reject"
)

// OutcomeStatus tags the result of processing a response link.
type OutcomeStatus string

const (
	OutcomeAccepted       OutcomeStatus = "accepted"
	OutcomeRejected       OutcomeStatus = "rejected"
	OutcomeAlreadyHandled OutcomeStatus = "already_handled"
	OutcomeInvalidAction  OutcomeStatus = "invalid_action"
	OutcomeInvalidToken   OutcomeStatus = "invalid_token"
	OutcomeError          OutcomeStatus = "error"
)

// Outcome is what the doctor sees after clicking a response link. The
// notification result is included so the doctor knows whether the patient
// was actually informed.
type Outcome struct {
	Status       OutcomeStatus  `json:"status"`
	Message      string         `json:"message"`
	Record       *Record        `json:"appointment,omitempty"`
	Notification *notify.Result `json:"notification,omitempty"`
}

// TokenVerifier decodes a signed appointment token or reports it invalid.
type TokenVerifier interface {
	Decode(token string) (Request, error)
}

// PatientNotifier dispatches the patient-facing decision emails.
type PatientNotifier interface {
	SendPatientConfirmation(ctx context.Context, dec notify.PatientDecision) notify.Result
	SendPatientRejection(ctx context.Context, dec notify.PatientDecision) notify.Result
}

// Responder performs the one allowed state transition per appointment id:
// NO_RECORD -> accepted|rejected. The transition is guarded by a
// check-then-act pattern against the store; cross-process races remain
// possible because the store has no compare-and-swap primitive.
type Responder struct {
	tokens   TokenVerifier
	store    Store
	notifier PatientNotifier
	logger   *logging.Logger
	metrics  *metrics.TriageMetrics
	now      func() time.Time
}

// NewResponder wires the response workflow.
func NewResponder(tokens TokenVerifier, store Store, notifier PatientNotifier, m *metrics.TriageMetrics, logger *logging.Logger) *Responder {
	if logger == nil {
		logger = logging.Default()
	}
	return &Responder{
		tokens:   tokens,
		store:    store,
		notifier: notifier,
		logger:   logger,
		metrics:  m,
		now:      time.Now,
	}
}

// Respond validates the token and action, records the decision exactly once,
// and notifies the patient. Notification failure after a successful
// transition is reported but never rolls the transition back.
func (r *Responder) Respond(ctx context.Context, tok, action string) Outcome {
	if action != ActionAccept && action != ActionReject {
		r.metrics.ObserveResponse(action, string(OutcomeInvalidAction))
		return Outcome{Status: OutcomeInvalidAction, Message: "invalid action specified"}
	}

	req, err := r.tokens.Decode(tok)
	if err != nil {
		// Signature failure and expiry are deliberately indistinguishable
		// to the caller.
		r.metrics.ObserveResponse(action, string(OutcomeInvalidToken))
		return Outcome{Status: OutcomeInvalidToken, Message: "invalid or expired appointment link"}
	}

	if existing, err := r.store.Load(ctx, req.ID); err == nil {
		r.logger.Info("duplicate appointment response", "id", req.ID, "stored_status", existing.Status, "attempted_action", action)
		r.metrics.ObserveResponse(action, string(OutcomeAlreadyHandled))
		return Outcome{
			Status:  OutcomeAlreadyHandled,
			Message: "this appointment has already been responded to",
			Record:  existing,
		}
	} else if !errors.Is(err, ErrNotFound) {
		r.logger.Error("failed to load appointment record", "id", req.ID, "error", err)
		r.metrics.ObserveResponse(action, string(OutcomeError))
		return Outcome{Status: OutcomeError, Message: "could not process the appointment response"}
	}

	status := StatusAccepted
	if action == ActionReject {
		status = StatusRejected
	}
	rec := &Record{
		Request:      req,
		Status:       status,
		ResponseTime: r.now().UTC(),
	}

	// Re-check immediately before the write. This narrows, but does not
	// close, the window between two near-simultaneous responses.
	if existing, err := r.store.Load(ctx, req.ID); err == nil {
		r.metrics.ObserveResponse(action, string(OutcomeAlreadyHandled))
		return Outcome{
			Status:  OutcomeAlreadyHandled,
			Message: "this appointment has already been responded to",
			Record:  existing,
		}
	}
	if err := r.store.Save(ctx, rec); err != nil {
		r.logger.Error("failed to save appointment record", "id", req.ID, "error", err)
		r.metrics.ObserveResponse(action, string(OutcomeError))
		return Outcome{Status: OutcomeError, Message: "could not record the appointment response"}
	}
	r.logger.Info("appointment response recorded", "id", req.ID, "status", status)

	dec := notify.PatientDecision{
		PatientEmail:         req.PatientEmail,
		DoctorName:           req.DoctorName,
		DoctorSpecialization: req.DoctorSpecialization,
		ScheduledTime:        req.AppointmentTime,
		MeetLink:             req.MeetLink,
	}

	var (
		result notify.Result
		verb   string
		kind   string
	)
	if status == StatusAccepted {
		result = r.notifier.SendPatientConfirmation(ctx, dec)
		verb = "accepted"
		kind = "patient_confirmation"
	} else {
		result = r.notifier.SendPatientRejection(ctx, dec)
		verb = "declined"
		kind = "patient_rejection"
	}
	r.metrics.ObserveEmail(kind, result.Success)

	msg := fmt.Sprintf("Appointment %s. Patient has been notified via email.", verb)
	if !result.Success {
		r.logger.Warn("patient notification failed after state transition", "id", req.ID, "error", result.Message)
		msg = fmt.Sprintf("Appointment %s, but failed to notify patient: %s", verb, result.Message)
	}

	outcome := OutcomeAccepted
	if status == StatusRejected {
		outcome = OutcomeRejected
	}
	r.metrics.ObserveResponse(action, string(outcome))
	return Outcome{
		Status:       outcome,
		Message:      msg,
		Record:       rec,
		Notification: &result,
	}
}
