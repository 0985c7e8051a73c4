package appointments

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/aarogyahealth/triage-platform/internal/notify"
	"github.com/aarogyahealth/triage-platform/pkg/logging"
)

type stubVerifier struct {
	req Request
	err error
	// calls counts decodes so the fail-fast law can be asserted.
	calls int
}

func (s *stubVerifier) Decode(tok string) (Request, error) {
	s.calls++
	return s.req, s.err
}

type stubNotifier struct {
	confirmations int
	rejections    int
	result        notify.Result
	lastDecision  notify.PatientDecision
}

func (s *stubNotifier) SendPatientConfirmation(ctx context.Context, dec notify.PatientDecision) notify.Result {
	s.confirmations++
	s.lastDecision = dec
	return s.result
}

func (s *stubNotifier) SendPatientRejection(ctx context.Context, dec notify.PatientDecision) notify.Result {
	s.rejections++
	s.lastDecision = dec
	return s.result
}

type countingStore struct {
	Store
	loads int
	saves int
}

func (c *countingStore) Load(ctx context.Context, id string) (*Record, error) {
	c.loads++
	return c.Store.Load(ctx, id)
}

func (c *countingStore) Save(ctx context.Context, rec *Record) error {
	c.saves++
	return c.Store.Save(ctx, rec)
}

func newTestResponder(t *testing.T, verifier TokenVerifier, notifier PatientNotifier) (*Responder, *countingStore) {
	t.Helper()
	fs, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	store := &countingStore{Store: fs}
	return NewResponder(verifier, store, notifier, nil, logging.Default()), store
}

func testRequest() Request {
	return Request{
		ID:                   "abc123",
		DoctorEmail:          "doc@example.com",
		PatientEmail:         "pat@example.com",
		AppointmentTime:      "2026-03-01 10:00",
		MeetLink:             "https://meet.google.com/abc-defg-hij",
		DoctorName:           "Dr. Priya Sharma",
		DoctorSpecialization: "Gastroenterologist",
	}
}

func TestRespondAcceptCreatesRecordAndNotifies(t *testing.T) {
	verifier := &stubVerifier{req: testRequest()}
	notifier := &stubNotifier{result: notify.Result{Success: true, Message: "ok"}}
	responder, store := newTestResponder(t, verifier, notifier)

	outcome := responder.Respond(context.Background(), "tok", ActionAccept)

	if outcome.Status != OutcomeAccepted {
		t.Fatalf("expected accepted outcome, got %s (%s)", outcome.Status, outcome.Message)
	}
	if outcome.Record == nil || outcome.Record.Status != StatusAccepted {
		t.Fatalf("expected accepted record, got %+v", outcome.Record)
	}
	if outcome.Record.ResponseTime.IsZero() {
		t.Error("expected response time to be set")
	}
	if notifier.confirmations != 1 || notifier.rejections != 0 {
		t.Errorf("expected exactly one confirmation, got %d/%d", notifier.confirmations, notifier.rejections)
	}
	if notifier.lastDecision.PatientEmail != "pat@example.com" {
		t.Errorf("unexpected notified patient %s", notifier.lastDecision.PatientEmail)
	}
	if store.saves != 1 {
		t.Errorf("expected one save, got %d", store.saves)
	}

	// The record is persisted and visible to a subsequent load.
	rec, err := store.Load(context.Background(), "abc123")
	if err != nil {
		t.Fatalf("Load after respond: %v", err)
	}
	if rec.Status != StatusAccepted {
		t.Errorf("persisted status %s, want accepted", rec.Status)
	}
}

func TestRespondSecondResponseAlreadyHandled(t *testing.T) {
	verifier := &stubVerifier{req: testRequest()}
	notifier := &stubNotifier{result: notify.Result{Success: true}}
	responder, _ := newTestResponder(t, verifier, notifier)
	ctx := context.Background()

	first := responder.Respond(ctx, "tok", ActionAccept)
	if first.Status != OutcomeAccepted {
		t.Fatalf("first response: expected accepted, got %s", first.Status)
	}

	// Replaying the same token with the opposite action must not flip state.
	second := responder.Respond(ctx, "tok", ActionReject)
	if second.Status != OutcomeAlreadyHandled {
		t.Fatalf("second response: expected already_handled, got %s", second.Status)
	}
	if second.Record == nil || second.Record.Status != StatusAccepted {
		t.Fatalf("stored status must remain accepted, got %+v", second.Record)
	}
	if notifier.confirmations != 1 || notifier.rejections != 0 {
		t.Errorf("no further notifications expected, got %d/%d", notifier.confirmations, notifier.rejections)
	}
}

func TestRespondInvalidActionFailsFast(t *testing.T) {
	verifier := &stubVerifier{req: testRequest()}
	notifier := &stubNotifier{}
	responder, store := newTestResponder(t, verifier, notifier)

	outcome := responder.Respond(context.Background(), "tok", "cancel")

	if outcome.Status != OutcomeInvalidAction {
		t.Fatalf("expected invalid_action, got %s", outcome.Status)
	}
	if verifier.calls != 0 {
		t.Error("token must not be verified for an invalid action")
	}
	if store.loads != 0 || store.saves != 0 {
		t.Error("store must not be touched for an invalid action")
	}
}

func TestRespondInvalidToken(t *testing.T) {
	verifier := &stubVerifier{err: errors.New("token: invalid or expired")}
	notifier := &stubNotifier{}
	responder, store := newTestResponder(t, verifier, notifier)

	outcome := responder.Respond(context.Background(), "tok", ActionAccept)

	if outcome.Status != OutcomeInvalidToken {
		t.Fatalf("expected invalid_token, got %s", outcome.Status)
	}
	if !strings.Contains(outcome.Message, "invalid or expired") {
		t.Errorf("expected generic invalid-link message, got %q", outcome.Message)
	}
	if store.saves != 0 {
		t.Error("no state change allowed on invalid token")
	}
	if notifier.confirmations+notifier.rejections != 0 {
		t.Error("no notification allowed on invalid token")
	}
}

func TestRespondNotificationFailureKeepsTransition(t *testing.T) {
	verifier := &stubVerifier{req: testRequest()}
	notifier := &stubNotifier{result: notify.Result{Success: false, Message: "failed to send email: provider down"}}
	responder, store := newTestResponder(t, verifier, notifier)
	ctx := context.Background()

	outcome := responder.Respond(ctx, "tok", ActionReject)

	if outcome.Status != OutcomeRejected {
		t.Fatalf("expected rejected outcome despite notification failure, got %s", outcome.Status)
	}
	if outcome.Notification == nil || outcome.Notification.Success {
		t.Fatal("expected failed notification to be reported in the outcome")
	}
	if !strings.Contains(outcome.Message, "failed to notify patient") {
		t.Errorf("expected failure surfaced in message, got %q", outcome.Message)
	}

	// The transition stands: the record remains rejected.
	rec, err := store.Load(ctx, "abc123")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if rec.Status != StatusRejected {
		t.Errorf("persisted status %s, want rejected", rec.Status)
	}
}

func TestRespondResponseTimeUsesClock(t *testing.T) {
	verifier := &stubVerifier{req: testRequest()}
	notifier := &stubNotifier{result: notify.Result{Success: true}}
	responder, _ := newTestResponder(t, verifier, notifier)

	fixed := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	responder.now = func() time.Time { return fixed }

	outcome := responder.Respond(context.Background(), "tok", ActionAccept)
	if !outcome.Record.ResponseTime.Equal(fixed) {
		t.Errorf("response time %s, want %s", outcome.Record.ResponseTime, fixed)
	}
}
