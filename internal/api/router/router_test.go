package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aarogyahealth/triage-platform/internal/appointments"
	"github.com/aarogyahealth/triage-platform/internal/calendar"
	"github.com/aarogyahealth/triage-platform/internal/doctors"
	"github.com/aarogyahealth/triage-platform/internal/intake"
	"github.com/aarogyahealth/triage-platform/internal/notify"
	"github.com/aarogyahealth/triage-platform/internal/report"
	"github.com/aarogyahealth/triage-platform/internal/scheduling"
	"github.com/aarogyahealth/triage-platform/internal/sessions"
	"github.com/aarogyahealth/triage-platform/internal/token"
	"github.com/aarogyahealth/triage-platform/internal/uploads"
	"github.com/aarogyahealth/triage-platform/pkg/logging"
)

type stubLLM struct{ reply string }

func (s stubLLM) Complete(ctx context.Context, req intake.CompletionRequest) (string, error) {
	return s.reply, nil
}

type stubGenerator struct{ reply string }

func (s stubGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	return s.reply, nil
}

func newTestRouter(t *testing.T) (http.Handler, sessions.Store) {
	t.Helper()
	logger := logging.Default()
	sessionStore := sessions.NewMemoryStore(time.Hour)

	codec, err := token.NewCodec("router-test-secret", time.Hour)
	if err != nil {
		t.Fatalf("NewCodec: %v", err)
	}
	aptStore, err := appointments.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	uploadStore, err := uploads.NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	directory := doctors.NewDirectory(doctors.Seed())
	notifier := notify.NewService(notify.NewStubMailer(logger), logger)
	responder := appointments.NewResponder(codec, aptStore, notifier, nil, logger)
	orchestrator := scheduling.NewOrchestrator(scheduling.Config{
		Directory: directory,
		Calendar:  calendar.NewStaticScheduler("https://meet.google.com/abc-defg-hij"),
		Tokens:    codec,
		Notifier:  notifier,
		BaseURL:   "http://localhost:8080",
		Logger:    logger,
	})

	handler := New(&Config{
		Logger:          logger,
		SessionStore:    sessionStore,
		SessionHandler:  sessions.NewHandler(sessionStore, logger),
		IntakeHandler:   intake.NewHandler(intake.NewService(stubLLM{reply: "noted"}, nil, logger), sessionStore, logger),
		BookingHandler:  scheduling.NewHandler(orchestrator, logger),
		ResponseHandler: appointments.NewHandler(responder, logger),
		ReportHandler:   report.NewHandler(report.NewService(stubGenerator{reply: "{}"}, nil, logger), logger),
		UploadHandler:   uploads.NewHandler(uploadStore, sessionStore, logger),
		DoctorsHandler:  doctors.NewHandler(directory),
	})
	return handler, sessionStore
}

func TestHealthEndpoint(t *testing.T) {
	handler, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Errorf("body %s", rec.Body.String())
	}
}

func TestPatientRoutesRequireSession(t *testing.T) {
	handler, _ := newTestRouter(t)

	routes := []struct{ method, path string }{
		{http.MethodPost, "/api/send_message"},
		{http.MethodPost, "/api/set_gender"},
		{http.MethodPost, "/api/book_appointment"},
		{http.MethodPost, "/upload_medical_report"},
		{http.MethodGet, "/report/download"},
	}
	for _, route := range routes {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(route.method, route.path, strings.NewReader("{}")))
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s %s: status %d, want 401", route.method, route.path, rec.Code)
		}
	}
}

func TestLoginThenSendMessage(t *testing.T) {
	handler, _ := newTestRouter(t)

	login := httptest.NewRecorder()
	handler.ServeHTTP(login, httptest.NewRequest(http.MethodPost, "/api/login",
		strings.NewReader(`{"name":"Asha","age":34,"contact":"9876543210","email":"asha@example.com"}`)))
	if login.Code != http.StatusOK {
		t.Fatalf("login status %d (body %s)", login.Code, login.Body.String())
	}

	var cookie *http.Cookie
	for _, c := range login.Result().Cookies() {
		if c.Name == sessions.CookieName {
			cookie = c
		}
	}
	if cookie == nil {
		t.Fatal("no session cookie from login")
	}

	msg := httptest.NewRequest(http.MethodPost, "/api/send_message", strings.NewReader(`{"message":"I have a cough"}`))
	msg.AddCookie(cookie)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, msg)

	if rec.Code != http.StatusOK {
		t.Fatalf("send_message status %d (body %s)", rec.Code, rec.Body.String())
	}
	var result intake.ReplyResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if result.Message != "noted" {
		t.Errorf("message %q", result.Message)
	}
}

func TestDoctorsEndpointIsPublic(t *testing.T) {
	handler, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/doctors", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
}

func TestAppointmentResponseRouteIsPublic(t *testing.T) {
	handler, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/appointment/response/garbage?action=accept", nil))
	// A bad token is unauthorized, not missing: the route itself exists.
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status %d, want 401", rec.Code)
	}
}
