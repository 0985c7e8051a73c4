package intake

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aarogyahealth/triage-platform/internal/sessions"
	"github.com/aarogyahealth/triage-platform/pkg/logging"
)

func newTestHandler(t *testing.T, llm LLMClient) (*Handler, sessions.Store) {
	t.Helper()
	store := sessions.NewMemoryStore(time.Hour)
	return NewHandler(newTestService(llm), store, logging.Default()), store
}

func requestWithSession(t *testing.T, store sessions.Store, method, url, body string) *http.Request {
	t.Helper()
	if err := store.Save(context.Background(), &sessions.Session{ID: "s1", Name: "Asha"}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	req := httptest.NewRequest(method, url, strings.NewReader(body))
	req.AddCookie(&http.Cookie{Name: sessions.CookieName, Value: "s1"})
	return req
}

func serve(store sessions.Store, handler http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	sessions.Middleware(store, logging.Default())(handler).ServeHTTP(rec, req)
	return rec
}

func TestSendMessagePersistsConversation(t *testing.T) {
	handler, store := newTestHandler(t, &stubLLM{reply: "How long has this been going on?"})

	req := requestWithSession(t, store, http.MethodPost, "/api/send_message", `{"message":"I have a sore throat"}`)
	rec := serve(store, handler.SendMessage, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status %d (body %s)", rec.Code, rec.Body.String())
	}
	var result ReplyResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if result.Message != "How long has this been going on?" {
		t.Errorf("message %q", result.Message)
	}

	sess, err := store.Load(context.Background(), "s1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(sess.Conversation) != 3 {
		t.Errorf("persisted conversation has %d turns, want 3", len(sess.Conversation))
	}
}

func TestSendMessageRequiresSession(t *testing.T) {
	handler, _ := newTestHandler(t, &stubLLM{reply: "hi"})

	rec := httptest.NewRecorder()
	handler.SendMessage(rec, httptest.NewRequest(http.MethodPost, "/api/send_message", strings.NewReader(`{"message":"hi"}`)))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status %d, want 401", rec.Code)
	}
}

func TestSendMessageRejectsEmptyMessage(t *testing.T) {
	handler, store := newTestHandler(t, &stubLLM{reply: "hi"})

	req := requestWithSession(t, store, http.MethodPost, "/api/send_message", `{"message":"  "}`)
	rec := serve(store, handler.SendMessage, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status %d, want 400", rec.Code)
	}
}

func TestSetGenderRoundTrip(t *testing.T) {
	handler, store := newTestHandler(t, &stubLLM{})

	req := requestWithSession(t, store, http.MethodPost, "/api/set_gender", `{"gender":"Male"}`)
	rec := serve(store, handler.SetGender, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	var resp statusResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.Success {
		t.Fatalf("unexpected response %+v", resp)
	}

	sess, err := store.Load(context.Background(), "s1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if sess.Gender != "Male" {
		t.Errorf("persisted gender %q", sess.Gender)
	}
}

func TestSetGenderInvalidValue(t *testing.T) {
	handler, store := newTestHandler(t, &stubLLM{})

	req := requestWithSession(t, store, http.MethodPost, "/api/set_gender", `{"gender":"unknown"}`)
	rec := serve(store, handler.SetGender, req)

	var resp statusResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Success {
		t.Fatal("invalid gender must not succeed")
	}
}
