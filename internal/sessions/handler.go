package sessions

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"

	"github.com/aarogyahealth/triage-platform/pkg/logging"
)

// CookieName carries the session id between requests.
const CookieName = "triage_session"

// Handler serves patient login and logout.
type Handler struct {
	store  Store
	logger *logging.Logger
}

// NewHandler creates the session handler.
func NewHandler(store Store, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{store: store, logger: logger.Component("sessions")}
}

type loginRequest struct {
	Name    string `json:"name"`
	Age     int    `json:"age"`
	Contact string `json:"contact"`
	Email   string `json:"email"`
}

type loginResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message,omitempty"`
	SessionID string `json:"session_id,omitempty"`
}

func validateLogin(req loginRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if req.Age < 1 || req.Age > 120 {
		return fmt.Errorf("age must be between 1 and 120")
	}
	if digitCount(req.Contact) < 10 {
		return fmt.Errorf("contact number must have at least 10 digits")
	}
	if !strings.Contains(req.Email, "@") {
		return fmt.Errorf("a valid email address is required")
	}
	return nil
}

func digitCount(s string) int {
	n := 0
	for _, r := range s {
		if unicode.IsDigit(r) {
			n++
		}
	}
	return n
}

// Login creates a fresh session and sets the session cookie.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, loginResponse{Message: "invalid request body"})
		return
	}
	if err := validateLogin(req); err != nil {
		writeJSON(w, http.StatusBadRequest, loginResponse{Message: err.Error()})
		return
	}

	sess := &Session{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(req.Name),
		Age:       req.Age,
		Contact:   req.Contact,
		Email:     strings.TrimSpace(req.Email),
		CreatedAt: time.Now().UTC(),
	}
	if err := h.store.Save(r.Context(), sess); err != nil {
		h.logger.Error("failed to create session", "error", err)
		writeJSON(w, http.StatusInternalServerError, loginResponse{Message: "could not create session"})
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    sess.ID,
		Path:     "/",
		MaxAge:   int(SessionTTL / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	h.logger.Info("session created", "session_id", sess.ID)
	writeJSON(w, http.StatusOK, loginResponse{Success: true, SessionID: sess.ID})
}

// Logout deletes the session and expires the cookie.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(CookieName); err == nil && cookie.Value != "" {
		if err := h.store.Delete(r.Context(), cookie.Value); err != nil {
			h.logger.Warn("failed to delete session", "error", err)
		}
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	writeJSON(w, http.StatusOK, loginResponse{Success: true, Message: "logged out"})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
