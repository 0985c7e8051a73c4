package intake

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/aarogyahealth/triage-platform/internal/sessions"
	"github.com/aarogyahealth/triage-platform/pkg/logging"
)

// Handler serves the conversation endpoints. Both require a session; the
// updated session is persisted after every exchange.
type Handler struct {
	service *Service
	store   sessions.Store
	logger  *logging.Logger
}

// NewHandler creates the intake handler.
func NewHandler(service *Service, store sessions.Store, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{service: service, store: store, logger: logger}
}

type messageRequest struct {
	Message string `json:"message"`
}

type genderRequest struct {
	Gender string `json:"gender"`
}

type statusResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// SendMessage advances the conversation by one exchange.
// POST /api/send_message {"message": "..."}
func (h *Handler) SendMessage(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessions.FromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, statusResponse{Message: "login required"})
		return
	}

	var req messageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Message) == "" {
		writeJSON(w, http.StatusBadRequest, statusResponse{Message: "message is required"})
		return
	}

	result := h.service.Reply(r.Context(), sess, req.Message)
	if err := h.store.Save(r.Context(), sess); err != nil {
		h.logger.Error("failed to persist conversation", "error", err, "session_id", sess.ID)
	}
	writeJSON(w, http.StatusOK, result)
}

// SetGender records the gender selection on the session.
// POST /api/set_gender {"gender": "Male"|"Female"}
func (h *Handler) SetGender(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessions.FromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, statusResponse{Message: "login required"})
		return
	}

	var req genderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, statusResponse{Message: "invalid request body"})
		return
	}
	if !h.service.SetGender(r.Context(), sess, req.Gender) {
		writeJSON(w, http.StatusOK, statusResponse{Message: "Invalid gender selection"})
		return
	}
	if err := h.store.Save(r.Context(), sess); err != nil {
		h.logger.Error("failed to persist session", "error", err, "session_id", sess.ID)
		writeJSON(w, http.StatusInternalServerError, statusResponse{Message: "could not save session"})
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{Success: true, Message: "Gender set successfully"})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
