package appointments

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aarogyahealth/triage-platform/pkg/logging"
)

// Handler serves the doctor's response link:
// GET /appointment/response/{token}?action=accept|reject
type Handler struct {
	responder *Responder
	logger    *logging.Logger
}

// NewHandler creates the appointment response handler.
func NewHandler(responder *Responder, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{responder: responder, logger: logger}
}

// Respond processes the clicked link. The token travels as an opaque URL
// path segment; action is the only query parameter read.
func (h *Handler) Respond(w http.ResponseWriter, r *http.Request) {
	tok := chi.URLParam(r, "token")
	action := r.URL.Query().Get("action")

	outcome := h.responder.Respond(r.Context(), tok, action)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCodeFor(outcome.Status))
	if err := json.NewEncoder(w).Encode(outcome); err != nil {
		h.logger.Error("failed to encode response outcome", "error", err)
	}
}

func statusCodeFor(status OutcomeStatus) int {
	switch status {
	case OutcomeAccepted, OutcomeRejected:
		return http.StatusOK
	case OutcomeAlreadyHandled:
		// Informative, not an error: a stale link re-click gets the stored
		// record back.
		return http.StatusConflict
	case OutcomeInvalidAction:
		return http.StatusBadRequest
	case OutcomeInvalidToken:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
