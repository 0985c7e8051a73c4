package uploads

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/aarogyahealth/triage-platform/internal/sessions"
	"github.com/aarogyahealth/triage-platform/pkg/logging"
)

// Handler serves POST /upload_medical_report. The multipart field name is
// "medical_report"; the stored path is appended to the session.
type Handler struct {
	store    *Store
	sessions sessions.Store
	logger   *logging.Logger
}

// NewHandler creates the upload handler.
func NewHandler(store *Store, sessionStore sessions.Store, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{store: store, sessions: sessionStore, logger: logger}
}

type uploadResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Upload validates, stores and records one medical report file.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessions.FromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, uploadResponse{Message: "login required"})
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadBytes+4096)
	file, header, err := r.FormFile("medical_report")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, uploadResponse{Message: "no file selected"})
		return
	}
	defer file.Close()
	if header.Filename == "" {
		writeJSON(w, http.StatusBadRequest, uploadResponse{Message: "no file selected"})
		return
	}

	path, err := h.store.Save(sess.ID, header.Filename, header.Size, file)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidType):
			writeJSON(w, http.StatusBadRequest, uploadResponse{Message: "invalid file type, please upload PDF, DOC, DOCX or image files"})
		case errors.Is(err, ErrTooLarge):
			writeJSON(w, http.StatusRequestEntityTooLarge, uploadResponse{Message: "file is too large"})
		default:
			h.logger.Error("failed to store upload", "error", err, "session_id", sess.ID)
			writeJSON(w, http.StatusInternalServerError, uploadResponse{Message: "could not store the file"})
		}
		return
	}

	sess.ReportFiles = append(sess.ReportFiles, path)
	if err := h.sessions.Save(r.Context(), sess); err != nil {
		h.logger.Error("failed to record upload on session", "error", err, "session_id", sess.ID)
		writeJSON(w, http.StatusInternalServerError, uploadResponse{Message: "could not record the upload"})
		return
	}
	writeJSON(w, http.StatusOK, uploadResponse{Success: true, Message: "medical report uploaded successfully"})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
