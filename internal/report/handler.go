package report

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/aarogyahealth/triage-platform/internal/sessions"
	"github.com/aarogyahealth/triage-platform/pkg/logging"
)

// Handler streams the generated PDF.
// GET /report/download
type Handler struct {
	service *Service
	logger  *logging.Logger
}

// NewHandler creates the report download handler.
func NewHandler(service *Service, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{service: service, logger: logger}
}

// Download builds the analysis from the session and streams the PDF.
func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessions.FromContext(r.Context())
	if !ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "login required"})
		return
	}

	data := PatientData{
		Name:     sess.Name,
		Age:      sess.Age,
		Contact:  sess.Contact,
		Gender:   sess.Gender,
		Symptoms: symptomsFromSession(sess),
	}

	analysis := h.service.Analyze(r.Context(), data)
	pdfBytes, err := BuildPDF(analysis, data)
	if err != nil {
		h.logger.Error("failed to render report", "error", err, "session_id", sess.ID)
		http.Error(w, "could not generate report", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", Filename(analysis)))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(pdfBytes)))
	_, _ = w.Write(pdfBytes)
}

func symptomsFromSession(sess *sessions.Session) string {
	parts := make([]string, 0, 2)
	if sess.PrimarySymptoms != "" {
		parts = append(parts, sess.PrimarySymptoms)
	}
	if sess.AdditionalSymptoms != "" && sess.AdditionalSymptoms != "None" {
		parts = append(parts, sess.AdditionalSymptoms)
	}
	if len(parts) == 0 && sess.SymptomSummary != "" {
		return sess.SymptomSummary
	}
	return strings.Join(parts, ", ")
}
