package doctors

import (
	"encoding/json"
	"net/http"
)

// Handler serves the doctor directory.
// GET /doctors?specialization=...
type Handler struct {
	directory *Directory
}

// NewHandler creates the directory handler.
func NewHandler(directory *Directory) *Handler {
	return &Handler{directory: directory}
}

// List returns all doctors, optionally filtered by specialization.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	list := h.directory.All()
	if term := r.URL.Query().Get("specialization"); term != "" {
		list = h.directory.BySpecialization(term)
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(struct {
		Doctors []Doctor `json:"doctors"`
	}{Doctors: list})
}
