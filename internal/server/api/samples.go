package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/ayusman/mudra/internal/store"
)

// SamplesHandler handles HTTP requests for recorded training samples.
type SamplesHandler struct {
	store *store.Store
}

// NewSamplesHandler creates a new SamplesHandler with the given store.
func NewSamplesHandler(s *store.Store) *SamplesHandler {
	return &SamplesHandler{store: s}
}

// ServeHTTP implements the http.Handler interface.
// Expected paths: /api/samples or /api/samples/{label}
func (h *SamplesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/samples")
	path = strings.TrimPrefix(path, "/")

	if path == "" {
		// Collection endpoint: /api/samples
		if r.Method == http.MethodPost {
			h.create(w, r)
			return
		}
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// Label endpoint: /api/samples/{label}
	label := path
	switch r.Method {
	case http.MethodGet:
		h.list(w, r, label)
	case http.MethodDelete:
		h.delete(w, r, label)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// Request and response types

type createSamplesRequest struct {
	Label   string            `json:"label"`
	Samples []json.RawMessage `json:"samples"`
}

type sampleResponse struct {
	ID        int64           `json:"id"`
	Label     string          `json:"label"`
	Data      json.RawMessage `json:"data"`
	CreatedAt string          `json:"created_at"`
}

type listSamplesResponse struct {
	Samples []sampleResponse `json:"samples"`
}

// create handles POST /api/samples and records samples for a label.
func (h *SamplesHandler) create(w http.ResponseWriter, r *http.Request) {
	var req createSamplesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Label == "" {
		writeError(w, http.StatusBadRequest, "Label is required")
		return
	}
	if len(req.Samples) == 0 {
		writeError(w, http.StatusBadRequest, "At least one sample is required")
		return
	}

	if err := h.store.Samples().Create(req.Label, req.Samples); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save samples")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"status": "ok"})
}

// list handles GET /api/samples/{label}.
func (h *SamplesHandler) list(w http.ResponseWriter, r *http.Request, label string) {
	samples, err := h.store.Samples().GetByLabel(label)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list samples")
		return
	}

	response := listSamplesResponse{
		Samples: make([]sampleResponse, 0, len(samples)),
	}

	for _, s := range samples {
		response.Samples = append(response.Samples, sampleResponse{
			ID:        s.ID,
			Label:     s.Label,
			Data:      s.Data,
			CreatedAt: s.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}

	writeJSON(w, http.StatusOK, response)
}

// delete handles DELETE /api/samples/{label} and removes all samples for
// the label.
func (h *SamplesHandler) delete(w http.ResponseWriter, r *http.Request, label string) {
	if err := h.store.Samples().DeleteByLabel(label); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete samples")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
