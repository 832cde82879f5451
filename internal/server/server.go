// Package server provides the HTTP server for the Mudra sign language interpreter.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/ayusman/mudra/internal/interpreter"
	"github.com/ayusman/mudra/internal/server/api"
	"github.com/ayusman/mudra/internal/store"
)

// StateSource provides a snapshot of the current interpretation state.
// interpreter.Machine satisfies this interface.
type StateSource interface {
	Snapshot() interpreter.State
}

// Config holds the server configuration.
type Config struct {
	StaticDir string
	Store     *store.Store
	Frames    FrameSource
	State     StateSource
}

// Server represents the HTTP server for the Mudra application.
type Server struct {
	config Config
	mux    *http.ServeMux
	start  time.Time
	state  *StateHandler
}

// New creates a new Server with the given configuration.
func New(config Config) *Server {
	s := &Server{
		config: config,
		mux:    http.NewServeMux(),
		start:  time.Now(),
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes for the server.
func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/health", s.handleHealth)

	// Register transcript and sample API handlers if Store is configured
	if s.config.Store != nil {
		transcriptHandler := api.NewTranscriptHandler(s.config.Store)
		s.mux.Handle("/api/transcripts", transcriptHandler)
		s.mux.Handle("/api/transcripts/", transcriptHandler)

		samplesHandler := api.NewSamplesHandler(s.config.Store)
		s.mux.Handle("/api/samples", samplesHandler)
		s.mux.Handle("/api/samples/", samplesHandler)
	}

	// Register camera stream endpoint if a frame source is configured
	if s.config.Frames != nil {
		streamHandler := NewStreamHandler(s.config.Frames)
		s.mux.Handle("/api/stream", streamHandler)
	}

	// Register state WebSocket endpoint if a state source is configured
	if s.config.State != nil {
		s.state = NewStateHandler(s.config.State)
		s.mux.Handle("/api/state", s.state)
	}

	// Serve static files if StaticDir is configured
	if s.config.StaticDir != "" {
		fs := http.FileServer(http.Dir(s.config.StaticDir))
		s.mux.Handle("/", fs)
	}
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// handleHealth handles GET requests to /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	uptime := time.Since(s.start)

	response := map[string]interface{}{
		"status": "ok",
		"uptime": uptime.String(),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// ListenAndServe starts the HTTP server on the given address.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s)
}

// Close releases background resources held by the server.
func (s *Server) Close() {
	if s.state != nil {
		s.state.Close()
	}
}
