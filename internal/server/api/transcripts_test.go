package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/ayusman/mudra/internal/store"
)

// newTestStore creates a new Store with a temporary database for testing.
func newTestStore(t *testing.T) *store.Store {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "mudra-api-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() {
		os.RemoveAll(tmpDir)
	})

	dbPath := filepath.Join(tmpDir, "test.db")
	s, err := store.New(dbPath)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() {
		s.Close()
	})

	return s
}

func TestTranscriptHandler_List(t *testing.T) {
	s := newTestStore(t)
	handler := NewTranscriptHandler(s)

	transcript := &store.Transcript{
		ID:   "test-transcript-1",
		Text: "HELLO WORLD",
	}
	if err := s.Transcripts().Create(transcript); err != nil {
		t.Fatalf("failed to create transcript: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/transcripts", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	contentType := rec.Header().Get("Content-Type")
	if contentType != "application/json" {
		t.Errorf("expected Content-Type application/json, got %s", contentType)
	}

	var response listTranscriptsResponse
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if len(response.Transcripts) != 1 {
		t.Fatalf("expected 1 transcript, got %d", len(response.Transcripts))
	}

	if response.Transcripts[0].ID != "test-transcript-1" {
		t.Errorf("expected transcript ID 'test-transcript-1', got %q", response.Transcripts[0].ID)
	}

	if response.Transcripts[0].Text != "HELLO WORLD" {
		t.Errorf("expected transcript text 'HELLO WORLD', got %q", response.Transcripts[0].Text)
	}
}

func TestTranscriptHandler_Create(t *testing.T) {
	s := newTestStore(t)
	handler := NewTranscriptHandler(s)

	reqBody := createTranscriptRequest{Text: "THANK YOU"}
	body, err := json.Marshal(reqBody)
	if err != nil {
		t.Fatalf("failed to marshal request: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/transcripts", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Errorf("expected status %d, got %d: %s", http.StatusCreated, rec.Code, rec.Body.String())
	}

	var response transcriptResponse
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if response.ID == "" {
		t.Error("expected a generated transcript ID")
	}
	if response.Text != "THANK YOU" {
		t.Errorf("expected text 'THANK YOU', got %q", response.Text)
	}

	// Verify it was persisted
	stored, err := s.Transcripts().GetByID(response.ID)
	if err != nil {
		t.Fatalf("failed to get created transcript from store: %v", err)
	}
	if stored.Text != "THANK YOU" {
		t.Errorf("stored text = %q, want %q", stored.Text, "THANK YOU")
	}
}

func TestTranscriptHandler_Create_EmptyText(t *testing.T) {
	s := newTestStore(t)
	handler := NewTranscriptHandler(s)

	req := httptest.NewRequest(http.MethodPost, "/api/transcripts", bytes.NewReader([]byte(`{"text":""}`)))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
	}
}

func TestTranscriptHandler_Create_InvalidJSON(t *testing.T) {
	s := newTestStore(t)
	handler := NewTranscriptHandler(s)

	req := httptest.NewRequest(http.MethodPost, "/api/transcripts", bytes.NewReader([]byte(`{not json`)))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
	}
}

func TestTranscriptHandler_Get(t *testing.T) {
	s := newTestStore(t)
	handler := NewTranscriptHandler(s)

	transcript := &store.Transcript{
		ID:   "test-transcript-1",
		Text: "GOOD MORNING",
	}
	if err := s.Transcripts().Create(transcript); err != nil {
		t.Fatalf("failed to create transcript: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/transcripts/test-transcript-1", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	var response transcriptResponse
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if response.Text != "GOOD MORNING" {
		t.Errorf("expected text 'GOOD MORNING', got %q", response.Text)
	}
}

func TestTranscriptHandler_Get_NotFound(t *testing.T) {
	s := newTestStore(t)
	handler := NewTranscriptHandler(s)

	req := httptest.NewRequest(http.MethodGet, "/api/transcripts/non-existent", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status %d, got %d", http.StatusNotFound, rec.Code)
	}
}

func TestTranscriptHandler_Update(t *testing.T) {
	s := newTestStore(t)
	handler := NewTranscriptHandler(s)

	transcript := &store.Transcript{
		ID:   "test-transcript-1",
		Text: "HELLO",
	}
	if err := s.Transcripts().Create(transcript); err != nil {
		t.Fatalf("failed to create transcript: %v", err)
	}

	body := []byte(`{"text":"HELLO WORLD"}`)
	req := httptest.NewRequest(http.MethodPut, "/api/transcripts/test-transcript-1", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}

	stored, err := s.Transcripts().GetByID("test-transcript-1")
	if err != nil {
		t.Fatalf("failed to get transcript from store: %v", err)
	}
	if stored.Text != "HELLO WORLD" {
		t.Errorf("stored text = %q, want %q", stored.Text, "HELLO WORLD")
	}
}

func TestTranscriptHandler_Delete(t *testing.T) {
	s := newTestStore(t)
	handler := NewTranscriptHandler(s)

	transcript := &store.Transcript{
		ID:   "test-transcript-1",
		Text: "HELLO",
	}
	if err := s.Transcripts().Create(transcript); err != nil {
		t.Fatalf("failed to create transcript: %v", err)
	}

	req := httptest.NewRequest(http.MethodDelete, "/api/transcripts/test-transcript-1", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("expected status %d, got %d", http.StatusNoContent, rec.Code)
	}

	_, err := s.Transcripts().GetByID("test-transcript-1")
	if err != store.ErrNotFound {
		t.Errorf("expected ErrNotFound after delete, got: %v", err)
	}
}

func TestTranscriptHandler_Delete_NotFound(t *testing.T) {
	s := newTestStore(t)
	handler := NewTranscriptHandler(s)

	req := httptest.NewRequest(http.MethodDelete, "/api/transcripts/non-existent", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status %d, got %d", http.StatusNotFound, rec.Code)
	}
}

func TestTranscriptHandler_MethodNotAllowed(t *testing.T) {
	s := newTestStore(t)
	handler := NewTranscriptHandler(s)

	req := httptest.NewRequest(http.MethodPatch, "/api/transcripts", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected status %d, got %d", http.StatusMethodNotAllowed, rec.Code)
	}
}
