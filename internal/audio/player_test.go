package audio

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNewExecPlayer_InvalidCommand(t *testing.T) {
	if _, err := NewExecPlayer(t.TempDir(), ""); err == nil {
		t.Error("expected error for empty command")
	}
	if _, err := NewExecPlayer(t.TempDir(), `"unterminated`); err == nil {
		t.Error("expected error for unparseable command")
	}
}

func TestExecPlayer_MissingFileIsSkipped(t *testing.T) {
	// "false" would fail loudly if it ever ran; the missing file must be
	// skipped before the command is invoked.
	p, err := NewExecPlayer(t.TempDir(), "false")
	if err != nil {
		t.Fatalf("NewExecPlayer() error = %v", err)
	}

	p.Play("A")
	p.Close()
}

func TestExecPlayer_PlaysExistingFile(t *testing.T) {
	dir := t.TempDir()
	soundFile := filepath.Join(dir, "A.wav")
	if err := os.WriteFile(soundFile, []byte("RIFF"), 0644); err != nil {
		t.Fatalf("write sound file: %v", err)
	}

	marker := filepath.Join(dir, "played")

	// Use "touch <marker>" as the player; the sound path is appended as an
	// extra argument and ignored by touch.
	p, err := NewExecPlayer(dir, "touch "+marker)
	if err != nil {
		t.Fatalf("NewExecPlayer() error = %v", err)
	}

	p.Play("A")
	p.Close()

	if _, err := os.Stat(marker); err != nil {
		t.Errorf("expected player command to run: %v", err)
	}
}

func TestExecPlayer_PlayNeverBlocks(t *testing.T) {
	dir := t.TempDir()
	soundFile := filepath.Join(dir, "A.wav")
	if err := os.WriteFile(soundFile, []byte("RIFF"), 0644); err != nil {
		t.Fatalf("write sound file: %v", err)
	}

	// A slow player saturates the queue; Play must return immediately anyway.
	p, err := NewExecPlayer(dir, "sh -c 'sleep 0.2'")
	if err != nil {
		t.Fatalf("NewExecPlayer() error = %v", err)
	}
	defer p.Close()

	start := time.Now()
	for i := 0; i < 50; i++ {
		p.Play("A")
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("Play blocked for %v", elapsed)
	}
}

func TestMockPlayer_RecordsLabels(t *testing.T) {
	m := NewMockPlayer()

	m.Play("A")
	m.Play("B")

	played := m.Played()
	if len(played) != 2 || played[0] != "A" || played[1] != "B" {
		t.Errorf("played = %v, want [A B]", played)
	}
}
