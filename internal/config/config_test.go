package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Interpreter.ConfirmStreak != 5 {
		t.Errorf("expected default confirm streak 5, got %d", cfg.Interpreter.ConfirmStreak)
	}
	if cfg.Interpreter.MaxSentenceLength != 30 {
		t.Errorf("expected default max sentence length 30, got %d", cfg.Interpreter.MaxSentenceLength)
	}
	if cfg.Camera.DeviceID != 0 {
		t.Errorf("expected default camera device 0, got %d", cfg.Camera.DeviceID)
	}
	if cfg.Audio.Command == "" {
		t.Error("expected a default audio command")
	}
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mudra.yaml")

	content := `
camera:
  device_id: 2
  width: 2304
  height: 1536
model:
  path: /opt/mudra/model.json
interpreter:
  confirm_streak: 3
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Camera.DeviceID != 2 {
		t.Errorf("expected camera device 2, got %d", cfg.Camera.DeviceID)
	}
	if cfg.Camera.Width != 2304 || cfg.Camera.Height != 1536 {
		t.Errorf("expected resolution 2304x1536, got %dx%d", cfg.Camera.Width, cfg.Camera.Height)
	}
	if cfg.Model.Path != "/opt/mudra/model.json" {
		t.Errorf("unexpected model path %q", cfg.Model.Path)
	}
	if cfg.Interpreter.ConfirmStreak != 3 {
		t.Errorf("expected confirm streak 3, got %d", cfg.Interpreter.ConfirmStreak)
	}

	// Fields absent from the file keep their defaults.
	if cfg.Interpreter.MaxSentenceLength != 30 {
		t.Errorf("expected default max sentence length 30, got %d", cfg.Interpreter.MaxSentenceLength)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("MUDRA_MODEL_PATH", "/tmp/other-model.json")
	t.Setenv("MUDRA_CONFIRM_STREAK", "7")
	t.Setenv("MUDRA_AUDIO_ENABLED", "false")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Model.Path != "/tmp/other-model.json" {
		t.Errorf("env override not applied, model path = %q", cfg.Model.Path)
	}
	if cfg.Interpreter.ConfirmStreak != 7 {
		t.Errorf("env override not applied, confirm streak = %d", cfg.Interpreter.ConfirmStreak)
	}
	if cfg.Audio.Enabled {
		t.Error("env override not applied, audio still enabled")
	}
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty model path", func(c *Config) { c.Model.Path = "" }},
		{"zero fps", func(c *Config) { c.Camera.FPS = 0 }},
		{"streak too short", func(c *Config) { c.Interpreter.ConfirmStreak = 1 }},
		{"sentence length zero", func(c *Config) { c.Interpreter.MaxSentenceLength = 0 }},
		{"bad http port", func(c *Config) { c.HTTP.Port = 70000 }},
		{"audio enabled without dir", func(c *Config) { c.Audio.Dir = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			if err := validate(cfg); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
