// Package config loads and validates the Mudra runtime configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// CameraConfig holds camera capture settings.
// Width and Height are advisory; the driver may not honor them exactly.
type CameraConfig struct {
	DeviceID int `yaml:"device_id"`
	Width    int `yaml:"width"`
	Height   int `yaml:"height"`
	FPS      int `yaml:"fps"`
}

// ModelConfig holds the trained classifier artifact location.
type ModelConfig struct {
	Path string `yaml:"path"`
}

// AudioConfig holds per-label sound playback settings.
type AudioConfig struct {
	Enabled bool   `yaml:"enabled"`
	Dir     string `yaml:"dir"`
	Command string `yaml:"command"`
}

// InterpreterConfig holds confirmation and sentence settings.
type InterpreterConfig struct {
	ConfirmStreak     int `yaml:"confirm_streak"`
	MaxSentenceLength int `yaml:"max_sentence_length"`
}

// HTTPConfig holds the settings server address.
type HTTPConfig struct {
	Enabled bool   `yaml:"enabled"`
	Bind    string `yaml:"bind"`
	Port    int    `yaml:"port"`
}

// StoreConfig holds the transcript database location.
type StoreConfig struct {
	Path string `yaml:"path"`
}

// DisplayConfig holds presentation settings.
type DisplayConfig struct {
	Enabled bool   `yaml:"enabled"`
	Window  string `yaml:"window"`
	Tray    bool   `yaml:"tray"`
}

// Config is the full runtime configuration for Mudra.
type Config struct {
	Camera      CameraConfig      `yaml:"camera"`
	Model       ModelConfig       `yaml:"model"`
	Audio       AudioConfig       `yaml:"audio"`
	Interpreter InterpreterConfig `yaml:"interpreter"`
	HTTP        HTTPConfig        `yaml:"http"`
	Store       StoreConfig       `yaml:"store"`
	Display     DisplayConfig     `yaml:"display"`
}

// Default returns the configuration used when no file or overrides are given.
func Default() Config {
	return Config{
		Camera: CameraConfig{
			DeviceID: 0,
			Width:    640,
			Height:   480,
			FPS:      15,
		},
		Model: ModelConfig{
			Path: "./artifacts/model.json",
		},
		Audio: AudioConfig{
			Enabled: true,
			Dir:     "./audios",
			Command: defaultPlayCommand(),
		},
		Interpreter: InterpreterConfig{
			ConfirmStreak:     5,
			MaxSentenceLength: 30,
		},
		HTTP: HTTPConfig{
			Enabled: true,
			Bind:    "127.0.0.1",
			Port:    8080,
		},
		Store: StoreConfig{
			Path: "./data/mudra.db",
		},
		Display: DisplayConfig{
			Enabled: true,
			Window:  "Mudra - Sign Language Interpreter",
			Tray:    false,
		},
	}
}

// Load reads the configuration file at path, applies MUDRA_* environment
// overrides, and validates the result. An empty path loads defaults only.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				return cfg, fmt.Errorf("config file not found: %w", err)
			}
			return cfg, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	applyEnvOverrides(&cfg)
	if err := validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// defaultPlayCommand picks a wav player that ships with the host platform.
func defaultPlayCommand() string {
	if runtime.GOOS == "darwin" {
		return "afplay"
	}
	return "aplay -q"
}

func applyEnvOverrides(cfg *Config) {
	overrideInt(&cfg.Camera.DeviceID, "MUDRA_CAMERA_DEVICE_ID")
	overrideInt(&cfg.Camera.Width, "MUDRA_CAMERA_WIDTH")
	overrideInt(&cfg.Camera.Height, "MUDRA_CAMERA_HEIGHT")
	overrideInt(&cfg.Camera.FPS, "MUDRA_CAMERA_FPS")
	overrideString(&cfg.Model.Path, "MUDRA_MODEL_PATH")
	overrideBool(&cfg.Audio.Enabled, "MUDRA_AUDIO_ENABLED")
	overrideString(&cfg.Audio.Dir, "MUDRA_AUDIO_DIR")
	overrideString(&cfg.Audio.Command, "MUDRA_AUDIO_COMMAND")
	overrideInt(&cfg.Interpreter.ConfirmStreak, "MUDRA_CONFIRM_STREAK")
	overrideInt(&cfg.Interpreter.MaxSentenceLength, "MUDRA_MAX_SENTENCE_LENGTH")
	overrideBool(&cfg.HTTP.Enabled, "MUDRA_HTTP_ENABLED")
	overrideString(&cfg.HTTP.Bind, "MUDRA_HTTP_BIND")
	overrideInt(&cfg.HTTP.Port, "MUDRA_HTTP_PORT")
	overrideString(&cfg.Store.Path, "MUDRA_STORE_PATH")
	overrideBool(&cfg.Display.Enabled, "MUDRA_DISPLAY_ENABLED")
	overrideString(&cfg.Display.Window, "MUDRA_DISPLAY_WINDOW")
	overrideBool(&cfg.Display.Tray, "MUDRA_DISPLAY_TRAY")
}

func overrideString(target *string, envKey string) {
	if value, ok := os.LookupEnv(envKey); ok && strings.TrimSpace(value) != "" {
		*target = value
	}
}

func overrideInt(target *int, envKey string) {
	if value, ok := os.LookupEnv(envKey); ok {
		if parsed, err := strconv.Atoi(value); err == nil {
			*target = parsed
		}
	}
}

func overrideBool(target *bool, envKey string) {
	if value, ok := os.LookupEnv(envKey); ok {
		if parsed, err := strconv.ParseBool(value); err == nil {
			*target = parsed
		}
	}
}

func validate(cfg Config) error {
	if cfg.Camera.DeviceID < 0 {
		return errors.New("camera.device_id must be >= 0")
	}
	if cfg.Camera.FPS <= 0 {
		return errors.New("camera.fps must be positive")
	}
	if cfg.Model.Path == "" {
		return errors.New("model.path must not be empty")
	}
	if cfg.Audio.Enabled {
		if cfg.Audio.Dir == "" {
			return errors.New("audio.dir must not be empty when audio is enabled")
		}
		if cfg.Audio.Command == "" {
			return errors.New("audio.command must not be empty when audio is enabled")
		}
	}
	if cfg.Interpreter.ConfirmStreak < 2 {
		return errors.New("interpreter.confirm_streak must be >= 2")
	}
	if cfg.Interpreter.MaxSentenceLength < 1 {
		return errors.New("interpreter.max_sentence_length must be >= 1")
	}
	if cfg.HTTP.Enabled {
		if cfg.HTTP.Port <= 0 || cfg.HTTP.Port > 65535 {
			return errors.New("http.port must be between 1 and 65535")
		}
	}
	if cfg.Store.Path == "" {
		return errors.New("store.path must not be empty")
	}
	return nil
}
