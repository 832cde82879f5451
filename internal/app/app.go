// Package app provides the main application logic for the Mudra sign
// language interpreter.
package app

import (
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ayusman/mudra/internal/audio"
	"github.com/ayusman/mudra/internal/capture"
	"github.com/ayusman/mudra/internal/classifier"
	"github.com/ayusman/mudra/internal/interpreter"
	"github.com/ayusman/mudra/internal/store"
)

// DefaultFPS is the frame rate of the interpretation loop.
const DefaultFPS = 15

// Config holds configuration options for the application.
type Config struct {
	Camera     capture.Camera
	Classifier *classifier.Adapter
	Machine    *interpreter.Machine
	Player     audio.Player
	Store      *store.Store
	Display    Display
	FPS        int

	// Frames, if set, receives a copy of every captured frame so other
	// consumers (the MJPEG stream) can read frames without touching the
	// camera.
	Frames *capture.FrameBuffer

	// OnState, if set, is called from the loop whenever the sentence,
	// pending symbol, or error message changes. It must not block.
	OnState func(interpreter.State)
}

// App orchestrates the interpretation loop: it reads camera frames, runs
// pose classification, feeds results into the confirmation state machine,
// plays audio feedback on confirmations, and handles keyboard editing of
// the sentence buffer.
type App struct {
	config  Config
	enabled bool
	mu      sync.RWMutex
	stopCh  chan struct{}
}

// New creates a new App instance with the given configuration.
func New(config Config) *App {
	return &App{
		config:  config,
		enabled: true,
		stopCh:  make(chan struct{}),
	}
}

// SetEnabled enables or disables interpretation. When disabled, frames
// are still displayed but are not classified.
func (a *App) SetEnabled(enabled bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.enabled = enabled
}

// IsEnabled returns whether interpretation is currently enabled.
func (a *App) IsEnabled() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.enabled
}

// Machine returns the confirmation state machine.
func (a *App) Machine() *interpreter.Machine {
	return a.config.Machine
}

// Run executes the interpretation loop until the user quits, the camera
// fails, or Stop is called. It blocks the calling goroutine.
func (a *App) Run() error {
	if err := a.config.Camera.Open(); err != nil {
		return err
	}
	defer a.config.Camera.Close()

	if a.config.Display != nil {
		defer a.config.Display.Close()
	}

	fps := a.config.FPS
	if fps <= 0 {
		fps = DefaultFPS
	}

	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	log.Println("Interpretation loop started")

	var lastState interpreter.State

	for {
		select {
		case <-a.stopCh:
			return a.saveTranscript()
		case <-ticker.C:
		}

		frame, err := a.config.Camera.ReadFrame()
		if err != nil {
			// A failed read means the camera is gone; end the session.
			log.Printf("Error reading frame: %v", err)
			if saveErr := a.saveTranscript(); saveErr != nil {
				log.Printf("Error saving transcript: %v", saveErr)
			}
			return err
		}

		if a.config.Frames != nil {
			a.config.Frames.Update(frame)
		}

		var result classifier.Result
		if a.IsEnabled() {
			result, err = a.config.Classifier.Classify(frame)
			if err != nil {
				log.Printf("Error classifying frame: %v", err)
			} else if confirmation, ok := a.config.Machine.Observe(result); ok {
				log.Printf("Confirmed symbol: %s", confirmation.Label)
				if a.config.Player != nil {
					a.config.Player.Play(confirmation.Label)
				}
			}
		}

		quit := false
		if a.config.Display != nil {
			a.render(frame, result)
			a.config.Display.Show(frame)
			quit = a.handleKey(a.config.Display.PollKey())
		}
		frame.Close()

		if a.config.OnState != nil {
			if state := a.config.Machine.Snapshot(); state != lastState {
				lastState = state
				a.config.OnState(state)
			}
		}

		if quit {
			return a.saveTranscript()
		}
	}
}

// Stop signals the interpretation loop to end.
func (a *App) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()

	select {
	case <-a.stopCh:
		// Already stopped
	default:
		close(a.stopCh)
	}
}

// handleKey applies a pressed key to the sentence buffer. It returns true
// when the user requested to quit.
func (a *App) handleKey(key int) bool {
	switch key {
	case ' ':
		a.config.Machine.AcceptSymbol()
	case 's', 'S':
		a.config.Machine.AppendSpace()
	case 'b', 'B':
		a.config.Machine.DeleteLast()
	case 'q', 'Q':
		return true
	}
	return false
}

// saveTranscript persists the current sentence to the store if it is
// non-empty.
func (a *App) saveTranscript() error {
	if a.config.Store == nil {
		return nil
	}

	text := strings.TrimSpace(a.config.Machine.Sentence())
	if text == "" {
		return nil
	}

	transcript := &store.Transcript{
		ID:   uuid.New().String(),
		Text: text,
	}
	if err := a.config.Store.Transcripts().Create(transcript); err != nil {
		return err
	}

	log.Printf("Saved transcript %s (%d characters)", transcript.ID, len(text))
	return nil
}
