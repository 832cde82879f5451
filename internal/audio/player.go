// Package audio plays the per-label confirmation sounds.
package audio

import (
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"sync"

	"github.com/mattn/go-shellwords"
)

// Player plays the confirmation sound for a label. Implementations must
// never block the caller; playback happens in the background.
type Player interface {
	// Play queues playback of the sound for the given label.
	Play(label string)

	// Close stops the player and waits for in-flight playback to finish.
	Close()
}

// execPlayer plays one .wav file per label, located at <dir>/<label>.wav,
// through an external player command. Labels are queued to a single worker
// goroutine so playback can never stall the frame loop; if the queue is
// full the sound is dropped.
type execPlayer struct {
	dir     string
	command []string
	queue   chan string
	done    chan struct{}
	once    sync.Once
}

// NewExecPlayer creates a Player that invokes the given command (for
// example "afplay" or "aplay -q") with the sound file path appended as the
// final argument.
func NewExecPlayer(dir, command string) (Player, error) {
	parser := shellwords.NewParser()
	args, err := parser.Parse(command)
	if err != nil {
		return nil, fmt.Errorf("parse audio command: %w", err)
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("audio command empty")
	}

	p := &execPlayer{
		dir:     dir,
		command: args,
		queue:   make(chan string, 8),
		done:    make(chan struct{}),
	}
	go p.run()

	return p, nil
}

// Play queues the sound for label. It never blocks: if the worker is
// saturated the request is dropped.
func (p *execPlayer) Play(label string) {
	select {
	case p.queue <- label:
	default:
		log.Printf("Audio queue full, dropping sound for %q", label)
	}
}

// Close shuts down the playback worker.
func (p *execPlayer) Close() {
	p.once.Do(func() {
		close(p.queue)
		<-p.done
	})
}

func (p *execPlayer) run() {
	defer close(p.done)

	for label := range p.queue {
		p.playOne(label)
	}
}

func (p *execPlayer) playOne(label string) {
	soundFile := filepath.Join(p.dir, label+".wav")

	if _, err := os.Stat(soundFile); err != nil {
		log.Printf("Sound file for %q not found, skipping playback", label)
		return
	}

	args := append(append([]string{}, p.command[1:]...), soundFile)
	cmd := exec.Command(p.command[0], args...)
	if err := cmd.Run(); err != nil {
		log.Printf("Failed to play sound for %q: %v", label, err)
	}
}

// MockPlayer records played labels for tests.
type MockPlayer struct {
	mu     sync.Mutex
	played []string
}

// NewMockPlayer creates a new MockPlayer instance.
func NewMockPlayer() *MockPlayer {
	return &MockPlayer{}
}

// Play records the label.
func (m *MockPlayer) Play(label string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.played = append(m.played, label)
}

// Close is a no-op for the mock player.
func (m *MockPlayer) Close() {}

// Played returns the labels played so far.
func (m *MockPlayer) Played() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.played...)
}
