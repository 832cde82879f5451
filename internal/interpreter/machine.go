// Package interpreter implements the prediction-confirmation state machine
// that turns noisy per-frame classifications into a typed sentence.
package interpreter

import (
	"sync"

	"github.com/ayusman/mudra/internal/classifier"
)

// Default confirmation settings.
const (
	// DefaultConfirmStreak is how many consecutive identical predictions
	// confirm a symbol.
	DefaultConfirmStreak = 5
	// DefaultMaxSentenceLength bounds the assembled sentence.
	DefaultMaxSentenceLength = 30
)

// User-visible error messages.
const (
	MsgFeatureMismatch = "Error: Feature count mismatch or Multiple hands detected"
	MsgSentenceLimit   = "Error: Sentence length limit reached"
)

// Options holds confirmation machine settings. Zero values fall back to
// the defaults.
type Options struct {
	ConfirmStreak     int
	MaxSentenceLength int
}

// Confirmation is emitted when a label has been observed for a full
// unanimous run. At most one confirmation fires per run.
type Confirmation struct {
	Label string
}

// State is a read-only snapshot of the machine for presentation layers.
type State struct {
	Sentence string `json:"sentence"`
	Pending  string `json:"pending"`
	Error    string `json:"error,omitempty"`
}

// Machine accumulates per-frame classification results, debounces them
// into confirmed symbols, and maintains the sentence buffer.
//
// Observe is driven by the frame loop; the command methods are driven by
// key events. Snapshot may be called concurrently from presentation code,
// so all state is mutex-guarded.
type Machine struct {
	opts          Options
	history       []string
	lastConfirmed string
	sentence      string
	errMsg        string
	mu            sync.RWMutex
}

// New creates a Machine with the given options.
func New(opts Options) *Machine {
	if opts.ConfirmStreak <= 0 {
		opts.ConfirmStreak = DefaultConfirmStreak
	}
	if opts.MaxSentenceLength <= 0 {
		opts.MaxSentenceLength = DefaultMaxSentenceLength
	}

	return &Machine{
		opts:    opts,
		history: make([]string, 0, opts.ConfirmStreak),
	}
}

// Observe applies one frame result to the machine. It returns a
// Confirmation and true exactly when the result completes a unanimous run
// of a label distinct from the last confirmed symbol.
func (m *Machine) Observe(result classifier.Result) (Confirmation, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch result.Kind {
	case classifier.KindNoDetection:
		m.history = m.history[:0]
		return Confirmation{}, false

	case classifier.KindFeatureMismatch:
		m.history = m.history[:0]
		m.errMsg = MsgFeatureMismatch
		return Confirmation{}, false

	case classifier.KindDetected:
		m.errMsg = ""
		m.push(result.Label)

		if len(m.history) == m.opts.ConfirmStreak &&
			m.unanimous(result.Label) &&
			result.Label != m.lastConfirmed {
			m.lastConfirmed = result.Label
			m.history = m.history[:0]
			return Confirmation{Label: result.Label}, true
		}
		return Confirmation{}, false
	}

	return Confirmation{}, false
}

// push appends a label to the history, evicting the oldest entry once the
// streak capacity is reached.
func (m *Machine) push(label string) {
	if len(m.history) == m.opts.ConfirmStreak {
		copy(m.history, m.history[1:])
		m.history = m.history[:m.opts.ConfirmStreak-1]
	}
	m.history = append(m.history, label)
}

func (m *Machine) unanimous(label string) bool {
	for _, h := range m.history {
		if h != label {
			return false
		}
	}
	return true
}

// AcceptSymbol appends the pending confirmed symbol to the sentence and
// clears the pending state. If the sentence is already at its length limit
// the error message is set instead. With no pending symbol it is a no-op.
func (m *Machine) AcceptSymbol() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.sentence) >= m.opts.MaxSentenceLength {
		m.errMsg = MsgSentenceLimit
		return
	}
	if m.lastConfirmed == "" {
		return
	}

	m.sentence += m.lastConfirmed
	m.lastConfirmed = ""
	m.history = m.history[:0]
}

// AppendSpace appends a space to the sentence, or sets the error message
// if the length limit is reached.
func (m *Machine) AppendSpace() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.sentence) >= m.opts.MaxSentenceLength {
		m.errMsg = MsgSentenceLimit
		return
	}
	m.sentence += " "
}

// DeleteLast removes the last character of the sentence if any, and always
// clears the error message.
func (m *Machine) DeleteLast() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.sentence) > 0 {
		m.sentence = m.sentence[:len(m.sentence)-1]
	}
	m.errMsg = ""
}

// Sentence returns the assembled sentence.
func (m *Machine) Sentence() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sentence
}

// Pending returns the confirmed-but-unaccepted symbol, or empty.
func (m *Machine) Pending() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastConfirmed
}

// ErrorMessage returns the transient user-visible error, or empty.
func (m *Machine) ErrorMessage() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.errMsg
}

// Snapshot returns a consistent view of the machine for display.
func (m *Machine) Snapshot() State {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return State{
		Sentence: m.sentence,
		Pending:  m.lastConfirmed,
		Error:    m.errMsg,
	}
}
