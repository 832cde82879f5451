package app

import (
	"sync"

	"gocv.io/x/gocv"
)

// KeyNone is the value returned by PollKey when no key is pressed.
const KeyNone = -1

// Display presents frames to the user and reports pressed keys.
type Display interface {
	// Show renders the frame.
	Show(frame *gocv.Mat)

	// PollKey returns the pressed key code, or KeyNone if no key is pressed.
	PollKey() int

	// Close releases display resources.
	Close() error
}

// windowDisplay renders frames in a gocv window.
type windowDisplay struct {
	window *gocv.Window
}

// NewWindowDisplay creates a Display backed by an OpenCV window with the
// given title.
func NewWindowDisplay(title string) Display {
	return &windowDisplay{window: gocv.NewWindow(title)}
}

// Show renders the frame in the window.
func (d *windowDisplay) Show(frame *gocv.Mat) {
	d.window.IMShow(*frame)
}

// PollKey waits up to 1ms for a key press and returns its code.
func (d *windowDisplay) PollKey() int {
	return d.window.WaitKey(1)
}

// Close closes the window.
func (d *windowDisplay) Close() error {
	return d.window.Close()
}

// MockDisplay is a Display implementation for testing. Key presses are
// queued ahead of time and returned one per PollKey call.
type MockDisplay struct {
	mu    sync.Mutex
	keys  []int
	shown int
}

// NewMockDisplay creates a new MockDisplay with no queued keys.
func NewMockDisplay() *MockDisplay {
	return &MockDisplay{}
}

// QueueKeys appends key codes to be returned by subsequent PollKey calls.
func (d *MockDisplay) QueueKeys(keys ...int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.keys = append(d.keys, keys...)
}

// Show counts the frame as shown.
func (d *MockDisplay) Show(frame *gocv.Mat) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.shown++
}

// PollKey returns the next queued key, or KeyNone when the queue is empty.
func (d *MockDisplay) PollKey() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.keys) == 0 {
		return KeyNone
	}
	key := d.keys[0]
	d.keys = d.keys[1:]
	return key
}

// Close implements the Display interface.
func (d *MockDisplay) Close() error {
	return nil
}

// Shown returns the number of frames shown so far.
func (d *MockDisplay) Shown() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.shown
}
