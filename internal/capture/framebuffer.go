package capture

import (
	"sync"

	"gocv.io/x/gocv"
)

// FrameBuffer holds a copy of the most recent camera frame. The
// interpretation loop is the only reader of the capture device; secondary
// consumers such as the MJPEG stream read from here instead of competing
// for device reads.
type FrameBuffer struct {
	mu    sync.RWMutex
	frame gocv.Mat
	has   bool
}

// NewFrameBuffer creates an empty FrameBuffer.
func NewFrameBuffer() *FrameBuffer {
	return &FrameBuffer{}
}

// Update replaces the stored frame with a copy of the given one.
func (b *FrameBuffer) Update(frame *gocv.Mat) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.has {
		b.frame.Close()
	}
	b.frame = frame.Clone()
	b.has = true
}

// Latest returns a copy of the most recent frame, or false when nothing
// has been stored yet. The caller owns the returned Mat.
func (b *FrameBuffer) Latest() (*gocv.Mat, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.has {
		return nil, false
	}
	clone := b.frame.Clone()
	return &clone, true
}

// Close releases the stored frame.
func (b *FrameBuffer) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.has {
		b.frame.Close()
		b.has = false
	}
}
