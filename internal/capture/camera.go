// Package capture provides camera capture functionality using GoCV (OpenCV).
package capture

import (
	"errors"
	"sync"

	"gocv.io/x/gocv"
)

// ErrCameraNotOpen is returned when trying to read from a camera that is not open.
var ErrCameraNotOpen = errors.New("camera is not open")

// ErrReadFailed is returned when the camera produces no frame. The
// interpretation loop treats this as fatal and ends the session.
var ErrReadFailed = errors.New("failed to read frame from camera")

// Options holds camera open parameters. Width and Height are requests
// passed to the driver; the actual capture resolution may differ.
type Options struct {
	DeviceID int
	Width    int
	Height   int
	FPS      int
}

// Camera defines the interface for camera capture implementations.
type Camera interface {
	Open() error
	Close() error
	ReadFrame() (*gocv.Mat, error)
	IsOpen() bool
}

// cameraImpl manages video capture from a camera device using GoCV.
type cameraImpl struct {
	opts    Options
	capture *gocv.VideoCapture
	mu      sync.Mutex
	running bool
}

// NewCamera creates a new Camera with the given options.
func NewCamera(opts Options) Camera {
	return &cameraImpl{opts: opts}
}

// Open opens the camera device and requests the configured resolution
// and frame rate.
func (c *cameraImpl) Open() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.running {
		return nil
	}

	capture, err := gocv.OpenVideoCapture(c.opts.DeviceID)
	if err != nil {
		return err
	}

	if c.opts.Width > 0 {
		capture.Set(gocv.VideoCaptureFrameWidth, float64(c.opts.Width))
	}
	if c.opts.Height > 0 {
		capture.Set(gocv.VideoCaptureFrameHeight, float64(c.opts.Height))
	}
	if c.opts.FPS > 0 {
		capture.Set(gocv.VideoCaptureFPS, float64(c.opts.FPS))
	}

	c.capture = capture
	c.running = true

	return nil
}

// Close closes the camera and releases resources.
func (c *cameraImpl) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.running || c.capture == nil {
		c.running = false
		return nil
	}

	err := c.capture.Close()
	c.capture = nil
	c.running = false

	return err
}

// ReadFrame reads a single frame from the camera.
// The caller is responsible for closing the returned Mat.
func (c *cameraImpl) ReadFrame() (*gocv.Mat, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.running || c.capture == nil {
		return nil, ErrCameraNotOpen
	}

	mat := gocv.NewMat()
	if ok := c.capture.Read(&mat); !ok {
		mat.Close()
		return nil, ErrReadFailed
	}

	if mat.Empty() {
		mat.Close()
		return nil, ErrReadFailed
	}

	return &mat, nil
}

// IsOpen returns true if the camera is currently open and running.
func (c *cameraImpl) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.running
}
