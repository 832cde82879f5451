package detector

import (
	"errors"
	"testing"

	"gocv.io/x/gocv"
)

func TestMockDetector_ReturnsConfiguredHands(t *testing.T) {
	mock := NewMockDetector()
	mock.SetHands([]HandLandmarks{FistLandmarks()})

	frame := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer frame.Close()

	hands, err := mock.Detect(&frame)
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if len(hands) != 1 {
		t.Fatalf("expected 1 hand, got %d", len(hands))
	}
	if hands[0].Handedness != "Right" {
		t.Errorf("expected Right hand, got %q", hands[0].Handedness)
	}
}

func TestMockDetector_ReturnsConfiguredError(t *testing.T) {
	mock := NewMockDetector()
	wantErr := errors.New("detector unavailable")
	mock.SetError(wantErr)

	frame := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer frame.Close()

	_, err := mock.Detect(&frame)
	if !errors.Is(err, wantErr) {
		t.Errorf("expected configured error, got %v", err)
	}
}

func TestHandLandmarks_BoundingBox(t *testing.T) {
	hand := FlatHandLandmarks()
	box := hand.BoundingBox()

	if box.MinX >= box.MaxX || box.MinY >= box.MaxY {
		t.Fatalf("degenerate bounding box: %+v", box)
	}

	for i := 0; i < NumLandmarks; i++ {
		p := hand.Points[i]
		if p.X < box.MinX || p.X > box.MaxX || p.Y < box.MinY || p.Y > box.MaxY {
			t.Errorf("landmark %d (%.3f, %.3f) outside box %+v", i, p.X, p.Y, box)
		}
	}

	// The middle finger tip is the top of a flat hand.
	if box.MinY != hand.Points[MiddleTip].Y {
		t.Errorf("expected box top at middle tip %.3f, got %.3f", hand.Points[MiddleTip].Y, box.MinY)
	}
}

func TestFixtures_AreDistinct(t *testing.T) {
	fist := FistLandmarks()
	flat := FlatHandLandmarks()

	same := true
	for i := 0; i < NumLandmarks; i++ {
		if fist.Points[i] != flat.Points[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("fist and flat hand fixtures should differ")
	}
}

func TestNewMediaPipeDetector_MissingScript(t *testing.T) {
	// The service script is not shipped with the test binary, so
	// construction should fail rather than defer the error to Detect.
	if _, err := NewMediaPipeDetector(DefaultConfig()); err == nil {
		t.Skip("mediapipe_service.py present in test environment")
	}
}
