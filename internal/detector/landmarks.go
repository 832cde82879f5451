// Package detector provides hand landmark detection interfaces and types.
package detector

// Hand landmark indices following MediaPipe convention.
// See: https://developers.google.com/mediapipe/solutions/vision/hand_landmarker
const (
	Wrist        = 0
	ThumbCMC     = 1
	ThumbMCP     = 2
	ThumbIP      = 3
	ThumbTip     = 4
	IndexMCP     = 5
	IndexPIP     = 6
	IndexDIP     = 7
	IndexTip     = 8
	MiddleMCP    = 9
	MiddlePIP    = 10
	MiddleDIP    = 11
	MiddleTip    = 12
	RingMCP      = 13
	RingPIP      = 14
	RingDIP      = 15
	RingTip      = 16
	PinkyMCP     = 17
	PinkyPIP     = 18
	PinkyDIP     = 19
	PinkyTip     = 20
	NumLandmarks = 21
)

// Point3D represents a single landmark in [0,1]-normalized image coordinates.
type Point3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// HandLandmarks represents the 21 hand landmarks detected by MediaPipe.
type HandLandmarks struct {
	Points     [NumLandmarks]Point3D `json:"points"`
	Handedness string                `json:"handedness"` // "Left" or "Right"
	Score      float64               `json:"score"`
}

// Box is an axis-aligned bounding rectangle in normalized image coordinates.
type Box struct {
	MinX float64 `json:"min_x"`
	MinY float64 `json:"min_y"`
	MaxX float64 `json:"max_x"`
	MaxY float64 `json:"max_y"`
}

// BoundingBox returns the smallest box enclosing all landmarks of the hand.
func (h *HandLandmarks) BoundingBox() Box {
	box := Box{
		MinX: h.Points[0].X,
		MinY: h.Points[0].Y,
		MaxX: h.Points[0].X,
		MaxY: h.Points[0].Y,
	}

	for i := 1; i < NumLandmarks; i++ {
		p := h.Points[i]
		if p.X < box.MinX {
			box.MinX = p.X
		}
		if p.X > box.MaxX {
			box.MaxX = p.X
		}
		if p.Y < box.MinY {
			box.MinY = p.Y
		}
		if p.Y > box.MaxY {
			box.MaxY = p.Y
		}
	}

	return box
}
