package classifier

import (
	"gocv.io/x/gocv"

	"github.com/ayusman/mudra/internal/detector"
)

// ResultKind categorizes the outcome of classifying one frame.
type ResultKind string

const (
	// KindDetected means exactly one usable hand was found and classified.
	KindDetected ResultKind = "detected"
	// KindNoDetection means no hand was found in the frame.
	KindNoDetection ResultKind = "no_detection"
	// KindFeatureMismatch means a hand was found but the extracted feature
	// count does not match the model's expected input size, typically
	// because multiple hands were detected at once.
	KindFeatureMismatch ResultKind = "feature_mismatch"
)

// Result is the outcome of classifying a single frame.
type Result struct {
	Kind  ResultKind
	Label string       // set when Kind == KindDetected
	Box   detector.Box // bounding box of the classified hand
	Hands []detector.HandLandmarks
}

// Adapter combines a landmark detector and a trained model into a
// per-frame classification step. It has no side effects; drawing overlays
// is a presentation concern handled elsewhere.
type Adapter struct {
	detector detector.Detector
	model    *Model
}

// NewAdapter creates an Adapter over the given detector and model.
func NewAdapter(d detector.Detector, m *Model) *Adapter {
	return &Adapter{detector: d, model: m}
}

// Model returns the trained model backing this adapter.
func (a *Adapter) Model() *Model {
	return a.model
}

// Classify runs hand detection on the frame and classifies the extracted
// feature vector. Detector failures are returned as errors; all expected
// frame outcomes are reported through the Result kind.
func (a *Adapter) Classify(frame *gocv.Mat) (Result, error) {
	hands, err := a.detector.Detect(frame)
	if err != nil {
		return Result{}, err
	}

	if len(hands) == 0 {
		return Result{Kind: KindNoDetection}, nil
	}

	features := Features(hands)
	if len(features) != a.model.ExpectedFeatures() {
		return Result{Kind: KindFeatureMismatch, Hands: hands}, nil
	}

	label, err := a.model.Predict(features)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Kind:  KindDetected,
		Label: label,
		Box:   hands[0].BoundingBox(),
		Hands: hands,
	}, nil
}
