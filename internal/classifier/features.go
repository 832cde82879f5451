// Package classifier converts detected hand landmarks into feature vectors
// and classifies them against a trained model artifact.
package classifier

import "github.com/ayusman/mudra/internal/detector"

// FeaturesPerHand is the feature vector length produced by a single hand:
// x, y and z for each of the 21 landmarks.
const FeaturesPerHand = detector.NumLandmarks * 3

// Features flattens the landmarks of the given hands into one feature
// vector. Each coordinate is offset by the per-hand minimum along its axis,
// so the vector is translation-invariant within the frame.
//
// All detected hands are concatenated into the same vector. With more than
// one hand the result is longer than the model's expected input size and
// classification reports a feature mismatch; multi-hand poses are not a
// supported input.
func Features(hands []detector.HandLandmarks) []float64 {
	features := make([]float64, 0, len(hands)*FeaturesPerHand)

	for i := range hands {
		hand := &hands[i]

		minX := hand.Points[0].X
		minY := hand.Points[0].Y
		minZ := hand.Points[0].Z
		for j := 1; j < detector.NumLandmarks; j++ {
			p := hand.Points[j]
			if p.X < minX {
				minX = p.X
			}
			if p.Y < minY {
				minY = p.Y
			}
			if p.Z < minZ {
				minZ = p.Z
			}
		}

		for j := 0; j < detector.NumLandmarks; j++ {
			p := hand.Points[j]
			features = append(features, p.X-minX, p.Y-minY, p.Z-minZ)
		}
	}

	return features
}
