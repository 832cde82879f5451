package classifier

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"sort"
)

// ErrFeatureSize is returned by Predict when the input vector length does
// not match the model's expected input size.
var ErrFeatureSize = errors.New("feature vector size mismatch")

// Template is one labeled reference feature vector in the model artifact.
type Template struct {
	Label    string    `json:"label"`
	Features []float64 `json:"features"`
}

// Model is a trained nearest-template classifier loaded from a JSON
// artifact. It is immutable after loading.
type Model struct {
	featureSize int
	templates   []Template
}

// modelArtifact is the on-disk JSON layout of a trained model.
type modelArtifact struct {
	FeatureSize int        `json:"feature_size"`
	Templates   []Template `json:"templates"`
}

// LoadModel reads and validates a trained model artifact from path.
// A load failure is fatal to startup; callers do not retry.
func LoadModel(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model artifact: %w", err)
	}

	var artifact modelArtifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		return nil, fmt.Errorf("parse model artifact: %w", err)
	}

	return newModel(artifact)
}

func newModel(artifact modelArtifact) (*Model, error) {
	if artifact.FeatureSize <= 0 {
		return nil, fmt.Errorf("model artifact: feature_size must be positive, got %d", artifact.FeatureSize)
	}
	if len(artifact.Templates) == 0 {
		return nil, errors.New("model artifact: no templates")
	}
	for i, tpl := range artifact.Templates {
		if tpl.Label == "" {
			return nil, fmt.Errorf("model artifact: template %d has empty label", i)
		}
		if len(tpl.Features) != artifact.FeatureSize {
			return nil, fmt.Errorf("model artifact: template %q has %d features, expected %d",
				tpl.Label, len(tpl.Features), artifact.FeatureSize)
		}
	}

	return &Model{
		featureSize: artifact.FeatureSize,
		templates:   artifact.Templates,
	}, nil
}

// ExpectedFeatures returns the input vector length the model was trained on.
func (m *Model) ExpectedFeatures() int {
	return m.featureSize
}

// Labels returns the label alphabet of the model, sorted and deduplicated.
func (m *Model) Labels() []string {
	seen := make(map[string]bool, len(m.templates))
	var labels []string
	for _, tpl := range m.templates {
		if !seen[tpl.Label] {
			seen[tpl.Label] = true
			labels = append(labels, tpl.Label)
		}
	}
	sort.Strings(labels)
	return labels
}

// Predict returns the label of the template nearest to the given feature
// vector by Euclidean distance.
func (m *Model) Predict(features []float64) (string, error) {
	if len(features) != m.featureSize {
		return "", fmt.Errorf("%w: expected %d, got %d", ErrFeatureSize, m.featureSize, len(features))
	}

	best := -1
	bestDist := math.Inf(1)
	for i := range m.templates {
		dist := euclideanDistance(features, m.templates[i].Features)
		if dist < bestDist {
			bestDist = dist
			best = i
		}
	}

	return m.templates[best].Label, nil
}

// Save writes the model artifact as JSON to path.
func (m *Model) Save(path string) error {
	artifact := modelArtifact{
		FeatureSize: m.featureSize,
		Templates:   m.templates,
	}

	data, err := json.MarshalIndent(artifact, "", "  ")
	if err != nil {
		return fmt.Errorf("encode model artifact: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write model artifact: %w", err)
	}

	return nil
}

// euclideanDistance calculates the Euclidean distance between two feature
// vectors of equal length.
func euclideanDistance(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}
