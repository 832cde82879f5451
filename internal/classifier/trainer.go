package classifier

import (
	"encoding/json"
	"fmt"
)

// Trainer builds model templates from recorded labeled samples.
type Trainer struct{}

// NewTrainer creates a new Trainer instance.
func NewTrainer() *Trainer {
	return &Trainer{}
}

// Sample is one recorded labeled feature vector.
type Sample struct {
	Label     string    `json:"label"`
	Features  []float64 `json:"features"`
	Timestamp int64     `json:"timestamp"`
}

// Train averages the recorded samples per label into one template each and
// returns the resulting model. All samples must carry feature vectors of
// the same length.
func (t *Trainer) Train(samples []json.RawMessage) (*Model, error) {
	if len(samples) == 0 {
		return nil, fmt.Errorf("no samples provided")
	}

	parsed := make([]Sample, 0, len(samples))
	for i, raw := range samples {
		var sample Sample
		if err := json.Unmarshal(raw, &sample); err != nil {
			return nil, fmt.Errorf("failed to parse sample %d: %w", i, err)
		}
		if sample.Label == "" {
			return nil, fmt.Errorf("sample %d has no label", i)
		}
		if len(sample.Features) == 0 {
			return nil, fmt.Errorf("sample %d has no features", i)
		}
		parsed = append(parsed, sample)
	}

	featureSize := len(parsed[0].Features)
	for i, sample := range parsed {
		if len(sample.Features) != featureSize {
			return nil, fmt.Errorf("sample %d has %d features, expected %d", i, len(sample.Features), featureSize)
		}
	}

	// Accumulate per-label sums, preserving first-seen label order.
	sums := make(map[string][]float64)
	counts := make(map[string]int)
	var order []string

	for _, sample := range parsed {
		if _, ok := sums[sample.Label]; !ok {
			sums[sample.Label] = make([]float64, featureSize)
			order = append(order, sample.Label)
		}
		sum := sums[sample.Label]
		for i, f := range sample.Features {
			sum[i] += f
		}
		counts[sample.Label]++
	}

	templates := make([]Template, 0, len(order))
	for _, label := range order {
		sum := sums[label]
		n := float64(counts[label])
		averaged := make([]float64, featureSize)
		for i, s := range sum {
			averaged[i] = s / n
		}
		templates = append(templates, Template{Label: label, Features: averaged})
	}

	return &Model{
		featureSize: featureSize,
		templates:   templates,
	}, nil
}
