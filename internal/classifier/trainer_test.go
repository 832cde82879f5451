package classifier

import (
	"encoding/json"
	"testing"
)

func rawSample(t *testing.T, label string, features []float64) json.RawMessage {
	t.Helper()

	data, err := json.Marshal(Sample{Label: label, Features: features})
	if err != nil {
		t.Fatalf("marshal sample: %v", err)
	}
	return data
}

func TestTrainer_Train(t *testing.T) {
	trainer := NewTrainer()

	samples := []json.RawMessage{
		rawSample(t, "A", []float64{0, 0, 0}),
		rawSample(t, "A", []float64{0.2, 0, 0}),
		rawSample(t, "B", []float64{1, 1, 1}),
	}

	model, err := trainer.Train(samples)
	if err != nil {
		t.Fatalf("Train() error = %v", err)
	}

	if model.ExpectedFeatures() != 3 {
		t.Errorf("expected feature size 3, got %d", model.ExpectedFeatures())
	}

	labels := model.Labels()
	if len(labels) != 2 {
		t.Fatalf("expected 2 labels, got %d", len(labels))
	}

	// The "A" template is the average of its two samples.
	label, err := model.Predict([]float64{0.1, 0, 0})
	if err != nil {
		t.Fatalf("Predict() error = %v", err)
	}
	if label != "A" {
		t.Errorf("Predict() = %q, want A", label)
	}
}

func TestTrainer_TrainErrors(t *testing.T) {
	trainer := NewTrainer()

	tests := []struct {
		name    string
		samples []json.RawMessage
	}{
		{"no samples", nil},
		{"invalid json", []json.RawMessage{json.RawMessage("{")}},
		{"missing label", []json.RawMessage{rawSample(t, "", []float64{1})}},
		{"missing features", []json.RawMessage{rawSample(t, "A", nil)}},
		{"inconsistent sizes", []json.RawMessage{
			rawSample(t, "A", []float64{1, 2}),
			rawSample(t, "B", []float64{1}),
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := trainer.Train(tt.samples); err == nil {
				t.Error("expected training error")
			}
		})
	}
}
