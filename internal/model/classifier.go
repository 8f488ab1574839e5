package model

import (
	"fmt"
	"math"

	"github.com/veritaslab/veritas/internal/domain"
)

// Classifier applies a fixed linear decision function to an embedding
// vector. Like the Encoder it is immutable after construction and safe
// for concurrent use.
type Classifier struct {
	dims    int
	weights []float32
	bias    float32
}

// NewClassifier builds a Classifier from a validated artifact.
func NewClassifier(a *ClassifierArtifact) (*Classifier, error) {
	if err := a.Validate(); err != nil {
		return nil, &domain.InferenceError{Stage: "classify", Err: err}
	}
	return &Classifier{dims: a.Dimensions, weights: a.Weights, bias: a.Bias}, nil
}

// Dimensions returns the expected input vector width.
func (c *Classifier) Dimensions() int {
	return c.dims
}

// Classify maps an embedding to a label and the probability assigned
// to that label. An exact 0.5 split resolves to Authentic; ties are
// never broken randomly.
func (c *Classifier) Classify(vec []float32) (domain.Label, float64, error) {
	if len(vec) != c.dims {
		return "", 0, &domain.InferenceError{
			Stage: "classify",
			Err:   fmt.Errorf("vector has %d dimensions, classifier expects %d", len(vec), c.dims),
		}
	}

	score := float64(c.bias)
	for i, w := range c.weights {
		score += float64(w) * float64(vec[i])
	}
	pAuthentic := sigmoid(score)

	if pAuthentic >= 0.5 {
		return domain.LabelAuthentic, pAuthentic, nil
	}
	return domain.LabelFabricated, 1 - pAuthentic, nil
}

func sigmoid(x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-x))
}
