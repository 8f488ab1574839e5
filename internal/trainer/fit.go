package trainer

import (
	"fmt"
	"math"
)

// EvalMetrics are the standard binary classification quality numbers,
// with the authentic class as positive.
type EvalMetrics struct {
	Accuracy  float64
	Precision float64
	Recall    float64
	F1        float64
}

func (m EvalMetrics) String() string {
	return fmt.Sprintf("accuracy=%.3f precision=%.3f recall=%.3f f1=%.3f",
		m.Accuracy, m.Precision, m.Recall, m.F1)
}

// FitLogistic fits a logistic regression by full-batch gradient
// descent. Features and labels must be parallel; labels are 0 or 1.
// The run is deterministic: weights start at zero and the update
// order is fixed.
func FitLogistic(features [][]float32, labels []int, epochs int, learningRate float64) ([]float32, float32) {
	if len(features) == 0 {
		return nil, 0
	}
	dims := len(features[0])
	weights := make([]float64, dims)
	var bias float64
	n := float64(len(features))

	gradW := make([]float64, dims)
	for epoch := 0; epoch < epochs; epoch++ {
		for d := range gradW {
			gradW[d] = 0
		}
		var gradB float64

		for i, vec := range features {
			z := bias
			for d, x := range vec {
				z += weights[d] * float64(x)
			}
			p := 1.0 / (1.0 + math.Exp(-z))
			residual := p - float64(labels[i])
			for d, x := range vec {
				gradW[d] += residual * float64(x)
			}
			gradB += residual
		}

		for d := range weights {
			weights[d] -= learningRate * gradW[d] / n
		}
		bias -= learningRate * gradB / n
	}

	out := make([]float32, dims)
	for d, w := range weights {
		out[d] = float32(w)
	}
	return out, float32(bias)
}

// Evaluate scores the fitted weights against a held-out set.
func Evaluate(weights []float32, bias float32, features [][]float32, labels []int) EvalMetrics {
	var tp, tn, fp, fn float64
	for i, vec := range features {
		z := float64(bias)
		for d, x := range vec {
			z += float64(weights[d]) * float64(x)
		}
		predicted := 0
		if z >= 0 {
			predicted = 1
		}
		switch {
		case predicted == 1 && labels[i] == 1:
			tp++
		case predicted == 0 && labels[i] == 0:
			tn++
		case predicted == 1 && labels[i] == 0:
			fp++
		default:
			fn++
		}
	}

	total := tp + tn + fp + fn
	m := EvalMetrics{}
	if total > 0 {
		m.Accuracy = (tp + tn) / total
	}
	if tp+fp > 0 {
		m.Precision = tp / (tp + fp)
	}
	if tp+fn > 0 {
		m.Recall = tp / (tp + fn)
	}
	if m.Precision+m.Recall > 0 {
		m.F1 = 2 * m.Precision * m.Recall / (m.Precision + m.Recall)
	}
	return m
}
