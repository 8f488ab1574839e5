package trainer

import (
	"context"
	"fmt"

	"github.com/veritaslab/veritas/internal/logger"
	"github.com/veritaslab/veritas/internal/model"
)

// Config holds the offline fitting parameters.
type Config struct {
	Seed         int64
	TestFraction float64
	Epochs       int
	LearningRate float64
	BatchSize    int
}

// DefaultConfig returns the standard fitting parameters.
func DefaultConfig() *Config {
	return &Config{
		Seed:         42,
		TestFraction: 0.2,
		Epochs:       200,
		LearningRate: 0.5,
		BatchSize:    32,
	}
}

/// Trainer runs the one-time offline fitting job: embed the corpus
// with the frozen encoder, fit the linear head, and report quality on
// a held-out split. The only contract the serving core needs from it
// is the classifier artifact it produces.
type Trainer struct {
	encoder *model.Encoder
	cfg     *Config
}

// New creates a Trainer around a loaded encoder.
func New(encoder *model.Encoder, cfg *Config) *Trainer {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Trainer{encoder: encoder, cfg: cfg}
}

// Run fits a classifier on the samples and returns its artifact plus
// held-out metrics.
func (t *Trainer) Run(ctx context.Context, samples []Sample) (*model.ClassifierArtifact, EvalMetrics, error) {
	train, test := Split(samples, t.cfg.TestFraction, t.cfg.Seed)
	logger.CtxInfo(ctx, "Corpus split: %d training, %d held out", len(train), len(test))

	trainVecs, trainLabels, err := t.embedAll(ctx, train, "train")
	if err != nil {
		return nil, EvalMetrics{}, err
	}
	testVecs, testLabels, err := t.embedAll(ctx, test, "test")
	if err != nil {
		return nil, EvalMetrics{}, err
	}

	logger.CtxInfo(ctx, "Fitting classifier: %d epochs, learning rate %.2f", t.cfg.Epochs, t.cfg.LearningRate)
	weights, bias := FitLogistic(trainVecs, trainLabels, t.cfg.Epochs, t.cfg.LearningRate)

	metrics := Evaluate(weights, bias, testVecs, testLabels)
	logger.CtxInfo(ctx, "Held-out evaluation: %s", metrics)

	artifact := &model.ClassifierArtifact{
		Dimensions: t.encoder.Dimensions(),
		Weights:    weights,
		Bias:       bias,
	}
	if err := artifact.Validate(); err != nil {
		return nil, EvalMetrics{}, err
	}
	return artifact, metrics, nil
}

// embedAll runs the corpus through the encoder in batches, purely for
// progress reporting; each embedding is independent of its batch.
func (t *Trainer) embedAll(ctx context.Context, samples []Sample, phase string) ([][]float32, []int, error) {
	vecs := make([][]float32, 0, len(samples))
	labels := make([]int, 0, len(samples))

	for start := 0; start < len(samples); start += t.cfg.BatchSize {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		end := start + t.cfg.BatchSize
		if end > len(samples) {
			end = len(samples)
		}
		for _, s := range samples[start:end] {
			vec, err := t.encoder.Embed(s.Text)
			if err != nil {
				return nil, nil, fmt.Errorf("failed to embed %s sample: %w", phase, err)
			}
			vecs = append(vecs, vec)
			labels = append(labels, s.Label)
		}
		logger.CtxInfo(ctx, "Embedded %d/%d %s samples", end, len(samples), phase)
	}
	return vecs, labels, nil
}
