package model

import (
	"fmt"
	"math"
	"strings"

	"github.com/veritaslab/veritas/internal/domain"
)

// Encoder turns raw text into a fixed-width embedding vector using a
// frozen parameter set. All state is read-only after construction, so
// one Encoder serves any number of concurrent requests without locking.
type Encoder struct {
	dims      int
	maxTokens int
	tok       *tokenizer
	tokenEmb  [][]float32
	posEmb    [][]float32
	pooler    [][]float32
	poolerB   []float32
}

// NewEncoder builds an Encoder from a validated artifact.
func NewEncoder(a *EncoderArtifact) (*Encoder, error) {
	if err := a.Validate(); err != nil {
		return nil, &domain.InferenceError{Stage: "embed", Err: err}
	}
	tok, err := newTokenizer(a.Vocab, a.MaxTokens)
	if err != nil {
		return nil, &domain.InferenceError{Stage: "embed", Err: err}
	}
	return &Encoder{
		dims:      a.Dimensions,
		maxTokens: a.MaxTokens,
		tok:       tok,
		tokenEmb:  a.TokenEmbeddings,
		posEmb:    a.PositionEmbeddings,
		pooler:    a.Pooler,
		poolerB:   a.PoolerBias,
	}, nil
}

// Dimensions returns the embedding vector width.
func (e *Encoder) Dimensions() int {
	return e.dims
}

// MaxTokens returns the encoder window size, including the framing
// tokens.
func (e *Encoder) MaxTokens() int {
	return e.maxTokens
}

// Embed produces the pooled first-token representation of the text.
// The pass is fully deterministic: identical text against the same
// parameters yields the identical vector. Text beyond the encoder
// window is truncated, not rejected.
func (e *Encoder) Embed(text string) ([]float32, error) {
	if strings.TrimSpace(text) == "" {
		return nil, domain.ErrEmptyText
	}

	ids := e.tok.Tokenize(text)
	if len(ids) == 0 || len(ids) > e.maxTokens {
		return nil, &domain.InferenceError{
			Stage: "embed",
			Err:   fmt.Errorf("tokenizer produced %d tokens for a window of %d", len(ids), e.maxTokens),
		}
	}

	// Hidden state per position: normalized token + position embedding.
	hidden := make([][]float32, len(ids))
	for i, id := range ids {
		h := make([]float32, e.dims)
		tokRow := e.tokenEmb[id]
		posRow := e.posEmb[i]
		for d := 0; d < e.dims; d++ {
			h[d] = tokRow[d] + posRow[d]
		}
		layerNorm(h)
		hidden[i] = h
	}

	// Mix sequence context into the first-token slot, then project it
	// through the tanh pooler.
	mixed := make([]float64, e.dims)
	inv := 1.0 / float64(len(hidden))
	for _, h := range hidden {
		for d := 0; d < e.dims; d++ {
			mixed[d] += float64(h[d]) * inv
		}
	}
	for d := 0; d < e.dims; d++ {
		mixed[d] += float64(hidden[0][d])
	}

	pooled := make([]float32, e.dims)
	for d := 0; d < e.dims; d++ {
		sum := float64(e.poolerB[d])
		row := e.pooler[d]
		for k := 0; k < e.dims; k++ {
			sum += float64(row[k]) * mixed[k]
		}
		pooled[d] = float32(math.Tanh(sum))
	}
	return pooled, nil
}

// layerNorm normalizes a vector in place to zero mean and unit
// variance, with a small epsilon guarding constant inputs.
func layerNorm(v []float32) {
	const eps = 1e-6
	var mean float64
	for _, x := range v {
		mean += float64(x)
	}
	mean /= float64(len(v))
	var variance float64
	for _, x := range v {
		d := float64(x) - mean
		variance += d * d
	}
	variance /= float64(len(v))
	scale := 1.0 / math.Sqrt(variance+eps)
	for i, x := range v {
		v[i] = float32((float64(x) - mean) * scale)
	}
}
