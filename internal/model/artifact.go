package model

import (
	"encoding/gob"
	"fmt"
	"io"
)

// Special vocabulary tokens the encoder expects to find in every
// artifact. Their IDs are resolved once at load time.
const (
	TokenPad     = "[PAD]"
	TokenUnknown = "[UNK]"
	TokenCLS     = "[CLS]"
	TokenSep     = "[SEP]"
)

// EncoderArtifact is the serialized form of the frozen encoder: the
// vocabulary plus every parameter tensor, produced offline and loaded
// once at process startup.
type EncoderArtifact struct {
	Dimensions         int
	MaxTokens          int
	Vocab              []string
	TokenEmbeddings    [][]float32 // len(Vocab) x Dimensions
	PositionEmbeddings [][]float32 // MaxTokens x Dimensions
	Pooler             [][]float32 // Dimensions x Dimensions
	PoolerBias         []float32
}

// Validate checks the artifact tensors for shape consistency.
func (a *EncoderArtifact) Validate() error {
	if a.Dimensions <= 0 {
		return fmt.Errorf("encoder artifact: dimensions must be positive, got %d", a.Dimensions)
	}
	if a.MaxTokens < 3 {
		return fmt.Errorf("encoder artifact: max tokens must allow [CLS] text [SEP], got %d", a.MaxTokens)
	}
	if len(a.Vocab) == 0 {
		return fmt.Errorf("encoder artifact: empty vocabulary")
	}
	if len(a.TokenEmbeddings) != len(a.Vocab) {
		return fmt.Errorf("encoder artifact: %d token embeddings for %d vocab entries", len(a.TokenEmbeddings), len(a.Vocab))
	}
	if len(a.PositionEmbeddings) != a.MaxTokens {
		return fmt.Errorf("encoder artifact: %d position embeddings for max tokens %d", len(a.PositionEmbeddings), a.MaxTokens)
	}
	if len(a.Pooler) != a.Dimensions || len(a.PoolerBias) != a.Dimensions {
		return fmt.Errorf("encoder artifact: pooler shape mismatch")
	}
	for i, row := range a.TokenEmbeddings {
		if len(row) != a.Dimensions {
			return fmt.Errorf("encoder artifact: token embedding %d has width %d, want %d", i, len(row), a.Dimensions)
		}
	}
	for i, row := range a.PositionEmbeddings {
		if len(row) != a.Dimensions {
			return fmt.Errorf("encoder artifact: position embedding %d has width %d, want %d", i, len(row), a.Dimensions)
		}
	}
	for i, row := range a.Pooler {
		if len(row) != a.Dimensions {
			return fmt.Errorf("encoder artifact: pooler row %d has width %d, want %d", i, len(row), a.Dimensions)
		}
	}
	return nil
}

// ClassifierArtifact is the serialized decision function fit offline:
// a weight vector matching the encoder width plus a bias.
type ClassifierArtifact struct {
	Dimensions int
	Weights    []float32
	Bias       float32
}

// Validate checks the weight vector against the declared width.
func (a *ClassifierArtifact) Validate() error {
	if a.Dimensions <= 0 {
		return fmt.Errorf("classifier artifact: dimensions must be positive, got %d", a.Dimensions)
	}
	if len(a.Weights) != a.Dimensions {
		return fmt.Errorf("classifier artifact: %d weights for %d dimensions", len(a.Weights), a.Dimensions)
	}
	return nil
}

// WriteEncoderArtifact gob-encodes an encoder artifact.
func WriteEncoderArtifact(w io.Writer, a *EncoderArtifact) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if err := gob.NewEncoder(w).Encode(a); err != nil {
		return fmt.Errorf("failed to encode encoder artifact: %w", err)
	}
	return nil
}

// ReadEncoderArtifact decodes and validates an encoder artifact.
func ReadEncoderArtifact(r io.Reader) (*EncoderArtifact, error) {
	var a EncoderArtifact
	if err := gob.NewDecoder(r).Decode(&a); err != nil {
		return nil, fmt.Errorf("failed to decode encoder artifact: %w", err)
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return &a, nil
}

// WriteClassifierArtifact gob-encodes a classifier artifact.
func WriteClassifierArtifact(w io.Writer, a *ClassifierArtifact) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if err := gob.NewEncoder(w).Encode(a); err != nil {
		return fmt.Errorf("failed to encode classifier artifact: %w", err)
	}
	return nil
}

// ReadClassifierArtifact decodes and validates a classifier artifact.
func ReadClassifierArtifact(r io.Reader) (*ClassifierArtifact, error) {
	var a ClassifierArtifact
	if err := gob.NewDecoder(r).Decode(&a); err != nil {
		return nil, fmt.Errorf("failed to decode classifier artifact: %w", err)
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return &a, nil
}
