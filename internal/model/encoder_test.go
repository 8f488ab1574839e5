package model

import (
	"bytes"
	"errors"
	"testing"

	"github.com/veritaslab/veritas/internal/domain"
)

// testEncoderArtifact builds a tiny, fully deterministic artifact.
// Parameter values are simple functions of their indices so failures
// are reproducible by hand.
func testEncoderArtifact(dims, maxTokens int, words ...string) *EncoderArtifact {
	vocab := testVocab(words...)

	tokenEmb := make([][]float32, len(vocab))
	for i := range tokenEmb {
		row := make([]float32, dims)
		for d := range row {
			row[d] = float32(i+1) * 0.1 * float32(d+1)
		}
		tokenEmb[i] = row
	}

	posEmb := make([][]float32, maxTokens)
	for i := range posEmb {
		row := make([]float32, dims)
		for d := range row {
			row[d] = float32(i) * 0.01
		}
		posEmb[i] = row
	}

	pooler := make([][]float32, dims)
	for d := range pooler {
		row := make([]float32, dims)
		row[d] = 1
		pooler[d] = row
	}

	return &EncoderArtifact{
		Dimensions:         dims,
		MaxTokens:          maxTokens,
		Vocab:              vocab,
		TokenEmbeddings:    tokenEmb,
		PositionEmbeddings: posEmb,
		Pooler:             pooler,
		PoolerBias:         make([]float32, dims),
	}
}

func TestEncoderEmbedDeterministic(t *testing.T) {
	enc, err := NewEncoder(testEncoderArtifact(4, 16, "economy", "grows", "fast"))
	if err != nil {
		t.Fatalf("NewEncoder: %v", err)
	}

	first, err := enc.Embed("economy grows fast")
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	second, err := enc.Embed("economy grows fast")
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}

	if len(first) != 4 {
		t.Fatalf("expected 4-dimensional vector, got %d", len(first))
	}
	for d := range first {
		if first[d] != second[d] {
			t.Errorf("dimension %d differs between identical calls: %v vs %v", d, first[d], second[d])
		}
	}
}

func TestEncoderEmbedDistinguishesText(t *testing.T) {
	enc, err := NewEncoder(testEncoderArtifact(4, 16, "economy", "grows", "shrinks"))
	if err != nil {
		t.Fatalf("NewEncoder: %v", err)
	}

	grow, err := enc.Embed("economy grows")
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	shrink, err := enc.Embed("economy shrinks")
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}

	same := true
	for d := range grow {
		if grow[d] != shrink[d] {
			same = false
			break
		}
	}
	if same {
		t.Error("different texts produced identical vectors")
	}
}

func TestEncoderEmbedRejectsBlankText(t *testing.T) {
	enc, err := NewEncoder(testEncoderArtifact(4, 16, "word"))
	if err != nil {
		t.Fatalf("NewEncoder: %v", err)
	}

	for _, text := range []string{"", "   ", "\t\n"} {
		if _, err := enc.Embed(text); !errors.Is(err, domain.ErrEmptyText) {
			t.Errorf("Embed(%q) = %v, want ErrEmptyText", text, err)
		}
	}
}

func TestEncoderEmbedTruncatesLongText(t *testing.T) {
	enc, err := NewEncoder(testEncoderArtifact(4, 6, "word"))
	if err != nil {
		t.Fatalf("NewEncoder: %v", err)
	}

	// 4 words fill the window exactly; everything beyond is dropped,
	// so a longer text embeds identically.
	short, err := enc.Embed("word word word word")
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	long, err := enc.Embed("word word word word word word word word")
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}

	for d := range short {
		if short[d] != long[d] {
			t.Errorf("truncated embedding differs at dimension %d", d)
		}
	}
}

func TestEncoderArtifactRoundTrip(t *testing.T) {
	artifact := testEncoderArtifact(4, 8, "economy")

	var buf bytes.Buffer
	if err := WriteEncoderArtifact(&buf, artifact); err != nil {
		t.Fatalf("WriteEncoderArtifact: %v", err)
	}
	loaded, err := ReadEncoderArtifact(&buf)
	if err != nil {
		t.Fatalf("ReadEncoderArtifact: %v", err)
	}

	if loaded.Dimensions != artifact.Dimensions || loaded.MaxTokens != artifact.MaxTokens {
		t.Errorf("round trip changed shape: %+v", loaded)
	}
	if len(loaded.Vocab) != len(artifact.Vocab) {
		t.Errorf("round trip changed vocabulary size")
	}
}

func TestEncoderArtifactValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*EncoderArtifact)
	}{
		{
			name:   "zero dimensions",
			mutate: func(a *EncoderArtifact) { a.Dimensions = 0 },
		},
		{
			name:   "window too small",
			mutate: func(a *EncoderArtifact) { a.MaxTokens = 2 },
		},
		{
			name:   "embedding count mismatch",
			mutate: func(a *EncoderArtifact) { a.TokenEmbeddings = a.TokenEmbeddings[1:] },
		},
		{
			name:   "pooler bias mismatch",
			mutate: func(a *EncoderArtifact) { a.PoolerBias = a.PoolerBias[1:] },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			artifact := testEncoderArtifact(4, 8, "economy")
			tt.mutate(artifact)
			if err := artifact.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
