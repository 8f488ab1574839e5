package trainer

import (
	"crypto/sha256"
	"encoding/binary"
	"math/rand"
	"sort"
	"strconv"
	"strings"

	"github.com/veritaslab/veritas/internal/model"
)

// reservedTokens come first in every generated vocabulary, in this
// exact order.
var reservedTokens = []string{
	model.TokenPad,
	model.TokenUnknown,
	model.TokenCLS,
	model.TokenSep,
}

// BuildEncoderArtifact derives a frozen encoder from the corpus: the
// most frequent words become the vocabulary, and every parameter
// tensor is generated from a hash of its own identity. The same
// corpus always yields the same artifact, byte for byte.
func BuildEncoderArtifact(samples []Sample, dims, maxTokens, vocabSize int) *model.EncoderArtifact {
	vocab := buildVocab(samples, vocabSize)

	tokenEmb := make([][]float32, len(vocab))
	for i, token := range vocab {
		tokenEmb[i] = hashedVector("token:"+token, dims, 0.02)
	}

	posEmb := make([][]float32, maxTokens)
	for i := range posEmb {
		posEmb[i] = hashedVector("position:"+strconv.Itoa(i), dims, 0.02)
	}

	pooler := make([][]float32, dims)
	for d := range pooler {
		pooler[d] = hashedVector("pooler:"+strconv.Itoa(d), dims, 0.05)
	}

	return &model.EncoderArtifact{
		Dimensions:         dims,
		MaxTokens:          maxTokens,
		Vocab:              vocab,
		TokenEmbeddings:    tokenEmb,
		PositionEmbeddings: posEmb,
		Pooler:             pooler,
		PoolerBias:         make([]float32, dims),
	}
}

// buildVocab ranks corpus words by frequency, breaking count ties
// alphabetically so the ordering is stable.
func buildVocab(samples []Sample, vocabSize int) []string {
	counts := make(map[string]int)
	for _, s := range samples {
		for _, word := range strings.Fields(strings.ToLower(s.Text)) {
			counts[word]++
		}
	}

	words := make([]string, 0, len(counts))
	for word := range counts {
		words = append(words, word)
	}
	sort.Slice(words, func(i, j int) bool {
		if counts[words[i]] != counts[words[j]] {
			return counts[words[i]] > counts[words[j]]
		}
		return words[i] < words[j]
	})

	budget := vocabSize - len(reservedTokens)
	if budget > len(words) {
		budget = len(words)
	}

	vocab := make([]string, 0, budget+len(reservedTokens))
	vocab = append(vocab, reservedTokens...)
	vocab = append(vocab, words[:budget]...)
	return vocab
}

// hashedVector generates a vector whose values depend only on the
// name: the SHA-256 of the name seeds the generator.
func hashedVector(name string, dims int, scale float64) []float32 {
	sum := sha256.Sum256([]byte(name))
	seed := int64(binary.BigEndian.Uint64(sum[:8]))
	rng := rand.New(rand.NewSource(seed))

	vec := make([]float32, dims)
	for d := range vec {
		vec[d] = float32(rng.NormFloat64() * scale)
	}
	return vec
}
