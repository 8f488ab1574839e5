package model

import (
	"strings"
	"unicode"
)

// subwordPrefix marks a vocabulary entry that continues a word rather
// than starting one.
const subwordPrefix = "##"

// tokenizer maps raw text onto vocabulary IDs. It is built once from
// the encoder artifact and read concurrently without locking.
type tokenizer struct {
	vocab     map[string]int
	maxTokens int
	padID     int
	unkID     int
	clsID     int
	sepID     int
}

func newTokenizer(vocab []string, maxTokens int) (*tokenizer, error) {
	index := make(map[string]int, len(vocab))
	for id, token := range vocab {
		index[token] = id
	}
	t := &tokenizer{vocab: index, maxTokens: maxTokens}
	for _, special := range []struct {
		token string
		id    *int
	}{
		{TokenPad, &t.padID},
		{TokenUnknown, &t.unkID},
		{TokenCLS, &t.clsID},
		{TokenSep, &t.sepID},
	} {
		id, ok := index[special.token]
		if !ok {
			return nil, &missingTokenError{token: special.token}
		}
		*special.id = id
	}
	return t, nil
}

type missingTokenError struct{ token string }

func (e *missingTokenError) Error() string {
	return "vocabulary is missing special token " + e.token
}

// Tokenize converts text into a [CLS]-framed ID sequence. Input longer
// than the encoder window is silently truncated, which is lossy for
// long articles; only the leading maxTokens-2 word pieces survive.
func (t *tokenizer) Tokenize(text string) []int {
	words := splitWords(text)
	ids := make([]int, 0, t.maxTokens)
	ids = append(ids, t.clsID)
	budget := t.maxTokens - 2
	for _, word := range words {
		if budget <= 0 {
			break
		}
		pieces := t.wordPieces(word, budget)
		ids = append(ids, pieces...)
		budget -= len(pieces)
	}
	ids = append(ids, t.sepID)
	return ids
}

// wordPieces resolves one lowercase word to vocabulary IDs by greedy
// longest-match, falling back to [UNK] for unmatchable remainders.
func (t *tokenizer) wordPieces(word string, budget int) []int {
	if id, ok := t.vocab[word]; ok {
		return []int{id}
	}
	pieces := make([]int, 0, 4)
	runes := []rune(word)
	start := 0
	for start < len(runes) && len(pieces) < budget {
		end := len(runes)
		matched := -1
		for end > start {
			candidate := string(runes[start:end])
			if start > 0 {
				candidate = subwordPrefix + candidate
			}
			if id, ok := t.vocab[candidate]; ok {
				matched = id
				break
			}
			end--
		}
		if matched < 0 {
			// Nothing in the vocabulary covers this word.
			return []int{t.unkID}
		}
		pieces = append(pieces, matched)
		start = end
	}
	return pieces
}

// splitWords lowercases the text and splits it into letter/digit runs,
// keeping each punctuation rune as its own token.
func splitWords(text string) []string {
	text = strings.ToLower(strings.TrimSpace(text))
	words := make([]string, 0, len(text)/5)
	var current strings.Builder
	flush := func() {
		if current.Len() > 0 {
			words = append(words, current.String())
			current.Reset()
		}
	}
	for _, r := range text {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			current.WriteRune(r)
		case unicode.IsSpace(r):
			flush()
		default:
			flush()
			words = append(words, string(r))
		}
	}
	flush()
	return words
}
