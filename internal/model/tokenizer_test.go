package model

import (
	"reflect"
	"testing"
)

func testVocab(extra ...string) []string {
	vocab := []string{TokenPad, TokenUnknown, TokenCLS, TokenSep}
	return append(vocab, extra...)
}

func TestSplitWords(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected []string
	}{
		{
			name:     "simple sentence",
			text:     "Breaking News Today",
			expected: []string{"breaking", "news", "today"},
		},
		{
			name:     "punctuation separated",
			text:     "economy grows 5%!",
			expected: []string{"economy", "grows", "5", "%", "!"},
		},
		{
			name:     "surrounding whitespace",
			text:     "  hello   world  ",
			expected: []string{"hello", "world"},
		},
		{
			name:     "empty",
			text:     "",
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitWords(tt.text)
			if len(got) == 0 && len(tt.expected) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("splitWords(%q) = %v, want %v", tt.text, got, tt.expected)
			}
		})
	}
}

func TestTokenizeFraming(t *testing.T) {
	tok, err := newTokenizer(testVocab("breaking", "news"), 16)
	if err != nil {
		t.Fatalf("newTokenizer: %v", err)
	}

	ids := tok.Tokenize("breaking news")
	if len(ids) != 4 {
		t.Fatalf("expected 4 ids, got %d (%v)", len(ids), ids)
	}
	if ids[0] != tok.clsID {
		t.Errorf("sequence must start with [CLS], got id %d", ids[0])
	}
	if ids[len(ids)-1] != tok.sepID {
		t.Errorf("sequence must end with [SEP], got id %d", ids[len(ids)-1])
	}
}

func TestTokenizeUnknownWord(t *testing.T) {
	tok, err := newTokenizer(testVocab("news"), 16)
	if err != nil {
		t.Fatalf("newTokenizer: %v", err)
	}

	ids := tok.Tokenize("zyzzyva news")
	if ids[1] != tok.unkID {
		t.Errorf("unmatched word should map to [UNK] id %d, got %d", tok.unkID, ids[1])
	}
}

func TestTokenizeSubwords(t *testing.T) {
	tok, err := newTokenizer(testVocab("break", "##ing"), 16)
	if err != nil {
		t.Fatalf("newTokenizer: %v", err)
	}

	ids := tok.Tokenize("breaking")
	// [CLS] break ##ing [SEP]
	if len(ids) != 4 {
		t.Fatalf("expected greedy subword split into 4 ids, got %v", ids)
	}
	if ids[1] == tok.unkID || ids[2] == tok.unkID {
		t.Errorf("subword split should not fall back to [UNK]: %v", ids)
	}
}

func TestTokenizeTruncation(t *testing.T) {
	tok, err := newTokenizer(testVocab("word"), 5)
	if err != nil {
		t.Fatalf("newTokenizer: %v", err)
	}

	// 10 words against a window of 5 leaves room for 3 word tokens.
	ids := tok.Tokenize("word word word word word word word word word word")
	if len(ids) != 5 {
		t.Fatalf("expected truncation to window size 5, got %d ids", len(ids))
	}
	if ids[len(ids)-1] != tok.sepID {
		t.Errorf("truncated sequence must still end with [SEP]")
	}
}

func TestNewTokenizerMissingSpecial(t *testing.T) {
	_, err := newTokenizer([]string{"just", "words"}, 16)
	if err == nil {
		t.Fatal("expected error for vocabulary without special tokens")
	}
}
