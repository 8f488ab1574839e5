package trainer

import (
	"reflect"
	"strings"
	"testing"
)

func TestCleanText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain text unchanged", "plain words only", "plain words only"},
		{"strips url", "read this https://example.com/article now", "read this now"},
		{"strips punctuation and digits", "Breaking: 7 dead, 42 injured!", "Breaking dead injured"},
		{"collapses whitespace", "too   many    spaces", "too many spaces"},
		{"all symbols yields empty", "1234 !!! ???", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanText(tt.in); got != tt.want {
				t.Errorf("CleanText(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseTexts(t *testing.T) {
	csvData := strings.Join([]string{
		"title,text,label",
		`"First","Real article body.",1`,
		`"Second","Another piece, with 99 numbers!",0`,
		`"Blank","!!!",1`,
	}, "\n")

	texts, err := parseTexts(strings.NewReader(csvData))
	if err != nil {
		t.Fatalf("parseTexts: %v", err)
	}
	want := []string{"Real article body", "Another piece with numbers"}
	if !reflect.DeepEqual(texts, want) {
		t.Errorf("texts = %v, want %v", texts, want)
	}
}

func TestParseTextsHeaderCaseInsensitive(t *testing.T) {
	texts, err := parseTexts(strings.NewReader("Text\narticle body\n"))
	if err != nil {
		t.Fatalf("parseTexts: %v", err)
	}
	if len(texts) != 1 || texts[0] != "article body" {
		t.Errorf("texts = %v", texts)
	}
}

func TestParseTextsMissingColumn(t *testing.T) {
	_, err := parseTexts(strings.NewReader("title,label\na,1\n"))
	if err == nil {
		t.Error("expected error for CSV without a text column")
	}
}

func TestSplitDeterministic(t *testing.T) {
	samples := make([]Sample, 20)
	for i := range samples {
		samples[i] = Sample{Text: strings.Repeat("x", i+1), Label: i % 2}
	}

	train1, test1 := Split(samples, 0.2, 42)
	train2, test2 := Split(samples, 0.2, 42)

	if !reflect.DeepEqual(train1, train2) || !reflect.DeepEqual(test1, test2) {
		t.Error("same seed produced different splits")
	}
	if len(test1) != 4 {
		t.Errorf("test size = %d, want 4", len(test1))
	}
	if len(train1)+len(test1) != len(samples) {
		t.Errorf("split lost samples: %d + %d != %d", len(train1), len(test1), len(samples))
	}
}

func TestSplitSmallCorpusKeepsOneHeldOut(t *testing.T) {
	samples := []Sample{{Text: "a", Label: 1}, {Text: "b", Label: 0}}
	train, test := Split(samples, 0.1, 1)
	if len(test) != 1 || len(train) != 1 {
		t.Errorf("split = %d train / %d test, want 1/1", len(train), len(test))
	}
}
