package trainer

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"math/rand"
	"os"
	"regexp"
	"strings"

	"github.com/go-resty/resty/v2"
)

// Sample is one labeled corpus entry. Authentic articles carry label
// 1, fabricated ones 0, matching the classifier's sigmoid convention.
type Sample struct {
	Text  string
	Label int
}

// urlOrSymbols matches embedded URLs and every non-letter rune. The
// corpus cleanup keeps only letters and whitespace, the same signal
// the serving tokenizer sees.
var urlOrSymbols = regexp.MustCompile(`https?://\S+|[^a-zA-Z\s]`)

// CleanText strips URLs and non-letter characters and collapses the
// remaining whitespace.
func CleanText(text string) string {
	cleaned := urlOrSymbols.ReplaceAllString(text, "")
	return strings.Join(strings.Fields(cleaned), " ")
}

// LoadCorpus reads the two labeled CSV files and returns the combined
// cleaned sample set. Each source may be a local path or an HTTP(S)
// URL.
func LoadCorpus(ctx context.Context, authenticSrc, fabricatedSrc string) ([]Sample, error) {
	authentic, err := loadTexts(ctx, authenticSrc)
	if err != nil {
		return nil, fmt.Errorf("failed to load authentic corpus: %w", err)
	}
	fabricated, err := loadTexts(ctx, fabricatedSrc)
	if err != nil {
		return nil, fmt.Errorf("failed to load fabricated corpus: %w", err)
	}

	samples := make([]Sample, 0, len(authentic)+len(fabricated))
	for _, text := range authentic {
		samples = append(samples, Sample{Text: text, Label: 1})
	}
	for _, text := range fabricated {
		samples = append(samples, Sample{Text: text, Label: 0})
	}
	if len(samples) == 0 {
		return nil, fmt.Errorf("corpus is empty")
	}
	return samples, nil
}

// Split shuffles deterministically and carves off a held-out test
// fraction.
func Split(samples []Sample, testFraction float64, seed int64) (train, test []Sample) {
	shuffled := make([]Sample, len(samples))
	copy(shuffled, samples)
	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	testSize := int(float64(len(shuffled)) * testFraction)
	if testSize < 1 && len(shuffled) > 1 {
		testSize = 1
	}
	return shuffled[testSize:], shuffled[:testSize]
}

func loadTexts(ctx context.Context, src string) ([]string, error) {
	var reader io.Reader
	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		resp, err := resty.New().R().SetContext(ctx).Get(src)
		if err != nil {
			return nil, fmt.Errorf("failed to download %s: %w", src, err)
		}
		if resp.StatusCode() != 200 {
			return nil, fmt.Errorf("failed to download %s: status %d", src, resp.StatusCode())
		}
		reader = bytes.NewReader(resp.Body())
	} else {
		f, err := os.Open(src)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		reader = f
	}
	return parseTexts(reader)
}

// parseTexts extracts the "text" column from a CSV stream, cleaning
// each row and dropping rows that end up blank.
func parseTexts(r io.Reader) ([]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	textCol := -1
	for i, name := range header {
		if strings.EqualFold(strings.TrimSpace(name), "text") {
			textCol = i
			break
		}
	}
	if textCol < 0 {
		return nil, fmt.Errorf("CSV has no text column")
	}

	var texts []string
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row: %w", err)
		}
		if textCol >= len(record) {
			continue
		}
		cleaned := CleanText(record[textCol])
		if cleaned == "" {
			continue
		}
		texts = append(texts, cleaned)
	}
	return texts, nil
}
