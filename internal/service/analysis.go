package service

import (
	"context"
	"strings"
	"time"

	"github.com/veritaslab/veritas/internal/domain"
	"github.com/veritaslab/veritas/internal/logger"
	"github.com/veritaslab/veritas/internal/metrics"
)

// Embedder turns raw text into a fixed-width vector.
type Embedder interface {
	Embed(text string) ([]float32, error)
	Dimensions() int
}

// LabelClassifier maps an embedding to a verdict and its confidence.
type LabelClassifier interface {
	Classify(vec []float32) (domain.Label, float64, error)
}

// AnalysisStore is the owner-scoped record interface the orchestrator
// persists through.
type AnalysisStore interface {
	Create(ctx context.Context, analysis *domain.Analysis) error
	ListByOwner(ctx context.Context, ownerID uint) ([]domain.Analysis, error)
	GetByID(ctx context.Context, ownerID, id uint) (*domain.Analysis, error)
	Delete(ctx context.Context, ownerID, id uint) error
}

// AnalysisConfig holds configuration for the analysis service.
type AnalysisConfig struct {
	// PreviewLength is the rune count of history text previews.
	PreviewLength int
}

const defaultPreviewLength = 50

// AnalysisResult is what a successful analyze call returns. By the
// time the caller sees it, the matching record is durably stored.
type AnalysisResult struct {
	ID         uint         `json:"id"`
	Label      domain.Label `json:"label"`
	Confidence float64      `json:"confidence"`
	CreatedAt  time.Time    `json:"created_at"`
}

// HistoryEntry is the preview projection of one stored analysis. The
// truncation happens at read time; the stored text stays verbatim.
type HistoryEntry struct {
	ID         uint         `json:"id"`
	Preview    string       `json:"preview"`
	Label      domain.Label `json:"label"`
	Confidence float64      `json:"confidence"`
	CreatedAt  time.Time    `json:"created_at"`
}

// AnalysisService composes embedding, classification and persistence
// into the end-to-end analyze operation, and serves the per-owner
// history.
type AnalysisService struct {
	store         AnalysisStore
	encoder       Embedder
	classifier    LabelClassifier
	logger        *logger.Logger
	metrics       *metrics.Metrics
	previewLength int
}

// NewAnalysisService creates a new analysis service.
// Parameters:
//   - store: owner-scoped analysis persistence.
//   - encoder: embedding extractor backed by the loaded model state.
//   - classifier: decision function backed by the loaded model state.
//   - log: logger instance.
//   - m: metrics collector, may be nil.
//   - cfg: analysis configuration settings.
//
// Returns:
//   - *AnalysisService: initialized service.
func NewAnalysisService(
	store AnalysisStore,
	encoder Embedder,
	classifier LabelClassifier,
	log *logger.Logger,
	m *metrics.Metrics,
	cfg *AnalysisConfig,
) *AnalysisService {
	previewLength := defaultPreviewLength
	if cfg != nil && cfg.PreviewLength > 0 {
		previewLength = cfg.PreviewLength
	}
	return &AnalysisService{
		store:         store,
		encoder:       encoder,
		classifier:    classifier,
		logger:        log,
		metrics:       m,
		previewLength: previewLength,
	}
}

// Analyze classifies the text and records the verdict under the
// owner's history. The result is returned only after the record is
// durably written: a persistence failure fails the whole call, so the
// history never misses a verdict the caller was shown.
func (s *AnalysisService) Analyze(ctx context.Context, ownerID uint, text string) (*AnalysisResult, error) {
	if strings.TrimSpace(text) == "" {
		return nil, domain.ErrEmptyText
	}

	start := time.Now()
	vec, err := s.encoder.Embed(text)
	if err != nil {
		s.metrics.CountError("embed")
		return nil, err
	}

	label, confidence, err := s.classifier.Classify(vec)
	if err != nil {
		s.metrics.CountError("classify")
		return nil, err
	}
	s.metrics.ObserveInference(time.Since(start))

	analysis := &domain.Analysis{
		OwnerID:    ownerID,
		Text:       text,
		Label:      label,
		Confidence: confidence,
	}
	if err := s.store.Create(ctx, analysis); err != nil {
		s.metrics.CountError("persist")
		return nil, err
	}
	s.metrics.CountAnalysis(string(label))

	logger.FromContext(ctx).WithFields(logger.Fields{
		logger.FieldAnalysisID: analysis.ID,
		logger.FieldLabel:      string(label),
		logger.FieldDurationMs: time.Since(start).Milliseconds(),
	}).Info("Analysis completed")

	return &AnalysisResult{
		ID:         analysis.ID,
		Label:      label,
		Confidence: confidence,
		CreatedAt:  analysis.CreatedAt,
	}, nil
}

// History lists the owner's analyses, newest first, with read-time
// text previews.
func (s *AnalysisService) History(ctx context.Context, ownerID uint) ([]HistoryEntry, error) {
	analyses, err := s.store.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	entries := make([]HistoryEntry, len(analyses))
	for i, a := range analyses {
		entries[i] = HistoryEntry{
			ID:         a.ID,
			Preview:    previewText(a.Text, s.previewLength),
			Label:      a.Label,
			Confidence: a.Confidence,
			CreatedAt:  a.CreatedAt,
		}
	}
	return entries, nil
}

// Get returns one analysis with its full text, scoped to the owner.
func (s *AnalysisService) Get(ctx context.Context, ownerID, id uint) (*domain.Analysis, error) {
	return s.store.GetByID(ctx, ownerID, id)
}

// Delete irreversibly removes one analysis, scoped to the owner.
func (s *AnalysisService) Delete(ctx context.Context, ownerID, id uint) error {
	if err := s.store.Delete(ctx, ownerID, id); err != nil {
		return err
	}
	logger.FromContext(ctx).WithField(logger.FieldAnalysisID, id).Info("Analysis deleted")
	return nil
}

// previewText truncates to a rune-safe prefix with a trailing marker.
// Short texts pass through unchanged.
func previewText(text string, length int) string {
	runes := []rune(text)
	if len(runes) <= length {
		return text
	}
	return string(runes[:length]) + "..."
}
