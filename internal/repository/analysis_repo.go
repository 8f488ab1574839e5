package repository

import (
	"context"
	"errors"

	"github.com/veritaslab/veritas/internal/domain"
	"gorm.io/gorm"
)

// AnalysisRepository handles analysis record persistence. Every read
// and delete folds the owner into the query itself, so a record owned
// by someone else is indistinguishable from one that does not exist.
type AnalysisRepository struct {
	db *gorm.DB
}

// NewAnalysisRepository creates a new AnalysisRepository.
// Parameters:
//   - db: GORM database handle used for queries.
// Returns:
//   - *AnalysisRepository: repository instance bound to db.
func NewAnalysisRepository(db *gorm.DB) *AnalysisRepository {
	return &AnalysisRepository{db: db}
}

// Create inserts a new analysis record as a single atomic write. The
// ID and CreatedAt fields are filled in on the passed record.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - analysis: record to persist; OwnerID must already be set.
// Returns:
//   - error: PersistenceError if the insert fails.
func (r *AnalysisRepository) Create(ctx context.Context, analysis *domain.Analysis) error {
	if err := r.db.WithContext(ctx).Create(analysis).Error; err != nil {
		return &domain.PersistenceError{Op: "create analysis", Err: err}
	}
	return nil
}

// ListByOwner retrieves every analysis belonging to the owner, most
// recent first. Records created in the same instant keep insertion
// order via the ID tiebreak.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - ownerID: authenticated owner identity.
// Returns:
//   - []domain.Analysis: matching records, newest first.
//   - error: PersistenceError if the query fails.
func (r *AnalysisRepository) ListByOwner(ctx context.Context, ownerID uint) ([]domain.Analysis, error) {
	var analyses []domain.Analysis
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC, id DESC").
		Find(&analyses).Error; err != nil {
		return nil, &domain.PersistenceError{Op: "list analyses", Err: err}
	}
	return analyses, nil
}

// GetByID retrieves a single analysis scoped to its owner.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - ownerID: authenticated owner identity.
//   - id: analysis ID.
// Returns:
//   - *domain.Analysis: record if found and owned by ownerID.
//   - error: domain.ErrNotFound when absent or foreign-owned;
//     PersistenceError on any other failure.
func (r *AnalysisRepository) GetByID(ctx context.Context, ownerID, id uint) (*domain.Analysis, error) {
	var analysis domain.Analysis
	err := r.db.WithContext(ctx).
		First(&analysis, "id = ? AND owner_id = ?", id, ownerID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, &domain.PersistenceError{Op: "get analysis", Err: err}
	}
	return &analysis, nil
}

// Delete removes an analysis scoped to its owner. Deleting a record
// that is absent, already deleted, or foreign-owned reports
// domain.ErrNotFound; the caller cannot tell those cases apart.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - ownerID: authenticated owner identity.
//   - id: analysis ID to delete.
// Returns:
//   - error: domain.ErrNotFound or PersistenceError.
func (r *AnalysisRepository) Delete(ctx context.Context, ownerID, id uint) error {
	result := r.db.WithContext(ctx).
		Delete(&domain.Analysis{}, "id = ? AND owner_id = ?", id, ownerID)
	if result.Error != nil {
		return &domain.PersistenceError{Op: "delete analysis", Err: result.Error}
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CountByOwner counts the analyses belonging to the owner.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - ownerID: authenticated owner identity.
// Returns:
//   - int64: number of matching records.
//   - error: PersistenceError if the query fails.
func (r *AnalysisRepository) CountByOwner(ctx context.Context, ownerID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&domain.Analysis{}).
		Where("owner_id = ?", ownerID).
		Count(&count).Error; err != nil {
		return 0, &domain.PersistenceError{Op: "count analyses", Err: err}
	}
	return count, nil
}
