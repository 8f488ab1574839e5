package repository

import (
	"context"
	"errors"

	"github.com/veritaslab/veritas/internal/domain"
	"gorm.io/gorm"
)

// UserRepository handles user account persistence.
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository.
// Parameters:
//   - db: GORM database handle used for queries.
// Returns:
//   - *UserRepository: repository instance bound to db.
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user record.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - user: user record to persist.
// Returns:
//   - error: PersistenceError if the insert fails.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return &domain.PersistenceError{Op: "create user", Err: err}
	}
	return nil
}

// GetByEmail retrieves a user by email.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - email: account email to look up.
// Returns:
//   - *domain.User: user record if found, nil with nil error if absent.
//   - error: PersistenceError if the lookup fails.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).First(&user, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, &domain.PersistenceError{Op: "get user by email", Err: err}
	}
	return &user, nil
}

// GetByID retrieves a user by ID.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - id: user ID.
// Returns:
//   - *domain.User: user record if found.
//   - error: domain.ErrNotFound if absent, PersistenceError otherwise.
func (r *UserRepository) GetByID(ctx context.Context, id uint) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, &domain.PersistenceError{Op: "get user", Err: err}
	}
	return &user, nil
}
