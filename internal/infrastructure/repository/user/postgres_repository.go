package user

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/personachat/server/internal/domain/user"
	"github.com/personachat/server/internal/infrastructure/database/entities"
	"github.com/personachat/server/internal/utils/apperrors"
)

// PostgresRepository persists identity-mapped users.
type PostgresRepository struct {
	db *gorm.DB
}

// NewPostgresRepository builds a user repository.
func NewPostgresRepository(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// CreateIfAbsent inserts a row keyed by the external identity. The conflict
// branch is a deliberate no-op: creation is idempotent and fields supplied
// at creation are never refreshed afterwards.
func (r *PostgresRepository) CreateIfAbsent(ctx context.Context, externalID, email string) (*domain.User, error) {
	entity := &entities.User{
		ExternalID: externalID,
		Email:      email,
	}

	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "external_id"}},
			DoNothing: true,
		}).
		Create(entity).Error; err != nil {
		return nil, apperrors.Database("failed to upsert user", err)
	}

	// The insert returns a zero ID when the row already existed; fetch the
	// canonical row either way.
	var stored entities.User
	if err := r.db.WithContext(ctx).
		Where("external_id = ?", externalID).
		First(&stored).Error; err != nil {
		return nil, apperrors.Database("failed to fetch user after upsert", err)
	}

	return stored.EtoD(), nil
}

// FindByExternalID returns the mapped user, or nil when no row exists.
func (r *PostgresRepository) FindByExternalID(ctx context.Context, externalID string) (*domain.User, error) {
	var entity entities.User
	if err := r.db.WithContext(ctx).
		Where("external_id = ?", externalID).
		First(&entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperrors.Database("failed to fetch user", err)
	}
	return entity.EtoD(), nil
}

var _ domain.Repository = (*PostgresRepository)(nil)
