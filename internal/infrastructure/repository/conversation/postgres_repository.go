package conversation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	domain "github.com/personachat/server/internal/domain/conversation"
	"github.com/personachat/server/internal/infrastructure/database/entities"
	"github.com/personachat/server/internal/utils/apperrors"
)

// PostgresRepository persists conversations and their messages.
type PostgresRepository struct {
	db *gorm.DB
}

// NewPostgresRepository builds a conversation repository.
func NewPostgresRepository(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// CreateWithMessages seeds the conversation and its initial message set in
// one transaction.
func (r *PostgresRepository) CreateWithMessages(ctx context.Context, conv *domain.Conversation, messages []domain.Message) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		entity := entities.NewSchemaConversation(conv)
		if err := tx.Create(entity).Error; err != nil {
			return err
		}

		for i := range messages {
			messages[i].ConversationID = entity.ID
			if err := tx.Create(entities.NewSchemaMessage(&messages[i])).Error; err != nil {
				return err
			}
		}

		conv.ID = entity.ID
		conv.CreatedAt = entity.CreatedAt
		conv.UpdatedAt = entity.UpdatedAt
		return nil
	})
	if err != nil {
		return apperrors.Database("failed to create conversation", err)
	}
	return nil
}

// ListByUser returns summaries ordered by last update descending, capped at
// the fixed page size.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID uint) ([]domain.Summary, error) {
	var rows []entities.Conversation
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Limit(domain.ListPageSize).
		Find(&rows).Error; err != nil {
		return nil, apperrors.Database("failed to list conversations", err)
	}

	summaries := make([]domain.Summary, len(rows))
	for i, row := range rows {
		summaries[i] = domain.Summary{
			PublicID: row.PublicID,
			Title:    row.Title,
			Persona:  row.Persona,
		}
	}
	return summaries, nil
}

// GetByPublicID fetches a conversation with messages ordered oldest first.
// No ownership filter is applied here; the access gate guards the route.
func (r *PostgresRepository) GetByPublicID(ctx context.Context, publicID string) (*domain.Conversation, error) {
	var entity entities.Conversation
	if err := r.db.WithContext(ctx).
		Preload("Messages", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC, id ASC")
		}).
		Where("public_id = ?", publicID).
		First(&entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound(fmt.Sprintf("conversation not found: %s", publicID))
		}
		return nil, apperrors.Database("failed to fetch conversation", err)
	}
	return entity.EtoD(), nil
}

// FindOwned fetches the conversation only when it belongs to userID. Absent
// and not-owned collapse into the same not-found-class error so ownership
// information is never leaked.
func (r *PostgresRepository) FindOwned(ctx context.Context, publicID string, userID uint) (*domain.Conversation, error) {
	var entity entities.Conversation
	if err := r.db.WithContext(ctx).
		Where("public_id = ? AND user_id = ?", publicID, userID).
		First(&entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound(fmt.Sprintf("conversation not found: %s", publicID))
		}
		return nil, apperrors.Database("failed to fetch conversation", err)
	}
	return entity.EtoD(), nil
}

// AppendTurn writes the user message and the assistant reply and refreshes
// the conversation's updated-at inside one transaction. Partial application
// of the three effects must never surface, so any failure rolls all of
// them back.
func (r *PostgresRepository) AppendTurn(ctx context.Context, conversationID uint, userMsg, assistantMsg domain.Message) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		userMsg.ConversationID = conversationID
		if err := tx.Create(entities.NewSchemaMessage(&userMsg)).Error; err != nil {
			return err
		}

		assistantMsg.ConversationID = conversationID
		if err := tx.Create(entities.NewSchemaMessage(&assistantMsg)).Error; err != nil {
			return err
		}

		return tx.Model(&entities.Conversation{}).
			Where("id = ?", conversationID).
			Update("updated_at", time.Now()).Error
	})
	if err != nil {
		return apperrors.Database("failed to append turn", err)
	}
	return nil
}

// DeleteOwned removes the conversation when it belongs to userID, cascading
// to its messages. Zero rows affected means absent or not owned; both
// surface as not-found.
func (r *PostgresRepository) DeleteOwned(ctx context.Context, publicID string, userID uint) error {
	result := r.db.WithContext(ctx).
		Where("public_id = ? AND user_id = ?", publicID, userID).
		Delete(&entities.Conversation{})
	if result.Error != nil {
		return apperrors.Database("failed to delete conversation", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound(fmt.Sprintf("conversation not found: %s", publicID))
	}
	return nil
}

var _ domain.Repository = (*PostgresRepository)(nil)
