package repository

import (
	"context"

	"anoa.com/campquest/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ConversationRepository interface {
	Create(ctx context.Context, conversation *model.Conversation) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Conversation, error)
	FindBetween(ctx context.Context, starterID, recipientID uuid.UUID) (*model.Conversation, error)
	FindByParticipant(ctx context.Context, userID uuid.UUID) ([]*model.Conversation, error)
	CreateMessage(ctx context.Context, message *model.Message) error
	FindMessages(ctx context.Context, conversationID uuid.UUID, offset, limit int) ([]*model.Message, int64, error)
}

type conversationRepository struct {
	db *gorm.DB
}

func NewConversationRepository(db *gorm.DB) ConversationRepository {
	return &conversationRepository{db: db}
}

func (r *conversationRepository) Create(ctx context.Context, conversation *model.Conversation) error {
	return r.db.WithContext(ctx).Create(conversation).Error
}

func (r *conversationRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Conversation, error) {
	var conversation model.Conversation
	if err := r.db.WithContext(ctx).
		Preload("Starter").
		Preload("Recipient").
		Where("id = ?", id).
		First(&conversation).Error; err != nil {
		return nil, err
	}
	return &conversation, nil
}

func (r *conversationRepository) FindBetween(ctx context.Context, starterID, recipientID uuid.UUID) (*model.Conversation, error) {
	var conversation model.Conversation
	if err := r.db.WithContext(ctx).
		Where("(starter_id = ? AND recipient_id = ?) OR (starter_id = ? AND recipient_id = ?)",
			starterID, recipientID, recipientID, starterID).
		First(&conversation).Error; err != nil {
		return nil, err
	}
	return &conversation, nil
}

func (r *conversationRepository) FindByParticipant(ctx context.Context, userID uuid.UUID) ([]*model.Conversation, error) {
	var conversations []*model.Conversation
	err := r.db.WithContext(ctx).
		Preload("Starter").
		Preload("Recipient").
		Where("starter_id = ? OR recipient_id = ?", userID, userID).
		Order("updated_at DESC").
		Find(&conversations).Error
	return conversations, err
}

func (r *conversationRepository) CreateMessage(ctx context.Context, message *model.Message) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(message).Error; err != nil {
			return err
		}
		// Touch the conversation so participant lists sort by activity
		return tx.Model(&model.Conversation{}).
			Where("id = ?", message.ConversationID).
			UpdateColumn("updated_at", gorm.Expr("CURRENT_TIMESTAMP")).Error
	})
}

func (r *conversationRepository) FindMessages(ctx context.Context, conversationID uuid.UUID, offset, limit int) ([]*model.Message, int64, error) {
	var messages []*model.Message
	var total int64

	query := r.db.WithContext(ctx).Model(&model.Message{}).
		Where("conversation_id = ?", conversationID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.
		Preload("Sender").
		Order("created_at ASC").
		Offset(offset).Limit(limit).
		Find(&messages).Error; err != nil {
		return nil, 0, err
	}

	return messages, total, nil
}
