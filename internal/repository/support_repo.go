package repository

import (
	"context"

	"anoa.com/campquest/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SupportRepository interface {
	Create(ctx context.Context, ticket *model.SupportTicket) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.SupportTicket, error)
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*model.SupportTicket, error)
	FindAll(ctx context.Context, status string, offset, limit int) ([]*model.SupportTicket, int64, error)
	Update(ctx context.Context, ticket *model.SupportTicket) error
	CreateReply(ctx context.Context, reply *model.TicketReply) error
}

type supportRepository struct {
	db *gorm.DB
}

func NewSupportRepository(db *gorm.DB) SupportRepository {
	return &supportRepository{db: db}
}

func (r *supportRepository) Create(ctx context.Context, ticket *model.SupportTicket) error {
	return r.db.WithContext(ctx).Create(ticket).Error
}

func (r *supportRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.SupportTicket, error) {
	var ticket model.SupportTicket
	if err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Replies", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("Replies.Author").
		Where("id = ?", id).
		First(&ticket).Error; err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *supportRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*model.SupportTicket, error) {
	var tickets []*model.SupportTicket
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&tickets).Error
	return tickets, err
}

func (r *supportRepository) FindAll(ctx context.Context, status string, offset, limit int) ([]*model.SupportTicket, int64, error) {
	var tickets []*model.SupportTicket
	var total int64

	query := r.db.WithContext(ctx).Model(&model.SupportTicket{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.
		Preload("User").
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&tickets).Error; err != nil {
		return nil, 0, err
	}

	return tickets, total, nil
}

func (r *supportRepository) Update(ctx context.Context, ticket *model.SupportTicket) error {
	return r.db.WithContext(ctx).Save(ticket).Error
}

func (r *supportRepository) CreateReply(ctx context.Context, reply *model.TicketReply) error {
	return r.db.WithContext(ctx).Create(reply).Error
}
