package repository

import (
	"context"

	"anoa.com/campquest/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CampaignRepository interface {
	Create(ctx context.Context, campaign *model.Campaign) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Campaign, error)
	FindBySlug(ctx context.Context, slug string) (*model.Campaign, error)
	FindByStatus(ctx context.Context, status string, offset, limit int) ([]*model.Campaign, int64, error)
	Update(ctx context.Context, campaign *model.Campaign) error
	Delete(ctx context.Context, id uuid.UUID) error

	FindTaskByID(ctx context.Context, id uuid.UUID) (*model.CampaignTask, error)
	CreateSubmission(ctx context.Context, submission *model.Submission) error
	FindSubmission(ctx context.Context, taskID, userID uuid.UUID) (*model.Submission, error)
	FindSubmissionByID(ctx context.Context, id uuid.UUID) (*model.Submission, error)
	FindSubmissionsByUser(ctx context.Context, userID uuid.UUID) ([]*model.Submission, error)
	FindSubmissionsByStatus(ctx context.Context, status string, offset, limit int) ([]*model.Submission, int64, error)
	UpdateSubmission(ctx context.Context, submission *model.Submission) error
}

type campaignRepository struct {
	db *gorm.DB
}

func NewCampaignRepository(db *gorm.DB) CampaignRepository {
	return &campaignRepository{db: db}
}

func (r *campaignRepository) Create(ctx context.Context, campaign *model.Campaign) error {
	return r.db.WithContext(ctx).Create(campaign).Error
}

func (r *campaignRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Campaign, error) {
	var campaign model.Campaign
	if err := r.db.WithContext(ctx).
		Preload("Tasks", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("id = ?", id).
		First(&campaign).Error; err != nil {
		return nil, err
	}
	return &campaign, nil
}

func (r *campaignRepository) FindBySlug(ctx context.Context, slug string) (*model.Campaign, error) {
	var campaign model.Campaign
	if err := r.db.WithContext(ctx).
		Preload("Tasks", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("slug = ?", slug).
		First(&campaign).Error; err != nil {
		return nil, err
	}
	return &campaign, nil
}

func (r *campaignRepository) FindByStatus(ctx context.Context, status string, offset, limit int) ([]*model.Campaign, int64, error) {
	var campaigns []*model.Campaign
	var total int64

	query := r.db.WithContext(ctx).Model(&model.Campaign{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&campaigns).Error; err != nil {
		return nil, 0, err
	}

	return campaigns, total, nil
}

func (r *campaignRepository) Update(ctx context.Context, campaign *model.Campaign) error {
	return r.db.WithContext(ctx).Session(&gorm.Session{FullSaveAssociations: true}).Save(campaign).Error
}

func (r *campaignRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Campaign{}, "id = ?", id).Error
}

func (r *campaignRepository) FindTaskByID(ctx context.Context, id uuid.UUID) (*model.CampaignTask, error) {
	var task model.CampaignTask
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *campaignRepository) CreateSubmission(ctx context.Context, submission *model.Submission) error {
	return r.db.WithContext(ctx).Create(submission).Error
}

func (r *campaignRepository) FindSubmission(ctx context.Context, taskID, userID uuid.UUID) (*model.Submission, error) {
	var submission model.Submission
	if err := r.db.WithContext(ctx).
		Where("task_id = ? AND user_id = ?", taskID, userID).
		First(&submission).Error; err != nil {
		return nil, err
	}
	return &submission, nil
}

func (r *campaignRepository) FindSubmissionByID(ctx context.Context, id uuid.UUID) (*model.Submission, error) {
	var submission model.Submission
	if err := r.db.WithContext(ctx).
		Preload("Task").
		Where("id = ?", id).
		First(&submission).Error; err != nil {
		return nil, err
	}
	return &submission, nil
}

func (r *campaignRepository) FindSubmissionsByUser(ctx context.Context, userID uuid.UUID) ([]*model.Submission, error) {
	var submissions []*model.Submission
	err := r.db.WithContext(ctx).
		Preload("Task").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&submissions).Error
	return submissions, err
}

func (r *campaignRepository) FindSubmissionsByStatus(ctx context.Context, status string, offset, limit int) ([]*model.Submission, int64, error) {
	var submissions []*model.Submission
	var total int64

	query := r.db.WithContext(ctx).Model(&model.Submission{}).Where("status = ?", status)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.
		Preload("Task").
		Order("created_at ASC").
		Offset(offset).Limit(limit).
		Find(&submissions).Error; err != nil {
		return nil, 0, err
	}

	return submissions, total, nil
}

func (r *campaignRepository) UpdateSubmission(ctx context.Context, submission *model.Submission) error {
	return r.db.WithContext(ctx).Save(submission).Error
}
