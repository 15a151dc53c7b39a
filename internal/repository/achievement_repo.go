package repository

import (
	"context"

	"anoa.com/campquest/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AchievementRepository interface {
	Create(ctx context.Context, achievement *model.Achievement) error
	FindByCode(ctx context.Context, code string) (*model.Achievement, error)
	// FindVisible returns visible achievements in seeding (catalog) order.
	FindVisible(ctx context.Context) ([]*model.Achievement, error)
	FindUnlockedCodes(ctx context.Context, userID uuid.UUID) ([]string, error)
	FindUserAchievements(ctx context.Context, userID uuid.UUID) ([]*model.UserAchievement, error)
	// Unlock creates the unlock record and bumps the achievement's unlock
	// counter and the user's XP in one transaction. A concurrent duplicate
	// surfaces as gorm.ErrDuplicatedKey with nothing written.
	Unlock(ctx context.Context, userID uuid.UUID, achievement *model.Achievement, threshold int) error
}

type achievementRepository struct {
	db *gorm.DB
}

func NewAchievementRepository(db *gorm.DB) AchievementRepository {
	return &achievementRepository{db: db}
}

func (r *achievementRepository) Create(ctx context.Context, achievement *model.Achievement) error {
	return r.db.WithContext(ctx).Create(achievement).Error
}

func (r *achievementRepository) FindByCode(ctx context.Context, code string) (*model.Achievement, error) {
	var achievement model.Achievement
	if err := r.db.WithContext(ctx).Where("code = ?", code).First(&achievement).Error; err != nil {
		return nil, err
	}
	return &achievement, nil
}

func (r *achievementRepository) FindVisible(ctx context.Context) ([]*model.Achievement, error) {
	var achievements []*model.Achievement
	err := r.db.WithContext(ctx).
		Where("visible = ?", true).
		Order("id ASC").
		Find(&achievements).Error
	return achievements, err
}

func (r *achievementRepository) FindUnlockedCodes(ctx context.Context, userID uuid.UUID) ([]string, error) {
	var codes []string
	err := r.db.WithContext(ctx).
		Model(&model.UserAchievement{}).
		Joins("JOIN achievements ON achievements.id = user_achievements.achievement_id").
		Where("user_achievements.user_id = ?", userID).
		Pluck("achievements.code", &codes).Error
	return codes, err
}

func (r *achievementRepository) FindUserAchievements(ctx context.Context, userID uuid.UUID) ([]*model.UserAchievement, error) {
	var unlocked []*model.UserAchievement
	err := r.db.WithContext(ctx).
		Preload("Achievement").
		Where("user_id = ?", userID).
		Find(&unlocked).Error
	return unlocked, err
}

func (r *achievementRepository) Unlock(ctx context.Context, userID uuid.UUID, achievement *model.Achievement, threshold int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		record := &model.UserAchievement{
			UserID:        userID,
			AchievementID: achievement.ID,
			Progress:      threshold,
			MaxProgress:   threshold,
		}
		// The unique index on (user_id, achievement_id) is the guard against
		// concurrent evaluations; no pre-check here.
		if err := tx.Create(record).Error; err != nil {
			return err
		}

		if err := tx.Model(&model.Achievement{}).Where("id = ?", achievement.ID).
			UpdateColumn("unlock_count", gorm.Expr("unlock_count + ?", 1)).Error; err != nil {
			return err
		}

		if achievement.XP > 0 {
			if err := tx.Model(&model.User{}).Where("id = ?", userID).
				UpdateColumn("xp", gorm.Expr("xp + ?", achievement.XP)).Error; err != nil {
				return err
			}
		}

		return nil
	})
}
