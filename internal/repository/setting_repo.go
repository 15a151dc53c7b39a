package repository

import (
	"context"

	"anoa.com/campquest/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SettingRepository interface {
	FindAll(ctx context.Context) ([]*model.SiteSetting, error)
	FindByKey(ctx context.Context, key string) (*model.SiteSetting, error)
	Upsert(ctx context.Context, setting *model.SiteSetting) error
	Delete(ctx context.Context, key string) error
}

type settingRepository struct {
	db *gorm.DB
}

func NewSettingRepository(db *gorm.DB) SettingRepository {
	return &settingRepository{db: db}
}

func (r *settingRepository) FindAll(ctx context.Context) ([]*model.SiteSetting, error) {
	var settings []*model.SiteSetting
	err := r.db.WithContext(ctx).Order("key ASC").Find(&settings).Error
	return settings, err
}

func (r *settingRepository) FindByKey(ctx context.Context, key string) (*model.SiteSetting, error) {
	var setting model.SiteSetting
	if err := r.db.WithContext(ctx).Where("key = ?", key).First(&setting).Error; err != nil {
		return nil, err
	}
	return &setting, nil
}

func (r *settingRepository) Upsert(ctx context.Context, setting *model.SiteSetting) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_by_id", "updated_at"}),
	}).Create(setting).Error
}

func (r *settingRepository) Delete(ctx context.Context, key string) error {
	return r.db.WithContext(ctx).Delete(&model.SiteSetting{}, "key = ?", key).Error
}
