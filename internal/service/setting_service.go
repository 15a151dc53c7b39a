package service

import (
	"context"
	"errors"

	"anoa.com/campquest/internal/dto"
	"anoa.com/campquest/internal/model"
	"anoa.com/campquest/internal/repository"
	"anoa.com/campquest/pkg/apperror"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SettingService interface {
	GetSetting(ctx context.Context, key string) (*model.SiteSetting, error)
	ListSettings(ctx context.Context) ([]*model.SiteSetting, error)
	PutSetting(ctx context.Context, adminID uuid.UUID, input dto.UpsertSettingInput) (*model.SiteSetting, error)
	DeleteSetting(ctx context.Context, key string) error
}

type settingService struct {
	repo repository.SettingRepository
}

func NewSettingService(repo repository.SettingRepository) SettingService {
	return &settingService{repo: repo}
}

func (s *settingService) GetSetting(ctx context.Context, key string) (*model.SiteSetting, error) {
	setting, err := s.repo.FindByKey(ctx, key)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	return setting, nil
}

func (s *settingService) ListSettings(ctx context.Context) ([]*model.SiteSetting, error) {
	return s.repo.FindAll(ctx)
}

func (s *settingService) PutSetting(ctx context.Context, adminID uuid.UUID, input dto.UpsertSettingInput) (*model.SiteSetting, error) {
	setting := &model.SiteSetting{
		Key:         input.Key,
		Value:       input.Value,
		UpdatedByID: &adminID,
	}
	if err := s.repo.Upsert(ctx, setting); err != nil {
		return nil, err
	}
	return setting, nil
}

func (s *settingService) DeleteSetting(ctx context.Context, key string) error {
	if _, err := s.repo.FindByKey(ctx, key); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.ErrNotFound
		}
		return err
	}
	return s.repo.Delete(ctx, key)
}
