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

type AdminService interface {
	ListUsers(ctx context.Context, page dto.Pagination) (*dto.PaginatedResponse, error)
	UpdateUserRole(ctx context.Context, userID uuid.UUID, input dto.UpdateUserRoleInput) (*model.User, error)
	DeleteUser(ctx context.Context, actorID, userID uuid.UUID) error
}

type adminService struct {
	userRepo repository.UserRepository
}

func NewAdminService(userRepo repository.UserRepository) AdminService {
	return &adminService{userRepo: userRepo}
}

func (s *adminService) ListUsers(ctx context.Context, page dto.Pagination) (*dto.PaginatedResponse, error) {
	users, total, err := s.userRepo.FindAll(ctx, page.Offset(), page.PerPage())
	if err != nil {
		return nil, err
	}
	return &dto.PaginatedResponse{Items: users, Total: total, Page: page.Page, Limit: page.PerPage()}, nil
}

func (s *adminService) UpdateUserRole(ctx context.Context, userID uuid.UUID, input dto.UpdateUserRoleInput) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	role, err := s.userRepo.FindRoleByName(ctx, input.Role)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(400, "unknown role", apperror.ErrBadRequest)
		}
		return nil, err
	}

	user.RoleID = &role.ID
	user.Role = *role
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *adminService) DeleteUser(ctx context.Context, actorID, userID uuid.UUID) error {
	if actorID == userID {
		return apperror.New(400, "you cannot delete your own account", apperror.ErrBadRequest)
	}
	if _, err := s.userRepo.FindByID(ctx, userID.String()); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.ErrNotFound
		}
		return err
	}
	return s.userRepo.Delete(ctx, userID)
}
