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

type SupportService interface {
	CreateTicket(ctx context.Context, userID uuid.UUID, input dto.CreateTicketInput) (*model.SupportTicket, error)
	GetTicket(ctx context.Context, userID uuid.UUID, isAdmin bool, ticketID uuid.UUID) (*model.SupportTicket, error)
	ListMyTickets(ctx context.Context, userID uuid.UUID) ([]*model.SupportTicket, error)
	ListAllTickets(ctx context.Context, status string, page dto.Pagination) (*dto.PaginatedResponse, error)
	Reply(ctx context.Context, authorID uuid.UUID, isAdmin bool, ticketID uuid.UUID, input dto.ReplyTicketInput) (*model.TicketReply, error)
	CloseTicket(ctx context.Context, ticketID uuid.UUID) (*model.SupportTicket, error)
}

type supportService struct {
	repo repository.SupportRepository
}

func NewSupportService(repo repository.SupportRepository) SupportService {
	return &supportService{repo: repo}
}

func (s *supportService) CreateTicket(ctx context.Context, userID uuid.UUID, input dto.CreateTicketInput) (*model.SupportTicket, error) {
	ticket := &model.SupportTicket{
		UserID:  userID,
		Subject: input.Subject,
		Body:    input.Body,
		Status:  model.TicketStatusOpen,
	}
	if err := s.repo.Create(ctx, ticket); err != nil {
		return nil, err
	}
	return ticket, nil
}

func (s *supportService) GetTicket(ctx context.Context, userID uuid.UUID, isAdmin bool, ticketID uuid.UUID) (*model.SupportTicket, error) {
	ticket, err := s.repo.FindByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	if ticket.UserID != userID && !isAdmin {
		return nil, apperror.New(403, "you can only view your own tickets", apperror.ErrForbidden)
	}

	return ticket, nil
}

func (s *supportService) ListMyTickets(ctx context.Context, userID uuid.UUID) ([]*model.SupportTicket, error) {
	return s.repo.FindByUser(ctx, userID)
}

func (s *supportService) ListAllTickets(ctx context.Context, status string, page dto.Pagination) (*dto.PaginatedResponse, error) {
	tickets, total, err := s.repo.FindAll(ctx, status, page.Offset(), page.PerPage())
	if err != nil {
		return nil, err
	}
	return &dto.PaginatedResponse{Items: tickets, Total: total, Page: page.Page, Limit: page.PerPage()}, nil
}

func (s *supportService) Reply(ctx context.Context, authorID uuid.UUID, isAdmin bool, ticketID uuid.UUID, input dto.ReplyTicketInput) (*model.TicketReply, error) {
	ticket, err := s.repo.FindByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	if ticket.UserID != authorID && !isAdmin {
		return nil, apperror.New(403, "you can only reply to your own tickets", apperror.ErrForbidden)
	}
	if ticket.Status == model.TicketStatusClosed {
		return nil, apperror.New(400, "ticket is closed", apperror.ErrBadRequest)
	}

	reply := &model.TicketReply{
		SupportTicketID: ticketID,
		AuthorID:        authorID,
		Body:            input.Body,
	}
	if err := s.repo.CreateReply(ctx, reply); err != nil {
		return nil, err
	}

	return reply, nil
}

func (s *supportService) CloseTicket(ctx context.Context, ticketID uuid.UUID) (*model.SupportTicket, error) {
	ticket, err := s.repo.FindByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	ticket.Status = model.TicketStatusClosed
	if err := s.repo.Update(ctx, ticket); err != nil {
		return nil, err
	}

	return ticket, nil
}
