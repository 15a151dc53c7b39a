package service

import (
	"context"
	"errors"
	"log"

	"anoa.com/campquest/internal/dto"
	"anoa.com/campquest/internal/model"
	"anoa.com/campquest/internal/repository"
	"anoa.com/campquest/pkg/apperror"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ConversationService interface {
	StartConversation(ctx context.Context, starterID uuid.UUID, input dto.StartConversationInput) (*model.Conversation, error)
	ListConversations(ctx context.Context, userID uuid.UUID) ([]*model.Conversation, error)
	SendMessage(ctx context.Context, senderID, conversationID uuid.UUID, input dto.SendMessageInput) (*model.Message, error)
	ListMessages(ctx context.Context, userID, conversationID uuid.UUID, page dto.Pagination) (*dto.PaginatedResponse, error)
}

type conversationService struct {
	repo               repository.ConversationRepository
	userRepo           repository.UserRepository
	achievementService AchievementService
	notifService       NotificationService
}

func NewConversationService(
	repo repository.ConversationRepository,
	userRepo repository.UserRepository,
	achievementService AchievementService,
	notifService NotificationService,
) ConversationService {
	return &conversationService{
		repo:               repo,
		userRepo:           userRepo,
		achievementService: achievementService,
		notifService:       notifService,
	}
}

func (s *conversationService) StartConversation(ctx context.Context, starterID uuid.UUID, input dto.StartConversationInput) (*model.Conversation, error) {
	recipient, err := s.userRepo.FindByUsername(ctx, input.RecipientUsername)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(404, "recipient not found", apperror.ErrNotFound)
		}
		return nil, err
	}
	if recipient.ID == starterID {
		return nil, apperror.New(400, "you cannot message yourself", apperror.ErrBadRequest)
	}

	// Reuse the existing thread between the pair if there is one
	if existing, err := s.repo.FindBetween(ctx, starterID, recipient.ID); err == nil {
		if _, err := s.SendMessage(ctx, starterID, existing.ID, dto.SendMessageInput{Body: input.Body}); err != nil {
			return nil, err
		}
		return existing, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	conversation := &model.Conversation{
		StarterID:   starterID,
		RecipientID: recipient.ID,
	}
	if err := s.repo.Create(ctx, conversation); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Created concurrently; fall back to the existing thread
			return s.repo.FindBetween(ctx, starterID, recipient.ID)
		}
		return nil, err
	}

	if _, err := s.SendMessage(ctx, starterID, conversation.ID, dto.SendMessageInput{Body: input.Body}); err != nil {
		return nil, err
	}

	s.achievementService.CheckAndUnlockAsync(starterID)

	return conversation, nil
}

func (s *conversationService) ListConversations(ctx context.Context, userID uuid.UUID) ([]*model.Conversation, error) {
	return s.repo.FindByParticipant(ctx, userID)
}

func (s *conversationService) SendMessage(ctx context.Context, senderID, conversationID uuid.UUID, input dto.SendMessageInput) (*model.Message, error) {
	conversation, err := s.repo.FindByID(ctx, conversationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(404, "conversation not found", apperror.ErrNotFound)
		}
		return nil, err
	}

	if conversation.StarterID != senderID && conversation.RecipientID != senderID {
		return nil, apperror.New(403, "you are not part of this conversation", apperror.ErrForbidden)
	}

	message := &model.Message{
		ConversationID: conversationID,
		SenderID:       senderID,
		Body:           input.Body,
	}
	if err := s.repo.CreateMessage(ctx, message); err != nil {
		return nil, err
	}

	recipientID := conversation.StarterID
	if recipientID == senderID {
		recipientID = conversation.RecipientID
	}

	notification := &model.Notification{
		UserID: recipientID,
		Type:   model.NotificationTypeMessage,
		Title:  "New message",
		Body:   input.Body,
	}
	if err := s.notifService.CreateNotification(ctx, notification); err != nil {
		log.Printf("failed to notify user %s about message: %v", recipientID, err)
	}

	return message, nil
}

func (s *conversationService) ListMessages(ctx context.Context, userID, conversationID uuid.UUID, page dto.Pagination) (*dto.PaginatedResponse, error) {
	conversation, err := s.repo.FindByID(ctx, conversationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	if conversation.StarterID != userID && conversation.RecipientID != userID {
		return nil, apperror.New(403, "you are not part of this conversation", apperror.ErrForbidden)
	}

	messages, total, err := s.repo.FindMessages(ctx, conversationID, page.Offset(), page.PerPage())
	if err != nil {
		return nil, err
	}

	return &dto.PaginatedResponse{Items: messages, Total: total, Page: page.Page, Limit: page.PerPage()}, nil
}
