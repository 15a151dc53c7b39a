package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"mime/multipart"
	"time"

	"anoa.com/campquest/internal/dto"
	"anoa.com/campquest/internal/model"
	"anoa.com/campquest/internal/repository"
	"anoa.com/campquest/pkg/apperror"
	"anoa.com/campquest/pkg/storage"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type CampaignService interface {
	CreateCampaign(ctx context.Context, adminID uuid.UUID, input dto.CreateCampaignInput) (*model.Campaign, error)
	UpdateCampaign(ctx context.Context, campaignID uuid.UUID, input dto.UpdateCampaignInput) (*model.Campaign, error)
	DeleteCampaign(ctx context.Context, campaignID uuid.UUID) error
	ListCampaigns(ctx context.Context, status string, page dto.Pagination) (*dto.PaginatedResponse, error)
	GetCampaignBySlug(ctx context.Context, slug string) (*model.Campaign, error)

	SubmitProof(ctx context.Context, userID, taskID uuid.UUID, note string, proof *multipart.FileHeader) (*model.Submission, error)
	ListMySubmissions(ctx context.Context, userID uuid.UUID) ([]*model.Submission, error)
	ListPendingSubmissions(ctx context.Context, page dto.Pagination) (*dto.PaginatedResponse, error)
	ReviewSubmission(ctx context.Context, reviewerID, submissionID uuid.UUID, input dto.ReviewSubmissionInput) (*model.Submission, error)
}

type campaignService struct {
	repo               repository.CampaignRepository
	userRepo           repository.UserRepository
	achievementService AchievementService
	notifService       NotificationService
	searchService      SearchService
	imageStorage       storage.ImageStorage
	redisClient        *redis.Client
}

func NewCampaignService(
	repo repository.CampaignRepository,
	userRepo repository.UserRepository,
	achievementService AchievementService,
	notifService NotificationService,
	searchService SearchService,
	imageStorage storage.ImageStorage,
	redisClient *redis.Client,
) CampaignService {
	return &campaignService{
		repo:               repo,
		userRepo:           userRepo,
		achievementService: achievementService,
		notifService:       notifService,
		searchService:      searchService,
		imageStorage:       imageStorage,
		redisClient:        redisClient,
	}
}

func (s *campaignService) CreateCampaign(ctx context.Context, adminID uuid.UUID, input dto.CreateCampaignInput) (*model.Campaign, error) {
	campaign := &model.Campaign{
		Title:       input.Title,
		Slug:        Slugify(input.Title),
		Description: input.Description,
		Status:      model.CampaignStatusDraft,
		XPReward:    input.XPReward,
		StartsAt:    input.StartsAt,
		EndsAt:      input.EndsAt,
		CreatedByID: adminID,
	}
	for i, task := range input.Tasks {
		campaign.Tasks = append(campaign.Tasks, model.CampaignTask{
			Position:    i + 1,
			Title:       task.Title,
			Description: task.Description,
			Points:      task.Points,
		})
	}

	if err := s.repo.Create(ctx, campaign); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.New(409, "a campaign with this title already exists", apperror.ErrConflict)
		}
		return nil, err
	}

	if s.searchService != nil {
		s.searchService.IndexCampaignAsync(campaign)
	}

	return campaign, nil
}

func (s *campaignService) UpdateCampaign(ctx context.Context, campaignID uuid.UUID, input dto.UpdateCampaignInput) (*model.Campaign, error) {
	campaign, err := s.repo.FindByID(ctx, campaignID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	if input.Title != nil {
		campaign.Title = *input.Title
	}
	if input.Description != nil {
		campaign.Description = *input.Description
	}
	if input.Status != nil {
		campaign.Status = *input.Status
	}
	if input.XPReward != nil {
		campaign.XPReward = *input.XPReward
	}
	if input.StartsAt != nil {
		campaign.StartsAt = input.StartsAt
	}
	if input.EndsAt != nil {
		campaign.EndsAt = input.EndsAt
	}

	if err := s.repo.Update(ctx, campaign); err != nil {
		return nil, err
	}

	if s.searchService != nil {
		s.searchService.IndexCampaignAsync(campaign)
	}

	return campaign, nil
}

func (s *campaignService) DeleteCampaign(ctx context.Context, campaignID uuid.UUID) error {
	if err := s.repo.Delete(ctx, campaignID); err != nil {
		return err
	}
	if s.searchService != nil {
		s.searchService.DeleteCampaignAsync(campaignID.String())
	}
	return nil
}

func (s *campaignService) ListCampaigns(ctx context.Context, status string, page dto.Pagination) (*dto.PaginatedResponse, error) {
	campaigns, total, err := s.repo.FindByStatus(ctx, status, page.Offset(), page.PerPage())
	if err != nil {
		return nil, err
	}
	return &dto.PaginatedResponse{Items: campaigns, Total: total, Page: page.Page, Limit: page.PerPage()}, nil
}

func (s *campaignService) GetCampaignBySlug(ctx context.Context, slug string) (*model.Campaign, error) {
	campaign, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	return campaign, nil
}

func (s *campaignService) SubmitProof(ctx context.Context, userID, taskID uuid.UUID, note string, proof *multipart.FileHeader) (*model.Submission, error) {
	limit := GetDurationFromEnv("RATE_LIMIT_SUBMISSION", 30*time.Second)
	allowed, err := CheckAndSetRateLimit(ctx, s.redisClient, userID, "submission", limit)
	if err != nil {
		return nil, fmt.Errorf("failed to check rate limit: %w", err)
	}
	if !allowed {
		ttl, _ := GetRateLimitTTL(ctx, s.redisClient, userID, "submission")
		return nil, &RateLimitError{
			Message:    fmt.Sprintf("you can only submit once every %.0f seconds. Please wait %.0f seconds", limit.Seconds(), ttl.Seconds()),
			RetryAfter: ttl,
		}
	}

	task, err := s.repo.FindTaskByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(404, "task not found", apperror.ErrNotFound)
		}
		return nil, err
	}

	campaign, err := s.repo.FindByID(ctx, task.CampaignID)
	if err != nil {
		return nil, err
	}
	if campaign.Status != model.CampaignStatusActive {
		return nil, apperror.New(400, "campaign is not accepting submissions", apperror.ErrBadRequest)
	}

	src, err := proof.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	proofURL, err := s.imageStorage.UploadImage(ctx, src, "proofs", proof.Filename)
	if err != nil {
		return nil, fmt.Errorf("failed to upload proof: %w", err)
	}

	// One submission per (task, user). A rejected one may be replaced;
	// pending or approved submissions block resubmission.
	existing, err := s.repo.FindSubmission(ctx, taskID, userID)
	if err == nil {
		if existing.Status != model.SubmissionStatusRejected {
			return nil, apperror.New(409, "you already submitted proof for this task", apperror.ErrConflict)
		}
		existing.ProofURL = proofURL
		existing.Note = note
		existing.Status = model.SubmissionStatusPending
		existing.ReviewerID = nil
		existing.ReviewNote = ""
		existing.ReviewedAt = nil
		if err := s.repo.UpdateSubmission(ctx, existing); err != nil {
			return nil, err
		}
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	submission := &model.Submission{
		TaskID:   taskID,
		UserID:   userID,
		ProofURL: proofURL,
		Note:     note,
		Status:   model.SubmissionStatusPending,
	}
	if err := s.repo.CreateSubmission(ctx, submission); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.New(409, "you already submitted proof for this task", apperror.ErrConflict)
		}
		return nil, err
	}

	return submission, nil
}

func (s *campaignService) ListMySubmissions(ctx context.Context, userID uuid.UUID) ([]*model.Submission, error) {
	return s.repo.FindSubmissionsByUser(ctx, userID)
}

func (s *campaignService) ListPendingSubmissions(ctx context.Context, page dto.Pagination) (*dto.PaginatedResponse, error) {
	submissions, total, err := s.repo.FindSubmissionsByStatus(ctx, model.SubmissionStatusPending, page.Offset(), page.PerPage())
	if err != nil {
		return nil, err
	}
	return &dto.PaginatedResponse{Items: submissions, Total: total, Page: page.Page, Limit: page.PerPage()}, nil
}

func (s *campaignService) ReviewSubmission(ctx context.Context, reviewerID, submissionID uuid.UUID, input dto.ReviewSubmissionInput) (*model.Submission, error) {
	submission, err := s.repo.FindSubmissionByID(ctx, submissionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	if submission.Status != model.SubmissionStatusPending {
		return nil, apperror.New(400, "submission already reviewed", apperror.ErrBadRequest)
	}

	now := time.Now()
	submission.ReviewerID = &reviewerID
	submission.ReviewNote = input.Note
	submission.ReviewedAt = &now

	if input.Approve {
		submission.Status = model.SubmissionStatusApproved
	} else {
		submission.Status = model.SubmissionStatusRejected
	}

	if err := s.repo.UpdateSubmission(ctx, submission); err != nil {
		return nil, err
	}

	if input.Approve && submission.Task.Points > 0 {
		if err := s.userRepo.AddXP(ctx, submission.UserID, submission.Task.Points); err != nil {
			log.Printf("failed to award %d XP to user %s: %v", submission.Task.Points, submission.UserID, err)
		}
	}

	notification := &model.Notification{
		UserID: submission.UserID,
		Type:   model.NotificationTypeSubmission,
		Title:  fmt.Sprintf("Your submission was %s", submission.Status),
		Body:   input.Note,
	}
	if err := s.notifService.CreateNotification(ctx, notification); err != nil {
		log.Printf("failed to notify user %s about review: %v", submission.UserID, err)
	}

	if input.Approve {
		s.achievementService.CheckAndUnlockAsync(submission.UserID)
	}

	return submission, nil
}
