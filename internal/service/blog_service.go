package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"anoa.com/campquest/internal/dto"
	"anoa.com/campquest/internal/model"
	"anoa.com/campquest/internal/repository"
	"anoa.com/campquest/pkg/apperror"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type BlogService interface {
	CreatePost(ctx context.Context, userID uuid.UUID, input dto.CreateBlogPostInput) (*model.BlogPost, error)
	GetPostBySlug(ctx context.Context, slug string) (*model.BlogPost, error)
	ListPosts(ctx context.Context, page dto.Pagination) (*dto.PaginatedResponse, error)
	UpdatePost(ctx context.Context, userID uuid.UUID, isAdmin bool, postID uuid.UUID, input dto.UpdateBlogPostInput) (*model.BlogPost, error)
	DeletePost(ctx context.Context, userID uuid.UUID, isAdmin bool, postID uuid.UUID) error

	CreateComment(ctx context.Context, userID, postID uuid.UUID, input dto.CreateCommentInput) (*model.Comment, error)
	ListComments(ctx context.Context, postID uuid.UUID) ([]*model.Comment, error)
	DeleteComment(ctx context.Context, userID uuid.UUID, isAdmin bool, commentID uuid.UUID) error
}

type blogService struct {
	repo               repository.BlogRepository
	achievementService AchievementService
	searchService      SearchService
	redisClient        *redis.Client
}

func NewBlogService(
	repo repository.BlogRepository,
	achievementService AchievementService,
	searchService SearchService,
	redisClient *redis.Client,
) BlogService {
	return &blogService{
		repo:               repo,
		achievementService: achievementService,
		searchService:      searchService,
		redisClient:        redisClient,
	}
}

func (s *blogService) CreatePost(ctx context.Context, userID uuid.UUID, input dto.CreateBlogPostInput) (*model.BlogPost, error) {
	limit := GetDurationFromEnv("RATE_LIMIT_GLOBAL", 5*time.Second)
	allowed, err := CheckAndSetRateLimit(ctx, s.redisClient, userID, "global", limit)
	if err != nil {
		return nil, fmt.Errorf("failed to check rate limit: %w", err)
	}
	if !allowed {
		ttl, _ := GetRateLimitTTL(ctx, s.redisClient, userID, "global")
		return nil, &RateLimitError{
			Message:    fmt.Sprintf("you are doing that too fast. Please wait %.0f seconds", ttl.Seconds()),
			RetryAfter: ttl,
		}
	}

	post := &model.BlogPost{
		Title:     input.Title,
		Slug:      Slugify(input.Title),
		Content:   input.Content,
		Published: true,
		AuthorID:  userID,
	}

	if err := s.repo.Create(ctx, post); err != nil {
		return nil, err
	}

	if s.searchService != nil {
		s.searchService.IndexPostAsync(post)
	}

	// Contribution achievements may have become satisfiable.
	s.achievementService.CheckAndUnlockAsync(userID)

	return post, nil
}

func (s *blogService) GetPostBySlug(ctx context.Context, slug string) (*model.BlogPost, error) {
	post, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	return post, nil
}

func (s *blogService) ListPosts(ctx context.Context, page dto.Pagination) (*dto.PaginatedResponse, error) {
	posts, total, err := s.repo.FindPublished(ctx, page.Offset(), page.PerPage())
	if err != nil {
		return nil, err
	}
	return &dto.PaginatedResponse{Items: posts, Total: total, Page: page.Page, Limit: page.PerPage()}, nil
}

func (s *blogService) UpdatePost(ctx context.Context, userID uuid.UUID, isAdmin bool, postID uuid.UUID, input dto.UpdateBlogPostInput) (*model.BlogPost, error) {
	post, err := s.repo.FindByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	if post.AuthorID != userID && !isAdmin {
		return nil, apperror.New(403, "you can only update your own post", apperror.ErrForbidden)
	}

	if input.Title != nil {
		post.Title = *input.Title
	}
	if input.Content != nil {
		post.Content = *input.Content
	}
	if input.Published != nil {
		// Only admins moderate publication state
		if !isAdmin {
			return nil, apperror.New(403, "only administrators can change publication state", apperror.ErrForbidden)
		}
		post.Published = *input.Published
	}

	if err := s.repo.Update(ctx, post); err != nil {
		return nil, err
	}

	if s.searchService != nil {
		s.searchService.IndexPostAsync(post)
	}

	return post, nil
}

func (s *blogService) DeletePost(ctx context.Context, userID uuid.UUID, isAdmin bool, postID uuid.UUID) error {
	post, err := s.repo.FindByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.ErrNotFound
		}
		return err
	}

	if post.AuthorID != userID && !isAdmin {
		return apperror.New(403, "you can only delete your own post", apperror.ErrForbidden)
	}

	if err := s.repo.Delete(ctx, postID); err != nil {
		return err
	}

	if s.searchService != nil {
		s.searchService.DeletePostAsync(postID.String())
	}

	return nil
}

func (s *blogService) CreateComment(ctx context.Context, userID, postID uuid.UUID, input dto.CreateCommentInput) (*model.Comment, error) {
	post, err := s.repo.FindByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(404, "post not found", apperror.ErrNotFound)
		}
		return nil, err
	}
	if !post.Published {
		return nil, apperror.New(400, "cannot comment on an unpublished post", apperror.ErrBadRequest)
	}

	comment := &model.Comment{
		BlogPostID: postID,
		UserID:     userID,
		Content:    input.Content,
	}
	if err := s.repo.CreateComment(ctx, comment); err != nil {
		return nil, err
	}

	s.achievementService.CheckAndUnlockAsync(userID)

	return comment, nil
}

func (s *blogService) DeleteComment(ctx context.Context, userID uuid.UUID, isAdmin bool, commentID uuid.UUID) error {
	comment, err := s.repo.FindCommentByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.ErrNotFound
		}
		return err
	}

	if comment.UserID != userID && !isAdmin {
		return apperror.New(403, "you can only delete your own comment", apperror.ErrForbidden)
	}

	return s.repo.DeleteComment(ctx, commentID)
}

func (s *blogService) ListComments(ctx context.Context, postID uuid.UUID) ([]*model.Comment, error) {
	return s.repo.FindComments(ctx, postID)
}
