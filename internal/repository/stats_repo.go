package repository

import (
	"context"
	"time"

	"anoa.com/campquest/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StatsRepository exposes the independent counting queries the achievement
// evaluator aggregates over. Each method is a single count; the service layer
// decides how to combine and parallelize them.
type StatsRepository interface {
	CountBlogPosts(ctx context.Context, userID uuid.UUID) (int64, error)
	CountComments(ctx context.Context, userID uuid.UUID) (int64, error)
	CountListings(ctx context.Context, userID uuid.UUID) (int64, error)
	CountOffers(ctx context.Context, userID uuid.UUID) (int64, error)
	CountReviews(ctx context.Context, userID uuid.UUID) (int64, error)
	CountConversationsStarted(ctx context.Context, userID uuid.UUID) (int64, error)
	CountLogins(ctx context.Context, userID uuid.UUID) (int64, error)
	// FindLoginDays returns the distinct calendar days (UTC, truncated to
	// midnight) with at least one login, most recent first.
	FindLoginDays(ctx context.Context, userID uuid.UUID) ([]time.Time, error)
}

type statsRepository struct {
	db *gorm.DB
}

func NewStatsRepository(db *gorm.DB) StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) CountBlogPosts(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.BlogPost{}).
		Where("author_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *statsRepository) CountComments(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Comment{}).
		Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *statsRepository) CountListings(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Listing{}).
		Where("seller_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *statsRepository) CountOffers(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Offer{}).
		Where("buyer_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *statsRepository) CountReviews(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Review{}).
		Where("reviewer_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *statsRepository) CountConversationsStarted(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Conversation{}).
		Where("starter_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *statsRepository) CountLogins(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.LoginActivity{}).
		Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *statsRepository) FindLoginDays(ctx context.Context, userID uuid.UUID) ([]time.Time, error) {
	var timestamps []time.Time
	err := r.db.WithContext(ctx).Model(&model.LoginActivity{}).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Pluck("created_at", &timestamps).Error
	if err != nil {
		return nil, err
	}

	// Collapse to distinct UTC days, preserving most-recent-first order.
	var days []time.Time
	seen := make(map[time.Time]bool)
	for _, ts := range timestamps {
		day := ts.UTC().Truncate(24 * time.Hour)
		if !seen[day] {
			seen[day] = true
			days = append(days, day)
		}
	}

	return days, nil
}
