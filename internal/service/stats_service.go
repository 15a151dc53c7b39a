package service

import (
	"context"
	"errors"
	"time"

	"anoa.com/campquest/internal/model"
	"anoa.com/campquest/internal/repository"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// StatsService computes a fresh UserStats snapshot per call. Nothing is
// cached: every call reflects store state as of query time. Any failing count
// query fails the whole snapshot so a partial result can never masquerade as
// zero activity.
type StatsService interface {
	ComputeUserStats(ctx context.Context, userID uuid.UUID) (*model.UserStats, error)
}

type statsService struct {
	statsRepo repository.StatsRepository
	userRepo  repository.UserRepository
}

func NewStatsService(statsRepo repository.StatsRepository, userRepo repository.UserRepository) StatsService {
	return &statsService{
		statsRepo: statsRepo,
		userRepo:  userRepo,
	}
}

func (s *statsService) ComputeUserStats(ctx context.Context, userID uuid.UUID) (*model.UserStats, error) {
	stats := &model.UserStats{}

	// The counters are independent, so the queries run concurrently.
	g, gctx := errgroup.WithContext(ctx)

	count := func(dst *int, query func(context.Context, uuid.UUID) (int64, error)) {
		g.Go(func() error {
			n, err := query(gctx, userID)
			if err != nil {
				return err
			}
			*dst = int(n)
			return nil
		})
	}

	count(&stats.BlogPosts, s.statsRepo.CountBlogPosts)
	count(&stats.Comments, s.statsRepo.CountComments)
	count(&stats.Listings, s.statsRepo.CountListings)
	count(&stats.Offers, s.statsRepo.CountOffers)
	count(&stats.Reviews, s.statsRepo.CountReviews)
	count(&stats.ConversationsStarted, s.statsRepo.CountConversationsStarted)
	count(&stats.Logins, s.statsRepo.CountLogins)

	g.Go(func() error {
		days, err := s.statsRepo.FindLoginDays(gctx, userID)
		if err != nil {
			return err
		}
		stats.LoginStreak = loginStreak(days, time.Now().UTC())
		return nil
	})

	g.Go(func() error {
		user, err := s.userRepo.FindByID(gctx, userID.String())
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// Missing profile degrades to zero completeness
				return nil
			}
			return err
		}
		stats.ProfileCompleteness = profileCompleteness(user)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return stats, nil
}

// profileCompleteness scores a profile 0-100 in 25-point steps for full name,
// first name, bio and avatar presence.
func profileCompleteness(user *model.User) int {
	score := 0
	if user.Profile != nil && user.Profile.FullName != "" {
		score += 25
	}
	if user.Profile != nil && user.Profile.FirstName != nil && *user.Profile.FirstName != "" {
		score += 25
	}
	if user.Profile != nil && user.Profile.Bio != nil && *user.Profile.Bio != "" {
		score += 25
	}
	if user.AvatarURL != nil && *user.AvatarURL != "" {
		score += 25
	}
	return score
}

// loginStreak counts consecutive login days ending today or yesterday.
// days must be distinct UTC midnights, most recent first.
func loginStreak(days []time.Time, now time.Time) int {
	if len(days) == 0 {
		return 0
	}

	today := now.Truncate(24 * time.Hour)

	// A streak is still alive if the last login was today or yesterday.
	gap := today.Sub(days[0])
	if gap > 24*time.Hour {
		return 0
	}

	streak := 1
	for i := 1; i < len(days); i++ {
		if days[i-1].Sub(days[i]) != 24*time.Hour {
			break
		}
		streak++
	}

	return streak
}
