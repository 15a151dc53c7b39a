package service

import (
	"context"

	"anoa.com/campquest/internal/dto"
	"anoa.com/campquest/internal/repository"
	"github.com/google/uuid"
)

// XP thresholds for permanent rank titles. Ranks never demote.
const (
	XPLegend      = 20000
	XPVeteran     = 8000
	XPNotable     = 3000
	XPContributor = 600
	XPMember      = 100
)

func RankTitle(xp int) string {
	switch {
	case xp >= XPLegend:
		return "Legend"
	case xp >= XPVeteran:
		return "Veteran"
	case xp >= XPNotable:
		return "Notable"
	case xp >= XPContributor:
		return "Contributor"
	case xp >= XPMember:
		return "Member"
	default:
		return "Newcomer"
	}
}

type LeaderboardService interface {
	GetLeaderboard(ctx context.Context, limit int) ([]dto.LeaderboardEntry, error)
	GetRank(ctx context.Context, userID uuid.UUID) (*dto.LeaderboardEntry, error)
}

type leaderboardService struct {
	userRepo repository.UserRepository
}

func NewLeaderboardService(userRepo repository.UserRepository) LeaderboardService {
	return &leaderboardService{userRepo: userRepo}
}

func (s *leaderboardService) GetLeaderboard(ctx context.Context, limit int) ([]dto.LeaderboardEntry, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}

	users, err := s.userRepo.FindTopByXP(ctx, limit)
	if err != nil {
		return nil, err
	}

	entries := make([]dto.LeaderboardEntry, 0, len(users))
	for i, user := range users {
		var fullName string
		if user.Profile != nil {
			fullName = user.Profile.FullName
		}
		entries = append(entries, dto.LeaderboardEntry{
			Rank:      i + 1,
			Username:  user.Username,
			FullName:  fullName,
			AvatarURL: user.AvatarURL,
			XP:        user.XP,
			RankTitle: RankTitle(user.XP),
		})
	}

	return entries, nil
}

func (s *leaderboardService) GetRank(ctx context.Context, userID uuid.UUID) (*dto.LeaderboardEntry, error) {
	user, err := s.userRepo.FindByID(ctx, userID.String())
	if err != nil {
		return nil, err
	}

	position, err := s.userRepo.CountWithMoreXP(ctx, user.XP)
	if err != nil {
		return nil, err
	}

	var fullName string
	if user.Profile != nil {
		fullName = user.Profile.FullName
	}

	return &dto.LeaderboardEntry{
		Rank:      int(position) + 1,
		Username:  user.Username,
		FullName:  fullName,
		AvatarURL: user.AvatarURL,
		XP:        user.XP,
		RankTitle: RankTitle(user.XP),
	}, nil
}
