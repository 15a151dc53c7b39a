package service

import (
	"context"
	"errors"
	"log"
	"sort"

	"anoa.com/campquest/internal/dto"
	"anoa.com/campquest/internal/model"
	"anoa.com/campquest/internal/repository"
	"anoa.com/campquest/pkg/apperror"
	"anoa.com/campquest/pkg/mailer"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AchievementService interface {
	// SeedCatalog materializes the compiled-in catalog into the store.
	// Idempotent; only newly created rows are returned. The caller must be
	// an administrator.
	SeedCatalog(ctx context.Context, actorID uuid.UUID) ([]*model.Achievement, error)
	// CheckAndUnlock evaluates all not-yet-unlocked visible achievements for
	// the user, persists the satisfied ones and reports progress on the rest.
	CheckAndUnlock(ctx context.Context, userID uuid.UUID) (*dto.EvaluationResult, error)
	// CheckAndUnlockAsync runs CheckAndUnlock in the background, used after
	// user actions where unlock latency must not block the request.
	CheckAndUnlockAsync(userID uuid.UUID)
	// ListForUser returns all visible achievements annotated with the user's
	// unlock state, ordered by category, tier, then XP descending.
	ListForUser(ctx context.Context, userID uuid.UUID) ([]*dto.AchievementView, error)
}

type achievementService struct {
	repo         repository.AchievementRepository
	userRepo     repository.UserRepository
	statsService StatsService
	notifService NotificationService
	mail         mailer.Mailer
}

func NewAchievementService(
	repo repository.AchievementRepository,
	userRepo repository.UserRepository,
	statsService StatsService,
	notifService NotificationService,
	mail mailer.Mailer,
) AchievementService {
	return &achievementService{
		repo:         repo,
		userRepo:     userRepo,
		statsService: statsService,
		notifService: notifService,
		mail:         mail,
	}
}

func (s *achievementService) SeedCatalog(ctx context.Context, actorID uuid.UUID) ([]*model.Achievement, error) {
	actor, err := s.userRepo.FindByID(ctx, actorID.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrUnauthorized
		}
		return nil, err
	}
	if actor.Role.Name != "admin" {
		return nil, apperror.ErrForbidden
	}

	var created []*model.Achievement
	for _, def := range achievementCatalog {
		_, err := s.repo.FindByCode(ctx, def.Code)
		if err == nil {
			// Already seeded. Existing rows are never updated, even if the
			// in-code definition changed since.
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}

		threshold := def.Requirement.Count
		if threshold <= 0 {
			threshold = 1
		}
		compare := def.Requirement.Compare
		if compare == "" {
			compare = model.CompareGte
		}

		achievement := &model.Achievement{
			Code:        def.Code,
			Name:        def.Name,
			Description: def.Description,
			Icon:        def.Icon,
			Category:    def.Category,
			Tier:        def.Tier,
			XP:          def.XP,
			ReqType:     string(def.Requirement.Type),
			ReqCount:    threshold,
			ReqCompare:  compare,
			Visible:     true,
			CreatedByID: &actor.ID,
		}
		if err := s.repo.Create(ctx, achievement); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				// Concurrent seeding run got there first
				continue
			}
			return nil, err
		}
		created = append(created, achievement)
	}

	return created, nil
}

func (s *achievementService) CheckAndUnlock(ctx context.Context, userID uuid.UUID) (*dto.EvaluationResult, error) {
	user, err := s.userRepo.FindByID(ctx, userID.String())
	if err != nil {
		return nil, err
	}

	// Aggregation failure aborts the whole evaluation; a counter must never
	// silently read as zero.
	stats, err := s.statsService.ComputeUserStats(ctx, userID)
	if err != nil {
		return nil, err
	}

	unlockedCodes, err := s.repo.FindUnlockedCodes(ctx, userID)
	if err != nil {
		return nil, err
	}
	alreadyUnlocked := make(map[string]bool, len(unlockedCodes))
	for _, code := range unlockedCodes {
		alreadyUnlocked[code] = true
	}

	candidates, err := s.repo.FindVisible(ctx)
	if err != nil {
		return nil, err
	}

	result := &dto.EvaluationResult{Progress: make(map[string]int)}

	for _, achievement := range candidates {
		// Unlocks are monotonic and permanent: already-unlocked achievements
		// are never re-checked.
		if alreadyUnlocked[achievement.Code] {
			continue
		}

		value, known := statValue(stats, achievement.ReqType)
		if !known {
			log.Printf("achievement %s has unknown requirement type %q, skipping", achievement.Code, achievement.ReqType)
			continue
		}

		threshold := achievement.ReqCount
		if threshold <= 0 {
			threshold = 1
		}

		if !requirementSatisfied(achievement.ReqCompare, value, threshold) {
			result.Progress[achievement.Code] = value
			continue
		}

		if err := s.repo.Unlock(ctx, userID, achievement, threshold); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				// A concurrent evaluation unlocked it between our snapshot
				// and this insert; the store stays consistent, move on.
				continue
			}
			// Any other persistence failure aborts the batch.
			return nil, err
		}

		result.Unlocked = append(result.Unlocked, achievement.Code)
		s.notifyUnlockAsync(user, achievement)
	}

	return result, nil
}

func (s *achievementService) CheckAndUnlockAsync(userID uuid.UUID) {
	go func() {
		if _, err := s.CheckAndUnlock(context.Background(), userID); err != nil {
			log.Printf("achievement check for user %s failed: %v", userID, err)
		}
	}()
}

// notifyUnlockAsync dispatches the unlock email and in-app notification
// outside the unlock transaction. Failures are logged and dropped; a broken
// mail provider must never roll back or delay an unlock.
func (s *achievementService) notifyUnlockAsync(user *model.User, achievement *model.Achievement) {
	go func() {
		ctx := context.Background()

		notification := &model.Notification{
			UserID: user.ID,
			Type:   model.NotificationTypeAchievement,
			Title:  "Achievement unlocked: " + achievement.Name,
			Body:   achievement.Description,
		}
		if err := s.notifService.CreateNotification(ctx, notification); err != nil {
			log.Printf("failed to create unlock notification for user %s: %v", user.ID, err)
		}

		if s.mail != nil {
			if err := s.mail.SendAchievementUnlocked(user.Email, achievement.Name, achievement.Description, achievement.Icon); err != nil {
				log.Printf("failed to send unlock email to %s: %v", user.Email, err)
			}
		}
	}()
}

func (s *achievementService) ListForUser(ctx context.Context, userID uuid.UUID) ([]*dto.AchievementView, error) {
	achievements, err := s.repo.FindVisible(ctx)
	if err != nil {
		return nil, err
	}

	unlocked, err := s.repo.FindUserAchievements(ctx, userID)
	if err != nil {
		return nil, err
	}
	unlockedByID := make(map[uint]*model.UserAchievement, len(unlocked))
	for _, ua := range unlocked {
		unlockedByID[ua.AchievementID] = ua
	}

	views := make([]*dto.AchievementView, 0, len(achievements))
	for _, achievement := range achievements {
		view := &dto.AchievementView{
			Code:        achievement.Code,
			Name:        achievement.Name,
			Description: achievement.Description,
			Icon:        achievement.Icon,
			Category:    achievement.Category,
			Tier:        achievement.Tier,
			XP:          achievement.XP,
			UnlockCount: achievement.UnlockCount,
			MaxProgress: achievement.ReqCount,
		}
		if ua, ok := unlockedByID[achievement.ID]; ok {
			unlockedAt := ua.UnlockedAt
			view.Unlocked = true
			view.Progress = ua.Progress
			view.MaxProgress = ua.MaxProgress
			view.UnlockedAt = &unlockedAt
		}
		views = append(views, view)
	}

	sort.SliceStable(views, func(i, j int) bool {
		if views[i].Category != views[j].Category {
			return categoryRank(views[i].Category) < categoryRank(views[j].Category)
		}
		if views[i].Tier != views[j].Tier {
			return tierRank(views[i].Tier) < tierRank(views[j].Tier)
		}
		return views[i].XP > views[j].XP
	})

	return views, nil
}

func categoryRank(category string) int {
	switch category {
	case model.CategoryContribution:
		return 0
	case model.CategoryMarketplace:
		return 1
	case model.CategorySocial:
		return 2
	case model.CategoryEngagement:
		return 3
	case model.CategorySpecial:
		return 4
	default:
		return 5
	}
}

func tierRank(tier string) int {
	switch tier {
	case model.TierBronze:
		return 0
	case model.TierSilver:
		return 1
	case model.TierGold:
		return 2
	case model.TierLegendary:
		return 3
	default:
		return 4
	}
}
