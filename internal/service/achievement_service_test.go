package service

import (
	"context"
	"testing"
	"time"

	"anoa.com/campquest/internal/model"
	"anoa.com/campquest/internal/repository"
	"anoa.com/campquest/pkg/apperror"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAchievementTestEnv(t *testing.T, db *gorm.DB) AchievementService {
	t.Helper()

	userRepo := repository.NewUserRepository(db)
	statsSvc := NewStatsService(repository.NewStatsRepository(db), userRepo)
	notifSvc := NewNotificationService(repository.NewNotificationRepository(db), nil)
	return NewAchievementService(repository.NewAchievementRepository(db), userRepo, statsSvc, notifSvc, nil)
}

func TestSeedCatalogRequiresAdmin(t *testing.T) {
	db := newTestDB(t)
	_, member := seedTestRoles(t, db)
	user := createTestUser(t, db, "alice", member.ID)
	svc := newAchievementTestEnv(t, db)

	_, err := svc.SeedCatalog(context.Background(), user.ID)
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	_, err = svc.SeedCatalog(context.Background(), uuid.New())
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)

	var count int64
	require.NoError(t, db.Model(&model.Achievement{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestSeedCatalogIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	adminRole, _ := seedTestRoles(t, db)
	admin := createTestUser(t, db, "admin", adminRole.ID)
	svc := newAchievementTestEnv(t, db)

	created, err := svc.SeedCatalog(context.Background(), admin.ID)
	require.NoError(t, err)
	assert.Len(t, created, len(Catalog()))

	again, err := svc.SeedCatalog(context.Background(), admin.ID)
	require.NoError(t, err)
	assert.Empty(t, again)

	var count int64
	require.NoError(t, db.Model(&model.Achievement{}).Count(&count).Error)
	assert.Equal(t, int64(len(Catalog())), count)
}

func TestSeedCatalogNeverUpdatesExistingRows(t *testing.T) {
	db := newTestDB(t)
	adminRole, _ := seedTestRoles(t, db)
	admin := createTestUser(t, db, "admin", adminRole.ID)
	svc := newAchievementTestEnv(t, db)

	_, err := svc.SeedCatalog(context.Background(), admin.ID)
	require.NoError(t, err)

	require.NoError(t, db.Model(&model.Achievement{}).
		Where("code = ?", "FIRST_BLOG_POST").
		UpdateColumn("xp", 9999).Error)

	_, err = svc.SeedCatalog(context.Background(), admin.ID)
	require.NoError(t, err)

	var a model.Achievement
	require.NoError(t, db.Where("code = ?", "FIRST_BLOG_POST").First(&a).Error)
	assert.Equal(t, 9999, a.XP)
}

func TestCheckAndUnlockBelowThreshold(t *testing.T) {
	db := newTestDB(t)
	adminRole, memberRole := seedTestRoles(t, db)
	admin := createTestUser(t, db, "admin", adminRole.ID)
	user := createTestUser(t, db, "alice", memberRole.ID)
	svc := newAchievementTestEnv(t, db)

	_, err := svc.SeedCatalog(context.Background(), admin.ID)
	require.NoError(t, err)

	result, err := svc.CheckAndUnlock(context.Background(), user.ID)
	require.NoError(t, err)

	assert.Empty(t, result.Unlocked)
	assert.Equal(t, 0, result.Progress["FIRST_BLOG_POST"])
	assert.Equal(t, 25, result.Progress["PROFILE_COMPLETE"])

	var count int64
	require.NoError(t, db.Model(&model.UserAchievement{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCheckAndUnlockPersistsUnlock(t *testing.T) {
	db := newTestDB(t)
	adminRole, memberRole := seedTestRoles(t, db)
	admin := createTestUser(t, db, "admin", adminRole.ID)
	user := createTestUser(t, db, "alice", memberRole.ID)
	svc := newAchievementTestEnv(t, db)

	_, err := svc.SeedCatalog(context.Background(), admin.ID)
	require.NoError(t, err)

	require.NoError(t, db.Create(&model.BlogPost{
		Title: "hello", Slug: Slugify("hello"), Content: "body", Published: true, AuthorID: user.ID,
	}).Error)

	result, err := svc.CheckAndUnlock(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"FIRST_BLOG_POST"}, result.Unlocked)

	var unlock model.UserAchievement
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&unlock).Error)
	assert.Equal(t, 1, unlock.Progress)
	assert.Equal(t, 1, unlock.MaxProgress)

	var a model.Achievement
	require.NoError(t, db.Where("code = ?", "FIRST_BLOG_POST").First(&a).Error)
	assert.Equal(t, 1, a.UnlockCount)

	var reloaded model.User
	require.NoError(t, db.Where("id = ?", user.ID).First(&reloaded).Error)
	assert.Equal(t, a.XP, reloaded.XP)
}

func TestCheckAndUnlockDoesNotRepeat(t *testing.T) {
	db := newTestDB(t)
	adminRole, memberRole := seedTestRoles(t, db)
	admin := createTestUser(t, db, "admin", adminRole.ID)
	user := createTestUser(t, db, "alice", memberRole.ID)
	svc := newAchievementTestEnv(t, db)

	_, err := svc.SeedCatalog(context.Background(), admin.ID)
	require.NoError(t, err)

	require.NoError(t, db.Create(&model.BlogPost{
		Title: "hello", Slug: Slugify("hello"), Content: "body", Published: true, AuthorID: user.ID,
	}).Error)

	first, err := svc.CheckAndUnlock(context.Background(), user.ID)
	require.NoError(t, err)
	require.Len(t, first.Unlocked, 1)

	second, err := svc.CheckAndUnlock(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Empty(t, second.Unlocked)
	assert.NotContains(t, second.Progress, "FIRST_BLOG_POST")

	var reloaded model.User
	require.NoError(t, db.Where("id = ?", user.ID).First(&reloaded).Error)
	assert.Equal(t, 50, reloaded.XP, "xp must not be granted twice")

	var a model.Achievement
	require.NoError(t, db.Where("code = ?", "FIRST_BLOG_POST").First(&a).Error)
	assert.Equal(t, 1, a.UnlockCount)
}

func TestCheckAndUnlockProgressCapsAtThreshold(t *testing.T) {
	db := newTestDB(t)
	adminRole, memberRole := seedTestRoles(t, db)
	admin := createTestUser(t, db, "admin", adminRole.ID)
	user := createTestUser(t, db, "alice", memberRole.ID)
	svc := newAchievementTestEnv(t, db)

	_, err := svc.SeedCatalog(context.Background(), admin.ID)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		require.NoError(t, db.Create(&model.BlogPost{
			Title: "post", Slug: Slugify("post"), Content: "body", Published: true, AuthorID: user.ID,
		}).Error)
	}

	result, err := svc.CheckAndUnlock(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Contains(t, result.Unlocked, "FIRST_BLOG_POST")
	// Still short of the 10-post tier; live count is reported as progress.
	assert.Equal(t, 3, result.Progress["BLOG_REGULAR"])

	var unlock model.UserAchievement
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&unlock).Error)
	assert.Equal(t, 1, unlock.Progress)
	assert.Equal(t, 1, unlock.MaxProgress)
}

func TestExactMatchRequirementUnlocksOnlyAtThreshold(t *testing.T) {
	db := newTestDB(t)
	adminRole, memberRole := seedTestRoles(t, db)
	admin := createTestUser(t, db, "admin", adminRole.ID)
	user := createTestUser(t, db, "alice", memberRole.ID)
	svc := newAchievementTestEnv(t, db)

	_, err := svc.SeedCatalog(context.Background(), admin.ID)
	require.NoError(t, err)

	firstName := "Alice"
	bio := "hello there"
	require.NoError(t, db.Model(&model.Profile{}).Where("user_id = ?", user.ID).
		Updates(map[string]any{"first_name": firstName, "bio": bio}).Error)

	// 75% complete, eq 100 must not fire
	result, err := svc.CheckAndUnlock(context.Background(), user.ID)
	require.NoError(t, err)
	assert.NotContains(t, result.Unlocked, "PROFILE_COMPLETE")
	assert.Equal(t, 75, result.Progress["PROFILE_COMPLETE"])

	avatar := "https://cdn.example.com/a.webp"
	require.NoError(t, db.Model(&model.User{}).Where("id = ?", user.ID).
		UpdateColumn("avatar_url", avatar).Error)

	result, err = svc.CheckAndUnlock(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Contains(t, result.Unlocked, "PROFILE_COMPLETE")

	// Dropping back below the threshold never revokes the unlock.
	require.NoError(t, db.Model(&model.User{}).Where("id = ?", user.ID).
		UpdateColumn("avatar_url", nil).Error)

	result, err = svc.CheckAndUnlock(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Empty(t, result.Unlocked)
	assert.NotContains(t, result.Progress, "PROFILE_COMPLETE")
}

func TestUnlockDuplicateSurfacesAsDuplicatedKey(t *testing.T) {
	db := newTestDB(t)
	adminRole, memberRole := seedTestRoles(t, db)
	admin := createTestUser(t, db, "admin", adminRole.ID)
	user := createTestUser(t, db, "alice", memberRole.ID)
	svc := newAchievementTestEnv(t, db)

	_, err := svc.SeedCatalog(context.Background(), admin.ID)
	require.NoError(t, err)

	repo := repository.NewAchievementRepository(db)
	achievement, err := repo.FindByCode(context.Background(), "FIRST_BLOG_POST")
	require.NoError(t, err)

	require.NoError(t, repo.Unlock(context.Background(), user.ID, achievement, 1))
	err = repo.Unlock(context.Background(), user.ID, achievement, 1)
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	// The losing attempt must not have written anything.
	var a model.Achievement
	require.NoError(t, db.Where("code = ?", "FIRST_BLOG_POST").First(&a).Error)
	assert.Equal(t, 1, a.UnlockCount)

	var reloaded model.User
	require.NoError(t, db.Where("id = ?", user.ID).First(&reloaded).Error)
	assert.Equal(t, achievement.XP, reloaded.XP)
}

// staleUnlockSnapshotRepo reports an empty unlocked-codes snapshot even when
// unlock rows already exist, reproducing an evaluation that raced another one
// past its snapshot step.
type staleUnlockSnapshotRepo struct {
	repository.AchievementRepository
}

func (r *staleUnlockSnapshotRepo) FindUnlockedCodes(ctx context.Context, userID uuid.UUID) ([]string, error) {
	return nil, nil
}

func TestCheckAndUnlockToleratesConcurrentUnlock(t *testing.T) {
	db := newTestDB(t)
	adminRole, memberRole := seedTestRoles(t, db)
	admin := createTestUser(t, db, "admin", adminRole.ID)
	user := createTestUser(t, db, "alice", memberRole.ID)
	svc := newAchievementTestEnv(t, db)

	_, err := svc.SeedCatalog(context.Background(), admin.ID)
	require.NoError(t, err)

	require.NoError(t, db.Create(&model.BlogPost{
		Title: "hello", Slug: Slugify("hello"), Content: "body", Published: true, AuthorID: user.ID,
	}).Error)

	first, err := svc.CheckAndUnlock(context.Background(), user.ID)
	require.NoError(t, err)
	require.Contains(t, first.Unlocked, "FIRST_BLOG_POST")

	// A second evaluation whose snapshot predates the first one's unlock
	// insert hits the unique index. That is success-elsewhere, not an error.
	userRepo := repository.NewUserRepository(db)
	statsSvc := NewStatsService(repository.NewStatsRepository(db), userRepo)
	notifSvc := NewNotificationService(repository.NewNotificationRepository(db), nil)
	racing := NewAchievementService(
		&staleUnlockSnapshotRepo{repository.NewAchievementRepository(db)},
		userRepo, statsSvc, notifSvc, nil,
	)

	second, err := racing.CheckAndUnlock(context.Background(), user.ID)
	require.NoError(t, err)
	assert.NotContains(t, second.Unlocked, "FIRST_BLOG_POST")

	var count int64
	require.NoError(t, db.Model(&model.UserAchievement{}).
		Where("user_id = ?", user.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	var a model.Achievement
	require.NoError(t, db.Where("code = ?", "FIRST_BLOG_POST").First(&a).Error)
	assert.Equal(t, 1, a.UnlockCount)

	var reloaded model.User
	require.NoError(t, db.Where("id = ?", user.ID).First(&reloaded).Error)
	assert.Equal(t, a.XP, reloaded.XP, "the losing attempt must not grant xp")
}

func TestCheckAndUnlockWorkedExample(t *testing.T) {
	db := newTestDB(t)
	adminRole, memberRole := seedTestRoles(t, db)
	admin := createTestUser(t, db, "admin", adminRole.ID)
	user := createTestUser(t, db, "alice", memberRole.ID)
	svc := newAchievementTestEnv(t, db)

	_, err := svc.SeedCatalog(context.Background(), admin.ID)
	require.NoError(t, err)

	require.NoError(t, db.Create(&model.BlogPost{
		Title: "hello", Slug: Slugify("hello"), Content: "body", Published: true, AuthorID: user.ID,
	}).Error)
	firstName := "Alice"
	bio := "hi"
	avatar := "https://cdn.example.com/a.webp"
	require.NoError(t, db.Model(&model.Profile{}).Where("user_id = ?", user.ID).
		Updates(map[string]any{"first_name": firstName, "bio": bio}).Error)
	require.NoError(t, db.Model(&model.User{}).Where("id = ?", user.ID).
		UpdateColumn("avatar_url", avatar).Error)

	result, err := svc.CheckAndUnlock(context.Background(), user.ID)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"FIRST_BLOG_POST", "PROFILE_COMPLETE"}, result.Unlocked)

	var reloaded model.User
	require.NoError(t, db.Where("id = ?", user.ID).First(&reloaded).Error)
	assert.Equal(t, 125, reloaded.XP)
}

func TestCheckAndUnlockLoginStreak(t *testing.T) {
	db := newTestDB(t)
	adminRole, memberRole := seedTestRoles(t, db)
	admin := createTestUser(t, db, "admin", adminRole.ID)
	user := createTestUser(t, db, "alice", memberRole.ID)
	svc := newAchievementTestEnv(t, db)

	_, err := svc.SeedCatalog(context.Background(), admin.ID)
	require.NoError(t, err)

	now := time.Now().UTC()
	for i := 0; i < 7; i++ {
		require.NoError(t, db.Create(&model.LoginActivity{
			UserID: user.ID, CreatedAt: now.Add(-time.Duration(i) * 24 * time.Hour),
		}).Error)
	}

	result, err := svc.CheckAndUnlock(context.Background(), user.ID)
	require.NoError(t, err)

	assert.Contains(t, result.Unlocked, "FIRST_LOGIN")
	assert.Contains(t, result.Unlocked, "LOGIN_STREAK_7")
	assert.NotContains(t, result.Unlocked, "LOGIN_STREAK_30")
	assert.Equal(t, 7, result.Progress["LOGIN_STREAK_30"])
}

func TestListForUser(t *testing.T) {
	db := newTestDB(t)
	adminRole, memberRole := seedTestRoles(t, db)
	admin := createTestUser(t, db, "admin", adminRole.ID)
	user := createTestUser(t, db, "alice", memberRole.ID)
	svc := newAchievementTestEnv(t, db)

	_, err := svc.SeedCatalog(context.Background(), admin.ID)
	require.NoError(t, err)

	require.NoError(t, db.Create(&model.BlogPost{
		Title: "hello", Slug: Slugify("hello"), Content: "body", Published: true, AuthorID: user.ID,
	}).Error)
	_, err = svc.CheckAndUnlock(context.Background(), user.ID)
	require.NoError(t, err)

	views, err := svc.ListForUser(context.Background(), user.ID)
	require.NoError(t, err)
	require.Len(t, views, len(Catalog()))

	byCode := make(map[string]int, len(views))
	for i, v := range views {
		byCode[v.Code] = i
	}

	unlocked := views[byCode["FIRST_BLOG_POST"]]
	assert.True(t, unlocked.Unlocked)
	assert.Equal(t, 1, unlocked.Progress)
	assert.NotNil(t, unlocked.UnlockedAt)

	locked := views[byCode["BLOG_REGULAR"]]
	assert.False(t, locked.Unlocked)
	assert.Equal(t, 0, locked.Progress, "locked rows always list zero progress")
	assert.Equal(t, 10, locked.MaxProgress)
	assert.Nil(t, locked.UnlockedAt)

	// Category ordering: contribution before marketplace before engagement.
	assert.Less(t, byCode["FIRST_BLOG_POST"], byCode["FIRST_LISTING"])
	assert.Less(t, byCode["FIRST_LISTING"], byCode["FIRST_LOGIN"])
	// Within a category, lower tiers come first.
	assert.Less(t, byCode["FIRST_COMMENT"], byCode["BLOG_VETERAN"])
}
