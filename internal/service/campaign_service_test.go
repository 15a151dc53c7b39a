package service

import (
	"context"
	"testing"

	"anoa.com/campquest/internal/dto"
	"anoa.com/campquest/internal/model"
	"anoa.com/campquest/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newCampaignTestEnv(t *testing.T, db *gorm.DB) CampaignService {
	t.Helper()

	userRepo := repository.NewUserRepository(db)
	statsSvc := NewStatsService(repository.NewStatsRepository(db), userRepo)
	notifSvc := NewNotificationService(repository.NewNotificationRepository(db), nil)
	achievementSvc := NewAchievementService(repository.NewAchievementRepository(db), userRepo, statsSvc, notifSvc, nil)
	return NewCampaignService(repository.NewCampaignRepository(db), userRepo, achievementSvc, notifSvc, nil, nil, nil)
}

func TestCreateCampaignNumbersTasks(t *testing.T) {
	db := newTestDB(t)
	adminRole, _ := seedTestRoles(t, db)
	admin := createTestUser(t, db, "admin", adminRole.ID)
	svc := newCampaignTestEnv(t, db)

	campaign, err := svc.CreateCampaign(context.Background(), admin.ID, dto.CreateCampaignInput{
		Title:    "Spring Cleanup",
		XPReward: 100,
		Tasks: []dto.CreateCampaignTaskInput{
			{Title: "Pick a park", Points: 10},
			{Title: "Post before photo", Points: 20},
			{Title: "Post after photo", Points: 30},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, model.CampaignStatusDraft, campaign.Status)
	require.Len(t, campaign.Tasks, 3)
	for i, task := range campaign.Tasks {
		assert.Equal(t, i+1, task.Position)
	}

	fetched, err := svc.GetCampaignBySlug(context.Background(), campaign.Slug)
	require.NoError(t, err)
	assert.Equal(t, campaign.ID, fetched.ID)
}

func TestReviewSubmissionApproveAwardsPoints(t *testing.T) {
	db := newTestDB(t)
	adminRole, memberRole := seedTestRoles(t, db)
	admin := createTestUser(t, db, "admin", adminRole.ID)
	user := createTestUser(t, db, "alice", memberRole.ID)
	svc := newCampaignTestEnv(t, db)

	campaign, err := svc.CreateCampaign(context.Background(), admin.ID, dto.CreateCampaignInput{
		Title: "Trail Week",
		Tasks: []dto.CreateCampaignTaskInput{{Title: "Hike", Points: 40}},
	})
	require.NoError(t, err)

	submission := &model.Submission{
		TaskID:   campaign.Tasks[0].ID,
		UserID:   user.ID,
		ProofURL: "https://cdn.example.com/proof.webp",
		Status:   model.SubmissionStatusPending,
	}
	require.NoError(t, db.Create(submission).Error)

	reviewed, err := svc.ReviewSubmission(context.Background(), admin.ID, submission.ID, dto.ReviewSubmissionInput{
		Approve: true, Note: "looks great",
	})
	require.NoError(t, err)

	assert.Equal(t, model.SubmissionStatusApproved, reviewed.Status)
	require.NotNil(t, reviewed.ReviewerID)
	assert.Equal(t, admin.ID, *reviewed.ReviewerID)
	assert.NotNil(t, reviewed.ReviewedAt)

	var reloaded model.User
	require.NoError(t, db.Where("id = ?", user.ID).First(&reloaded).Error)
	assert.Equal(t, 40, reloaded.XP)

	// Already reviewed; a second pass must be refused.
	_, err = svc.ReviewSubmission(context.Background(), admin.ID, submission.ID, dto.ReviewSubmissionInput{Approve: true})
	assert.Error(t, err)
}

func TestReviewSubmissionRejectAwardsNothing(t *testing.T) {
	db := newTestDB(t)
	adminRole, memberRole := seedTestRoles(t, db)
	admin := createTestUser(t, db, "admin", adminRole.ID)
	user := createTestUser(t, db, "alice", memberRole.ID)
	svc := newCampaignTestEnv(t, db)

	campaign, err := svc.CreateCampaign(context.Background(), admin.ID, dto.CreateCampaignInput{
		Title: "Trail Week",
		Tasks: []dto.CreateCampaignTaskInput{{Title: "Hike", Points: 40}},
	})
	require.NoError(t, err)

	submission := &model.Submission{
		TaskID:   campaign.Tasks[0].ID,
		UserID:   user.ID,
		ProofURL: "https://cdn.example.com/proof.webp",
		Status:   model.SubmissionStatusPending,
	}
	require.NoError(t, db.Create(submission).Error)

	reviewed, err := svc.ReviewSubmission(context.Background(), admin.ID, submission.ID, dto.ReviewSubmissionInput{
		Approve: false, Note: "photo missing",
	})
	require.NoError(t, err)
	assert.Equal(t, model.SubmissionStatusRejected, reviewed.Status)

	var reloaded model.User
	require.NoError(t, db.Where("id = ?", user.ID).First(&reloaded).Error)
	assert.Zero(t, reloaded.XP)
}

func TestDuplicateSubmissionRejectedByUniqueIndex(t *testing.T) {
	db := newTestDB(t)
	adminRole, memberRole := seedTestRoles(t, db)
	admin := createTestUser(t, db, "admin", adminRole.ID)
	user := createTestUser(t, db, "alice", memberRole.ID)
	svc := newCampaignTestEnv(t, db)

	campaign, err := svc.CreateCampaign(context.Background(), admin.ID, dto.CreateCampaignInput{
		Title: "Trail Week",
		Tasks: []dto.CreateCampaignTaskInput{{Title: "Hike", Points: 40}},
	})
	require.NoError(t, err)

	first := &model.Submission{
		TaskID: campaign.Tasks[0].ID, UserID: user.ID,
		ProofURL: "https://cdn.example.com/a.webp", Status: model.SubmissionStatusPending,
	}
	require.NoError(t, db.Create(first).Error)

	second := &model.Submission{
		TaskID: campaign.Tasks[0].ID, UserID: user.ID,
		ProofURL: "https://cdn.example.com/b.webp", Status: model.SubmissionStatusPending,
	}
	assert.ErrorIs(t, db.Create(second).Error, gorm.ErrDuplicatedKey)
}
