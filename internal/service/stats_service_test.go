package service

import (
	"context"
	"testing"
	"time"

	"anoa.com/campquest/internal/model"
	"anoa.com/campquest/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(now time.Time, daysAgo int) time.Time {
	return now.Truncate(24 * time.Hour).Add(-time.Duration(daysAgo) * 24 * time.Hour)
}

func TestLoginStreak(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		days []time.Time
		want int
	}{
		{"no logins", nil, 0},
		{"only today", []time.Time{day(now, 0)}, 1},
		{"today and yesterday", []time.Time{day(now, 0), day(now, 1)}, 2},
		{"streak alive from yesterday", []time.Time{day(now, 1), day(now, 2), day(now, 3)}, 3},
		{"last login two days ago", []time.Time{day(now, 2), day(now, 3)}, 0},
		{"gap breaks the streak", []time.Time{day(now, 0), day(now, 1), day(now, 3), day(now, 4)}, 2},
		{"week long", []time.Time{day(now, 0), day(now, 1), day(now, 2), day(now, 3), day(now, 4), day(now, 5), day(now, 6)}, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, loginStreak(tt.days, now))
		})
	}
}

func TestProfileCompleteness(t *testing.T) {
	firstName := "Ada"
	bio := "hello"
	avatar := "https://cdn.example.com/a.webp"

	empty := &model.User{}
	assert.Equal(t, 0, profileCompleteness(empty))

	partial := &model.User{Profile: &model.Profile{FullName: "Ada Lovelace"}}
	assert.Equal(t, 25, profileCompleteness(partial))

	threeQuarters := &model.User{
		Profile: &model.Profile{FullName: "Ada Lovelace", FirstName: &firstName, Bio: &bio},
	}
	assert.Equal(t, 75, profileCompleteness(threeQuarters))

	full := &model.User{
		AvatarURL: &avatar,
		Profile:   &model.Profile{FullName: "Ada Lovelace", FirstName: &firstName, Bio: &bio},
	}
	assert.Equal(t, 100, profileCompleteness(full))

	blankStrings := &model.User{
		AvatarURL: ptr(""),
		Profile:   &model.Profile{FullName: "", FirstName: ptr(""), Bio: ptr("")},
	}
	assert.Equal(t, 0, profileCompleteness(blankStrings))
}

func ptr(s string) *string { return &s }

func TestComputeUserStats(t *testing.T) {
	db := newTestDB(t)
	_, member := seedTestRoles(t, db)
	user := createTestUser(t, db, "alice", member.ID)
	other := createTestUser(t, db, "bob", member.ID)

	svc := NewStatsService(repository.NewStatsRepository(db), repository.NewUserRepository(db))

	for i := 0; i < 2; i++ {
		require.NoError(t, db.Create(&model.BlogPost{
			Title: "post", Slug: Slugify("post"), Content: "body", Published: true, AuthorID: user.ID,
		}).Error)
	}
	post := &model.BlogPost{Title: "other", Slug: Slugify("other"), Content: "body", Published: true, AuthorID: other.ID}
	require.NoError(t, db.Create(post).Error)
	require.NoError(t, db.Create(&model.Comment{BlogPostID: post.ID, UserID: user.ID, Content: "nice"}).Error)

	now := time.Now().UTC()
	require.NoError(t, db.Create(&model.LoginActivity{UserID: user.ID, CreatedAt: now}).Error)
	require.NoError(t, db.Create(&model.LoginActivity{UserID: user.ID, CreatedAt: now.Add(-24 * time.Hour)}).Error)

	stats, err := svc.ComputeUserStats(context.Background(), user.ID)
	require.NoError(t, err)

	assert.Equal(t, 2, stats.BlogPosts)
	assert.Equal(t, 1, stats.Comments)
	assert.Equal(t, 0, stats.Listings)
	assert.Equal(t, 2, stats.Logins)
	assert.Equal(t, 2, stats.LoginStreak)
	assert.Equal(t, 25, stats.ProfileCompleteness)
}

func TestComputeUserStatsCountsOnlyOwnActivity(t *testing.T) {
	db := newTestDB(t)
	_, member := seedTestRoles(t, db)
	user := createTestUser(t, db, "alice", member.ID)
	other := createTestUser(t, db, "bob", member.ID)

	require.NoError(t, db.Create(&model.Listing{
		SellerID: other.ID, Title: "lamp", Price: 10, Status: model.ListingStatusOpen,
	}).Error)

	svc := NewStatsService(repository.NewStatsRepository(db), repository.NewUserRepository(db))

	stats, err := svc.ComputeUserStats(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Listings)

	stats, err = svc.ComputeUserStats(context.Background(), other.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Listings)
}
