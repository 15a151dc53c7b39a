package service

import (
	"context"
	"testing"

	"anoa.com/campquest/internal/model"
	"anoa.com/campquest/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRankTitle(t *testing.T) {
	tests := []struct {
		xp   int
		want string
	}{
		{0, "Newcomer"},
		{99, "Newcomer"},
		{100, "Member"},
		{599, "Member"},
		{600, "Contributor"},
		{3000, "Notable"},
		{8000, "Veteran"},
		{19999, "Veteran"},
		{20000, "Legend"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, RankTitle(tt.xp), "xp=%d", tt.xp)
	}
}

func TestGetLeaderboardOrdersByXP(t *testing.T) {
	db := newTestDB(t)
	_, member := seedTestRoles(t, db)

	alice := createTestUser(t, db, "alice", member.ID)
	bob := createTestUser(t, db, "bob", member.ID)
	carol := createTestUser(t, db, "carol", member.ID)

	require.NoError(t, db.Model(&model.User{}).Where("id = ?", alice.ID).UpdateColumn("xp", 700).Error)
	require.NoError(t, db.Model(&model.User{}).Where("id = ?", bob.ID).UpdateColumn("xp", 50).Error)
	require.NoError(t, db.Model(&model.User{}).Where("id = ?", carol.ID).UpdateColumn("xp", 8200).Error)

	svc := NewLeaderboardService(repository.NewUserRepository(db))

	entries, err := svc.GetLeaderboard(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, "carol", entries[0].Username)
	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, "Veteran", entries[0].RankTitle)
	assert.Equal(t, "alice", entries[1].Username)
	assert.Equal(t, "Contributor", entries[1].RankTitle)
	assert.Equal(t, "bob", entries[2].Username)
	assert.Equal(t, "Newcomer", entries[2].RankTitle)
}

func TestGetRank(t *testing.T) {
	db := newTestDB(t)
	_, member := seedTestRoles(t, db)

	alice := createTestUser(t, db, "alice", member.ID)
	bob := createTestUser(t, db, "bob", member.ID)

	require.NoError(t, db.Model(&model.User{}).Where("id = ?", alice.ID).UpdateColumn("xp", 700).Error)
	require.NoError(t, db.Model(&model.User{}).Where("id = ?", bob.ID).UpdateColumn("xp", 50).Error)

	svc := NewLeaderboardService(repository.NewUserRepository(db))

	entry, err := svc.GetRank(context.Background(), bob.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, entry.Rank)
	assert.Equal(t, 50, entry.XP)
}
