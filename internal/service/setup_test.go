package service

import (
	"fmt"
	"sync/atomic"
	"testing"

	"anoa.com/campquest/internal/model"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var testDBSeq atomic.Int64

// newTestDB opens a fresh in-memory database with the same error
// translation the production connection uses, so unique violations surface
// as gorm.ErrDuplicatedKey here too.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", testDBSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.Role{},
		&model.User{},
		&model.Profile{},
		&model.LoginActivity{},
		&model.Achievement{},
		&model.UserAchievement{},
		&model.Campaign{},
		&model.CampaignTask{},
		&model.Submission{},
		&model.BlogPost{},
		&model.Comment{},
		&model.Listing{},
		&model.Offer{},
		&model.Review{},
		&model.Conversation{},
		&model.Message{},
		&model.SupportTicket{},
		&model.TicketReply{},
		&model.SiteSetting{},
		&model.Notification{},
	))

	return db
}

func seedTestRoles(t *testing.T, db *gorm.DB) (admin, member model.Role) {
	t.Helper()

	admin = model.Role{Name: "admin", Description: "Administrator"}
	require.NoError(t, db.Create(&admin).Error)
	member = model.Role{Name: "member", Description: "Member"}
	require.NoError(t, db.Create(&member).Error)
	return admin, member
}

func createTestUser(t *testing.T, db *gorm.DB, username string, roleID uint) *model.User {
	t.Helper()

	user := &model.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
		RoleID:       &roleID,
	}
	require.NoError(t, db.Create(user).Error)

	profile := &model.Profile{UserID: user.ID, FullName: username}
	require.NoError(t, db.Create(profile).Error)

	return user
}
