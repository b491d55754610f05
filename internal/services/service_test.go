package services

import (
	"testing"
	"time"

	"tuiter/internal/db"
	"tuiter/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testTimeout = 2 * time.Second

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))
	return gdb
}

func seedUser(t *testing.T, gdb *gorm.DB, username string) models.User {
	t.Helper()
	user := models.User{
		Username: username,
		Email:    username + "@tuiter.test",
		Password: "x",
	}
	require.NoError(t, gdb.Create(&user).Error)
	return user
}

func seedTuit(t *testing.T, gdb *gorm.DB, userID uint, text string) models.Tuit {
	t.Helper()
	tuit := models.Tuit{UserID: userID, Tuit: text}
	require.NoError(t, gdb.Create(&tuit).Error)
	return tuit
}

func seedPoll(t *testing.T, gdb *gorm.DB, userID uint, text string, options ...string) (models.Tuit, []models.PollOption) {
	t.Helper()
	poll := models.Tuit{UserID: userID, Tuit: text, IsPoll: true, IsPollOpen: true}
	require.NoError(t, gdb.Create(&poll).Error)

	created := make([]models.PollOption, 0, len(options))
	for _, text := range options {
		option := models.PollOption{TuitID: poll.ID, OptionText: text}
		require.NoError(t, gdb.Create(&option).Error)
		created = append(created, option)
	}
	return poll, created
}

func countRows(t *testing.T, gdb *gorm.DB, model interface{}, query string, args ...interface{}) int64 {
	t.Helper()
	var count int64
	require.NoError(t, gdb.Model(model).Where(query, args...).Count(&count).Error)
	return count
}
