package repositories

import (
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/pulseline-app/backend/internal/models"
)

// openTestDB returns an isolated in-memory database with the full schema,
// including the unique indexes the engine relies on for race resolution.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Follow{},
		&models.Post{},
		&models.Tag{},
		&models.Like{},
		&models.SavedPost{},
		&models.Comment{},
		&models.Notification{},
	))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{
		Username:    username,
		DisplayName: username,
		Email:       fmt.Sprintf("%s@example.com", username),
		Role:        models.RoleUser,
		IsActive:    true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestPost(t *testing.T, db *gorm.DB, authorID uint, title, status string) *models.Post {
	t.Helper()
	post := &models.Post{
		AuthorID: authorID,
		Title:    title,
		Body:     "body of " + title,
		Status:   status,
	}
	require.NoError(t, db.Create(post).Error)
	return post
}
