package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pulseline-app/backend/internal/apperrors"
	"github.com/pulseline-app/backend/internal/models"
)

func TestCreateLikeDuplicateConflicts(t *testing.T) {
	db := openTestDB(t)
	repo := NewPostgresLikeRepository(db)

	author := createTestUser(t, db, "author")
	fan := createTestUser(t, db, "fan")
	post := createTestPost(t, db, author.ID, "liked post", models.PostStatusPublished)

	require.NoError(t, repo.CreateLike(&models.Like{PostID: post.ID, UserID: fan.ID}))

	err := repo.CreateLike(&models.Like{PostID: post.ID, UserID: fan.ID})
	assert.True(t, apperrors.IsConflict(err))

	count, err := repo.GetLikesCountByPostID(post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestDeleteLike(t *testing.T) {
	db := openTestDB(t)
	repo := NewPostgresLikeRepository(db)

	author := createTestUser(t, db, "author")
	fan := createTestUser(t, db, "fan")
	post := createTestPost(t, db, author.ID, "liked post", models.PostStatusPublished)

	require.NoError(t, repo.CreateLike(&models.Like{PostID: post.ID, UserID: fan.ID}))
	require.NoError(t, repo.DeleteLike(post.ID, fan.ID))

	err := repo.DeleteLike(post.ID, fan.ID)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestGetLikedPostIDs(t *testing.T) {
	db := openTestDB(t)
	repo := NewPostgresLikeRepository(db)

	author := createTestUser(t, db, "author")
	fan := createTestUser(t, db, "fan")
	p1 := createTestPost(t, db, author.ID, "p1", models.PostStatusPublished)
	p2 := createTestPost(t, db, author.ID, "p2", models.PostStatusPublished)

	require.NoError(t, repo.CreateLike(&models.Like{PostID: p1.ID, UserID: fan.ID}))

	liked, err := repo.GetLikedPostIDs(fan.ID, []uint{p1.ID, p2.ID})
	require.NoError(t, err)
	assert.True(t, liked[p1.ID])
	assert.False(t, liked[p2.ID])
}

func TestSavePostDuplicateConflicts(t *testing.T) {
	db := openTestDB(t)
	repo := NewPostgresSavedPostRepository(db)

	author := createTestUser(t, db, "author")
	reader := createTestUser(t, db, "reader")
	post := createTestPost(t, db, author.ID, "saved post", models.PostStatusPublished)

	require.NoError(t, repo.SavePost(&models.SavedPost{UserID: reader.ID, PostID: post.ID}))

	err := repo.SavePost(&models.SavedPost{UserID: reader.ID, PostID: post.ID})
	assert.True(t, apperrors.IsConflict(err))
}

func TestFindOrCreateTagReusesSlug(t *testing.T) {
	db := openTestDB(t)
	repo := NewPostgresTagRepository(db)

	first, err := repo.FindOrCreate("Go Concurrency")
	require.NoError(t, err)
	assert.Equal(t, "go-concurrency", first.Slug)

	// Same normalized slug resolves to the existing tag.
	second, err := repo.FindOrCreate("go   concurrency!")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	_, err = repo.FindOrCreate("!!!")
	assert.Error(t, err)
}
