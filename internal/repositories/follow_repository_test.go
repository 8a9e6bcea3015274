package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pulseline-app/backend/internal/apperrors"
	"github.com/pulseline-app/backend/internal/models"
)

func TestCreateFollowAndStats(t *testing.T) {
	db := openTestDB(t)
	repo := NewPostgresFollowRepository(db)

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	err := repo.CreateFollow(&models.Follow{FollowerID: alice.ID, FollowingID: bob.ID})
	require.NoError(t, err)

	following, err := repo.IsFollowing(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, following)

	stats, err := repo.GetStats(bob.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.FollowersCount)
	assert.Equal(t, int64(0), stats.FollowingCount)
}

func TestCreateFollowDuplicateConflicts(t *testing.T) {
	db := openTestDB(t)
	repo := NewPostgresFollowRepository(db)

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	require.NoError(t, repo.CreateFollow(&models.Follow{FollowerID: alice.ID, FollowingID: bob.ID}))

	// The unique index rejects the second edge; exactly one survives.
	err := repo.CreateFollow(&models.Follow{FollowerID: alice.ID, FollowingID: bob.ID})
	assert.True(t, apperrors.IsConflict(err))

	stats, err := repo.GetStats(bob.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.FollowersCount)
}

func TestDeleteFollow(t *testing.T) {
	db := openTestDB(t)
	repo := NewPostgresFollowRepository(db)

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	require.NoError(t, repo.CreateFollow(&models.Follow{FollowerID: alice.ID, FollowingID: bob.ID}))
	require.NoError(t, repo.DeleteFollow(alice.ID, bob.ID))

	following, err := repo.IsFollowing(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, following)

	// Unfollowing a non-existent edge is a not-found, not a silent no-op.
	err = repo.DeleteFollow(alice.ID, bob.ID)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestGetFollowersCarriesProfileAndEdgeTime(t *testing.T) {
	db := openTestDB(t)
	repo := NewPostgresFollowRepository(db)

	target := createTestUser(t, db, "target")
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	require.NoError(t, repo.CreateFollow(&models.Follow{FollowerID: alice.ID, FollowingID: target.ID}))
	require.NoError(t, repo.CreateFollow(&models.Follow{FollowerID: bob.ID, FollowingID: target.ID}))

	entries, total, err := repo.GetFollowers(target.ID, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, entries, 2)

	usernames := []string{entries[0].User.Username, entries[1].User.Username}
	assert.ElementsMatch(t, []string{"alice", "bob"}, usernames)
	for _, e := range entries {
		assert.False(t, e.FollowedAt.IsZero())
	}
}

func TestGetFollowersPagination(t *testing.T) {
	db := openTestDB(t)
	repo := NewPostgresFollowRepository(db)

	target := createTestUser(t, db, "target")
	for _, name := range []string{"u1", "u2", "u3"} {
		u := createTestUser(t, db, name)
		require.NoError(t, repo.CreateFollow(&models.Follow{FollowerID: u.ID, FollowingID: target.ID}))
	}

	entries, total, err := repo.GetFollowers(target.ID, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, entries, 1)

	// A page past the end is empty, not an error.
	entries, total, err = repo.GetFollowers(target.ID, 5, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Empty(t, entries)
}

func TestGetFollowingIDs(t *testing.T) {
	db := openTestDB(t)
	repo := NewPostgresFollowRepository(db)

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	carol := createTestUser(t, db, "carol")

	require.NoError(t, repo.CreateFollow(&models.Follow{FollowerID: alice.ID, FollowingID: bob.ID}))
	require.NoError(t, repo.CreateFollow(&models.Follow{FollowerID: alice.ID, FollowingID: carol.ID}))

	ids, err := repo.GetFollowingIDs(alice.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{bob.ID, carol.ID}, ids)
}
