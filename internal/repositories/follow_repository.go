package repositories

import (
	"gorm.io/gorm"

	"github.com/pulseline-app/backend/internal/apperrors"
	"github.com/pulseline-app/backend/internal/models"
)

// FollowRepository defines the interface for follow graph operations
type FollowRepository interface {
	CreateFollow(follow *models.Follow) error
	DeleteFollow(followerID, followingID uint) error
	IsFollowing(followerID, followingID uint) (bool, error)
	GetFollowers(userID uint, page, limit int) ([]models.FollowEntry, int64, error)
	GetFollowing(userID uint, page, limit int) ([]models.FollowEntry, int64, error)
	GetStats(userID uint) (*models.FollowStats, error)
	GetFollowingIDs(userID uint) ([]uint, error)
}

// PostgresFollowRepository implements FollowRepository for PostgreSQL
type PostgresFollowRepository struct {
	db *gorm.DB
}

// NewPostgresFollowRepository creates a new PostgresFollowRepository
func NewPostgresFollowRepository(db *gorm.DB) *PostgresFollowRepository {
	return &PostgresFollowRepository{db: db}
}

// CreateFollow inserts a follow edge. The composite unique index on
// (follower_id, following_id) resolves concurrent duplicate follows: the
// loser of the race observes a conflict here rather than a second edge.
func (r *PostgresFollowRepository) CreateFollow(follow *models.Follow) error {
	if err := r.db.Create(follow).Error; err != nil {
		if isUniqueViolation(err) {
			return apperrors.Conflict("already following this user")
		}
		return err
	}
	return nil
}

func (r *PostgresFollowRepository) DeleteFollow(followerID, followingID uint) error {
	res := r.db.Where("follower_id = ? AND following_id = ?", followerID, followingID).Delete(&models.Follow{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("follow relationship not found")
	}
	return nil
}

func (r *PostgresFollowRepository) IsFollowing(followerID, followingID uint) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Follow{}).Where("follower_id = ? AND following_id = ?", followerID, followingID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetFollowers lists the users following userID, newest edge first
func (r *PostgresFollowRepository) GetFollowers(userID uint, page, limit int) ([]models.FollowEntry, int64, error) {
	var total int64
	if err := r.db.Model(&models.Follow{}).Where("following_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var follows []models.Follow
	offset := (page - 1) * limit
	if err := r.db.Where("following_id = ?", userID).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&follows).Error; err != nil {
		return nil, 0, err
	}

	entries, err := r.buildEntries(follows, func(f models.Follow) uint { return f.FollowerID })
	return entries, total, err
}

// GetFollowing lists the users userID follows, newest edge first
func (r *PostgresFollowRepository) GetFollowing(userID uint, page, limit int) ([]models.FollowEntry, int64, error) {
	var total int64
	if err := r.db.Model(&models.Follow{}).Where("follower_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var follows []models.Follow
	offset := (page - 1) * limit
	if err := r.db.Where("follower_id = ?", userID).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&follows).Error; err != nil {
		return nil, 0, err
	}

	entries, err := r.buildEntries(follows, func(f models.Follow) uint { return f.FollowingID })
	return entries, total, err
}

// buildEntries attaches the counterpart user's public profile to each edge
// with a single IN query
func (r *PostgresFollowRepository) buildEntries(follows []models.Follow, counterpart func(models.Follow) uint) ([]models.FollowEntry, error) {
	ids := make([]uint, len(follows))
	for i, f := range follows {
		ids[i] = counterpart(f)
	}

	userMap := make(map[uint]models.UserCompact, len(ids))
	if len(ids) > 0 {
		var users []models.User
		if err := r.db.Where("id IN ?", ids).Find(&users).Error; err != nil {
			return nil, err
		}
		for _, u := range users {
			userMap[u.ID] = u.ToCompact()
		}
	}

	entries := make([]models.FollowEntry, len(follows))
	for i, f := range follows {
		entries[i] = models.FollowEntry{
			User:       userMap[counterpart(f)],
			FollowedAt: f.CreatedAt,
		}
	}
	return entries, nil
}

// GetStats returns follower/following counts as two COUNT queries; the
// listings are never materialized for this.
func (r *PostgresFollowRepository) GetStats(userID uint) (*models.FollowStats, error) {
	var stats models.FollowStats
	if err := r.db.Model(&models.Follow{}).Where("following_id = ?", userID).Count(&stats.FollowersCount).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&models.Follow{}).Where("follower_id = ?", userID).Count(&stats.FollowingCount).Error; err != nil {
		return nil, err
	}
	return &stats, nil
}

func (r *PostgresFollowRepository) GetFollowingIDs(userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&models.Follow{}).Where("follower_id = ?", userID).Pluck("following_id", &ids).Error
	return ids, err
}
