package repositories

import (
	"gorm.io/gorm"

	"github.com/pulseline-app/backend/internal/apperrors"
	"github.com/pulseline-app/backend/internal/models"
)

// SavedPostRepository defines the interface for saved-post operations
type SavedPostRepository interface {
	SavePost(saved *models.SavedPost) error
	UnsavePost(userID, postID uint) error
	GetSavedPostIDs(userID uint, postIDs []uint) (map[uint]bool, error)
	ListSaved(userID uint, page, limit int) ([]models.SavedPost, int64, error)
}

// PostgresSavedPostRepository implements SavedPostRepository for PostgreSQL
type PostgresSavedPostRepository struct {
	db *gorm.DB
}

// NewPostgresSavedPostRepository creates a new PostgresSavedPostRepository
func NewPostgresSavedPostRepository(db *gorm.DB) *PostgresSavedPostRepository {
	return &PostgresSavedPostRepository{db: db}
}

// SavePost bookmarks a post; the composite unique index turns a duplicate
// save into a conflict
func (r *PostgresSavedPostRepository) SavePost(saved *models.SavedPost) error {
	if err := r.db.Create(saved).Error; err != nil {
		if isUniqueViolation(err) {
			return apperrors.Conflict("post already saved")
		}
		return err
	}
	return nil
}

func (r *PostgresSavedPostRepository) UnsavePost(userID, postID uint) error {
	res := r.db.Where("user_id = ? AND post_id = ?", userID, postID).Delete(&models.SavedPost{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("saved post not found")
	}
	return nil
}

// GetSavedPostIDs returns which of the given posts the user has saved,
// as a set, in one query
func (r *PostgresSavedPostRepository) GetSavedPostIDs(userID uint, postIDs []uint) (map[uint]bool, error) {
	saved := make(map[uint]bool, len(postIDs))
	if len(postIDs) == 0 {
		return saved, nil
	}

	var ids []uint
	err := r.db.Model(&models.SavedPost{}).
		Where("user_id = ? AND post_id IN ?", userID, postIDs).
		Pluck("post_id", &ids).Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		saved[id] = true
	}
	return saved, nil
}

// ListSaved returns the user's bookmarks, newest first
func (r *PostgresSavedPostRepository) ListSaved(userID uint, page, limit int) ([]models.SavedPost, int64, error) {
	var total int64
	if err := r.db.Model(&models.SavedPost{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var saved []models.SavedPost
	offset := (page - 1) * limit
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&saved).Error
	return saved, total, err
}
