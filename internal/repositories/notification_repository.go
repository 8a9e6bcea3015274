package repositories

import (
	"gorm.io/gorm"

	"github.com/pulseline-app/backend/internal/apperrors"
	"github.com/pulseline-app/backend/internal/models"
)

// NotificationRepository defines the interface for notification operations
type NotificationRepository interface {
	CreateNotification(notification *models.Notification) error
	GetByRecipientID(recipientID uint, page, limit int, isRead *bool) ([]models.Notification, int64, error)
	GetUnreadCount(recipientID uint) (int64, error)
	MarkAsRead(notificationID, recipientID uint) error
	MarkAllAsRead(recipientID uint) error
	Delete(notificationID, recipientID uint) error
	DeleteAll(recipientID uint) error
}

type postgresNotificationRepository struct {
	db *gorm.DB
}

func NewPostgresNotificationRepository(db *gorm.DB) NotificationRepository {
	return &postgresNotificationRepository{db: db}
}

func (r *postgresNotificationRepository) CreateNotification(notification *models.Notification) error {
	return r.db.Create(notification).Error
}

// GetByRecipientID returns the recipient's notifications newest first,
// optionally filtered by read state
func (r *postgresNotificationRepository) GetByRecipientID(recipientID uint, page, limit int, isRead *bool) ([]models.Notification, int64, error) {
	match := func() *gorm.DB {
		q := r.db.Model(&models.Notification{}).Where("recipient_id = ?", recipientID)
		if isRead != nil {
			q = q.Where("is_read = ?", *isRead)
		}
		return q
	}

	var total int64
	if err := match().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var notifications []models.Notification
	offset := (page - 1) * limit
	err := match().Order("created_at DESC").Offset(offset).Limit(limit).Find(&notifications).Error
	return notifications, total, err
}

func (r *postgresNotificationRepository) GetUnreadCount(recipientID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Notification{}).Where("recipient_id = ? AND is_read = ?", recipientID, false).Count(&count).Error
	return count, err
}

// MarkAsRead flips the read flag; scoped to the recipient so a notification
// belonging to someone else is indistinguishable from a missing one
func (r *postgresNotificationRepository) MarkAsRead(notificationID, recipientID uint) error {
	res := r.db.Model(&models.Notification{}).
		Where("id = ? AND recipient_id = ?", notificationID, recipientID).
		Update("is_read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("notification not found")
	}
	return nil
}

func (r *postgresNotificationRepository) MarkAllAsRead(recipientID uint) error {
	return r.db.Model(&models.Notification{}).
		Where("recipient_id = ? AND is_read = ?", recipientID, false).
		Update("is_read", true).Error
}

// Delete removes one notification; recipient-scoped like MarkAsRead
func (r *postgresNotificationRepository) Delete(notificationID, recipientID uint) error {
	res := r.db.Where("id = ? AND recipient_id = ?", notificationID, recipientID).Delete(&models.Notification{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("notification not found")
	}
	return nil
}

func (r *postgresNotificationRepository) DeleteAll(recipientID uint) error {
	return r.db.Where("recipient_id = ?", recipientID).Delete(&models.Notification{}).Error
}
