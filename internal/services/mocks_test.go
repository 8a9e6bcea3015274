package services

import (
	"github.com/stretchr/testify/mock"

	"github.com/pulseline-app/backend/internal/models"
	"github.com/pulseline-app/backend/internal/repositories"
)

// Mock implementations of the repository interfaces used by the services.

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetUserByID(id uint) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetUserByUsername(username string) (*models.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) UpdateUser(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) SearchUsers(query string, page, limit int) ([]models.User, int64, error) {
	args := m.Called(query, page, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.User), args.Get(1).(int64), args.Error(2)
}

type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) CreatePost(post *models.Post) error {
	args := m.Called(post)
	return args.Error(0)
}

func (m *MockPostRepository) GetPostByID(id uint) (*models.Post, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostRepository) UpdatePost(post *models.Post) error {
	args := m.Called(post)
	return args.Error(0)
}

func (m *MockPostRepository) ReplaceTags(post *models.Post, tags []models.Tag) error {
	args := m.Called(post, tags)
	return args.Error(0)
}

func (m *MockPostRepository) DeletePost(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockPostRepository) ListPosts(f repositories.PostFilters) ([]models.Post, int64, error) {
	args := m.Called(f)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Post), args.Get(1).(int64), args.Error(2)
}

func (m *MockPostRepository) IncrementViewCount(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockPostRepository) GetRelatedPosts(postID uint, tagIDs []uint, limit int) ([]models.Post, error) {
	args := m.Called(postID, tagIDs, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *MockPostRepository) GetLikeCounts(postIDs []uint) (map[uint]int64, error) {
	args := m.Called(postIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uint]int64), args.Error(1)
}

func (m *MockPostRepository) GetCommentCounts(postIDs []uint) (map[uint]int64, error) {
	args := m.Called(postIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uint]int64), args.Error(1)
}

func (m *MockPostRepository) SearchPosts(query string, page, limit int) ([]models.Post, int64, error) {
	args := m.Called(query, page, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Post), args.Get(1).(int64), args.Error(2)
}

func (m *MockPostRepository) SuggestPosts(query string, limit int) ([]models.Post, error) {
	args := m.Called(query, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Post), args.Error(1)
}

type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) CreateNotification(notification *models.Notification) error {
	args := m.Called(notification)
	return args.Error(0)
}

func (m *MockNotificationRepository) GetByRecipientID(recipientID uint, page, limit int, isRead *bool) ([]models.Notification, int64, error) {
	args := m.Called(recipientID, page, limit, isRead)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Notification), args.Get(1).(int64), args.Error(2)
}

func (m *MockNotificationRepository) GetUnreadCount(recipientID uint) (int64, error) {
	args := m.Called(recipientID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationRepository) MarkAsRead(notificationID, recipientID uint) error {
	args := m.Called(notificationID, recipientID)
	return args.Error(0)
}

func (m *MockNotificationRepository) MarkAllAsRead(recipientID uint) error {
	args := m.Called(recipientID)
	return args.Error(0)
}

func (m *MockNotificationRepository) Delete(notificationID, recipientID uint) error {
	args := m.Called(notificationID, recipientID)
	return args.Error(0)
}

func (m *MockNotificationRepository) DeleteAll(recipientID uint) error {
	args := m.Called(recipientID)
	return args.Error(0)
}
