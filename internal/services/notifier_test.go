package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pulseline-app/backend/internal/models"
)

func newTestNotifier() (*Notifier, *MockNotificationRepository, *MockUserRepository, *MockPostRepository) {
	notifRepo := new(MockNotificationRepository)
	userRepo := new(MockUserRepository)
	postRepo := new(MockPostRepository)
	return NewNotifier(notifRepo, userRepo, postRepo), notifRepo, userRepo, postRepo
}

func TestOnLikeCreatesNotification(t *testing.T) {
	notifier, notifRepo, userRepo, postRepo := newTestNotifier()

	userRepo.On("GetUserByID", uint(2)).Return(&models.User{DisplayName: "Bob"}, nil)
	postRepo.On("GetPostByID", uint(10)).Return(&models.Post{Title: "Hello World"}, nil)
	notifRepo.On("CreateNotification", mock.AnythingOfType("*models.Notification")).Return(nil)

	notification := notifier.OnLike(1, 2, 10)

	require.NotNil(t, notification)
	assert.Equal(t, models.NotificationTypeLike, notification.Type)
	assert.Equal(t, uint(1), notification.RecipientID)
	assert.Equal(t, uint(2), notification.ActorID)
	require.NotNil(t, notification.PostID)
	assert.Equal(t, uint(10), *notification.PostID)
	assert.Equal(t, "Bob liked your post: Hello World", notification.Message)
	notifRepo.AssertExpectations(t)
}

func TestOnLikeSuppressesSelfNotification(t *testing.T) {
	notifier, notifRepo, userRepo, _ := newTestNotifier()

	notification := notifier.OnLike(5, 5, 10)

	assert.Nil(t, notification)
	userRepo.AssertNotCalled(t, "GetUserByID", mock.Anything)
	notifRepo.AssertNotCalled(t, "CreateNotification", mock.Anything)
}

func TestOnLikeSwallowsPersistFailure(t *testing.T) {
	notifier, notifRepo, userRepo, postRepo := newTestNotifier()

	userRepo.On("GetUserByID", uint(2)).Return(&models.User{DisplayName: "Bob"}, nil)
	postRepo.On("GetPostByID", uint(10)).Return(&models.Post{Title: "Hello"}, nil)
	notifRepo.On("CreateNotification", mock.Anything).Return(errors.New("db down"))

	assert.Nil(t, notifier.OnLike(1, 2, 10))
}

func TestOnLikeUnknownActor(t *testing.T) {
	notifier, notifRepo, userRepo, _ := newTestNotifier()

	userRepo.On("GetUserByID", uint(2)).Return(nil, errors.New("not found"))

	assert.Nil(t, notifier.OnLike(1, 2, 10))
	notifRepo.AssertNotCalled(t, "CreateNotification", mock.Anything)
}

func TestOnCommentCreatesNotification(t *testing.T) {
	notifier, notifRepo, userRepo, postRepo := newTestNotifier()

	userRepo.On("GetUserByID", uint(3)).Return(&models.User{DisplayName: "Carol"}, nil)
	postRepo.On("GetPostByID", uint(7)).Return(&models.Post{Title: ""}, nil)
	notifRepo.On("CreateNotification", mock.Anything).Return(nil)

	notification := notifier.OnComment(1, 3, 7)

	require.NotNil(t, notification)
	assert.Equal(t, models.NotificationTypeComment, notification.Type)
	assert.Equal(t, "Carol commented on your post", notification.Message)
}

func TestOnReplyNotifiesParentAuthor(t *testing.T) {
	notifier, notifRepo, userRepo, _ := newTestNotifier()

	userRepo.On("GetUserByID", uint(4)).Return(&models.User{DisplayName: "Dave"}, nil)
	notifRepo.On("CreateNotification", mock.Anything).Return(nil)

	notification := notifier.OnReply(2, 4, 7)

	require.NotNil(t, notification)
	assert.Equal(t, models.NotificationTypeReply, notification.Type)
	assert.Equal(t, uint(2), notification.RecipientID)
	assert.Equal(t, "Dave replied to your comment", notification.Message)
}

func TestOnFollowCreatesNotificationWithoutPost(t *testing.T) {
	notifier, notifRepo, userRepo, _ := newTestNotifier()

	userRepo.On("GetUserByID", uint(9)).Return(&models.User{DisplayName: "Eve"}, nil)
	notifRepo.On("CreateNotification", mock.Anything).Return(nil)

	notification := notifier.OnFollow(1, 9)

	require.NotNil(t, notification)
	assert.Equal(t, models.NotificationTypeFollow, notification.Type)
	assert.Nil(t, notification.PostID)
	assert.Equal(t, "Eve started following you", notification.Message)
}

func TestOnFollowSuppressesSelfFollow(t *testing.T) {
	notifier, notifRepo, _, _ := newTestNotifier()

	assert.Nil(t, notifier.OnFollow(3, 3))
	notifRepo.AssertNotCalled(t, "CreateNotification", mock.Anything)
}
