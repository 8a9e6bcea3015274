package services

import (
	"log"

	"github.com/pulseline-app/backend/internal/models"
	"github.com/pulseline-app/backend/internal/repositories"
)

// Notifier creates notification records in response to likes, comments,
// replies and follows. Handlers call its triggers right after the primary
// write commits; dispatch is best-effort, so a failure here is logged and
// swallowed and never rolls back or fails the triggering action.
//
// Repeated identical events (the same user liking and unliking a post)
// intentionally produce one row each: notifications are a full activity
// log, not a deduplicated digest.
type Notifier struct {
	notificationRepository repositories.NotificationRepository
	userRepository         repositories.UserRepository
	postRepository         repositories.PostRepository
}

// NewNotifier creates a new Notifier
func NewNotifier(
	notifRepo repositories.NotificationRepository,
	userRepo repositories.UserRepository,
	postRepo repositories.PostRepository,
) *Notifier {
	return &Notifier{
		notificationRepository: notifRepo,
		userRepository:         userRepo,
		postRepository:         postRepo,
	}
}

// OnLike notifies a post's author that likerID liked their post.
// Returns the created notification, or nil when suppressed or failed.
func (n *Notifier) OnLike(postAuthorID, likerID, postID uint) *models.Notification {
	if postAuthorID == likerID {
		return nil
	}
	actor := n.resolveActor(likerID)
	if actor == nil {
		return nil
	}
	return n.persist(&models.Notification{
		Type:        models.NotificationTypeLike,
		ActorID:     likerID,
		RecipientID: postAuthorID,
		PostID:      &postID,
		Message:     actor.DisplayName + " liked your post" + n.postTitleSuffix(postID),
	})
}

// OnComment notifies a post's author about a new top-level comment.
func (n *Notifier) OnComment(postAuthorID, commenterID, postID uint) *models.Notification {
	if postAuthorID == commenterID {
		return nil
	}
	actor := n.resolveActor(commenterID)
	if actor == nil {
		return nil
	}
	return n.persist(&models.Notification{
		Type:        models.NotificationTypeComment,
		ActorID:     commenterID,
		RecipientID: postAuthorID,
		PostID:      &postID,
		Message:     actor.DisplayName + " commented on your post" + n.postTitleSuffix(postID),
	})
}

// OnReply notifies a comment's author about a reply to their comment.
func (n *Notifier) OnReply(parentCommentAuthorID, replierID, postID uint) *models.Notification {
	if parentCommentAuthorID == replierID {
		return nil
	}
	actor := n.resolveActor(replierID)
	if actor == nil {
		return nil
	}
	return n.persist(&models.Notification{
		Type:        models.NotificationTypeReply,
		ActorID:     replierID,
		RecipientID: parentCommentAuthorID,
		PostID:      &postID,
		Message:     actor.DisplayName + " replied to your comment",
	})
}

// OnFollow notifies a user that followerID started following them.
func (n *Notifier) OnFollow(followingID, followerID uint) *models.Notification {
	if followingID == followerID {
		return nil
	}
	actor := n.resolveActor(followerID)
	if actor == nil {
		return nil
	}
	return n.persist(&models.Notification{
		Type:        models.NotificationTypeFollow,
		ActorID:     followerID,
		RecipientID: followingID,
		Message:     actor.DisplayName + " started following you",
	})
}

func (n *Notifier) resolveActor(actorID uint) *models.User {
	actor, err := n.userRepository.GetUserByID(actorID)
	if err != nil {
		log.Printf("notifier: failed to resolve actor %d: %v", actorID, err)
		return nil
	}
	return actor
}

func (n *Notifier) postTitleSuffix(postID uint) string {
	post, err := n.postRepository.GetPostByID(postID)
	if err != nil || post.Title == "" {
		return ""
	}
	return ": " + post.Title
}

func (n *Notifier) persist(notification *models.Notification) *models.Notification {
	if err := n.notificationRepository.CreateNotification(notification); err != nil {
		log.Printf("notifier: failed to create %s notification for user %d: %v",
			notification.Type, notification.RecipientID, err)
		return nil
	}
	return notification
}
