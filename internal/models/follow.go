package models

import "time"

// Follow represents a directed follow relationship between two users
type Follow struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	FollowerID  uint      `json:"follower_id" gorm:"index;uniqueIndex:idx_follower_following"`
	FollowingID uint      `json:"following_id" gorm:"index;uniqueIndex:idx_follower_following"`
	CreatedAt   time.Time `json:"created_at"`
}

// FollowEntry is one row of a followers/following listing: the counterpart
// user plus the edge timestamp.
type FollowEntry struct {
	User       UserCompact `json:"user"`
	FollowedAt time.Time   `json:"followed_at"`
}

// FollowStats holds the two independent edge counts for a user.
type FollowStats struct {
	FollowersCount int64 `json:"followers_count"`
	FollowingCount int64 `json:"following_count"`
}
