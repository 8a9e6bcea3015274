package models

// Tag labels posts; created lazily when first attached to a post
type Tag struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"size:50"`
	Slug string `json:"slug" gorm:"size:60;uniqueIndex"`
}
