package models

import "time"

// SavedPost represents a post bookmarked by a user.
// The combination of UserID and PostID must be unique.
type SavedPost struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index;uniqueIndex:idx_save_user_post" json:"user_id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_save_user_post" json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM
func (SavedPost) TableName() string {
	return "saved_posts"
}
