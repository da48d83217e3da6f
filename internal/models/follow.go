package models

import "time"

// Follow is a directed edge in the social graph: FollowerID follows FolloweeID.
// Both directions of the relationship (followers of X, users X follows) are
// derived from this single table by indexed lookup, so there is no second copy
// to drift out of sync. The composite unique index makes a duplicate follow a
// no-op at the storage layer even under concurrent requests.
type Follow struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	FollowerID uint      `gorm:"not null;index;uniqueIndex:idx_follower_followee" json:"follower_id"`
	FolloweeID uint      `gorm:"not null;index;uniqueIndex:idx_follower_followee" json:"followee_id"`
	CreatedAt  time.Time `json:"created_at"`

	// Relationships
	Follower User `gorm:"foreignKey:FollowerID" json:"follower,omitempty"`
	Followee User `gorm:"foreignKey:FolloweeID" json:"followee,omitempty"`
}

// TableName specifies the table name for GORM
func (Follow) TableName() string {
	return "follows"
}
