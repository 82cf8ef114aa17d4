package models

import (
	"time"
)

// PostLift is a scheduled re-surfacing window for a post. While the window is
// active cmd/lift refreshes the post's LastLiftedAt, optionally only on the
// listed weekdays (comma separated, Monday=0).
type PostLift struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	PostID     uint      `gorm:"not null;index" json:"post_id"`
	StartDate  time.Time `gorm:"not null" json:"start_date"`
	EndDate    time.Time `gorm:"not null" json:"end_date"`
	DaysOfWeek string    `json:"days_of_week"`

	Post Post `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
}

type PostLiftLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;index" json:"post_id"`
	Message   string    `gorm:"not null" json:"message"`
	CreatedAt time.Time `json:"created_at"`
}
