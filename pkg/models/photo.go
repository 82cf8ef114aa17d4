package models

import (
	"time"
)

type Photo struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;index" json:"post_id"`
	URL       string    `gorm:"not null" json:"url"`
	Position  int       `gorm:"default:0;index" json:"position"`
	SizeBytes int64     `json:"size_bytes"`
	CreatedAt time.Time `json:"created_at"`
}
