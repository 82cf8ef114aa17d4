package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	MaxPhotosPerPost = 10
	MaxPhotoSize     = 5 * 1024 * 1024
	MinBodyLength    = 3
)

type Post struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	AuthorID     uint       `gorm:"not null;index" json:"author_id"`
	Subject      string     `gorm:"not null" json:"subject"`
	Body         string     `gorm:"not null" json:"body"`
	Rating       int        `gorm:"default:0" json:"rating"`
	CreateDate   time.Time  `gorm:"autoCreateTime" json:"create_date"`
	LastLiftedAt *time.Time `gorm:"index" json:"last_lifted_at"`

	Author    User      `gorm:"foreignKey:AuthorID" json:"author"`
	Countries []Country `gorm:"many2many:post_countries" json:"countries"`
	Tags      []Tag     `gorm:"many2many:post_tags" json:"tags"`
	Photos    []Photo   `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"photos"`
	Comments  []Comment `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
	Votes     []Vote    `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
}

// New posts sort as fresh until the lift job touches them.
func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.LastLiftedAt == nil {
		now := time.Now()
		p.LastLiftedAt = &now
	}
	return nil
}
