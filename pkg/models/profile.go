package models

import (
	"time"
)

// Profile is the per-user social state. FollowersCount mirrors the followers
// join table and PostCount is bumped on post create/delete, neither is
// recomputed on read.
type Profile struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	UserID         uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	PostCount      int       `gorm:"default:0" json:"post_count"`
	FollowersCount int       `gorm:"default:0" json:"followers_count"`
	IsCreate       bool      `gorm:"default:true" json:"is_create"`
	IsBlocked      bool      `gorm:"default:false" json:"is_blocked"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	User              User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	CountriesInterest []Country `gorm:"many2many:profile_countries" json:"countries_interest,omitempty"`
	Followers         []User    `gorm:"many2many:profile_followers" json:"-"`
}
