package models

import (
	"time"
)

type VoteAction string

const (
	// VoteNone is the neutral state of a freshly created vote row.
	VoteNone VoteAction = ""
	VoteUp   VoteAction = "up"
	VoteDown VoteAction = "down"
)

// ApplyVoteTransition computes the next vote state and post rating for a
// vote in direction. Repeating the current direction is a no-op. The rating
// is floor-clamped at 0 on the way down only: a down vote at rating 0 still
// flips the recorded action but leaves the number alone. Carried over from
// the original behavior, intentionally not symmetric.
func ApplyVoteTransition(current VoteAction, rating int, direction VoteAction) (next VoteAction, newRating int, changed bool) {
	if current == direction {
		return current, rating, false
	}

	switch direction {
	case VoteUp:
		return VoteUp, rating + 1, true
	case VoteDown:
		if rating > 0 {
			rating--
		}
		return VoteDown, rating, true
	default:
		return current, rating, false
	}
}

// Vote is the single active vote of a user on a post. Exactly one row per
// (user, post) pair; the row is mutated in place, never duplicated.
type Vote struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"not null;uniqueIndex:idx_votes_user_post" json:"user_id"`
	PostID    uint       `gorm:"not null;uniqueIndex:idx_votes_user_post" json:"post_id"`
	Action    VoteAction `gorm:"type:varchar(5);default:''" json:"action"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
