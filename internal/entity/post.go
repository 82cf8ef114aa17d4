package entity

import (
	"time"

	"wayfarer/pkg/models"
)

type CountryRef struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type TagRef struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// FeedPost is a post as rendered in feeds and post listings. IsFollowing is
// view-time decoration for the requesting user, never persisted.
type FeedPost struct {
	ID             uint         `json:"id"`
	AuthorID       uint         `json:"author_id"`
	AuthorUsername string       `json:"author_username"`
	Subject        string       `json:"subject"`
	Body           string       `json:"body"`
	Rating         int          `json:"rating"`
	Countries      []CountryRef `json:"countries"`
	Tags           []TagRef     `json:"tags"`
	PhotoURLs      []string     `json:"photo_urls"`
	CreateDate     time.Time    `json:"create_date"`
	LastLiftedAt   *time.Time   `json:"last_lifted_at"`
	IsFollowing    bool         `json:"is_following"`
}

// FromPost flattens a loaded model into the feed shape.
func FromPost(post *models.Post, isFollowing bool) FeedPost {
	fp := FeedPost{
		ID:             post.ID,
		AuthorID:       post.AuthorID,
		AuthorUsername: post.Author.Username,
		Subject:        post.Subject,
		Body:           post.Body,
		Rating:         post.Rating,
		Countries:      make([]CountryRef, 0, len(post.Countries)),
		Tags:           make([]TagRef, 0, len(post.Tags)),
		PhotoURLs:      make([]string, 0, len(post.Photos)),
		CreateDate:     post.CreateDate,
		LastLiftedAt:   post.LastLiftedAt,
		IsFollowing:    isFollowing,
	}
	for _, c := range post.Countries {
		fp.Countries = append(fp.Countries, CountryRef{ID: c.ID, Name: c.Name})
	}
	for _, t := range post.Tags {
		fp.Tags = append(fp.Tags, TagRef{ID: t.ID, Name: t.Name})
	}
	for _, p := range post.Photos {
		fp.PhotoURLs = append(fp.PhotoURLs, p.URL)
	}
	return fp
}
