package persistent

import (
	"context"
	"errors"

	"wayfarer/pkg/apperr"
	"wayfarer/pkg/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// VoteResult is what a vote application left behind. Post is loaded with its
// countries and tags so the caller can fan out cache invalidation.
type VoteResult struct {
	Post      *models.Post
	NewRating int
	Changed   bool
}

type VoteRepository interface {
	// Apply runs the vote state machine for (userID, postID) inside a
	// transaction. The post row is locked for the read-modify-write so
	// concurrent votes on the same post cannot lose updates.
	Apply(ctx context.Context, userID, postID uint, direction models.VoteAction) (*VoteResult, error)
	Get(ctx context.Context, userID, postID uint) (*models.Vote, error)
}

type voteRepository struct {
	db *gorm.DB
}

func NewVoteRepository(db *gorm.DB) VoteRepository {
	return &voteRepository{db: db}
}

func (r *voteRepository) Apply(ctx context.Context, userID, postID uint, direction models.VoteAction) (*VoteResult, error) {
	var result VoteResult

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post models.Post
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&post, postID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("post", postID)
			}
			return err
		}

		var vote models.Vote
		err = tx.Where(models.Vote{UserID: userID, PostID: postID}).
			Attrs(models.Vote{Action: models.VoteNone}).
			FirstOrCreate(&vote).Error
		if err != nil {
			return err
		}

		next, newRating, changed := models.ApplyVoteTransition(vote.Action, post.Rating, direction)
		result.NewRating = newRating
		result.Changed = changed
		if !changed {
			return loadVotedPost(tx, postID, &result)
		}

		if newRating != post.Rating {
			if err := tx.Model(&post).Update("rating", newRating).Error; err != nil {
				return err
			}
		}
		if err := tx.Model(&vote).Update("action", next).Error; err != nil {
			return err
		}

		return loadVotedPost(tx, postID, &result)
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func loadVotedPost(tx *gorm.DB, postID uint, result *VoteResult) error {
	var post models.Post
	err := tx.Preload("Author").Preload("Countries").Preload("Tags").First(&post, postID).Error
	if err != nil {
		return err
	}
	result.Post = &post
	return nil
}

func (r *voteRepository) Get(ctx context.Context, userID, postID uint) (*models.Vote, error) {
	var vote models.Vote
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		First(&vote).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	return &vote, nil
}
