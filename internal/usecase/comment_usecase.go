package usecase

import (
	"context"
	"encoding/json"
	"time"

	"wayfarer/internal/repo/persistent"
	"wayfarer/pkg/apperr"
	"wayfarer/pkg/cache"
	"wayfarer/pkg/logger"
	"wayfarer/pkg/models"
)

type CommentView struct {
	ID             uint      `json:"id"`
	PostID         uint      `json:"post_id"`
	AuthorID       uint      `json:"author_id"`
	AuthorUsername string    `json:"author_username"`
	Body           string    `json:"body"`
	CreatedAt      time.Time `json:"created_at"`
}

type CommentUseCase interface {
	AddComment(ctx context.Context, userID, postID uint, body string) (*CommentView, error)
	// ListComments returns the post's comments newest first.
	ListComments(ctx context.Context, postID uint) ([]CommentView, error)
}

type commentUseCase struct {
	commentRepo persistent.CommentRepository
	postRepo    persistent.PostRepository
	profileRepo persistent.ProfileRepository
	invalidator *Invalidator
	cache       cache.Cache
	logger      *logger.Logger
	entityTTL   time.Duration
}

func NewCommentUseCase(
	commentRepo persistent.CommentRepository,
	postRepo persistent.PostRepository,
	profileRepo persistent.ProfileRepository,
	invalidator *Invalidator,
	c cache.Cache,
	log *logger.Logger,
	entityTTL time.Duration,
) CommentUseCase {
	return &commentUseCase{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		profileRepo: profileRepo,
		invalidator: invalidator,
		cache:       c,
		logger:      log,
		entityTTL:   entityTTL,
	}
}

func (uc *commentUseCase) AddComment(ctx context.Context, userID, postID uint, body string) (*CommentView, error) {
	profile, err := uc.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile.IsBlocked {
		return nil, apperr.PermissionDenied("account is blocked")
	}
	if body == "" {
		return nil, apperr.Validation("body", "must not be empty")
	}

	post, err := uc.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		PostID:   postID,
		AuthorID: userID,
		Body:     body,
	}
	if err := uc.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	uc.invalidator.OnCommentCreated(ctx, post)

	return &CommentView{
		ID:             comment.ID,
		PostID:         comment.PostID,
		AuthorID:       comment.AuthorID,
		AuthorUsername: profile.User.Username,
		Body:           comment.Body,
		CreatedAt:      comment.CreatedAt,
	}, nil
}

func (uc *commentUseCase) ListComments(ctx context.Context, postID uint) ([]CommentView, error) {
	key := cache.PostCommentsKey(postID)

	var views []CommentView
	if raw, err := uc.cache.Get(ctx, key); err == nil {
		if err := json.Unmarshal([]byte(raw), &views); err == nil {
			return views, nil
		}
	}

	if _, err := uc.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	comments, err := uc.commentRepo.ListByPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	views = make([]CommentView, 0, len(comments))
	for _, c := range comments {
		views = append(views, CommentView{
			ID:             c.ID,
			PostID:         c.PostID,
			AuthorID:       c.AuthorID,
			AuthorUsername: c.Author.Username,
			Body:           c.Body,
			CreatedAt:      c.CreatedAt,
		})
	}

	if raw, err := json.Marshal(views); err == nil {
		uc.cache.Set(ctx, key, string(raw), uc.entityTTL)
	}
	return views, nil
}
