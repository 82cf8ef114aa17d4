package usecase

import (
	"context"
	"encoding/json"
	"time"

	"wayfarer/internal/entity"
	"wayfarer/internal/repo/persistent"
	"wayfarer/pkg/cache"
	"wayfarer/pkg/logger"
)

type TagUseCase interface {
	PostsByTag(ctx context.Context, tagID uint) ([]entity.FeedPost, error)
}

type tagUseCase struct {
	tagRepo   persistent.TagRepository
	postRepo  persistent.PostRepository
	cache     cache.Cache
	logger    *logger.Logger
	entityTTL time.Duration
}

func NewTagUseCase(
	tagRepo persistent.TagRepository,
	postRepo persistent.PostRepository,
	c cache.Cache,
	log *logger.Logger,
	entityTTL time.Duration,
) TagUseCase {
	return &tagUseCase{
		tagRepo:   tagRepo,
		postRepo:  postRepo,
		cache:     c,
		logger:    log,
		entityTTL: entityTTL,
	}
}

func (uc *tagUseCase) PostsByTag(ctx context.Context, tagID uint) ([]entity.FeedPost, error) {
	key := cache.TagPostsKey(tagID)

	var feed []entity.FeedPost
	if raw, err := uc.cache.Get(ctx, key); err == nil {
		if err := json.Unmarshal([]byte(raw), &feed); err == nil {
			return feed, nil
		}
	}

	if _, err := uc.tagRepo.GetByID(ctx, tagID); err != nil {
		return nil, err
	}

	posts, err := uc.postRepo.ListByTag(ctx, tagID)
	if err != nil {
		return nil, err
	}

	feed = make([]entity.FeedPost, 0, len(posts))
	for i := range posts {
		feed = append(feed, entity.FromPost(&posts[i], false))
	}

	if raw, err := json.Marshal(feed); err == nil {
		uc.cache.Set(ctx, key, string(raw), uc.entityTTL)
	}
	return feed, nil
}
