package usecase

import (
	"context"
	"encoding/json"
	"time"

	"wayfarer/internal/entity"
	"wayfarer/internal/repo/persistent"
	"wayfarer/pkg/cache"
	"wayfarer/pkg/logger"
	"wayfarer/pkg/models"
	"wayfarer/pkg/pagination"
)

// PublicFeedLimit caps the anonymous feed at the most recent posts.
const PublicFeedLimit = 10

type FeedUseCase interface {
	// BuildFeed assembles the feed page for userID; 0 means anonymous.
	BuildFeed(ctx context.Context, userID uint, page int) (pagination.Page[entity.FeedPost], error)
}

type feedUseCase struct {
	postRepo    persistent.PostRepository
	profileRepo persistent.ProfileRepository
	cache       cache.Cache
	logger      *logger.Logger
	feedTTL     time.Duration
}

func NewFeedUseCase(
	postRepo persistent.PostRepository,
	profileRepo persistent.ProfileRepository,
	c cache.Cache,
	log *logger.Logger,
	feedTTL time.Duration,
) FeedUseCase {
	return &feedUseCase{
		postRepo:    postRepo,
		profileRepo: profileRepo,
		cache:       c,
		logger:      log,
		feedTTL:     feedTTL,
	}
}

func (uc *feedUseCase) BuildFeed(ctx context.Context, userID uint, page int) (pagination.Page[entity.FeedPost], error) {
	if userID == 0 {
		return uc.publicFeed(ctx, page)
	}
	return uc.personalFeed(ctx, userID, page)
}

func (uc *feedUseCase) publicFeed(ctx context.Context, page int) (pagination.Page[entity.FeedPost], error) {
	if feed, ok := uc.cachedFeed(ctx, cache.PublicFeedKey()); ok {
		return pagination.Paginate(feed, pagination.FeedPageSize, page), nil
	}

	posts, err := uc.postRepo.ListRecent(ctx, PublicFeedLimit)
	if err != nil {
		return pagination.Page[entity.FeedPost]{}, err
	}

	feed := make([]entity.FeedPost, 0, len(posts))
	for i := range posts {
		feed = append(feed, entity.FromPost(&posts[i], false))
	}

	uc.storeFeed(ctx, cache.PublicFeedKey(), feed)
	return pagination.Paginate(feed, pagination.FeedPageSize, page), nil
}

// personalFeed unions posts from interesting countries with posts authored by
// the profile's followers, ordered by lift time. The decorated list is cached
// whole under the per-user key and sliced per request.
func (uc *feedUseCase) personalFeed(ctx context.Context, userID uint, page int) (pagination.Page[entity.FeedPost], error) {
	profile, err := uc.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return pagination.Page[entity.FeedPost]{}, err
	}

	if feed, ok := uc.cachedFeed(ctx, cache.UserFeedKey(userID)); ok {
		return pagination.Paginate(feed, pagination.FeedPageSize, page), nil
	}

	countryIDs := make([]uint, 0, len(profile.CountriesInterest))
	for _, c := range profile.CountriesInterest {
		countryIDs = append(countryIDs, c.ID)
	}

	authorIDs, err := uc.profileRepo.FollowerIDs(ctx, userID)
	if err != nil {
		return pagination.Page[entity.FeedPost]{}, err
	}

	posts, err := uc.postRepo.ListFeed(ctx, countryIDs, authorIDs)
	if err != nil {
		return pagination.Page[entity.FeedPost]{}, err
	}

	feed, err := uc.decorate(ctx, userID, posts)
	if err != nil {
		return pagination.Page[entity.FeedPost]{}, err
	}

	uc.storeFeed(ctx, cache.UserFeedKey(userID), feed)
	return pagination.Paginate(feed, pagination.FeedPageSize, page), nil
}

// decorate resolves is_following per unique author for the requesting user.
func (uc *feedUseCase) decorate(ctx context.Context, userID uint, posts []models.Post) ([]entity.FeedPost, error) {
	following := make(map[uint]bool)
	feed := make([]entity.FeedPost, 0, len(posts))

	for i := range posts {
		authorID := posts[i].AuthorID
		isFollowing, seen := following[authorID]
		if !seen {
			var err error
			isFollowing, err = uc.profileRepo.IsFollowing(ctx, userID, authorID)
			if err != nil {
				return nil, err
			}
			following[authorID] = isFollowing
		}
		feed = append(feed, entity.FromPost(&posts[i], isFollowing))
	}

	return feed, nil
}

func (uc *feedUseCase) cachedFeed(ctx context.Context, key string) ([]entity.FeedPost, bool) {
	raw, err := uc.cache.Get(ctx, key)
	if err != nil {
		return nil, false
	}
	var feed []entity.FeedPost
	if err := json.Unmarshal([]byte(raw), &feed); err != nil {
		uc.logger.Warn("dropping unreadable cache entry %s: %v", key, err)
		return nil, false
	}
	return feed, true
}

func (uc *feedUseCase) storeFeed(ctx context.Context, key string, feed []entity.FeedPost) {
	raw, err := json.Marshal(feed)
	if err != nil {
		uc.logger.Warn("could not marshal feed for %s: %v", key, err)
		return
	}
	uc.cache.Set(ctx, key, string(raw), uc.feedTTL)
}
