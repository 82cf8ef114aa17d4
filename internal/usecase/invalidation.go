package usecase

import (
	"context"

	"wayfarer/internal/repo/persistent"
	"wayfarer/pkg/cache"
	"wayfarer/pkg/logger"
	"wayfarer/pkg/models"
)

// Invalidator reacts to mutations and evicts the cache keys they made stale.
// Mutation call sites invoke it explicitly right after the primary store
// write. Eviction is coarse and key-enumeration based; anything it misses
// ages out at the TTL.
type Invalidator struct {
	cache    cache.Cache
	userRepo persistent.UserRepository
	logger   *logger.Logger
}

func NewInvalidator(c cache.Cache, userRepo persistent.UserRepository, log *logger.Logger) *Invalidator {
	return &Invalidator{cache: c, userRepo: userRepo, logger: log}
}

func (inv *Invalidator) delete(ctx context.Context, keys ...string) []string {
	if len(keys) == 0 {
		return nil
	}
	if err := inv.cache.Delete(ctx, keys...); err != nil {
		inv.logger.Warn("cache invalidation incomplete: %v", err)
	}
	return keys
}

// everyUserFeed enumerates user_feed_* for all registered users.
func (inv *Invalidator) everyUserFeed(ctx context.Context) []string {
	ids, err := inv.userRepo.AllIDs(ctx)
	if err != nil {
		inv.logger.Warn("could not enumerate users for feed invalidation: %v", err)
		return nil
	}
	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, cache.UserFeedKey(id))
	}
	return keys
}

// OnPostCreated evicts every user's feed plus the public feed and the lists
// the new post now appears in.
func (inv *Invalidator) OnPostCreated(ctx context.Context, post *models.Post) []string {
	keys := inv.everyUserFeed(ctx)
	keys = append(keys, cache.PublicFeedKey(), cache.CountriesWithPostsKey())
	keys = append(keys, cache.UserPostsKey(post.AuthorID))
	keys = append(keys, cache.ProfileKey(post.AuthorID), cache.ProfileDetailKey(post.AuthorID))
	keys = append(keys, cache.UniqueCountryCountKey(post.AuthorID))
	for _, c := range post.Countries {
		keys = append(keys, cache.PostsByCountryKey(c.ID))
	}
	for _, t := range post.Tags {
		keys = append(keys, cache.TagPostsKey(t.ID))
	}
	return inv.delete(ctx, keys...)
}

// OnPostDeleted mirrors OnPostCreated, plus the post's own entry.
func (inv *Invalidator) OnPostDeleted(ctx context.Context, post *models.Post) []string {
	keys := inv.OnPostCreated(ctx, post)
	keys = append(keys, inv.delete(ctx, cache.PostKey(post.ID), cache.PostCommentsKey(post.ID))...)
	return keys
}

// OnRatingChanged evicts the author's feed when a post's rating moved.
func (inv *Invalidator) OnRatingChanged(ctx context.Context, authorID uint) []string {
	return inv.delete(ctx, cache.UserFeedKey(authorID))
}

// OnVoteApplied evicts everything the changed rating shows up in: the
// voter's feed and profile, the author's profile, the post itself, the
// voter's posts list and each country/tag list carrying the post.
func (inv *Invalidator) OnVoteApplied(ctx context.Context, voterID uint, post *models.Post) []string {
	keys := []string{
		cache.UserFeedKey(voterID),
		cache.ProfileKey(voterID),
		cache.ProfileKey(post.AuthorID),
		cache.PostKey(post.ID),
		cache.UserPostsKey(voterID),
	}
	for _, c := range post.Countries {
		keys = append(keys, cache.PostsByCountryKey(c.ID))
	}
	for _, t := range post.Tags {
		keys = append(keys, cache.TagPostsKey(t.ID))
	}
	keys = append(keys, inv.OnRatingChanged(ctx, post.AuthorID)...)
	return inv.delete(ctx, keys...)
}

// OnCommentCreated evicts every user's feed, the public feed and the post's
// comment list.
func (inv *Invalidator) OnCommentCreated(ctx context.Context, post *models.Post) []string {
	keys := inv.everyUserFeed(ctx)
	keys = append(keys, cache.PublicFeedKey(), cache.PostCommentsKey(post.ID), cache.PostKey(post.ID))
	return inv.delete(ctx, keys...)
}

// OnInterestChanged evicts the user's feed and cached interest list.
func (inv *Invalidator) OnInterestChanged(ctx context.Context, userID uint) []string {
	return inv.delete(ctx,
		cache.UserFeedKey(userID),
		cache.InterestedCountriesKey(userID),
		cache.ProfileDetailKey(userID),
	)
}

// OnFollowersChanged evicts the followed user's feed and the profile entries
// whose counters moved.
func (inv *Invalidator) OnFollowersChanged(ctx context.Context, userID uint) []string {
	return inv.delete(ctx,
		cache.UserFeedKey(userID),
		cache.ProfileKey(userID),
		cache.ProfileDetailKey(userID),
		cache.ProfilesListKey(),
	)
}

// OnUserRegistered evicts every user's feed plus the profiles list.
func (inv *Invalidator) OnUserRegistered(ctx context.Context) []string {
	keys := inv.everyUserFeed(ctx)
	keys = append(keys, cache.ProfilesListKey())
	return inv.delete(ctx, keys...)
}
