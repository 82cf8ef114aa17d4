package usecase

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"wayfarer/internal/entity"
	"wayfarer/internal/repo/persistent"
	"wayfarer/pkg/apperr"
	"wayfarer/pkg/cache"
	"wayfarer/pkg/logger"
	"wayfarer/pkg/models"
)

type ProfileView struct {
	UserID              uint                `json:"user_id"`
	Username            string              `json:"username"`
	PostCount           int                 `json:"post_count"`
	FollowersCount      int                 `json:"followers_count"`
	UniqueCountryCount  int                 `json:"unique_country_count"`
	InterestedCountries []entity.CountryRef `json:"interested_countries,omitempty"`
}

type ProfileUseCase interface {
	// ToggleFollow follows authorID when not yet following, unfollows
	// otherwise. Returns whether the caller now follows the author.
	ToggleFollow(ctx context.Context, userID, authorID uint) (bool, error)
	ListProfiles(ctx context.Context) ([]ProfileView, error)
	GetProfileDetail(ctx context.Context, userID uint) (*ProfileView, error)
}

type profileUseCase struct {
	profileRepo persistent.ProfileRepository
	userRepo    persistent.UserRepository
	publisher   NotificationPublisher
	invalidator *Invalidator
	cache       cache.Cache
	logger      *logger.Logger
	entityTTL   time.Duration
}

func NewProfileUseCase(
	profileRepo persistent.ProfileRepository,
	userRepo persistent.UserRepository,
	publisher NotificationPublisher,
	invalidator *Invalidator,
	c cache.Cache,
	log *logger.Logger,
	entityTTL time.Duration,
) ProfileUseCase {
	return &profileUseCase{
		profileRepo: profileRepo,
		userRepo:    userRepo,
		publisher:   publisher,
		invalidator: invalidator,
		cache:       c,
		logger:      log,
		entityTTL:   entityTTL,
	}
}

func (uc *profileUseCase) ToggleFollow(ctx context.Context, userID, authorID uint) (bool, error) {
	if userID == authorID {
		return false, apperr.Validation("author", "cannot follow yourself")
	}

	profile, err := uc.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return false, err
	}
	if profile.IsBlocked {
		return false, apperr.PermissionDenied("account is blocked")
	}

	// Ensures the author exists and has a profile before touching join rows.
	if _, err := uc.profileRepo.GetByUserID(ctx, authorID); err != nil {
		return false, err
	}

	following, err := uc.profileRepo.IsFollowing(ctx, userID, authorID)
	if err != nil {
		return false, err
	}

	if following {
		if err := uc.profileRepo.RemoveFollower(ctx, authorID, userID); err != nil {
			return false, err
		}
	} else {
		if err := uc.profileRepo.AddFollower(ctx, authorID, userID); err != nil {
			return false, err
		}
		uc.notifyFollowed(userID, authorID)
	}

	uc.invalidator.OnFollowersChanged(ctx, authorID)
	return !following, nil
}

func (uc *profileUseCase) notifyFollowed(followerID, authorID uint) {
	if uc.publisher == nil {
		return
	}
	task := map[string]interface{}{
		"type":        "new_follower",
		"user_id":     authorID,
		"follower_id": followerID,
		"priority":    3,
	}
	if err := uc.publisher.PublishNotificationTask(task); err != nil {
		uc.logger.Error("failed to publish follow notification: %v", err)
	}
}

func (uc *profileUseCase) ListProfiles(ctx context.Context) ([]ProfileView, error) {
	key := cache.ProfilesListKey()

	var views []ProfileView
	if raw, err := uc.cache.Get(ctx, key); err == nil {
		if err := json.Unmarshal([]byte(raw), &views); err == nil {
			return views, nil
		}
	}

	profiles, err := uc.profileRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	views = make([]ProfileView, 0, len(profiles))
	for i := range profiles {
		p := &profiles[i]
		countryCount, err := uc.uniqueCountryCount(ctx, p.UserID)
		if err != nil {
			uc.logger.Warn("unique country count failed for user %d: %v", p.UserID, err)
		}
		views = append(views, ProfileView{
			UserID:             p.UserID,
			Username:           p.User.Username,
			PostCount:          p.PostCount,
			FollowersCount:     p.FollowersCount,
			UniqueCountryCount: countryCount,
		})
	}

	if raw, err := json.Marshal(views); err == nil {
		uc.cache.Set(ctx, key, string(raw), uc.entityTTL)
	}
	return views, nil
}

func (uc *profileUseCase) GetProfileDetail(ctx context.Context, userID uint) (*ProfileView, error) {
	key := cache.ProfileDetailKey(userID)

	var view ProfileView
	if raw, err := uc.cache.Get(ctx, key); err == nil {
		if err := json.Unmarshal([]byte(raw), &view); err == nil {
			return &view, nil
		}
	}

	profile, err := uc.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	countryCount, err := uc.uniqueCountryCount(ctx, userID)
	if err != nil {
		return nil, err
	}

	view = ProfileView{
		UserID:              profile.UserID,
		Username:            profile.User.Username,
		PostCount:           profile.PostCount,
		FollowersCount:      profile.FollowersCount,
		UniqueCountryCount:  countryCount,
		InterestedCountries: uc.interestedCountries(ctx, userID, profile.CountriesInterest),
	}

	if raw, err := json.Marshal(view); err == nil {
		uc.cache.Set(ctx, key, string(raw), uc.entityTTL)
	}
	return &view, nil
}

// uniqueCountryCount reads the per-user count through its own cache key so
// the value survives eviction of the larger detail and list entries.
func (uc *profileUseCase) uniqueCountryCount(ctx context.Context, userID uint) (int, error) {
	key := cache.UniqueCountryCountKey(userID)
	if raw, err := uc.cache.Get(ctx, key); err == nil {
		if n, err := strconv.Atoi(raw); err == nil {
			return n, nil
		}
	}

	n, err := uc.profileRepo.UniqueCountryCount(ctx, userID)
	if err != nil {
		return 0, err
	}
	uc.cache.Set(ctx, key, strconv.Itoa(n), uc.entityTTL)
	return n, nil
}

func (uc *profileUseCase) interestedCountries(ctx context.Context, userID uint, interests []models.Country) []entity.CountryRef {
	key := cache.InterestedCountriesKey(userID)

	var refs []entity.CountryRef
	if raw, err := uc.cache.Get(ctx, key); err == nil {
		if err := json.Unmarshal([]byte(raw), &refs); err == nil {
			return refs
		}
	}

	refs = make([]entity.CountryRef, 0, len(interests))
	for _, c := range interests {
		refs = append(refs, entity.CountryRef{ID: c.ID, Name: c.Name})
	}
	if raw, err := json.Marshal(refs); err == nil {
		uc.cache.Set(ctx, key, string(raw), uc.entityTTL)
	}
	return refs
}
