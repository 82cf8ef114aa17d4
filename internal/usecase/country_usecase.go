package usecase

import (
	"context"
	"encoding/json"
	"time"

	"wayfarer/internal/entity"
	"wayfarer/internal/repo/persistent"
	"wayfarer/pkg/apperr"
	"wayfarer/pkg/cache"
	"wayfarer/pkg/logger"
	"wayfarer/pkg/models"
)

type CountryUseCase interface {
	// ListWithPosts returns countries that have at least one post.
	ListWithPosts(ctx context.Context) ([]models.Country, error)
	GetCountry(ctx context.Context, countryID uint) (*models.Country, error)
	PostsByCountry(ctx context.Context, countryID uint) ([]entity.FeedPost, error)
	// ToggleInterest adds the country to the user's interests when absent,
	// removes it otherwise. Returns whether the interest is now present.
	ToggleInterest(ctx context.Context, userID, countryID uint) (bool, error)
}

type countryUseCase struct {
	countryRepo persistent.CountryRepository
	postRepo    persistent.PostRepository
	profileRepo persistent.ProfileRepository
	invalidator *Invalidator
	cache       cache.Cache
	logger      *logger.Logger
	entityTTL   time.Duration
}

func NewCountryUseCase(
	countryRepo persistent.CountryRepository,
	postRepo persistent.PostRepository,
	profileRepo persistent.ProfileRepository,
	invalidator *Invalidator,
	c cache.Cache,
	log *logger.Logger,
	entityTTL time.Duration,
) CountryUseCase {
	return &countryUseCase{
		countryRepo: countryRepo,
		postRepo:    postRepo,
		profileRepo: profileRepo,
		invalidator: invalidator,
		cache:       c,
		logger:      log,
		entityTTL:   entityTTL,
	}
}

func (uc *countryUseCase) ListWithPosts(ctx context.Context) ([]models.Country, error) {
	key := cache.CountriesWithPostsKey()

	var countries []models.Country
	if raw, err := uc.cache.Get(ctx, key); err == nil {
		if err := json.Unmarshal([]byte(raw), &countries); err == nil {
			return countries, nil
		}
	}

	countries, err := uc.countryRepo.ListWithPosts(ctx)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(countries); err == nil {
		uc.cache.Set(ctx, key, string(raw), uc.entityTTL)
	}
	return countries, nil
}

func (uc *countryUseCase) GetCountry(ctx context.Context, countryID uint) (*models.Country, error) {
	key := cache.CountryDetailKey(countryID)

	var country models.Country
	if raw, err := uc.cache.Get(ctx, key); err == nil {
		if err := json.Unmarshal([]byte(raw), &country); err == nil {
			return &country, nil
		}
	}

	found, err := uc.countryRepo.GetByID(ctx, countryID)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(found); err == nil {
		uc.cache.Set(ctx, key, string(raw), uc.entityTTL)
	}
	return found, nil
}

func (uc *countryUseCase) PostsByCountry(ctx context.Context, countryID uint) ([]entity.FeedPost, error) {
	key := cache.PostsByCountryKey(countryID)

	var feed []entity.FeedPost
	if raw, err := uc.cache.Get(ctx, key); err == nil {
		if err := json.Unmarshal([]byte(raw), &feed); err == nil {
			return feed, nil
		}
	}

	if _, err := uc.countryRepo.GetByID(ctx, countryID); err != nil {
		return nil, err
	}

	posts, err := uc.postRepo.ListByCountry(ctx, countryID)
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

func (uc *countryUseCase) ToggleInterest(ctx context.Context, userID, countryID uint) (bool, error) {
	profile, err := uc.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return false, err
	}
	if profile.IsBlocked {
		return false, apperr.PermissionDenied("account is blocked")
	}

	if _, err := uc.countryRepo.GetByID(ctx, countryID); err != nil {
		return false, err
	}

	interested, err := uc.profileRepo.HasCountryInterest(ctx, userID, countryID)
	if err != nil {
		return false, err
	}

	if interested {
		err = uc.profileRepo.RemoveCountryInterest(ctx, userID, countryID)
	} else {
		err = uc.profileRepo.AddCountryInterest(ctx, userID, countryID)
	}
	if err != nil {
		return false, err
	}

	uc.invalidator.OnInterestChanged(ctx, userID)
	return !interested, nil
}
