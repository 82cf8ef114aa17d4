package persistent

import (
	"context"
	"errors"

	"wayfarer/pkg/apperr"
	"wayfarer/pkg/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProfileRepository interface {
	Create(ctx context.Context, profile *models.Profile) error
	// GetByUserID loads the profile with its country interests.
	// Returns apperr.ErrProfileMissing when the user has no profile row.
	GetByUserID(ctx context.Context, userID uint) (*models.Profile, error)
	List(ctx context.Context) ([]models.Profile, error)
	FollowerIDs(ctx context.Context, userID uint) ([]uint, error)
	IsFollowing(ctx context.Context, followerID, authorID uint) (bool, error)
	AddFollower(ctx context.Context, authorID, followerID uint) error
	RemoveFollower(ctx context.Context, authorID, followerID uint) error
	HasCountryInterest(ctx context.Context, userID, countryID uint) (bool, error)
	AddCountryInterest(ctx context.Context, userID, countryID uint) error
	RemoveCountryInterest(ctx context.Context, userID, countryID uint) error
	IncrementPostCount(ctx context.Context, userID uint, delta int) error
	// UniqueCountryCount counts distinct countries across the user's posts.
	UniqueCountryCount(ctx context.Context, userID uint) (int, error)
}

type profileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) Create(ctx context.Context, profile *models.Profile) error {
	return r.db.WithContext(ctx).Create(profile).Error
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID uint) (*models.Profile, error) {
	var profile models.Profile
	err := r.db.WithContext(ctx).
		Preload("CountriesInterest").
		Preload("User").
		Where("user_id = ?", userID).
		First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrProfileMissing
		}
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) List(ctx context.Context) ([]models.Profile, error) {
	var profiles []models.Profile
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("CountriesInterest").
		Joins("JOIN users ON users.id = profiles.user_id").
		Where("users.is_superuser = ?", false).
		Order("profiles.id").
		Find(&profiles).Error
	return profiles, err
}

func (r *profileRepository) FollowerIDs(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).
		Table("profile_followers").
		Joins("JOIN profiles ON profiles.id = profile_followers.profile_id").
		Where("profiles.user_id = ?", userID).
		Pluck("profile_followers.user_id", &ids).Error
	return ids, err
}

func (r *profileRepository) IsFollowing(ctx context.Context, followerID, authorID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("profile_followers").
		Joins("JOIN profiles ON profiles.id = profile_followers.profile_id").
		Where("profiles.user_id = ? AND profile_followers.user_id = ?", authorID, followerID).
		Count(&count).Error
	return count > 0, err
}

// AddFollower inserts the join row and syncs followers_count inside one
// transaction so concurrent toggles cannot skew the counter.
func (r *profileRepository) AddFollower(ctx context.Context, authorID, followerID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		profile, err := lockProfile(tx, authorID)
		if err != nil {
			return err
		}
		follower := models.User{ID: followerID}
		if err := tx.Model(profile).Association("Followers").Append(&follower); err != nil {
			return err
		}
		return syncFollowersCount(tx, profile)
	})
}

func (r *profileRepository) RemoveFollower(ctx context.Context, authorID, followerID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		profile, err := lockProfile(tx, authorID)
		if err != nil {
			return err
		}
		follower := models.User{ID: followerID}
		if err := tx.Model(profile).Association("Followers").Delete(&follower); err != nil {
			return err
		}
		return syncFollowersCount(tx, profile)
	})
}

func lockProfile(tx *gorm.DB, userID uint) (*models.Profile, error) {
	var profile models.Profile
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).
		First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrProfileMissing
		}
		return nil, err
	}
	return &profile, nil
}

func syncFollowersCount(tx *gorm.DB, profile *models.Profile) error {
	count := tx.Model(profile).Association("Followers").Count()
	return tx.Model(profile).Update("followers_count", count).Error
}

func (r *profileRepository) HasCountryInterest(ctx context.Context, userID, countryID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("profile_countries").
		Joins("JOIN profiles ON profiles.id = profile_countries.profile_id").
		Where("profiles.user_id = ? AND profile_countries.country_id = ?", userID, countryID).
		Count(&count).Error
	return count > 0, err
}

func (r *profileRepository) AddCountryInterest(ctx context.Context, userID, countryID uint) error {
	profile, err := r.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}
	country := models.Country{ID: countryID}
	return r.db.WithContext(ctx).Model(profile).Association("CountriesInterest").Append(&country)
}

func (r *profileRepository) RemoveCountryInterest(ctx context.Context, userID, countryID uint) error {
	profile, err := r.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}
	country := models.Country{ID: countryID}
	return r.db.WithContext(ctx).Model(profile).Association("CountriesInterest").Delete(&country)
}

func (r *profileRepository) IncrementPostCount(ctx context.Context, userID uint, delta int) error {
	return r.db.WithContext(ctx).
		Model(&models.Profile{}).
		Where("user_id = ?", userID).
		UpdateColumn("post_count", gorm.Expr("post_count + ?", delta)).Error
}

func (r *profileRepository) UniqueCountryCount(ctx context.Context, userID uint) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("post_countries").
		Joins("JOIN posts ON posts.id = post_countries.post_id").
		Where("posts.author_id = ?", userID).
		Distinct("post_countries.country_id").
		Count(&count).Error
	return int(count), err
}
