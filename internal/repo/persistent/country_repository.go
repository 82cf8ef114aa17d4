package persistent

import (
	"context"
	"errors"

	"wayfarer/pkg/apperr"
	"wayfarer/pkg/models"

	"gorm.io/gorm"
)

type CountryRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Country, error)
	FindByIDs(ctx context.Context, ids []uint) ([]models.Country, error)
	// ListWithPosts returns the countries at least one post is tagged with.
	ListWithPosts(ctx context.Context) ([]models.Country, error)
	Upsert(ctx context.Context, country *models.Country) error
}

type countryRepository struct {
	db *gorm.DB
}

func NewCountryRepository(db *gorm.DB) CountryRepository {
	return &countryRepository{db: db}
}

func (r *countryRepository) GetByID(ctx context.Context, id uint) (*models.Country, error) {
	var country models.Country
	if err := r.db.WithContext(ctx).First(&country, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("country", id)
		}
		return nil, err
	}
	return &country, nil
}

func (r *countryRepository) FindByIDs(ctx context.Context, ids []uint) ([]models.Country, error) {
	var countries []models.Country
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&countries).Error
	return countries, err
}

func (r *countryRepository) ListWithPosts(ctx context.Context) ([]models.Country, error) {
	var countries []models.Country
	err := r.db.WithContext(ctx).
		Distinct("countries.*").
		Joins("JOIN post_countries ON post_countries.country_id = countries.id").
		Order("countries.name").
		Find(&countries).Error
	return countries, err
}

func (r *countryRepository) Upsert(ctx context.Context, country *models.Country) error {
	var existing models.Country
	err := r.db.WithContext(ctx).Where("alpha2_code = ?", country.Alpha2Code).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.db.WithContext(ctx).Create(country).Error
	}
	if err != nil {
		return err
	}
	country.ID = existing.ID
	return r.db.WithContext(ctx).Save(country).Error
}
