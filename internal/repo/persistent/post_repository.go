package persistent

import (
	"context"
	"errors"

	"wayfarer/pkg/apperr"
	"wayfarer/pkg/models"

	"gorm.io/gorm"
)

type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	// Delete removes the post; comments, votes, photos and join rows go with
	// it through the FK cascades.
	Delete(ctx context.Context, id uint) error
	ListRecent(ctx context.Context, limit int) ([]models.Post, error)
	// ListFeed returns posts tagged with any of countryIDs or authored by any
	// of authorIDs, deduplicated, newest lift first.
	ListFeed(ctx context.Context, countryIDs, authorIDs []uint) ([]models.Post, error)
	ListByAuthor(ctx context.Context, authorID uint) ([]models.Post, error)
	ListByCountry(ctx context.Context, countryID uint) ([]models.Post, error)
	ListByTag(ctx context.Context, tagID uint) ([]models.Post, error)
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Countries").
		Preload("Tags").
		Preload("Photos", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("post", id)
		}
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Post{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound("post", id)
	}
	return nil
}

func (r *postRepository) ListRecent(ctx context.Context, limit int) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Countries").
		Preload("Tags").
		Preload("Photos", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Order("create_date DESC").
		Limit(limit).
		Find(&posts).Error
	return posts, err
}

func (r *postRepository) ListFeed(ctx context.Context, countryIDs, authorIDs []uint) ([]models.Post, error) {
	if len(countryIDs) == 0 && len(authorIDs) == 0 {
		return []models.Post{}, nil
	}

	// DISTINCT collapses posts matching both the country and the author
	// predicate into a single row.
	query := r.db.WithContext(ctx).Model(&models.Post{}).
		Distinct("posts.*").
		Joins("LEFT JOIN post_countries ON post_countries.post_id = posts.id").
		Order("posts.last_lifted_at DESC")

	switch {
	case len(countryIDs) > 0 && len(authorIDs) > 0:
		query = query.Where("post_countries.country_id IN ? OR posts.author_id IN ?", countryIDs, authorIDs)
	case len(countryIDs) > 0:
		query = query.Where("post_countries.country_id IN ?", countryIDs)
	default:
		query = query.Where("posts.author_id IN ?", authorIDs)
	}

	var posts []models.Post
	err := query.
		Preload("Author").
		Preload("Countries").
		Preload("Tags").
		Preload("Photos", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Find(&posts).Error
	return posts, err
}

func (r *postRepository) ListByAuthor(ctx context.Context, authorID uint) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Countries").
		Preload("Tags").
		Preload("Photos", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Where("author_id = ?", authorID).
		Order("create_date DESC").
		Find(&posts).Error
	return posts, err
}

func (r *postRepository) ListByCountry(ctx context.Context, countryID uint) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Countries").
		Preload("Tags").
		Preload("Photos", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Joins("JOIN post_countries ON post_countries.post_id = posts.id").
		Where("post_countries.country_id = ?", countryID).
		Order("posts.create_date DESC").
		Find(&posts).Error
	return posts, err
}

func (r *postRepository) ListByTag(ctx context.Context, tagID uint) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Countries").
		Preload("Tags").
		Preload("Photos", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Joins("JOIN post_tags ON post_tags.post_id = posts.id").
		Where("post_tags.tag_id = ?", tagID).
		Order("posts.create_date DESC").
		Find(&posts).Error
	return posts, err
}
