package persistent

import (
	"context"
	"errors"
	"strings"

	"wayfarer/pkg/apperr"
	"wayfarer/pkg/models"

	"gorm.io/gorm"
)

type TagRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Tag, error)
	// GetOrCreateByNames resolves tag names to rows, creating missing ones.
	// Names are trimmed; empty names are skipped.
	GetOrCreateByNames(ctx context.Context, names []string) ([]models.Tag, error)
}

type tagRepository struct {
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

func (r *tagRepository) GetByID(ctx context.Context, id uint) (*models.Tag, error) {
	var tag models.Tag
	if err := r.db.WithContext(ctx).First(&tag, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("tag", id)
		}
		return nil, err
	}
	return &tag, nil
}

func (r *tagRepository) GetOrCreateByNames(ctx context.Context, names []string) ([]models.Tag, error) {
	tags := make([]models.Tag, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		var tag models.Tag
		err := r.db.WithContext(ctx).Where(models.Tag{Name: name}).FirstOrCreate(&tag).Error
		if err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, nil
}
