package persistent

import (
	"context"
	"time"

	"wayfarer/pkg/models"

	"gorm.io/gorm"
)

type LiftRepository interface {
	// ActiveLifts returns lift windows covering day, with their posts.
	ActiveLifts(ctx context.Context, day time.Time) ([]models.PostLift, error)
	SetLastLifted(ctx context.Context, postID uint, at time.Time) error
	Log(ctx context.Context, postID uint, message string) error
	// DeleteExpired drops windows whose end date passed before day.
	DeleteExpired(ctx context.Context, day time.Time) error
}

type liftRepository struct {
	db *gorm.DB
}

func NewLiftRepository(db *gorm.DB) LiftRepository {
	return &liftRepository{db: db}
}

func (r *liftRepository) ActiveLifts(ctx context.Context, day time.Time) ([]models.PostLift, error) {
	var lifts []models.PostLift
	err := r.db.WithContext(ctx).
		Preload("Post").
		Where("start_date <= ? AND end_date >= ?", day, day).
		Find(&lifts).Error
	return lifts, err
}

func (r *liftRepository) SetLastLifted(ctx context.Context, postID uint, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ?", postID).
		Update("last_lifted_at", at).Error
}

func (r *liftRepository) Log(ctx context.Context, postID uint, message string) error {
	return r.db.WithContext(ctx).Create(&models.PostLiftLog{PostID: postID, Message: message}).Error
}

func (r *liftRepository) DeleteExpired(ctx context.Context, day time.Time) error {
	return r.db.WithContext(ctx).
		Where("end_date < ?", day).
		Delete(&models.PostLift{}).Error
}
