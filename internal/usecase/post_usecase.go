package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"time"
	"unicode/utf8"

	"wayfarer/internal/entity"
	"wayfarer/internal/repo/persistent"
	"wayfarer/pkg/apperr"
	"wayfarer/pkg/cache"
	"wayfarer/pkg/logger"
	"wayfarer/pkg/models"

	"github.com/google/uuid"
)

// PhotoUploader stores a photo and returns its addressable URL. Satisfied by
// the S3 client.
type PhotoUploader interface {
	UploadFile(key string, file multipart.File, contentType string) (string, error)
}

// NotificationPublisher pushes a notification task onto the queue. Satisfied
// by the RabbitMQ client; nil disables publishing.
type NotificationPublisher interface {
	PublishNotificationTask(task map[string]interface{}) error
}

type CreatePostInput struct {
	Subject    string
	Body       string
	CountryIDs []uint
	TagNames   []string
	Photos     []*multipart.FileHeader
}

type PostUseCase interface {
	CreatePost(ctx context.Context, userID uint, input CreatePostInput) (*entity.FeedPost, error)
	// GetPost returns the post decorated with is_following for viewerID.
	GetPost(ctx context.Context, postID, viewerID uint) (*entity.FeedPost, error)
	DeletePost(ctx context.Context, postID, userID uint) error
	// ListByAuthor serves the user_posts_{id} listing.
	ListByAuthor(ctx context.Context, authorID uint) ([]entity.FeedPost, error)
}

type postUseCase struct {
	postRepo    persistent.PostRepository
	profileRepo persistent.ProfileRepository
	countryRepo persistent.CountryRepository
	tagRepo     persistent.TagRepository
	uploader    PhotoUploader
	publisher   NotificationPublisher
	invalidator *Invalidator
	cache       cache.Cache
	logger      *logger.Logger
	entityTTL   time.Duration
}

func NewPostUseCase(
	postRepo persistent.PostRepository,
	profileRepo persistent.ProfileRepository,
	countryRepo persistent.CountryRepository,
	tagRepo persistent.TagRepository,
	uploader PhotoUploader,
	publisher NotificationPublisher,
	invalidator *Invalidator,
	c cache.Cache,
	log *logger.Logger,
	entityTTL time.Duration,
) PostUseCase {
	return &postUseCase{
		postRepo:    postRepo,
		profileRepo: profileRepo,
		countryRepo: countryRepo,
		tagRepo:     tagRepo,
		uploader:    uploader,
		publisher:   publisher,
		invalidator: invalidator,
		cache:       c,
		logger:      log,
		entityTTL:   entityTTL,
	}
}

func (uc *postUseCase) CreatePost(ctx context.Context, userID uint, input CreatePostInput) (*entity.FeedPost, error) {
	profile, err := uc.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile.IsBlocked {
		return nil, apperr.PermissionDenied("account is blocked")
	}
	if !profile.IsCreate {
		return nil, apperr.PermissionDenied("posting is not allowed for this account")
	}

	if utf8.RuneCountInString(input.Body) < models.MinBodyLength {
		return nil, apperr.Validation("body", fmt.Sprintf("must be at least %d characters", models.MinBodyLength))
	}
	if len(input.CountryIDs) == 0 {
		return nil, apperr.Validation("countries", "at least one country is required")
	}
	if len(input.Photos) > models.MaxPhotosPerPost {
		return nil, apperr.Validation("photos", fmt.Sprintf("at most %d photos allowed", models.MaxPhotosPerPost))
	}
	for _, header := range input.Photos {
		if header.Size > models.MaxPhotoSize {
			return nil, apperr.Validation("photos", "photo exceeds the 5MB limit")
		}
	}

	countries, err := uc.countryRepo.FindByIDs(ctx, input.CountryIDs)
	if err != nil {
		return nil, err
	}
	if len(countries) != len(input.CountryIDs) {
		return nil, apperr.Validation("countries", "unknown country id")
	}

	tags, err := uc.tagRepo.GetOrCreateByNames(ctx, input.TagNames)
	if err != nil {
		return nil, err
	}

	photos, err := uc.uploadPhotos(input.Photos)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		AuthorID:  userID,
		Subject:   input.Subject,
		Body:      input.Body,
		Countries: countries,
		Tags:      tags,
		Photos:    photos,
	}
	if err := uc.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	if err := uc.profileRepo.IncrementPostCount(ctx, userID, 1); err != nil {
		uc.logger.Warn("post_count increment failed for user %d: %v", userID, err)
	}

	uc.invalidator.OnPostCreated(ctx, post)
	uc.notifyFollowers(ctx, post)

	created, err := uc.postRepo.GetByID(ctx, post.ID)
	if err != nil {
		return nil, err
	}
	fp := entity.FromPost(created, false)
	return &fp, nil
}

func (uc *postUseCase) uploadPhotos(headers []*multipart.FileHeader) ([]models.Photo, error) {
	photos := make([]models.Photo, 0, len(headers))
	for i, header := range headers {
		file, err := header.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open photo: %w", err)
		}

		key := fmt.Sprintf("post_photos/%s%s", uuid.New().String(), filepath.Ext(header.Filename))
		url, err := uc.uploader.UploadFile(key, file, header.Header.Get("Content-Type"))
		file.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to upload photo: %w", err)
		}

		photos = append(photos, models.Photo{
			URL:       url,
			Position:  i,
			SizeBytes: header.Size,
		})
	}
	return photos, nil
}

func (uc *postUseCase) notifyFollowers(ctx context.Context, post *models.Post) {
	if uc.publisher == nil {
		return
	}

	followerIDs, err := uc.profileRepo.FollowerIDs(ctx, post.AuthorID)
	if err != nil {
		uc.logger.Warn("could not resolve followers for post %d: %v", post.ID, err)
		return
	}

	for _, followerID := range followerIDs {
		task := map[string]interface{}{
			"type":      "new_post",
			"user_id":   followerID,
			"author_id": post.AuthorID,
			"post_id":   post.ID,
			"priority":  5,
		}
		if err := uc.publisher.PublishNotificationTask(task); err != nil {
			uc.logger.Error("failed to publish new-post notification: %v", err)
			return
		}
	}
}

func (uc *postUseCase) GetPost(ctx context.Context, postID, viewerID uint) (*entity.FeedPost, error) {
	key := cache.PostKey(postID)

	var fp entity.FeedPost
	if raw, err := uc.cache.Get(ctx, key); err == nil {
		if err := json.Unmarshal([]byte(raw), &fp); err == nil {
			uc.decorateForViewer(ctx, &fp, viewerID)
			return &fp, nil
		}
	}

	post, err := uc.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	fp = entity.FromPost(post, false)
	if raw, err := json.Marshal(fp); err == nil {
		uc.cache.Set(ctx, key, string(raw), uc.entityTTL)
	}

	uc.decorateForViewer(ctx, &fp, viewerID)
	return &fp, nil
}

// The cached post entry is shared across viewers, so the per-viewer
// is_following flag is recomputed after every cache hit.
func (uc *postUseCase) decorateForViewer(ctx context.Context, fp *entity.FeedPost, viewerID uint) {
	fp.IsFollowing = false
	if viewerID == 0 || viewerID == fp.AuthorID {
		return
	}
	isFollowing, err := uc.profileRepo.IsFollowing(ctx, viewerID, fp.AuthorID)
	if err != nil {
		uc.logger.Warn("is_following lookup failed for post %d: %v", fp.ID, err)
		return
	}
	fp.IsFollowing = isFollowing
}

func (uc *postUseCase) DeletePost(ctx context.Context, postID, userID uint) error {
	post, err := uc.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.AuthorID != userID {
		return apperr.PermissionDenied("only the author can delete a post")
	}

	if err := uc.postRepo.Delete(ctx, postID); err != nil {
		return err
	}

	if err := uc.profileRepo.IncrementPostCount(ctx, post.AuthorID, -1); err != nil {
		uc.logger.Warn("post_count decrement failed for user %d: %v", post.AuthorID, err)
	}

	uc.invalidator.OnPostDeleted(ctx, post)
	return nil
}

func (uc *postUseCase) ListByAuthor(ctx context.Context, authorID uint) ([]entity.FeedPost, error) {
	key := cache.UserPostsKey(authorID)

	var feed []entity.FeedPost
	if raw, err := uc.cache.Get(ctx, key); err == nil {
		if err := json.Unmarshal([]byte(raw), &feed); err == nil {
			return feed, nil
		}
	}

	posts, err := uc.postRepo.ListByAuthor(ctx, authorID)
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
