package usecase

import (
	"context"
	"mime/multipart"
	"time"

	"wayfarer/internal/repo/persistent"
	"wayfarer/pkg/models"

	"github.com/stretchr/testify/mock"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) UsernameTaken(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) AllIDs(ctx context.Context) ([]uint, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uint), args.Error(1)
}

var _ persistent.UserRepository = (*MockUserRepository)(nil)

type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) Create(ctx context.Context, profile *models.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockProfileRepository) GetByUserID(ctx context.Context, userID uint) (*models.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *MockProfileRepository) List(ctx context.Context) ([]models.Profile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Profile), args.Error(1)
}

func (m *MockProfileRepository) FollowerIDs(ctx context.Context, userID uint) ([]uint, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uint), args.Error(1)
}

func (m *MockProfileRepository) IsFollowing(ctx context.Context, followerID, authorID uint) (bool, error) {
	args := m.Called(ctx, followerID, authorID)
	return args.Bool(0), args.Error(1)
}

func (m *MockProfileRepository) AddFollower(ctx context.Context, authorID, followerID uint) error {
	args := m.Called(ctx, authorID, followerID)
	return args.Error(0)
}

func (m *MockProfileRepository) RemoveFollower(ctx context.Context, authorID, followerID uint) error {
	args := m.Called(ctx, authorID, followerID)
	return args.Error(0)
}

func (m *MockProfileRepository) HasCountryInterest(ctx context.Context, userID, countryID uint) (bool, error) {
	args := m.Called(ctx, userID, countryID)
	return args.Bool(0), args.Error(1)
}

func (m *MockProfileRepository) AddCountryInterest(ctx context.Context, userID, countryID uint) error {
	args := m.Called(ctx, userID, countryID)
	return args.Error(0)
}

func (m *MockProfileRepository) RemoveCountryInterest(ctx context.Context, userID, countryID uint) error {
	args := m.Called(ctx, userID, countryID)
	return args.Error(0)
}

func (m *MockProfileRepository) IncrementPostCount(ctx context.Context, userID uint, delta int) error {
	args := m.Called(ctx, userID, delta)
	return args.Error(0)
}

func (m *MockProfileRepository) UniqueCountryCount(ctx context.Context, userID uint) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

var _ persistent.ProfileRepository = (*MockProfileRepository)(nil)

type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) Create(ctx context.Context, post *models.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPostRepository) ListRecent(ctx context.Context, limit int) ([]models.Post, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *MockPostRepository) ListFeed(ctx context.Context, countryIDs, authorIDs []uint) ([]models.Post, error) {
	args := m.Called(ctx, countryIDs, authorIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *MockPostRepository) ListByAuthor(ctx context.Context, authorID uint) ([]models.Post, error) {
	args := m.Called(ctx, authorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *MockPostRepository) ListByCountry(ctx context.Context, countryID uint) ([]models.Post, error) {
	args := m.Called(ctx, countryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *MockPostRepository) ListByTag(ctx context.Context, tagID uint) ([]models.Post, error) {
	args := m.Called(ctx, tagID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Post), args.Error(1)
}

var _ persistent.PostRepository = (*MockPostRepository)(nil)

type MockVoteRepository struct {
	mock.Mock
}

func (m *MockVoteRepository) Apply(ctx context.Context, userID, postID uint, direction models.VoteAction) (*persistent.VoteResult, error) {
	args := m.Called(ctx, userID, postID, direction)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*persistent.VoteResult), args.Error(1)
}

func (m *MockVoteRepository) Get(ctx context.Context, userID, postID uint) (*models.Vote, error) {
	args := m.Called(ctx, userID, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Vote), args.Error(1)
}

var _ persistent.VoteRepository = (*MockVoteRepository)(nil)

type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) ListByPost(ctx context.Context, postID uint) ([]models.Comment, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Comment), args.Error(1)
}

var _ persistent.CommentRepository = (*MockCommentRepository)(nil)

type MockCountryRepository struct {
	mock.Mock
}

func (m *MockCountryRepository) GetByID(ctx context.Context, id uint) (*models.Country, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Country), args.Error(1)
}

func (m *MockCountryRepository) FindByIDs(ctx context.Context, ids []uint) ([]models.Country, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Country), args.Error(1)
}

func (m *MockCountryRepository) ListWithPosts(ctx context.Context) ([]models.Country, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Country), args.Error(1)
}

func (m *MockCountryRepository) Upsert(ctx context.Context, country *models.Country) error {
	args := m.Called(ctx, country)
	return args.Error(0)
}

var _ persistent.CountryRepository = (*MockCountryRepository)(nil)

type MockTagRepository struct {
	mock.Mock
}

func (m *MockTagRepository) GetByID(ctx context.Context, id uint) (*models.Tag, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Tag), args.Error(1)
}

func (m *MockTagRepository) GetOrCreateByNames(ctx context.Context, names []string) ([]models.Tag, error) {
	args := m.Called(ctx, names)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Tag), args.Error(1)
}

var _ persistent.TagRepository = (*MockTagRepository)(nil)

type MockLiftRepository struct {
	mock.Mock
}

func (m *MockLiftRepository) ActiveLifts(ctx context.Context, day time.Time) ([]models.PostLift, error) {
	args := m.Called(ctx, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.PostLift), args.Error(1)
}

func (m *MockLiftRepository) SetLastLifted(ctx context.Context, postID uint, at time.Time) error {
	args := m.Called(ctx, postID, at)
	return args.Error(0)
}

func (m *MockLiftRepository) Log(ctx context.Context, postID uint, message string) error {
	args := m.Called(ctx, postID, message)
	return args.Error(0)
}

func (m *MockLiftRepository) DeleteExpired(ctx context.Context, day time.Time) error {
	args := m.Called(ctx, day)
	return args.Error(0)
}

var _ persistent.LiftRepository = (*MockLiftRepository)(nil)

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishNotificationTask(task map[string]interface{}) error {
	args := m.Called(task)
	return args.Error(0)
}

var _ NotificationPublisher = (*MockPublisher)(nil)

type MockUploader struct {
	mock.Mock
}

func (m *MockUploader) UploadFile(key string, file multipart.File, contentType string) (string, error) {
	args := m.Called(key, file, contentType)
	return args.String(0), args.Error(1)
}

var _ PhotoUploader = (*MockUploader)(nil)
