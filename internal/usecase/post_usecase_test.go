package usecase

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"wayfarer/internal/entity"
	"wayfarer/pkg/apperr"
	"wayfarer/pkg/cache"
	"wayfarer/pkg/logger"
	"wayfarer/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type postUseCaseFixture struct {
	postRepo    *MockPostRepository
	profileRepo *MockProfileRepository
	countryRepo *MockCountryRepository
	tagRepo     *MockTagRepository
	publisher   *MockPublisher
	userRepo    *MockUserRepository
	mem         *cache.Memory
	uc          PostUseCase
}

func newPostUseCaseFixture() *postUseCaseFixture {
	f := &postUseCaseFixture{
		postRepo:    new(MockPostRepository),
		profileRepo: new(MockProfileRepository),
		countryRepo: new(MockCountryRepository),
		tagRepo:     new(MockTagRepository),
		publisher:   new(MockPublisher),
		userRepo:    new(MockUserRepository),
		mem:         cache.NewMemory(),
	}
	log := logger.New()
	inv := NewInvalidator(f.mem, f.userRepo, log)
	f.uc = NewPostUseCase(
		f.postRepo, f.profileRepo, f.countryRepo, f.tagRepo,
		new(MockUploader), f.publisher, inv, f.mem, log, time.Minute,
	)
	return f
}

func creatorProfile(userID uint) *models.Profile {
	return &models.Profile{UserID: userID, IsCreate: true}
}

func TestCreatePost_HappyPath(t *testing.T) {
	f := newPostUseCaseFixture()

	f.profileRepo.On("GetByUserID", mock.Anything, uint(1)).Return(creatorProfile(1), nil)
	f.countryRepo.On("FindByIDs", mock.Anything, []uint{4}).
		Return([]models.Country{{ID: 4, Name: "Japan"}}, nil)
	f.tagRepo.On("GetOrCreateByNames", mock.Anything, []string{"hiking"}).
		Return([]models.Tag{{ID: 8, Name: "hiking"}}, nil)
	f.postRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Post")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*models.Post).ID = 10
		}).
		Return(nil)
	f.profileRepo.On("IncrementPostCount", mock.Anything, uint(1), 1).Return(nil)
	f.userRepo.On("AllIDs", mock.Anything).Return([]uint{1, 2}, nil)
	f.profileRepo.On("FollowerIDs", mock.Anything, uint(1)).Return([]uint{2}, nil)
	f.publisher.On("PublishNotificationTask", mock.MatchedBy(func(task map[string]interface{}) bool {
		return task["type"] == "new_post" && task["user_id"] == uint(2)
	})).Return(nil)

	loaded := feedPost(10, 1, time.Hour)
	loaded.Countries = []models.Country{{ID: 4, Name: "Japan"}}
	loaded.Tags = []models.Tag{{ID: 8, Name: "hiking"}}
	f.postRepo.On("GetByID", mock.Anything, uint(10)).Return(&loaded, nil)

	created, err := f.uc.CreatePost(context.Background(), 1, CreatePostInput{
		Subject:    "Kyoto in autumn",
		Body:       "worth the detour",
		CountryIDs: []uint{4},
		TagNames:   []string{"hiking"},
	})

	assert.NoError(t, err)
	assert.Equal(t, uint(10), created.ID)
	assert.Contains(t, f.mem.DeletedKeys(), cache.UserFeedKey(2))
	assert.Contains(t, f.mem.DeletedKeys(), cache.PublicFeedKey())
	f.publisher.AssertExpectations(t)
	f.postRepo.AssertExpectations(t)
}

func TestCreatePost_BodyTooShort(t *testing.T) {
	f := newPostUseCaseFixture()
	f.profileRepo.On("GetByUserID", mock.Anything, uint(1)).Return(creatorProfile(1), nil)

	_, err := f.uc.CreatePost(context.Background(), 1, CreatePostInput{
		Subject:    "hi",
		Body:       "no",
		CountryIDs: []uint{4},
	})
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestCreatePost_BodyLengthCountsRunes(t *testing.T) {
	f := newPostUseCaseFixture()
	f.profileRepo.On("GetByUserID", mock.Anything, uint(1)).Return(creatorProfile(1), nil)

	// Two runes, six bytes: still too short.
	_, err := f.uc.CreatePost(context.Background(), 1, CreatePostInput{
		Subject:    "hi",
		Body:       "日本",
		CountryIDs: []uint{4},
	})
	assert.ErrorIs(t, err, apperr.ErrValidation)

	// Three runes pass the length check and reach country resolution.
	f.countryRepo.On("FindByIDs", mock.Anything, []uint{999}).Return([]models.Country{}, nil)
	_, err = f.uc.CreatePost(context.Background(), 1, CreatePostInput{
		Subject:    "hi",
		Body:       "日本酒",
		CountryIDs: []uint{999},
	})
	assert.ErrorIs(t, err, apperr.ErrValidation)
	f.countryRepo.AssertCalled(t, "FindByIDs", mock.Anything, []uint{999})
}

func TestCreatePost_RequiresCountry(t *testing.T) {
	f := newPostUseCaseFixture()
	f.profileRepo.On("GetByUserID", mock.Anything, uint(1)).Return(creatorProfile(1), nil)

	_, err := f.uc.CreatePost(context.Background(), 1, CreatePostInput{
		Subject: "hi",
		Body:    "a trip report",
	})
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestCreatePost_UnknownCountry(t *testing.T) {
	f := newPostUseCaseFixture()
	f.profileRepo.On("GetByUserID", mock.Anything, uint(1)).Return(creatorProfile(1), nil)
	f.countryRepo.On("FindByIDs", mock.Anything, []uint{4, 999}).
		Return([]models.Country{{ID: 4}}, nil)

	_, err := f.uc.CreatePost(context.Background(), 1, CreatePostInput{
		Subject:    "hi",
		Body:       "a trip report",
		CountryIDs: []uint{4, 999},
	})
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestCreatePost_BlockedAccount(t *testing.T) {
	f := newPostUseCaseFixture()
	f.profileRepo.On("GetByUserID", mock.Anything, uint(1)).
		Return(&models.Profile{UserID: 1, IsCreate: true, IsBlocked: true}, nil)

	_, err := f.uc.CreatePost(context.Background(), 1, CreatePostInput{
		Subject: "hi", Body: "a trip report", CountryIDs: []uint{4},
	})
	assert.ErrorIs(t, err, apperr.ErrPermissionDenied)
}

func TestCreatePost_PostingDisabled(t *testing.T) {
	f := newPostUseCaseFixture()
	f.profileRepo.On("GetByUserID", mock.Anything, uint(1)).
		Return(&models.Profile{UserID: 1, IsCreate: false}, nil)

	_, err := f.uc.CreatePost(context.Background(), 1, CreatePostInput{
		Subject: "hi", Body: "a trip report", CountryIDs: []uint{4},
	})
	assert.ErrorIs(t, err, apperr.ErrPermissionDenied)
}

func TestGetPost_CacheHitRedecoratesViewer(t *testing.T) {
	f := newPostUseCaseFixture()
	ctx := context.Background()

	// A cached entry left behind by a viewer who followed the author.
	cached := entity.FeedPost{ID: 10, AuthorID: 2, IsFollowing: true}
	raw, _ := json.Marshal(cached)
	_ = f.mem.Set(ctx, cache.PostKey(10), string(raw), time.Minute)

	f.profileRepo.On("IsFollowing", mock.Anything, uint(7), uint(2)).Return(false, nil)

	got, err := f.uc.GetPost(ctx, 10, 7)
	assert.NoError(t, err)
	assert.False(t, got.IsFollowing, "stale decoration must not leak between viewers")
	f.postRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestGetPost_AuthorSeesNoFollowFlag(t *testing.T) {
	f := newPostUseCaseFixture()

	post := feedPost(10, 2, time.Hour)
	f.postRepo.On("GetByID", mock.Anything, uint(10)).Return(&post, nil)

	got, err := f.uc.GetPost(context.Background(), 10, 2)
	assert.NoError(t, err)
	assert.False(t, got.IsFollowing)
	f.profileRepo.AssertNotCalled(t, "IsFollowing", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetPost_NotFound(t *testing.T) {
	f := newPostUseCaseFixture()
	f.postRepo.On("GetByID", mock.Anything, uint(404)).
		Return(nil, apperr.NotFound("post", 404))

	_, err := f.uc.GetPost(context.Background(), 404, 0)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestDeletePost_OnlyAuthor(t *testing.T) {
	f := newPostUseCaseFixture()

	post := feedPost(10, 2, time.Hour)
	f.postRepo.On("GetByID", mock.Anything, uint(10)).Return(&post, nil)

	err := f.uc.DeletePost(context.Background(), 10, 7)
	assert.ErrorIs(t, err, apperr.ErrPermissionDenied)
	f.postRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestDeletePost_EvictsPostKeys(t *testing.T) {
	f := newPostUseCaseFixture()

	post := feedPost(10, 2, time.Hour)
	f.postRepo.On("GetByID", mock.Anything, uint(10)).Return(&post, nil)
	f.postRepo.On("Delete", mock.Anything, uint(10)).Return(nil)
	f.profileRepo.On("IncrementPostCount", mock.Anything, uint(2), -1).Return(nil)
	f.userRepo.On("AllIDs", mock.Anything).Return([]uint{2, 7}, nil)

	err := f.uc.DeletePost(context.Background(), 10, 2)
	assert.NoError(t, err)
	assert.Contains(t, f.mem.DeletedKeys(), cache.PostKey(10))
	assert.Contains(t, f.mem.DeletedKeys(), cache.PostCommentsKey(10))
	assert.Contains(t, f.mem.DeletedKeys(), cache.UserFeedKey(7))
}

func TestListByAuthor_CachesListing(t *testing.T) {
	f := newPostUseCaseFixture()

	posts := []models.Post{feedPost(1, 2, time.Hour)}
	f.postRepo.On("ListByAuthor", mock.Anything, uint(2)).Return(posts, nil).Once()

	first, err := f.uc.ListByAuthor(context.Background(), 2)
	assert.NoError(t, err)
	assert.Len(t, first, 1)

	second, err := f.uc.ListByAuthor(context.Background(), 2)
	assert.NoError(t, err)
	assert.Len(t, second, 1)
	assert.Equal(t, first[0].ID, second[0].ID)
	f.postRepo.AssertExpectations(t)
}
