package usecase

import (
	"context"
	"testing"

	"wayfarer/pkg/apperr"
	"wayfarer/pkg/cache"
	"wayfarer/pkg/jwt"
	"wayfarer/pkg/logger"
	"wayfarer/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

type authUseCaseFixture struct {
	userRepo    *MockUserRepository
	profileRepo *MockProfileRepository
	countryRepo *MockCountryRepository
	jwtService  *jwt.Service
	mem         *cache.Memory
	uc          AuthUseCase
}

func newAuthUseCaseFixture() *authUseCaseFixture {
	f := &authUseCaseFixture{
		userRepo:    new(MockUserRepository),
		profileRepo: new(MockProfileRepository),
		countryRepo: new(MockCountryRepository),
		jwtService:  jwt.NewService("test-secret"),
		mem:         cache.NewMemory(),
	}
	log := logger.New()
	inv := NewInvalidator(f.mem, f.userRepo, log)
	f.uc = NewAuthUseCase(f.userRepo, f.profileRepo, f.countryRepo, f.jwtService, inv, log)
	return f
}

func TestRegister_CreatesUserAndProfile(t *testing.T) {
	f := newAuthUseCaseFixture()

	f.userRepo.On("UsernameTaken", mock.Anything, "cleo").Return(false, nil)
	f.userRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*models.User).ID = 7
		}).
		Return(nil)
	f.countryRepo.On("FindByIDs", mock.Anything, []uint{4}).
		Return([]models.Country{{ID: 4, Name: "Japan"}}, nil)
	f.profileRepo.On("Create", mock.Anything, mock.MatchedBy(func(p *models.Profile) bool {
		return p.UserID == 7 && p.IsCreate && len(p.CountriesInterest) == 1
	})).Return(nil)
	f.userRepo.On("AllIDs", mock.Anything).Return([]uint{7}, nil)

	user, err := f.uc.Register(context.Background(), RegisterInput{
		Username:         "cleo",
		Email:            "cleo@example.com",
		Password:         "wanderlust",
		PasswordConfirm:  "wanderlust",
		CountryInterests: []uint{4},
	})

	assert.NoError(t, err)
	assert.Equal(t, uint(7), user.ID)
	assert.NotEqual(t, "wanderlust", user.Password, "password must be stored hashed")
	assert.Contains(t, f.mem.DeletedKeys(), cache.ProfilesListKey())
	f.profileRepo.AssertExpectations(t)
}

func TestRegister_PasswordTooShort(t *testing.T) {
	f := newAuthUseCaseFixture()

	_, err := f.uc.Register(context.Background(), RegisterInput{
		Username: "cleo", Password: "short", PasswordConfirm: "short",
	})
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestRegister_PasswordMismatch(t *testing.T) {
	f := newAuthUseCaseFixture()

	_, err := f.uc.Register(context.Background(), RegisterInput{
		Username: "cleo", Password: "wanderlust", PasswordConfirm: "wanderlost",
	})
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestRegister_UsernameTaken(t *testing.T) {
	f := newAuthUseCaseFixture()
	f.userRepo.On("UsernameTaken", mock.Anything, "cleo").Return(true, nil)

	_, err := f.uc.Register(context.Background(), RegisterInput{
		Username: "cleo", Password: "wanderlust", PasswordConfirm: "wanderlust",
	})
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestRegister_UnknownCountryInterest(t *testing.T) {
	f := newAuthUseCaseFixture()
	f.userRepo.On("UsernameTaken", mock.Anything, "cleo").Return(false, nil)
	f.countryRepo.On("FindByIDs", mock.Anything, []uint{4, 999}).
		Return([]models.Country{{ID: 4, Name: "Japan"}}, nil)

	_, err := f.uc.Register(context.Background(), RegisterInput{
		Username:         "cleo",
		Email:            "cleo@example.com",
		Password:         "wanderlust",
		PasswordConfirm:  "wanderlust",
		CountryInterests: []uint{4, 999},
	})

	assert.ErrorIs(t, err, apperr.ErrValidation)
	f.userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestLogin_Success(t *testing.T) {
	f := newAuthUseCaseFixture()

	hashed, _ := bcrypt.GenerateFromPassword([]byte("wanderlust"), bcrypt.DefaultCost)
	stored := &models.User{ID: 7, Username: "cleo", Password: string(hashed)}
	f.userRepo.On("GetByUsername", mock.Anything, "cleo").Return(stored, nil)

	token, user, err := f.uc.Login(context.Background(), "cleo", "wanderlust")

	assert.NoError(t, err)
	assert.Equal(t, uint(7), user.ID)

	claims, err := f.jwtService.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "member", claims.Role)
}

func TestLogin_SuperuserGetsAdminRole(t *testing.T) {
	f := newAuthUseCaseFixture()

	hashed, _ := bcrypt.GenerateFromPassword([]byte("wanderlust"), bcrypt.DefaultCost)
	stored := &models.User{ID: 1, Username: "root", Password: string(hashed), IsSuperuser: true}
	f.userRepo.On("GetByUsername", mock.Anything, "root").Return(stored, nil)

	token, _, err := f.uc.Login(context.Background(), "root", "wanderlust")
	assert.NoError(t, err)

	claims, err := f.jwtService.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "admin", claims.Role)
}

func TestLogin_WrongPassword(t *testing.T) {
	f := newAuthUseCaseFixture()

	hashed, _ := bcrypt.GenerateFromPassword([]byte("wanderlust"), bcrypt.DefaultCost)
	f.userRepo.On("GetByUsername", mock.Anything, "cleo").
		Return(&models.User{ID: 7, Username: "cleo", Password: string(hashed)}, nil)

	_, _, err := f.uc.Login(context.Background(), "cleo", "nope")
	assert.ErrorIs(t, err, apperr.ErrPermissionDenied)
}

func TestLogin_UnknownUser(t *testing.T) {
	f := newAuthUseCaseFixture()
	f.userRepo.On("GetByUsername", mock.Anything, "ghost").
		Return(nil, apperr.NotFound("user", 0))

	_, _, err := f.uc.Login(context.Background(), "ghost", "whatever")
	// Unknown users get the same answer as wrong passwords.
	assert.ErrorIs(t, err, apperr.ErrPermissionDenied)
}
