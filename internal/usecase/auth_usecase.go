package usecase

import (
	"context"
	"errors"

	"wayfarer/internal/repo/persistent"
	"wayfarer/pkg/apperr"
	"wayfarer/pkg/jwt"
	"wayfarer/pkg/logger"
	"wayfarer/pkg/models"

	"golang.org/x/crypto/bcrypt"
)

type RegisterInput struct {
	Username         string
	Email            string
	Password         string
	PasswordConfirm  string
	CountryInterests []uint
}

type AuthUseCase interface {
	// Register creates the user and provisions their profile with the
	// chosen country interests in one step.
	Register(ctx context.Context, input RegisterInput) (*models.User, error)
	// Login verifies credentials and returns a signed token.
	Login(ctx context.Context, username, password string) (string, *models.User, error)
}

type authUseCase struct {
	userRepo    persistent.UserRepository
	profileRepo persistent.ProfileRepository
	countryRepo persistent.CountryRepository
	jwtService  *jwt.Service
	invalidator *Invalidator
	logger      *logger.Logger
}

func NewAuthUseCase(
	userRepo persistent.UserRepository,
	profileRepo persistent.ProfileRepository,
	countryRepo persistent.CountryRepository,
	jwtService *jwt.Service,
	invalidator *Invalidator,
	log *logger.Logger,
) AuthUseCase {
	return &authUseCase{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		countryRepo: countryRepo,
		jwtService:  jwtService,
		invalidator: invalidator,
		logger:      log,
	}
}

func (uc *authUseCase) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	if input.Username == "" {
		return nil, apperr.Validation("username", "must not be empty")
	}
	if len(input.Password) < 8 {
		return nil, apperr.Validation("password", "must be at least 8 characters")
	}
	if input.Password != input.PasswordConfirm {
		return nil, apperr.Validation("password", "passwords do not match")
	}

	taken, err := uc.userRepo.UsernameTaken(ctx, input.Username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperr.Validation("username", "already taken")
	}

	countries, err := uc.countryRepo.FindByIDs(ctx, input.CountryInterests)
	if err != nil {
		return nil, err
	}
	if len(countries) != len(input.CountryInterests) {
		return nil, apperr.Validation("country_interests", "unknown country id")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username: input.Username,
		Email:    input.Email,
		Password: string(hashed),
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	profile := &models.Profile{
		UserID:            user.ID,
		IsCreate:          true,
		CountriesInterest: countries,
	}
	if err := uc.profileRepo.Create(ctx, profile); err != nil {
		return nil, err
	}

	uc.invalidator.OnUserRegistered(ctx)
	uc.logger.Info("registered user %s (id %d)", user.Username, user.ID)
	return user, nil
}

func (uc *authUseCase) Login(ctx context.Context, username, password string) (string, *models.User, error) {
	user, err := uc.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return "", nil, apperr.PermissionDenied("invalid credentials")
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, apperr.PermissionDenied("invalid credentials")
	}

	role := "member"
	if user.IsSuperuser {
		role = "admin"
	}

	token, err := uc.jwtService.GenerateToken(user.ID, role)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}
