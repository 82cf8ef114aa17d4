package usecase

import (
	"context"

	"wayfarer/internal/repo/persistent"
	"wayfarer/pkg/apperr"
	"wayfarer/pkg/logger"
	"wayfarer/pkg/models"
)

type VoteUseCase interface {
	// ApplyVote records the user's vote and returns the post's new rating.
	// Repeating the current direction is an idempotent no-op.
	ApplyVote(ctx context.Context, userID, postID uint, direction models.VoteAction) (int, error)
}

type voteUseCase struct {
	voteRepo    persistent.VoteRepository
	profileRepo persistent.ProfileRepository
	invalidator *Invalidator
	logger      *logger.Logger
}

func NewVoteUseCase(
	voteRepo persistent.VoteRepository,
	profileRepo persistent.ProfileRepository,
	invalidator *Invalidator,
	log *logger.Logger,
) VoteUseCase {
	return &voteUseCase{
		voteRepo:    voteRepo,
		profileRepo: profileRepo,
		invalidator: invalidator,
		logger:      log,
	}
}

func (uc *voteUseCase) ApplyVote(ctx context.Context, userID, postID uint, direction models.VoteAction) (int, error) {
	if direction != models.VoteUp && direction != models.VoteDown {
		return 0, apperr.Validation("direction", "must be up or down")
	}

	profile, err := uc.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return 0, err
	}
	if profile.IsBlocked {
		return 0, apperr.PermissionDenied("account is blocked")
	}

	result, err := uc.voteRepo.Apply(ctx, userID, postID, direction)
	if err != nil {
		return 0, err
	}

	if result.Changed {
		uc.invalidator.OnVoteApplied(ctx, userID, result.Post)
		uc.logger.Info("user %d voted %s on post %d, rating now %d", userID, direction, postID, result.NewRating)
	}

	return result.NewRating, nil
}
