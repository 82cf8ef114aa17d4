package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"wayfarer/internal/repo/persistent"
	"wayfarer/pkg/cache"
	"wayfarer/pkg/logger"
	"wayfarer/pkg/models"
)

// LiftUseCase runs the post re-surfacing batch. cmd/lift invokes it once per
// scheduled run (cron drives the schedule).
type LiftUseCase interface {
	Run(ctx context.Context, now time.Time) (int, error)
}

type liftUseCase struct {
	liftRepo    persistent.LiftRepository
	invalidator *Invalidator
	cache       cache.Cache
	logger      *logger.Logger
}

func NewLiftUseCase(
	liftRepo persistent.LiftRepository,
	invalidator *Invalidator,
	c cache.Cache,
	log *logger.Logger,
) LiftUseCase {
	return &liftUseCase{
		liftRepo:    liftRepo,
		invalidator: invalidator,
		cache:       c,
		logger:      log,
	}
}

// Run lifts every post with an active window. A window ending today resets
// the post to its original feed position instead. Expired windows are
// removed afterwards.
func (uc *liftUseCase) Run(ctx context.Context, now time.Time) (int, error) {
	day := now.Truncate(24 * time.Hour)

	lifts, err := uc.liftRepo.ActiveLifts(ctx, day)
	if err != nil {
		return 0, err
	}

	lifted := 0
	for _, lift := range lifts {
		if sameDay(lift.EndDate, day) {
			// Window closes today: drop the post back to its creation slot.
			if err := uc.liftRepo.SetLastLifted(ctx, lift.PostID, lift.Post.CreateDate); err != nil {
				uc.logger.Error("reset lift for post %d failed: %v", lift.PostID, err)
				continue
			}
			uc.logLift(ctx, lift.PostID, fmt.Sprintf("post %q lift window ended, restored to original position", lift.Post.Subject))
			uc.afterLift(ctx, &lift.Post)
			lifted++
			continue
		}

		if lift.DaysOfWeek != "" && !todayInDays(lift.DaysOfWeek, now) {
			continue
		}

		if err := uc.liftRepo.SetLastLifted(ctx, lift.PostID, now); err != nil {
			uc.logger.Error("lift for post %d failed: %v", lift.PostID, err)
			continue
		}
		uc.logLift(ctx, lift.PostID, fmt.Sprintf("post %q lifted automatically", lift.Post.Subject))
		uc.afterLift(ctx, &lift.Post)
		lifted++
	}

	if err := uc.liftRepo.DeleteExpired(ctx, day); err != nil {
		uc.logger.Warn("could not delete expired lift windows: %v", err)
	}

	return lifted, nil
}

func (uc *liftUseCase) logLift(ctx context.Context, postID uint, message string) {
	if err := uc.liftRepo.Log(ctx, postID, message); err != nil {
		uc.logger.Warn("could not write lift log for post %d: %v", postID, err)
	}
	uc.logger.Info("%s", message)
}

// A lift reorders feeds, so cached feeds go stale the same way a rating
// change does (plus the public feed).
func (uc *liftUseCase) afterLift(ctx context.Context, post *models.Post) {
	uc.invalidator.OnRatingChanged(ctx, post.AuthorID)
	uc.cache.Delete(ctx, cache.PublicFeedKey(), cache.PostKey(post.ID))
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

// todayInDays checks the window's weekday restriction, Monday=0 like the
// admin tooling stores it.
func todayInDays(days string, now time.Time) bool {
	// time.Weekday has Sunday=0; shift so Monday=0.
	today := fmt.Sprintf("%d", (int(now.Weekday())+6)%7)
	for _, d := range strings.Split(days, ",") {
		if strings.TrimSpace(d) == today {
			return true
		}
	}
	return false
}
