package services

import (
	"context"
	"fmt"

	"github.com/prehab-dev/prehab/internal/aggregate"
	"github.com/prehab-dev/prehab/internal/metrics"
	"github.com/prehab-dev/prehab/internal/repository"
	"github.com/prehab-dev/prehab/internal/types"
)

// EngagementService handles favorites, saves and ratings. Engaging requires
// read access to the exercise; removing a favorite or save does not, so a
// user can always clear their own rows.
type EngagementService struct {
	store    *repository.Store
	notifier Notifier
}

func NewEngagementService(store *repository.Store, notifier Notifier) *EngagementService {
	return &EngagementService{store: store, notifier: notifierOrNop(notifier)}
}

func (s *EngagementService) Favorite(ctx context.Context, userID, exerciseID uint) error {
	return s.add(ctx, s.store.Favorites, "favorite", EventFavorited, userID, exerciseID)
}

func (s *EngagementService) Unfavorite(ctx context.Context, userID, exerciseID uint) error {
	return s.remove(ctx, s.store.Favorites, "favorite", EventUnfavorited, userID, exerciseID)
}

// Favorites returns the decorated exercises the user favorited and can still
// read, in id order.
func (s *EngagementService) Favorites(ctx context.Context, userID uint) ([]types.ExerciseResponse, error) {
	ids, err := s.store.Favorites.ExerciseIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	return s.decorateVisible(ctx, userID, ids)
}

func (s *EngagementService) Save(ctx context.Context, userID, exerciseID uint) error {
	return s.add(ctx, s.store.Saves, "save", EventSaved, userID, exerciseID)
}

func (s *EngagementService) Unsave(ctx context.Context, userID, exerciseID uint) error {
	return s.remove(ctx, s.store.Saves, "save", EventUnsaved, userID, exerciseID)
}

func (s *EngagementService) Saves(ctx context.Context, userID uint) (types.SavedExercisesResponse, error) {
	ids, err := s.store.Saves.ExerciseIDs(ctx, userID)
	if err != nil {
		return types.SavedExercisesResponse{}, err
	}

	return types.SavedExercisesResponse{SavedExerciseIDs: ids}, nil
}

// Rate creates or overwrites the user's rating for a readable exercise.
func (s *EngagementService) Rate(ctx context.Context, userID, exerciseID uint, req types.RateExerciseRequest) error {
	if req.Rating == nil {
		return fmt.Errorf("%w: rating is required", types.ErrValidation)
	}

	if *req.Rating < types.MinRating || *req.Rating > types.MaxRating {
		return fmt.Errorf("%w: rating must be between %d and %d", types.ErrValidation, types.MinRating, types.MaxRating)
	}

	if _, err := readableExercise(ctx, s.store, userID, exerciseID); err != nil {
		return err
	}

	created, err := s.store.Ratings.Upsert(ctx, userID, exerciseID, *req.Rating)
	if err != nil {
		return err
	}

	action := "update"
	if created {
		action = "create"
	}
	metrics.RecordEngagement("rating", action)
	s.notifier.ExerciseChanged(exerciseID, EventRated)

	return nil
}

func (s *EngagementService) add(ctx context.Context, relation *repository.MembershipRepository, kind, event string, userID, exerciseID uint) error {
	if _, err := readableExercise(ctx, s.store, userID, exerciseID); err != nil {
		return err
	}

	if err := relation.Add(ctx, userID, exerciseID); err != nil {
		return err
	}

	metrics.RecordEngagement(kind, "add")
	s.notifier.ExerciseChanged(exerciseID, event)

	return nil
}

func (s *EngagementService) remove(ctx context.Context, relation *repository.MembershipRepository, kind, event string, userID, exerciseID uint) error {
	if err := relation.Remove(ctx, userID, exerciseID); err != nil {
		return err
	}

	metrics.RecordEngagement(kind, "remove")
	s.notifier.ExerciseChanged(exerciseID, event)

	return nil
}

func (s *EngagementService) decorateVisible(ctx context.Context, userID uint, ids []uint) ([]types.ExerciseResponse, error) {
	exercises, err := s.store.Exercises.ListVisibleByIDs(ctx, userID, ids)
	if err != nil {
		return nil, err
	}

	return aggregate.ForStore(s.store).Decorate(ctx, userID, exercises)
}
