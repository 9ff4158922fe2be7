package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/prehab-dev/prehab/internal/aggregate"
	"github.com/prehab-dev/prehab/internal/models"
	"github.com/prehab-dev/prehab/internal/repository"
	"github.com/prehab-dev/prehab/internal/types"
)

type ExerciseService struct {
	store    *repository.Store
	notifier Notifier
}

func NewExerciseService(store *repository.Store, notifier Notifier) *ExerciseService {
	return &ExerciseService{store: store, notifier: notifierOrNop(notifier)}
}

func (s *ExerciseService) Create(ctx context.Context, ownerID uint, req types.CreateExerciseRequest) (types.ExerciseResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return types.ExerciseResponse{}, fmt.Errorf("%w: name is required", types.ErrValidation)
	}

	if req.Description == nil {
		return types.ExerciseResponse{}, fmt.Errorf("%w: description is required", types.ErrValidation)
	}

	if req.Difficulty == nil {
		return types.ExerciseResponse{}, fmt.Errorf("%w: difficulty is required", types.ErrValidation)
	}

	if err := validateDifficulty(*req.Difficulty); err != nil {
		return types.ExerciseResponse{}, err
	}

	if req.IsPublic == nil {
		return types.ExerciseResponse{}, fmt.Errorf("%w: is_public is required", types.ErrValidation)
	}

	exercise := models.Exercise{
		Name:        name,
		Description: *req.Description,
		Difficulty:  *req.Difficulty,
		IsPublic:    *req.IsPublic,
		OwnerID:     ownerID,
	}
	if req.VideoURL != nil {
		exercise.VideoURL = strings.TrimSpace(*req.VideoURL)
	}

	if err := s.store.Exercises.Create(ctx, &exercise); err != nil {
		return types.ExerciseResponse{}, err
	}

	// A new id has no engagement rows yet.
	return aggregate.Fresh(exercise), nil
}

func (s *ExerciseService) Get(ctx context.Context, requester, exerciseID uint) (types.ExerciseResponse, error) {
	exercise, err := readableExercise(ctx, s.store, requester, exerciseID)
	if err != nil {
		return types.ExerciseResponse{}, err
	}

	return aggregate.ForStore(s.store).DecorateOne(ctx, requester, *exercise)
}

// List never fails because of visibility; unreadable rows are filtered out.
func (s *ExerciseService) List(ctx context.Context, requester uint, query types.ListExercisesQuery) ([]types.ExerciseResponse, error) {
	if err := ValidateListQuery(query); err != nil {
		return nil, err
	}

	exercises, err := s.store.Exercises.List(ctx, requester, query)
	if err != nil {
		return nil, err
	}

	return aggregate.ForStore(s.store).Decorate(ctx, requester, exercises)
}

// Update applies only the fields present in req.
func (s *ExerciseService) Update(ctx context.Context, requester, exerciseID uint, req types.UpdateExerciseRequest) (types.ExerciseResponse, error) {
	var response types.ExerciseResponse

	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		exercise, err := writableExercise(ctx, tx, requester, exerciseID)
		if err != nil {
			return err
		}

		fields, err := updateFields(req)
		if err != nil {
			return err
		}

		if err := tx.Exercises.Update(ctx, exercise, fields); err != nil {
			return err
		}

		response, err = aggregate.ForStore(tx).DecorateOne(ctx, requester, *exercise)
		return err
	})
	if err != nil {
		return types.ExerciseResponse{}, err
	}

	s.notifier.ExerciseChanged(exerciseID, EventUpdated)

	return response, nil
}

func (s *ExerciseService) Delete(ctx context.Context, requester, exerciseID uint) error {
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		if _, err := writableExercise(ctx, tx, requester, exerciseID); err != nil {
			return err
		}

		ids := []uint{exerciseID}
		if err := deleteEngagementForExercises(ctx, tx, ids); err != nil {
			return err
		}

		return tx.Exercises.DeleteByIDs(ctx, ids)
	})
	if err != nil {
		return err
	}

	s.notifier.ExerciseChanged(exerciseID, EventDeleted)

	return nil
}

// Users lists who favorited and who saved a readable exercise.
func (s *ExerciseService) Users(ctx context.Context, requester, exerciseID uint) (types.ExerciseUsersResponse, error) {
	if _, err := readableExercise(ctx, s.store, requester, exerciseID); err != nil {
		return types.ExerciseUsersResponse{}, err
	}

	favoritedBy, err := s.store.Favorites.UsersForExercise(ctx, exerciseID)
	if err != nil {
		return types.ExerciseUsersResponse{}, err
	}

	savedBy, err := s.store.Saves.UsersForExercise(ctx, exerciseID)
	if err != nil {
		return types.ExerciseUsersResponse{}, err
	}

	return types.ExerciseUsersResponse{FavoritedBy: favoritedBy, SavedBy: savedBy}, nil
}

// ValidateListQuery checks paging bounds and the sort key.
func ValidateListQuery(query types.ListExercisesQuery) error {
	if query.Skip < 0 {
		return fmt.Errorf("%w: skip must not be negative", types.ErrValidation)
	}

	if query.Limit < 1 || query.Limit > types.MaxListLimit {
		return fmt.Errorf("%w: limit must be between 1 and %d", types.ErrValidation, types.MaxListLimit)
	}

	switch query.SortBy {
	case "", types.SortByFavoriteCount, types.SortBySaveCount:
		return nil
	default:
		return fmt.Errorf("%w: sortBy must be %s or %s", types.ErrValidation, types.SortByFavoriteCount, types.SortBySaveCount)
	}
}

func validateDifficulty(difficulty int) error {
	if difficulty < types.MinDifficulty || difficulty > types.MaxDifficulty {
		return fmt.Errorf("%w: difficulty must be between %d and %d", types.ErrValidation, types.MinDifficulty, types.MaxDifficulty)
	}

	return nil
}

func updateFields(req types.UpdateExerciseRequest) (map[string]interface{}, error) {
	fields := make(map[string]interface{})

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name must not be empty", types.ErrValidation)
		}
		fields["name"] = name
	}

	if req.Description != nil {
		fields["description"] = *req.Description
	}

	if req.Difficulty != nil {
		if err := validateDifficulty(*req.Difficulty); err != nil {
			return nil, err
		}
		fields["difficulty"] = *req.Difficulty
	}

	if req.IsPublic != nil {
		fields["is_public"] = *req.IsPublic
	}

	if req.VideoURL != nil {
		fields["video_url"] = strings.TrimSpace(*req.VideoURL)
	}

	return fields, nil
}
