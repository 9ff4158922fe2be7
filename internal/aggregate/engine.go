// Package aggregate decorates exercises with engagement counts, the average
// rating and the requester's own favorite/saved flags. Single reads and list
// reads share this code so their numbers always agree.
package aggregate

import (
	"context"
	"math"
	"time"

	"github.com/prehab-dev/prehab/internal/models"
	"github.com/prehab-dev/prehab/internal/repository"
	"github.com/prehab-dev/prehab/internal/types"
)

// Membership is the read side of a favorites or saved relation.
type Membership interface {
	CountForExercise(ctx context.Context, exerciseID uint) (int64, error)
	CountsByExercise(ctx context.Context, exerciseIDs []uint) (map[uint]int64, error)
	Has(ctx context.Context, userID, exerciseID uint) (bool, error)
	MemberOf(ctx context.Context, userID uint, exerciseIDs []uint) (map[uint]bool, error)
}

type Ratings interface {
	AverageForExercise(ctx context.Context, exerciseID uint) (float64, error)
	AveragesByExercise(ctx context.Context, exerciseIDs []uint) (map[uint]float64, error)
}

type Engine struct {
	favorites Membership
	saves     Membership
	ratings   Ratings
}

func New(favorites, saves Membership, ratings Ratings) *Engine {
	return &Engine{favorites: favorites, saves: saves, ratings: ratings}
}

// ForStore builds an engine reading through store, so reads inside a
// transaction see that transaction's writes.
func ForStore(store *repository.Store) *Engine {
	return New(store.Favorites, store.Saves, store.Ratings)
}

// Round2 fixes average ratings to two decimal places.
func Round2(value float64) float64 {
	return math.Round(value*100) / 100
}

// Decorate computes the view for a list of exercises with one grouped query
// per aggregate. Order of the input is preserved.
func (e *Engine) Decorate(ctx context.Context, requester uint, exercises []models.Exercise) ([]types.ExerciseResponse, error) {
	responses := make([]types.ExerciseResponse, 0, len(exercises))
	if len(exercises) == 0 {
		return responses, nil
	}

	ids := make([]uint, len(exercises))
	for i, exercise := range exercises {
		ids[i] = exercise.ID
	}

	favoriteCounts, err := e.favorites.CountsByExercise(ctx, ids)
	if err != nil {
		return nil, err
	}

	saveCounts, err := e.saves.CountsByExercise(ctx, ids)
	if err != nil {
		return nil, err
	}

	averages, err := e.ratings.AveragesByExercise(ctx, ids)
	if err != nil {
		return nil, err
	}

	favorited, err := e.favorites.MemberOf(ctx, requester, ids)
	if err != nil {
		return nil, err
	}

	saved, err := e.saves.MemberOf(ctx, requester, ids)
	if err != nil {
		return nil, err
	}

	for _, exercise := range exercises {
		response := Fresh(exercise)
		response.FavoriteCount = favoriteCounts[exercise.ID]
		response.SaveCount = saveCounts[exercise.ID]
		response.AverageRating = Round2(averages[exercise.ID])
		response.UserHasFavorited = favorited[exercise.ID]
		response.UserHasSaved = saved[exercise.ID]
		responses = append(responses, response)
	}

	return responses, nil
}

// DecorateOne computes the view for a single exercise row by row.
func (e *Engine) DecorateOne(ctx context.Context, requester uint, exercise models.Exercise) (types.ExerciseResponse, error) {
	response := Fresh(exercise)

	var err error
	if response.FavoriteCount, err = e.favorites.CountForExercise(ctx, exercise.ID); err != nil {
		return types.ExerciseResponse{}, err
	}

	if response.SaveCount, err = e.saves.CountForExercise(ctx, exercise.ID); err != nil {
		return types.ExerciseResponse{}, err
	}

	average, err := e.ratings.AverageForExercise(ctx, exercise.ID)
	if err != nil {
		return types.ExerciseResponse{}, err
	}
	response.AverageRating = Round2(average)

	if response.UserHasFavorited, err = e.favorites.Has(ctx, requester, exercise.ID); err != nil {
		return types.ExerciseResponse{}, err
	}

	if response.UserHasSaved, err = e.saves.Has(ctx, requester, exercise.ID); err != nil {
		return types.ExerciseResponse{}, err
	}

	return response, nil
}

// Fresh is the view of an exercise with no engagement, which is what a
// just-created exercise always has.
func Fresh(exercise models.Exercise) types.ExerciseResponse {
	return types.ExerciseResponse{
		ID:          exercise.ID,
		Name:        exercise.Name,
		Description: exercise.Description,
		Difficulty:  exercise.Difficulty,
		IsPublic:    exercise.IsPublic,
		OwnerID:     exercise.OwnerID,
		VideoURL:    exercise.VideoURL,
	}
}

// Snapshots builds export documents. Snapshots carry global aggregates only.
func (e *Engine) Snapshots(ctx context.Context, exercises []models.Exercise, exportedAt time.Time) ([]types.ExerciseSnapshot, error) {
	views, err := e.Decorate(ctx, 0, exercises)
	if err != nil {
		return nil, err
	}

	snapshots := make([]types.ExerciseSnapshot, len(views))
	for i, view := range views {
		snapshots[i] = types.ExerciseSnapshot{
			ID:            view.ID,
			Name:          view.Name,
			Description:   view.Description,
			Difficulty:    view.Difficulty,
			IsPublic:      view.IsPublic,
			OwnerID:       view.OwnerID,
			VideoURL:      view.VideoURL,
			FavoriteCount: view.FavoriteCount,
			SaveCount:     view.SaveCount,
			AverageRating: view.AverageRating,
			ExportedAt:    exportedAt,
		}
	}

	return snapshots, nil
}
