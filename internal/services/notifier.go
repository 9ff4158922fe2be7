package services

import (
	"context"

	"github.com/prehab-dev/prehab/internal/models"
	"github.com/prehab-dev/prehab/internal/policy"
	"github.com/prehab-dev/prehab/internal/repository"
)

const (
	EventUpdated     = "updated"
	EventDeleted     = "deleted"
	EventFavorited   = "favorited"
	EventUnfavorited = "unfavorited"
	EventSaved       = "saved"
	EventUnsaved     = "unsaved"
	EventRated       = "rated"
)

// Notifier is told about committed changes to an exercise.
type Notifier interface {
	ExerciseChanged(exerciseID uint, event string)
}

type nopNotifier struct{}

func (nopNotifier) ExerciseChanged(uint, string) {}

func notifierOrNop(n Notifier) Notifier {
	if n == nil {
		return nopNotifier{}
	}
	return n
}

// readableExercise loads an exercise and applies the read policy: a missing
// row is ErrNotFound, an existing unreadable one is ErrForbidden.
func readableExercise(ctx context.Context, store *repository.Store, requester, exerciseID uint) (*models.Exercise, error) {
	exercise, err := store.Exercises.FindByID(ctx, exerciseID)
	if err != nil {
		return nil, err
	}

	if err := policy.AuthorizeRead(*exercise, requester); err != nil {
		return nil, err
	}

	return exercise, nil
}

func writableExercise(ctx context.Context, store *repository.Store, requester, exerciseID uint) (*models.Exercise, error) {
	exercise, err := store.Exercises.FindByID(ctx, exerciseID)
	if err != nil {
		return nil, err
	}

	if err := policy.AuthorizeWrite(*exercise, requester); err != nil {
		return nil, err
	}

	return exercise, nil
}
