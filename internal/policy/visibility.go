// Package policy decides which exercises a user may read or mutate. Every read
// and write path goes through these predicates instead of inlining filters.
package policy

import (
	"fmt"

	"github.com/prehab-dev/prehab/internal/models"
	"github.com/prehab-dev/prehab/internal/types"
	"gorm.io/gorm"
)

func CanRead(exercise models.Exercise, requester uint) bool {
	return exercise.IsPublic || exercise.OwnerID == requester
}

// CanWrite requires ownership regardless of visibility.
func CanWrite(exercise models.Exercise, requester uint) bool {
	return exercise.OwnerID == requester
}

// AuthorizeRead returns types.ErrForbidden for an existing exercise the
// requester may not see.
func AuthorizeRead(exercise models.Exercise, requester uint) error {
	if !CanRead(exercise, requester) {
		return fmt.Errorf("%w: not authorized to view exercise %d", types.ErrForbidden, exercise.ID)
	}

	return nil
}

func AuthorizeWrite(exercise models.Exercise, requester uint) error {
	if !CanWrite(exercise, requester) {
		return fmt.Errorf("%w: not authorized to modify exercise %d", types.ErrForbidden, exercise.ID)
	}

	return nil
}

// Visible is the query form of CanRead for list reads.
func Visible(requester uint) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("(exercises.is_public = ? OR exercises.owner_id = ?)", true, requester)
	}
}
