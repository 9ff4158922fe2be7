package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/prehab-dev/prehab/internal/models"
	"github.com/prehab-dev/prehab/internal/policy"
	"github.com/prehab-dev/prehab/internal/types"
	"gorm.io/gorm"
)

type ExerciseRepository struct {
	db *gorm.DB
}

func NewExerciseRepository(db *gorm.DB) *ExerciseRepository {
	return &ExerciseRepository{db: db}
}

func (r *ExerciseRepository) Create(ctx context.Context, exercise *models.Exercise) error {
	if err := r.db.WithContext(ctx).Create(exercise).Error; err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: owner %d", types.ErrNotFound, exercise.OwnerID)
		}
		return fmt.Errorf("failed to create exercise: %w", err)
	}

	return nil
}

func (r *ExerciseRepository) FindByID(ctx context.Context, id uint) (*models.Exercise, error) {
	var exercise models.Exercise

	if err := r.db.WithContext(ctx).First(&exercise, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: exercise %d", types.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to fetch exercise: %w", err)
	}

	return &exercise, nil
}

// List returns the exercises visible to requester, paged by skip and limit.
// Without a sort key rows come in id order; with one they come by descending
// engagement count, ties by id.
func (r *ExerciseRepository) List(ctx context.Context, requester uint, query types.ListExercisesQuery) ([]models.Exercise, error) {
	db := r.db.WithContext(ctx).
		Model(&models.Exercise{}).
		Select("exercises.*").
		Scopes(policy.Visible(requester))

	var counts *gorm.DB
	switch query.SortBy {
	case types.SortByFavoriteCount:
		counts = NewFavoriteRepository(r.db).CountSubquery()
	case types.SortBySaveCount:
		counts = NewSaveRepository(r.db).CountSubquery()
	}

	if counts != nil {
		db = db.Joins("LEFT JOIN (?) AS engagement_counts ON engagement_counts.exercise_id = exercises.id", counts).
			Order("COALESCE(engagement_counts.total, 0) DESC")
	}

	var exercises []models.Exercise
	err := db.Order("exercises.id ASC").
		Offset(query.Skip).
		Limit(query.Limit).
		Find(&exercises).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list exercises: %w", err)
	}

	return exercises, nil
}

// ListVisibleByIDs returns the subset of ids that requester may read, in id
// order. Unknown ids are skipped.
func (r *ExerciseRepository) ListVisibleByIDs(ctx context.Context, requester uint, ids []uint) ([]models.Exercise, error) {
	exercises := []models.Exercise{}
	if len(ids) == 0 {
		return exercises, nil
	}

	err := r.db.WithContext(ctx).
		Scopes(policy.Visible(requester)).
		Where("exercises.id IN ?", ids).
		Order("exercises.id ASC").
		Find(&exercises).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list exercises: %w", err)
	}

	return exercises, nil
}

// ListReadable returns every exercise requester may read, in id order.
func (r *ExerciseRepository) ListReadable(ctx context.Context, requester uint) ([]models.Exercise, error) {
	var exercises []models.Exercise

	err := r.db.WithContext(ctx).
		Scopes(policy.Visible(requester)).
		Order("exercises.id ASC").
		Find(&exercises).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list exercises: %w", err)
	}

	return exercises, nil
}

func (r *ExerciseRepository) IDsOwnedBy(ctx context.Context, ownerID uint) ([]uint, error) {
	ids := []uint{}

	err := r.db.WithContext(ctx).
		Model(&models.Exercise{}).
		Where("owner_id = ?", ownerID).
		Order("id ASC").
		Pluck("id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list owned exercises: %w", err)
	}

	return ids, nil
}

// Update writes the given columns and reloads the row.
func (r *ExerciseRepository) Update(ctx context.Context, exercise *models.Exercise, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}

	if err := r.db.WithContext(ctx).Model(exercise).Updates(fields).Error; err != nil {
		return fmt.Errorf("failed to update exercise: %w", err)
	}

	if err := r.db.WithContext(ctx).First(exercise, exercise.ID).Error; err != nil {
		return fmt.Errorf("failed to reload exercise: %w", err)
	}

	return nil
}

// DeleteByIDs removes exercises; callers remove engagement rows first.
func (r *ExerciseRepository) DeleteByIDs(ctx context.Context, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}

	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Delete(&models.Exercise{}).Error; err != nil {
		return fmt.Errorf("failed to delete exercises: %w", err)
	}

	return nil
}
