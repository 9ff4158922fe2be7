package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/prehab-dev/prehab/internal/models"
	"github.com/prehab-dev/prehab/internal/types"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RatingRepository struct {
	db *gorm.DB
}

func NewRatingRepository(db *gorm.DB) *RatingRepository {
	return &RatingRepository{db: db}
}

// Upsert records value as userID's rating for exerciseID, replacing any
// earlier one. It reports whether this call inserted the row; of several
// concurrent first ratings exactly one reports true.
func (r *RatingRepository) Upsert(ctx context.Context, userID, exerciseID uint, value int) (bool, error) {
	if value < types.MinRating || value > types.MaxRating {
		return false, fmt.Errorf("%w: rating must be between %d and %d", types.ErrValidation, types.MinRating, types.MaxRating)
	}

	var created bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rating := models.Rating{UserID: userID, ExerciseID: exerciseID, Rating: value}
		result := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "exercise_id"}},
			DoNothing: true,
		}).Create(&rating)
		if result.Error != nil {
			return result.Error
		}

		if result.RowsAffected == 1 {
			created = true
			return nil
		}

		return tx.Model(&models.Rating{}).
			Where("user_id = ? AND exercise_id = ?", userID, exerciseID).
			Update("rating", value).Error
	})
	if err != nil {
		if isForeignKeyViolation(err) {
			return false, fmt.Errorf("%w: exercise %d", types.ErrNotFound, exerciseID)
		}
		return false, fmt.Errorf("failed to save rating: %w", err)
	}

	return created, nil
}

// Get returns userID's rating for exerciseID, or 0 when there is none.
func (r *RatingRepository) Get(ctx context.Context, userID, exerciseID uint) (int, error) {
	var values []int

	err := r.db.WithContext(ctx).
		Model(&models.Rating{}).
		Where("user_id = ? AND exercise_id = ?", userID, exerciseID).
		Limit(1).
		Pluck("rating", &values).Error
	if err != nil {
		return 0, fmt.Errorf("failed to fetch rating: %w", err)
	}

	if len(values) == 0 {
		return 0, nil
	}

	return values[0], nil
}

// AverageForExercise returns the unrounded mean rating, 0 when unrated.
func (r *RatingRepository) AverageForExercise(ctx context.Context, exerciseID uint) (float64, error) {
	var avg sql.NullFloat64

	err := r.db.WithContext(ctx).
		Model(&models.Rating{}).
		Select("AVG(rating)").
		Where("exercise_id = ?", exerciseID).
		Scan(&avg).Error
	if err != nil {
		return 0, fmt.Errorf("failed to average ratings: %w", err)
	}

	if !avg.Valid {
		return 0, nil
	}

	return avg.Float64, nil
}

type exerciseAverage struct {
	ExerciseID uint
	Average    float64
}

// AveragesByExercise returns the unrounded mean per rated exercise id.
func (r *RatingRepository) AveragesByExercise(ctx context.Context, exerciseIDs []uint) (map[uint]float64, error) {
	averages := make(map[uint]float64, len(exerciseIDs))
	if len(exerciseIDs) == 0 {
		return averages, nil
	}

	var rows []exerciseAverage
	err := r.db.WithContext(ctx).
		Model(&models.Rating{}).
		Select("exercise_id, AVG(rating) AS average").
		Where("exercise_id IN ?", exerciseIDs).
		Group("exercise_id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to average ratings: %w", err)
	}

	for _, row := range rows {
		averages[row.ExerciseID] = row.Average
	}

	return averages, nil
}

func (r *RatingRepository) DeleteForExercises(ctx context.Context, exerciseIDs []uint) error {
	if len(exerciseIDs) == 0 {
		return nil
	}

	if err := r.db.WithContext(ctx).Where("exercise_id IN ?", exerciseIDs).Delete(&models.Rating{}).Error; err != nil {
		return fmt.Errorf("failed to delete ratings: %w", err)
	}

	return nil
}

func (r *RatingRepository) DeleteForUser(ctx context.Context, userID uint) error {
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.Rating{}).Error; err != nil {
		return fmt.Errorf("failed to delete ratings: %w", err)
	}

	return nil
}
