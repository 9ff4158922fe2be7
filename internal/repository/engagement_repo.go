package repository

import (
	"context"
	"fmt"

	"github.com/prehab-dev/prehab/internal/models"
	"github.com/prehab-dev/prehab/internal/types"
	"gorm.io/gorm"
)

// MembershipRepository stores one of the (user, exercise) membership
// relations: favorites or saved.
type MembershipRepository struct {
	db    *gorm.DB
	table string
	row   func(userID, exerciseID uint) interface{}

	duplicateMsg string
	missingMsg   string
}

func NewFavoriteRepository(db *gorm.DB) *MembershipRepository {
	return &MembershipRepository{
		db:    db,
		table: "favorites",
		row: func(userID, exerciseID uint) interface{} {
			return &models.Favorite{UserID: userID, ExerciseID: exerciseID}
		},
		duplicateMsg: "exercise already favorited",
		missingMsg:   "favorite not found",
	}
}

func NewSaveRepository(db *gorm.DB) *MembershipRepository {
	return &MembershipRepository{
		db:    db,
		table: models.Saved{}.TableName(),
		row: func(userID, exerciseID uint) interface{} {
			return &models.Saved{UserID: userID, ExerciseID: exerciseID}
		},
		duplicateMsg: "exercise already saved",
		missingMsg:   "save record not found",
	}
}

// Add inserts the pair. The unique index decides races: exactly one
// concurrent Add wins, the rest get types.ErrDuplicate.
func (r *MembershipRepository) Add(ctx context.Context, userID, exerciseID uint) error {
	if err := r.db.WithContext(ctx).Create(r.row(userID, exerciseID)).Error; err != nil {
		if isDuplicate(err) {
			return fmt.Errorf("%w: %s", types.ErrDuplicate, r.duplicateMsg)
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: exercise %d", types.ErrNotFound, exerciseID)
		}
		return fmt.Errorf("failed to add %s row: %w", r.table, err)
	}

	return nil
}

func (r *MembershipRepository) Remove(ctx context.Context, userID, exerciseID uint) error {
	result := r.db.WithContext(ctx).
		Table(r.table).
		Where("user_id = ? AND exercise_id = ?", userID, exerciseID).
		Delete(r.row(0, 0))
	if result.Error != nil {
		return fmt.Errorf("failed to remove %s row: %w", r.table, result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", types.ErrNotFound, r.missingMsg)
	}

	return nil
}

func (r *MembershipRepository) Has(ctx context.Context, userID, exerciseID uint) (bool, error) {
	var count int64

	err := r.db.WithContext(ctx).
		Table(r.table).
		Where("user_id = ? AND exercise_id = ?", userID, exerciseID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check %s row: %w", r.table, err)
	}

	return count > 0, nil
}

// ExerciseIDs lists the exercises userID holds, in id order.
func (r *MembershipRepository) ExerciseIDs(ctx context.Context, userID uint) ([]uint, error) {
	ids := []uint{}

	err := r.db.WithContext(ctx).
		Table(r.table).
		Where("user_id = ?", userID).
		Order("exercise_id ASC").
		Pluck("exercise_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", r.table, err)
	}

	return ids, nil
}

func (r *MembershipRepository) CountForExercise(ctx context.Context, exerciseID uint) (int64, error) {
	var count int64

	err := r.db.WithContext(ctx).
		Table(r.table).
		Where("exercise_id = ?", exerciseID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", r.table, err)
	}

	return count, nil
}

type exerciseCount struct {
	ExerciseID uint
	Total      int64
}

// CountsByExercise returns one grouped count per exercise id; ids without
// rows are absent from the map.
func (r *MembershipRepository) CountsByExercise(ctx context.Context, exerciseIDs []uint) (map[uint]int64, error) {
	counts := make(map[uint]int64, len(exerciseIDs))
	if len(exerciseIDs) == 0 {
		return counts, nil
	}

	var rows []exerciseCount
	err := r.db.WithContext(ctx).
		Table(r.table).
		Select("exercise_id, COUNT(*) AS total").
		Where("exercise_id IN ?", exerciseIDs).
		Group("exercise_id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count %s: %w", r.table, err)
	}

	for _, row := range rows {
		counts[row.ExerciseID] = row.Total
	}

	return counts, nil
}

// MemberOf reports which of exerciseIDs userID holds.
func (r *MembershipRepository) MemberOf(ctx context.Context, userID uint, exerciseIDs []uint) (map[uint]bool, error) {
	member := make(map[uint]bool, len(exerciseIDs))
	if len(exerciseIDs) == 0 {
		return member, nil
	}

	var ids []uint
	err := r.db.WithContext(ctx).
		Table(r.table).
		Where("user_id = ? AND exercise_id IN ?", userID, exerciseIDs).
		Pluck("exercise_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to check %s rows: %w", r.table, err)
	}

	for _, id := range ids {
		member[id] = true
	}

	return member, nil
}

func (r *MembershipRepository) UsersForExercise(ctx context.Context, exerciseID uint) ([]types.UserSummary, error) {
	users := []types.UserSummary{}

	err := r.db.WithContext(ctx).
		Table("users").
		Select("users.id, users.username").
		Joins(fmt.Sprintf("JOIN %s ON %s.user_id = users.id", r.table, r.table)).
		Where(fmt.Sprintf("%s.exercise_id = ?", r.table), exerciseID).
		Order("users.id ASC").
		Scan(&users).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list %s users: %w", r.table, err)
	}

	return users, nil
}

// CountSubquery yields (exercise_id, total) rows for joining into list reads.
func (r *MembershipRepository) CountSubquery() *gorm.DB {
	return r.db.Table(r.table).
		Select("exercise_id, COUNT(*) AS total").
		Group("exercise_id")
}

func (r *MembershipRepository) DeleteForExercises(ctx context.Context, exerciseIDs []uint) error {
	if len(exerciseIDs) == 0 {
		return nil
	}

	err := r.db.WithContext(ctx).
		Table(r.table).
		Where("exercise_id IN ?", exerciseIDs).
		Delete(r.row(0, 0)).Error
	if err != nil {
		return fmt.Errorf("failed to delete %s rows: %w", r.table, err)
	}

	return nil
}

func (r *MembershipRepository) DeleteForUser(ctx context.Context, userID uint) error {
	err := r.db.WithContext(ctx).
		Table(r.table).
		Where("user_id = ?", userID).
		Delete(r.row(0, 0)).Error
	if err != nil {
		return fmt.Errorf("failed to delete %s rows: %w", r.table, err)
	}

	return nil
}
