package utils

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prehab-dev/prehab/internal/types"
)

func GetExerciseID(ctx *gin.Context) (uint, error) {
	exerciseIDStr := ctx.Param("id")

	if exerciseIDStr == "" {
		return 0, fmt.Errorf("%w: exercise id not found", types.ErrValidation)
	}

	exerciseID, err := strconv.ParseUint(exerciseIDStr, 10, strconv.IntSize)

	if err != nil || exerciseID == 0 {
		return 0, fmt.Errorf("%w: invalid exercise id", types.ErrValidation)
	}

	return uint(exerciseID), nil
}

// GetListQuery reads skip, limit and sortBy. Absent values take their
// defaults; malformed numbers are a validation error.
func GetListQuery(ctx *gin.Context) (types.ListExercisesQuery, error) {
	query := types.ListExercisesQuery{
		Skip:   0,
		Limit:  types.DefaultListLimit,
		SortBy: ctx.Query("sortBy"),
	}

	var err error

	if raw, ok := ctx.GetQuery("skip"); ok {
		if query.Skip, err = strconv.Atoi(raw); err != nil {
			return types.ListExercisesQuery{}, fmt.Errorf("%w: skip must be an integer", types.ErrValidation)
		}
	}

	if raw, ok := ctx.GetQuery("limit"); ok {
		if query.Limit, err = strconv.Atoi(raw); err != nil {
			return types.ListExercisesQuery{}, fmt.Errorf("%w: limit must be an integer", types.ErrValidation)
		}
	}

	return query, nil
}
