package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prehab-dev/prehab/internal/services"
	"github.com/prehab-dev/prehab/internal/types"
	"github.com/prehab-dev/prehab/internal/utils"
)

type ExerciseHandler struct {
	exercises *services.ExerciseService
	hub       *Hub
}

func NewExerciseHandler(exercises *services.ExerciseService, hub *Hub) *ExerciseHandler {
	return &ExerciseHandler{exercises: exercises, hub: hub}
}

func (h *ExerciseHandler) CreateExercise(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		respondError(ctx, err)
		return
	}

	var req types.CreateExerciseRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err)
		return
	}

	exercise, err := h.exercises.Create(ctx.Request.Context(), userID, req)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, exercise)
}

func (h *ExerciseHandler) ListExercises(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		respondError(ctx, err)
		return
	}

	query, err := utils.GetListQuery(ctx)

	if err != nil {
		respondError(ctx, err)
		return
	}

	exercises, err := h.exercises.List(ctx.Request.Context(), userID, query)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, exercises)
}

func (h *ExerciseHandler) GetExercise(ctx *gin.Context) {
	userID, exerciseID, ok := userAndExercise(ctx)

	if !ok {
		return
	}

	exercise, err := h.exercises.Get(ctx.Request.Context(), userID, exerciseID)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, exercise)
}

func (h *ExerciseHandler) UpdateExercise(ctx *gin.Context) {
	userID, exerciseID, ok := userAndExercise(ctx)

	if !ok {
		return
	}

	var req types.UpdateExerciseRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err)
		return
	}

	exercise, err := h.exercises.Update(ctx.Request.Context(), userID, exerciseID, req)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, exercise)
}

func (h *ExerciseHandler) DeleteExercise(ctx *gin.Context) {
	userID, exerciseID, ok := userAndExercise(ctx)

	if !ok {
		return
	}

	if err := h.exercises.Delete(ctx.Request.Context(), userID, exerciseID); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

func (h *ExerciseHandler) GetExerciseUsers(ctx *gin.Context) {
	userID, exerciseID, ok := userAndExercise(ctx)

	if !ok {
		return
	}

	users, err := h.exercises.Users(ctx.Request.Context(), userID, exerciseID)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, users)
}

// userAndExercise reads the caller and the :id parameter, writing the error
// response itself when either is missing.
func userAndExercise(ctx *gin.Context) (uint, uint, bool) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		respondError(ctx, err)
		return 0, 0, false
	}

	exerciseID, err := utils.GetExerciseID(ctx)

	if err != nil {
		respondError(ctx, err)
		return 0, 0, false
	}

	return userID, exerciseID, true
}
