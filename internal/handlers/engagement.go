package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prehab-dev/prehab/internal/services"
	"github.com/prehab-dev/prehab/internal/types"
	"github.com/prehab-dev/prehab/internal/utils"
)

type EngagementHandler struct {
	engagements *services.EngagementService
}

func NewEngagementHandler(engagements *services.EngagementService) *EngagementHandler {
	return &EngagementHandler{engagements: engagements}
}

func (h *EngagementHandler) AddFavorite(ctx *gin.Context) {
	h.mutate(ctx, h.engagements.Favorite)
}

func (h *EngagementHandler) RemoveFavorite(ctx *gin.Context) {
	h.mutate(ctx, h.engagements.Unfavorite)
}

func (h *EngagementHandler) ListFavorites(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		respondError(ctx, err)
		return
	}

	exercises, err := h.engagements.Favorites(ctx.Request.Context(), userID)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, exercises)
}

func (h *EngagementHandler) AddSave(ctx *gin.Context) {
	h.mutate(ctx, h.engagements.Save)
}

func (h *EngagementHandler) RemoveSave(ctx *gin.Context) {
	h.mutate(ctx, h.engagements.Unsave)
}

func (h *EngagementHandler) ListSaves(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		respondError(ctx, err)
		return
	}

	saves, err := h.engagements.Saves(ctx.Request.Context(), userID)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, saves)
}

func (h *EngagementHandler) RateExercise(ctx *gin.Context) {
	userID, exerciseID, ok := userAndExercise(ctx)

	if !ok {
		return
	}

	var req types.RateExerciseRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err)
		return
	}

	if err := h.engagements.Rate(ctx.Request.Context(), userID, exerciseID, req); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

func (h *EngagementHandler) GetCollection(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		respondError(ctx, err)
		return
	}

	exercises, err := h.engagements.Collection(ctx.Request.Context(), userID)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, exercises)
}

func (h *EngagementHandler) mutate(ctx *gin.Context, op func(ctx context.Context, userID, exerciseID uint) error) {
	userID, exerciseID, ok := userAndExercise(ctx)

	if !ok {
		return
	}

	if err := op(ctx.Request.Context(), userID, exerciseID); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
