package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prehab-dev/prehab/internal/services"
	"github.com/prehab-dev/prehab/internal/utils"
)

type ExportHandler struct {
	export *services.ExportService
}

func NewExportHandler(export *services.ExportService) *ExportHandler {
	return &ExportHandler{export: export}
}

func (h *ExportHandler) ExportExercises(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		respondError(ctx, err)
		return
	}

	exported, err := h.export.Export(ctx.Request.Context(), userID)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message":  "Exercises exported successfully",
		"exported": exported,
	})
}
