package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prehab-dev/prehab/internal/types"
	"github.com/rs/zerolog"
)

// StatusFor maps a domain error to its HTTP status.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, types.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, types.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, types.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, types.ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, types.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, types.ErrExportUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func respondError(ctx *gin.Context, err error) {
	status := StatusFor(err)

	if status == http.StatusInternalServerError {
		zerolog.Ctx(ctx.Request.Context()).Error().Err(err).Str("route", ctx.FullPath()).Msg("request failed")
		ctx.JSON(status, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(status, gin.H{"error": err.Error()})
}

func respondBindError(ctx *gin.Context, err error) {
	zerolog.Ctx(ctx.Request.Context()).Debug().Err(err).Msg("failed to bind request")
	ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
}
