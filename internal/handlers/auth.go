package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prehab-dev/prehab/internal/middleware"
	"github.com/prehab-dev/prehab/internal/services"
	"github.com/prehab-dev/prehab/internal/types"
	"github.com/prehab-dev/prehab/internal/utils"
)

type AuthHandler struct {
	accounts *services.AccountService
}

func NewAuthHandler(accounts *services.AccountService) *AuthHandler {
	return &AuthHandler{accounts: accounts}
}

func (h *AuthHandler) Register(ctx *gin.Context) {
	var req types.CredentialsRequest

	if err := ctx.ShouldBind(&req); err != nil {
		respondBindError(ctx, err)
		return
	}

	user, err := h.accounts.Register(ctx.Request.Context(), req)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, user)
}

// Login accepts JSON or form-encoded credentials.
func (h *AuthHandler) Login(ctx *gin.Context) {
	var req types.CredentialsRequest

	if err := ctx.ShouldBind(&req); err != nil {
		respondBindError(ctx, err)
		return
	}

	tokens, err := h.accounts.Login(ctx.Request.Context(), req)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, tokens)
}

// Refresh takes the refresh token from the Authorization header, or from the
// refresh_token body field when no header is sent.
func (h *AuthHandler) Refresh(ctx *gin.Context) {
	var token string

	if header := ctx.GetHeader("Authorization"); header != "" {
		var ok bool
		if token, ok = middleware.BearerToken(header); !ok {
			ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer {token}"})
			return
		}
	} else {
		var req types.RefreshTokenRequest
		if err := ctx.ShouldBindJSON(&req); err != nil {
			ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Refresh token is required"})
			return
		}
		token = req.RefreshToken
	}

	tokens, err := h.accounts.Refresh(ctx.Request.Context(), token)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, tokens)
}

func (h *AuthHandler) Me(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		respondError(ctx, err)
		return
	}

	user, err := h.accounts.Me(ctx.Request.Context(), userID)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, user)
}

func (h *AuthHandler) DeleteAccount(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		respondError(ctx, err)
		return
	}

	var req types.DeleteAccountRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Password is required for account deletion"})
		return
	}

	if err := h.accounts.Delete(ctx.Request.Context(), userID, req.Password); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Account deleted successfully"})
}
