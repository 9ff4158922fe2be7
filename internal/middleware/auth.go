package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/prehab-dev/prehab/internal/models"
	"github.com/prehab-dev/prehab/internal/types"
	"github.com/rs/zerolog"
)

type AuthenticatedUser struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

// AccessResolver maps an access token to a user id.
type AccessResolver interface {
	ResolveAccess(token string) (uint, error)
}

type UserFinder interface {
	FindByID(ctx context.Context, id uint) (*models.User, error)
}

// AuthMiddleware resolves the bearer token and loads the user it names.
// Websocket upgrades may pass the token in the token query parameter since
// browsers cannot set headers on them.
func AuthMiddleware(resolver AccessResolver, users UserFinder) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		tokenString, ok := bearerToken(ctx)

		if !ok {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer {token}"})
			return
		}

		userID, err := resolver.ResolveAccess(tokenString)

		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		user, err := users.FindByID(ctx.Request.Context(), userID)

		if err != nil {
			if errors.Is(err, types.ErrNotFound) {
				ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
				return
			}
			zerolog.Ctx(ctx.Request.Context()).Error().Err(err).Msg("failed to load authenticated user")
			ctx.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		ctx.Set(types.ContextUserKey, AuthenticatedUser{
			ID:       user.ID,
			Username: user.Username,
		})
		ctx.Next()
	}
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)

	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}

	return parts[1], true
}

func bearerToken(ctx *gin.Context) (string, bool) {
	if header := ctx.GetHeader("Authorization"); header != "" {
		return BearerToken(header)
	}

	if websocket.IsWebSocketUpgrade(ctx.Request) {
		if token := ctx.Query("token"); token != "" {
			return token, true
		}
	}

	return "", false
}
