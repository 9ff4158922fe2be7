package utils

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/prehab-dev/prehab/internal/middleware"
	"github.com/prehab-dev/prehab/internal/types"
)

func GetCurrentUser(ctx *gin.Context) (middleware.AuthenticatedUser, error) {
	user, exists := ctx.Get(types.ContextUserKey)

	if !exists {
		return middleware.AuthenticatedUser{}, fmt.Errorf("%w: user not authenticated", types.ErrUnauthorized)
	}

	authenticatedUser, ok := user.(middleware.AuthenticatedUser)

	if !ok {
		return middleware.AuthenticatedUser{}, fmt.Errorf("%w: invalid user type in context", types.ErrUnauthorized)
	}

	return authenticatedUser, nil
}

func GetCurrentUserID(ctx *gin.Context) (uint, error) {
	user, err := GetCurrentUser(ctx)

	if err != nil {
		return 0, err
	}

	return user.ID, nil
}
