package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prehab-dev/prehab/internal/middleware"
	"github.com/prehab-dev/prehab/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext(target string, params gin.Params) *gin.Context {
	gin.SetMode(gin.TestMode)

	ctx, _ := gin.CreateTestContext(httptest.NewRecorder())
	ctx.Request = httptest.NewRequest(http.MethodGet, target, nil)
	ctx.Params = params

	return ctx
}

func TestGetExerciseID(t *testing.T) {
	id, err := GetExerciseID(testContext("/", gin.Params{{Key: "id", Value: "12"}}))
	require.NoError(t, err)
	assert.Equal(t, uint(12), id)

	id, err = GetExerciseID(testContext("/", gin.Params{{Key: "id", Value: "4294967296"}}))
	require.NoError(t, err)
	assert.Equal(t, uint64(1)<<32, uint64(id))

	for _, raw := range []string{"", "abc", "-1", "0", "99999999999999999999999"} {
		_, err := GetExerciseID(testContext("/", gin.Params{{Key: "id", Value: raw}}))
		assert.ErrorIs(t, err, types.ErrValidation, "id %q", raw)
	}
}

func TestGetListQuery(t *testing.T) {
	query, err := GetListQuery(testContext("/exercises", nil))
	require.NoError(t, err)
	assert.Equal(t, types.ListExercisesQuery{Limit: types.DefaultListLimit}, query)

	query, err = GetListQuery(testContext("/exercises?skip=10&limit=5&sortBy=save_count", nil))
	require.NoError(t, err)
	assert.Equal(t, types.ListExercisesQuery{Skip: 10, Limit: 5, SortBy: "save_count"}, query)

	_, err = GetListQuery(testContext("/exercises?limit=ten", nil))
	assert.ErrorIs(t, err, types.ErrValidation)

	_, err = GetListQuery(testContext("/exercises?skip=", nil))
	assert.ErrorIs(t, err, types.ErrValidation)
}

func TestGetCurrentUser(t *testing.T) {
	ctx := testContext("/", nil)

	_, err := GetCurrentUserID(ctx)
	assert.ErrorIs(t, err, types.ErrUnauthorized)

	ctx.Set(types.ContextUserKey, middleware.AuthenticatedUser{ID: 3, Username: "carol"})
	id, err := GetCurrentUserID(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint(3), id)

	ctx.Set(types.ContextUserKey, "not a user")
	_, err = GetCurrentUser(ctx)
	assert.ErrorIs(t, err, types.ErrUnauthorized)
}
