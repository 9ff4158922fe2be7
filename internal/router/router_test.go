package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/prehab-dev/prehab/internal/auth"
	"github.com/prehab-dev/prehab/internal/handlers"
	"github.com/prehab-dev/prehab/internal/repository"
	"github.com/prehab-dev/prehab/internal/services"
	"github.com/prehab-dev/prehab/internal/testutil"
	"github.com/prehab-dev/prehab/internal/types"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type testAPI struct {
	t      *testing.T
	engine *gin.Engine
	hub    *handlers.Hub
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gdb := testutil.NewDB(t)
	store := repository.NewStore(gdb)
	log := zerolog.Nop()
	origins := types.AllowedOrigins("", "")

	tokens, err := auth.NewTokenIssuer("router-test-secret", 15*time.Minute, time.Hour)
	require.NoError(t, err)

	hub := handlers.NewHub(origins, store.Exercises, log)
	accounts := services.NewAccountService(store, tokens, auth.NewPasswordHasher(bcrypt.MinCost), hub, log)
	exercises := services.NewExerciseService(store, hub)
	engagements := services.NewEngagementService(store, hub)
	export := services.NewExportService(store, log)

	engine := NewRouter(Dependencies{
		Auth:           handlers.NewAuthHandler(accounts),
		Exercises:      handlers.NewExerciseHandler(exercises, hub),
		Engagements:    handlers.NewEngagementHandler(engagements),
		Export:         handlers.NewExportHandler(export),
		Health:         handlers.NewHealthHandler(gdb),
		Resolver:       tokens,
		Users:          store.Users,
		AllowedOrigins: origins,
		Log:            log,
	})

	return &testAPI{t: t, engine: engine, hub: hub}
}

func (a *testAPI) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	a.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(a.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)

	return w
}

func (a *testAPI) signup(username string) types.TokenResponse {
	a.t.Helper()

	creds := gin.H{"username": username, "password": "pass"}

	w := a.do(http.MethodPost, "/auth/register", "", creds)
	require.Equal(a.t, http.StatusOK, w.Code, w.Body.String())

	w = a.do(http.MethodPost, "/auth/login", "", creds)
	require.Equal(a.t, http.StatusOK, w.Code, w.Body.String())

	var tokens types.TokenResponse
	require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), &tokens))

	return tokens
}

func (a *testAPI) createExercise(token, name string, public bool) types.ExerciseResponse {
	a.t.Helper()

	w := a.do(http.MethodPost, "/exercises", token, gin.H{
		"name":        name,
		"description": name + " description",
		"difficulty":  3,
		"is_public":   public,
	})
	require.Equal(a.t, http.StatusOK, w.Code, w.Body.String())

	var exercise types.ExerciseResponse
	require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), &exercise))

	return exercise
}

func (a *testAPI) getExercise(token string, id uint) (int, types.ExerciseResponse) {
	a.t.Helper()

	w := a.do(http.MethodGet, fmt.Sprintf("/exercises/%d", id), token, nil)

	var exercise types.ExerciseResponse
	if w.Code == http.StatusOK {
		require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), &exercise))
	}

	return w.Code, exercise
}

func (a *testAPI) listExercises(token, query string) []types.ExerciseResponse {
	a.t.Helper()

	w := a.do(http.MethodGet, "/exercises"+query, token, nil)
	require.Equal(a.t, http.StatusOK, w.Code, w.Body.String())

	var exercises []types.ExerciseResponse
	require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), &exercises))

	return exercises
}

func TestEndToEnd_FavoriteSaveRate(t *testing.T) {
	api := newTestAPI(t)
	tokens := api.signup("user1")
	assert.Equal(t, "bearer", tokens.TokenType)

	created := api.createExercise(tokens.AccessToken, "Push Ups", true)
	assert.Zero(t, created.FavoriteCount)
	assert.Zero(t, created.SaveCount)
	assert.Equal(t, 0.0, created.AverageRating)
	assert.False(t, created.UserHasFavorited)
	assert.False(t, created.UserHasSaved)

	path := func(prefix string) string { return fmt.Sprintf("%s/%d", prefix, created.ID) }

	assert.Equal(t, http.StatusNoContent, api.do(http.MethodPost, path("/favorites"), tokens.AccessToken, nil).Code)
	assert.Equal(t, http.StatusNoContent, api.do(http.MethodPost, path("/saves"), tokens.AccessToken, nil).Code)
	assert.Equal(t, http.StatusNoContent, api.do(http.MethodPost, path("/ratings"), tokens.AccessToken, gin.H{"rating": 5}).Code)

	status, exercise := api.getExercise(tokens.AccessToken, created.ID)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, int64(1), exercise.FavoriteCount)
	assert.Equal(t, int64(1), exercise.SaveCount)
	assert.Equal(t, 5.0, exercise.AverageRating)
	assert.True(t, exercise.UserHasFavorited)
	assert.True(t, exercise.UserHasSaved)

	w := api.do(http.MethodGet, "/saves", tokens.AccessToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, fmt.Sprintf(`{"saved_exercise_ids":[%d]}`, created.ID), w.Body.String())

	w = api.do(http.MethodGet, "/favorites", tokens.AccessToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var favorites []types.ExerciseResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &favorites))
	require.Len(t, favorites, 1)
	assert.Equal(t, exercise, favorites[0])

	w = api.do(http.MethodGet, "/collection", tokens.AccessToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var collection []types.ExerciseResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &collection))
	assert.Equal(t, []types.ExerciseResponse{exercise}, collection)
}

func TestEndToEnd_FlagsAreRequesterRelative(t *testing.T) {
	api := newTestAPI(t)
	userA := api.signup("a")
	userB := api.signup("b")
	userC := api.signup("c")

	exercise := api.createExercise(userA.AccessToken, "Lunges", true)
	path := fmt.Sprintf("/favorites/%d", exercise.ID)

	require.Equal(t, http.StatusNoContent, api.do(http.MethodPost, path, userA.AccessToken, nil).Code)
	require.Equal(t, http.StatusNoContent, api.do(http.MethodPost, path, userB.AccessToken, nil).Code)

	_, asB := api.getExercise(userB.AccessToken, exercise.ID)
	assert.True(t, asB.UserHasFavorited)
	assert.Equal(t, int64(2), asB.FavoriteCount)

	_, asC := api.getExercise(userC.AccessToken, exercise.ID)
	assert.False(t, asC.UserHasFavorited)
	assert.Equal(t, int64(2), asC.FavoriteCount)

	listed := api.listExercises(userC.AccessToken, "")
	require.Len(t, listed, 1)
	assert.Equal(t, asC, listed[0])

	w := api.do(http.MethodGet, fmt.Sprintf("/exercises/%d/users", exercise.ID), userC.AccessToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, fmt.Sprintf(
		`{"favorited_by":[{"id":%d,"username":"a"},{"id":%d,"username":"b"}],"saved_by":[]}`,
		userA.UserID, userB.UserID,
	), w.Body.String())
}

func TestEndToEnd_SortByFavoriteCount(t *testing.T) {
	api := newTestAPI(t)
	users := []types.TokenResponse{api.signup("a"), api.signup("b")}

	zero := api.createExercise(users[0].AccessToken, "zero", true)
	one := api.createExercise(users[0].AccessToken, "one", true)
	two := api.createExercise(users[0].AccessToken, "two", true)

	for _, token := range []string{users[0].AccessToken, users[1].AccessToken} {
		require.Equal(t, http.StatusNoContent, api.do(http.MethodPost, fmt.Sprintf("/favorites/%d", two.ID), token, nil).Code)
	}
	require.Equal(t, http.StatusNoContent, api.do(http.MethodPost, fmt.Sprintf("/favorites/%d", one.ID), users[1].AccessToken, nil).Code)

	sorted := api.listExercises(users[0].AccessToken, "?sortBy=favorite_count")
	require.Len(t, sorted, 3)
	assert.Equal(t, []uint{two.ID, one.ID, zero.ID}, []uint{sorted[0].ID, sorted[1].ID, sorted[2].ID})
	assert.Equal(t, []int64{2, 1, 0}, []int64{sorted[0].FavoriteCount, sorted[1].FavoriteCount, sorted[2].FavoriteCount})

	bySaves := api.listExercises(users[0].AccessToken, "?sortBy=save_count")
	assert.Equal(t, []uint{zero.ID, one.ID, two.ID}, []uint{bySaves[0].ID, bySaves[1].ID, bySaves[2].ID})

	paged := api.listExercises(users[0].AccessToken, "?sortBy=favorite_count&skip=1&limit=1")
	require.Len(t, paged, 1)
	assert.Equal(t, one.ID, paged[0].ID)

	for _, query := range []string{"?sortBy=name", "?limit=0", "?limit=101", "?skip=-1", "?limit=abc"} {
		assert.Equal(t, http.StatusBadRequest, api.do(http.MethodGet, "/exercises"+query, users[0].AccessToken, nil).Code, query)
	}
}

func TestEndToEnd_PrivateExercises(t *testing.T) {
	api := newTestAPI(t)
	owner := api.signup("owner")
	stranger := api.signup("stranger")

	private := api.createExercise(owner.AccessToken, "secret", false)

	status, _ := api.getExercise(owner.AccessToken, private.ID)
	assert.Equal(t, http.StatusOK, status)

	status, _ = api.getExercise(stranger.AccessToken, private.ID)
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = api.getExercise(stranger.AccessToken, private.ID+100)
	assert.Equal(t, http.StatusNotFound, status)

	assert.Len(t, api.listExercises(owner.AccessToken, ""), 1)
	assert.Empty(t, api.listExercises(stranger.AccessToken, ""))

	path := fmt.Sprintf("/favorites/%d", private.ID)
	assert.Equal(t, http.StatusForbidden, api.do(http.MethodPost, path, stranger.AccessToken, nil).Code)
	assert.Equal(t, http.StatusForbidden, api.do(http.MethodGet, fmt.Sprintf("/exercises/%d/users", private.ID), stranger.AccessToken, nil).Code)
}

func TestEndToEnd_OwnershipAndPartialUpdate(t *testing.T) {
	api := newTestAPI(t)
	owner := api.signup("owner")
	other := api.signup("other")

	exercise := api.createExercise(owner.AccessToken, "Squat", true)
	path := fmt.Sprintf("/exercises/%d", exercise.ID)

	assert.Equal(t, http.StatusForbidden, api.do(http.MethodPut, path, other.AccessToken, gin.H{"name": "mine"}).Code)
	assert.Equal(t, http.StatusForbidden, api.do(http.MethodDelete, path, other.AccessToken, nil).Code)
	assert.Equal(t, http.StatusBadRequest, api.do(http.MethodPut, path, owner.AccessToken, gin.H{"difficulty": 7}).Code)

	w := api.do(http.MethodPut, path, owner.AccessToken, gin.H{"is_public": false, "video_url": "https://videos.example/squat.mp4"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var updated types.ExerciseResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, "Squat", updated.Name)
	assert.Equal(t, 3, updated.Difficulty)
	assert.False(t, updated.IsPublic)
	assert.Equal(t, "https://videos.example/squat.mp4", updated.VideoURL)

	assert.Equal(t, http.StatusNoContent, api.do(http.MethodDelete, path, owner.AccessToken, nil).Code)
	assert.Equal(t, http.StatusNotFound, api.do(http.MethodDelete, path, owner.AccessToken, nil).Code)
}

func TestEndToEnd_EngagementErrors(t *testing.T) {
	api := newTestAPI(t)
	user := api.signup("user")
	exercise := api.createExercise(user.AccessToken, "Plank", true)

	favorite := fmt.Sprintf("/favorites/%d", exercise.ID)
	save := fmt.Sprintf("/saves/%d", exercise.ID)
	rating := fmt.Sprintf("/ratings/%d", exercise.ID)

	assert.Equal(t, http.StatusNoContent, api.do(http.MethodPost, favorite, user.AccessToken, nil).Code)
	assert.Equal(t, http.StatusConflict, api.do(http.MethodPost, favorite, user.AccessToken, nil).Code)
	assert.Equal(t, http.StatusNoContent, api.do(http.MethodDelete, favorite, user.AccessToken, nil).Code)
	assert.Equal(t, http.StatusNotFound, api.do(http.MethodDelete, favorite, user.AccessToken, nil).Code)

	assert.Equal(t, http.StatusNoContent, api.do(http.MethodPost, save, user.AccessToken, nil).Code)
	assert.Equal(t, http.StatusConflict, api.do(http.MethodPost, save, user.AccessToken, nil).Code)

	assert.Equal(t, http.StatusNotFound, api.do(http.MethodPost, "/favorites/9999", user.AccessToken, nil).Code)
	assert.Equal(t, http.StatusBadRequest, api.do(http.MethodPost, "/favorites/abc", user.AccessToken, nil).Code)

	assert.Equal(t, http.StatusBadRequest, api.do(http.MethodPost, rating, user.AccessToken, gin.H{"rating": 6}).Code)
	assert.Equal(t, http.StatusBadRequest, api.do(http.MethodPost, rating, user.AccessToken, gin.H{"rating": 0}).Code)
	assert.Equal(t, http.StatusNoContent, api.do(http.MethodPost, rating, user.AccessToken, gin.H{"rating": 3}).Code)
	assert.Equal(t, http.StatusNoContent, api.do(http.MethodPost, rating, user.AccessToken, gin.H{"rating": 5}).Code)

	_, view := api.getExercise(user.AccessToken, exercise.ID)
	assert.Equal(t, 5.0, view.AverageRating)

	assert.Equal(t, http.StatusBadRequest, api.do(http.MethodPost, "/exercises", user.AccessToken, gin.H{
		"name": "Too hard", "description": "", "difficulty": 6, "is_public": true,
	}).Code)
}

func TestEndToEnd_Auth(t *testing.T) {
	api := newTestAPI(t)
	tokens := api.signup("user1")

	assert.Equal(t, http.StatusBadRequest, api.do(http.MethodPost, "/auth/register", "", gin.H{"username": "user1", "password": "x"}).Code)
	assert.Equal(t, http.StatusBadRequest, api.do(http.MethodPost, "/auth/login", "", gin.H{"username": "user1", "password": "wrong"}).Code)
	assert.Equal(t, http.StatusBadRequest, api.do(http.MethodPost, "/auth/register", "", gin.H{"username": "user2"}).Code)

	w := api.do(http.MethodPost, "/auth/register", "", gin.H{"username": "longpw", "password": strings.Repeat("p", 80)})
	assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "at most 72 bytes")

	assert.Equal(t, http.StatusUnauthorized, api.do(http.MethodGet, "/exercises", "", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, api.do(http.MethodGet, "/exercises", "garbage", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, api.do(http.MethodGet, "/exercises", tokens.RefreshToken, nil).Code, "refresh token used for access")

	assert.Equal(t, http.StatusUnauthorized, api.do(http.MethodPost, "/auth/refresh", tokens.AccessToken, nil).Code, "access token used for refresh")
	assert.Equal(t, http.StatusUnauthorized, api.do(http.MethodPost, "/auth/refresh", "", nil).Code)

	w = api.do(http.MethodPost, "/auth/refresh", tokens.RefreshToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = api.do(http.MethodPost, "/auth/refresh", "", gin.H{"refresh_token": tokens.RefreshToken})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var refreshed types.TokenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &refreshed))
	assert.Equal(t, tokens.UserID, refreshed.UserID)

	w = api.do(http.MethodGet, "/auth/me", refreshed.AccessToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, fmt.Sprintf(`{"id":%d,"username":"user1"}`, tokens.UserID), w.Body.String())
}

func TestEndToEnd_FormLogin(t *testing.T) {
	api := newTestAPI(t)
	api.signup("formuser")

	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader("username=formuser&password=pass"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	api.engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestEndToEnd_DeleteAccount(t *testing.T) {
	api := newTestAPI(t)
	owner := api.signup("owner")
	fan := api.signup("fan")

	exercise := api.createExercise(owner.AccessToken, "Bridge", true)
	require.Equal(t, http.StatusNoContent, api.do(http.MethodPost, fmt.Sprintf("/favorites/%d", exercise.ID), fan.AccessToken, nil).Code)

	assert.Equal(t, http.StatusBadRequest, api.do(http.MethodDelete, "/auth/me", owner.AccessToken, gin.H{"password": "nope"}).Code)
	assert.Equal(t, http.StatusOK, api.do(http.MethodDelete, "/auth/me", owner.AccessToken, gin.H{"password": "pass"}).Code)

	assert.Equal(t, http.StatusUnauthorized, api.do(http.MethodGet, "/auth/me", owner.AccessToken, nil).Code)

	w := api.do(http.MethodGet, "/favorites", fan.AccessToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestEndToEnd_ExportWithoutSinks(t *testing.T) {
	api := newTestAPI(t)
	user := api.signup("user")

	assert.Equal(t, http.StatusServiceUnavailable, api.do(http.MethodPost, "/migrate/exercises", user.AccessToken, nil).Code)
	assert.Equal(t, http.StatusUnauthorized, api.do(http.MethodPost, "/migrate/exercises", "", nil).Code)
}

func TestHealthAndMetrics(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w = api.do(http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "prehab_http_requests_total")
}

func TestLiveExerciseFeed(t *testing.T) {
	api := newTestAPI(t)
	owner := api.signup("owner")
	fan := api.signup("fan")
	exercise := api.createExercise(owner.AccessToken, "Deadbug", true)

	server := httptest.NewServer(api.engine)
	defer server.Close()

	wsURL := fmt.Sprintf("ws%s/ws/exercises/%d?token=%s", strings.TrimPrefix(server.URL, "http"), exercise.ID, owner.AccessToken)
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()
	defer resp.Body.Close()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))

	var welcome struct {
		Type     string                 `json:"type"`
		Exercise types.ExerciseResponse `json:"exercise"`
	}
	require.NoError(t, conn.ReadJSON(&welcome))
	assert.Equal(t, "connected", welcome.Type)
	assert.Equal(t, exercise.ID, welcome.Exercise.ID)
	assert.Equal(t, 1, api.hub.Subscribers(exercise.ID))

	require.Equal(t, http.StatusNoContent, api.do(http.MethodPost, fmt.Sprintf("/favorites/%d", exercise.ID), fan.AccessToken, nil).Code)

	var refresh handlers.RefreshMessage
	require.NoError(t, conn.ReadJSON(&refresh))
	assert.Equal(t, handlers.RefreshMessage{Type: "refresh", ExerciseID: exercise.ID, Event: services.EventFavorited}, refresh)
}

func dialLiveExercise(t *testing.T, server *httptest.Server, exerciseID uint, token string) *websocket.Conn {
	t.Helper()

	wsURL := fmt.Sprintf("ws%s/ws/exercises/%d?token=%s", strings.TrimPrefix(server.URL, "http"), exerciseID, token)
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	resp.Body.Close()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))

	var welcome struct {
		Type string `json:"type"`
	}
	require.NoError(t, conn.ReadJSON(&welcome))
	require.Equal(t, "connected", welcome.Type)

	return conn
}

func TestLiveExerciseFeed_DropsSubscriberWhenMadePrivate(t *testing.T) {
	api := newTestAPI(t)
	owner := api.signup("owner")
	fan := api.signup("fan")
	exercise := api.createExercise(owner.AccessToken, "Bird dog", true)

	server := httptest.NewServer(api.engine)
	defer server.Close()

	ownerConn := dialLiveExercise(t, server, exercise.ID, owner.AccessToken)
	defer ownerConn.Close()
	fanConn := dialLiveExercise(t, server, exercise.ID, fan.AccessToken)
	defer fanConn.Close()
	require.Equal(t, 2, api.hub.Subscribers(exercise.ID))

	w := api.do(http.MethodPut, fmt.Sprintf("/exercises/%d", exercise.ID), owner.AccessToken, gin.H{"is_public": false})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	code, _ := api.getExercise(fan.AccessToken, exercise.ID)
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, 1, api.hub.Subscribers(exercise.ID))

	var refresh handlers.RefreshMessage
	err := fanConn.ReadJSON(&refresh)
	require.Error(t, err)
	assert.True(t, websocket.IsCloseError(err, websocket.ClosePolicyViolation), err.Error())

	require.NoError(t, ownerConn.ReadJSON(&refresh))
	assert.Equal(t, services.EventUpdated, refresh.Event)

	rate := api.do(http.MethodPost, fmt.Sprintf("/ratings/%d", exercise.ID), owner.AccessToken, gin.H{"rating": 4})
	require.Equal(t, http.StatusNoContent, rate.Code, rate.Body.String())

	require.NoError(t, ownerConn.ReadJSON(&refresh))
	assert.Equal(t, handlers.RefreshMessage{Type: "refresh", ExerciseID: exercise.ID, Event: services.EventRated}, refresh)
	assert.Equal(t, 1, api.hub.Subscribers(exercise.ID))
}

func TestLiveExerciseFeed_RejectsUnreadable(t *testing.T) {
	api := newTestAPI(t)
	owner := api.signup("owner")
	stranger := api.signup("stranger")
	private := api.createExercise(owner.AccessToken, "secret", false)

	w := api.do(http.MethodGet, fmt.Sprintf("/ws/exercises/%d", private.ID), stranger.AccessToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
