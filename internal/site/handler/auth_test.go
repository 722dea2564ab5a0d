package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edukit/campus/internal/model"
	"github.com/edukit/campus/internal/site/biz"
	"github.com/edukit/campus/internal/site/middleware"
	"github.com/edukit/campus/internal/site/store"
	"github.com/edukit/campus/pkg/component/sqlite"
	sessionopts "github.com/edukit/campus/pkg/options/session"
	sqliteopts "github.com/edukit/campus/pkg/options/sqlite"
	"github.com/edukit/campus/pkg/security/auth/token"
	"github.com/edukit/campus/pkg/utils/json"
)

type envelope struct {
	Code    int                 `json:"code"`
	Message string              `json:"message"`
	Data    map[string]any      `json:"data"`
	Errors  map[string][]string `json:"errors"`
}

func newAuthRouter(t *testing.T) (*gin.Engine, *biz.AuthService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dbOpts := sqliteopts.NewOptions()
	dbOpts.Path = ":memory:"
	client, err := sqlite.New(dbOpts)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	factory := store.NewFactory(client.DB())
	require.NoError(t, factory.AutoMigrate())

	sessions := token.NewMemoryStore(token.WithCleanupInterval(time.Hour))
	t.Cleanup(func() { _ = sessions.Close() })

	users := biz.NewUserService(factory)
	require.NoError(t, users.Create(context.Background(), &model.User{
		Username: "head",
		Password: "correct-horse",
		Role:     model.RoleAdmin,
		Status:   model.UserStatusEnabled,
	}))

	authSvc := biz.NewAuthService(factory, sessions, time.Hour)
	h := NewAuthHandler(authSvc, sessionopts.NewOptions())

	engine := gin.New()
	api := engine.Group("/api/auth")
	api.POST("/login", h.Login)
	api.POST("/logout", h.Logout)
	api.POST("/refresh", middleware.Bearer(authSvc), h.Refresh)
	api.GET("/whoami", middleware.Bearer(authSvc), h.WhoAmI)
	return engine, authSvc
}

func do(engine *gin.Engine, method, path, body, bearer string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestLoginWireContract(t *testing.T) {
	engine, _ := newAuthRouter(t)

	rec := do(engine, http.MethodPost, "/api/auth/login",
		`{"username":"head","password":"correct-horse"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)

	env := decode(t, rec)
	assert.Equal(t, "Logged in.", env.Message)
	require.NotNil(t, env.Data)
	assert.NotEmpty(t, env.Data["token"])
	user, ok := env.Data["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "head", user["username"])

	cookies := rec.Result().Cookies()
	var found bool
	for _, cookie := range cookies {
		if cookie.Name == "campus_session" {
			found = true
			assert.Equal(t, env.Data["token"], cookie.Value)
			assert.True(t, cookie.HttpOnly)
		}
	}
	assert.True(t, found, "login must mirror the token into the session cookie")
}

func TestLoginFailureWireContract(t *testing.T) {
	engine, _ := newAuthRouter(t)

	wrongPassword := do(engine, http.MethodPost, "/api/auth/login",
		`{"username":"head","password":"nope"}`, "")
	require.Equal(t, http.StatusUnprocessableEntity, wrongPassword.Code)

	unknownUser := do(engine, http.MethodPost, "/api/auth/login",
		`{"username":"nobody","password":"nope"}`, "")
	require.Equal(t, http.StatusUnprocessableEntity, unknownUser.Code)

	// Same status, same body. Account existence must not leak.
	assert.Equal(t, wrongPassword.Body.String(), unknownUser.Body.String())

	env := decode(t, wrongPassword)
	assert.Equal(t, "The given data was invalid.", env.Message)
	assert.Len(t, env.Errors["username"], 1)
	assert.Len(t, env.Errors["password"], 1)
}

func TestLoginValidationShape(t *testing.T) {
	engine, _ := newAuthRouter(t)

	rec := do(engine, http.MethodPost, "/api/auth/login", `{}`, "")
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	env := decode(t, rec)
	assert.Contains(t, env.Errors, "username")
	assert.Contains(t, env.Errors, "password")
	assert.Nil(t, env.Data)
}

func TestWhoAmIRequiresBearer(t *testing.T) {
	engine, _ := newAuthRouter(t)

	rec := do(engine, http.MethodGet, "/api/auth/whoami", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(engine, http.MethodGet, "/api/auth/whoami", "", "not-a-token")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRefreshAndLogoutFlow(t *testing.T) {
	engine, _ := newAuthRouter(t)

	login := decode(t, do(engine, http.MethodPost, "/api/auth/login",
		`{"username":"head","password":"correct-horse"}`, ""))
	tok, _ := login.Data["token"].(string)
	require.NotEmpty(t, tok)

	refreshed := do(engine, http.MethodPost, "/api/auth/refresh", "", tok)
	require.Equal(t, http.StatusOK, refreshed.Code)
	newTok, _ := decode(t, refreshed).Data["token"].(string)
	require.NotEmpty(t, newTok)
	assert.NotEqual(t, tok, newTok)

	// The superseded token no longer authenticates.
	rec := do(engine, http.MethodGet, "/api/auth/whoami", "", tok)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Logout succeeds, then succeeds again on the dead token.
	rec = do(engine, http.MethodPost, "/api/auth/logout", "", newTok)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = do(engine, http.MethodPost, "/api/auth/logout", "", newTok)
	assert.Equal(t, http.StatusOK, rec.Code)
}
