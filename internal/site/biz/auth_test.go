package biz

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edukit/campus/internal/model"
	"github.com/edukit/campus/internal/site/store"
	"github.com/edukit/campus/pkg/component/sqlite"
	apperrors "github.com/edukit/campus/pkg/errors"
	sqliteopts "github.com/edukit/campus/pkg/options/sqlite"
	"github.com/edukit/campus/pkg/security/auth/token"
	"github.com/edukit/campus/pkg/utils/json"
)

func newTestFactory(t *testing.T) store.Factory {
	t.Helper()

	opts := sqliteopts.NewOptions()
	opts.Path = ":memory:"
	client, err := sqlite.New(opts)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	factory := store.NewFactory(client.DB())
	require.NoError(t, factory.AutoMigrate())
	return factory
}

func newAuthFixture(t *testing.T) (*AuthService, store.Factory) {
	t.Helper()

	factory := newTestFactory(t)
	sessions := token.NewMemoryStore(token.WithCleanupInterval(time.Hour))
	t.Cleanup(func() { _ = sessions.Close() })

	users := NewUserService(factory)
	require.NoError(t, users.Create(context.Background(), &model.User{
		Username: "head",
		Password: "correct-horse",
		Role:     model.RoleAdmin,
		Status:   model.UserStatusEnabled,
	}))

	return NewAuthService(factory, sessions, time.Hour), factory
}

func TestLoginSuccess(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	result, verrs, err := svc.Login(ctx, map[string]any{
		"username": "head",
		"password": "correct-horse",
	})
	require.NoError(t, err)
	require.Nil(t, verrs)
	require.NotNil(t, result)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, "head", result.User.Username)
	assert.Equal(t, model.RoleAdmin, result.User.Role)

	summary, err := svc.WhoAmI(ctx, result.Token)
	require.NoError(t, err)
	assert.Equal(t, "head", summary.Username)
}

func TestLoginMissingFields(t *testing.T) {
	svc, _ := newAuthFixture(t)

	_, verrs, err := svc.Login(context.Background(), map[string]any{})
	require.NoError(t, err)
	require.NotNil(t, verrs)
	byField := verrs.ByField()
	assert.Contains(t, byField, "username")
	assert.Contains(t, byField, "password")
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	_, wrongSecret, err := svc.Login(ctx, map[string]any{
		"username": "head",
		"password": "wrong",
	})
	require.NoError(t, err)
	require.NotNil(t, wrongSecret)

	_, noSuchUser, err := svc.Login(ctx, map[string]any{
		"username": "ghost",
		"password": "wrong",
	})
	require.NoError(t, err)
	require.NotNil(t, noSuchUser)

	// The two failure payloads must be byte identical so callers cannot
	// probe which accounts exist.
	a, err := json.Marshal(wrongSecret.ByField())
	require.NoError(t, err)
	b, err := json.Marshal(noSuchUser.ByField())
	require.NoError(t, err)
	assert.Equal(t, a, b)

	assert.Equal(t, []string{invalidCredentialMessage}, wrongSecret.ByField()["username"])
	assert.Equal(t, []string{invalidCredentialMessage}, wrongSecret.ByField()["password"])
}

func TestSequentialLoginsKeepOneSession(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	creds := map[string]any{"username": "head", "password": "correct-horse"}

	first, verrs, err := svc.Login(ctx, creds)
	require.NoError(t, err)
	require.Nil(t, verrs)

	second, verrs, err := svc.Login(ctx, creds)
	require.NoError(t, err)
	require.Nil(t, verrs)

	_, err = svc.WhoAmI(ctx, first.Token)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)

	_, err = svc.WhoAmI(ctx, second.Token)
	assert.NoError(t, err)
}

func TestRefreshRotatesToken(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	login, _, err := svc.Login(ctx, map[string]any{"username": "head", "password": "correct-horse"})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(ctx, login.Token)
	require.NoError(t, err)
	assert.NotEqual(t, login.Token, refreshed.Token)

	_, err = svc.WhoAmI(ctx, login.Token)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	_, err = svc.WhoAmI(ctx, refreshed.Token)
	assert.NoError(t, err)

	_, err = svc.Refresh(ctx, "bogus")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestLogoutIsIdempotent(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	login, _, err := svc.Login(ctx, map[string]any{"username": "head", "password": "correct-horse"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, login.Token))
	_, err = svc.WhoAmI(ctx, login.Token)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)

	assert.NoError(t, svc.Logout(ctx, login.Token))
	assert.NoError(t, svc.Logout(ctx, ""))
}

func TestLoginDisabledAccount(t *testing.T) {
	svc, factory := newAuthFixture(t)
	ctx := context.Background()

	user, err := factory.Users().Get(ctx, "head")
	require.NoError(t, err)
	user.Status = model.UserStatusDisabled
	require.NoError(t, factory.Users().Update(ctx, user))

	_, verrs, err := svc.Login(ctx, map[string]any{"username": "head", "password": "correct-horse"})
	assert.Nil(t, verrs)
	assert.ErrorIs(t, err, apperrors.ErrAccountDisabled)
}

func TestPrincipalCarriesRole(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	login, _, err := svc.Login(ctx, map[string]any{"username": "head", "password": "correct-horse"})
	require.NoError(t, err)

	principal, err := svc.Principal(ctx, login.Token)
	require.NoError(t, err)
	assert.Equal(t, "head", principal.Username)
	assert.Equal(t, model.RoleAdmin, principal.Role)
	assert.NotZero(t, principal.UserID)
}
