package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/xy-planning-network/waypoint"
	"github.com/xy-planning-network/waypoint/http/ctx"
	"github.com/xy-planning-network/waypoint/http/middleware"
	"github.com/xy-planning-network/waypoint/jwt"
	"github.com/xy-planning-network/waypoint/jwt/denylist"
	"github.com/xy-planning-network/waypoint/jwt/providers"
)

func newAuthEngine(t *testing.T) *jwt.Engine {
	t.Helper()

	ks := providers.NewKeyStore()
	require.True(t, ks.GenerateKeyPair("k1", jwt.HS256, "").Ok())
	return jwt.New(ks, providers.NewJSON())
}

func signAuthToken(t *testing.T, engine *jwt.Engine, jti string) string {
	t.Helper()

	b := engine.Token().
		Kid("k1").
		Subject("user-1").
		ExpiresAt(time.Now().Unix() + 3600)
	if jti != "" {
		b.JWTID(jti)
	}

	token, err := b.Sign()
	require.True(t, err.Ok(), err.Error())
	return token
}

func newAuthCtx(token string) (*ctx.RequestCtx, *httptest.ResponseRecorder) {
	r := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		r.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	return ctx.NewRequest(w, r), w
}

func TestAuthorize(t *testing.T) {
	// Arrange
	engine := newAuthEngine(t)
	c, w := newAuthCtx(signAuthToken(t, engine, ""))

	// Act
	advanced := run(middleware.Authorize(engine), c)

	// Assert
	require.True(t, advanced)
	require.Equal(t, http.StatusOK, w.Code)

	claims, ok := c.Value(waypoint.CurrentClaimsKey).(jwt.ClaimMap)
	require.True(t, ok)
	sub, ok := claims.String("sub")
	require.True(t, ok)
	require.Equal(t, "user-1", sub)
}

func TestAuthorizeRejects(t *testing.T) {
	engine := newAuthEngine(t)

	tcs := []struct {
		name  string
		token string
	}{
		{"missing header", ""},
		{"not a token", "garbage"},
		{"tampered token", signAuthToken(t, engine, "") + "x"},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			c, w := newAuthCtx(tc.token)

			// Act
			advanced := run(middleware.Authorize(engine), c)

			// Assert
			require.False(t, advanced)
			require.Equal(t, http.StatusUnauthorized, w.Code)
			require.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))
			require.Nil(t, c.Value(waypoint.CurrentClaimsKey))
		})
	}
}

func TestAuthorizeDenylist(t *testing.T) {
	// Arrange
	engine := newAuthEngine(t)
	dl := denylist.NewMap()
	mw := middleware.Authorize(engine, middleware.WithDenylist(dl))

	token := signAuthToken(t, engine, "jti-1")
	require.NoError(t, dl.Revoke(context.Background(), "jti-1", time.Now().Add(time.Hour)))

	// Act + Assert: a revoked token is rejected
	c, w := newAuthCtx(token)
	require.False(t, run(mw, c))
	require.Equal(t, http.StatusUnauthorized, w.Code)

	// a token with a different jti still passes
	c, w = newAuthCtx(signAuthToken(t, engine, "jti-2"))
	require.True(t, run(mw, c))
	require.Equal(t, http.StatusOK, w.Code)
}

func TestAuthorizeNilEngine(t *testing.T) {
	require.True(t, run(middleware.Authorize(nil), ctx.New()))
}
