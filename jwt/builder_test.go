package jwt_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/xy-planning-network/waypoint/jwt"
)

func TestTokenBuilderDefaults(t *testing.T) {
	// Arrange
	engine, _ := newTestEngine(t)

	// Act
	b := engine.Token()

	// Assert
	alg, ok := b.Header().String("alg")
	require.True(t, ok)
	require.Equal(t, "HS256", alg)

	typ, ok := b.Header().String("typ")
	require.True(t, ok)
	require.Equal(t, "JWT", typ)

	require.Empty(t, b.Claims())
}

func TestTokenBuilderFluentSetters(t *testing.T) {
	// Arrange
	engine, _ := newTestEngine(t)

	// Act
	b := engine.Token().
		Alg(jwt.ES256).
		Kid("k1").
		Typ("JOSE").
		Issuer("iss-1").
		Subject("sub-1").
		Audience("aud-1").
		JWTID("jti-1").
		ExpiresAt(100).
		NotBefore(50).
		IssuedAt(25).
		Claim("custom", jwt.BoolValue(true))

	// Assert
	alg, _ := b.Header().String("alg")
	require.Equal(t, "ES256", alg)
	kid, _ := b.Header().String("kid")
	require.Equal(t, "k1", kid)
	typ, _ := b.Header().String("typ")
	require.Equal(t, "JOSE", typ)

	iss, _ := b.Claims().String("iss")
	require.Equal(t, "iss-1", iss)
	sub, _ := b.Claims().String("sub")
	require.Equal(t, "sub-1", sub)
	aud, _ := b.Claims().String("aud")
	require.Equal(t, "aud-1", aud)
	jti, _ := b.Claims().String("jti")
	require.Equal(t, "jti-1", jti)

	exp, _ := b.Claims().Int64("exp")
	require.EqualValues(t, 100, exp)
	nbf, _ := b.Claims().Int64("nbf")
	require.EqualValues(t, 50, nbf)
	iat, _ := b.Claims().Int64("iat")
	require.EqualValues(t, 25, iat)

	custom, _ := b.Claims().Bool("custom")
	require.True(t, custom)
}

func TestTokenBuilderRandomJWTID(t *testing.T) {
	// Arrange
	engine, _ := newTestEngine(t)

	// Act
	first, ok := engine.Token().RandomJWTID().Claims().String("jti")
	require.True(t, ok)
	second, ok := engine.Token().RandomJWTID().Claims().String("jti")
	require.True(t, ok)

	// Assert
	require.NotEmpty(t, first)
	require.NotEqual(t, first, second)
}

func TestTokenBuilderClearClaims(t *testing.T) {
	// Arrange
	engine, _ := newTestEngine(t)
	b := engine.Token().Kid("k1").Issuer("iss-1").Subject("sub-1")

	// Act
	b.ClearClaims()

	// Assert
	require.Empty(t, b.Claims())
	kid, ok := b.Header().String("kid")
	require.True(t, ok)
	require.Equal(t, "k1", kid)
}

func TestTokenBuilderSignHeaderFailures(t *testing.T) {
	engine, _ := newTestEngine(t)

	t.Run("missing kid", func(t *testing.T) {
		_, err := engine.Token().Sign()
		require.Equal(t, jwt.KeyNotFound, err.Code)
	})

	t.Run("unknown alg", func(t *testing.T) {
		b := engine.Token().Kid("k1")
		b.Header()["alg"] = jwt.StringValue("none")

		_, err := b.Sign()
		require.Equal(t, jwt.UnsupportedAlg, err.Code)
	})

	t.Run("missing alg", func(t *testing.T) {
		b := engine.Token().Kid("k1")
		delete(b.Header(), "alg")

		_, err := b.Sign()
		require.Equal(t, jwt.UnsupportedAlg, err.Code)
	})
}

func TestTokenBuilderSignShape(t *testing.T) {
	// Arrange
	engine, _ := newTestEngine(t)

	// Act
	token, err := engine.Token().
		Kid("k1").
		ExpiresAt(time.Now().Unix() + 60).
		Sign()

	// Assert
	require.True(t, err.Ok(), err.Error())
	require.Len(t, strings.Split(token, "."), 3)
}

func TestTokenBuilderSignUnknownKey(t *testing.T) {
	// Arrange
	engine, _ := newTestEngine(t)

	// Act
	_, err := engine.Token().Kid("missing").Sign()

	// Assert
	require.Equal(t, jwt.KeyNotFound, err.Code)
}
