package auth_test

import (
	"errors"
	"testing"
	"time"

	auth "github.com/claritycrm/go-auth"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSigningKey = "test-signing-key"

func newTestTokenService() auth.TokenService {
	return auth.NewTokenService(
		[]byte(testSigningKey),
		24,
		"clarity-test",
		[]string{"clarity:api"},
		nil,
	)
}

func TestTokenServiceMintAndValidate(t *testing.T) {
	ts := newTestTokenService()

	identity := TestIdentity{
		id:       42,
		username: "jdoe",
		email:    "jdoe@example.com",
		role:     "sales_rep",
	}

	token, err := ts.Mint(identity)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ts.Validate(token)
	require.NoError(t, err)

	assert.Equal(t, int64(42), claims.UserID())
	assert.Equal(t, "42", claims.Subject())
	assert.Equal(t, "jdoe", claims.Username())
	assert.Equal(t, "jdoe@example.com", claims.Email())
	assert.Equal(t, "sales_rep", claims.Role())
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), claims.Expires(), time.Minute)

	// every token carries a fresh jti
	parsed, err := jwt.ParseWithClaims(token, &auth.JWTClaims{}, func(t *jwt.Token) (any, error) {
		return []byte(testSigningKey), nil
	})
	require.NoError(t, err)
	jwtClaims, ok := parsed.Claims.(*auth.JWTClaims)
	require.True(t, ok)
	assert.NotEmpty(t, jwtClaims.RegisteredClaims.ID)
}

func TestTokenServiceMintNilIdentity(t *testing.T) {
	ts := newTestTokenService()

	token, err := ts.Mint(nil)
	assert.Error(t, err)
	assert.Empty(t, token)
}

func TestTokenServiceValidateRejections(t *testing.T) {
	ts := newTestTokenService()

	identity := TestIdentity{id: 7, username: "probe", email: "probe@example.com", role: "support"}

	token, err := ts.Mint(identity)
	require.NoError(t, err)

	t.Run("Tampered token", func(t *testing.T) {
		raw := []byte(token)
		// flip one byte in the signature portion
		raw[len(raw)-2] ^= 0x01

		claims, err := ts.Validate(string(raw))
		assert.Nil(t, claims)
		assert.True(t, errors.Is(err, auth.ErrTokenInvalid))
	})

	t.Run("Garbage token", func(t *testing.T) {
		claims, err := ts.Validate("not.a.token")
		assert.Nil(t, claims)
		assert.True(t, errors.Is(err, auth.ErrTokenInvalid))
	})

	t.Run("Empty token", func(t *testing.T) {
		claims, err := ts.Validate("")
		assert.Nil(t, claims)
		assert.True(t, errors.Is(err, auth.ErrTokenInvalid))
	})

	t.Run("Wrong signing key", func(t *testing.T) {
		other := auth.NewTokenService([]byte("another-secret"), 24, "clarity-test", []string{"clarity:api"}, nil)

		claims, err := other.Validate(token)
		assert.Nil(t, claims)
		assert.True(t, errors.Is(err, auth.ErrTokenInvalid))
	})

	t.Run("Unsigned alg none token", func(t *testing.T) {
		unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, &auth.JWTClaims{
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "7",
				Issuer:    "clarity-test",
				Audience:  jwt.ClaimStrings{"clarity:api"},
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
			UID: 7,
		})
		raw, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		claims, err := ts.Validate(raw)
		assert.Nil(t, claims)
		assert.True(t, errors.Is(err, auth.ErrTokenInvalid))
	})

	t.Run("Wrong issuer", func(t *testing.T) {
		other := auth.NewTokenService([]byte(testSigningKey), 24, "someone-else", nil, nil)
		foreign, err := other.Mint(identity)
		require.NoError(t, err)

		claims, err := ts.Validate(foreign)
		assert.Nil(t, claims)
		assert.True(t, errors.Is(err, auth.ErrTokenInvalid))
	})
}

func TestTokenServiceExpiry(t *testing.T) {
	ts := newTestTokenService()

	signClaims := func(expiresAt time.Time) string {
		claims := &auth.JWTClaims{
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "9",
				Issuer:    "clarity-test",
				Audience:  jwt.ClaimStrings{"clarity:api"},
				IssuedAt:  jwt.NewNumericDate(expiresAt.Add(-time.Hour)),
				ExpiresAt: jwt.NewNumericDate(expiresAt),
			},
			UID:      9,
			UserRole: "read_only",
		}

		token, err := ts.SignClaims(claims)
		require.NoError(t, err)
		return token
	}

	t.Run("Still inside the window", func(t *testing.T) {
		token := signClaims(time.Now().Add(30 * time.Second))

		claims, err := ts.Validate(token)
		assert.NoError(t, err)
		assert.NotNil(t, claims)
	})

	t.Run("Past expiry with zero leeway", func(t *testing.T) {
		token := signClaims(time.Now().Add(-time.Second))

		claims, err := ts.Validate(token)
		assert.Nil(t, claims)
		assert.True(t, errors.Is(err, auth.ErrTokenInvalid))
	})

	t.Run("Missing expiry claim", func(t *testing.T) {
		claims := &auth.JWTClaims{
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:  "9",
				Issuer:   "clarity-test",
				Audience: jwt.ClaimStrings{"clarity:api"},
			},
			UID: 9,
		}
		token, err := ts.SignClaims(claims)
		require.NoError(t, err)

		got, err := ts.Validate(token)
		assert.Nil(t, got)
		assert.True(t, errors.Is(err, auth.ErrTokenInvalid))
	})
}
