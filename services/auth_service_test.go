package services

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/akinalp/quickchat/models"
	"github.com/akinalp/quickchat/pkg"
)

func TestAuthService(t *testing.T) {
	svc := NewAuthService("test-secret", time.Hour)

	t.Run("should round-trip the user id", func(t *testing.T) {
		req := require.New(t)
		token, err := svc.IssueAccessToken("u1")
		req.NoError(err)

		claims, err := svc.ValidateAccessToken(token)
		req.NoError(err)
		req.Equal("u1", claims.UserID)
		req.Equal("u1", claims.Subject)
	})

	t.Run("should reject tokens signed with another secret", func(t *testing.T) {
		token, err := NewAuthService("other-secret", time.Hour).IssueAccessToken("u1")
		require.NoError(t, err)

		_, err = svc.ValidateAccessToken(token)
		require.ErrorIs(t, err, pkg.ErrUnauthorized)
	})

	t.Run("should reject expired tokens", func(t *testing.T) {
		token, err := NewAuthService("test-secret", -time.Minute).IssueAccessToken("u1")
		require.NoError(t, err)

		_, err = svc.ValidateAccessToken(token)
		require.ErrorIs(t, err, pkg.ErrUnauthorized)
	})

	t.Run("should reject the none algorithm", func(t *testing.T) {
		claims := &models.TokenClaims{
			UserID: "u1",
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    tokenIssuer,
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = svc.ValidateAccessToken(token)
		require.ErrorIs(t, err, pkg.ErrUnauthorized)
	})

	t.Run("should reject garbage", func(t *testing.T) {
		_, err := svc.ValidateAccessToken("not.a.token")
		require.ErrorIs(t, err, pkg.ErrUnauthorized)
	})
}
