package services

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/akinalp/quickchat/models"
	"github.com/akinalp/quickchat/pkg"
)

const tokenIssuer = "quickchat"

// AuthService issues and validates HS256 access tokens. Credential checks
// happen in the external account system; this service only vouches for the
// identity carried by the token.
type AuthService interface {
	IssueAccessToken(userID string) (string, error)
	ValidateAccessToken(tokenString string) (*models.TokenClaims, error)
}

type authService struct {
	jwtSecret []byte
	accessExp time.Duration
}

func NewAuthService(jwtSecret string, accessExp time.Duration) AuthService {
	return &authService{
		jwtSecret: []byte(jwtSecret),
		accessExp: accessExp,
	}
}

func (s *authService) IssueAccessToken(userID string) (string, error) {
	now := time.Now()
	claims := &models.TokenClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessExp)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}
	return signed, nil
}

func (s *authService) ValidateAccessToken(tokenString string) (*models.TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.TokenClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	}, jwt.WithIssuer(tokenIssuer))
	if err != nil {
		return nil, fmt.Errorf("%w: invalid token", pkg.ErrUnauthorized)
	}

	claims, ok := token.Claims.(*models.TokenClaims)
	if !ok || !token.Valid || claims.UserID == "" {
		return nil, fmt.Errorf("%w: invalid token claims", pkg.ErrUnauthorized)
	}
	return claims, nil
}
