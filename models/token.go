package models

import "github.com/golang-jwt/jwt/v5"

// TokenClaims is the payload of an access token. The subject identity travels
// in UserID; the HTTP middleware and the WebSocket handshake both read it.
type TokenClaims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}
