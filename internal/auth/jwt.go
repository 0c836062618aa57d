// Package auth handles password hashing and session tokens for the
// marketplace.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"art-auction/internal/auctionerrors"
	model "art-auction/internal/models"
)

// Claims carries the authenticated identity inside a session token
type Claims struct {
	UserID   string     `json:"user_id"`
	Username string     `json:"username"`
	Role     model.Role `json:"role"`
	jwt.RegisteredClaims
}

// TokenManager issues and validates HS256 session tokens
type TokenManager struct {
	secret   []byte
	tokenTTL time.Duration
}

// NewTokenManager creates a token manager. secret should be a strong random
// string; tokenTTL bounds how long a login stays valid.
func NewTokenManager(secret string, tokenTTL time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), tokenTTL: tokenTTL}
}

// Issue creates a signed token for the given user
func (m *TokenManager) Issue(user model.User, now time.Time) (string, error) {
	claims := &Claims{
		UserID:   user.UserID,
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Validate parses a token and returns its claims if the signature and expiry
// check out.
func (m *TokenManager) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
			}
			return m.secret, nil
		})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w: %v", auctionerrors.ErrInvalidCredentials, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("validate token: %w", auctionerrors.ErrInvalidCredentials)
	}
	return claims, nil
}
