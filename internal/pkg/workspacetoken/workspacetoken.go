package workspacetoken

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid workspace token")

type Claims struct {
	WorkspaceID string `json:"wid"`
	jwt.RegisteredClaims
}

// Issue creates a new workspace id and the signed token carrying it.
func Issue(secret string, ttl time.Duration) (string, string, error) {
	workspaceID := uuid.NewString()
	now := time.Now()
	claims := Claims{
		WorkspaceID: workspaceID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", "", fmt.Errorf("sign workspace token failed: %w", err)
	}
	return workspaceID, signed, nil
}

func Parse(secret, raw string) (string, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}
	if _, err := uuid.Parse(claims.WorkspaceID); err != nil {
		return "", ErrInvalidToken
	}
	return claims.WorkspaceID, nil
}
