package auth

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/diceduel/diceduel/internal/model"
)

// issueToken creates a signed, expiring token for a player.
// The subject carries the player id so verification can check the token
// was issued to the player presenting it.
func (s *Service) issueToken(playerID model.PlayerID) (string, error) {
	now := s.clock.Now()
	claims := jwt.RegisteredClaims{
		Subject:   string(playerID),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.signingKey)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// parseToken validates a token's signature and expiry and returns the
// player id it was issued to
func (s *Service) parseToken(tokenString string) (model.PlayerID, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{},
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return s.signingKey, nil
		},
		jwt.WithTimeFunc(s.clock.Now),
	)
	if err != nil || !token.Valid {
		return "", model.ErrInvalidToken
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", model.ErrInvalidToken
	}
	return model.PlayerID(claims.Subject), nil
}
