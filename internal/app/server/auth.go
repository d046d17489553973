package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// identity is what the bearer token carries about the caller. Tokens are
// issued by the identity service; this server only validates signature and
// expiry and extracts the claims.
type identity struct {
	UserId   string
	Username string
	Email    string
}

// auth method    authenticates the request and extracts the caller identity
func (s *server) auth(r *http.Request) (identity, error) {
	token := r.Header.Get("Authorization")
	if token == "" {
		return identity{}, ErrNoAuthorization
	}
	token = strings.TrimPrefix(token, "Bearer ")

	validToken, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.config.JwtSecret), nil
	})
	if err != nil || !validToken.Valid {
		return identity{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	mapClaims, ok := validToken.Claims.(jwt.MapClaims)
	if !ok {
		return identity{}, fmt.Errorf("%w: invalid map claims", ErrInvalidToken)
	}
	userId, ok := mapClaims["sub"].(string)
	if !ok || userId == "" {
		return identity{}, fmt.Errorf("%w: user id not found", ErrInvalidToken)
	}

	id := identity{UserId: userId}
	if name, ok := mapClaims["name"].(string); ok {
		id.Username = name
	}
	if email, ok := mapClaims["email"].(string); ok {
		id.Email = email
	}
	return id, nil
}
