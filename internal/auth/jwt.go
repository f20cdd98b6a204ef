package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Identity — профиль аутентифицированного пользователя из токена внешнего
// провайдера. Subject — стабильный внешний идентификатор.
type Identity struct {
	Subject   string
	Email     string
	Name      string
	AvatarURL string
}

// GenerateToken signs an identity token the way the identity provider does.
// Used by local development and the tests.
func GenerateToken(identity Identity, secret string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":   identity.Subject,
		"email": identity.Email,
		"name":  identity.Name,
		"exp":   time.Now().Add(ttl).Unix(),
	}
	if identity.AvatarURL != "" {
		claims["avatar_url"] = identity.AvatarURL
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseIdentity validates the bearer token and extracts the identity claims
func ParseIdentity(tokenStr, secret string) (*Identity, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid claims")
	}

	subject, ok := claims["sub"].(string)
	if !ok || subject == "" {
		return nil, errors.New("invalid claims")
	}

	identity := &Identity{Subject: subject}
	if email, ok := claims["email"].(string); ok {
		identity.Email = email
	}
	if name, ok := claims["name"].(string); ok {
		identity.Name = name
	}
	if avatarURL, ok := claims["avatar_url"].(string); ok {
		identity.AvatarURL = avatarURL
	}

	return identity, nil
}
