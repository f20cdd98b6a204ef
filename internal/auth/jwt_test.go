package auth_test

import (
	"testing"
	"time"

	"tracker/internal/auth"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

func TestGenerateAndParseIdentity(t *testing.T) {
	secret := "test-secret-key"

	identity := auth.Identity{
		Subject:   "ext_user_123",
		Email:     "test@example.com",
		Name:      "Test User",
		AvatarURL: "https://example.com/avatar.png",
	}

	// Генерируем токен
	token, err := auth.GenerateToken(identity, secret, 24*time.Hour)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	// Парсим токен и проверяем, что все утверждения на месте
	parsed, err := auth.ParseIdentity(token, secret)
	assert.NoError(t, err)
	assert.Equal(t, identity.Subject, parsed.Subject)
	assert.Equal(t, identity.Email, parsed.Email)
	assert.Equal(t, identity.Name, parsed.Name)
	assert.Equal(t, identity.AvatarURL, parsed.AvatarURL)
}

func TestParseIdentity_NoAvatar(t *testing.T) {
	secret := "test-secret-key"

	identity := auth.Identity{
		Subject: "ext_user_123",
		Email:   "test@example.com",
		Name:    "Test User",
	}

	token, err := auth.GenerateToken(identity, secret, time.Hour)
	assert.NoError(t, err)

	parsed, err := auth.ParseIdentity(token, secret)
	assert.NoError(t, err)
	assert.Empty(t, parsed.AvatarURL)
}

func TestParseIdentity_InvalidToken(t *testing.T) {
	// Пытаемся парсить неверный токен
	_, err := auth.ParseIdentity("invalid-token", "test-secret-key")

	assert.Error(t, err)
	assert.Equal(t, "invalid token", err.Error())
}

func TestParseIdentity_ExpiredToken(t *testing.T) {
	secret := "test-secret-key"

	// Создаем токен с истекшим сроком действия
	identity := auth.Identity{Subject: "ext_user_123"}
	expiredToken, err := auth.GenerateToken(identity, secret, -1*time.Hour)
	assert.NoError(t, err)

	_, err = auth.ParseIdentity(expiredToken, secret)

	assert.Error(t, err)
	assert.Equal(t, "invalid token", err.Error())
}

func TestParseIdentity_WrongSecret(t *testing.T) {
	identity := auth.Identity{Subject: "ext_user_123"}
	token, err := auth.GenerateToken(identity, "secret-one", time.Hour)
	assert.NoError(t, err)

	_, err = auth.ParseIdentity(token, "secret-two")

	assert.Error(t, err)
}

func TestParseIdentity_MissingSubject(t *testing.T) {
	secret := "test-secret-key"

	// Создаем токен без внешнего идентификатора пользователя
	claims := jwt.MapClaims{
		"email": "test@example.com",
		"exp":   time.Now().Add(24 * time.Hour).Unix(),
		// Отсутствует "sub"
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenWithoutSubject, _ := token.SignedString([]byte(secret))

	_, err := auth.ParseIdentity(tokenWithoutSubject, secret)

	assert.Error(t, err)
	assert.Equal(t, "invalid claims", err.Error())
}
