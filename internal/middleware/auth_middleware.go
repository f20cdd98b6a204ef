package middleware

import (
	"net/http"
	"strings"

	"tracker/internal/auth"

	"github.com/gin-gonic/gin"
)

// Ключ контекста gin, под которым лежит *auth.Identity
const IdentityKey = "identity"

// JWTAuthMiddleware требует валидный bearer-токен провайдера идентичности.
// Без него запрос обрывается с 401. Используется на маршрутах мутаций.
func JWTAuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := identityFromRequest(c, jwtSecret)
		if identity == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}

		c.Set(IdentityKey, identity)
		c.Next()
	}
}

// OptionalJWTAuthMiddleware разбирает токен, если он есть, но никогда не
// обрывает запрос. Запросы-чтения без токена получают пустые результаты,
// а не ошибку.
func OptionalJWTAuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if identity := identityFromRequest(c, jwtSecret); identity != nil {
			c.Set(IdentityKey, identity)
		}
		c.Next()
	}
}

// GetIdentity returns the identity the middleware put on the context, or
// nil for an unauthenticated request.
func GetIdentity(c *gin.Context) *auth.Identity {
	value, exists := c.Get(IdentityKey)
	if !exists {
		return nil
	}
	identity, ok := value.(*auth.Identity)
	if !ok {
		return nil
	}
	return identity
}

func identityFromRequest(c *gin.Context, jwtSecret string) *auth.Identity {
	header := c.GetHeader("Authorization")
	if header == "" {
		return nil
	}

	tokenStr, found := strings.CutPrefix(header, "Bearer ")
	if !found {
		return nil
	}

	identity, err := auth.ParseIdentity(tokenStr, jwtSecret)
	if err != nil {
		return nil
	}
	return identity
}
