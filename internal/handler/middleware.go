package handler

import (
	"net/http"

	"event-assistance-api/internal/auth"

	"github.com/gin-gonic/gin"
)

// AuthRequired validates the bearer token and exposes the admin identity to
// downstream handlers.
func AuthRequired(jwtManager *auth.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := auth.TokenFromHeader(c.GetHeader("Authorization"))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Token requerido"})
			return
		}

		claims, err := jwtManager.Validate(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Token inválido o expirado"})
			return
		}

		c.Set("adminId", claims.Subject)
		c.Set("adminEmail", claims.Email)
		c.Next()
	}
}
