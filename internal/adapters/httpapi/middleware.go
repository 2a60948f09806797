package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	"corkboard-listing-service/internal/domain/shared"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const actorContextKey = "actor"

// ActorMiddleware extracts the already-authenticated actor identity from
// the bearer token the identity collaborator issued. Credential checks
// happen there, not here; this only verifies the signature and reads the
// user id and role claims.
func ActorMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "no bearer token"})
			return
		}
		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

		token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid claims"})
			return
		}

		sub, _ := claims["sub"].(string)
		actorID, err := uuid.Parse(sub)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid subject"})
			return
		}

		role := shared.RoleUser
		if r, _ := claims["role"].(string); r == string(shared.RoleAdmin) {
			role = shared.RoleAdmin
		}

		c.Set(actorContextKey, shared.Actor{ID: actorID, Role: role})
		c.Next()
	}
}

// actorFrom returns the actor set by ActorMiddleware.
func actorFrom(c *gin.Context) shared.Actor {
	v, _ := c.Get(actorContextKey)
	actor, _ := v.(shared.Actor)
	return actor
}

// RequireAdmin rejects non-administrator actors. Must run after
// ActorMiddleware.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !actorFrom(c).IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access only"})
			return
		}
		c.Next()
	}
}
