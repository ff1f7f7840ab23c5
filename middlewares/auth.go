package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"eventapi/models"
	"eventapi/utils"
)

const identityKey = "identity"

// Authenticate gates protected routes: it requires a `Bearer <token>`
// Authorization header (prefix is case-sensitive), verifies the token,
// and re-fetches the user so a deleted account is rejected even with a
// still-valid token. The resolved identity carries no password hash.
func Authenticate(users models.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "No token, authorization denied"})
			return
		}

		userID, err := utils.VerifyToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired token"})
			return
		}

		user, err := users.GetByID(userID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "User not found"})
			return
		}

		c.Set(identityKey, user.Summary())
		c.Next()
	}
}

// Identity returns the identity resolved by Authenticate. Handlers read
// it once and pass it down explicitly.
func Identity(c *gin.Context) (models.UserSummary, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return models.UserSummary{}, false
	}
	id, ok := v.(models.UserSummary)
	return id, ok
}
