package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

// userIDKey is the key used to store the authenticated user's ID.
const userIDKey = contextKey("userID")

// WithUserID returns a copy of ctx carrying the authenticated subject.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// GetUserIDFromContext retrieves the authenticated user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	if userIDVal, exists := c.Get(string(userIDKey)); exists {
		userID, ok := userIDVal.(string)
		return userID, ok && userID != ""
	}
	userID, ok := c.Request.Context().Value(userIDKey).(string)
	return userID, ok && userID != ""
}

// ActorFromContext returns the authenticated subject, or an empty string when the request
// is anonymous. Services record an empty actor as the system user.
func ActorFromContext(c *gin.Context) string {
	userID, _ := GetUserIDFromContext(c)
	return userID
}

func abortWithError(c *gin.Context, status int, kind, reason string) {
	c.AbortWithStatusJSON(status, gin.H{"error": gin.H{"kind": kind, "reason": reason}})
}
