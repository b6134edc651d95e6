package api

import (
	"strings"

	"github.com/chxlky/trello-clone-api/internal/identity"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	ctxRequestID = "request_id"
	ctxUserID    = "user_id"

	headerRequestID = "X-Request-Id"
)

// RequestID reuses the caller's X-Request-Id or assigns a new one, and echoes
// it back on the response.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := strings.TrimSpace(c.GetHeader(headerRequestID))
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Set(ctxRequestID, rid)
		c.Writer.Header().Set(headerRequestID, rid)
		c.Next()
	}
}

func requestID(c *gin.Context) string {
	return c.GetString(ctxRequestID)
}

// Authenticate resolves the Authorization header to a user id, stored in the
// gin context for handlers, or aborts the request.
func Authenticate(resolver identity.Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := identity.TokenFromHeader(c.GetHeader("Authorization"))
		userID, err := resolver.Resolve(c.Request.Context(), token)
		if err != nil {
			abortWithIdentityError(c, err)
			return
		}
		c.Set(ctxUserID, userID)
		c.Next()
	}
}

func currentUser(c *gin.Context) int64 {
	return c.GetInt64(ctxUserID)
}
