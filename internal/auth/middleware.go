package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dkontos/go-reservation-backend/internal/config"
)

// ContextUserKey is the Gin context key under which the authenticated
// subject (account email) is stored for downstream handlers and middleware.
const ContextUserKey = "userID"

// RequireAuth returns a Gin middleware that rejects requests without a valid
// "Authorization: Bearer <token>" header. On success the token subject is
// stored in the context under ContextUserKey, where the logging and
// rate-limiting middleware also pick it up.
//
// Responses use the same JSON error envelope as the handlers package:
//
//	HTTP/1.1 401 Unauthorized
//	{ "request_id": "...", "code": "unauthorized", "message": "..." }
func RequireAuth(cfg config.JWTConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		const prefix = "Bearer "
		if !strings.HasPrefix(header, prefix) {
			abortUnauthorized(c, "missing bearer token")
			return
		}
		subject, err := Verify(cfg, strings.TrimSpace(header[len(prefix):]))
		if err != nil {
			abortUnauthorized(c, "invalid or expired token")
			return
		}
		c.Set(ContextUserKey, subject)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, msg string) {
	c.Header("WWW-Authenticate", `Bearer realm="api"`)
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"request_id": c.Writer.Header().Get("X-Request-ID"),
		"code":       "unauthorized",
		"message":    msg,
	})
}
