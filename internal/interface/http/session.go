package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/anyidea/anyidea-api/internal/domain/session"
)

const sessionIDKey = "session_id"

// sessionMiddleware resolves the session ID for the request. A bearer token
// takes precedence, then the X-Session-ID header, then an anonymous one-off
// session so every request can run without prior setup.
func sessionMiddleware(svc session.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if header := c.GetHeader("Authorization"); header != "" {
			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				abortWithError(c, NewHTTPError(http.StatusUnauthorized, "invalid_token", "invalid authorization header", nil))
				return
			}
			sid, err := svc.Validate(strings.TrimSpace(parts[1]))
			if err != nil {
				abortWithError(c, NewHTTPError(http.StatusUnauthorized, "invalid_token", errMessage(err), err))
				return
			}
			c.Set(sessionIDKey, sid)
			c.Next()
			return
		}

		if sid := strings.TrimSpace(c.GetHeader("X-Session-ID")); sid != "" {
			c.Set(sessionIDKey, sid)
			c.Next()
			return
		}

		c.Set(sessionIDKey, uuid.NewString())
		c.Next()
	}
}

func sessionID(c *gin.Context) string {
	value, ok := c.Get(sessionIDKey)
	if !ok {
		return ""
	}
	sid, _ := value.(string)
	return sid
}
