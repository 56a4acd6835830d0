package api

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"moodmeal/internal/logging"
)

// SessionHeader carries the cart session id in both directions.
const SessionHeader = "X-Session-ID"

// Session assigns every request a session id. A missing or malformed id
// starts a new session, echoed back in the response header.
func Session() gin.HandlerFunc {
	return func(c *gin.Context) {
		sid := c.GetHeader(SessionHeader)
		if _, err := uuid.Parse(sid); err != nil {
			sid = uuid.NewString()
		}
		c.Set(logging.SessionKey, sid)
		c.Header(SessionHeader, sid)
		c.Next()
	}
}

func sessionID(c *gin.Context) string {
	return c.GetString(logging.SessionKey)
}
