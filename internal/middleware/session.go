package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	portsrepo "github.com/tallybook/tally_backend/internal/core/ports/repositories"
	"github.com/tallybook/tally_backend/internal/utils"
)

// SessionMiddleware ensures every visitor carries an opaque session token
// in a cookie and keeps its presence flag alive in the session store. The
// token itself is meaningless to the core; identity comes from the auth
// event log.
func SessionMiddleware(cookieName string, ttl time.Duration, secure bool, sessions portsrepo.SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		token, err := c.Cookie(cookieName)
		if err != nil || token == "" {
			token, err = utils.GenerateSecureRandomString(32)
			if err != nil {
				logger.Error("Failed to mint session token", slog.String("error", err.Error()))
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "session unavailable"})
				return
			}
			c.SetCookie(cookieName, token, int(ttl.Seconds()), "/", "", secure, true)
		}

		if err := sessions.Touch(c.Request.Context(), token, ttl); err != nil {
			// The presence flag is best-effort; identity still resolves
			// from the auth event log.
			logger.Warn("Failed to touch session", slog.String("error", err.Error()))
		}

		c.Request = c.Request.WithContext(ContextWithSessionID(c.Request.Context(), token))
		c.Next()
	}
}
