package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tallybook/tally_backend/internal/apperrors"
	portssvc "github.com/tallybook/tally_backend/internal/core/ports/services"
)

// AuthMiddleware resolves the session token to a user id via the auth
// event log and stores it in the request context. Requests whose session
// is not logged in are rejected with 401.
func AuthMiddleware(authSvc portssvc.AuthSvcFacade) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		sessionID, ok := GetSessionIDFromCtx(c.Request.Context())
		if !ok {
			logger.Error("Session token missing; session middleware not applied?")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not logged in"})
			return
		}

		userID, err := authSvc.ResolveSession(c.Request.Context(), sessionID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotLoggedIn) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not logged in"})
				return
			}
			logger.Error("Failed to resolve session", slog.String("error", err.Error()))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to resolve session"})
			return
		}

		enrichedLogger := logger.With(slog.String("user_id", userID))
		ctx := ContextWithUserID(c.Request.Context(), userID)
		ctx = context.WithValue(ctx, loggerCtxKey, enrichedLogger)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
