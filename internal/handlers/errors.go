package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tallybook/tally_backend/internal/apperrors"
	"github.com/tallybook/tally_backend/internal/core/domain"
	"github.com/tallybook/tally_backend/internal/dto"
	"github.com/tallybook/tally_backend/internal/middleware"
)

// respondWithError maps the service error taxonomy onto HTTP statuses.
// Structured errors carry their payload so the client can re-render the
// failed input.
func respondWithError(c *gin.Context, err error) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var loginFailed *apperrors.LoginFailedError
	var permission *domain.PermissionError
	var mismatch *domain.BalanceMismatchError

	switch {
	case errors.Is(err, apperrors.ErrNotLoggedIn):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not logged in"})
	case errors.As(err, &loginFailed):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "login failed", "username": loginFailed.Username})
	case errors.As(err, &permission):
		c.JSON(http.StatusForbidden, gin.H{"error": "missing permission", "required": permission.Required.Names()})
	case errors.As(err, &mismatch):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":            "transaction does not balance",
			"attemptedUpdates": dto.ToBalanceUpdateResponses(mismatch.AttemptedUpdates),
		})
	case errors.Is(err, apperrors.ErrSignupPasswordMismatch), errors.Is(err, apperrors.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrUserExists),
		errors.Is(err, apperrors.ErrAccountExists),
		errors.Is(err, apperrors.ErrUserCanAccessJournal):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrUserDoesntExist),
		errors.Is(err, apperrors.ErrNoInvitation),
		errors.Is(err, apperrors.ErrInvalidJournal):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		logger.Error("Unhandled service error", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// requireUserID pulls the authenticated user id out of the context, ending
// the request with 401 when the auth middleware was not applied.
func requireUserID(c *gin.Context) (string, bool) {
	userID, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not logged in"})
	}
	return userID, ok
}
