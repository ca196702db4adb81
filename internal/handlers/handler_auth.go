package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	limitergin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	portssvc "github.com/tallybook/tally_backend/internal/core/ports/services"
	"github.com/tallybook/tally_backend/internal/dto"
	"github.com/tallybook/tally_backend/internal/middleware"
)

// authHandler handles signup, login, and logout. These routes see the
// session cookie but no resolved identity.
type authHandler struct {
	userService portssvc.UserSvcFacade
	authService portssvc.AuthSvcFacade
}

func newAuthHandler(us portssvc.UserSvcFacade, as portssvc.AuthSvcFacade) *authHandler {
	return &authHandler{userService: us, authService: as}
}

// registerAuthRoutes sets up the public authentication routes behind a
// per-IP rate limit.
func registerAuthRoutes(r *gin.Engine, services *portssvc.ServiceContainer) {
	h := newAuthHandler(services.User, services.Auth)

	rate, _ := limiter.NewRateFromFormatted("10-M")
	store := memory.NewStore()
	limitMiddleware := limitergin.NewMiddleware(limiter.New(store, rate))

	auth := r.Group("/auth", limitMiddleware)
	{
		auth.POST("/signup", h.signup)
		auth.POST("/login", h.login)
		auth.POST("/logout", h.logout)
	}
}

func (h *authHandler) signup(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format: " + err.Error()})
		return
	}

	sessionID, ok := middleware.GetSessionIDFromCtx(c.Request.Context())
	if !ok {
		logger.Error("Session token missing on signup")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "session unavailable"})
		return
	}

	userID, err := h.userService.CreateUser(c.Request.Context(), sessionID, req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	logger.Info("User signed up", slog.String("user_id", userID))
	c.JSON(http.StatusCreated, dto.UserResponse{UserID: userID, Username: req.Username})
}

func (h *authHandler) login(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format: " + err.Error()})
		return
	}

	sessionID, ok := middleware.GetSessionIDFromCtx(c.Request.Context())
	if !ok {
		logger.Error("Session token missing on login")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "session unavailable"})
		return
	}

	userID, err := h.authService.Login(c.Request.Context(), sessionID, req)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.UserResponse{UserID: userID, Username: req.Username})
}

func (h *authHandler) logout(c *gin.Context) {
	sessionID, ok := middleware.GetSessionIDFromCtx(c.Request.Context())
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "session unavailable"})
		return
	}
	if err := h.authService.Logout(c.Request.Context(), sessionID); err != nil {
		respondWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
