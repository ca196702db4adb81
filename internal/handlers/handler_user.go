package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/tallybook/tally_backend/internal/core/ports/services"
	"github.com/tallybook/tally_backend/internal/dto"
)

// userHandler handles requests against the authenticated user's own
// aggregate.
type userHandler struct {
	userService portssvc.UserSvcFacade
}

func newUserHandler(us portssvc.UserSvcFacade) *userHandler {
	return &userHandler{userService: us}
}

func registerUserRoutes(rg *gin.RouterGroup, userService portssvc.UserSvcFacade) {
	h := newUserHandler(userService)

	me := rg.Group("/users/me")
	{
		me.GET("", h.getMe)
		me.PUT("/username", h.updateUsername)
		me.PUT("/password", h.updatePassword)
		me.DELETE("", h.deleteMe)
	}
}

func (h *userHandler) getMe(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	username, err := h.userService.GetUsername(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.UserResponse{UserID: userID, Username: username})
}

func (h *userHandler) updateUsername(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateUsernameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format: " + err.Error()})
		return
	}
	if err := h.userService.UpdateUsername(c.Request.Context(), userID, req.Username); err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.UserResponse{UserID: userID, Username: req.Username})
}

func (h *userHandler) updatePassword(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format: " + err.Error()})
		return
	}
	if err := h.userService.UpdatePassword(c.Request.Context(), userID, req); err != nil {
		respondWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *userHandler) deleteMe(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	if err := h.userService.DeleteUser(c.Request.Context(), userID); err != nil {
		respondWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
