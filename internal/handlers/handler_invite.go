package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/tallybook/tally_backend/internal/core/ports/services"
	"github.com/tallybook/tally_backend/internal/dto"
)

// inviteHandler handles journal sharing: invitations, responses, and
// tenant removal.
type inviteHandler struct {
	inviteService portssvc.InviteSvcFacade
}

func newInviteHandler(is portssvc.InviteSvcFacade) *inviteHandler {
	return &inviteHandler{inviteService: is}
}

func registerInviteRoutes(rg *gin.RouterGroup, inviteService portssvc.InviteSvcFacade) {
	h := newInviteHandler(inviteService)

	rg.GET("/invites", h.listInvites)
	rg.POST("/journals/:journalID/invites", h.invite)
	rg.POST("/journals/:journalID/invites/respond", h.respond)
	rg.DELETE("/journals/:journalID/tenants/:username", h.removeTenant)
}

func (h *inviteHandler) listInvites(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	invites, err := h.inviteService.ListInvites(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, invites)
}

func (h *inviteHandler) invite(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.InviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format: " + err.Error()})
		return
	}
	if err := h.inviteService.InviteToJournal(c.Request.Context(), userID, c.Param("journalID"), req); err != nil {
		respondWithError(c, err)
		return
	}
	c.Status(http.StatusCreated)
}

func (h *inviteHandler) respond(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.RespondToInviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format: " + err.Error()})
		return
	}
	if err := h.inviteService.RespondToInvite(c.Request.Context(), userID, c.Param("journalID"), req.Accept); err != nil {
		respondWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *inviteHandler) removeTenant(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	if err := h.inviteService.RemoveFromJournal(c.Request.Context(), userID, c.Param("journalID"), c.Param("username")); err != nil {
		respondWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
