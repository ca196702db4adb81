package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/tallybook/tally_backend/internal/core/ports/services"
	"github.com/tallybook/tally_backend/internal/dto"
)

// journalHandler handles journal and account requests.
type journalHandler struct {
	journalService portssvc.JournalSvcFacade
}

func newJournalHandler(js portssvc.JournalSvcFacade) *journalHandler {
	return &journalHandler{journalService: js}
}

func registerJournalRoutes(rg *gin.RouterGroup, journalService portssvc.JournalSvcFacade) {
	h := newJournalHandler(journalService)

	journals := rg.Group("/journals")
	{
		journals.POST("", h.createJournal)
		journals.GET("", h.listJournals)
		journals.PUT("/:journalID/name", h.renameJournal)
		journals.DELETE("/:journalID", h.deleteJournal)
		journals.POST("/:journalID/select", h.selectJournal)
		journals.POST("/:journalID/accounts", h.addAccount)
		journals.DELETE("/:journalID/accounts/:accountID", h.deleteAccount)
	}

	// Account listing is against the selected journal, not a path param.
	rg.GET("/accounts", h.listAccounts)
}

func (h *journalHandler) createJournal(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.CreateJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format: " + err.Error()})
		return
	}
	journalID, err := h.journalService.CreateJournal(c.Request.Context(), userID, req.Name)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.AssociatedJournalResponse{JournalID: journalID, Name: req.Name, Owned: true})
}

func (h *journalHandler) listJournals(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	response, err := h.journalService.ListAssociatedJournals(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}

func (h *journalHandler) renameJournal(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.RenameJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format: " + err.Error()})
		return
	}
	if err := h.journalService.RenameJournal(c.Request.Context(), userID, c.Param("journalID"), req.Name); err != nil {
		respondWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *journalHandler) deleteJournal(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	if err := h.journalService.DeleteJournal(c.Request.Context(), userID, c.Param("journalID")); err != nil {
		respondWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *journalHandler) selectJournal(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	if err := h.journalService.SelectJournal(c.Request.Context(), userID, c.Param("journalID")); err != nil {
		respondWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *journalHandler) addAccount(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.AddAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format: " + err.Error()})
		return
	}
	if err := h.journalService.AddAccount(c.Request.Context(), userID, c.Param("journalID"), req.Name); err != nil {
		respondWithError(c, err)
		return
	}
	c.Status(http.StatusCreated)
}

func (h *journalHandler) deleteAccount(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	if err := h.journalService.DeleteAccount(c.Request.Context(), userID, c.Param("journalID"), c.Param("accountID")); err != nil {
		respondWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *journalHandler) listAccounts(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	accounts, err := h.journalService.ListAccounts(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, accounts)
}
