package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/tallybook/tally_backend/internal/core/ports/services"
	"github.com/tallybook/tally_backend/internal/dto"
)

// ledgerHandler handles posting and reading transactions.
type ledgerHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

func newLedgerHandler(ls portssvc.LedgerSvcFacade) *ledgerHandler {
	return &ledgerHandler{ledgerService: ls}
}

func registerLedgerRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := newLedgerHandler(ledgerService)

	rg.POST("/journals/:journalID/transactions", h.postTransaction)
	rg.GET("/journals/:journalID/transactions", h.listTransactions)
}

func (h *ledgerHandler) postTransaction(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.TransactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format: " + err.Error()})
		return
	}
	if err := h.ledgerService.PostTransaction(c.Request.Context(), userID, c.Param("journalID"), req); err != nil {
		respondWithError(c, err)
		return
	}
	c.Status(http.StatusCreated)
}

func (h *ledgerHandler) listTransactions(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	history, err := h.ledgerService.ListTransactions(c.Request.Context(), userID, c.Param("journalID"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, history)
}
