package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) GetTickets(c *gin.Context) {
	c.JSON(http.StatusOK, h.Store.ListTickets())
}

// AnalyzeTicket drafts a technician analysis. The analyzer never fails, so the
// answer is 200 even when it only carries an "unavailable" sentence.
func (h *Handler) AnalyzeTicket(c *gin.Context) {
	ticket, err := h.Store.Ticket(c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	analysis := h.Analyzer.GenerateAnalysis(c.Request.Context(), ticket.Description, ticket.ServiceType)
	c.JSON(http.StatusOK, gin.H{"ticketId": ticket.ID, "analysis": analysis})
}
