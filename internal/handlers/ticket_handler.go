package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/velorent/vehicle-rental-backend/internal/database"
	"github.com/velorent/vehicle-rental-backend/internal/models"
)

// TicketHandler handles customer-care ticket HTTP requests
type TicketHandler struct {
	ticketRepo *database.TicketRepository
}

// NewTicketHandler creates a new ticket handler
func NewTicketHandler(ticketRepo *database.TicketRepository) *TicketHandler {
	return &TicketHandler{ticketRepo: ticketRepo}
}

// GetAll handles GET /api/tickets
func (h *TicketHandler) GetAll(c *gin.Context) {
	tickets, err := h.ticketRepo.GetAll()
	if err != nil {
		respondRepoError(c, err, "Ticket not found")
		return
	}

	c.JSON(http.StatusOK, tickets)
}

// GetByID handles GET /api/tickets/:id
func (h *TicketHandler) GetByID(c *gin.Context) {
	ticket, err := h.ticketRepo.GetByID(c.Param("id"))
	if err != nil {
		respondRepoError(c, err, "Ticket not found")
		return
	}

	c.JSON(http.StatusOK, ticket)
}

// GetByUserID handles GET /api/tickets/user/:userId
func (h *TicketHandler) GetByUserID(c *gin.Context) {
	tickets, err := h.ticketRepo.GetByUserID(c.Param("userId"))
	if err != nil {
		respondRepoError(c, err, "Ticket not found")
		return
	}

	c.JSON(http.StatusOK, tickets)
}

// Create handles POST /api/tickets
func (h *TicketHandler) Create(c *gin.Context) {
	var req models.CreateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ticket, err := h.ticketRepo.Create(&req)
	if err != nil {
		respondRepoError(c, err, "Ticket not found")
		return
	}

	c.JSON(http.StatusCreated, ticket)
}

// Update handles PUT /api/tickets/:id
func (h *TicketHandler) Update(c *gin.Context) {
	var req models.UpdateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ticket, err := h.ticketRepo.Update(c.Param("id"), &req)
	if err != nil {
		respondRepoError(c, err, "Ticket not found")
		return
	}

	c.JSON(http.StatusOK, ticket)
}

// Delete handles DELETE /api/tickets/:id
func (h *TicketHandler) Delete(c *gin.Context) {
	if err := h.ticketRepo.Delete(c.Param("id")); err != nil {
		if err.Error() == "ticket not found" {
			c.JSON(http.StatusNotFound, gin.H{"error": "Ticket not found"})
			return
		}
		respondRepoError(c, err, "Ticket not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Ticket deleted successfully"})
}
