package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/velorent/vehicle-rental-backend/internal/database"
	"github.com/velorent/vehicle-rental-backend/internal/models"
)

// SupportHandler handles support-desk HTTP requests
type SupportHandler struct {
	supportRepo *database.SupportTicketRepository
}

// NewSupportHandler creates a new support handler
func NewSupportHandler(supportRepo *database.SupportTicketRepository) *SupportHandler {
	return &SupportHandler{supportRepo: supportRepo}
}

func ticketIDParam(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Ticket id must be numeric"})
		return 0, false
	}
	return id, true
}

// Create handles POST /api/support/tickets
func (h *SupportHandler) Create(c *gin.Context) {
	var req models.CreateSupportTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ticket, err := h.supportRepo.Create(&req)
	if err != nil {
		respondRepoError(c, err, "Support ticket not found")
		return
	}

	c.JSON(http.StatusCreated, ticket)
}

// GetAll handles GET /api/support/tickets?status=&priority=
func (h *SupportHandler) GetAll(c *gin.Context) {
	tickets, err := h.supportRepo.GetAll(c.Query("status"), c.Query("priority"))
	if err != nil {
		respondRepoError(c, err, "Support ticket not found")
		return
	}

	c.JSON(http.StatusOK, tickets)
}

// GetByID handles GET /api/support/tickets/:id
func (h *SupportHandler) GetByID(c *gin.Context) {
	id, ok := ticketIDParam(c)
	if !ok {
		return
	}

	ticket, err := h.supportRepo.GetByID(id)
	if err != nil {
		respondRepoError(c, err, "Support ticket not found")
		return
	}

	c.JSON(http.StatusOK, ticket)
}

// GetByReference handles GET /api/support/tickets/reference/:reference
func (h *SupportHandler) GetByReference(c *gin.Context) {
	ticket, err := h.supportRepo.GetByReference(c.Param("reference"))
	if err != nil {
		respondRepoError(c, err, "Support ticket not found")
		return
	}

	c.JSON(http.StatusOK, ticket)
}

// GetByCustomerID handles GET /api/support/tickets/customer/:customerId
func (h *SupportHandler) GetByCustomerID(c *gin.Context) {
	tickets, err := h.supportRepo.GetByCustomerID(c.Param("customerId"))
	if err != nil {
		respondRepoError(c, err, "Support ticket not found")
		return
	}

	c.JSON(http.StatusOK, tickets)
}

// Search handles GET /api/support/tickets/search?q=
func (h *SupportHandler) Search(c *gin.Context) {
	term := c.Query("q")
	if term == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Search term is required"})
		return
	}

	tickets, err := h.supportRepo.Search(term)
	if err != nil {
		respondRepoError(c, err, "Support ticket not found")
		return
	}

	c.JSON(http.StatusOK, tickets)
}

// UpdateStatusRequest is the body for status transitions
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateStatus handles PATCH /api/support/tickets/:id/status
func (h *SupportHandler) UpdateStatus(c *gin.Context) {
	id, ok := ticketIDParam(c)
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	switch req.Status {
	case models.SupportStatusOpen, models.SupportStatusInProgress, models.SupportStatusResolved, models.SupportStatusClosed:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}

	ticket, err := h.supportRepo.UpdateStatus(id, req.Status)
	if err != nil {
		respondRepoError(c, err, "Support ticket not found")
		return
	}

	c.JSON(http.StatusOK, ticket)
}

// AssignRequest is the body for ticket assignment
type AssignRequest struct {
	AssignedTo string `json:"assigned_to" binding:"required"`
}

// Assign handles PATCH /api/support/tickets/:id/assign
func (h *SupportHandler) Assign(c *gin.Context) {
	id, ok := ticketIDParam(c)
	if !ok {
		return
	}

	var req AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ticket, err := h.supportRepo.Assign(id, req.AssignedTo)
	if err != nil {
		respondRepoError(c, err, "Support ticket not found")
		return
	}

	c.JSON(http.StatusOK, ticket)
}

// AddReply handles POST /api/support/tickets/:id/replies
func (h *SupportHandler) AddReply(c *gin.Context) {
	id, ok := ticketIDParam(c)
	if !ok {
		return
	}

	var req models.AddTicketReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reply, err := h.supportRepo.AddReply(id, &req)
	if err != nil {
		respondRepoError(c, err, "Support ticket not found")
		return
	}

	c.JSON(http.StatusCreated, reply)
}

// GetReplies handles GET /api/support/tickets/:id/replies
func (h *SupportHandler) GetReplies(c *gin.Context) {
	id, ok := ticketIDParam(c)
	if !ok {
		return
	}

	replies, err := h.supportRepo.GetReplies(id)
	if err != nil {
		respondRepoError(c, err, "Support ticket not found")
		return
	}

	c.JSON(http.StatusOK, replies)
}

// GetStats handles GET /api/support/stats
func (h *SupportHandler) GetStats(c *gin.Context) {
	stats, err := h.supportRepo.GetStats()
	if err != nil {
		respondRepoError(c, err, "Support ticket not found")
		return
	}

	c.JSON(http.StatusOK, stats)
}
