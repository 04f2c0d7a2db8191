package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/velorent/vehicle-rental-backend/internal/database"
	"github.com/velorent/vehicle-rental-backend/internal/middleware"
	"github.com/velorent/vehicle-rental-backend/internal/models"
)

// UserHandler handles user management HTTP requests
type UserHandler struct {
	userRepo   *database.UserRepository
	bcryptCost int
}

// NewUserHandler creates a new user handler
func NewUserHandler(userRepo *database.UserRepository, bcryptCost int) *UserHandler {
	return &UserHandler{userRepo: userRepo, bcryptCost: bcryptCost}
}

// GetAll handles GET /api/users
func (h *UserHandler) GetAll(c *gin.Context) {
	users, err := h.userRepo.GetAll()
	if err != nil {
		respondRepoError(c, err, "User not found")
		return
	}

	c.JSON(http.StatusOK, users)
}

// GetByID handles GET /api/users/:id
func (h *UserHandler) GetByID(c *gin.Context) {
	user, err := h.userRepo.GetByID(c.Param("id"))
	if err != nil {
		respondRepoError(c, err, "User not found")
		return
	}

	c.JSON(http.StatusOK, user)
}

// GetMe handles GET /api/users/me
func (h *UserHandler) GetMe(c *gin.Context) {
	userCtx, exists := middleware.GetUserContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	user, err := h.userRepo.GetByID(userCtx.UserID)
	if err != nil {
		respondRepoError(c, err, "User not found")
		return
	}

	c.JSON(http.StatusOK, user)
}

// Create handles POST /api/users
func (h *UserHandler) Create(c *gin.Context) {
	var req models.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	role := models.RoleCustomer
	if req.Role != nil {
		role = models.Role(*req.Role)
		if !role.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role"})
			return
		}
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), h.bcryptCost)
	if err != nil {
		logrus.WithError(err).Error("Failed to hash password")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	user, err := h.userRepo.Create(req.FirstName, req.LastName, req.Email, req.ContactPhone, req.Address, string(hashedPassword), role)
	if err != nil {
		respondRepoError(c, err, "User not found")
		return
	}

	c.JSON(http.StatusCreated, user)
}

// Update handles PUT /api/users/:id
func (h *UserHandler) Update(c *gin.Context) {
	var req models.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Role != nil && !models.Role(*req.Role).IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role"})
		return
	}

	user, err := h.userRepo.Update(c.Param("id"), &req)
	if err != nil {
		respondRepoError(c, err, "User not found")
		return
	}

	c.JSON(http.StatusOK, user)
}

// Delete handles DELETE /api/users/:id
func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.userRepo.Delete(c.Param("id")); err != nil {
		if err.Error() == "user not found" {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		respondRepoError(c, err, "User not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}
