package handlers

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/velorent/vehicle-rental-backend/internal/database"
	"github.com/velorent/vehicle-rental-backend/internal/models"
	"github.com/velorent/vehicle-rental-backend/pkg/jwt"
	"github.com/velorent/vehicle-rental-backend/pkg/mailer"
)

// AuthHandler handles registration and login
type AuthHandler struct {
	userRepo   *database.UserRepository
	jwtService *jwt.Service
	mailer     *mailer.Mailer
	bcryptCost int
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(userRepo *database.UserRepository, jwtService *jwt.Service, m *mailer.Mailer, bcryptCost int) *AuthHandler {
	return &AuthHandler{
		userRepo:   userRepo,
		jwtService: jwtService,
		mailer:     m,
		bcryptCost: bcryptCost,
	}
}

// LoginResponse is the body returned by a successful login
type LoginResponse struct {
	Message string             `json:"message"`
	Token   string             `json:"token"`
	User    models.UserPayload `json:"user"`
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), h.bcryptCost)
	if err != nil {
		logrus.WithError(err).Error("Failed to hash password")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	user, err := h.userRepo.Create(req.FirstName, req.LastName, req.Email, req.Phone, "", string(hashedPassword), models.RoleCustomer)
	if err != nil {
		var dupErr *database.DuplicateError
		if errors.As(err, &dupErr) {
			c.JSON(http.StatusConflict, gin.H{"error": "An account with this email already exists"})
			return
		}
		respondRepoError(c, err, "User not found")
		return
	}

	// Welcome email failures must not fail registration
	if err := h.mailer.SendWelcome(user.Email, user.FirstName); err != nil {
		logrus.WithError(err).WithField("email", user.Email).Warn("Failed to send welcome email")
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"user":    user,
	})
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.userRepo.GetByEmail(req.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
			return
		}
		respondRepoError(c, err, "User not found")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	token, err := h.jwtService.GenerateToken(user.UserID, user.FirstName, user.LastName, user.Email, user.Role)
	if err != nil {
		logrus.WithError(err).Error("Failed to generate access token")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		Message: "Login successful",
		Token:   token,
		User: models.UserPayload{
			UserID:    user.UserID,
			FirstName: user.FirstName,
			LastName:  user.LastName,
			Email:     user.Email,
			Role:      user.Role,
		},
	})
}
