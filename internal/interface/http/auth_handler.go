package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/sportgear/ecommerce-auth/internal/application"
	"github.com/sportgear/ecommerce-auth/internal/interface/middleware"
	"github.com/sportgear/ecommerce-auth/pkg/response"
	"github.com/sportgear/ecommerce-auth/pkg/validation"
)

// AuthHandler exposes the register/login/verify/lookup endpoints.
type AuthHandler struct {
	Svc    *application.AuthService
	Logger *logrus.Logger
}

func NewAuthHandler(svc *application.AuthService, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger}
}

type registerRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	PhoneNumber string `json:"phoneNumber"`
	DateOfBirth string `json:"dateOfBirth"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	in := application.RegisterInput{
		Email:       req.Email,
		Password:    req.Password,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
	}
	if req.DateOfBirth != "" {
		dob, err := time.Parse("2006-01-02", req.DateOfBirth)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "Invalid date format for dateOfBirth")
			return
		}
		in.DateOfBirth = &dob
	}

	res, err := h.Svc.Register(c.Request.Context(), in)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrEmailTaken):
			response.Error(c, http.StatusBadRequest, "Email already registered")
		case errors.Is(err, application.ErrPasswordRequired):
			response.Error(c, http.StatusBadRequest, "Password is required")
		case errors.Is(err, application.ErrInvalidEmail):
			response.Error(c, http.StatusBadRequest, "Invalid email")
		default:
			h.Logger.WithError(err).WithField("email", req.Email).Error("register failed")
			response.Error(c, http.StatusBadRequest, "Registration failed")
		}
		return
	}

	response.OK(c, gin.H{
		"token":   res.Token,
		"message": "User registered successfully",
		"user": gin.H{
			"email":     res.User.Email,
			"firstName": res.User.FirstName,
			"lastName":  res.User.LastName,
		},
	})
}

// Login POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	res, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrUserNotFound):
			response.Error(c, http.StatusBadRequest, "User not found")
		case errors.Is(err, application.ErrInvalidCredentials):
			response.Error(c, http.StatusBadRequest, "Invalid password")
		default:
			h.Logger.WithError(err).WithField("email", req.Email).Error("login failed")
			response.Error(c, http.StatusBadRequest, "Login failed")
		}
		return
	}

	response.OK(c, gin.H{
		"token": res.Token,
		"user": gin.H{
			"userid":      res.User.ID,
			"email":       res.User.Email,
			"firstName":   res.User.FirstName,
			"lastName":    res.User.LastName,
			"phoneNumber": res.User.PhoneNumber,
			"role":        res.User.Role,
		},
	})
}

// Verify GET /api/auth/verify
func (h *AuthHandler) Verify(c *gin.Context) {
	token := middleware.BearerToken(c)
	if token == "" || !h.Svc.VerifyToken(token) {
		c.JSON(http.StatusUnauthorized, gin.H{"valid": false})
		return
	}
	response.OK(c, gin.H{"valid": true})
}

// GetUser GET /api/auth/users/:id
func (h *AuthHandler) GetUser(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid user ID format")
		return
	}
	p, err := h.Svc.GetUserByID(c.Request.Context(), id)
	if err != nil {
		c.Status(http.StatusNotFound)
		return
	}
	c.JSON(http.StatusOK, p)
}
