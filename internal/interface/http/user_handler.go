package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/sportgear/ecommerce-auth/internal/application"
	"github.com/sportgear/ecommerce-auth/pkg/response"
	"github.com/sportgear/ecommerce-auth/pkg/validation"
)

// UserHandler exposes the account management surface: listing, stats, and
// per-user role/status/profile/password updates.
type UserHandler struct {
	Svc    *application.UserService
	Logger *logrus.Logger
}

func NewUserHandler(svc *application.UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

// List GET /api/users?search=&role=&status=
func (h *UserHandler) List(c *gin.Context) {
	profiles, err := h.Svc.List(c.Request.Context(), application.ListFilter{
		Search: c.Query("search"),
		Role:   c.Query("role"),
		Status: c.Query("status"),
	})
	if err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}
	c.JSON(http.StatusOK, profiles)
}

// Stats GET /api/users/stats
func (h *UserHandler) Stats(c *gin.Context) {
	st, err := h.Svc.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}
	c.JSON(http.StatusOK, st)
}

// Get GET /api/users/:id
func (h *UserHandler) Get(c *gin.Context) {
	id, ok := h.userID(c)
	if !ok {
		return
	}
	p, err := h.Svc.GetByID(c.Request.Context(), id)
	if err != nil {
		c.Status(http.StatusNotFound)
		return
	}
	c.JSON(http.StatusOK, p)
}

type roleRequest struct {
	Role string `json:"role" binding:"required"`
}

// UpdateRole PUT /api/users/:id/role
func (h *UserHandler) UpdateRole(c *gin.Context) {
	id, ok := h.userID(c)
	if !ok {
		return
	}
	var req roleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Role is required")
		return
	}
	p, err := h.Svc.UpdateRole(c.Request.Context(), id, req.Role)
	if err != nil {
		h.mutationError(c, err)
		return
	}
	response.OK(c, gin.H{"message": "Role updated successfully", "user": p})
}

type statusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateStatus PUT /api/users/:id/status
func (h *UserHandler) UpdateStatus(c *gin.Context) {
	id, ok := h.userID(c)
	if !ok {
		return
	}
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Status is required")
		return
	}
	p, err := h.Svc.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		h.mutationError(c, err)
		return
	}
	response.OK(c, gin.H{"message": "Status updated successfully", "user": p})
}

type profileRequest struct {
	FirstName   *string `json:"firstName"`
	LastName    *string `json:"lastName"`
	PhoneNumber *string `json:"phoneNumber"`
	DateOfBirth *string `json:"dateOfBirth"`
}

// UpdateProfile PUT /api/users/:id/profile
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	id, ok := h.userID(c)
	if !ok {
		return
	}
	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	in := application.ProfileUpdate{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
	}
	if req.DateOfBirth != nil && *req.DateOfBirth != "" {
		dob, err := time.Parse("2006-01-02", *req.DateOfBirth)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "Invalid date format for dateOfBirth")
			return
		}
		in.DateOfBirth = &dob
	}
	p, err := h.Svc.UpdateProfile(c.Request.Context(), id, in)
	if err != nil {
		h.mutationError(c, err)
		return
	}
	response.OK(c, gin.H{"message": "Profile updated successfully", "user": p})
}

type passwordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required"`
}

// UpdatePassword PUT /api/users/:id/password
func (h *UserHandler) UpdatePassword(c *gin.Context) {
	id, ok := h.userID(c)
	if !ok {
		return
	}
	var req passwordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	err := h.Svc.ChangePassword(c.Request.Context(), id, req.CurrentPassword, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrUserNotFound):
			c.Status(http.StatusNotFound)
		case errors.Is(err, application.ErrPasswordTooShort):
			response.Error(c, http.StatusBadRequest, "New password must be at least 6 characters")
		case errors.Is(err, application.ErrInvalidCredentials):
			response.Error(c, http.StatusBadRequest, "Current password is incorrect")
		default:
			h.Logger.WithError(err).WithField("user_id", id).Error("password update failed")
			response.Error(c, http.StatusBadRequest, "Password update failed")
		}
		return
	}
	response.OK(c, gin.H{"message": "Password updated successfully"})
}

func (h *UserHandler) userID(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid user ID format")
		return "", false
	}
	return id, true
}

func (h *UserHandler) mutationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, application.ErrUserNotFound):
		c.Status(http.StatusNotFound)
	case errors.Is(err, application.ErrInvalidRole), errors.Is(err, application.ErrInvalidStatus):
		response.Error(c, http.StatusBadRequest, err.Error())
	default:
		h.Logger.WithError(err).Error("user update failed")
		response.Error(c, http.StatusBadRequest, err.Error())
	}
}
