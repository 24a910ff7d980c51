package api

import (
	"errors"
	"fmt"
	"net/http"

	"fittrack/fitness-tracker/internal/domain"
	"fittrack/fitness-tracker/internal/service"

	"github.com/gin-gonic/gin"
)

// UserHandler covers account documents: creation (social-login style),
// profile lookup by email and partial profile updates.
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

type CreateUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password"`
	PhotoURL string `json:"photoURL"`
}

// CreateUser handles POST /users.
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	user := &domain.User{
		Name:     req.Name,
		Email:    req.Email,
		PhotoURL: req.PhotoURL,
		Role:     domain.RoleMember,
	}

	created, err := h.userService.CreateUser(c.Request.Context(), user, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrUserAlreadyExists) {
			abortWithError(c, http.StatusBadRequest, "User already exists")
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to create user")
		}
		return
	}

	c.JSON(http.StatusCreated, MapUserToResponse(created))
}

// GetUser handles GET /users/:email.
func (h *UserHandler) GetUser(c *gin.Context) {
	email := c.Param("email")

	user, err := h.userService.GetByEmail(c.Request.Context(), email)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			abortWithError(c, http.StatusNotFound, "User not found")
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to fetch user")
		}
		return
	}

	c.JSON(http.StatusOK, MapUserToResponse(user))
}

// UpdateUser handles PATCH /users/:email with a partial document.
func (h *UserHandler) UpdateUser(c *gin.Context) {
	email := c.Param("email")

	var fields map[string]interface{}
	if err := c.ShouldBindJSON(&fields); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	err := h.userService.UpdateProfile(c.Request.Context(), email, fields)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			abortWithError(c, http.StatusNotFound, "User not found")
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to update user")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User updated successfully"})
}
