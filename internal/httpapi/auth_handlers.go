package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"storefront/internal/user"
)

// RegisterRequest payload for account creation.
// swagger:model RegisterRequest
type RegisterRequest struct {
	Name     string `json:"name" binding:"required" example:"Ada Lovelace"`
	Email    string `json:"email" binding:"required,email" example:"ada@example.com"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest payload.
// swagger:model LoginRequest
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type authUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

type authResponse struct {
	Token string   `json:"token"`
	User  authUser `json:"user"`
}

// Register godoc
// @Summary  Register a new customer account
// @Accept   json
// @Produce  json
// @Param    body body RegisterRequest true "account"
// @Success  201 {object} authResponse
// @Router   /auth/register [post]
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Validation error"})
		return
	}

	first, last, _ := strings.Cut(strings.TrimSpace(req.Name), " ")
	u := &user.User{
		ID:        uuid.NewString(),
		Email:     req.Email,
		FirstName: first,
		LastName:  strings.TrimSpace(last),
	}
	hash, err := user.HashPassword(req.Password)
	if err != nil {
		internalError(c, "hash password failed", err)
		return
	}
	u.PasswordHash = hash

	if err := h.users.Create(c.Request.Context(), u); err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			c.JSON(http.StatusConflict, gin.H{"message": "Email already registered"})
			return
		}
		internalError(c, "create user failed", err)
		return
	}

	token, err := h.tokens.Sign(u.ID, u.Email)
	if err != nil {
		internalError(c, "sign token failed", err)
		return
	}
	c.JSON(http.StatusCreated, authResponse{
		Token: token,
		User:  authUser{ID: u.ID, Email: u.Email, Name: u.FullName()},
	})
}

// Login godoc
// @Summary  Exchange credentials for an access token
// @Accept   json
// @Produce  json
// @Param    body body LoginRequest true "credentials"
// @Success  200 {object} authResponse
// @Router   /auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Validation error"})
		return
	}

	u, err := h.users.GetByEmail(c.Request.Context(), req.Email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
			return
		}
		internalError(c, "load user failed", err)
		return
	}
	if !u.IsActive {
		c.JSON(http.StatusForbidden, gin.H{"message": "User is inactive"})
		return
	}
	if !user.CheckPassword(u.PasswordHash, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
		return
	}

	if err := h.users.TouchLastLogin(c.Request.Context(), u.ID); err != nil {
		internalError(c, "touch last login failed", err)
		return
	}

	token, err := h.tokens.Sign(u.ID, u.Email)
	if err != nil {
		internalError(c, "sign token failed", err)
		return
	}
	c.JSON(http.StatusOK, authResponse{
		Token: token,
		User:  authUser{ID: u.ID, Email: u.Email, Name: u.FullName()},
	})
}

// Me godoc
// @Summary  Current authenticated user
// @Produce  json
// @Security BearerAuth
// @Router   /auth/me [get]
func (h *Handler) Me(c *gin.Context) {
	u := currentUser(c)
	c.JSON(http.StatusOK, gin.H{
		"id":      u.ID,
		"email":   u.Email,
		"name":    u.FullName(),
		"isAdmin": u.IsAdmin,
	})
}
