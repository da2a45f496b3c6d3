package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"trackfit/workout-app/internal/domain"
	"trackfit/workout-app/internal/service"

	"github.com/gin-gonic/gin"
)

// AuthHandler holds the authentication service dependency.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// --- Request/Response Structs ---

// RegisterRequest covers both signup paths: username, or name+surname.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Surname  string `json:"surname"`
}

// UserResponse is the profile shape exposed over the API.
type UserResponse struct {
	UID       string    `json:"uid"`
	Email     string    `json:"email"`
	Username  string    `json:"username,omitempty"`
	Name      string    `json:"name,omitempty"`
	Surname   string    `json:"surname,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type PasswordResetRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// --- Handler Methods ---

// Register creates a new identity plus its profile document.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	if req.Username == "" && req.Name == "" {
		abortWithError(c, http.StatusBadRequest, "Either username or name must be provided")
		return
	}

	user, err := h.authService.Register(c.Request.Context(), req.Email, req.Password, service.ProfileFields{
		Username: req.Username,
		Name:     req.Name,
		Surname:  req.Surname,
	})
	if err != nil {
		if errors.Is(err, service.ErrUserAlreadyExists) {
			abortWithError(c, http.StatusConflict, err.Error())
		} else if errors.Is(err, service.ErrHashingFailed) {
			abortWithError(c, http.StatusInternalServerError, "Could not process registration")
		} else {
			abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred during registration")
		}
		return
	}

	c.JSON(http.StatusCreated, MapUserToResponse(user))
}

// Login authenticates a user and returns a JWT token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	token, user, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrAuthenticationFailed) {
			abortWithError(c, http.StatusUnauthorized, err.Error())
		} else if errors.Is(err, service.ErrTokenGeneration) {
			abortWithError(c, http.StatusInternalServerError, "Could not process login")
		} else {
			abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred during login")
		}
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		Token: token,
		User:  MapUserToResponse(user),
	})
}

// Logout ends the session.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.authService.Logout()
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// CheckUserData reports whether the current user's profile document
// exists. With no current user this is false, not an error.
func (h *AuthHandler) CheckUserData(c *gin.Context) {
	exists, err := h.authService.CheckUserData(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Could not check user data")
		return
	}
	c.JSON(http.StatusOK, gin.H{"exists": exists})
}

// EnsureProfile creates the current user's profile document when it is
// missing, e.g. after a signup whose profile write failed.
func (h *AuthHandler) EnsureProfile(c *gin.Context) {
	current := h.authService.Sessions().CurrentUser()
	if current == nil {
		abortWithError(c, http.StatusConflict, "No active session")
		return
	}
	if err := h.authService.EnsureProfile(c.Request.Context(), current); err != nil {
		abortWithError(c, http.StatusInternalServerError, "Could not ensure profile")
		return
	}
	c.JSON(http.StatusOK, MapUserToResponse(current))
}

// PasswordReset dispatches a reset message for the given email.
func (h *AuthHandler) PasswordReset(c *gin.Context) {
	var req PasswordResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	if err := h.authService.SendPasswordReset(c.Request.Context(), req.Email); err != nil {
		abortWithError(c, http.StatusInternalServerError, "Could not dispatch password reset")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "password reset dispatched"})
}

// MapUserToResponse converts a domain User to a UserResponse DTO.
func MapUserToResponse(user *domain.User) UserResponse {
	if user == nil {
		return UserResponse{}
	}
	return UserResponse{
		UID:       user.UID,
		Email:     user.Email,
		Username:  user.Username,
		Name:      user.Name,
		Surname:   user.Surname,
		CreatedAt: user.CreatedAt,
	}
}
