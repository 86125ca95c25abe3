package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/corebank/banking-backend/internal/apperrors"
	portssvc "github.com/corebank/banking-backend/internal/core/ports/services"
	"github.com/corebank/banking-backend/internal/dto"
	"github.com/corebank/banking-backend/internal/middleware"
)

// AuthHandler handles registration, login, and logout.
type AuthHandler struct {
	userService    portssvc.UserSvcFacade
	sessionService portssvc.SessionSvcFacade
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(us portssvc.UserSvcFacade, ss portssvc.SessionSvcFacade) *AuthHandler {
	return &AuthHandler{userService: us, sessionService: ss}
}

// Register godoc
// @Summary Register new user
// @Description Creates a new user with a hashed password credential.
// @Tags auth
// @Accept json
// @Produce json
// @Param register body dto.RegisterRequest true "User Registration Info"
// @Success 201 {object} dto.MessageResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Username or email taken"
// @Router /api/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Missing required fields"})
		return
	}
	if _, err := h.userService.Register(c.Request.Context(), req); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			c.JSON(http.StatusConflict, ErrorResponse{Error: "Username already exists"})
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.MessageResponse{Success: true, Message: "User created successfully"})
}

// Login godoc
// @Summary User login
// @Description Authenticates a user and issues a session token.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /api/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}
	user, err := h.userService.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnauthorized) {
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid credentials"})
			return
		}
		respondError(c, err)
		return
	}

	token, err := h.sessionService.Issue(c.Request.Context(), user.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.LoginResponse{
		Success:  true,
		Token:    token,
		UserID:   user.UserID,
		Username: user.Username,
	})
}

// Logout godoc
// @Summary User logout
// @Description Revokes the presented session token.
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.MessageResponse
// @Failure 401 {object} ErrorResponse
// @Router /api/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	token, ok := middleware.GetBearerTokenFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Missing authorization token"})
		return
	}
	h.sessionService.Revoke(c.Request.Context(), token)
	c.JSON(http.StatusOK, dto.MessageResponse{Success: true, Message: "Logged out"})
}
