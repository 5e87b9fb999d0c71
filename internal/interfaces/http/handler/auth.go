package handler

import (
	"time"

	appidentity "github.com/citytickets/backend/internal/application/identity"
	"github.com/citytickets/backend/internal/domain/identity"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AuthHandler serves registration, login and password recovery
type AuthHandler struct {
	BaseHandler
	auth *appidentity.AuthService
}

// NewAuthHandler creates an AuthHandler
func NewAuthHandler(auth *appidentity.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// RegisterRoutes registers auth routes
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	{
		auth.POST("/signup", h.SignUp)
		auth.POST("/signin", h.SignIn)
		auth.POST("/signin/staff", h.SignInStaff)
		auth.POST("/password-reset/request", h.RequestPasswordReset)
		auth.POST("/password-reset/confirm", h.ConfirmPasswordReset)
	}
}

// RegisterAuthedRoutes registers auth routes that need a session; the
// group must already require authentication
func (h *AuthHandler) RegisterAuthedRoutes(rg *gin.RouterGroup) {
	rg.POST("/auth/logout", h.Logout)
}

// UserResponse is the public view of an account
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	Staff     bool      `json:"staff"`
	CreatedAt time.Time `json:"created_at"`
}

// SessionResponse pairs an account with its session token
type SessionResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}

func toUserResponse(u *identity.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Phone:     u.Phone,
		Email:     u.Email,
		Staff:     u.Staff,
		CreatedAt: u.CreatedAt,
	}
}

// SignUp handles POST /auth/signup
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req appidentity.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	user, token, err := h.auth.SignUp(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, SessionResponse{User: toUserResponse(user), Token: token})
}

// SignIn handles POST /auth/signin
func (h *AuthHandler) SignIn(c *gin.Context) {
	var req appidentity.SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	user, token, err := h.auth.SignIn(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, SessionResponse{User: toUserResponse(user), Token: token})
}

// SignInStaff handles POST /auth/signin/staff
func (h *AuthHandler) SignInStaff(c *gin.Context) {
	var req appidentity.SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	user, token, err := h.auth.SignInStaff(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, SessionResponse{User: toUserResponse(user), Token: token})
}

type passwordResetRequest struct {
	Email string `json:"email" binding:"required"`
}

// RequestPasswordReset handles POST /auth/password-reset/request
func (h *AuthHandler) RequestPasswordReset(c *gin.Context) {
	var req passwordResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.auth.RequestPasswordReset(c.Request.Context(), req.Email); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"sent": true})
}

type passwordResetConfirm struct {
	Email       string `json:"email" binding:"required"`
	Code        string `json:"code" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// ConfirmPasswordReset handles POST /auth/password-reset/confirm
func (h *AuthHandler) ConfirmPasswordReset(c *gin.Context) {
	var req passwordResetConfirm
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.auth.ConfirmPasswordReset(c.Request.Context(), req.Email, req.Code, req.NewPassword); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"updated": true})
}

// Logout handles POST /auth/logout. Sessions are stateless bearer
// tokens, so there is nothing to revoke server side; the endpoint
// confirms the sign-out and the client drops its token.
func (h *AuthHandler) Logout(c *gin.Context) {
	if _, err := getUserID(c); err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	h.Success(c, gin.H{"signed_out": true})
}

// ProfileHandler serves the signed-in user's account
type ProfileHandler struct {
	BaseHandler
	auth *appidentity.AuthService
}

// NewProfileHandler creates a ProfileHandler
func NewProfileHandler(auth *appidentity.AuthService) *ProfileHandler {
	return &ProfileHandler{auth: auth}
}

// RegisterRoutes registers profile routes; the group must already require
// authentication
func (h *ProfileHandler) RegisterRoutes(rg *gin.RouterGroup) {
	profile := rg.Group("/profile")
	{
		profile.GET("", h.Get)
		profile.POST("/edit-code/request", h.RequestEditCode)
		profile.POST("/edit-code/confirm", h.ConfirmEditCode)
		profile.PUT("", h.Update)
	}
}

// Get handles GET /profile
func (h *ProfileHandler) Get(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	user, err := h.auth.Profile(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toUserResponse(user))
}

// RequestEditCode handles POST /profile/edit-code/request
func (h *ProfileHandler) RequestEditCode(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	if err := h.auth.RequestProfileEditCode(c.Request.Context(), userID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"sent": true})
}

type editCodeConfirm struct {
	Code string `json:"code" binding:"required"`
}

// ConfirmEditCode handles POST /profile/edit-code/confirm
func (h *ProfileHandler) ConfirmEditCode(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req editCodeConfirm
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.auth.ConfirmProfileEditCode(c.Request.Context(), userID, req.Code); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"confirmed": true})
}

// Update handles PUT /profile
func (h *ProfileHandler) Update(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req appidentity.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.auth.UpdateProfile(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toUserResponse(user))
}
