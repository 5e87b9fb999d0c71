package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/citytickets/backend/internal/infrastructure/auth"
	"github.com/citytickets/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// JWT context keys
const (
	JWTClaimsKey     = "jwt_claims"
	JWTUserIDKey     = "jwt_user_id"
	JWTCanCheckInKey = "jwt_can_check_in"
	AuthHeaderKey    = "Authorization"
	BearerPrefix     = "Bearer "
)

// JWTAuth creates session authentication middleware
func JWTAuth(jwtService *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(AuthHeaderKey)
		if !strings.HasPrefix(authHeader, BearerPrefix) {
			abortUnauthorized(c, dto.ErrCodeUnauthorized, "Authentication required")
			return
		}

		tokenString := strings.TrimPrefix(authHeader, BearerPrefix)
		claims, err := jwtService.Validate(tokenString)
		if err != nil {
			if errors.Is(err, auth.ErrExpiredToken) {
				abortUnauthorized(c, "TOKEN_EXPIRED", "Session has expired")
				return
			}
			abortUnauthorized(c, dto.ErrCodeUnauthorized, "Invalid session token")
			return
		}

		userID, err := claims.UserID()
		if err != nil {
			abortUnauthorized(c, dto.ErrCodeUnauthorized, "Invalid session token")
			return
		}

		c.Set(JWTClaimsKey, claims)
		c.Set(JWTUserIDKey, userID)
		c.Set(JWTCanCheckInKey, claims.CanCheckIn)
		c.Next()
	}
}

// RequireCheckInCapability allows only sessions carrying the check-in flag
func RequireCheckInCapability() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !GetCanCheckIn(c) {
			requestID := c.GetString(RequestIDKey)
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewErrorResponse(dto.ErrCodeForbidden, "Check-in requires a staff session", requestID))
			return
		}
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, code, message string) {
	requestID := c.GetString(RequestIDKey)
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(code, message, requestID))
}

// GetUserID retrieves the authenticated user id from the context
func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	if value, exists := c.Get(JWTUserIDKey); exists {
		if id, ok := value.(uuid.UUID); ok {
			return id, true
		}
	}
	return uuid.Nil, false
}

// GetCanCheckIn reports whether the session may check tickets in
func GetCanCheckIn(c *gin.Context) bool {
	if value, exists := c.Get(JWTCanCheckInKey); exists {
		if flag, ok := value.(bool); ok {
			return flag
		}
	}
	return false
}
