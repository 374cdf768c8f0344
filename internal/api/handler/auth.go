package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const userIDKey = "user_id"

// extractToken pulls the credential from the Authorization header,
// falling back to the token query parameter used by websocket clients.
func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return c.Query("token")
}

// RequireAuth resolves the caller's credential and stores the canonical
// user id in the request context. Requests without a valid credential are
// rejected before reaching the chat core.
func (h *Handler) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization token missing"})
			return
		}

		userID, err := h.Auth.Resolve(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token or expired"})
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

// GetToken mints a credential. When no user_id is supplied an anonymous
// identity is generated, so a fresh client can get going with one call.
func (h *Handler) GetToken(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		userID = uuid.New().String()
	}

	token, err := h.Auth.IssueToken(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user_id": userID})
}
