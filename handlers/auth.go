package handlers

import (
	"net/http"

	"self-order-api/models"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type LoginRequest struct {
	Nickname string          `json:"nickname" binding:"required"`
	Role     models.UserRole `json:"role" binding:"required"`
	PIN      string          `json:"pin"`
}

// Login finds or creates a user by nickname and returns a session token.
// The chef role is gated by a shared PIN — a placeholder check, not real
// authentication.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Role != models.RoleGuest && req.Role != models.RoleChef {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role. Must be: guest or chef"})
		return
	}

	if req.Role == models.RoleChef {
		if err := bcrypt.CompareHashAndPassword(h.ChefPINHash, []byte(req.PIN)); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "访问密码错误"})
			return
		}
	}

	user, err := h.Svc.Login(c.Request.Context(), req.Nickname, req.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "登录失败: " + err.Error()})
		return
	}

	token, err := h.Auth.GenerateToken(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "登录成功",
		"token":   token,
		"user":    user,
	})
}
