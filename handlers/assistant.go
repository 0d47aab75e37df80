package handlers

import (
	"net/http"
	"strconv"

	"self-order-api/middleware"
	"self-order-api/recommend"

	"github.com/gin-gonic/gin"
)

// GetAssistantGreeting opens the advisor conversation
func (h *Handler) GetAssistantGreeting(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"reply": recommend.Greeting})
}

type ChatRequest struct {
	Message string `json:"message" binding:"required"`
}

// Chat forwards a guest message to the menu advisor. The advisor never
// fails hard: upstream trouble comes back as a friendly static reply.
func (h *Handler) Chat(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sessionID := "user-" + strconv.Itoa(user.ID)
	reply := h.Advisor.Chat(c.Request.Context(), sessionID, req.Message, h.State.Dishes())
	c.JSON(http.StatusOK, gin.H{"reply": reply})
}
