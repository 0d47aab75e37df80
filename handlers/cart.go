package handlers

import (
	"net/http"
	"strconv"

	"self-order-api/middleware"

	"github.com/gin-gonic/gin"
)

// GetCart returns the caller's session cart
func (h *Handler) GetCart(c *gin.Context) {
	user := middleware.CurrentUser(c)
	sessionCart := h.Carts.For(user.ID)
	c.JSON(http.StatusOK, gin.H{
		"items": sessionCart.Items(),
		"count": sessionCart.Count(),
		"total": sessionCart.Total(),
	})
}

type AddToCartRequest struct {
	DishID int `json:"dish_id" binding:"required"`
}

// AddToCart puts one more of a dish in the caller's cart
func (h *Handler) AddToCart(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	for _, dish := range h.State.Dishes() {
		if dish.ID != req.DishID {
			continue
		}
		if dish.IsSoldOut {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "菜品 '" + dish.Name + "' 已售罄"})
			return
		}
		sessionCart := h.Carts.For(user.ID)
		sessionCart.Add(dish)
		c.JSON(http.StatusOK, gin.H{
			"items": sessionCart.Items(),
			"count": sessionCart.Count(),
			"total": sessionCart.Total(),
		})
		return
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "菜品不存在"})
}

type UpdateCartItemRequest struct {
	Delta int `json:"delta" binding:"required"`
}

// UpdateCartItem applies a quantity delta; items that reach zero disappear
func (h *Handler) UpdateCartItem(c *gin.Context) {
	user := middleware.CurrentUser(c)

	dishID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid dish id"})
		return
	}

	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sessionCart := h.Carts.For(user.ID)
	sessionCart.UpdateQuantity(dishID, req.Delta)
	c.JSON(http.StatusOK, gin.H{
		"items": sessionCart.Items(),
		"count": sessionCart.Count(),
		"total": sessionCart.Total(),
	})
}
