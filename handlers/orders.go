package handlers

import (
	"net/http"

	"self-order-api/middleware"
	"self-order-api/models"
	"self-order-api/statemachine"
	"self-order-api/store"

	"github.com/gin-gonic/gin"
)

// Checkout turns the caller's cart into an order. Payment is simulated; the
// cart is cleared only after the order was persisted.
func (h *Handler) Checkout(c *gin.Context) {
	user := middleware.CurrentUser(c)
	sessionCart := h.Carts.For(user.ID)

	items := sessionCart.Items()
	if len(items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "购物车是空的"})
		return
	}

	receipt, err := h.State.PlaceOrder(c.Request.Context(), user, items)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "订单创建失败: " + err.Error()})
		return
	}
	sessionCart.Clear()

	resp := gin.H{
		"message": "下单成功",
		"order":   receipt.Order,
	}
	// Follow-up steps that failed after the order was persisted; the order
	// itself still went through.
	if len(receipt.Incomplete) > 0 {
		resp["incomplete"] = receipt.Incomplete
	}
	c.JSON(http.StatusCreated, resp)
}

// ListOrders returns all orders for the chef, or the caller's own orders
// for guests, with a dashboard summary by status
func (h *Handler) ListOrders(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var orders []models.Order
	if user.Role == models.RoleChef {
		orders = h.State.Orders()
	} else {
		orders = h.State.UserOrders(user.ID)
	}

	if status := c.Query("status"); status != "" {
		filtered := orders[:0]
		for _, o := range orders {
			if string(o.Status) == status {
				filtered = append(filtered, o)
			}
		}
		orders = filtered
	}

	summary := map[string]int{}
	for _, o := range orders {
		summary[string(o.Status)]++
	}

	c.JSON(http.StatusOK, gin.H{
		"order_summary": summary,
		"pending_count": summary[string(models.StatusPending)],
		"count":         len(orders),
		"orders":        orders,
	})
}

type UpdateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status" binding:"required"`
}

// UpdateOrderStatus advances an order along its lifecycle (chef only)
func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	orderID := c.Param("id")

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := h.State.AdvanceOrder(c.Request.Context(), orderID, req.Status)
	if err != nil {
		if store.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":     "Invalid state transition",
			"requested": req.Status,
			"reason":    err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":        "订单状态已更新",
		"order_id":       order.ID,
		"current_status": order.Status,
	})
}

// GetStateMachineInfo returns the full order lifecycle for informational purposes
func (h *Handler) GetStateMachineInfo(c *gin.Context) {
	var info []gin.H
	for _, t := range statemachine.GetAllTransitions() {
		info = append(info, gin.H{"from": t.From, "to": t.To, "actor": "chef"})
	}
	c.JSON(http.StatusOK, gin.H{
		"state_machine":   info,
		"terminal_states": []models.OrderStatus{models.StatusCompleted},
		"description":     "Kitchen Order Lifecycle State Machine",
	})
}
