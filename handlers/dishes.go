package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"self-order-api/models"
	"self-order-api/store"

	"github.com/gin-gonic/gin"
)

// GetMenu returns the dish list from the local mirror (public)
func (h *Handler) GetMenu(c *gin.Context) {
	dishes := h.State.Dishes()

	// Filter by category or search by name
	if category := c.Query("category"); category != "" {
		filtered := dishes[:0]
		for _, d := range dishes {
			if string(d.Category) == category {
				filtered = append(filtered, d)
			}
		}
		dishes = filtered
	}
	if search := c.Query("search"); search != "" {
		filtered := dishes[:0]
		for _, d := range dishes {
			if strings.Contains(d.Name, search) {
				filtered = append(filtered, d)
			}
		}
		dishes = filtered
	}

	c.JSON(http.StatusOK, gin.H{
		"count":  len(dishes),
		"dishes": dishes,
	})
}

type CreateDishRequest struct {
	Name        string              `json:"name" binding:"required"`
	Price       float64             `json:"price" binding:"required,gt=0"`
	Category    models.DishCategory `json:"category" binding:"required"`
	Image       string              `json:"image"`
	Description string              `json:"description"`
	Spiciness   int                 `json:"spiciness" binding:"min=0,max=5"`
	IsSoldOut   bool                `json:"isSoldOut"`
}

// AddDish creates a new dish (chef only)
func (h *Handler) AddDish(c *gin.Context) {
	var req CreateDishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	dish, err := h.State.AddDish(c.Request.Context(), models.Dish{
		Name:        req.Name,
		Price:       req.Price,
		Category:    req.Category,
		Image:       req.Image,
		Description: req.Description,
		Spiciness:   req.Spiciness,
		IsSoldOut:   req.IsSoldOut,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "添加菜品失败: " + err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "菜品已添加", "dish": dish})
}

// UpdateDish applies a partial edit to a dish (chef only)
func (h *Handler) UpdateDish(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid dish id"})
		return
	}

	var updates models.DishUpdate
	if err := c.ShouldBindJSON(&updates); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	dish, err := h.State.UpdateDish(c.Request.Context(), id, updates)
	if err != nil {
		if store.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "更新菜品失败: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "菜品已更新", "dish": dish})
}

// DeleteDish removes a dish from the menu (chef only)
func (h *Handler) DeleteDish(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid dish id"})
		return
	}

	if err := h.State.DeleteDish(c.Request.Context(), id); err != nil {
		if store.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "删除菜品失败: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "菜品已删除", "dish_id": id})
}
