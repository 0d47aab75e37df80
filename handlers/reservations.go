package handlers

import (
	"net/http"

	"self-order-api/models"

	"github.com/gin-gonic/gin"
)

// ListReservations returns every reservation, newest first
func (h *Handler) ListReservations(c *gin.Context) {
	reservations := h.State.Reservations()
	c.JSON(http.StatusOK, gin.H{
		"count":        len(reservations),
		"reservations": reservations,
	})
}

type CreateReservationRequest struct {
	Name   string `json:"name" binding:"required"`
	Date   string `json:"date" binding:"required"`
	Time   string `json:"time" binding:"required"`
	Guests int    `json:"guests" binding:"required,min=1,max=20"`
}

// CreateReservation books a table for a guest
func (h *Handler) CreateReservation(c *gin.Context) {
	var req CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reservation, err := h.State.BookTable(c.Request.Context(), models.Reservation{
		Name:   req.Name,
		Date:   req.Date,
		Time:   req.Time,
		Guests: req.Guests,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "创建预约失败: " + err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "预约成功", "reservation": reservation})
}

type UpdateReservationStatusRequest struct {
	Status models.ReservationStatus `json:"status" binding:"required"`
}

// UpdateReservationStatus cancels a confirmed reservation (chef only)
func (h *Handler) UpdateReservationStatus(c *gin.Context) {
	reservationID := c.Param("id")

	var req UpdateReservationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reservation, err := h.State.UpdateReservationStatus(c.Request.Context(), reservationID, req.Status)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "预约状态已更新", "reservation": reservation})
}
