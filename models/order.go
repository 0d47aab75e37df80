package models

import "time"

// OrderStatus represents the lifecycle of a kitchen order
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusCooking   OrderStatus = "cooking"
	StatusReady     OrderStatus = "ready"
	StatusCompleted OrderStatus = "completed"
)

type Order struct {
	ID          string      `json:"id"`
	UserID      int         `json:"userId"`
	UserName    string      `json:"userName"`
	Items       []CartItem  `json:"items"` // price snapshot taken at order time
	TotalAmount float64     `json:"totalAmount"`
	Status      OrderStatus `json:"status"`
	CreatedAt   time.Time   `json:"createdAt"`
}
