package store

import (
	"encoding/json"
	"strconv"
	"time"

	"self-order-api/models"
)

// Row shapes of the hosted relational backend. Field names follow the
// authoritative schema; translation to and from the internal entity model is
// total and lossless except for the two documented cases: non-numeric remote
// user ids fall back to 0, and an absent order user id maps to NULL.

type dishRow struct {
	ID          int    `gorm:"primaryKey;autoIncrement"`
	Name        string `gorm:"not null"`
	Price       float64
	Category    string
	ImageURL    string `gorm:"column:image_url"`
	Description string
	Spiciness   int
	IsSoldOut   bool `gorm:"column:is_sold_out"`
	Sales       int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (dishRow) TableName() string { return "dishes" }

type orderRow struct {
	ID          string  `gorm:"primaryKey"`
	UserID      *string `gorm:"column:user_id"`
	UserName    string  `gorm:"column:user_name"`
	Items       string  // JSON snapshot of the cart items
	TotalAmount float64 `gorm:"column:total_amount"`
	Status      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (orderRow) TableName() string { return "orders" }

type reservationRow struct {
	ID        string `gorm:"primaryKey"`
	Name      string
	Date      string
	Time      string
	Guests    int
	Status    string
	CreatedAt time.Time
}

func (reservationRow) TableName() string { return "reservations" }

type userRow struct {
	ID         string `gorm:"primaryKey"`
	Nickname   string
	AvatarURL  string `gorm:"column:avatar_url"`
	Role       string
	Points     int
	TotalSpend float64 `gorm:"column:total_spend"`
	OrderCount int     `gorm:"column:order_count"`
	CreatedAt  time.Time
}

func (userRow) TableName() string { return "users" }

// ── Translation ──────────────────────────────────────────────────────────────

func dishFromRow(r dishRow) models.Dish {
	return models.Dish{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		Category:    models.DishCategory(r.Category),
		Image:       r.ImageURL,
		Sales:       r.Sales,
		IsSoldOut:   r.IsSoldOut,
		Spiciness:   r.Spiciness,
	}
}

func dishToRow(d models.Dish) dishRow {
	return dishRow{
		ID:          d.ID,
		Name:        d.Name,
		Price:       d.Price,
		Category:    string(d.Category),
		ImageURL:    d.Image,
		Description: d.Description,
		Spiciness:   d.Spiciness,
		IsSoldOut:   d.IsSoldOut,
		Sales:       d.Sales,
	}
}

// parseUserID converts a remote string user id to the internal integer id.
// A missing or non-numeric id never fails the translation: it becomes the
// sentinel 0.
func parseUserID(s *string) int {
	if s == nil {
		return 0
	}
	id, err := strconv.Atoi(*s)
	if err != nil {
		return 0
	}
	return id
}

// userIDToRow serializes a present internal id to its string form; the
// zero value maps to NULL on the remote side.
func userIDToRow(id int) *string {
	if id == 0 {
		return nil
	}
	s := strconv.Itoa(id)
	return &s
}

func orderFromRow(r orderRow) (models.Order, error) {
	var items []models.CartItem
	if r.Items != "" {
		if err := json.Unmarshal([]byte(r.Items), &items); err != nil {
			return models.Order{}, err
		}
	}
	return models.Order{
		ID:          r.ID,
		UserID:      parseUserID(r.UserID),
		UserName:    r.UserName,
		Items:       items,
		TotalAmount: r.TotalAmount,
		Status:      models.OrderStatus(r.Status),
		CreatedAt:   r.CreatedAt,
	}, nil
}

func orderToRow(o models.Order) (orderRow, error) {
	items, err := json.Marshal(o.Items)
	if err != nil {
		return orderRow{}, err
	}
	return orderRow{
		ID:          o.ID,
		UserID:      userIDToRow(o.UserID),
		UserName:    o.UserName,
		Items:       string(items),
		TotalAmount: o.TotalAmount,
		Status:      string(o.Status),
		CreatedAt:   o.CreatedAt,
	}, nil
}

func reservationFromRow(r reservationRow) models.Reservation {
	return models.Reservation{
		ID:     r.ID,
		Name:   r.Name,
		Date:   r.Date,
		Time:   r.Time,
		Guests: r.Guests,
		Status: models.ReservationStatus(r.Status),
	}
}

func userFromRow(r userRow) models.User {
	id, _ := strconv.Atoi(r.ID)
	return models.User{
		ID:         id,
		Nickname:   r.Nickname,
		Avatar:     r.AvatarURL,
		Role:       models.UserRole(r.Role),
		Points:     r.Points,
		TotalSpend: r.TotalSpend,
		OrderCount: r.OrderCount,
	}
}
