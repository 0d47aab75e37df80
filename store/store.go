// Package store is the backend adapter: every entity gets the same API shape
// regardless of whether the hosted relational backend or the in-process mock
// answered the call.
package store

import (
	"context"
	"errors"
	"fmt"

	"self-order-api/models"
)

// DishStore covers staff menu management plus the sales counter, which only
// ever moves upward through IncrementSales.
type DishStore interface {
	GetAll(ctx context.Context) ([]models.Dish, error)
	Create(ctx context.Context, dish models.Dish) (models.Dish, error)
	Update(ctx context.Context, id int, updates models.DishUpdate) (models.Dish, error)
	Delete(ctx context.Context, id int) error
	IncrementSales(ctx context.Context, id, by int) error
}

type OrderStore interface {
	GetAll(ctx context.Context) ([]models.Order, error)
	GetByUser(ctx context.Context, userID int) ([]models.Order, error)
	Get(ctx context.Context, id string) (models.Order, error)
	Create(ctx context.Context, order models.Order) (models.Order, error)
	UpdateStatus(ctx context.Context, id string, status models.OrderStatus) (models.Order, error)
}

type ReservationStore interface {
	GetAll(ctx context.Context) ([]models.Reservation, error)
	Create(ctx context.Context, res models.Reservation) (models.Reservation, error)
	UpdateStatus(ctx context.Context, id string, status models.ReservationStatus) (models.Reservation, error)
}

type UserStore interface {
	// GetOrCreate looks a user up by nickname and creates it when absent.
	GetOrCreate(ctx context.Context, user models.User) (models.User, error)
	// UpdateStats applies one completed spend: total spend, order count and
	// points (floor of the spend) all move forward atomically per user.
	UpdateStats(ctx context.Context, userID int, spend float64) error
}

// Store bundles the per-entity stores behind one switchable implementation.
type Store interface {
	Dishes() DishStore
	Orders() OrderStore
	Reservations() ReservationStore
	Users() UserStore

	// Ping is the trivial availability probe used by the selector.
	Ping(ctx context.Context) error
	// Name identifies the implementation in logs ("remote" or "mock").
	Name() string
}

// ErrNoRowReturned marks a create that the backend accepted but answered
// without the inserted row.
var ErrNoRowReturned = errors.New("store returned no row")

// NotFoundError names the entity a mutation failed to find.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return e.Entity + " not found: " + e.ID
}

// IsNotFound reports whether err wraps a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

func notFound(entity string, id any) error {
	return &NotFoundError{Entity: entity, ID: fmt.Sprint(id)}
}
