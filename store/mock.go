package store

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"self-order-api/models"

	"github.com/google/uuid"
)

// Mock is the in-process fallback store. It keeps everything in memory,
// injects a small latency to emulate network behavior, and generates ids
// that cannot collide within a session: UUIDs for orders and reservations,
// a monotonic millisecond counter for dishes and users.
type Mock struct {
	latency time.Duration
	nextID  atomic.Int64

	mu           sync.RWMutex
	dishes       []models.Dish
	orders       []models.Order
	reservations []models.Reservation
	users        []models.User
}

// NewMock builds a mock store pre-seeded with the demo menu.
func NewMock(latency time.Duration) *Mock {
	m := &Mock{
		latency: latency,
		dishes:  seedDishes(),
	}
	m.nextID.Store(time.Now().UnixMilli())
	return m
}

func (m *Mock) Name() string { return "mock" }

// Ping always succeeds; the mock is the implementation of last resort.
func (m *Mock) Ping(ctx context.Context) error { return m.wait(ctx) }

func (m *Mock) Dishes() DishStore              { return mockDishes{m} }
func (m *Mock) Orders() OrderStore             { return mockOrders{m} }
func (m *Mock) Reservations() ReservationStore { return mockReservations{m} }
func (m *Mock) Users() UserStore               { return mockUsers{m} }

// wait emulates a network round trip while honoring cancellation.
func (m *Mock) wait(ctx context.Context) error {
	if m.latency <= 0 {
		return ctx.Err()
	}
	select {
	case <-time.After(m.latency):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (m *Mock) newID() int {
	return int(m.nextID.Add(1))
}

// ── Dishes ───────────────────────────────────────────────────────────────────

type mockDishes struct{ m *Mock }

func (s mockDishes) GetAll(ctx context.Context) ([]models.Dish, error) {
	if err := s.m.wait(ctx); err != nil {
		return nil, err
	}
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	return append([]models.Dish(nil), s.m.dishes...), nil
}

func (s mockDishes) Create(ctx context.Context, dish models.Dish) (models.Dish, error) {
	if err := s.m.wait(ctx); err != nil {
		return models.Dish{}, err
	}
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	dish.ID = s.m.newID()
	s.m.dishes = append([]models.Dish{dish}, s.m.dishes...)
	return dish, nil
}

func (s mockDishes) Update(ctx context.Context, id int, updates models.DishUpdate) (models.Dish, error) {
	if err := s.m.wait(ctx); err != nil {
		return models.Dish{}, err
	}
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for i := range s.m.dishes {
		if s.m.dishes[i].ID == id {
			updates.Apply(&s.m.dishes[i])
			return s.m.dishes[i], nil
		}
	}
	return models.Dish{}, notFound("dish", id)
}

func (s mockDishes) Delete(ctx context.Context, id int) error {
	if err := s.m.wait(ctx); err != nil {
		return err
	}
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for i := range s.m.dishes {
		if s.m.dishes[i].ID == id {
			s.m.dishes = append(s.m.dishes[:i], s.m.dishes[i+1:]...)
			return nil
		}
	}
	return notFound("dish", id)
}

func (s mockDishes) IncrementSales(ctx context.Context, id, by int) error {
	if err := s.m.wait(ctx); err != nil {
		return err
	}
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for i := range s.m.dishes {
		if s.m.dishes[i].ID == id {
			s.m.dishes[i].Sales += by
			return nil
		}
	}
	return notFound("dish", id)
}

// ── Orders ───────────────────────────────────────────────────────────────────

type mockOrders struct{ m *Mock }

func (s mockOrders) GetAll(ctx context.Context) ([]models.Order, error) {
	if err := s.m.wait(ctx); err != nil {
		return nil, err
	}
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	return append([]models.Order(nil), s.m.orders...), nil
}

func (s mockOrders) GetByUser(ctx context.Context, userID int) ([]models.Order, error) {
	if err := s.m.wait(ctx); err != nil {
		return nil, err
	}
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	var orders []models.Order
	for _, o := range s.m.orders {
		if o.UserID == userID {
			orders = append(orders, o)
		}
	}
	return orders, nil
}

func (s mockOrders) Get(ctx context.Context, id string) (models.Order, error) {
	if err := s.m.wait(ctx); err != nil {
		return models.Order{}, err
	}
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	for _, o := range s.m.orders {
		if o.ID == id {
			return o, nil
		}
	}
	return models.Order{}, notFound("order", id)
}

func (s mockOrders) Create(ctx context.Context, order models.Order) (models.Order, error) {
	if err := s.m.wait(ctx); err != nil {
		return models.Order{}, err
	}
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	order.ID = uuid.NewString()
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now()
	}
	s.m.orders = append([]models.Order{order}, s.m.orders...)
	return order, nil
}

func (s mockOrders) UpdateStatus(ctx context.Context, id string, status models.OrderStatus) (models.Order, error) {
	if err := s.m.wait(ctx); err != nil {
		return models.Order{}, err
	}
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for i := range s.m.orders {
		if s.m.orders[i].ID == id {
			s.m.orders[i].Status = status
			return s.m.orders[i], nil
		}
	}
	return models.Order{}, notFound("order", id)
}

// ── Reservations ─────────────────────────────────────────────────────────────

type mockReservations struct{ m *Mock }

func (s mockReservations) GetAll(ctx context.Context) ([]models.Reservation, error) {
	if err := s.m.wait(ctx); err != nil {
		return nil, err
	}
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	return append([]models.Reservation(nil), s.m.reservations...), nil
}

func (s mockReservations) Create(ctx context.Context, res models.Reservation) (models.Reservation, error) {
	if err := s.m.wait(ctx); err != nil {
		return models.Reservation{}, err
	}
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	res.ID = uuid.NewString()
	s.m.reservations = append([]models.Reservation{res}, s.m.reservations...)
	return res, nil
}

func (s mockReservations) UpdateStatus(ctx context.Context, id string, status models.ReservationStatus) (models.Reservation, error) {
	if err := s.m.wait(ctx); err != nil {
		return models.Reservation{}, err
	}
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for i := range s.m.reservations {
		if s.m.reservations[i].ID == id {
			s.m.reservations[i].Status = status
			return s.m.reservations[i], nil
		}
	}
	return models.Reservation{}, notFound("reservation", id)
}

// ── Users ────────────────────────────────────────────────────────────────────

type mockUsers struct{ m *Mock }

func (s mockUsers) GetOrCreate(ctx context.Context, user models.User) (models.User, error) {
	if err := s.m.wait(ctx); err != nil {
		return models.User{}, err
	}
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for _, u := range s.m.users {
		if u.Nickname == user.Nickname {
			return u, nil
		}
	}
	user.ID = s.m.newID()
	user.TotalSpend = 0
	user.OrderCount = 0
	s.m.users = append(s.m.users, user)
	return user, nil
}

func (s mockUsers) UpdateStats(ctx context.Context, userID int, spend float64) error {
	if err := s.m.wait(ctx); err != nil {
		return err
	}
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for i := range s.m.users {
		if s.m.users[i].ID == userID {
			s.m.users[i].TotalSpend += spend
			s.m.users[i].OrderCount++
			s.m.users[i].Points += int(spend)
			return nil
		}
	}
	return notFound("user", userID)
}
