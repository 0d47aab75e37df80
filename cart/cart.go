// Package cart holds per-session carts. Carts are ephemeral: they are never
// persisted and disappear with the session.
package cart

import (
	"sync"

	"self-order-api/models"
)

// Cart is an ordered list of cart items. Every item keeps quantity > 0;
// items that reach zero are pruned immediately.
type Cart struct {
	mu    sync.Mutex
	items []models.CartItem
}

func New() *Cart {
	return &Cart{}
}

// Add puts one more of the dish in the cart: existing items get their
// quantity bumped, new dishes enter with quantity 1.
func (c *Cart) Add(dish models.Dish) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].ID == dish.ID {
			c.items[i].Quantity++
			return
		}
	}
	c.items = append(c.items, models.CartItem{Dish: dish, Quantity: 1})
}

// UpdateQuantity applies a delta to the dish's quantity. Quantities are
// clamped at zero and zero-quantity items are removed from the cart.
func (c *Cart) UpdateQuantity(dishID, delta int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].ID != dishID {
			continue
		}
		c.items[i].Quantity += delta
		if c.items[i].Quantity <= 0 {
			c.items = append(c.items[:i], c.items[i+1:]...)
		}
		return
	}
}

// Items returns a snapshot of the cart contents.
func (c *Cart) Items() []models.CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]models.CartItem(nil), c.items...)
}

// Count is the total number of dishes across all items.
func (c *Cart) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, item := range c.items {
		n += item.Quantity
	}
	return n
}

// Total is the current subtotal of the cart.
func (c *Cart) Total() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := 0.0
	for _, item := range c.items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
}

// Registry hands out one cart per user session.
type Registry struct {
	mu    sync.Mutex
	carts map[int]*Cart
}

func NewRegistry() *Registry {
	return &Registry{carts: make(map[int]*Cart)}
}

// For returns the user's cart, creating it on first use.
func (r *Registry) For(userID int) *Cart {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.carts[userID]
	if !ok {
		c = New()
		r.carts[userID] = c
	}
	return c
}
