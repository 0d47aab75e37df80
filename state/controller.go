// Package state keeps the in-memory mirror of dishes, orders and
// reservations that the presentation layer reads. Every mutation goes
// through the facade first; local state only changes after the store
// confirmed the write.
package state

import (
	"context"
	"log/slog"
	"sync"

	"self-order-api/models"
	"self-order-api/service"
)

type Controller struct {
	svc *service.Service
	log *slog.Logger

	mu           sync.RWMutex
	dishes       []models.Dish
	orders       []models.Order
	reservations []models.Reservation
	loading      bool
	lastErr      string
}

func NewController(svc *service.Service, log *slog.Logger) *Controller {
	return &Controller{svc: svc, log: log}
}

// Load performs the combined initial fetch of all three lists. The fetches
// run independently: one failing surfaces an error but does not stop the
// others from populating.
func (c *Controller) Load(ctx context.Context) {
	c.mu.Lock()
	c.loading = true
	c.lastErr = ""
	c.mu.Unlock()

	var wg sync.WaitGroup
	wg.Add(3)

	go func() {
		defer wg.Done()
		dishes, err := c.svc.Menu(ctx)
		if err != nil {
			c.fail("加载菜品失败", err)
			return
		}
		c.mu.Lock()
		c.dishes = dishes
		c.mu.Unlock()
	}()
	go func() {
		defer wg.Done()
		orders, err := c.svc.ListOrders(ctx)
		if err != nil {
			c.fail("加载订单失败", err)
			return
		}
		c.mu.Lock()
		c.orders = orders
		c.mu.Unlock()
	}()
	go func() {
		defer wg.Done()
		reservations, err := c.svc.ListReservations(ctx)
		if err != nil {
			c.fail("加载预约失败", err)
			return
		}
		c.mu.Lock()
		c.reservations = reservations
		c.mu.Unlock()
	}()

	wg.Wait()
	c.mu.Lock()
	c.loading = false
	c.mu.Unlock()
}

// Watch applies live order snapshots until ctx is cancelled. Each snapshot
// replaces the whole order list: last write wins at the list level.
func (c *Controller) Watch(ctx context.Context, snapshots <-chan []models.Order) {
	for {
		select {
		case <-ctx.Done():
			return
		case orders, ok := <-snapshots:
			if !ok {
				return
			}
			c.mu.Lock()
			c.orders = orders
			c.mu.Unlock()
		}
	}
}

// ── Read side ────────────────────────────────────────────────────────────────

func (c *Controller) Dishes() []models.Dish {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]models.Dish(nil), c.dishes...)
}

func (c *Controller) Orders() []models.Order {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]models.Order(nil), c.orders...)
}

// UserOrders filters the mirror for one guest's orders.
func (c *Controller) UserOrders(userID int) []models.Order {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var out []models.Order
	for _, o := range c.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out
}

func (c *Controller) Reservations() []models.Reservation {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]models.Reservation(nil), c.reservations...)
}

// Status reports the loading flag and the last visible error message.
func (c *Controller) Status() (loading bool, errMsg string) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loading, c.lastErr
}

func (c *Controller) ClearError() {
	c.mu.Lock()
	c.lastErr = ""
	c.mu.Unlock()
}

func (c *Controller) fail(msg string, err error) {
	c.log.Error(msg, "error", err)
	c.mu.Lock()
	c.lastErr = msg + ": " + err.Error()
	c.mu.Unlock()
}

// ── Mutations ────────────────────────────────────────────────────────────────
//
// Pattern shared by every mutation: call the facade, splice the confirmed
// entity into local state on success, record the error and return it on
// failure. Local state is untouched on failure — nothing optimistic was
// applied, so there is nothing to roll back.

func (c *Controller) AddDish(ctx context.Context, dish models.Dish) (models.Dish, error) {
	created, err := c.svc.AddDish(ctx, dish)
	if err != nil {
		c.fail("添加菜品失败", err)
		return models.Dish{}, err
	}
	c.mu.Lock()
	c.dishes = append([]models.Dish{created}, c.dishes...)
	c.mu.Unlock()
	return created, nil
}

func (c *Controller) UpdateDish(ctx context.Context, id int, updates models.DishUpdate) (models.Dish, error) {
	updated, err := c.svc.UpdateDish(ctx, id, updates)
	if err != nil {
		c.fail("更新菜品失败", err)
		return models.Dish{}, err
	}
	c.mu.Lock()
	for i := range c.dishes {
		if c.dishes[i].ID == id {
			c.dishes[i] = updated
		}
	}
	c.mu.Unlock()
	return updated, nil
}

func (c *Controller) DeleteDish(ctx context.Context, id int) error {
	if err := c.svc.DeleteDish(ctx, id); err != nil {
		c.fail("删除菜品失败", err)
		return err
	}
	c.mu.Lock()
	kept := c.dishes[:0]
	for _, d := range c.dishes {
		if d.ID != id {
			kept = append(kept, d)
		}
	}
	c.dishes = kept
	c.mu.Unlock()
	return nil
}

func (c *Controller) PlaceOrder(ctx context.Context, user models.User, items []models.CartItem) (service.OrderReceipt, error) {
	receipt, err := c.svc.PlaceOrder(ctx, user, items)
	if err != nil {
		c.fail("创建订单失败", err)
		return service.OrderReceipt{}, err
	}
	c.mu.Lock()
	c.orders = append([]models.Order{receipt.Order}, c.orders...)
	// The dish mirror lags the store's sales counters here; the next menu
	// fetch reconciles it.
	c.mu.Unlock()
	return receipt, nil
}

func (c *Controller) AdvanceOrder(ctx context.Context, id string, to models.OrderStatus) (models.Order, error) {
	updated, err := c.svc.AdvanceOrder(ctx, id, to)
	if err != nil {
		c.fail("更新订单状态失败", err)
		return models.Order{}, err
	}
	c.mu.Lock()
	for i := range c.orders {
		if c.orders[i].ID == id {
			c.orders[i] = updated
		}
	}
	c.mu.Unlock()
	return updated, nil
}

func (c *Controller) BookTable(ctx context.Context, res models.Reservation) (models.Reservation, error) {
	created, err := c.svc.BookTable(ctx, res)
	if err != nil {
		c.fail("创建预约失败", err)
		return models.Reservation{}, err
	}
	c.mu.Lock()
	c.reservations = append([]models.Reservation{created}, c.reservations...)
	c.mu.Unlock()
	return created, nil
}

func (c *Controller) UpdateReservationStatus(ctx context.Context, id string, status models.ReservationStatus) (models.Reservation, error) {
	updated, err := c.svc.UpdateReservationStatus(ctx, id, status)
	if err != nil {
		c.fail("更新预约状态失败", err)
		return models.Reservation{}, err
	}
	c.mu.Lock()
	for i := range c.reservations {
		if c.reservations[i].ID == id {
			c.reservations[i] = updated
		}
	}
	c.mu.Unlock()
	return updated, nil
}
