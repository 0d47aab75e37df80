package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"self-order-api/models"
	"self-order-api/statemachine"
)

// OrderReceipt is the result of checkout. The order itself is the source of
// truth; Incomplete lists any follow-up step that failed after the order was
// already persisted, so callers can report partial application instead of
// silently masking it.
type OrderReceipt struct {
	Order      models.Order `json:"order"`
	Incomplete []string     `json:"incomplete,omitempty"`
}

// ListOrders returns every order, newest first.
func (s *Service) ListOrders(ctx context.Context) ([]models.Order, error) {
	return s.store.Orders().GetAll(ctx)
}

// ListOrdersByUser returns one guest's order history.
func (s *Service) ListOrdersByUser(ctx context.Context, userID int) ([]models.Order, error) {
	return s.store.Orders().GetByUser(ctx, userID)
}

// PlaceOrder runs the checkout saga: persist the order in pending status,
// then bump each dish's sales counter and the guest's aggregate stats. The
// follow-up steps are best effort — their failures never roll back the
// order, they are reported on the receipt.
func (s *Service) PlaceOrder(ctx context.Context, user models.User, items []models.CartItem) (OrderReceipt, error) {
	if len(items) == 0 {
		return OrderReceipt{}, errors.New("cannot place an empty order")
	}
	total := 0.0
	for _, item := range items {
		if item.Quantity <= 0 {
			return OrderReceipt{}, fmt.Errorf("invalid quantity %d for dish %q", item.Quantity, item.Name)
		}
		total += item.Price * float64(item.Quantity)
	}

	order := models.Order{
		UserID:      user.ID,
		UserName:    user.Nickname,
		Items:       items,
		TotalAmount: total,
		Status:      models.StatusPending,
		CreatedAt:   time.Now(),
	}
	created, err := s.store.Orders().Create(ctx, order)
	if err != nil {
		return OrderReceipt{}, fmt.Errorf("place order: %w", err)
	}

	var incomplete []string
	for _, item := range items {
		if err := s.store.Dishes().IncrementSales(ctx, item.ID, item.Quantity); err != nil {
			s.log.Warn("sales increment failed after order creation",
				"order", created.ID, "dish", item.ID, "error", err)
			incomplete = append(incomplete,
				fmt.Sprintf("sales increment for dish %d failed: %v", item.ID, err))
		}
	}
	if user.ID != 0 {
		if err := s.store.Users().UpdateStats(ctx, user.ID, total); err != nil {
			s.log.Warn("user stats update failed after order creation",
				"order", created.ID, "user", user.ID, "error", err)
			incomplete = append(incomplete,
				fmt.Sprintf("stats update for user %d failed: %v", user.ID, err))
		}
	}

	s.log.Info("order placed", "id", created.ID, "user", created.UserName,
		"total", created.TotalAmount, "items", len(created.Items))
	s.notifyOrders()
	return OrderReceipt{Order: created, Incomplete: incomplete}, nil
}

// AdvanceOrder moves an order one step along pending → cooking → ready →
// completed. The requested edge is validated against the persisted status
// before any store call, failing closed on invalid edges.
func (s *Service) AdvanceOrder(ctx context.Context, id string, to models.OrderStatus) (models.Order, error) {
	current, err := s.store.Orders().Get(ctx, id)
	if err != nil {
		return models.Order{}, err
	}
	if err := statemachine.CanTransition(current.Status, to); err != nil {
		return models.Order{}, err
	}

	updated, err := s.store.Orders().UpdateStatus(ctx, id, to)
	if err != nil {
		return models.Order{}, err
	}
	s.log.Info("order status advanced", "id", id, "from", current.Status, "to", to)
	s.notifyOrders()
	return updated, nil
}
