package service

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"self-order-api/models"
	"self-order-api/store"

	"github.com/stretchr/testify/require"
)

type countingNotifier struct{ calls int }

func (n *countingNotifier) Notify() { n.calls++ }

func newTestService(t *testing.T) (*Service, *store.Mock, *countingNotifier) {
	t.Helper()
	mock := store.NewMock(0)
	notifier := &countingNotifier{}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(mock, log, notifier), mock, notifier
}

func seededDish(t *testing.T, m *store.Mock, id int) models.Dish {
	t.Helper()
	dishes, err := m.Dishes().GetAll(context.Background())
	require.NoError(t, err)
	for _, d := range dishes {
		if d.ID == id {
			return d
		}
	}
	t.Fatalf("seeded dish %d not found", id)
	return models.Dish{}
}

func TestPlaceOrderComputesTotalAndBumpsSales(t *testing.T) {
	ctx := context.Background()
	svc, mock, notifier := newTestService(t)

	user, err := svc.Login(ctx, "美食家小王", models.RoleGuest)
	require.NoError(t, err)

	dish := seededDish(t, mock, 101)
	salesBefore := dish.Sales

	side := seededDish(t, mock, 202)
	receipt, err := svc.PlaceOrder(ctx, user, []models.CartItem{
		{Dish: dish, Quantity: 2},
		{Dish: side, Quantity: 1},
	})
	require.NoError(t, err)
	require.Empty(t, receipt.Incomplete)
	require.Equal(t, models.StatusPending, receipt.Order.Status)
	require.Equal(t, dish.Price*2+side.Price, receipt.Order.TotalAmount)
	require.Equal(t, 1, notifier.calls)

	require.Equal(t, salesBefore+2, seededDish(t, mock, 101).Sales)
}

func TestPlaceOrderTotalSurvivesLaterPriceChange(t *testing.T) {
	ctx := context.Background()
	svc, mock, _ := newTestService(t)

	dish := seededDish(t, mock, 101)
	receipt, err := svc.PlaceOrder(ctx, models.User{Nickname: "路人"},
		[]models.CartItem{{Dish: dish, Quantity: 1}})
	require.NoError(t, err)

	newPrice := dish.Price + 100
	_, err = svc.UpdateDish(ctx, dish.ID, models.DishUpdate{Price: &newPrice})
	require.NoError(t, err)

	orders, err := svc.ListOrders(ctx)
	require.NoError(t, err)
	for _, o := range orders {
		if o.ID == receipt.Order.ID {
			require.Equal(t, dish.Price, o.TotalAmount, "orders snapshot prices at checkout")
			require.Equal(t, dish.Price, o.Items[0].Price)
		}
	}
}

func TestPlaceOrderRejectsEmptyAndInvalidQuantities(t *testing.T) {
	ctx := context.Background()
	svc, mock, notifier := newTestService(t)

	_, err := svc.PlaceOrder(ctx, models.User{}, nil)
	require.Error(t, err)

	dish := seededDish(t, mock, 101)
	_, err = svc.PlaceOrder(ctx, models.User{}, []models.CartItem{{Dish: dish, Quantity: 0}})
	require.Error(t, err)
	require.Zero(t, notifier.calls, "rejected checkouts must not touch the feed")
}

func TestPlaceOrderReportsPartialApplication(t *testing.T) {
	ctx := context.Background()
	svc, mock, _ := newTestService(t)

	// A dish that no longer exists: the order still goes through, the
	// failed follow-up is reported instead of rolled back.
	ghost := models.CartItem{Dish: models.Dish{ID: 999999, Name: "下架菜", Price: 10}, Quantity: 1}
	receipt, err := svc.PlaceOrder(ctx, models.User{ID: 424242, Nickname: "幽灵用户"},
		[]models.CartItem{ghost})
	require.NoError(t, err)
	require.Len(t, receipt.Incomplete, 2, "one per failed step: sales bump and stats update")

	orders, err := svc.ListOrders(ctx)
	require.NoError(t, err)
	require.Equal(t, receipt.Order.ID, orders[0].ID, "the order itself must stay committed")

	// Anonymous checkout (user id 0) skips the stats step entirely.
	dish := seededDish(t, mock, 101)
	receipt, err = svc.PlaceOrder(ctx, models.User{Nickname: "路人"},
		[]models.CartItem{{Dish: dish, Quantity: 1}})
	require.NoError(t, err)
	require.Empty(t, receipt.Incomplete)
}

func TestPlaceOrderUpdatesGuestStats(t *testing.T) {
	ctx := context.Background()
	svc, mock, _ := newTestService(t)

	user, err := svc.Login(ctx, "小张", models.RoleGuest)
	require.NoError(t, err)
	require.Equal(t, newUserPoints, user.Points)

	dish := seededDish(t, mock, 102) // 秘制红烧肉, 45.00
	_, err = svc.PlaceOrder(ctx, user, []models.CartItem{{Dish: dish, Quantity: 1}})
	require.NoError(t, err)

	after, err := svc.Login(ctx, "小张", models.RoleGuest)
	require.NoError(t, err)
	require.Equal(t, newUserPoints+int(dish.Price), after.Points)
	require.Equal(t, dish.Price, after.TotalSpend)
	require.Equal(t, 1, after.OrderCount)
}

func TestAdvanceOrderWalksTheChain(t *testing.T) {
	ctx := context.Background()
	svc, mock, notifier := newTestService(t)

	dish := seededDish(t, mock, 101)
	receipt, err := svc.PlaceOrder(ctx, models.User{Nickname: "小李"},
		[]models.CartItem{{Dish: dish, Quantity: 1}})
	require.NoError(t, err)
	id := receipt.Order.ID
	notifier.calls = 0

	for _, next := range []models.OrderStatus{models.StatusCooking, models.StatusReady, models.StatusCompleted} {
		updated, err := svc.AdvanceOrder(ctx, id, next)
		require.NoError(t, err)
		require.Equal(t, next, updated.Status)
	}
	require.Equal(t, 3, notifier.calls)

	_, err = svc.AdvanceOrder(ctx, id, models.StatusPending)
	require.Error(t, err, "completed is terminal")
}

func TestAdvanceOrderRejectsSkips(t *testing.T) {
	ctx := context.Background()
	svc, mock, notifier := newTestService(t)

	dish := seededDish(t, mock, 101)
	receipt, err := svc.PlaceOrder(ctx, models.User{Nickname: "小李"},
		[]models.CartItem{{Dish: dish, Quantity: 1}})
	require.NoError(t, err)
	notifier.calls = 0

	_, err = svc.AdvanceOrder(ctx, receipt.Order.ID, models.StatusReady)
	require.Error(t, err)
	require.Zero(t, notifier.calls)

	orders, err := svc.ListOrders(ctx)
	require.NoError(t, err)
	require.Equal(t, models.StatusPending, orders[0].Status, "rejected edges leave the order untouched")

	_, err = svc.AdvanceOrder(ctx, "missing-id", models.StatusCooking)
	require.True(t, store.IsNotFound(err))
}
