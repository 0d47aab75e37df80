package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"self-order-api/cart"
	"self-order-api/feed"
	"self-order-api/handlers"
	"self-order-api/middleware"
	"self-order-api/models"
	"self-order-api/recommend"
	"self-order-api/routes"
	"self-order-api/service"
	"self-order-api/state"
	"self-order-api/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testChefPIN = "1234"

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	mock := store.NewMock(0)
	hub := feed.New(mock.Orders().GetAll, 0, log)
	svc := service.New(mock, log, hub)
	controller := state.NewController(svc, log)
	controller.Load(context.Background())

	pinHash, err := bcrypt.GenerateFromPassword([]byte(testChefPIN), bcrypt.MinCost)
	require.NoError(t, err)

	auth := middleware.NewAuth([]byte("test-secret"))
	h := &handlers.Handler{
		State:       controller,
		Svc:         svc,
		Auth:        auth,
		Advisor:     recommend.NewAdvisor("", "", log), // unconfigured: always falls back
		Hub:         hub,
		Carts:       cart.NewRegistry(),
		ChefPINHash: pinHash,
		StoreName:   mock.Name(),
	}

	r := gin.New()
	routes.SetupRoutes(r, h, auth)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp map[string]any
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	}
	return w, resp
}

func login(t *testing.T, r *gin.Engine, nickname string, role models.UserRole, pin string) string {
	t.Helper()
	w, resp := doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"nickname": nickname, "role": role, "pin": pin,
	})
	require.Equal(t, http.StatusOK, w.Code, "login failed: %v", resp)
	token, _ := resp["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestLoginRoles(t *testing.T) {
	r := newTestRouter(t)

	w, resp := doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"nickname": "美食家小王", "role": "guest",
	})
	require.Equal(t, http.StatusOK, w.Code)
	user := resp["user"].(map[string]any)
	require.Equal(t, float64(100), user["points"], "first-time guests start with welcome points")

	w, _ = doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"nickname": "大厨", "role": "chef", "pin": "0000",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"nickname": "大厨", "role": "chef", "pin": testChefPIN,
	})
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"nickname": "黑客", "role": "admin",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthRequired(t *testing.T) {
	r := newTestRouter(t)

	w, _ := doJSON(t, r, http.MethodGet, "/api/cart", "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = doJSON(t, r, http.MethodGet, "/api/cart", "not-a-token", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestChefRoutesRejectGuests(t *testing.T) {
	r := newTestRouter(t)
	guest := login(t, r, "小王", models.RoleGuest, "")

	w, _ := doJSON(t, r, http.MethodPost, "/api/chef/dishes", guest, gin.H{
		"name": "宫保鸡丁", "price": 30, "category": string(models.CategoryMeat),
	})
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestMenuIsPublicAndFilterable(t *testing.T) {
	r := newTestRouter(t)

	w, resp := doJSON(t, r, http.MethodGet, "/api/dishes", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, float64(7), resp["count"], "seeded menu has seven dishes")

	w, resp = doJSON(t, r, http.MethodGet, "/api/dishes?category="+string(models.CategoryMeat), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, float64(2), resp["count"])

	w, resp = doJSON(t, r, http.MethodGet, "/api/dishes?search=牛肉", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, float64(1), resp["count"])
}

func TestCartCheckoutFlow(t *testing.T) {
	r := newTestRouter(t)
	guest := login(t, r, "小王", models.RoleGuest, "")

	// Two of the same dish: the line item bumps instead of duplicating.
	for i := 0; i < 2; i++ {
		w, resp := doJSON(t, r, http.MethodPost, "/api/cart/items", guest, gin.H{"dish_id": 101})
		require.Equal(t, http.StatusOK, w.Code, "%v", resp)
	}
	w, resp := doJSON(t, r, http.MethodGet, "/api/cart", guest, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, float64(2), resp["count"])
	require.Equal(t, float64(76), resp["total"])

	// Drop one.
	w, resp = doJSON(t, r, http.MethodPut, "/api/cart/items/101", guest, gin.H{"delta": -1})
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, float64(1), resp["count"])

	w, resp = doJSON(t, r, http.MethodPost, "/api/orders", guest, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	order := resp["order"].(map[string]any)
	require.Equal(t, "pending", order["status"])
	require.Equal(t, float64(38), order["totalAmount"])
	require.Nil(t, resp["incomplete"])

	// Checkout cleared the cart; a second checkout has nothing to order.
	w, resp = doJSON(t, r, http.MethodGet, "/api/cart", guest, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, float64(0), resp["count"])

	w, _ = doJSON(t, r, http.MethodPost, "/api/orders", guest, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w, resp = doJSON(t, r, http.MethodGet, "/api/orders", guest, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, float64(1), resp["count"])
	require.Equal(t, float64(1), resp["pending_count"])
}

func TestSoldOutDishCannotBeAdded(t *testing.T) {
	r := newTestRouter(t)
	guest := login(t, r, "小王", models.RoleGuest, "")

	w, resp := doJSON(t, r, http.MethodPost, "/api/cart/items", guest, gin.H{"dish_id": 402})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	require.Contains(t, resp["error"], "已售罄")

	w, _ = doJSON(t, r, http.MethodPost, "/api/cart/items", guest, gin.H{"dish_id": 999999})
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestOrdersAreScopedPerGuest(t *testing.T) {
	r := newTestRouter(t)
	wang := login(t, r, "小王", models.RoleGuest, "")
	li := login(t, r, "小李", models.RoleGuest, "")
	chef := login(t, r, "大厨", models.RoleChef, testChefPIN)

	doJSON(t, r, http.MethodPost, "/api/cart/items", wang, gin.H{"dish_id": 101})
	w, _ := doJSON(t, r, http.MethodPost, "/api/orders", wang, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	_, resp := doJSON(t, r, http.MethodGet, "/api/orders", li, nil)
	require.Equal(t, float64(0), resp["count"], "guests only see their own orders")

	_, resp = doJSON(t, r, http.MethodGet, "/api/orders", chef, nil)
	require.Equal(t, float64(1), resp["count"], "the chef sees everything")
}

func TestChefAdvancesOrderThroughLifecycle(t *testing.T) {
	r := newTestRouter(t)
	guest := login(t, r, "小王", models.RoleGuest, "")
	chef := login(t, r, "大厨", models.RoleChef, testChefPIN)

	doJSON(t, r, http.MethodPost, "/api/cart/items", guest, gin.H{"dish_id": 101})
	w, resp := doJSON(t, r, http.MethodPost, "/api/orders", guest, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	orderID := resp["order"].(map[string]any)["id"].(string)

	// Skipping cooking is rejected and changes nothing.
	w, resp = doJSON(t, r, http.MethodPut, "/api/chef/orders/"+orderID+"/status", chef,
		gin.H{"status": "ready"})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	require.Equal(t, "Invalid state transition", resp["error"])

	for _, next := range []string{"cooking", "ready", "completed"} {
		w, resp = doJSON(t, r, http.MethodPut, "/api/chef/orders/"+orderID+"/status", chef,
			gin.H{"status": next})
		require.Equal(t, http.StatusOK, w.Code, "%v", resp)
		require.Equal(t, next, resp["current_status"])
	}

	w, _ = doJSON(t, r, http.MethodPut, "/api/chef/orders/missing-id/status", chef,
		gin.H{"status": "cooking"})
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestChefDishCRUD(t *testing.T) {
	r := newTestRouter(t)
	chef := login(t, r, "大厨", models.RoleChef, testChefPIN)

	w, resp := doJSON(t, r, http.MethodPost, "/api/chef/dishes", chef, gin.H{
		"name": "宫保鸡丁", "price": 30, "category": string(models.CategoryMeat), "spiciness": 2,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	dish := resp["dish"].(map[string]any)
	require.Equal(t, float64(0), dish["sales"])
	id := strconv.Itoa(int(dish["id"].(float64)))

	w, resp = doJSON(t, r, http.MethodPut, "/api/chef/dishes/"+id, chef, gin.H{"isSoldOut": true})
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, true, resp["dish"].(map[string]any)["isSoldOut"])

	w, _ = doJSON(t, r, http.MethodDelete, "/api/chef/dishes/"+id, chef, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = doJSON(t, r, http.MethodDelete, "/api/chef/dishes/"+id, chef, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestReservationFlow(t *testing.T) {
	r := newTestRouter(t)
	guest := login(t, r, "小李", models.RoleGuest, "")
	chef := login(t, r, "大厨", models.RoleChef, testChefPIN)

	w, resp := doJSON(t, r, http.MethodPost, "/api/reservations", guest, gin.H{
		"name": "小李", "date": "2024-06-01", "time": "18:30", "guests": 4,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	reservation := resp["reservation"].(map[string]any)
	require.Equal(t, "confirmed", reservation["status"])
	id := reservation["id"].(string)

	// Guest counts outside 1..20 never reach the facade.
	w, _ = doJSON(t, r, http.MethodPost, "/api/reservations", guest, gin.H{
		"name": "小李", "date": "2024-06-01", "time": "18:30", "guests": 21,
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w, resp = doJSON(t, r, http.MethodPut, "/api/chef/reservations/"+id+"/status", chef,
		gin.H{"status": "cancelled"})
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "cancelled", resp["reservation"].(map[string]any)["status"])

	// Cancelled is terminal.
	w, _ = doJSON(t, r, http.MethodPut, "/api/chef/reservations/"+id+"/status", chef,
		gin.H{"status": "cancelled"})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestAssistantEndpoints(t *testing.T) {
	r := newTestRouter(t)
	guest := login(t, r, "小王", models.RoleGuest, "")

	w, resp := doJSON(t, r, http.MethodGet, "/api/assistant", guest, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, recommend.Greeting, resp["reply"])

	// The advisor is unconfigured in tests, so chat degrades gracefully.
	w, resp = doJSON(t, r, http.MethodPost, "/api/assistant/chat", guest, gin.H{"message": "想吃辣的"})
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, recommend.FallbackReply, resp["reply"])
}

func TestStatusAndStateMachineInfo(t *testing.T) {
	r := newTestRouter(t)

	w, resp := doJSON(t, r, http.MethodGet, "/api/status", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "mock", resp["store"])
	require.Equal(t, false, resp["loading"])
	require.Equal(t, "", resp["error"])

	w, resp = doJSON(t, r, http.MethodGet, "/api/state-machine", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, resp["state_machine"], 3)
}

// streamRecorder adds the CloseNotify that gin's Stream helper expects.
type streamRecorder struct {
	*httptest.ResponseRecorder
	closed chan bool
}

func (s *streamRecorder) CloseNotify() <-chan bool { return s.closed }

func TestOrderEventsStreamSeedsImmediately(t *testing.T) {
	r := newTestRouter(t)
	guest := login(t, r, "小王", models.RoleGuest, "")

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	req := httptest.NewRequest(http.MethodGet, "/api/events/orders", nil).WithContext(ctx)
	req.Header.Set("Authorization", "Bearer "+guest)
	w := &streamRecorder{httptest.NewRecorder(), make(chan bool)}
	r.ServeHTTP(w, req)

	require.Equal(t, "text/event-stream", w.Header().Get("Content-Type"))
	require.Contains(t, w.Body.String(), "event:orders")
}
