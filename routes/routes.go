package routes

import (
	"self-order-api/handlers"
	"self-order-api/middleware"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, h *handlers.Handler, auth *middleware.Auth) {
	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		public.POST("/auth/login", h.Login)
		public.GET("/dishes", h.GetMenu)
		public.GET("/state-machine", h.GetStateMachineInfo)
		public.GET("/status", h.GetStatus)
	}

	// ── Authenticated routes (guest or chef) ───────────────────────
	authed := r.Group("/api")
	authed.Use(auth.Required())
	{
		authed.GET("/cart", h.GetCart)
		authed.POST("/cart/items", h.AddToCart)
		authed.PUT("/cart/items/:id", h.UpdateCartItem)

		authed.POST("/orders", h.Checkout)
		authed.GET("/orders", h.ListOrders)
		authed.GET("/events/orders", h.OrderEvents)

		authed.GET("/reservations", h.ListReservations)
		authed.POST("/reservations", h.CreateReservation)

		authed.GET("/assistant", h.GetAssistantGreeting)
		authed.POST("/assistant/chat", h.Chat)

		authed.DELETE("/status/error", h.ClearError)
	}

	// ── Chef routes ────────────────────────────────────────────────
	chef := r.Group("/api/chef")
	chef.Use(auth.Required(), auth.ChefOnly())
	{
		chef.POST("/dishes", h.AddDish)
		chef.PUT("/dishes/:id", h.UpdateDish)
		chef.DELETE("/dishes/:id", h.DeleteDish)

		chef.PUT("/orders/:id/status", h.UpdateOrderStatus)
		chef.PUT("/reservations/:id/status", h.UpdateReservationStatus)
	}
}
