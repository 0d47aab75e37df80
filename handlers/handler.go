package handlers

import (
	"self-order-api/cart"
	"self-order-api/feed"
	"self-order-api/middleware"
	"self-order-api/recommend"
	"self-order-api/service"
	"self-order-api/state"
)

// Handler carries every dependency the HTTP surface needs; nothing is read
// from package globals.
type Handler struct {
	State       *state.Controller
	Svc         *service.Service
	Auth        *middleware.Auth
	Advisor     *recommend.Advisor
	Hub         *feed.Hub
	Carts       *cart.Registry
	ChefPINHash []byte
	StoreName   string
}
