package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"self-order-api/cart"
	"self-order-api/config"
	"self-order-api/feed"
	"self-order-api/handlers"
	"self-order-api/middleware"
	"self-order-api/recommend"
	"self-order-api/routes"
	"self-order-api/service"
	"self-order-api/state"
	"self-order-api/store"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

func newLogger(appEnv string) *slog.Logger {
	switch appEnv {
	case "production", "prod":
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}

func main() {
	cfg := config.Load()
	log := newLogger(cfg.AppEnv)
	slog.SetDefault(log)

	ctx := context.Background()

	// Pick the store once: a single probe decides remote vs mock for the
	// whole process lifetime.
	var openRemote func() (*store.Remote, error)
	if cfg.RemoteConfigured() {
		openRemote = func() (*store.Remote, error) {
			return store.OpenRemote(cfg.RemoteDBURL, cfg.RemoteDBKey)
		}
	}
	mock := store.NewMock(cfg.MockLatency)
	st := store.NewSelector(openRemote, mock, log).Pick(ctx)
	log.Info("store pinned", "store", st.Name())

	hub := feed.New(st.Orders().GetAll, cfg.FeedInterval, log)
	svc := service.New(st, log, hub)
	controller := state.NewController(svc, log)

	controller.Load(ctx)
	if _, errMsg := controller.Status(); errMsg != "" {
		log.Warn("initial data load incomplete", "error", errMsg)
	}

	go hub.Run(ctx)
	snapshots, _ := hub.Subscribe()
	go controller.Watch(ctx, snapshots)

	pinHash, err := bcrypt.GenerateFromPassword([]byte(cfg.ChefPIN), bcrypt.DefaultCost)
	if err != nil {
		log.Error("failed to hash chef PIN", "error", err)
		os.Exit(1)
	}

	auth := middleware.NewAuth(cfg.JWTSecret)
	h := &handlers.Handler{
		State:       controller,
		Svc:         svc,
		Auth:        auth,
		Advisor:     recommend.NewAdvisor(cfg.AIEndpoint, cfg.AIKey, log),
		Hub:         hub,
		Carts:       cart.NewRegistry(),
		ChefPINHash: pinHash,
		StoreName:   st.Name(),
	}

	if mode := os.Getenv("GIN_MODE"); mode == "" && cfg.AppEnv == "local" {
		gin.SetMode(gin.DebugMode)
	}
	r := gin.Default()

	// CORS middleware for frontend integration
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "Restaurant Self-Ordering API",
			"store":   st.Name(),
			"version": "1.0.0",
		})
	})

	routes.SetupRoutes(r, h, auth)

	log.Info("server starting", "port", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Error("server failed", "error", err)
		os.Exit(1)
	}
}
