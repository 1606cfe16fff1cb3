package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/ta9iBarkat/ecommerce-platform/config"
	"github.com/ta9iBarkat/ecommerce-platform/controllers"
	"github.com/ta9iBarkat/ecommerce-platform/middleware"
	"github.com/ta9iBarkat/ecommerce-platform/routes"
	"github.com/ta9iBarkat/ecommerce-platform/services"
	"github.com/ta9iBarkat/ecommerce-platform/store"
	"github.com/ta9iBarkat/ecommerce-platform/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}
	logger := utils.NewLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := store.Connect(ctx, cfg.MongoURI)
	if err != nil {
		logger.Error("mongo connect failed", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			logger.Error("mongo disconnect failed", "error", err)
		}
	}()

	db := client.Database(cfg.DBName)
	if err := store.EnsureIndexes(ctx, db); err != nil {
		logger.Error("index creation failed", "error", err)
		os.Exit(1)
	}

	users := store.NewMongoUserStore(db)
	products := store.NewMongoProductStore(db)
	carts := store.NewMongoCartStore(db)
	orders := store.NewMongoOrderStore(db)

	tokens := utils.NewTokenManager(cfg)

	var mailer services.Mailer
	if cfg.SendGridAPIKey != "" {
		mailer = utils.NewEmailService(cfg)
	} else {
		logger.Warn("SENDGRID_API_KEY not set, order confirmation emails disabled")
	}

	orderService := services.NewOrderService(carts, products, products, orders, users, mailer, logger)

	auth := middleware.NewAuth(users, tokens)
	authController := controllers.NewAuthController(users, tokens, cfg, logger)
	productController := controllers.NewProductController(products, logger)
	cartController := controllers.NewCartController(carts, products, logger)
	orderController := controllers.NewOrderController(orderService, logger)

	router := mux.NewRouter()
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst).Middleware)
	routes.Register(router, auth, authController, productController, cartController, orderController)

	handler := handlers.CORS(
		handlers.AllowedOrigins(cfg.CORSOrigins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Authorization", "Content-Type"}),
		handlers.AllowCredentials(),
	)(handlers.RecoveryHandler()(router))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("server listening", "port", cfg.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", "error", err)
	}
}
