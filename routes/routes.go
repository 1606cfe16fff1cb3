package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/ta9iBarkat/ecommerce-platform/controllers"
	"github.com/ta9iBarkat/ecommerce-platform/middleware"
	"github.com/ta9iBarkat/ecommerce-platform/models"
	"github.com/ta9iBarkat/ecommerce-platform/utils"
)

// Register sets up all the routes for the application under /api.
func Register(
	router *mux.Router,
	auth *middleware.Auth,
	authController *controllers.AuthController,
	productController *controllers.ProductController,
	cartController *controllers.CartController,
	orderController *controllers.OrderController,
) {
	api := router.PathPrefix("/api").Subrouter()

	// Auth routes
	api.HandleFunc("/auth/register", authController.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", authController.Login).Methods(http.MethodPost)
	api.HandleFunc("/auth/refresh", authController.Refresh).Methods(http.MethodGet)
	api.HandleFunc("/auth/logout", authController.Logout).Methods(http.MethodPost)
	api.Handle("/auth/profile",
		auth.Protect(http.HandlerFunc(authController.Profile))).Methods(http.MethodGet)

	// Product routes: reading is public, writing is for sellers and admins.
	sellerOnly := func(h http.HandlerFunc) http.Handler {
		return auth.Protect(auth.RequireRoles(models.RoleSeller, models.RoleAdmin)(h))
	}
	api.HandleFunc("/products", productController.List).Methods(http.MethodGet)
	api.HandleFunc("/products/{id}", productController.Get).Methods(http.MethodGet)
	api.Handle("/products", sellerOnly(productController.Create)).Methods(http.MethodPost)
	api.Handle("/products/{id}", sellerOnly(productController.Update)).Methods(http.MethodPut)
	api.Handle("/products/{id}", sellerOnly(productController.Delete)).Methods(http.MethodDelete)

	// Cart routes
	cart := api.PathPrefix("/cart").Subrouter()
	cart.Use(auth.Protect)
	cart.HandleFunc("", cartController.Get).Methods(http.MethodGet)
	cart.HandleFunc("", cartController.AddItem).Methods(http.MethodPost)
	cart.HandleFunc("/item/{productId}", cartController.UpdateItem).Methods(http.MethodPut)
	cart.HandleFunc("/item/{productId}", cartController.RemoveItem).Methods(http.MethodDelete)

	// Order routes
	adminOnly := func(h http.HandlerFunc) http.Handler {
		return auth.Protect(auth.RequireRoles(models.RoleAdmin)(h))
	}
	api.Handle("/orders",
		auth.Protect(http.HandlerFunc(orderController.Create))).Methods(http.MethodPost)
	api.Handle("/orders/my",
		auth.Protect(http.HandlerFunc(orderController.GetMy))).Methods(http.MethodGet)
	api.Handle("/orders", adminOnly(orderController.GetAll)).Methods(http.MethodGet)
	api.Handle("/orders/{id}", adminOnly(orderController.UpdateStatus)).Methods(http.MethodPut)

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		utils.RespondError(w, http.StatusNotFound, "can't find "+r.URL.Path+" on this server")
	})
}
