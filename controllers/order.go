package controllers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ta9iBarkat/ecommerce-platform/middleware"
	"github.com/ta9iBarkat/ecommerce-platform/models"
	"github.com/ta9iBarkat/ecommerce-platform/services"
	"github.com/ta9iBarkat/ecommerce-platform/utils"
)

// OrderController exposes the order workflow over HTTP.
type OrderController struct {
	orders services.OrderService
	logger *slog.Logger
}

func NewOrderController(orders services.OrderService, logger *slog.Logger) *OrderController {
	return &OrderController{orders: orders, logger: logger}
}

// Create places an order from the caller's cart.
func (oc *OrderController) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "not authorized")
		return
	}

	var req struct {
		ShippingInfo models.ShippingInfo `json:"shippingInfo"`
		PaymentInfo  models.PaymentInfo  `json:"paymentInfo"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	order, err := oc.orders.PlaceOrder(r.Context(), user.ID, req.ShippingInfo, req.PaymentInfo)
	if err != nil {
		utils.RespondDomainError(w, oc.logger, err)
		return
	}
	utils.RespondJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"order":   order,
	})
}

// GetMy lists the caller's orders, newest first.
func (oc *OrderController) GetMy(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "not authorized")
		return
	}

	orders, err := oc.orders.MyOrders(r.Context(), user.ID)
	if err != nil {
		utils.RespondDomainError(w, oc.logger, err)
		return
	}
	if orders == nil {
		orders = []models.Order{}
	}
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"orders":  orders,
	})
}

// GetAll lists every order plus the aggregate revenue. Admin only.
func (oc *OrderController) GetAll(w http.ResponseWriter, r *http.Request) {
	orders, totalAmount, err := oc.orders.AllOrders(r.Context())
	if err != nil {
		utils.RespondDomainError(w, oc.logger, err)
		return
	}
	if orders == nil {
		orders = []models.Order{}
	}
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success":     true,
		"totalAmount": totalAmount,
		"count":       len(orders),
		"orders":      orders,
	})
}

// UpdateStatus drives an order through its state machine. Admin only.
func (oc *OrderController) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	orderID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondError(w, http.StatusNotFound, models.ErrOrderNotFound.Error())
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	order, err := oc.orders.UpdateStatus(r.Context(), orderID, req.Status)
	if err != nil {
		utils.RespondDomainError(w, oc.logger, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"order":   order,
	})
}
