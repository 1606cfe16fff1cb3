package controllers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ta9iBarkat/ecommerce-platform/middleware"
	"github.com/ta9iBarkat/ecommerce-platform/models"
	"github.com/ta9iBarkat/ecommerce-platform/store"
	"github.com/ta9iBarkat/ecommerce-platform/utils"
)

// CartController handles the shopping-cart endpoints.
type CartController struct {
	carts   store.CartStore
	catalog store.ProductCatalog
	logger  *slog.Logger
}

func NewCartController(carts store.CartStore, catalog store.ProductCatalog, logger *slog.Logger) *CartController {
	return &CartController{carts: carts, catalog: catalog, logger: logger}
}

// Get returns the caller's cart with a computed total. A user without a
// cart gets an empty one rather than a 404.
func (cc *CartController) Get(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "not authorized")
		return
	}

	cart, err := cc.carts.Get(r.Context(), user.ID)
	if err != nil {
		if errors.Is(err, models.ErrCartNotFound) {
			utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
				"success":    true,
				"cart":       map[string]interface{}{"items": []models.CartItem{}},
				"totalPrice": 0,
			})
			return
		}
		utils.RespondDomainError(w, cc.logger, err)
		return
	}

	// Total is computed on the fly from current catalog prices; products
	// deleted since they were added contribute nothing.
	var total float64
	for _, item := range cart.Items {
		product, err := cc.catalog.Get(r.Context(), item.ProductID)
		if err != nil {
			if errors.Is(err, models.ErrProductNotFound) {
				continue
			}
			utils.RespondDomainError(w, cc.logger, err)
			return
		}
		total += float64(item.Quantity) * product.Price
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"cart":       cart,
		"totalPrice": total,
	})
}

// AddItem adds a product to the cart, merging quantities when the product
// is already present.
func (cc *CartController) AddItem(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "not authorized")
		return
	}

	var req struct {
		ProductID string `json:"productId"`
		Quantity  int    `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Quantity < 1 {
		utils.RespondError(w, http.StatusBadRequest, "quantity must be at least 1")
		return
	}
	productID, err := primitive.ObjectIDFromHex(req.ProductID)
	if err != nil {
		utils.RespondError(w, http.StatusNotFound, models.ErrProductNotFound.Error())
		return
	}
	if _, err := cc.catalog.Get(r.Context(), productID); err != nil {
		utils.RespondDomainError(w, cc.logger, err)
		return
	}

	cart, err := cc.carts.Get(r.Context(), user.ID)
	if err != nil {
		if !errors.Is(err, models.ErrCartNotFound) {
			utils.RespondDomainError(w, cc.logger, err)
			return
		}
		cart = &models.Cart{UserID: user.ID}
	}
	cart.AddItem(models.CartItem{ProductID: productID, Quantity: req.Quantity})

	if err := cc.carts.Save(r.Context(), cart); err != nil {
		utils.RespondDomainError(w, cc.logger, err)
		return
	}
	utils.RespondJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"cart":    cart,
	})
}

// UpdateItem sets the quantity of a line item already in the cart.
func (cc *CartController) UpdateItem(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "not authorized")
		return
	}

	productID, err := primitive.ObjectIDFromHex(mux.Vars(r)["productId"])
	if err != nil {
		utils.RespondError(w, http.StatusNotFound, models.ErrItemNotInCart.Error())
		return
	}

	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Quantity <= 0 {
		utils.RespondError(w, http.StatusBadRequest, "quantity must be a positive number; to remove, use the delete endpoint")
		return
	}

	cart, err := cc.carts.Get(r.Context(), user.ID)
	if err != nil {
		utils.RespondDomainError(w, cc.logger, err)
		return
	}
	if !cart.SetQuantity(productID, req.Quantity) {
		utils.RespondError(w, http.StatusNotFound, models.ErrItemNotInCart.Error())
		return
	}

	if err := cc.carts.Save(r.Context(), cart); err != nil {
		utils.RespondDomainError(w, cc.logger, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"cart":    cart,
	})
}

// RemoveItem removes a product from the cart entirely.
func (cc *CartController) RemoveItem(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "not authorized")
		return
	}

	productID, err := primitive.ObjectIDFromHex(mux.Vars(r)["productId"])
	if err != nil {
		utils.RespondError(w, http.StatusNotFound, models.ErrItemNotInCart.Error())
		return
	}

	cart, err := cc.carts.RemoveItem(r.Context(), user.ID, productID)
	if err != nil {
		utils.RespondDomainError(w, cc.logger, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"cart":    cart,
	})
}
