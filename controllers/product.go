package controllers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ta9iBarkat/ecommerce-platform/middleware"
	"github.com/ta9iBarkat/ecommerce-platform/models"
	"github.com/ta9iBarkat/ecommerce-platform/store"
	"github.com/ta9iBarkat/ecommerce-platform/utils"
)

// ProductController handles catalog requests.
type ProductController struct {
	products store.ProductStore
	logger   *slog.Logger
}

func NewProductController(products store.ProductStore, logger *slog.Logger) *ProductController {
	return &ProductController{products: products, logger: logger}
}

// List returns products matching the search/filter/pagination query.
func (pc *ProductController) List(w http.ResponseWriter, r *http.Request) {
	query := utils.BuildProductQuery(r.URL.Query())
	products, err := pc.products.Find(r.Context(), query)
	if err != nil {
		utils.RespondDomainError(w, pc.logger, err)
		return
	}
	if products == nil {
		products = []models.Product{}
	}
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"count":    len(products),
		"products": products,
	})
}

// Get returns a single product.
func (pc *ProductController) Get(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondError(w, http.StatusNotFound, models.ErrProductNotFound.Error())
		return
	}
	product, err := pc.products.Get(r.Context(), id)
	if err != nil {
		utils.RespondDomainError(w, pc.logger, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"product": product,
	})
}

// Create adds a catalog entry owned by the calling seller.
func (pc *ProductController) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "not authorized")
		return
	}

	var product models.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if product.Name == "" || product.Price < 0 || product.Stock < 0 {
		utils.RespondError(w, http.StatusBadRequest, "name is required; price and stock must not be negative")
		return
	}

	product.ID = primitive.NilObjectID
	product.Seller = user.ID
	if err := pc.products.Insert(r.Context(), &product); err != nil {
		utils.RespondDomainError(w, pc.logger, err)
		return
	}
	utils.RespondJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"product": product,
	})
}

// Update modifies a product. Only an admin or the owning seller may update.
func (pc *ProductController) Update(w http.ResponseWriter, r *http.Request) {
	existing, ok := pc.loadOwned(w, r)
	if !ok {
		return
	}

	var patch models.Product
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if patch.Price < 0 || patch.Stock < 0 {
		utils.RespondError(w, http.StatusBadRequest, "price and stock must not be negative")
		return
	}

	// Identity and ownership never change through this endpoint.
	patch.ID = existing.ID
	patch.Seller = existing.Seller
	patch.CreatedAt = existing.CreatedAt

	if err := pc.products.Update(r.Context(), &patch); err != nil {
		utils.RespondDomainError(w, pc.logger, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"product": patch,
	})
}

// Delete removes a product. Only an admin or the owning seller may delete.
func (pc *ProductController) Delete(w http.ResponseWriter, r *http.Request) {
	existing, ok := pc.loadOwned(w, r)
	if !ok {
		return
	}
	if err := pc.products.DeleteProduct(r.Context(), existing.ID); err != nil {
		utils.RespondDomainError(w, pc.logger, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "product removed",
	})
}

// loadOwned fetches the product and enforces the owner-or-admin rule. On
// failure the response has already been written.
func (pc *ProductController) loadOwned(w http.ResponseWriter, r *http.Request) (*models.Product, bool) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "not authorized")
		return nil, false
	}

	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondError(w, http.StatusNotFound, models.ErrProductNotFound.Error())
		return nil, false
	}
	product, err := pc.products.Get(r.Context(), id)
	if err != nil {
		utils.RespondDomainError(w, pc.logger, err)
		return nil, false
	}
	if user.Role != models.RoleAdmin && product.Seller != user.ID {
		utils.RespondError(w, http.StatusForbidden, "access denied: not the product owner")
		return nil, false
	}
	return product, true
}
