package cart

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/franco-vega/backend-tienda/internal/catalog"
	"github.com/franco-vega/backend-tienda/internal/common"
)

// Handler wires the cart store to HTTP.
type Handler struct {
	Store *Store
	Feed  *catalog.Feed
}

// Get handles GET /api/v1/cart.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	if h.Store == nil {
		common.JSONError(w, http.StatusInternalServerError, common.CodeInternal, "cart store not configured", nil)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": h.Store.Snapshot()})
}

// AddItem handles POST /api/v1/cart/items. The requested quantity is clamped
// to the product's stock here, before it reaches the store.
func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	if h.Store == nil || h.Feed == nil {
		common.JSONError(w, http.StatusInternalServerError, common.CodeInternal, "cart store not configured", nil)
		return
	}
	var payload struct {
		ProductID int    `json:"productId"`
		Quantity  int    `json:"quantity"`
		Color     string `json:"color"`
		Size      string `json:"size"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, common.CodeBadRequest, "invalid payload", nil)
		return
	}
	product, ok := h.Feed.Get(payload.ProductID)
	if !ok {
		common.JSONError(w, http.StatusNotFound, common.CodeNotFound, "product not found", nil)
		return
	}
	if payload.Quantity <= 0 {
		common.JSONError(w, http.StatusUnprocessableEntity, common.CodeInvalidQuantity, "quantity must be positive", nil)
		return
	}
	quantity := payload.Quantity
	available := product.Stock - h.Store.GetItemQuantity(product.ID)
	if available <= 0 {
		common.JSONError(w, http.StatusUnprocessableEntity, common.CodeExceedsStock, "no stock available", nil)
		return
	}
	if quantity > available {
		quantity = available
	}
	state, err := h.Store.AddItem(r.Context(), product, quantity, payload.Color, payload.Size)
	if err != nil {
		common.JSONError(w, http.StatusUnprocessableEntity, common.CodeInvalidQuantity, "quantity must be positive", nil)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": state})
}

// UpdateItem handles PATCH /api/v1/cart/items/{productId}. A quantity of
// zero or less removes the matching lines.
func (h *Handler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	if h.Store == nil {
		common.JSONError(w, http.StatusInternalServerError, common.CodeInternal, "cart store not configured", nil)
		return
	}
	productID, err := strconv.Atoi(chi.URLParam(r, "productId"))
	if err != nil || productID <= 0 {
		common.JSONError(w, http.StatusBadRequest, common.CodeBadRequest, "invalid product id", nil)
		return
	}
	var payload struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, common.CodeBadRequest, "invalid payload", nil)
		return
	}
	quantity := payload.Quantity
	if h.Feed != nil && quantity > 0 {
		if product, ok := h.Feed.Get(productID); ok && quantity > product.Stock {
			quantity = product.Stock
		}
	}
	state := h.Store.UpdateQuantity(r.Context(), productID, quantity)
	common.JSON(w, http.StatusOK, map[string]any{"data": state})
}

// RemoveItem handles DELETE /api/v1/cart/items/{productId}. All variant
// lines of the product are removed.
func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	if h.Store == nil {
		common.JSONError(w, http.StatusInternalServerError, common.CodeInternal, "cart store not configured", nil)
		return
	}
	productID, err := strconv.Atoi(chi.URLParam(r, "productId"))
	if err != nil || productID <= 0 {
		common.JSONError(w, http.StatusBadRequest, common.CodeBadRequest, "invalid product id", nil)
		return
	}
	state := h.Store.RemoveItem(r.Context(), productID)
	common.JSON(w, http.StatusOK, map[string]any{"data": state})
}

// Clear handles DELETE /api/v1/cart.
func (h *Handler) Clear(w http.ResponseWriter, r *http.Request) {
	if h.Store == nil {
		common.JSONError(w, http.StatusInternalServerError, common.CodeInternal, "cart store not configured", nil)
		return
	}
	state := h.Store.Clear(r.Context())
	common.JSON(w, http.StatusOK, map[string]any{"data": state})
}
