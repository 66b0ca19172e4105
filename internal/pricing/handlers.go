package pricing

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/franco-vega/backend-tienda/internal/catalog"
	"github.com/franco-vega/backend-tienda/internal/common"
	"github.com/franco-vega/backend-tienda/internal/obs"
)

// Handler exposes ad hoc quotations: a full priced breakdown for a product
// and quantity, without opening a workflow session.
type Handler struct {
	Engine Engine
	Feed   *catalog.Feed
}

// Quote handles POST /api/v1/products/{id}/quote.
func (h *Handler) Quote(w http.ResponseWriter, r *http.Request) {
	if h.Feed == nil {
		common.JSONError(w, http.StatusInternalServerError, common.CodeInternal, "pricing not configured", nil)
		return
	}
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		common.WriteError(w, common.BadRequest("id", "id must be a positive integer", err))
		return
	}
	var payload struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, common.CodeBadRequest, "invalid payload", nil)
		return
	}
	product, ok := h.Feed.Get(id)
	if !ok {
		common.JSONError(w, http.StatusNotFound, common.CodeNotFound, "product not found", nil)
		return
	}
	quotation, err := h.Engine.BuildQuotation(product, payload.Quantity)
	if err != nil {
		if obs.QuoteBuildTotal != nil {
			obs.QuoteBuildTotal.WithLabelValues("rejected").Inc()
		}
		switch {
		case errors.Is(err, ErrInvalidQuantity):
			common.JSONError(w, http.StatusUnprocessableEntity, common.CodeInvalidQuantity, "quantity must be positive", nil)
		case errors.Is(err, ErrExceedsStock):
			common.JSONError(w, http.StatusUnprocessableEntity, common.CodeExceedsStock, "quantity exceeds available stock", nil)
		default:
			common.JSONError(w, http.StatusInternalServerError, common.CodeInternal, "internal error", nil)
		}
		return
	}
	if obs.QuoteBuildTotal != nil {
		obs.QuoteBuildTotal.WithLabelValues("ok").Inc()
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": quotation})
}
