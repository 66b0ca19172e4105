package quote

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/franco-vega/backend-tienda/internal/common"
	"github.com/franco-vega/backend-tienda/internal/obs"
	"github.com/franco-vega/backend-tienda/internal/pricing"
)

// HandlerConfig wires the workflow HTTP handlers.
type HandlerConfig struct {
	Service *Service
	Logger  zerolog.Logger
}

// Handler exposes the quotation workflow over HTTP.
type Handler struct {
	service *Service
	logger  zerolog.Logger
}

// NewHandler constructs the workflow handler.
func NewHandler(cfg HandlerConfig) *Handler {
	return &Handler{service: cfg.Service, logger: cfg.Logger}
}

// Create handles POST /api/v1/quotes.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		ProductID int         `json:"productId"`
		Quantity  int         `json:"quantity"`
		Company   CompanyData `json:"company"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, common.CodeBadRequest, "invalid payload", nil)
		return
	}
	sess, err := h.service.Start(r.Context(), payload.ProductID, payload.Quantity, payload.Company)
	if err != nil {
		if obs.QuoteBuildTotal != nil {
			obs.QuoteBuildTotal.WithLabelValues("rejected").Inc()
		}
		h.writeError(w, err)
		return
	}
	if obs.QuoteBuildTotal != nil {
		obs.QuoteBuildTotal.WithLabelValues("ok").Inc()
	}
	common.JSON(w, http.StatusCreated, map[string]any{"data": sess})
}

// Get handles GET /api/v1/quotes/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	sess, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": sess})
}

// Step handles POST /api/v1/quotes/{id}/step.
func (h *Handler) Step(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Step string `json:"step"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, common.CodeBadRequest, "invalid payload", nil)
		return
	}
	sess, err := h.service.Advance(r.Context(), chi.URLParam(r, "id"), Step(payload.Step))
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": sess})
}

// Update handles PATCH /api/v1/quotes/{id}. Only the quantity is mutable;
// the quotation snapshot is rebuilt in full.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, common.CodeBadRequest, "invalid payload", nil)
		return
	}
	sess, err := h.service.UpdateQuantity(r.Context(), chi.URLParam(r, "id"), payload.Quantity)
	if err != nil {
		if obs.QuoteBuildTotal != nil {
			obs.QuoteBuildTotal.WithLabelValues("rejected").Inc()
		}
		h.writeError(w, err)
		return
	}
	if obs.QuoteBuildTotal != nil {
		obs.QuoteBuildTotal.WithLabelValues("ok").Inc()
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": sess})
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var verrs validator.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		details := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			details[fieldName(fe)] = fe.Tag()
		}
		common.JSONError(w, http.StatusBadRequest, common.CodeBadRequest, "invalid company data", details)
	case errors.Is(err, pricing.ErrInvalidQuantity):
		common.JSONError(w, http.StatusUnprocessableEntity, common.CodeInvalidQuantity, "quantity must be positive", nil)
	case errors.Is(err, pricing.ErrExceedsStock):
		common.JSONError(w, http.StatusUnprocessableEntity, common.CodeExceedsStock, "quantity exceeds available stock", nil)
	case errors.Is(err, ErrInvalidTransition):
		common.JSONError(w, http.StatusConflict, common.CodeInvalidStep, "step transition not allowed", nil)
	case errors.Is(err, ErrSessionNotFound):
		common.JSONError(w, http.StatusNotFound, common.CodeNotFound, "quote session not found", nil)
	case errors.Is(err, ErrProductNotFound):
		common.JSONError(w, http.StatusNotFound, common.CodeNotFound, "product not found", nil)
	default:
		h.logger.Error().Err(err).Msg("quote workflow request failed")
		common.JSONError(w, http.StatusInternalServerError, common.CodeInternal, "internal error", nil)
	}
}

func fieldName(fe validator.FieldError) string {
	name := fe.Field()
	if name == "" {
		return fe.StructField()
	}
	return strings.ToLower(name[:1]) + name[1:]
}
