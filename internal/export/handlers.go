package export

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/franco-vega/backend-tienda/internal/common"
	"github.com/franco-vega/backend-tienda/internal/obs"
	"github.com/franco-vega/backend-tienda/internal/quote"
)

// HandlerConfig wires the export HTTP handler.
type HandlerConfig struct {
	Quotes *quote.Service
	Logger zerolog.Logger
	Now    func() time.Time
}

// Handler serves quotation downloads. Export is only offered once a session
// has reached the summary step.
type Handler struct {
	quotes *quote.Service
	logger zerolog.Logger
	now    func() time.Time
}

// NewHandler constructs the export handler.
func NewHandler(cfg HandlerConfig) *Handler {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Handler{quotes: cfg.Quotes, logger: cfg.Logger, now: now}
}

// Export handles GET /api/v1/quotes/{id}/export. The format query parameter
// selects text (default) or json.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	format := Format(r.URL.Query().Get("format"))
	if format == "" {
		format = FormatText
	}
	if !format.Valid() {
		common.JSONError(w, http.StatusBadRequest, common.CodeBadRequest, "format must be text or json", nil)
		return
	}

	sess, err := h.quotes.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, quote.ErrSessionNotFound) {
			common.JSONError(w, http.StatusNotFound, common.CodeNotFound, "quote session not found", nil)
			return
		}
		h.logger.Error().Err(err).Msg("load quote session for export")
		common.JSONError(w, http.StatusInternalServerError, common.CodeInternal, "internal error", nil)
		return
	}
	if sess.Step != quote.StepSummary {
		common.JSONError(w, http.StatusConflict, common.CodeInvalidStep, "quote must reach the summary step before export", nil)
		return
	}
	product, ok := h.quotes.Product(sess)
	if !ok {
		common.JSONError(w, http.StatusNotFound, common.CodeNotFound, "product not found", nil)
		return
	}

	doc := NewDocument(sess, product, h.now())
	var body []byte
	switch format {
	case FormatJSON:
		body, err = JSON(doc)
		if err != nil {
			h.logger.Error().Err(err).Msg("render quote json export")
			common.JSONError(w, http.StatusInternalServerError, common.CodeInternal, "internal error", nil)
			return
		}
	default:
		body = Text(doc)
	}

	if obs.ExportTotal != nil {
		obs.ExportTotal.WithLabelValues(string(format)).Inc()
	}
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", `attachment; filename="`+doc.Filename(format)+`"`)
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}
