package pricing

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/franco-vega/backend-tienda/internal/catalog"
)

func newQuoteRouter(t *testing.T, products []catalog.Product) http.Handler {
	t.Helper()
	feed := feedFromProducts(t, products)
	handler := &Handler{Engine: Engine{}, Feed: feed}
	r := chi.NewRouter()
	r.Post("/api/v1/products/{id}/quote", handler.Quote)
	return r
}

func feedFromProducts(t *testing.T, products []catalog.Product) *catalog.Feed {
	t.Helper()
	data, err := json.Marshal(products)
	require.NoError(t, err)
	path := t.TempDir() + "/products.json"
	require.NoError(t, os.WriteFile(path, data, 0o600))
	feed, err := catalog.LoadFeed(path)
	require.NoError(t, err)
	return feed
}

func TestQuoteEndpoint(t *testing.T) {
	router := newQuoteRouter(t, []catalog.Product{
		{ID: 1, Name: "Polera", SKU: "POL-001", BasePrice: 5990, Stock: 1000,
			PriceBreaks: []catalog.PriceBreak{{MinQty: 50, Price: 4990}}},
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/products/1/quote", strings.NewReader(`{"quantity":50}`))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var body struct {
		Data Quotation `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	require.Equal(t, 50, body.Data.Quantity)
	require.Equal(t, 4990.0, body.Data.UnitPrice)
	require.Greater(t, body.Data.Total, body.Data.Subtotal*0.8)
}

func TestQuoteEndpointRejectsInvalidQuantity(t *testing.T) {
	router := newQuoteRouter(t, []catalog.Product{{ID: 1, Name: "Polera", BasePrice: 5990, Stock: 10}})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/products/1/quote", strings.NewReader(`{"quantity":0}`))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	require.Contains(t, rr.Body.String(), "INVALID_QUANTITY")

	req = httptest.NewRequest(http.MethodPost, "/api/v1/products/1/quote", strings.NewReader(`{"quantity":11}`))
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	require.Contains(t, rr.Body.String(), "EXCEEDS_STOCK")
}

func TestQuoteEndpointUnknownProduct(t *testing.T) {
	router := newQuoteRouter(t, []catalog.Product{{ID: 1, Name: "Polera", BasePrice: 5990, Stock: 10}})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/products/99/quote", strings.NewReader(`{"quantity":1}`))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusNotFound, rr.Code)
}
