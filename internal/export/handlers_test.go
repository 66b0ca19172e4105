package export

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/franco-vega/backend-tienda/internal/catalog"
	"github.com/franco-vega/backend-tienda/internal/pricing"
	"github.com/franco-vega/backend-tienda/internal/quote"
)

func newExportRouter(t *testing.T) (http.Handler, *quote.Service) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	products := []catalog.Product{
		{ID: 1, Name: "Polera Algodón", SKU: "POL-001", Category: "textil", BasePrice: 5990, Stock: 1200},
	}
	data, err := json.Marshal(products)
	require.NoError(t, err)
	path := t.TempDir() + "/products.json"
	require.NoError(t, os.WriteFile(path, data, 0o600))
	feed, err := catalog.LoadFeed(path)
	require.NoError(t, err)

	svc := quote.NewService(quote.ServiceConfig{
		Feed:     feed,
		Engine:   pricing.Engine{},
		Sessions: quote.SessionStore{Client: client, TTL: time.Hour},
	})
	handler := NewHandler(HandlerConfig{
		Quotes: svc,
		Logger: zerolog.Nop(),
		Now:    func() time.Time { return time.Date(2025, time.March, 14, 12, 0, 0, 0, time.UTC) },
	})

	r := chi.NewRouter()
	r.Get("/api/v1/quotes/{id}/export", handler.Export)
	return r, svc
}

func summarySession(t *testing.T, svc *quote.Service) quote.Session {
	t.Helper()
	ctx := context.Background()
	sess, err := svc.Start(ctx, 1, 10, quote.CompanyData{
		CompanyName: "Promocional SpA",
		RUT:         "76.123.456-7",
		ContactName: "Francisca Rojas",
		Email:       "francisca@promocional.cl",
	})
	require.NoError(t, err)
	sess, err = svc.Advance(ctx, sess.ID, quote.StepSummary)
	require.NoError(t, err)
	return sess
}

func TestExportTextDownload(t *testing.T) {
	router, svc := newExportRouter(t)
	sess := summarySession(t, svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/quotes/"+sess.ID+"/export", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "text/plain; charset=utf-8", rr.Header().Get("Content-Type"))
	require.Equal(t,
		`attachment; filename="cotizacion_Promocional_SpA_14-03-2025.txt"`,
		rr.Header().Get("Content-Disposition"))
	require.Contains(t, rr.Body.String(), "COTIZACIÓN OFICIAL")
}

func TestExportJSONDownload(t *testing.T) {
	router, svc := newExportRouter(t)
	sess := summarySession(t, svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/quotes/"+sess.ID+"/export?format=json", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "application/json; charset=utf-8", rr.Header().Get("Content-Type"))

	var payload map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &payload))
	for _, key := range []string{"fecha", "empresa", "producto", "cotizacion", "condiciones"} {
		require.Contains(t, payload, key)
	}
}

func TestExportRequiresSummaryStep(t *testing.T) {
	router, svc := newExportRouter(t)

	sess, err := svc.Start(context.Background(), 1, 10, quote.CompanyData{
		CompanyName: "Promocional SpA",
		RUT:         "76.123.456-7",
		ContactName: "Francisca Rojas",
		Email:       "francisca@promocional.cl",
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/quotes/"+sess.ID+"/export", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusConflict, rr.Code)
	require.Contains(t, rr.Body.String(), "INVALID_STEP")
}

func TestExportRejectsUnknownFormat(t *testing.T) {
	router, svc := newExportRouter(t)
	sess := summarySession(t, svc)

	target := fmt.Sprintf("/api/v1/quotes/%s/export?format=pdf", sess.ID)
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestExportUnknownSession(t *testing.T) {
	router, _ := newExportRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/quotes/nope/export", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusNotFound, rr.Code)
}
