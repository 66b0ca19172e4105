package quote

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func newQuoteRouter(t *testing.T) http.Handler {
	t.Helper()
	svc, _ := newTestService(t)
	handler := NewHandler(HandlerConfig{Service: svc, Logger: zerolog.Nop()})
	r := chi.NewRouter()
	r.Route("/api/v1/quotes", func(q chi.Router) {
		q.Post("/", handler.Create)
		q.Get("/{id}", handler.Get)
		q.Post("/{id}/step", handler.Step)
		q.Patch("/{id}", handler.Update)
	})
	return r
}

func createSession(t *testing.T, router http.Handler) Session {
	t.Helper()
	payload := fmt.Sprintf(`{"productId":1,"quantity":50,"company":%s}`, mustJSON(t, testCompany))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/quotes/", strings.NewReader(payload))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusCreated, rr.Code)

	var body struct {
		Data Session `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return body.Data
}

func mustJSON(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return string(data)
}

func TestCreateQuoteSession(t *testing.T) {
	router := newQuoteRouter(t)
	sess := createSession(t, router)

	require.NotEmpty(t, sess.ID)
	require.Equal(t, StepCalculation, sess.Step)
	require.Equal(t, 4990.0, sess.Quotation.UnitPrice)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/quotes/"+sess.ID, nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
}

func TestCreateQuoteValidationError(t *testing.T) {
	router := newQuoteRouter(t)

	company := testCompany
	company.Email = "broken"
	payload := fmt.Sprintf(`{"productId":1,"quantity":10,"company":%s}`, mustJSON(t, company))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/quotes/", strings.NewReader(payload))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)
	require.Contains(t, rr.Body.String(), "BAD_REQUEST")
	require.Contains(t, rr.Body.String(), "email")
}

func TestCreateQuoteStockError(t *testing.T) {
	router := newQuoteRouter(t)
	payload := fmt.Sprintf(`{"productId":2,"quantity":11,"company":%s}`, mustJSON(t, testCompany))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/quotes/", strings.NewReader(payload))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	require.Contains(t, rr.Body.String(), "EXCEEDS_STOCK")
}

func TestStepEndpoint(t *testing.T) {
	router := newQuoteRouter(t)
	sess := createSession(t, router)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/quotes/"+sess.ID+"/step", strings.NewReader(`{"step":"summary"}`))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	// summary -> form is not an edge.
	req = httptest.NewRequest(http.MethodPost, "/api/v1/quotes/"+sess.ID+"/step", strings.NewReader(`{"step":"form"}`))
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusConflict, rr.Code)
	require.Contains(t, rr.Body.String(), "INVALID_STEP")
}

func TestUpdateEndpointRebuildsQuotation(t *testing.T) {
	router := newQuoteRouter(t)
	sess := createSession(t, router)

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/quotes/"+sess.ID, strings.NewReader(`{"quantity":1000}`))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var body struct {
		Data Session `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	require.Equal(t, 1000, body.Data.Quantity)
	require.Equal(t, 15.0, body.Data.Quotation.CompanyDiscount)
}

func TestQuoteEndpointsUnknownSession(t *testing.T) {
	router := newQuoteRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/quotes/nope", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusNotFound, rr.Code)

	req = httptest.NewRequest(http.MethodPatch, "/api/v1/quotes/nope", strings.NewReader(`{"quantity":5}`))
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusNotFound, rr.Code)
}
