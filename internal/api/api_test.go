package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"teahouse/internal/api"
	"teahouse/internal/auth"
	"teahouse/internal/entity"
	"teahouse/internal/export"
	"teahouse/internal/repository"
	"teahouse/internal/service"
	"teahouse/internal/storage"
)

func newHandler(t *testing.T) *api.Handler {
	t.Helper()
	dir := t.TempDir()
	store := storage.NewStore(dir)
	require.NoError(t, store.Bootstrap())

	orderRepo := repository.NewOrderRepository(store)
	productRepo := repository.NewProductRepository(store)
	ratingRepo := repository.NewRatingRepository(store)
	require.NoError(t, productRepo.SaveAll(context.Background(), []entity.Product{{Name: "Tea", Price: 5.00}}))

	exporter := export.NewLogger(filepath.Join(dir, "orders.xlsx"))
	orderService := service.NewOrderService(*orderRepo, *productRepo, exporter, nil, nil, "5579999088593")
	catalogService := service.NewCatalogService(*productRepo)
	ratingService := service.NewRatingService(*ratingRepo)
	authenticator := auth.NewAuthenticator("admin", "admin123", "test-secret")

	return api.NewHandler(*orderService, *catalogService, *ratingService, *authenticator)
}

func postForm(t *testing.T, e *echo.Echo, path string, form url.Values) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestHandler_SubmitOrder(t *testing.T) {
	h := newHandler(t)
	e := echo.New()

	form := url.Values{}
	form.Set("customer_name", "Alice")
	form.Set("phone", "5599999")
	form.Set("address", "Main St")
	form.Set("address_number", "42")
	form.Set("payment_method", "cash")
	form.Set("Tea", "3")

	c, rec := postForm(t, e, "/orders", form)
	require.NoError(t, h.SubmitOrder(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Order       entity.Order `json:"order"`
		Message     string       `json:"message"`
		WhatsAppURL string       `json:"whatsapp_url"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	assert.Equal(t, 1, body.Order.ID)
	assert.Equal(t, 15.00, body.Order.Total)
	assert.Contains(t, body.Message, "- Tea: 3")
	assert.True(t, strings.HasPrefix(body.WhatsAppURL, "https://wa.me/5579999088593?text="))
}

func TestHandler_GetOrder_NotFound(t *testing.T) {
	h := newHandler(t)
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/orders/9", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("9")

	require.NoError(t, h.GetOrder(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_UpdateOrderStatus_NotFound(t *testing.T) {
	h := newHandler(t)
	e := echo.New()

	req := httptest.NewRequest(http.MethodPut, "/admin/orders/9/status", strings.NewReader(`{"status":"delivered"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("9")

	require.NoError(t, h.UpdateOrderStatus(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_Login(t *testing.T) {
	h := newHandler(t)
	e := echo.New()

	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"username":"admin","password":"admin123"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	require.NoError(t, h.Login(e.NewContext(req, rec)))
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotEmpty(t, body["token"])
}

func TestHandler_Login_WrongCredential(t *testing.T) {
	h := newHandler(t)
	e := echo.New()

	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"username":"admin","password":"nope"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	require.NoError(t, h.Login(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandler_SubmitRating_Invalid(t *testing.T) {
	h := newHandler(t)
	e := echo.New()

	form := url.Values{}
	form.Set("author", "Alice")
	form.Set("stars", "9")

	c, rec := postForm(t, e, "/ratings", form)
	require.NoError(t, h.SubmitRating(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_ReplaceProducts(t *testing.T) {
	h := newHandler(t)
	e := echo.New()

	form := url.Values{}
	form.Add("name", "Tea")
	form.Add("price", "6.00")
	form.Add("name", "Coffee")
	form.Add("price", "7.50")

	c, rec := postForm(t, e, "/admin/products", form)
	require.NoError(t, h.ReplaceProducts(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var products []entity.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &products))
	assert.Equal(t, []entity.Product{{Name: "Tea", Price: 6.00}, {Name: "Coffee", Price: 7.50}}, products)
}

func TestHandler_AdminGuard(t *testing.T) {
	authenticator := auth.NewAuthenticator("admin", "admin123", "test-secret")
	e := echo.New()
	admin := e.Group("/admin", authenticator.Middleware())
	admin.GET("/orders", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]bool{"ok": true})
	})

	// Forged token: rejected before the handler runs.
	req := httptest.NewRequest(http.MethodGet, "/admin/orders", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer not-a-token")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Valid token: let through.
	token, err := authenticator.Login("admin", "admin123")
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodGet, "/admin/orders", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
