package api

import (
	"errors"
	"strconv"

	"github.com/labstack/echo/v4"

	"teahouse/internal/auth"
	"teahouse/internal/entity"
	"teahouse/internal/service"
)

type Handler struct {
	orderService   service.OrderService
	catalogService service.CatalogService
	ratingService  service.RatingService
	authenticator  auth.Authenticator
}

func NewHandler(orderService service.OrderService, catalogService service.CatalogService, ratingService service.RatingService, authenticator auth.Authenticator) *Handler {
	return &Handler{
		orderService:   orderService,
		catalogService: catalogService,
		ratingService:  ratingService,
		authenticator:  authenticator,
	}
}

// ListCatalog serves the storefront payload: catalog plus ratings --> GET /products
func (h *Handler) ListCatalog(c echo.Context) error {
	ctx := c.Request().Context()
	products, err := h.catalogService.List(ctx)
	if err != nil {
		return writeError(c, err)
	}
	ratings, err := h.ratingService.List(ctx)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(200, map[string]interface{}{
		"products": products,
		"ratings":  ratings,
	})
}

// SubmitOrder records a customer order --> POST /orders
// Customer fields arrive as named form values; quantities arrive as one
// numeric-string field per catalog product, keyed by the product name.
func (h *Handler) SubmitOrder(c echo.Context) error {
	ctx := c.Request().Context()
	info := service.CustomerInfo{
		Name:          c.FormValue("customer_name"),
		Phone:         c.FormValue("phone"),
		Address:       c.FormValue("address"),
		AddressNumber: c.FormValue("address_number"),
		PaymentMethod: c.FormValue("payment_method"),
		Notes:         c.FormValue("notes"),
	}
	idempotentKey := c.Request().Header.Get("Idempotent-Key")

	order, message, err := h.orderService.Submit(ctx, info, c.FormValue, idempotentKey)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(200, map[string]interface{}{
		"order":        order,
		"message":      message,
		"whatsapp_url": h.orderService.WhatsAppURL(message),
	})
}

// GetOrder serves the packing slip for one order --> GET /orders/:id
func (h *Handler) GetOrder(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid ID"})
	}
	order, err := h.orderService.GetOrder(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(200, order)
}

// SubmitRating appends a service rating --> POST /ratings
func (h *Handler) SubmitRating(c echo.Context) error {
	rating, err := h.ratingService.Add(
		c.Request().Context(),
		c.FormValue("author"),
		c.FormValue("stars"),
		c.FormValue("comment"),
	)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(200, rating)
}

// Login exchanges the admin credential for a token --> POST /login
func (h *Handler) Login(c echo.Context) error {
	login := struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}{}
	if err := c.Bind(&login); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}

	token, err := h.authenticator.Login(login.Username, login.Password)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(200, map[string]string{"token": token})
}

// ListOrders serves the admin control payload --> GET /admin/orders
func (h *Handler) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()
	orders, err := h.orderService.ListOrders(ctx)
	if err != nil {
		return writeError(c, err)
	}
	ratings, err := h.ratingService.List(ctx)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(200, map[string]interface{}{
		"orders":  orders,
		"ratings": ratings,
	})
}

// DeleteOrder removes an order --> DELETE /admin/orders/:id
func (h *Handler) DeleteOrder(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid ID"})
	}
	if err := h.orderService.DeleteOrder(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(200, map[string]bool{"success": true})
}

// UpdateOrderStatus sets an order's status --> PUT /admin/orders/:id/status
func (h *Handler) UpdateOrderStatus(c echo.Context) error {
	payload := struct {
		Status string `json:"status"`
	}{}
	if err := c.Bind(&payload); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}
	if err := h.orderService.UpdateOrderStatus(c.Request().Context(), c.Param("id"), payload.Status); err != nil {
		return writeError(c, err)
	}
	return c.JSON(200, map[string]bool{"success": true})
}

// AddProduct appends one catalog product --> POST /admin/products
func (h *Handler) AddProduct(c echo.Context) error {
	product, err := h.catalogService.Add(c.Request().Context(), c.FormValue("name"), c.FormValue("price"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(200, product)
}

// ReplaceProducts rebuilds the catalog from the bulk edit form, which
// submits repeated name/price field pairs --> PUT /admin/products
func (h *Handler) ReplaceProducts(c echo.Context) error {
	params, err := c.FormParams()
	if err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}
	products, err := h.catalogService.ReplaceAll(c.Request().Context(), params["name"], params["price"])
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(200, products)
}

// DeleteProduct removes a product by name --> DELETE /admin/products/:name
func (h *Handler) DeleteProduct(c echo.Context) error {
	if err := h.catalogService.Delete(c.Request().Context(), c.Param("name")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(200, map[string]bool{"success": true})
}

// writeError maps the error taxonomy onto HTTP statuses.
func writeError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, entity.ErrNotFound):
		return c.JSON(404, map[string]string{"error": err.Error()})
	case errors.Is(err, entity.ErrValidation):
		return c.JSON(400, map[string]string{"error": err.Error()})
	case errors.Is(err, entity.ErrUnauthorized):
		return c.JSON(401, map[string]string{"error": err.Error()})
	}
	return c.JSON(500, map[string]string{"error": err.Error()})
}
