package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dinedesk/restaurant-system/internal/core/domain"
	"github.com/dinedesk/restaurant-system/internal/core/ports"
	"github.com/dinedesk/restaurant-system/internal/infrastructure/stream"
)

// OrderStream upgrades a request to a live feed of order events.
type OrderStream interface {
	Serve(w http.ResponseWriter, r *http.Request, filter stream.Filter) error
}

type OrderHandler struct {
	orders ports.OrderService
	stream OrderStream
}

func NewOrderHandler(orders ports.OrderService, stream OrderStream) *OrderHandler {
	return &OrderHandler{orders: orders, stream: stream}
}

// Place handles POST /v1/orders. The session cart becomes a pending order and
// is emptied. Retrying with the same Idempotency-Key returns the first order
// with 200 instead of 201.
//
// @Summary      Place an order from the cart
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string             false  "Idempotency key to prevent duplicate orders"
// @Param        body             body      placeOrderRequest  false  "Customer name; defaults to the signed-in user's name"
// @Success      201              {object}  domain.Order
// @Success      200              {object}  domain.Order
// @Failure      400              {object}  errorResponse
// @Router       /v1/orders [post]
func (h *OrderHandler) Place(c echo.Context) error {
	sid, _, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req placeOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	result, err := h.orders.Place(c.Request().Context(), ports.PlaceOrderInput{
		SessionID:      sid,
		CustomerName:   req.CustomerName,
		IdempotencyKey: c.Request().Header.Get("Idempotency-Key"),
	})
	if err != nil {
		return err
	}

	status := http.StatusCreated
	if result.AlreadyExisted {
		status = http.StatusOK
	}
	return c.JSON(status, result.Order)
}

// List handles GET /v1/orders, sorted for display: pending first, then
// preparing, ready, delivered and cancelled; newest first within a status.
// Staff see every order; customers see their own.
//
// @Summary      List orders
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "Comma-separated statuses, e.g. pending,preparing"
// @Success      200     {object}  orderListResponse
// @Failure      400     {object}  errorResponse
// @Router       /v1/orders [get]
func (h *OrderHandler) List(c echo.Context) error {
	_, user, err := ctxSession(c)
	if err != nil {
		return err
	}
	statuses, err := parseStatuses(c.QueryParam("status"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var orders []domain.Order
	switch {
	case seesAllOrders(user):
		orders = h.orders.List()
	case user != nil:
		orders = h.orders.ListForUser(user.ID)
	default:
		// Anonymous sessions have no identity to match guest orders against.
		orders = []domain.Order{}
	}

	orders = domain.FilterByStatus(orders, statuses...)
	domain.SortForDisplay(orders)
	return c.JSON(http.StatusOK, orderListResponse{Orders: orders})
}

// Get handles GET /v1/orders/:id. Customers can only read their own orders;
// guest orders are readable by anyone holding the id.
//
// @Summary      Get an order
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Order id"
// @Success      200  {object}  domain.Order
// @Failure      404  {object}  errorResponse
// @Router       /v1/orders/{id} [get]
func (h *OrderHandler) Get(c echo.Context) error {
	_, user, err := ctxSession(c)
	if err != nil {
		return err
	}
	order, ok := h.orders.GetByID(c.Param("id"))
	if !ok {
		return domain.ErrNotFound
	}
	if !seesAllOrders(user) && order.UserID != domain.GuestUserID && order.UserID != ownerID(user) {
		return domain.ErrNotFound
	}
	return c.JSON(http.StatusOK, order)
}

// Advance handles POST /v1/orders/:id/advance. Delivered and cancelled orders
// are returned unchanged.
//
// @Summary      Move an order to its next status
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Order id"
// @Success      200  {object}  domain.Order
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/orders/{id}/advance [post]
func (h *OrderHandler) Advance(c echo.Context) error {
	order, err := h.orders.AdvanceStatus(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, order)
}

// Cancel handles POST /v1/orders/:id/cancel.
//
// @Summary      Cancel an order
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Order id"
// @Success      200  {object}  domain.Order
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /v1/orders/{id}/cancel [post]
func (h *OrderHandler) Cancel(c echo.Context) error {
	order, err := h.orders.Cancel(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, order)
}

// Stream handles GET /v1/orders/stream, a WebSocket feed of order events.
// Staff receive every event; customers receive events of their own orders.
//
// @Summary      Live order events (WebSocket)
// @Tags         orders
// @Security     BearerAuth
// @Param        access_token  query  string  false  "Session token when headers cannot be set"
// @Success      101
// @Failure      401  {object}  errorResponse
// @Router       /v1/orders/stream [get]
func (h *OrderHandler) Stream(c echo.Context) error {
	_, user, err := ctxSession(c)
	if err != nil {
		return err
	}

	var filter stream.Filter
	if !seesAllOrders(user) {
		owner := ownerID(user)
		filter = func(e domain.OrderEvent) bool { return e.UserID == owner }
	}
	return h.stream.Serve(c.Response(), c.Request(), filter)
}
