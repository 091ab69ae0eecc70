package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dinedesk/restaurant-system/internal/core/domain"
	"github.com/dinedesk/restaurant-system/internal/core/ports"
)

// CartHandler manages the cart of the calling session.
type CartHandler struct {
	cart    ports.CartService
	catalog ports.CatalogService
}

func NewCartHandler(cart ports.CartService, catalog ports.CatalogService) *CartHandler {
	return &CartHandler{cart: cart, catalog: catalog}
}

// Get handles GET /v1/cart.
//
// @Summary      Show the cart
// @Tags         cart
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  cartResponse
// @Router       /v1/cart [get]
func (h *CartHandler) Get(c echo.Context) error {
	sid, _, err := ctxSession(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCartResponse(h.cart.Summary(c.Request().Context(), sid)))
}

// AddItem handles POST /v1/cart/items. Adding a menu item that is already in
// the cart increases that line's quantity.
//
// @Summary      Add a menu item to the cart
// @Tags         cart
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      addCartItemRequest  true  "Item to add"
// @Success      200   {object}  cartResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/cart/items [post]
func (h *CartHandler) AddItem(c echo.Context) error {
	sid, _, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req addCartItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	item, ok := h.catalog.GetByID(req.MenuItemID)
	if !ok {
		return domain.ErrNotFound
	}
	if !item.Available {
		return domain.ErrItemUnavailable
	}

	summary, err := h.cart.Add(c.Request().Context(), sid, item, req.Quantity, req.SpecialInstructions)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCartResponse(summary))
}

// UpdateItem handles PATCH /v1/cart/items/:id. A quantity of zero or less
// removes the line.
//
// @Summary      Change the quantity of a cart line
// @Tags         cart
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                 true  "Cart line id"
// @Param        body  body      updateCartItemRequest  true  "New quantity"
// @Success      200   {object}  cartResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/cart/items/{id} [patch]
func (h *CartHandler) UpdateItem(c echo.Context) error {
	sid, _, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req updateCartItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	summary, err := h.cart.SetQuantity(c.Request().Context(), sid, c.Param("id"), *req.Quantity)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCartResponse(summary))
}

// RemoveItem handles DELETE /v1/cart/items/:id.
//
// @Summary      Remove a cart line
// @Tags         cart
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Cart line id"
// @Success      200  {object}  cartResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/cart/items/{id} [delete]
func (h *CartHandler) RemoveItem(c echo.Context) error {
	sid, _, err := ctxSession(c)
	if err != nil {
		return err
	}
	summary, err := h.cart.Remove(c.Request().Context(), sid, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCartResponse(summary))
}

// Clear handles DELETE /v1/cart.
//
// @Summary      Empty the cart
// @Tags         cart
// @Security     BearerAuth
// @Success      204
// @Router       /v1/cart [delete]
func (h *CartHandler) Clear(c echo.Context) error {
	sid, _, err := ctxSession(c)
	if err != nil {
		return err
	}
	if err := h.cart.Clear(c.Request().Context(), sid); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
