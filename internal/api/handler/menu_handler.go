package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dinedesk/restaurant-system/internal/core/domain"
	"github.com/dinedesk/restaurant-system/internal/core/ports"
)

// MenuHandler exposes the catalog. Write routes are gated by the router with
// the menu_item permissions.
type MenuHandler struct {
	catalog ports.CatalogService
}

func NewMenuHandler(catalog ports.CatalogService) *MenuHandler {
	return &MenuHandler{catalog: catalog}
}

// List handles GET /v1/menu.
//
// @Summary      List menu items
// @Tags         menu
// @Produce      json
// @Security     BearerAuth
// @Param        category  query     string  false  "Only items of this category"
// @Success      200       {object}  menuListResponse
// @Router       /v1/menu [get]
func (h *MenuHandler) List(c echo.Context) error {
	var items []domain.MenuItem
	if category := c.QueryParam("category"); category != "" {
		items = h.catalog.GetByCategory(category)
	} else {
		items = h.catalog.List()
	}
	return c.JSON(http.StatusOK, menuListResponse{Items: items})
}

// Categories handles GET /v1/menu/categories.
//
// @Summary      List menu categories
// @Tags         menu
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  categoriesResponse
// @Router       /v1/menu/categories [get]
func (h *MenuHandler) Categories(c echo.Context) error {
	return c.JSON(http.StatusOK, categoriesResponse{Categories: h.catalog.Categories()})
}

// Get handles GET /v1/menu/:id.
//
// @Summary      Get a menu item
// @Tags         menu
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Menu item id"
// @Success      200  {object}  domain.MenuItem
// @Failure      404  {object}  errorResponse
// @Router       /v1/menu/{id} [get]
func (h *MenuHandler) Get(c echo.Context) error {
	item, ok := h.catalog.GetByID(c.Param("id"))
	if !ok {
		return domain.ErrNotFound
	}
	return c.JSON(http.StatusOK, item)
}

// Create handles POST /v1/menu.
//
// @Summary      Add a menu item
// @Tags         menu
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createMenuItemRequest  true  "Menu item"
// @Success      201   {object}  domain.MenuItem
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/menu [post]
func (h *MenuHandler) Create(c echo.Context) error {
	var req createMenuItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	item, err := h.catalog.AddItem(c.Request().Context(), toMenuItemInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, item)
}

// Update handles PATCH /v1/menu/:id. Absent fields are left unchanged.
//
// @Summary      Update a menu item
// @Tags         menu
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                 true  "Menu item id"
// @Param        body  body      updateMenuItemRequest  true  "Fields to change"
// @Success      200   {object}  domain.MenuItem
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/menu/{id} [patch]
func (h *MenuHandler) Update(c echo.Context) error {
	var req updateMenuItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	item, err := h.catalog.UpdateItem(c.Request().Context(), c.Param("id"), toMenuItemPatch(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, item)
}

// Delete handles DELETE /v1/menu/:id. Orders keep their item snapshots.
//
// @Summary      Delete a menu item
// @Tags         menu
// @Security     BearerAuth
// @Param        id   path  string  true  "Menu item id"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/menu/{id} [delete]
func (h *MenuHandler) Delete(c echo.Context) error {
	if err := h.catalog.DeleteItem(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
