package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dinedesk/restaurant-system/internal/core/ports"
)

type DashboardHandler struct {
	dashboard ports.DashboardService
}

func NewDashboardHandler(dashboard ports.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

// Stats handles GET /v1/dashboard. Customers get figures for their own orders.
//
// @Summary      Dashboard statistics
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.DashboardStats
// @Failure      401  {object}  errorResponse
// @Router       /v1/dashboard [get]
func (h *DashboardHandler) Stats(c echo.Context) error {
	_, user, err := ctxSession(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.dashboard.Stats(user))
}

// FinancialReport handles GET /v1/reports/financial.
//
// @Summary      Financial report
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.FinancialReport
// @Failure      403  {object}  errorResponse
// @Router       /v1/reports/financial [get]
func (h *DashboardHandler) FinancialReport(c echo.Context) error {
	return c.JSON(http.StatusOK, h.dashboard.FinancialReport())
}
