package service

import (
	"time"

	"github.com/dinedesk/restaurant-system/internal/core/domain"
	"github.com/dinedesk/restaurant-system/internal/core/ports"
)

// DashboardService derives summaries from the order and catalog components.
// It holds no state of its own.
type DashboardService struct {
	orders  ports.OrderService
	catalog ports.CatalogService
	now     func() time.Time
}

func NewDashboardService(orders ports.OrderService, catalog ports.CatalogService) *DashboardService {
	return &DashboardService{orders: orders, catalog: catalog, now: time.Now}
}

// Stats computes the dashboard of user; "today" is the server's local day.
func (s *DashboardService) Stats(user *domain.User) domain.DashboardStats {
	return domain.ComputeDashboard(s.orders.List(), user, s.now())
}

func (s *DashboardService) FinancialReport() domain.FinancialReport {
	return domain.ComputeFinancialReport(s.orders.List(), s.catalog.List(), s.now())
}
