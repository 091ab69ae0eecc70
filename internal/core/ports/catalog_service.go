package ports

import (
	"context"

	"github.com/dinedesk/restaurant-system/internal/core/domain"
)

// MenuItemInput carries the fields of a new menu item.
type MenuItemInput struct {
	Name        string
	Description string
	Price       float64
	Category    string
	Image       string
	Available   bool
}

// CatalogService owns the menu.
type CatalogService interface {
	AddItem(ctx context.Context, in MenuItemInput) (domain.MenuItem, error)
	UpdateItem(ctx context.Context, id string, patch domain.MenuItemPatch) (domain.MenuItem, error)
	DeleteItem(ctx context.Context, id string) error
	GetByID(id string) (domain.MenuItem, bool)
	GetByCategory(category string) []domain.MenuItem
	List() []domain.MenuItem
	Categories() []string
}
