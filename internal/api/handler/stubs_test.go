package handler

import (
	"context"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/dinedesk/restaurant-system/internal/api/middleware"
	"github.com/dinedesk/restaurant-system/internal/core/domain"
	"github.com/dinedesk/restaurant-system/internal/core/ports"
)

type stubIdentityService struct {
	registerFn func(ctx context.Context, sid string, in ports.RegisterInput) (*domain.User, error)
	loginFn    func(ctx context.Context, sid, username, password string) (*domain.User, error)
	logoutFn   func(ctx context.Context, sid string) error
}

func (s *stubIdentityService) Register(ctx context.Context, sid string, in ports.RegisterInput) (*domain.User, error) {
	return s.registerFn(ctx, sid, in)
}

func (s *stubIdentityService) Login(ctx context.Context, sid, username, password string) (*domain.User, error) {
	return s.loginFn(ctx, sid, username, password)
}

func (s *stubIdentityService) Logout(ctx context.Context, sid string) error {
	return s.logoutFn(ctx, sid)
}

func (s *stubIdentityService) CurrentUser(context.Context, string) (*domain.User, error) {
	return nil, nil
}

type stubCatalogService struct {
	items map[string]domain.MenuItem
}

func (s *stubCatalogService) AddItem(_ context.Context, in ports.MenuItemInput) (domain.MenuItem, error) {
	item := domain.MenuItem{ID: "new", Name: in.Name, Price: in.Price, Category: in.Category, Available: in.Available}
	s.items[item.ID] = item
	return item, nil
}

func (s *stubCatalogService) UpdateItem(_ context.Context, id string, patch domain.MenuItemPatch) (domain.MenuItem, error) {
	item, ok := s.items[id]
	if !ok {
		return domain.MenuItem{}, domain.ErrNotFound
	}
	patch.Apply(&item)
	s.items[id] = item
	return item, nil
}

func (s *stubCatalogService) DeleteItem(_ context.Context, id string) error {
	if _, ok := s.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.items, id)
	return nil
}

func (s *stubCatalogService) GetByID(id string) (domain.MenuItem, bool) {
	item, ok := s.items[id]
	return item, ok
}

func (s *stubCatalogService) GetByCategory(category string) []domain.MenuItem {
	out := []domain.MenuItem{}
	for _, it := range s.items {
		if it.Category == category {
			out = append(out, it)
		}
	}
	return out
}

func (s *stubCatalogService) List() []domain.MenuItem {
	out := []domain.MenuItem{}
	for _, it := range s.items {
		out = append(out, it)
	}
	return out
}

func (s *stubCatalogService) Categories() []string { return []string{} }

type stubCartService struct {
	added []domain.CartItem
}

func (s *stubCartService) Add(_ context.Context, _ string, item domain.MenuItem, qty int, instr string) (ports.CartSummary, error) {
	if qty < 1 {
		return ports.CartSummary{}, domain.ErrInvalidQuantity
	}
	line := domain.CartItem{ID: "line-1", MenuItemID: item.ID, Name: item.Name, Price: item.Price, Quantity: qty, SpecialInstructions: instr}
	s.added = append(s.added, line)
	return ports.CartSummary{Items: s.added, TotalPrice: domain.TotalPrice(s.added), TotalItems: domain.TotalQuantity(s.added)}, nil
}

func (s *stubCartService) SetQuantity(context.Context, string, string, int) (ports.CartSummary, error) {
	return ports.CartSummary{}, domain.ErrNotFound
}

func (s *stubCartService) Remove(context.Context, string, string) (ports.CartSummary, error) {
	return ports.CartSummary{}, domain.ErrNotFound
}

func (s *stubCartService) Clear(context.Context, string) error { return nil }

func (s *stubCartService) Take(context.Context, string) []domain.CartItem {
	out := s.added
	s.added = nil
	return out
}

func (s *stubCartService) Items(context.Context, string) []domain.CartItem { return s.added }

func (s *stubCartService) Summary(context.Context, string) ports.CartSummary {
	return ports.CartSummary{Items: s.added}
}

func (s *stubCartService) TotalPrice(context.Context, string) float64 { return domain.TotalPrice(s.added) }

func (s *stubCartService) TotalItemCount(context.Context, string) int {
	return domain.TotalQuantity(s.added)
}

type stubOrderService struct {
	orders  []domain.Order
	placeFn func(ctx context.Context, in ports.PlaceOrderInput) (*ports.PlaceOrderResult, error)
}

func (s *stubOrderService) Place(ctx context.Context, in ports.PlaceOrderInput) (*ports.PlaceOrderResult, error) {
	return s.placeFn(ctx, in)
}

func (s *stubOrderService) AdvanceStatus(_ context.Context, id string) (domain.Order, error) {
	for _, o := range s.orders {
		if o.ID == id {
			o.Status, _ = o.Status.Next()
			return o, nil
		}
	}
	return domain.Order{}, domain.ErrNotFound
}

func (s *stubOrderService) Cancel(context.Context, string) (domain.Order, error) {
	return domain.Order{}, domain.ErrInvalidTransition
}

func (s *stubOrderService) GetByID(id string) (domain.Order, bool) {
	for _, o := range s.orders {
		if o.ID == id {
			return o, true
		}
	}
	return domain.Order{}, false
}

func (s *stubOrderService) ListForUser(userID string) []domain.Order {
	out := []domain.Order{}
	for _, o := range s.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out
}

func (s *stubOrderService) List() []domain.Order {
	out := make([]domain.Order, len(s.orders))
	copy(out, s.orders)
	return out
}

// newContext builds an echo context for a JSON request on session s1 with user
// signed in (nil for anonymous).
func newContext(method, target, body string, user *domain.User) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.ContextKeySessionID, "s1")
	c.Set(middleware.ContextKeyUser, user)
	return c, rec
}
