package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dinedesk/restaurant-system/internal/core/domain"
	"github.com/dinedesk/restaurant-system/internal/core/ports"
)

var (
	testCustomer = &domain.User{ID: "cust-1", Username: "newuser", Role: domain.RoleCustomer}
	testChef     = &domain.User{ID: "chef-1", Username: "chef", Role: domain.RoleChef}
)

func sampleOrders() []domain.Order {
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	return []domain.Order{
		{ID: "o1", UserID: "cust-1", CustomerName: "Ann", Status: domain.StatusDelivered, CreatedAt: base},
		{ID: "o2", UserID: "other", CustomerName: "Bob", Status: domain.StatusPending, CreatedAt: base.Add(time.Minute)},
		{ID: "o3", UserID: "cust-1", CustomerName: "Ann", Status: domain.StatusPending, CreatedAt: base.Add(2 * time.Minute)},
		{ID: "o4", UserID: domain.GuestUserID, CustomerName: "Walk-in", Status: domain.StatusReady, CreatedAt: base},
	}
}

func decodeOrders(t *testing.T, body []byte) []string {
	t.Helper()
	var resp orderListResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	ids := make([]string, len(resp.Orders))
	for i, o := range resp.Orders {
		ids[i] = o.ID
	}
	return ids
}

func TestOrderHandler_Place(t *testing.T) {
	var got ports.PlaceOrderInput
	stub := &stubOrderService{
		placeFn: func(_ context.Context, in ports.PlaceOrderInput) (*ports.PlaceOrderResult, error) {
			got = in
			return &ports.PlaceOrderResult{Order: domain.Order{ID: "o9", CustomerName: in.CustomerName, Status: domain.StatusPending}}, nil
		},
	}
	c, rec := newContext(http.MethodPost, "/v1/orders", `{"customerName":"Jane"}`, nil)
	c.Request().Header.Set("Idempotency-Key", "k-1")

	if err := NewOrderHandler(stub, nil).Place(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if got.SessionID != "s1" || got.CustomerName != "Jane" || got.IdempotencyKey != "k-1" {
		t.Fatalf("unexpected service input: %+v", got)
	}
}

func TestOrderHandler_Place_Replay(t *testing.T) {
	stub := &stubOrderService{
		placeFn: func(context.Context, ports.PlaceOrderInput) (*ports.PlaceOrderResult, error) {
			return &ports.PlaceOrderResult{Order: domain.Order{ID: "o9"}, AlreadyExisted: true}, nil
		},
	}
	c, rec := newContext(http.MethodPost, "/v1/orders", "", nil)

	if err := NewOrderHandler(stub, nil).Place(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 on replay, got %d", rec.Code)
	}
}

func TestOrderHandler_Place_EmptyCart(t *testing.T) {
	stub := &stubOrderService{
		placeFn: func(context.Context, ports.PlaceOrderInput) (*ports.PlaceOrderResult, error) {
			return nil, domain.ErrEmptyCart
		},
	}
	c, _ := newContext(http.MethodPost, "/v1/orders", `{}`, nil)
	if err := NewOrderHandler(stub, nil).Place(c); !errors.Is(err, domain.ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}
}

func TestOrderHandler_List_Scoping(t *testing.T) {
	stub := &stubOrderService{orders: sampleOrders()}
	h := NewOrderHandler(stub, nil)

	tests := []struct {
		name  string
		user  *domain.User
		query string
		want  []string
	}{
		{"staff sees all sorted", testChef, "", []string{"o3", "o2", "o4", "o1"}},
		{"customer sees own", testCustomer, "", []string{"o3", "o1"}},
		{"anonymous sees none", nil, "", []string{}},
		{"status filter", testChef, "?status=pending,ready", []string{"o3", "o2", "o4"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newContext(http.MethodGet, "/v1/orders"+tt.query, "", tt.user)
			if err := h.List(c); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			got := decodeOrders(t, rec.Body.Bytes())
			if len(got) != len(tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("expected %v, got %v", tt.want, got)
				}
			}
		})
	}

	c, _ := newContext(http.MethodGet, "/v1/orders?status=lost", "", testChef)
	var he *echo.HTTPError
	if err := h.List(c); !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown status, got %v", err)
	}
}

func TestOrderHandler_Get_Visibility(t *testing.T) {
	h := NewOrderHandler(&stubOrderService{orders: sampleOrders()}, nil)

	tests := []struct {
		name   string
		user   *domain.User
		id     string
		wantOK bool
	}{
		{"owner", testCustomer, "o1", true},
		{"other customer's order", testCustomer, "o2", false},
		{"staff", testChef, "o2", true},
		{"guest order by id", nil, "o4", true},
		{"anonymous on registered order", nil, "o1", false},
		{"unknown", testChef, "missing", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newContext(http.MethodGet, "/v1/orders/"+tt.id, "", tt.user)
			c.SetParamNames("id")
			c.SetParamValues(tt.id)

			err := h.Get(c)
			if tt.wantOK {
				if err != nil || rec.Code != http.StatusOK {
					t.Fatalf("expected 200, got %d (%v)", rec.Code, err)
				}
				return
			}
			if !errors.Is(err, domain.ErrNotFound) {
				t.Fatalf("expected ErrNotFound, got %v", err)
			}
		})
	}
}

func TestOrderHandler_AdvanceAndCancel(t *testing.T) {
	h := NewOrderHandler(&stubOrderService{orders: sampleOrders()}, nil)

	c, rec := newContext(http.MethodPost, "/v1/orders/o2/advance", "", testChef)
	c.SetParamNames("id")
	c.SetParamValues("o2")
	if err := h.Advance(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var order domain.Order
	if err := json.Unmarshal(rec.Body.Bytes(), &order); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if order.Status != domain.StatusPreparing {
		t.Fatalf("expected preparing, got %s", order.Status)
	}

	c, _ = newContext(http.MethodPost, "/v1/orders/o1/cancel", "", testChef)
	c.SetParamNames("id")
	c.SetParamValues("o1")
	if err := h.Cancel(c); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}
