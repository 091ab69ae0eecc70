package handler

import (
	"time"

	"github.com/dinedesk/restaurant-system/internal/core/domain"
)

// errorResponse documents the envelope rendered by the API error handler.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Sessions ---

type sessionResponse struct {
	Token     string    `json:"token"`
	SessionID string    `json:"sessionId"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// --- Auth ---

type registerRequest struct {
	Name     string `json:"name"     validate:"required"`
	Username string `json:"username" validate:"required,min=3,max=32"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type userResponse struct {
	User *domain.User `json:"user"`
}

// --- Menu ---

type createMenuItemRequest struct {
	Name        string  `json:"name"        validate:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price"       validate:"gte=0"`
	Category    string  `json:"category"    validate:"required"`
	Image       string  `json:"image"       validate:"omitempty,url"`
	Available   *bool   `json:"available"`
}

type updateMenuItemRequest struct {
	Name        *string  `json:"name"        validate:"omitempty,min=1"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"       validate:"omitempty,gte=0"`
	Category    *string  `json:"category"    validate:"omitempty,min=1"`
	Image       *string  `json:"image"       validate:"omitempty,url"`
	Available   *bool    `json:"available"`
}

type menuListResponse struct {
	Items []domain.MenuItem `json:"items"`
}

type categoriesResponse struct {
	Categories []string `json:"categories"`
}

// --- Cart ---

type addCartItemRequest struct {
	MenuItemID          string `json:"menuItemId"          validate:"required"`
	Quantity            int    `json:"quantity"            validate:"min=1"`
	SpecialInstructions string `json:"specialInstructions" validate:"max=500"`
}

type updateCartItemRequest struct {
	Quantity *int `json:"quantity" validate:"required"`
}

type cartResponse struct {
	Items      []domain.CartItem `json:"items"`
	TotalPrice float64           `json:"totalPrice"`
	TotalItems int               `json:"totalItems"`
}

// --- Orders ---

type placeOrderRequest struct {
	CustomerName string `json:"customerName" validate:"max=100"`
}

type orderListResponse struct {
	Orders []domain.Order `json:"orders"`
}
