package handler

import (
	"fmt"
	"strings"

	"github.com/dinedesk/restaurant-system/internal/core/domain"
	"github.com/dinedesk/restaurant-system/internal/core/ports"
)

// --- Request → Service input ---

func toMenuItemInput(req createMenuItemRequest) ports.MenuItemInput {
	available := true
	if req.Available != nil {
		available = *req.Available
	}
	return ports.MenuItemInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Image:       req.Image,
		Available:   available,
	}
}

func toMenuItemPatch(req updateMenuItemRequest) domain.MenuItemPatch {
	return domain.MenuItemPatch{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Image:       req.Image,
		Available:   req.Available,
	}
}

func toRegisterInput(req registerRequest) ports.RegisterInput {
	return ports.RegisterInput{
		Name:     req.Name,
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	}
}

// parseStatuses splits a comma-separated ?status= value.
func parseStatuses(raw string) ([]domain.OrderStatus, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	out := make([]domain.OrderStatus, 0, len(parts))
	for _, p := range parts {
		s := domain.OrderStatus(strings.TrimSpace(p))
		if !s.IsValid() {
			return nil, fmt.Errorf("unknown status %q", p)
		}
		out = append(out, s)
	}
	return out, nil
}

// --- Service result → HTTP response ---

func toCartResponse(s ports.CartSummary) cartResponse {
	return cartResponse{
		Items:      s.Items,
		TotalPrice: s.TotalPrice,
		TotalItems: s.TotalItems,
	}
}
