package domain

import "time"

// MenuItem is a dish offered by the restaurant. Category is free text; the set
// of known categories is derived from the items themselves.
type MenuItem struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Category    string    `json:"category"`
	Image       string    `json:"image"`
	Available   bool      `json:"available"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// MenuItemPatch carries a partial update. Nil fields are left untouched.
type MenuItemPatch struct {
	Name        *string
	Description *string
	Price       *float64
	Category    *string
	Image       *string
	Available   *bool
}

// Apply merges the set fields of p into item.
func (p MenuItemPatch) Apply(item *MenuItem) {
	if p.Name != nil {
		item.Name = *p.Name
	}
	if p.Description != nil {
		item.Description = *p.Description
	}
	if p.Price != nil {
		item.Price = *p.Price
	}
	if p.Category != nil {
		item.Category = *p.Category
	}
	if p.Image != nil {
		item.Image = *p.Image
	}
	if p.Available != nil {
		item.Available = *p.Available
	}
}

// DeriveCategories returns the distinct categories of items in first-seen order.
func DeriveCategories(items []MenuItem) []string {
	seen := make(map[string]struct{}, len(items))
	categories := make([]string, 0)
	for _, it := range items {
		if _, ok := seen[it.Category]; ok {
			continue
		}
		seen[it.Category] = struct{}{}
		categories = append(categories, it.Category)
	}
	return categories
}
