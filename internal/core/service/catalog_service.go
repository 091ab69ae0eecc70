package service

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/dinedesk/restaurant-system/internal/core/domain"
	"github.com/dinedesk/restaurant-system/internal/core/ports"
)

// CatalogService owns the menu. Categories are never stored; they are derived
// from the current items on every read.
type CatalogService struct {
	repo ports.StateRepository
	log  zerolog.Logger
	now  func() time.Time

	mu    sync.RWMutex
	items []domain.MenuItem
}

func NewCatalogService(repo ports.StateRepository, log zerolog.Logger) *CatalogService {
	return &CatalogService{
		repo: repo,
		log:  log,
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// Load reads the menu. A storage failure leaves the catalog empty.
func (s *CatalogService) Load(ctx context.Context) {
	items, err := s.repo.MenuItems(ctx)
	absorbStorageError(s.log, "load", collectionMenuItems, err)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = items
}

func (s *CatalogService) AddItem(ctx context.Context, in ports.MenuItemInput) (domain.MenuItem, error) {
	if in.Price < 0 {
		return domain.MenuItem{}, domain.ErrInvalidPrice
	}

	now := s.now()
	item := domain.MenuItem{
		ID:          newID(),
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Category:    in.Category,
		Image:       in.Image,
		Available:   in.Available,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, item)
	s.persist(ctx)

	s.log.Info().Str("menu_item_id", item.ID).Str("category", item.Category).Msg("menu item added")
	return item, nil
}

// UpdateItem merges patch into the item with the given id. An unknown id
// returns domain.ErrNotFound and changes nothing.
func (s *CatalogService) UpdateItem(ctx context.Context, id string, patch domain.MenuItemPatch) (domain.MenuItem, error) {
	if patch.Price != nil && *patch.Price < 0 {
		return domain.MenuItem{}, domain.ErrInvalidPrice
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return domain.MenuItem{}, domain.ErrNotFound
	}
	patch.Apply(&s.items[idx])
	s.items[idx].UpdatedAt = s.now()
	s.persist(ctx)

	return s.items[idx], nil
}

// DeleteItem removes the item with the given id. Orders that already
// reference it keep their own snapshot.
func (s *CatalogService) DeleteItem(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return domain.ErrNotFound
	}
	s.items = slices.Delete(s.items, idx, idx+1)
	s.persist(ctx)

	s.log.Info().Str("menu_item_id", id).Msg("menu item deleted")
	return nil
}

func (s *CatalogService) GetByID(id string) (domain.MenuItem, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if idx := s.indexOf(id); idx >= 0 {
		return s.items[idx], true
	}
	return domain.MenuItem{}, false
}

func (s *CatalogService) GetByCategory(category string) []domain.MenuItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.MenuItem, 0)
	for _, it := range s.items {
		if it.Category == category {
			out = append(out, it)
		}
	}
	return out
}

func (s *CatalogService) List() []domain.MenuItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.MenuItem, len(s.items))
	copy(out, s.items)
	return out
}

func (s *CatalogService) Categories() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.DeriveCategories(s.items)
}

func (s *CatalogService) indexOf(id string) int {
	for i, it := range s.items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

// persist must be called with s.mu held.
func (s *CatalogService) persist(ctx context.Context) {
	absorbStorageError(s.log, "save", collectionMenuItems, s.repo.SaveMenuItems(ctx, s.items))
}
