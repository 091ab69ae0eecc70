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

// CartService keeps one cart per session. Carts are loaded lazily on first
// access and written through on every mutation. Only non-empty carts, and
// carts whose clear could not be persisted, stay cached; EvictIdle drops the
// ones no request has touched for a while.
type CartService struct {
	repo ports.StateRepository
	log  zerolog.Logger
	now  func() time.Time

	mu    sync.Mutex
	carts map[string]*cartEntry
}

type cartEntry struct {
	lines []domain.CartItem
	seen  time.Time
}

func NewCartService(repo ports.StateRepository, log zerolog.Logger) *CartService {
	return &CartService{
		repo:  repo,
		log:   log,
		now:   func() time.Time { return time.Now().UTC() },
		carts: make(map[string]*cartEntry),
	}
}

// Add puts quantity units of item into the cart. A line for the same menu item
// is merged: quantities accumulate and non-empty instructions replace the old ones.
func (s *CartService) Add(ctx context.Context, sessionID string, item domain.MenuItem, quantity int, instructions string) (ports.CartSummary, error) {
	if quantity < 1 {
		return ports.CartSummary{}, domain.ErrInvalidQuantity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.cart(ctx, sessionID)
	idx := slices.IndexFunc(lines, func(l domain.CartItem) bool { return l.MenuItemID == item.ID })
	if idx >= 0 {
		lines[idx].Quantity += quantity
		if instructions != "" {
			lines[idx].SpecialInstructions = instructions
		}
	} else {
		lines = append(lines, domain.CartItem{
			ID:                  newID(),
			MenuItemID:          item.ID,
			Name:                item.Name,
			Price:               item.Price,
			Quantity:            quantity,
			SpecialInstructions: instructions,
		})
	}
	s.store(ctx, sessionID, lines)
	return summarize(lines), nil
}

// SetQuantity replaces the quantity of a line; zero or less removes it.
func (s *CartService) SetQuantity(ctx context.Context, sessionID, lineID string, quantity int) (ports.CartSummary, error) {
	if quantity <= 0 {
		return s.Remove(ctx, sessionID, lineID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.cart(ctx, sessionID)
	idx := indexOfLine(lines, lineID)
	if idx < 0 {
		return ports.CartSummary{}, domain.ErrNotFound
	}
	lines[idx].Quantity = quantity
	s.store(ctx, sessionID, lines)
	return summarize(lines), nil
}

func (s *CartService) Remove(ctx context.Context, sessionID, lineID string) (ports.CartSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.cart(ctx, sessionID)
	idx := indexOfLine(lines, lineID)
	if idx < 0 {
		return ports.CartSummary{}, domain.ErrNotFound
	}
	lines = slices.Delete(lines, idx, idx+1)
	s.store(ctx, sessionID, lines)
	return summarize(lines), nil
}

func (s *CartService) Clear(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.clear(ctx, sessionID)
	return nil
}

// Take returns the session's cart lines and empties the cart under a single
// lock acquisition.
func (s *CartService) Take(ctx context.Context, sessionID string) []domain.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := domain.CloneItems(s.cart(ctx, sessionID))
	if len(lines) == 0 {
		return []domain.CartItem{}
	}
	s.clear(ctx, sessionID)
	return lines
}

// EvictIdle drops cached carts last touched before cutoff and reports how
// many were removed. Evicted carts are reloaded from storage on next use.
func (s *CartService) EvictIdle(cutoff time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for sid, e := range s.carts {
		if e.seen.Before(cutoff) {
			delete(s.carts, sid)
			n++
		}
	}
	return n
}

// Items returns a copy of the session's cart lines.
func (s *CartService) Items(ctx context.Context, sessionID string) []domain.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	lines := domain.CloneItems(s.cart(ctx, sessionID))
	if lines == nil {
		lines = []domain.CartItem{}
	}
	return lines
}

func (s *CartService) Summary(ctx context.Context, sessionID string) ports.CartSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return summarize(s.cart(ctx, sessionID))
}

func (s *CartService) TotalPrice(ctx context.Context, sessionID string) float64 {
	return domain.TotalPrice(s.Items(ctx, sessionID))
}

func (s *CartService) TotalItemCount(ctx context.Context, sessionID string) int {
	return domain.TotalQuantity(s.Items(ctx, sessionID))
}

// cart returns the live lines of a session, loading them on first use.
// A cart that loads empty is not cached. Must be called with s.mu held.
func (s *CartService) cart(ctx context.Context, sessionID string) []domain.CartItem {
	if e, ok := s.carts[sessionID]; ok {
		e.seen = s.now()
		return e.lines
	}
	lines, err := s.repo.Cart(ctx, sessionID)
	absorbStorageError(s.log, "load", collectionCart, err)
	if len(lines) == 0 {
		return []domain.CartItem{}
	}
	s.carts[sessionID] = &cartEntry{lines: lines, seen: s.now()}
	return lines
}

// store must be called with s.mu held.
func (s *CartService) store(ctx context.Context, sessionID string, lines []domain.CartItem) {
	s.carts[sessionID] = &cartEntry{lines: lines, seen: s.now()}
	absorbStorageError(s.log, "save", collectionCart, s.repo.SaveCart(ctx, sessionID, lines))
}

// clear empties a cart. The cache entry is dropped once storage agrees;
// otherwise an empty entry keeps masking the stale stored cart.
// Must be called with s.mu held.
func (s *CartService) clear(ctx context.Context, sessionID string) {
	if err := s.repo.ClearCart(ctx, sessionID); err != nil {
		absorbStorageError(s.log, "save", collectionCart, err)
		s.carts[sessionID] = &cartEntry{lines: []domain.CartItem{}, seen: s.now()}
		return
	}
	delete(s.carts, sessionID)
}

func indexOfLine(lines []domain.CartItem, lineID string) int {
	return slices.IndexFunc(lines, func(l domain.CartItem) bool { return l.ID == lineID })
}

func summarize(lines []domain.CartItem) ports.CartSummary {
	items := domain.CloneItems(lines)
	if items == nil {
		items = []domain.CartItem{}
	}
	return ports.CartSummary{
		Items:      items,
		TotalPrice: domain.TotalPrice(items),
		TotalItems: domain.TotalQuantity(items),
	}
}
