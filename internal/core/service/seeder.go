package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/dinedesk/restaurant-system/internal/core/domain"
	"github.com/dinedesk/restaurant-system/internal/core/ports"
)

const (
	sampleCustomerID = "sample-customer"
	imageQuery       = "?auto=compress&cs=tinysrgb&w=1260&h=750&dpr=2"
)

type seedItem struct {
	name, description, category, image string
	price                              float64
}

var seedMenu = []seedItem{
	{"Classic Burger", "Juicy beef patty with lettuce, tomato, onion, and special sauce", "Main Dishes", "https://images.pexels.com/photos/1639557/pexels-photo-1639557.jpeg", 12.99},
	{"Caesar Salad", "Crisp romaine lettuce with parmesan, croutons and Caesar dressing", "Starters", "https://images.pexels.com/photos/1211887/pexels-photo-1211887.jpeg", 9.99},
	{"Margherita Pizza", "Classic pizza with tomato sauce, fresh mozzarella, and basil", "Main Dishes", "https://images.pexels.com/photos/825661/pexels-photo-825661.jpeg", 14.99},
	{"Chocolate Brownie", "Warm chocolate brownie served with vanilla ice cream", "Desserts", "https://images.pexels.com/photos/45202/brownie-dessert-cake-sweet-45202.jpeg", 7.99},
	{"Grilled Salmon", "Fresh salmon fillet with lemon herb butter", "Main Dishes", "https://images.pexels.com/photos/3763847/pexels-photo-3763847.jpeg", 18.99},
	{"French Fries", "Crispy golden fries with sea salt", "Sides", "https://images.pexels.com/photos/1583884/pexels-photo-1583884.jpeg", 4.99},
	{"Cheesecake", "Creamy New York style cheesecake", "Desserts", "https://images.pexels.com/photos/1126359/pexels-photo-1126359.jpeg", 6.99},
	{"Chicken Wings", "Spicy buffalo wings with blue cheese dip", "Starters", "https://images.pexels.com/photos/2338407/pexels-photo-2338407.jpeg", 11.99},
}

// Seeder writes fixture data into empty collections. Collections that already
// hold records are left alone, so seeding is safe on every start.
type Seeder struct {
	repo ports.StateRepository
	log  zerolog.Logger
	now  func() time.Time
}

func NewSeeder(repo ports.StateRepository, log zerolog.Logger) *Seeder {
	return &Seeder{repo: repo, log: log, now: func() time.Time { return time.Now().UTC() }}
}

// Seed fills users, then the menu, then sample orders. Sample orders need the
// menu, so they are skipped when the menu is still empty.
func (s *Seeder) Seed(ctx context.Context) error {
	if err := s.seedUsers(ctx); err != nil {
		return fmt.Errorf("seed users: %w", err)
	}
	if err := s.seedMenu(ctx); err != nil {
		return fmt.Errorf("seed menu: %w", err)
	}
	if err := s.seedOrders(ctx); err != nil {
		return fmt.Errorf("seed orders: %w", err)
	}
	return nil
}

func (s *Seeder) seedUsers(ctx context.Context) error {
	users, err := s.repo.Users(ctx)
	if err != nil {
		return err
	}
	if len(users) > 0 {
		return nil
	}
	now := s.now()
	users = []domain.User{
		{ID: newID(), Name: "Admin User", Username: domain.SeedAdminUsername, Email: "admin@restaurant.com", Role: domain.RoleAdmin, CreatedAt: now},
		{ID: newID(), Name: "Chef User", Username: domain.SeedChefUsername, Email: "chef@restaurant.com", Role: domain.RoleChef, CreatedAt: now},
		{ID: newID(), Name: "Customer User", Username: domain.SeedCustomerUsername, Email: "customer@restaurant.com", Role: domain.RoleCustomer, CreatedAt: now},
	}
	if err := s.repo.SaveUsers(ctx, users); err != nil {
		return err
	}
	s.log.Info().Int("count", len(users)).Msg("seeded users")
	return nil
}

func (s *Seeder) seedMenu(ctx context.Context) error {
	items, err := s.repo.MenuItems(ctx)
	if err != nil {
		return err
	}
	if len(items) > 0 {
		return nil
	}
	now := s.now()
	items = make([]domain.MenuItem, 0, len(seedMenu))
	for _, m := range seedMenu {
		items = append(items, domain.MenuItem{
			ID:          newID(),
			Name:        m.name,
			Description: m.description,
			Price:       m.price,
			Category:    m.category,
			Image:       m.image + imageQuery,
			Available:   true,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}
	if err := s.repo.SaveMenuItems(ctx, items); err != nil {
		return err
	}
	s.log.Info().Int("count", len(items)).Msg("seeded menu")
	return nil
}

func (s *Seeder) seedOrders(ctx context.Context) error {
	orders, err := s.repo.Orders(ctx)
	if err != nil {
		return err
	}
	if len(orders) > 0 {
		return nil
	}
	menu, err := s.repo.MenuItems(ctx)
	if err != nil {
		return err
	}
	if len(menu) < len(seedMenu) {
		return nil
	}

	now := s.now()
	sample := func(customer string, status domain.OrderStatus, lines ...domain.OrderItem) domain.Order {
		return domain.Order{
			ID:           newID(),
			UserID:       sampleCustomerID,
			CustomerName: customer,
			Items:        lines,
			Status:       status,
			TotalAmount:  domain.TotalPrice(lines),
			CreatedAt:    now,
			UpdatedAt:    now,
		}
	}
	orders = []domain.Order{
		sample("John Smith", domain.StatusPreparing, lineFor(menu[0], 2), lineFor(menu[5], 1)),
		sample("Sarah Johnson", domain.StatusPending, lineFor(menu[2], 1)),
	}
	if err := s.repo.SaveOrders(ctx, orders); err != nil {
		return err
	}
	s.log.Info().Int("count", len(orders)).Msg("seeded sample orders")
	return nil
}

func lineFor(item domain.MenuItem, quantity int) domain.OrderItem {
	return domain.OrderItem{
		ID:         newID(),
		MenuItemID: item.ID,
		Name:       item.Name,
		Price:      item.Price,
		Quantity:   quantity,
	}
}
