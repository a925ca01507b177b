// Package seed fills an empty database with demo data through the regular
// services, so every record passes the same validation as API input.
package seed

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/frahmantamala/sashbid/internal/bid"
	bidPostgres "github.com/frahmantamala/sashbid/internal/bid/postgres"
	"github.com/frahmantamala/sashbid/internal/client"
	clientPostgres "github.com/frahmantamala/sashbid/internal/client/postgres"
	bidDatamodel "github.com/frahmantamala/sashbid/internal/core/datamodel/bid"
	projectDatamodel "github.com/frahmantamala/sashbid/internal/core/datamodel/project"
	"github.com/frahmantamala/sashbid/internal/core/events"
	coreuser "github.com/frahmantamala/sashbid/internal/core/user"
	"github.com/frahmantamala/sashbid/internal/inventory"
	inventoryPostgres "github.com/frahmantamala/sashbid/internal/inventory/postgres"
	"github.com/frahmantamala/sashbid/internal/project"
	projectPostgres "github.com/frahmantamala/sashbid/internal/project/postgres"
	"github.com/frahmantamala/sashbid/internal/user"
	userPostgres "github.com/frahmantamala/sashbid/internal/user/postgres"
	"gorm.io/gorm"
)

const (
	AdminEmail      = "admin@sashbid.com"
	DefaultPassword = "password123"
)

// tables in delete order; children first.
var tables = []string{"bids", "projects", "inventory_items", "clients", "users"}

type Summary struct {
	Skipped  bool
	Users    int
	Clients  int
	Projects int
	Bids     int
	Items    int
}

type Seeder struct {
	db        *gorm.DB
	users     *user.Service
	clients   *client.Service
	projects  *project.Service
	bids      *bid.Service
	inventory *inventory.Service
	logger    *slog.Logger
	now       func() time.Time
}

func New(db *gorm.DB, bcryptCost int, logger *slog.Logger) *Seeder {
	bus := events.NewEventBus(logger)
	bus.Subscribe(events.EventTypeInventoryLowStock, events.LowStockLogger(logger))

	clients := client.NewService(clientPostgres.NewClientRepository(db), logger)
	projects := project.NewService(projectPostgres.NewProjectRepository(db), clients, logger)

	return &Seeder{
		db:        db,
		users:     user.NewService(userPostgres.NewUserRepository(db), bcryptCost, logger),
		clients:   clients,
		projects:  projects,
		bids:      bid.NewService(bidPostgres.NewBidRepository(db), projects, clients, logger),
		inventory: inventory.NewService(inventoryPostgres.NewInventoryRepository(db), bus, logger),
		logger:    logger,
		now:       time.Now,
	}
}

func (s *Seeder) WithClock(now func() time.Time) *Seeder {
	s.now = now
	return s
}

// Clear removes every row from the domain tables.
func (s *Seeder) Clear(ctx context.Context) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, t := range tables {
			if err := tx.Exec("DELETE FROM " + t).Error; err != nil {
				return fmt.Errorf("clear %s: %w", t, err)
			}
		}
		return nil
	})
}

// Run seeds demo data unless the admin account already exists.
func (s *Seeder) Run(ctx context.Context) (*Summary, error) {
	existing, err := s.users.GetByEmail(ctx, AdminEmail)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		s.logger.Info("seed data already present", "email", AdminEmail)
		return &Summary{Skipped: true}, nil
	}

	sum := &Summary{}

	admin, err := s.seedUsers(ctx, sum)
	if err != nil {
		return nil, err
	}

	clientIDs, err := s.seedClients(ctx, admin.ID, sum)
	if err != nil {
		return nil, err
	}

	projectIDs, err := s.seedProjects(ctx, admin.ID, clientIDs, sum)
	if err != nil {
		return nil, err
	}

	if err := s.seedBids(ctx, admin.ID, clientIDs, projectIDs, sum); err != nil {
		return nil, err
	}

	if err := s.seedInventory(ctx, admin.ID, sum); err != nil {
		return nil, err
	}

	s.logger.Info("seed complete",
		"users", sum.Users,
		"clients", sum.Clients,
		"projects", sum.Projects,
		"bids", sum.Bids,
		"items", sum.Items)
	return sum, nil
}

func (s *Seeder) seedUsers(ctx context.Context, sum *Summary) (*coreuser.User, error) {
	accounts := []coreuser.User{
		{Name: "Admin User", Email: AdminEmail, Role: coreuser.RoleAdmin, Company: "SashBid"},
		{Name: "Maria Lopez", Email: "manager@sashbid.com", Role: coreuser.RoleManager, Company: "SashBid", Phone: "555-0101"},
		{Name: "Tom Becker", Email: "estimator@sashbid.com", Role: coreuser.RoleUser, Company: "SashBid", Phone: "555-0102"},
	}

	var admin *coreuser.User
	for i := range accounts {
		u, err := s.users.Create(ctx, &accounts[i], DefaultPassword)
		if err != nil {
			return nil, fmt.Errorf("seed user %s: %w", accounts[i].Email, err)
		}
		if u.Role == coreuser.RoleAdmin {
			admin = u
		}
		sum.Users++
	}
	return admin, nil
}

func (s *Seeder) seedClients(ctx context.Context, actorID string, sum *Summary) ([]string, error) {
	dtos := []client.CreateClientDTO{
		{
			Name:  "Lakeside Builders",
			Email: "office@lakesidebuilders.com",
			Phone: "555-0200",
			Address: client.Address{
				Street: "12 Harbor Rd", City: "Madison", State: "WI", ZipCode: "53703",
			},
			ContactPersons: []client.ContactPerson{
				{Name: "Karen Holt", Position: "Project Manager", Email: "karen@lakesidebuilders.com"},
			},
		},
		{
			Name:  "Greenview Homes",
			Email: "hello@greenviewhomes.com",
			Phone: "555-0300",
			Address: client.Address{
				Street: "480 Elm St", City: "Naperville", State: "IL", ZipCode: "60540",
			},
		},
		{
			Name:  "Oak & Pine Renovations",
			Email: "info@oakpine.com",
			Phone: "555-0400",
			Address: client.Address{
				Street: "9 Mill Ave", City: "Ann Arbor", State: "MI", ZipCode: "48104",
			},
			Notes: "Prefers fiberglass doors",
		},
	}

	ids := make([]string, 0, len(dtos))
	for _, dto := range dtos {
		c, err := s.clients.Create(ctx, actorID, dto)
		if err != nil {
			return nil, fmt.Errorf("seed client %s: %w", dto.Name, err)
		}
		ids = append(ids, c.ID)
		sum.Clients++
	}
	return ids, nil
}

func (s *Seeder) seedProjects(ctx context.Context, actorID string, clientIDs []string, sum *Summary) ([]string, error) {
	now := s.now().UTC()
	date := func(months int) string { return now.AddDate(0, months, 0).Format("2006-01-02") }

	seeds := []struct {
		dto project.CreateProjectDTO
		age int
	}{
		{project.CreateProjectDTO{Name: "Harbor Condos Phase 1", Client: clientIDs[0], Status: project.StatusCompleted, StartDate: date(-5), EndDate: date(-3), Value: 84000}, 5},
		{project.CreateProjectDTO{Name: "Harbor Condos Phase 2", Client: clientIDs[0], Status: project.StatusInProgress, StartDate: date(-2), EndDate: date(2), Value: 96000}, 2},
		{project.CreateProjectDTO{Name: "Elm Street Remodel", Client: clientIDs[1], Status: project.StatusInProgress, StartDate: date(-1), Value: 18500}, 1},
		{project.CreateProjectDTO{Name: "Mill Ave Storefront", Client: clientIDs[2], Status: project.StatusPending, StartDate: date(1), Value: 27000}, 0},
	}

	ids := make([]string, 0, len(seeds))
	for _, sd := range seeds {
		p, err := s.projects.Create(ctx, actorID, sd.dto)
		if err != nil {
			return nil, fmt.Errorf("seed project %s: %w", sd.dto.Name, err)
		}
		if err := s.backdate(ctx, &projectDatamodel.Project{}, p.ID, now.AddDate(0, -sd.age, 0)); err != nil {
			return nil, err
		}
		ids = append(ids, p.ID)
		sum.Projects++
	}
	return ids, nil
}

func (s *Seeder) seedBids(ctx context.Context, actorID string, clientIDs, projectIDs []string, sum *Summary) error {
	now := s.now().UTC()
	due := func(days int) string { return now.AddDate(0, 0, days).Format("2006-01-02") }

	windows := bid.LineItemDTO{Description: "Double-hung vinyl window 36x60", Quantity: 24, UnitPrice: 420}
	doors := bid.LineItemDTO{Description: "Fiberglass entry door", Quantity: 6, UnitPrice: 1350}
	install := bid.LineItemDTO{Description: "Installation labor", Quantity: 40, UnitPrice: 85}

	seeds := []struct {
		dto bid.CreateBidDTO
		age int
	}{
		{bid.CreateBidDTO{Project: projectIDs[0], Client: clientIDs[0], Items: []bid.LineItemDTO{windows, install}, Tax: 8, Status: bid.StatusAccepted, DueDate: due(-150)}, 5},
		{bid.CreateBidDTO{Project: projectIDs[1], Client: clientIDs[0], Items: []bid.LineItemDTO{windows, doors, install}, Tax: 8, Status: bid.StatusAccepted, DueDate: due(-60)}, 2},
		{bid.CreateBidDTO{Project: projectIDs[2], Client: clientIDs[1], Items: []bid.LineItemDTO{doors}, Tax: 6.5, Status: bid.StatusRejected, DueDate: due(-20)}, 1},
		{bid.CreateBidDTO{Project: projectIDs[2], Client: clientIDs[1], Items: []bid.LineItemDTO{doors, install}, Tax: 6.5, Status: bid.StatusSent, DueDate: due(14)}, 0},
		{bid.CreateBidDTO{Project: projectIDs[3], Client: clientIDs[2], Items: []bid.LineItemDTO{windows}, Tax: 6, Status: bid.StatusDraft, DueDate: due(30), Notes: "Awaiting final measurements"}, 0},
	}

	for _, sd := range seeds {
		b, err := s.bids.Create(ctx, actorID, sd.dto)
		if err != nil {
			return fmt.Errorf("seed bid for project %s: %w", sd.dto.Project, err)
		}
		if err := s.backdate(ctx, &bidDatamodel.Bid{}, b.ID, now.AddDate(0, -sd.age, 0)); err != nil {
			return err
		}
		sum.Bids++
	}
	return nil
}

func (s *Seeder) seedInventory(ctx context.Context, actorID string, sum *Summary) error {
	dtos := []inventory.CreateItemDTO{
		{Name: "Double-hung vinyl window", Type: inventory.TypeWindow, SKU: "WIN-DH-3660", Description: "White vinyl double-hung, Low-E glass", Manufacturer: "Andersen",
			Dimensions: &inventory.Dimensions{Width: 36, Height: 60}, Price: 420, Cost: 260, Quantity: 40, MinQuantity: 10,
			Location: "Aisle 1", Category: "Vinyl", Tags: []string{"energy-star"}},
		{Name: "Casement window", Type: inventory.TypeWindow, SKU: "WIN-CS-2448", Description: "Pine casement, crank operator", Manufacturer: "Pella",
			Dimensions: &inventory.Dimensions{Width: 24, Height: 48}, Price: 510, Cost: 330, Quantity: 4, MinQuantity: 6,
			Location: "Aisle 1", Category: "Wood"},
		{Name: "Fiberglass entry door", Type: inventory.TypeDoor, SKU: "DR-FG-3680", Description: "Smooth-star fiberglass, 6-panel", Manufacturer: "Therma-Tru",
			Dimensions: &inventory.Dimensions{Width: 36, Height: 80, Depth: 1.75}, Price: 1350, Cost: 900, Quantity: 8, MinQuantity: 3,
			Location: "Bay 2", Category: "Exterior"},
		{Name: "Patio sliding door", Type: inventory.TypeDoor, SKU: "DR-SL-7280", Description: "Two-panel vinyl slider", Manufacturer: "Milgard",
			Dimensions: &inventory.Dimensions{Width: 72, Height: 80}, Price: 1890, Cost: 1240, Quantity: 2, MinQuantity: 2,
			Location: "Bay 2", Category: "Exterior"},
		{Name: "Satin nickel lever set", Type: inventory.TypeHardware, SKU: "HW-LV-SN", Description: "Passage lever, satin nickel", Manufacturer: "Schlage",
			Price: 45, Cost: 22, Quantity: 60, MinQuantity: 15, Location: "Shelf 4", Category: "Locksets"},
		{Name: "Low-expansion foam sealant", Type: inventory.TypeMaterial, SKU: "MT-FOAM-12", Description: "Window and door foam, 12 oz",
			Price: 9.5, Cost: 4.25, Quantity: 120, MinQuantity: 30, Location: "Shelf 7", Category: "Sealants"},
	}

	for _, dto := range dtos {
		if _, err := s.inventory.Create(ctx, actorID, dto); err != nil {
			return fmt.Errorf("seed inventory %s: %w", dto.SKU, err)
		}
		sum.Items++
	}
	return nil
}

// backdate moves created_at so reports have history to show.
func (s *Seeder) backdate(ctx context.Context, model interface{}, id string, at time.Time) error {
	err := s.db.WithContext(ctx).Model(model).Where("id = ?", id).UpdateColumn("created_at", at).Error
	if err != nil {
		return fmt.Errorf("backdate %s: %w", id, err)
	}
	return nil
}
