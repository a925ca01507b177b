package rest

import (
	"log/slog"

	"github.com/frahmantamala/sashbid/internal"
	"github.com/frahmantamala/sashbid/internal/auth"
	"github.com/frahmantamala/sashbid/internal/bid"
	"github.com/frahmantamala/sashbid/internal/bid/pdf"
	bidPostgres "github.com/frahmantamala/sashbid/internal/bid/postgres"
	"github.com/frahmantamala/sashbid/internal/client"
	clientPostgres "github.com/frahmantamala/sashbid/internal/client/postgres"
	"github.com/frahmantamala/sashbid/internal/core/events"
	"github.com/frahmantamala/sashbid/internal/inventory"
	inventoryPostgres "github.com/frahmantamala/sashbid/internal/inventory/postgres"
	"github.com/frahmantamala/sashbid/internal/project"
	projectPostgres "github.com/frahmantamala/sashbid/internal/project/postgres"
	"github.com/frahmantamala/sashbid/internal/report"
	reportPostgres "github.com/frahmantamala/sashbid/internal/report/postgres"
	"github.com/frahmantamala/sashbid/internal/transport"
	"github.com/frahmantamala/sashbid/internal/user"
	userPostgres "github.com/frahmantamala/sashbid/internal/user/postgres"
	"github.com/jmoiron/sqlx"
	"gorm.io/gorm"
)

// NewHandlers builds every repository, service and handler. gormDB serves the
// resource repositories and readDB the report queries; both may share one pool.
func NewHandlers(gormDB *gorm.DB, readDB *sqlx.DB, cfg *internal.Config, logger *slog.Logger) Handlers {
	base := transport.NewBaseHandler(logger, !cfg.App.IsProduction())

	bus := events.NewEventBus(logger)
	bus.Subscribe(events.EventTypeInventoryLowStock, events.LowStockLogger(logger))

	userService := user.NewService(userPostgres.NewUserRepository(gormDB), cfg.Security.BCryptCost, logger)
	tokens := auth.NewJWTTokenGenerator(cfg.Security.JWTSecret, cfg.Security.TokenDuration)
	authService := auth.NewService(userService, tokens, logger)

	clientService := client.NewService(clientPostgres.NewClientRepository(gormDB), logger)
	projectService := project.NewService(projectPostgres.NewProjectRepository(gormDB), clientService, logger)
	bidService := bid.NewService(bidPostgres.NewBidRepository(gormDB), projectService, clientService, logger)
	inventoryService := inventory.NewService(inventoryPostgres.NewInventoryRepository(gormDB), bus, logger)
	reportService := report.NewService(reportPostgres.NewReportRepository(readDB), report.Options{
		DefaultMonths:   cfg.Reports.DefaultMonths,
		TopClientsLimit: cfg.Reports.TopClientsLimit,
	}, logger)

	return Handlers{
		Auth:      auth.NewHandler(base, authService),
		User:      user.NewHandler(base, userService),
		Client:    client.NewHandler(base, clientService),
		Project:   project.NewHandler(base, projectService),
		Bid:       bid.NewHandler(base, bidService, pdf.NewQuoteRenderer(cfg.App.Name)),
		Inventory: inventory.NewHandler(base, inventoryService),
		Report:    report.NewHandler(base, reportService),
	}
}
