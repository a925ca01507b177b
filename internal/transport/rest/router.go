package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/sashbid/internal/auth"
	"github.com/frahmantamala/sashbid/internal/bid"
	"github.com/frahmantamala/sashbid/internal/client"
	coreuser "github.com/frahmantamala/sashbid/internal/core/user"
	"github.com/frahmantamala/sashbid/internal/inventory"
	"github.com/frahmantamala/sashbid/internal/project"
	"github.com/frahmantamala/sashbid/internal/report"
	"github.com/frahmantamala/sashbid/internal/transport/middleware"
	"github.com/frahmantamala/sashbid/internal/transport/swagger"
	"github.com/frahmantamala/sashbid/internal/user"
	"github.com/go-chi/chi"
)

type Handlers struct {
	Auth      *auth.Handler
	User      *user.Handler
	Client    *client.Handler
	Project   *project.Handler
	Bid       *bid.Handler
	Inventory *inventory.Handler
	Report    *report.Handler
}

type Options struct {
	AllowedOrigins []string
	ExposeErrors   bool
	// Document is served at /openapi.json when set.
	Document *swagger.Document
}

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, h Handlers, opts Options, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger, opts.ExposeErrors))
	router.Use(middleware.CORS(opts.AllowedOrigins))
	router.Use(middleware.LoggingMiddleware(logger))

	router.Get("/health", healthHandler.healthCheckHandler)
	router.Get("/ping", healthHandler.pingHandler)

	if opts.Document != nil {
		router.Get("/openapi.json", opts.Document.ServeHTTP)
		router.Handle("/swagger/*", swagger.Handler())
	}

	router.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", h.Auth.Register)
		r.Post("/auth/login", h.Auth.Login)

		r.Group(func(pr chi.Router) {
			pr.Use(h.Auth.AuthMiddleware)
			pr.Use(middleware.UserContext)

			pr.Get("/auth/me", h.Auth.Me)

			pr.Route("/users", func(ur chi.Router) {
				ur.Post("/change-password", h.User.ChangePassword)
				ur.Get("/{id}", h.User.GetUser)
				ur.Put("/{id}", h.User.UpdateUser)

				ur.Group(func(ar chi.Router) {
					ar.Use(middleware.RequireRoles(coreuser.RoleAdmin))
					ar.Get("/", h.User.ListUsers)
					ar.Delete("/{id}", h.User.DeleteUser)
				})
			})

			pr.Route("/clients", func(cr chi.Router) {
				cr.Get("/", h.Client.ListClients)
				cr.Post("/", h.Client.CreateClient)
				cr.Get("/{id}", h.Client.GetClient)
				cr.Put("/{id}", h.Client.UpdateClient)
				cr.Delete("/{id}", h.Client.DeleteClient)
				cr.Post("/{id}/contacts", h.Client.AddContact)
				cr.Delete("/{id}/contacts/{index}", h.Client.RemoveContact)
			})

			pr.Route("/projects", func(rr chi.Router) {
				rr.Get("/", h.Project.ListProjects)
				rr.Post("/", h.Project.CreateProject)
				rr.Get("/{id}", h.Project.GetProject)
				rr.Put("/{id}", h.Project.UpdateProject)
				rr.Delete("/{id}", h.Project.DeleteProject)
			})

			pr.Route("/bids", func(br chi.Router) {
				br.Get("/", h.Bid.ListBids)
				br.Post("/", h.Bid.CreateBid)
				br.Get("/project/{projectId}", h.Bid.ListProjectBids)
				br.Get("/{id}", h.Bid.GetBid)
				br.Get("/{id}/pdf", h.Bid.DownloadQuote)
				br.Put("/{id}", h.Bid.UpdateBid)
				br.Delete("/{id}", h.Bid.DeleteBid)
			})

			pr.Route("/inventory", func(ir chi.Router) {
				ir.Get("/", h.Inventory.ListItems)
				ir.Post("/", h.Inventory.CreateItem)
				ir.Get("/low-stock", h.Inventory.ListLowStock)
				ir.Get("/{id}", h.Inventory.GetItem)
				ir.Put("/{id}", h.Inventory.UpdateItem)
				ir.Patch("/{id}/quantity", h.Inventory.UpdateQuantity)
				ir.Delete("/{id}", h.Inventory.DeleteItem)
			})

			pr.Route("/reports", func(rr chi.Router) {
				rr.Get("/dashboard", h.Report.Dashboard)
				rr.Get("/bids", h.Report.Bids)
				rr.Get("/bids/monthly", h.Report.MonthlyBids)
				rr.Get("/bids/status", h.Report.BidStatus)
				rr.Get("/projects", h.Report.Projects)
				rr.Get("/projects/status", h.Report.ProjectStatus)
				rr.Get("/projects/timeline", h.Report.ProjectTimeline)
				rr.Get("/inventory", h.Report.Inventory)
				rr.Get("/inventory/category", h.Report.InventoryByCategory)
				rr.Get("/inventory/export", h.Report.ExportInventory)
				rr.Get("/clients", h.Report.Clients)
				rr.Get("/clients/top", h.Report.TopClients)
				rr.Get("/clients/activity", h.Report.ClientActivity)
			})
		})
	})

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":{"type":"NOT_FOUND","code":"ROUTE_NOT_FOUND","message":"Route not found"}}`))
	})
}
