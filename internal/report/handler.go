package report

import (
	"context"
	"net/http"

	"github.com/frahmantamala/sashbid/internal"
	"github.com/frahmantamala/sashbid/internal/transport"
)

type ServiceAPI interface {
	Dashboard(ctx context.Context) (*Dashboard, error)
	MonthlyBids(ctx context.Context, months int) ([]MonthlyBids, error)
	ProjectTimeline(ctx context.Context, months int) ([]TimelinePoint, error)
	BidStatusDistribution(ctx context.Context) ([]Slice, error)
	ProjectStatusDistribution(ctx context.Context) ([]Slice, error)
	InventoryByCategory(ctx context.Context) ([]CategoryValue, error)
	TopClients(ctx context.Context, limit int) ([]TopClient, error)
	ClientActivity(ctx context.Context, limit int) ([]ClientActivity, error)
	Bids(ctx context.Context) ([]BidRow, error)
	Projects(ctx context.Context) ([]ProjectRow, error)
	Inventory(ctx context.Context) ([]InventoryRow, error)
	Clients(ctx context.Context) ([]ClientRow, error)
	ExportInventory(ctx context.Context) ([]byte, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
	}
}

// respond writes a report body or maps the error.
func (h *Handler) respond(w http.ResponseWriter, r *http.Request, body interface{}, err error) {
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, body)
}

func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	d, err := h.Service.Dashboard(r.Context())
	h.respond(w, r, d, err)
}

// MonthlyBids handles GET /api/reports/bids/monthly?months=
func (h *Handler) MonthlyBids(w http.ResponseWriter, r *http.Request) {
	months, err := transport.QueryInt(r, "months", 0)
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	series, err := h.Service.MonthlyBids(r.Context(), months)
	h.respond(w, r, series, err)
}

// ProjectTimeline handles GET /api/reports/projects/timeline?months=
func (h *Handler) ProjectTimeline(w http.ResponseWriter, r *http.Request) {
	months, err := transport.QueryInt(r, "months", 0)
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	timeline, err := h.Service.ProjectTimeline(r.Context(), months)
	h.respond(w, r, timeline, err)
}

func (h *Handler) BidStatus(w http.ResponseWriter, r *http.Request) {
	slices, err := h.Service.BidStatusDistribution(r.Context())
	h.respond(w, r, slices, err)
}

func (h *Handler) ProjectStatus(w http.ResponseWriter, r *http.Request) {
	slices, err := h.Service.ProjectStatusDistribution(r.Context())
	h.respond(w, r, slices, err)
}

func (h *Handler) InventoryByCategory(w http.ResponseWriter, r *http.Request) {
	values, err := h.Service.InventoryByCategory(r.Context())
	h.respond(w, r, values, err)
}

// TopClients handles GET /api/reports/clients/top?limit=
func (h *Handler) TopClients(w http.ResponseWriter, r *http.Request) {
	limit, err := transport.QueryInt(r, "limit", 0)
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	clients, err := h.Service.TopClients(r.Context(), limit)
	h.respond(w, r, clients, err)
}

// ClientActivity handles GET /api/reports/clients/activity?limit=
func (h *Handler) ClientActivity(w http.ResponseWriter, r *http.Request) {
	limit, err := transport.QueryInt(r, "limit", 0)
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	clients, err := h.Service.ClientActivity(r.Context(), limit)
	h.respond(w, r, clients, err)
}

func (h *Handler) Bids(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Service.Bids(r.Context())
	h.respond(w, r, rows, err)
}

func (h *Handler) Projects(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Service.Projects(r.Context())
	h.respond(w, r, rows, err)
}

func (h *Handler) Inventory(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Service.Inventory(r.Context())
	h.respond(w, r, rows, err)
}

func (h *Handler) Clients(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Service.Clients(r.Context())
	h.respond(w, r, rows, err)
}

// ExportInventory handles GET /api/reports/inventory/export
func (h *Handler) ExportInventory(w http.ResponseWriter, r *http.Request) {
	data, err := h.Service.ExportInventory(r.Context())
	if err != nil {
		if _, ok := internal.IsAppError(err); !ok {
			err = internal.NewInternalError("failed to export inventory", err)
		}
		h.HandleServiceError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="inventory.xlsx"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		h.Logger.Error("failed to write inventory export", "error", err)
	}
}
