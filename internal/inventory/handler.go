package inventory

import (
	"context"
	"net/http"

	"github.com/frahmantamala/sashbid/internal"
	"github.com/frahmantamala/sashbid/internal/transport"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	List(ctx context.Context, filter ListFilter) ([]*Item, error)
	ListLowStock(ctx context.Context) ([]*Item, error)
	Get(ctx context.Context, id string) (*Item, error)
	Create(ctx context.Context, actorID string, dto CreateItemDTO) (*Item, error)
	Update(ctx context.Context, id string, dto UpdateItemDTO) (*Item, error)
	AdjustQuantity(ctx context.Context, id string, dto QuantityDTO) (*Item, error)
	Delete(ctx context.Context, id string) error
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

// ListItems handles GET /api/inventory?type=&category=&manufacturer=&search=&minQuantity=&maxPrice=
func (h *Handler) ListItems(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := ListFilter{
		Type:         q.Get("type"),
		Category:     q.Get("category"),
		Manufacturer: q.Get("manufacturer"),
		Search:       q.Get("search"),
	}

	var err error
	if filter.MinQuantity, err = transport.QueryCount(r, "minQuantity"); err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	if filter.MaxPrice, err = transport.QueryFloat(r, "maxPrice"); err != nil {
		h.HandleServiceError(w, r, err)
		return
	}

	items, err := h.Service.List(r.Context(), filter)
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, ItemsResponse{Count: len(items), Items: items})
}

// ListLowStock handles GET /api/inventory/low-stock
func (h *Handler) ListLowStock(w http.ResponseWriter, r *http.Request) {
	items, err := h.Service.ListLowStock(r.Context())
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, ItemsResponse{Count: len(items), Items: items})
}

func (h *Handler) GetItem(w http.ResponseWriter, r *http.Request) {
	item, err := h.Service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, ItemResponse{Item: item})
}

func (h *Handler) CreateItem(w http.ResponseWriter, r *http.Request) {
	var dto CreateItemDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, r, err)
		return
	}

	item, err := h.Service.Create(r.Context(), internal.UserIDFromContext(r.Context()), dto)
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, ItemMutationResponse{Message: "Inventory item created successfully", Item: item})
}

func (h *Handler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	var dto UpdateItemDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, r, err)
		return
	}

	item, err := h.Service.Update(r.Context(), chi.URLParam(r, "id"), dto)
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, ItemMutationResponse{Message: "Inventory item updated successfully", Item: item})
}

// UpdateQuantity handles PATCH /api/inventory/{id}/quantity
func (h *Handler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	var dto QuantityDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, r, err)
		return
	}

	item, err := h.Service.AdjustQuantity(r.Context(), chi.URLParam(r, "id"), dto)
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, ItemMutationResponse{Message: "Inventory quantity updated successfully", Item: item})
}

func (h *Handler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, MessageResponse{Message: "Inventory item deleted successfully"})
}
