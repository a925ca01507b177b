package bid

import (
	"context"
	"fmt"
	"net/http"

	"github.com/frahmantamala/sashbid/internal"
	"github.com/frahmantamala/sashbid/internal/transport"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	List(ctx context.Context, filter ListFilter) ([]*Bid, error)
	ListByProject(ctx context.Context, projectID string) ([]*Bid, error)
	Get(ctx context.Context, id string) (*Bid, error)
	Create(ctx context.Context, actorID string, dto CreateBidDTO) (*Bid, error)
	Update(ctx context.Context, id string, dto UpdateBidDTO) (*Bid, error)
	Delete(ctx context.Context, id string) error
}

// QuoteRenderer turns a populated bid into a printable document.
type QuoteRenderer interface {
	Render(ctx context.Context, b *Bid) ([]byte, error)
}

type Handler struct {
	*transport.BaseHandler
	Service  ServiceAPI
	Renderer QuoteRenderer
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI, renderer QuoteRenderer) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
		Renderer:    renderer,
	}
}

// ListBids handles GET /api/bids?project=&client=&status=&minTotal=&maxTotal=
func (h *Handler) ListBids(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := ListFilter{
		ProjectID: q.Get("project"),
		ClientID:  q.Get("client"),
		Status:    q.Get("status"),
	}

	var err error
	if filter.MinTotal, err = transport.QueryFloat(r, "minTotal"); err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	if filter.MaxTotal, err = transport.QueryFloat(r, "maxTotal"); err != nil {
		h.HandleServiceError(w, r, err)
		return
	}

	bids, err := h.Service.List(r.Context(), filter)
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, BidsResponse{Count: len(bids), Bids: bids})
}

// ListProjectBids handles GET /api/bids/project/{projectId}
func (h *Handler) ListProjectBids(w http.ResponseWriter, r *http.Request) {
	bids, err := h.Service.ListByProject(r.Context(), chi.URLParam(r, "projectId"))
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, BidsResponse{Count: len(bids), Bids: bids})
}

func (h *Handler) GetBid(w http.ResponseWriter, r *http.Request) {
	b, err := h.Service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, BidResponse{Bid: b})
}

func (h *Handler) CreateBid(w http.ResponseWriter, r *http.Request) {
	var dto CreateBidDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, r, err)
		return
	}

	b, err := h.Service.Create(r.Context(), internal.UserIDFromContext(r.Context()), dto)
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, BidMutationResponse{Message: "Bid created successfully", Bid: b})
}

func (h *Handler) UpdateBid(w http.ResponseWriter, r *http.Request) {
	var dto UpdateBidDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, r, err)
		return
	}

	b, err := h.Service.Update(r.Context(), chi.URLParam(r, "id"), dto)
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, BidMutationResponse{Message: "Bid updated successfully", Bid: b})
}

func (h *Handler) DeleteBid(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, MessageResponse{Message: "Bid deleted successfully"})
}

// DownloadQuote handles GET /api/bids/{id}/pdf
func (h *Handler) DownloadQuote(w http.ResponseWriter, r *http.Request) {
	b, err := h.Service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}

	doc, err := h.Renderer.Render(r.Context(), b)
	if err != nil {
		h.HandleServiceError(w, r, internal.NewInternalError("failed to render quote", err))
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="bid-%s.pdf"`, b.ID))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(doc); err != nil {
		h.Logger.Error("failed to write quote", "bid_id", b.ID, "error", err)
	}
}
