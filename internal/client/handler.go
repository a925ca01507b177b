package client

import (
	"context"
	"net/http"
	"strconv"

	"github.com/frahmantamala/sashbid/internal"
	"github.com/frahmantamala/sashbid/internal/transport"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	List(ctx context.Context, filter ListFilter) ([]*Client, error)
	Get(ctx context.Context, id string) (*Client, error)
	Create(ctx context.Context, actorID string, dto CreateClientDTO) (*Client, error)
	Update(ctx context.Context, id string, dto UpdateClientDTO) (*Client, error)
	Delete(ctx context.Context, id string) error
	AddContact(ctx context.Context, id string, contact ContactPerson) (*Client, error)
	RemoveContact(ctx context.Context, id string, index int) (*Client, error)
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

// ListClients handles GET /api/clients?search=
func (h *Handler) ListClients(w http.ResponseWriter, r *http.Request) {
	clients, err := h.Service.List(r.Context(), ListFilter{Search: r.URL.Query().Get("search")})
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, ClientsResponse{Count: len(clients), Clients: clients})
}

func (h *Handler) GetClient(w http.ResponseWriter, r *http.Request) {
	c, err := h.Service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, ClientResponse{Client: c})
}

func (h *Handler) CreateClient(w http.ResponseWriter, r *http.Request) {
	var dto CreateClientDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, r, err)
		return
	}

	c, err := h.Service.Create(r.Context(), internal.UserIDFromContext(r.Context()), dto)
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, ClientMutationResponse{Message: "Client created successfully", Client: c})
}

func (h *Handler) UpdateClient(w http.ResponseWriter, r *http.Request) {
	var dto UpdateClientDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, r, err)
		return
	}

	c, err := h.Service.Update(r.Context(), chi.URLParam(r, "id"), dto)
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, ClientMutationResponse{Message: "Client updated successfully", Client: c})
}

func (h *Handler) DeleteClient(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, MessageResponse{Message: "Client deleted successfully"})
}

// AddContact handles POST /api/clients/{id}/contacts
func (h *Handler) AddContact(w http.ResponseWriter, r *http.Request) {
	var contact ContactPerson
	if err := h.DecodeJSON(r, &contact); err != nil {
		h.HandleServiceError(w, r, err)
		return
	}

	c, err := h.Service.AddContact(r.Context(), chi.URLParam(r, "id"), contact)
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, ClientMutationResponse{Message: "Contact person added successfully", Client: c})
}

// RemoveContact handles DELETE /api/clients/{id}/contacts/{index}
func (h *Handler) RemoveContact(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		h.HandleServiceError(w, r, internal.NewValidationFieldError("index", "Contact index must be a number", internal.ErrCodeInvalidRequest))
		return
	}

	c, err := h.Service.RemoveContact(r.Context(), chi.URLParam(r, "id"), index)
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, ClientMutationResponse{Message: "Contact person removed successfully", Client: c})
}
