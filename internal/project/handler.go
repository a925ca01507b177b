package project

import (
	"context"
	"net/http"

	"github.com/frahmantamala/sashbid/internal"
	"github.com/frahmantamala/sashbid/internal/core/common/validation"
	"github.com/frahmantamala/sashbid/internal/transport"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	List(ctx context.Context, filter ListFilter) ([]*Project, error)
	Get(ctx context.Context, id string) (*Project, error)
	Create(ctx context.Context, actorID string, dto CreateProjectDTO) (*Project, error)
	Update(ctx context.Context, id string, dto UpdateProjectDTO) (*Project, error)
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

// ListProjects handles GET /api/projects?status=&client=&startDateFrom=&startDateTo=&search=
func (h *Handler) ListProjects(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := ListFilter{
		Status:   q.Get("status"),
		ClientID: q.Get("client"),
		Search:   q.Get("search"),
	}

	var verr *internal.AppError
	if filter.StartDateFrom, verr = validation.ParseDate("startDateFrom", q.Get("startDateFrom")); verr != nil {
		h.HandleServiceError(w, r, verr)
		return
	}
	if filter.StartDateTo, verr = validation.ParseDate("startDateTo", q.Get("startDateTo")); verr != nil {
		h.HandleServiceError(w, r, verr)
		return
	}

	projects, err := h.Service.List(r.Context(), filter)
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, ProjectsResponse{Count: len(projects), Projects: projects})
}

func (h *Handler) GetProject(w http.ResponseWriter, r *http.Request) {
	p, err := h.Service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, ProjectResponse{Project: p})
}

func (h *Handler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var dto CreateProjectDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, r, err)
		return
	}

	p, err := h.Service.Create(r.Context(), internal.UserIDFromContext(r.Context()), dto)
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, ProjectMutationResponse{Message: "Project created successfully", Project: p})
}

func (h *Handler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	var dto UpdateProjectDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, r, err)
		return
	}

	p, err := h.Service.Update(r.Context(), chi.URLParam(r, "id"), dto)
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, ProjectMutationResponse{Message: "Project updated successfully", Project: p})
}

func (h *Handler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, MessageResponse{Message: "Project deleted successfully"})
}
