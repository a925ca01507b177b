package project_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/frahmantamala/sashbid/internal"
	"github.com/frahmantamala/sashbid/internal/project"
	"github.com/frahmantamala/sashbid/internal/transport"
	"github.com/frahmantamala/sashbid/pkg/logger"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type MockService struct {
	shouldFail bool
	lastFilter project.ListFilter
	lastActor  string
	projects   map[string]*project.Project
}

func NewMockService() *MockService {
	return &MockService{projects: map[string]*project.Project{}}
}

func (m *MockService) SetShouldFail(fail bool) {
	m.shouldFail = fail
}

func (m *MockService) List(ctx context.Context, filter project.ListFilter) ([]*project.Project, error) {
	if m.shouldFail {
		return nil, errors.New("database down")
	}
	m.lastFilter = filter
	out := make([]*project.Project, 0, len(m.projects))
	for _, p := range m.projects {
		out = append(out, p)
	}
	return out, nil
}

func (m *MockService) Get(ctx context.Context, id string) (*project.Project, error) {
	p, ok := m.projects[id]
	if !ok {
		return nil, internal.ErrProjectNotFound
	}
	return p, nil
}

func (m *MockService) Create(ctx context.Context, actorID string, dto project.CreateProjectDTO) (*project.Project, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	m.lastActor = actorID
	p := &project.Project{ID: "p-new", Name: dto.Name, Status: project.StatusPending}
	m.projects[p.ID] = p
	return p, nil
}

func (m *MockService) Update(ctx context.Context, id string, dto project.UpdateProjectDTO) (*project.Project, error) {
	p, err := m.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if dto.Name != nil {
		p.Name = *dto.Name
	}
	return p, nil
}

func (m *MockService) Delete(ctx context.Context, id string) error {
	if _, ok := m.projects[id]; !ok {
		return internal.ErrProjectNotFound
	}
	delete(m.projects, id)
	return nil
}

var _ = Describe("Project Handler", func() {
	var (
		mock   *MockService
		router *chi.Mux
	)

	do := func(method, path, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req = req.WithContext(internal.ContextWithPrincipal(req.Context(), internal.Principal{ID: "u-1", Role: "manager"}))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	BeforeEach(func() {
		mock = NewMockService()
		mock.projects["p-1"] = &project.Project{ID: "p-1", Name: "Reno", Status: project.StatusPending}
		h := project.NewHandler(transport.NewBaseHandler(logger.Discard(), false), mock)

		router = chi.NewRouter()
		router.Get("/projects", h.ListProjects)
		router.Post("/projects", h.CreateProject)
		router.Get("/projects/{id}", h.GetProject)
		router.Put("/projects/{id}", h.UpdateProject)
		router.Delete("/projects/{id}", h.DeleteProject)
	})

	It("passes query filters to the service", func() {
		w := do(http.MethodGet, "/projects?status=completed&client=c-1&startDateFrom=2024-01-01&search=door", "")
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(mock.lastFilter.Status).To(Equal("completed"))
		Expect(mock.lastFilter.ClientID).To(Equal("c-1"))
		Expect(mock.lastFilter.Search).To(Equal("door"))
		Expect(mock.lastFilter.StartDateFrom).NotTo(BeNil())

		var resp project.ProjectsResponse
		Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
		Expect(resp.Count).To(Equal(1))
	})

	It("rejects a malformed date filter", func() {
		w := do(http.MethodGet, "/projects?startDateTo=yesterday", "")
		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("creates a project attributed to the caller", func() {
		w := do(http.MethodPost, "/projects", `{"name":"Porch","client":"c-1"}`)
		Expect(w.Code).To(Equal(http.StatusCreated))
		Expect(mock.lastActor).To(Equal("u-1"))
		Expect(w.Body.String()).To(ContainSubstring("Project created successfully"))
	})

	It("returns 400 when required fields are missing", func() {
		w := do(http.MethodPost, "/projects", `{"value":10}`)
		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("returns 404 for an unknown project", func() {
		w := do(http.MethodGet, "/projects/nope", "")
		Expect(w.Code).To(Equal(http.StatusNotFound))
	})

	It("updates and deletes", func() {
		w := do(http.MethodPut, "/projects/p-1", `{"name":"Renovation"}`)
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(ContainSubstring("Renovation"))

		w = do(http.MethodDelete, "/projects/p-1", "")
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(mock.projects).To(BeEmpty())
	})

	It("maps unexpected failures to 500", func() {
		mock.SetShouldFail(true)
		w := do(http.MethodGet, "/projects", "")
		Expect(w.Code).To(Equal(http.StatusInternalServerError))
	})
})
