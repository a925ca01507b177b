package client_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/frahmantamala/sashbid/internal"
	"github.com/frahmantamala/sashbid/internal/client"
	"github.com/frahmantamala/sashbid/internal/transport"
	"github.com/frahmantamala/sashbid/pkg/logger"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type MockService struct {
	shouldFail  bool
	lastSearch  string
	lastActor   string
	lastIndex   int
	clients     map[string]*client.Client
	hasProjects bool
}

func NewMockService() *MockService {
	return &MockService{clients: map[string]*client.Client{}, lastIndex: -1}
}

func (m *MockService) List(ctx context.Context, filter client.ListFilter) ([]*client.Client, error) {
	if m.shouldFail {
		return nil, errors.New("connection reset")
	}
	m.lastSearch = filter.Search
	out := make([]*client.Client, 0, len(m.clients))
	for _, c := range m.clients {
		out = append(out, c)
	}
	return out, nil
}

func (m *MockService) Get(ctx context.Context, id string) (*client.Client, error) {
	c, ok := m.clients[id]
	if !ok {
		return nil, internal.ErrClientNotFound
	}
	return c, nil
}

func (m *MockService) Create(ctx context.Context, actorID string, dto client.CreateClientDTO) (*client.Client, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	m.lastActor = actorID
	c := &client.Client{ID: "c-new", Name: dto.Name, Email: dto.Email}
	m.clients[c.ID] = c
	return c, nil
}

func (m *MockService) Update(ctx context.Context, id string, dto client.UpdateClientDTO) (*client.Client, error) {
	c, err := m.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if dto.Name != nil {
		c.Name = *dto.Name
	}
	return c, nil
}

func (m *MockService) Delete(ctx context.Context, id string) error {
	if _, err := m.Get(ctx, id); err != nil {
		return err
	}
	if m.hasProjects {
		return internal.NewConflictError("Client has linked projects or bids", internal.ErrCodeHasDependents)
	}
	delete(m.clients, id)
	return nil
}

func (m *MockService) AddContact(ctx context.Context, id string, contact client.ContactPerson) (*client.Client, error) {
	c, err := m.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	c.ContactPersons = append(c.ContactPersons, contact)
	return c, nil
}

func (m *MockService) RemoveContact(ctx context.Context, id string, index int) (*client.Client, error) {
	c, err := m.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	m.lastIndex = index
	if index < 0 || index >= len(c.ContactPersons) {
		return nil, internal.ErrContactNotFound
	}
	c.ContactPersons = append(c.ContactPersons[:index], c.ContactPersons[index+1:]...)
	return c, nil
}

var _ = Describe("Client Handler", func() {
	var (
		mock   *MockService
		router *chi.Mux
	)

	do := func(method, path, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req = req.WithContext(internal.ContextWithPrincipal(req.Context(), internal.Principal{ID: "u-7", Role: "user"}))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	BeforeEach(func() {
		mock = NewMockService()
		mock.clients["c-1"] = &client.Client{
			ID:             "c-1",
			Name:           "Lakeside",
			ContactPersons: []client.ContactPerson{{Name: "Karen"}},
		}
		h := client.NewHandler(transport.NewBaseHandler(logger.Discard(), false), mock)

		router = chi.NewRouter()
		router.Get("/clients", h.ListClients)
		router.Post("/clients", h.CreateClient)
		router.Get("/clients/{id}", h.GetClient)
		router.Put("/clients/{id}", h.UpdateClient)
		router.Delete("/clients/{id}", h.DeleteClient)
		router.Post("/clients/{id}/contacts", h.AddContact)
		router.Delete("/clients/{id}/contacts/{index}", h.RemoveContact)
	})

	It("lists clients with the search term", func() {
		w := do(http.MethodGet, "/clients?search=lake", "")
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(mock.lastSearch).To(Equal("lake"))
		Expect(w.Body.String()).To(ContainSubstring(`"count":1`))
	})

	It("creates a client attributed to the caller", func() {
		body := `{"name":"Acme","email":"ACME@example.com","phone":"555","address":{"street":"1 Main","city":"X","state":"IL","zipCode":"1"}}`
		w := do(http.MethodPost, "/clients", body)
		Expect(w.Code).To(Equal(http.StatusCreated))
		Expect(mock.lastActor).To(Equal("u-7"))
		Expect(w.Body.String()).To(ContainSubstring("acme@example.com"))
	})

	It("returns 400 for an invalid email", func() {
		body := `{"name":"Acme","email":"nope","phone":"555","address":{"street":"1 Main","city":"X","state":"IL","zipCode":"1"}}`
		w := do(http.MethodPost, "/clients", body)
		Expect(w.Code).To(Equal(http.StatusBadRequest))
		Expect(w.Body.String()).To(ContainSubstring("INVALID_EMAIL"))
	})

	It("returns 404 for an unknown client", func() {
		Expect(do(http.MethodGet, "/clients/nope", "").Code).To(Equal(http.StatusNotFound))
	})

	It("updates a client", func() {
		w := do(http.MethodPut, "/clients/c-1", `{"name":"Lakeside Builders"}`)
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(ContainSubstring("Lakeside Builders"))
	})

	It("returns 409 when deleting a referenced client", func() {
		mock.hasProjects = true
		w := do(http.MethodDelete, "/clients/c-1", "")
		Expect(w.Code).To(Equal(http.StatusConflict))
		Expect(mock.clients).To(HaveKey("c-1"))
	})

	It("adds and removes contacts", func() {
		w := do(http.MethodPost, "/clients/c-1/contacts", `{"name":"Dave","position":"Site lead"}`)
		Expect(w.Code).To(Equal(http.StatusCreated))
		Expect(mock.clients["c-1"].ContactPersons).To(HaveLen(2))

		w = do(http.MethodDelete, "/clients/c-1/contacts/0", "")
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(mock.lastIndex).To(Equal(0))
		Expect(mock.clients["c-1"].ContactPersons[0].Name).To(Equal("Dave"))
	})

	It("rejects a non-numeric contact index", func() {
		w := do(http.MethodDelete, "/clients/c-1/contacts/first", "")
		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("maps unexpected failures to 500", func() {
		mock.shouldFail = true
		Expect(do(http.MethodGet, "/clients", "").Code).To(Equal(http.StatusInternalServerError))
	})
})
