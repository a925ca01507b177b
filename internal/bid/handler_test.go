package bid_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/frahmantamala/sashbid/internal"
	"github.com/frahmantamala/sashbid/internal/bid"
	bidPostgres "github.com/frahmantamala/sashbid/internal/bid/postgres"
	"github.com/frahmantamala/sashbid/internal/client"
	clientPostgres "github.com/frahmantamala/sashbid/internal/client/postgres"
	bidDatamodel "github.com/frahmantamala/sashbid/internal/core/datamodel/bid"
	"github.com/frahmantamala/sashbid/internal/project"
	projectPostgres "github.com/frahmantamala/sashbid/internal/project/postgres"
	"github.com/frahmantamala/sashbid/internal/testutil"
	"github.com/frahmantamala/sashbid/internal/transport"
	"github.com/frahmantamala/sashbid/pkg/logger"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"
)

type MockService struct {
	lastFilter bid.ListFilter
	bids       map[string]*bid.Bid
}

func (m *MockService) List(ctx context.Context, filter bid.ListFilter) ([]*bid.Bid, error) {
	m.lastFilter = filter
	return []*bid.Bid{}, nil
}

func (m *MockService) ListByProject(ctx context.Context, projectID string) ([]*bid.Bid, error) {
	if projectID != "p-1" {
		return nil, internal.ErrProjectNotFound
	}
	return []*bid.Bid{m.bids["b-1"]}, nil
}

func (m *MockService) Get(ctx context.Context, id string) (*bid.Bid, error) {
	b, ok := m.bids[id]
	if !ok {
		return nil, internal.ErrBidNotFound
	}
	return b, nil
}

func (m *MockService) Create(ctx context.Context, actorID string, dto bid.CreateBidDTO) (*bid.Bid, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	return &bid.Bid{ID: "b-new", Status: bid.StatusDraft}, nil
}

func (m *MockService) Update(ctx context.Context, id string, dto bid.UpdateBidDTO) (*bid.Bid, error) {
	return m.Get(ctx, id)
}

func (m *MockService) Delete(ctx context.Context, id string) error {
	_, err := m.Get(ctx, id)
	return err
}

type MockRenderer struct {
	shouldFail bool
}

func (r *MockRenderer) Render(ctx context.Context, b *bid.Bid) ([]byte, error) {
	if r.shouldFail {
		return nil, errors.New("font missing")
	}
	return []byte("%PDF-1.3 " + b.ID), nil
}

var _ = Describe("Bid Handler", func() {
	var (
		mock     *MockService
		renderer *MockRenderer
		router   *chi.Mux
	)

	do := func(method, path, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	BeforeEach(func() {
		mock = &MockService{bids: map[string]*bid.Bid{"b-1": {ID: "b-1", Status: bid.StatusSent}}}
		renderer = &MockRenderer{}
		h := bid.NewHandler(transport.NewBaseHandler(logger.Discard(), false), mock, renderer)

		router = chi.NewRouter()
		router.Get("/bids", h.ListBids)
		router.Post("/bids", h.CreateBid)
		router.Get("/bids/project/{projectId}", h.ListProjectBids)
		router.Get("/bids/{id}", h.GetBid)
		router.Get("/bids/{id}/pdf", h.DownloadQuote)
		router.Delete("/bids/{id}", h.DeleteBid)
	})

	It("parses total range filters", func() {
		w := do(http.MethodGet, "/bids?status=sent&minTotal=10.5&maxTotal=99", "")
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(mock.lastFilter.Status).To(Equal("sent"))
		Expect(*mock.lastFilter.MinTotal).To(Equal(10.5))
		Expect(*mock.lastFilter.MaxTotal).To(Equal(99.0))
	})

	It("rejects a non-numeric total filter", func() {
		w := do(http.MethodGet, "/bids?minTotal=lots", "")
		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("rejects a bid without items", func() {
		w := do(http.MethodPost, "/bids", `{"project":"p-1","client":"c-1","dueDate":"2024-07-01","items":[]}`)
		Expect(w.Code).To(Equal(http.StatusBadRequest))
		Expect(w.Body.String()).To(ContainSubstring("NO_ITEMS"))
	})

	It("creates a valid bid", func() {
		w := do(http.MethodPost, "/bids", `{"project":"p-1","client":"c-1","dueDate":"2024-07-01","items":[{"description":"Door","quantity":1,"unitPrice":10}]}`)
		Expect(w.Code).To(Equal(http.StatusCreated))
	})

	It("lists bids for a project and 404s for an unknown one", func() {
		Expect(do(http.MethodGet, "/bids/project/p-1", "").Code).To(Equal(http.StatusOK))
		Expect(do(http.MethodGet, "/bids/project/p-9", "").Code).To(Equal(http.StatusNotFound))
	})

	It("serves the quote as a PDF attachment", func() {
		w := do(http.MethodGet, "/bids/b-1/pdf", "")
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Header().Get("Content-Type")).To(Equal("application/pdf"))
		Expect(w.Header().Get("Content-Disposition")).To(ContainSubstring("bid-b-1.pdf"))
		Expect(w.Body.String()).To(HavePrefix("%PDF"))
	})

	It("returns 404 for the quote of an unknown bid", func() {
		Expect(do(http.MethodGet, "/bids/nope/pdf", "").Code).To(Equal(http.StatusNotFound))
	})

	It("returns 500 when rendering fails", func() {
		renderer.shouldFail = true
		Expect(do(http.MethodGet, "/bids/b-1/pdf", "").Code).To(Equal(http.StatusInternalServerError))
	})
})

type bidBody struct {
	Bid struct {
		ID    string `json:"id"`
		Items []struct {
			Quantity float64 `json:"quantity"`
			Total    float64 `json:"total"`
		} `json:"items"`
		Subtotal float64 `json:"subtotal"`
		Total    float64 `json:"total"`
	} `json:"bid"`
}

var _ = Describe("Bid Handler totals", func() {
	var (
		db     *gorm.DB
		router *chi.Mux
		acme   *client.Client
		reno   *project.Project
	)

	do := func(method, path, body string) (*httptest.ResponseRecorder, bidBody) {
		req := httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		var out bidBody
		if w.Code < http.StatusBadRequest {
			Expect(json.Unmarshal(w.Body.Bytes(), &out)).To(Succeed())
		}
		return w, out
	}

	BeforeEach(func() {
		var err error
		db, err = testutil.OpenDB()
		Expect(err).NotTo(HaveOccurred())
		ctx := context.Background()

		clients := client.NewService(clientPostgres.NewClientRepository(db), logger.Discard())
		projects := project.NewService(projectPostgres.NewProjectRepository(db), clients, logger.Discard())
		service := bid.NewService(bidPostgres.NewBidRepository(db), projects, clients, logger.Discard())

		acme, err = clients.Create(ctx, "", client.CreateClientDTO{
			Name:    "Acme",
			Email:   "a@acme.com",
			Phone:   "555-0100",
			Address: client.Address{Street: "1 Main St", City: "Springfield", State: "IL", ZipCode: "62701"},
		})
		Expect(err).NotTo(HaveOccurred())
		reno, err = projects.Create(ctx, "", project.CreateProjectDTO{Name: "Reno", Client: acme.ID})
		Expect(err).NotTo(HaveOccurred())

		h := bid.NewHandler(transport.NewBaseHandler(logger.Discard(), false), service, &MockRenderer{})
		router = chi.NewRouter()
		router.Post("/bids", h.CreateBid)
		router.Get("/bids/{id}", h.GetBid)
		router.Put("/bids/{id}", h.UpdateBid)
	})

	stored := func(id string) bidDatamodel.Bid {
		var m bidDatamodel.Bid
		Expect(db.First(&m, "id = ?", id).Error).To(Succeed())
		return m
	}

	It("ignores supplied totals on create and update", func() {
		body := fmt.Sprintf(`{"project":%q,"client":%q,"dueDate":"2024-07-01","tax":8,"subtotal":1,"total":2,
			"items":[{"description":"Trim","quantity":2.5,"unitPrice":40,"total":9999},
			         {"description":"Caulk","quantity":3,"unitPrice":19.99,"total":1}]}`, reno.ID, acme.ID)
		w, created := do(http.MethodPost, "/bids", body)
		Expect(w.Code).To(Equal(http.StatusCreated))
		Expect(created.Bid.Items).To(HaveLen(2))
		Expect(created.Bid.Items[0].Quantity).To(Equal(2.5))
		Expect(created.Bid.Items[0].Total).To(BeNumerically("~", 100, 1e-9))
		Expect(created.Bid.Items[1].Total).To(BeNumerically("~", 59.97, 1e-9))
		Expect(created.Bid.Subtotal).To(BeNumerically("~", 159.97, 1e-9))
		Expect(created.Bid.Total).To(BeNumerically("~", 172.7676, 1e-9))

		m := stored(created.Bid.ID)
		Expect(m.Items[0].Total).To(BeNumerically("~", 100, 1e-9))
		Expect(m.Subtotal).To(BeNumerically("~", 159.97, 1e-9))
		Expect(m.Total).To(BeNumerically("~", 172.7676, 1e-9))

		w, updated := do(http.MethodPut, "/bids/"+created.Bid.ID,
			`{"tax":10,"subtotal":5,"total":5,"items":[{"description":"Door","quantity":4,"unitPrice":125,"total":0}]}`)
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(updated.Bid.Items).To(HaveLen(1))
		Expect(updated.Bid.Items[0].Total).To(Equal(500.0))
		Expect(updated.Bid.Subtotal).To(Equal(500.0))
		Expect(updated.Bid.Total).To(Equal(550.0))

		m = stored(created.Bid.ID)
		Expect(m.Items[0].Total).To(Equal(500.0))
		Expect(m.Subtotal).To(Equal(500.0))
		Expect(m.Total).To(Equal(550.0))

		w, fetched := do(http.MethodGet, "/bids/"+created.Bid.ID, "")
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(fetched.Bid.Total).To(Equal(550.0))
	})

	It("rejects a quantity below one", func() {
		body := fmt.Sprintf(`{"project":%q,"client":%q,"dueDate":"2024-07-01",
			"items":[{"description":"Trim","quantity":0.5,"unitPrice":40}]}`, reno.ID, acme.ID)
		w, _ := do(http.MethodPost, "/bids", body)
		Expect(w.Code).To(Equal(http.StatusBadRequest))
		Expect(w.Body.String()).To(ContainSubstring("INVALID_AMOUNT"))
	})
})
