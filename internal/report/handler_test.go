package report_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"

	"github.com/frahmantamala/sashbid/internal/report"
	"github.com/frahmantamala/sashbid/internal/transport"
	"github.com/frahmantamala/sashbid/pkg/logger"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type MockService struct {
	shouldFail bool
	lastMonths int
	lastLimit  int
}

func (m *MockService) SetShouldFail(fail bool) {
	m.shouldFail = fail
}

func (m *MockService) err() error {
	if m.shouldFail {
		return errors.New("query failed")
	}
	return nil
}

func (m *MockService) Dashboard(ctx context.Context) (*report.Dashboard, error) {
	if err := m.err(); err != nil {
		return nil, err
	}
	return &report.Dashboard{TotalBids: 3, BidData: []report.MonthlyBids{}}, nil
}

func (m *MockService) MonthlyBids(ctx context.Context, months int) ([]report.MonthlyBids, error) {
	m.lastMonths = months
	return []report.MonthlyBids{}, m.err()
}

func (m *MockService) ProjectTimeline(ctx context.Context, months int) ([]report.TimelinePoint, error) {
	m.lastMonths = months
	return []report.TimelinePoint{}, m.err()
}

func (m *MockService) BidStatusDistribution(ctx context.Context) ([]report.Slice, error) {
	return []report.Slice{{Name: "Draft", Value: 100}}, m.err()
}

func (m *MockService) ProjectStatusDistribution(ctx context.Context) ([]report.Slice, error) {
	return []report.Slice{}, m.err()
}

func (m *MockService) InventoryByCategory(ctx context.Context) ([]report.CategoryValue, error) {
	return []report.CategoryValue{}, m.err()
}

func (m *MockService) TopClients(ctx context.Context, limit int) ([]report.TopClient, error) {
	m.lastLimit = limit
	return []report.TopClient{}, m.err()
}

func (m *MockService) ClientActivity(ctx context.Context, limit int) ([]report.ClientActivity, error) {
	m.lastLimit = limit
	return []report.ClientActivity{}, m.err()
}

func (m *MockService) Bids(ctx context.Context) ([]report.BidRow, error) {
	return []report.BidRow{}, m.err()
}

func (m *MockService) Projects(ctx context.Context) ([]report.ProjectRow, error) {
	return []report.ProjectRow{}, m.err()
}

func (m *MockService) Inventory(ctx context.Context) ([]report.InventoryRow, error) {
	return []report.InventoryRow{}, m.err()
}

func (m *MockService) Clients(ctx context.Context) ([]report.ClientRow, error) {
	return []report.ClientRow{}, m.err()
}

func (m *MockService) ExportInventory(ctx context.Context) ([]byte, error) {
	if err := m.err(); err != nil {
		return nil, err
	}
	return report.InventoryWorkbook([]report.InventoryRow{{SKU: "DR-1", Name: "Door", Type: "door", Price: 10, Quantity: 3}})
}

var _ = Describe("Report Handler", func() {
	var (
		mock   *MockService
		router *chi.Mux
	)

	get := func(path string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		return w
	}

	BeforeEach(func() {
		mock = &MockService{}
		h := report.NewHandler(transport.NewBaseHandler(logger.Discard(), false), mock)
		router = chi.NewRouter()
		router.Get("/reports/dashboard", h.Dashboard)
		router.Get("/reports/bids/monthly", h.MonthlyBids)
		router.Get("/reports/bids/status", h.BidStatus)
		router.Get("/reports/clients/top", h.TopClients)
		router.Get("/reports/inventory/export", h.ExportInventory)
	})

	It("renders the dashboard", func() {
		w := get("/reports/dashboard")
		Expect(w.Code).To(Equal(http.StatusOK))

		var d report.Dashboard
		Expect(json.NewDecoder(w.Body).Decode(&d)).To(Succeed())
		Expect(d.TotalBids).To(Equal(3))
	})

	It("passes months and limit through, defaulting to zero", func() {
		Expect(get("/reports/bids/monthly?months=12").Code).To(Equal(http.StatusOK))
		Expect(mock.lastMonths).To(Equal(12))

		Expect(get("/reports/bids/monthly").Code).To(Equal(http.StatusOK))
		Expect(mock.lastMonths).To(Equal(0))

		Expect(get("/reports/clients/top?limit=1").Code).To(Equal(http.StatusOK))
		Expect(mock.lastLimit).To(Equal(1))
	})

	It("rejects non-positive months and limits", func() {
		Expect(get("/reports/bids/monthly?months=0").Code).To(Equal(http.StatusBadRequest))
		Expect(get("/reports/clients/top?limit=abc").Code).To(Equal(http.StatusBadRequest))
	})

	It("returns distributions as bare arrays", func() {
		w := get("/reports/bids/status")
		Expect(w.Body.String()).To(HavePrefix(`[{"name":"Draft","value":100}]`))
	})

	It("streams the inventory workbook", func() {
		w := get("/reports/inventory/export")
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Header().Get("Content-Disposition")).To(ContainSubstring("inventory.xlsx"))
		Expect(w.Body.Bytes()[:2]).To(Equal([]byte("PK")))
	})

	It("maps failures to 500", func() {
		mock.SetShouldFail(true)
		Expect(get("/reports/dashboard").Code).To(Equal(http.StatusInternalServerError))
		Expect(get("/reports/inventory/export").Code).To(Equal(http.StatusInternalServerError))
	})
})
