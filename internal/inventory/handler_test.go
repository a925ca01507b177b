package inventory_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/frahmantamala/sashbid/internal/core/events"
	"github.com/frahmantamala/sashbid/internal/inventory"
	inventoryPostgres "github.com/frahmantamala/sashbid/internal/inventory/postgres"
	"github.com/frahmantamala/sashbid/internal/testutil"
	"github.com/frahmantamala/sashbid/internal/transport"
	"github.com/frahmantamala/sashbid/pkg/logger"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Inventory Handler Integration", func() {
	var (
		router *chi.Mux
		item   *inventory.Item
		lowHit int
	)

	do := func(method, path, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	BeforeEach(func() {
		db, err := testutil.OpenDB()
		Expect(err).NotTo(HaveOccurred())

		bus := events.NewEventBus(logger.Discard())
		lowHit = 0
		bus.Subscribe(events.EventTypeInventoryLowStock, func(context.Context, events.Event) error {
			lowHit++
			return nil
		})

		service := inventory.NewService(inventoryPostgres.NewInventoryRepository(db), bus, logger.Discard())
		h := inventory.NewHandler(transport.NewBaseHandler(logger.Discard(), false), service)

		item, err = service.Create(context.Background(), "", validItem("Window A", "WIN-A"))
		Expect(err).NotTo(HaveOccurred())

		router = chi.NewRouter()
		router.Get("/inventory", h.ListItems)
		router.Get("/inventory/low-stock", h.ListLowStock)
		router.Post("/inventory", h.CreateItem)
		router.Get("/inventory/{id}", h.GetItem)
		router.Patch("/inventory/{id}/quantity", h.UpdateQuantity)
		router.Delete("/inventory/{id}", h.DeleteItem)
	})

	It("rejects a negative adjustment result with 400 and leaves stock alone", func() {
		w := do(http.MethodPatch, "/inventory/"+item.ID+"/quantity", `{"adjustment":-50}`)
		Expect(w.Code).To(Equal(http.StatusBadRequest))

		w = do(http.MethodGet, "/inventory/"+item.ID, "")
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(ContainSubstring(`"quantity":10`))
	})

	It("rejects a body with neither quantity nor adjustment", func() {
		w := do(http.MethodPatch, "/inventory/"+item.ID+"/quantity", `{}`)
		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("publishes low stock through the event bus", func() {
		w := do(http.MethodPatch, "/inventory/"+item.ID+"/quantity", `{"quantity":1}`)
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(lowHit).To(Equal(1))

		w = do(http.MethodGet, "/inventory/low-stock", "")
		Expect(w.Body.String()).To(ContainSubstring(`"count":1`))
	})

	It("validates numeric filters", func() {
		Expect(do(http.MethodGet, "/inventory?minQuantity=-1", "").Code).To(Equal(http.StatusBadRequest))
		Expect(do(http.MethodGet, "/inventory?maxPrice=cheap", "").Code).To(Equal(http.StatusBadRequest))
		Expect(do(http.MethodGet, "/inventory?minQuantity=0&maxPrice=1000", "").Code).To(Equal(http.StatusOK))
	})

	It("returns 409 for a duplicate SKU", func() {
		body := `{"name":"Copy","type":"window","description":"dup","sku":"WIN-A","price":1,"cost":1}`
		Expect(do(http.MethodPost, "/inventory", body).Code).To(Equal(http.StatusConflict))
	})

	It("deletes and then 404s", func() {
		Expect(do(http.MethodDelete, "/inventory/"+item.ID, "").Code).To(Equal(http.StatusOK))
		Expect(do(http.MethodGet, "/inventory/"+item.ID, "").Code).To(Equal(http.StatusNotFound))
	})
})
