package bid_test

import (
	"context"
	"testing"

	"github.com/frahmantamala/sashbid/internal"
	"github.com/frahmantamala/sashbid/internal/bid"
	bidPostgres "github.com/frahmantamala/sashbid/internal/bid/postgres"
	"github.com/frahmantamala/sashbid/internal/client"
	clientPostgres "github.com/frahmantamala/sashbid/internal/client/postgres"
	userDatamodel "github.com/frahmantamala/sashbid/internal/core/datamodel/user"
	"github.com/frahmantamala/sashbid/internal/project"
	projectPostgres "github.com/frahmantamala/sashbid/internal/project/postgres"
	"github.com/frahmantamala/sashbid/internal/testutil"
	"github.com/frahmantamala/sashbid/pkg/logger"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"
)

func TestBid(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Bid Suite")
}

var _ = Describe("Bid Service", func() {
	var (
		service  *bid.Service
		projects *project.Service
		db       *gorm.DB
		ctx      context.Context
		acme     *client.Client
		reno     *project.Project
		creator  *userDatamodel.User
	)

	newBid := func(items ...bid.LineItemDTO) bid.CreateBidDTO {
		return bid.CreateBidDTO{
			Project: reno.ID,
			Client:  acme.ID,
			Items:   items,
			DueDate: "2024-07-01",
		}
	}

	BeforeEach(func() {
		var err error
		db, err = testutil.OpenDB()
		Expect(err).NotTo(HaveOccurred())
		ctx = context.Background()

		creator = &userDatamodel.User{Name: "Estimator", Email: "est@example.com", PasswordHash: "x", Role: "manager"}
		Expect(db.Create(creator).Error).To(Succeed())

		clients := client.NewService(clientPostgres.NewClientRepository(db), logger.Discard())
		projects = project.NewService(projectPostgres.NewProjectRepository(db), clients, logger.Discard())
		service = bid.NewService(bidPostgres.NewBidRepository(db), projects, clients, logger.Discard())

		acme, err = clients.Create(ctx, creator.ID, client.CreateClientDTO{
			Name:    "Acme",
			Email:   "a@acme.com",
			Phone:   "555-0100",
			Address: client.Address{Street: "1 Main St", City: "Springfield", State: "IL", ZipCode: "62701"},
		})
		Expect(err).NotTo(HaveOccurred())
		reno, err = projects.Create(ctx, creator.ID, project.CreateProjectDTO{Name: "Reno", Client: acme.ID})
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("Create", func() {
		It("computes line totals, subtotal and tax-inclusive total", func() {
			dto := newBid(
				bid.LineItemDTO{Description: "Double-hung window", Quantity: 2, UnitPrice: 100},
				bid.LineItemDTO{Description: "Entry door", Quantity: 1, UnitPrice: 50},
			)
			dto.Tax = 10

			b, err := service.Create(ctx, creator.ID, dto)
			Expect(err).NotTo(HaveOccurred())
			Expect(b.Items[0].Total).To(Equal(200.0))
			Expect(b.Items[1].Total).To(Equal(50.0))
			Expect(b.Subtotal).To(Equal(250.0))
			Expect(b.Total).To(Equal(275.0))
			Expect(b.Status).To(Equal(bid.StatusDraft))
		})

		It("populates project, client and createdBy", func() {
			b, err := service.Create(ctx, creator.ID, newBid(bid.LineItemDTO{Description: "Window", Quantity: 1, UnitPrice: 10}))
			Expect(err).NotTo(HaveOccurred())
			Expect(b.Project.Name).To(Equal("Reno"))
			Expect(b.Client.Name).To(Equal("Acme"))
			Expect(b.CreatedBy.Name).To(Equal("Estimator"))
		})

		It("rejects a bid with no items", func() {
			_, err := service.Create(ctx, creator.ID, newBid())
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.StatusCode).To(Equal(400))
			Expect(appErr.Details.(internal.ValidationErrors).Errors[0].Code).To(Equal(string(internal.ErrCodeNoItems)))
		})

		It("rejects negative quantities, prices and tax", func() {
			dto := newBid(bid.LineItemDTO{Description: "Window", Quantity: -1, UnitPrice: -5})
			dto.Tax = -2
			_, err := service.Create(ctx, creator.ID, dto)
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Details.(internal.ValidationErrors).Errors).To(HaveLen(3))
		})

		It("requires a due date", func() {
			dto := newBid(bid.LineItemDTO{Description: "Window", Quantity: 1, UnitPrice: 10})
			dto.DueDate = ""
			_, err := service.Create(ctx, creator.ID, dto)
			Expect(err).To(HaveOccurred())
		})

		It("returns 404 for unknown references", func() {
			dto := newBid(bid.LineItemDTO{Description: "Window", Quantity: 1, UnitPrice: 10})
			dto.Project = "missing"
			_, err := service.Create(ctx, creator.ID, dto)
			Expect(err).To(MatchError(internal.ErrProjectNotFound))

			dto = newBid(bid.LineItemDTO{Description: "Window", Quantity: 1, UnitPrice: 10})
			dto.Client = "missing"
			_, err = service.Create(ctx, creator.ID, dto)
			Expect(err).To(MatchError(internal.ErrClientNotFound))
		})
	})

	Describe("Update", func() {
		It("recomputes totals when items or tax change", func() {
			b, err := service.Create(ctx, creator.ID, newBid(bid.LineItemDTO{Description: "Window", Quantity: 1, UnitPrice: 100}))
			Expect(err).NotTo(HaveOccurred())

			items := []bid.LineItemDTO{{Description: "Window", Quantity: 3, UnitPrice: 100}}
			tax := 5.0
			status := bid.StatusSent
			updated, err := service.Update(ctx, b.ID, bid.UpdateBidDTO{Items: &items, Tax: &tax, Status: &status})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Subtotal).To(Equal(300.0))
			Expect(updated.Total).To(Equal(315.0))
			Expect(updated.Status).To(Equal(bid.StatusSent))

			reloaded, err := service.Get(ctx, b.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(reloaded.Total).To(Equal(315.0))
		})

		It("rejects emptying the item list", func() {
			b, _ := service.Create(ctx, creator.ID, newBid(bid.LineItemDTO{Description: "Window", Quantity: 1, UnitPrice: 100}))
			empty := []bid.LineItemDTO{}
			_, err := service.Update(ctx, b.ID, bid.UpdateBidDTO{Items: &empty})
			Expect(err).To(HaveOccurred())
		})

		It("returns 404 for a missing bid", func() {
			_, err := service.Update(ctx, "missing", bid.UpdateBidDTO{})
			Expect(err).To(MatchError(internal.ErrBidNotFound))
		})
	})

	Describe("Deleted creator", func() {
		It("keeps projects and bids editable", func() {
			b, err := service.Create(ctx, creator.ID, newBid(bid.LineItemDTO{Description: "Window", Quantity: 1, UnitPrice: 100}))
			Expect(err).NotTo(HaveOccurred())

			Expect(db.Exec("PRAGMA foreign_keys = ON").Error).To(Succeed())
			Expect(db.Delete(&userDatamodel.User{}, "id = ?", creator.ID).Error).To(Succeed())

			name := "Reno phase 2"
			p, err := projects.Update(ctx, reno.ID, project.UpdateProjectDTO{Name: &name})
			Expect(err).NotTo(HaveOccurred())
			Expect(p.Name).To(Equal(name))
			Expect(p.CreatedBy).To(BeNil())

			notes := "Revised after site visit"
			updated, err := service.Update(ctx, b.ID, bid.UpdateBidDTO{Notes: &notes})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Notes).To(Equal(notes))
			Expect(updated.CreatedBy).To(BeNil())
		})
	})

	Describe("List", func() {
		BeforeEach(func() {
			small := newBid(bid.LineItemDTO{Description: "Hinge", Quantity: 1, UnitPrice: 20})
			large := newBid(bid.LineItemDTO{Description: "Bay window", Quantity: 2, UnitPrice: 900})
			large.Status = bid.StatusAccepted
			_, err := service.Create(ctx, creator.ID, small)
			Expect(err).NotTo(HaveOccurred())
			_, err = service.Create(ctx, creator.ID, large)
			Expect(err).NotTo(HaveOccurred())
		})

		It("filters by total range and status", func() {
			min := 100.0
			bids, err := service.List(ctx, bid.ListFilter{MinTotal: &min})
			Expect(err).NotTo(HaveOccurred())
			Expect(bids).To(HaveLen(1))
			Expect(bids[0].Total).To(Equal(1800.0))

			max := 100.0
			bids, err = service.List(ctx, bid.ListFilter{MaxTotal: &max})
			Expect(err).NotTo(HaveOccurred())
			Expect(bids).To(HaveLen(1))

			bids, err = service.List(ctx, bid.ListFilter{Status: bid.StatusAccepted})
			Expect(err).NotTo(HaveOccurred())
			Expect(bids).To(HaveLen(1))
		})

		It("lists a project's bids and 404s for an unknown project", func() {
			bids, err := service.ListByProject(ctx, reno.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(bids).To(HaveLen(2))

			_, err = service.ListByProject(ctx, "missing")
			Expect(err).To(MatchError(internal.ErrProjectNotFound))
		})
	})

	Describe("Delete", func() {
		It("removes the bid", func() {
			b, _ := service.Create(ctx, creator.ID, newBid(bid.LineItemDTO{Description: "Window", Quantity: 1, UnitPrice: 100}))
			Expect(service.Delete(ctx, b.ID)).To(Succeed())
			Expect(service.Delete(ctx, b.ID)).To(MatchError(internal.ErrBidNotFound))
		})
	})
})
