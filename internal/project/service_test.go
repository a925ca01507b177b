package project_test

import (
	"context"
	"testing"
	"time"

	"github.com/frahmantamala/sashbid/internal"
	"github.com/frahmantamala/sashbid/internal/client"
	clientPostgres "github.com/frahmantamala/sashbid/internal/client/postgres"
	bidDatamodel "github.com/frahmantamala/sashbid/internal/core/datamodel/bid"
	"github.com/frahmantamala/sashbid/internal/project"
	projectPostgres "github.com/frahmantamala/sashbid/internal/project/postgres"
	"github.com/frahmantamala/sashbid/internal/testutil"
	"github.com/frahmantamala/sashbid/pkg/logger"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"
)

func TestProject(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Project Suite")
}

func newClient(ctx context.Context, svc *client.Service, name, email string) *client.Client {
	c, err := svc.Create(ctx, "", client.CreateClientDTO{
		Name:  name,
		Email: email,
		Phone: "555-0100",
		Address: client.Address{
			Street:  "1 Main St",
			City:    "Springfield",
			State:   "IL",
			ZipCode: "62701",
		},
	})
	Expect(err).NotTo(HaveOccurred())
	return c
}

var _ = Describe("Project Service", func() {
	var (
		db      *gorm.DB
		clients *client.Service
		service *project.Service
		ctx     context.Context
		acme    *client.Client
	)

	BeforeEach(func() {
		var err error
		db, err = testutil.OpenDB()
		Expect(err).NotTo(HaveOccurred())
		ctx = context.Background()

		clients = client.NewService(clientPostgres.NewClientRepository(db), logger.Discard())
		service = project.NewService(projectPostgres.NewProjectRepository(db), clients, logger.Discard())
		acme = newClient(ctx, clients, "Acme", "a@acme.com")
	})

	Describe("Create", func() {
		It("defaults status to pending and populates the client", func() {
			p, err := service.Create(ctx, "", project.CreateProjectDTO{Name: "Kitchen windows", Client: acme.ID, Value: 1200})
			Expect(err).NotTo(HaveOccurred())
			Expect(p.Status).To(Equal(project.StatusPending))
			Expect(p.Client).NotTo(BeNil())
			Expect(p.Client.Name).To(Equal("Acme"))
		})

		It("returns 404 when the client does not exist", func() {
			_, err := service.Create(ctx, "", project.CreateProjectDTO{Name: "Orphan", Client: "missing"})
			Expect(err).To(MatchError(internal.ErrClientNotFound))
		})

		It("rejects an end date before the start date", func() {
			_, err := service.Create(ctx, "", project.CreateProjectDTO{
				Name:      "Backwards",
				Client:    acme.ID,
				StartDate: "2024-05-10",
				EndDate:   "2024-05-01",
			})
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.StatusCode).To(Equal(400))
			Expect(appErr.Details.(internal.ValidationErrors).Errors[0].Field).To(Equal("endDate"))
		})

		It("rejects an unknown status and a negative value", func() {
			_, err := service.Create(ctx, "", project.CreateProjectDTO{Name: "Bad", Client: acme.ID, Status: "paused", Value: -1})
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Details.(internal.ValidationErrors).Errors).To(HaveLen(2))
		})
	})

	Describe("Update", func() {
		It("re-validates the schedule against stored dates", func() {
			p, err := service.Create(ctx, "", project.CreateProjectDTO{Name: "Reno", Client: acme.ID, StartDate: "2024-03-01"})
			Expect(err).NotTo(HaveOccurred())

			end := "2024-02-01"
			_, err = service.Update(ctx, p.ID, project.UpdateProjectDTO{EndDate: &end})
			Expect(err).To(HaveOccurred())

			end = "2024-04-01"
			status := project.StatusInProgress
			updated, err := service.Update(ctx, p.ID, project.UpdateProjectDTO{EndDate: &end, Status: &status})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Status).To(Equal(project.StatusInProgress))
			Expect(updated.EndDate.Equal(time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC))).To(BeTrue())
		})

		It("re-validates a changed client reference", func() {
			p, _ := service.Create(ctx, "", project.CreateProjectDTO{Name: "Reno", Client: acme.ID})
			other := "missing"
			_, err := service.Update(ctx, p.ID, project.UpdateProjectDTO{Client: &other})
			Expect(err).To(MatchError(internal.ErrClientNotFound))
		})

		It("moves the project to another client", func() {
			p, _ := service.Create(ctx, "", project.CreateProjectDTO{Name: "Reno", Client: acme.ID})
			globex := newClient(ctx, clients, "Globex", "g@globex.com")
			updated, err := service.Update(ctx, p.ID, project.UpdateProjectDTO{Client: &globex.ID})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Client.Name).To(Equal("Globex"))
		})
	})

	Describe("List", func() {
		BeforeEach(func() {
			globex := newClient(ctx, clients, "Globex", "g@globex.com")
			_, err := service.Create(ctx, "", project.CreateProjectDTO{Name: "Storefront doors", Client: acme.ID, StartDate: "2024-01-15"})
			Expect(err).NotTo(HaveOccurred())
			_, err = service.Create(ctx, "", project.CreateProjectDTO{Name: "Office windows", Client: globex.ID, Status: project.StatusCompleted, StartDate: "2024-06-01"})
			Expect(err).NotTo(HaveOccurred())
		})

		It("filters by status", func() {
			ps, err := service.List(ctx, project.ListFilter{Status: project.StatusCompleted})
			Expect(err).NotTo(HaveOccurred())
			Expect(ps).To(HaveLen(1))
			Expect(ps[0].Name).To(Equal("Office windows"))
		})

		It("filters by client and search", func() {
			ps, err := service.List(ctx, project.ListFilter{ClientID: acme.ID})
			Expect(err).NotTo(HaveOccurred())
			Expect(ps).To(HaveLen(1))

			ps, err = service.List(ctx, project.ListFilter{Search: "WINDOWS"})
			Expect(err).NotTo(HaveOccurred())
			Expect(ps).To(HaveLen(1))
			Expect(ps[0].Client.Name).To(Equal("Globex"))
		})

		It("filters by start date range", func() {
			from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
			ps, err := service.List(ctx, project.ListFilter{StartDateFrom: &from})
			Expect(err).NotTo(HaveOccurred())
			Expect(ps).To(HaveLen(1))
			Expect(ps[0].Name).To(Equal("Office windows"))
		})
	})

	Describe("Delete", func() {
		It("refuses while bids reference the project", func() {
			p, _ := service.Create(ctx, "", project.CreateProjectDTO{Name: "Reno", Client: acme.ID})
			Expect(db.Create(&bidDatamodel.Bid{
				ProjectID: p.ID,
				ClientID:  acme.ID,
				Items:     []bidDatamodel.LineItem{{Description: "Window", Quantity: 2, UnitPrice: 50}},
				Status:    "draft",
				DueDate:   time.Now(),
			}).Error).To(Succeed())

			err := service.Delete(ctx, p.ID)
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.StatusCode).To(Equal(409))
			Expect(appErr.Code).To(Equal(internal.ErrCodeHasDependents))
		})

		It("deletes an unreferenced project", func() {
			p, _ := service.Create(ctx, "", project.CreateProjectDTO{Name: "Reno", Client: acme.ID})
			Expect(service.Delete(ctx, p.ID)).To(Succeed())
			_, err := service.Get(ctx, p.ID)
			Expect(err).To(MatchError(internal.ErrProjectNotFound))
		})

		It("returns 404 for a missing project", func() {
			Expect(service.Delete(ctx, "missing")).To(MatchError(internal.ErrProjectNotFound))
		})
	})
})
