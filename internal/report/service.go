package report

import (
	"context"
	"log/slog"
	"time"

	"github.com/frahmantamala/sashbid/internal"
	"github.com/frahmantamala/sashbid/internal/bid"
	"github.com/frahmantamala/sashbid/internal/project"
)

type RepositoryAPI interface {
	Totals(ctx context.Context) (Totals, error)
	BidFacts(ctx context.Context, since time.Time) ([]BidFact, error)
	ProjectFacts(ctx context.Context, since time.Time) ([]ProjectFact, error)
	BidStatusCounts(ctx context.Context) ([]StatusCount, error)
	ProjectStatusCounts(ctx context.Context) ([]StatusCount, error)
	InventoryFacts(ctx context.Context) ([]InventoryFact, error)
	ClientTotals(ctx context.Context) ([]ClientTotals, error)
	BidRows(ctx context.Context) ([]BidRow, error)
	ProjectRows(ctx context.Context) ([]ProjectRow, error)
	InventoryRows(ctx context.Context) ([]InventoryRow, error)
	ClientRows(ctx context.Context) ([]ClientRow, error)
}

type Options struct {
	DefaultMonths   int
	TopClientsLimit int
}

type Service struct {
	repo   RepositoryAPI
	opts   Options
	logger *slog.Logger
	now    func() time.Time
}

func NewService(repo RepositoryAPI, opts Options, logger *slog.Logger) *Service {
	if opts.DefaultMonths <= 0 {
		opts.DefaultMonths = 6
	}
	if opts.TopClientsLimit <= 0 {
		opts.TopClientsLimit = 5
	}
	return &Service{
		repo:   repo,
		opts:   opts,
		logger: logger,
		now:    time.Now,
	}
}

// WithClock overrides the time source used for report windows.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) Options() Options {
	return s.opts
}

func (s *Service) Dashboard(ctx context.Context) (*Dashboard, error) {
	totals, err := s.repo.Totals(ctx)
	if err != nil {
		return nil, s.fail("dashboard totals", err)
	}
	bidData, err := s.MonthlyBids(ctx, s.opts.DefaultMonths)
	if err != nil {
		return nil, err
	}
	projectStatus, err := s.ProjectStatusDistribution(ctx)
	if err != nil {
		return nil, err
	}
	inventoryData, err := s.InventoryByCategory(ctx)
	if err != nil {
		return nil, err
	}
	clients, err := s.repo.ClientTotals(ctx)
	if err != nil {
		return nil, s.fail("client totals", err)
	}

	return &Dashboard{
		TotalBids:         totals.Bids,
		TotalProjects:     totals.Projects,
		TotalClients:      totals.Clients,
		TotalRevenue:      totals.Revenue,
		AcceptanceRate:    Percent(totals.AcceptedBids, totals.Bids),
		CompletionRate:    Percent(totals.CompletedProjects, totals.Projects),
		BidData:           bidData,
		ProjectStatusData: projectStatus,
		InventoryData:     inventoryData,
		ClientData:        ClientActivityByValue(clients, s.opts.TopClientsLimit),
	}, nil
}

func (s *Service) MonthlyBids(ctx context.Context, months int) ([]MonthlyBids, error) {
	facts, err := s.repo.BidFacts(ctx, WindowStart(s.now(), s.months(months)))
	if err != nil {
		return nil, s.fail("bid facts", err)
	}
	return MonthlyBidSeries(facts), nil
}

func (s *Service) ProjectTimeline(ctx context.Context, months int) ([]TimelinePoint, error) {
	facts, err := s.repo.ProjectFacts(ctx, WindowStart(s.now(), s.months(months)))
	if err != nil {
		return nil, s.fail("project facts", err)
	}
	return ProjectTimeline(facts), nil
}

func (s *Service) BidStatusDistribution(ctx context.Context) ([]Slice, error) {
	counts, err := s.repo.BidStatusCounts(ctx)
	if err != nil {
		return nil, s.fail("bid status counts", err)
	}
	return Distribution(counts, bid.Statuses), nil
}

func (s *Service) ProjectStatusDistribution(ctx context.Context) ([]Slice, error) {
	counts, err := s.repo.ProjectStatusCounts(ctx)
	if err != nil {
		return nil, s.fail("project status counts", err)
	}
	return Distribution(counts, project.Statuses), nil
}

func (s *Service) InventoryByCategory(ctx context.Context) ([]CategoryValue, error) {
	facts, err := s.repo.InventoryFacts(ctx)
	if err != nil {
		return nil, s.fail("inventory facts", err)
	}
	return InventoryByCategory(facts), nil
}

func (s *Service) TopClients(ctx context.Context, limit int) ([]TopClient, error) {
	totals, err := s.repo.ClientTotals(ctx)
	if err != nil {
		return nil, s.fail("client totals", err)
	}
	return TopClients(totals, s.limit(limit)), nil
}

func (s *Service) ClientActivity(ctx context.Context, limit int) ([]ClientActivity, error) {
	totals, err := s.repo.ClientTotals(ctx)
	if err != nil {
		return nil, s.fail("client totals", err)
	}
	return ClientActivityByBids(totals, s.limit(limit)), nil
}

func (s *Service) Bids(ctx context.Context) ([]BidRow, error) {
	rows, err := s.repo.BidRows(ctx)
	if err != nil {
		return nil, s.fail("bid report", err)
	}
	return rows, nil
}

func (s *Service) Projects(ctx context.Context) ([]ProjectRow, error) {
	rows, err := s.repo.ProjectRows(ctx)
	if err != nil {
		return nil, s.fail("project report", err)
	}
	return rows, nil
}

func (s *Service) Inventory(ctx context.Context) ([]InventoryRow, error) {
	rows, err := s.repo.InventoryRows(ctx)
	if err != nil {
		return nil, s.fail("inventory report", err)
	}
	return rows, nil
}

func (s *Service) Clients(ctx context.Context) ([]ClientRow, error) {
	rows, err := s.repo.ClientRows(ctx)
	if err != nil {
		return nil, s.fail("client report", err)
	}
	return rows, nil
}

func (s *Service) months(n int) int {
	if n <= 0 {
		return s.opts.DefaultMonths
	}
	return n
}

func (s *Service) limit(n int) int {
	if n <= 0 {
		return s.opts.TopClientsLimit
	}
	return n
}

func (s *Service) fail(what string, err error) error {
	s.logger.Error("report query failed", "query", what, "error", err)
	return internal.NewInternalError("failed to build "+what, err)
}
