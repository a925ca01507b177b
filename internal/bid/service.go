package bid

import (
	"context"
	"log/slog"
	"time"

	"github.com/frahmantamala/sashbid/internal"
	"github.com/frahmantamala/sashbid/internal/core/common/validation"
	bidDatamodel "github.com/frahmantamala/sashbid/internal/core/datamodel/bid"
	coreuser "github.com/frahmantamala/sashbid/internal/core/user"
)

// RepositoryAPI returns (nil, nil) from lookups that find nothing.
type RepositoryAPI interface {
	List(ctx context.Context, filter ListFilter) ([]*bidDatamodel.Bid, error)
	GetByID(ctx context.Context, id string) (*bidDatamodel.Bid, error)
	Create(ctx context.Context, b *bidDatamodel.Bid) error
	Update(ctx context.Context, b *bidDatamodel.Bid) error
	Delete(ctx context.Context, id string) error
}

// ReferenceChecker confirms that a referenced record exists.
type ReferenceChecker interface {
	Exists(ctx context.Context, id string) (bool, error)
}

type Service struct {
	repo     RepositoryAPI
	projects ReferenceChecker
	clients  ReferenceChecker
	logger   *slog.Logger
}

func NewService(repo RepositoryAPI, projects, clients ReferenceChecker, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		projects: projects,
		clients:  clients,
		logger:   logger,
	}
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Bid, error) {
	models, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, internal.NewInternalError("failed to list bids", err)
	}
	bids := make([]*Bid, 0, len(models))
	for _, m := range models {
		bids = append(bids, FromDataModel(m))
	}
	return bids, nil
}

// ListByProject returns the project's bids, newest first.
func (s *Service) ListByProject(ctx context.Context, projectID string) ([]*Bid, error) {
	if err := s.ensure(ctx, s.projects, projectID, internal.ErrProjectNotFound); err != nil {
		return nil, err
	}
	return s.List(ctx, ListFilter{ProjectID: projectID})
}

func (s *Service) Get(ctx context.Context, id string) (*Bid, error) {
	m, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromDataModel(m), nil
}

func (s *Service) Create(ctx context.Context, actorID string, dto CreateBidDTO) (*Bid, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	due, err := parseDueDate(dto.DueDate)
	if err != nil {
		return nil, err
	}
	if err := s.ensure(ctx, s.projects, dto.Project, internal.ErrProjectNotFound); err != nil {
		return nil, err
	}
	if err := s.ensure(ctx, s.clients, dto.Client, internal.ErrClientNotFound); err != nil {
		return nil, err
	}

	status := dto.Status
	if status == "" {
		status = StatusDraft
	}

	m := &bidDatamodel.Bid{
		ProjectID: dto.Project,
		ClientID:  dto.Client,
		Items:     toDataItems(dto.Items),
		Tax:       dto.Tax,
		Status:    status,
		DueDate:   due,
		Notes:     dto.Notes,
		CreatedBy: coreuser.Ref(actorID),
	}
	if err := m.Recompute(); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, m); err != nil {
		return nil, internal.NewInternalError("failed to create bid", err)
	}

	s.logger.Info("bid created", "bid_id", m.ID, "project_id", m.ProjectID, "total", m.Total)
	return s.Get(ctx, m.ID)
}

func (s *Service) Update(ctx context.Context, id string, dto UpdateBidDTO) (*Bid, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	m, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if dto.Project != nil {
		if err := s.ensure(ctx, s.projects, *dto.Project, internal.ErrProjectNotFound); err != nil {
			return nil, err
		}
		m.ProjectID, m.Project = *dto.Project, nil
	}
	if dto.Client != nil {
		if err := s.ensure(ctx, s.clients, *dto.Client, internal.ErrClientNotFound); err != nil {
			return nil, err
		}
		m.ClientID, m.Client = *dto.Client, nil
	}
	if dto.DueDate != nil {
		if m.DueDate, err = parseDueDate(*dto.DueDate); err != nil {
			return nil, err
		}
	}
	if dto.Items != nil {
		m.Items = toDataItems(*dto.Items)
	}
	if dto.Tax != nil {
		m.Tax = *dto.Tax
	}
	if dto.Status != nil {
		m.Status = *dto.Status
	}
	if dto.Notes != nil {
		m.Notes = *dto.Notes
	}

	if err := m.Recompute(); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, m); err != nil {
		return nil, internal.NewInternalError("failed to update bid", err)
	}
	return s.Get(ctx, m.ID)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.load(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return internal.NewInternalError("failed to delete bid", err)
	}
	s.logger.Info("bid deleted", "bid_id", id)
	return nil
}

func (s *Service) load(ctx context.Context, id string) (*bidDatamodel.Bid, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, internal.NewInternalError("failed to get bid", err)
	}
	if m == nil {
		return nil, internal.ErrBidNotFound
	}
	return m, nil
}

func (s *Service) ensure(ctx context.Context, checker ReferenceChecker, id string, notFound *internal.AppError) error {
	ok, err := checker.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return notFound
	}
	return nil
}

func parseDueDate(raw string) (time.Time, error) {
	t, verr := validation.ParseDate("dueDate", raw)
	if verr != nil {
		return time.Time{}, verr
	}
	if t == nil {
		return time.Time{}, internal.NewValidationFieldError("dueDate", "dueDate is required", internal.ErrCodeValidationFailed)
	}
	return *t, nil
}
