package project

import (
	"context"
	"log/slog"
	"time"

	"github.com/frahmantamala/sashbid/internal"
	"github.com/frahmantamala/sashbid/internal/core/common/validation"
	projectDatamodel "github.com/frahmantamala/sashbid/internal/core/datamodel/project"
	coreuser "github.com/frahmantamala/sashbid/internal/core/user"
)

// RepositoryAPI returns (nil, nil) from lookups that find nothing.
type RepositoryAPI interface {
	List(ctx context.Context, filter ListFilter) ([]*projectDatamodel.Project, error)
	GetByID(ctx context.Context, id string) (*projectDatamodel.Project, error)
	Create(ctx context.Context, p *projectDatamodel.Project) error
	Update(ctx context.Context, p *projectDatamodel.Project) error
	Delete(ctx context.Context, id string) error
	CountBids(ctx context.Context, id string) (int64, error)
}

// ClientChecker confirms that a referenced client exists.
type ClientChecker interface {
	Exists(ctx context.Context, id string) (bool, error)
}

type Service struct {
	repo    RepositoryAPI
	clients ClientChecker
	logger  *slog.Logger
}

func NewService(repo RepositoryAPI, clients ClientChecker, logger *slog.Logger) *Service {
	return &Service{
		repo:    repo,
		clients: clients,
		logger:  logger,
	}
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Project, error) {
	models, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, internal.NewInternalError("failed to list projects", err)
	}
	projects := make([]*Project, 0, len(models))
	for _, m := range models {
		projects = append(projects, FromDataModel(m))
	}
	return projects, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Project, error) {
	m, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromDataModel(m), nil
}

func (s *Service) Exists(ctx context.Context, id string) (bool, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return false, internal.NewInternalError("failed to get project", err)
	}
	return m != nil, nil
}

func (s *Service) Create(ctx context.Context, actorID string, dto CreateProjectDTO) (*Project, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	start, err := parseDate("startDate", dto.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := parseDate("endDate", dto.EndDate)
	if err != nil {
		return nil, err
	}
	if verr := validateSchedule(start, end); verr != nil {
		return nil, verr
	}

	if err := s.ensureClient(ctx, dto.Client); err != nil {
		return nil, err
	}

	status := dto.Status
	if status == "" {
		status = StatusPending
	}

	m := &projectDatamodel.Project{
		Name:        dto.Name,
		Description: dto.Description,
		ClientID:    dto.Client,
		Status:      status,
		StartDate:   start,
		EndDate:     end,
		Value:       dto.Value,
		Notes:       dto.Notes,
		CreatedBy:   coreuser.Ref(actorID),
	}
	if err := s.repo.Create(ctx, m); err != nil {
		return nil, internal.NewInternalError("failed to create project", err)
	}

	s.logger.Info("project created", "project_id", m.ID, "client_id", m.ClientID)
	return s.Get(ctx, m.ID)
}

func (s *Service) Update(ctx context.Context, id string, dto UpdateProjectDTO) (*Project, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	m, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if dto.Client != nil {
		if err := s.ensureClient(ctx, *dto.Client); err != nil {
			return nil, err
		}
		if *dto.Client != m.ClientID {
			m.ClientID = *dto.Client
			m.Client = nil
		}
	}
	if dto.StartDate != nil {
		if m.StartDate, err = parseDate("startDate", *dto.StartDate); err != nil {
			return nil, err
		}
	}
	if dto.EndDate != nil {
		if m.EndDate, err = parseDate("endDate", *dto.EndDate); err != nil {
			return nil, err
		}
	}
	if verr := validateSchedule(m.StartDate, m.EndDate); verr != nil {
		return nil, verr
	}

	if dto.Name != nil {
		m.Name = *dto.Name
	}
	if dto.Description != nil {
		m.Description = *dto.Description
	}
	if dto.Status != nil {
		m.Status = *dto.Status
	}
	if dto.Value != nil {
		m.Value = *dto.Value
	}
	if dto.Notes != nil {
		m.Notes = *dto.Notes
	}

	if err := s.repo.Update(ctx, m); err != nil {
		return nil, internal.NewInternalError("failed to update project", err)
	}
	return s.Get(ctx, m.ID)
}

// Delete refuses to remove a project that bids still reference.
func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.load(ctx, id); err != nil {
		return err
	}

	bids, err := s.repo.CountBids(ctx, id)
	if err != nil {
		return internal.NewInternalError("failed to check project bids", err)
	}
	if bids > 0 {
		return internal.NewConflictError("Project still has bids", internal.ErrCodeHasDependents).
			WithDetails(map[string]int64{"bids": bids})
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return internal.NewInternalError("failed to delete project", err)
	}
	s.logger.Info("project deleted", "project_id", id)
	return nil
}

func (s *Service) load(ctx context.Context, id string) (*projectDatamodel.Project, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, internal.NewInternalError("failed to get project", err)
	}
	if m == nil {
		return nil, internal.ErrProjectNotFound
	}
	return m, nil
}

func (s *Service) ensureClient(ctx context.Context, clientID string) error {
	ok, err := s.clients.Exists(ctx, clientID)
	if err != nil {
		return err
	}
	if !ok {
		return internal.ErrClientNotFound
	}
	return nil
}

func parseDate(field, raw string) (*time.Time, error) {
	t, verr := validation.ParseDate(field, raw)
	if verr != nil {
		return nil, verr
	}
	return t, nil
}
