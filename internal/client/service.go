package client

import (
	"context"
	"log/slog"

	"github.com/frahmantamala/sashbid/internal"
	clientDatamodel "github.com/frahmantamala/sashbid/internal/core/datamodel/client"
	coreuser "github.com/frahmantamala/sashbid/internal/core/user"
)

// RepositoryAPI returns (nil, nil) from lookups that find nothing.
type RepositoryAPI interface {
	List(ctx context.Context, filter ListFilter) ([]*clientDatamodel.Client, error)
	GetByID(ctx context.Context, id string) (*clientDatamodel.Client, error)
	GetByEmail(ctx context.Context, email string) (*clientDatamodel.Client, error)
	Create(ctx context.Context, c *clientDatamodel.Client) error
	Update(ctx context.Context, c *clientDatamodel.Client) error
	Delete(ctx context.Context, id string) error
	CountDependents(ctx context.Context, id string) (projects int64, bids int64, err error)
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Client, error) {
	models, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, internal.NewInternalError("failed to list clients", err)
	}
	clients := make([]*Client, 0, len(models))
	for _, m := range models {
		clients = append(clients, FromDataModel(m))
	}
	return clients, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Client, error) {
	m, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromDataModel(m), nil
}

// Exists reports whether a client id resolves; used to validate references.
func (s *Service) Exists(ctx context.Context, id string) (bool, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return false, internal.NewInternalError("failed to get client", err)
	}
	return m != nil, nil
}

func (s *Service) Create(ctx context.Context, actorID string, dto CreateClientDTO) (*Client, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	if err := s.ensureEmailFree(ctx, dto.Email, ""); err != nil {
		return nil, err
	}

	m := &clientDatamodel.Client{
		Name:           dto.Name,
		Email:          dto.Email,
		Phone:          dto.Phone,
		Address:        toDataAddress(dto.Address),
		ContactPersons: toDataContacts(dto.ContactPersons),
		Notes:          dto.Notes,
		CreatedBy:      coreuser.Ref(actorID),
	}
	if err := s.repo.Create(ctx, m); err != nil {
		return nil, internal.NewInternalError("failed to create client", err)
	}

	s.logger.Info("client created", "client_id", m.ID)
	return s.Get(ctx, m.ID)
}

func (s *Service) Update(ctx context.Context, id string, dto UpdateClientDTO) (*Client, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	m, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if dto.Email != nil && *dto.Email != m.Email {
		if err := s.ensureEmailFree(ctx, *dto.Email, id); err != nil {
			return nil, err
		}
		m.Email = *dto.Email
	}
	if dto.Name != nil {
		m.Name = *dto.Name
	}
	if dto.Phone != nil {
		m.Phone = *dto.Phone
	}
	if dto.Address != nil {
		m.Address = toDataAddress(*dto.Address)
	}
	if dto.ContactPersons != nil {
		m.ContactPersons = toDataContacts(*dto.ContactPersons)
	}
	if dto.Notes != nil {
		m.Notes = *dto.Notes
	}

	if err := s.repo.Update(ctx, m); err != nil {
		return nil, internal.NewInternalError("failed to update client", err)
	}
	return FromDataModel(m), nil
}

// Delete refuses to remove a client that projects or bids still reference.
func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.load(ctx, id); err != nil {
		return err
	}

	projects, bids, err := s.repo.CountDependents(ctx, id)
	if err != nil {
		return internal.NewInternalError("failed to check client dependents", err)
	}
	if projects > 0 || bids > 0 {
		return internal.NewConflictError("Client still has projects or bids", internal.ErrCodeHasDependents).
			WithDetails(map[string]int64{"projects": projects, "bids": bids})
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return internal.NewInternalError("failed to delete client", err)
	}
	s.logger.Info("client deleted", "client_id", id)
	return nil
}

func (s *Service) AddContact(ctx context.Context, id string, contact ContactPerson) (*Client, error) {
	if err := ValidateContact(contact); err != nil {
		return nil, err
	}

	m, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	m.ContactPersons = append(m.ContactPersons, clientDatamodel.ContactPerson(contact))
	if err := s.repo.Update(ctx, m); err != nil {
		return nil, internal.NewInternalError("failed to add contact person", err)
	}
	return FromDataModel(m), nil
}

func (s *Service) RemoveContact(ctx context.Context, id string, index int) (*Client, error) {
	m, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if index < 0 || index >= len(m.ContactPersons) {
		return nil, internal.ErrContactNotFound
	}
	m.ContactPersons = append(m.ContactPersons[:index], m.ContactPersons[index+1:]...)

	if err := s.repo.Update(ctx, m); err != nil {
		return nil, internal.NewInternalError("failed to remove contact person", err)
	}
	return FromDataModel(m), nil
}

func (s *Service) load(ctx context.Context, id string) (*clientDatamodel.Client, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, internal.NewInternalError("failed to get client", err)
	}
	if m == nil {
		return nil, internal.ErrClientNotFound
	}
	return m, nil
}

func (s *Service) ensureEmailFree(ctx context.Context, email, selfID string) error {
	existing, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return internal.NewInternalError("failed to check client email", err)
	}
	if existing != nil && existing.ID != selfID {
		return internal.NewConflictError("Client with this email already exists", internal.ErrCodeEmailTaken)
	}
	return nil
}
