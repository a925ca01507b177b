package user

import (
	"context"
	"log/slog"

	"github.com/frahmantamala/sashbid/internal"
	userDatamodel "github.com/frahmantamala/sashbid/internal/core/datamodel/user"
	coreuser "github.com/frahmantamala/sashbid/internal/core/user"
)

// RepositoryAPI returns (nil, nil) from lookups that find nothing.
type RepositoryAPI interface {
	List(ctx context.Context) ([]*userDatamodel.User, error)
	GetByID(ctx context.Context, id string) (*userDatamodel.User, error)
	GetByEmail(ctx context.Context, email string) (*userDatamodel.User, error)
	Create(ctx context.Context, u *userDatamodel.User) error
	Update(ctx context.Context, u *userDatamodel.User) error
	Delete(ctx context.Context, id string) error
	CountByRole(ctx context.Context, role string) (int64, error)
}

type Service struct {
	repo       RepositoryAPI
	bcryptCost int
	logger     *slog.Logger
}

func NewService(repo RepositoryAPI, bcryptCost int, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

func (s *Service) List(ctx context.Context) ([]*coreuser.User, error) {
	models, err := s.repo.List(ctx)
	if err != nil {
		return nil, internal.NewInternalError("failed to list users", err)
	}
	users := make([]*coreuser.User, 0, len(models))
	for _, m := range models {
		users = append(users, FromDataModel(m))
	}
	return users, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*coreuser.User, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, internal.NewInternalError("failed to get user", err)
	}
	if m == nil {
		return nil, internal.ErrUserNotFound
	}
	return FromDataModel(m), nil
}

// GetByEmail looks a user up by normalized email; nil when absent.
func (s *Service) GetByEmail(ctx context.Context, email string) (*coreuser.User, error) {
	m, err := s.repo.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		return nil, internal.NewInternalError("failed to get user", err)
	}
	return FromDataModel(m), nil
}

// HasAdmin reports whether any admin account exists.
func (s *Service) HasAdmin(ctx context.Context) (bool, error) {
	n, err := s.repo.CountByRole(ctx, coreuser.RoleAdmin)
	if err != nil {
		return false, internal.NewInternalError("failed to count admins", err)
	}
	return n > 0, nil
}

// Create stores a new account; the password is hashed here.
func (s *Service) Create(ctx context.Context, u *coreuser.User, password string) (*coreuser.User, error) {
	u.Email = NormalizeEmail(u.Email)
	if u.Role == "" {
		u.Role = coreuser.RoleUser
	}

	existing, err := s.repo.GetByEmail(ctx, u.Email)
	if err != nil {
		return nil, internal.NewInternalError("failed to check email", err)
	}
	if existing != nil {
		return nil, internal.NewConflictError("User already exists", internal.ErrCodeEmailTaken)
	}

	hash, err := coreuser.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, internal.NewInternalError("failed to hash password", err)
	}
	u.PasswordHash = hash

	m := ToDataModel(u)
	if err := s.repo.Create(ctx, m); err != nil {
		return nil, internal.NewInternalError("failed to create user", err)
	}

	s.logger.Info("user created", "user_id", m.ID, "role", m.Role)
	return FromDataModel(m), nil
}

func (s *Service) Update(ctx context.Context, actor internal.Principal, id string, dto UpdateUserDTO) (*coreuser.User, error) {
	if actor.ID != id && !actor.IsAdmin() {
		return nil, internal.NewForbiddenError("Not authorized to update this user", internal.ErrCodeInsufficientRole)
	}
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, internal.NewInternalError("failed to get user", err)
	}
	if m == nil {
		return nil, internal.ErrUserNotFound
	}

	if dto.Email != nil {
		email := NormalizeEmail(*dto.Email)
		if email != m.Email {
			other, err := s.repo.GetByEmail(ctx, email)
			if err != nil {
				return nil, internal.NewInternalError("failed to check email", err)
			}
			if other != nil && other.ID != id {
				return nil, internal.NewConflictError("Email already in use", internal.ErrCodeEmailTaken)
			}
		}
		m.Email = email
	}
	if dto.Name != nil {
		m.Name = *dto.Name
	}
	if dto.Company != nil {
		m.Company = *dto.Company
	}
	if dto.Phone != nil {
		m.Phone = *dto.Phone
	}

	if err := s.repo.Update(ctx, m); err != nil {
		return nil, internal.NewInternalError("failed to update user", err)
	}
	return FromDataModel(m), nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return internal.NewInternalError("failed to get user", err)
	}
	if m == nil {
		return internal.ErrUserNotFound
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return internal.NewInternalError("failed to delete user", err)
	}
	s.logger.Info("user deleted", "user_id", id)
	return nil
}

func (s *Service) ChangePassword(ctx context.Context, userID string, dto ChangePasswordDTO) error {
	if err := dto.Validate(); err != nil {
		return err
	}

	m, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return internal.NewInternalError("failed to get user", err)
	}
	if m == nil {
		return internal.ErrUserNotFound
	}

	if !coreuser.CheckPassword(m.PasswordHash, dto.CurrentPassword) {
		return internal.NewUnauthorizedError("Current password is incorrect", internal.ErrCodeInvalidCredentials)
	}

	hash, err := coreuser.HashPassword(dto.NewPassword, s.bcryptCost)
	if err != nil {
		return internal.NewInternalError("failed to hash password", err)
	}
	m.PasswordHash = hash

	if err := s.repo.Update(ctx, m); err != nil {
		return internal.NewInternalError("failed to update password", err)
	}
	return nil
}
