package auth

import (
	"context"
	"log/slog"

	"github.com/frahmantamala/sashbid/internal"
	coreuser "github.com/frahmantamala/sashbid/internal/core/user"
)

// UserStore is the slice of the user service that authentication needs.
type UserStore interface {
	GetByID(ctx context.Context, id string) (*coreuser.User, error)
	GetByEmail(ctx context.Context, email string) (*coreuser.User, error)
	Create(ctx context.Context, u *coreuser.User, password string) (*coreuser.User, error)
	HasAdmin(ctx context.Context) (bool, error)
}

type Service struct {
	users  UserStore
	tokens TokenGenerator
	logger *slog.Logger
}

func NewService(users UserStore, tokens TokenGenerator, logger *slog.Logger) *Service {
	return &Service{
		users:  users,
		tokens: tokens,
		logger: logger,
	}
}

func (s *Service) Register(ctx context.Context, dto RegisterDTO) (*AuthResult, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	// Only the first admin may self-register; later admins are rejected.
	if dto.Role == coreuser.RoleAdmin {
		exists, err := s.users.HasAdmin(ctx)
		if err != nil {
			return nil, err
		}
		if exists {
			s.logger.Warn("admin self-registration rejected", "email", dto.Email)
			return nil, internal.ErrAdminRegistration
		}
	}

	u, err := s.users.Create(ctx, &coreuser.User{
		Name:    dto.Name,
		Email:   dto.Email,
		Role:    dto.Role,
		Company: dto.Company,
		Phone:   dto.Phone,
	}, dto.Password)
	if err != nil {
		return nil, err
	}

	return s.issue(u)
}

func (s *Service) Login(ctx context.Context, dto LoginDTO) (*AuthResult, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	u, err := s.users.GetByEmail(ctx, dto.Email)
	if err != nil {
		return nil, err
	}
	if u == nil || !coreuser.CheckPassword(u.PasswordHash, dto.Password) {
		s.logger.Debug("login rejected", "email", dto.Email)
		return nil, internal.ErrInvalidCredentials
	}

	return s.issue(u)
}

func (s *Service) Me(ctx context.Context, userID string) (*coreuser.User, error) {
	return s.users.GetByID(ctx, userID)
}

// Authenticate resolves a bearer token to the principal it was issued for.
// Tokens of deleted users are rejected.
func (s *Service) Authenticate(ctx context.Context, token string) (internal.Principal, error) {
	if token == "" {
		return internal.Principal{}, internal.ErrMissingToken
	}

	claims, err := s.tokens.ValidateToken(token)
	if err != nil {
		return internal.Principal{}, err
	}

	u, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if appErr, ok := internal.IsAppError(err); ok && appErr.Type == internal.ErrorTypeNotFound {
			return internal.Principal{}, internal.NewUnauthorizedError("Not authorized, user not found", internal.ErrCodeInvalidToken)
		}
		return internal.Principal{}, err
	}

	return internal.Principal{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}, nil
}

func (s *Service) issue(u *coreuser.User) (*AuthResult, error) {
	token, err := s.tokens.GenerateToken(u)
	if err != nil {
		return nil, internal.NewInternalError("failed to sign token", err)
	}
	return &AuthResult{Token: token, User: u}, nil
}
