package auth

import (
	"time"

	coreuser "github.com/frahmantamala/sashbid/internal/core/user"
	"github.com/golang-jwt/jwt/v5"
)

// Claims represents JWT token claims
type Claims struct {
	UserID string `json:"id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// TokenGenerator signs and verifies bearer tokens.
type TokenGenerator interface {
	GenerateToken(u *coreuser.User) (string, error)
	ValidateToken(tokenString string) (*Claims, error)
}

type JWTTokenGenerator struct {
	Secret []byte
	TTL    time.Duration
	now    func() time.Time
}

// AuthResult is returned by register and login.
type AuthResult struct {
	Token string
	User  *coreuser.User
}
