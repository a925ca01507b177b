package auth

import (
	"github.com/frahmantamala/sashbid/internal"
	"github.com/frahmantamala/sashbid/internal/core/common/validation"
	coreuser "github.com/frahmantamala/sashbid/internal/core/user"
)

// LoginDTO is the transport shape used by the HTTP handler to accept login requests.
type LoginDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (d LoginDTO) Validate() *internal.AppError {
	v := validation.NewValidator()
	v.Field("email", d.Email).Required()
	v.Field("password", d.Password).Required()
	return v.Validate()
}

type RegisterDTO struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Company  string `json:"company"`
	Phone    string `json:"phone"`
}

func (d RegisterDTO) Validate() *internal.AppError {
	v := validation.NewValidator()
	v.Field("name", d.Name).Required().MaxLength(200)
	v.Field("email", d.Email).Required().Email()
	v.Field("password", d.Password).Required().MinLength(coreuser.MinPasswordLength)
	v.Field("role", d.Role).OneOf(internal.ErrCodeValidationFailed, coreuser.Roles...)
	return v.Validate()
}

type AuthResponse struct {
	Message string           `json:"message"`
	Token   string           `json:"token"`
	User    coreuser.Profile `json:"user"`
}

type MeResponse struct {
	User coreuser.Profile `json:"user"`
}
