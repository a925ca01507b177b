package user

import (
	"github.com/frahmantamala/sashbid/internal"
	"github.com/frahmantamala/sashbid/internal/core/common/validation"
	coreuser "github.com/frahmantamala/sashbid/internal/core/user"
)

type UpdateUserDTO struct {
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	Company *string `json:"company"`
	Phone   *string `json:"phone"`
}

func (d UpdateUserDTO) Validate() *internal.AppError {
	v := validation.NewValidator()
	if d.Name != nil {
		v.Field("name", *d.Name).Required().MaxLength(200)
	}
	if d.Email != nil {
		v.Field("email", *d.Email).Required().Email()
	}
	return v.Validate()
}

type ChangePasswordDTO struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (d ChangePasswordDTO) Validate() *internal.AppError {
	v := validation.NewValidator()
	v.Field("currentPassword", d.CurrentPassword).Required()
	v.Field("newPassword", d.NewPassword).Required().MinLength(coreuser.MinPasswordLength)
	return v.Validate()
}

type UserResponse struct {
	User coreuser.Profile `json:"user"`
}

type UserMutationResponse struct {
	Message string           `json:"message"`
	User    coreuser.Profile `json:"user"`
}

type UsersResponse struct {
	Count int                `json:"count"`
	Users []coreuser.Profile `json:"users"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
