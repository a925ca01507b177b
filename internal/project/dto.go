package project

import (
	"time"

	"github.com/frahmantamala/sashbid/internal"
	"github.com/frahmantamala/sashbid/internal/core/common/validation"
)

type CreateProjectDTO struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Client      string  `json:"client"`
	Status      string  `json:"status"`
	StartDate   string  `json:"startDate"`
	EndDate     string  `json:"endDate"`
	Value       float64 `json:"value"`
	Notes       string  `json:"notes"`
}

type UpdateProjectDTO struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Client      *string  `json:"client"`
	Status      *string  `json:"status"`
	StartDate   *string  `json:"startDate"`
	EndDate     *string  `json:"endDate"`
	Value       *float64 `json:"value"`
	Notes       *string  `json:"notes"`
}

type ListFilter struct {
	Status        string
	ClientID      string
	StartDateFrom *time.Time
	StartDateTo   *time.Time
	Search        string
}

func (d CreateProjectDTO) Validate() *internal.AppError {
	v := validation.NewValidator()
	v.Field("name", d.Name).Required().MaxLength(200)
	v.Field("client", d.Client).Required()
	v.Field("status", d.Status).OneOf(internal.ErrCodeInvalidStatus, Statuses...)
	v.Field("value", d.Value).MinFloat(0, internal.ErrCodeInvalidAmount)
	return v.Validate()
}

func (d UpdateProjectDTO) Validate() *internal.AppError {
	v := validation.NewValidator()
	if d.Name != nil {
		v.Field("name", *d.Name).Required().MaxLength(200)
	}
	if d.Client != nil {
		v.Field("client", *d.Client).Required()
	}
	if d.Status != nil {
		v.Field("status", *d.Status).Required().OneOf(internal.ErrCodeInvalidStatus, Statuses...)
	}
	v.Field("value", d.Value).MinFloat(0, internal.ErrCodeInvalidAmount)
	return v.Validate()
}

// validateSchedule checks the merged record: end date may not precede start date.
func validateSchedule(start, end *time.Time) *internal.AppError {
	v := validation.NewValidator()
	v.Field("endDate", end).NotBefore(start)
	return v.Validate()
}

type ProjectResponse struct {
	Project *Project `json:"project"`
}

type ProjectMutationResponse struct {
	Message string   `json:"message"`
	Project *Project `json:"project"`
}

type ProjectsResponse struct {
	Count    int        `json:"count"`
	Projects []*Project `json:"projects"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
