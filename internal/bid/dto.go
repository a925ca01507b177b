package bid

import (
	"fmt"

	"github.com/frahmantamala/sashbid/internal"
	"github.com/frahmantamala/sashbid/internal/core/common/validation"
)

type LineItemDTO struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
}

type CreateBidDTO struct {
	Project string        `json:"project"`
	Client  string        `json:"client"`
	Items   []LineItemDTO `json:"items"`
	Tax     float64       `json:"tax"`
	Status  string        `json:"status"`
	DueDate string        `json:"dueDate"`
	Notes   string        `json:"notes"`
}

type UpdateBidDTO struct {
	Project *string        `json:"project"`
	Client  *string        `json:"client"`
	Items   *[]LineItemDTO `json:"items"`
	Tax     *float64       `json:"tax"`
	Status  *string        `json:"status"`
	DueDate *string        `json:"dueDate"`
	Notes   *string        `json:"notes"`
}

type ListFilter struct {
	ProjectID string
	ClientID  string
	Status    string
	MinTotal  *float64
	MaxTotal  *float64
}

func (d CreateBidDTO) Validate() *internal.AppError {
	v := validation.NewValidator()
	v.Field("project", d.Project).Required()
	v.Field("client", d.Client).Required()
	v.Field("dueDate", d.DueDate).Required()
	v.Field("tax", d.Tax).MinFloat(0, internal.ErrCodeInvalidAmount)
	v.Field("status", d.Status).OneOf(internal.ErrCodeInvalidStatus, Statuses...)
	validateItems(v, d.Items)
	return v.Validate()
}

func (d UpdateBidDTO) Validate() *internal.AppError {
	v := validation.NewValidator()
	if d.Project != nil {
		v.Field("project", *d.Project).Required()
	}
	if d.Client != nil {
		v.Field("client", *d.Client).Required()
	}
	if d.DueDate != nil {
		v.Field("dueDate", *d.DueDate).Required()
	}
	if d.Status != nil {
		v.Field("status", *d.Status).Required().OneOf(internal.ErrCodeInvalidStatus, Statuses...)
	}
	v.Field("tax", d.Tax).MinFloat(0, internal.ErrCodeInvalidAmount)
	if d.Items != nil {
		validateItems(v, *d.Items)
	}
	return v.Validate()
}

func validateItems(v *validation.ValidationBuilder, items []LineItemDTO) {
	v.Field("items", items).Custom(func(value interface{}) *internal.AppError {
		if len(items) == 0 {
			return internal.NewValidationFieldError("items", "Bid must have at least one item", internal.ErrCodeNoItems)
		}
		return nil
	})
	for i, it := range items {
		prefix := fmt.Sprintf("items[%d]", i)
		v.Field(prefix+".description", it.Description).Required()
		v.Field(prefix+".quantity", it.Quantity).MinFloat(1, internal.ErrCodeInvalidAmount)
		v.Field(prefix+".unitPrice", it.UnitPrice).MinFloat(0, internal.ErrCodeInvalidAmount)
	}
}

type BidResponse struct {
	Bid *Bid `json:"bid"`
}

type BidMutationResponse struct {
	Message string `json:"message"`
	Bid     *Bid   `json:"bid"`
}

type BidsResponse struct {
	Count int    `json:"count"`
	Bids  []*Bid `json:"bids"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
