package inventory

import (
	"github.com/frahmantamala/sashbid/internal"
	"github.com/frahmantamala/sashbid/internal/core/common/validation"
)

type CreateItemDTO struct {
	Name         string      `json:"name"`
	Type         string      `json:"type"`
	Description  string      `json:"description"`
	SKU          string      `json:"sku"`
	Dimensions   *Dimensions `json:"dimensions"`
	Manufacturer string      `json:"manufacturer"`
	Price        float64     `json:"price"`
	Cost         float64     `json:"cost"`
	Quantity     int         `json:"quantity"`
	MinQuantity  int         `json:"minQuantity"`
	Location     string      `json:"location"`
	Category     string      `json:"category"`
	Tags         []string    `json:"tags"`
	Images       []string    `json:"images"`
	Notes        string      `json:"notes"`
}

type UpdateItemDTO struct {
	Name         *string     `json:"name"`
	Type         *string     `json:"type"`
	Description  *string     `json:"description"`
	SKU          *string     `json:"sku"`
	Dimensions   *Dimensions `json:"dimensions"`
	Manufacturer *string     `json:"manufacturer"`
	Price        *float64    `json:"price"`
	Cost         *float64    `json:"cost"`
	Quantity     *int        `json:"quantity"`
	MinQuantity  *int        `json:"minQuantity"`
	Location     *string     `json:"location"`
	Category     *string     `json:"category"`
	Tags         *[]string   `json:"tags"`
	Images       *[]string   `json:"images"`
	Notes        *string     `json:"notes"`
}

// QuantityDTO sets the stock level outright or shifts it by Adjustment.
// Quantity wins when both are present.
type QuantityDTO struct {
	Quantity   *int `json:"quantity"`
	Adjustment *int `json:"adjustment"`
}

type ListFilter struct {
	Type         string
	Category     string
	Manufacturer string
	Search       string
	MinQuantity  *int
	MaxPrice     *float64
}

func (d CreateItemDTO) Validate() *internal.AppError {
	v := validation.NewValidator()
	v.Field("name", d.Name).Required().MaxLength(200)
	v.Field("type", d.Type).Required().OneOf(internal.ErrCodeValidationFailed, Types...)
	v.Field("description", d.Description).Required()
	v.Field("sku", d.SKU).Required().MaxLength(64)
	v.Field("price", d.Price).MinFloat(0, internal.ErrCodeInvalidAmount)
	v.Field("cost", d.Cost).MinFloat(0, internal.ErrCodeInvalidAmount)
	v.Field("quantity", d.Quantity).MinInt(0, internal.ErrCodeNegativeQuantity)
	v.Field("minQuantity", d.MinQuantity).MinInt(0, internal.ErrCodeNegativeQuantity)
	validateDimensions(v, d.Dimensions)
	return v.Validate()
}

func (d UpdateItemDTO) Validate() *internal.AppError {
	v := validation.NewValidator()
	if d.Name != nil {
		v.Field("name", *d.Name).Required().MaxLength(200)
	}
	if d.Type != nil {
		v.Field("type", *d.Type).Required().OneOf(internal.ErrCodeValidationFailed, Types...)
	}
	if d.Description != nil {
		v.Field("description", *d.Description).Required()
	}
	if d.SKU != nil {
		v.Field("sku", *d.SKU).Required().MaxLength(64)
	}
	v.Field("price", d.Price).MinFloat(0, internal.ErrCodeInvalidAmount)
	v.Field("cost", d.Cost).MinFloat(0, internal.ErrCodeInvalidAmount)
	v.Field("quantity", d.Quantity).MinInt(0, internal.ErrCodeNegativeQuantity)
	v.Field("minQuantity", d.MinQuantity).MinInt(0, internal.ErrCodeNegativeQuantity)
	validateDimensions(v, d.Dimensions)
	return v.Validate()
}

func (d QuantityDTO) Validate() *internal.AppError {
	if d.Quantity == nil && d.Adjustment == nil {
		return internal.NewValidationError("Either quantity or adjustment must be provided", internal.ErrCodeInvalidRequest)
	}
	return nil
}

func validateDimensions(v *validation.ValidationBuilder, d *Dimensions) {
	if d == nil {
		return
	}
	v.Field("dimensions.width", d.Width).MinFloat(0, internal.ErrCodeInvalidAmount)
	v.Field("dimensions.height", d.Height).MinFloat(0, internal.ErrCodeInvalidAmount)
	v.Field("dimensions.depth", d.Depth).MinFloat(0, internal.ErrCodeInvalidAmount)
	v.Field("dimensions.unit", d.Unit).OneOf(internal.ErrCodeValidationFailed, Units...)
}

type ItemResponse struct {
	Item *Item `json:"item"`
}

type ItemMutationResponse struct {
	Message string `json:"message"`
	Item    *Item  `json:"item"`
}

type ItemsResponse struct {
	Count int     `json:"count"`
	Items []*Item `json:"items"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
