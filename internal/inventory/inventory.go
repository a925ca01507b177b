package inventory

import (
	"time"

	inventoryDatamodel "github.com/frahmantamala/sashbid/internal/core/datamodel/inventory"
	coreuser "github.com/frahmantamala/sashbid/internal/core/user"
)

const (
	TypeDoor     = "door"
	TypeWindow   = "window"
	TypeHardware = "hardware"
	TypeMaterial = "material"
	TypeOther    = "other"

	DefaultUnit = "in"
)

var (
	Types = []string{TypeDoor, TypeWindow, TypeHardware, TypeMaterial, TypeOther}
	Units = []string{"in", "cm", "mm", "ft"}
)

type Dimensions struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Depth  float64 `json:"depth,omitempty"`
	Unit   string  `json:"unit"`
}

type Item struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Type         string            `json:"type"`
	Description  string            `json:"description"`
	SKU          string            `json:"sku"`
	Dimensions   *Dimensions       `json:"dimensions,omitempty"`
	Manufacturer string            `json:"manufacturer,omitempty"`
	Price        float64           `json:"price"`
	Cost         float64           `json:"cost"`
	Quantity     int               `json:"quantity"`
	MinQuantity  int               `json:"minQuantity"`
	Location     string            `json:"location,omitempty"`
	Category     string            `json:"category,omitempty"`
	Tags         []string          `json:"tags"`
	Images       []string          `json:"images"`
	Notes        string            `json:"notes,omitempty"`
	LowStock     bool              `json:"lowStock"`
	CreatedBy    *coreuser.Summary `json:"createdBy,omitempty"`
	CreatedAt    time.Time         `json:"createdAt"`
	UpdatedAt    time.Time         `json:"updatedAt"`
}

func FromDataModel(m *inventoryDatamodel.Item) *Item {
	item := &Item{
		ID:           m.ID,
		Name:         m.Name,
		Type:         m.Type,
		Description:  m.Description,
		SKU:          m.SKU,
		Manufacturer: m.Manufacturer,
		Price:        m.Price,
		Cost:         m.Cost,
		Quantity:     m.Quantity,
		MinQuantity:  m.MinQuantity,
		Location:     m.Location,
		Category:     m.Category,
		Tags:         nonNil(m.Tags),
		Images:       nonNil(m.Images),
		Notes:        m.Notes,
		LowStock:     m.IsLowStock(),
		CreatedBy:    coreuser.SummaryFrom(m.Creator, m.CreatedBy),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
	if m.Dimensions != nil {
		d := Dimensions(*m.Dimensions)
		item.Dimensions = &d
	}
	return item
}

func toDataDimensions(d *Dimensions) *inventoryDatamodel.Dimensions {
	if d == nil {
		return nil
	}
	out := inventoryDatamodel.Dimensions(*d)
	if out.Unit == "" {
		out.Unit = DefaultUnit
	}
	return &out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
