package inventory

import (
	"time"

	"github.com/frahmantamala/sashbid/internal/core/datamodel/user"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Dimensions struct {
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
	Depth  float64 `json:"depth,omitempty"`
	Unit   string  `json:"unit"`
}

type Item struct {
	ID           string      `gorm:"primaryKey;type:uuid"`
	Name         string      `gorm:"column:name;not null"`
	Type         string      `gorm:"column:type;not null;index"`
	Description  string      `gorm:"column:description"`
	SKU          string      `gorm:"column:sku;uniqueIndex;not null"`
	Dimensions   *Dimensions `gorm:"column:dimensions;serializer:json;type:jsonb"`
	Manufacturer string      `gorm:"column:manufacturer"`
	Price        float64     `gorm:"column:price;not null"`
	Cost         float64     `gorm:"column:cost;not null"`
	Quantity     int         `gorm:"column:quantity;not null;default:0"`
	MinQuantity  int         `gorm:"column:min_quantity;not null;default:0"`
	Location     string      `gorm:"column:location"`
	Category     string      `gorm:"column:category"`
	Tags         []string    `gorm:"column:tags;serializer:json;type:jsonb"`
	Images       []string    `gorm:"column:images;serializer:json;type:jsonb"`
	Notes        string      `gorm:"column:notes"`
	CreatedBy    *string     `gorm:"column:created_by;type:uuid"`
	Creator      *user.User  `gorm:"foreignKey:CreatedBy;constraint:OnDelete:SET NULL"`
	CreatedAt    time.Time   `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time   `gorm:"column:updated_at;autoUpdateTime"`
}

func (Item) TableName() string {
	return "inventory_items"
}

func (i *Item) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}

func (i *Item) IsLowStock() bool {
	return i.Quantity <= i.MinQuantity
}
