package bid

import (
	"time"

	"github.com/frahmantamala/sashbid/internal/core/datamodel/client"
	"github.com/frahmantamala/sashbid/internal/core/datamodel/project"
	"github.com/frahmantamala/sashbid/internal/core/datamodel/user"
	"github.com/frahmantamala/sashbid/internal/core/pricing"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LineItem struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	Total       float64 `json:"total"`
}

type Bid struct {
	ID        string           `gorm:"primaryKey;type:uuid"`
	ProjectID string           `gorm:"column:project_id;type:uuid;not null;index"`
	Project   *project.Project `gorm:"foreignKey:ProjectID"`
	ClientID  string           `gorm:"column:client_id;type:uuid;not null;index"`
	Client    *client.Client   `gorm:"foreignKey:ClientID"`
	Items     []LineItem       `gorm:"column:items;serializer:json;type:jsonb;not null"`
	Subtotal  float64          `gorm:"column:subtotal;not null;default:0"`
	Tax       float64          `gorm:"column:tax;not null;default:0"`
	Total     float64          `gorm:"column:total;not null;default:0"`
	Status    string           `gorm:"column:status;not null"`
	DueDate   time.Time        `gorm:"column:due_date;not null"`
	Notes     string           `gorm:"column:notes"`
	CreatedBy *string          `gorm:"column:created_by;type:uuid"`
	Creator   *user.User       `gorm:"foreignKey:CreatedBy;constraint:OnDelete:SET NULL"`
	CreatedAt time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}

func (Bid) TableName() string {
	return "bids"
}

func (b *Bid) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}

// BeforeSave overwrites the derived totals on every create and save.
func (b *Bid) BeforeSave(tx *gorm.DB) error {
	return b.Recompute()
}

func (b *Bid) Recompute() error {
	lines := make([]pricing.Line, len(b.Items))
	for i, it := range b.Items {
		lines[i] = pricing.Line{Quantity: it.Quantity, UnitPrice: it.UnitPrice}
	}
	totals, err := pricing.Compute(lines, b.Tax)
	if err != nil {
		return err
	}
	for i := range b.Items {
		b.Items[i].Total = totals.LineTotals[i]
	}
	b.Subtotal = totals.Subtotal
	b.Total = totals.Total
	return nil
}
