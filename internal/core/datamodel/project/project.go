package project

import (
	"time"

	"github.com/frahmantamala/sashbid/internal/core/datamodel/client"
	"github.com/frahmantamala/sashbid/internal/core/datamodel/user"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Project struct {
	ID          string         `gorm:"primaryKey;type:uuid"`
	Name        string         `gorm:"column:name;not null"`
	Description string         `gorm:"column:description"`
	ClientID    string         `gorm:"column:client_id;type:uuid;not null;index"`
	Client      *client.Client `gorm:"foreignKey:ClientID"`
	Status      string         `gorm:"column:status;not null"`
	StartDate   *time.Time     `gorm:"column:start_date"`
	EndDate     *time.Time     `gorm:"column:end_date"`
	Value       float64        `gorm:"column:value;not null;default:0"`
	Notes       string         `gorm:"column:notes"`
	CreatedBy   *string        `gorm:"column:created_by;type:uuid"`
	Creator     *user.User     `gorm:"foreignKey:CreatedBy;constraint:OnDelete:SET NULL"`
	CreatedAt   time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}

func (Project) TableName() string {
	return "projects"
}

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
