package client

import (
	"time"

	"github.com/frahmantamala/sashbid/internal/core/datamodel/user"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Address struct {
	Street  string `gorm:"column:street"`
	City    string `gorm:"column:city"`
	State   string `gorm:"column:state"`
	ZipCode string `gorm:"column:zip_code"`
	Country string `gorm:"column:country"`
}

// ContactPerson is stored inline on the client row; it has no key of its own.
type ContactPerson struct {
	Name     string `json:"name"`
	Position string `json:"position,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
}

type Client struct {
	ID             string          `gorm:"primaryKey;type:uuid"`
	Name           string          `gorm:"column:name;not null"`
	Email          string          `gorm:"column:email;uniqueIndex;not null"`
	Phone          string          `gorm:"column:phone;not null"`
	Address        Address         `gorm:"embedded;embeddedPrefix:address_"`
	ContactPersons []ContactPerson `gorm:"column:contact_persons;serializer:json;type:jsonb"`
	Notes          string          `gorm:"column:notes"`
	CreatedBy      *string         `gorm:"column:created_by;type:uuid"`
	Creator        *user.User      `gorm:"foreignKey:CreatedBy;constraint:OnDelete:SET NULL"`
	CreatedAt      time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

func (Client) TableName() string {
	return "clients"
}

func (c *Client) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
