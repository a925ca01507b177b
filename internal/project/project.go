package project

import (
	"time"

	"github.com/frahmantamala/sashbid/internal/client"
	projectDatamodel "github.com/frahmantamala/sashbid/internal/core/datamodel/project"
	coreuser "github.com/frahmantamala/sashbid/internal/core/user"
)

const (
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

// Statuses in lifecycle order.
var Statuses = []string{StatusPending, StatusInProgress, StatusCompleted, StatusCancelled}

type Project struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	Client      *client.Ref       `json:"client"`
	Status      string            `json:"status"`
	StartDate   *time.Time        `json:"startDate,omitempty"`
	EndDate     *time.Time        `json:"endDate,omitempty"`
	Value       float64           `json:"value"`
	Notes       string            `json:"notes,omitempty"`
	CreatedBy   *coreuser.Summary `json:"createdBy,omitempty"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

// Ref is the populated form of a project reference on bids.
type Ref struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Status string `json:"status,omitempty"`
}

func RefFromDataModel(m *projectDatamodel.Project, id string) *Ref {
	if m == nil {
		if id == "" {
			return nil
		}
		return &Ref{ID: id}
	}
	return &Ref{ID: m.ID, Name: m.Name, Status: m.Status}
}

func FromDataModel(m *projectDatamodel.Project) *Project {
	return &Project{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		Client:      client.RefFromDataModel(m.Client, m.ClientID),
		Status:      m.Status,
		StartDate:   m.StartDate,
		EndDate:     m.EndDate,
		Value:       m.Value,
		Notes:       m.Notes,
		CreatedBy:   coreuser.SummaryFrom(m.Creator, m.CreatedBy),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
