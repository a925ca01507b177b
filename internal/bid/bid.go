package bid

import (
	"time"

	"github.com/frahmantamala/sashbid/internal/client"
	bidDatamodel "github.com/frahmantamala/sashbid/internal/core/datamodel/bid"
	coreuser "github.com/frahmantamala/sashbid/internal/core/user"
	"github.com/frahmantamala/sashbid/internal/project"
)

const (
	StatusDraft    = "draft"
	StatusSent     = "sent"
	StatusAccepted = "accepted"
	StatusRejected = "rejected"
)

var Statuses = []string{StatusDraft, StatusSent, StatusAccepted, StatusRejected}

type LineItem struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	Total       float64 `json:"total"`
}

type Bid struct {
	ID        string            `json:"id"`
	Project   *project.Ref      `json:"project"`
	Client    *client.Ref       `json:"client"`
	Items     []LineItem        `json:"items"`
	Subtotal  float64           `json:"subtotal"`
	Tax       float64           `json:"tax"`
	Total     float64           `json:"total"`
	Status    string            `json:"status"`
	DueDate   time.Time         `json:"dueDate"`
	Notes     string            `json:"notes,omitempty"`
	CreatedBy *coreuser.Summary `json:"createdBy,omitempty"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

func FromDataModel(m *bidDatamodel.Bid) *Bid {
	items := make([]LineItem, 0, len(m.Items))
	for _, it := range m.Items {
		items = append(items, LineItem(it))
	}
	return &Bid{
		ID:        m.ID,
		Project:   project.RefFromDataModel(m.Project, m.ProjectID),
		Client:    client.RefFromDataModel(m.Client, m.ClientID),
		Items:     items,
		Subtotal:  m.Subtotal,
		Tax:       m.Tax,
		Total:     m.Total,
		Status:    m.Status,
		DueDate:   m.DueDate,
		Notes:     m.Notes,
		CreatedBy: coreuser.SummaryFrom(m.Creator, m.CreatedBy),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// toDataItems drops caller-supplied totals; they are derived on save.
func toDataItems(in []LineItemDTO) []bidDatamodel.LineItem {
	out := make([]bidDatamodel.LineItem, 0, len(in))
	for _, it := range in {
		out = append(out, bidDatamodel.LineItem{
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
		})
	}
	return out
}
