package client

import (
	"time"

	clientDatamodel "github.com/frahmantamala/sashbid/internal/core/datamodel/client"
	coreuser "github.com/frahmantamala/sashbid/internal/core/user"
)

const DefaultCountry = "USA"

type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
	Country string `json:"country"`
}

type ContactPerson struct {
	Name     string `json:"name"`
	Position string `json:"position,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
}

type Client struct {
	ID             string            `json:"id"`
	Name           string            `json:"name"`
	Email          string            `json:"email"`
	Phone          string            `json:"phone"`
	Address        Address           `json:"address"`
	ContactPersons []ContactPerson   `json:"contactPersons"`
	Notes          string            `json:"notes,omitempty"`
	CreatedBy      *coreuser.Summary `json:"createdBy,omitempty"`
	CreatedAt      time.Time         `json:"createdAt"`
	UpdatedAt      time.Time         `json:"updatedAt"`
}

// Ref is the populated form of a client reference on projects and bids.
type Ref struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

func RefFromDataModel(m *clientDatamodel.Client, id string) *Ref {
	if m == nil {
		if id == "" {
			return nil
		}
		return &Ref{ID: id}
	}
	return &Ref{ID: m.ID, Name: m.Name, Email: m.Email, Phone: m.Phone}
}

func FromDataModel(m *clientDatamodel.Client) *Client {
	contacts := make([]ContactPerson, 0, len(m.ContactPersons))
	for _, cp := range m.ContactPersons {
		contacts = append(contacts, ContactPerson(cp))
	}
	return &Client{
		ID:    m.ID,
		Name:  m.Name,
		Email: m.Email,
		Phone: m.Phone,
		Address: Address{
			Street:  m.Address.Street,
			City:    m.Address.City,
			State:   m.Address.State,
			ZipCode: m.Address.ZipCode,
			Country: m.Address.Country,
		},
		ContactPersons: contacts,
		Notes:          m.Notes,
		CreatedBy:      coreuser.SummaryFrom(m.Creator, m.CreatedBy),
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func toDataContacts(in []ContactPerson) []clientDatamodel.ContactPerson {
	out := make([]clientDatamodel.ContactPerson, 0, len(in))
	for _, cp := range in {
		out = append(out, clientDatamodel.ContactPerson(cp))
	}
	return out
}

func toDataAddress(a Address) clientDatamodel.Address {
	return clientDatamodel.Address{
		Street:  a.Street,
		City:    a.City,
		State:   a.State,
		ZipCode: a.ZipCode,
		Country: a.Country,
	}
}
