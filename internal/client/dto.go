package client

import (
	"fmt"
	"strings"

	"github.com/frahmantamala/sashbid/internal"
	"github.com/frahmantamala/sashbid/internal/core/common/validation"
)

type CreateClientDTO struct {
	Name           string          `json:"name"`
	Email          string          `json:"email"`
	Phone          string          `json:"phone"`
	Address        Address         `json:"address"`
	ContactPersons []ContactPerson `json:"contactPersons"`
	Notes          string          `json:"notes"`
}

type UpdateClientDTO struct {
	Name           *string          `json:"name"`
	Email          *string          `json:"email"`
	Phone          *string          `json:"phone"`
	Address        *Address         `json:"address"`
	ContactPersons *[]ContactPerson `json:"contactPersons"`
	Notes          *string          `json:"notes"`
}

type ListFilter struct {
	Search string
}

func (d *CreateClientDTO) Validate() *internal.AppError {
	d.Email = strings.ToLower(strings.TrimSpace(d.Email))
	if d.Address.Country == "" {
		d.Address.Country = DefaultCountry
	}

	v := validation.NewValidator()
	v.Field("name", d.Name).Required().MaxLength(200)
	v.Field("email", d.Email).Required().Email()
	v.Field("phone", d.Phone).Required()
	addAddressRules(v, d.Address)
	addContactRules(v, d.ContactPersons)
	return v.Validate()
}

func (d *UpdateClientDTO) Validate() *internal.AppError {
	v := validation.NewValidator()
	if d.Name != nil {
		v.Field("name", *d.Name).Required().MaxLength(200)
	}
	if d.Email != nil {
		e := strings.ToLower(strings.TrimSpace(*d.Email))
		d.Email = &e
		v.Field("email", e).Required().Email()
	}
	if d.Phone != nil {
		v.Field("phone", *d.Phone).Required()
	}
	if d.Address != nil {
		if d.Address.Country == "" {
			d.Address.Country = DefaultCountry
		}
		addAddressRules(v, *d.Address)
	}
	if d.ContactPersons != nil {
		addContactRules(v, *d.ContactPersons)
	}
	return v.Validate()
}

func ValidateContact(cp ContactPerson) *internal.AppError {
	v := validation.NewValidator()
	addContactRules(v, []ContactPerson{cp})
	return v.Validate()
}

func addAddressRules(v *validation.ValidationBuilder, a Address) {
	v.Field("address.street", a.Street).Required()
	v.Field("address.city", a.City).Required()
	v.Field("address.state", a.State).Required()
	v.Field("address.zipCode", a.ZipCode).Required()
}

func addContactRules(v *validation.ValidationBuilder, contacts []ContactPerson) {
	for i, cp := range contacts {
		v.Field(fmt.Sprintf("contactPersons[%d].name", i), cp.Name).Required()
		v.Field(fmt.Sprintf("contactPersons[%d].email", i), cp.Email).Email()
	}
}

type ClientResponse struct {
	Client *Client `json:"client"`
}

type ClientMutationResponse struct {
	Message string  `json:"message"`
	Client  *Client `json:"client"`
}

type ClientsResponse struct {
	Count   int       `json:"count"`
	Clients []*Client `json:"clients"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
