package user

import userDatamodel "github.com/frahmantamala/sashbid/internal/core/datamodel/user"

// SummaryFrom renders a createdBy reference. A dangling reference keeps its id.
func SummaryFrom(m *userDatamodel.User, id *string) *Summary {
	if m != nil {
		return &Summary{ID: m.ID, Name: m.Name, Email: m.Email}
	}
	if id == nil || *id == "" {
		return nil
	}
	return &Summary{ID: *id}
}

// Ref turns an actor id into a nullable createdBy column value.
func Ref(id string) *string {
	if id == "" {
		return nil
	}
	return &id
}
