package domain

const (
	// AssigneeAutoAssign marks a ticket waiting for automatic assignment.
	AssigneeAutoAssign = "Auto Assign"
	// AssigneeUnassigned marks a ticket with nobody assigned.
	AssigneeUnassigned = "Unassigned"
)

// UserRef is the requester embedded in a ticket.
type UserRef struct {
	ID           string `json:"id" yaml:"id"`
	Name         string `json:"name" yaml:"name"`
	Email        string `json:"email" yaml:"email"`
	Initials     string `json:"initials" yaml:"initials"`
	ContactGroup string `json:"contactGroup,omitempty" yaml:"contactGroup,omitempty"`
	PhoneNumber  string `json:"phoneNumber,omitempty" yaml:"phoneNumber,omitempty"`
	MobileNumber string `json:"mobileNumber,omitempty" yaml:"mobileNumber,omitempty"`
	TimeZone     string `json:"timeZone,omitempty" yaml:"timeZone,omitempty"`
}

// Assignee is the agent a ticket is routed to.
type Assignee struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// IsUnassigned reports whether the name is one of the unassigned sentinels.
func (a Assignee) IsUnassigned() bool {
	return a.Name == AssigneeAutoAssign || a.Name == AssigneeUnassigned
}
