package domain

import "time"

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusOpen     TicketStatus = "Open"
	TicketStatusPending  TicketStatus = "Pending"
	TicketStatusResolved TicketStatus = "Resolved"
	TicketStatusClosed   TicketStatus = "Closed"
	TicketStatusOnHold   TicketStatus = "On Hold"
)

// IsSolved reports whether the status ends the SLA clock.
func (s TicketStatus) IsSolved() bool {
	return s == TicketStatusResolved || s == TicketStatusClosed
}

// Valid reports whether s is one of the known statuses.
func (s TicketStatus) Valid() bool {
	switch s {
	case TicketStatusOpen, TicketStatusPending, TicketStatusResolved, TicketStatusClosed, TicketStatusOnHold:
		return true
	}
	return false
}

// TicketPriority enumerates SLA urgency.
type TicketPriority string

const (
	TicketPriorityLow    TicketPriority = "Low"
	TicketPriorityNormal TicketPriority = "Normal"
	TicketPriorityHigh   TicketPriority = "High"
	TicketPriorityUrgent TicketPriority = "Urgent"
)

// Rank orders priorities Low < Normal < High < Urgent. Unknown values rank 0.
func (p TicketPriority) Rank() int {
	switch p {
	case TicketPriorityUrgent:
		return 4
	case TicketPriorityHigh:
		return 3
	case TicketPriorityNormal:
		return 2
	case TicketPriorityLow:
		return 1
	default:
		return 0
	}
}

func (p TicketPriority) Valid() bool { return p.Rank() > 0 }

// TicketVisibility controls who can see a ticket.
type TicketVisibility string

const (
	VisibilityPublic   TicketVisibility = "Public"
	VisibilityPrivate  TicketVisibility = "Private"
	VisibilityInternal TicketVisibility = "Internal"
)

func (v TicketVisibility) Valid() bool {
	return v == VisibilityPublic || v == VisibilityPrivate || v == VisibilityInternal
}

// Ticket is the aggregate for support requests.
type Ticket struct {
	ID            string           `json:"id" yaml:"id"`
	Title         string           `json:"title" yaml:"title"`
	Description   string           `json:"description" yaml:"description"`
	Status        TicketStatus     `json:"status" yaml:"status"`
	Priority      TicketPriority   `json:"priority" yaml:"priority"`
	Type          string           `json:"type" yaml:"type"`
	Category      string           `json:"category" yaml:"category"`
	Tags          []string         `json:"tags" yaml:"tags"`
	Requester     UserRef          `json:"requester" yaml:"requester"`
	Assignee      Assignee         `json:"assignee" yaml:"assignee"`
	Watchers      []string         `json:"watchers" yaml:"watchers"`
	Visibility    TicketVisibility `json:"visibility" yaml:"visibility"`
	Department    string           `json:"department,omitempty" yaml:"department,omitempty"`
	CreatedAt     time.Time        `json:"createdAt" yaml:"createdAt"`
	UpdatedAt     time.Time        `json:"updatedAt" yaml:"updatedAt"`
	ResolutionDue *time.Time       `json:"resolutionDue,omitempty" yaml:"resolutionDue,omitempty"`
	Messages      []TicketMessage  `json:"messages" yaml:"messages"`
	IsPrivate     bool             `json:"isPrivate" yaml:"isPrivate"`
}

// LastMessage returns the most recent message, if any.
func (t *Ticket) LastMessage() (TicketMessage, bool) {
	if len(t.Messages) == 0 {
		return TicketMessage{}, false
	}
	return t.Messages[len(t.Messages)-1], true
}

// Clone returns a deep copy that shares no mutable state with t.
func (t Ticket) Clone() Ticket {
	out := t
	out.Tags = cloneStrings(t.Tags)
	out.Watchers = cloneStrings(t.Watchers)
	if t.ResolutionDue != nil {
		due := *t.ResolutionDue
		out.ResolutionDue = &due
	}
	if t.Messages != nil {
		out.Messages = make([]TicketMessage, len(t.Messages))
		copy(out.Messages, t.Messages)
	}
	return out
}

// CloneTickets deep-copies a collection.
func CloneTickets(tickets []Ticket) []Ticket {
	if tickets == nil {
		return nil
	}
	out := make([]Ticket, len(tickets))
	for i := range tickets {
		out[i] = tickets[i].Clone()
	}
	return out
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
