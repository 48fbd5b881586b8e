package domain

import "time"

// TicketDraft is everything a caller supplies to open a ticket. The store
// assigns id, timestamps and the opening message.
type TicketDraft struct {
	Title         string           `json:"title"`
	Description   string           `json:"description"`
	Status        TicketStatus     `json:"status"`
	Priority      TicketPriority   `json:"priority"`
	Type          string           `json:"type"`
	Category      string           `json:"category"`
	Tags          []string         `json:"tags"`
	Requester     UserRef          `json:"requester"`
	Assignee      Assignee         `json:"assignee"`
	Watchers      []string         `json:"watchers"`
	Visibility    TicketVisibility `json:"visibility"`
	Department    string           `json:"department,omitempty"`
	ResolutionDue *time.Time       `json:"resolutionDue,omitempty"`
	IsPrivate     bool             `json:"isPrivate"`
}

// TicketPatch is a partial update. Only the listed attributes can be
// changed; a nil field is left untouched.
type TicketPatch struct {
	Title         *string           `json:"title,omitempty"`
	Description   *string           `json:"description,omitempty"`
	Status        *TicketStatus     `json:"status,omitempty"`
	Priority      *TicketPriority   `json:"priority,omitempty"`
	Type          *string           `json:"type,omitempty"`
	Category      *string           `json:"category,omitempty"`
	Tags          *[]string         `json:"tags,omitempty"`
	Requester     *UserRef          `json:"requester,omitempty"`
	Assignee      *Assignee         `json:"assignee,omitempty"`
	Watchers      *[]string         `json:"watchers,omitempty"`
	Visibility    *TicketVisibility `json:"visibility,omitempty"`
	Department    *string           `json:"department,omitempty"`
	ResolutionDue *time.Time        `json:"resolutionDue,omitempty"`
	IsPrivate     *bool             `json:"isPrivate,omitempty"`
	// ClearResolutionDue unsets the deadline. It wins over ResolutionDue.
	ClearResolutionDue bool `json:"clearResolutionDue,omitempty"`
}

// Apply merges the patch into t and returns the names of the fields it set.
// It does not touch UpdatedAt.
func (p TicketPatch) Apply(t *Ticket) []string {
	var fields []string
	set := func(name string) { fields = append(fields, name) }

	if p.Title != nil {
		t.Title = *p.Title
		set("title")
	}
	if p.Description != nil {
		t.Description = *p.Description
		set("description")
	}
	if p.Status != nil {
		t.Status = *p.Status
		set("status")
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
		set("priority")
	}
	if p.Type != nil {
		t.Type = *p.Type
		set("type")
	}
	if p.Category != nil {
		t.Category = *p.Category
		set("category")
	}
	if p.Tags != nil {
		t.Tags = cloneStrings(*p.Tags)
		set("tags")
	}
	if p.Requester != nil {
		t.Requester = *p.Requester
		set("requester")
	}
	if p.Assignee != nil {
		t.Assignee = *p.Assignee
		set("assignee")
	}
	if p.Watchers != nil {
		t.Watchers = cloneStrings(*p.Watchers)
		set("watchers")
	}
	if p.Visibility != nil {
		t.Visibility = *p.Visibility
		set("visibility")
	}
	if p.Department != nil {
		t.Department = *p.Department
		set("department")
	}
	switch {
	case p.ClearResolutionDue:
		t.ResolutionDue = nil
		set("resolutionDue")
	case p.ResolutionDue != nil:
		due := *p.ResolutionDue
		t.ResolutionDue = &due
		set("resolutionDue")
	}
	if p.IsPrivate != nil {
		t.IsPrivate = *p.IsPrivate
		set("isPrivate")
	}
	return fields
}

// MessageInput is a reply posted by an agent.
type MessageInput struct {
	Content        string `json:"content"`
	AuthorID       string `json:"authorId"`
	AuthorName     string `json:"authorName"`
	AuthorInitials string `json:"authorInitials"`
	IsInternal     bool   `json:"isInternal"`
}
