package dto

import (
	"time"

	"github.com/spec-kit/helpdesk/internal/domain"
)

// CreateTicketRequest payload.
type CreateTicketRequest struct {
	Title         string                  `json:"title"`
	Description   string                  `json:"description"`
	Status        domain.TicketStatus     `json:"status"`
	Priority      domain.TicketPriority   `json:"priority"`
	Type          string                  `json:"type"`
	Category      string                  `json:"category"`
	Tags          []string                `json:"tags"`
	Requester     domain.UserRef          `json:"requester"`
	Assignee      *domain.Assignee        `json:"assignee"`
	Watchers      []string                `json:"watchers"`
	Visibility    domain.TicketVisibility `json:"visibility"`
	Department    string                  `json:"department"`
	ResolutionDue *time.Time              `json:"resolutionDue"`
	IsPrivate     bool                    `json:"isPrivate"`
}

// Validate checks what the desk needs before a ticket can be opened.
func (r CreateTicketRequest) Validate() map[string]any {
	problems := map[string]any{}
	if r.Title == "" {
		problems["title"] = "required"
	}
	if r.Requester.Name == "" {
		problems["requester.name"] = "required"
	}
	if r.Status != "" && !r.Status.Valid() {
		problems["status"] = "unknown status"
	}
	if r.Priority != "" && !r.Priority.Valid() {
		problems["priority"] = "unknown priority"
	}
	if r.Visibility != "" && !r.Visibility.Valid() {
		problems["visibility"] = "unknown visibility"
	}
	return problems
}

// ToDraft converts the request. A missing assignee is auto-assigned and a
// missing priority is Normal.
func (r CreateTicketRequest) ToDraft() domain.TicketDraft {
	draft := domain.TicketDraft{
		Title:         r.Title,
		Description:   r.Description,
		Status:        r.Status,
		Priority:      r.Priority,
		Type:          r.Type,
		Category:      r.Category,
		Tags:          r.Tags,
		Requester:     r.Requester,
		Assignee:      domain.Assignee{Name: domain.AssigneeAutoAssign},
		Watchers:      r.Watchers,
		Visibility:    r.Visibility,
		Department:    r.Department,
		ResolutionDue: r.ResolutionDue,
		IsPrivate:     r.IsPrivate,
	}
	if r.Assignee != nil {
		draft.Assignee = *r.Assignee
	}
	if draft.Priority == "" {
		draft.Priority = domain.TicketPriorityNormal
	}
	if draft.Tags == nil {
		draft.Tags = []string{}
	}
	if draft.Watchers == nil {
		draft.Watchers = []string{}
	}
	return draft
}

// ValidatePatch rejects enum values the desk does not know.
func ValidatePatch(p domain.TicketPatch) map[string]any {
	problems := map[string]any{}
	if p.Status != nil && !p.Status.Valid() {
		problems["status"] = "unknown status"
	}
	if p.Priority != nil && !p.Priority.Valid() {
		problems["priority"] = "unknown priority"
	}
	if p.Visibility != nil && !p.Visibility.Valid() {
		problems["visibility"] = "unknown visibility"
	}
	return problems
}

// CreateMessageRequest payload. Author fields default to the configured
// agent when empty.
type CreateMessageRequest struct {
	Content        string `json:"content"`
	IsInternal     bool   `json:"isInternal"`
	AuthorID       string `json:"authorId"`
	AuthorName     string `json:"authorName"`
	AuthorInitials string `json:"authorInitials"`
}

// TicketListMeta describes how a list response was derived.
type TicketListMeta struct {
	View   string `json:"view"`
	Sort   string `json:"sort"`
	Search string `json:"q,omitempty"`
	Agent  string `json:"agent,omitempty"`
	Total  int    `json:"total"`
}
