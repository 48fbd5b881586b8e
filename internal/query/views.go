// Package query holds the pure functions that derive views, search results,
// sort orders and counts from a snapshot of the ticket collection. Nothing in
// this package mutates its input.
package query

import (
	"time"

	"github.com/spec-kit/helpdesk/internal/domain"
)

// View names a predicate used to filter the collection for display.
type View string

const (
	ViewAll               View = "all"
	ViewPending           View = "pending"
	ViewResolutionOverdue View = "resolution-overdue"
	ViewResponseOverdue   View = "response-overdue"
	ViewResolutionDue     View = "resolution-due"
	ViewUnassigned        View = "unassigned"
	ViewUnsolved          View = "unsolved"
	ViewMyPending         View = "my-pending"
)

// Views lists every known view in display order.
var Views = []View{
	ViewPending,
	ViewResolutionOverdue,
	ViewResponseOverdue,
	ViewAll,
	ViewResolutionDue,
	ViewUnassigned,
	ViewUnsolved,
	ViewMyPending,
}

// ViewContext carries the caller-supplied inputs a predicate may depend on.
type ViewContext struct {
	Now          time.Time
	CurrentAgent string
}

// Predicate reports whether a ticket belongs to a view.
type Predicate func(t *domain.Ticket, vc ViewContext) bool

var predicates = map[View]Predicate{
	ViewPending:           isPending,
	ViewResolutionOverdue: IsResolutionOverdue,
	ViewResponseOverdue:   IsResponseOverdue,
	ViewResolutionDue:     isResolutionDue,
	ViewUnassigned:        isUnassigned,
	ViewUnsolved:          isUnsolved,
	ViewMyPending:         isMyPending,
}

// FilterByView returns the tickets matching the named view. Unknown names
// and ViewAll return the input unchanged.
func FilterByView(tickets []domain.Ticket, view View, vc ViewContext) []domain.Ticket {
	pred, ok := predicates[view]
	if !ok {
		return tickets
	}
	filtered := make([]domain.Ticket, 0, len(tickets))
	for i := range tickets {
		if pred(&tickets[i], vc) {
			filtered = append(filtered, tickets[i])
		}
	}
	return filtered
}

func isPending(t *domain.Ticket, _ ViewContext) bool {
	return t.Status == domain.TicketStatusPending
}

// IsResolutionOverdue reports an unsolved ticket whose resolution deadline passed.
func IsResolutionOverdue(t *domain.Ticket, vc ViewContext) bool {
	return t.ResolutionDue != nil &&
		t.ResolutionDue.Before(vc.Now) &&
		!t.Status.IsSolved()
}

// IsResponseOverdue reports an unsolved ticket whose last message came from
// the customer more than ResponseOverdueAfter ago.
func IsResponseOverdue(t *domain.Ticket, vc ViewContext) bool {
	last, ok := t.LastMessage()
	if !ok {
		return false
	}
	return last.Author.Role == domain.AuthorRoleCustomer &&
		vc.Now.Sub(last.CreatedAt) > domain.ResponseOverdueAfter &&
		!t.Status.IsSolved()
}

func isResolutionDue(t *domain.Ticket, vc ViewContext) bool {
	return t.ResolutionDue != nil &&
		!t.ResolutionDue.Before(vc.Now) &&
		!t.Status.IsSolved()
}

func isUnassigned(t *domain.Ticket, _ ViewContext) bool {
	return t.Assignee.IsUnassigned()
}

func isUnsolved(t *domain.Ticket, _ ViewContext) bool {
	switch t.Status {
	case domain.TicketStatusPending, domain.TicketStatusOpen, domain.TicketStatusOnHold:
		return true
	default:
		return false
	}
}

func isMyPending(t *domain.Ticket, vc ViewContext) bool {
	return t.Status == domain.TicketStatusPending && t.Assignee.Name == vc.CurrentAgent
}
