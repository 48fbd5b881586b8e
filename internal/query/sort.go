package query

import (
	"sort"

	"github.com/spec-kit/helpdesk/internal/domain"
)

// SortCriterion names a sort order offered to the UI.
type SortCriterion string

const (
	SortCreatedDesc  SortCriterion = "Created - Desc"
	SortModifiedDesc SortCriterion = "Modified - Desc"
	SortPriorityDesc SortCriterion = "Priority - High to Low"
	SortStatusAsc    SortCriterion = "Status - A to Z"
)

// DefaultSort is the order the ticket list opens with.
const DefaultSort = SortCreatedDesc

// SortCriteria lists the supported criteria.
var SortCriteria = []SortCriterion{SortCreatedDesc, SortModifiedDesc, SortPriorityDesc, SortStatusAsc}

var comparators = map[SortCriterion]func(a, b *domain.Ticket) bool{
	SortCreatedDesc: func(a, b *domain.Ticket) bool {
		return a.CreatedAt.After(b.CreatedAt)
	},
	SortModifiedDesc: func(a, b *domain.Ticket) bool {
		return a.UpdatedAt.After(b.UpdatedAt)
	},
	SortPriorityDesc: func(a, b *domain.Ticket) bool {
		return a.Priority.Rank() > b.Priority.Rank()
	},
	SortStatusAsc: func(a, b *domain.Ticket) bool {
		return a.Status < b.Status
	},
}

// SortTickets returns a sorted copy of tickets. Sorting is stable. An
// unrecognised criterion returns the input unchanged.
func SortTickets(tickets []domain.Ticket, criterion SortCriterion) []domain.Ticket {
	less, ok := comparators[criterion]
	if !ok {
		return tickets
	}
	sorted := make([]domain.Ticket, len(tickets))
	copy(sorted, tickets)
	sort.SliceStable(sorted, func(i, j int) bool {
		return less(&sorted[i], &sorted[j])
	})
	return sorted
}
