package query

import (
	"github.com/spec-kit/helpdesk/internal/domain"
)

// Options combines a view, a search text and a sort criterion.
type Options struct {
	View   View
	Search string
	Sort   SortCriterion
}

// Apply filters by view, then by search text, then sorts. Sorting runs last
// so its comparator only sees the final candidate set.
func Apply(tickets []domain.Ticket, opts Options, vc ViewContext) []domain.Ticket {
	out := FilterByView(tickets, opts.View, vc)
	out = Search(out, opts.Search)
	return SortTickets(out, opts.Sort)
}
