package query

import (
	"time"

	"github.com/spec-kit/helpdesk/internal/domain"
)

// Aggregate computes the counts snapshot for a collection from scratch.
func Aggregate(tickets []domain.Ticket, now time.Time) domain.TicketCounts {
	vc := ViewContext{Now: now}
	var counts domain.TicketCounts
	for i := range tickets {
		t := &tickets[i]
		switch t.Status {
		case domain.TicketStatusPending:
			counts.Pending++
		case domain.TicketStatusOpen:
			counts.Open++
		case domain.TicketStatusResolved:
			counts.Resolved++
		case domain.TicketStatusClosed:
			counts.Closed++
		case domain.TicketStatusOnHold:
			counts.OnHold++
		}
		if IsResolutionOverdue(t, vc) {
			counts.ResolutionDue++
		}
		if IsResponseOverdue(t, vc) {
			counts.ResponseDue++
		}
	}
	counts.Total = len(tickets)
	counts.Created = counts.Total
	counts.Requested = counts.Total
	return counts
}
