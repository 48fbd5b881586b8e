package query

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/helpdesk/internal/domain"
)

var now = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

func ticket(id string, status domain.TicketStatus, priority domain.TicketPriority) domain.Ticket {
	created := now.Add(-time.Hour)
	return domain.Ticket{
		ID:        id,
		Title:     "ticket " + id,
		Status:    status,
		Priority:  priority,
		Requester: domain.UserRef{ID: "u" + id, Name: "Requester " + id, Email: "r" + id + "@example.com"},
		Assignee:  domain.Assignee{ID: "agent1", Name: "Likitha"},
		CreatedAt: created,
		UpdatedAt: created,
		Messages: []domain.TicketMessage{{
			ID:        "m" + id,
			TicketID:  id,
			Author:    domain.MessageAuthor{ID: "u" + id, Role: domain.AuthorRoleCustomer},
			CreatedAt: created,
		}},
	}
}

func ids(tickets []domain.Ticket) []string {
	out := make([]string, 0, len(tickets))
	for _, t := range tickets {
		out = append(out, t.ID)
	}
	return out
}

func TestAggregateCountsByStatus(t *testing.T) {
	tickets := []domain.Ticket{
		ticket("1", domain.TicketStatusPending, domain.TicketPriorityNormal),
		ticket("2", domain.TicketStatusOpen, domain.TicketPriorityNormal),
		ticket("3", domain.TicketStatusResolved, domain.TicketPriorityNormal),
	}

	assert.Equal(t, domain.TicketCounts{
		Pending:   1,
		Open:      1,
		Resolved:  1,
		Total:     3,
		Created:   3,
		Requested: 3,
	}, Aggregate(tickets, now))
	assert.Equal(t, domain.TicketCounts{}, Aggregate(nil, now))
}

func TestResponseOverdue(t *testing.T) {
	tk := ticket("1", domain.TicketStatusOpen, domain.TicketPriorityHigh)
	tk.Messages[0].CreatedAt = now.Add(-30 * time.Hour)
	vc := ViewContext{Now: now}

	assert.True(t, IsResponseOverdue(&tk, vc))
	assert.Equal(t, 1, Aggregate([]domain.Ticket{tk}, now).ResponseDue)

	tk.Status = domain.TicketStatusResolved
	assert.False(t, IsResponseOverdue(&tk, vc))
	assert.Equal(t, 0, Aggregate([]domain.Ticket{tk}, now).ResponseDue)

	tk.Status = domain.TicketStatusOpen
	tk.Messages = append(tk.Messages, domain.TicketMessage{
		Author:    domain.MessageAuthor{Role: domain.AuthorRoleAgent},
		CreatedAt: now.Add(-29 * time.Hour),
	})
	assert.False(t, IsResponseOverdue(&tk, vc), "agent replied last")

	tk.Messages = nil
	assert.False(t, IsResponseOverdue(&tk, vc))
}

func TestResponseOverdueBoundary(t *testing.T) {
	tk := ticket("1", domain.TicketStatusOpen, domain.TicketPriorityHigh)
	tk.Messages[0].CreatedAt = now.Add(-domain.ResponseOverdueAfter)
	assert.False(t, IsResponseOverdue(&tk, ViewContext{Now: now}))

	tk.Messages[0].CreatedAt = now.Add(-domain.ResponseOverdueAfter - time.Second)
	assert.True(t, IsResponseOverdue(&tk, ViewContext{Now: now}))
}

func TestResolutionOverdueAndDue(t *testing.T) {
	past := now.Add(-time.Minute)
	future := now.Add(time.Hour)
	overdue := ticket("1", domain.TicketStatusOpen, domain.TicketPriorityUrgent)
	overdue.ResolutionDue = &past
	upcoming := ticket("2", domain.TicketStatusOpen, domain.TicketPriorityUrgent)
	upcoming.ResolutionDue = &future
	solved := ticket("3", domain.TicketStatusClosed, domain.TicketPriorityUrgent)
	solved.ResolutionDue = &past
	noDue := ticket("4", domain.TicketStatusOpen, domain.TicketPriorityLow)

	tickets := []domain.Ticket{overdue, upcoming, solved, noDue}
	vc := ViewContext{Now: now}

	assert.Equal(t, []string{"1"}, ids(FilterByView(tickets, ViewResolutionOverdue, vc)))
	assert.Equal(t, []string{"2"}, ids(FilterByView(tickets, ViewResolutionDue, vc)))
	assert.Equal(t, 1, Aggregate(tickets, now).ResolutionDue)
}

func TestViews(t *testing.T) {
	pendingMine := ticket("1", domain.TicketStatusPending, domain.TicketPriorityNormal)
	pendingOther := ticket("2", domain.TicketStatusPending, domain.TicketPriorityNormal)
	pendingOther.Assignee = domain.Assignee{ID: "agent2", Name: "Ravi"}
	unassigned := ticket("3", domain.TicketStatusOpen, domain.TicketPriorityNormal)
	unassigned.Assignee = domain.Assignee{Name: domain.AssigneeUnassigned}
	auto := ticket("4", domain.TicketStatusOnHold, domain.TicketPriorityNormal)
	auto.Assignee = domain.Assignee{Name: domain.AssigneeAutoAssign}
	closed := ticket("5", domain.TicketStatusClosed, domain.TicketPriorityNormal)

	tickets := []domain.Ticket{pendingMine, pendingOther, unassigned, auto, closed}
	vc := ViewContext{Now: now, CurrentAgent: "Likitha"}

	cases := []struct {
		view View
		want []string
	}{
		{ViewPending, []string{"1", "2"}},
		{ViewMyPending, []string{"1"}},
		{ViewUnassigned, []string{"3", "4"}},
		{ViewUnsolved, []string{"1", "2", "3", "4"}},
		{ViewAll, []string{"1", "2", "3", "4", "5"}},
		{View("starred"), []string{"1", "2", "3", "4", "5"}},
	}
	for _, tc := range cases {
		t.Run(string(tc.view), func(t *testing.T) {
			assert.Equal(t, tc.want, ids(FilterByView(tickets, tc.view, vc)))
		})
	}
}

func TestFilterAllIsIdentity(t *testing.T) {
	tickets := []domain.Ticket{
		ticket("1", domain.TicketStatusPending, domain.TicketPriorityNormal),
		ticket("2", domain.TicketStatusClosed, domain.TicketPriorityLow),
	}
	assert.Equal(t, tickets, FilterByView(tickets, ViewAll, ViewContext{Now: now}))
}

func TestSearch(t *testing.T) {
	a := ticket("101", domain.TicketStatusOpen, domain.TicketPriorityNormal)
	a.Title = "VPN keeps dropping"
	b := ticket("102", domain.TicketStatusOpen, domain.TicketPriorityNormal)
	b.Requester.Email = "vpn.admin@example.com"
	c := ticket("103", domain.TicketStatusOpen, domain.TicketPriorityNormal)
	tickets := []domain.Ticket{a, b, c}

	assert.Equal(t, []string{"101", "102"}, ids(Search(tickets, "vPn")))
	assert.Equal(t, []string{"103"}, ids(Search(tickets, "103")))
	assert.Equal(t, []string{"102"}, ids(Search(tickets, "requester 102")))
	assert.Equal(t, tickets, Search(tickets, "   "))
	assert.Empty(t, Search(tickets, "printer"))
}

func TestSortTickets(t *testing.T) {
	low := ticket("low", domain.TicketStatusPending, domain.TicketPriorityLow)
	urgent := ticket("urgent", domain.TicketStatusOpen, domain.TicketPriorityUrgent)
	normalA := ticket("normalA", domain.TicketStatusResolved, domain.TicketPriorityNormal)
	normalB := ticket("normalB", domain.TicketStatusClosed, domain.TicketPriorityNormal)
	low.CreatedAt = now.Add(-3 * time.Hour)
	urgent.CreatedAt = now.Add(-1 * time.Hour)
	normalA.CreatedAt = now.Add(-2 * time.Hour)
	normalB.CreatedAt = now.Add(-2 * time.Hour)
	low.UpdatedAt = now
	tickets := []domain.Ticket{low, normalA, urgent, normalB}

	assert.Equal(t, []string{"urgent", "normalA", "normalB", "low"}, ids(SortTickets(tickets, SortCreatedDesc)))
	assert.Equal(t, "low", SortTickets(tickets, SortModifiedDesc)[0].ID)
	assert.Equal(t, []string{"urgent", "normalA", "normalB", "low"}, ids(SortTickets(tickets, SortPriorityDesc)))
	assert.Equal(t, []string{"normalB", "urgent", "low", "normalA"}, ids(SortTickets(tickets, SortStatusAsc)))
	assert.Equal(t, tickets, SortTickets(tickets, SortCriterion("Random")))

	// input untouched
	assert.Equal(t, []string{"low", "normalA", "urgent", "normalB"}, ids(tickets))
}

func TestSortIsIdempotent(t *testing.T) {
	tickets := []domain.Ticket{
		ticket("1", domain.TicketStatusOpen, domain.TicketPriorityLow),
		ticket("2", domain.TicketStatusOpen, domain.TicketPriorityHigh),
		ticket("3", domain.TicketStatusPending, domain.TicketPriorityHigh),
	}
	for _, criterion := range SortCriteria {
		once := SortTickets(tickets, criterion)
		assert.Equal(t, once, SortTickets(once, criterion), string(criterion))
	}
}

func TestApplyComposesViewSearchSort(t *testing.T) {
	a := ticket("1", domain.TicketStatusPending, domain.TicketPriorityLow)
	a.Title = "Billing question"
	b := ticket("2", domain.TicketStatusPending, domain.TicketPriorityUrgent)
	b.Title = "Billing outage"
	c := ticket("3", domain.TicketStatusOpen, domain.TicketPriorityUrgent)
	c.Title = "Billing export"
	tickets := []domain.Ticket{a, b, c}

	got := Apply(tickets, Options{View: ViewPending, Search: "billing", Sort: SortPriorityDesc}, ViewContext{Now: now})
	require.Len(t, got, 2)
	assert.Equal(t, []string{"2", "1"}, ids(got))

	assert.Equal(t, tickets, Apply(tickets, Options{}, ViewContext{Now: now}))
}
