package query

import (
	"strings"

	"github.com/spec-kit/helpdesk/internal/domain"
)

// Search keeps tickets whose title, requester name, requester email or id
// contains the query, case-insensitively. A blank query is a no-op.
func Search(tickets []domain.Ticket, q string) []domain.Ticket {
	term := strings.ToLower(strings.TrimSpace(q))
	if term == "" {
		return tickets
	}
	matched := make([]domain.Ticket, 0, len(tickets))
	for i := range tickets {
		if matchesTerm(&tickets[i], term) {
			matched = append(matched, tickets[i])
		}
	}
	return matched
}

func matchesTerm(t *domain.Ticket, term string) bool {
	fields := [...]string{t.Title, t.Requester.Name, t.Requester.Email, t.ID}
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}
