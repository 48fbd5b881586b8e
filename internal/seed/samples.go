package seed

import (
	"time"

	"github.com/spec-kit/helpdesk/internal/domain"
)

const day = 24 * time.Hour

var sampleAgent = domain.Assignee{ID: "agent1", Name: "Likitha"}

// Samples seeds the demo desk shown on first launch.
func Samples(now time.Time) ([]domain.Ticket, error) {
	dashboardDue := now.Add(day)
	return []domain.Ticket{
		sampleTicket(now, sampleDef{
			id:          "1",
			title:       "Unable to access dashboard after login",
			description: "I am experiencing issues accessing the main dashboard after successful login. The page keeps loading indefinitely.",
			status:      domain.TicketStatusOpen,
			priority:    domain.TicketPriorityHigh,
			kind:        "Bug",
			category:    "Technical",
			tags:        []string{"login", "dashboard", "access"},
			requester: domain.UserRef{
				ID: "user1", Name: "John Smith", Email: "john.smith@example.com", Initials: "JS",
				ContactGroup: "Premium Support", TimeZone: "Eastern Standard Time",
			},
			created:       2 * day,
			updated:       day,
			resolutionDue: &dashboardDue,
		}),
		sampleTicket(now, sampleDef{
			id:          "2",
			title:       "Password reset email not received",
			description: "I requested a password reset but haven't received the email yet. Please help.",
			status:      domain.TicketStatusPending,
			priority:    domain.TicketPriorityNormal,
			kind:        "Request",
			category:    "Account",
			tags:        []string{"password", "email", "reset"},
			requester:   domain.UserRef{ID: "user2", Name: "Sarah Johnson", Email: "sarah.johnson@example.com", Initials: "SJ"},
			created:     day,
			updated:     day,
		}),
		sampleTicket(now, sampleDef{
			id:          "3",
			title:       "Feature request: Dark mode support",
			description: "Would love to see dark mode support in the application for better user experience.",
			status:      domain.TicketStatusOpen,
			priority:    domain.TicketPriorityLow,
			kind:        "Feature Request",
			category:    "Enhancement",
			tags:        []string{"dark-mode", "ui", "feature"},
			requester:   domain.UserRef{ID: "user3", Name: "Mike Davis", Email: "mike.davis@example.com", Initials: "MD"},
			created:     3 * day,
			updated:     3 * day,
		}),
		sampleTicket(now, sampleDef{
			id:          "4",
			title:       "Sample Ticket: How to Solve a Ticket in Bold Desk?",
			description: "This is a sample ticket to demonstrate the ticket management system functionality.",
			status:      domain.TicketStatusOnHold,
			priority:    domain.TicketPriorityNormal,
			kind:        "Question",
			category:    "General",
			tags:        []string{"sample", "demo"},
			requester:   domain.UserRef{ID: "user4", Name: "Demo User", Email: "demo@example.com", Initials: "DU"},
			created:     day,
			updated:     day,
		}),
	}, nil
}

type sampleDef struct {
	id, title, description string
	status                 domain.TicketStatus
	priority               domain.TicketPriority
	kind, category         string
	tags                   []string
	requester              domain.UserRef
	created, updated       time.Duration
	resolutionDue          *time.Time
}

func sampleTicket(now time.Time, s sampleDef) domain.Ticket {
	created := now.Add(-s.created)
	return domain.Ticket{
		ID:            s.id,
		Title:         s.title,
		Description:   s.description,
		Status:        s.status,
		Priority:      s.priority,
		Type:          s.kind,
		Category:      s.category,
		Tags:          s.tags,
		Requester:     s.requester,
		Assignee:      sampleAgent,
		Watchers:      []string{},
		Visibility:    domain.VisibilityPublic,
		CreatedAt:     created,
		UpdatedAt:     now.Add(-s.updated),
		ResolutionDue: s.resolutionDue,
		Messages: []domain.TicketMessage{{
			ID:       "msg" + s.id,
			TicketID: s.id,
			Author: domain.MessageAuthor{
				ID:       s.requester.ID,
				Name:     s.requester.Name,
				Initials: s.requester.Initials,
				Role:     domain.AuthorRoleCustomer,
			},
			Content:   s.description,
			CreatedAt: created,
		}},
	}
}
