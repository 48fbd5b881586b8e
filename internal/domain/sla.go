package domain

import "time"

// ResponseOverdueAfter is how long a customer message may stay unanswered.
// TODO: expose through config once per-department SLA policies exist.
const ResponseOverdueAfter = 24 * time.Hour

// Resolution targets per priority.
const (
	ResolutionUrgent  = 4 * time.Hour
	ResolutionHigh    = 24 * time.Hour
	ResolutionNormal  = 72 * time.Hour
	ResolutionLow     = 168 * time.Hour
	ResolutionDefault = ResolutionNormal
)

// ResolutionWindow returns the resolution target for a priority.
func ResolutionWindow(p TicketPriority) time.Duration {
	switch p {
	case TicketPriorityUrgent:
		return ResolutionUrgent
	case TicketPriorityHigh:
		return ResolutionHigh
	case TicketPriorityNormal:
		return ResolutionNormal
	case TicketPriorityLow:
		return ResolutionLow
	default:
		return ResolutionDefault
	}
}

// ResolutionDueFrom computes the resolution deadline for a ticket created at from.
func ResolutionDueFrom(p TicketPriority, from time.Time) time.Time {
	return from.Add(ResolutionWindow(p))
}
