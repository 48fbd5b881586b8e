package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spec-kit/helpdesk/internal/domain"
	"github.com/spec-kit/helpdesk/internal/persistence"
)

const (
	// TicketsKey holds the serialized ticket collection.
	TicketsKey = "helpdesk_tickets"
	// MessagesKey is reserved for message data. Messages currently travel
	// embedded in their tickets.
	MessagesKey = "helpdesk_messages"
)

// ErrNoTickets is returned by Load when nothing has been persisted yet.
var ErrNoTickets = errors.New("no persisted tickets")

// TicketRepository loads and saves the whole ticket collection.
type TicketRepository interface {
	Load(ctx context.Context) ([]domain.Ticket, error)
	Save(ctx context.Context, tickets []domain.Ticket) error
}

type ticketRepository struct {
	blobs     persistence.BlobStore
	ticketKey string
}

// NewTicketRepository instantiates a repository over the given byte store.
// prefix namespaces the keys so several desks can share one store.
func NewTicketRepository(blobs persistence.BlobStore, prefix string) TicketRepository {
	return &ticketRepository{blobs: blobs, ticketKey: prefix + TicketsKey}
}

// Load decodes the persisted collection. Instants are rebuilt from their
// RFC 3339 encoding by the time.Time JSON decoder.
func (r *ticketRepository) Load(ctx context.Context) ([]domain.Ticket, error) {
	raw, err := r.blobs.Get(ctx, r.ticketKey)
	if errors.Is(err, persistence.ErrBlobNotFound) {
		return nil, ErrNoTickets
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", r.ticketKey, err)
	}

	var tickets []domain.Ticket
	if err := json.Unmarshal(raw, &tickets); err != nil {
		return nil, fmt.Errorf("decode %s: %w", r.ticketKey, err)
	}
	for i := range tickets {
		normalizeMessages(&tickets[i])
	}
	return tickets, nil
}

// Save overwrites the persisted collection wholesale.
func (r *ticketRepository) Save(ctx context.Context, tickets []domain.Ticket) error {
	if tickets == nil {
		tickets = []domain.Ticket{}
	}
	raw, err := json.Marshal(tickets)
	if err != nil {
		return fmt.Errorf("encode tickets: %w", err)
	}
	if err := r.blobs.Put(ctx, r.ticketKey, raw); err != nil {
		return fmt.Errorf("write %s: %w", r.ticketKey, err)
	}
	return nil
}

// normalizeMessages fills the ticket back-reference on messages written by
// older clients that left it empty.
func normalizeMessages(t *domain.Ticket) {
	for i := range t.Messages {
		if t.Messages[i].TicketID == "" {
			t.Messages[i].TicketID = t.ID
		}
	}
}
