// Package seed provides the bootstrap tickets used when nothing has been
// persisted yet.
package seed

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/spec-kit/helpdesk/internal/domain"
)

// Seeder produces the initial collection. It is called at most once, when
// the durable store is empty or unreadable.
type Seeder func(now time.Time) ([]domain.Ticket, error)

// None seeds an empty desk.
func None(time.Time) ([]domain.Ticket, error) {
	return []domain.Ticket{}, nil
}

// fixture is the YAML layout of a seed file. Times are relative to the
// moment the seed runs so fixtures never go stale.
type fixture struct {
	Tickets []fixtureTicket `yaml:"tickets"`
}

type fixtureTicket struct {
	domain.Ticket `yaml:",inline"`
	CreatedAgo    time.Duration    `yaml:"createdAgo"`
	UpdatedAgo    time.Duration    `yaml:"updatedAgo"`
	ResolutionIn  *time.Duration   `yaml:"resolutionIn"`
	Thread        []fixtureMessage `yaml:"thread"`
}

type fixtureMessage struct {
	domain.TicketMessage `yaml:",inline"`
	Ago                  time.Duration `yaml:"ago"`
}

// FromFile returns a Seeder reading a YAML fixture at path.
func FromFile(path string) Seeder {
	return func(now time.Time) ([]domain.Ticket, error) {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read seed file: %w", err)
		}
		return Parse(raw, now)
	}
}

// Parse decodes a YAML fixture, resolving relative times against now.
func Parse(raw []byte, now time.Time) ([]domain.Ticket, error) {
	var f fixture
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("decode seed file: %w", err)
	}

	tickets := make([]domain.Ticket, 0, len(f.Tickets))
	for i, ft := range f.Tickets {
		t := ft.Ticket
		if t.ID == "" {
			return nil, fmt.Errorf("seed ticket %d: id required", i)
		}
		t.CreatedAt = now.Add(-ft.CreatedAgo)
		t.UpdatedAt = now.Add(-ft.UpdatedAgo)
		if t.UpdatedAt.Before(t.CreatedAt) {
			t.UpdatedAt = t.CreatedAt
		}
		if ft.ResolutionIn != nil {
			due := now.Add(*ft.ResolutionIn)
			t.ResolutionDue = &due
		}
		t.Messages = make([]domain.TicketMessage, 0, len(ft.Thread))
		for _, fm := range ft.Thread {
			msg := fm.TicketMessage
			msg.TicketID = t.ID
			msg.CreatedAt = now.Add(-fm.Ago)
			t.Messages = append(t.Messages, msg)
		}
		tickets = append(tickets, t)
	}
	return tickets, nil
}
