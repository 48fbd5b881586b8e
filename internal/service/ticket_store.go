package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk/internal/domain"
	"github.com/spec-kit/helpdesk/internal/events"
	"github.com/spec-kit/helpdesk/internal/observability"
	"github.com/spec-kit/helpdesk/internal/query"
	"github.com/spec-kit/helpdesk/internal/repository"
	"github.com/spec-kit/helpdesk/internal/seed"
)

// TicketStore owns the canonical ticket collection. Every mutation runs to
// completion (mutate, persist, recount, publish) while holding the store
// lock, so readers never observe a half-applied change. Readers get deep
// copies and never see the canonical slice.
type TicketStore struct {
	mu      sync.Mutex
	tickets []domain.Ticket // newest first

	repo       repository.TicketRepository
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
	logger     *zap.Logger
	now        func() time.Time
	newID      func() string

	ticketsSubj *events.Subject[[]domain.Ticket]
	countsSubj  *events.Subject[domain.TicketCounts]
}

// TicketStoreDependencies bundles collaborators for the store. Repo is
// required; the rest fall back to defaults.
type TicketStoreDependencies struct {
	Repo       repository.TicketRepository
	Dispatcher events.Dispatcher
	Metrics    *observability.Metrics
	Logger     *zap.Logger
	Seeder     seed.Seeder
	Clock      func() time.Time
	IDs        func() string
}

// NewTicketStore loads the persisted collection, bootstrapping it from the
// seeder when nothing usable is stored, and publishes the first snapshot.
func NewTicketStore(ctx context.Context, deps TicketStoreDependencies) (*TicketStore, error) {
	if deps.Repo == nil {
		return nil, errors.New("ticket repository required")
	}
	s := &TicketStore{
		repo:        deps.Repo,
		dispatcher:  deps.Dispatcher,
		metrics:     deps.Metrics,
		logger:      deps.Logger,
		now:         deps.Clock,
		newID:       deps.IDs,
		ticketsSubj: events.NewSubject([]domain.Ticket{}),
		countsSubj:  events.NewSubject(domain.TicketCounts{}),
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.now == nil {
		s.now = systemNow
	}
	if s.newID == nil {
		s.newID = uuid.NewString
	}
	seeder := deps.Seeder
	if seeder == nil {
		seeder = seed.None
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tickets, err := s.repo.Load(ctx)
	switch {
	case err == nil:
		s.logger.Info("loaded tickets", zap.Int("count", len(tickets)))
		s.tickets = tickets
		s.publishLocked()
		return s, nil
	case errors.Is(err, repository.ErrNoTickets):
		s.logger.Info("no persisted tickets; seeding")
	default:
		s.logger.Warn("persisted tickets unreadable; seeding", zap.Error(err))
	}

	seeded, err := seeder(s.now())
	if err != nil {
		s.logger.Error("seed failed; starting empty", zap.Error(err))
		seeded = []domain.Ticket{}
	}
	s.commitLocked(ctx, "seed", seeded)
	return s, nil
}

func systemNow() time.Time {
	return time.Now().UTC().Round(0)
}

// All returns a snapshot of the collection in canonical (newest first) order.
func (s *TicketStore) All() []domain.Ticket {
	return domain.CloneTickets(s.ticketsSubj.Value())
}

// Counts returns the counts computed at the last commit.
func (s *TicketStore) Counts() domain.TicketCounts {
	return s.countsSubj.Value()
}

// GetByID returns a snapshot of one ticket.
func (s *TicketStore) GetByID(id string) (domain.Ticket, bool) {
	for _, t := range s.ticketsSubj.Value() {
		if t.ID == id {
			return t.Clone(), true
		}
	}
	return domain.Ticket{}, false
}

// SubscribeTickets attaches fn to the collection channel. fn receives the
// current snapshot immediately and every later one. fn must not mutate
// the store.
func (s *TicketStore) SubscribeTickets(fn func([]domain.Ticket)) (unsubscribe func()) {
	return s.ticketsSubj.Subscribe(fn)
}

// SubscribeCounts attaches fn to the counts channel.
func (s *TicketStore) SubscribeCounts(fn func(domain.TicketCounts)) (unsubscribe func()) {
	return s.countsSubj.Subscribe(fn)
}

// Query runs view, search and sort over the current snapshot.
func (s *TicketStore) Query(opts query.Options, currentAgent string) []domain.Ticket {
	return query.Apply(s.All(), opts, query.ViewContext{Now: s.now(), CurrentAgent: currentAgent})
}

// Create opens a ticket from draft and prepends it to the collection. The
// draft is not validated.
func (s *TicketStore) Create(ctx context.Context, draft domain.TicketDraft) domain.Ticket {
	s.mu.Lock()

	now := s.now()
	id := s.newID()
	ticket := domain.Ticket{
		ID:            id,
		Title:         draft.Title,
		Description:   draft.Description,
		Status:        draft.Status,
		Priority:      draft.Priority,
		Type:          draft.Type,
		Category:      draft.Category,
		Tags:          copyStrings(draft.Tags),
		Requester:     draft.Requester,
		Assignee:      draft.Assignee,
		Watchers:      copyStrings(draft.Watchers),
		Visibility:    draft.Visibility,
		Department:    draft.Department,
		IsPrivate:     draft.IsPrivate,
		CreatedAt:     now,
		UpdatedAt:     now,
		ResolutionDue: draft.ResolutionDue,
		Messages: []domain.TicketMessage{{
			ID:       s.newID(),
			TicketID: id,
			Author: domain.MessageAuthor{
				ID:       draft.Requester.ID,
				Name:     draft.Requester.Name,
				Initials: draft.Requester.Initials,
				Role:     domain.AuthorRoleCustomer,
			},
			Content:   draft.Description,
			CreatedAt: now,
		}},
	}
	if ticket.Status == "" {
		ticket.Status = domain.TicketStatusPending
	}
	if ticket.Visibility == "" {
		ticket.Visibility = domain.VisibilityPublic
	}
	if ticket.ResolutionDue == nil {
		due := domain.ResolutionDueFrom(ticket.Priority, now)
		ticket.ResolutionDue = &due
	} else {
		due := *ticket.ResolutionDue
		ticket.ResolutionDue = &due
	}

	next := make([]domain.Ticket, 0, len(s.tickets)+1)
	next = append(next, ticket)
	next = append(next, s.tickets...)
	s.commitLocked(ctx, "create", next)
	out := ticket.Clone()
	s.mu.Unlock()

	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: out.ID,
		Actor:    requesterActor(out.Requester),
		Payload: events.TicketCreatedPayload{
			Priority:      out.Priority,
			Title:         out.Title,
			ResolutionDue: out.ResolutionDue,
		},
	})
	return out
}

// Update merges patch into the ticket with the given id. ok is false when
// no such ticket exists.
func (s *TicketStore) Update(ctx context.Context, id string, patch domain.TicketPatch) (domain.Ticket, bool) {
	s.mu.Lock()

	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return domain.Ticket{}, false
	}
	before := s.tickets[idx]
	updated := before.Clone()
	fields := patch.Apply(&updated)
	touch(&updated, s.now())

	next := s.replaceLocked(idx, updated)
	s.commitLocked(ctx, "update", next)
	out := updated.Clone()
	s.mu.Unlock()

	for _, event := range updateEvents(before, out, fields) {
		s.publishEvent(ctx, event)
	}
	return out, true
}

// AppendMessage adds an agent reply to a ticket. A Pending ticket moves to
// Open; no other status changes. ok is false when the ticket is absent.
func (s *TicketStore) AppendMessage(ctx context.Context, ticketID string, in domain.MessageInput) (domain.TicketMessage, bool) {
	s.mu.Lock()

	idx := s.indexLocked(ticketID)
	if idx < 0 {
		s.mu.Unlock()
		return domain.TicketMessage{}, false
	}
	now := s.now()
	msg := domain.TicketMessage{
		ID:       s.newID(),
		TicketID: ticketID,
		Author: domain.MessageAuthor{
			ID:       in.AuthorID,
			Name:     in.AuthorName,
			Initials: in.AuthorInitials,
			Role:     domain.AuthorRoleAgent,
		},
		Content:    in.Content,
		CreatedAt:  now,
		IsInternal: in.IsInternal,
	}

	updated := s.tickets[idx].Clone()
	oldStatus := updated.Status
	updated.Messages = append(updated.Messages, msg)
	touch(&updated, now)
	if updated.Status == domain.TicketStatusPending {
		updated.Status = domain.TicketStatusOpen
	}

	next := s.replaceLocked(idx, updated)
	s.commitLocked(ctx, "append_message", next)
	s.mu.Unlock()

	actor := events.Actor{ID: in.AuthorID, Name: in.AuthorName, Role: domain.AuthorRoleAgent}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketMessageAdded,
		TicketID: ticketID,
		Actor:    actor,
		Payload: events.TicketMessageAddedPayload{
			MessageID:   msg.ID,
			AuthorRole:  msg.Author.Role,
			IsInternal:  msg.IsInternal,
			BodyPreview: stringPreview(msg.Content, 120),
		},
	})
	if updated.Status != oldStatus {
		s.publishEvent(ctx, events.Event{
			Type:     events.EventTicketStatusChanged,
			TicketID: ticketID,
			Actor:    actor,
			Payload: events.TicketStatusChangedPayload{
				OldStatus: oldStatus,
				NewStatus: updated.Status,
				Comment:   "agent_replied",
			},
		})
	}
	return msg, true
}

// Delete removes a ticket. It reports false, and changes nothing, when the
// id is absent.
func (s *TicketStore) Delete(ctx context.Context, id string) bool {
	s.mu.Lock()

	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return false
	}
	next := make([]domain.Ticket, 0, len(s.tickets)-1)
	next = append(next, s.tickets[:idx]...)
	next = append(next, s.tickets[idx+1:]...)
	s.commitLocked(ctx, "delete", next)
	s.mu.Unlock()

	s.publishEvent(ctx, events.Event{Type: events.EventTicketDeleted, TicketID: id})
	return true
}

// RecomputeCounts republishes counts for the unchanged collection so
// time-based SLA buckets stay current between mutations.
func (s *TicketStore) RecomputeCounts() domain.TicketCounts {
	s.mu.Lock()
	defer s.mu.Unlock()
	counts := query.Aggregate(s.tickets, s.now())
	s.countsSubj.Publish(counts)
	return counts
}

func (s *TicketStore) indexLocked(id string) int {
	for i := range s.tickets {
		if s.tickets[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *TicketStore) replaceLocked(idx int, t domain.Ticket) []domain.Ticket {
	next := make([]domain.Ticket, len(s.tickets))
	copy(next, s.tickets)
	next[idx] = t
	return next
}

// commitLocked installs next as the canonical collection, writes it through
// and publishes. A failed write is logged and counted; memory stays
// authoritative.
func (s *TicketStore) commitLocked(ctx context.Context, op string, next []domain.Ticket) {
	s.tickets = next
	if err := s.repo.Save(ctx, next); err != nil {
		s.metrics.RecordPersistFailure()
		s.logger.Error("persist tickets failed", zap.String("op", op), zap.Error(err))
	}
	s.publishLocked()
	s.metrics.RecordMutation(op)
}

// publishLocked installs the collection and its counts in both subjects
// before delivering either, so a subscriber of one channel reading the
// other always sees the same commit.
func (s *TicketStore) publishLocked() {
	s.ticketsSubj.Set(domain.CloneTickets(s.tickets))
	s.countsSubj.Set(query.Aggregate(s.tickets, s.now()))
	s.ticketsSubj.Deliver()
	s.countsSubj.Deliver()
}

func (s *TicketStore) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = s.now()
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("event handler failed", zap.String("event_type", string(event.Type)), zap.Error(err))
	}
}

// touch bumps UpdatedAt without ever moving it backwards.
func touch(t *domain.Ticket, now time.Time) {
	if now.Before(t.UpdatedAt) {
		return
	}
	t.UpdatedAt = now
}

func updateEvents(before, after domain.Ticket, fields []string) []events.Event {
	out := []events.Event{{
		Type:     events.EventTicketUpdated,
		TicketID: after.ID,
		Payload:  events.TicketUpdatedPayload{Fields: fields},
	}}
	if before.Status != after.Status {
		out = append(out, events.Event{
			Type:     events.EventTicketStatusChanged,
			TicketID: after.ID,
			Payload: events.TicketStatusChangedPayload{
				OldStatus: before.Status,
				NewStatus: after.Status,
			},
		})
	}
	if before.Priority != after.Priority {
		out = append(out, events.Event{
			Type:     events.EventTicketPriorityChanged,
			TicketID: after.ID,
			Payload: events.TicketPriorityChangedPayload{
				OldPriority: before.Priority,
				NewPriority: after.Priority,
			},
		})
	}
	if before.Assignee != after.Assignee {
		out = append(out, events.Event{
			Type:     events.EventTicketAssigned,
			TicketID: after.ID,
			Payload: events.TicketAssignedPayload{
				OldAssignee: before.Assignee,
				NewAssignee: after.Assignee,
			},
		})
	}
	return out
}

func requesterActor(u domain.UserRef) events.Actor {
	return events.Actor{ID: u.ID, Name: u.Name, Role: domain.AuthorRoleCustomer}
}

func copyStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func stringPreview(body string, limit int) string {
	runes := []rune(strings.TrimSpace(body))
	if len(runes) <= limit {
		return string(runes)
	}
	return string(runes[:limit-3]) + "..."
}
