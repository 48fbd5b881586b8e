package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"slices"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk/internal/api/dto"
	"github.com/spec-kit/helpdesk/internal/config"
	"github.com/spec-kit/helpdesk/internal/domain"
	"github.com/spec-kit/helpdesk/internal/query"
	apperrors "github.com/spec-kit/helpdesk/pkg/util/errorutil"
)

// TicketStore is the subset of the ticket store the handlers drive.
type TicketStore interface {
	Query(opts query.Options, currentAgent string) []domain.Ticket
	Counts() domain.TicketCounts
	GetByID(id string) (domain.Ticket, bool)
	Create(ctx context.Context, draft domain.TicketDraft) domain.Ticket
	Update(ctx context.Context, id string, patch domain.TicketPatch) (domain.Ticket, bool)
	AppendMessage(ctx context.Context, ticketID string, in domain.MessageInput) (domain.TicketMessage, bool)
	Delete(ctx context.Context, id string) bool
}

// TicketsHandler manages agent-facing ticket endpoints.
type TicketsHandler struct {
	store TicketStore
	agent config.HelpdeskConfig
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(store TicketStore, agent config.HelpdeskConfig) *TicketsHandler {
	return &TicketsHandler{store: store, agent: agent}
}

// ListTickets GET /tickets.
func (h *TicketsHandler) ListTickets(c *fiber.Ctx) error {
	opts, err := parseTicketQuery(c)
	if err != nil {
		return err
	}
	agent := c.Query("agent", h.agent.AgentName)
	tickets := h.store.Query(opts, agent)
	return c.JSON(fiber.Map{
		"data": tickets,
		"meta": dto.TicketListMeta{
			View:   string(opts.View),
			Sort:   string(opts.Sort),
			Search: opts.Search,
			Agent:  agent,
			Total:  len(tickets),
		},
	})
}

// Counts GET /tickets/counts.
func (h *TicketsHandler) Counts(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": h.store.Counts()})
}

// GetTicket GET /tickets/:id.
func (h *TicketsHandler) GetTicket(c *fiber.Ctx) error {
	id := c.Params("id")
	ticket, ok := h.store.GetByID(id)
	if !ok {
		return ticketNotFound(id)
	}
	return c.JSON(fiber.Map{"data": ticket})
}

// CreateTicket POST /tickets.
func (h *TicketsHandler) CreateTicket(c *fiber.Ctx) error {
	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if problems := req.Validate(); len(problems) > 0 {
		return apperrors.NewValidationError("invalid ticket", problems)
	}
	ticket := h.store.Create(c.UserContext(), req.ToDraft())
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": ticket})
}

// UpdateTicket PATCH /tickets/:id. Keys outside the editable set are
// rejected.
func (h *TicketsHandler) UpdateTicket(c *fiber.Ctx) error {
	var patch domain.TicketPatch
	dec := json.NewDecoder(bytes.NewReader(c.Body()))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&patch); err != nil {
		return apperrors.NewValidationError("invalid payload", map[string]any{"reason": err.Error()})
	}
	if problems := dto.ValidatePatch(patch); len(problems) > 0 {
		return apperrors.NewValidationError("invalid patch", problems)
	}
	id := c.Params("id")
	ticket, ok := h.store.Update(c.UserContext(), id, patch)
	if !ok {
		return ticketNotFound(id)
	}
	return c.JSON(fiber.Map{"data": ticket})
}

// AddMessage POST /tickets/:id/messages.
func (h *TicketsHandler) AddMessage(c *fiber.Ctx) error {
	var req dto.CreateMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Content) == "" {
		return apperrors.NewValidationError("content required", nil)
	}
	in := domain.MessageInput{
		Content:        req.Content,
		IsInternal:     req.IsInternal,
		AuthorID:       req.AuthorID,
		AuthorName:     req.AuthorName,
		AuthorInitials: req.AuthorInitials,
	}
	if in.AuthorName == "" {
		in.AuthorID = h.agent.AgentID
		in.AuthorName = h.agent.AgentName
		in.AuthorInitials = h.agent.AgentInitials
	}
	id := c.Params("id")
	msg, ok := h.store.AppendMessage(c.UserContext(), id, in)
	if !ok {
		return ticketNotFound(id)
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": msg})
}

// DeleteTicket DELETE /tickets/:id.
func (h *TicketsHandler) DeleteTicket(c *fiber.Ctx) error {
	id := c.Params("id")
	if !h.store.Delete(c.UserContext(), id) {
		return ticketNotFound(id)
	}
	return c.SendStatus(http.StatusNoContent)
}

func parseTicketQuery(c *fiber.Ctx) (query.Options, error) {
	opts := query.Options{
		View:   query.View(c.Query("view", string(query.ViewAll))),
		Search: c.Query("q"),
		Sort:   query.SortCriterion(c.Query("sort", string(query.DefaultSort))),
	}
	if !slices.Contains(query.Views, opts.View) {
		return opts, apperrors.NewValidationError("unknown view", map[string]any{"view": opts.View})
	}
	if !slices.Contains(query.SortCriteria, opts.Sort) {
		return opts, apperrors.NewValidationError("unknown sort", map[string]any{"sort": opts.Sort})
	}
	return opts, nil
}

func ticketNotFound(id string) error {
	return apperrors.NewNotFound("ticket", map[string]any{"id": id})
}
