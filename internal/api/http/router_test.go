package http

import (
	"context"
	"encoding/json"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk/internal/api/http/handlers"
	"github.com/spec-kit/helpdesk/internal/config"
	"github.com/spec-kit/helpdesk/internal/domain"
	"github.com/spec-kit/helpdesk/internal/observability"
	"github.com/spec-kit/helpdesk/internal/persistence"
	"github.com/spec-kit/helpdesk/internal/repository"
	"github.com/spec-kit/helpdesk/internal/seed"
	"github.com/spec-kit/helpdesk/internal/service"
)

var testNow = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

var testAgent = config.HelpdeskConfig{AgentID: "agent1", AgentName: "Likitha", AgentInitials: "LI"}

type testServer struct {
	app     *fiber.App
	store   *service.TicketStore
	metrics *observability.Metrics
}

func newTestServer(t *testing.T) testServer {
	t.Helper()
	blobs := persistence.NewMemoryBlobStore()
	metrics := observability.NewMetrics()
	store, err := service.NewTicketStore(context.Background(), service.TicketStoreDependencies{
		Repo:    repository.NewTicketRepository(blobs, ""),
		Metrics: metrics,
		Seeder:  seed.Samples,
		Clock:   func() time.Time { return testNow },
	})
	require.NoError(t, err)

	app := fiber.New()
	RegisterMiddlewares(app, zap.NewNop(), metrics, time.Second)
	RegisterRoutes(app, RouteConfig{
		Health:  handlers.NewHealthHandler("helpdesk", "test", config.BackendMemory, blobs),
		Tickets: handlers.NewTicketsHandler(store, testAgent),
		Metrics: handlers.NewMetricsHandler(metrics),
	})
	return testServer{app: app, store: store, metrics: metrics}
}

func (s testServer) do(t *testing.T, method, target, body string) (int, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := s.app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var decoded map[string]any
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &decoded), string(raw))
	}
	return resp.StatusCode, decoded
}

func dataList(t *testing.T, body map[string]any) []any {
	t.Helper()
	list, ok := body["data"].([]any)
	require.True(t, ok, "data is not a list: %v", body)
	return list
}

func dataObject(t *testing.T, body map[string]any) map[string]any {
	t.Helper()
	obj, ok := body["data"].(map[string]any)
	require.True(t, ok, "data is not an object: %v", body)
	return obj
}

func errorCode(body map[string]any) string {
	errObj, _ := body["error"].(map[string]any)
	code, _ := errObj["code"].(string)
	return code
}

func TestHealthRoutes(t *testing.T) {
	s := newTestServer(t)

	status, body := s.do(t, nethttp.MethodGet, "/health/live", "")
	assert.Equal(t, nethttp.StatusOK, status)
	assert.Equal(t, "alive", body["status"])

	status, body = s.do(t, nethttp.MethodGet, "/health/ready", "")
	assert.Equal(t, nethttp.StatusOK, status)
	assert.Equal(t, "ready", body["status"])
}

func TestListTicketsDefaults(t *testing.T) {
	s := newTestServer(t)

	status, body := s.do(t, nethttp.MethodGet, "/tickets", "")
	require.Equal(t, nethttp.StatusOK, status)
	list := dataList(t, body)
	require.Len(t, list, 4)

	// Created - Desc: ticket 3 is the oldest sample.
	last := list[3].(map[string]any)
	assert.Equal(t, "3", last["id"])

	meta := body["meta"].(map[string]any)
	assert.Equal(t, "all", meta["view"])
	assert.Equal(t, "Created - Desc", meta["sort"])
	assert.Equal(t, "Likitha", meta["agent"])
}

func TestListTicketsViewSearchSort(t *testing.T) {
	s := newTestServer(t)

	status, body := s.do(t, nethttp.MethodGet, "/tickets?view=pending", "")
	require.Equal(t, nethttp.StatusOK, status)
	list := dataList(t, body)
	require.Len(t, list, 1)
	assert.Equal(t, "2", list[0].(map[string]any)["id"])

	status, body = s.do(t, nethttp.MethodGet, "/tickets?q=SARAH", "")
	require.Equal(t, nethttp.StatusOK, status)
	assert.Len(t, dataList(t, body), 1)

	target := "/tickets?sort=" + url.QueryEscape("Priority - High to Low")
	status, body = s.do(t, nethttp.MethodGet, target, "")
	require.Equal(t, nethttp.StatusOK, status)
	list = dataList(t, body)
	assert.Equal(t, "High", list[0].(map[string]any)["priority"])
	assert.Equal(t, "Low", list[3].(map[string]any)["priority"])

	status, body = s.do(t, nethttp.MethodGet, "/tickets?view=my-pending&agent=Nobody", "")
	require.Equal(t, nethttp.StatusOK, status)
	assert.Empty(t, dataList(t, body))
}

func TestListTicketsRejectsUnknownViewAndSort(t *testing.T) {
	s := newTestServer(t)

	status, body := s.do(t, nethttp.MethodGet, "/tickets?view=starred", "")
	assert.Equal(t, nethttp.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION_FAILED", errorCode(body))

	status, _ = s.do(t, nethttp.MethodGet, "/tickets?sort=random", "")
	assert.Equal(t, nethttp.StatusBadRequest, status)
}

func TestCountsRoute(t *testing.T) {
	s := newTestServer(t)

	status, body := s.do(t, nethttp.MethodGet, "/tickets/counts", "")
	require.Equal(t, nethttp.StatusOK, status)
	counts := dataObject(t, body)
	assert.EqualValues(t, 4, counts["total"])
	assert.EqualValues(t, 1, counts["pending"])
	assert.EqualValues(t, 2, counts["open"])
	assert.EqualValues(t, 1, counts["onHold"])
}

func TestGetTicket(t *testing.T) {
	s := newTestServer(t)

	status, body := s.do(t, nethttp.MethodGet, "/tickets/1", "")
	require.Equal(t, nethttp.StatusOK, status)
	ticket := dataObject(t, body)
	assert.Equal(t, "Unable to access dashboard after login", ticket["title"])

	status, body = s.do(t, nethttp.MethodGet, "/tickets/404", "")
	assert.Equal(t, nethttp.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", errorCode(body))
}

func TestCreateTicket(t *testing.T) {
	s := newTestServer(t)

	status, body := s.do(t, nethttp.MethodPost, "/tickets", `{
		"title": "Printer on fire",
		"description": "Smoke everywhere",
		"priority": "Urgent",
		"requester": {"id": "u9", "name": "Ann Lee", "email": "ann@example.com", "initials": "AL"}
	}`)
	require.Equal(t, nethttp.StatusCreated, status)
	ticket := dataObject(t, body)
	assert.Equal(t, "Pending", ticket["status"])
	assert.Equal(t, domain.AssigneeAutoAssign, ticket["assignee"].(map[string]any)["name"])
	assert.Equal(t, testNow.Add(4*time.Hour).Format(time.RFC3339), ticket["resolutionDue"])

	messages := ticket["messages"].([]any)
	require.Len(t, messages, 1)
	first := messages[0].(map[string]any)
	assert.Equal(t, "Smoke everywhere", first["content"])
	assert.Equal(t, "customer", first["author"].(map[string]any)["type"])

	assert.Len(t, s.store.All(), 5)
}

func TestCreateTicketValidation(t *testing.T) {
	s := newTestServer(t)

	status, body := s.do(t, nethttp.MethodPost, "/tickets", `{"priority": "Whenever"}`)
	assert.Equal(t, nethttp.StatusBadRequest, status)
	details := body["error"].(map[string]any)["details"].(map[string]any)
	assert.Contains(t, details, "title")
	assert.Contains(t, details, "priority")

	status, _ = s.do(t, nethttp.MethodPost, "/tickets", `{not json`)
	assert.Equal(t, nethttp.StatusBadRequest, status)
	assert.Len(t, s.store.All(), 4)
}

func TestUpdateTicket(t *testing.T) {
	s := newTestServer(t)

	status, body := s.do(t, nethttp.MethodPatch, "/tickets/2", `{"status": "Resolved", "tags": ["done"]}`)
	require.Equal(t, nethttp.StatusOK, status)
	ticket := dataObject(t, body)
	assert.Equal(t, "Resolved", ticket["status"])
	assert.Equal(t, []any{"done"}, ticket["tags"])

	got, ok := s.store.GetByID("2")
	require.True(t, ok)
	assert.Equal(t, domain.TicketStatusResolved, got.Status)
	assert.Equal(t, testNow, got.UpdatedAt)
}

func TestUpdateTicketClearsResolutionDue(t *testing.T) {
	s := newTestServer(t)
	before, _ := s.store.GetByID("1")
	require.NotNil(t, before.ResolutionDue)

	status, body := s.do(t, nethttp.MethodPatch, "/tickets/1", `{"clearResolutionDue": true}`)
	require.Equal(t, nethttp.StatusOK, status)
	assert.NotContains(t, dataObject(t, body), "resolutionDue")

	after, _ := s.store.GetByID("1")
	assert.Nil(t, after.ResolutionDue)
}

func TestUpdateTicketRejectsUnknownKeys(t *testing.T) {
	s := newTestServer(t)
	before, _ := s.store.GetByID("2")

	status, body := s.do(t, nethttp.MethodPatch, "/tickets/2", `{"id": "99", "createdAt": "2020-01-01T00:00:00Z"}`)
	assert.Equal(t, nethttp.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION_FAILED", errorCode(body))

	status, _ = s.do(t, nethttp.MethodPatch, "/tickets/2", `{"status": "Snoozed"}`)
	assert.Equal(t, nethttp.StatusBadRequest, status)

	after, _ := s.store.GetByID("2")
	assert.Equal(t, before, after)
}

func TestUpdateTicketNotFound(t *testing.T) {
	s := newTestServer(t)
	status, _ := s.do(t, nethttp.MethodPatch, "/tickets/missing", `{"title": "x"}`)
	assert.Equal(t, nethttp.StatusNotFound, status)
}

func TestAddMessage(t *testing.T) {
	s := newTestServer(t)

	status, body := s.do(t, nethttp.MethodPost, "/tickets/2/messages", `{"content": "Resent the email."}`)
	require.Equal(t, nethttp.StatusCreated, status)
	msg := dataObject(t, body)
	author := msg["author"].(map[string]any)
	assert.Equal(t, "Likitha", author["name"])
	assert.Equal(t, "agent", author["type"])
	assert.Equal(t, "2", msg["ticketId"])

	got, _ := s.store.GetByID("2")
	assert.Equal(t, domain.TicketStatusOpen, got.Status)
	assert.Len(t, got.Messages, 2)

	status, _ = s.do(t, nethttp.MethodPost, "/tickets/2/messages", `{"content": "   "}`)
	assert.Equal(t, nethttp.StatusBadRequest, status)

	status, _ = s.do(t, nethttp.MethodPost, "/tickets/missing/messages", `{"content": "hello"}`)
	assert.Equal(t, nethttp.StatusNotFound, status)
}

func TestDeleteTicket(t *testing.T) {
	s := newTestServer(t)

	status, body := s.do(t, nethttp.MethodDelete, "/tickets/3", "")
	assert.Equal(t, nethttp.StatusNoContent, status)
	assert.Nil(t, body)

	status, _ = s.do(t, nethttp.MethodDelete, "/tickets/3", "")
	assert.Equal(t, nethttp.StatusNotFound, status)
	assert.Len(t, s.store.All(), 3)
}

func TestUnknownRouteAndMetrics(t *testing.T) {
	s := newTestServer(t)

	status, body := s.do(t, nethttp.MethodGet, "/nowhere", "")
	assert.Equal(t, nethttp.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", errorCode(body))

	s.do(t, nethttp.MethodDelete, "/tickets/1", "")
	status, body = s.do(t, nethttp.MethodGet, "/metrics", "")
	require.Equal(t, nethttp.StatusOK, status)
	mutations := dataObject(t, body)["mutations"].(map[string]any)
	assert.EqualValues(t, 1, mutations["delete"])
	assert.Contains(t, dataObject(t, body)["errors"], "/nowhere|GET|NOT_FOUND")
}

func TestRequestMetricsRecordFinalStatus(t *testing.T) {
	s := newTestServer(t)

	status, _ := s.do(t, nethttp.MethodGet, "/tickets/missing", "")
	require.Equal(t, nethttp.StatusNotFound, status)
	status, _ = s.do(t, nethttp.MethodPatch, "/tickets/2", `{"id": "9"}`)
	require.Equal(t, nethttp.StatusBadRequest, status)
	status, _ = s.do(t, nethttp.MethodGet, "/tickets/1", "")
	require.Equal(t, nethttp.StatusOK, status)

	requests := s.metrics.Snapshot().Requests
	assert.EqualValues(t, 1, requests["/tickets/:id|GET|404"])
	assert.EqualValues(t, 1, requests["/tickets/:id|PATCH|400"])
	assert.EqualValues(t, 1, requests["/tickets/:id|GET|200"])
}
