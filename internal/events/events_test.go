package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubjectReplaysLastValue(t *testing.T) {
	s := NewSubject(1)
	s.Publish(2)

	var got []int
	unsubscribe := s.Subscribe(func(v int) { got = append(got, v) })
	defer unsubscribe()

	assert.Equal(t, []int{2}, got)

	s.Publish(3)
	assert.Equal(t, []int{2, 3}, got)
	assert.Equal(t, 3, s.Value())
}

func TestSubjectDeliversInRegistrationOrder(t *testing.T) {
	s := NewSubject("")
	var order []string
	s.Subscribe(func(v string) {
		if v != "" {
			order = append(order, "first:"+v)
		}
	})
	s.Subscribe(func(v string) {
		if v != "" {
			order = append(order, "second:"+v)
		}
	})

	s.Publish("x")
	assert.Equal(t, []string{"first:x", "second:x"}, order)
}

func TestSubjectUnsubscribe(t *testing.T) {
	s := NewSubject(0)
	calls := 0
	unsubscribe := s.Subscribe(func(int) { calls++ })
	require.Equal(t, 1, s.Len())

	unsubscribe()
	unsubscribe()
	s.Publish(5)

	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, s.Len())
}

func TestSubjectCallbackMayReadValue(t *testing.T) {
	s := NewSubject(0)
	var seen int
	s.Subscribe(func(int) { seen = s.Value() })

	s.Publish(9)
	assert.Equal(t, 9, seen)
}

func TestSubjectSetDefersDelivery(t *testing.T) {
	s := NewSubject(0)
	var got []int
	unsubscribe := s.Subscribe(func(v int) { got = append(got, v) })
	defer unsubscribe()

	s.Set(5)
	assert.Equal(t, 5, s.Value())
	assert.Equal(t, []int{0}, got)

	s.Deliver()
	assert.Equal(t, []int{0, 5}, got)
}

func TestDispatcherRunsAllHandlers(t *testing.T) {
	d := NewInMemoryDispatcher()
	var calls []string
	d.Subscribe(EventTicketCreated, func(_ context.Context, e Event) error {
		calls = append(calls, "a:"+e.TicketID)
		return errors.New("boom")
	})
	d.Subscribe(EventTicketCreated, func(_ context.Context, e Event) error {
		calls = append(calls, "b:"+e.TicketID)
		return nil
	})
	d.Subscribe(EventTicketDeleted, func(context.Context, Event) error {
		calls = append(calls, "deleted")
		return nil
	})

	err := d.Publish(context.Background(), Event{Type: EventTicketCreated, TicketID: "42"})

	assert.EqualError(t, err, "boom")
	assert.Equal(t, []string{"a:42", "b:42"}, calls)
}
