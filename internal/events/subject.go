package events

import "sync"

// Subject holds the last published value and replays it to each new
// subscriber before delivering later values. Callbacks run synchronously in
// registration order on the publishing goroutine. A callback must not
// publish to or subscribe on the subject that is calling it.
type Subject[T any] struct {
	mu      sync.Mutex
	value   T
	nextID  uint64
	subs    []subscription[T]
	deliver sync.Mutex
}

type subscription[T any] struct {
	id uint64
	fn func(T)
}

// NewSubject creates a subject seeded with an initial value.
func NewSubject[T any](initial T) *Subject[T] {
	return &Subject[T]{value: initial}
}

// Value returns the last published value.
func (s *Subject[T]) Value() T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value
}

// Publish stores v and delivers it to every current subscriber.
func (s *Subject[T]) Publish(v T) {
	s.Set(v)
	s.Deliver()
}

// Set stores v without notifying anyone. Pair it with Deliver when several
// subjects must all hold their new values before any subscriber runs.
func (s *Subject[T]) Set(v T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.value = v
}

// Deliver sends the current value to every current subscriber.
func (s *Subject[T]) Deliver() {
	s.deliver.Lock()
	defer s.deliver.Unlock()

	s.mu.Lock()
	v := s.value
	subs := append([]subscription[T](nil), s.subs...)
	s.mu.Unlock()

	for _, sub := range subs {
		sub.fn(v)
	}
}

// Subscribe registers fn, immediately calls it with the current value and
// returns a function that detaches it. Calling the returned function more
// than once is harmless.
func (s *Subject[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	s.deliver.Lock()
	defer s.deliver.Unlock()

	s.mu.Lock()
	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, subscription[T]{id: id, fn: fn})
	current := s.value
	s.mu.Unlock()

	fn(current)

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

// Len reports the number of attached subscribers.
func (s *Subject[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}
