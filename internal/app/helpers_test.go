package app

import (
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"suspects/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeTimer is armed by fakeScheduler and only fires when a test says so
type fakeTimer struct {
	d       time.Duration
	f       func()
	stopped bool
}

func (t *fakeTimer) Stop() bool {
	wasPending := !t.stopped
	t.stopped = true
	return wasPending
}

// fakeScheduler records every deadline instead of starting wall clock timers
type fakeScheduler struct {
	mu     sync.Mutex
	timers []*fakeTimer
}

func (s *fakeScheduler) AfterFunc(d time.Duration, f func()) Timer {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := &fakeTimer{d: d, f: f}
	s.timers = append(s.timers, t)
	return t
}

func (s *fakeScheduler) timer(i int) *fakeTimer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timers[i]
}

func (s *fakeScheduler) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

// fire runs a timer's callback even if it was stopped, the way a
// time.AfterFunc callback that already started would.
func (s *fakeScheduler) fire(i int) {
	s.timer(i).f()
}

// recordingClient keeps every event the session sends it
type recordingClient struct {
	playerID string
	mu       sync.Mutex
	events   []*domain.GameEvent
}

func (c *recordingClient) Send(message interface{}) error {
	if event, ok := message.(*domain.GameEvent); ok {
		c.mu.Lock()
		c.events = append(c.events, event)
		c.mu.Unlock()
	}
	return nil
}

func (c *recordingClient) GetPlayerID() string { return c.playerID }

func (c *recordingClient) Close() error { return nil }

func (c *recordingClient) ofType(eventType domain.EventType) []*domain.GameEvent {
	c.mu.Lock()
	defer c.mu.Unlock()

	var out []*domain.GameEvent
	for _, e := range c.events {
		if e.Type == eventType {
			out = append(out, e)
		}
	}
	return out
}

// mockClient is a ClientConnection whose calls are asserted with testify/mock
type mockClient struct {
	mock.Mock
}

func (m *mockClient) Send(message interface{}) error {
	args := m.Called(message)
	return args.Error(0)
}

func (m *mockClient) GetPlayerID() string {
	args := m.Called()
	return args.String(0)
}

func (m *mockClient) Close() error {
	args := m.Called()
	return args.Error(0)
}
