package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/clinicbook/clinicbook/internal/api/handlers"
	"github.com/clinicbook/clinicbook/internal/api/middleware"
	"github.com/clinicbook/clinicbook/internal/domain/entities"
	"github.com/clinicbook/clinicbook/internal/domain/providers"
)

// fakeEventBus delivers published events to in-process subscribers.
type fakeEventBus struct {
	mu          sync.Mutex
	subscribers map[string][]chan *entities.AppointmentEvent
}

func newFakeEventBus() *fakeEventBus {
	return &fakeEventBus{
		subscribers: make(map[string][]chan *entities.AppointmentEvent),
	}
}

func (b *fakeEventBus) Publish(ctx context.Context, channel string, event *entities.AppointmentEvent) error {
	b.mu.Lock()
	channels := append([]chan *entities.AppointmentEvent(nil), b.subscribers[channel]...)
	b.mu.Unlock()

	for _, ch := range channels {
		select {
		case ch <- event:
		default:
		}
	}
	return nil
}

func (b *fakeEventBus) Subscribe(ctx context.Context, channel string) (<-chan *entities.AppointmentEvent, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	ch := make(chan *entities.AppointmentEvent, 10)
	b.subscribers[channel] = append(b.subscribers[channel], ch)
	return ch, nil
}

func (b *fakeEventBus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, channels := range b.subscribers {
		for _, ch := range channels {
			close(ch)
		}
	}
	b.subscribers = make(map[string][]chan *entities.AppointmentEvent)
	return nil
}

func (b *fakeEventBus) subscriberCount(channel string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subscribers[channel])
}

// streamRequest builds a doctor-scoped stream request on a cancelable context.
func streamRequest(ctx context.Context, doctorID string) *http.Request {
	req := httptest.NewRequest("GET", "/api/doctor/events", nil)
	identity := &middleware.Identity{
		UserID:   "user-2",
		Role:     entities.RoleDoctor,
		Name:     "Dr. Amina Yusuf",
		DoctorID: doctorID,
		Token:    "tok-2",
	}
	return req.WithContext(middleware.ContextWithIdentity(ctx, identity))
}

func TestEventStreamHandler_StreamForDoctor(t *testing.T) {
	t.Run("opens the stream on the doctor's channel", func(t *testing.T) {
		bus := newFakeEventBus()
		handler := handlers.NewEventStreamHandler(bus)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		w := httptest.NewRecorder()
		done := make(chan struct{})
		go func() {
			handler.StreamForDoctor(w, streamRequest(ctx, "doc-1"))
			close(done)
		}()

		assert.Eventually(t, func() bool {
			return bus.subscriberCount(providers.GetDoctorChannel("doc-1")) == 1
		}, time.Second, 5*time.Millisecond)

		cancel()
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("handler did not exit after disconnect")
		}

		result := w.Result()
		assert.Equal(t, "text/event-stream", result.Header.Get("Content-Type"))
		assert.Equal(t, "no-cache", result.Header.Get("Cache-Control"))
		assert.Contains(t, w.Body.String(), "event: connected")
		assert.Contains(t, w.Body.String(), "doc-1")
	})

	t.Run("forwards the doctor's appointment events", func(t *testing.T) {
		bus := newFakeEventBus()
		handler := handlers.NewEventStreamHandler(bus)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		w := httptest.NewRecorder()
		done := make(chan struct{})
		go func() {
			handler.StreamForDoctor(w, streamRequest(ctx, "doc-2"))
			close(done)
		}()

		channel := providers.GetDoctorChannel("doc-2")
		assert.Eventually(t, func() bool {
			return bus.subscriberCount(channel) == 1
		}, time.Second, 5*time.Millisecond)

		err := bus.Publish(context.Background(), channel, &entities.AppointmentEvent{
			ID:            "evt-1",
			Type:          entities.AppointmentEventBooked,
			AppointmentID: "apt-1",
			DoctorID:      "doc-2",
			Status:        entities.AppointmentStatusBooked,
			OccurredAt:    time.Now(),
		})
		assert.NoError(t, err)

		// Give the handler a moment to drain the event before closing.
		time.Sleep(100 * time.Millisecond)

		cancel()
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("handler did not exit after disconnect")
		}

		body := w.Body.String()
		assert.Contains(t, body, "event: "+string(entities.AppointmentEventBooked))
		assert.Contains(t, body, "apt-1")
	})
}
