package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/clinicbook/clinicbook/internal/api/middleware"
	"github.com/clinicbook/clinicbook/internal/domain/providers"
)

// streamHeartbeat keeps idle connections from being reaped by proxies.
const streamHeartbeat = 30 * time.Second

// EventStreamHandler streams appointment lifecycle events to doctors over
// Server-Sent Events.
type EventStreamHandler struct {
	eventBus providers.EventBus
}

// NewEventStreamHandler creates a new event stream handler
func NewEventStreamHandler(eventBus providers.EventBus) *EventStreamHandler {
	return &EventStreamHandler{
		eventBus: eventBus,
	}
}

// StreamForDoctor handles GET /api/doctor/events. The connection stays open
// until the client disconnects; bookings and status changes for the signed-in
// doctor are pushed as they happen.
func (h *EventStreamHandler) StreamForDoctor(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFromContext(r.Context())

	flusher, ok := w.(http.Flusher)
	if !ok {
		respondWithError(w, http.StatusInternalServerError, "streaming not supported")
		return
	}

	events, err := h.eventBus.Subscribe(r.Context(), providers.GetDoctorChannel(identity.DoctorID))
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	// The stream must outlive the server write timeout.
	_ = http.NewResponseController(w).SetWriteDeadline(time.Time{})

	sendEvent(w, "connected", map[string]interface{}{
		"doctor_id": identity.DoctorID,
		"timestamp": time.Now(),
	})
	flusher.Flush()

	ticker := time.NewTicker(streamHeartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-ticker.C:
			sendEvent(w, "heartbeat", map[string]interface{}{
				"timestamp": time.Now(),
			})
			flusher.Flush()
		case event, ok := <-events:
			if !ok {
				return
			}
			sendEvent(w, string(event.Type), event)
			flusher.Flush()
		}
	}
}

// sendEvent writes one SSE frame
func sendEvent(w http.ResponseWriter, eventType string, data interface{}) {
	payload, err := json.Marshal(data)
	if err != nil {
		return
	}

	fmt.Fprintf(w, "event: %s\n", eventType)
	fmt.Fprintf(w, "data: %s\n\n", payload)
}
