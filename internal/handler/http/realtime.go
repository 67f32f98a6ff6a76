package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/etrackhq/etrack-backend-go/internal/domain/employee"
	"github.com/etrackhq/etrack-backend-go/internal/pkg/jwt"
	"github.com/etrackhq/etrack-backend-go/internal/pkg/sse"
)

type RealtimeHandler interface {
	Stream(w http.ResponseWriter, r *http.Request)
}

type realtimeHandlerImpl struct {
	hub        *sse.Hub
	jwtService jwt.Service
}

func NewRealtimeHandler(hub *sse.Hub, jwtService jwt.Service) RealtimeHandler {
	return &realtimeHandlerImpl{
		hub:        hub,
		jwtService: jwtService,
	}
}

// Stream implements RealtimeHandler. The endpoint authenticates with a
// short-lived SSE token in the query string because EventSource cannot
// set an Authorization header. Employees receive their own updates;
// managers asking for scope=managers get every employee's updates.
func (h *realtimeHandlerImpl) Stream(w http.ResponseWriter, r *http.Request) {
	tokenStr := r.URL.Query().Get("token")
	if tokenStr == "" {
		http.Error(w, "Missing token", http.StatusUnauthorized)
		return
	}

	employeeID, role, err := h.jwtService.ValidateSSEToken(tokenStr)
	if err != nil {
		http.Error(w, "Invalid token", http.StatusUnauthorized)
		return
	}

	topic := employeeID
	if r.URL.Query().Get("scope") == "managers" {
		if role != employee.RoleManager {
			http.Error(w, "Manager access required", http.StatusForbidden)
			return
		}
		topic = sse.ManagersTopic
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	events, cleanup := h.hub.Subscribe(topic)
	defer cleanup()

	fmt.Fprintf(w, "event: connected\ndata: {\"status\":\"connected\",\"topic\":\"%s\"}\n\n", topic)
	flusher.Flush()

	keepalive := time.NewTicker(30 * time.Second)
	defer keepalive.Stop()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			data, err := json.Marshal(event.Data)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Event, data)
			flusher.Flush()

		case <-keepalive.C:
			fmt.Fprintf(w, "event: ping\ndata: {\"timestamp\":%d}\n\n", time.Now().Unix())
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}
