// Package ws streams assignment events to connected clients over WebSocket,
// backed by the Redis fan-out. Events published by any running instance
// reach clients connected to every instance.
package ws

import (
	"context"
	"net/http"

	"github.com/coder/websocket"
	"github.com/rs/zerolog/log"

	"github.com/gosuda/crew/internal/server/middleware"
	redisstore "github.com/gosuda/crew/internal/store/redis"
)

// Subscriber is the event source the hub reads from.
type Subscriber interface {
	Subscribe(ctx context.Context, channel string) (<-chan []byte, func(), error)
}

// Hub manages WebSocket connections backed by the event subscriber.
type Hub struct {
	events Subscriber
}

// NewHub creates a Hub reading from the given subscriber.
func NewHub(events Subscriber) *Hub {
	return &Hub{events: events}
}

// ServeAssignments handles WebSocket connections for the acting user's
// assignment events. Subscribes to the user's assignment channel and
// forwards each published event payload to the client.
func (h *Hub) ServeAssignments(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}

	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("websocket accept")
		return
	}
	defer conn.CloseNow()

	ctx := r.Context()
	channel := redisstore.UserChannel(user.ID)

	messages, cleanup, err := h.events.Subscribe(ctx, channel)
	if err != nil {
		log.Error().Err(err).Msg("websocket subscribe")
		_ = conn.Close(websocket.StatusInternalError, "subscribe failed")
		return
	}
	defer cleanup()

	for {
		select {
		case <-ctx.Done():
			_ = conn.Close(websocket.StatusNormalClosure, "connection closed")
			return
		case msg, msgOK := <-messages:
			if !msgOK {
				_ = conn.Close(websocket.StatusNormalClosure, "channel closed")
				return
			}
			if writeErr := conn.Write(ctx, websocket.MessageText, msg); writeErr != nil {
				log.Debug().Err(writeErr).Msg("websocket write")
				return
			}
		}
	}
}
