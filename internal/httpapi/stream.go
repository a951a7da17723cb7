package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"nhooyr.io/websocket"

	"walletd/internal/events"
	"walletd/pkg/types"
)

const wsWriteTimeout = 10 * time.Second

// subscription forwards events of several categories into a buffered
// channel. The listener never blocks the emitter: when the buffer is full the
// event is dropped and counted.
type subscription struct {
	id   string
	bus  EventBus
	cats []events.Category
	l    *events.Listener
	ch   chan events.Event
}

func subscribe(bus EventBus, cats []events.Category) *subscription {
	s := &subscription{
		id:   uuid.NewString(),
		bus:  bus,
		cats: cats,
		ch:   make(chan events.Event, streamBuffer),
	}
	s.l = events.NewListener(func(e events.Event) {
		select {
		case s.ch <- e:
		default:
			streamDroppedTotal.WithLabelValues(events.MetricLabel(e.Category)).Inc()
		}
	})
	for _, c := range cats {
		bus.Subscribe(c, s.l)
	}
	return s
}

// close unsubscribes the listener. The channel is left open since a
// concurrent Emit may still hold the listener in its snapshot.
func (s *subscription) close() {
	for _, c := range s.cats {
		s.bus.Unsubscribe(c, s.l)
	}
}

// parseCategories accepts repeated and comma separated ?category= values.
func parseCategories(r *http.Request) []events.Category {
	seen := map[string]bool{}
	var out []events.Category
	for _, v := range r.URL.Query()["category"] {
		for _, c := range strings.Split(v, ",") {
			c = strings.TrimSpace(c)
			if c == "" || seen[c] {
				continue
			}
			seen[c] = true
			out = append(out, events.Category(c))
		}
	}
	return out
}

func toEvent(e events.Event) types.Event {
	return types.Event{Type: string(e.Category), Data: e.Payload, Timestamp: e.Timestamp}
}

// streamNDJSON writes one JSON event per line until the client goes away or
// the server shuts down.
func streamNDJSON(bus EventBus) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cats := parseCategories(r)
		if len(cats) == 0 {
			writeJSONError(w, http.StatusBadRequest, "at least one category is required")
			return
		}
		flusher, ok := w.(http.Flusher)
		if !ok {
			writeJSONError(w, http.StatusInternalServerError, "streaming unsupported")
			return
		}
		ctx, cancel := streamContext(r.Context())
		defer cancel()

		sub := subscribe(bus, cats)
		defer sub.close()
		streamsActive.WithLabelValues("ndjson").Inc()
		defer streamsActive.WithLabelValues("ndjson").Dec()
		zlog.Debug().Str("stream", sub.id).Interface("categories", cats).Msg("ndjson stream opened")

		w.Header().Set("Content-Type", "application/x-ndjson")
		w.Header().Set("Cache-Control", "no-cache")
		w.WriteHeader(http.StatusOK)
		flusher.Flush()

		enc := json.NewEncoder(w)
		for {
			select {
			case <-ctx.Done():
				zlog.Debug().Str("stream", sub.id).Msg("ndjson stream closed")
				return
			case e := <-sub.ch:
				if err := enc.Encode(toEvent(e)); err != nil {
					zlog.Debug().Err(err).Str("stream", sub.id).Msg("ndjson write failed")
					return
				}
				flusher.Flush()
			}
		}
	}
}

// streamWebsocket sends each event as a JSON text message.
func streamWebsocket(bus EventBus) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cats := parseCategories(r)
		if len(cats) == 0 {
			writeJSONError(w, http.StatusBadRequest, "at least one category is required")
			return
		}
		opts := &websocket.AcceptOptions{}
		if corsEnabled {
			opts.OriginPatterns = corsAllowedOrigins
		}
		conn, err := websocket.Accept(w, r, opts)
		if err != nil {
			return
		}
		defer conn.Close(websocket.StatusNormalClosure, "stream closed")

		ctx, cancel := streamContext(r.Context())
		defer cancel()
		// Incoming messages are ignored; CloseRead cancels ctx when the peer closes.
		ctx = conn.CloseRead(ctx)

		sub := subscribe(bus, cats)
		defer sub.close()
		streamsActive.WithLabelValues("websocket").Inc()
		defer streamsActive.WithLabelValues("websocket").Dec()
		zlog.Debug().Str("stream", sub.id).Interface("categories", cats).Msg("websocket stream opened")

		if err := pumpWebsocket(ctx, conn, sub); err != nil {
			if websocket.CloseStatus(err) == -1 && ctx.Err() == nil {
				_ = conn.Close(websocket.StatusInternalError, "stream error")
			}
		}
	}
}

func pumpWebsocket(ctx context.Context, conn *websocket.Conn, sub *subscription) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case e := <-sub.ch:
			if err := writeWebsocketEvent(ctx, conn, e); err != nil {
				return err
			}
		}
	}
}

func writeWebsocketEvent(ctx context.Context, conn *websocket.Conn, e events.Event) error {
	data, err := json.Marshal(toEvent(e))
	if err != nil {
		return err
	}
	writeCtx, cancel := context.WithTimeout(ctx, wsWriteTimeout)
	defer cancel()
	return conn.Write(writeCtx, websocket.MessageText, data)
}
