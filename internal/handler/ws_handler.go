package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/lophocvn/lophoc-backend/internal/config"
	"github.com/lophocvn/lophoc-backend/internal/middleware"
	ws "github.com/lophocvn/lophoc-backend/internal/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// buildUpgrader creates a WebSocket upgrader with origin validation.
// An empty allowedOrigins permits all origins (development mode).
func buildUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}
}

// WSHandler streams schedule board changes to connected clients. Events are
// carried over a Redis pub/sub channel so every server instance fans out
// mutations made anywhere.
type WSHandler struct {
	rdb      *redis.Client
	log      zerolog.Logger
	upgrader websocket.Upgrader
}

// NewWSHandler creates a new WSHandler.
func NewWSHandler(rdb *redis.Client, log zerolog.Logger, allowedOrigins []string) *WSHandler {
	return &WSHandler{
		rdb:      rdb,
		log:      log.With().Str("component", "ws_handler").Logger(),
		upgrader: buildUpgrader(allowedOrigins),
	}
}

// ScheduleStream godoc
// WS /ws/v1/schedules/stream
// Upgrades to WebSocket and forwards schedule events until the client
// disconnects.
func (h *WSHandler) ScheduleStream(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	wsLog := h.log.With().Int("user_id", claims.UserID).Logger()
	wsLog.Info().Msg("Client connected to schedule stream")

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	sub := h.rdb.Subscribe(ctx, config.CacheKey.ScheduleEventsChannel())
	defer sub.Close()

	// Reader: only pings are expected; a read error ends the session.
	// The reader never writes to the connection itself. gorilla allows a
	// single concurrent writer, so actions are handed to the pump, which
	// owns all outgoing frames.
	inbound := make(chan ws.RequestEnvelope)
	go func() {
		defer cancel()
		for {
			var msg ws.RequestEnvelope
			if err := ws.ReadJSON(conn, &msg); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					wsLog.Warn().Err(err).Msg("Unexpected close")
				}
				return
			}
			select {
			case inbound <- msg:
			case <-ctx.Done():
				return
			}
		}
	}()

	h.pump(ctx, wsLog, inbound, sub.Channel(), func(v interface{}) error {
		return ws.WriteTyped(conn, v)
	})
}

// pump drains client actions and Redis events onto one goroutine; send is
// the only writer of the connection for the whole session.
func (h *WSHandler) pump(
	ctx context.Context,
	log zerolog.Logger,
	inbound <-chan ws.RequestEnvelope,
	events <-chan *redis.Message,
	send func(v interface{}) error,
) {
	for {
		select {
		case <-ctx.Done():
			log.Debug().Msg("Schedule stream closed")
			return
		case msg := <-inbound:
			var reply interface{}
			switch msg.Action {
			case ws.ActionPing:
				reply = ws.PongResponse{Event: ws.EventPong}
			default:
				reply = ws.ErrorResponse{Event: ws.EventError, Error: "unknown action: " + string(msg.Action)}
			}
			if err := send(reply); err != nil {
				log.Debug().Err(err).Msg("Client write failed")
				return
			}
		case msg, ok := <-events:
			if !ok {
				return
			}
			var ev ws.ScheduleEvent
			if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
				log.Warn().Err(err).Msg("Malformed schedule event dropped")
				continue
			}
			if err := send(&ev); err != nil {
				log.Debug().Err(err).Msg("Client write failed")
				return
			}
		}
	}
}
