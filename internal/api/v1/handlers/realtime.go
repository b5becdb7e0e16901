package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"meetingmind/internal/app/realtime"
)

const (
	realtimeWriteWait   = 10 * time.Second
	realtimeReadLimit   = 4096
	realtimeEventBuffer = 64
)

// RealtimeHandler streams the caller's row changes over a websocket
type RealtimeHandler struct {
	broker    realtime.Broker
	heartbeat time.Duration
	upgrader  websocket.Upgrader
	logger    *zap.Logger
}

// NewRealtimeHandler creates a realtime handler; an empty or "*" origin list accepts any origin
func NewRealtimeHandler(broker realtime.Broker, heartbeat time.Duration, allowedOrigins []string, logger *zap.Logger) *RealtimeHandler {
	if heartbeat <= 0 {
		heartbeat = 30 * time.Second
	}
	anyOrigin := len(allowedOrigins) == 0 || lo.Contains(allowedOrigins, "*")
	return &RealtimeHandler{
		broker:    broker,
		heartbeat: heartbeat,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return anyOrigin || origin == "" || lo.Contains(allowedOrigins, origin)
			},
		},
		logger: logger.Named("realtime"),
	}
}

// Stream handles GET /api/v1/realtime
//
// @Summary Realtime meeting changes
// @Description Upgrades to a websocket that pushes INSERT, UPDATE and DELETE events for the caller's meetings and insights, plus a PING every heartbeat interval
// @Tags realtime
// @Success 101 "Switching protocols"
// @Failure 401 {object} errors.APIError "Authentication required"
// @Router /realtime [get]
func (h *RealtimeHandler) Stream(c *gin.Context) {
	uid := userID(c)
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("Websocket upgrade failed", zap.String("user_id", uid), zap.Error(err))
		return
	}
	defer conn.Close()

	events := make(chan realtime.Event, realtimeEventBuffer)
	unsubscribe := h.broker.Subscribe(realtime.Filter{OwnerID: uid}, func(e realtime.Event) {
		if e.Type == realtime.EventPing {
			return
		}
		select {
		case events <- e:
		default:
			h.logger.Warn("Dropping event for slow subscriber",
				zap.String("user_id", uid),
				zap.String("record_id", e.RecordID),
			)
		}
	})
	defer unsubscribe()

	closed := make(chan struct{})
	go h.receive(conn, closed)

	h.logger.Debug("Subscriber connected", zap.String("user_id", uid))
	defer h.logger.Debug("Subscriber disconnected", zap.String("user_id", uid))

	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-closed:
			return
		case <-c.Request.Context().Done():
			return
		case e := <-events:
			if err := h.send(conn, e); err != nil {
				h.logger.Debug("Write failed", zap.String("user_id", uid), zap.Error(err))
				return
			}
		case <-ticker.C:
			if err := h.send(conn, realtime.Ping()); err != nil {
				h.logger.Debug("Heartbeat failed", zap.String("user_id", uid), zap.Error(err))
				return
			}
		}
	}
}

// receive drains client frames (heartbeats) until the connection drops
func (h *RealtimeHandler) receive(conn *websocket.Conn, closed chan<- struct{}) {
	defer close(closed)
	conn.SetReadLimit(realtimeReadLimit)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *RealtimeHandler) send(conn *websocket.Conn, e realtime.Event) error {
	if err := conn.SetWriteDeadline(time.Now().Add(realtimeWriteWait)); err != nil {
		return err
	}
	return conn.WriteJSON(e)
}
