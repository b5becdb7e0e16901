package client

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"meetingmind/internal/app/realtime"
)

// RealtimeURL maps the API base URL to the websocket endpoint
func (c *Client) RealtimeURL() string {
	base := c.config.BaseURL
	switch {
	case strings.HasPrefix(base, "https://"):
		base = "wss://" + strings.TrimPrefix(base, "https://")
	case strings.HasPrefix(base, "http://"):
		base = "ws://" + strings.TrimPrefix(base, "http://")
	}
	return base + apiPrefix + "/realtime"
}

// Dialer returns a realtime.Dialer whose channels deliver every received event to onEvent
func (c *Client) Dialer(onEvent func(realtime.Event)) realtime.Dialer {
	return func(ctx context.Context) (realtime.Channel, error) {
		header := http.Header{}
		c.authorize(header)

		dialer := websocket.Dialer{HandshakeTimeout: c.config.Timeout}
		conn, resp, err := dialer.DialContext(ctx, c.RealtimeURL(), header)
		if err != nil {
			if resp != nil {
				return nil, fmt.Errorf("realtime handshake failed with status %d: %w", resp.StatusCode, err)
			}
			return nil, fmt.Errorf("realtime dial failed: %w", err)
		}

		ch := &wsChannel{conn: conn, done: make(chan struct{}), logger: c.logger}
		go ch.readLoop(onEvent)
		return ch, nil
	}
}

// wsChannel is a realtime.Channel over one websocket connection
type wsChannel struct {
	conn   *websocket.Conn
	logger *zap.Logger

	writeMu   sync.Mutex
	done      chan struct{}
	closeOnce sync.Once
}

func (w *wsChannel) Send(ctx context.Context, e realtime.Event) error {
	w.writeMu.Lock()
	defer w.writeMu.Unlock()

	deadline := time.Now().Add(10 * time.Second)
	if d, ok := ctx.Deadline(); ok {
		deadline = d
	}
	if err := w.conn.SetWriteDeadline(deadline); err != nil {
		return err
	}
	return w.conn.WriteJSON(e)
}

func (w *wsChannel) Done() <-chan struct{} {
	return w.done
}

func (w *wsChannel) Close() error {
	var err error
	w.closeOnce.Do(func() {
		w.writeMu.Lock()
		_ = w.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second))
		w.writeMu.Unlock()
		err = w.conn.Close()
	})
	return err
}

func (w *wsChannel) readLoop(onEvent func(realtime.Event)) {
	defer close(w.done)
	for {
		var e realtime.Event
		if err := w.conn.ReadJSON(&e); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				w.logger.Debug("realtime read ended", zap.Error(err))
			}
			return
		}
		if onEvent != nil {
			onEvent(e)
		}
	}
}
