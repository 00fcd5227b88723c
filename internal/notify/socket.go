package notify

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
)

// NewUpgrader accepts origins allowed by check; a nil check allows all.
func NewUpgrader(check func(origin string) bool) *websocket.Upgrader {
	return &websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if check == nil {
				return true
			}
			origin := r.Header.Get("Origin")
			return origin == "" || check(origin)
		},
	}
}

// Serve upgrades the request and streams room events to the socket until
// either side goes away. It blocks for the lifetime of the connection.
func (h *Hub) Serve(ctx context.Context, up *websocket.Upgrader, w http.ResponseWriter, r *http.Request, room string) error {
	conn, err := up.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	client := NewClient(room)
	if !h.Register(ctx, client) {
		return ctx.Err()
	}
	h.logger.Debug("websocket joined", zap.String("room", room))

	done := make(chan struct{})
	go func() {
		defer close(done)
		readUntilClosed(conn)
	}()

	writeLoop(conn, client.Send, done)

	h.Unregister(context.WithoutCancel(ctx), client)
	h.logger.Debug("websocket left", zap.String("room", room))
	return nil
}

// readUntilClosed discards inbound frames; it only keeps pong deadlines
// moving and notices the peer closing.
func readUntilClosed(conn *websocket.Conn) {
	conn.SetReadLimit(512)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func writeLoop(conn *websocket.Conn, send <-chan []byte, done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case msg, ok := <-send:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}
