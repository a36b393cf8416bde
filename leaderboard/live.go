package leaderboard

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait  = 5 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
)

// liveConn is one subscriber of the live feed.
type liveConn struct {
	ws   *websocket.Conn
	send chan []byte
	once sync.Once
}

func newLiveConn(ws *websocket.Conn) *liveConn {
	return &liveConn{
		ws:   ws,
		send: make(chan []byte, 16),
	}
}

// enqueue drops the message when the subscriber is too slow to keep up.
func (c *liveConn) enqueue(b []byte) {
	select {
	case c.send <- b:
	default:
	}
}

func (c *liveConn) close() {
	c.once.Do(func() {
		close(c.send)
	})
}

func (c *liveConn) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.ws.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.ws.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.ws.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump discards client messages and returns when the peer goes away.
func (c *liveConn) readPump() {
	c.ws.SetReadLimit(512)
	_ = c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.ws.ReadMessage(); err != nil {
			return
		}
	}
}

// hub fans leaderboard updates out to every live subscriber.
type hub struct {
	mu      sync.Mutex
	clients map[*liveConn]struct{}
}

func newHub() *hub {
	return &hub{clients: make(map[*liveConn]struct{})}
}

func (h *hub) add(c *liveConn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c] = struct{}{}
}

func (h *hub) remove(c *liveConn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		c.close()
	}
}

func (h *hub) broadcast(b []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		c.enqueue(b)
	}
}

func (h *hub) len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		delete(h.clients, c)
		c.close()
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Debug("live upgrade", zap.Error(err))
		return
	}

	c := newLiveConn(ws)
	s.hub.add(c)
	s.log.Debug("live subscriber joined", zap.String("remote", r.RemoteAddr), zap.Int("subscribers", s.hub.len()))

	if payload, err := s.topJSON(r.Context()); err == nil {
		c.enqueue(payload)
	}

	go c.writePump()
	go func() {
		c.readPump()
		s.hub.remove(c)
		s.log.Debug("live subscriber left", zap.String("remote", r.RemoteAddr))
	}()
}
