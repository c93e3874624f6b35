// Package notify pushes alert updates to connected websocket clients.
package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"healthmon/internal/dashboard"
	"healthmon/internal/domain"
	"healthmon/internal/port"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	sendBuffer      = 256
	broadcastBuffer = 64

	villageLookupWait = 2 * time.Second
)

type ctxKey struct{}

// WithUser returns a copy of ctx carrying the subscriber identity ServeHTTP
// filters alerts by.
func WithUser(ctx context.Context, user *domain.User) context.Context {
	return context.WithValue(ctx, ctxKey{}, user)
}

// UserFrom returns the subscriber stored by WithUser.
func UserFrom(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(ctxKey{}).(*domain.User)
	return user, ok && user != nil
}

// Message is the envelope written to subscribers.
type Message struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// update is one alert queued for delivery, with the villages used to decide
// which subscribers may see it.
type update struct {
	alert    domain.Alert
	villages []domain.Village
	data     []byte
}

// Hub tracks live subscribers and fans alerts out to the ones allowed to
// see them. Run must be started before clients can connect.
type Hub struct {
	clients    map[*client]bool
	broadcast  chan update
	register   chan *client
	unregister chan *client
	done       chan struct{}
	count      atomic.Int32

	villages port.VillageRepository
	upgrader websocket.Upgrader
	logger   *zap.Logger
}

type client struct {
	hub  *Hub
	user *domain.User
	conn *websocket.Conn
	send chan []byte
}

// NewHub creates a Hub. allowedOrigins limits browser origins; empty allows
// any. villages may be nil, in which case alerts are matched on their own
// district and village only.
func NewHub(logger *zap.Logger, allowedOrigins []string, villages port.VillageRepository) *Hub {
	h := &Hub{
		clients:    make(map[*client]bool),
		broadcast:  make(chan update, broadcastBuffer),
		villages:   villages,
		register:   make(chan *client),
		unregister: make(chan *client),
		done:       make(chan struct{}),
		logger:     logger,
	}
	h.upgrader = websocket.Upgrader{CheckOrigin: originChecker(allowedOrigins)}
	return h
}

func originChecker(allowed []string) func(r *http.Request) bool {
	if len(allowed) == 0 {
		return func(*http.Request) bool { return true }
	}
	set := make(map[string]bool, len(allowed))
	for _, o := range allowed {
		set[o] = true
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || set[origin]
	}
}

// Run serves register, unregister and broadcast requests until ctx is done.
// On return every client connection is closed.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			for c := range h.clients {
				h.drop(c)
			}
			return

		case c := <-h.register:
			h.clients[c] = true
			h.count.Add(1)
			h.logger.Debug("alert stream client connected", zap.String("remote", c.conn.RemoteAddr().String()))

		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				h.drop(c)
				h.logger.Debug("alert stream client disconnected")
			}

		case u := <-h.broadcast:
			for c := range h.clients {
				if !dashboard.AlertVisible(c.user, u.villages, u.alert) {
					continue
				}
				select {
				case c.send <- u.data:
				default:
					h.drop(c)
				}
			}
		}
	}
}

func (h *Hub) drop(c *client) {
	delete(h.clients, c)
	close(c.send)
	h.count.Add(-1)
}

// Clients returns the number of registered subscribers.
func (h *Hub) Clients() int {
	return int(h.count.Load())
}

// Publish queues an alert for the subscribers allowed to see it. Queueing
// never blocks; when the broadcast queue is full the update is dropped and
// logged.
func (h *Hub) Publish(alert domain.Alert) {
	data, err := json.Marshal(Message{Type: "alert", Data: alert})
	if err != nil {
		h.logger.Error("marshal alert update", zap.Error(err))
		return
	}
	u := update{alert: alert, villages: h.lookupVillages(), data: data}
	select {
	case h.broadcast <- u:
	default:
		h.logger.Warn("alert stream backlog full, dropping update", zap.String("alert_id", alert.ID.String()))
	}
}

func (h *Hub) lookupVillages() []domain.Village {
	if h.villages == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), villageLookupWait)
	defer cancel()
	villages, err := h.villages.List(ctx)
	if err != nil {
		h.logger.Warn("loading villages for alert scope", zap.Error(err))
		return nil
	}
	return villages
}

// ServeHTTP upgrades the request and registers the connection. The request
// context must carry the subscriber (see WithUser).
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFrom(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	c := &client{hub: h, user: user, conn: conn, send: make(chan []byte, sendBuffer)}
	select {
	case h.register <- c:
	case <-h.done:
		_ = conn.Close()
		return
	case <-r.Context().Done():
		_ = conn.Close()
		return
	}

	go c.writePump()
	go c.readPump()
}

// readPump discards inbound frames; it exists to process pongs and detect close.
func (c *client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		_ = c.conn.Close()
	}()

	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.logger.Warn("alert stream read error", zap.Error(err))
			}
			return
		}
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			if _, err := w.Write(message); err != nil {
				return
			}
			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
