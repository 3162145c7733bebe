package application

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/jacksonlee411/hcdash/pkg/session"
)

const (
	ChannelAuthenticated = "authenticated"
	ChannelDirectory     = "directory"

	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	sendQueueSize = 16
)

type HuberOptions struct {
	Logger      *logrus.Logger
	CheckOrigin func(r *http.Request) bool
	// Channels every signed-in connection joins on connect.
	DefaultChannels []string
}

type Connection interface {
	ID() string
	Session() session.Session
	SendMessage(message []byte) error
	Close() error
}

type WsCallback func(ctx context.Context, conn Connection) error

type Huber interface {
	http.Handler
	ForEach(channel string, f WsCallback) error
	ConnectionsCount(channel string) int
}

func NewHub(opts *HuberOptions) Huber {
	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	checkOrigin := opts.CheckOrigin
	if checkOrigin == nil {
		checkOrigin = func(*http.Request) bool { return true }
	}
	channels := opts.DefaultChannels
	if len(channels) == 0 {
		channels = []string{ChannelDirectory}
	}
	return &huber{
		logger:          log,
		defaultChannels: channels,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin,
		},
		channels: make(map[string]map[*connection]struct{}),
	}
}

type huber struct {
	logger          *logrus.Logger
	upgrader        websocket.Upgrader
	defaultChannels []string

	mu       sync.RWMutex
	channels map[string]map[*connection]struct{}
}

// ErrSendQueueFull is returned by SendMessage when a client is not keeping
// up with its outbound queue. The message is dropped.
var ErrSendQueueFull = errors.New("websocket: send queue full")

type connection struct {
	id   string
	sess session.Session
	ws   *websocket.Conn

	// send is drained by writeLoop, the only goroutine that writes to ws.
	send      chan []byte
	done      chan struct{}
	closeOnce sync.Once
}

func newConnection(sess session.Session, ws *websocket.Conn) *connection {
	return &connection{
		id:   uuid.NewString(),
		sess: sess,
		ws:   ws,
		send: make(chan []byte, sendQueueSize),
		done: make(chan struct{}),
	}
}

func (c *connection) ID() string {
	return c.id
}

func (c *connection) Session() session.Session {
	return c.sess
}

// SendMessage queues message for delivery and never waits on the network.
func (c *connection) SendMessage(message []byte) error {
	select {
	case <-c.done:
		return websocket.ErrCloseSent
	default:
	}
	select {
	case c.send <- message:
		return nil
	case <-c.done:
		return websocket.ErrCloseSent
	default:
		return ErrSendQueueFull
	}
}

func (c *connection) Close() error {
	var err error
	c.closeOnce.Do(func() {
		close(c.done)
		if c.ws != nil {
			err = c.ws.Close()
		}
	})
	return err
}

// ServeHTTP upgrades the request and blocks until the client goes away.
// Anonymous sessions are rejected before the upgrade.
func (h *huber) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	sess, _ := session.FromContext(r.Context())
	if sess.Anonymous() {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}
	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.WithError(err).Warn("websocket upgrade failed")
		return
	}
	conn := newConnection(sess, ws)

	h.join(conn, ChannelAuthenticated)
	h.join(conn, fmt.Sprintf("user/%s", sess.UserID))
	for _, ch := range h.defaultChannels {
		h.join(conn, ch)
	}
	h.logger.WithFields(logrus.Fields{"connection": conn.id, "user": sess.UserID}).Debug("websocket connected")

	go h.writeLoop(conn)
	h.readLoop(conn)

	h.leaveAll(conn)
	_ = conn.Close()
	h.logger.WithField("connection", conn.id).Debug("websocket disconnected")
}

// readLoop drains client frames; the directory feed is push only.
func (h *huber) readLoop(conn *connection) {
	_ = conn.ws.SetReadDeadline(time.Now().Add(pongWait))
	conn.ws.SetPongHandler(func(string) error {
		return conn.ws.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := conn.ws.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.WithError(err).Warn("websocket read failed")
			}
			return
		}
	}
}

// writeLoop delivers queued messages and pings until the connection closes.
// A failed write closes the connection, which also ends readLoop.
func (h *huber) writeLoop(conn *connection) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-conn.done:
			return
		case msg := <-conn.send:
			_ = conn.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.ws.WriteMessage(websocket.TextMessage, msg); err != nil {
				h.logger.WithError(err).WithField("connection", conn.id).Warn("websocket write failed")
				_ = conn.Close()
				return
			}
		case <-ticker.C:
			if err := conn.ws.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				_ = conn.Close()
				return
			}
		}
	}
}

func (h *huber) join(conn *connection, channel string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.channels[channel]
	if !ok {
		set = make(map[*connection]struct{})
		h.channels[channel] = set
	}
	set[conn] = struct{}{}
}

func (h *huber) leaveAll(conn *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for name, set := range h.channels {
		delete(set, conn)
		if len(set) == 0 {
			delete(h.channels, name)
		}
	}
}

func (h *huber) snapshot(channel string) []*connection {
	h.mu.RLock()
	defer h.mu.RUnlock()
	set := h.channels[channel]
	out := make([]*connection, 0, len(set))
	for c := range set {
		out = append(out, c)
	}
	return out
}

func (h *huber) ConnectionsCount(channel string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.channels[channel])
}

// ForEach calls f for every connection in channel and stops at the first error.
func (h *huber) ForEach(channel string, f WsCallback) error {
	ctx := session.WithSession(context.Background(), session.System)
	for _, conn := range h.snapshot(channel) {
		if err := f(ctx, conn); err != nil {
			return err
		}
	}
	return nil
}

// Broadcast queues message on every connection in channel and returns how
// many accepted it. It does not wait for slow clients; a connection whose
// queue is full drops the message.
func Broadcast(hub Huber, log *logrus.Logger, channel string, message []byte) int {
	sent := 0
	_ = hub.ForEach(channel, func(_ context.Context, conn Connection) error {
		if err := conn.SendMessage(message); err != nil {
			if log != nil {
				log.WithError(err).WithField("connection", conn.ID()).Warn("websocket send failed")
			}
			return nil
		}
		sent++
		return nil
	})
	return sent
}
