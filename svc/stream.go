package svc

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/kostiamol/sensorms/log"
	"github.com/kostiamol/sensorms/metric"
	"github.com/pkg/errors"
	uuid "github.com/satori/go.uuid"
)

const (
	defaultWriteWait = 10 * time.Second
	maxClientFrame   = 512
)

type (
	// Sender is a single connected client that can be written to.
	Sender interface {
		ID() string
		Send(msg []byte) error
	}

	// StreamServiceCfg is used to initialize an instance of streamService.
	StreamServiceCfg struct {
		Log    log.Logger
		Metric *metric.Metric
		// OnConnect is called once for every new client, before the client
		// can receive any broadcast.
		OnConnect func(Sender)
		WriteWait time.Duration
	}

	// streamService pushes readings to websocket clients (dashboards).
	streamService struct {
		log       log.Logger
		metric    *metric.Metric
		onConnect func(Sender)
		writeWait time.Duration
		upgrader  websocket.Upgrader

		mu      sync.Mutex
		clients map[*streamClient]struct{}
	}

	streamClient struct {
		id        string
		conn      *websocket.Conn
		writeWait time.Duration
	}
)

// NewStreamService creates and initializes a new instance of streamService.
func NewStreamService(c *StreamServiceCfg) *streamService { // nolint
	s := &streamService{
		log:       c.Log.With("component", "stream"),
		metric:    c.Metric,
		onConnect: c.OnConnect,
		writeWait: c.WriteWait,
		clients:   make(map[*streamClient]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
	if s.onConnect == nil {
		s.onConnect = func(Sender) { /* don't notify */ }
	}
	if s.writeWait == 0 {
		s.writeWait = defaultWriteWait
	}
	return s
}

// ServeHTTP upgrades the request and keeps the client registered until it goes away.
func (s *streamService) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Errorf("func Upgrade: %s", err)
		s.errorCounter("ws_upgrade")
		return
	}

	c := &streamClient{
		id:        uuid.NewV4().String(),
		conn:      conn,
		writeWait: s.writeWait,
	}
	s.plugin(c)
	s.drain(c)
	s.unplug(c)
}

// Broadcast writes msg to every connected client and returns how many got it.
// Clients that fail the write are dropped.
func (s *streamService) Broadcast(msg []byte) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	sent := 0
	for c := range s.clients {
		if err := c.Send(msg); err != nil {
			s.log.With("event", log.EventWSConnRemoved, "client", c.id).
				Infof("func Send: addr: %v: %s", c.conn.RemoteAddr(), err)
			s.remove(c)
			continue
		}
		sent++
	}
	return sent
}

// Clients returns the number of connected clients.
func (s *streamService) Clients() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

// Close disconnects every client.
func (s *streamService) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for c := range s.clients {
		deadline := time.Now().Add(time.Second)
		_ = c.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, ""), deadline)
		s.remove(c)
	}
}

// plugin registers c and runs the connect callback while holding the lock, so
// a broadcast cannot reach c before its first unicast.
func (s *streamService) plugin(c *streamClient) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.clients[c] = struct{}{}
	s.streamClients()
	s.log.With("event", log.EventWSConnAdded, "client", c.id).
		Infof("addr: %v", c.conn.RemoteAddr())

	s.onConnect(c)
}

func (s *streamService) unplug(c *streamClient) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.clients[c]; !ok {
		return
	}
	s.log.With("event", log.EventWSConnRemoved, "client", c.id).
		Infof("addr: %v", c.conn.RemoteAddr())
	s.remove(c)
}

// remove must be called with mu held.
func (s *streamService) remove(c *streamClient) {
	delete(s.clients, c)
	_ = c.conn.Close()
	s.streamClients()
}

// drain reads and discards client frames until the connection fails. Reading
// is needed to process close and ping frames.
func (s *streamService) drain(c *streamClient) {
	c.conn.SetReadLimit(maxClientFrame)
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.log.Debugf("func ReadMessage: client %s: %s", c.id, err)
			}
			return
		}
	}
}

func (s *streamService) streamClients() {
	if s.metric != nil {
		s.metric.StreamClients(len(s.clients))
	}
}

func (s *streamService) errorCounter(label string) {
	if s.metric != nil {
		s.metric.ErrorCounter(label)
	}
}

func (c *streamClient) ID() string {
	return c.id
}

// Send writes msg as a single text frame.
func (c *streamClient) Send(msg []byte) error {
	if err := c.conn.SetWriteDeadline(time.Now().Add(c.writeWait)); err != nil {
		return errors.Wrap(err, "func SetWriteDeadline")
	}
	if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
		return errors.Wrap(err, "func WriteMessage")
	}
	return nil
}
