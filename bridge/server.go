// Package bridge exposes the installation to remote clients over
// WebSocket. Inbound JSON ops feed the event queue; installation
// events fan out to every connected session as JSON notifications.
package bridge

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/lixenwraith/filament/core"
	"github.com/lixenwraith/filament/event"
	"github.com/lixenwraith/filament/vmath"
)

// Server accepts remote control sessions and fans out notifications
type Server struct {
	config *Config
	events *event.Queue
	tick   *atomic.Int64

	upgrader websocket.Upgrader
	httpSrv  *http.Server
	listener net.Listener

	mu       sync.RWMutex
	sessions map[string]*session

	running atomic.Bool
	wg      sync.WaitGroup

	// Stats
	received atomic.Uint64
	sent     atomic.Uint64
	dropped  atomic.Uint64
}

// NewServer creates a bridge server feeding the given event queue
func NewServer(cfg *Config, events *event.Queue) *Server {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Server{
		config:   cfg,
		events:   events,
		sessions: make(map[string]*session),
		upgrader: websocket.Upgrader{
			CheckOrigin:      func(r *http.Request) bool { return true },
			HandshakeTimeout: cfg.HandshakeTimeout,
		},
	}
}

// SetTickSource wires the frame stamp for pushed events
// Called after the scheduler exists; nil leaves frames at zero
func (s *Server) SetTickSource(tick *atomic.Int64) {
	s.tick = tick
}

// Start binds the listener and begins accepting sessions
// An empty listen address is a no-op: the bridge stays disabled
func (s *Server) Start() error {
	if s.config.ListenAddr == "" {
		return nil
	}
	if !s.running.CompareAndSwap(false, true) {
		return nil // Already running
	}

	ln, err := net.Listen("tcp", s.config.ListenAddr)
	if err != nil {
		s.running.Store(false)
		return fmt.Errorf("failed to bind bridge listener: %w", err)
	}
	s.listener = ln

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleUpgrade)
	s.httpSrv = &http.Server{Handler: mux}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := s.httpSrv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.running.Store(false)
		}
	}()

	return nil
}

// Stop closes every session and releases the listener
func (s *Server) Stop() error {
	if !s.running.CompareAndSwap(true, false) {
		return nil
	}

	var err error
	if s.httpSrv != nil {
		err = s.httpSrv.Close()
	}

	s.mu.Lock()
	for _, sess := range s.sessions {
		sess.close()
	}
	s.sessions = make(map[string]*session)
	s.mu.Unlock()

	s.wg.Wait()
	return err
}

// Addr returns the bound listener address, empty before Start
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// IsRunning reports whether the bridge accepts sessions
func (s *Server) IsRunning() bool {
	return s.running.Load()
}

// SessionCount returns the number of connected sessions
func (s *Server) SessionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Stats summarizes bridge traffic
type Stats struct {
	Sessions int    `json:"sessions"`
	Received uint64 `json:"received"`
	Sent     uint64 `json:"sent"`
	Dropped  uint64 `json:"dropped"`
}

// GetStats returns a traffic snapshot
func (s *Server) GetStats() Stats {
	return Stats{
		Sessions: s.SessionCount(),
		Received: s.received.Load(),
		Sent:     s.sent.Load(),
		Dropped:  s.dropped.Load(),
	}
}

// Broadcast fans one notification to every connected session
// Sessions that cannot keep up are disconnected
func (s *Server) Broadcast(n Notification) {
	if !s.running.Load() {
		return
	}

	data, err := json.Marshal(n)
	if err != nil {
		return
	}

	s.mu.RLock()
	targets := make([]*session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		targets = append(targets, sess)
	}
	s.mu.RUnlock()

	for _, sess := range targets {
		if sess.send(data) {
			s.sent.Add(1)
		} else {
			s.dropped.Add(1)
			sess.close()
		}
	}
}

// handleUpgrade turns an HTTP request into a tracked session
func (s *Server) handleUpgrade(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	sess := newSession(uuid.NewString(), conn, s.config.SendBuffer)

	s.mu.Lock()
	if !s.running.Load() || len(s.sessions) >= s.config.MaxSessions {
		s.mu.Unlock()
		deadline := time.Now().Add(s.config.WriteTimeout)
		msg := websocket.FormatCloseMessage(websocket.CloseTryAgainLater, "session limit reached")
		_ = conn.WriteControl(websocket.CloseMessage, msg, deadline)
		conn.Close()
		return
	}
	s.sessions[sess.id] = sess
	s.wg.Add(2)
	s.mu.Unlock()

	go func() {
		defer s.wg.Done()
		sess.writeLoop(s.config)
	}()

	defer func() {
		s.mu.Lock()
		delete(s.sessions, sess.id)
		s.mu.Unlock()
		s.wg.Done()
	}()

	// Read in the handler goroutine; returns on disconnect
	sess.readLoop(s.config, s.handleCommand)
}

// handleCommand parses one inbound op and routes it to the event queue
func (s *Server) handleCommand(sess *session, data []byte) {
	s.received.Add(1)

	var cmd Command
	if err := json.Unmarshal(data, &cmd); err != nil {
		s.sendError(sess, "malformed command")
		return
	}

	switch cmd.Op {
	case OpSpawn:
		kind, err := kindByName(cmd.Kind)
		if err != nil {
			s.sendError(sess, err.Error())
			return
		}
		payload := &event.SpawnRequestPayload{
			Kind:  kind,
			Tag:   cmd.Tag,
			Count: cmd.Count,
		}
		if len(cmd.Pos) == 3 {
			payload.Pos = vmath.V3FToQ32(vmath.Vec3F{X: cmd.Pos[0], Y: cmd.Pos[1], Z: cmd.Pos[2]})
			payload.HasPos = true
		}
		s.push(event.EventSpawnRequest, payload)

	case OpDespawn:
		s.push(event.EventDespawnRequest, &event.DespawnRequestPayload{
			Entity: core.Entity(cmd.Node),
			Oldest: cmd.Node == 0,
		})

	case OpTrigger:
		s.push(event.EventPulse, &event.PulsePayload{Accent: true})

	case OpSet:
		if cmd.Key == "" {
			s.sendError(sess, "set requires a key")
			return
		}
		s.push(event.EventParamSet, &event.ParamSetPayload{Key: cmd.Key, Value: cmd.Value})

	case OpMute:
		s.push(event.EventMuteToggle, nil)

	case OpQuit:
		s.push(event.EventQuit, nil)

	default:
		s.sendError(sess, fmt.Sprintf("unknown op %q", cmd.Op))
	}
}

func (s *Server) push(t event.EventType, payload any) {
	var frame int64
	if s.tick != nil {
		frame = s.tick.Load()
	}
	s.events.Push(event.Event{Type: t, Payload: payload, Frame: frame})
}

func (s *Server) sendError(sess *session, msg string) {
	data, err := json.Marshal(Notification{Event: EventError, Error: msg})
	if err != nil {
		return
	}
	if !sess.send(data) {
		sess.close()
	}
}
