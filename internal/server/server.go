// Package server hosts a small pool of concurrently running solve/execute
// sessions behind a websocket, one per connected client. Grounded on
// internal/server/{pool,server,bot}.go's shape: a registered, bounded set
// of live connections, a read pump decoding inbound frames and an
// independent write pump streaming outbound ones, a ping ticker keeping
// the connection alive. The teacher's pool matches bots into shared poker
// hands; this port has no such matching step; each session is independent
// and owns exactly one solve-then-execute lifecycle end to end.
package server

import (
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/lox/betteridle/internal/auth"
	"github.com/lox/betteridle/internal/executor"
	"github.com/lox/betteridle/internal/protocol"
	"github.com/lox/betteridle/internal/runid"
	"github.com/lox/betteridle/internal/state"
	"github.com/lox/betteridle/internal/tickersim"
	"github.com/lox/betteridle/registry"
	"github.com/lox/betteridle/sdk/solver"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	sendBufferSize = 32
)

// Config configures a Server.
type Config struct {
	Catalog     registry.Registries
	AuthToken   string
	MaxSessions int
	Logger      *log.Logger
}

// Server accepts websocket connections, each becoming one Session. It is
// an http.Handler; mount it at whatever path the caller chooses (cmd/serve
// mounts it at /ws).
type Server struct {
	catalog   registry.Registries
	validator auth.Validator
	logger    *log.Logger
	upgrader  websocket.Upgrader

	maxSessions int

	mu       sync.Mutex
	sessions map[string]*Session
}

// New builds a Server from cfg.
func New(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
	}
	maxSessions := cfg.MaxSessions
	if maxSessions <= 0 {
		maxSessions = 16
	}
	return &Server{
		catalog:     cfg.Catalog,
		validator:   auth.New(cfg.AuthToken),
		logger:      logger,
		maxSessions: maxSessions,
		sessions:    make(map[string]*Session),
		upgrader:    websocket.Upgrader{ReadBufferSize: 4096, WriteBufferSize: 4096},
	}
}

// SessionCount reports how many sessions are currently registered.
func (s *Server) SessionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// ServeHTTP upgrades the connection to a websocket and runs one Session
// over it, provided the bearer token validates and the pool has capacity.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		token = r.Header.Get("Authorization")
	}
	if err := s.validator.Validate(token); err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	s.mu.Lock()
	if len(s.sessions) >= s.maxSessions {
		s.mu.Unlock()
		http.Error(w, "server at capacity", http.StatusServiceUnavailable)
		return
	}
	s.mu.Unlock()

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", "err", err)
		return
	}

	sess := newSession(s.catalog, conn, s.logger)
	s.register(sess)
	defer s.unregister(sess)

	go sess.writePump()
	sess.readPump()
}

func (s *Server) register(sess *Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.id] = sess
}

func (s *Server) unregister(sess *Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sess.id)
}

// Session owns one client's solve-then-execute lifecycle: a SolveRequest
// produces a Plan held in memory, then an ExecuteRequest referencing the
// same run id replays it live, streaming ExecuteProgress frames back.
type Session struct {
	id      string
	catalog registry.Registries
	conn    *websocket.Conn
	logger  *log.Logger
	send    chan []byte

	mu          sync.Mutex
	lastPlan    *solver.SolverResult
	lastInitial state.GameState
}

func newSession(catalog registry.Registries, conn *websocket.Conn, logger *log.Logger) *Session {
	id := runid.New()
	return &Session{
		id:      id,
		catalog: catalog,
		conn:    conn,
		logger:  logger.With("session", id),
		send:    make(chan []byte, sendBufferSize),
	}
}

func (sess *Session) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		sess.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-sess.send:
			sess.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				sess.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := sess.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			sess.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := sess.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (sess *Session) readPump() {
	defer close(sess.send)

	sess.conn.SetReadDeadline(time.Now().Add(pongWait))
	sess.conn.SetPongHandler(func(string) error {
		sess.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, payload, err := sess.conn.ReadMessage()
		if err != nil {
			return
		}
		sess.handle(payload)
	}
}

func (sess *Session) handle(payload []byte) {
	typ, err := protocol.PeekType(payload)
	if err != nil {
		sess.sendError("", fmt.Sprintf("malformed message: %v", err))
		return
	}

	switch typ {
	case protocol.TypeSolveRequest:
		sess.handleSolve(payload)
	case protocol.TypeExecuteRequest:
		sess.handleExecute(payload)
	default:
		sess.sendError("", fmt.Sprintf("unknown message type %q", typ))
	}
}

func (sess *Session) handleSolve(payload []byte) {
	var req protocol.SolveRequest
	if err := protocol.Unmarshal(payload, &req); err != nil {
		sess.sendError("", fmt.Sprintf("decoding solve request: %v", err))
		return
	}

	g, err := req.DecodeGoal()
	if err != nil {
		sess.sendError("", fmt.Sprintf("decoding goal: %v", err))
		return
	}
	initial, err := req.DecodeState()
	if err != nil {
		sess.sendError("", fmt.Sprintf("decoding state: %v", err))
		return
	}

	opts := req.Options.ToSolverOptions()
	result := solver.Solve(sess.catalog, initial, g, opts)

	sess.mu.Lock()
	sess.lastPlan = &result
	sess.lastInitial = initial
	sess.mu.Unlock()

	resp := protocol.NewSolveResponse(sess.id, result)
	sess.sendJSON(&resp)
}

func (sess *Session) handleExecute(payload []byte) {
	var req protocol.ExecuteRequest
	if err := protocol.Unmarshal(payload, &req); err != nil {
		sess.sendError("", fmt.Sprintf("decoding execute request: %v", err))
		return
	}

	sess.mu.Lock()
	result := sess.lastPlan
	initial := sess.lastInitial
	sess.mu.Unlock()

	if result == nil || !result.Succeeded() || req.RunID != sess.id {
		sess.sendError(req.RunID, "no solved plan available for this run id")
		return
	}

	adv := state.NewAdvancer(sess.catalog, tickersim.NewStochasticTicker(sess.catalog))
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	ex := executor.New(sess.catalog, adv, rng, sess.logger)

	progress := func(p executor.StepProgress) {
		msg := protocol.ExecuteProgress{
			Type:           protocol.TypeExecuteProgress,
			RunID:          req.RunID,
			StepIndex:      p.StepIndex,
			Kind:           p.Kind.String(),
			Description:    p.Description,
			PlannedTicks:   p.PlannedTicks,
			EstimatedTicks: p.EstimatedTicks,
			ActualTicks:    p.ActualTicks,
			Deaths:         p.Deaths,
		}
		sess.sendJSON(&msg)
	}

	execResult, err := ex.Run(result.Plan, initial, nil, progress)
	if err != nil {
		sess.sendError(req.RunID, fmt.Sprintf("execution error: %v", err))
		return
	}

	stoppedAt := ""
	if execResult.StoppedAt != nil {
		stoppedAt = execResult.StoppedAt.String()
	}
	final := protocol.ExecuteResult{
		Type:              protocol.TypeExecuteResult,
		RunID:             req.RunID,
		Completed:         execResult.Completed,
		StepsRun:          execResult.StepsRun,
		Deaths:            execResult.Deaths,
		TotalPlannedTicks: execResult.TotalPlannedTicks,
		TotalActualTicks:  execResult.TotalActualTicks,
		StoppedAt:         stoppedAt,
	}
	sess.sendJSON(&final)
}

func (sess *Session) sendJSON(v interface{}) {
	data, err := protocol.Marshal(v)
	if err != nil {
		sess.logger.Error("marshaling response", "err", err)
		return
	}
	select {
	case sess.send <- data:
	default:
		sess.logger.Warn("dropping response: send buffer full")
	}
}

func (sess *Session) sendError(runID, detail string) {
	msg := protocol.ErrorMessage{Type: protocol.TypeError, RunID: runID, Detail: detail}
	data, err := json.Marshal(&msg)
	if err != nil {
		return
	}
	select {
	case sess.send <- data:
	default:
	}
}
