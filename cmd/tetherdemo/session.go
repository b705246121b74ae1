package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/tether-go/tether/pkg/bind"
	"github.com/tether-go/tether/pkg/rx"
)

const writeTimeout = 10 * time.Second

// demoVM is the per-connection view-model. State lives here; the socket is
// just a projection of it.
type demoVM struct {
	bind.Lifetime
	Counter *bind.IntValue
	Message *bind.StringValue
	Ping    *bind.NoArgActionChannel
}

func newDemoVM() *demoVM {
	return &demoVM{
		Counter: bind.NewIntValue(0),
		Message: bind.NewStringValue(""),
		Ping:    bind.NewNoArgActionChannel(),
	}
}

// clientFrame is what the browser sends.
type clientFrame struct {
	Type  string `json:"type"`
	Value string `json:"value,omitempty"`
}

// serverFrame is what the browser receives. Value stays explicit even when
// empty so the client can always read it.
type serverFrame struct {
	Type  string `json:"type"`
	Value any    `json:"value"`
}

type session struct {
	id     string
	logger *slog.Logger
	conn   *websocket.Conn
	loop   *rx.Loop
	vm     *demoVM
	tracer *frameTracer

	writeMu sync.Mutex
	closed  atomic.Bool
}

// newSession wires a fresh view-model to the connection. The scope's
// bindings push every state change out as a frame; closing the view-model
// severs the socket from the state again.
func newSession(conn *websocket.Conn, logger *slog.Logger, feed rx.Observable[string], tracer *frameTracer) *session {
	id := "session-" + gonanoid.Must(8)
	s := &session{
		id:     id,
		logger: logger.With(slog.String("session", id)),
		conn:   conn,
		vm:     newDemoVM(),
		tracer: tracer,
	}
	s.loop = rx.NewLoop(rx.LoopOptions{Name: id, Logger: s.logger})

	s.vm.Scope(func(c *bind.Collector) {
		c.Add(bind.BindFunc(s.vm.Counter.Changes(), func(n int) {
			s.send(serverFrame{Type: "counter", Value: n})
		}))
		c.Add(bind.BindFunc(s.vm.Message.Changes(), func(msg string) {
			s.send(serverFrame{Type: "message", Value: msg})
		}))
		c.Add(bind.BindFunc(s.vm.Ping.Events(), func(struct{}) {
			s.send(serverFrame{Type: "pong"})
		}))

		if feed != nil {
			// External updates hop onto the session loop before touching
			// the cell, like everything else that mutates it. The feed is a
			// raw stream: a decode failure ends this one binding, not the
			// session.
			c.Add(bind.Bind(rx.ObserveOn(feed, s.loop), rx.NewObserver(
				s.vm.Message.Accept,
				func(err error) {
					s.logger.Warn("message feed ended", slog.Any("error", err))
				},
				nil,
			)))
		}
	})

	return s
}

// run blocks reading client frames until the connection dies.
func (s *session) run() {
	s.logger.Info("session started")
	s.readLoop()
}

func (s *session) readLoop() {
	defer s.close()

	for {
		_, msg, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseNormalClosure) {
				s.logger.Error("read error", slog.Any("error", err))
			}
			return
		}

		var f clientFrame
		if err := json.Unmarshal(msg, &f); err != nil {
			s.logger.Warn("bad client frame", slog.Any("error", err))
			continue
		}
		s.dispatch(f)
	}
}

// dispatch applies a client frame to the view-model on the session loop, so
// every mutation is serialized with the outbound bindings. Each application
// runs under the frame tracer.
func (s *session) dispatch(f clientFrame) {
	s.loop.Schedule(func() {
		err := s.tracer.dispatch(context.Background(), s.id, f, func(context.Context) error {
			return s.apply(f)
		})
		if err != nil {
			s.logger.Warn("frame rejected", slog.Any("error", err))
		}
	})
}

func (s *session) apply(f clientFrame) error {
	switch f.Type {
	case "increment":
		s.vm.Counter.Inc()
	case "decrement":
		s.vm.Counter.Dec()
	case "set_message":
		s.vm.Message.Accept(f.Value)
	case "ping":
		s.vm.Ping.Trigger()
	default:
		return fmt.Errorf("unknown frame type %q", f.Type)
	}
	return nil
}

func (s *session) send(f serverFrame) {
	if s.closed.Load() {
		return
	}

	data, err := json.Marshal(f)
	if err != nil {
		s.logger.Error("frame encode error", slog.Any("error", err))
		return
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	s.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	if err := s.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		s.logger.Error("write error", slog.Any("error", err))
	}
}

func (s *session) close() {
	if s.closed.Swap(true) {
		return
	}
	s.vm.Close()
	s.loop.Close()
	_ = s.conn.Close()
	s.logger.Info("session closed")
}
