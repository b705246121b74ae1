package main

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tether-go/tether/pkg/rx"
)

// server holds what every connection shares.
type server struct {
	logger   *slog.Logger
	upgrader websocket.Upgrader

	// feed builds the per-session message stream. Nil when NATS is off.
	feed func() rx.Observable[string]

	// tracer spans each dispatched frame. Nil when tracing is off.
	tracer *frameTracer
}

func (srv *server) routes(reg *prometheus.Registry) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/", srv.handleIndex)
	r.Get("/ws", srv.handleWS)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	return r
}

func (srv *server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(indexHTML))
}

// handleWS upgrades the connection and blocks in the session's read loop
// until the client goes away.
func (srv *server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := srv.upgrader.Upgrade(w, r, nil)
	if err != nil {
		srv.logger.Error("websocket upgrade failed", slog.Any("error", err))
		return
	}

	var feed rx.Observable[string]
	if srv.feed != nil {
		feed = srv.feed()
	}

	newSession(conn, srv.logger, feed, srv.tracer).run()
}

const indexHTML = `<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title>tether demo</title>
  <style>
    body { font-family: sans-serif; max-width: 32rem; margin: 4rem auto; }
    button { font-size: 1.2rem; padding: 0.2rem 0.8rem; }
    #counter { font-size: 2rem; margin: 0 1rem; }
  </style>
</head>
<body>
  <h1>tether demo</h1>
  <p>
    <button onclick="send({type:'decrement'})">-</button>
    <span id="counter">?</span>
    <button onclick="send({type:'increment'})">+</button>
  </p>
  <p>
    <input id="input" placeholder="message"
           onchange="send({type:'set_message', value:this.value})">
    <span id="message"></span>
  </p>
  <p>
    <button onclick="send({type:'ping'})">ping</button>
    <span id="pongs">0</span> pongs
  </p>
  <script>
    const ws = new WebSocket((location.protocol === 'https:' ? 'wss://' : 'ws://') + location.host + '/ws');
    const send = (frame) => ws.send(JSON.stringify(frame));
    ws.onmessage = (ev) => {
      const f = JSON.parse(ev.data);
      if (f.type === 'counter') document.getElementById('counter').textContent = f.value;
      if (f.type === 'message') document.getElementById('message').textContent = f.value;
      if (f.type === 'pong') {
        const el = document.getElementById('pongs');
        el.textContent = Number(el.textContent) + 1;
      }
    };
  </script>
</body>
</html>
`
