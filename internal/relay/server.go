package relay

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"go.klb.dev/seep/internal/transport"
)

// Server accepts WebSocket connections and runs a relay Session for each.
// It also serves a small JSON status document for health checks.
type Server struct {
	reg      *Registry
	upgrader websocket.Upgrader
	started  time.Time
}

// NewServer returns a relay server with an empty registry.
func NewServer() *Server {
	return &Server{
		reg: NewRegistry(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  32 * 1024,
			WriteBufferSize: 32 * 1024,
			// Anyone who can reach the port may join; transport auth is
			// out of scope.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		started: time.Now(),
	}
}

// Registry exposes the connection registry, used by the local clipboard
// peer when the relay itself participates in the sync.
func (s *Server) Registry() *Registry {
	return s.reg
}

// Handler returns the HTTP handler: WebSocket upgrade at /, status at
// /status.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/status", s.handleStatus)
	mux.HandleFunc("/", s.handleUpgrade)
	return mux
}

// ListenAndServe binds addr and serves until the listener fails. A bind
// failure is the one unrecoverable startup error.
func (s *Server) ListenAndServe(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	slog.Info("listening", "addr", ln.Addr())
	srv := &http.Server{Handler: s.Handler()}
	return srv.Serve(ln)
}

func (s *Server) handleUpgrade(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("websocket upgrade failed", "remote", r.RemoteAddr, "err", err)
		return
	}
	id := conn.RemoteAddr().String()
	if src := r.URL.Query().Get("source"); src != "" {
		id = src + "@" + id
	}
	// Upgrade hijacked the connection; the session owns it from here.
	NewSession(transport.WebSocket(conn), s.reg, id).Run()
}

type statusResponse struct {
	Peers  []string `json:"peers"`
	Uptime string   `json:"uptime"`
}

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(statusResponse{
		Peers:  s.reg.IDs(),
		Uptime: time.Since(s.started).Round(time.Second).String(),
	})
}
