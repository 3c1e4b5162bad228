package listener

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pixil98/go-rpg/internal/game"
	"github.com/pixil98/go-rpg/internal/session"
)

const (
	writeWait       = 10 * time.Second
	shutdownTimeout = 5 * time.Second
)

// WebSessions adds the player listing served over http.
type WebSessions interface {
	Sessions
	Players() []game.PublicState
}

// inbound is a message from a websocket client.
type inbound struct {
	Type string `json:"type"`
	Data string `json:"data"`
}

// WebListener serves the websocket event protocol and a few read only http
// endpoints.
type WebListener struct {
	port     uint16
	cm       *ConnectionManager
	sessions WebSessions
	upgrader websocket.Upgrader

	connCtx     context.Context
	cancelConns context.CancelFunc
	wg          sync.WaitGroup
}

func NewWebListener(port uint16, cm *ConnectionManager, sessions WebSessions) *WebListener {
	connCtx, cancel := context.WithCancel(context.Background())
	return &WebListener{
		port:     port,
		cm:       cm,
		sessions: sessions,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		connCtx:     connCtx,
		cancelConns: cancel,
	}
}

// Routes returns the router for every endpoint.
func (l *WebListener) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/players", l.handlePlayers)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/ws", l.handleWebsocket)
	return r
}

func (l *WebListener) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", l.port))
	if err != nil {
		return fmt.Errorf("listening on port %d: %w", l.port, err)
	}
	slog.InfoContext(ctx, "listening for websockets", "port", l.port)

	srv := &http.Server{
		Handler:           l.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		l.cancelConns()
		l.wg.Wait()
		return fmt.Errorf("serving http on port %d: %w", l.port, err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.WarnContext(ctx, "shutting down http server", "error", err)
	}
	// Hijacked websocket connections are not covered by Shutdown.
	l.cancelConns()
	l.wg.Wait()

	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (l *WebListener) handlePlayers(w http.ResponseWriter, r *http.Request) {
	players := l.sessions.Players()
	if players == nil {
		players = []game.PublicState{}
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(players); err != nil {
		slog.WarnContext(r.Context(), "encoding players", "error", err)
	}
}

// wsConn serialises writes; NATS callbacks and the read loop both write.
type wsConn struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (c *wsConn) write(b []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return c.conn.WriteMessage(websocket.TextMessage, b)
}

func (l *WebListener) handleWebsocket(w http.ResponseWriter, r *http.Request) {
	conn, err := l.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.WarnContext(r.Context(), "websocket upgrade", "remote", r.RemoteAddr, "error", err)
		return
	}

	l.wg.Add(1)
	defer l.wg.Done()

	ctx := l.connCtx
	ws := &wsConn{conn: conn}
	defer conn.Close()

	connID, closeConn, err := l.cm.open(ctx, func(b []byte) {
		if err := ws.write(b); err != nil {
			slog.WarnContext(ctx, "writing websocket event", "error", err)
		}
	})
	if err != nil {
		slog.ErrorContext(ctx, "opening connection", "error", err)
		return
	}

	reason := "disconnected"
	defer func() {
		if ctx.Err() != nil {
			reason = "server shutdown"
		}
		closeConn(reason)
	}()

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	slog.InfoContext(ctx, "websocket connection established", "conn", connID, "remote", r.RemoteAddr)

	for {
		var msg inbound
		if err := conn.ReadJSON(&msg); err != nil {
			var syntaxErr *json.SyntaxError
			if errors.As(err, &syntaxErr) {
				if err := l.reject(ws, "Messages must be JSON."); err != nil {
					return
				}
				continue
			}
			return
		}

		quit, err := l.dispatch(ctx, ws, connID, msg)
		if err != nil {
			slog.ErrorContext(ctx, "websocket message", "conn", connID, "type", msg.Type, "error", err)
			reason = "server error"
			return
		}
		if quit {
			reason = "quit"
			return
		}
	}
}

func (l *WebListener) dispatch(ctx context.Context, ws *wsConn, connID string, msg inbound) (bool, error) {
	switch msg.Type {
	case "join":
		err := l.sessions.Join(ctx, connID, msg.Data)
		if errors.Is(err, game.ErrUsernameTaken) || errors.Is(err, game.ErrInvalidArgument) {
			return false, nil
		}
		return false, err
	case "command":
		return l.sessions.Command(ctx, connID, msg.Data)
	case "chat":
		return false, l.sessions.Chat(ctx, connID, msg.Data)
	default:
		return false, l.reject(ws, fmt.Sprintf("Unknown message type %q.", msg.Type))
	}
}

// reject answers a malformed message on this connection only.
func (l *WebListener) reject(ws *wsConn, msg string) error {
	b, err := session.EncodeEvent(session.EventError, session.ErrorData{
		Kind:    game.KindName(game.ErrInvalidArgument),
		Message: msg,
	})
	if err != nil {
		return err
	}
	return ws.write(b)
}
