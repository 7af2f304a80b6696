package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"crm-pulse/internal/config"
	"crm-pulse/internal/domain"
)

// Authenticator resolves a bearer token to an identity. A nil identity with a
// nil error means the token is not valid.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*domain.Identity, error)
}

type Options struct {
	Addr           string
	PingPeriod     time.Duration
	PongWait       time.Duration
	WriteTimeout   time.Duration
	SendBuffer     int
	AllowedOrigins []string
}

func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Addr:           cfg.RealtimeAddr,
		PingPeriod:     cfg.RealtimePingPeriod,
		PongWait:       cfg.RealtimePongWait,
		WriteTimeout:   cfg.RealtimeWriteTimeout,
		SendBuffer:     cfg.RealtimeSendBuffer,
		AllowedOrigins: cfg.RealtimeAllowedOrigins,
	}
}

func (o *Options) applyDefaults() {
	if o.PongWait <= 0 {
		o.PongWait = 60 * time.Second
	}
	if o.PingPeriod <= 0 || o.PingPeriod >= o.PongWait {
		o.PingPeriod = o.PongWait * 9 / 10
	}
	if o.WriteTimeout <= 0 {
		o.WriteTimeout = 10 * time.Second
	}
	if o.SendBuffer <= 0 {
		o.SendBuffer = 32
	}
}

// Gateway owns every live connection of this process, keyed by user.
type Gateway struct {
	auth     Authenticator
	opts     Options
	upgrader websocket.Upgrader

	mu      sync.RWMutex
	clients map[uuid.UUID]map[*Client]struct{}
	closing bool

	server *http.Server
}

func NewGateway(auth Authenticator, opts Options) *Gateway {
	opts.applyDefaults()

	g := &Gateway{
		auth:    auth,
		opts:    opts,
		clients: make(map[uuid.UUID]map[*Client]struct{}),
	}
	g.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     g.checkOrigin,
	}
	return g
}

func (g *Gateway) checkOrigin(r *http.Request) bool {
	if len(g.opts.AllowedOrigins) == 0 {
		return true
	}
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	for _, allowed := range g.opts.AllowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	return false
}

func (g *Gateway) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", g.ServeWS)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return mux
}

// Start listens on Options.Addr in the background.
func (g *Gateway) Start() error {
	ln, err := net.Listen("tcp", g.opts.Addr)
	if err != nil {
		return err
	}

	g.mu.Lock()
	g.server = &http.Server{
		Handler:           g.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	srv := g.server
	g.mu.Unlock()

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("realtime server stopped")
		}
	}()

	log.Info().Str("addr", ln.Addr().String()).Msg("realtime gateway listening")
	return nil
}

// ServeWS authenticates the token query parameter and upgrades the request.
// Unauthenticated requests get a plain 401 and are never upgraded.
func (g *Gateway) ServeWS(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		handshakesRejected.Inc()
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	identity, err := g.auth.Authenticate(r.Context(), token)
	if err != nil {
		log.Error().Err(err).Msg("realtime authentication failed")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if identity == nil {
		handshakesRejected.Inc()
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	conn, err := g.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Debug().Err(err).Msg("realtime upgrade failed")
		return
	}

	client := newClient(g, conn, *identity)

	ack, err := json.Marshal(connectedFrame(identity))
	if err != nil {
		conn.Close()
		return
	}
	client.enqueue(ack)

	if !g.Register(client) {
		client.close()
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}

// Register adds the client to its user's set. It fails only while the
// gateway is shutting down.
func (g *Gateway) Register(c *Client) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.closing {
		return false
	}

	set, ok := g.clients[c.identity.UserID]
	if !ok {
		set = make(map[*Client]struct{})
		g.clients[c.identity.UserID] = set
	}
	set[c] = struct{}{}
	connectionsGauge.Inc()

	log.Debug().
		Str("user_id", c.identity.UserID.String()).
		Str("workspace_id", c.identity.WorkspaceID.String()).
		Int("connections", len(set)).
		Msg("realtime client registered")
	return true
}

// Unregister removes the client and stops its writer. Calling it again for
// the same client is a no-op.
func (g *Gateway) Unregister(c *Client) {
	g.mu.Lock()
	if set, ok := g.clients[c.identity.UserID]; ok {
		if _, member := set[c]; member {
			delete(set, c)
			connectionsGauge.Dec()
			if len(set) == 0 {
				delete(g.clients, c.identity.UserID)
			}
		}
	}
	g.mu.Unlock()

	if c.close() {
		log.Debug().Str("user_id", c.identity.UserID.String()).Msg("realtime client unregistered")
	}
}

// Send queues the event on every live connection of the user and returns how
// many accepted it. A user without connections is not an error. Connections
// that cannot accept the frame are dropped without affecting the others.
func (g *Gateway) Send(userID uuid.UUID, event string, payload any) int {
	targets := g.snapshot(userID)
	if len(targets) == 0 {
		return 0
	}

	msg, err := json.Marshal(Frame{Event: event, Data: payload})
	if err != nil {
		log.Error().Err(err).Str("event", event).Msg("realtime frame encoding failed")
		return 0
	}

	delivered := 0
	for _, c := range targets {
		if c.enqueue(msg) {
			delivered++
			continue
		}
		connectionsDropped.WithLabelValues("slow_consumer").Inc()
		g.Unregister(c)
	}
	eventsSent.WithLabelValues(event).Add(float64(delivered))
	return delivered
}

func (g *Gateway) snapshot(userID uuid.UUID) []*Client {
	g.mu.RLock()
	defer g.mu.RUnlock()

	set := g.clients[userID]
	out := make([]*Client, 0, len(set))
	for c := range set {
		out = append(out, c)
	}
	return out
}

// Connections reports how many live connections a user currently has.
func (g *Gateway) Connections(userID uuid.UUID) int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.clients[userID])
}

// Shutdown stops accepting connections and closes every live one.
func (g *Gateway) Shutdown(ctx context.Context) error {
	g.mu.Lock()
	g.closing = true
	srv := g.server
	var all []*Client
	for _, set := range g.clients {
		for c := range set {
			all = append(all, c)
		}
	}
	g.mu.Unlock()

	var err error
	if srv != nil {
		err = srv.Shutdown(ctx)
	}

	for _, c := range all {
		g.Unregister(c)
	}
	return err
}
