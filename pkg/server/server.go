package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel"

	"github.com/vango-dev/vlite/pkg/dom"
	"github.com/vango-dev/vlite/pkg/render"
	"github.com/vango-dev/vlite/pkg/store"
)

// ErrNotStarted is returned when serving before Start.
var ErrNotStarted = errors.New("server: not started")

// App is a mountable application.
type App interface {
	Name() string
	Mount(ctx context.Context, root *render.Root) error
}

// Server hosts one app instance shared by all connected clients.
type Server struct {
	app    App
	config *Config
	logger *slog.Logger

	doc  *dom.Document
	root *render.Root
	disp *store.Dispatcher

	upgrader websocket.Upgrader
	router   chi.Router

	// ctx is the lifetime context passed to Start.
	ctx context.Context

	mu       sync.RWMutex
	clients  map[*client]struct{}
	last     []byte
	lastGen  uint64
	lastHTML string
	started  bool

	httpServer *http.Server
}

// New creates a server for app. A nil config uses DefaultConfig.
func New(app App, config *Config) *Server {
	config = config.withDefaults()
	if config.Tracer == nil {
		config.Tracer = otel.Tracer(render.DefaultTracerName)
	}
	logger := config.Logger.With("component", "server", "app", app.Name())

	doc := dom.NewDocument()
	rootOpts := []render.RootOption{
		render.WithLogger(logger),
		render.WithTracer(config.Tracer),
	}
	if config.Metrics != nil {
		rootOpts = append(rootOpts, render.WithObserver(config.Metrics))
	}

	s := &Server{
		app:     app,
		config:  config,
		logger:  logger,
		doc:     doc,
		root:    render.NewRoot(doc.Body(), rootOpts...),
		disp:    store.NewDispatcher(config.QueueSize, logger),
		clients: make(map[*client]struct{}),
		ctx:     context.Background(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     config.CheckOrigin,
		},
	}
	if s.upgrader.CheckOrigin == nil {
		s.upgrader.CheckOrigin = sameHost
	}
	s.root.OnRender(s.publish)
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/", s.handlePage)
	r.Get("/ws", s.handleWS)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("ok"))
	})
	if s.config.Gatherer != nil && s.config.Metrics != nil {
		r.Handle(s.config.MetricsPath, s.config.Metrics.Handler(s.config.Gatherer))
	}
	return r
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"request_id", middleware.GetReqID(r.Context()))
	})
}

// sameHost accepts requests without an Origin header and requests whose
// Origin host matches the Host header.
func sameHost(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return u.Host == r.Host
}

// Start starts the dispatcher and mounts the app. The dispatcher stops
// when ctx is done.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return nil
	}
	s.started = true
	s.ctx = ctx
	s.mu.Unlock()

	s.disp.Start(ctx)
	var mountErr error
	if err := s.disp.Do(ctx, func() {
		mountErr = s.app.Mount(ctx, s.root)
	}); err != nil {
		return err
	}
	if mountErr != nil {
		return mountErr
	}
	s.logger.Info("app mounted", "generation", s.root.Generation())
	return nil
}

// Handler returns the HTTP handler. Call Start first.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Root returns the render root the app is mounted on.
func (s *Server) Root() *render.Root {
	return s.root
}

// Do runs fn on the server's dispatcher, serialized with events and
// renders.
func (s *Server) Do(ctx context.Context, fn func()) error {
	return s.disp.Do(ctx, fn)
}

// publish runs after every render, on the dispatcher goroutine.
func (s *Server) publish(generation uint64) {
	body := s.root.Container()
	html := body.InnerHTML(dom.HTMLOptions{MarkListeners: true})
	frame, err := json.Marshal(RenderMessage{
		Type:       TypeRender,
		Generation: generation,
		HTML:       html,
		Tree:       EncodeTree(body.FirstChild()),
	})
	if err != nil {
		s.logger.Error("encode render frame", "error", err)
		return
	}

	s.mu.Lock()
	s.last = frame
	s.lastGen = generation
	s.lastHTML = html
	clients := make([]*client, 0, len(s.clients))
	for c := range s.clients {
		clients = append(clients, c)
	}
	s.mu.Unlock()

	for _, c := range clients {
		if !c.enqueue(frame) {
			s.logger.Warn("client too slow, disconnecting", "client", c.id)
			c.close()
		}
	}
}

// snapshot returns the last render frame, its generation and its HTML.
func (s *Server) snapshot() ([]byte, uint64, string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.last, s.lastGen, s.lastHTML
}

// Clients returns the number of connected clients.
func (s *Server) Clients() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

// addClient registers c and queues the current frame for it.
func (s *Server) addClient(c *client) {
	s.mu.Lock()
	s.clients[c] = struct{}{}
	if s.last != nil {
		c.enqueue(s.last)
	}
	s.mu.Unlock()
	if s.config.Metrics != nil {
		s.config.Metrics.ConnectionOpened()
	}
}

func (s *Server) removeClient(c *client) {
	s.mu.Lock()
	_, ok := s.clients[c]
	delete(s.clients, c)
	s.mu.Unlock()
	if ok && s.config.Metrics != nil {
		s.config.Metrics.ConnectionClosed()
	}
}

// ListenAndServe starts the app and serves HTTP on addr until ctx is done,
// then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	if err := s.Start(ctx); err != nil {
		return err
	}
	s.httpServer = &http.Server{
		Addr:    addr,
		Handler: s.Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "address", addr)
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down...")
		return s.Shutdown(context.Background())
	}
}

// Shutdown closes all clients, stops the dispatcher and shuts down the
// HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()

	s.mu.RLock()
	clients := make([]*client, 0, len(s.clients))
	for c := range s.clients {
		clients = append(clients, c)
	}
	s.mu.RUnlock()
	for _, c := range clients {
		c.close()
	}
	s.disp.Stop()

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			s.logger.Error("shutdown error", "error", err)
			return err
		}
	}
	s.logger.Info("server shutdown complete")
	return nil
}
