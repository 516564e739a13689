package console

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/simp-lee/logger"

	"github.com/simp-lee/storeadmin/internal/admin/configs"
	"github.com/simp-lee/storeadmin/internal/config"
	"github.com/simp-lee/storeadmin/internal/gateway"
	"github.com/simp-lee/storeadmin/internal/middleware"
	"github.com/simp-lee/storeadmin/web"
)

// Console is the server-rendered admin console. It manages a remote store API
// through the gateway client, holding one Screen per entity type.
type Console struct {
	engine  *gin.Engine
	logger  *logger.Logger
	cfg     *config.Config
	session *Session
	client  *gateway.Client
	screens []*Screen
	bySlug  map[string]*Screen
}

type httpServer interface {
	ListenAndServe() error
	Shutdown(ctx context.Context) error
}

var newHTTPServer = func(addr string, handler http.Handler) httpServer {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}

var notifyContext = func(parent context.Context, signals ...os.Signal) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, signals...)
}

// New creates a fully wired Console from the given Config: logger, API
// client with operator session, one screen per entity, template renderer,
// and routes.
func New(cfg *config.Config) (*Console, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	if cfg.Console.APIBaseURL == "" {
		return nil, errors.New("console.api_base_url is required")
	}
	if cfg.Console.Email == "" || cfg.Console.Password == "" {
		return nil, errors.New("console.email and console.password are required")
	}

	log, err := config.SetupLogger(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	session := NewSession(cfg.Console.Email, cfg.Console.Password)
	client, err := gateway.New(cfg.Console.APIBaseURL, session,
		gateway.WithTimeout(cfg.ConsoleTimeoutDuration()))
	if err != nil {
		return nil, fmt.Errorf("api client: %w", err)
	}
	session.Bind(client)

	con := &Console{
		logger:  log,
		cfg:     cfg,
		session: session,
		client:  client,
		bySlug:  make(map[string]*Screen),
	}

	for _, es := range configs.All(client) {
		screen, err := newScreen(es, client, log.Logger)
		if err != nil {
			return nil, fmt.Errorf("screen %s: %w", es.Slug, err)
		}
		con.screens = append(con.screens, screen)
		con.bySlug[screen.Slug] = screen
	}

	gin.SetMode(cfg.Server.Mode)
	engine := gin.New()
	engine.Use(
		middleware.Recovery(log.Logger),
		middleware.RequestIDWithConfig(middleware.RequestIDConfig{
			TrustUpstream: false,
		}),
		middleware.Logger(log.Logger),
	)

	debug := cfg.Server.Mode == gin.DebugMode
	webFS := resolveWebFS(debug, log.Logger)
	renderer, err := NewTemplateRenderer(webFS, debug)
	if err != nil {
		return nil, fmt.Errorf("template renderer: %w", err)
	}
	engine.HTMLRender = renderer

	staticFS, err := fs.Sub(webFS, "static")
	if err != nil {
		return nil, fmt.Errorf("static fs: %w", err)
	}
	engine.StaticFS("/static", http.FS(staticFS))

	con.engine = engine
	con.registerRoutes()
	return con, nil
}

// resolveWebFS serves templates and static assets from disk in debug mode so
// edits show up without a rebuild, falling back to the embedded copy.
func resolveWebFS(debug bool, log *slog.Logger) fs.FS {
	if debug {
		if _, err := os.Stat("web/templates"); err == nil {
			log.Info("serving web assets from disk (debug mode)")
			return os.DirFS("web")
		}
	}
	return web.EmbeddedFS()
}

// Run starts the console HTTP server and blocks until a shutdown signal.
func (con *Console) Run() error {
	if con == nil {
		return errors.New("console is nil")
	}
	if con.engine == nil {
		return errors.New("console engine is nil")
	}

	addr := fmt.Sprintf("%s:%d", con.cfg.Console.Host, con.cfg.Console.Port)
	srv := newHTTPServer(addr, con.engine)

	ctx, stop := notifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		con.logf().Info("console started",
			slog.String("addr", addr),
			slog.String("api", con.cfg.Console.APIBaseURL))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	var runErr error

	select {
	case <-ctx.Done():
		con.logf().Info("shutdown signal received")
	case err := <-errCh:
		runErr = fmt.Errorf("console server error: %w", err)
	}

	if runErr == nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			con.logf().Error("console shutdown error", slog.Any("error", err))
		}
	}

	con.logf().Info("console stopped")
	if con.logger != nil {
		if err := con.logger.Close(); err != nil {
			slog.Error("logger close error", slog.Any("error", err))
		}
	}

	return runErr
}

func (con *Console) logf() *slog.Logger {
	if con.logger != nil {
		return con.logger.Logger
	}
	return slog.Default()
}
