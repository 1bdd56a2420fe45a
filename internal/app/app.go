package app

import (
	"context"
	"errors"
	"net"
	stdhttp "net/http"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/roomrelay/internal/config"
	"github.com/vovakirdan/roomrelay/internal/core"
	"github.com/vovakirdan/roomrelay/internal/profanity"
	transporthttp "github.com/vovakirdan/roomrelay/internal/transport/http"
)

// App wires together core and transport layers.
type App struct {
	server          *stdhttp.Server
	shutdownTimeout time.Duration
	hub             *core.Hub
	log             *zerolog.Logger
}

// New constructs the application with provided configuration.
func New(cfg *config.Config, logger *zerolog.Logger) *App {
	hub := core.NewHub(core.HubOptions{
		WelcomeText: cfg.WelcomeText,
		Filter:      profanity.New(cfg.BannedWords, cfg.AllowedWords),
		Logger:      logger,
	})
	server := transporthttp.NewServer(hub, cfg, logger)

	logger.Info().
		Str("addr", cfg.Addr).
		Str("public_dir", cfg.PublicDir).
		Int("banned_words", len(cfg.BannedWords)).
		Msg("application configured")

	return &App{
		server:          server,
		shutdownTimeout: cfg.ShutdownTimeout,
		hub:             hub,
		log:             logger,
	}
}

// Run starts the HTTP server and blocks until context cancellation or fatal error.
func (a *App) Run(ctx context.Context) error {
	// Requests, and so the WebSocket loops, end once connCtx is cancelled.
	// http.Server.Shutdown does not wait for hijacked connections.
	connCtx, cancelConns := context.WithCancel(context.Background())
	defer cancelConns()
	a.server.BaseContext = func(net.Listener) context.Context { return connCtx }

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
		defer cancel()

		a.log.Info().Int("online", a.hub.Online()).Msg("shutting down http server")
		cancelConns()
		return a.server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
