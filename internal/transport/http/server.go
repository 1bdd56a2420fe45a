package http

import (
	stdhttp "net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/vovakirdan/roomrelay/internal/config"
)

// NewServer builds an HTTP server with the WebSocket endpoint, read-only room
// views and, when configured, the static browser client.
func NewServer(hub ChatHub, cfg *config.Config, logger *zerolog.Logger) *stdhttp.Server {
	return &stdhttp.Server{
		Addr:              cfg.Addr,
		Handler:           NewHandler(hub, cfg, logger),
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
}

// NewHandler mounts /ws on a plain mux in front of the gin router. WebSocket
// upgrades must not pass through gin, which will not hijack a written response.
func NewHandler(hub ChatHub, cfg *config.Config, logger *zerolog.Logger) stdhttp.Handler {
	mux := stdhttp.NewServeMux()
	mux.Handle("/ws", NewWSHandler(hub, cfg, logger))
	mux.Handle("/", NewRouter(hub, cfg, logger))
	return mux
}

// NewRouter registers the HTTP routes other than /ws on a fresh gin engine.
func NewRouter(hub ChatHub, cfg *config.Config, logger *zerolog.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), LoggerMiddleware(logger))

	router.GET("/health", healthHandler)

	rooms := NewRoomHandlers(hub, logger)
	api := router.Group("/api")
	api.GET("/rooms", rooms.ListRooms)
	api.GET("/rooms/:room/users", rooms.ListUsers)

	if cfg.PublicDir != "" {
		router.NoRoute(gin.WrapH(stdhttp.FileServer(stdhttp.Dir(cfg.PublicDir))))
	}

	return router
}

func healthHandler(c *gin.Context) {
	c.String(stdhttp.StatusOK, "ok")
}
