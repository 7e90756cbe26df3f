package api

import (
	"context"
	"image"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/youruser/artifactdeck/internal/cards"
	"github.com/youruser/artifactdeck/internal/config"
	"github.com/youruser/artifactdeck/internal/deckcode"
	imagepkg "github.com/youruser/artifactdeck/internal/image"
)

// Server holds what the handlers share. Cards may be nil, in which case
// endpoints that need card metadata answer 503.
type Server struct {
	cards   *cards.Database
	encoder *deckcode.Encoder
	logger  *slog.Logger
	config  config.Config

	fetchImage func(ctx context.Context, url string) (image.Image, error)
}

type Options struct {
	Cards     *cards.Database
	Sanitizer deckcode.Sanitizer
	Logger    *slog.Logger
	Config    config.Config
}

func NewServer(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		cards:      opts.Cards,
		encoder:    deckcode.NewEncoder(opts.Sanitizer),
		logger:     logger,
		config:     opts.Config,
		fetchImage: imagepkg.DownloadImage,
	}
}

// NewRouter returns a gin engine with the recovery and request logging
// middleware and every route registered.
func NewRouter(s *Server) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(s.logger))
	RegisterRoutes(r, s)
	return r
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("request",
			"method", c.Request.Method,
			"route", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
