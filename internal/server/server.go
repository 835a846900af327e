// Package server implements the development API that autolist talks to:
// reference lists, login and listing creation, backed by memory.
package server

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/autolist/autolist/internal/catalog"
	"github.com/autolist/autolist/internal/config"
	"github.com/autolist/autolist/internal/listing"
	"github.com/autolist/autolist/internal/logging"
)

// Options configures a Server.
type Options struct {
	Catalog           *catalog.Catalog
	Secret            []byte
	TokenTTL          time.Duration
	Users             []config.UserConfig
	EnforceModelBrand bool
	Logger            *logging.Logger
}

// Listing is a stored listing.
type Listing struct {
	ID        int64     `json:"id"`
	OwnerID   string    `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
	listing.Draft
}

// Server serves the API from memory.
type Server struct {
	opts   Options
	schema *listing.Schema
	engine *gin.Engine
	logger *logging.Logger

	mu       sync.RWMutex
	listings []Listing
	nextID   int64
}

// New builds a server and its routes.
func New(opts Options) *Server {
	if opts.Catalog == nil {
		opts.Catalog = &catalog.Catalog{}
	}
	if opts.TokenTTL <= 0 {
		opts.TokenTTL = config.DefaultTokenTTL
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Global()
	}

	schema := listing.DefaultSchema()
	if opts.EnforceModelBrand {
		schema = schema.WithCatalog(opts.Catalog)
	}

	s := &Server{
		opts:   opts,
		schema: schema,
		logger: logger,
		nextID: 1,
	}
	s.engine = s.routes()
	return s
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())

	api := r.Group("/api")
	for _, kind := range catalog.Kinds() {
		api.GET("/"+string(kind), s.listCatalog(kind))
	}
	api.POST("/auth/login", s.login)
	api.GET("/listings", s.listListings)

	protected := api.Group("/")
	protected.Use(s.requireAuth())
	{
		protected.POST("/listings", s.createListing)
	}
	return r
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("server shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start).String(),
		)
	}
}
