package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/geoknoesis/x3mlmapper/mapper"
)

// Server serves mapping requests over HTTP.
type Server struct {
	cfg       Config
	log       *slog.Logger
	stages    Logger
	loader    *mapper.Loader
	documents *mapper.DocumentParser
	policies  *mapper.PolicyBuilder
	engine    *gin.Engine
}

// Option configures a Server.
type Option func(*options)

type options struct {
	client *http.Client
	stages Logger
}

// WithHTTPClient sets the client used to fetch mapping definitions and source documents.
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) {
		o.client = client
	}
}

// WithStageLogger replaces the default stage logger.
func WithStageLogger(l Logger) Option {
	return func(o *options) {
		o.stages = l
	}
}

// New wires the mapping pipeline to factory and policies.
func New(cfg Config, factory mapper.Factory, policies mapper.PolicyFactory, log *slog.Logger, opts ...Option) *Server {
	if log == nil {
		log = slog.Default()
	}
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.stages == nil {
		o.stages = NewStageLogger(log, false)
	}

	resolverOpts := []mapper.ResolverOption{
		mapper.WithUserAgent(cfg.HTTP.UserAgent),
		mapper.WithTimeout(cfg.HTTP.Timeout.Value()),
		mapper.WithLogger(log),
	}
	if o.client != nil {
		resolverOpts = append(resolverOpts, mapper.WithHTTPClient(o.client))
	}
	resolver := mapper.NewResolver(resolverOpts...)

	s := &Server{
		cfg:       cfg,
		log:       log,
		stages:    o.stages,
		loader:    mapper.NewLoader(resolver, factory, log),
		documents: mapper.NewDocumentParser(resolver),
		policies:  mapper.NewPolicyBuilder(policies),
	}
	s.engine = s.routes()
	return s
}

func (s *Server) routes() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger(s.log))

	handler := s.handle(s.pipeline())
	r.GET(s.cfg.Server.Path, handler)
	r.POST(s.cfg.Server.Path, handler)
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return r
}

func (s *Server) handle(ch *Chain) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, e := Execute(ch, c, s.stages); e != nil {
			c.AbortWithStatusJSON(e.Code, e.Obj)
		}
	}
}

// Handler returns the HTTP handler of the server.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run listens on server.listen until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Server.Listen,
		Handler:      s.engine,
		ReadTimeout:  s.cfg.Server.ReadTimeout.Value(),
		WriteTimeout: s.cfg.Server.WriteTimeout.Value(),
		BaseContext:  func(net.Listener) context.Context { return ctx },
	}

	errs := make(chan error, 1)
	go func() {
		s.log.InfoContext(ctx, "listening", "addr", srv.Addr, "path", s.cfg.Server.Path)
		errs <- srv.ListenAndServe()
	}()

	select {
	case err := <-errs:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()
	s.log.InfoContext(ctx, "shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
