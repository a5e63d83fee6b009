// Package http exposes the chat pipeline over HTTP with gin. It owns request
// validation, origin checking, rate limiting and the streaming response wire
// format.
package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dwern/portfolio-chat/internal/config"
	"github.com/dwern/portfolio-chat/internal/domain/usecases"
	"github.com/dwern/portfolio-chat/internal/observability"
)

// Server wires the chat use case into the HTTP surface.
type Server struct {
	chat    *usecases.ChatUseCase
	cfg     *config.Config
	limiter *RateLimiter
}

// NewServer builds a Server from the loaded configuration.
func NewServer(chat *usecases.ChatUseCase, cfg *config.Config) *Server {
	return &Server{
		chat:    chat,
		cfg:     cfg,
		limiter: NewRateLimiter(cfg.RateLimit.Threshold, cfg.RateLimit.Window),
	}
}

// Limiter exposes the rate limiter, letting tests pin its clock.
func (s *Server) Limiter() *RateLimiter {
	return s.limiter
}

// Router assembles the gin engine with the full middleware chain.
func (s *Server) Router() *gin.Engine {
	if s.cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestID())
	r.Use(RequestLogger())
	r.Use(CORS())

	r.GET("/api/health", s.handleHealth)

	chat := r.Group("/api")
	chat.Use(RateLimit(s.limiter))
	chat.Use(OriginCheck(s.cfg.Site))
	chat.POST("/chat", s.handleChat)

	return r
}

// Start serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", s.cfg.Port),
		Handler: s.Router(),
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	observability.Logger().Info("server listening", "addr", srv.Addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
