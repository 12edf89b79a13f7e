// Package rest は部署異動申請ワークフローを HTTP/JSON で公開します。
package rest

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ogurasousui/hr-department-requests/internal/core/deptrequest"
	"github.com/ogurasousui/hr-department-requests/internal/platform/config"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Server は gin ベースの HTTP サーバーです。
type Server struct {
	cfg        config.HTTPConfig
	router     *gin.Engine
	httpServer *http.Server
	logger     *zap.Logger
}

// NewServer は HTTP サーバーを構築し、ルートを登録します。
func NewServer(cfg config.HTTPConfig, svc deptrequest.UseCase, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), accessLog(logger))

	h := newHandler(svc)
	router.GET("/health", h.health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/department-requests", identity())
	{
		api.GET("", h.list)
		api.POST("", h.create)
		api.GET("/:id", h.get)
		api.PUT("/:id", h.decide)
		api.DELETE("/:id", h.delete)
		api.POST("/:id/approve", h.action(deptrequest.StatusApproved))
		api.POST("/:id/reject", h.action(deptrequest.StatusRejected))
	}

	return &Server{
		cfg:    cfg,
		router: router,
		logger: logger,
		httpServer: &http.Server{
			Addr:         cfg.ListenAddr,
			Handler:      router,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
	}
}

// Handler はテストなどから直接利用するための http.Handler を返します。
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run はサーバーを起動し、コンテキストがキャンセルされると Shutdown します。
func (s *Server) Run(ctx context.Context) error {
	lis, err := net.Listen("tcp", s.cfg.ListenAddr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.cfg.ListenAddr, err)
	}

	s.logger.Info("HTTP server listening", zap.String("addr", lis.Addr().String()))

	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		return s.Stop()
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("serve HTTP: %w", err)
		}
		return nil
	}
}

// Stop は処理中のリクエストを待ってからサーバーを停止します。
func (s *Server) Stop() error {
	timeout := s.cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown HTTP: %w", err)
	}
	s.logger.Info("HTTP server stopped")
	return nil
}
