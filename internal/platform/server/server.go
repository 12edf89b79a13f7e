package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	pb "github.com/ogurasousui/hr-department-requests/internal/adapters/grpc/deptrequestv1"
	"github.com/ogurasousui/hr-department-requests/internal/adapters/grpc/handler"
	"github.com/ogurasousui/hr-department-requests/internal/core/deptrequest"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
)

// Server は gRPC サーバーのライフサイクルを管理します。
type Server struct {
	listenAddr string
	grpcServer *grpc.Server
	health     *health.Server
	logger     *zap.Logger
}

// New は指定されたアドレスで待ち受ける gRPC サーバーを構築します。
func New(listenAddr string, svc deptrequest.UseCase, logger *zap.Logger, opts ...grpc.ServerOption) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	serverOpts := append([]grpc.ServerOption{grpc.ChainUnaryInterceptor(loggingInterceptor(logger))}, opts...)
	srv := grpc.NewServer(serverOpts...)
	pb.RegisterDepartmentRequestServiceServer(srv, handler.NewDeptRequestGrpcHandler(svc))

	healthSrv := health.NewServer()
	healthSrv.SetServingStatus(pb.ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(srv, healthSrv)

	return &Server{
		listenAddr: listenAddr,
		grpcServer: srv,
		health:     healthSrv,
		logger:     logger,
	}
}

// Run はサーバーを起動し、コンテキストがキャンセルされると GracefulStop します。
func (s *Server) Run(ctx context.Context) error {
	lis, err := net.Listen("tcp", s.listenAddr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.listenAddr, err)
	}
	return s.Serve(ctx, lis)
}

// Serve は与えられたリスナーで待ち受けます。停止監視の goroutine が終わるまで戻りません。
func (s *Server) Serve(ctx context.Context, lis net.Listener) error {
	done := make(chan struct{})
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		select {
		case <-ctx.Done():
			s.GracefulStop()
		case <-done:
		}
	}()

	s.logger.Info("gRPC server listening", zap.String("addr", lis.Addr().String()))

	err := s.grpcServer.Serve(lis)
	close(done)
	<-stopped

	if err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return fmt.Errorf("serve gRPC: %w", err)
	}
	return nil
}

// GracefulStop はサーバーを安全に停止します。
func (s *Server) GracefulStop() {
	s.health.Shutdown()
	s.grpcServer.GracefulStop()
}

func loggingInterceptor(logger *zap.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, next grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := next(ctx, req)

		fields := []zap.Field{
			zap.String("method", info.FullMethod),
			zap.String("code", status.Code(err).String()),
			zap.Duration("latency", time.Since(start)),
		}
		if err != nil {
			logger.Warn("gRPC request failed", append(fields, zap.Error(err))...)
		} else {
			logger.Info("gRPC request", fields...)
		}
		return resp, err
	}
}
