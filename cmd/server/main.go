package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/ogurasousui/hr-department-requests/internal/adapters/repository/postgres"
	"github.com/ogurasousui/hr-department-requests/internal/adapters/rest"
	"github.com/ogurasousui/hr-department-requests/internal/core/deptrequest"
	"github.com/ogurasousui/hr-department-requests/internal/platform/config"
	pg "github.com/ogurasousui/hr-department-requests/internal/platform/db/postgres"
	"github.com/ogurasousui/hr-department-requests/internal/platform/logger"
	"github.com/ogurasousui/hr-department-requests/internal/platform/server"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "assets/local.yaml"
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zl, err := logger.New(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	if err := run(ctx, cfg, zl); err != nil {
		zl.Fatal("server stopped with error", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config, zl *zap.Logger) error {
	dbPool, err := pg.NewPool(ctx, cfg.Database, zl)
	if err != nil {
		return err
	}
	defer dbPool.Close()

	policy, err := deptrequest.NewPolicy()
	if err != nil {
		return err
	}

	employees := postgres.NewEmployeeRepository(dbPool)
	departments := postgres.NewDepartmentRepository(dbPool)
	applier := deptrequest.NewMutationApplier(
		employees,
		departments,
		postgres.NewAuditLogRepository(dbPool),
		nil,
		zl.Named("audit"),
	)

	svc := deptrequest.NewService(deptrequest.Dependencies{
		Repo:        postgres.NewDeptRequestRepository(dbPool),
		Employees:   employees,
		Departments: departments,
		Applier:     applier,
		Policy:      policy,
		Tx:          pg.NewTransactionManager(dbPool, zl.Named("tx")),
		Logger:      zl.Named("deptrequest"),
		StrictAudit: cfg.Audit.Strict,
	})

	grpcServer := server.New(cfg.Server.ListenAddr, svc, zl.Named("grpc"))
	httpServer := rest.NewServer(cfg.HTTP, svc, zl.Named("http"))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return grpcServer.Run(gctx) })
	g.Go(func() error { return httpServer.Run(gctx) })

	return g.Wait()
}
