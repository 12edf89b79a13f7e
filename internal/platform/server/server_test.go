package server

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	pb "github.com/ogurasousui/hr-department-requests/internal/adapters/grpc/deptrequestv1"
	"github.com/ogurasousui/hr-department-requests/internal/core/deptrequest"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

type stubUseCase struct {
	viewInput deptrequest.ViewInput
	decideErr error
}

func (s *stubUseCase) RequestChange(ctx context.Context, in deptrequest.RequestChangeInput) (*deptrequest.Request, error) {
	return nil, deptrequest.ErrUnauthenticated
}

func (s *stubUseCase) Decide(ctx context.Context, in deptrequest.DecideInput) (*deptrequest.Request, error) {
	return nil, s.decideErr
}

func (s *stubUseCase) View(ctx context.Context, in deptrequest.ViewInput) (*deptrequest.Request, error) {
	s.viewInput = in
	now := time.Now().UTC()
	return &deptrequest.Request{
		ID:                      in.RequestID,
		RequesterID:             in.Actor.ID,
		RequestedDepartmentID:   "dept-engineering",
		RequestedDepartmentName: "Engineering",
		Reason:                  "career change",
		Status:                  deptrequest.StatusPending,
		CreatedAt:               now,
		UpdatedAt:               now,
	}, nil
}

func (s *stubUseCase) List(ctx context.Context, in deptrequest.ListInput) (*deptrequest.ListResult, error) {
	return &deptrequest.ListResult{}, nil
}

func (s *stubUseCase) Withdraw(ctx context.Context, in deptrequest.WithdrawInput) error {
	return nil
}

func startBufconn(t *testing.T, svc deptrequest.UseCase, logger *zap.Logger) *grpc.ClientConn {
	t.Helper()

	lis := bufconn.Listen(1 << 20)
	srv := New("bufnet", svc, logger)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, lis) }()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatalf("failed to dial bufconn: %v", err)
	}

	t.Cleanup(func() {
		_ = conn.Close()
		cancel()
		if err := <-done; err != nil {
			t.Errorf("Serve returned error: %v", err)
		}
	})

	return conn
}

func TestServer_JSONRoundTrip(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zap.InfoLevel)
	stub := &stubUseCase{}
	conn := startBufconn(t, stub, zap.New(core))
	client := pb.NewDepartmentRequestServiceClient(conn)

	ctx := metadata.AppendToOutgoingContext(context.Background(), "x-actor-id", "employee-e", "x-actor-roles", "EMPLOYEE")
	resp, err := client.GetDepartmentRequest(ctx, &pb.GetDepartmentRequestRequest{ID: "request-1"})
	if err != nil {
		t.Fatalf("GetDepartmentRequest returned error: %v", err)
	}

	if resp.Request.ID != "request-1" || resp.Request.RequestedDepartmentName != "Engineering" {
		t.Fatalf("unexpected response: %+v", resp.Request)
	}
	if stub.viewInput.Actor.ID != "employee-e" {
		t.Fatalf("expected actor from metadata, got %+v", stub.viewInput.Actor)
	}

	if logs.FilterMessage("gRPC request").Len() != 1 {
		t.Fatalf("expected access log entry, got %v", logs.All())
	}
}

func TestServer_ErrorCodes(t *testing.T) {
	t.Parallel()

	conn := startBufconn(t, &stubUseCase{decideErr: deptrequest.ErrConflict}, zap.NewNop())
	client := pb.NewDepartmentRequestServiceClient(conn)

	_, err := client.CreateDepartmentRequest(context.Background(), &pb.CreateDepartmentRequestRequest{})
	if status.Code(err) != codes.Unauthenticated {
		t.Fatalf("expected Unauthenticated, got %v", err)
	}

	_, err = client.DecideDepartmentRequest(context.Background(), &pb.DecideDepartmentRequestRequest{ID: "request-1", Status: "REJECTED"})
	if status.Code(err) != codes.Aborted {
		t.Fatalf("expected Aborted, got %v", err)
	}
}

func TestServer_Health(t *testing.T) {
	t.Parallel()

	conn := startBufconn(t, &stubUseCase{}, nil)

	resp, err := healthpb.NewHealthClient(conn).Check(context.Background(), &healthpb.HealthCheckRequest{Service: pb.ServiceName})
	if err != nil {
		t.Fatalf("health check returned error: %v", err)
	}
	if resp.GetStatus() != healthpb.HealthCheckResponse_SERVING {
		t.Fatalf("expected SERVING, got %s", resp.GetStatus())
	}
}

type failingListener struct{}

var errAcceptFailed = errors.New("accept failed")

func (failingListener) Accept() (net.Conn, error) { return nil, errAcceptFailed }
func (failingListener) Close() error              { return nil }
func (failingListener) Addr() net.Addr            { return &net.TCPAddr{IP: net.IPv4zero} }

func TestServer_ServeFailureReturnsWithoutCancel(t *testing.T) {
	t.Parallel()

	srv := New("unused", &stubUseCase{}, nil)

	done := make(chan error, 1)
	go func() { done <- srv.Serve(context.Background(), failingListener{}) }()

	select {
	case err := <-done:
		if !errors.Is(err, errAcceptFailed) {
			t.Fatalf("expected accept error, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after listener failure")
	}
}
