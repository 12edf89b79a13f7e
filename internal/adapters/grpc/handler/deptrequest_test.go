package handler

import (
	"context"
	"errors"
	"testing"
	"time"

	pb "github.com/ogurasousui/hr-department-requests/internal/adapters/grpc/deptrequestv1"
	"github.com/ogurasousui/hr-department-requests/internal/core/deptrequest"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type stubDeptRequestUseCase struct {
	createInput deptrequest.RequestChangeInput
	decideInput deptrequest.DecideInput
	viewInput   deptrequest.ViewInput
	listInput   deptrequest.ListInput
	deleteInput deptrequest.WithdrawInput

	out       *deptrequest.Request
	listOut   *deptrequest.ListResult
	err       error
	decideErr error
}

func (s *stubDeptRequestUseCase) RequestChange(ctx context.Context, in deptrequest.RequestChangeInput) (*deptrequest.Request, error) {
	s.createInput = in
	return s.out, s.err
}

func (s *stubDeptRequestUseCase) Decide(ctx context.Context, in deptrequest.DecideInput) (*deptrequest.Request, error) {
	s.decideInput = in
	if s.decideErr != nil {
		return nil, s.decideErr
	}
	return s.out, s.err
}

func (s *stubDeptRequestUseCase) View(ctx context.Context, in deptrequest.ViewInput) (*deptrequest.Request, error) {
	s.viewInput = in
	return s.out, s.err
}

func (s *stubDeptRequestUseCase) List(ctx context.Context, in deptrequest.ListInput) (*deptrequest.ListResult, error) {
	s.listInput = in
	return s.listOut, s.err
}

func (s *stubDeptRequestUseCase) Withdraw(ctx context.Context, in deptrequest.WithdrawInput) error {
	s.deleteInput = in
	return s.err
}

func sampleRequest() *deptrequest.Request {
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	sales := "Sales"
	salesID := "dept-sales"
	return &deptrequest.Request{
		ID:                      "request-1",
		RequesterID:             "employee-e",
		RequestedDepartmentID:   "dept-engineering",
		RequestedDepartmentName: "Engineering",
		Reason:                  "career change",
		Status:                  deptrequest.StatusPending,
		CreatedAt:               now,
		UpdatedAt:               now,
		Requester: &deptrequest.RequesterSnapshot{
			ID:             "employee-e",
			Name:           "Erin",
			Email:          "erin@example.com",
			DepartmentID:   &salesID,
			DepartmentName: &sales,
		},
	}
}

func incoming(id, roles string) context.Context {
	return metadata.NewIncomingContext(context.Background(), metadata.Pairs(
		actorIDMetadataKey, id,
		actorRolesMetadataKey, roles,
	))
}

func TestDeptRequestGrpcHandler_Create(t *testing.T) {
	t.Parallel()

	stub := &stubDeptRequestUseCase{out: sampleRequest()}
	handler := NewDeptRequestGrpcHandler(stub)

	resp, err := handler.CreateDepartmentRequest(incoming("employee-e", "employee"), &pb.CreateDepartmentRequestRequest{
		RequestedDepartmentID: "dept-engineering",
		Reason:                "career change",
	})
	if err != nil {
		t.Fatalf("CreateDepartmentRequest returned error: %v", err)
	}

	if stub.createInput.Actor.ID != "employee-e" {
		t.Errorf("expected actor from metadata, got %+v", stub.createInput.Actor)
	}
	if len(stub.createInput.Actor.Roles) != 1 || stub.createInput.Actor.Roles[0] != deptrequest.RoleEmployee {
		t.Errorf("expected normalized EMPLOYEE role, got %v", stub.createInput.Actor.Roles)
	}

	got := resp.Request
	if got.UserName != "Erin" || got.CurrentDepartmentName != "Sales" || got.RequestedDepartmentName != "Engineering" {
		t.Errorf("unexpected projection: %+v", got)
	}
	if got.ProcessedAt != nil {
		t.Errorf("expected no processedAt for pending request")
	}
}

func TestDeptRequestGrpcHandler_Decide(t *testing.T) {
	t.Parallel()

	stub := &stubDeptRequestUseCase{out: sampleRequest()}
	handler := NewDeptRequestGrpcHandler(stub)
	notes := "ok"

	if _, err := handler.DecideDepartmentRequest(incoming("hr-h", "hr,manager"), &pb.DecideDepartmentRequestRequest{
		ID:         "request-1",
		Status:     "approved",
		AdminNotes: &notes,
	}); err != nil {
		t.Fatalf("DecideDepartmentRequest returned error: %v", err)
	}

	if stub.decideInput.Decision != deptrequest.StatusApproved {
		t.Errorf("expected APPROVED decision, got %s", stub.decideInput.Decision)
	}
	if len(stub.decideInput.Actor.Roles) != 2 {
		t.Errorf("expected two roles, got %v", stub.decideInput.Actor.Roles)
	}
}

func TestDeptRequestGrpcHandler_Decide_InvalidStatus(t *testing.T) {
	t.Parallel()

	handler := NewDeptRequestGrpcHandler(&stubDeptRequestUseCase{})

	_, err := handler.DecideDepartmentRequest(incoming("hr-h", "HR"), &pb.DecideDepartmentRequestRequest{ID: "request-1", Status: "MAYBE"})
	if status.Code(err) != codes.InvalidArgument {
		t.Fatalf("expected InvalidArgument, got %v", err)
	}
}

func TestDeptRequestGrpcHandler_List(t *testing.T) {
	t.Parallel()

	stub := &stubDeptRequestUseCase{listOut: &deptrequest.ListResult{
		Requests:      []*deptrequest.Request{sampleRequest()},
		NextPageToken: "1",
	}}
	handler := NewDeptRequestGrpcHandler(stub)

	resp, err := handler.ListDepartmentRequests(incoming("hr-h", "HR"), &pb.ListDepartmentRequestsRequest{PageSize: 1, Status: "PENDING"})
	if err != nil {
		t.Fatalf("ListDepartmentRequests returned error: %v", err)
	}

	if stub.listInput.Status == nil || *stub.listInput.Status != deptrequest.StatusPending {
		t.Errorf("expected PENDING filter, got %v", stub.listInput.Status)
	}
	if len(resp.Requests) != 1 || resp.NextPageToken != "1" {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestDeptRequestGrpcHandler_GetAndDelete(t *testing.T) {
	t.Parallel()

	stub := &stubDeptRequestUseCase{out: sampleRequest()}
	handler := NewDeptRequestGrpcHandler(stub)
	ctx := incoming("employee-e", "EMPLOYEE")

	if _, err := handler.GetDepartmentRequest(ctx, &pb.GetDepartmentRequestRequest{ID: "request-1"}); err != nil {
		t.Fatalf("GetDepartmentRequest returned error: %v", err)
	}
	if stub.viewInput.RequestID != "request-1" {
		t.Errorf("expected request id passed through, got %s", stub.viewInput.RequestID)
	}

	if _, err := handler.DeleteDepartmentRequest(ctx, &pb.DeleteDepartmentRequestRequest{ID: "request-1"}); err != nil {
		t.Fatalf("DeleteDepartmentRequest returned error: %v", err)
	}
	if stub.deleteInput.Actor.ID != "employee-e" {
		t.Errorf("expected actor passed through, got %+v", stub.deleteInput.Actor)
	}
}

func TestDeptRequestGrpcHandler_NilRequest(t *testing.T) {
	t.Parallel()

	handler := NewDeptRequestGrpcHandler(&stubDeptRequestUseCase{})
	if _, err := handler.GetDepartmentRequest(context.Background(), nil); status.Code(err) != codes.InvalidArgument {
		t.Fatalf("expected InvalidArgument, got %v", err)
	}
}

func TestActorFromMetadata_Missing(t *testing.T) {
	t.Parallel()

	actor := actorFromMetadata(context.Background())
	if actor.Authenticated() {
		t.Fatalf("expected unauthenticated actor, got %+v", actor)
	}
}

func TestToStatusError(t *testing.T) {
	t.Parallel()

	cases := []struct {
		err  error
		code codes.Code
	}{
		{deptrequest.ErrUnauthenticated, codes.Unauthenticated},
		{deptrequest.ErrUnauthorized, codes.PermissionDenied},
		{deptrequest.ErrRequestNotFound, codes.NotFound},
		{deptrequest.ErrDepartmentNotFound, codes.NotFound},
		{deptrequest.ErrInvalidReason, codes.InvalidArgument},
		{deptrequest.ErrInvalidStatus, codes.InvalidArgument},
		{deptrequest.ErrInvalidTransition, codes.FailedPrecondition},
		{deptrequest.ErrConflict, codes.Aborted},
		{errors.New("connection refused"), codes.Internal},
	}

	for _, tc := range cases {
		if got := status.Code(toStatusError(tc.err)); got != tc.code {
			t.Errorf("%v: expected %s, got %s", tc.err, tc.code, got)
		}
	}

	if toStatusError(nil) != nil {
		t.Errorf("expected nil for nil error")
	}
}
