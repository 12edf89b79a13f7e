package handler

import (
	"context"
	"strings"
	"time"

	pb "github.com/ogurasousui/hr-department-requests/internal/adapters/grpc/deptrequestv1"
	"github.com/ogurasousui/hr-department-requests/internal/core/deptrequest"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

const (
	actorIDMetadataKey    = "x-actor-id"
	actorRolesMetadataKey = "x-actor-roles"
)

// DeptRequestGrpcHandler は DepartmentRequestService の gRPC 実装です。
type DeptRequestGrpcHandler struct {
	svc deptrequest.UseCase
	pb.UnimplementedDepartmentRequestServiceServer
}

// NewDeptRequestGrpcHandler は DeptRequestGrpcHandler を生成します。
func NewDeptRequestGrpcHandler(svc deptrequest.UseCase) *DeptRequestGrpcHandler {
	return &DeptRequestGrpcHandler{svc: svc}
}

// CreateDepartmentRequest は呼び出し元社員の部署異動申請を作成します。
func (h *DeptRequestGrpcHandler) CreateDepartmentRequest(ctx context.Context, req *pb.CreateDepartmentRequestRequest) (*pb.CreateDepartmentRequestResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	created, err := h.svc.RequestChange(ctx, deptrequest.RequestChangeInput{
		Actor:                 actorFromMetadata(ctx),
		RequestedDepartmentID: req.RequestedDepartmentID,
		RequestedJobTitle:     req.RequestedJobTitle,
		Reason:                req.Reason,
	})
	if err != nil {
		return nil, toStatusError(err)
	}

	return &pb.CreateDepartmentRequestResponse{Request: toProtoRequest(created)}, nil
}

// GetDepartmentRequest は申請を 1 件取得します。
func (h *DeptRequestGrpcHandler) GetDepartmentRequest(ctx context.Context, req *pb.GetDepartmentRequestRequest) (*pb.GetDepartmentRequestResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	found, err := h.svc.View(ctx, deptrequest.ViewInput{Actor: actorFromMetadata(ctx), RequestID: req.ID})
	if err != nil {
		return nil, toStatusError(err)
	}

	return &pb.GetDepartmentRequestResponse{Request: toProtoRequest(found)}, nil
}

// ListDepartmentRequests は閲覧可能な申請の一覧を取得します。
func (h *DeptRequestGrpcHandler) ListDepartmentRequests(ctx context.Context, req *pb.ListDepartmentRequestsRequest) (*pb.ListDepartmentRequestsResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	var statusPtr *deptrequest.Status
	if req.Status != "" {
		parsed, err := deptrequest.ParseStatus(req.Status)
		if err != nil {
			return nil, toStatusError(err)
		}
		statusPtr = &parsed
	}

	result, err := h.svc.List(ctx, deptrequest.ListInput{
		Actor:     actorFromMetadata(ctx),
		PageSize:  int(req.PageSize),
		PageToken: req.PageToken,
		Status:    statusPtr,
	})
	if err != nil {
		return nil, toStatusError(err)
	}

	requests := make([]*pb.DepartmentRequest, 0, len(result.Requests))
	for _, r := range result.Requests {
		requests = append(requests, toProtoRequest(r))
	}

	return &pb.ListDepartmentRequestsResponse{
		Requests:      requests,
		NextPageToken: result.NextPageToken,
	}, nil
}

// DecideDepartmentRequest は申請を承認または却下します。
func (h *DeptRequestGrpcHandler) DecideDepartmentRequest(ctx context.Context, req *pb.DecideDepartmentRequestRequest) (*pb.DecideDepartmentRequestResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	decision, err := deptrequest.ParseStatus(req.Status)
	if err != nil {
		return nil, toStatusError(err)
	}

	decided, err := h.svc.Decide(ctx, deptrequest.DecideInput{
		Actor:      actorFromMetadata(ctx),
		RequestID:  req.ID,
		Decision:   decision,
		AdminNotes: req.AdminNotes,
	})
	if err != nil {
		return nil, toStatusError(err)
	}

	return &pb.DecideDepartmentRequestResponse{Request: toProtoRequest(decided)}, nil
}

// DeleteDepartmentRequest は申請を削除します。
func (h *DeptRequestGrpcHandler) DeleteDepartmentRequest(ctx context.Context, req *pb.DeleteDepartmentRequestRequest) (*pb.DeleteDepartmentRequestResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	if err := h.svc.Withdraw(ctx, deptrequest.WithdrawInput{Actor: actorFromMetadata(ctx), RequestID: req.ID}); err != nil {
		return nil, toStatusError(err)
	}

	return &pb.DeleteDepartmentRequestResponse{}, nil
}

// actorFromMetadata は受信メタデータから呼び出し元を復元します。
// ID が無い場合は未認証の Actor を返し、判定はサービス層に委ねます。
func actorFromMetadata(ctx context.Context) deptrequest.Actor {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return deptrequest.Actor{}
	}

	var id string
	if values := md.Get(actorIDMetadataKey); len(values) > 0 {
		id = values[0]
	}

	var roles []string
	for _, v := range md.Get(actorRolesMetadataKey) {
		roles = append(roles, strings.Split(v, ",")...)
	}

	return deptrequest.NewActor(id, roles)
}

func toProtoRequest(r *deptrequest.Request) *pb.DepartmentRequest {
	if r == nil {
		return nil
	}

	out := &pb.DepartmentRequest{
		ID:                      r.ID,
		RequesterID:             r.RequesterID,
		CurrentDepartmentName:   r.CurrentDepartmentName(),
		RequestedDepartmentID:   r.RequestedDepartmentID,
		RequestedDepartmentName: r.RequestedDepartmentName,
		RequestedJobTitle:       r.RequestedJobTitle,
		CurrentJobTitle:         r.CurrentJobTitle,
		Reason:                  r.Reason,
		Status:                  string(r.Status),
		AdminNotes:              r.AdminNotes,
		ProcessedByID:           r.ProcessedByID,
		ProcessedByName:         r.ProcessedByName,
		CreatedAt:               r.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:               r.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}

	if r.Requester != nil {
		out.UserName = r.Requester.Name
		out.UserEmail = r.Requester.Email
		out.CurrentDepartmentID = r.Requester.DepartmentID
	}

	if r.ProcessedAt != nil {
		processed := r.ProcessedAt.UTC().Format(time.RFC3339Nano)
		out.ProcessedAt = &processed
	}

	return out
}
