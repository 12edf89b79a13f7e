package deptrequestv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const ServiceName = "hr.deptrequest.v1.DepartmentRequestService"

const (
	DepartmentRequestService_CreateDepartmentRequest_FullMethodName = "/" + ServiceName + "/CreateDepartmentRequest"
	DepartmentRequestService_GetDepartmentRequest_FullMethodName    = "/" + ServiceName + "/GetDepartmentRequest"
	DepartmentRequestService_ListDepartmentRequests_FullMethodName  = "/" + ServiceName + "/ListDepartmentRequests"
	DepartmentRequestService_DecideDepartmentRequest_FullMethodName = "/" + ServiceName + "/DecideDepartmentRequest"
	DepartmentRequestService_DeleteDepartmentRequest_FullMethodName = "/" + ServiceName + "/DeleteDepartmentRequest"
)

// DepartmentRequestServiceClient は DepartmentRequestService のクライアント API です。
type DepartmentRequestServiceClient interface {
	CreateDepartmentRequest(ctx context.Context, in *CreateDepartmentRequestRequest, opts ...grpc.CallOption) (*CreateDepartmentRequestResponse, error)
	GetDepartmentRequest(ctx context.Context, in *GetDepartmentRequestRequest, opts ...grpc.CallOption) (*GetDepartmentRequestResponse, error)
	ListDepartmentRequests(ctx context.Context, in *ListDepartmentRequestsRequest, opts ...grpc.CallOption) (*ListDepartmentRequestsResponse, error)
	DecideDepartmentRequest(ctx context.Context, in *DecideDepartmentRequestRequest, opts ...grpc.CallOption) (*DecideDepartmentRequestResponse, error)
	DeleteDepartmentRequest(ctx context.Context, in *DeleteDepartmentRequestRequest, opts ...grpc.CallOption) (*DeleteDepartmentRequestResponse, error)
}

type departmentRequestServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewDepartmentRequestServiceClient は JSON コーデックで通信するクライアントを生成します。
func NewDepartmentRequestServiceClient(cc grpc.ClientConnInterface) DepartmentRequestServiceClient {
	return &departmentRequestServiceClient{cc: cc}
}

func (c *departmentRequestServiceClient) invoke(ctx context.Context, method string, in, out any, opts []grpc.CallOption) error {
	callOpts := append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	return c.cc.Invoke(ctx, method, in, out, callOpts...)
}

func (c *departmentRequestServiceClient) CreateDepartmentRequest(ctx context.Context, in *CreateDepartmentRequestRequest, opts ...grpc.CallOption) (*CreateDepartmentRequestResponse, error) {
	out := new(CreateDepartmentRequestResponse)
	if err := c.invoke(ctx, DepartmentRequestService_CreateDepartmentRequest_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *departmentRequestServiceClient) GetDepartmentRequest(ctx context.Context, in *GetDepartmentRequestRequest, opts ...grpc.CallOption) (*GetDepartmentRequestResponse, error) {
	out := new(GetDepartmentRequestResponse)
	if err := c.invoke(ctx, DepartmentRequestService_GetDepartmentRequest_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *departmentRequestServiceClient) ListDepartmentRequests(ctx context.Context, in *ListDepartmentRequestsRequest, opts ...grpc.CallOption) (*ListDepartmentRequestsResponse, error) {
	out := new(ListDepartmentRequestsResponse)
	if err := c.invoke(ctx, DepartmentRequestService_ListDepartmentRequests_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *departmentRequestServiceClient) DecideDepartmentRequest(ctx context.Context, in *DecideDepartmentRequestRequest, opts ...grpc.CallOption) (*DecideDepartmentRequestResponse, error) {
	out := new(DecideDepartmentRequestResponse)
	if err := c.invoke(ctx, DepartmentRequestService_DecideDepartmentRequest_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *departmentRequestServiceClient) DeleteDepartmentRequest(ctx context.Context, in *DeleteDepartmentRequestRequest, opts ...grpc.CallOption) (*DeleteDepartmentRequestResponse, error) {
	out := new(DeleteDepartmentRequestResponse)
	if err := c.invoke(ctx, DepartmentRequestService_DeleteDepartmentRequest_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

// DepartmentRequestServiceServer は DepartmentRequestService のサーバー API です。
type DepartmentRequestServiceServer interface {
	CreateDepartmentRequest(context.Context, *CreateDepartmentRequestRequest) (*CreateDepartmentRequestResponse, error)
	GetDepartmentRequest(context.Context, *GetDepartmentRequestRequest) (*GetDepartmentRequestResponse, error)
	ListDepartmentRequests(context.Context, *ListDepartmentRequestsRequest) (*ListDepartmentRequestsResponse, error)
	DecideDepartmentRequest(context.Context, *DecideDepartmentRequestRequest) (*DecideDepartmentRequestResponse, error)
	DeleteDepartmentRequest(context.Context, *DeleteDepartmentRequestRequest) (*DeleteDepartmentRequestResponse, error)
	mustEmbedUnimplementedDepartmentRequestServiceServer()
}

// UnimplementedDepartmentRequestServiceServer は前方互換のために埋め込む実装です。
type UnimplementedDepartmentRequestServiceServer struct{}

func (UnimplementedDepartmentRequestServiceServer) CreateDepartmentRequest(context.Context, *CreateDepartmentRequestRequest) (*CreateDepartmentRequestResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CreateDepartmentRequest not implemented")
}
func (UnimplementedDepartmentRequestServiceServer) GetDepartmentRequest(context.Context, *GetDepartmentRequestRequest) (*GetDepartmentRequestResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetDepartmentRequest not implemented")
}
func (UnimplementedDepartmentRequestServiceServer) ListDepartmentRequests(context.Context, *ListDepartmentRequestsRequest) (*ListDepartmentRequestsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListDepartmentRequests not implemented")
}
func (UnimplementedDepartmentRequestServiceServer) DecideDepartmentRequest(context.Context, *DecideDepartmentRequestRequest) (*DecideDepartmentRequestResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method DecideDepartmentRequest not implemented")
}
func (UnimplementedDepartmentRequestServiceServer) DeleteDepartmentRequest(context.Context, *DeleteDepartmentRequestRequest) (*DeleteDepartmentRequestResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method DeleteDepartmentRequest not implemented")
}
func (UnimplementedDepartmentRequestServiceServer) mustEmbedUnimplementedDepartmentRequestServiceServer() {
}

// RegisterDepartmentRequestServiceServer はサービス実装を gRPC サーバーへ登録します。
func RegisterDepartmentRequestServiceServer(s grpc.ServiceRegistrar, srv DepartmentRequestServiceServer) {
	s.RegisterService(&DepartmentRequestService_ServiceDesc, srv)
}

func _DepartmentRequestService_CreateDepartmentRequest_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(CreateDepartmentRequestRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DepartmentRequestServiceServer).CreateDepartmentRequest(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: DepartmentRequestService_CreateDepartmentRequest_FullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(DepartmentRequestServiceServer).CreateDepartmentRequest(ctx, req.(*CreateDepartmentRequestRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _DepartmentRequestService_GetDepartmentRequest_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(GetDepartmentRequestRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DepartmentRequestServiceServer).GetDepartmentRequest(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: DepartmentRequestService_GetDepartmentRequest_FullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(DepartmentRequestServiceServer).GetDepartmentRequest(ctx, req.(*GetDepartmentRequestRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _DepartmentRequestService_ListDepartmentRequests_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(ListDepartmentRequestsRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DepartmentRequestServiceServer).ListDepartmentRequests(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: DepartmentRequestService_ListDepartmentRequests_FullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(DepartmentRequestServiceServer).ListDepartmentRequests(ctx, req.(*ListDepartmentRequestsRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _DepartmentRequestService_DecideDepartmentRequest_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(DecideDepartmentRequestRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DepartmentRequestServiceServer).DecideDepartmentRequest(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: DepartmentRequestService_DecideDepartmentRequest_FullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(DepartmentRequestServiceServer).DecideDepartmentRequest(ctx, req.(*DecideDepartmentRequestRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _DepartmentRequestService_DeleteDepartmentRequest_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(DeleteDepartmentRequestRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DepartmentRequestServiceServer).DeleteDepartmentRequest(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: DepartmentRequestService_DeleteDepartmentRequest_FullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(DepartmentRequestServiceServer).DeleteDepartmentRequest(ctx, req.(*DeleteDepartmentRequestRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// DepartmentRequestService_ServiceDesc は DepartmentRequestService の grpc.ServiceDesc です。
var DepartmentRequestService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*DepartmentRequestServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "CreateDepartmentRequest", Handler: _DepartmentRequestService_CreateDepartmentRequest_Handler},
		{MethodName: "GetDepartmentRequest", Handler: _DepartmentRequestService_GetDepartmentRequest_Handler},
		{MethodName: "ListDepartmentRequests", Handler: _DepartmentRequestService_ListDepartmentRequests_Handler},
		{MethodName: "DecideDepartmentRequest", Handler: _DepartmentRequestService_DecideDepartmentRequest_Handler},
		{MethodName: "DeleteDepartmentRequest", Handler: _DepartmentRequestService_DeleteDepartmentRequest_Handler},
	},
	Streams: []grpc.StreamDesc{},
}
