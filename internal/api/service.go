package api

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const ServiceName = "todolist.TodoService"

// FullMethod returns the gRPC path of a method of the service.
func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

// TodoServiceServer is the server API for the todolist service.
type TodoServiceServer interface {
	Ping(context.Context, *PingRequest) (*PingResponse, error)
	GetList(context.Context, *GetListRequest) (*ListResponse, error)
	AddItem(context.Context, *AddItemRequest) (*AddItemResponse, error)
	DeleteItem(context.Context, *DeleteItemRequest) (*DeleteItemResponse, error)
	ListLists(context.Context, *ListListsRequest) (*ListListsResponse, error)
	Backup(context.Context, *BackupRequest) (*BackupResponse, error)
}

// UnimplementedTodoServiceServer answers every method with codes.Unimplemented.
// Embed it to stay compatible when methods are added.
type UnimplementedTodoServiceServer struct{}

func (UnimplementedTodoServiceServer) Ping(context.Context, *PingRequest) (*PingResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Ping not implemented")
}
func (UnimplementedTodoServiceServer) GetList(context.Context, *GetListRequest) (*ListResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetList not implemented")
}
func (UnimplementedTodoServiceServer) AddItem(context.Context, *AddItemRequest) (*AddItemResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method AddItem not implemented")
}
func (UnimplementedTodoServiceServer) DeleteItem(context.Context, *DeleteItemRequest) (*DeleteItemResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method DeleteItem not implemented")
}
func (UnimplementedTodoServiceServer) ListLists(context.Context, *ListListsRequest) (*ListListsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListLists not implemented")
}
func (UnimplementedTodoServiceServer) Backup(context.Context, *BackupRequest) (*BackupResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Backup not implemented")
}

// unary builds the descriptor of one unary method from a method expression
// of TodoServiceServer.
func unary[Req, Resp any](name string, call func(TodoServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(TodoServiceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FullMethod(name)}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(TodoServiceServer), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// TodoServiceDesc describes the service for grpc.Server.RegisterService.
var TodoServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*TodoServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("Ping", TodoServiceServer.Ping),
		unary("GetList", TodoServiceServer.GetList),
		unary("AddItem", TodoServiceServer.AddItem),
		unary("DeleteItem", TodoServiceServer.DeleteItem),
		unary("ListLists", TodoServiceServer.ListLists),
		unary("Backup", TodoServiceServer.Backup),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "todolist/api",
}

func RegisterTodoServiceServer(s grpc.ServiceRegistrar, srv TodoServiceServer) {
	s.RegisterService(&TodoServiceDesc, srv)
}
