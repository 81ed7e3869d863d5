package api

import (
	"context"

	"google.golang.org/grpc"
)

// TodoServiceClient calls the service over a connection, encoding messages
// with the JSON codec.
type TodoServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewTodoServiceClient(cc grpc.ClientConnInterface) *TodoServiceClient {
	return &TodoServiceClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, FullMethod(method), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *TodoServiceClient) Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error) {
	return invoke[PingResponse](ctx, c.cc, "Ping", in, opts)
}

func (c *TodoServiceClient) GetList(ctx context.Context, in *GetListRequest, opts ...grpc.CallOption) (*ListResponse, error) {
	return invoke[ListResponse](ctx, c.cc, "GetList", in, opts)
}

func (c *TodoServiceClient) AddItem(ctx context.Context, in *AddItemRequest, opts ...grpc.CallOption) (*AddItemResponse, error) {
	return invoke[AddItemResponse](ctx, c.cc, "AddItem", in, opts)
}

func (c *TodoServiceClient) DeleteItem(ctx context.Context, in *DeleteItemRequest, opts ...grpc.CallOption) (*DeleteItemResponse, error) {
	return invoke[DeleteItemResponse](ctx, c.cc, "DeleteItem", in, opts)
}

func (c *TodoServiceClient) ListLists(ctx context.Context, in *ListListsRequest, opts ...grpc.CallOption) (*ListListsResponse, error) {
	return invoke[ListListsResponse](ctx, c.cc, "ListLists", in, opts)
}

func (c *TodoServiceClient) Backup(ctx context.Context, in *BackupRequest, opts ...grpc.CallOption) (*BackupResponse, error) {
	return invoke[BackupResponse](ctx, c.cc, "Backup", in, opts)
}
