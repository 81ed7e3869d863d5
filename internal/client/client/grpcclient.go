// Package client talks to the todolist server over gRPC and turns status
// codes into client errors.
package client

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/todolist/internal/api"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
)

type GRPCClient struct {
	endpointURL string
	timeout     time.Duration
	conn        *grpc.ClientConn
	client      *api.TodoServiceClient
}

// NewTodoClient prepares a connection to endpointURL. The connection is
// established lazily on the first call.
func NewTodoClient(endpointURL string, timeout time.Duration, opts ...grpc.DialOption) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL, timeout: timeout}
	if err := c.InitGRPCClient(opts...); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *GRPCClient) InitGRPCClient(opts ...grpc.DialOption) error {
	opts = append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)

	conn, err := grpc.NewClient(s.endpointURL, opts...)
	if err != nil {
		return err
	}
	s.conn = conn
	s.client = api.NewTodoServiceClient(conn)
	return nil
}

func (s *GRPCClient) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

func (s *GRPCClient) Ping(ctx context.Context) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if _, err := s.client.Ping(ctx, &api.PingRequest{}); err != nil {
		return s.mapError(err)
	}
	return nil
}

// GetList resolves a list by user-typed name; an empty name is Today.
func (s *GRPCClient) GetList(ctx context.Context, name string) (*api.ListResponse, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.GetList(ctx, &api.GetListRequest{Name: name})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

func (s *GRPCClient) AddItem(ctx context.Context, list, item string) (*api.Item, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.AddItem(ctx, &api.AddItemRequest{Item: item, List: list})
	if err != nil {
		return nil, s.mapError(err)
	}
	return &resp.Item, nil
}

func (s *GRPCClient) DeleteItem(ctx context.Context, list, id string) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if _, err := s.client.DeleteItem(ctx, &api.DeleteItemRequest{ID: id, List: list}); err != nil {
		return s.mapError(err)
	}
	return nil
}

func (s *GRPCClient) ListLists(ctx context.Context) ([]string, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.ListLists(ctx, &api.ListListsRequest{})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Names, nil
}

func (s *GRPCClient) Backup(ctx context.Context) (string, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.Backup(ctx, &api.BackupRequest{})
	if err != nil {
		return "", s.mapError(err)
	}
	return resp.Key, nil
}

func (s *GRPCClient) Close() error {
	return s.conn.Close()
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.NotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, st.Message())
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	case codes.ResourceExhausted:
		return ErrRateLimited
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}
