// Package grpc exposes the todolist services over gRPC.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/todolist/internal/api"
	"github.com/dmitrijs2005/todolist/internal/logging"
	"github.com/dmitrijs2005/todolist/internal/server/models"
	"github.com/dmitrijs2005/todolist/internal/server/ratelimit"
	"google.golang.org/grpc"
)

// TodoService is the list logic the handlers call.
type TodoService interface {
	Resolve(ctx context.Context, ref models.ListRef) (*models.ResolvedList, error)
	ResolveName(ctx context.Context, raw string) (*models.ResolvedList, error)
	AddItem(ctx context.Context, itemName, listName string) (*models.Item, error)
	DeleteItem(ctx context.Context, itemID, listName string) error
	ListNames(ctx context.Context) ([]string, error)
}

// BackupService stores a snapshot and returns its key.
type BackupService interface {
	Upload(ctx context.Context) (string, error)
}

type GRPCServer struct {
	api.UnimplementedTodoServiceServer
	address string
	todo    TodoService
	backups BackupService
	logger  logging.Logger
	limiter *ratelimit.Limiter
}

// NewGRPCServer builds a server for address. A nil limiter disables rate
// limiting.
func NewGRPCServer(address string, l logging.Logger, todo TodoService, backups BackupService, limiter *ratelimit.Limiter) *GRPCServer {
	return &GRPCServer{
		address: address,
		logger:  l.With("module", "grpc_server"),
		todo:    todo,
		backups: backups,
		limiter: limiter,
	}
}

func (s *GRPCServer) newServer() *grpc.Server {
	interceptors := []grpc.UnaryServerInterceptor{s.loggingInterceptor}
	if s.limiter != nil {
		interceptors = append(interceptors, s.rateLimitInterceptor)
	}

	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(interceptors...))
	api.RegisterTodoServiceServer(srv, s)
	return srv
}

// Run listens on the configured address and serves until ctx is done.
func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis until ctx is done, then stops gracefully.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := s.newServer()

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	if err := srv.Serve(lis); err != nil {
		return err
	}
	<-stopped
	return nil
}
