package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/todolist/internal/api"
	"github.com/dmitrijs2005/todolist/internal/common"
	"github.com/dmitrijs2005/todolist/internal/server/models"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func (s *GRPCServer) Ping(ctx context.Context, req *api.PingRequest) (*api.PingResponse, error) {
	return &api.PingResponse{Status: "OK"}, nil
}

func (s *GRPCServer) GetList(ctx context.Context, req *api.GetListRequest) (*api.ListResponse, error) {
	var (
		list *models.ResolvedList
		err  error
	)
	if req.Name == "" {
		list, err = s.todo.Resolve(ctx, models.TodayRef())
	} else {
		list, err = s.todo.ResolveName(ctx, req.Name)
	}
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return &api.ListResponse{Title: list.Title, Items: toAPIItems(list.Items)}, nil
}

func (s *GRPCServer) AddItem(ctx context.Context, req *api.AddItemRequest) (*api.AddItemResponse, error) {
	item, err := s.todo.AddItem(ctx, req.Item, req.List)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	s.logger.Debug(ctx, "Item added", "list", req.List, "id", item.ID)
	return &api.AddItemResponse{Item: api.Item{ID: item.ID, Name: item.Name}}, nil
}

func (s *GRPCServer) DeleteItem(ctx context.Context, req *api.DeleteItemRequest) (*api.DeleteItemResponse, error) {
	if err := s.todo.DeleteItem(ctx, req.ID, req.List); err != nil {
		return nil, s.toStatus(ctx, err)
	}

	s.logger.Debug(ctx, "Item deleted", "list", req.List, "id", req.ID)
	return &api.DeleteItemResponse{}, nil
}

func (s *GRPCServer) ListLists(ctx context.Context, req *api.ListListsRequest) (*api.ListListsResponse, error) {
	names, err := s.todo.ListNames(ctx)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &api.ListListsResponse{Names: names}, nil
}

func (s *GRPCServer) Backup(ctx context.Context, req *api.BackupRequest) (*api.BackupResponse, error) {
	key, err := s.backups.Upload(ctx)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	s.logger.Info(ctx, "Backup stored", "key", key)
	return &api.BackupResponse{Key: key}, nil
}

// toStatus maps service errors to gRPC codes. Internal causes are logged
// and not sent to the caller.
func (s *GRPCServer) toStatus(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, common.ErrorNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	}

	s.logger.Error(ctx, "request failed", "error", err)
	return status.Error(codes.Internal, common.ErrorInternal.Error())
}

func toAPIItems(items []models.Item) []api.Item {
	out := make([]api.Item, len(items))
	for i, it := range items {
		out[i] = api.Item{ID: it.ID, Name: it.Name}
	}
	return out
}
