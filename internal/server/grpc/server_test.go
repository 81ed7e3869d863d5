package grpc

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/dmitrijs2005/todolist/internal/api"
	"github.com/dmitrijs2005/todolist/internal/logging"
	"github.com/dmitrijs2005/todolist/internal/server/ratelimit"
	"github.com/dmitrijs2005/todolist/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/todolist/internal/server/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

// startBufconn serves s in-process and returns a connected client.
func startBufconn(t *testing.T, s *GRPCServer) *api.TodoServiceClient {
	t.Helper()

	lis := bufconn.Listen(1 << 20)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, lis) }()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = conn.Close()
		cancel()
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Error("server did not stop")
		}
	})
	return api.NewTodoServiceClient(conn)
}

func newMemoryServer(limiter *ratelimit.Limiter) *GRPCServer {
	m := repomanager.NewMemoryRepositoryManager()
	return NewGRPCServer("", logging.Nop{}, services.NewTodoService(m), &fakeBackups{key: "backups/k.json"}, limiter)
}

func TestRoundTrip_ListsAndItems(t *testing.T) {
	c := startBufconn(t, newMemoryServer(nil))
	ctx := context.Background()

	pong, err := c.Ping(ctx, &api.PingRequest{})
	require.NoError(t, err)
	assert.Equal(t, "OK", pong.Status)

	today, err := c.GetList(ctx, &api.GetListRequest{})
	require.NoError(t, err)
	assert.Equal(t, "Today", today.Title)
	assert.Len(t, today.Items, 3)

	shopping, err := c.GetList(ctx, &api.GetListRequest{Name: "shopping"})
	require.NoError(t, err)
	assert.Equal(t, "Shopping", shopping.Title)
	assert.Len(t, shopping.Items, 3)

	added, err := c.AddItem(ctx, &api.AddItemRequest{Item: "Eggs", List: "Shopping"})
	require.NoError(t, err)
	assert.Equal(t, "Eggs", added.Item.Name)

	shopping, err = c.GetList(ctx, &api.GetListRequest{Name: "Shopping"})
	require.NoError(t, err)
	require.Len(t, shopping.Items, 4)
	assert.Equal(t, added.Item, shopping.Items[3])

	_, err = c.DeleteItem(ctx, &api.DeleteItemRequest{ID: added.Item.ID, List: "Shopping"})
	require.NoError(t, err)
	_, err = c.DeleteItem(ctx, &api.DeleteItemRequest{ID: "unknown", List: "Shopping"})
	require.NoError(t, err)

	names, err := c.ListLists(ctx, &api.ListListsRequest{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Shopping"}, names.Names)

	backup, err := c.Backup(ctx, &api.BackupRequest{})
	require.NoError(t, err)
	assert.Equal(t, "backups/k.json", backup.Key)
}

func TestRoundTrip_NotFoundCodes(t *testing.T) {
	c := startBufconn(t, newMemoryServer(nil))
	ctx := context.Background()

	_, err := c.AddItem(ctx, &api.AddItemRequest{Item: "x", List: "Never resolved"})
	assert.Equal(t, codes.NotFound, status.Code(err))

	_, err = c.DeleteItem(ctx, &api.DeleteItemRequest{ID: "nope", List: "Today"})
	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestRoundTrip_RateLimited(t *testing.T) {
	limiter := ratelimit.NewLimiter(0.001, 2)
	defer limiter.Close()

	c := startBufconn(t, newMemoryServer(limiter))
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := c.Ping(ctx, &api.PingRequest{})
		require.NoError(t, err)
	}

	_, err := c.Ping(ctx, &api.PingRequest{})
	assert.Equal(t, codes.ResourceExhausted, status.Code(err))
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	t.Parallel()

	srv := NewGRPCServer("127.0.0.1:0", logging.Nop{}, nil, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- srv.Run(ctx)
	}()

	select {
	case err := <-done:
		t.Fatalf("server exited too early: %v", err)
	case <-time.After(150 * time.Millisecond):
	}

	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned error on graceful stop: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop within timeout after context cancel")
	}
}

func TestRun_ReturnsErrorOnBadAddress(t *testing.T) {
	t.Parallel()

	srv := NewGRPCServer("127.0.0.1:99999", logging.Nop{}, nil, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := srv.Run(ctx); err == nil {
		t.Fatal("expected error from Run on bad address, got nil")
	}
}
