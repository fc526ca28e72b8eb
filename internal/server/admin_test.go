package server

import (
	"context"
	"net"
	"testing"

	"github.com/mitchelldurbincs/kingdomrun/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

func newAdminClient(t *testing.T, admin *AdminServer) grpc_health_v1.HealthClient {
	t.Helper()
	lis := bufconn.Listen(1024 * 1024)
	go func() { _ = admin.Serve(lis) }()
	t.Cleanup(admin.GracefulStop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return grpc_health_v1.NewHealthClient(conn)
}

func TestAdminServer_Health(t *testing.T) {
	admin := NewAdminServer(testutil.NopLogger(), true)
	client := newAdminClient(t, admin)
	ctx := context.Background()

	for _, service := range []string{"", LobbyServiceName} {
		resp, err := client.Check(ctx, &grpc_health_v1.HealthCheckRequest{Service: service})
		require.NoError(t, err)
		assert.Equal(t, grpc_health_v1.HealthCheckResponse_SERVING, resp.Status)
	}

	admin.SetServing(false)
	resp, err := client.Check(ctx, &grpc_health_v1.HealthCheckRequest{Service: LobbyServiceName})
	require.NoError(t, err)
	assert.Equal(t, grpc_health_v1.HealthCheckResponse_NOT_SERVING, resp.Status)

	_, err = client.Check(ctx, &grpc_health_v1.HealthCheckRequest{Service: "unknown"})
	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestAdminServer_RecoveryInterceptor(t *testing.T) {
	admin := NewAdminServer(testutil.NopLogger(), false)
	info := &grpc.UnaryServerInfo{FullMethod: "/test.Service/Panic"}

	_, err := admin.recoveryInterceptor(context.Background(), nil, info, func(context.Context, interface{}) (interface{}, error) {
		panic("boom")
	})
	assert.Equal(t, codes.Internal, status.Code(err))

	resp, err := admin.recoveryInterceptor(context.Background(), nil, info, func(context.Context, interface{}) (interface{}, error) {
		return "ok", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", resp)
}
