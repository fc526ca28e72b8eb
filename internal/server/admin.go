package server

import (
	"context"
	"net"
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
	"google.golang.org/grpc/status"
)

// LobbyServiceName is the health service reported for the lobby API.
const LobbyServiceName = "kingdomrun.Lobby"

// AdminServer serves gRPC health checks for the game server.
type AdminServer struct {
	logger zerolog.Logger
	grpc   *grpc.Server
	health *health.Server
}

// NewAdminServer creates the admin gRPC server with logging and recovery
// interceptors. Reflection is registered when enableReflection is set.
func NewAdminServer(logger zerolog.Logger, enableReflection bool) *AdminServer {
	a := &AdminServer{
		logger: logger.With().Str("component", "AdminServer").Logger(),
		health: health.NewServer(),
	}

	a.grpc = grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			a.loggingInterceptor,
			a.recoveryInterceptor,
		),
		grpc.ChainStreamInterceptor(
			a.streamLoggingInterceptor,
			a.streamRecoveryInterceptor,
		),
	)
	grpc_health_v1.RegisterHealthServer(a.grpc, a.health)

	if enableReflection {
		reflection.Register(a.grpc)
		a.logger.Info().Msg("gRPC reflection enabled")
	}
	a.SetServing(true)
	return a
}

// SetServing flips the reported health of the server and the lobby service.
func (a *AdminServer) SetServing(serving bool) {
	st := grpc_health_v1.HealthCheckResponse_NOT_SERVING
	if serving {
		st = grpc_health_v1.HealthCheckResponse_SERVING
	}
	a.health.SetServingStatus("", st)
	a.health.SetServingStatus(LobbyServiceName, st)
}

// Serve accepts connections on lis until Stop or GracefulStop.
func (a *AdminServer) Serve(lis net.Listener) error {
	a.logger.Info().Str("address", lis.Addr().String()).Msg("Admin server listening")
	return a.grpc.Serve(lis)
}

// GracefulStop reports NOT_SERVING and waits for in-flight calls.
func (a *AdminServer) GracefulStop() {
	a.SetServing(false)
	a.grpc.GracefulStop()
}

// loggingInterceptor logs all unary RPC calls
func (a *AdminServer) loggingInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	start := time.Now()
	resp, err := handler(ctx, req)

	a.logger.Debug().
		Str("method", info.FullMethod).
		Str("code", status.Code(err).String()).
		Dur("duration", time.Since(start)).
		Err(err).
		Msg("gRPC call")

	return resp, err
}

// recoveryInterceptor catches panics and returns proper gRPC errors
func (a *AdminServer) recoveryInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp interface{}, err error) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.Error().
				Str("method", info.FullMethod).
				Interface("panic", r).
				Msg("Recovered from panic in gRPC handler")
			err = status.Errorf(codes.Internal, "internal server error")
		}
	}()

	return handler(ctx, req)
}

// streamLoggingInterceptor logs all streaming RPC calls
func (a *AdminServer) streamLoggingInterceptor(srv interface{}, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
	start := time.Now()
	err := handler(srv, ss)

	a.logger.Debug().
		Str("method", info.FullMethod).
		Str("code", status.Code(err).String()).
		Dur("duration", time.Since(start)).
		Bool("is_server_stream", info.IsServerStream).
		Err(err).
		Msg("gRPC stream")

	return err
}

// streamRecoveryInterceptor catches panics in streaming handlers
func (a *AdminServer) streamRecoveryInterceptor(srv interface{}, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) (err error) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.Error().
				Str("method", info.FullMethod).
				Interface("panic", r).
				Msg("Recovered from panic in gRPC stream handler")
			err = status.Errorf(codes.Internal, "internal server error")
		}
	}()

	return handler(srv, ss)
}
