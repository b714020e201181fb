package grpcgame

import (
	"context"
	"fmt"
	"net"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"

	"github.com/louisbranch/gamefuzz"
)

// backendServer is the wire-level service contract the descriptor registers.
type backendServer interface {
	playerCounts(ctx context.Context, req *PlayerCountsRequest) (*PlayerCountsResponse, error)
	newGame(ctx context.Context, req *NewGameRequest) (*NewGameResponse, error)
	play(ctx context.Context, req *PlayRequest) (*PlayResponse, error)
}

// server adapts a gamefuzz.Backend to the GameBackend gRPC service.
type server struct {
	backend gamefuzz.Backend
}

func (s *server) playerCounts(ctx context.Context, _ *PlayerCountsRequest) (*PlayerCountsResponse, error) {
	counts, err := s.backend.PlayerCounts(ctx)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return &PlayerCountsResponse{PlayerCounts: counts}, nil
}

func (s *server) newGame(ctx context.Context, req *NewGameRequest) (*NewGameResponse, error) {
	session, err := s.backend.NewGame(ctx, req.Players)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	return &NewGameResponse{Session: session}, nil
}

func (s *server) play(ctx context.Context, req *PlayRequest) (*PlayResponse, error) {
	outcome, err := s.backend.Play(ctx, req.Command, req.Game, req.Player, req.Names)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	switch outcome.Kind {
	case gamefuzz.PlayRejected:
		message := outcome.Message
		if message == "" {
			message = "invalid input"
		}
		return &PlayResponse{UserError: message}, nil
	case gamefuzz.PlayIncomplete:
		remaining := outcome.Remaining
		if strings.TrimSpace(remaining) == "" {
			// The client classifies by nonblank remaining input; never let an
			// incomplete outcome round-trip as applied.
			remaining = "unparsed input"
		}
		return &PlayResponse{RemainingInput: remaining}, nil
	case gamefuzz.PlayApplied:
		return &PlayResponse{Session: outcome.Session}, nil
	default:
		return nil, status.Errorf(codes.Internal, "unknown play outcome %q", outcome.Kind)
	}
}

// RegisterBackend registers the GameBackend service on an existing server.
func RegisterBackend(s grpc.ServiceRegistrar, backend gamefuzz.Backend) {
	s.RegisterService(&serviceDesc, &server{backend: backend})
}

// NewServer returns a gRPC server hosting the backend plus the standard
// health service.
func NewServer(backend gamefuzz.Backend, opts ...grpc.ServerOption) *grpc.Server {
	s := grpc.NewServer(opts...)
	RegisterBackend(s, backend)
	healthServer := health.NewServer()
	healthServer.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(s, healthServer)
	return s
}

// Serve hosts the backend on lis until ctx ends or the listener fails.
func Serve(ctx context.Context, lis net.Listener, backend gamefuzz.Backend) error {
	srv := NewServer(backend)
	go func() {
		<-ctx.Done()
		srv.GracefulStop()
	}()
	if err := srv.Serve(lis); err != nil {
		return fmt.Errorf("serve game backend: %w", err)
	}
	return nil
}

func playerCountsHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(PlayerCountsRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(backendServer).playerCounts(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + serviceName + "/PlayerCounts"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(backendServer).playerCounts(ctx, req.(*PlayerCountsRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func newGameHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(NewGameRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(backendServer).newGame(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + serviceName + "/NewGame"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(backendServer).newGame(ctx, req.(*NewGameRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func playHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(PlayRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(backendServer).play(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + serviceName + "/Play"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(backendServer).play(ctx, req.(*PlayRequest))
	}
	return interceptor(ctx, in, info, handler)
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*backendServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "PlayerCounts", Handler: playerCountsHandler},
		{MethodName: "NewGame", Handler: newGameHandler},
		{MethodName: "Play", Handler: playHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "gamefuzz/v1/game_backend",
}
