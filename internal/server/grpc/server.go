// Package grpc runs the gRPC side of the server: the standard
// grpc.health.v1 service, reporting whether the REST API is serving.
package grpc

import (
	"context"
	"net"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/AllanOcung/Group-BSE25-1/internal/logging"
)

// APIService is the health service name of the REST API.
const APIService = "portfolio.api"

// PingFunc probes a dependency; a non-nil error marks the API NOT_SERVING.
type PingFunc func(ctx context.Context) error

type GRPCServer struct {
	address       string
	logger        logging.Logger
	health        *health.Server
	ping          PingFunc
	probeInterval time.Duration
}

func NewGRPCServer(a string, l logging.Logger, ping PingFunc) *GRPCServer {
	return &GRPCServer{
		address:       a,
		logger:        l.With("module", "grpc_server"),
		health:        health.NewServer(),
		ping:          ping,
		probeInterval: 15 * time.Second,
	}
}

func (s *GRPCServer) setServing(serving bool) {
	st := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		st = healthpb.HealthCheckResponse_SERVING
	}
	s.health.SetServingStatus("", st)
	s.health.SetServingStatus(APIService, st)
}

// probe re-checks the dependency every probeInterval until ctx ends.
func (s *GRPCServer) probe(ctx context.Context) {
	if s.ping == nil {
		return
	}
	t := time.NewTicker(s.probeInterval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			err := s.ping(ctx)
			if err != nil && ctx.Err() == nil {
				s.logger.Warn(ctx, "dependency ping failed", "error", err)
			}
			if ctx.Err() == nil {
				s.setServing(err == nil)
			}
		}
	}
}

func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	return s.serve(ctx, listen)
}

func (s *GRPCServer) serve(ctx context.Context, listen net.Listener) error {
	srv := grpc.NewServer()
	healthpb.RegisterHealthServer(srv, s.health)
	s.setServing(true)

	go s.probe(ctx)

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		// every service reports NOT_SERVING while connections drain
		s.health.Shutdown()
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", listen.Addr().String())

	// starts accepting incoming connections
	if err := srv.Serve(listen); err != nil {
		return err
	}

	return nil
}
