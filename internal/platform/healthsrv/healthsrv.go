// Package healthsrv exposes the standard gRPC health service for
// orchestrators that probe the web process over gRPC.
package healthsrv

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"sync"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	grpc_health_v1 "google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName is the health service name reported alongside the overall "" entry.
const ServiceName = "toolatlas.web"

// DefaultInterval is how often the readiness checker runs.
const DefaultInterval = 10 * time.Second

// Checker reports whether a dependency is ready to serve traffic.
type Checker interface {
	Ping(ctx context.Context) error
}

// Server hosts grpc.health.v1 and mirrors Checker results into serving status.
type Server struct {
	listener   net.Listener
	grpcServer *grpc.Server
	health     *health.Server
	checker    Checker
	interval   time.Duration

	mu     sync.Mutex
	status grpc_health_v1.HealthCheckResponse_ServingStatus
}

// New listens on addr. A nil checker reports SERVING for the lifetime of the server.
func New(addr string, checker Checker) (*Server, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", addr, err)
	}

	grpcServer := grpc.NewServer(grpc.StatsHandler(otelgrpc.NewServerHandler()))
	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)

	s := &Server{
		listener:   listener,
		grpcServer: grpcServer,
		health:     healthServer,
		checker:    checker,
		interval:   DefaultInterval,
	}
	s.setStatus(grpc_health_v1.HealthCheckResponse_SERVING)
	return s, nil
}

// Addr returns the listener address.
func (s *Server) Addr() string {
	if s == nil || s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Status returns the last status published to the health service.
func (s *Server) Status() grpc_health_v1.HealthCheckResponse_ServingStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Check runs the checker once and publishes the result.
func (s *Server) Check(ctx context.Context) {
	if s.checker == nil {
		s.setStatus(grpc_health_v1.HealthCheckResponse_SERVING)
		return
	}
	checkCtx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	if err := s.checker.Ping(checkCtx); err != nil {
		if s.Status() == grpc_health_v1.HealthCheckResponse_SERVING {
			log.Printf("health: readiness check failed: %v", err)
		}
		s.setStatus(grpc_health_v1.HealthCheckResponse_NOT_SERVING)
		return
	}
	s.setStatus(grpc_health_v1.HealthCheckResponse_SERVING)
}

// Serve runs the gRPC server until ctx ends.
func (s *Server) Serve(ctx context.Context) error {
	if s == nil {
		return errors.New("health server is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	defer s.Close()

	log.Printf("health server listening at %v", s.listener.Addr())
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.grpcServer.Serve(s.listener)
	}()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	s.Check(ctx)

	for {
		select {
		case <-ctx.Done():
			s.health.Shutdown()
			s.grpcServer.GracefulStop()
			return normalizeServeErr(<-serveErr)
		case err := <-serveErr:
			return normalizeServeErr(err)
		case <-ticker.C:
			s.Check(ctx)
		}
	}
}

// Close stops the server and releases the listener.
func (s *Server) Close() {
	if s == nil {
		return
	}
	if s.health != nil {
		s.health.Shutdown()
	}
	if s.grpcServer != nil {
		s.grpcServer.Stop()
	}
	if s.listener != nil {
		_ = s.listener.Close()
	}
}

func (s *Server) setStatus(status grpc_health_v1.HealthCheckResponse_ServingStatus) {
	s.mu.Lock()
	s.status = status
	s.mu.Unlock()
	s.health.SetServingStatus("", status)
	s.health.SetServingStatus(ServiceName, status)
}

func normalizeServeErr(err error) error {
	if err == nil || errors.Is(err, grpc.ErrServerStopped) {
		return nil
	}
	return fmt.Errorf("serve gRPC health: %w", err)
}
