package catalog

import (
	"net"

	"github.com/dani2c/integracion-plataformas/internal/catalog/pb"

	"go.uber.org/zap"
	"google.golang.org/grpc"
)

// Server wraps the gRPC listener for the ingestion boundary.
type Server struct {
	grpcServer *grpc.Server
	logger     *zap.Logger
}

// NewServer builds the gRPC server with the ingestion service registered.
func NewServer(svc *Service, logger *zap.Logger) *Server {
	grpcServer := grpc.NewServer(
		grpc.UnaryInterceptor(loggingInterceptor(logger)),
	)
	pb.RegisterCatalogServiceServer(grpcServer, svc)

	return &Server{
		grpcServer: grpcServer,
		logger:     logger,
	}
}

// Serve listens on the given address and blocks until Stop is called.
func (s *Server) Serve(addr string) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	s.logger.Info("Catalog gRPC server listening", zap.String("addr", addr))
	return s.grpcServer.Serve(listener)
}

// Stop drains in-flight RPCs and shuts the server down.
func (s *Server) Stop() {
	s.grpcServer.GracefulStop()
	s.logger.Info("Catalog gRPC server stopped")
}
