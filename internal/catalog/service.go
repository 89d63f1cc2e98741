// Package catalog exposes the product ingestion boundary over gRPC. Supplier
// systems push new products here; the storefront never writes this table.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dani2c/integracion-plataformas/internal/catalog/pb"
	"github.com/dani2c/integracion-plataformas/internal/domain"
	"github.com/dani2c/integracion-plataformas/internal/store"

	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// maxPhotoBytes bounds inline product photos.
const maxPhotoBytes = 4 << 20

// Products is the slice of the product store the service needs.
type Products interface {
	Create(ctx context.Context, p *domain.Product) error
}

// Service implements pb.CatalogServiceServer.
type Service struct {
	pb.UnimplementedCatalogServiceServer
	products Products
	logger   *zap.Logger
}

func NewService(products Products, logger *zap.Logger) *Service {
	return &Service{
		products: products,
		logger:   logger,
	}
}

// IngestProduct validates and persists one product. Validation failures come
// back as InvalidArgument, duplicate names as AlreadyExists.
func (s *Service) IngestProduct(ctx context.Context, req *pb.IngestProductRequest) (*pb.IngestProductResponse, error) {
	if err := validate(req); err != nil {
		s.logger.Warn("Rejected product", zap.String("name", req.GetName()), zap.Error(err))
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	product := &domain.Product{
		Name:        strings.TrimSpace(req.GetName()),
		Description: req.GetDescription(),
		Price:       req.GetPrice(),
		Stock:       int(req.GetInitialStock()),
		Photo:       req.GetPhoto(),
	}

	if err := s.products.Create(ctx, product); err != nil {
		if errors.Is(err, store.ErrProductExists) {
			return nil, status.Errorf(codes.AlreadyExists, "product %q already exists", product.Name)
		}
		s.logger.Error("Failed to persist product", zap.String("name", product.Name), zap.Error(err))
		return nil, status.Error(codes.Internal, "failed to persist product")
	}

	return &pb.IngestProductResponse{
		Success: true,
		Message: fmt.Sprintf("product %q ingested with id %d", product.Name, product.ID),
	}, nil
}

func validate(req *pb.IngestProductRequest) error {
	if strings.TrimSpace(req.GetName()) == "" {
		return fmt.Errorf("name is required")
	}
	if req.GetPrice() <= 0 {
		return fmt.Errorf("price must be positive, got %v", req.GetPrice())
	}
	if req.GetInitialStock() < 0 {
		return fmt.Errorf("initial stock cannot be negative, got %d", req.GetInitialStock())
	}
	if len(req.GetPhoto()) > maxPhotoBytes {
		return fmt.Errorf("photo exceeds %d bytes", maxPhotoBytes)
	}
	return nil
}
