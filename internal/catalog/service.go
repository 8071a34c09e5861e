package catalog

import (
	"context"

	"golang.org/x/sync/singleflight"

	"github.com/davancensm/Case36-TercerEntrega/internal/domain"
)

// Service fronts the product repository. The full-catalog read is the
// hot path (pushed to every new realtime connection), so concurrent
// reads collapse into one query.
type Service struct {
	repo RepoInterface
	sfg  singleflight.Group
}

func NewService(repo RepoInterface) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetAllProducts(ctx context.Context) ([]*domain.Product, error) {
	v, err, _ := s.sfg.Do("all-products", func() (interface{}, error) {
		return s.repo.GetAllProducts(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.([]*domain.Product), nil
}

func (s *Service) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	return s.repo.GetProduct(ctx, id)
}
