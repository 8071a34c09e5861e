package cart

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/davancensm/Case36-TercerEntrega/internal/cache"
	"github.com/davancensm/Case36-TercerEntrega/internal/domain"
	"github.com/davancensm/Case36-TercerEntrega/internal/repository"
)

type Service struct {
	repo  repository.CartRepository
	cache cache.CartCache
	sfg   singleflight.Group // Prevents cache stampede
}

func NewService(repo repository.CartRepository, cache cache.CartCache) *Service {
	return &Service{
		repo:  repo,
		cache: cache,
	}
}

// Create persists an empty cart under a fresh id.
func (s *Service) Create(ctx context.Context) (*domain.Cart, error) {
	now := time.Now()
	cart := &domain.Cart{
		ID:        uuid.NewString(),
		Items:     []domain.CartItem{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.CreateCart(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *Service) Get(ctx context.Context, cartID string) (*domain.Cart, error) {
	// Use singleflight to prevent multiple concurrent cache misses for same key
	v, err, _ := s.sfg.Do(cartID, func() (interface{}, error) {

		cart, err := s.cache.Get(ctx, cartID)
		if err == nil {
			return cart, nil // cart is in cache
		}

		if !errors.Is(err, cache.ErrCacheMiss) {
			log.Printf("cache get error: %v \n", err) // log cache error but continue
		}

		cart, errGet := s.repo.GetCart(ctx, cartID)
		if errGet != nil {
			return nil, errGet
		}

		// set cache
		go func() {
			errSet := s.cache.Set(context.Background(), cartID, cart)
			if errSet != nil {
				log.Printf("cache set error: %v \n", errSet)
			}
		}()

		return cart, nil // cart was not in cache, return it from repo
	})

	if err != nil {
		return nil, err
	}

	return v.(*domain.Cart), nil
}

func (s *Service) AddProduct(ctx context.Context, cartID string, productID int64) error {
	errAdd := s.repo.AddItem(ctx, cartID, domain.CartItem{ProductID: productID})
	if errAdd != nil {
		log.Printf("repo add item error: %v \n", errAdd)
		return errAdd
	}

	invalidateCache(s, cartID)
	return nil
}

func (s *Service) RemoveProduct(ctx context.Context, cartID string, productID int64) error {
	errRemove := s.repo.RemoveItem(ctx, cartID, productID)
	if errRemove != nil {
		log.Printf("repo remove item error: %v \n", errRemove)
		return errRemove
	}

	invalidateCache(s, cartID)
	return nil
}

// Drain empties the cart one remove call per stored item. Individual
// remove failures are logged and not propagated; in aggregate the
// cart always reads empty afterwards.
func (s *Service) Drain(ctx context.Context, cartID string) {
	cart, err := s.repo.GetCart(ctx, cartID)
	if err != nil {
		log.Printf("repo get cart error: %v \n", err)
		return
	}

	for _, item := range cart.Items {
		if errRemove := s.repo.RemoveItem(ctx, cartID, item.ProductID); errRemove != nil {
			log.Printf("repo remove item error: %v \n", errRemove)
		}
	}

	invalidateCache(s, cartID)
}

func invalidateCache(s *Service, cartID string) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	errInvalidate := s.cache.Delete(ctx, cartID)
	if errInvalidate != nil {
		log.Printf("cache invalidate error: %v \n", errInvalidate)
	}
}
