package service

import (
	"context"
	"fmt"
	"strconv"

	"teahouse/internal/entity"
	"teahouse/internal/repository"
)

// CatalogService owns the admin-facing product catalog operations.
type CatalogService struct {
	productRepo repository.ProductRepository
}

func NewCatalogService(productRepo repository.ProductRepository) *CatalogService {
	return &CatalogService{productRepo: productRepo}
}

func (s *CatalogService) List(ctx context.Context) ([]entity.Product, error) {
	products, err := s.productRepo.LoadAll(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Error loading catalog")
		return nil, err
	}
	return products, nil
}

// Add appends one product. Name and price are both required and the
// price must parse as a number; this is the one place where a malformed
// price is rejected rather than coerced.
func (s *CatalogService) Add(ctx context.Context, name, price string) (*entity.Product, error) {
	if name == "" || price == "" {
		return nil, fmt.Errorf("%w: name and price are required", entity.ErrValidation)
	}
	parsed, err := strconv.ParseFloat(price, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid price %q", entity.ErrValidation, price)
	}
	products, err := s.productRepo.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	product := entity.Product{Name: name, Price: parsed}
	products = append(products, product)
	if err := s.productRepo.SaveAll(ctx, products); err != nil {
		return nil, err
	}
	return &product, nil
}

// ReplaceAll rebuilds the catalog from paired name/price lists, as
// submitted by the bulk edit form. Extra entries in the longer list are
// dropped and an unparseable price coerces to 0.
func (s *CatalogService) ReplaceAll(ctx context.Context, names, prices []string) ([]entity.Product, error) {
	n := len(names)
	if len(prices) < n {
		n = len(prices)
	}
	products := make([]entity.Product, 0, n)
	for i := 0; i < n; i++ {
		price, err := strconv.ParseFloat(prices[i], 64)
		if err != nil {
			price = 0.0
		}
		products = append(products, entity.Product{Name: names[i], Price: price})
	}
	if err := s.productRepo.SaveAll(ctx, products); err != nil {
		return nil, err
	}
	return products, nil
}

// Delete removes a product by name; absent names are ignored. Orders
// that already reference the name keep it as a plain string.
func (s *CatalogService) Delete(ctx context.Context, name string) error {
	return s.productRepo.DeleteByName(ctx, name)
}
