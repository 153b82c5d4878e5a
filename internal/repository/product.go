package repository

import (
	"context"

	"teahouse/internal/entity"
	"teahouse/internal/storage"
)

// ProductRepository holds the orderable catalog. Name uniqueness is the
// catalog service's concern, not the store's.
type ProductRepository struct {
	store *storage.Store
}

func NewProductRepository(store *storage.Store) *ProductRepository {
	return &ProductRepository{store: store}
}

func (r *ProductRepository) LoadAll(ctx context.Context) ([]entity.Product, error) {
	var products []entity.Product
	if err := r.store.Load(storage.ProductsFile, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *ProductRepository) SaveAll(ctx context.Context, products []entity.Product) error {
	if products == nil {
		products = []entity.Product{}
	}
	return r.store.Save(storage.ProductsFile, products)
}

// DeleteByName removes every product with the given name. Deleting a
// name that is not present is a no-op.
func (r *ProductRepository) DeleteByName(ctx context.Context, name string) error {
	products, err := r.LoadAll(ctx)
	if err != nil {
		return err
	}
	kept := make([]entity.Product, 0, len(products))
	for _, p := range products {
		if p.Name != name {
			kept = append(kept, p)
		}
	}
	return r.SaveAll(ctx, kept)
}
