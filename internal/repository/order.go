package repository

import (
	"context"
	"fmt"
	"strconv"

	"teahouse/internal/entity"
	"teahouse/internal/storage"
)

// OrderRepository is the single source of truth for order state. Every
// mutation is a full load-modify-save cycle over the orders collection.
type OrderRepository struct {
	store *storage.Store
}

func NewOrderRepository(store *storage.Store) *OrderRepository {
	return &OrderRepository{store: store}
}

// LoadAll returns every stored order, repairing legacy records in
// memory: a missing items map becomes empty, a missing status becomes
// StatusNew, and records without an id get fresh ids above the current
// maximum so a backfilled id can never collide with an assigned one.
// Repairs are persisted on the next save, not here.
func (r *OrderRepository) LoadAll(ctx context.Context) ([]entity.Order, error) {
	var orders []entity.Order
	if err := r.store.Load(storage.OrdersFile, &orders); err != nil {
		return nil, err
	}

	maxID := 0
	for _, o := range orders {
		if o.ID > maxID {
			maxID = o.ID
		}
	}
	for i := range orders {
		if orders[i].Items == nil {
			orders[i].Items = map[string]int{}
		}
		if orders[i].Status == "" {
			orders[i].Status = entity.StatusNew
		}
		if orders[i].ID == 0 {
			maxID++
			orders[i].ID = maxID
		}
	}
	return orders, nil
}

// SaveAll fully overwrites the orders collection.
func (r *OrderRepository) SaveAll(ctx context.Context, orders []entity.Order) error {
	if orders == nil {
		orders = []entity.Order{}
	}
	return r.store.Save(storage.OrdersFile, orders)
}

// NextID assigns ids as max(existing)+1, starting at 1 for an empty
// store. Deleted ids are never reused.
func NextID(orders []entity.Order) int {
	maxID := 0
	for _, o := range orders {
		if o.ID > maxID {
			maxID = o.ID
		}
	}
	return maxID + 1
}

// Create appends the order under a fresh id and persists the collection.
func (r *OrderRepository) Create(ctx context.Context, order *entity.Order) (*entity.Order, error) {
	orders, err := r.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	order.ID = NextID(orders)
	orders = append(orders, *order)
	if err := r.SaveAll(ctx, orders); err != nil {
		return nil, err
	}
	return order, nil
}

func (r *OrderRepository) GetByID(ctx context.Context, id int) (*entity.Order, error) {
	orders, err := r.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		if orders[i].ID == id {
			return &orders[i], nil
		}
	}
	return nil, fmt.Errorf("%w: order %d", entity.ErrNotFound, id)
}

// Delete removes the order with the given id. A missing id is not an
// error; the collection is persisted either way.
func (r *OrderRepository) Delete(ctx context.Context, id int) error {
	orders, err := r.LoadAll(ctx)
	if err != nil {
		return err
	}
	kept := make([]entity.Order, 0, len(orders))
	for _, o := range orders {
		if o.ID != id {
			kept = append(kept, o)
		}
	}
	return r.SaveAll(ctx, kept)
}

// UpdateStatus sets the status of the matching order. The id is compared
// through its string form, so "7" and 7 address the same order.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id, status string) error {
	orders, err := r.LoadAll(ctx)
	if err != nil {
		return err
	}
	for i := range orders {
		if strconv.Itoa(orders[i].ID) == id {
			orders[i].Status = status
			return r.SaveAll(ctx, orders)
		}
	}
	return fmt.Errorf("%w: order %s", entity.ErrNotFound, id)
}
