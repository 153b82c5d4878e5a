package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"teahouse/internal/entity"
	"teahouse/internal/repository"
	"teahouse/internal/storage"
)

func newOrderRepo(t *testing.T) *repository.OrderRepository {
	t.Helper()
	return repository.NewOrderRepository(storage.NewStore(t.TempDir()))
}

func TestNextID(t *testing.T) {
	assert.Equal(t, 1, repository.NextID(nil))
	assert.Equal(t, 1, repository.NextID([]entity.Order{}))
	assert.Equal(t, 6, repository.NextID([]entity.Order{{ID: 5}, {ID: 2}}))
}

func TestOrderRepository_Create_AssignsIncreasingIDs(t *testing.T) {
	repo := newOrderRepo(t)
	ctx := context.Background()

	first, err := repo.Create(ctx, &entity.Order{CustomerName: "Alice", Items: map[string]int{}})
	require.NoError(t, err)
	second, err := repo.Create(ctx, &entity.Order{CustomerName: "Bob", Items: map[string]int{}})
	require.NoError(t, err)

	assert.Equal(t, 1, first.ID)
	assert.Equal(t, 2, second.ID)
}

func TestOrderRepository_Create_NeverReusesDeletedID(t *testing.T) {
	repo := newOrderRepo(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, &entity.Order{Items: map[string]int{}})
	require.NoError(t, err)
	second, err := repo.Create(ctx, &entity.Order{Items: map[string]int{}})
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, second.ID))

	third, err := repo.Create(ctx, &entity.Order{Items: map[string]int{}})
	require.NoError(t, err)
	assert.Equal(t, 3, third.ID)
}

func TestOrderRepository_LoadAll_BackfillsDefaults(t *testing.T) {
	store := storage.NewStore(t.TempDir())
	repo := repository.NewOrderRepository(store)
	ctx := context.Background()

	// A legacy record missing items, status and created_at.
	require.NoError(t, store.Save(storage.OrdersFile, []entity.Order{
		{ID: 3, CustomerName: "Alice", Total: 12.5},
	}))

	orders, err := repo.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 1)

	assert.Equal(t, entity.StatusNew, orders[0].Status)
	assert.NotNil(t, orders[0].Items)
	assert.Empty(t, orders[0].Items)
	// Untouched fields survive the repair.
	assert.Equal(t, "Alice", orders[0].CustomerName)
	assert.Equal(t, 12.5, orders[0].Total)
	assert.Equal(t, 3, orders[0].ID)
}

func TestOrderRepository_LoadAll_BackfilledIDsNeverCollide(t *testing.T) {
	store := storage.NewStore(t.TempDir())
	repo := repository.NewOrderRepository(store)

	// Two legacy records without ids alongside an assigned id 2.
	require.NoError(t, store.Save(storage.OrdersFile, []entity.Order{
		{CustomerName: "legacy one"},
		{ID: 2, CustomerName: "assigned"},
		{CustomerName: "legacy two"},
	}))

	orders, err := repo.LoadAll(context.Background())
	require.NoError(t, err)
	require.Len(t, orders, 3)

	seen := map[int]bool{}
	for _, o := range orders {
		assert.Positive(t, o.ID)
		assert.False(t, seen[o.ID], "duplicate id %d", o.ID)
		seen[o.ID] = true
	}
	assert.Equal(t, []int{3, 2, 4}, []int{orders[0].ID, orders[1].ID, orders[2].ID})
}

func TestOrderRepository_UpdateStatus(t *testing.T) {
	repo := newOrderRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, &entity.Order{Items: map[string]int{}})
	require.NoError(t, err)

	require.NoError(t, repo.UpdateStatus(ctx, "1", "delivered"))

	updated, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "delivered", updated.Status)
}

func TestOrderRepository_UpdateStatus_NotFound(t *testing.T) {
	repo := newOrderRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, &entity.Order{Items: map[string]int{}})
	require.NoError(t, err)

	err = repo.UpdateStatus(ctx, "99", "delivered")
	assert.ErrorIs(t, err, entity.ErrNotFound)

	// The store is left unchanged.
	unchanged, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusNew, unchanged.Status)
}

func TestOrderRepository_Delete_MissingIDIsNoOp(t *testing.T) {
	repo := newOrderRepo(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, &entity.Order{Items: map[string]int{}})
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, 42))

	orders, err := repo.LoadAll(ctx)
	require.NoError(t, err)
	assert.Len(t, orders, 1)
}

func TestOrderRepository_GetByID_NotFound(t *testing.T) {
	repo := newOrderRepo(t)

	_, err := repo.GetByID(context.Background(), 7)
	assert.ErrorIs(t, err, entity.ErrNotFound)
}
