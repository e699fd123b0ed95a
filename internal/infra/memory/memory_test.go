package memory

import (
	"context"
	"testing"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlotRepository(t *testing.T) {
	ctx := context.Background()
	r := NewSlotRepository()

	_, err := r.Get(ctx, "a", "CART")
	assert.ErrorIs(t, err, repo.ErrNotFound)

	require.NoError(t, r.Put(ctx, "a", "CART", "[]"))
	require.NoError(t, r.Put(ctx, "a", "CART", `[{"id":"1"}]`))
	v, err := r.Get(ctx, "a", "CART")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"1"}]`, v)

	_, err = r.Get(ctx, "b", "CART")
	assert.ErrorIs(t, err, repo.ErrNotFound)
}

func TestProductRepository_KeepsOrderAndUpserts(t *testing.T) {
	ctx := context.Background()
	r := NewProductRepository([]model.Product{{ID: "2", Name: "b"}, {ID: "1", Name: "a"}})

	require.NoError(t, r.Upsert(ctx, []model.Product{{ID: "2", Name: "B"}, {ID: "3", Name: "c"}}))

	list, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"2", "1", "3"}, []string{list[0].ID, list[1].ID, list[2].ID})
	assert.Equal(t, "B", list[0].Name)

	_, err = r.FindByID(ctx, "9")
	assert.ErrorIs(t, err, repo.ErrNotFound)
}

func TestCartEventRepository_ListFilters(t *testing.T) {
	ctx := context.Background()
	r := NewCartEventRepository()

	for i := 0; i < 5; i++ {
		require.NoError(t, r.Create(ctx, model.CartEvent{SessionID: "a", Action: model.CartActionAdd}))
	}
	require.NoError(t, r.Create(ctx, model.CartEvent{SessionID: "a", Action: model.CartActionClear}))
	require.NoError(t, r.Create(ctx, model.CartEvent{SessionID: "b", Action: model.CartActionAdd}))

	all, err := r.List(ctx, repo.CartEventFilter{SessionID: "a"})
	require.NoError(t, err)
	require.Len(t, all, 6)
	assert.Equal(t, model.CartActionClear, all[0].Action)
	assert.False(t, all[0].CreatedAt.IsZero())

	clear := model.CartActionClear
	onlyClear, err := r.List(ctx, repo.CartEventFilter{SessionID: "a", Action: &clear})
	require.NoError(t, err)
	assert.Len(t, onlyClear, 1)

	page, err := r.List(ctx, repo.CartEventFilter{SessionID: "a", Limit: 2, Offset: 1})
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, int64(5), page[0].ID)
	assert.Equal(t, int64(4), page[1].ID)
}
