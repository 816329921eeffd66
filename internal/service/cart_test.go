package service

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopinger/shopinger/internal/domain"
	"github.com/shopinger/shopinger/internal/repository"
)

// fakeCartStore backs cart tests with in-memory mart rows keyed by
// customer and product.
type fakeCartStore struct {
	stock     map[string]domain.InventoryItem
	lines     map[int64]map[string]domain.LineItem
	order     map[int64][]string
	upsertErr error
	deleteErr error
}

func newFakeCartStore() *fakeCartStore {
	return &fakeCartStore{
		stock: make(map[string]domain.InventoryItem),
		lines: make(map[int64]map[string]domain.LineItem),
		order: make(map[int64][]string),
	}
}

func (s *fakeCartStore) addProduct(id string, priceCents int64, onHand int32) {
	s.stock[id] = domain.InventoryItem{
		ProductID:      id,
		Name:           "Product " + id,
		UnitPriceCents: priceCents,
		QuantityOnHand: onHand,
	}
}

func (s *fakeCartStore) GetInventoryItem(_ context.Context, productID string) (domain.InventoryItem, error) {
	item, ok := s.stock[productID]
	if !ok {
		return domain.InventoryItem{}, pgx.ErrNoRows
	}
	return item, nil
}

func (s *fakeCartStore) GetMartLines(_ context.Context, customerID int64, _ domain.CartType) ([]domain.LineItem, error) {
	var out []domain.LineItem
	for _, id := range s.order[customerID] {
		out = append(out, s.lines[customerID][id])
	}
	return out, nil
}

func (s *fakeCartStore) UpsertMartLine(_ context.Context, params repository.UpsertMartLineParams) error {
	if s.upsertErr != nil {
		return s.upsertErr
	}
	if s.lines[params.CustomerID] == nil {
		s.lines[params.CustomerID] = make(map[string]domain.LineItem)
	}
	if _, exists := s.lines[params.CustomerID][params.ProductID]; !exists {
		s.order[params.CustomerID] = append(s.order[params.CustomerID], params.ProductID)
	}
	s.lines[params.CustomerID][params.ProductID] = domain.LineItem{
		ProductID:      params.ProductID,
		UnitPriceCents: params.UnitPriceCents,
		RequestedQty:   params.Qty,
	}
	return nil
}

func (s *fakeCartStore) DeleteMartLine(_ context.Context, customerID int64, productID string, _ domain.CartType) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	delete(s.lines[customerID], productID)
	order := s.order[customerID]
	for i, id := range order {
		if id == productID {
			s.order[customerID] = append(order[:i], order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *fakeCartStore) ClearMart(_ context.Context, customerID int64, _ domain.CartType) error {
	delete(s.lines, customerID)
	delete(s.order, customerID)
	return nil
}

func TestCartService_GetCartEmpty(t *testing.T) {
	store := newFakeCartStore()
	svc := NewCartService(store, nil)

	summary, err := svc.GetCart(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, summary.Items)
	assert.Zero(t, summary.TotalCents)
	assert.Equal(t, int64(1), summary.CustomerID)
}

func TestCartService_AddItemWritesThrough(t *testing.T) {
	store := newFakeCartStore()
	store.addProduct("bread", 350, 10)
	svc := NewCartService(store, nil)

	summary, err := svc.AddItem(context.Background(), 1, "bread", 2)
	require.NoError(t, err)
	assert.Equal(t, int64(700), summary.TotalCents)

	// The row is durable, visible on a fresh load.
	summary, err = svc.GetCart(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, summary.Items, 1)
	assert.Equal(t, int32(2), summary.Items[0].RequestedQty)
}

func TestCartService_AddItemMerges(t *testing.T) {
	store := newFakeCartStore()
	store.addProduct("bread", 350, 10)
	svc := NewCartService(store, nil)

	_, err := svc.AddItem(context.Background(), 1, "bread", 2)
	require.NoError(t, err)
	summary, err := svc.AddItem(context.Background(), 1, "bread", 3)
	require.NoError(t, err)

	require.Len(t, summary.Items, 1)
	assert.Equal(t, int32(5), summary.Items[0].RequestedQty)
}

func TestCartService_AddItemUnknownProduct(t *testing.T) {
	store := newFakeCartStore()
	svc := NewCartService(store, nil)

	_, err := svc.AddItem(context.Background(), 1, "ghost", 1)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestCartService_AddItemStockRejections(t *testing.T) {
	store := newFakeCartStore()
	store.addProduct("bread", 350, 3)
	svc := NewCartService(store, nil)

	_, err := svc.AddItem(context.Background(), 1, "bread", 4)
	assert.ErrorIs(t, err, domain.ErrMaxQuantityReached)

	store.addProduct("milk", 120, 0)
	_, err = svc.AddItem(context.Background(), 1, "milk", 1)
	assert.ErrorIs(t, err, domain.ErrOutOfStock)

	// Rejections never write.
	summary, err := svc.GetCart(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, summary.Items)
}

func TestCartService_AddItemStorageFailure(t *testing.T) {
	store := newFakeCartStore()
	store.addProduct("bread", 350, 10)
	store.upsertErr = errors.New("disk full")
	svc := NewCartService(store, nil)

	_, err := svc.AddItem(context.Background(), 1, "bread", 2)
	require.Error(t, err)
	assert.True(t, domain.IsCode(err, domain.EINTERNAL))
	assert.Empty(t, store.lines[1])
}

func TestCartService_UpdateItemQuantity(t *testing.T) {
	store := newFakeCartStore()
	store.addProduct("bread", 350, 10)
	svc := NewCartService(store, nil)

	_, err := svc.AddItem(context.Background(), 1, "bread", 2)
	require.NoError(t, err)

	summary, err := svc.UpdateItemQuantity(context.Background(), 1, "bread", 7)
	require.NoError(t, err)
	assert.Equal(t, int32(7), summary.Items[0].RequestedQty)

	_, err = svc.UpdateItemQuantity(context.Background(), 1, "bread", -1)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	// Zero removes the line.
	summary, err = svc.UpdateItemQuantity(context.Background(), 1, "bread", 0)
	require.NoError(t, err)
	assert.Empty(t, summary.Items)
	assert.Empty(t, store.lines[1])
}

func TestCartService_UpdateBoundedByStock(t *testing.T) {
	store := newFakeCartStore()
	store.addProduct("bread", 350, 5)
	svc := NewCartService(store, nil)

	_, err := svc.AddItem(context.Background(), 1, "bread", 2)
	require.NoError(t, err)

	_, err = svc.UpdateItemQuantity(context.Background(), 1, "bread", 6)
	assert.ErrorIs(t, err, domain.ErrMaxQuantityReached)

	summary, err := svc.GetCart(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int32(2), summary.Items[0].RequestedQty)
}

func TestCartService_RemoveItem(t *testing.T) {
	store := newFakeCartStore()
	store.addProduct("bread", 350, 10)
	store.addProduct("milk", 120, 10)
	svc := NewCartService(store, nil)

	_, err := svc.AddItem(context.Background(), 1, "bread", 1)
	require.NoError(t, err)
	_, err = svc.AddItem(context.Background(), 1, "milk", 1)
	require.NoError(t, err)

	summary, err := svc.RemoveItem(context.Background(), 1, "bread")
	require.NoError(t, err)
	require.Len(t, summary.Items, 1)
	assert.Equal(t, "milk", summary.Items[0].ProductID)

	// Removing an absent line is a no-op.
	summary, err = svc.RemoveItem(context.Background(), 1, "bread")
	require.NoError(t, err)
	assert.Len(t, summary.Items, 1)
}

func TestCartService_ClearCart(t *testing.T) {
	store := newFakeCartStore()
	store.addProduct("bread", 350, 10)
	svc := NewCartService(store, nil)

	_, err := svc.AddItem(context.Background(), 1, "bread", 2)
	require.NoError(t, err)

	require.NoError(t, svc.ClearCart(context.Background(), 1))

	summary, err := svc.GetCart(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, summary.Items)
}

func TestCartService_CustomersIsolated(t *testing.T) {
	store := newFakeCartStore()
	store.addProduct("bread", 350, 10)
	svc := NewCartService(store, nil)

	_, err := svc.AddItem(context.Background(), 1, "bread", 2)
	require.NoError(t, err)
	_, err = svc.AddItem(context.Background(), 2, "bread", 5)
	require.NoError(t, err)

	one, err := svc.GetCart(context.Background(), 1)
	require.NoError(t, err)
	two, err := svc.GetCart(context.Background(), 2)
	require.NoError(t, err)

	assert.Equal(t, int32(2), one.Items[0].RequestedQty)
	assert.Equal(t, int32(5), two.Items[0].RequestedQty)
}
