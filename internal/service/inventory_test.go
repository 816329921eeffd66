package service

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopinger/shopinger/internal/domain"
	"github.com/shopinger/shopinger/internal/repository"
)

// fakeInventoryStore holds product rows in memory and mimics the
// conditional-decrement guard of the real queries.
type fakeInventoryStore struct {
	items     map[string]domain.InventoryItem
	createErr error
}

func newFakeInventoryStore() *fakeInventoryStore {
	return &fakeInventoryStore{items: make(map[string]domain.InventoryItem)}
}

func (s *fakeInventoryStore) seed(id string, onHand int32) {
	s.items[id] = domain.InventoryItem{
		ProductID:      id,
		Name:           "Product " + id,
		UnitPriceCents: 100,
		QuantityOnHand: onHand,
	}
}

func (s *fakeInventoryStore) GetInventoryItem(_ context.Context, productID string) (domain.InventoryItem, error) {
	item, ok := s.items[productID]
	if !ok {
		return domain.InventoryItem{}, pgx.ErrNoRows
	}
	return item, nil
}

func (s *fakeInventoryStore) ListInventory(_ context.Context) ([]domain.InventoryItem, error) {
	out := make([]domain.InventoryItem, 0, len(s.items))
	for _, item := range s.items {
		out = append(out, item)
	}
	return out, nil
}

func (s *fakeInventoryStore) SearchInventory(_ context.Context, term string) ([]domain.InventoryItem, error) {
	var out []domain.InventoryItem
	for _, item := range s.items {
		if item.ProductID == term {
			out = append(out, item)
		}
	}
	return out, nil
}

func (s *fakeInventoryStore) CreateInventoryItem(_ context.Context, params repository.CreateInventoryItemParams) error {
	if s.createErr != nil {
		return s.createErr
	}
	if _, exists := s.items[params.ProductID]; exists {
		return &pgconn.PgError{Code: "23505"}
	}
	s.items[params.ProductID] = domain.InventoryItem{
		ProductID:      params.ProductID,
		Name:           params.Name,
		UnitPriceCents: params.UnitPriceCents,
		QuantityOnHand: params.QuantityOnHand,
		Description:    params.Description,
		Specification:  params.Specification,
		SupplierID:     params.SupplierID,
	}
	return nil
}

func (s *fakeInventoryStore) UpdateInventoryItem(_ context.Context, productID string, params repository.UpdateInventoryItemParams) error {
	item, ok := s.items[productID]
	if !ok {
		return pgx.ErrNoRows
	}
	if params.Name != nil {
		item.Name = *params.Name
	}
	if params.UnitPriceCents != nil {
		item.UnitPriceCents = *params.UnitPriceCents
	}
	s.items[productID] = item
	return nil
}

func (s *fakeInventoryStore) DeleteInventoryItem(_ context.Context, productID string) error {
	if _, ok := s.items[productID]; !ok {
		return pgx.ErrNoRows
	}
	delete(s.items, productID)
	return nil
}

func (s *fakeInventoryStore) DecrementInventoryIfAvailable(_ context.Context, productID string, qty int32) error {
	item, ok := s.items[productID]
	if !ok || item.QuantityOnHand < qty {
		return repository.ErrNotEnoughStock
	}
	item.QuantityOnHand -= qty
	s.items[productID] = item
	return nil
}

func (s *fakeInventoryStore) IncrementInventory(_ context.Context, productID string, qty int32) error {
	item, ok := s.items[productID]
	if !ok {
		return pgx.ErrNoRows
	}
	item.QuantityOnHand += qty
	s.items[productID] = item
	return nil
}

func TestInventoryService_GetItem(t *testing.T) {
	store := newFakeInventoryStore()
	store.seed("SKU-1", 5)
	svc := NewInventoryService(store, nil, nil)

	item, err := svc.GetItem(context.Background(), "SKU-1")
	require.NoError(t, err)
	assert.Equal(t, int32(5), item.QuantityOnHand)

	_, err = svc.GetItem(context.Background(), "SKU-missing")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestInventoryService_CreateItem(t *testing.T) {
	store := newFakeInventoryStore()
	svc := NewInventoryService(store, nil, nil)

	item, err := svc.CreateItem(context.Background(), domain.CreateInventoryParams{
		ProductID:      "SKU-1",
		Name:           "Sourdough",
		QuantityOnHand: 12,
		UnitPriceCents: 350,
	})
	require.NoError(t, err)
	assert.Equal(t, "Sourdough", item.Name)

	// Same product ID again is a conflict.
	_, err = svc.CreateItem(context.Background(), domain.CreateInventoryParams{
		ProductID: "SKU-1",
		Name:      "Sourdough",
	})
	assert.ErrorIs(t, err, domain.ErrDuplicateProduct)
}

func TestInventoryService_CreateItemValidation(t *testing.T) {
	svc := NewInventoryService(newFakeInventoryStore(), nil, nil)

	cases := []struct {
		name   string
		params domain.CreateInventoryParams
	}{
		{"missing product id", domain.CreateInventoryParams{Name: "x"}},
		{"missing name", domain.CreateInventoryParams{ProductID: "SKU-1"}},
		{"negative quantity", domain.CreateInventoryParams{ProductID: "SKU-1", Name: "x", QuantityOnHand: -1}},
		{"negative price", domain.CreateInventoryParams{ProductID: "SKU-1", Name: "x", UnitPriceCents: -1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateItem(context.Background(), tc.params)
			assert.True(t, domain.IsCode(err, domain.EINVALID))
		})
	}
}

func TestInventoryService_CreateItemBadSupplier(t *testing.T) {
	store := newFakeInventoryStore()
	store.createErr = &pgconn.PgError{Code: "23503"}
	svc := NewInventoryService(store, nil, nil)

	_, err := svc.CreateItem(context.Background(), domain.CreateInventoryParams{
		ProductID: "SKU-1",
		Name:      "Sourdough",
	})
	assert.ErrorIs(t, err, domain.ErrSupplierNotFound)
}

func TestInventoryService_UpdateItem(t *testing.T) {
	store := newFakeInventoryStore()
	store.seed("SKU-1", 5)
	svc := NewInventoryService(store, nil, nil)

	price := int64(425)
	item, err := svc.UpdateItem(context.Background(), "SKU-1", domain.UpdateInventoryParams{UnitPriceCents: &price})
	require.NoError(t, err)
	assert.Equal(t, int64(425), item.UnitPriceCents)

	bad := int64(-1)
	_, err = svc.UpdateItem(context.Background(), "SKU-1", domain.UpdateInventoryParams{UnitPriceCents: &bad})
	assert.True(t, domain.IsCode(err, domain.EINVALID))

	_, err = svc.UpdateItem(context.Background(), "SKU-missing", domain.UpdateInventoryParams{UnitPriceCents: &price})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestInventoryService_DeleteItem(t *testing.T) {
	store := newFakeInventoryStore()
	store.seed("SKU-1", 5)
	svc := NewInventoryService(store, nil, nil)

	require.NoError(t, svc.DeleteItem(context.Background(), "SKU-1"))
	assert.ErrorIs(t, svc.DeleteItem(context.Background(), "SKU-1"), domain.ErrProductNotFound)
}

func TestInventoryService_SearchFallsBackToList(t *testing.T) {
	store := newFakeInventoryStore()
	store.seed("SKU-1", 5)
	store.seed("SKU-2", 3)
	svc := NewInventoryService(store, nil, nil)

	items, err := svc.SearchItems(context.Background(), "   ")
	require.NoError(t, err)
	assert.Len(t, items, 2)

	items, err = svc.SearchItems(context.Background(), "SKU-1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "SKU-1", items[0].ProductID)
}

func TestInventoryService_AdjustQuantity(t *testing.T) {
	store := newFakeInventoryStore()
	store.seed("SKU-1", 5)
	svc := NewInventoryService(store, nil, nil)

	item, err := svc.AdjustQuantity(context.Background(), "SKU-1", 3)
	require.NoError(t, err)
	assert.Equal(t, int32(8), item.QuantityOnHand)

	item, err = svc.AdjustQuantity(context.Background(), "SKU-1", -8)
	require.NoError(t, err)
	assert.Equal(t, int32(0), item.QuantityOnHand)
}

func TestInventoryService_AdjustQuantityGuards(t *testing.T) {
	store := newFakeInventoryStore()
	store.seed("SKU-1", 5)
	svc := NewInventoryService(store, nil, nil)

	_, err := svc.AdjustQuantity(context.Background(), "SKU-1", 0)
	assert.True(t, domain.IsCode(err, domain.EINVALID))

	// Draining below zero is refused and the quantity is untouched.
	_, err = svc.AdjustQuantity(context.Background(), "SKU-1", -6)
	assert.ErrorIs(t, err, domain.ErrStockUnderflow)
	assert.Equal(t, int32(5), store.items["SKU-1"].QuantityOnHand)

	_, err = svc.AdjustQuantity(context.Background(), "SKU-missing", -1)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	_, err = svc.AdjustQuantity(context.Background(), "SKU-missing", 1)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}
